// Package topology provides connectivity-aware helpers for pore networks:
// neighbor aggregation between the two entity kinds and a cubic lattice
// generator that seeds coordinate and connectivity arrays.
package topology

import (
	"fmt"
	"math"

	"porecore/pkg/network"
)

// Mode selects the neighbor aggregation.
type Mode string

const (
	Mean Mode = "mean"
	Min  Mode = "min"
	Max  Mode = "max"
	Sum  Mode = "sum"
)

// ParseMode validates an aggregation mode spelling.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case Mean, Min, Max, Sum:
		return Mode(s), nil
	case "":
		return Mean, nil
	default:
		return "", fmt.Errorf("unknown interpolation mode %q", s)
	}
}

func aggregate(vals []float64, mode Mode) float64 {
	if len(vals) == 0 {
		return math.NaN()
	}
	switch mode {
	case Min:
		out := vals[0]
		for _, v := range vals[1:] {
			out = math.Min(out, v)
		}
		return out
	case Max:
		out := vals[0]
		for _, v := range vals[1:] {
			out = math.Max(out, v)
		}
		return out
	case Sum:
		out := 0.0
		for _, v := range vals {
			out += v
		}
		return out
	default: // Mean
		out := 0.0
		for _, v := range vals {
			out += v
		}
		return out / float64(len(vals))
	}
}

// PoresFromThroats derives one value per pore by aggregating the values of
// its incident throats. Pores with no incident throat get NaN.
func PoresFromThroats(conns [][2]int, throatVals *network.Array, np int, mode Mode) (*network.Array, error) {
	tv, err := throatVals.Floats()
	if err != nil {
		return nil, err
	}
	if len(tv) != len(conns) {
		return nil, fmt.Errorf("throat values length %d does not match %d conns", len(tv), len(conns))
	}
	incident := make([][]float64, np)
	for t, c := range conns {
		for _, p := range []int{c[0], c[1]} {
			if p < 0 || p >= np {
				return nil, fmt.Errorf("conns references pore %d outside 0..%d", p, np-1)
			}
			incident[p] = append(incident[p], tv[t])
		}
	}
	out := make([]float64, np)
	for p := range out {
		out[p] = aggregate(incident[p], mode)
	}
	return network.NewFloats(out), nil
}

// ThroatsFromPores derives one value per throat by aggregating the values
// of its two endpoint pores.
func ThroatsFromPores(conns [][2]int, poreVals *network.Array, mode Mode) (*network.Array, error) {
	pv, err := poreVals.Floats()
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(conns))
	for t, c := range conns {
		if c[0] < 0 || c[0] >= len(pv) || c[1] < 0 || c[1] >= len(pv) {
			return nil, fmt.Errorf("conns row %d references a pore outside 0..%d", t, len(pv)-1)
		}
		out[t] = aggregate([]float64{pv[c[0]], pv[c[1]]}, mode)
	}
	return network.NewFloats(out), nil
}
