// Package models provides the built-in property models run through the
// registry. Each model is a value whose exported fields are its typed
// configuration; registries persist that configuration as JSON.
package models

import (
	"fmt"
	"math/rand"

	"porecore/pkg/network"
)

// RandomSeed fills its target slice with uniform random values drawn from
// the closed range Lim. A zero-valued Lim means [0,1]. Seed fixes the
// generator for reproducible runs.
type RandomSeed struct {
	Element network.Element `json:"element,omitempty"`
	Seed    int64           `json:"seed,omitempty"`
	Lim     [2]float64      `json:"lim,omitempty"`
}

// Evaluate draws one value per selected entity: the domain label's true
// count when restricted, the element count otherwise.
func (m RandomSeed) Evaluate(target network.Target, domain string) (*network.Array, error) {
	n, err := sliceSize(target, m.Element, domain)
	if err != nil {
		return nil, err
	}
	lim := m.Lim
	if lim == [2]float64{} {
		lim = [2]float64{0, 1}
	}
	rng := rand.New(rand.NewSource(m.Seed))
	out := make([]float64, n)
	for i := range out {
		out[i] = rng.Float64()*(lim[1]-lim[0]) + lim[0]
	}
	return network.NewFloats(out), nil
}

// Scale multiplies an existing property (or a literal reference) by a
// constant factor.
type Scale struct {
	Prop   string  `json:"prop"`
	Factor float64 `json:"factor"`
}

// Evaluate resolves Prop, scales it, and restricts the result to the
// domain slice when one is given.
func (m Scale) Evaluate(target network.Target, domain string) (*network.Array, error) {
	src, err := target.Resolve(m.Prop)
	if err != nil {
		return nil, err
	}
	vals, err := src.Floats()
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(vals))
	for i, v := range vals {
		out[i] = v * m.Factor
	}
	full := network.NewFloats(out)
	if shape := src.Shape(); len(shape) > 1 {
		if full, err = full.Reshape(shape...); err != nil {
			return nil, err
		}
	}
	return restrict(target, full, domain)
}

// Constant fills the target slice with a single value.
type Constant struct {
	Element network.Element `json:"element,omitempty"`
	Value   float64         `json:"value"`
}

// Evaluate produces the fill sized to the domain slice or the element
// count.
func (m Constant) Evaluate(target network.Target, domain string) (*network.Array, error) {
	n, err := sliceSize(target, m.Element, domain)
	if err != nil {
		return nil, err
	}
	return network.FloatFull(n, m.Value), nil
}

// FromNeighbors derives values for one kind by aggregating the named
// property of the other kind across the connectivity table.
type FromNeighbors struct {
	Prop string `json:"prop"`
	Mode string `json:"mode,omitempty"`
}

// Evaluate interpolates Prop to the opposite kind, restricted to the
// domain slice when one is given.
func (m FromNeighbors) Evaluate(target network.Target, domain string) (*network.Array, error) {
	vals, err := target.InterpolateData(m.Prop, m.Mode)
	if err != nil {
		return nil, err
	}
	return restrict(target, vals, domain)
}

// sliceSize resolves how many entities a model output must cover: the
// label's true count under a domain restriction, the element count
// otherwise (defaulting to pores).
func sliceSize(target network.Target, el network.Element, domain string) (int, error) {
	if domain != "" {
		label, err := target.GetArray(domain)
		if err != nil {
			return 0, err
		}
		return label.CountTrue(), nil
	}
	if el == "" {
		el = network.Pore
	}
	n, ok := target.Count(el)
	if !ok {
		return 0, fmt.Errorf("count of %s is not established", el)
	}
	return n, nil
}

// restrict gathers full down to the domain slice, or returns it unchanged
// for whole-collection runs.
func restrict(target network.Target, full *network.Array, domain string) (*network.Array, error) {
	if domain == "" {
		return full, nil
	}
	label, err := target.GetArray(domain)
	if err != nil {
		return nil, err
	}
	mask, err := label.Bools()
	if err != nil {
		return nil, err
	}
	return full.Gather(mask)
}
