// Package export renders networks to exchange formats for external
// visualization tools.
package export

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"porecore/internal/blob"
	"porecore/internal/core"
	"porecore/pkg/network"
)

// VTK renders the network as a legacy ASCII VTK PolyData file: pores as
// points, throats as lines, and every scalar property as point or cell
// data. Labels are written as 0/1 integers. Multi-dimensional properties
// other than the coordinates are skipped.
func VTK(d *core.Domain) ([]byte, error) {
	coords, err := d.Store.GetArray("pore.coords")
	if err != nil {
		return nil, err
	}
	conns, err := d.Conns()
	if err != nil {
		return nil, err
	}
	np := d.Np()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# vtk DataFile Version 3.0\n")
	fmt.Fprintf(&buf, "porecore network: %s\n", d.Name())
	fmt.Fprintf(&buf, "ASCII\nDATASET POLYDATA\n")

	fmt.Fprintf(&buf, "POINTS %d float\n", np)
	for i := 0; i < np; i++ {
		var xyz [3]float64
		copy(xyz[:], coords.FloatRow(i))
		fmt.Fprintf(&buf, "%g %g %g\n", xyz[0], xyz[1], xyz[2])
	}

	fmt.Fprintf(&buf, "LINES %d %d\n", len(conns), len(conns)*3)
	for _, c := range conns {
		fmt.Fprintf(&buf, "2 %d %d\n", c[0], c[1])
	}

	writeData(&buf, d, network.Pore, "POINT_DATA", np)
	writeData(&buf, d, network.Throat, "CELL_DATA", d.Nt())
	return buf.Bytes(), nil
}

func writeData(buf *bytes.Buffer, d *core.Domain, el network.Element, section string, n int) {
	var scalars []string
	for _, key := range append(d.Props(el), d.Labels(el)...) {
		if key == el.SeedKey() {
			continue
		}
		arr, err := d.Store.GetArray(key)
		if err != nil || len(arr.Shape()) != 1 {
			continue
		}
		if arr.DType() == network.Object {
			continue
		}
		scalars = append(scalars, key)
	}
	if len(scalars) == 0 {
		return
	}
	fmt.Fprintf(buf, "%s %d\n", section, n)
	for _, key := range scalars {
		arr, err := d.Store.GetArray(key)
		if err != nil {
			continue
		}
		name := strings.ReplaceAll(key, ".", "_")
		switch arr.DType() {
		case network.Float64:
			fmt.Fprintf(buf, "SCALARS %s float 1\nLOOKUP_TABLE default\n", name)
			for i := 0; i < arr.Len(); i++ {
				fmt.Fprintf(buf, "%g\n", arr.FloatAt(i))
			}
		case network.Int64:
			fmt.Fprintf(buf, "SCALARS %s int 1\nLOOKUP_TABLE default\n", name)
			for i := 0; i < arr.Len(); i++ {
				fmt.Fprintf(buf, "%d\n", arr.IntAt(i))
			}
		case network.Bool:
			fmt.Fprintf(buf, "SCALARS %s int 1\nLOOKUP_TABLE default\n", name)
			for i := 0; i < arr.Len(); i++ {
				v := 0
				if arr.BoolAt(i) {
					v = 1
				}
				fmt.Fprintf(buf, "%d\n", v)
			}
		}
	}
}

// WriteVTK renders the network and stores the artifact under key.
func WriteVTK(ctx context.Context, dst blob.Store, key string, d *core.Domain) (blob.Info, error) {
	data, err := VTK(d)
	if err != nil {
		return blob.Info{}, err
	}
	return dst.Put(ctx, key, bytes.NewReader(data), blob.PutOptions{
		ContentType: "model/vnd.vtk",
		Metadata:    map[string]string{"network": d.Name()},
	})
}
