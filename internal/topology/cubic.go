package topology

import (
	"fmt"

	"porecore/pkg/network"
)

// Lattice is a generated cubic network: pore coordinates, throat
// connectivity, and the six face labels. Pore indices run x-major, so for
// a [3,3,1] lattice the left face is pores {0,1,2} and the right face is
// pores {6,7,8}.
type Lattice struct {
	nx, ny, nz int
	spacing    float64
	coords     [][]float64
	conns      [][2]int
}

// Cubic generates an nx×ny×nz lattice with the given spacing. Neighboring
// pores are connected along each axis; coordinates sit at cell centers.
func Cubic(nx, ny, nz int, spacing float64) (*Lattice, error) {
	if nx < 1 || ny < 1 || nz < 1 {
		return nil, fmt.Errorf("lattice shape [%d %d %d] must be positive", nx, ny, nz)
	}
	if spacing <= 0 {
		return nil, fmt.Errorf("spacing %v must be positive", spacing)
	}
	l := &Lattice{nx: nx, ny: ny, nz: nz, spacing: spacing}
	for ix := 0; ix < nx; ix++ {
		for iy := 0; iy < ny; iy++ {
			for iz := 0; iz < nz; iz++ {
				l.coords = append(l.coords, []float64{
					(float64(ix) + 0.5) * spacing,
					(float64(iy) + 0.5) * spacing,
					(float64(iz) + 0.5) * spacing,
				})
			}
		}
	}
	for ix := 0; ix < nx; ix++ {
		for iy := 0; iy < ny; iy++ {
			for iz := 0; iz < nz; iz++ {
				p := l.index(ix, iy, iz)
				if ix+1 < nx {
					l.conns = append(l.conns, [2]int{p, l.index(ix+1, iy, iz)})
				}
				if iy+1 < ny {
					l.conns = append(l.conns, [2]int{p, l.index(ix, iy+1, iz)})
				}
				if iz+1 < nz {
					l.conns = append(l.conns, [2]int{p, l.index(ix, iy, iz+1)})
				}
			}
		}
	}
	return l, nil
}

func (l *Lattice) index(ix, iy, iz int) int {
	return (ix*l.ny+iy)*l.nz + iz
}

// Np returns the pore count.
func (l *Lattice) Np() int { return l.nx * l.ny * l.nz }

// Nt returns the throat count.
func (l *Lattice) Nt() int { return len(l.conns) }

// Coords returns the [Np,3] coordinate array.
func (l *Lattice) Coords() *network.Array {
	arr, err := network.AsArray(l.coords)
	if err != nil {
		panic(err) // rows are uniform by construction
	}
	return arr
}

// Conns returns the [Nt,2] connectivity array.
func (l *Lattice) Conns() *network.Array {
	arr, err := network.AsArray(l.conns)
	if err != nil {
		panic(err)
	}
	return arr
}

// FaceLabels returns the boolean pore masks for the six lattice faces.
func (l *Lattice) FaceLabels() map[string][]bool {
	out := map[string][]bool{
		"left": make([]bool, l.Np()), "right": make([]bool, l.Np()),
		"front": make([]bool, l.Np()), "back": make([]bool, l.Np()),
		"bottom": make([]bool, l.Np()), "top": make([]bool, l.Np()),
	}
	for ix := 0; ix < l.nx; ix++ {
		for iy := 0; iy < l.ny; iy++ {
			for iz := 0; iz < l.nz; iz++ {
				p := l.index(ix, iy, iz)
				out["left"][p] = ix == 0
				out["right"][p] = ix == l.nx-1
				out["front"][p] = iy == 0
				out["back"][p] = iy == l.ny-1
				out["bottom"][p] = iz == 0
				out["top"][p] = iz == l.nz-1
			}
		}
	}
	return out
}

// Setter is the write surface a lattice populates; the domain overlay
// satisfies it.
type Setter interface {
	Set(key string, value any) error
}

// Attach writes the lattice arrays into a store: coordinates, connectivity,
// and the face labels.
func (l *Lattice) Attach(dst Setter) error {
	if err := dst.Set("pore.coords", l.Coords()); err != nil {
		return err
	}
	if err := dst.Set("throat.conns", l.Conns()); err != nil {
		return err
	}
	for _, name := range []string{"left", "right", "front", "back", "bottom", "top"} {
		if err := dst.Set("pore."+name, l.FaceLabels()[name]); err != nil {
			return err
		}
	}
	return nil
}
