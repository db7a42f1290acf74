package export

import (
	"context"
	"io"
	"strings"
	"testing"

	"porecore/internal/blob"
	"porecore/internal/core"
	"porecore/internal/topology"
)

func testNet(t *testing.T) *core.Domain {
	t.Helper()
	net, err := core.NewDomain(core.NewProject(), "bob")
	if err != nil {
		t.Fatalf("new domain: %v", err)
	}
	lattice, err := topology.Cubic(3, 3, 1, 1.0)
	if err != nil {
		t.Fatalf("cubic: %v", err)
	}
	if err := lattice.Attach(net); err != nil {
		t.Fatalf("attach: %v", err)
	}
	if err := net.Set("pore.diameter", 0.5); err != nil {
		t.Fatalf("diameter: %v", err)
	}
	if err := net.Set("throat.length", 1.0); err != nil {
		t.Fatalf("length: %v", err)
	}
	return net
}

func TestVTKLayout(t *testing.T) {
	out, err := VTK(testNet(t))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	text := string(out)

	for _, want := range []string{
		"# vtk DataFile Version 3.0",
		"porecore network: bob",
		"DATASET POLYDATA",
		"POINTS 9 float",
		"LINES 12 36",
		"POINT_DATA 9",
		"CELL_DATA 12",
		"SCALARS pore_diameter float 1",
		"SCALARS throat_length float 1",
		"SCALARS pore_left int 1",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("missing %q in rendered output:\n%s", want, text)
		}
	}
	if strings.Contains(text, "pore_coords") || strings.Contains(text, "throat_conns") {
		t.Fatal("topology arrays must not appear as data sections")
	}
}

func TestVTKRequiresTopology(t *testing.T) {
	net, err := core.NewDomain(nil, "empty")
	if err != nil {
		t.Fatalf("new domain: %v", err)
	}
	if _, err := VTK(net); err == nil {
		t.Fatal("rendering without coordinates must fail")
	}
}

func TestWriteVTKThroughBlobStore(t *testing.T) {
	ctx := context.Background()
	store := blob.NewMemory()

	info, err := WriteVTK(ctx, store, "exports/bob.vtk", testNet(t))
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if info.Key != "exports/bob.vtk" || info.Size == 0 {
		t.Fatalf("info = %+v", info)
	}
	if info.ContentType != "model/vnd.vtk" {
		t.Fatalf("content type = %q", info.ContentType)
	}

	got, rc, err := store.Get(ctx, "exports/bob.vtk")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer rc.Close()
	b, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.HasPrefix(string(b), "# vtk DataFile Version 3.0") {
		t.Fatal("stored artifact is not a VTK file")
	}
	if got.Metadata["network"] != "bob" {
		t.Fatalf("metadata = %+v", got.Metadata)
	}
}
