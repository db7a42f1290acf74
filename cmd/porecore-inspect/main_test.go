package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunPrintsHealthTable(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-name", "demo", "-seed", "3"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, stderr.String())
	}
	out := stdout.String()
	if !strings.Contains(out, "porecore.Domain : demo") {
		t.Fatalf("missing header in output:\n%s", out)
	}
	for _, prop := range []string{"pore.seed", "pore.diameter", "throat.length"} {
		if !strings.Contains(out, prop) {
			t.Fatalf("missing %s row in output:\n%s", prop, out)
		}
	}
}

func TestRunExportsAndPersists(t *testing.T) {
	t.Setenv("PORECORE_BLOB_DRIVER", "memory")
	dbPath := filepath.Join(t.TempDir(), "state.db")

	var stdout, stderr bytes.Buffer
	code := run([]string{"-name", "demo", "-export", "exports/demo.vtk", "-db", dbPath}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, stderr.String())
	}
	out := stdout.String()
	if !strings.Contains(out, "exported exports/demo.vtk") {
		t.Fatalf("missing export confirmation:\n%s", out)
	}
	if !strings.Contains(out, "saved snapshot \"demo\"") {
		t.Fatalf("missing snapshot confirmation:\n%s", out)
	}
}

func TestRunRejectsBadFlags(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-nx", "notanumber"}, &stdout, &stderr); code != 2 {
		t.Fatalf("exit code %d, want 2", code)
	}
}

func TestRunRejectsBadLattice(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-nx", "0"}, &stdout, &stderr); code != 1 {
		t.Fatalf("exit code %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "porecore-inspect:") {
		t.Fatalf("stderr = %q", stderr.String())
	}
}
