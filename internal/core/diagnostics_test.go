package core

import (
	"strings"
	"testing"
)

func TestStringRendersHealthTable(t *testing.T) {
	net := cubicNet(t, "bob")
	if err := net.Set("pore.seed@left", []float64{0.1, 0.2, 0.3}); err != nil {
		t.Fatalf("set: %v", err)
	}
	out := net.String()
	if !strings.Contains(out, "porecore.Domain : bob") {
		t.Fatalf("missing header:\n%s", out)
	}
	if !strings.Contains(out, "pore.seed") {
		t.Fatalf("missing property row:\n%s", out)
	}
	if !strings.Contains(out, "3 / 9") {
		t.Fatalf("missing defined/required counts:\n%s", out)
	}
}

func TestStringSkipsPrivateKeys(t *testing.T) {
	net := cubicNet(t, "bob")
	if err := net.Set("pore._scratch", 1.0); err != nil {
		t.Fatalf("set: %v", err)
	}
	if strings.Contains(net.String(), "_scratch") {
		t.Fatal("underscore-prefixed keys must be hidden from the table")
	}
}

func TestStringTrimsLongNames(t *testing.T) {
	net := cubicNet(t, "bob")
	long := "pore.a_very_long_nested.property.name.that.overflows"
	if err := net.Set(long, 1.0); err != nil {
		t.Fatalf("set: %v", err)
	}
	out := net.String()
	if strings.Contains(out, long) {
		t.Fatal("overlong key was not trimmed")
	}
	if !strings.Contains(out, "...") {
		t.Fatal("trimmed key lost its ellipsis")
	}
}

func TestSummary(t *testing.T) {
	net := cubicNet(t, "bob")
	if err := net.Set("pore.seed@right", 0.9); err != nil {
		t.Fatalf("set: %v", err)
	}
	var seed *PropertyHealth
	sum := net.Summary()
	for i := range sum {
		if sum[i].Key == "pore.seed" {
			seed = &sum[i]
		}
	}
	if seed == nil {
		t.Fatal("pore.seed missing from summary")
	}
	if seed.Defined != 3 || seed.Required != 9 {
		t.Fatalf("health = %+v", *seed)
	}
}
