package network

import (
	"errors"
	"testing"
)

func TestParseKey(t *testing.T) {
	cases := []struct {
		raw  string
		want Key
	}{
		{"pore.diameter", Key{Element: Pore, Prop: "diameter"}},
		{"throat.conns", Key{Element: Throat, Prop: "conns"}},
		{"pore.hydraulic.size.factors", Key{Element: Pore, Prop: "hydraulic.size.factors"}},
		{"pore.seed@left", Key{Element: Pore, Prop: "seed", Domain: "left"}},
		{"pore.seed@pore.left", Key{Element: Pore, Prop: "seed", Domain: "left"}},
		{"throat.length@boundary", Key{Element: Throat, Prop: "length", Domain: "boundary"}},
	}
	for _, tc := range cases {
		got, err := ParseKey(tc.raw)
		if err != nil {
			t.Fatalf("ParseKey(%q): %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("ParseKey(%q) = %+v, want %+v", tc.raw, got, tc.want)
		}
	}
}

func TestParseKeyRejectsMalformed(t *testing.T) {
	for _, raw := range []string{"", "diameter", "solid.density", "pore.", ".diameter"} {
		if _, err := ParseKey(raw); err == nil {
			t.Fatalf("ParseKey(%q) accepted a malformed key", raw)
		} else {
			var addr AddressingError
			if !errors.As(err, &addr) {
				t.Fatalf("ParseKey(%q) error %T, want AddressingError", raw, err)
			}
		}
	}
}

func TestKeyString(t *testing.T) {
	k := Key{Element: Pore, Prop: "seed", Domain: "left"}
	if got := k.String(); got != "pore.seed@left" {
		t.Fatalf("String() = %q", got)
	}
	if got := k.Base().String(); got != "pore.seed" {
		t.Fatalf("Base() = %q", got)
	}
	if got := k.Label().String(); got != "pore.left" {
		t.Fatalf("Label() = %q", got)
	}
	if !k.Qualified() {
		t.Fatal("Qualified() = false for a domain-qualified key")
	}
	bare := Key{Element: Throat, Prop: "conns"}
	if bare.Qualified() {
		t.Fatal("Qualified() = true for a bare key")
	}
	if got := bare.String(); got != "throat.conns" {
		t.Fatalf("String() = %q", got)
	}
}

func TestKeyChild(t *testing.T) {
	k := Key{Element: Pore, Prop: "hydraulic"}
	child := k.Child("factors")
	if child.Prop != "hydraulic.factors" {
		t.Fatalf("Child() prop = %q", child.Prop)
	}
}

func TestTrailingSegment(t *testing.T) {
	cases := map[string]string{
		"left":            "left",
		"pore.left":       "left",
		"pore.front.edge": "edge",
	}
	for in, want := range cases {
		if got := TrailingSegment(in); got != want {
			t.Fatalf("TrailingSegment(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseElement(t *testing.T) {
	if el, err := ParseElement("pore"); err != nil || el != Pore {
		t.Fatalf("ParseElement(pore) = %v, %v", el, err)
	}
	if el, err := ParseElement("throat"); err != nil || el != Throat {
		t.Fatalf("ParseElement(throat) = %v, %v", el, err)
	}
	if _, err := ParseElement("solid"); err == nil {
		t.Fatal("ParseElement(solid) accepted an unknown element")
	}
	if Pore.Other() != Throat || Throat.Other() != Pore {
		t.Fatal("Other() does not swap kinds")
	}
}
