package network

import "strings"

// Key is the parsed form of a structured property key. Raw strings such as
// "pore.seed@left" are decoded once at the API boundary; internal code
// passes Key values around instead of re-splitting strings.
//
// Prop may itself contain dots, which makes the key part of a nested group
// ("pore.nested.name1"). Domain is empty for unrestricted keys. A domain
// spelled in its fully qualified form ("@pore.left") is abbreviated to its
// trailing segment ("left"), so both spellings address the same label.
type Key struct {
	Element Element
	Prop    string
	Domain  string
}

// ParseKey decodes a raw key string into its element, property and optional
// domain parts. It fails with AddressingError when the string has no dot
// separator or when the element prefix is not pore or throat.
func ParseKey(raw string) (Key, error) {
	head, rest, ok := strings.Cut(raw, ".")
	if !ok {
		return Key{}, AddressingError{Key: raw, Reason: "key must be of the form element.property"}
	}
	element, err := ParseElement(head)
	if err != nil {
		return Key{}, AddressingError{Key: raw, Reason: "element must be pore or throat"}
	}
	prop, domain, _ := strings.Cut(rest, "@")
	if prop == "" {
		return Key{}, AddressingError{Key: raw, Reason: "empty property name"}
	}
	return Key{Element: element, Prop: prop, Domain: TrailingSegment(domain)}, nil
}

// TrailingSegment reduces a possibly dotted domain spelling to its
// discriminating last segment ("pore.left" -> "left").
func TrailingSegment(domain string) string {
	if domain == "" {
		return ""
	}
	if i := strings.LastIndex(domain, "."); i >= 0 {
		return domain[i+1:]
	}
	return domain
}

// String renders the canonical spelling of the key.
func (k Key) String() string {
	s := string(k.Element) + "." + k.Prop
	if k.Domain != "" {
		s += "@" + k.Domain
	}
	return s
}

// Base returns the key with any domain restriction stripped.
func (k Key) Base() Key {
	return Key{Element: k.Element, Prop: k.Prop}
}

// Label returns the key of the boolean label backing the domain
// restriction, e.g. pore.seed@left -> pore.left.
func (k Key) Label() Key {
	return Key{Element: k.Element, Prop: k.Domain}
}

// Qualified reports whether the key carries a domain restriction.
func (k Key) Qualified() bool { return k.Domain != "" }

// Child returns the key for a sub-property inside a nested group.
func (k Key) Child(sub string) Key {
	return Key{Element: k.Element, Prop: k.Prop + "." + sub, Domain: k.Domain}
}
