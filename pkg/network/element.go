// Package network defines the typed primitives shared by the pore-network
// attribute store: entity kinds, structured property keys, the array value
// type, the model contract, and the error taxonomy.
package network

// Element identifies one of the two fixed entity kinds managed by a store.
type Element string

const (
	// Pore is the node kind of the network.
	Pore Element = "pore"
	// Throat is the connector kind of the network.
	Throat Element = "throat"
)

// Elements lists the two kinds in their canonical order.
func Elements() []Element {
	return []Element{Pore, Throat}
}

// ParseElement validates a raw kind prefix.
func ParseElement(s string) (Element, error) {
	switch Element(s) {
	case Pore, Throat:
		return Element(s), nil
	default:
		return "", AddressingError{Key: s, Reason: "element must be pore or throat"}
	}
}

// Other returns the opposite kind.
func (e Element) Other() Element {
	if e == Pore {
		return Throat
	}
	return Pore
}

func (e Element) String() string { return string(e) }

// SeedKey returns the count-defining key for the kind: pore.coords for
// pores and throat.conns for throats. These keys are exempt from length
// checks at write time because they establish the counts.
func (e Element) SeedKey() string {
	if e == Pore {
		return "pore.coords"
	}
	return "throat.conns"
}
