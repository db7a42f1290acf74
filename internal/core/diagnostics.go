package core

import (
	"fmt"
	"strings"

	"porecore/pkg/network"
)

const horizontalRule = "―"

// String renders the diagnostics table: every property key in sorted
// order with its defined-versus-required entry counts. Numeric arrays
// count NaN rows as undefined; object arrays count nil entries.
func (s *Store) String() string {
	rule := strings.Repeat(horizontalRule, 78)
	lines := []string{
		rule,
		fmt.Sprintf("porecore.Domain : %s", s.name),
		rule,
		fmt.Sprintf("%-5s %-45s %-10s", "#", "Properties", "Valid Values"),
		rule,
	}
	for i, key := range s.Props() {
		k, err := network.ParseKey(key)
		if err != nil {
			continue
		}
		if strings.Contains(key, "._") {
			continue
		}
		required, _ := s.Count(k.Element)
		arr := s.data[k.Element][k.Prop]
		name := key
		if len(name) > 35 {
			name = name[:32] + "..."
		}
		lines = append(lines, fmt.Sprintf("%-5d %-45s %5d / %-5d", i+1, name, arr.DefinedRows(), required))
	}
	lines = append(lines, rule)
	return strings.Join(lines, "\n")
}

// PropertyHealth summarizes one property for programmatic inspection.
type PropertyHealth struct {
	Key      string
	Defined  int
	Required int
}

// Summary returns the diagnostics rows behind String.
func (s *Store) Summary() []PropertyHealth {
	var out []PropertyHealth
	for _, key := range s.Props() {
		k, err := network.ParseKey(key)
		if err != nil {
			continue
		}
		required, _ := s.Count(k.Element)
		arr := s.data[k.Element][k.Prop]
		out = append(out, PropertyHealth{Key: key, Defined: arr.DefinedRows(), Required: required})
	}
	return out
}
