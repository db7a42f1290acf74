// Package core implements the key-addressed attribute store, the domain
// overlay, and the model registry for pore-network data.
package core

import (
	"fmt"
	"sort"
	"strings"

	"porecore/internal/topology"
	"porecore/pkg/network"
)

// Store is the dict-like attribute container. It owns one map per entity
// kind from property name to array and enforces the naming, broadcasting
// and shape rules on every write. Entity counts are derived from whatever
// arrays are present rather than declared up front.
//
// Store handles unrestricted keys only; domain-qualified addressing
// ("pore.seed@left") lives in the Domain overlay.
type Store struct {
	name    string
	uuid    string
	project *Project
	data    map[Element]map[string]*Array
}

func newStore() *Store {
	return &Store{
		data: map[Element]map[string]*Array{
			Pore:   {},
			Throat: {},
		},
	}
}

// Name returns the store's assigned name.
func (s *Store) Name() string { return s.name }

// UUID returns the store's identity assigned at construction.
func (s *Store) UUID() string { return s.uuid }

// Project returns the owning project, or nil for a free-standing store.
func (s *Store) Project() *Project { return s.project }

// Rename assigns a new name, validated against project siblings when the
// store belongs to one.
func (s *Store) Rename(name string) error {
	if name == s.name {
		return nil
	}
	if s.project != nil {
		if err := s.project.ValidateName(name); err != nil {
			return err
		}
	}
	s.name = name
	return nil
}

// Set writes value under key. A nil value is a no-op. A map value is
// decomposed into one write per sub-key ("pore.g" with {"a": 1} becomes
// "pore.g.a"); a failure partway leaves earlier sub-keys written. Scalars
// and slices are coerced to arrays with at least one dimension. Length-1
// arrays broadcast-fill to the kind's count; the first array stored for a
// kind establishes its count; any other leading length is a ShapeError.
// The seed keys pore.coords and throat.conns are stored unchecked.
func (s *Store) Set(key string, value any) error {
	if value == nil {
		return nil
	}
	if m, ok := value.(map[string]any); ok {
		subs := make([]string, 0, len(m))
		for sub := range m {
			subs = append(subs, sub)
		}
		sort.Strings(subs)
		for _, sub := range subs {
			if err := s.Set(key+"."+sub, m[sub]); err != nil {
				return err
			}
		}
		return nil
	}
	k, err := network.ParseKey(key)
	if err != nil {
		return err
	}
	if k.Qualified() {
		return AddressingError{Key: key, Reason: "domain-qualified writes go through the domain overlay"}
	}
	arr, err := network.AsArray(value)
	if err != nil {
		return AddressingError{Key: key, Reason: err.Error()}
	}
	return s.setArray(k, arr)
}

func (s *Store) setArray(k Key, arr *Array) error {
	canonical := k.String()
	if canonical == k.Element.SeedKey() {
		s.data[k.Element][k.Prop] = arr
		return nil
	}
	n, counted := s.Count(k.Element)
	switch {
	case !counted:
		// First array of this kind: it establishes the count.
		s.data[k.Element][k.Prop] = arr
	case arr.Len() == 1:
		full, err := arr.BroadcastTo(n)
		if err != nil {
			return err
		}
		s.data[k.Element][k.Prop] = full
	case arr.Len() == n:
		s.data[k.Element][k.Prop] = arr
	default:
		return ShapeError{Key: canonical, Got: arr.Len(), Want: n}
	}
	return nil
}

// Get resolves key to a stored leaf array, or to a map of leaf arrays when
// the key names a nested group. A miss on the store's own name lazily
// creates the all-true self-labels first (see EnsureSelfLabel). A key with
// neither an exact nor a group match fails with KeyNotFoundError.
func (s *Store) Get(key string) (any, error) {
	k, err := network.ParseKey(key)
	if err != nil {
		return nil, err
	}
	if k.Qualified() {
		return nil, AddressingError{Key: key, Reason: "domain-qualified reads go through the domain overlay"}
	}
	if arr, ok := s.data[k.Element][k.Prop]; ok {
		return arr, nil
	}
	if s.name != "" && k.Prop == s.name {
		s.EnsureSelfLabel()
		if arr, ok := s.data[k.Element][k.Prop]; ok {
			return arr, nil
		}
	}
	group := s.group(k)
	if len(group) > 0 {
		return group, nil
	}
	return nil, KeyNotFoundError{Key: key}
}

func (s *Store) group(k Key) map[string]*Array {
	prefix := k.Prop + "."
	out := map[string]*Array{}
	for prop, arr := range s.data[k.Element] {
		if strings.HasPrefix(prop, prefix) {
			out[string(k.Element)+"."+prop] = arr
		}
	}
	return out
}

// GetArray resolves a key that must address a single leaf array. A group
// match is an addressing error; a miss is KeyNotFoundError.
func (s *Store) GetArray(key string) (*Array, error) {
	v, err := s.Get(key)
	if err != nil {
		return nil, err
	}
	arr, ok := v.(*Array)
	if !ok {
		return nil, AddressingError{Key: key, Reason: "key addresses a nested group, not a leaf array"}
	}
	return arr, nil
}

// Delete removes an exact leaf key, or every leaf under a group key. It
// fails with KeyNotFoundError when neither matches.
func (s *Store) Delete(key string) error {
	k, err := network.ParseKey(key)
	if err != nil {
		return err
	}
	if _, ok := s.data[k.Element][k.Prop]; ok {
		delete(s.data[k.Element], k.Prop)
		return nil
	}
	group := s.group(k)
	if len(group) == 0 {
		return KeyNotFoundError{Key: key}
	}
	for full := range group {
		gk, err := network.ParseKey(full)
		if err != nil {
			return err
		}
		delete(s.data[gk.Element], gk.Prop)
	}
	return nil
}

// Keys returns every stored leaf key in sorted order.
func (s *Store) Keys() []string {
	var out []string
	for _, el := range network.Elements() {
		for prop := range s.data[el] {
			out = append(out, string(el)+"."+prop)
		}
	}
	sort.Strings(out)
	return out
}

// Has reports whether an exact leaf key is stored.
func (s *Store) Has(key string) bool {
	k, err := network.ParseKey(key)
	if err != nil {
		return false
	}
	_, ok := s.data[k.Element][k.Prop]
	return ok
}

// EnsureSelfLabel creates the store's own all-true labels ("pore.<name>",
// "throat.<name>") for every kind with an established count, representing
// the whole collection as a domain. It is the one deliberate side effect a
// read can trigger: Get invokes it when a miss names the store itself.
func (s *Store) EnsureSelfLabel() {
	if s.name == "" {
		return
	}
	for _, el := range network.Elements() {
		n, counted := s.Count(el)
		if !counted {
			continue
		}
		if _, ok := s.data[el][s.name]; !ok {
			s.data[el][s.name] = network.TrueFull(n)
		}
	}
}

// Count returns the entity count for a kind: the leading length of any
// array stored under the kind's prefix. The second result is false while
// no such array exists. The kind's seed array wins when present so a
// replaced topology re-anchors the count.
func (s *Store) Count(el Element) (int, bool) {
	props := s.data[el]
	if len(props) == 0 {
		return 0, false
	}
	seed := strings.TrimPrefix(el.SeedKey(), string(el)+".")
	if arr, ok := props[seed]; ok {
		return arr.Len(), true
	}
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)
	return props[names[0]].Len(), true
}

// Np returns the pore count (0 while undefined).
func (s *Store) Np() int {
	n, _ := s.Count(Pore)
	return n
}

// Nt returns the throat count (0 while undefined).
func (s *Store) Nt() int {
	n, _ := s.Count(Throat)
	return n
}

// Ps returns the pore index sequence 0..Np-1.
func (s *Store) Ps() []int {
	return indexSeq(s.Np())
}

// Ts returns the throat index sequence 0..Nt-1.
func (s *Store) Ts() []int {
	return indexSeq(s.Nt())
}

func indexSeq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// ToMask converts an index list into a boolean mask sized to the kind's
// count.
func (s *Store) ToMask(el Element, indices []int) (*Array, error) {
	n, counted := s.Count(el)
	if !counted {
		return nil, fmt.Errorf("count of %s is not established", el)
	}
	mask := make([]bool, n)
	for _, i := range indices {
		if i < 0 || i >= n {
			return nil, fmt.Errorf("index %d out of range for %d %ss", i, n, el)
		}
		mask[i] = true
	}
	return network.NewBools(mask), nil
}

// ToIndices converts a boolean mask into the list of true positions.
func (s *Store) ToIndices(mask *Array) ([]int, error) {
	bools, err := mask.Bools()
	if err != nil {
		return nil, err
	}
	var out []int
	for i, b := range bools {
		if b {
			out = append(out, i)
		}
	}
	return out, nil
}

// Props lists every non-boolean leaf key, restricted to the given kinds
// (both kinds when none are named), in sorted order.
func (s *Store) Props(elements ...Element) []string {
	if len(elements) == 0 {
		elements = network.Elements()
	}
	var out []string
	for _, el := range elements {
		for prop, arr := range s.data[el] {
			if arr.DType() != network.Bool {
				out = append(out, string(el)+"."+prop)
			}
		}
	}
	sort.Strings(out)
	return out
}

// Labels lists every boolean leaf key, restricted to the given kinds, in
// sorted order.
func (s *Store) Labels(elements ...Element) []string {
	if len(elements) == 0 {
		elements = network.Elements()
	}
	var out []string
	for _, el := range elements {
		for prop, arr := range s.data[el] {
			if arr.DType() == network.Bool {
				out = append(out, string(el)+"."+prop)
			}
		}
	}
	sort.Strings(out)
	return out
}

// Conns returns the throat connectivity table decoded from throat.conns.
func (s *Store) Conns() ([][2]int, error) {
	arr, err := s.GetArray("throat.conns")
	if err != nil {
		return nil, err
	}
	shape := arr.Shape()
	if len(shape) != 2 || shape[1] != 2 {
		return nil, fmt.Errorf("throat.conns has shape %v, want [Nt 2]", shape)
	}
	out := make([][2]int, shape[0])
	for i := range out {
		row := arr.IntRow(i)
		out[i] = [2]int{int(row[0]), int(row[1])}
	}
	return out, nil
}

// InterpolateData derives values for one kind from the neighboring
// entities of the other: a throat property yields pore values aggregated
// over each pore's incident throats, and a pore property yields throat
// values aggregated over each throat's two endpoints. mode selects the
// aggregation (mean, min, max, sum).
func (s *Store) InterpolateData(prop string, mode string) (*Array, error) {
	k, err := network.ParseKey(prop)
	if err != nil {
		return nil, err
	}
	arr, err := s.GetArray(prop)
	if err != nil {
		return nil, err
	}
	conns, err := s.Conns()
	if err != nil {
		return nil, err
	}
	m, err := topology.ParseMode(mode)
	if err != nil {
		return nil, err
	}
	if k.Element == Throat {
		return topology.PoresFromThroats(conns, arr, s.Np(), m)
	}
	return topology.ThroatsFromPores(conns, arr, m)
}

// GetConduitData assembles the N×3 conduit table [pore1, throat, pore2]
// for a property. Bare names are prefixed; an empty throat property
// defaults to the throat counterpart of the pore property. Whichever side
// is missing from the store is derived with InterpolateData; when both are
// missing the lookup error propagates.
func (s *Store) GetConduitData(poreProp, throatProp, mode string) (*Array, error) {
	if !strings.HasPrefix(poreProp, "pore.") {
		poreProp = "pore." + poreProp
	}
	if throatProp == "" {
		throatProp = "throat." + strings.TrimPrefix(poreProp, "pore.")
	}
	if !strings.HasPrefix(throatProp, "throat.") {
		throatProp = "throat." + throatProp
	}
	conns, err := s.Conns()
	if err != nil {
		return nil, err
	}

	var pores, throats *Array
	throats, terr := s.GetArray(throatProp)
	if terr == nil {
		pores, err = s.GetArray(poreProp)
		if err != nil {
			if pores, err = s.InterpolateData(throatProp, mode); err != nil {
				return nil, err
			}
		}
	} else {
		if pores, err = s.GetArray(poreProp); err != nil {
			return nil, err
		}
		if throats, err = s.InterpolateData(poreProp, mode); err != nil {
			return nil, err
		}
	}

	pv, err := pores.Floats()
	if err != nil {
		return nil, err
	}
	tv, err := throats.Floats()
	if err != nil {
		return nil, err
	}
	flat := make([]float64, 0, len(conns)*3)
	for i, c := range conns {
		flat = append(flat, pv[c[0]], tv[i], pv[c[1]])
	}
	out := network.NewFloats(flat)
	return out.Reshape(len(conns), 3)
}
