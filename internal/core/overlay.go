package core

import (
	"github.com/google/uuid"

	"porecore/pkg/network"
)

// Domain layers @domain addressing over a Store and carries the model
// registry. A domain-qualified key "pore.seed@left" restricts the property
// "pore.seed" to the subset where the boolean label "pore.left" is true:
// reads gather the masked slice, writes scatter into the full-length array,
// auto-creating it on first write. Both the fully qualified ("@pore.left")
// and abbreviated ("@left") domain spellings are accepted.
type Domain struct {
	*Store
	Models *Registry
}

// NewDomain constructs a store registered with the given project. An empty
// name is generated from the project; a non-empty one is validated against
// siblings. A nil project yields a free-standing store (the name is then
// taken as given).
func NewDomain(project *Project, name string) (*Domain, error) {
	d := &Domain{Store: newStore()}
	d.Models = newRegistry(d)
	d.uuid = uuid.NewString()
	d.project = project
	if project != nil {
		if name == "" {
			name = project.GenerateName("net")
		} else if err := project.ValidateName(name); err != nil {
			return nil, err
		}
		project.register(d)
	}
	d.name = name
	return d, nil
}

// MustDomain is NewDomain for contexts where the name is known-valid.
func MustDomain(project *Project, name string) *Domain {
	d, err := NewDomain(project, name)
	if err != nil {
		panic(err)
	}
	return d
}

// Get resolves key, gathering through the domain label when the key is
// qualified. The label must exist (or be the lazily created self-label)
// and so must the full property array: there is no auto-vivification on
// read.
func (d *Domain) Get(key string) (any, error) {
	k, err := network.ParseKey(key)
	if err != nil {
		return nil, err
	}
	if !k.Qualified() {
		return d.Store.Get(key)
	}
	mask, err := d.labelMask(k)
	if err != nil {
		return nil, err
	}
	full, err := d.Store.GetArray(k.Base().String())
	if err != nil {
		return nil, err
	}
	return full.Gather(mask)
}

// GetArray is Get restricted to a single leaf array result.
func (d *Domain) GetArray(key string) (*Array, error) {
	v, err := d.Get(key)
	if err != nil {
		return nil, err
	}
	arr, ok := v.(*Array)
	if !ok {
		return nil, AddressingError{Key: key, Reason: "key addresses a nested group, not a leaf array"}
	}
	return arr, nil
}

// Set writes value under key, scattering through the domain label when the
// key is qualified. The first qualified write of a property auto-creates
// the full-length array sized to the kind's count: all-false for boolean
// values, all-NaN for numeric ones, with the trailing shape taken from the
// value. Positions outside the domain keep their prior (or seed) values;
// the full array never shrinks.
func (d *Domain) Set(key string, value any) error {
	if value == nil {
		return nil
	}
	k, err := network.ParseKey(key)
	if err != nil {
		return err
	}
	if !k.Qualified() {
		return d.Store.Set(key, value)
	}
	arr, err := network.AsArray(value)
	if err != nil {
		return AddressingError{Key: key, Reason: err.Error()}
	}
	mask, err := d.labelMask(k)
	if err != nil {
		return err
	}
	base := k.Base().String()
	full, err := d.Store.GetArray(base)
	if network.IsKeyNotFound(err) {
		full = seedFor(arr, len(mask))
		if err := d.Store.Set(base, full); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}
	return full.Scatter(mask, arr)
}

// seedFor allocates the full-length backing array for a first domain
// write: boolean values seed all-false, everything else seeds all-NaN,
// with the trailing shape carried over from the incoming value.
func seedFor(value *Array, n int) *Array {
	shape := append([]int{n}, value.TrailingShape()...)
	if value.DType() == network.Bool {
		return network.FalseFull(shape...)
	}
	return network.NaNFull(shape...)
}

// labelMask resolves the key's domain to its boolean label array. Reading
// the label goes through the base store so the self-label lazily appears
// when the domain names the store itself.
func (d *Domain) labelMask(k Key) ([]bool, error) {
	label, err := d.Store.GetArray(k.Label().String())
	if err != nil {
		return nil, err
	}
	mask, err := label.Bools()
	if err != nil {
		return nil, AddressingError{Key: k.String(), Reason: "domain " + k.Domain + " is not a boolean label"}
	}
	return mask, nil
}

// Delete removes an unrestricted key (exact or group). Qualified keys are
// not deletable: the restriction addresses a slice, not a stored entry.
func (d *Domain) Delete(key string) error {
	k, err := network.ParseKey(key)
	if err != nil {
		return err
	}
	if k.Qualified() {
		return AddressingError{Key: key, Reason: "cannot delete a domain-restricted slice"}
	}
	return d.Store.Delete(key)
}

// Resolve returns value coerced to an array when it is a literal, or the
// stored array it addresses when it is a string key. Models use it so a
// parameter may be spelled either as "pore.seed" or as a plain number.
func (d *Domain) Resolve(value any) (*Array, error) {
	if key, ok := value.(string); ok {
		return d.GetArray(key)
	}
	return network.AsArray(value)
}

var _ network.Target = (*Domain)(nil)
