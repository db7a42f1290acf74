package core

import (
	"encoding/json"
	"strings"
	"time"

	"porecore/pkg/network"
)

// ModelSpec is one registry entry: the model value (which carries its own
// typed configuration) and the regeneration tag.
type ModelSpec struct {
	Model     Model
	RegenMode RegenMode
}

type registryEntry struct {
	name string // qualified: element.prop or element.prop@domain
	spec ModelSpec
}

// Registry is the insertion-ordered mapping from qualified property name
// to model specification. Regeneration executes in registration order; no
// dependency graph is computed, so dependencies must be registered before
// their dependents.
type Registry struct {
	target  *Domain
	entries []registryEntry
	index   map[string]int
	metrics MetricsRecorder
}

func newRegistry(target *Domain) *Registry {
	return &Registry{target: target, index: make(map[string]int)}
}

// SetMetrics installs a recorder observing every model run. A nil recorder
// disables recording.
func (r *Registry) SetMetrics(rec MetricsRecorder) { r.metrics = rec }

// AddModel registers model under propname, qualified by the trailing
// segment of domain when one is given ("pore.left" and "left" both yield
// "@left"). mode defaults to RegenNormal. Re-registering a qualified name
// replaces the previous entry wholesale; entries are never implicitly
// removed.
func (r *Registry) AddModel(propname string, model Model, domain string, mode RegenMode) error {
	k, err := network.ParseKey(propname)
	if err != nil {
		return err
	}
	if k.Qualified() {
		return AddressingError{Key: propname, Reason: "spell the domain as a separate argument"}
	}
	if mode == "" {
		mode = RegenNormal
	}
	name := k.String()
	if domain != "" {
		name += "@" + network.TrailingSegment(domain)
	}
	spec := ModelSpec{Model: model, RegenMode: mode}
	if i, ok := r.index[name]; ok {
		r.entries[i].spec = spec
		return nil
	}
	r.index[name] = len(r.entries)
	r.entries = append(r.entries, registryEntry{name: name, spec: spec})
	return nil
}

// Names returns the qualified names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.name
	}
	return out
}

// Spec returns the entry registered under the qualified name.
func (r *Registry) Spec(name string) (ModelSpec, bool) {
	i, ok := r.index[name]
	if !ok {
		return ModelSpec{}, false
	}
	return r.entries[i].spec, true
}

// Records renders the registry as ordered model records for persistence:
// qualified name, regen tag, and the model's typed configuration as JSON.
func (r *Registry) Records() []ModelRecord {
	out := make([]ModelRecord, 0, len(r.entries))
	for _, e := range r.entries {
		rec := ModelRecord{Name: e.name, RegenMode: e.spec.RegenMode}
		if cfg, err := json.Marshal(e.spec.Model); err == nil {
			rec.Config = cfg
		}
		out = append(out, rec)
	}
	return out
}

// RegenerateModels executes every registered entry once, in registration
// order. The first failure aborts the remaining sequence.
func (r *Registry) RegenerateModels() error {
	for _, e := range r.entries {
		if err := r.runEntry(e.name); err != nil {
			return err
		}
	}
	return nil
}

// RunModel executes one registration. The three forms:
//
//   - bare name, registered globally: the model output overwrites the
//     property in full;
//   - bare name with only @-qualified registrations: every matching
//     domain registration runs in turn (lazy fan-out);
//   - explicit domain (as an argument or inline "prop@domain"): the
//     output is scattered into the label's positions only, allocating a
//     NaN-seeded full array on first write.
func (r *Registry) RunModel(propname string, domain string) error {
	if domain == "" {
		if base, dom, ok := strings.Cut(propname, "@"); ok {
			return r.RunModel(base, dom)
		}
		if _, ok := r.index[propname]; ok {
			return r.runEntry(propname)
		}
		prefix := propname + "@"
		ran := false
		for _, e := range r.entries {
			if strings.HasPrefix(e.name, prefix) {
				if err := r.runEntry(e.name); err != nil {
					return err
				}
				ran = true
			}
		}
		if !ran {
			return ModelNotFoundError{Name: propname}
		}
		return nil
	}
	base, _, _ := strings.Cut(propname, "@")
	return r.runEntry(base + "@" + network.TrailingSegment(domain))
}

func (r *Registry) runEntry(name string) error {
	start := time.Now()
	err := r.execute(name)
	if r.metrics != nil {
		r.metrics.ObserveModelRun(name, time.Since(start), err)
	}
	return err
}

func (r *Registry) execute(name string) error {
	i, ok := r.index[name]
	if !ok {
		return ModelNotFoundError{Name: name}
	}
	spec := r.entries[i].spec
	base, dom, qualified := strings.Cut(name, "@")
	k, err := network.ParseKey(base)
	if err != nil {
		return err
	}

	if !qualified {
		vals, err := spec.Model.Evaluate(r.target, "")
		if err != nil {
			return err
		}
		return r.target.Store.Set(base, vals)
	}

	labelKey := string(k.Element) + "." + dom
	vals, err := spec.Model.Evaluate(r.target, labelKey)
	if err != nil {
		return err
	}
	label, err := r.target.Store.GetArray(labelKey)
	if err != nil {
		return err
	}
	mask, err := label.Bools()
	if err != nil {
		return AddressingError{Key: name, Reason: "domain " + dom + " is not a boolean label"}
	}
	full, err := r.target.Store.GetArray(base)
	if network.IsKeyNotFound(err) {
		full = seedFor(vals, len(mask))
		if err := r.target.Store.Set(base, full); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}
	return full.Scatter(mask, vals)
}
