package network

import (
	"encoding/json"
	"fmt"
)

// ArrayRecord is the serialized form of an Array: one populated payload
// slice according to the dtype, alongside the shape.
type ArrayRecord struct {
	DType  DType     `json:"dtype"`
	Shape  []int     `json:"shape"`
	Floats []float64 `json:"floats,omitempty"`
	Ints   []int64   `json:"ints,omitempty"`
	Bools  []bool    `json:"bools,omitempty"`
}

// ModelRecord is the serialized form of a registered model specification:
// the qualified name, the regeneration tag, and the model's typed
// configuration marshaled as JSON. Callables themselves are not persisted;
// callers rehydrate them by re-registering against the recorded config.
type ModelRecord struct {
	Name      string          `json:"name"`
	RegenMode RegenMode       `json:"regen_mode"`
	Config    json.RawMessage `json:"config,omitempty"`
}

// Snapshot is the persisted state layout of one store: every leaf key
// mapped to its array plus the ordered model specifications.
type Snapshot struct {
	Name   string                 `json:"name"`
	UUID   string                 `json:"uuid,omitempty"`
	Arrays map[string]ArrayRecord `json:"arrays"`
	Models []ModelRecord          `json:"models,omitempty"`
}

// Record converts the array to its serialized form. Object arrays are not
// representable and are rejected.
func (a *Array) Record() (ArrayRecord, error) {
	rec := ArrayRecord{DType: a.dtype, Shape: a.Shape()}
	switch a.dtype {
	case Float64:
		rec.Floats = append([]float64(nil), a.floats...)
	case Int64:
		rec.Ints = append([]int64(nil), a.ints...)
	case Bool:
		rec.Bools = append([]bool(nil), a.bools...)
	default:
		return ArrayRecord{}, fmt.Errorf("dtype %s cannot be serialized", a.dtype)
	}
	return rec, nil
}

// FromRecord rebuilds an array from its serialized form.
func FromRecord(rec ArrayRecord) (*Array, error) {
	a := &Array{dtype: rec.DType, shape: append([]int(nil), rec.Shape...)}
	var n int
	switch rec.DType {
	case Float64:
		a.floats = append([]float64(nil), rec.Floats...)
		n = len(a.floats)
	case Int64:
		a.ints = append([]int64(nil), rec.Ints...)
		n = len(a.ints)
	case Bool:
		a.bools = append([]bool(nil), rec.Bools...)
		n = len(a.bools)
	default:
		return nil, fmt.Errorf("unknown dtype %q", rec.DType)
	}
	if n != sizeOf(a.shape) {
		return nil, fmt.Errorf("payload size %d does not match shape %v", n, a.shape)
	}
	return a, nil
}
