package network

import (
	"fmt"
	"math"
)

// DType identifies the element type carried by an Array.
type DType string

const (
	// Float64 is the numeric dtype. Missing entries are NaN.
	Float64 DType = "float64"
	// Int64 is the integer dtype used for index tables such as throat.conns.
	Int64 DType = "int64"
	// Bool is the label dtype.
	Bool DType = "bool"
	// Object is the heterogeneous dtype. Missing entries are nil.
	Object DType = "object"
)

// Array is an n-dimensional value attached to one entity kind. The first
// axis runs over entities; trailing axes carry per-entity structure
// (e.g. pore.coords is [Np,3]). Scalars are promoted to shape [1] on
// construction so every array has at least one dimension.
//
// Exactly one backing slice is populated according to the dtype. Data is
// stored flat in row-major order.
type Array struct {
	dtype   DType
	shape   []int
	floats  []float64
	ints    []int64
	bools   []bool
	objects []any
}

// NewFloats builds a one-dimensional numeric array.
func NewFloats(vals []float64) *Array {
	return &Array{dtype: Float64, shape: []int{len(vals)}, floats: vals}
}

// NewInts builds a one-dimensional integer array.
func NewInts(vals []int64) *Array {
	return &Array{dtype: Int64, shape: []int{len(vals)}, ints: vals}
}

// NewBools builds a one-dimensional label array.
func NewBools(vals []bool) *Array {
	return &Array{dtype: Bool, shape: []int{len(vals)}, bools: vals}
}

// NewObjects builds a one-dimensional object array.
func NewObjects(vals []any) *Array {
	return &Array{dtype: Object, shape: []int{len(vals)}, objects: vals}
}

// Scalar promotes a single numeric value to a length-1 array.
func Scalar(v float64) *Array {
	return NewFloats([]float64{v})
}

// Reshape returns a view of the array with the given shape. The element
// count must be preserved.
func (a *Array) Reshape(shape ...int) (*Array, error) {
	n := 1
	for _, d := range shape {
		if d < 0 {
			return nil, fmt.Errorf("negative dimension %d", d)
		}
		n *= d
	}
	if n != a.Size() {
		return nil, fmt.Errorf("cannot reshape %d elements into %v", a.Size(), shape)
	}
	out := *a
	out.shape = append([]int(nil), shape...)
	return &out, nil
}

// NaNFull allocates a numeric array of the given shape seeded all-NaN.
func NaNFull(shape ...int) *Array {
	n := sizeOf(shape)
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = math.NaN()
	}
	return &Array{dtype: Float64, shape: append([]int(nil), shape...), floats: vals}
}

// FalseFull allocates a label array of the given shape seeded all-false.
func FalseFull(shape ...int) *Array {
	return &Array{dtype: Bool, shape: append([]int(nil), shape...), bools: make([]bool, sizeOf(shape))}
}

// TrueFull allocates a label array of the given shape seeded all-true.
func TrueFull(shape ...int) *Array {
	vals := make([]bool, sizeOf(shape))
	for i := range vals {
		vals[i] = true
	}
	return &Array{dtype: Bool, shape: append([]int(nil), shape...), bools: vals}
}

// FloatFull allocates a one-dimensional numeric array filled with v.
func FloatFull(n int, v float64) *Array {
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = v
	}
	return NewFloats(vals)
}

func sizeOf(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return n
}

// DType returns the element type.
func (a *Array) DType() DType { return a.dtype }

// Shape returns a copy of the dimensions.
func (a *Array) Shape() []int { return append([]int(nil), a.shape...) }

// Len returns the leading-axis length, the number of entities covered.
func (a *Array) Len() int {
	if len(a.shape) == 0 {
		return 0
	}
	return a.shape[0]
}

// Size returns the total element count.
func (a *Array) Size() int { return sizeOf(a.shape) }

// TrailingShape returns the per-entity dimensions (empty for 1-d arrays).
func (a *Array) TrailingShape() []int {
	if len(a.shape) <= 1 {
		return nil
	}
	return append([]int(nil), a.shape[1:]...)
}

// RowSize returns the number of elements per entity row.
func (a *Array) RowSize() int {
	if a.Len() == 0 {
		return sizeOf(a.shape[1:])
	}
	return a.Size() / a.Len()
}

// Clone returns a deep copy.
func (a *Array) Clone() *Array {
	cp := &Array{dtype: a.dtype, shape: append([]int(nil), a.shape...)}
	switch a.dtype {
	case Float64:
		cp.floats = append([]float64(nil), a.floats...)
	case Int64:
		cp.ints = append([]int64(nil), a.ints...)
	case Bool:
		cp.bools = append([]bool(nil), a.bools...)
	case Object:
		cp.objects = append([]any(nil), a.objects...)
	}
	return cp
}

// Floats returns a copy of the numeric backing data in row-major order.
func (a *Array) Floats() ([]float64, error) {
	if a.dtype != Float64 {
		return nil, fmt.Errorf("array is %s, not %s", a.dtype, Float64)
	}
	return append([]float64(nil), a.floats...), nil
}

// Ints returns a copy of the integer backing data.
func (a *Array) Ints() ([]int64, error) {
	if a.dtype != Int64 {
		return nil, fmt.Errorf("array is %s, not %s", a.dtype, Int64)
	}
	return append([]int64(nil), a.ints...), nil
}

// Bools returns a copy of the label backing data.
func (a *Array) Bools() ([]bool, error) {
	if a.dtype != Bool {
		return nil, fmt.Errorf("array is %s, not %s", a.dtype, Bool)
	}
	return append([]bool(nil), a.bools...), nil
}

// Objects returns a copy of the object backing data.
func (a *Array) Objects() ([]any, error) {
	if a.dtype != Object {
		return nil, fmt.Errorf("array is %s, not %s", a.dtype, Object)
	}
	return append([]any(nil), a.objects...), nil
}

// FloatAt returns element i of a one-dimensional numeric array.
func (a *Array) FloatAt(i int) float64 { return a.floats[i] }

// IntAt returns element i of a one-dimensional integer array.
func (a *Array) IntAt(i int) int64 { return a.ints[i] }

// BoolAt returns element i of a one-dimensional label array.
func (a *Array) BoolAt(i int) bool { return a.bools[i] }

// FloatRow returns entity row i of a numeric array.
func (a *Array) FloatRow(i int) []float64 {
	rs := a.RowSize()
	return append([]float64(nil), a.floats[i*rs:(i+1)*rs]...)
}

// IntRow returns entity row i of an integer array.
func (a *Array) IntRow(i int) []int64 {
	rs := a.RowSize()
	return append([]int64(nil), a.ints[i*rs:(i+1)*rs]...)
}

// CountTrue returns the number of true entries of a label array.
func (a *Array) CountTrue() int {
	n := 0
	for _, b := range a.bools {
		if b {
			n++
		}
	}
	return n
}

// DefinedRows counts the rows that carry a value: for numeric arrays the
// rows whose first component is not NaN, for object arrays the non-nil
// entries, and every row otherwise. Used by the diagnostics table.
func (a *Array) DefinedRows() int {
	switch a.dtype {
	case Float64:
		rs := a.RowSize()
		n := 0
		for i := 0; i < a.Len(); i++ {
			if !math.IsNaN(a.floats[i*rs]) {
				n++
			}
		}
		return n
	case Object:
		n := 0
		for _, v := range a.objects {
			if v != nil {
				n++
			}
		}
		return n
	default:
		return a.Len()
	}
}

// BroadcastTo replicates a length-1 array along the leading axis to n rows.
func (a *Array) BroadcastTo(n int) (*Array, error) {
	if a.Len() != 1 {
		return nil, fmt.Errorf("cannot broadcast array of length %d", a.Len())
	}
	shape := append([]int{n}, a.shape[1:]...)
	out := &Array{dtype: a.dtype, shape: shape}
	rs := a.RowSize()
	switch a.dtype {
	case Float64:
		out.floats = make([]float64, n*rs)
		for i := 0; i < n; i++ {
			copy(out.floats[i*rs:], a.floats)
		}
	case Int64:
		out.ints = make([]int64, n*rs)
		for i := 0; i < n; i++ {
			copy(out.ints[i*rs:], a.ints)
		}
	case Bool:
		out.bools = make([]bool, n*rs)
		for i := 0; i < n; i++ {
			copy(out.bools[i*rs:], a.bools)
		}
	case Object:
		out.objects = make([]any, n*rs)
		for i := 0; i < n; i++ {
			copy(out.objects[i*rs:], a.objects)
		}
	}
	return out, nil
}

// Gather returns the rows selected by the boolean mask. The mask length
// must match the leading axis.
func (a *Array) Gather(mask []bool) (*Array, error) {
	if len(mask) != a.Len() {
		return nil, fmt.Errorf("mask length %d does not match array length %d", len(mask), a.Len())
	}
	count := 0
	for _, m := range mask {
		if m {
			count++
		}
	}
	shape := append([]int{count}, a.shape[1:]...)
	out := &Array{dtype: a.dtype, shape: shape}
	rs := a.RowSize()
	switch a.dtype {
	case Float64:
		out.floats = make([]float64, 0, count*rs)
	case Int64:
		out.ints = make([]int64, 0, count*rs)
	case Bool:
		out.bools = make([]bool, 0, count*rs)
	case Object:
		out.objects = make([]any, 0, count*rs)
	}
	for i, m := range mask {
		if !m {
			continue
		}
		switch a.dtype {
		case Float64:
			out.floats = append(out.floats, a.floats[i*rs:(i+1)*rs]...)
		case Int64:
			out.ints = append(out.ints, a.ints[i*rs:(i+1)*rs]...)
		case Bool:
			out.bools = append(out.bools, a.bools[i*rs:(i+1)*rs]...)
		case Object:
			out.objects = append(out.objects, a.objects[i*rs:(i+1)*rs]...)
		}
	}
	return out, nil
}

// Scatter writes src rows into the positions selected by the mask,
// mutating the receiver in place. src must either supply one row per
// selected position or a single row that is broadcast across all of them.
// Dtypes and per-row shapes must agree.
func (a *Array) Scatter(mask []bool, src *Array) error {
	if len(mask) != a.Len() {
		return fmt.Errorf("mask length %d does not match array length %d", len(mask), a.Len())
	}
	count := 0
	for _, m := range mask {
		if m {
			count++
		}
	}
	if src.Len() != count && src.Len() != 1 {
		return ShapeError{Key: "scatter source", Got: src.Len(), Want: count}
	}
	if src.dtype != a.dtype {
		return fmt.Errorf("cannot scatter %s values into %s array", src.dtype, a.dtype)
	}
	if src.RowSize() != a.RowSize() {
		return ShapeError{Key: "scatter source row", Got: src.RowSize(), Want: a.RowSize()}
	}
	rs := a.RowSize()
	j := 0
	for i, m := range mask {
		if !m {
			continue
		}
		k := j
		if src.Len() == 1 {
			k = 0
		}
		switch a.dtype {
		case Float64:
			copy(a.floats[i*rs:(i+1)*rs], src.floats[k*rs:(k+1)*rs])
		case Int64:
			copy(a.ints[i*rs:(i+1)*rs], src.ints[k*rs:(k+1)*rs])
		case Bool:
			copy(a.bools[i*rs:(i+1)*rs], src.bools[k*rs:(k+1)*rs])
		case Object:
			copy(a.objects[i*rs:(i+1)*rs], src.objects[k*rs:(k+1)*rs])
		}
		j++
	}
	return nil
}

// AsArray coerces a caller-supplied value into an Array with at least one
// dimension. Scalars become length-1 arrays; nested numeric slices become
// 2-d arrays. *Array values pass through unchanged.
func AsArray(v any) (*Array, error) {
	switch t := v.(type) {
	case *Array:
		return t, nil
	case float64:
		return Scalar(t), nil
	case float32:
		return Scalar(float64(t)), nil
	case int:
		return Scalar(float64(t)), nil
	case int64:
		return Scalar(float64(t)), nil
	case bool:
		return NewBools([]bool{t}), nil
	case []float64:
		return NewFloats(append([]float64(nil), t...)), nil
	case []int:
		out := make([]int64, len(t))
		for i, x := range t {
			out[i] = int64(x)
		}
		return NewInts(out), nil
	case []int64:
		return NewInts(append([]int64(nil), t...)), nil
	case []bool:
		return NewBools(append([]bool(nil), t...)), nil
	case []any:
		return NewObjects(append([]any(nil), t...)), nil
	case [][]float64:
		if len(t) == 0 {
			return &Array{dtype: Float64, shape: []int{0, 0}}, nil
		}
		w := len(t[0])
		flat := make([]float64, 0, len(t)*w)
		for _, row := range t {
			if len(row) != w {
				return nil, fmt.Errorf("ragged rows: %d vs %d", len(row), w)
			}
			flat = append(flat, row...)
		}
		return &Array{dtype: Float64, shape: []int{len(t), w}, floats: flat}, nil
	case [][2]int:
		flat := make([]int64, 0, len(t)*2)
		for _, row := range t {
			flat = append(flat, int64(row[0]), int64(row[1]))
		}
		return &Array{dtype: Int64, shape: []int{len(t), 2}, ints: flat}, nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", v)
	}
}
