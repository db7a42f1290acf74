package network

import (
	"math"
	"testing"
)

func TestScalarPromotion(t *testing.T) {
	a := Scalar(1.5)
	if got := a.Shape(); len(got) != 1 || got[0] != 1 {
		t.Fatalf("Scalar shape = %v, want [1]", got)
	}
	if a.FloatAt(0) != 1.5 {
		t.Fatalf("Scalar value = %v", a.FloatAt(0))
	}
}

func TestBroadcastTo(t *testing.T) {
	a, err := Scalar(1.5).BroadcastTo(4)
	if err != nil {
		t.Fatalf("broadcast: %v", err)
	}
	if a.Len() != 4 {
		t.Fatalf("Len = %d, want 4", a.Len())
	}
	for i := 0; i < 4; i++ {
		if a.FloatAt(i) != 1.5 {
			t.Fatalf("broadcast[%d] = %v", i, a.FloatAt(i))
		}
	}
	if _, err := NewFloats([]float64{1, 2}).BroadcastTo(4); err == nil {
		t.Fatal("broadcast of a length-2 array should fail")
	}
}

func TestBroadcastPreservesTrailingShape(t *testing.T) {
	row, err := NewFloats([]float64{1, 2, 3}).Reshape(1, 3)
	if err != nil {
		t.Fatalf("reshape: %v", err)
	}
	a, err := row.BroadcastTo(5)
	if err != nil {
		t.Fatalf("broadcast: %v", err)
	}
	if got := a.Shape(); got[0] != 5 || got[1] != 3 {
		t.Fatalf("shape = %v, want [5 3]", got)
	}
	if got := a.FloatRow(4); got[2] != 3 {
		t.Fatalf("row 4 = %v", got)
	}
}

func TestGatherScatterRoundTrip(t *testing.T) {
	full := NewFloats([]float64{10, 20, 30, 40, 50})
	mask := []bool{true, false, true, false, true}

	sub, err := full.Gather(mask)
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	want := []float64{10, 30, 50}
	for i, v := range want {
		if sub.FloatAt(i) != v {
			t.Fatalf("gather[%d] = %v, want %v", i, sub.FloatAt(i), v)
		}
	}

	if err := full.Scatter(mask, NewFloats([]float64{1, 3, 5})); err != nil {
		t.Fatalf("scatter: %v", err)
	}
	after := []float64{1, 20, 3, 40, 5}
	for i, v := range after {
		if full.FloatAt(i) != v {
			t.Fatalf("after scatter[%d] = %v, want %v", i, full.FloatAt(i), v)
		}
	}
}

func TestScatterBroadcastsSingleRow(t *testing.T) {
	full := NaNFull(4)
	mask := []bool{false, true, true, false}
	if err := full.Scatter(mask, Scalar(7)); err != nil {
		t.Fatalf("scatter: %v", err)
	}
	if full.FloatAt(1) != 7 || full.FloatAt(2) != 7 {
		t.Fatal("broadcast scatter did not fill the selected rows")
	}
	if !math.IsNaN(full.FloatAt(0)) || !math.IsNaN(full.FloatAt(3)) {
		t.Fatal("scatter touched unselected rows")
	}
}

func TestScatterRejectsMismatch(t *testing.T) {
	full := NaNFull(4)
	mask := []bool{true, true, false, false}
	if err := full.Scatter(mask, NewFloats([]float64{1, 2, 3})); err == nil {
		t.Fatal("scatter accepted a wrong-length source")
	}
	if err := full.Scatter(mask, NewBools([]bool{true, false})); err == nil {
		t.Fatal("scatter accepted a mismatched dtype")
	}
	if err := full.Scatter([]bool{true}, Scalar(1)); err == nil {
		t.Fatal("scatter accepted a wrong-length mask")
	}
}

func TestGatherMultiDim(t *testing.T) {
	coords, err := AsArray([][]float64{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}})
	if err != nil {
		t.Fatalf("as array: %v", err)
	}
	sub, err := coords.Gather([]bool{false, true, true})
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if got := sub.Shape(); got[0] != 2 || got[1] != 3 {
		t.Fatalf("shape = %v, want [2 3]", got)
	}
	if row := sub.FloatRow(1); row[0] != 2 {
		t.Fatalf("row 1 = %v", row)
	}
}

func TestNaNFullAndDefinedRows(t *testing.T) {
	a := NaNFull(3)
	if a.DefinedRows() != 0 {
		t.Fatalf("fresh NaN array has %d defined rows", a.DefinedRows())
	}
	if err := a.Scatter([]bool{true, false, false}, Scalar(2)); err != nil {
		t.Fatalf("scatter: %v", err)
	}
	if a.DefinedRows() != 1 {
		t.Fatalf("DefinedRows = %d, want 1", a.DefinedRows())
	}
	labels := FalseFull(3)
	if labels.DefinedRows() != 3 {
		t.Fatal("label arrays count every row as defined")
	}
	objs := NewObjects([]any{nil, "x", nil})
	if objs.DefinedRows() != 1 {
		t.Fatalf("object DefinedRows = %d, want 1", objs.DefinedRows())
	}
}

func TestAsArrayCoercions(t *testing.T) {
	cases := []struct {
		in    any
		dtype DType
		size  int
	}{
		{3.5, Float64, 1},
		{float32(2), Float64, 1},
		{7, Float64, 1},
		{int64(7), Float64, 1},
		{true, Bool, 1},
		{[]float64{1, 2}, Float64, 2},
		{[]int{1, 2, 3}, Int64, 3},
		{[]bool{true}, Bool, 1},
		{[]any{"a", nil}, Object, 2},
		{[][2]int{{0, 1}, {1, 2}}, Int64, 4},
	}
	for _, tc := range cases {
		a, err := AsArray(tc.in)
		if err != nil {
			t.Fatalf("AsArray(%T): %v", tc.in, err)
		}
		if a.DType() != tc.dtype || a.Size() != tc.size {
			t.Fatalf("AsArray(%T) = %s size %d, want %s size %d", tc.in, a.DType(), a.Size(), tc.dtype, tc.size)
		}
	}
	if _, err := AsArray("nope"); err == nil {
		t.Fatal("AsArray accepted a bare string")
	}
	if _, err := AsArray([][]float64{{1, 2}, {3}}); err == nil {
		t.Fatal("AsArray accepted ragged rows")
	}
}

func TestReshape(t *testing.T) {
	a, err := NewFloats([]float64{1, 2, 3, 4, 5, 6}).Reshape(2, 3)
	if err != nil {
		t.Fatalf("reshape: %v", err)
	}
	if a.RowSize() != 3 || a.Len() != 2 {
		t.Fatalf("reshaped to Len %d RowSize %d", a.Len(), a.RowSize())
	}
	if _, err := a.Reshape(4, 2); err == nil {
		t.Fatal("reshape accepted a size-changing shape")
	}
}

func TestCloneIsDeep(t *testing.T) {
	a := NewFloats([]float64{1, 2})
	b := a.Clone()
	if err := b.Scatter([]bool{true, false}, Scalar(9)); err != nil {
		t.Fatalf("scatter: %v", err)
	}
	if a.FloatAt(0) != 1 {
		t.Fatal("mutating the clone changed the original")
	}
}

func TestRecordRoundTrip(t *testing.T) {
	a, err := AsArray([][]float64{{1, 2, 3}, {4, 5, 6}})
	if err != nil {
		t.Fatalf("as array: %v", err)
	}
	rec, err := a.Record()
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	back, err := FromRecord(rec)
	if err != nil {
		t.Fatalf("from record: %v", err)
	}
	if got := back.Shape(); got[0] != 2 || got[1] != 3 {
		t.Fatalf("shape = %v", got)
	}
	if back.FloatRow(1)[2] != 6 {
		t.Fatalf("row 1 = %v", back.FloatRow(1))
	}
	if _, err := NewObjects([]any{"x"}).Record(); err == nil {
		t.Fatal("object arrays must not be serializable")
	}
}
