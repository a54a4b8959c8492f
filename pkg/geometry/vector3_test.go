package geometry

import (
	"math"
	"testing"
)

func TestVector3Add(t *testing.T) {
	v1 := NewVector3(1, 2, 3)
	v2 := NewVector3(4, 5, 6)
	result := v1.Add(v2)

	expected := NewVector3(5, 7, 9)
	if result != expected {
		t.Errorf("Add failed: expected %v, got %v", expected, result)
	}
}

func TestVector3Sub(t *testing.T) {
	v1 := NewVector3(5, 7, 9)
	v2 := NewVector3(1, 2, 3)
	result := v1.Sub(v2)

	expected := NewVector3(4, 5, 6)
	if result != expected {
		t.Errorf("Sub failed: expected %v, got %v", expected, result)
	}
}

func TestVector3Cross(t *testing.T) {
	v1 := NewVector3(1, 0, 0)
	v2 := NewVector3(0, 1, 0)
	result := v1.Cross(v2)

	expected := NewVector3(0, 0, 1)
	if result != expected {
		t.Errorf("Cross failed: expected %v, got %v", expected, result)
	}
}

func TestVector3Triple(t *testing.T) {
	// Unit axes span a parallelepiped of volume 1
	x := NewVector3(1, 0, 0)
	y := NewVector3(0, 1, 0)
	z := NewVector3(0, 0, 1)

	if got := x.Triple(y, z); math.Abs(got-1) > 1e-12 {
		t.Errorf("Triple failed: expected 1, got %v", got)
	}
	if got := x.Triple(z, y); math.Abs(got+1) > 1e-12 {
		t.Errorf("Triple with swapped winding failed: expected -1, got %v", got)
	}
}

func TestVector3Length(t *testing.T) {
	v := NewVector3(3, 4, 0)
	length := v.Length()

	expected := 5.0
	if math.Abs(length-expected) > 1e-10 {
		t.Errorf("Length failed: expected %v, got %v", expected, length)
	}
}

func TestVector3MinMax(t *testing.T) {
	a := NewVector3(1, 5, -2)
	b := NewVector3(3, 2, -4)

	if got, want := a.Min(b), NewVector3(1, 2, -4); got != want {
		t.Errorf("Min failed: expected %v, got %v", want, got)
	}
	if got, want := a.Max(b), NewVector3(3, 5, -2); got != want {
		t.Errorf("Max failed: expected %v, got %v", want, got)
	}
}

func TestVector3Unit(t *testing.T) {
	u := NewVector3(0, 3, 4).Unit()
	if math.Abs(u.Length()-1) > 1e-12 || math.Abs(u.Z-0.8) > 1e-12 {
		t.Errorf("Unit failed: got %v", u)
	}
	if zero := (Vector3{}).Unit(); zero != (Vector3{}) {
		t.Errorf("Unit of zero vector: expected zero, got %v", zero)
	}
}

func TestVector3IsFinite(t *testing.T) {
	tests := []struct {
		v    Vector3
		want bool
	}{
		{NewVector3(1, -2, 3e300), true},
		{NewVector3(math.NaN(), 0, 0), false},
		{NewVector3(0, math.Inf(1), 0), false},
		{NewVector3(0, 0, math.Inf(-1)), false},
	}
	for _, tt := range tests {
		if got := tt.v.IsFinite(); got != tt.want {
			t.Errorf("IsFinite(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}
