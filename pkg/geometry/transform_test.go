package geometry

import (
	"math"
	"testing"
)

func TestTransformIdentity(t *testing.T) {
	p := NewVector3(1.5, -2, 7)
	if got := Identity().Apply(p); got != p {
		t.Errorf("Identity.Apply failed: expected %v, got %v", p, got)
	}
	if !Identity().IsIdentity() {
		t.Error("IsIdentity() = false for Identity()")
	}
}

func TestTransformMultiplyOrder(t *testing.T) {
	// parent.Multiply(child) applies child first
	parent := Translate(1, 0, 0)
	child := Scale(2, 2, 2)

	got := parent.Multiply(child).Apply(NewVector3(1, 0, 0))
	expected := NewVector3(3, 0, 0)
	if got != expected {
		t.Errorf("Multiply failed: expected %v, got %v", expected, got)
	}

	got = child.Multiply(parent).Apply(NewVector3(1, 0, 0))
	expected = NewVector3(4, 0, 0)
	if got != expected {
		t.Errorf("Multiply reversed failed: expected %v, got %v", expected, got)
	}
}

func TestTransformDet3(t *testing.T) {
	tests := []struct {
		name string
		m    Transform
		want float64
	}{
		{"identity", Identity(), 1},
		{"translation", Translate(5, 6, 7), 1},
		{"scale", Scale(2, 3, 4), 24},
		{"mirror", Scale(-1, 1, 1), -1},
		{"rotation", RotateZ(0.7), 1},
		{"shear", FromRows([4]float64{1, 0.5, 0, 0}, [4]float64{0, 1, 0, 0}, [4]float64{0, 0.25, 1, 0}), 1},
		{"composed", Scale(2, 2, 2).Multiply(RotateZ(1.1)).Multiply(Scale(1, 1, 3)), 24},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.Det3(); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Det3() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTransformRotateZ(t *testing.T) {
	got := RotateZ(math.Pi / 2).Apply(NewVector3(1, 0, 0))
	if got.Distance(NewVector3(0, 1, 0)) > 1e-12 {
		t.Errorf("RotateZ failed: expected (0, 1, 0), got %v", got)
	}
}
