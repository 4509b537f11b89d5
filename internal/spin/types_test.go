package spin

import (
	"math"
	"testing"
)

func TestCross(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Vector
		expected Vector
	}{
		{"x cross y", Vector{1, 0, 0}, Vector{0, 1, 0}, Vector{0, 0, 1}},
		{"y cross z", Vector{0, 1, 0}, Vector{0, 0, 1}, Vector{1, 0, 0}},
		{"z cross x", Vector{0, 0, 1}, Vector{1, 0, 0}, Vector{0, 1, 0}},
		{"parallel", Vector{1, 2, 3}, Vector{2, 4, 6}, Vector{0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.Cross(tt.b)
			if got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestCrossAntisymmetric(t *testing.T) {
	a := Vector{0.3, -1.2, 2.5}
	b := Vector{1.1, 0.4, -0.7}

	ab := a.Cross(b)
	ba := b.Cross(a)
	for c := 0; c < 3; c++ {
		if ab[c] != -ba[c] {
			t.Errorf("component %d: a×b=%v is not −(b×a)=%v", c, ab, ba)
		}
	}
}

func TestCrossOrthogonal(t *testing.T) {
	a := Vector{0.3, -1.2, 2.5}
	b := Vector{1.1, 0.4, -0.7}
	c := a.Cross(b)

	if dot := c.Dot(a); math.Abs(dot) > 1e-12 {
		t.Errorf("a×b not orthogonal to a: dot=%g", dot)
	}
	if dot := c.Dot(b); math.Abs(dot) > 1e-12 {
		t.Errorf("a×b not orthogonal to b: dot=%g", dot)
	}
}

func TestNormalize(t *testing.T) {
	v := Vector{3, 4, 0}.Normalize()
	if math.Abs(v.Norm()-1) > 1e-12 {
		t.Errorf("expected unit norm, got %g", v.Norm())
	}

	zero := Vector{}
	if got := zero.Normalize(); got != zero {
		t.Errorf("normalizing zero vector should be a no-op, got %v", got)
	}
}

func TestIsValid(t *testing.T) {
	if !(Vector{1, 2, 3}).IsValid() {
		t.Error("finite vector reported invalid")
	}
	if (Vector{math.NaN(), 0, 0}).IsValid() {
		t.Error("NaN vector reported valid")
	}
	if (Vector{0, math.Inf(1), 0}).IsValid() {
		t.Error("Inf vector reported valid")
	}
}

func TestUniform(t *testing.T) {
	v := Vector{0, 0, 1}
	f := Uniform(5, v)
	for i := range f {
		if f[i] != v {
			t.Errorf("atom %d: expected %v, got %v", i, f[i], v)
		}
	}
}

func TestEnsembleFieldLayout(t *testing.T) {
	f := NewEnsembleField(3, 2)
	if f.Atoms() != 3 || f.Ensembles() != 2 {
		t.Fatalf("expected 3x2, got %dx%d", f.Atoms(), f.Ensembles())
	}

	f.Set(1, 1, Vector{1, 2, 3})
	if got := f.At(1, 1); got != (Vector{1, 2, 3}) {
		t.Errorf("expected {1 2 3}, got %v", got)
	}
	if got := f.At(1, 0); got != (Vector{}) {
		t.Errorf("other ensemble member disturbed: %v", got)
	}

	f.Zero()
	if got := f.At(1, 1); got != (Vector{}) {
		t.Errorf("expected zero after Zero, got %v", got)
	}
}

func TestScalars(t *testing.T) {
	s := NewScalars(2, 2)
	s.Fill(1.5)
	if got := s.At(1, 1); got != 1.5 {
		t.Errorf("expected 1.5, got %g", got)
	}
	s.Set(0, 1, 2.5)
	if got := s.At(0, 1); got != 2.5 {
		t.Errorf("expected 2.5, got %g", got)
	}
	if got := s.At(0, 0); got != 1.5 {
		t.Errorf("other slot disturbed: %g", got)
	}
}
