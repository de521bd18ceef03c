package math

import (
	m "math"
	"testing"

	"golang.org/x/exp/rand"
)

func randomVector(r *rand.Rand, n int, scale float32) Vector[float32] {
	v := NewVectorZero[float32](n)
	for i := 0; i < n; i++ {
		v.Set(i, (r.Float32()*2-1)*scale)
	}
	return v
}

func TestVectorAdditiveIdentities(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for n := 1; n <= MaxDimension; n++ {
		for trial := 0; trial < 20; trial++ {
			v := randomVector(r, n, 10)
			zero := NewVectorZero[float32](n)

			if got := v.Add(zero); !got.Equal(v) {
				t.Errorf("v + 0 = %v, want %v", got, v)
			}
			if got := v.Sub(v); !got.Equal(zero) {
				t.Errorf("v - v = %v, want %v", got, zero)
			}
		}
	}
}

func TestVectorCrossIsOrthogonal(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	for trial := 0; trial < 200; trial++ {
		a := randomVector(r, 3, 1)
		b := randomVector(r, 3, 1)
		c := a.Cross(b)

		if d := float64(c.Dot(a)); m.Abs(d) > 1e-5 {
			t.Errorf("(a x b) . a = %g, want ~0 (a=%v b=%v)", d, a, b)
		}
		if d := float64(c.Dot(b)); m.Abs(d) > 1e-5 {
			t.Errorf("(a x b) . b = %g, want ~0 (a=%v b=%v)", d, a, b)
		}
	}
}

func TestVectorCrossBasis(t *testing.T) {
	tests := []struct {
		a, b, want Vector[float32]
	}{
		{NewVector[float32](1, 0, 0), NewVector[float32](0, 1, 0), NewVector[float32](0, 0, 1)},
		{NewVector[float32](0, 1, 0), NewVector[float32](0, 0, 1), NewVector[float32](1, 0, 0)},
		{NewVector[float32](0, 0, 1), NewVector[float32](1, 0, 0), NewVector[float32](0, 1, 0)},
		{NewVector[float32](1, 2, 3), NewVector[float32](4, 5, 6), NewVector[float32](-3, 6, -3)},
	}
	for _, tt := range tests {
		if got := tt.a.Cross(tt.b); !got.Equal(tt.want) {
			t.Errorf("%v x %v = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestVectorArithmetic(t *testing.T) {
	a := NewVector[float32](1, 2, 3)
	b := NewVector[float32](4, 5, 6)

	if got := a.Dot(b); got != 32 {
		t.Errorf("Dot = %v, want 32", got)
	}
	if got := a.Scale(2); !got.Equal(NewVector[float32](2, 4, 6)) {
		t.Errorf("Scale = %v", got)
	}
	if got := b.Div(2); !got.Equal(NewVector[float32](2, 2.5, 3)) {
		t.Errorf("Div = %v", got)
	}
	if got := NewVector[float32](3, 4).Norm(); got != 5 {
		t.Errorf("Norm = %v, want 5", got)
	}
	// operands are untouched
	if !a.Equal(NewVector[float32](1, 2, 3)) {
		t.Errorf("operand mutated: %v", a)
	}
}

func TestVectorNormalize(t *testing.T) {
	v := Normalize(NewVector[float32](3, 0, 4), 10)
	if !v.Compare(NewVector[float32](6, 0, 8), 1e-5) {
		t.Errorf("Normalize = %v, want (6, 0, 8)", v)
	}

	z := Normalize(NewVectorZero[float32](3), 1)
	if !m.IsNaN(float64(z.X())) {
		t.Errorf("normalizing a zero vector = %v, want non-finite", z)
	}
}

func TestVectorEmbedProj(t *testing.T) {
	v := NewVector[float32](1, 2, 3)

	h := v.Embed(4, 1)
	if !h.Equal(NewVector[float32](1, 2, 3, 1)) {
		t.Errorf("Embed = %v", h)
	}
	if p := h.Proj(3); !p.Equal(v) {
		t.Errorf("Proj = %v, want %v", p, v)
	}
	if p := v.Proj(2); !p.Equal(NewVector[float32](1, 2)) {
		t.Errorf("Proj(2) = %v", p)
	}
}

func TestVectorCastAndRound(t *testing.T) {
	v := NewVector[float32](1.4, 1.6, -2.5)

	if got := Cast[int](v); !got.Equal(NewVector(1, 1, -2)) {
		t.Errorf("Cast = %v, want (1, 1, -2)", got)
	}
	if got := Round[int](v); !got.Equal(NewVector(1, 2, -3)) {
		t.Errorf("Round = %v, want (1, 2, -3)", got)
	}
	if got := Cast[float64](NewVector(1, 2)); !got.Equal(NewVector[float64](1, 2)) {
		t.Errorf("Cast[float64] = %v", got)
	}
}

func TestVectorValueSemantics(t *testing.T) {
	a := NewVector[float32](1, 2, 3)
	b := a
	b.Set(0, 42)
	if a.X() != 1 {
		t.Errorf("copy aliases original: a = %v", a)
	}
}

func TestVectorPanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"index out of range", func() { NewVector[float32](1, 2).At(2) }},
		{"negative index", func() { NewVector[float32](1, 2).At(-1) }},
		{"dimension mismatch", func() { NewVector[float32](1, 2).Add(NewVector[float32](1, 2, 3)) }},
		{"cross in 2d", func() { NewVector[float32](1, 2).Cross(NewVector[float32](3, 4)) }},
		{"embed into smaller", func() { NewVector[float32](1, 2, 3).Embed(2, 1) }},
		{"proj onto larger", func() { NewVector[float32](1, 2).Proj(3) }},
		{"too many dimensions", func() { NewVectorZero[float32](MaxDimension + 1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("expected panic")
				}
			}()
			tt.fn()
		})
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 3); got != 3 {
		t.Errorf("Clamp(5, 0, 3) = %d", got)
	}
	if got := Clamp(-1.5, 0.0, 1.0); got != 0 {
		t.Errorf("Clamp(-1.5, 0, 1) = %v", got)
	}
}
