package spin

import "math"

// Vector is a 3-component vector in the lab frame.
type Vector [3]float64

func (v Vector) Add(o Vector) Vector {
	return Vector{v[0] + o[0], v[1] + o[1], v[2] + o[2]}
}

func (v Vector) Sub(o Vector) Vector {
	return Vector{v[0] - o[0], v[1] - o[1], v[2] - o[2]}
}

func (v Vector) Scale(f float64) Vector {
	return Vector{v[0] * f, v[1] * f, v[2] * f}
}

func (v Vector) Dot(o Vector) float64 {
	return v[0]*o[0] + v[1]*o[1] + v[2]*o[2]
}

// Cross uses the right-hand convention: (a×b)_x = a_y b_z − a_z b_y.
func (v Vector) Cross(o Vector) Vector {
	return Vector{
		v[1]*o[2] - v[2]*o[1],
		v[2]*o[0] - v[0]*o[2],
		v[0]*o[1] - v[1]*o[0],
	}
}

func (v Vector) Norm() float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// Normalize returns the unit vector along v, or v unchanged if its norm
// is too small to divide by.
func (v Vector) Normalize() Vector {
	n := v.Norm()
	if n < 1e-12 {
		return v
	}
	return v.Scale(1 / n)
}

func (v Vector) IsValid() bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Field holds one vector per atom.
type Field []Vector

func NewField(atoms int) Field {
	return make(Field, atoms)
}

// Uniform returns a field with every atom set to v.
func Uniform(atoms int, v Vector) Field {
	f := make(Field, atoms)
	for i := range f {
		f[i] = v
	}
	return f
}

func (f Field) Clone() Field {
	c := make(Field, len(f))
	copy(c, f)
	return c
}
