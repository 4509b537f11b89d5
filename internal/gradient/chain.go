package gradient

import "github.com/san-kum/spintorque/internal/spin"

// Chain differentiates the moment field along a one-dimensional chain of
// equally spaced atoms laid out along x, so (j·∇)m reduces to
// j_x · ∂m/∂x. Interior atoms use the central difference
// (m(i+1) − m(i−1)) / (2a); the chain ends fall back to one-sided
// differences over a single spacing.
type Chain struct {
	Spacing float64
}

func NewChain(spacing float64) *Chain {
	if spacing <= 0 {
		spacing = 1
	}
	return &Chain{Spacing: spacing}
}

func (c *Chain) DmomDr(moments *spin.EnsembleField, current spin.Field, dst *spin.EnsembleField) {
	n := moments.Atoms()
	for k := 0; k < moments.Ensembles(); k++ {
		for i := 0; i < n; i++ {
			var d spin.Vector
			switch {
			case n == 1:
				// no neighbors, derivative is zero
			case i == 0:
				d = moments.At(1, k).Sub(moments.At(0, k)).Scale(1 / c.Spacing)
			case i == n-1:
				d = moments.At(n-1, k).Sub(moments.At(n-2, k)).Scale(1 / c.Spacing)
			default:
				d = moments.At(i+1, k).Sub(moments.At(i-1, k)).Scale(1 / (2 * c.Spacing))
			}
			dst.Set(i, k, d.Scale(current[i][0]))
		}
	}
}
