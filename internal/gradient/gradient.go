// Package gradient supplies the directional derivative (j·∇)m of the
// moment field. The production routine lives outside this module and
// differentiates over the full neighbor list; the torque calculator only
// depends on the Provider contract.
package gradient

import (
	"github.com/san-kum/spintorque/internal/spin"
)

// Provider computes dst(i,k) = (j·∇)m evaluated at atom i for ensemble
// member k. It is called once per step, before the adiabatic kernel, and
// must fully overwrite dst.
type Provider interface {
	DmomDr(moments *spin.EnsembleField, current spin.Field, dst *spin.EnsembleField)
}

// Func adapts a plain function to the Provider interface.
type Func func(moments *spin.EnsembleField, current spin.Field, dst *spin.EnsembleField)

func (f Func) DmomDr(moments *spin.EnsembleField, current spin.Field, dst *spin.EnsembleField) {
	f(moments, current, dst)
}
