// Package torque computes spin-transfer-torque (STT) and spin-Hall-effect
// (SHE) contributions to the effective field of an atomistic spin system.
//
// The [Calculator] is the single per-step entry point. Depending on the
// configured mode it runs one of two STT kernels:
//
//   - adiabatic: (λ−β)·(j·∇)m − (1+βλ)·m×(j·∇)m, fed by a [gradient.Provider]
//   - fixed-layer: m × j against the static site-current field
//
// and, independently, the SHE kernel. Results land in the mode-dependent
// [Buffers], which the time integrator reads by reference:
//
//	calc, _ := torque.New(cfg, siteCurrent, grad, atoms, ensembles)
//	defer calc.Release()
//	calc.Calculate(moments, mmom, damping)
//	beff.Add(calc.Buffers().BTorque)
//
// Each kernel is a data-parallel map over the (atom, ensemble) index
// space; iterations write disjoint slots, so the kernels fan out over
// worker goroutines without locking.
package torque
