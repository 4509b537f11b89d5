package torque

import (
	"runtime"
	"sync"

	"github.com/san-kum/spintorque/internal/spin"
)

// Below this atom count the goroutine fan-out costs more than it saves.
const serialThreshold = 64

// parallelAtoms runs fn over [0,n) split into contiguous per-worker
// chunks. Every (atom, ensemble) slot is written by exactly one worker,
// so no synchronization beyond the final wait is needed.
func parallelAtoms(n int, fn func(start, end int)) {
	if n < serialThreshold {
		fn(0, n)
		return
	}

	workers := runtime.NumCPU()
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if start >= n {
			break
		}
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}

// adiabaticTorque computes the adiabatic + non-adiabatic spin-transfer
// torque from the precomputed derivative field b.DmomDr:
//
//	b(i,k) = (λ(i) − β)·d(i,k) − (1 + β·λ(i))·(m(i,k) × d(i,k))
//
// The prefactor −(1+β·λ) depends only on the atom, so it is computed once
// per atom and cached in b.STTPrefac.
func adiabaticTorque(b *Buffers, moments *spin.EnsembleField, damping []float64, beta float64) {
	ensembles := moments.Ensembles()
	parallelAtoms(moments.Atoms(), func(start, end int) {
		for i := start; i < end; i++ {
			lambda := damping[i]
			prefac := -(1 + beta*lambda)
			b.STTPrefac[i] = prefac
			for k := 0; k < ensembles; k++ {
				d := b.DmomDr.At(i, k)
				t := d.Scale(lambda - beta)
				t = t.Add(moments.At(i, k).Cross(d).Scale(prefac))
				b.BTorque.Set(i, k, t)
			}
		}
	})
}

// fixedLayerTorque computes b(i,k) = m(i,k) × j(i) against the static
// site-current field.
func fixedLayerTorque(dst *spin.EnsembleField, moments *spin.EnsembleField, current spin.Field) {
	ensembles := moments.Ensembles()
	parallelAtoms(moments.Atoms(), func(start, end int) {
		for i := start; i < end; i++ {
			j := current[i]
			for k := 0; k < ensembles; k++ {
				dst.Set(i, k, moments.At(i, k).Cross(j))
			}
		}
	})
}

// sheTorque computes the spin-Hall torque with
// factor = θ_SH / (P · t_F) evaluated once per call by the caller.
func sheTorque(dst *spin.EnsembleField, moments *spin.EnsembleField, mmom *spin.Scalars, damping []float64, current spin.Field, factor float64) {
	ensembles := moments.Ensembles()
	parallelAtoms(moments.Atoms(), func(start, end int) {
		for i := start; i < end; i++ {
			j := current[i]
			lambda := damping[i]
			for k := 0; k < ensembles; k++ {
				m := moments.At(i, k)
				lm := lambda * mmom.At(i, k)
				dst.Set(i, k, spin.Vector{
					-factor*j[0]*m[2] - lm*j[1],
					-factor*j[1]*m[2] + lm*j[0],
					factor*j[1]*m[1] + factor*j[0]*m[0],
				})
			}
		}
	})
}
