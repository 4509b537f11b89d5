package torque

import (
	"fmt"

	"github.com/san-kum/spintorque/internal/config"
	"github.com/san-kum/spintorque/internal/spin"
)

// Buffers owns the per-run torque output arrays. Only the arrays implied
// by the active mode combination are allocated; every kernel call fully
// overwrites the buffers it targets, so nothing carries state between
// steps. The integrator reads the results by reference and must treat
// them as read-only until the next step.
type Buffers struct {
	// BTorque holds the spin-transfer torque (modes adiabatic and
	// fixed-layer).
	BTorque *spin.EnsembleField
	// DmomDr holds the intermediate (j·∇)m field (adiabatic mode only).
	DmomDr *spin.EnsembleField
	// STTPrefac caches the per-atom prefactor −(1+β·λ) (adiabatic mode
	// only).
	STTPrefac []float64
	// SHETorque holds the spin-Hall torque.
	SHETorque *spin.EnsembleField

	atoms     int
	ensembles int
	released  bool
}

// NewBuffers allocates the buffer set for the given mode combination.
// Sizes are fixed for the run; resizing means releasing and allocating a
// new set.
func NewBuffers(mode config.STTMode, she bool, atoms, ensembles int) (*Buffers, error) {
	if atoms <= 0 {
		return nil, fmt.Errorf("torque: invalid atom count %d", atoms)
	}
	if ensembles <= 0 {
		return nil, fmt.Errorf("torque: invalid ensemble count %d", ensembles)
	}

	b := &Buffers{atoms: atoms, ensembles: ensembles}
	if mode != config.STTDisabled {
		b.BTorque = spin.NewEnsembleField(atoms, ensembles)
	}
	if mode == config.STTAdiabatic {
		b.DmomDr = spin.NewEnsembleField(atoms, ensembles)
		b.STTPrefac = make([]float64, atoms)
	}
	if she {
		b.SHETorque = spin.NewEnsembleField(atoms, ensembles)
	}
	return b, nil
}

func (b *Buffers) Atoms() int     { return b.atoms }
func (b *Buffers) Ensembles() int { return b.ensembles }

// Released reports whether Release has already run.
func (b *Buffers) Released() bool { return b.released }

// Release drops every allocated array. Calling it more than once is a
// no-op.
func (b *Buffers) Release() {
	if b.released {
		return
	}
	b.BTorque = nil
	b.DmomDr = nil
	b.STTPrefac = nil
	b.SHETorque = nil
	b.released = true
}
