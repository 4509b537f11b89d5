// Package diagnostics holds stateless reporting helpers for the torque
// computation.
package diagnostics

import (
	"fmt"
	"math"

	"github.com/san-kum/spintorque/internal/spin"
)

// BCCIronAlat is the lattice constant substituted when alat carries the
// legacy "unset" sentinel, in meters.
const BCCIronAlat = 2.856e-10

// Constants is the caller-supplied physical constant table.
type Constants struct {
	// E is the elementary charge in coulombs.
	E float64
	// Gamma is the gyromagnetic ratio in rad/(s·T).
	Gamma float64
}

// DefaultConstants returns CODATA values.
func DefaultConstants() Constants {
	return Constants{
		E:     1.602176634e-19,
		Gamma: 1.760859630e11,
	}
}

// CurrentDensity computes the current-density vector
//
//	e · totalMoment · γ · alat · jvec / (cellVolume · spinPol)
//
// with cellVolume = |c1·(c2×c3)|·alat³ from the lattice vectors (in units
// of alat). The legacy sentinels are honored: alat == 1 means "unset" and
// is replaced with the BCC iron lattice constant, spinPol == 0 is
// replaced with 1. Instead of mutating the caller's values, the resolved
// alat and spinPol are returned along with a note per substitution. The
// function holds no state: with already-resolved inputs it returns them
// unchanged and produces identical output on every call.
//
// A legitimate user value of exactly 1 (alat) or 0 (spinPol) is
// indistinguishable from "unset"; that ambiguity is inherited from the
// input format.
func CurrentDensity(c1, c2, c3 spin.Vector, alat, spinPol, totalMoment float64, jvec spin.Vector, consts Constants) (currDen spin.Vector, resolvedAlat, resolvedSpinPol float64, notes []string) {
	resolvedAlat = alat
	resolvedSpinPol = spinPol

	if alat == 1 {
		resolvedAlat = BCCIronAlat
		notes = append(notes, fmt.Sprintf("lattice constant not set, using bcc Fe value %g m", BCCIronAlat))
	}
	if spinPol == 0 {
		resolvedSpinPol = 1
		notes = append(notes, "spin polarization not set, using 1.0")
	}

	cellVolume := math.Abs(c1.Dot(c2.Cross(c3))) * resolvedAlat * resolvedAlat * resolvedAlat
	scale := consts.E * totalMoment * consts.Gamma * resolvedAlat / (cellVolume * resolvedSpinPol)
	currDen = jvec.Scale(scale)
	return currDen, resolvedAlat, resolvedSpinPol, notes
}
