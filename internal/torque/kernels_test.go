package torque

import (
	"math"
	"testing"

	"github.com/san-kum/spintorque/internal/config"
	"github.com/san-kum/spintorque/internal/spin"
)

func vecClose(a, b spin.Vector, tol float64) bool {
	for c := 0; c < 3; c++ {
		if math.Abs(a[c]-b[c]) > tol {
			return false
		}
	}
	return true
}

func TestFixedLayerCrossProduct(t *testing.T) {
	const atoms, ensembles = 3, 2
	moments := spin.NewEnsembleField(atoms, ensembles)
	current := spin.Field{
		{0, 0, 1},
		{0, 1, 0},
		{0.6, 0, 0.8},
	}
	for k := 0; k < ensembles; k++ {
		moments.Set(0, k, spin.Vector{1, 0, 0})
		moments.Set(1, k, spin.Vector{0, 0, 1})
		moments.Set(2, k, spin.Vector{0, 1, 0})
	}

	dst := spin.NewEnsembleField(atoms, ensembles)
	fixedLayerTorque(dst, moments, current)

	for k := 0; k < ensembles; k++ {
		for i := 0; i < atoms; i++ {
			expected := moments.At(i, k).Cross(current[i])
			if got := dst.At(i, k); got != expected {
				t.Errorf("atom %d ensemble %d: expected %v, got %v", i, k, expected, got)
			}
		}
	}
}

func TestFixedLayerAntisymmetry(t *testing.T) {
	moments := spin.NewEnsembleField(1, 1)
	moments.Set(0, 0, spin.Vector{0.6, 0.8, 0})
	j := spin.Vector{0, 0, 1}

	dst := spin.NewEnsembleField(1, 1)
	fixedLayerTorque(dst, moments, spin.Field{j})
	plus := dst.At(0, 0)

	fixedLayerTorque(dst, moments, spin.Field{j.Scale(-1)})
	minus := dst.At(0, 0)

	if !vecClose(plus, minus.Scale(-1), 1e-15) {
		t.Errorf("torque not antisymmetric under j→−j: %v vs %v", plus, minus)
	}
}

func TestAdiabaticTorqueFormula(t *testing.T) {
	const lambda, beta = 0.1, 0.05
	b, err := NewBuffers(config.STTAdiabatic, false, 1, 1)
	if err != nil {
		t.Fatalf("allocate failed: %v", err)
	}

	moments := spin.NewEnsembleField(1, 1)
	moments.Set(0, 0, spin.Vector{1, 0, 0})
	b.DmomDr.Set(0, 0, spin.Vector{0, 0, 1})

	adiabaticTorque(b, moments, []float64{lambda}, beta)

	// (λ−β)·d − (1+βλ)·(m×d), with m×d = (1,0,0)×(0,0,1) = (0,−1,0)
	expected := spin.Vector{0, 1 + beta*lambda, lambda - beta}
	if got := b.BTorque.At(0, 0); !vecClose(got, expected, 1e-14) {
		t.Errorf("expected %v, got %v", expected, got)
	}
}

func TestAdiabaticPrefactorEnsembleInvariant(t *testing.T) {
	const atoms, ensembles = 4, 3
	const beta = 0.08
	damping := []float64{0.01, 0.05, 0.1, 0.2}

	b, err := NewBuffers(config.STTAdiabatic, false, atoms, ensembles)
	if err != nil {
		t.Fatalf("allocate failed: %v", err)
	}

	moments := spin.NewEnsembleField(atoms, ensembles)
	for k := 0; k < ensembles; k++ {
		for i := 0; i < atoms; i++ {
			moments.Set(i, k, spin.Vector{0, math.Sin(float64(i + k)), math.Cos(float64(i + k))}.Normalize())
			b.DmomDr.Set(i, k, spin.Vector{0.1 * float64(k), 0, 0.3})
		}
	}

	adiabaticTorque(b, moments, damping, beta)

	// The prefactor depends only on the atom; it must equal −(1+β·λ)
	// regardless of how many ensemble members were processed.
	for i := 0; i < atoms; i++ {
		expected := -(1 + beta*damping[i])
		if got := b.STTPrefac[i]; math.Abs(got-expected) > 1e-15 {
			t.Errorf("atom %d: prefactor %g, want %g", i, got, expected)
		}
	}
}

func TestSHETorqueZeroDamping(t *testing.T) {
	const factor = 2.0
	moments := spin.NewEnsembleField(1, 1)
	moments.Set(0, 0, spin.Vector{0.5, 0.5, math.Sqrt(0.5)})
	mmom := spin.NewScalars(1, 1)
	mmom.Fill(2.2)
	current := spin.Field{{0.3, 0.7, 0}}

	dst := spin.NewEnsembleField(1, 1)
	sheTorque(dst, moments, mmom, []float64{0}, current, factor)

	m := moments.At(0, 0)
	j := current[0]
	expected := spin.Vector{
		-factor * j[0] * m[2],
		-factor * j[1] * m[2],
		factor*j[1]*m[1] + factor*j[0]*m[0],
	}
	if got := dst.At(0, 0); !vecClose(got, expected, 1e-14) {
		t.Errorf("λ=0: expected %v, got %v", expected, got)
	}
}

func TestSHETorqueZeroAngle(t *testing.T) {
	const lambda = 0.1
	moments := spin.NewEnsembleField(1, 1)
	moments.Set(0, 0, spin.Vector{0, 0, 1})
	mmom := spin.NewScalars(1, 1)
	mmom.Fill(1.5)
	current := spin.Field{{0.4, 0.9, 0}}

	dst := spin.NewEnsembleField(1, 1)
	sheTorque(dst, moments, mmom, []float64{lambda}, current, 0)

	lm := lambda * 1.5
	expected := spin.Vector{-lm * current[0][1], lm * current[0][0], 0}
	if got := dst.At(0, 0); !vecClose(got, expected, 1e-14) {
		t.Errorf("factor=0: expected %v, got %v", expected, got)
	}
}

func TestKernelsParallelMatchSerial(t *testing.T) {
	// Enough atoms to cross the goroutine threshold; results must be
	// identical to an atom-by-atom serial evaluation.
	const atoms, ensembles = 3 * serialThreshold, 2
	moments := spin.NewEnsembleField(atoms, ensembles)
	current := spin.NewField(atoms)
	damping := make([]float64, atoms)
	for i := 0; i < atoms; i++ {
		current[i] = spin.Vector{math.Cos(float64(i)), math.Sin(float64(i)), 0.2}
		damping[i] = 0.01 + 0.001*float64(i%7)
		for k := 0; k < ensembles; k++ {
			moments.Set(i, k, spin.Vector{
				math.Sin(0.1 * float64(i+k)),
				math.Cos(0.1 * float64(i-k)),
				0.5,
			}.Normalize())
		}
	}

	dst := spin.NewEnsembleField(atoms, ensembles)
	fixedLayerTorque(dst, moments, current)

	for k := 0; k < ensembles; k++ {
		for i := 0; i < atoms; i++ {
			expected := moments.At(i, k).Cross(current[i])
			if got := dst.At(i, k); got != expected {
				t.Fatalf("atom %d ensemble %d: parallel result %v differs from %v", i, k, got, expected)
			}
		}
	}
}
