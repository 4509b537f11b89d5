// Package driver hosts a small demonstration loop around the torque
// calculator. It nudges the moments along the computed torque each step
// so the CLI and the live view have an evolving field to show. It is a
// toy relaxation, not an LLG integrator; the production integrator lives
// outside this module and consumes the buffers directly.
package driver

import (
	"context"
	"math"

	"github.com/san-kum/spintorque/internal/spin"
	"github.com/san-kum/spintorque/internal/torque"
)

type Driver struct {
	calc    *torque.Calculator
	moments *spin.EnsembleField
	mmom    *spin.Scalars
	damping []float64
	dt      float64
}

func New(calc *torque.Calculator, moments *spin.EnsembleField, mmom *spin.Scalars, damping []float64, dt float64) *Driver {
	return &Driver{
		calc:    calc,
		moments: moments,
		mmom:    mmom,
		damping: damping,
		dt:      dt,
	}
}

func (d *Driver) Moments() *spin.EnsembleField   { return d.moments }
func (d *Driver) Buffers() *torque.Buffers       { return d.calc.Buffers() }
func (d *Driver) Calculator() *torque.Calculator { return d.calc }

// Step computes the torques for the current moments, then moves every
// moment by dt along its total torque and renormalizes.
func (d *Driver) Step() error {
	if err := d.calc.Calculate(d.moments, d.mmom, d.damping); err != nil {
		return err
	}

	b := d.calc.Buffers()
	if b.BTorque == nil && b.SHETorque == nil {
		return nil
	}
	for k := 0; k < d.moments.Ensembles(); k++ {
		for i := 0; i < d.moments.Atoms(); i++ {
			var t spin.Vector
			if b.BTorque != nil {
				t = t.Add(b.BTorque.At(i, k))
			}
			if b.SHETorque != nil {
				t = t.Add(b.SHETorque.At(i, k))
			}
			m := d.moments.At(i, k).Add(t.Scale(d.dt)).Normalize()
			d.moments.Set(i, k, m)
		}
	}
	return nil
}

// Run advances steps steps, invoking onStep after each one. Returning
// false from onStep stops the run early; ctx cancellation aborts it.
func (d *Driver) Run(ctx context.Context, steps int, onStep func(step int, b *torque.Buffers) bool) error {
	for s := 1; s <= steps; s++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := d.Step(); err != nil {
			return err
		}
		if onStep != nil && !onStep(s, d.calc.Buffers()) {
			return nil
		}
	}
	return nil
}

// SpiralMoments builds a unit moment field winding through the x-z plane
// along the atom index, the same initial condition for every ensemble
// member. A winding field has a nonzero spatial derivative everywhere,
// which keeps the adiabatic kernel busy.
func SpiralMoments(atoms, ensembles int, turns float64) *spin.EnsembleField {
	f := spin.NewEnsembleField(atoms, ensembles)
	for k := 0; k < ensembles; k++ {
		for i := 0; i < atoms; i++ {
			phase := 2 * math.Pi * turns * float64(i) / float64(atoms)
			f.Set(i, k, spin.Vector{math.Sin(phase), 0, math.Cos(phase)})
		}
	}
	return f
}

// UnitMagnitudes returns moment magnitudes of 1 for every slot.
func UnitMagnitudes(atoms, ensembles int) *spin.Scalars {
	s := spin.NewScalars(atoms, ensembles)
	s.Fill(1)
	return s
}

// UniformDamping returns the same Gilbert damping for every atom.
func UniformDamping(atoms int, lambda float64) []float64 {
	d := make([]float64, atoms)
	for i := range d {
		d[i] = lambda
	}
	return d
}
