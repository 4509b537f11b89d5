package torque

import (
	"fmt"

	"github.com/san-kum/spintorque/internal/config"
	"github.com/san-kum/spintorque/internal/gradient"
	"github.com/san-kum/spintorque/internal/spin"
)

// Metric observes the torque buffers after every step and reduces them to
// a single value.
type Metric interface {
	Name() string
	Observe(step int, b *Buffers)
	Value() float64
	Reset()
}

// Observer is notified after every completed step.
type Observer interface {
	OnStep(step int, b *Buffers)
}

// Calculator is the single per-step entry point for the torque-field
// computation. It owns the buffers and holds the configuration, the
// site-current field and the gradient provider read-only for the run.
type Calculator struct {
	cfg       *config.Config
	current   spin.Field
	grad      gradient.Provider
	buffers   *Buffers
	sheFactor float64
	metrics   []Metric
	observers []Observer
	step      int
}

// New allocates the calculator and its buffers for a fixed system size.
// In adiabatic mode a gradient provider is required; with SHE enabled the
// spin polarization and ferromagnet thickness must be set, since the SHE
// prefactor divides by both.
func New(cfg *config.Config, siteCurrent spin.Field, grad gradient.Provider, atoms, ensembles int) (*Calculator, error) {
	if len(siteCurrent) != atoms {
		return nil, fmt.Errorf("torque: site-current field has %d atoms, want %d", len(siteCurrent), atoms)
	}
	if cfg.STT == config.STTAdiabatic && grad == nil {
		return nil, fmt.Errorf("torque: adiabatic mode needs a gradient provider")
	}

	var sheFactor float64
	if cfg.SHE {
		if cfg.SpinPolarization == 0 || cfg.FerroThickness == 0 {
			return nil, fmt.Errorf("torque: spin Hall torque needs nonzero spin_pol and thick_ferro")
		}
		sheFactor = cfg.SHEAngle / (cfg.SpinPolarization * cfg.FerroThickness)
	}

	buffers, err := NewBuffers(cfg.STT, cfg.SHE, atoms, ensembles)
	if err != nil {
		return nil, err
	}

	return &Calculator{
		cfg:       cfg,
		current:   siteCurrent,
		grad:      grad,
		buffers:   buffers,
		sheFactor: sheFactor,
	}, nil
}

func (c *Calculator) AddMetric(m Metric)     { c.metrics = append(c.metrics, m) }
func (c *Calculator) AddObserver(o Observer) { c.observers = append(c.observers, o) }

// Buffers exposes the output arrays; read-only between steps.
func (c *Calculator) Buffers() *Buffers { return c.buffers }

// Config returns the configuration the calculator was built with.
func (c *Calculator) Config() *config.Config { return c.cfg }

// SiteCurrent returns the per-atom current field.
func (c *Calculator) SiteCurrent() spin.Field { return c.current }

// Calculate refreshes the torque buffers from the current moments.
// moments holds the unit moment vectors, mmom their magnitudes, damping
// the per-atom Gilbert damping. Exactly one STT kernel runs depending on
// the mode, then the SHE kernel if enabled.
func (c *Calculator) Calculate(moments *spin.EnsembleField, mmom *spin.Scalars, damping []float64) error {
	if c.buffers.Released() {
		return fmt.Errorf("torque: calculate after release")
	}
	if moments.Atoms() != c.buffers.atoms || moments.Ensembles() != c.buffers.ensembles {
		return fmt.Errorf("torque: moment field is %dx%d, buffers are %dx%d",
			moments.Atoms(), moments.Ensembles(), c.buffers.atoms, c.buffers.ensembles)
	}
	if len(damping) != c.buffers.atoms {
		return fmt.Errorf("torque: damping array has %d entries, want %d", len(damping), c.buffers.atoms)
	}

	switch c.cfg.STT {
	case config.STTDisabled:
	case config.STTAdiabatic:
		c.grad.DmomDr(moments, c.current, c.buffers.DmomDr)
		adiabaticTorque(c.buffers, moments, damping, c.cfg.AdiBeta)
	case config.STTFixedLayer:
		fixedLayerTorque(c.buffers.BTorque, moments, c.current)
	}

	if c.cfg.SHE {
		if mmom == nil {
			return fmt.Errorf("torque: spin Hall torque needs moment magnitudes")
		}
		sheTorque(c.buffers.SHETorque, moments, mmom, damping, c.current, c.sheFactor)
	}

	c.step++
	for _, m := range c.metrics {
		m.Observe(c.step, c.buffers)
	}
	for _, o := range c.observers {
		o.OnStep(c.step, c.buffers)
	}
	return nil
}

// Step returns the number of completed Calculate calls.
func (c *Calculator) Step() int { return c.step }

// MetricValues snapshots every registered metric.
func (c *Calculator) MetricValues() map[string]float64 {
	out := make(map[string]float64, len(c.metrics))
	for _, m := range c.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

// ResetMetrics rewinds every registered metric.
func (c *Calculator) ResetMetrics() {
	for _, m := range c.metrics {
		m.Reset()
	}
}

// Release frees the buffers. Safe to call once; further calls are no-ops.
func (c *Calculator) Release() { c.buffers.Release() }
