// Package metrics reduces the torque buffers to scalar observables.
package metrics

import (
	"math"

	"github.com/san-kum/spintorque/internal/torque"
)

// MaxTorque tracks the largest torque norm seen over all steps, atoms and
// ensemble members, STT and SHE buffers combined.
type MaxTorque struct {
	max float64
}

func NewMaxTorque() *MaxTorque { return &MaxTorque{} }

func (m *MaxTorque) Name() string { return "torque_max" }

func (m *MaxTorque) Observe(step int, b *torque.Buffers) {
	eachNorm(b, func(n float64) {
		m.max = math.Max(m.max, n)
	})
}

func (m *MaxTorque) Value() float64 { return m.max }
func (m *MaxTorque) Reset()         { m.max = 0 }

// MeanTorque tracks the mean torque norm over every observed slot.
type MeanTorque struct {
	sum     float64
	samples int
}

func NewMeanTorque() *MeanTorque { return &MeanTorque{} }

func (m *MeanTorque) Name() string { return "torque_mean" }

func (m *MeanTorque) Observe(step int, b *torque.Buffers) {
	eachNorm(b, func(n float64) {
		m.sum += n
		m.samples++
	})
}

func (m *MeanTorque) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanTorque) Reset() {
	m.sum = 0
	m.samples = 0
}

// Snapshot reduces one step's buffers to instantaneous statistics,
// without accumulating anything.
func Snapshot(b *torque.Buffers) (sttMax, sttMean, sheMax float64) {
	samples := 0
	for k := 0; k < b.Ensembles(); k++ {
		for i := 0; i < b.Atoms(); i++ {
			if b.BTorque != nil {
				n := b.BTorque.At(i, k).Norm()
				sttMax = math.Max(sttMax, n)
				sttMean += n
				samples++
			}
			if b.SHETorque != nil {
				sheMax = math.Max(sheMax, b.SHETorque.At(i, k).Norm())
			}
		}
	}
	if samples > 0 {
		sttMean /= float64(samples)
	}
	return sttMax, sttMean, sheMax
}

func eachNorm(b *torque.Buffers, fn func(norm float64)) {
	for k := 0; k < b.Ensembles(); k++ {
		for i := 0; i < b.Atoms(); i++ {
			if b.BTorque != nil {
				fn(b.BTorque.At(i, k).Norm())
			}
			if b.SHETorque != nil {
				fn(b.SHETorque.At(i, k).Norm())
			}
		}
	}
}
