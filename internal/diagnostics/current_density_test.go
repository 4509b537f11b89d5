package diagnostics

import (
	"math"
	"testing"

	"github.com/san-kum/spintorque/internal/spin"
)

var (
	unitX = spin.Vector{1, 0, 0}
	unitY = spin.Vector{0, 1, 0}
	unitZ = spin.Vector{0, 0, 1}
)

func TestCurrentDensitySentinelSubstitution(t *testing.T) {
	jvec := spin.Vector{1, 0, 0}
	consts := DefaultConstants()

	currDen, resAlat, resPol, notes := CurrentDensity(unitX, unitY, unitZ, 1.0, 0.0, 2.2, jvec, consts)

	if resAlat != BCCIronAlat {
		t.Errorf("alat sentinel: expected %g, got %g", BCCIronAlat, resAlat)
	}
	if resPol != 1 {
		t.Errorf("spin_pol sentinel: expected 1, got %g", resPol)
	}
	if len(notes) != 2 {
		t.Errorf("expected 2 substitution notes, got %v", notes)
	}

	// unit lattice vectors: cell volume is alat³, so the magnitude is
	// e·mom·γ / (alat²·pol)
	expected := consts.E * 2.2 * consts.Gamma / (BCCIronAlat * BCCIronAlat)
	if math.Abs(currDen[0]-expected)/expected > 1e-12 {
		t.Errorf("current density: expected %g, got %g", expected, currDen[0])
	}
	if currDen[1] != 0 || currDen[2] != 0 {
		t.Errorf("current density should follow jvec: %v", currDen)
	}
}

func TestCurrentDensityIdempotent(t *testing.T) {
	jvec := spin.Vector{0, 1, 0}
	consts := DefaultConstants()
	const alat, pol = 3.5e-10, 0.6

	first, resAlat, resPol, notes := CurrentDensity(unitX, unitY, unitZ, alat, pol, 1.8, jvec, consts)
	if resAlat != alat || resPol != pol {
		t.Errorf("resolved values changed: alat %g→%g, pol %g→%g", alat, resAlat, pol, resPol)
	}
	if len(notes) != 0 {
		t.Errorf("no substitutions expected, got %v", notes)
	}

	second, _, _, _ := CurrentDensity(unitX, unitY, unitZ, resAlat, resPol, 1.8, jvec, consts)
	if first != second {
		t.Errorf("repeated call differs: %v vs %v", first, second)
	}
}

func TestCurrentDensityCellVolume(t *testing.T) {
	// doubling the cell volume halves the current density
	consts := DefaultConstants()
	jvec := spin.Vector{1, 0, 0}
	const alat, pol = 2e-10, 0.5

	base, _, _, _ := CurrentDensity(unitX, unitY, unitZ, alat, pol, 1.0, jvec, consts)
	doubled, _, _, _ := CurrentDensity(unitX.Scale(2), unitY, unitZ, alat, pol, 1.0, jvec, consts)

	if math.Abs(doubled[0]*2-base[0])/math.Abs(base[0]) > 1e-12 {
		t.Errorf("volume scaling wrong: base %g, doubled cell %g", base[0], doubled[0])
	}
}

func TestCurrentDensityNegativeTripleProduct(t *testing.T) {
	// a left-handed lattice vector set must not flip the sign through a
	// negative volume
	consts := DefaultConstants()
	jvec := spin.Vector{1, 0, 0}
	const alat, pol = 2e-10, 0.5

	right, _, _, _ := CurrentDensity(unitX, unitY, unitZ, alat, pol, 1.0, jvec, consts)
	left, _, _, _ := CurrentDensity(unitY, unitX, unitZ, alat, pol, 1.0, jvec, consts)

	if right != left {
		t.Errorf("handedness leaked into the magnitude: %v vs %v", right, left)
	}
}
