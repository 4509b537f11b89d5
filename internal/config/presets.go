package config

import "github.com/san-kum/spintorque/internal/spin"

// Presets are ready-made torque configurations for common demo setups.
// Physical scalars are order-of-magnitude values for a thin 3d-metal film,
// not fits to any particular material.
var Presets = map[string]*Config{
	"fixed-layer": {
		STT:  STTFixedLayer,
		JVec: spin.Vector{0, 0, 1},
	},
	"adiabatic-chain": {
		STT:     STTAdiabatic,
		JVec:    spin.Vector{1, 0, 0},
		AdiBeta: 0.05,
	},
	"she-film": {
		SHE:              true,
		JVec:             spin.Vector{1, 0, 0},
		SpinPolarization: 0.4,
		SHEAngle:         0.08,
		FerroThickness:   1.2e-9,
	},
	"combined": {
		STT:              STTAdiabatic,
		SHE:              true,
		JVec:             spin.Vector{1, 0, 0},
		AdiBeta:          0.05,
		SpinPolarization: 0.4,
		SHEAngle:         0.08,
		FerroThickness:   1.2e-9,
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
