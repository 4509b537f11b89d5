package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/spintorque/internal/spin"
)

// STTMode selects which spin-transfer-torque kernel runs, if any.
type STTMode int

const (
	// STTDisabled computes no spin-transfer torque.
	STTDisabled STTMode = iota
	// STTAdiabatic computes the adiabatic + non-adiabatic torque from the
	// spatial derivative of the moment field.
	STTAdiabatic
	// STTFixedLayer computes the torque against a static per-atom current
	// polarization vector.
	STTFixedLayer
)

func (m STTMode) String() string {
	switch m {
	case STTAdiabatic:
		return "adiabatic"
	case STTFixedLayer:
		return "fixed-layer"
	default:
		return "disabled"
	}
}

// ParseSTTMode accepts the single-letter legacy codes (N/A/F) as well as
// the spelled-out mode names, case-insensitively.
func ParseSTTMode(s string) (STTMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "n", "disabled", "none":
		return STTDisabled, nil
	case "a", "adiabatic":
		return STTAdiabatic, nil
	case "f", "fixed-layer", "fixed_layer", "fixed":
		return STTFixedLayer, nil
	}
	return STTDisabled, fmt.Errorf("unknown stt mode %q", s)
}

func (m STTMode) MarshalYAML() (interface{}, error) {
	return m.String(), nil
}

func (m *STTMode) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	mode, err := ParseSTTMode(s)
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// Config holds every parameter of the torque-field computation. It is
// built once before the run and passed read-only into the kernels; there
// is no process-wide state.
type Config struct {
	STT                 STTMode     `yaml:"stt"`
	SHE                 bool        `yaml:"do_she"`
	SiteCurrentFromFile bool        `yaml:"jsite"`
	JVec                spin.Vector `yaml:"jvec"`
	JVecFile            string      `yaml:"jvec_file"`
	AdiBeta             float64     `yaml:"adibeta"`
	SpinPolarization    float64     `yaml:"spin_pol"`
	SHEAngle            float64     `yaml:"she_angle"`
	FerroThickness      float64     `yaml:"thick_ferro"`
}

// Default returns the all-disabled configuration: no torque terms active,
// all scalars zero. Matches the state before any input has been read.
func Default() *Config {
	return &Config{}
}

// Load reads a YAML configuration file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Active reports whether any torque term is enabled at all.
func (c *Config) Active() bool {
	return c.STT != STTDisabled || c.SHE
}
