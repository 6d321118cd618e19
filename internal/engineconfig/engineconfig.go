package engineconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"slingshot/internal/physics"
)

// EngineConfigPath is the path to the preferences file, relative to the process working directory.
const EngineConfigPath = "config/slingshot.json"

// Prefs holds the simulation tunables and debug overlay toggles. Persisted across runs.
// Level layout lives in the level file, not here.
type Prefs struct {
	Gravity        float32 `json:"gravity"`
	AirFriction    float32 `json:"air_friction"`
	FixedDelta     float32 `json:"fixed_delta"`
	SlingshotPower float32 `json:"slingshot_power"`
	LaunchRadius   float32 `json:"launch_radius"`
	ShowFPS        bool    `json:"show_fps"`
	ShowForces     bool    `json:"show_forces"`
	LevelPath      string  `json:"level_path,omitempty"`
}

// Default returns the tunables of the shipped play scene with overlays off.
func Default() Prefs {
	step := physics.DefaultStepConfig()
	return Prefs{
		Gravity:        step.Gravity,
		AirFriction:    step.AirFriction,
		FixedDelta:     step.FixedDelta,
		SlingshotPower: 20000,
		LaunchRadius:   75,
	}
}

// StepConfig builds the per-tick physics configuration. suspended pauses integration.
func (p Prefs) StepConfig(suspended bool) physics.StepConfig {
	return physics.StepConfig{
		Gravity:     p.Gravity,
		AirFriction: p.AirFriction,
		FixedDelta:  p.FixedDelta,
		Suspended:   suspended,
	}
}

// Validate checks the step tunables and the slingshot settings.
func (p Prefs) Validate() error {
	if err := p.StepConfig(false).Validate(); err != nil {
		return fmt.Errorf("engineconfig: %w", err)
	}
	if !(p.SlingshotPower > 0) || !(p.LaunchRadius > 0) {
		return fmt.Errorf("engineconfig: slingshot power %g and launch radius %g must be positive", p.SlingshotPower, p.LaunchRadius)
	}
	return nil
}

// LoadFrom reads preferences from path. A missing or unreadable file yields Default() and does not
// create a file. Keys absent from the file keep their default values; a file that decodes but fails
// Validate is reported as an error alongside the defaults.
func LoadFrom(path string) (Prefs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), nil
	}
	p := Default()
	if err := json.Unmarshal(data, &p); err != nil {
		return Default(), nil
	}
	if err := p.Validate(); err != nil {
		return Default(), err
	}
	return p, nil
}

// SaveTo writes preferences to path, creating the parent directory if needed.
func SaveTo(path string, p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
