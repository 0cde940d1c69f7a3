package evolution

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Scenario defines a simulation run: which strain evolves, which genes it
// attempts, and how fast.
type Scenario struct {
	// Strain is the strain ID; empty means a generated ID.
	Strain string `yaml:"strain,omitempty"`

	// Steps are candidate gene IDs, attempted in order.
	Steps []string `yaml:"steps"`

	// Interval is the delay between steps. Zero runs at full speed.
	Interval time.Duration `yaml:"-"`
}

// scenarioFile is the YAML shape; the interval is a duration string ("1s",
// "250ms") since yaml.v3 has no native duration support.
type scenarioFile struct {
	Strain   string   `yaml:"strain,omitempty"`
	Steps    []string `yaml:"steps"`
	Interval string   `yaml:"interval,omitempty"`
}

// LoadScenario reads a YAML scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}

	var f scenarioFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing scenario file: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("scenario defines no steps")
	}

	sc := &Scenario{Strain: f.Strain, Steps: f.Steps}
	if f.Interval != "" {
		d, err := time.ParseDuration(f.Interval)
		if err != nil {
			return nil, fmt.Errorf("parsing scenario interval: %w", err)
		}
		sc.Interval = d
	}
	return sc, nil
}
