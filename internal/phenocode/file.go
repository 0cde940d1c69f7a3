package phenocode

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileEntry is one trait/frequency pair in a YAML frequency file.
type fileEntry struct {
	Trait     string  `yaml:"trait"`
	Frequency float64 `yaml:"frequency"`
}

// frequencyFile is the on-disk YAML representation of a frequency table.
// Entries are a list, not a mapping, so document order is preserved. That
// order is the codec's deterministic tie-break key.
type frequencyFile struct {
	Traits []fileEntry `yaml:"traits"`
}

// LoadFrequencyFile reads a YAML frequency table file.
func LoadFrequencyFile(path string) (*FrequencyTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading frequency file: %w", err)
	}
	return ParseFrequencyTable(data)
}

// ParseFrequencyTable builds a frequency table from YAML data.
func ParseFrequencyTable(data []byte) (*FrequencyTable, error) {
	var f frequencyFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing frequency file: %w", err)
	}

	ft := NewFrequencyTable()
	for _, e := range f.Traits {
		if err := ft.Set(e.Trait, e.Frequency); err != nil {
			return nil, err
		}
	}
	if ft.Len() == 0 {
		return nil, ErrEmptyAlphabet
	}
	return ft, nil
}
