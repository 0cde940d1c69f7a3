package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/driftlab/genograph/internal/models"
)

// File is the on-disk YAML representation of a gene catalog.
type File struct {
	Version string        `yaml:"version,omitempty"`
	Genes   []models.Gene `yaml:"genes"`
}

// LoadFile reads a YAML catalog file, builds and validates the catalog.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	return Parse(data)
}

// Parse builds a catalog from YAML catalog data.
func Parse(data []byte) (*Catalog, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog file: %w", err)
	}
	if len(f.Genes) == 0 {
		return nil, fmt.Errorf("catalog file defines no genes")
	}
	return Build(f.Genes)
}
