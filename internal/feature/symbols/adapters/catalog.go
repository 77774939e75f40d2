package adapters

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"stock_analyzer/internal/feature/symbols/domain/entity"
)

//go:embed catalog.yaml
var catalogYAML []byte

// catalogFile mirrors the embedded catalog.yaml layout.
type catalogFile struct {
	Symbols []catalogEntry `yaml:"symbols"`
}

type catalogEntry struct {
	Code             string `yaml:"code"`
	Name             string `yaml:"name"`
	Founder          string `yaml:"founder"`
	History          string `yaml:"history"`
	PresentCondition string `yaml:"present_condition"`
}

// LoadCatalog parses the embedded symbol catalog. File order becomes the
// display order; every built-in symbol starts active.
func LoadCatalog() ([]entity.Symbol, error) {
	var f catalogFile
	if err := yaml.Unmarshal(catalogYAML, &f); err != nil {
		return nil, fmt.Errorf("parse symbol catalog: %w", err)
	}
	if len(f.Symbols) == 0 {
		return nil, fmt.Errorf("symbol catalog is empty")
	}

	out := make([]entity.Symbol, 0, len(f.Symbols))
	for i, e := range f.Symbols {
		if e.Code == "" || e.Name == "" {
			return nil, fmt.Errorf("symbol catalog entry %d: code and name are required", i)
		}
		out = append(out, entity.Symbol{
			Code:             e.Code,
			Name:             e.Name,
			Founder:          e.Founder,
			History:          e.History,
			PresentCondition: e.PresentCondition,
			IsActive:         true,
			SortKey:          i,
		})
	}
	return out, nil
}
