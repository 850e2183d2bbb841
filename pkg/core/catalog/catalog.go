// Package catalog holds the static theme presets.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"github.com/wadjakorntonsri/go-link-in-bio/pkg/core/domain"
	"gopkg.in/yaml.v3"
)

//go:embed themes.yaml
var themesYAML []byte

type document struct {
	Themes []domain.ThemeOption `yaml:"themes"`
}

var (
	loadOnce sync.Once
	themes   []domain.ThemeOption
	loadErr  error
)

// Parse decodes a theme catalog document.
func Parse(data []byte) ([]domain.ThemeOption, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode theme catalog: %w", err)
	}
	if len(doc.Themes) == 0 {
		return nil, errors.New("theme catalog is empty")
	}
	seen := make(map[string]struct{}, len(doc.Themes))
	for _, t := range doc.Themes {
		if t.ID == "" {
			return nil, errors.New("theme without id")
		}
		if _, dup := seen[t.ID]; dup {
			return nil, fmt.Errorf("duplicate theme id %q", t.ID)
		}
		seen[t.ID] = struct{}{}
	}
	return doc.Themes, nil
}

// Themes returns the built-in catalog. The slice must not be modified.
func Themes() []domain.ThemeOption {
	loadOnce.Do(func() {
		themes, loadErr = Parse(themesYAML)
	})
	if loadErr != nil {
		// The document is compiled in; a decode failure is a build defect.
		panic(loadErr)
	}
	return themes
}
