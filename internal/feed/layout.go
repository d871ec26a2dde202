package feed

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed layouts.yaml
var defaultLayoutsYAML []byte

// Layout names for the column-mapped feeds.
const (
	LayoutVersion = "version"
	LayoutOS      = "os"
)

// Layout maps column indexes of one feed to count labels. Columns absent
// from the map are ignored; MinColumns guards against a silent upstream
// layout change mis-mapping every cell.
type Layout struct {
	MinColumns int            `yaml:"min_columns"`
	Columns    map[int]string `yaml:"columns"`
}

// LayoutSet is a versioned collection of feed layouts.
type LayoutSet struct {
	Revision int               `yaml:"revision"`
	Feeds    map[string]Layout `yaml:"feeds"`
}

// DefaultLayouts returns the layout tables embedded in the binary.
func DefaultLayouts() (*LayoutSet, error) {
	return ParseLayouts(defaultLayoutsYAML)
}

// ParseLayouts decodes layout tables from YAML.
func ParseLayouts(data []byte) (*LayoutSet, error) {
	var set LayoutSet

	err := yaml.Unmarshal(data, &set)
	if err != nil {
		return nil, fmt.Errorf("parse feed layouts: %w", err)
	}

	for name, layout := range set.Feeds {
		if len(layout.Columns) == 0 {
			return nil, fmt.Errorf("%w: layout %q maps no columns", ErrUnknownLayout, name)
		}
	}

	return &set, nil
}

// Feed returns the layout registered under name.
func (s *LayoutSet) Feed(name string) (Layout, error) {
	layout, ok := s.Feeds[name]
	if !ok {
		return Layout{}, fmt.Errorf("%w: %q", ErrUnknownLayout, name)
	}

	return layout, nil
}
