package seed

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// LoadFile reads one rate card, choosing the decoder by extension.
func LoadFile(path string) (*RateCard, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		return ParseYAML(content, filepath.Base(path))
	case ".xlsx":
		return LoadXLSX(path)
	default:
		return nil, fmt.Errorf("%s: unsupported rate card format", path)
	}
}

// LoadDir reads every rate card in dir in lexical file order, so numbered
// files (001_canvas.yaml, 002_metal.yaml) apply in sequence.
func LoadDir(dir string) ([]*RateCard, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read rate card directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".yaml", ".yml", ".xlsx":
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	cards := make([]*RateCard, 0, len(names))
	for _, name := range names {
		card, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}
