package shared

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadArtistNames reads the list of artist names to export.
//
// Files ending in .yaml or .yml are decoded as a YAML sequence, anything else as a JSON array of strings.
// Entries are trimmed and blank entries dropped.
func LoadArtistNames(path string) ([]string, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: no name list path configured", ErrNameList)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNameList, err)
	}

	var raw []string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	default:
		err = json.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode %s: %v", ErrNameList, path, err)
	}

	names := make([]string, 0, len(raw))
	for _, n := range raw {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names, nil
}
