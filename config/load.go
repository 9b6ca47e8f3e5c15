package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lucasbern/sweeprun"
)

// Load reads and parses the YAML tree description at path (spec §6). A
// missing file and a malformed document are both ConfigErrors, distinct from
// the tree-structure errors Build reports.
func Load(path string) (*RootConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", sweeprun.ErrConfigNotFound, path)
		}
		return nil, err
	}

	var cfg RootConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", sweeprun.ErrMalformedConfig, err)
	}
	return &cfg, nil
}
