// pkg/core/load.go
package core

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	manifest "github.com/joeydtaylor/steeze-items/pkg/manifest"
)

// LoadConfig reads and validates the manifest at path. A missing file is not
// an error: the embedded default manifest is returned instead.
func LoadConfig(path string) (manifest.Config, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return manifest.Default(), nil
	}
	if err != nil {
		return manifest.Config{}, err
	}
	cfg, err := manifest.Parse(b)
	if err != nil {
		return manifest.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
