package manifest

import (
	_ "embed"
	"errors"
	"path"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

//go:embed default.toml
var defaultManifest []byte

// Config is the top-level manifest.
type Config struct {
	// BasePath prefixes every route, e.g. "/api/v1". Empty mounts at root.
	BasePath string  `toml:"base_path"`
	Routes   []Route `toml:"route"`
}

// Validate normalizes the base path and every route, then checks them.
func (c *Config) Validate() error {
	bp, err := normalizeBase(c.BasePath)
	if err != nil {
		return err
	}
	c.BasePath = bp
	if len(c.Routes) == 0 {
		return errors.New("manifest: at least one [[route]] required")
	}
	return c.validateRoutes()
}

// FullPath returns the mount path of r under the base path.
func (c Config) FullPath(r Route) string {
	if c.BasePath == "" {
		return r.Path
	}
	return path.Join(c.BasePath, r.Path)
}

// Parse decodes and validates a TOML manifest.
func Parse(b []byte) (Config, error) {
	var cfg Config
	if err := toml.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the manifest compiled into the binary.
func Default() Config {
	cfg, err := Parse(defaultManifest)
	if err != nil {
		panic("manifest: embedded default invalid: " + err.Error())
	}
	return cfg
}

func normalizeBase(bp string) (string, error) {
	bp = strings.TrimSpace(bp)
	if bp == "" || bp == "/" {
		return "", nil
	}
	if strings.ContainsAny(bp, "{}*") {
		return "", errors.New("manifest: base_path must not contain patterns")
	}
	if !strings.HasPrefix(bp, "/") {
		bp = "/" + bp
	}
	return path.Clean(bp), nil
}
