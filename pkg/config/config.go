package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/i5heu/GoNativeCollections/internal/testbench"
)

// Config is an alias for testbench.Config. This allows other programs to import
// the bench configuration without pulling in the entire testbench package.
type Config = testbench.Config

// Default returns the built-in bench profile.
func Default() Config {
	return testbench.DefaultConfig()
}

// Parse decodes a YAML profile, fills unset fields with defaults and
// validates the result. Unknown keys are rejected; an empty document is the
// default profile.
//
//	capacity: 4096
//	iterations: 5
//	duration: 3s
//	workloads: [fill-drain, fill-clear]
func Parse(data []byte) (Config, error) {
	var cfg Config

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode bench profile: %w", err)
	}

	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid bench profile: %w", err)
	}
	return cfg, nil
}

// Load reads and parses the profile at path. An empty path yields Default.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read bench profile %q: %w", path, err)
	}
	return Parse(data)
}
