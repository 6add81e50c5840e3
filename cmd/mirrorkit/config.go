package main

import (
	"errors"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fcolombo/mirrorkit"
)

// FileConfig is the YAML config file shape. Zero values mean "not
// set"; flags override file values, file values override defaults.
type FileConfig struct {
	MinBlockSize        int     `yaml:"min_block_size"`
	SimilarityThreshold float64 `yaml:"similarity_threshold"`
	MinOccurrences      int     `yaml:"min_occurrences"`
	Attrs               string  `yaml:"attrs"`
}

// LoadConfig reads the config file at path. A missing file is not an
// error; it yields an empty FileConfig.
func LoadConfig(path string) (FileConfig, error) {
	var cfg FileConfig

	buf, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		return cfg, mirrorkit.Errorf(mirrorkit.EINVALID, "config %q: %v", path, err)
	}
	return cfg, nil
}

// EngineConfig resolves the engine tunables from defaults overridden
// by the config file.
func (c FileConfig) EngineConfig() mirrorkit.Config {
	cfg := mirrorkit.DefaultConfig()
	if c.MinBlockSize > 0 {
		cfg.MinBlockSize = c.MinBlockSize
	}
	if c.SimilarityThreshold > 0 {
		cfg.SimilarityThreshold = c.SimilarityThreshold
	}
	if c.MinOccurrences > 0 {
		cfg.MinOccurrences = c.MinOccurrences
	}
	return cfg
}
