package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

// Load loads the configuration from the directory.
func Load(path string) (*Configuration, error) {
	return load(afero.NewOsFs(), path)
}

func load(base afero.Fs, path string) (*Configuration, error) {
	// If given the path to a config.yaml file, move back up a level.
	if filepath.Base(path) == ConfigurationName {
		path = filepath.Dir(path)
	}

	configContents, err := afero.ReadFile(base, filepath.Join(path, ConfigurationName))
	if err != nil {
		return nil, err
	}
	var out Configuration
	if err := yaml.UnmarshalStrict(configContents, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", ConfigurationName, err)
	}
	out.configurationDir = path
	out.configFs = afero.NewBasePathFs(base, path)

	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", ConfigurationName, err)
	}
	return &out, nil
}

// Initialize writes the default configuration to dir unless one already
// exists, then loads it.
func Initialize(dir string, logger *log.Logger) (*Configuration, error) {
	return initialize(afero.NewOsFs(), dir, logger)
}

func initialize(base afero.Fs, dir string, logger *log.Logger) (*Configuration, error) {
	if err := base.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}

	configPath := filepath.Join(dir, ConfigurationName)
	switch _, err := base.Stat(configPath); {
	case err == nil:
		logger.Printf("Using existing configuration %s\n", configPath)
	case os.IsNotExist(err):
		if err := afero.WriteFile(base, configPath, defaultConfigData, 0600); err != nil {
			return nil, err
		}
		logger.Printf("Created configuration %s\n", configPath)
	default:
		return nil, err
	}

	return load(base, dir)
}
