package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"laptudirm.com/x/tourman/pkg/common"
	"laptudirm.com/x/tourman/pkg/tournament"
)

// Config is the user's tourman configuration, read from config.yaml.
type Config struct {
	Database  string `yaml:"database"`
	ExportDir string `yaml:"export-dir"`
	Format    string `yaml:"format"`
	LogLevel  string `yaml:"log-level"`
}

// Default returns the configuration used for any key missing from the
// configuration file.
func Default() Config {
	return Config{
		Database:  common.DatabaseFile,
		ExportDir: common.ExportDirectory,
		Format:    tournament.Swiss.String(),
		LogLevel:  logrus.InfoLevel.String(),
	}
}

// Load reads the configuration file at the given path on top of the
// defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	config := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logrus.WithField("path", path).Debug("No configuration file, using defaults")
		return config, nil
	case err != nil:
		return config, err
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return config, fmt.Errorf("parse %s: %w", path, err)
	}

	return config, config.Validate()
}

// Validate checks that the format and log level name known values.
func (config Config) Validate() error {
	if _, err := tournament.ParseFormat(config.Format); err != nil {
		return err
	}

	if _, err := logrus.ParseLevel(config.LogLevel); err != nil {
		return err
	}

	return nil
}

// Level returns the configured logging level, or Info if it is invalid.
func (config Config) Level() logrus.Level {
	level, err := logrus.ParseLevel(config.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}

	return level
}

// Create writes the configuration to the given path, unless a file already
// exists there.
func (config Config) Create(path string) error {
	if err := common.TryMkdir(filepath.Dir(path)); err != nil {
		return err
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	return common.TryCreate(path, data)
}
