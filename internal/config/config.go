// Package config loads optional run defaults (scaling factor, sample count,
// default file paths) from ~/.genovo.yaml, exactly as the teacher's own
// cmd/vibe-vep/config.go loads its settings file: flags override config,
// config overrides built-in defaults. Grounded on
// cmd/vibe-vep/config.go's viper usage, adapted from a single flat
// vibe-vep.yaml key space to genovo's pipeline settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Keys are the recognized ~/.genovo.yaml settings, with their built-in
// defaults (used when neither a flag nor the config file sets them).
const (
	KeyScalingFactor       = "scaling-factor"
	KeyNumberOfSamples     = "number-of-random-samples"
	KeyGFF3                = "gff3"
	KeyGenome              = "genome"
	KeyPointMutationProbs  = "point-mutation-probabilities"
	KeyIndelMutationProbs  = "indel-mutation-probabilities"
	KeyPositionAdjustment  = "position-adjustment"
)

var defaults = map[string]any{
	KeyScalingFactor:      1.0,
	KeyNumberOfSamples:    1000,
	KeyPositionAdjustment: -1,
}

// defaultConfigPath returns ~/.genovo.yaml, or "" if the home directory
// cannot be determined.
func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".genovo.yaml")
}

// Load reads ~/.genovo.yaml into viper's global config, applying built-in
// defaults first so Get/GetFloat64/etc. always return a usable value even
// when the config file is absent. A missing file is not an error; a
// malformed one is.
func Load() error {
	for key, value := range defaults {
		viper.SetDefault(key, value)
	}

	path := defaultConfigPath()
	if path == "" {
		return nil
	}
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	return nil
}

// Show renders every currently-set configuration value as YAML, the same
// output shape as cmd/vibe-vep/config.go's `config` (no-args) subcommand.
func Show() (string, error) {
	settings := viper.AllSettings()
	if len(settings) == 0 {
		return fmt.Sprintf("# No configuration set. Config file: %s\n", defaultConfigPath()), nil
	}
	out, err := yaml.Marshal(settings)
	if err != nil {
		return "", fmt.Errorf("marshaling config: %w", err)
	}
	return string(out), nil
}

// Set assigns key=value in viper and persists it to ~/.genovo.yaml,
// matching cmd/vibe-vep/config.go's runConfigSet boolean-like coercion.
func Set(key, value string) (string, error) {
	switch value {
	case "true", "yes", "on":
		viper.Set(key, true)
	case "false", "no", "off":
		viper.Set(key, false)
	default:
		viper.Set(key, value)
	}

	path := viper.ConfigFileUsed()
	if path == "" {
		path = defaultConfigPath()
		if path == "" {
			return "", fmt.Errorf("cannot determine home directory")
		}
	}
	if err := viper.WriteConfigAs(path); err != nil {
		return "", fmt.Errorf("writing config: %w", err)
	}
	return path, nil
}

// Get returns the configured value for key, or an error if unset.
func Get(key string) (any, error) {
	val := viper.Get(key)
	if val == nil {
		return nil, fmt.Errorf("key %q is not set", key)
	}
	return val, nil
}
