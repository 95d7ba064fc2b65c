package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// rawConfig mirrors Config with pointer fields so absent keys can be
// told apart from explicit zero values when applying defaults.
type rawConfig struct {
	MoveButton             *int           `yaml:"move_button"`
	ResizeButton           *int           `yaml:"resize_button"`
	Modifier               *string        `yaml:"modifier"`
	SnapModifier           *string        `yaml:"snap_modifier"`
	NudgeKey               *string        `yaml:"nudge_key"`
	NudgeStep              *int           `yaml:"nudge_step"`
	RequireFullyOnscreen   *bool          `yaml:"require_fully_onscreen"`
	RequireOnSingleMonitor *bool          `yaml:"require_on_single_monitor"`
	Logging                *rawLoggingCfg `yaml:"logging"`
	SocketPath             *string        `yaml:"socket_path"`
}

type rawLoggingCfg struct {
	Level *string `yaml:"level"`
}

func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "edgegrab", "config.yaml"), nil
}

// Load reads the configuration from the standard location and returns
// an effective config ready for use by the daemon. A missing file is
// not an error; defaults apply.
func Load() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

func LoadFromPath(path string) (*Config, error) {
	raw := rawConfig{}

	if exists, err := pathExists(path); err != nil {
		return nil, err
	} else if exists {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to read: %w", path, err)
		}
		if err := decodeStrictYAML(data, &raw); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	cfg := buildEffective(raw)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func buildEffective(raw rawConfig) *Config {
	cfg := DefaultConfig()

	if raw.MoveButton != nil {
		cfg.MoveButton = *raw.MoveButton
	}
	if raw.ResizeButton != nil {
		cfg.ResizeButton = *raw.ResizeButton
	}
	if raw.Modifier != nil {
		cfg.Modifier = *raw.Modifier
	}
	if raw.SnapModifier != nil {
		cfg.SnapModifier = *raw.SnapModifier
	}
	if raw.NudgeKey != nil {
		cfg.NudgeKey = *raw.NudgeKey
	}
	if raw.NudgeStep != nil {
		cfg.NudgeStep = *raw.NudgeStep
	}
	if raw.RequireFullyOnscreen != nil {
		cfg.RequireFullyOnscreen = *raw.RequireFullyOnscreen
	}
	if raw.RequireOnSingleMonitor != nil {
		cfg.RequireOnSingleMonitor = *raw.RequireOnSingleMonitor
	}
	if raw.Logging != nil && raw.Logging.Level != nil {
		cfg.Logging.Level = *raw.Logging.Level
	}
	if raw.SocketPath != nil {
		cfg.SocketPath = *raw.SocketPath
	}

	return cfg
}

func decodeStrictYAML(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return err
	}
	return nil
}

func pathExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
