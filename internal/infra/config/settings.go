package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/John4-pixel2/recovery-agent/internal/app/config"
)

// RawSettings represents the structure of the config.yaml file.
// Pointer fields distinguish "absent" from zero values so defaults can
// be applied only where the file is silent.
type RawSettings struct {
	AppName   *string `yaml:"app_name" validate:"omitempty,min=1"`
	DebugMode *bool   `yaml:"debug_mode"`

	Logging struct {
		Level *string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	} `yaml:"logging"`

	RecoverySettings struct {
		TargetDir     *string           `yaml:"target_dir"`
		BackupFormats map[string]string `yaml:"backup_formats" validate:"omitempty,dive,required"`
		EncryptKey    *string           `yaml:"encrypt_key"`
		MaxAgeDays    *int              `yaml:"max_age_days" validate:"omitempty,min=0"`
	} `yaml:"recovery_settings"`
}

// LoadSettings loads configuration from config.yaml at the given path.
// Priority: config.yaml > defaults. A missing file is not an error; the
// defaults are used and ConfigSource reports "default".
func LoadSettings(fsys afero.Fs, path string) (*config.AppConfig, error) {
	settings := &RawSettings{}
	configSource := "default"
	settingPath := ""

	if path == "" {
		path = "config.yaml"
	}

	if data, err := afero.ReadFile(fsys, path); err == nil {
		if err := yaml.Unmarshal(data, settings); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		configSource = "yaml"
		settingPath = path
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := validator.New().Struct(settings); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}

	applyDefaults(settings)

	return buildAppConfig(settings, configSource, settingPath), nil
}

// applyDefaults fills in default values for any nil fields
func applyDefaults(settings *RawSettings) {
	if settings.AppName == nil {
		v := "recovery-agent"
		settings.AppName = &v
	}
	if settings.DebugMode == nil {
		v := false
		settings.DebugMode = &v
	}
	if settings.Logging.Level == nil {
		v := "info"
		settings.Logging.Level = &v
	}
	if settings.RecoverySettings.TargetDir == nil {
		v := "./restored"
		settings.RecoverySettings.TargetDir = &v
	}
	if settings.RecoverySettings.BackupFormats == nil {
		settings.RecoverySettings.BackupFormats = map[string]string{
			"db":   "*.sql",
			"logs": "*.log",
		}
	}
	if settings.RecoverySettings.EncryptKey == nil {
		v := ""
		settings.RecoverySettings.EncryptKey = &v
	}
	if settings.RecoverySettings.MaxAgeDays == nil {
		v := 0
		settings.RecoverySettings.MaxAgeDays = &v
	}
}

// buildAppConfig converts resolved raw settings into the app-layer config
func buildAppConfig(settings *RawSettings, configSource, settingPath string) *config.AppConfig {
	return config.NewAppConfig(
		*settings.AppName,
		*settings.DebugMode,
		*settings.RecoverySettings.TargetDir,
		settings.RecoverySettings.BackupFormats,
		*settings.RecoverySettings.EncryptKey,
		time.Duration(*settings.RecoverySettings.MaxAgeDays)*24*time.Hour,
		*settings.Logging.Level,
		configSource,
		settingPath,
	)
}
