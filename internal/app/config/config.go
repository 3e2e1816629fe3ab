package config

import "time"

// Config provides read-only access to application configuration.
// This interface abstracts the configuration source (YAML, defaults)
// and ensures the app layer doesn't depend on infrastructure details.
type Config interface {
	// Identity
	AppName() string // Application name used in reports
	DebugMode() bool // Enable debug-level logging

	// Restoration settings
	TargetDir() string                // Directory files are restored into
	BackupFormats() map[string]string // Named glob patterns (db, logs, ...)
	EncryptKey() string               // Optional decryption key for backups

	// Analysis settings
	MaxBackupAge() time.Duration // Backups older than this are flagged stale; 0 disables

	// Logging
	StderrLevel() string // Minimum stderr log level (debug, info, warn, error)

	// Metadata
	ConfigSource() string // Source of configuration: "yaml" or "default"
	SettingPath() string  // Path to config.yaml if loaded from file
}

// AppConfig is the concrete implementation of Config interface.
// It holds all configuration values loaded from various sources.
type AppConfig struct {
	appName   string
	debugMode bool

	targetDir     string
	backupFormats map[string]string
	encryptKey    string

	maxBackupAge time.Duration

	stderrLevel string

	configSource string
	settingPath  string
}

// NewAppConfig creates an AppConfig with all values resolved.
// Called by the infra config loader after defaults are applied.
func NewAppConfig(
	appName string, debugMode bool,
	targetDir string, backupFormats map[string]string, encryptKey string,
	maxBackupAge time.Duration,
	stderrLevel string,
	configSource, settingPath string,
) *AppConfig {
	return &AppConfig{
		appName:       appName,
		debugMode:     debugMode,
		targetDir:     targetDir,
		backupFormats: backupFormats,
		encryptKey:    encryptKey,
		maxBackupAge:  maxBackupAge,
		stderrLevel:   stderrLevel,
		configSource:  configSource,
		settingPath:   settingPath,
	}
}

// AppName returns the application name used in reports
func (c *AppConfig) AppName() string {
	return c.appName
}

// DebugMode reports whether debug-level logging is enabled
func (c *AppConfig) DebugMode() bool {
	return c.debugMode
}

// TargetDir returns the directory files are restored into
func (c *AppConfig) TargetDir() string {
	return c.targetDir
}

// BackupFormats returns the named glob patterns for backup contents
func (c *AppConfig) BackupFormats() map[string]string {
	return c.backupFormats
}

// EncryptKey returns the optional decryption key for backups
func (c *AppConfig) EncryptKey() string {
	return c.encryptKey
}

// MaxBackupAge returns the staleness threshold for backups
func (c *AppConfig) MaxBackupAge() time.Duration {
	return c.maxBackupAge
}

// StderrLevel returns the minimum stderr log level
func (c *AppConfig) StderrLevel() string {
	return c.stderrLevel
}

// ConfigSource returns where the configuration came from
func (c *AppConfig) ConfigSource() string {
	return c.configSource
}

// SettingPath returns the path to config.yaml if one was loaded
func (c *AppConfig) SettingPath() string {
	return c.settingPath
}
