// Package intel answers the questions the intelligent restore protocol
// asks about the wider system: where the last stable backup lives, what
// version the codebase is at, and how to migrate between versions.
//
// The backup-manager and release-tracking services are not wired up yet,
// so path and version queries fall back to static defaults; the backup
// version is read from the backup's own manifest.
package intel

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/John4-pixel2/recovery-agent/internal/domain/analysis"
)

// Client resolves backup and version intelligence.
type Client struct {
	fs afero.Fs

	// StablePath and Version override the defaults when set, which lets
	// deployments pin them in bootstrap code until the real services exist.
	StablePath string
	Version    string
}

// NewClient creates a Client over the given filesystem.
func NewClient(fsys afero.Fs) *Client {
	return &Client{fs: fsys}
}

// LastStableBackupPath returns the path of the last successfully
// validated backup.
func (c *Client) LastStableBackupPath() string {
	if c.StablePath != "" {
		return c.StablePath
	}
	return "/var/backups/stable/latest"
}

// CodebaseVersion returns the version the application is currently at.
func (c *Client) CodebaseVersion() string {
	if c.Version != "" {
		return c.Version
	}
	return "v1.3.5"
}

// BackupVersion reads the version recorded in a backup's manifest.
func (c *Client) BackupVersion(backupPath string) (string, error) {
	m, err := analysis.LoadManifest(c.fs, backupPath)
	if err != nil {
		return "", fmt.Errorf("cannot determine backup version: %w", err)
	}
	if m.Version == "" {
		return "", fmt.Errorf("backup manifest at %s carries no version", backupPath)
	}
	return m.Version, nil
}

// migrations maps a (from, to) version pair to the ordered migration
// steps bridging the gap.
var migrations = map[[2]string][]string{
	{"v1.2.4", "v1.3.5"}: {
		"migrate_v1.2.4_to_v1.3.0.sql",
		"migrate_v1.3.0_to_v1.3.5.sql",
	},
	{"v1.3.0", "v1.3.5"}: {
		"migrate_v1.3.0_to_v1.3.5.sql",
	},
}

// MigrationPlan returns the migration steps from one version to another.
// An empty plan with ok=false means no known path exists and manual
// intervention is required. Identical versions yield an empty plan with
// ok=true: nothing to do.
func MigrationPlan(from, to string) ([]string, bool) {
	if from == to {
		return nil, true
	}
	steps, ok := migrations[[2]string{from, to}]
	return steps, ok
}
