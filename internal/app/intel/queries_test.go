package intel

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackupVersion(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/backups/stable/manifest.yaml",
		[]byte("version: v1.2.4\nentries:\n  - path: db.sql\n"), 0o644))

	c := NewClient(fsys)

	v, err := c.BackupVersion("/backups/stable")
	require.NoError(t, err)
	assert.Equal(t, "v1.2.4", v)

	_, err = c.BackupVersion("/backups/nowhere")
	assert.Error(t, err)
}

func TestBackupVersionMissingField(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/backups/stable/manifest.yaml",
		[]byte("entries:\n  - path: db.sql\n"), 0o644))

	_, err := NewClient(fsys).BackupVersion("/backups/stable")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no version")
}

func TestClientOverrides(t *testing.T) {
	c := NewClient(afero.NewMemMapFs())
	assert.Equal(t, "/var/backups/stable/latest", c.LastStableBackupPath())
	assert.Equal(t, "v1.3.5", c.CodebaseVersion())

	c.StablePath = "/mnt/backups/pinned"
	c.Version = "v2.0.0"
	assert.Equal(t, "/mnt/backups/pinned", c.LastStableBackupPath())
	assert.Equal(t, "v2.0.0", c.CodebaseVersion())
}

func TestMigrationPlan(t *testing.T) {
	steps, ok := MigrationPlan("v1.2.4", "v1.3.5")
	require.True(t, ok)
	assert.Equal(t, []string{
		"migrate_v1.2.4_to_v1.3.0.sql",
		"migrate_v1.3.0_to_v1.3.5.sql",
	}, steps)

	steps, ok = MigrationPlan("v1.3.5", "v1.3.5")
	assert.True(t, ok)
	assert.Empty(t, steps)

	_, ok = MigrationPlan("v0.9.0", "v1.3.5")
	assert.False(t, ok)
}
