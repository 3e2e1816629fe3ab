package cli

import (
	"bytes"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunRepairSuggestsScript(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/logs/error.log",
		[]byte("CRITICAL: Permission denied for file /var/data/db.sql"), 0o644))

	var out bytes.Buffer
	err := runRepair(fsys, &out, "/logs/error.log", "", "")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "chmod -R 755 /var/data/db.sql")
}

func TestRunRepairNoMatch(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/logs/error.log",
		[]byte("something inscrutable happened"), 0o644))

	var out bytes.Buffer
	err := runRepair(fsys, &out, "/logs/error.log", "", "")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "No repair suggestion found")
}

func TestRunRepairMissingLog(t *testing.T) {
	var out bytes.Buffer
	err := runRepair(afero.NewMemMapFs(), &out, "/logs/nope.log", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read error log")
}

func TestRunRepairSavesScript(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/logs/error.log",
		[]byte("open /srv/backup/db.sql: No such file or directory"), 0o644))

	var out bytes.Buffer
	err := runRepair(fsys, &out, "/logs/error.log", "", "/out/repair.sh")
	require.NoError(t, err)

	data, err := afero.ReadFile(fsys, "/out/repair.sh")
	require.NoError(t, err)
	assert.Equal(t, "mkdir -p /srv/backup\n", string(data))
}

func TestRunRepairTenant(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/logs/error.log",
		[]byte("Permission denied for file /srv/data"), 0o644))

	var out bytes.Buffer
	err := runRepair(fsys, &out, "/logs/error.log", "acme", "")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "chown -R acme_user:acme_group /srv/data")
	assert.Contains(t, out.String(), "chmod -R 755 /srv/data")
}
