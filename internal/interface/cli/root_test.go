package cli

import (
	"bytes"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// executeRoot runs the root command against an in-memory filesystem and
// captures its output.
func executeRoot(t *testing.T, fsys afero.Fs, args ...string) (string, error) {
	t.Helper()

	prevFs := globalFs
	globalFs = fsys
	t.Cleanup(func() { globalFs = prevFs })

	cmd := NewRoot()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootVersion(t *testing.T) {
	out, err := executeRoot(t, afero.NewMemMapFs(), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "recovery-agent")
}

func TestRootLoadsConfigBeforeCommands(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/etc/agent/config.yaml",
		[]byte("app_name: backup-medic\n"), 0o644))

	_, err := executeRoot(t, fsys, "--config", "/etc/agent/config.yaml", "version")
	require.NoError(t, err)
	require.NotNil(t, globalConfig)
	assert.Equal(t, "backup-medic", globalConfig.AppName())
}

func TestRootAnalyzeRequiresBackup(t *testing.T) {
	_, err := executeRoot(t, afero.NewMemMapFs(), "analyze")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--backup is required")
}

func TestRootAnalyzeEndToEnd(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/backups/b1/manifest.yaml",
		[]byte("entries:\n  - path: db.sql\n"), 0o644))

	out, err := executeRoot(t, fsys, "analyze", "--backup", "/backups/b1")
	require.NoError(t, err)
	assert.Contains(t, out, "missing_file")
}

func TestRootRejectsBrokenConfig(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "config.yaml",
		[]byte("logging:\n  level: shouting\n"), 0o644))

	_, err := executeRoot(t, fsys, "version")
	assert.Error(t, err)
}
