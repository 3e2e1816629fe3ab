package restoration

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/John4-pixel2/recovery-agent/internal/app/config"
)

func testConfig(targetDir string) config.Config {
	return config.NewAppConfig(
		"recovery-agent", false,
		targetDir,
		map[string]string{"db": "*.sql", "logs": "*.log"},
		"", 0, "info", "default", "",
	)
}

func TestRestoreCopiesMatchingFiles(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/backups/b1/db.sql", []byte("SELECT 1;"), 0o644))
	require.NoError(t, afero.WriteFile(fsys, "/backups/b1/app.log", []byte("started"), 0o644))
	require.NoError(t, afero.WriteFile(fsys, "/backups/b1/notes.txt", []byte("skip me"), 0o644))

	e := NewEngine(fsys, testConfig("/srv/restore"))
	n, err := e.Restore(context.Background(), "/backups/b1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	data, err := afero.ReadFile(fsys, "/srv/restore/db.sql")
	require.NoError(t, err)
	assert.Equal(t, "SELECT 1;", string(data))

	exists, err := afero.Exists(fsys, "/srv/restore/notes.txt")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRestoreMissingSource(t *testing.T) {
	e := NewEngine(afero.NewMemMapFs(), testConfig("/srv/restore"))
	_, err := e.Restore(context.Background(), "/backups/nowhere")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestRestoreTargetNotADirectory(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/backups/b1/db.sql", []byte("SELECT 1;"), 0o644))
	require.NoError(t, afero.WriteFile(fsys, "/srv/restore", []byte("in the way"), 0o644))

	e := NewEngine(fsys, testConfig("/srv/restore"))
	_, err := e.Restore(context.Background(), "/backups/b1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestRestoreNoMatches(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/backups/b1/readme.md", []byte("hi"), 0o644))

	e := NewEngine(fsys, testConfig("/srv/restore"))
	n, err := e.Restore(context.Background(), "/backups/b1")
	require.NoError(t, err)
	assert.Zero(t, n)
}
