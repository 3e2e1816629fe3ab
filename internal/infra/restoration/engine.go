// Package restoration copies backup contents into the configured target
// directory. It is deliberately outside the diagnostic core: the
// orchestrator decides whether restoring is safe, this package only
// moves bytes.
package restoration

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"

	"github.com/John4-pixel2/recovery-agent/internal/app/config"
)

// Engine performs the restore I/O over an injected filesystem.
type Engine struct {
	fs  afero.Fs
	cfg config.Config
}

// NewEngine creates an Engine using the application's restore settings.
func NewEngine(fsys afero.Fs, cfg config.Config) *Engine {
	return &Engine{fs: fsys, cfg: cfg}
}

// Restore copies every file in backupPath matching the configured backup
// format patterns into the target directory, and returns how many files
// were copied. Zero matches is not an error. A copy failure aborts the
// run; partially restored files are left in place for inspection.
func (e *Engine) Restore(ctx context.Context, backupPath string) (int, error) {
	info, err := e.fs.Stat(backupPath)
	if err != nil {
		return 0, fmt.Errorf("backup source %s does not exist: %w", backupPath, err)
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("backup source %s is not a directory", backupPath)
	}

	targetDir := e.cfg.TargetDir()
	if info, err := e.fs.Stat(targetDir); err == nil && !info.IsDir() {
		return 0, fmt.Errorf("target %s exists but is not a directory", targetDir)
	}

	files, err := e.matchingFiles(backupPath)
	if err != nil {
		return 0, err
	}
	if len(files) == 0 {
		return 0, nil
	}

	if err := e.fs.MkdirAll(targetDir, 0o755); err != nil {
		return 0, fmt.Errorf("failed to create target directory %s: %w", targetDir, err)
	}

	restored := 0
	for _, src := range files {
		if err := ctx.Err(); err != nil {
			return restored, err
		}
		dst := filepath.Join(targetDir, filepath.Base(src))
		if err := e.copyFile(src, dst); err != nil {
			return restored, fmt.Errorf("restore aborted at %s: %w", src, err)
		}
		restored++
	}
	return restored, nil
}

// matchingFiles globs every configured pattern against the backup
// directory. Patterns are applied in sorted name order so the restore
// sequence is deterministic.
func (e *Engine) matchingFiles(backupPath string) ([]string, error) {
	names := make([]string, 0, len(e.cfg.BackupFormats()))
	for name := range e.cfg.BackupFormats() {
		names = append(names, name)
	}
	sort.Strings(names)

	var files []string
	for _, name := range names {
		pattern := e.cfg.BackupFormats()[name]
		matches, err := afero.Glob(e.fs, filepath.Join(backupPath, pattern))
		if err != nil {
			return nil, fmt.Errorf("bad backup pattern %q: %w", pattern, err)
		}
		files = append(files, matches...)
	}
	return files, nil
}

func (e *Engine) copyFile(src, dst string) error {
	in, err := e.fs.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := e.fs.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
