package analysis

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
)

// Config controls analyzer behavior. Zero values fall back to defaults.
type Config struct {
	// MaxAge marks a backup stale when its manifest created_at is older.
	// Zero disables the staleness check.
	MaxAge time.Duration

	// DBPattern and LogPattern are the heuristic-mode globs used when a
	// backup carries no manifest.
	DBPattern  string
	LogPattern string

	// Now is overridable for tests. Nil means time.Now.
	Now func() time.Time
}

// Analyzer inspects a backup set for anomalies and emits a structured
// report. All I/O goes through the injected filesystem, so tests run
// against an in-memory fs.
//
// Per-entry failures never abort the scan: an unreadable file becomes an
// Unreadable finding and the scan continues. Only being unable to access
// the backup directory at all is fatal.
type Analyzer struct {
	fs  afero.Fs
	cfg Config
}

// NewAnalyzer creates an Analyzer over the given filesystem.
func NewAnalyzer(fsys afero.Fs, cfg Config) *Analyzer {
	if cfg.DBPattern == "" {
		cfg.DBPattern = "*.sql"
	}
	if cfg.LogPattern == "" {
		cfg.LogPattern = "*.log"
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Analyzer{fs: fsys, cfg: cfg}
}

// Analyze scans the backup at location and returns a report with zero or
// more findings in discovery order. The returned error is non-nil only
// when the backup directory itself cannot be accessed.
func (a *Analyzer) Analyze(location string) (*Report, error) {
	info, err := a.fs.Stat(location)
	if err != nil {
		return nil, fmt.Errorf("cannot access backup at %s: %w", location, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("backup location %s is not a directory", location)
	}

	report := NewReport(location)

	manifest, err := LoadManifest(a.fs, location)
	switch {
	case err == nil:
		a.analyzeManifest(report, location, manifest)
	case os.IsNotExist(err):
		a.analyzeHeuristic(report, location)
	default:
		// Manifest present but unusable. Report it and fall back to
		// the heuristic scan so the rest of the backup is still checked.
		report.Add(Finding{
			Kind:   KindCorruptEntry,
			Path:   filepath.Join(location, ManifestName),
			Detail: err.Error(),
		})
		a.analyzeHeuristic(report, location)
	}

	return report, nil
}

// analyzeManifest checks every manifest entry against the backup contents,
// in manifest order.
func (a *Analyzer) analyzeManifest(report *Report, location string, m *Manifest) {
	if a.cfg.MaxAge > 0 && !m.CreatedAt.IsZero() {
		age := a.cfg.Now().Sub(m.CreatedAt)
		if age > a.cfg.MaxAge {
			report.Add(Finding{
				Kind:   KindStale,
				Path:   location,
				Detail: fmt.Sprintf("backup is %s old (max %s)", age.Truncate(time.Second), a.cfg.MaxAge),
			})
		}
	}

	for _, entry := range m.Entries {
		full := filepath.Join(location, entry.Path)

		info, err := a.fs.Stat(full)
		if err != nil {
			report.Add(statFinding(full, err))
			continue
		}

		if info.Size() == 0 {
			report.Add(Finding{
				Kind:   KindCorruptEntry,
				Path:   full,
				Detail: "file is empty",
			})
			continue
		}
		if entry.Size > 0 && info.Size() != entry.Size {
			report.Add(Finding{
				Kind:   KindCorruptEntry,
				Path:   full,
				Detail: fmt.Sprintf("size mismatch: manifest says %d bytes, found %d", entry.Size, info.Size()),
			})
			continue
		}

		if entry.SHA256 != "" {
			data, err := afero.ReadFile(a.fs, full)
			if err != nil {
				report.Add(statFinding(full, err))
				continue
			}
			sum := sha256.Sum256(data)
			if hex.EncodeToString(sum[:]) != entry.SHA256 {
				report.Add(Finding{
					Kind:   KindCorruptEntry,
					Path:   full,
					Detail: "checksum mismatch",
				})
			}
		}
	}
}

// analyzeHeuristic applies the manifest-less heuristics: at least one
// non-empty database dump and at least one log file must be present.
func (a *Analyzer) analyzeHeuristic(report *Report, location string) {
	dbFiles, err := afero.Glob(a.fs, filepath.Join(location, a.cfg.DBPattern))
	if err != nil {
		report.Add(Finding{Kind: KindUnreadable, Path: location, Detail: err.Error()})
		return
	}

	if len(dbFiles) == 0 {
		report.Add(Finding{
			Kind:   KindMissingFile,
			Path:   location,
			Detail: fmt.Sprintf("no database files matching %q found", a.cfg.DBPattern),
		})
	} else if info, err := a.fs.Stat(dbFiles[0]); err != nil {
		report.Add(statFinding(dbFiles[0], err))
	} else if info.Size() == 0 {
		report.Add(Finding{
			Kind:   KindCorruptEntry,
			Path:   dbFiles[0],
			Detail: "file is empty",
		})
	}

	logFiles, err := afero.Glob(a.fs, filepath.Join(location, a.cfg.LogPattern))
	if err != nil {
		report.Add(Finding{Kind: KindUnreadable, Path: location, Detail: err.Error()})
		return
	}
	if len(logFiles) == 0 {
		report.Add(Finding{
			Kind:   KindUnknown,
			Path:   location,
			Detail: fmt.Sprintf("no log files matching %q found", a.cfg.LogPattern),
		})
	}
}

// statFinding maps a per-entry I/O error to the matching finding kind.
func statFinding(path string, err error) Finding {
	switch {
	case os.IsNotExist(err):
		return Finding{Kind: KindMissingFile, Path: path, Detail: err.Error()}
	case os.IsPermission(err):
		return Finding{Kind: KindPermissionDenied, Path: path, Detail: err.Error()}
	default:
		return Finding{Kind: KindUnreadable, Path: path, Detail: err.Error()}
	}
}
