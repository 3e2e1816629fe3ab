package analysis

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// ManifestName is the expected manifest file inside a backup directory.
const ManifestName = "manifest.yaml"

// ManifestEntry describes one expected file in a backup set. Size and
// SHA256 are optional; zero/empty values disable the respective check.
type ManifestEntry struct {
	Path   string `yaml:"path"`
	Size   int64  `yaml:"size,omitempty"`
	SHA256 string `yaml:"sha256,omitempty"`
}

// Manifest lists the files a backup must contain, plus metadata used for
// staleness and version checks.
type Manifest struct {
	Version   string          `yaml:"version,omitempty"`
	CreatedAt time.Time       `yaml:"created_at,omitempty"`
	Entries   []ManifestEntry `yaml:"entries"`
}

// LoadManifest reads and parses manifest.yaml from the given backup
// directory. A missing manifest is reported via afero's IsNotExist-able
// error so callers can fall back to heuristic analysis.
func LoadManifest(fsys afero.Fs, dir string) (*Manifest, error) {
	data, err := afero.ReadFile(fsys, filepath.Join(dir, ManifestName))
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ManifestName, err)
	}

	for i, e := range m.Entries {
		if e.Path == "" {
			return nil, fmt.Errorf("%s: entry %d has no path", ManifestName, i)
		}
	}
	return &m, nil
}
