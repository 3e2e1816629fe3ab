package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/John4-pixel2/recovery-agent/internal/domain/analysis"
)

func TestPlanCounters(t *testing.T) {
	p := New("/backups/b1")
	require.NotEmpty(t, p.ID)
	assert.Equal(t, "/backups/b1", p.Location)
	assert.Empty(t, p.Entries)

	p.Append(Entry{
		Finding:  analysis.Finding{Kind: analysis.KindMissingFile, Path: "/backups/b1/db.sql"},
		RuleName: "missing-file",
		Script:   "mkdir -p /backups/b1",
		Status:   StatusResolved,
	})
	p.Append(Entry{
		Finding: analysis.Finding{Kind: analysis.KindStale, Path: "/backups/b1"},
		Status:  StatusUnmatched,
	})

	assert.Equal(t, 1, p.Resolved())
	assert.Equal(t, 1, p.Unmatched())
}

func TestPlanIDsAreUnique(t *testing.T) {
	a := New("/backups/b1")
	b := New("/backups/b1")
	assert.NotEqual(t, a.ID, b.ID)
}
