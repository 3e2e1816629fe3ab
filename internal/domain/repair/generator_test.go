package repair

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedRule matches a fixed substring and returns a fixed script,
// so tests can control precedence without real extraction logic.
type fixedRule struct {
	name    string
	trigger string
	script  string
}

func (r fixedRule) Name() string          { return r.name }
func (r fixedRule) Matches(l string) bool { return l == r.trigger || r.trigger == "*" }
func (r fixedRule) GenerateScript(l string) (string, bool) {
	return r.script, true
}

func TestGeneratorFirstMatchWins(t *testing.T) {
	log := "both rules match this"

	g1 := NewGenerator()
	g1.Register(fixedRule{name: "r1", trigger: "*", script: "script-one"})
	g1.Register(fixedRule{name: "r2", trigger: "*", script: "script-two"})

	s, ok := g1.Generate(log)
	require.True(t, ok)
	assert.Equal(t, "r1", s.RuleName)
	assert.Equal(t, "script-one", s.Script)

	// Swapping registration order must swap the winner.
	g2 := NewGenerator()
	g2.Register(fixedRule{name: "r2", trigger: "*", script: "script-two"})
	g2.Register(fixedRule{name: "r1", trigger: "*", script: "script-one"})

	s, ok = g2.Generate(log)
	require.True(t, ok)
	assert.Equal(t, "r2", s.RuleName)
	assert.Equal(t, "script-two", s.Script)
}

func TestGeneratorNoMatch(t *testing.T) {
	t.Run("empty registry", func(t *testing.T) {
		g := NewGenerator()
		_, ok := g.Generate("Permission denied for /var/data")
		assert.False(t, ok)
	})

	t.Run("no rule matches", func(t *testing.T) {
		g := NewGenerator()
		for _, r := range DefaultRules("") {
			g.Register(r)
		}
		_, ok := g.Generate("everything is fine")
		assert.False(t, ok)
	})
}

func TestGeneratorEndToEnd(t *testing.T) {
	g := NewGenerator()
	for _, r := range DefaultRules("") {
		g.Register(r)
	}

	s, ok := g.Generate("CRITICAL: Permission denied for file /var/data/db.sql")
	require.True(t, ok)
	assert.Equal(t, "chmod -R 755 /var/data/db.sql", s.Script)
	assert.Equal(t, "permission-error", s.RuleName)
}

func TestGeneratorIdempotent(t *testing.T) {
	g := NewGenerator()
	for _, r := range DefaultRules("") {
		g.Register(r)
	}
	log := "open /srv/backup/db.sql: No such file or directory"

	first, ok1 := g.Generate(log)
	second, ok2 := g.Generate(log)
	require.True(t, ok1)
	require.True(t, ok2)
	assert.Equal(t, first, second)
}

func TestGeneratorMatchWithoutPath(t *testing.T) {
	// A matching rule that cannot extract a path short-circuits to
	// no-match rather than falling through to later rules.
	g := NewGenerator()
	for _, r := range DefaultRules("") {
		g.Register(r)
	}
	_, ok := g.Generate("Permission denied")
	assert.False(t, ok)
}
