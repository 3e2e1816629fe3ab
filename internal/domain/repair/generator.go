package repair

// Suggestion is the outcome of a successful rule match: the name of the
// rule that won and the script it generated.
type Suggestion struct {
	RuleName string
	Script   string
}

// Generator holds an ordered registry of rules and evaluates them against
// a log. Registration order is priority order: the first registered rule
// whose Matches returns true wins, and later rules are never invoked.
//
// A Generator is read-only after setup, so a single instance may be
// shared across concurrent read-only evaluations.
type Generator struct {
	rules []Rule
}

// NewGenerator creates a Generator with an empty registry.
func NewGenerator() *Generator {
	return &Generator{}
}

// Register appends a rule to the registry. Duplicates are permitted;
// there is no removal operation.
func (g *Generator) Register(rule Rule) {
	g.rules = append(g.rules, rule)
}

// Rules returns the number of registered rules.
func (g *Generator) Rules() int {
	return len(g.rules)
}

// Generate evaluates the registry in registration order and returns the
// first matching rule's script. The second return value is false when no
// rule matched, or when the winning rule could not extract what it needed
// from the log. "No rule found" is an expected, reportable outcome and is
// never surfaced as an error.
func (g *Generator) Generate(log string) (Suggestion, bool) {
	for _, rule := range g.rules {
		if !rule.Matches(log) {
			continue
		}
		script, ok := rule.GenerateScript(log)
		if !ok {
			return Suggestion{}, false
		}
		return Suggestion{RuleName: rule.Name(), Script: script}, true
	}
	return Suggestion{}, false
}

// DefaultRules returns the standard rule set in its standard priority
// order. The caller may append tenant-aware or site-specific rules before
// handing the generator to an orchestrator.
func DefaultRules(tenant string) []Rule {
	return []Rule{
		PermissionErrorRule{Tenant: tenant},
		MissingFileRule{},
		CorruptionRule{},
	}
}
