// Package orchestrator implements the intelligent restore protocol:
// diagnose the backup, match every finding against the repair rule
// registry, and assemble an ordered repair plan.
package orchestrator

import (
	"context"
	"fmt"

	"github.com/John4-pixel2/recovery-agent/internal/domain/analysis"
	"github.com/John4-pixel2/recovery-agent/internal/domain/plan"
	"github.com/John4-pixel2/recovery-agent/internal/domain/repair"
)

// State is a phase of the intelligent restore protocol.
type State string

const (
	StateStart      State = "start"
	StateDiagnosing State = "diagnosing"
	StateGenerating State = "generating"
	StatePlanning   State = "planning"
	StateDone       State = "done"
)

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithTransitionHook registers a callback invoked on every state
// transition. Used by the CLI for progress output and by tests.
func WithTransitionHook(hook func(from, to State)) Option {
	return func(o *Orchestrator) {
		o.onTransition = hook
	}
}

// Orchestrator sequences one analysis-and-repair run. It owns no mutable
// state across runs; the same instance may be reused, but each Run is an
// independent pass over the backup.
type Orchestrator struct {
	analyzer     *analysis.Analyzer
	generator    *repair.Generator
	onTransition func(from, to State)
	state        State
}

// New creates an Orchestrator over an analyzer and a fully registered
// rule generator. The generator must not be mutated after this point.
func New(analyzer *analysis.Analyzer, generator *repair.Generator, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		analyzer:  analyzer,
		generator: generator,
		state:     StateStart,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// State returns the current protocol state.
func (o *Orchestrator) State() State {
	return o.state
}

func (o *Orchestrator) transition(to State) {
	from := o.state
	o.state = to
	if o.onTransition != nil {
		o.onTransition(from, to)
	}
}

// Run executes the protocol against the backup at location and returns
// the repair plan. Findings the registry cannot resolve become unmatched
// plan entries; they never abort the run. Only a fatal analyzer error
// (backup inaccessible) is returned to the caller, in which case the
// plan is nil.
//
// The protocol always terminates in StateDone on success; finding order
// from the analyzer is preserved in the plan.
func (o *Orchestrator) Run(ctx context.Context, location string) (*plan.Plan, error) {
	o.state = StateStart
	o.transition(StateDiagnosing)

	report, err := o.analyzer.Analyze(location)
	if err != nil {
		return nil, fmt.Errorf("diagnosis failed: %w", err)
	}

	p := plan.New(location)

	if !report.HasFindings() {
		o.transition(StateDone)
		return p, nil
	}

	o.transition(StateGenerating)
	for _, finding := range report.Findings {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record := repair.NewLogRecord(finding.LogLine(), location)
		suggestion, ok := o.generator.Generate(record.Text)
		if !ok {
			p.Append(plan.Entry{
				Finding: finding,
				Status:  plan.StatusUnmatched,
			})
			continue
		}
		p.Append(plan.Entry{
			Finding:  finding,
			RuleName: suggestion.RuleName,
			Script:   suggestion.Script,
			Status:   plan.StatusResolved,
		})
	}

	o.transition(StatePlanning)
	o.transition(StateDone)
	return p, nil
}
