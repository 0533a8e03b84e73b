package solve

import (
	"time"

	"github.com/campusforge/timetabler/pkg/constraint"
	"github.com/campusforge/timetabler/pkg/domain"
	"github.com/campusforge/timetabler/pkg/model"
	"github.com/campusforge/timetabler/pkg/search"
	"github.com/campusforge/timetabler/pkg/selector"
)

// Result pairs the assembled solution document with the raw search
// outcome, so callers that only need metrics don't have to re-derive them
// from the document.
type Result struct {
	Document Document
	Outcome  search.Outcome
}

// Run executes one strategy against problem and assembles the resulting
// document. An empty unary domain or a fired deadline are normal
// terminations: both surface as a "failure" document with a diagnostic.
// An empty domain returns a nil error; a fired deadline also returns the
// model.TimeoutError alongside the document. deadline is optional; a zero
// time.Time disables cooperative cancellation.
func Run(problem *model.Problem, cfg Config, deadline time.Time) (Result, error) {
	domains, err := domain.Compute(problem)
	if err != nil {
		infeasible, ok := err.(model.InfeasibleError)
		if !ok {
			return Result{}, err
		}
		return Result{Document: Document{Meta: Meta{
			WeekName:        cfg.WeekName,
			WeeksTotal:      cfg.WeeksTotal,
			Strategy:        cfg.Strategy,
			UseMRV:          cfg.UseMRV,
			Status:          "failure",
			EventsTotal:     len(problem.Events),
			EventsScheduled: 0,
			Diagnostic:      infeasible.Error(),
		}}}, nil
	}

	engine := newEngine(problem, domains, cfg.UseMRV)

	outcome, err := engine.Run(cfg.Strategy, deadline)
	doc := BuildDocument(problem, cfg, outcome)
	if err != nil {
		if timeout, ok := err.(model.TimeoutError); ok {
			doc.Meta.Diagnostic = timeout.Error()
			return Result{Document: doc, Outcome: outcome}, err
		}
		return Result{}, err
	}
	return Result{Document: doc, Outcome: outcome}, nil
}

// Compare runs every strategy to first solution sequentially, reusing one
// set of pre-computed domains, and assembles one document per strategy. An
// empty unary domain is a normal termination, exactly as in Run: every
// strategy gets its own "failure" document with the same diagnostic,
// without ever reaching the search engine.
func Compare(problem *model.Problem, cfg Config, deadline time.Time) ([]Result, error) {
	domains, err := domain.Compute(problem)
	if err != nil {
		infeasible, ok := err.(model.InfeasibleError)
		if !ok {
			return nil, err
		}
		results := make([]Result, 0, len(search.Strategies))
		for _, strategy := range search.Strategies {
			strategyCfg := cfg
			strategyCfg.Strategy = strategy
			results = append(results, Result{
				Document: Document{Meta: Meta{
					WeekName:        strategyCfg.WeekName,
					WeeksTotal:      strategyCfg.WeeksTotal,
					Strategy:        strategy,
					UseMRV:          strategyCfg.UseMRV,
					Status:          "failure",
					EventsTotal:     len(problem.Events),
					EventsScheduled: 0,
					Diagnostic:      infeasible.Error(),
				}},
				Outcome: search.Outcome{Strategy: strategy, Status: "failure"},
			})
		}
		return results, nil
	}

	engine := newEngine(problem, domains, cfg.UseMRV)

	outcomes, err := engine.Compare(deadline)
	results := make([]Result, 0, len(outcomes))
	for _, outcome := range outcomes {
		strategyCfg := cfg
		strategyCfg.Strategy = outcome.Strategy
		results = append(results, Result{Document: BuildDocument(problem, strategyCfg, outcome), Outcome: outcome})
	}
	if timeout, ok := err.(model.TimeoutError); ok && len(results) > 0 {
		results[len(results)-1].Document.Meta.Diagnostic = timeout.Error()
	}
	return results, err
}

func newEngine(problem *model.Problem, domains *domain.Tables, useMRV bool) *search.Engine {
	checker := constraint.New(problem)
	sel := selector.New(problem, domains, checker, useMRV)
	return search.New(problem, sel, nil)
}
