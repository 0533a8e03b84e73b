// Package search implements the frontier-based engine shared by all four
// scheduling strategies: depth-first, breadth-first, uniform-cost and A*.
// The engine itself never mutates the problem model or the domain tables;
// all per-run state (frontier, explored set, counters) belongs to exactly
// one call to Run.
package search

import (
	"fmt"
	"time"

	"github.com/campusforge/timetabler/pkg/model"
	"github.com/campusforge/timetabler/pkg/selector"
)

// Strategies lists every strategy name the engine understands, in the
// order comparison mode runs them.
var Strategies = []string{"dfs", "bfs", "ucs", "astar"}

// Heuristic estimates a non-negative lower bound on the number of steps
// remaining to a goal. The core ships Zero, kept as a hook so A* can be
// strengthened later without touching the engine.
type Heuristic func(*State) int

// Zero is the admissible-by-construction heuristic used by the core. With
// unit step costs, A* with Zero degenerates to UCS, which itself
// degenerates to BFS on cost; all three are retained as infrastructure.
func Zero(*State) int { return 0 }

// Metrics records the bookkeeping counters every strategy exposes.
type Metrics struct {
	Iterations      int
	Expanded        int
	MaxFrontierSize int
	WallTime        time.Duration
}

// Outcome is the result of one Run: either a goal state with Status
// "success", or Status "failure" after the frontier emptied.
type Outcome struct {
	Strategy string
	Status   string
	Goal     *State
	Metrics  Metrics
}

// Engine runs any of the four strategies against a fixed problem, domain
// table and constraint checker.
type Engine struct {
	problem   *model.Problem
	selector  *selector.Selector
	heuristic Heuristic
}

// New builds an Engine. heuristic may be nil, in which case Zero is used.
func New(problem *model.Problem, sel *selector.Selector, heuristic Heuristic) *Engine {
	if heuristic == nil {
		heuristic = Zero
	}
	return &Engine{problem: problem, selector: sel, heuristic: heuristic}
}

// Run executes strategy to first solution or frontier exhaustion. deadline
// is optional cooperative cancellation: a zero time.Time disables it. The
// search is not told why it stopped: callers distinguish success, failure
// and timeout from the returned error and Outcome.Status.
func (e *Engine) Run(strategy string, deadline time.Time) (Outcome, error) {
	front, err := e.newFrontier(strategy)
	if err != nil {
		return Outcome{}, err
	}

	started := time.Now()
	explored := map[string]bool{}
	front.push(initial())

	var metrics Metrics
	totalEvents := len(e.problem.Events)

	for !front.isEmpty() {
		if !deadline.IsZero() && time.Now().After(deadline) {
			metrics.WallTime = time.Since(started)
			return Outcome{Strategy: strategy, Status: "failure", Metrics: metrics},
				model.TimeoutError{Elapsed: metrics.WallTime.String()}
		}

		metrics.Iterations++
		if front.len() > metrics.MaxFrontierSize {
			metrics.MaxFrontierSize = front.len()
		}

		state := front.pop()
		fingerprint := state.Fingerprint()
		if explored[fingerprint] {
			continue
		}
		explored[fingerprint] = true
		metrics.Expanded++

		if state.IsGoal(totalEvents) {
			metrics.WallTime = time.Since(started)
			return Outcome{Strategy: strategy, Status: "success", Goal: state, Metrics: metrics}, nil
		}

		for _, child := range e.successors(state) {
			if explored[child.Fingerprint()] {
				continue
			}
			front.push(child)
		}
	}

	metrics.WallTime = time.Since(started)
	return Outcome{Strategy: strategy, Status: "failure", Metrics: metrics}, nil
}

// Compare runs every strategy in Strategies sequentially on independent
// frontier/explored state, as required of comparison mode: the four runs
// never share mutable search state, only the read-only problem model,
// domains and checker.
func (e *Engine) Compare(deadline time.Time) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(Strategies))
	for _, strategy := range Strategies {
		outcome, err := e.Run(strategy, deadline)
		if _, isTimeout := err.(model.TimeoutError); isTimeout {
			outcomes = append(outcomes, outcome)
			return outcomes, err
		}
		if err != nil {
			return outcomes, err
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes, nil
}

func (e *Engine) newFrontier(strategy string) (frontier, error) {
	switch strategy {
	case "dfs":
		return newStackFrontier(), nil
	case "bfs":
		return newQueueFrontier(), nil
	case "ucs":
		return newPriorityFrontier(func(s *State) int { return s.Cost() }), nil
	case "astar":
		h := e.heuristic
		return newPriorityFrontier(func(s *State) int { return s.Cost() + h(s) }), nil
	default:
		return nil, fmt.Errorf("search: unknown strategy %q", strategy)
	}
}

// successors expands state by selecting the next event to branch on and
// enumerating every compatible candidate for it, in problem-declared slot
// then room order. An empty result means state has no goal-reachable
// descendant, whether because every event is already assigned or because
// some unassigned event was starved of candidates.
func (e *Engine) successors(state *State) []*State {
	assignments := state.Assignments()
	assigned := state.AssignedSet()

	result := e.selector.Select(assignments, assigned)
	if result.EventID == "" || result.Dead {
		return nil
	}

	children := make([]*State, 0, len(result.Candidates))
	for _, c := range result.Candidates {
		children = append(children, state.child(model.Assignment{
			EventID:    result.EventID,
			TimeslotID: c.TimeslotID,
			RoomID:     c.RoomID,
		}))
	}
	return children
}
