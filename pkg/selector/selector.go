// Package selector picks the next event to branch on during search, either
// by minimum remaining values (MRV) or by plain insertion order.
package selector

import (
	"github.com/samber/lo"

	"github.com/campusforge/timetabler/pkg/constraint"
	"github.com/campusforge/timetabler/pkg/domain"
	"github.com/campusforge/timetabler/pkg/model"
)

// Result is the outcome of selecting a variable against a partial
// assignment. Dead is true when some unassigned event, not necessarily the
// one selected, was found to have zero compatible candidates: in that case
// the state has no goal-reachable descendant and the caller should treat
// the successor set as empty without even branching on Candidates.
type Result struct {
	EventID    string
	Candidates []domain.Candidate
	Dead       bool
}

// Selector chooses the next unassigned event to branch on.
type Selector struct {
	problem *model.Problem
	domains *domain.Tables
	checker *constraint.Checker
	useMRV  bool
}

// New builds a Selector over problem's events, using pre-computed domains
// and a shared constraint checker.
func New(problem *model.Problem, domains *domain.Tables, checker *constraint.Checker, useMRV bool) *Selector {
	return &Selector{problem: problem, domains: domains, checker: checker, useMRV: useMRV}
}

// Select examines every unassigned event (problem.Events minus the ids in
// assigned) and returns the one to branch on next.
func (s *Selector) Select(assignments []model.Assignment, assigned map[string]bool) Result {
	var result Result
	best := -1
	haveSelected := false

	for _, event := range s.problem.Events {
		if assigned[event.ID] {
			continue
		}

		candidates := s.compatibleCandidates(assignments, event.ID)
		if len(candidates) == 0 {
			result.Dead = true
		}

		if s.useMRV {
			if !haveSelected || len(candidates) < best {
				best = len(candidates)
				result.EventID = event.ID
				result.Candidates = candidates
				haveSelected = true
			}
		} else if !haveSelected {
			result.EventID = event.ID
			result.Candidates = candidates
			haveSelected = true
		}
	}

	return result
}

// compatibleCandidates filters an event's pre-computed unary domain down to
// the candidates also accepted by the constraint checker against the
// current assignment set.
func (s *Selector) compatibleCandidates(assignments []model.Assignment, eventID string) []domain.Candidate {
	return lo.Filter(s.domains.Domain(eventID), func(c domain.Candidate, _ int) bool {
		return s.checker.Compatible(assignments, eventID, c.TimeslotID, c.RoomID)
	})
}
