package search

import (
	"sort"
	"strings"

	"github.com/campusforge/timetabler/pkg/model"
)

// State is one node of the search tree: a persistent, parent-pointer
// assignment set. Each non-root state adds exactly one assignment to its
// parent's set, so states along a branch never need to be copied.
type State struct {
	parent     *State
	assignment model.Assignment
	depth      int
	cost       int
}

// initial returns the empty assignment, the root of every search tree.
func initial() *State {
	return &State{}
}

// Depth is the number of assignments made so far.
func (s *State) Depth() int {
	return s.depth
}

// Cost is the cumulative path cost from the root (unit step costs, so this
// equals Depth for the core engine).
func (s *State) Cost() int {
	return s.cost
}

// IsGoal reports whether every one of totalEvents events has been assigned.
func (s *State) IsGoal(totalEvents int) bool {
	return s.depth == totalEvents
}

// Assignments walks the parent chain and returns every assignment made
// along this branch, in no particular order.
func (s *State) Assignments() []model.Assignment {
	out := make([]model.Assignment, 0, s.depth)
	for cur := s; cur.parent != nil; cur = cur.parent {
		out = append(out, cur.assignment)
	}
	return out
}

// AssignedSet returns the set of event ids already assigned along this
// branch.
func (s *State) AssignedSet() map[string]bool {
	assigned := make(map[string]bool, s.depth)
	for cur := s; cur.parent != nil; cur = cur.parent {
		assigned[cur.assignment.EventID] = true
	}
	return assigned
}

// child returns a new state extending s with one more assignment.
func (s *State) child(assignment model.Assignment) *State {
	return &State{parent: s, assignment: assignment, depth: s.depth + 1, cost: s.cost + 1}
}

// Fingerprint is the canonical representation of this state's assignment
// set: sorted by event id, so that two branches reaching the same partial
// assignment in different orders collide in the explored set.
func (s *State) Fingerprint() string {
	assignments := s.Assignments()
	sort.Slice(assignments, func(i, j int) bool { return assignments[i].EventID < assignments[j].EventID })

	var b strings.Builder
	for _, a := range assignments {
		b.WriteString(a.EventID)
		b.WriteByte(':')
		b.WriteString(a.TimeslotID)
		b.WriteByte(':')
		b.WriteString(a.RoomID)
		b.WriteByte(';')
	}
	return b.String()
}
