// Package constraint checks whether a candidate (event, slot, room) triple
// is compatible with a partial assignment, enforcing the three binary
// no-double-booking rules: teacher, audience group and room, each gated on
// the two events' effective weeks actually intersecting.
package constraint

import "github.com/campusforge/timetabler/pkg/model"

// evaluator isolates the three binary predicates behind an interface so the
// conflict rule in Checker.Compatible reads as a plain conjunction rather
// than inline field comparisons.
type evaluator interface {
	sameTeacher(a, b model.Event) bool
	audienceOverlaps(a, b model.Event) bool
	weeksIntersect(a, b model.Event) bool
}

type standardEvaluator struct{}

func newStandardEvaluator() evaluator {
	return standardEvaluator{}
}

func (standardEvaluator) sameTeacher(a, b model.Event) bool {
	return a.TeacherID == b.TeacherID
}

func (standardEvaluator) audienceOverlaps(a, b model.Event) bool {
	for _, g := range a.GroupIDs {
		for _, h := range b.GroupIDs {
			if g == h {
				return true
			}
		}
	}
	return false
}

func (standardEvaluator) weeksIntersect(a, b model.Event) bool {
	return a.Weeks.Intersects(b.Weeks)
}

// Checker answers compatibility queries against a problem's events. It
// holds no per-run state: the assignment set is passed in at each call, so
// a single Checker can be shared by every branch of the search tree.
type Checker struct {
	problem   *model.Problem
	evaluator evaluator
}

// New builds a Checker bound to p.
func New(p *model.Problem) *Checker {
	return &Checker{problem: p, evaluator: newStandardEvaluator()}
}

// Compatible reports whether placing event eventID at (slotID, roomID) is
// free of conflicts against every assignment in the current state that
// shares the same timeslot and overlaps in weeks. eventID must not already
// appear in assignments.
func (c *Checker) Compatible(assignments []model.Assignment, eventID, slotID, roomID string) bool {
	candidate, ok := c.problem.Event(eventID)
	if !ok {
		return false
	}

	for _, a := range assignments {
		if a.TimeslotID != slotID {
			continue
		}
		other, ok := c.problem.Event(a.EventID)
		if !ok {
			continue
		}
		if !c.evaluator.weeksIntersect(candidate, other) {
			continue
		}
		if c.evaluator.sameTeacher(candidate, other) {
			return false
		}
		if c.evaluator.audienceOverlaps(candidate, other) {
			return false
		}
		if a.RoomID == roomID {
			return false
		}
	}
	return true
}
