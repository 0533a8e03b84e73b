// Package domain pre-computes, for every event, the set of (timeslot, room)
// pairs that satisfy the event's unary constraints: duration match, the
// allowed-slot whitelist, teacher/group/room availability and room
// capacity. The pre-computed tables are read-only and shared across every
// search strategy.
package domain

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/campusforge/timetabler/pkg/model"
)

// Candidate is one unary-feasible (timeslot, room) pair for an event.
type Candidate struct {
	TimeslotID string
	RoomID     string
}

// Tables holds the pre-computed domain of every event, in problem-declared
// order (slots first, then rooms, matching the successor enumeration order
// of the search engine).
type Tables struct {
	byEvent map[string][]Candidate
}

// Domain returns the pre-computed candidate list for eventID.
func (t *Tables) Domain(eventID string) []Candidate {
	return t.byEvent[eventID]
}

// Size returns |domain(e)|, used directly by the MRV selector.
func (t *Tables) Size(eventID string) int {
	return len(t.byEvent[eventID])
}

// Compute builds the domain tables for every event in p. It returns
// model.InfeasibleError for the first event (in problem-declared order)
// whose domain turns out empty, naming the specific unary rule that
// eliminated every candidate.
func Compute(p *model.Problem) (*Tables, error) {
	tables := &Tables{byEvent: make(map[string][]Candidate, len(p.Events))}

	for _, event := range p.Events {
		candidates, diagnostic := domainOf(p, event)
		if len(candidates) == 0 {
			return nil, model.InfeasibleError{EventID: event.ID, Diagnostic: diagnostic}
		}
		tables.byEvent[event.ID] = candidates
	}

	return tables, nil
}

// domainOf filters timeslots and rooms down, one unary rule at a time, so
// that whichever rule first leaves zero survivors is the one reported as
// the diagnostic.
func domainOf(p *model.Problem, event model.Event) ([]Candidate, string) {
	slots := p.Timeslots

	durationMatched := lo.Filter(slots, func(s model.Timeslot, _ int) bool { return s.DurationMin == event.DurationMin })
	if len(durationMatched) == 0 {
		return nil, fmt.Sprintf("no timeslot has duration_min == %d", event.DurationMin)
	}
	slots = durationMatched

	if event.AllowedSlots != nil {
		whitelisted := lo.Filter(slots, func(s model.Timeslot, _ int) bool { return event.AllowedSlots[s.ID] })
		if len(whitelisted) == 0 {
			if len(event.AllowedSlots) == 0 {
				return nil, "allowed_slots is empty"
			}
			return nil, "no allowed_slot has a matching duration"
		}
		slots = whitelisted
	}

	teacher, _ := p.Teacher(event.TeacherID)
	teacherFree := lo.Filter(slots, func(s model.Timeslot, _ int) bool { return teacher.Allows(s.ID) })
	if len(teacherFree) == 0 {
		return nil, fmt.Sprintf("teacher %q is not available at any candidate slot", event.TeacherID)
	}
	slots = teacherFree

	audience := lo.Map(event.GroupIDs, func(groupID string, _ int) model.Group {
		group, _ := p.Group(groupID)
		return group
	})
	groupsFree := lo.Filter(slots, func(s model.Timeslot, _ int) bool {
		return !lo.SomeBy(audience, func(group model.Group) bool { return !group.Allows(s.ID) })
	})
	if len(groupsFree) == 0 {
		return nil, "no candidate slot is available to every audience group"
	}
	slots = groupsFree

	requiredCapacity := p.RequiredCapacity(event)
	roomsWithCapacity := lo.Filter(p.Rooms, func(r model.Room, _ int) bool { return r.Capacity >= requiredCapacity })
	if len(roomsWithCapacity) == 0 {
		return nil, fmt.Sprintf("no room has capacity >= %d", requiredCapacity)
	}

	var candidates []Candidate
	for _, slot := range slots {
		for _, room := range roomsWithCapacity {
			if room.Allows(slot.ID) {
				candidates = append(candidates, Candidate{TimeslotID: slot.ID, RoomID: room.ID})
			}
		}
	}
	if len(candidates) == 0 {
		return nil, "no room with sufficient capacity is available at any candidate slot"
	}

	return candidates, ""
}
