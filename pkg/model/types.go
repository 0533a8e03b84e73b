package model

import "github.com/campusforge/timetabler/pkg/weekset"

// Timeslot is a fixed period of the week a lecture, tutorial or lab can be
// scheduled into.
type Timeslot struct {
	ID          string
	Day         string
	Start       string
	End         string
	DurationMin int
}

// Room is a physical space with a capacity and an optional availability
// restriction. An empty Available set means the room is available at every
// timeslot.
type Room struct {
	ID        string
	Capacity  int
	Available map[string]bool
}

// Allows reports whether the room is available at the given timeslot.
func (r Room) Allows(timeslotID string) bool {
	if len(r.Available) == 0 {
		return true
	}
	return r.Available[timeslotID]
}

// Teacher is a member of staff with an availability set. An empty Available
// set means the teacher is never available — the asymmetric counterpart to
// Room's "empty means always" convention; see DESIGN.md.
type Teacher struct {
	ID        string
	Available map[string]bool
}

// Allows reports whether the teacher is available at the given timeslot.
func (t Teacher) Allows(timeslotID string) bool {
	if len(t.Available) == 0 {
		return false
	}
	return t.Available[timeslotID]
}

// Group is a cohort of students belonging to a session. Like Teacher, an
// empty Available set means the group is never available (see DESIGN.md for
// why groups follow the teacher convention rather than the room one).
type Group struct {
	ID        string
	SessionID string
	Size      int
	Available map[string]bool
}

// Allows reports whether the group is available at the given timeslot.
func (g Group) Allows(timeslotID string) bool {
	if len(g.Available) == 0 {
		return false
	}
	return g.Available[timeslotID]
}

// Session groups a cohort's modules and the groups composing it, in
// problem-declared order.
type Session struct {
	ID        string
	GroupIDs  []string
	ModuleIDs []string
}

// Module owns an ordered list of events and carries the capacity floor and
// default week-set inherited by events that don't declare their own.
type Module struct {
	ID              string
	SessionID       string
	HoursPerWeek    *int // informational only; never used for feasibility checks
	MinRoomCapacity int
	Weeks           weekset.WeekSet
	EventIDs        []string
}

// Event is a single scheduled teaching unit. GroupIDs is the resolved
// audience. AllowedSlots is nil when the event carries no whitelist, and a
// (possibly empty) set otherwise — an explicitly empty whitelist makes the
// event infeasible, which is distinct from "no whitelist at all". Weeks is
// already the effective week-set: the event's own weeks if declared, else
// the owning module's, else the full semester.
type Event struct {
	ID           string
	SessionID    string
	ModuleID     string
	TeacherID    string
	DurationMin  int
	GroupIDs     []string
	AllowedSlots map[string]bool
	Weeks        weekset.WeekSet
}

// Assignment binds one event to a (timeslot, room) pair.
type Assignment struct {
	EventID    string
	TimeslotID string
	RoomID     string
}

// Demand is the sum of group sizes across an event's audience.
func (p *Problem) Demand(event Event) int {
	demand := 0
	for _, groupID := range event.GroupIDs {
		demand += p.Groups[p.groupByID[groupID]].Size
	}
	return demand
}

// RequiredCapacity is max(Demand(event), module.MinRoomCapacity).
func (p *Problem) RequiredCapacity(event Event) int {
	demand := p.Demand(event)
	module := p.Modules[p.moduleByID[event.ModuleID]]
	if module.MinRoomCapacity > demand {
		return module.MinRoomCapacity
	}
	return demand
}
