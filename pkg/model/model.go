// Package model holds the immutable problem description: timeslots, rooms,
// teachers, groups, modules and events, with every cross-reference already
// resolved to an index. The problem model is read-only after
// construction and shared by every downstream package.
package model

import "github.com/campusforge/timetabler/pkg/weekset"

// Problem is the validated, resolved input to the scheduler. Every id
// referenced anywhere in Problem is guaranteed to resolve; callers never
// need to re-check.
type Problem struct {
	WeekName   string
	WeeksTotal int
	Strategy   string
	UseMRV     bool

	Timeslots []Timeslot
	Rooms     []Room
	Teachers  []Teacher
	Sessions  []Session
	Groups    []Group
	Modules   []Module
	Events    []Event

	timeslotByID    map[string]int
	roomByID        map[string]int
	teacherByID     map[string]int
	groupByID       map[string]int
	moduleByID      map[string]int
	eventByID       map[string]int
	eventsBySession map[string][]string
}

// Timeslot returns the timeslot with the given id.
func (p *Problem) Timeslot(id string) (Timeslot, bool) {
	idx, ok := p.timeslotByID[id]
	if !ok {
		return Timeslot{}, false
	}
	return p.Timeslots[idx], true
}

// Room returns the room with the given id.
func (p *Problem) Room(id string) (Room, bool) {
	idx, ok := p.roomByID[id]
	if !ok {
		return Room{}, false
	}
	return p.Rooms[idx], true
}

// Teacher returns the teacher with the given id.
func (p *Problem) Teacher(id string) (Teacher, bool) {
	idx, ok := p.teacherByID[id]
	if !ok {
		return Teacher{}, false
	}
	return p.Teachers[idx], true
}

// Group returns the group with the given id.
func (p *Problem) Group(id string) (Group, bool) {
	idx, ok := p.groupByID[id]
	if !ok {
		return Group{}, false
	}
	return p.Groups[idx], true
}

// Module returns the module with the given id.
func (p *Problem) Module(id string) (Module, bool) {
	idx, ok := p.moduleByID[id]
	if !ok {
		return Module{}, false
	}
	return p.Modules[idx], true
}

// Event returns the event with the given id.
func (p *Problem) Event(id string) (Event, bool) {
	idx, ok := p.eventByID[id]
	if !ok {
		return Event{}, false
	}
	return p.Events[idx], true
}

// ModuleOf returns the module owning event.
func (p *Problem) ModuleOf(event Event) Module {
	return p.Modules[p.moduleByID[event.ModuleID]]
}

// EventsBySession returns the event ids belonging to sessionID, in
// problem-declared order.
func (p *Problem) EventsBySession(sessionID string) []string {
	return p.eventsBySession[sessionID]
}

// EffectiveWeeks returns the week-set an event actually runs on: already
// resolved at validation time to the event's own weeks, falling back to its
// module's, falling back to the full semester.
func (p *Problem) EffectiveWeeks(event Event) weekset.WeekSet {
	return event.Weeks
}

// AudienceGroups returns the resolved group ids attending event.
func (p *Problem) AudienceGroups(event Event) []string {
	return event.GroupIDs
}
