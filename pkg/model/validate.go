package model

import (
	"fmt"
	"slices"

	"github.com/campusforge/timetabler/pkg/weekset"
	"github.com/samber/lo"
)

const defaultWeeksTotal = 16

var validStrategies = []string{"dfs", "bfs", "ucs", "astar", "all"}

// validate builds the resolved, indexed Problem from a raw decode,
// enforcing every structural invariant. It is the sole place shape assumptions
// are checked: downstream packages treat every field of Problem as a
// precondition, never re-validating.
func validate(raw rawProblem) (*Problem, error) {
	weeksTotal := defaultWeeksTotal
	if raw.Config.WeeksTotal != nil {
		weeksTotal = *raw.Config.WeeksTotal
	}
	if weeksTotal < 1 {
		return nil, InvariantViolatedError{Entity: "config", Rule: fmt.Sprintf("weeks_total must be >= 1, got %d", weeksTotal)}
	}

	strategy := raw.Config.Strategy
	if strategy == "" {
		strategy = "dfs"
	}
	if !slices.Contains(validStrategies, strategy) {
		return nil, InvariantViolatedError{Entity: "config", Rule: fmt.Sprintf("unknown strategy %q", strategy)}
	}

	useMRV := true
	if raw.Config.UseMRV != nil {
		useMRV = *raw.Config.UseMRV
	}

	p := &Problem{
		WeekName:   raw.Config.WeekName,
		WeeksTotal: weeksTotal,
		Strategy:   strategy,
		UseMRV:     useMRV,

		timeslotByID:    map[string]int{},
		roomByID:        map[string]int{},
		teacherByID:     map[string]int{},
		groupByID:       map[string]int{},
		moduleByID:      map[string]int{},
		eventByID:       map[string]int{},
		eventsBySession: map[string][]string{},
	}

	if err := p.loadTimeslots(raw.Timeslots); err != nil {
		return nil, err
	}
	if err := p.loadRooms(raw.Rooms); err != nil {
		return nil, err
	}
	if err := p.loadTeachers(raw.Teachers); err != nil {
		return nil, err
	}
	if err := p.loadSessions(raw.Sessions); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Problem) loadTimeslots(raw []rawTimeslot) error {
	for _, rt := range raw {
		if rt.ID == "" {
			return InputMalformedError{Detail: "timeslot missing id"}
		}
		if _, ok := p.timeslotByID[rt.ID]; ok {
			return InvariantViolatedError{Entity: "timeslot:" + rt.ID, Rule: "duplicate timeslot id"}
		}
		p.timeslotByID[rt.ID] = len(p.Timeslots)
		p.Timeslots = append(p.Timeslots, Timeslot{
			ID:          rt.ID,
			Day:         rt.Day,
			Start:       rt.Start,
			End:         rt.End,
			DurationMin: rt.DurationMin,
		})
	}
	return nil
}

func (p *Problem) loadRooms(raw []rawRoom) error {
	for _, rr := range raw {
		if _, ok := p.roomByID[rr.ID]; ok {
			return InvariantViolatedError{Entity: "room:" + rr.ID, Rule: "duplicate room id"}
		}
		available, err := p.resolveTimeslotSet("room:"+rr.ID, rr.Available)
		if err != nil {
			return err
		}
		p.roomByID[rr.ID] = len(p.Rooms)
		p.Rooms = append(p.Rooms, Room{ID: rr.ID, Capacity: rr.Capacity, Available: available})
	}
	return nil
}

func (p *Problem) loadTeachers(raw []rawTeacher) error {
	for _, rt := range raw {
		if _, ok := p.teacherByID[rt.ID]; ok {
			return InvariantViolatedError{Entity: "teacher:" + rt.ID, Rule: "duplicate teacher id"}
		}
		available, err := p.resolveTimeslotSet("teacher:"+rt.ID, rt.Available)
		if err != nil {
			return err
		}
		p.teacherByID[rt.ID] = len(p.Teachers)
		p.Teachers = append(p.Teachers, Teacher{ID: rt.ID, Available: available})
	}
	return nil
}

func (p *Problem) loadSessions(raw []rawSession) error {
	for _, rs := range raw {
		if _, ok := lo.Find(p.Sessions, func(s Session) bool { return s.ID == rs.ID }); ok {
			return InvariantViolatedError{Entity: "session:" + rs.ID, Rule: "duplicate session id"}
		}

		session := Session{ID: rs.ID}

		for _, rg := range rs.Groups {
			if _, ok := p.groupByID[rg.ID]; ok {
				return InvariantViolatedError{Entity: "group:" + rg.ID, Rule: "duplicate group id"}
			}
			available, err := p.resolveTimeslotSet("group:"+rg.ID, rg.Available)
			if err != nil {
				return err
			}
			p.groupByID[rg.ID] = len(p.Groups)
			p.Groups = append(p.Groups, Group{ID: rg.ID, SessionID: rs.ID, Size: rg.Size, Available: available})
			session.GroupIDs = append(session.GroupIDs, rg.ID)
		}

		for _, rm := range rs.Modules {
			if err := p.loadModule(&session, rm); err != nil {
				return err
			}
		}

		p.Sessions = append(p.Sessions, session)
	}
	return nil
}

func (p *Problem) loadModule(session *Session, rm rawModule) error {
	if _, ok := p.moduleByID[rm.ID]; ok {
		return InvariantViolatedError{Entity: "module:" + rm.ID, Rule: "duplicate module id"}
	}

	minRoomCapacity := 0
	if rm.MinRoomCapacity != nil {
		minRoomCapacity = *rm.MinRoomCapacity
	}

	moduleWeeks, err := resolveWeeks(rm.Weeks, p.WeeksTotal, "module:"+rm.ID)
	if err != nil {
		return err
	}

	module := Module{
		ID:              rm.ID,
		SessionID:       session.ID,
		HoursPerWeek:    rm.HoursPerWeek,
		MinRoomCapacity: minRoomCapacity,
		Weeks:           moduleWeeks,
	}

	p.moduleByID[rm.ID] = len(p.Modules)
	session.ModuleIDs = append(session.ModuleIDs, rm.ID)

	for _, re := range rm.Events {
		event, err := p.resolveEvent(session, &module, re)
		if err != nil {
			return err
		}
		module.EventIDs = append(module.EventIDs, event.ID)
		p.eventByID[event.ID] = len(p.Events)
		p.Events = append(p.Events, *event)
		p.eventsBySession[session.ID] = append(p.eventsBySession[session.ID], event.ID)
	}

	p.Modules = append(p.Modules, module)
	return nil
}

func (p *Problem) resolveEvent(session *Session, module *Module, re rawEvent) (*Event, error) {
	if re.ID == "" {
		return nil, InputMalformedError{Detail: "event missing id"}
	}
	if _, ok := p.eventByID[re.ID]; ok {
		return nil, InvariantViolatedError{Entity: "event:" + re.ID, Rule: "duplicate event id"}
	}
	if _, ok := p.teacherByID[re.TeacherID]; !ok {
		return nil, ReferenceUnresolvedError{Entity: "event:" + re.ID, Field: "teacher_id", Ref: re.TeacherID}
	}

	groupIDs, err := p.resolveAudience(session, re)
	if err != nil {
		return nil, err
	}

	var allowedSlots map[string]bool
	if re.AllowedSlots != nil {
		allowedSlots = map[string]bool{}
		for _, slotID := range re.AllowedSlots {
			idx, ok := p.timeslotByID[slotID]
			if !ok {
				return nil, ReferenceUnresolvedError{Entity: "event:" + re.ID, Field: "allowed_slots", Ref: slotID}
			}
			if p.Timeslots[idx].DurationMin != re.DurationMin {
				return nil, InvariantViolatedError{
					Entity: "event:" + re.ID,
					Rule:   fmt.Sprintf("allowed slot %q has duration %d, event duration is %d", slotID, p.Timeslots[idx].DurationMin, re.DurationMin),
				}
			}
			allowedSlots[slotID] = true
		}
	}

	weeks := module.Weeks
	if re.Weeks != nil {
		var err error
		weeks, err = resolveWeeks(re.Weeks, p.WeeksTotal, "event:"+re.ID)
		if err != nil {
			return nil, err
		}
	}

	return &Event{
		ID:           re.ID,
		SessionID:    session.ID,
		ModuleID:     module.ID,
		TeacherID:    re.TeacherID,
		DurationMin:  re.DurationMin,
		GroupIDs:     groupIDs,
		AllowedSlots: allowedSlots,
		Weeks:        weeks,
	}, nil
}

func (p *Problem) resolveAudience(session *Session, re rawEvent) ([]string, error) {
	switch re.Audience.Type {
	case "all_groups":
		return slices.Clone(session.GroupIDs), nil
	case "groups":
		if len(re.Audience.GroupIDs) == 0 {
			return nil, InvariantViolatedError{Entity: "event:" + re.ID, Rule: "audience of type \"groups\" must be non-empty"}
		}
		seen := map[string]bool{}
		groupIDs := make([]string, 0, len(re.Audience.GroupIDs))
		for _, groupID := range re.Audience.GroupIDs {
			idx, ok := p.groupByID[groupID]
			if !ok {
				return nil, ReferenceUnresolvedError{Entity: "event:" + re.ID, Field: "audience.group_ids", Ref: groupID}
			}
			if p.Groups[idx].SessionID != session.ID {
				return nil, InvariantViolatedError{Entity: "event:" + re.ID, Rule: fmt.Sprintf("group %q does not belong to session %q", groupID, session.ID)}
			}
			if seen[groupID] {
				continue
			}
			seen[groupID] = true
			groupIDs = append(groupIDs, groupID)
		}
		return groupIDs, nil
	default:
		return nil, InvariantViolatedError{Entity: "event:" + re.ID, Rule: fmt.Sprintf("unknown audience.type %q", re.Audience.Type)}
	}
}

// resolveTimeslotSet validates that every id in ids refers to a defined
// timeslot and returns the resolved membership set. A nil/empty ids yields
// a nil set, which Room/Teacher/Group.Allows interprets per their own
// always/never convention.
func (p *Problem) resolveTimeslotSet(entity string, ids []string) (map[string]bool, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		if _, ok := p.timeslotByID[id]; !ok {
			return nil, ReferenceUnresolvedError{Entity: entity, Field: "available", Ref: id}
		}
		set[id] = true
	}
	return set, nil
}

func resolveWeeks(raw *rawWeeks, weeksTotal int, entity string) (weekset.WeekSet, error) {
	if raw == nil {
		return weekset.FromAll(weeksTotal), nil
	}
	switch raw.Mode {
	case "all":
		return weekset.FromAll(weeksTotal), nil
	case "list":
		weeks := make([]int, 0, len(raw.Values))
		for _, v := range raw.Values {
			n, err := toInt(v)
			if err != nil {
				return weekset.WeekSet{}, InvariantViolatedError{Entity: entity, Rule: fmt.Sprintf("weeks.values: %v", err)}
			}
			weeks = append(weeks, n)
		}
		ws, err := weekset.FromList(weeksTotal, weeks)
		if err != nil {
			return weekset.WeekSet{}, InvariantViolatedError{Entity: entity, Rule: err.Error()}
		}
		return ws, nil
	case "ranges":
		ranges := make([]string, 0, len(raw.Values))
		for _, v := range raw.Values {
			s, ok := v.(string)
			if !ok {
				return weekset.WeekSet{}, InvariantViolatedError{Entity: entity, Rule: fmt.Sprintf("weeks.values: range %v is not a string", v)}
			}
			ranges = append(ranges, s)
		}
		ws, err := weekset.FromRanges(weeksTotal, ranges)
		if err != nil {
			return weekset.WeekSet{}, InvariantViolatedError{Entity: entity, Rule: err.Error()}
		}
		return ws, nil
	default:
		return weekset.WeekSet{}, InvariantViolatedError{Entity: entity, Rule: fmt.Sprintf("unknown weeks.mode %q", raw.Mode)}
	}
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case float64:
		return int(n), nil
	case int:
		return n, nil
	case int64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("%v is not a number", v)
	}
}
