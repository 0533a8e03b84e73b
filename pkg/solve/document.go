// Package solve is the driver layer: it wires the problem model, domain
// tables, constraint checker, variable selector and search engine together
// into one run, and assembles the resulting solution document. Only this
// package and cmd/* log; every package below it stays silent.
package solve

import (
	"sort"

	"github.com/campusforge/timetabler/pkg/model"
	"github.com/campusforge/timetabler/pkg/search"
)

// Meta mirrors the meta block of the solution document.
type Meta struct {
	WeekName        string `json:"week_name"`
	WeeksTotal      int    `json:"weeks_total"`
	Strategy        string `json:"strategy"`
	UseMRV          bool   `json:"use_mrv"`
	Status          string `json:"status"`
	EventsTotal     int    `json:"events_total"`
	EventsScheduled int    `json:"events_scheduled"`
	// Diagnostic carries the unary-domain diagnostic or the timeout
	// elapsed time when status is "failure". Omitted on success.
	Diagnostic string `json:"diagnostic,omitempty"`
}

// Assignment mirrors one entry of the assignments array.
type Assignment struct {
	EventID            string   `json:"event_id"`
	SessionID          string   `json:"session_id"`
	ModuleID           string   `json:"module_id"`
	TeacherID          string   `json:"teacher_id"`
	GroupIDs           []string `json:"group_ids"`
	TimeslotID         string   `json:"timeslot_id"`
	RoomID             string   `json:"room_id"`
	Weeks              []int    `json:"weeks"`
	DurationMin        int      `json:"duration_min"`
	DurationHours      float64  `json:"duration_hours"`
	ModuleHoursPerWeek *int     `json:"module_hours_per_week"`
	Demand             int      `json:"demand"`
	MinRoomCapacity    int      `json:"min_room_capacity"`
	RequiredCapacity   int      `json:"required_capacity"`
	RoomCapacity       int      `json:"room_capacity"`
}

// Document is the full solution document returned by a run.
type Document struct {
	Meta        Meta         `json:"meta"`
	Assignments []Assignment `json:"assignments"`
}

// BuildDocument assembles a Document from a completed search outcome. On
// failure, Assignments is empty and EventsScheduled is 0, per the output
// contract.
func BuildDocument(problem *model.Problem, cfg Config, outcome search.Outcome) Document {
	var assignments []Assignment
	if outcome.Status == "success" && outcome.Goal != nil {
		assignments = buildAssignments(problem, outcome.Goal.Assignments())
	}

	return Document{
		Meta: Meta{
			WeekName:        cfg.WeekName,
			WeeksTotal:      cfg.WeeksTotal,
			Strategy:        outcome.Strategy,
			UseMRV:          cfg.UseMRV,
			Status:          outcome.Status,
			EventsTotal:     len(problem.Events),
			EventsScheduled: len(assignments),
		},
		Assignments: assignments,
	}
}

func buildAssignments(problem *model.Problem, raw []model.Assignment) []Assignment {
	out := make([]Assignment, 0, len(raw))
	for _, a := range raw {
		event, ok := problem.Event(a.EventID)
		if !ok {
			continue
		}
		module := problem.ModuleOf(event)
		room, _ := problem.Room(a.RoomID)

		out = append(out, Assignment{
			EventID:            event.ID,
			SessionID:          event.SessionID,
			ModuleID:           event.ModuleID,
			TeacherID:          event.TeacherID,
			GroupIDs:           event.GroupIDs,
			TimeslotID:         a.TimeslotID,
			RoomID:             a.RoomID,
			Weeks:              event.Weeks.ToSortedList(),
			DurationMin:        event.DurationMin,
			DurationHours:      float64(event.DurationMin) / 60,
			ModuleHoursPerWeek: module.HoursPerWeek,
			Demand:             problem.Demand(event),
			MinRoomCapacity:    module.MinRoomCapacity,
			RequiredCapacity:   problem.RequiredCapacity(event),
			RoomCapacity:       room.Capacity,
		})
	}

	// Canonical order, same rule as the search engine's explored-set
	// fingerprint, so repeated runs produce byte-identical documents.
	sort.Slice(out, func(i, j int) bool { return out[i].EventID < out[j].EventID })
	return out
}
