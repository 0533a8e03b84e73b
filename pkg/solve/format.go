package solve

import (
	"fmt"
	"sort"
	"strings"

	"github.com/campusforge/timetabler/pkg/model"
)

// FormatSchedule renders a solution document as a human-readable table,
// one line per assignment, sorted by (day, start, event id). On failure it
// reports the diagnostic instead.
func FormatSchedule(problem *model.Problem, doc Document) string {
	if doc.Meta.Status != "success" {
		if doc.Meta.Diagnostic != "" {
			return fmt.Sprintf("no schedule found: %s\n", doc.Meta.Diagnostic)
		}
		return "no schedule found\n"
	}

	type row struct {
		day, start, line string
	}
	rows := make([]row, 0, len(doc.Assignments))
	for _, a := range doc.Assignments {
		slot, _ := problem.Timeslot(a.TimeslotID)
		event, _ := problem.Event(a.EventID)
		line := fmt.Sprintf("%-4s %s-%s  %-8s %-8s teacher=%-8s room=%-6s weeks=%s",
			slot.Day, slot.Start, slot.End, a.EventID, a.ModuleID, a.TeacherID, a.RoomID, event.Weeks.RangeString())
		rows = append(rows, row{day: slot.Day, start: slot.Start, line: line})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].day != rows[j].day {
			return rows[i].day < rows[j].day
		}
		if rows[i].start != rows[j].start {
			return rows[i].start < rows[j].start
		}
		return rows[i].line < rows[j].line
	})

	var b strings.Builder
	for _, r := range rows {
		b.WriteString(r.line)
		b.WriteByte('\n')
	}
	return b.String()
}
