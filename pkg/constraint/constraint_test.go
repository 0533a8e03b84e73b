package constraint

import (
	"testing"

	"github.com/campusforge/timetabler/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func problemWithTwoEvents(t *testing.T, weeksE1, weeksE2 string) *model.Problem {
	t.Helper()
	doc := `{
		"config": {"weeks_total": 16},
		"timeslots": [{"id": "ts1", "day": "Mon", "start": "08:00", "end": "09:00", "duration_min": 60}],
		"rooms": [{"id": "R1", "capacity": 30}, {"id": "R2", "capacity": 30}],
		"teachers": [{"id": "T1", "available": ["ts1"]}, {"id": "T2", "available": ["ts1"]}],
		"sessions": [{
			"id": "S1",
			"groups": [{"id": "G1", "size": 10, "available": ["ts1"]}, {"id": "G2", "size": 10, "available": ["ts1"]}],
			"modules": [
				{"id": "M1", "weeks": {"mode": "ranges", "values": ["` + weeksE1 + `"]}, "events": [
					{"id": "E1", "teacher_id": "T1", "duration_min": 60, "audience": {"type": "groups", "group_ids": ["G1"]}}
				]},
				{"id": "M2", "weeks": {"mode": "ranges", "values": ["` + weeksE2 + `"]}, "events": [
					{"id": "E2", "teacher_id": "T1", "duration_min": 60, "audience": {"type": "groups", "group_ids": ["G2"]}}
				]}
			]
		}]
	}`
	p, err := model.Parse([]byte(doc))
	require.NoError(t, err)
	return p
}

func TestCompatibleRejectsSameTeacherOverlappingWeeks(t *testing.T) {
	p := problemWithTwoEvents(t, "1-8", "4-10")
	c := New(p)
	assignments := []model.Assignment{{EventID: "E1", TimeslotID: "ts1", RoomID: "R1"}}

	assert.False(t, c.Compatible(assignments, "E2", "ts1", "R2"))
}

func TestCompatibleAllowsSameTeacherDisjointWeeks(t *testing.T) {
	p := problemWithTwoEvents(t, "1-8", "9-16")
	c := New(p)
	assignments := []model.Assignment{{EventID: "E1", TimeslotID: "ts1", RoomID: "R1"}}

	assert.True(t, c.Compatible(assignments, "E2", "ts1", "R2"))
}

func TestCompatibleRejectsSameRoomOverlappingWeeks(t *testing.T) {
	doc := `{
		"config": {"weeks_total": 16},
		"timeslots": [{"id": "ts1", "day": "Mon", "start": "08:00", "end": "09:00", "duration_min": 60}],
		"rooms": [{"id": "R1", "capacity": 30}],
		"teachers": [{"id": "T1", "available": ["ts1"]}, {"id": "T2", "available": ["ts1"]}],
		"sessions": [{
			"id": "S1",
			"groups": [{"id": "G1", "size": 5, "available": ["ts1"]}, {"id": "G2", "size": 5, "available": ["ts1"]}],
			"modules": [{"id": "M1", "events": [
				{"id": "E1", "teacher_id": "T1", "duration_min": 60, "audience": {"type": "groups", "group_ids": ["G1"]}},
				{"id": "E2", "teacher_id": "T2", "duration_min": 60, "audience": {"type": "groups", "group_ids": ["G2"]}}
			]}]
		}]
	}`
	p, err := model.Parse([]byte(doc))
	require.NoError(t, err)
	c := New(p)
	assignments := []model.Assignment{{EventID: "E1", TimeslotID: "ts1", RoomID: "R1"}}

	assert.False(t, c.Compatible(assignments, "E2", "ts1", "R1"))
}

func TestCompatibleIgnoresAssignmentsAtOtherSlots(t *testing.T) {
	doc := `{
		"timeslots": [
			{"id": "ts1", "day": "Mon", "start": "08:00", "end": "09:00", "duration_min": 60},
			{"id": "ts2", "day": "Mon", "start": "09:00", "end": "10:00", "duration_min": 60}
		],
		"rooms": [{"id": "R1", "capacity": 30}],
		"teachers": [{"id": "T1", "available": ["ts1", "ts2"]}],
		"sessions": [{
			"id": "S1",
			"groups": [{"id": "G1", "size": 5, "available": ["ts1", "ts2"]}],
			"modules": [{"id": "M1", "events": [
				{"id": "E1", "teacher_id": "T1", "duration_min": 60, "audience": {"type": "all_groups"}},
				{"id": "E2", "teacher_id": "T1", "duration_min": 60, "audience": {"type": "all_groups"}}
			]}]
		}]
	}`
	p, err := model.Parse([]byte(doc))
	require.NoError(t, err)
	c := New(p)
	assignments := []model.Assignment{{EventID: "E1", TimeslotID: "ts1", RoomID: "R1"}}

	assert.True(t, c.Compatible(assignments, "E2", "ts2", "R1"))
}
