package search

import (
	"testing"
	"time"

	"github.com/campusforge/timetabler/pkg/constraint"
	"github.com/campusforge/timetabler/pkg/domain"
	"github.com/campusforge/timetabler/pkg/model"
	"github.com/campusforge/timetabler/pkg/selector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildEngine(t *testing.T, doc string, useMRV bool) (*model.Problem, *Engine) {
	t.Helper()
	p, err := model.Parse([]byte(doc))
	require.NoError(t, err)
	domains, err := domain.Compute(p)
	require.NoError(t, err)
	checker := constraint.New(p)
	sel := selector.New(p, domains, checker, useMRV)
	return p, New(p, sel, nil)
}

const twoEventsTwoSlotsOneRoom = `{
	"timeslots": [
		{"id": "ts1", "day": "Mon", "start": "08:00", "end": "09:00", "duration_min": 60},
		{"id": "ts2", "day": "Mon", "start": "09:00", "end": "10:00", "duration_min": 60}
	],
	"rooms": [{"id": "R1", "capacity": 30}],
	"teachers": [{"id": "T1", "available": ["ts1", "ts2"]}],
	"sessions": [{
		"id": "S1",
		"groups": [{"id": "G1", "size": 10, "available": ["ts1", "ts2"]}],
		"modules": [{"id": "M1", "events": [
			{"id": "E1", "teacher_id": "T1", "duration_min": 60, "audience": {"type": "all_groups"}},
			{"id": "E2", "teacher_id": "T1", "duration_min": 60, "audience": {"type": "all_groups"}}
		]}]
	}]
}`

func TestRunFindsSolutionForEveryStrategy(t *testing.T) {
	for _, strategy := range Strategies {
		t.Run(strategy, func(t *testing.T) {
			_, engine := buildEngine(t, twoEventsTwoSlotsOneRoom, true)
			outcome, err := engine.Run(strategy, time.Time{})
			require.NoError(t, err)
			assert.Equal(t, "success", outcome.Status)
			require.NotNil(t, outcome.Goal)
			assert.Equal(t, 2, outcome.Goal.Depth())
		})
	}
}

func TestRunIsDeterministicAcrossRepeatedCalls(t *testing.T) {
	_, engine := buildEngine(t, twoEventsTwoSlotsOneRoom, true)

	first, err := engine.Run("dfs", time.Time{})
	require.NoError(t, err)
	second, err := engine.Run("dfs", time.Time{})
	require.NoError(t, err)

	assert.Equal(t, first.Goal.Fingerprint(), second.Goal.Fingerprint())
}

func TestRunReturnsFailureWhenOnlyOneRoomForTwoSimultaneousEvents(t *testing.T) {
	doc := `{
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
	_, engine := buildEngine(t, doc, true)
	outcome, err := engine.Run("dfs", time.Time{})
	require.NoError(t, err)
	assert.Equal(t, "failure", outcome.Status)
	assert.Nil(t, outcome.Goal)
}

func TestCompareAgreesOnFeasibility(t *testing.T) {
	_, engine := buildEngine(t, twoEventsTwoSlotsOneRoom, true)
	outcomes, err := engine.Compare(time.Time{})
	require.NoError(t, err)
	require.Len(t, outcomes, len(Strategies))
	for _, o := range outcomes {
		assert.Equal(t, "success", o.Status)
	}
}

func TestRunHonorsDeadline(t *testing.T) {
	_, engine := buildEngine(t, twoEventsTwoSlotsOneRoom, true)
	past := time.Now().Add(-time.Hour)
	_, err := engine.Run("dfs", past)
	require.Error(t, err)
	assert.IsType(t, model.TimeoutError{}, err)
}
