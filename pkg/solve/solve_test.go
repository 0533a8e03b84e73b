package solve

import (
	"bytes"
	"testing"
	"time"

	"github.com/campusforge/timetabler/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoEventsDoc = `{
	"config": {"weeks_total": 4, "strategy": "dfs", "use_mrv": true},
	"timeslots": [
		{"id": "ts1", "day": "Mon", "start": "08:00", "end": "09:00", "duration_min": 60},
		{"id": "ts2", "day": "Mon", "start": "09:00", "end": "10:00", "duration_min": 60}
	],
	"rooms": [{"id": "R1", "capacity": 30}],
	"teachers": [{"id": "T1", "available": ["ts1", "ts2"]}],
	"sessions": [{
		"id": "S1",
		"groups": [{"id": "G1", "size": 10, "available": ["ts1", "ts2"]}],
		"modules": [{"id": "M1", "hours_per_week": 2, "events": [
			{"id": "E1", "teacher_id": "T1", "duration_min": 60, "audience": {"type": "all_groups"}},
			{"id": "E2", "teacher_id": "T1", "duration_min": 60, "audience": {"type": "all_groups"}}
		]}]
	}]
}`

func TestRunProducesSuccessDocument(t *testing.T) {
	problem, err := model.Parse([]byte(twoEventsDoc))
	require.NoError(t, err)
	cfg, err := ResolveConfig(problem, "")
	require.NoError(t, err)

	result, err := Run(problem, cfg, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, "success", result.Document.Meta.Status)
	assert.Equal(t, 2, result.Document.Meta.EventsTotal)
	assert.Equal(t, 2, result.Document.Meta.EventsScheduled)
	require.Len(t, result.Document.Assignments, 2)
	assert.Equal(t, 2, *result.Document.Assignments[0].ModuleHoursPerWeek)
}

func TestRunIsDeterministic(t *testing.T) {
	problem, err := model.Parse([]byte(twoEventsDoc))
	require.NoError(t, err)
	cfg, err := ResolveConfig(problem, "")
	require.NoError(t, err)

	first, err := Run(problem, cfg, time.Time{})
	require.NoError(t, err)
	second, err := Run(problem, cfg, time.Time{})
	require.NoError(t, err)

	assert.Equal(t, first.Document, second.Document)
}

const infeasibleDomainDoc = `{
	"timeslots": [{"id": "ts1", "day": "Mon", "start": "08:00", "end": "09:00", "duration_min": 60}],
	"rooms": [{"id": "R1", "capacity": 10}],
	"teachers": [{"id": "T1"}],
	"sessions": [{
		"id": "S1", "groups": [{"id": "G1", "size": 5, "available": ["ts1"]}],
		"modules": [{"id": "M1", "events": [{
			"id": "E1", "teacher_id": "T1", "duration_min": 60,
			"audience": {"type": "groups", "group_ids": ["G1"]}
		}]}]
	}]
}`

func TestRunReportsInfeasibleDomainAsFailureNotError(t *testing.T) {
	problem, err := model.Parse([]byte(infeasibleDomainDoc))
	require.NoError(t, err)
	cfg, err := ResolveConfig(problem, "")
	require.NoError(t, err)

	result, err := Run(problem, cfg, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, "failure", result.Document.Meta.Status)
	assert.Empty(t, result.Document.Assignments)
	assert.NotEmpty(t, result.Document.Meta.Diagnostic)
}

func TestCompareReportsInfeasibleDomainAsFailureNotError(t *testing.T) {
	problem, err := model.Parse([]byte(infeasibleDomainDoc))
	require.NoError(t, err)
	cfg, err := ResolveConfig(problem, "all")
	require.NoError(t, err)

	results, err := Compare(problem, cfg, time.Time{})
	require.NoError(t, err)
	require.Len(t, results, 4)
	for _, r := range results {
		assert.Equal(t, "failure", r.Document.Meta.Status)
		assert.Empty(t, r.Document.Assignments)
		assert.NotEmpty(t, r.Document.Meta.Diagnostic)
	}
}

func TestResolveConfigRejectsUnknownStrategyOverride(t *testing.T) {
	problem, err := model.Parse([]byte(twoEventsDoc))
	require.NoError(t, err)

	_, err = ResolveConfig(problem, "greedy")
	require.Error(t, err)
	assert.IsType(t, model.InvariantViolatedError{}, err)
}

func TestCompareRunsAllFourStrategies(t *testing.T) {
	problem, err := model.Parse([]byte(twoEventsDoc))
	require.NoError(t, err)
	cfg, err := ResolveConfig(problem, "all")
	require.NoError(t, err)

	results, err := Compare(problem, cfg, time.Time{})
	require.NoError(t, err)
	require.Len(t, results, 4)
	for _, r := range results {
		assert.Equal(t, "success", r.Document.Meta.Status)
	}
}

func TestComparisonRowsWriteToCSV(t *testing.T) {
	problem, err := model.Parse([]byte(twoEventsDoc))
	require.NoError(t, err)
	cfg, err := ResolveConfig(problem, "all")
	require.NoError(t, err)

	results, err := Compare(problem, cfg, time.Time{})
	require.NoError(t, err)

	var buf bytes.Buffer
	rows := make([]ComparisonRow, 0, len(results))
	for _, r := range results {
		rows = append(rows, ComparisonRow{RunID: "run-1", Strategy: r.Outcome.Strategy, Status: r.Outcome.Status})
	}
	require.NoError(t, WriteComparisonCSV(&buf, rows))
	assert.Contains(t, buf.String(), "run_id,document,strategy,status")
	assert.Contains(t, buf.String(), "run-1,,dfs,success")
}

func TestFormatScheduleReportsDiagnosticOnFailure(t *testing.T) {
	problem, err := model.Parse([]byte(twoEventsDoc))
	require.NoError(t, err)
	doc := Document{Meta: Meta{Status: "failure", Diagnostic: "no room available"}}
	out := FormatSchedule(problem, doc)
	assert.Contains(t, out, "no room available")
}
