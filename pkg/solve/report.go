package solve

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/campusforge/timetabler/pkg/search"
)

// ComparisonRow is one side-by-side metrics row for comparison mode:
// status, iterations, expanded states, peak frontier size, final cost and
// wall time for a single strategy run.
type ComparisonRow struct {
	RunID           string
	Document        string
	Strategy        string
	Status          string
	Iterations      int
	Expanded        int
	MaxFrontierSize int
	Cost            int
	WallTimeMS      float64
}

// ComparisonRows converts a batch of search outcomes from the same run
// into CSV-ready rows, tagged with runID.
func ComparisonRows(runID string, outcomes []search.Outcome) []ComparisonRow {
	rows := make([]ComparisonRow, 0, len(outcomes))
	for _, o := range outcomes {
		cost := 0
		if o.Goal != nil {
			cost = o.Goal.Cost()
		}
		rows = append(rows, ComparisonRow{
			RunID:           runID,
			Strategy:        o.Strategy,
			Status:          o.Status,
			Iterations:      o.Metrics.Iterations,
			Expanded:        o.Metrics.Expanded,
			MaxFrontierSize: o.Metrics.MaxFrontierSize,
			Cost:            cost,
			WallTimeMS:      float64(o.Metrics.WallTime.Microseconds()) / 1000,
		})
	}
	return rows
}

var comparisonCSVHeader = []string{
	"run_id", "document", "strategy", "status", "iterations", "expanded", "max_frontier_size", "cost", "wall_time_ms",
}

// WriteComparisonCSV writes rows to w as CSV, header first.
func WriteComparisonCSV(w io.Writer, rows []ComparisonRow) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(comparisonCSVHeader); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			r.RunID,
			r.Document,
			r.Strategy,
			r.Status,
			strconv.Itoa(r.Iterations),
			strconv.Itoa(r.Expanded),
			strconv.Itoa(r.MaxFrontierSize),
			strconv.Itoa(r.Cost),
			fmt.Sprintf("%.3f", r.WallTimeMS),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	return writer.Error()
}
