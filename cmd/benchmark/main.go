// Command benchmark runs every search strategy against a directory of
// problem documents and writes one CSV row per (document, strategy) pair.
// Earlier benchmark harnesses in this lineage shelled out to external SAT
// solver binaries via /usr/bin/time; here there is nothing to exec, so it
// runs the search in-process through solve.Compare and reports the wall time
// the search engine records for each strategy.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/campusforge/timetabler/pkg/model"
	"github.com/campusforge/timetabler/pkg/search"
	"github.com/campusforge/timetabler/pkg/solve"
)

var (
	directory = flag.String("dir", "", "directory of problem documents to benchmark (required)")
	outPath   = flag.String("out", "benchmark_results.csv", "path to write the CSV report")
	timeout   = flag.Duration("timeout", 30*time.Second, "cooperative deadline applied per document, shared by its four strategy runs, 0 disables it")
)

// documentMetadata summarizes the size of one problem document: teacher,
// room, group, module and event counts.
type documentMetadata struct {
	Path     string
	Teachers int
	Rooms    int
	Groups   int
	Modules  int
	Events   int
}

func main() {
	flag.Parse()
	if *directory == "" {
		log.Fatal("benchmark: -dir is required")
	}

	documents, err := loadDocuments(*directory)
	if err != nil {
		log.Fatalf("benchmark: cannot load documents: %v", err)
	}
	if len(documents) == 0 {
		log.Fatalf("benchmark: no .json documents found under %q", *directory)
	}

	runID := uuid.NewString()
	rows := make([]solve.ComparisonRow, 0, len(documents)*len(search.Strategies))
	for _, doc := range documents {
		fmt.Printf("benchmarking %s (teachers=%d rooms=%d groups=%d modules=%d events=%d)\n",
			doc.metadata.Path, doc.metadata.Teachers, doc.metadata.Rooms, doc.metadata.Groups, doc.metadata.Modules, doc.metadata.Events)

		cfg, err := solve.ResolveConfig(doc.problem, "all")
		if err != nil {
			log.Fatalf("benchmark: invalid config for %q: %v", doc.metadata.Path, err)
		}

		var deadline time.Time
		if *timeout > 0 {
			deadline = time.Now().Add(*timeout)
		}

		results, err := solve.Compare(doc.problem, cfg, deadline)
		if err != nil {
			if _, timedOut := err.(model.TimeoutError); !timedOut {
				log.Fatalf("benchmark: compare failed for %q: %v", doc.metadata.Path, err)
			}
		}

		for _, row := range annotateRows(runID, doc.metadata, results) {
			rows = append(rows, row)
		}
	}

	writeCSV(*outPath, rows)
}

type loadedDocument struct {
	metadata documentMetadata
	problem  *model.Problem
}

func loadDocuments(dir string) ([]loadedDocument, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	jsonEntries := lo.Filter(entries, func(entry os.DirEntry, _ int) bool {
		return !entry.IsDir() && strings.HasSuffix(entry.Name(), ".json")
	})

	documents := make([]loadedDocument, 0, len(jsonEntries))
	for _, entry := range jsonEntries {
		path := filepath.Join(dir, entry.Name())
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		problem, err := model.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		documents = append(documents, loadedDocument{
			metadata: documentMetadata{
				Path:     path,
				Teachers: len(problem.Teachers),
				Rooms:    len(problem.Rooms),
				Groups:   len(problem.Groups),
				Modules:  len(problem.Modules),
				Events:   len(problem.Events),
			},
			problem: problem,
		})
	}
	return documents, nil
}

// annotateRows stamps each row from solve.ComparisonRows with the source
// document path, so a multi-document run's CSV stays attributable per row.
func annotateRows(runID string, meta documentMetadata, results []solve.Result) []solve.ComparisonRow {
	outcomes := lo.Map(results, func(r solve.Result, _ int) search.Outcome { return r.Outcome })
	base := solve.ComparisonRows(runID, outcomes)
	return lo.Map(base, func(row solve.ComparisonRow, i int) solve.ComparisonRow {
		row.Document = meta.Path
		return row
	})
}

func writeCSV(path string, rows []solve.ComparisonRow) {
	file, err := os.Create(path)
	if err != nil {
		log.Fatalf("benchmark: cannot create %q: %v", path, err)
	}
	defer file.Close()

	if err := solve.WriteComparisonCSV(file, rows); err != nil {
		log.Fatalf("benchmark: cannot write CSV: %v", err)
	}
	fmt.Printf("wrote %d rows to %s\n", len(rows), path)
}
