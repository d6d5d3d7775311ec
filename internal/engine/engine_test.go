package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/basinsim/basinsim/internal/model"
	"github.com/basinsim/basinsim/pkg/modeldef"
	"github.com/basinsim/basinsim/pkg/resulttable"
)

func writeCSV(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func threeDayClimateCSV() string {
	return "date,precip_mm,temp_c,et_mm\n" +
		"2000-01-01,5.0,10.0,2.0\n" +
		"2000-01-02,0.0,11.0,2.1\n" +
		"2000-01-03,8.0,9.5,1.9\n"
}

func buildTestDefinition(t *testing.T, dir string) *modeldef.Definition {
	t.Helper()
	csvPath := writeCSV(t, dir, "climate.csv", threeDayClimateCSV())
	// Model definitions reject absolute paths, and the CSV driver opens a
	// relative path against the working directory.
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if csvPath, err = filepath.Rel(wd, csvPath); err != nil {
		t.Fatalf("Rel: %v", err)
	}

	yamlContents := `
name: two-node-test
start_date: "2000-01-01"
end_date: "2000-01-03"
climate:
  precipitation:
    kind: timeseries
    path: ` + csvPath + `
    column: precip_mm
  temperature:
    kind: timeseries
    path: ` + csvPath + `
    column: temp_c
  et:
    kind: timeseries
    path: ` + csvPath + `
    column: et_mm
components:
  - name: catchment1
    kind: catchment
    params:
      area_km2: 10.0
  - name: reservoir1
    kind: reservoir
    params:
      initial_storage: 0.0
      max_storage: 1000000.0
      surface_area: 50000.0
connections:
  - from: catchment1.runoff
    to: reservoir1.inflow_catchment1
`
	yamlPath := writeCSV(t, dir, "model.yaml", yamlContents)
	def, err := modeldef.NewYAMLProvider(yamlPath).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return def
}

func TestSimulationRunProducesDenseResultTable(t *testing.T) {
	dir := t.TempDir()
	def := buildTestDefinition(t, dir)

	sim, err := Build(def, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	results, diag, err := sim.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(results.Dates()) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(results.Dates()))
	}
	if diag.StepsCompleted["catchment1"] != 3 || diag.StepsCompleted["reservoir1"] != 3 {
		t.Fatalf("unexpected step counts: %+v", diag.StepsCompleted)
	}

	firstDay, err := model.ParseDate("2000-01-01")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	storage, ok := results.At(firstDay, resulttable.Key{Component: "reservoir1", Output: "storage"})
	if !ok {
		t.Fatal("expected reservoir1.storage to be recorded for the first day")
	}
	if storage < 0 {
		t.Fatalf("expected non-negative storage, got %v", storage)
	}
}

func TestSimulationRunRespectsContextCancellation(t *testing.T) {
	dir := t.TempDir()
	def := buildTestDefinition(t, dir)

	sim, err := Build(def, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, _, err := sim.Run(ctx)
	if err == nil {
		t.Fatal("expected context cancellation error")
	}
	if len(results.Dates()) != 0 {
		t.Fatalf("expected no rows recorded before cancellation, got %d", len(results.Dates()))
	}
}

func TestBuildRejectsEndBeforeStart(t *testing.T) {
	dir := t.TempDir()
	def := buildTestDefinition(t, dir)
	def.EndDate = "1999-01-01"

	if _, err := Build(def, nil); err == nil {
		t.Fatal("expected configuration error for end_date before start_date")
	}
}

func TestBuildRejectsDuplicateComponentNames(t *testing.T) {
	dir := t.TempDir()
	def := buildTestDefinition(t, dir)
	def.Components = append(def.Components, modeldef.ComponentDefinition{
		Name: "catchment1",
		Kind: "junction",
	})

	if _, err := Build(def, nil); err == nil {
		t.Fatal("expected configuration error for duplicate component name")
	}
}
