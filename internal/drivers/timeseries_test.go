package drivers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/basinsim/basinsim/internal/model"
	"github.com/basinsim/basinsim/internal/simerrors"
)

func writeTestCSV(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "series.csv")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing fixture csv: %v", err)
	}
	return path
}

func TestCSVTimeSeriesDriverValue(t *testing.T) {
	path := writeTestCSV(t, "date,precip_mm\n2020-01-01,5.2\n2020-01-02,0\n2020-01-03,12.7\n")

	driver, err := LoadCSVTimeSeriesDriver("precip", path, "precip_mm")
	if err != nil {
		t.Fatalf("LoadCSVTimeSeriesDriver: %v", err)
	}

	d, _ := model.ParseDate("2020-01-02")
	v, err := driver.Value(d)
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if v != 0 {
		t.Errorf("Value = %v, want 0", v)
	}

	d3, _ := model.ParseDate("2020-01-03")
	v3, err := driver.Value(d3)
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if v3 != 12.7 {
		t.Errorf("Value = %v, want 12.7", v3)
	}
}

func TestCSVTimeSeriesDriverMissingDate(t *testing.T) {
	path := writeTestCSV(t, "date,precip_mm\n2020-01-01,5.2\n2020-01-03,12.7\n")

	driver, err := LoadCSVTimeSeriesDriver("precip", path, "precip_mm")
	if err != nil {
		t.Fatalf("LoadCSVTimeSeriesDriver: %v", err)
	}

	missing, _ := model.ParseDate("2020-01-02")
	_, err = driver.Value(missing)
	if err == nil {
		t.Fatal("expected an error for a missing date")
	}
	var dataErr *simerrors.DataError
	if !asDataError(err, &dataErr) {
		t.Fatalf("expected *simerrors.DataError, got %T: %v", err, err)
	}
	if dataErr.Requested != "2020-01-02" {
		t.Errorf("Requested = %q, want %q", dataErr.Requested, "2020-01-02")
	}
}

func asDataError(err error, target **simerrors.DataError) bool {
	de, ok := err.(*simerrors.DataError)
	if !ok {
		return false
	}
	*target = de
	return true
}
