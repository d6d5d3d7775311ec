package drivers

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/basinsim/basinsim/internal/model"
)

func writeTestSQLite(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "series.db")

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	defer db.Close()

	stmts := []string{
		"CREATE TABLE precip (date TEXT NOT NULL, precip_mm REAL NOT NULL)",
		"INSERT INTO precip (date, precip_mm) VALUES ('2020-01-01', 5.2)",
		"INSERT INTO precip (date, precip_mm) VALUES ('2020-01-02', 0)",
		"INSERT INTO precip (date, precip_mm) VALUES ('2020-01-03', 12.7)",
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			t.Fatalf("exec %q: %v", s, err)
		}
	}
	return path
}

func TestSQLTimeSeriesDriverValue(t *testing.T) {
	path := writeTestSQLite(t)

	driver, err := LoadSQLTimeSeriesDriver("precip", path, "precip", "precip_mm")
	if err != nil {
		t.Fatalf("LoadSQLTimeSeriesDriver: %v", err)
	}

	d, _ := model.ParseDate("2020-01-03")
	v, err := driver.Value(d)
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if v != 12.7 {
		t.Errorf("Value = %v, want 12.7", v)
	}

	missing, _ := model.ParseDate("2020-06-01")
	if _, err := driver.Value(missing); err == nil {
		t.Fatal("expected an error for a missing date")
	}
}

func TestSQLTimeSeriesDriverRejectsUnsafeIdentifiers(t *testing.T) {
	path := writeTestSQLite(t)

	if _, err := LoadSQLTimeSeriesDriver("precip", path, "precip; DROP TABLE precip", "precip_mm"); err == nil {
		t.Fatal("expected an error for a non-identifier table name")
	}
	if _, err := LoadSQLTimeSeriesDriver("precip", path, "precip", "precip_mm; --"); err == nil {
		t.Fatal("expected an error for a non-identifier column name")
	}
}

func TestSQLTimeSeriesDriverRejectsMissingTable(t *testing.T) {
	path := writeTestSQLite(t)

	if _, err := LoadSQLTimeSeriesDriver("precip", path, "nope", "precip_mm"); err == nil {
		t.Fatal("expected an error for a missing table")
	}
}
