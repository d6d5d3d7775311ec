package drivers

import (
	"database/sql"
	"fmt"
	"regexp"

	_ "modernc.org/sqlite"

	"github.com/basinsim/basinsim/internal/model"
	"github.com/basinsim/basinsim/internal/simerrors"
)

var sqlIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// LoadSQLTimeSeriesDriver reads a date-indexed series from a SQLite
// database table into a CSVTimeSeriesDriver-shaped in-memory lookup,
// the "historical climate record" analogue of the teacher's
// internal/database time-series store (internal/database/client.go's
// pure-Go modernc.org/sqlite connection), pointed at input instead of
// output. table must have a "date" column (YYYY-MM-DD) and the named
// value column; it is queried read-only and the connection is closed
// once loaded, since the resulting driver is an immutable snapshot like
// its CSV counterpart.
func LoadSQLTimeSeriesDriver(name, dbPath, table, column string) (*CSVTimeSeriesDriver, error) {
	if !sqlIdentifier.MatchString(table) {
		return nil, &simerrors.ConfigurationError{Component: name, Field: "table", Reason: fmt.Sprintf("not a valid table identifier: %q", table)}
	}
	if !sqlIdentifier.MatchString(column) {
		return nil, &simerrors.ConfigurationError{Component: name, Field: "column", Reason: fmt.Sprintf("not a valid column identifier: %q", column)}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, &simerrors.ConfigurationError{Component: name, Field: "path", Reason: err.Error()}
	}
	defer db.Close()

	query := fmt.Sprintf("SELECT date, %s FROM %s ORDER BY date", column, table)
	rows, err := db.Query(query)
	if err != nil {
		return nil, &simerrors.ConfigurationError{Component: name, Field: "column", Reason: err.Error()}
	}
	defer rows.Close()

	values := make(map[model.Date]float64)
	var start, end model.Date
	first := true

	for rows.Next() {
		var dateStr string
		var v float64
		if err := rows.Scan(&dateStr, &v); err != nil {
			return nil, &simerrors.ConfigurationError{Component: name, Field: "path", Reason: err.Error()}
		}
		d, err := model.ParseDate(dateStr)
		if err != nil {
			return nil, &simerrors.ConfigurationError{Component: name, Field: "date", Reason: fmt.Sprintf("unparseable date %q: %v", dateStr, err)}
		}
		values[d] = v
		if first || d.Before(start) {
			start = d
		}
		if first || d.After(end) {
			end = d
		}
		first = false
	}
	if err := rows.Err(); err != nil {
		return nil, &simerrors.ConfigurationError{Component: name, Field: "path", Reason: err.Error()}
	}

	return &CSVTimeSeriesDriver{name: name, values: values, start: start, end: end}, nil
}
