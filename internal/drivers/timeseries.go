package drivers

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/basinsim/basinsim/internal/model"
	"github.com/basinsim/basinsim/internal/simerrors"
)

// CSVTimeSeriesDriver is a date-indexed column loaded from a CSV file,
// grounded on core/drivers.py's TimeseriesDriver (pandas CSV with a date
// index) but read with encoding/csv to keep this package free of a
// dataframe dependency the rest of the module never needs.
type CSVTimeSeriesDriver struct {
	name   string
	values map[model.Date]float64
	start  model.Date
	end    model.Date
}

// LoadCSVTimeSeriesDriver reads path, expecting a header row containing
// a "date" column (YYYY-MM-DD) and the named value column.
func LoadCSVTimeSeriesDriver(name, path, column string) (*CSVTimeSeriesDriver, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &simerrors.ConfigurationError{Component: name, Field: "path", Reason: err.Error()}
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, &simerrors.ConfigurationError{Component: name, Field: "path", Reason: fmt.Sprintf("empty csv: %v", err)}
	}

	dateCol, valueCol := -1, -1
	for i, h := range header {
		switch h {
		case "date":
			dateCol = i
		case column:
			valueCol = i
		}
	}
	if dateCol < 0 {
		return nil, &simerrors.ConfigurationError{Component: name, Field: "path", Reason: "no \"date\" column in csv header"}
	}
	if valueCol < 0 {
		return nil, &simerrors.ConfigurationError{Component: name, Field: "column", Reason: fmt.Sprintf("column %q not found in csv header", column)}
	}

	values := make(map[model.Date]float64)
	var start, end model.Date
	first := true

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &simerrors.ConfigurationError{Component: name, Field: "path", Reason: err.Error()}
		}

		d, err := model.ParseDate(row[dateCol])
		if err != nil {
			return nil, &simerrors.ConfigurationError{Component: name, Field: "date", Reason: fmt.Sprintf("unparseable date %q: %v", row[dateCol], err)}
		}
		v, err := strconv.ParseFloat(row[valueCol], 64)
		if err != nil {
			return nil, &simerrors.ConfigurationError{Component: name, Field: column, Reason: fmt.Sprintf("unparseable value %q at %s: %v", row[valueCol], row[dateCol], err)}
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

	return &CSVTimeSeriesDriver{name: name, values: values, start: start, end: end}, nil
}

func (d *CSVTimeSeriesDriver) Value(date model.Date) (float64, error) {
	v, ok := d.values[date]
	if !ok {
		return 0, &simerrors.DataError{
			Driver:         d.name,
			Requested:      date.String(),
			AvailableStart: d.start.String(),
			AvailableEnd:   d.end.String(),
		}
	}
	return v, nil
}
