// Package resulttable holds the dense per-date, per-component-output
// table the engine fills in as it steps, analogous in shape to
// core/results.py's pandas-backed Results but kept as a plain map
// structure here since this module has no dataframe/plotting dependency
// to anchor a richer type on.
package resulttable

import (
	"fmt"
	"sort"

	"github.com/basinsim/basinsim/internal/model"
)

// Key names one column: a component name and one of its output names.
type Key struct {
	Component string
	Output    string
}

func (k Key) String() string {
	return fmt.Sprintf("%s.%s", k.Component, k.Output)
}

// Table is the append-by-date result store for one simulation run. It is
// built up one row (one date) at a time by the engine and is read-only
// to everything else once the run completes.
type Table struct {
	dates []model.Date
	rows  map[model.Date]map[Key]float64
}

// New creates an empty table.
func New() *Table {
	return &Table{rows: make(map[model.Date]map[Key]float64)}
}

// AppendRow records one date's full set of component outputs. AppendRow
// must be called with strictly increasing dates; the engine's daily loop
// guarantees this naturally.
func (t *Table) AppendRow(date model.Date, outputs map[Key]float64) {
	row := make(map[Key]float64, len(outputs))
	for k, v := range outputs {
		row[k] = v
	}
	t.rows[date] = row
	t.dates = append(t.dates, date)
}

// At returns the value recorded for a component's output on a date, and
// whether it was present at all (outputs absent on a given date, for a
// component that produced no such key, read as (0, false)).
func (t *Table) At(date model.Date, key Key) (float64, bool) {
	row, ok := t.rows[date]
	if !ok {
		return 0, false
	}
	v, ok := row[key]
	return v, ok
}

// Row returns a copy of the full set of outputs recorded for date.
func (t *Table) Row(date model.Date) (map[Key]float64, bool) {
	row, ok := t.rows[date]
	if !ok {
		return nil, false
	}
	cp := make(map[Key]float64, len(row))
	for k, v := range row {
		cp[k] = v
	}
	return cp, true
}

// Dates returns every date recorded, in the order rows were appended
// (which is simulation order, i.e. chronological).
func (t *Table) Dates() []model.Date {
	out := make([]model.Date, len(t.dates))
	copy(out, t.dates)
	return out
}

// Series returns the values recorded for key, in chronological order.
// The dates themselves are not returned. A key absent on some dates
// simply contributes no entry for those dates, rather than a padded
// zero.
func (t *Table) Series(key Key) []float64 {
	values := make([]float64, 0, len(t.dates))
	for _, d := range t.dates {
		if v, ok := t.rows[d][key]; ok {
			values = append(values, v)
		}
	}
	return values
}

// Keys returns every distinct (component, output) key recorded anywhere
// in the table, sorted for deterministic iteration.
func (t *Table) Keys() []Key {
	seen := make(map[Key]struct{})
	for _, row := range t.rows {
		for k := range row {
			seen[k] = struct{}{}
		}
	}
	keys := make([]Key, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Component != keys[j].Component {
			return keys[i].Component < keys[j].Component
		}
		return keys[i].Output < keys[j].Output
	})
	return keys
}
