// Package eav provides the elevation-area-volume lookup table reservoirs
// use to translate storage into surface elevation and area, backed by
// gonum's piecewise-linear interpolator, the same module the teacher's
// astronomical geometry leaned on gonum for.
package eav

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/interp"
)

// Table is an elevation-area-volume curve: monotonically increasing
// storage maps to elevation and area, both also monotonically
// increasing. Queries below the first row or above the last are clamped
// to the corresponding endpoint rather than extrapolated, since a
// reservoir's geometry is only known within its surveyed range.
type Table struct {
	minStorage, maxStorage float64
	minElev, maxElev       float64
	minArea, maxArea       float64

	elevationOf interp.PiecewiseLinear
	areaOf      interp.PiecewiseLinear
}

// Row is one elevation-area-volume sample.
type Row struct {
	StorageM3    float64
	ElevationM   float64
	SurfaceAreaM2 float64
}

// NewTable builds a Table from rows, which need not be pre-sorted by
// storage but must be strictly increasing in storage, elevation, and
// area once sorted, or NewTable returns an error.
func NewTable(rows []Row) (*Table, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("eav table needs at least 2 rows, got %d", len(rows))
	}

	sorted := make([]Row, len(rows))
	copy(sorted, rows)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].StorageM3 < sorted[j].StorageM3 })

	storage := make([]float64, len(sorted))
	elevation := make([]float64, len(sorted))
	area := make([]float64, len(sorted))

	for i, r := range sorted {
		storage[i] = r.StorageM3
		elevation[i] = r.ElevationM
		area[i] = r.SurfaceAreaM2

		if i > 0 {
			if storage[i] <= storage[i-1] {
				return nil, fmt.Errorf("eav table storage must be strictly increasing: row %d (%v) <= row %d (%v)", i, storage[i], i-1, storage[i-1])
			}
			if elevation[i] <= elevation[i-1] {
				return nil, fmt.Errorf("eav table elevation must be strictly increasing: row %d (%v) <= row %d (%v)", i, elevation[i], i-1, elevation[i-1])
			}
			if area[i] <= area[i-1] {
				return nil, fmt.Errorf("eav table area must be strictly increasing: row %d (%v) <= row %d (%v)", i, area[i], i-1, area[i-1])
			}
		}
	}

	var elevationOf, areaOf interp.PiecewiseLinear
	if err := elevationOf.Fit(storage, elevation); err != nil {
		return nil, fmt.Errorf("fitting elevation curve: %w", err)
	}
	if err := areaOf.Fit(storage, area); err != nil {
		return nil, fmt.Errorf("fitting area curve: %w", err)
	}

	return &Table{
		minStorage: storage[0], maxStorage: storage[len(storage)-1],
		minElev: elevation[0], maxElev: elevation[len(elevation)-1],
		minArea: area[0], maxArea: area[len(area)-1],
		elevationOf: elevationOf,
		areaOf:      areaOf,
	}, nil
}

// LoadCSV reads a table from a CSV file with a header row of
// storage_m3,elevation_m,area_m2.
func LoadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	if _, err := r.Read(); err != nil {
		return nil, fmt.Errorf("reading eav csv header: %w", err)
	}

	var rows []Row
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(rec) < 3 {
			return nil, fmt.Errorf("eav csv row has fewer than 3 columns: %v", rec)
		}

		storage, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			return nil, fmt.Errorf("parsing storage %q: %w", rec[0], err)
		}
		elevation, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, fmt.Errorf("parsing elevation %q: %w", rec[1], err)
		}
		area, err := strconv.ParseFloat(rec[2], 64)
		if err != nil {
			return nil, fmt.Errorf("parsing area %q: %w", rec[2], err)
		}

		rows = append(rows, Row{StorageM3: storage, ElevationM: elevation, SurfaceAreaM2: area})
	}

	return NewTable(rows)
}

// Elevation returns the surface elevation for a given storage, clamped
// to the table's surveyed range.
func (t *Table) Elevation(storageM3 float64) float64 {
	storageM3 = t.clamp(storageM3)
	return t.elevationOf.Predict(storageM3)
}

// Area returns the surface area for a given storage, clamped to the
// table's surveyed range.
func (t *Table) Area(storageM3 float64) float64 {
	storageM3 = t.clamp(storageM3)
	return t.areaOf.Predict(storageM3)
}

// MaxStorage returns the largest storage value the table was built from.
func (t *Table) MaxStorage() float64 { return t.maxStorage }

func (t *Table) clamp(storageM3 float64) float64 {
	if storageM3 < t.minStorage {
		return t.minStorage
	}
	if storageM3 > t.maxStorage {
		return t.maxStorage
	}
	return storageM3
}
