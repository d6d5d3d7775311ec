package resulttable

import (
	"testing"

	"github.com/basinsim/basinsim/internal/model"
)

func TestTableAppendAndRead(t *testing.T) {
	tbl := New()

	d1, _ := model.ParseDate("2020-01-01")
	d2, _ := model.ParseDate("2020-01-02")

	tbl.AppendRow(d1, map[Key]float64{
		{Component: "catchment1", Output: "runoff"}: 120.5,
	})
	tbl.AppendRow(d2, map[Key]float64{
		{Component: "catchment1", Output: "runoff"}: 95.2,
	})

	v, ok := tbl.At(d1, Key{Component: "catchment1", Output: "runoff"})
	if !ok || v != 120.5 {
		t.Errorf("At(d1) = (%v, %v), want (120.5, true)", v, ok)
	}

	_, ok = tbl.At(d1, Key{Component: "catchment1", Output: "missing"})
	if ok {
		t.Error("expected ok=false for an unrecorded key")
	}

	series := tbl.Series(Key{Component: "catchment1", Output: "runoff"})
	if len(series) != 2 || series[0] != 120.5 || series[1] != 95.2 {
		t.Errorf("Series = %v, want [120.5 95.2]", series)
	}

	dates := tbl.Dates()
	if len(dates) != 2 || !dates[0].Equal(d1) || !dates[1].Equal(d2) {
		t.Errorf("Dates = %v, want [%v %v]", dates, d1, d2)
	}
}

func TestTableMutatingReturnedRowDoesNotAffectTable(t *testing.T) {
	tbl := New()
	d, _ := model.ParseDate("2020-01-01")
	key := Key{Component: "reservoir1", Output: "storage"}
	tbl.AppendRow(d, map[Key]float64{key: 1000})

	row, _ := tbl.Row(d)
	row[key] = 9999

	v, _ := tbl.At(d, key)
	if v != 1000 {
		t.Errorf("At(d) after mutating returned row = %v, want 1000 (table must be isolated from the copy)", v)
	}
}

func TestTableKeysSortedAcrossRows(t *testing.T) {
	tbl := New()
	d1, _ := model.ParseDate("2020-01-01")
	d2, _ := model.ParseDate("2020-01-02")

	tbl.AppendRow(d1, map[Key]float64{{Component: "b", Output: "x"}: 1})
	tbl.AppendRow(d2, map[Key]float64{{Component: "a", Output: "y"}: 2})

	keys := tbl.Keys()
	if len(keys) != 2 {
		t.Fatalf("Keys() returned %d keys, want 2", len(keys))
	}
	if keys[0].Component != "a" || keys[1].Component != "b" {
		t.Errorf("Keys() = %v, want sorted by component", keys)
	}
}
