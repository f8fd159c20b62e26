// Package pivot turns flat (row, column, value) facts into a wide table.
package pivot

import (
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

type Fact struct {
	Row   string
	Col   string
	Value string
}

type Row struct {
	Key   string             `json:"key"`
	Cells map[string]float64 `json:"cells"`
	Total float64            `json:"total"`
}

// Table is the pivoted result. Columns is sorted and does not include Total;
// Rows are sorted by key.
type Table struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// Build groups facts by row then column, summing values. Textual Yes/No map
// to 1/0 before aggregation; values that parse as neither are skipped.
func Build(facts []Fact) Table {
	cols := lo.Uniq(lo.Map(facts, func(f Fact, _ int) string { return f.Col }))
	sort.Strings(cols)

	cells := map[string]map[string]float64{}
	for _, f := range facts {
		v, ok := numeric(f.Value)
		if !ok { continue }
		if cells[f.Row] == nil { cells[f.Row] = map[string]float64{} }
		cells[f.Row][f.Col] += v
	}

	keys := lo.Keys(cells)
	sort.Strings(keys)

	rows := make([]Row, 0, len(keys))
	for _, k := range keys {
		r := Row{Key: k, Cells: cells[k]}
		for _, c := range cols { r.Total += r.Cells[c] }
		rows = append(rows, r)
	}
	return Table{Columns: cols, Rows: rows}
}

// numeric parses a fact value. Yes/No become 1/0; thousands separators are
// tolerated. Anything else is not a number.
func numeric(v string) (float64, bool) {
	s := strings.TrimSpace(v)
	if s == "" { return 0, false }
	if strings.EqualFold(s, "yes") { return 1, true }
	if strings.EqualFold(s, "no") { return 0, true }
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil { return 0, false }
	return f, true
}
