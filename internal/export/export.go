// Package export serializes the currently filtered issue table for download.
package export

import (
	"bytes"
	"encoding/csv"
	"sort"
	"strconv"
	"time"

	"github.com/samber/lo"
	"github.com/xuri/excelize/v2"

	"github.com/ManivannanSenthilrajan/issueboard/internal/domain"
	"github.com/ManivannanSenthilrajan/issueboard/internal/pivot"
)

var issueHeader = []string{
	"IID", "Title", "State", "Team", "Status", "Sprint", "Workstream", "Project",
	"Author", "Assignee", "Created At", "Due Date",
}

func issueRow(i domain.Issue) []any {
	created := ""
	if i.CreatedAt != nil { created = i.CreatedAt.Format(time.RFC3339) }
	return []any{
		i.IID, i.Title, i.State,
		i.Fields.Team, i.Fields.Status, i.Fields.Sprint, i.Fields.Workstream, i.Fields.Project,
		i.Author, i.Assignee, created, i.DueDate,
	}
}

// IssuesXLSX writes the normalized table to a single-sheet workbook.
func IssuesXLSX(issues []domain.Issue) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Issues"
	f.SetSheetName("Sheet1", sheet)

	cell, _ := excelize.CoordinatesToCellName(1, 1)
	hdr := make([]any, len(issueHeader))
	for n, h := range issueHeader { hdr[n] = h }
	if err := f.SetSheetRow(sheet, cell, &hdr); err != nil { return nil, err }

	for n, i := range issues {
		cell, err := excelize.CoordinatesToCellName(1, n+2)
		if err != nil { return nil, err }
		row := issueRow(i)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil { return nil, err }
	}
	buf, err := f.WriteToBuffer()
	if err != nil { return nil, err }
	return buf.Bytes(), nil
}

// LabelMatrixCSV writes the base columns plus one 0/1 column per distinct
// label, in sorted label order.
func LabelMatrixCSV(issues []domain.Issue) ([]byte, error) {
	all := lo.Uniq(lo.FlatMap(issues, func(i domain.Issue, _ int) []string { return i.Labels }))
	sort.Strings(all)

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"IID", "Title", "State", "Author", "Assignee", "Created At", "Due Date"}
	header = append(header, all...)
	if err := w.Write(header); err != nil { return nil, err }

	for _, i := range issues {
		created := ""
		if i.CreatedAt != nil { created = i.CreatedAt.Format(time.RFC3339) }
		row := []string{
			strconv.FormatInt(i.IID, 10), i.Title, i.State, i.Author, i.Assignee, created, i.DueDate,
		}
		have := lo.SliceToMap(i.Labels, func(l string) (string, bool) { return l, true })
		for _, l := range all {
			if have[l] { row = append(row, "1") } else { row = append(row, "0") }
		}
		if err := w.Write(row); err != nil { return nil, err }
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// PivotXLSX writes a pivot table to a single-sheet workbook, one column per
// pivot column plus the row key and Total.
func PivotXLSX(t pivot.Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Pivot"
	f.SetSheetName("Sheet1", sheet)

	hdr := []any{"Row"}
	for _, c := range t.Columns { hdr = append(hdr, c) }
	hdr = append(hdr, "Total")
	cell, _ := excelize.CoordinatesToCellName(1, 1)
	if err := f.SetSheetRow(sheet, cell, &hdr); err != nil { return nil, err }

	for n, r := range t.Rows {
		row := []any{r.Key}
		for _, c := range t.Columns { row = append(row, r.Cells[c]) }
		row = append(row, r.Total)
		cell, err := excelize.CoordinatesToCellName(1, n+2)
		if err != nil { return nil, err }
		if err := f.SetSheetRow(sheet, cell, &row); err != nil { return nil, err }
	}
	buf, err := f.WriteToBuffer()
	if err != nil { return nil, err }
	return buf.Bytes(), nil
}

// PivotCSV writes the same layout as PivotXLSX.
func PivotCSV(t pivot.Table) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := append(append([]string{"Row"}, t.Columns...), "Total")
	if err := w.Write(header); err != nil { return nil, err }
	for _, r := range t.Rows {
		row := []string{r.Key}
		for _, c := range t.Columns { row = append(row, strconv.FormatFloat(r.Cells[c], 'f', -1, 64)) }
		row = append(row, strconv.FormatFloat(r.Total, 'f', -1, 64))
		if err := w.Write(row); err != nil { return nil, err }
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// ActivityCSV serializes activity entries, newest first as given.
func ActivityCSV(entries []domain.ActivityEntry) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"timestamp", "user", "action", "details"}); err != nil { return nil, err }
	for _, e := range entries {
		if err := w.Write([]string{e.Timestamp, e.User, e.Action, e.Details}); err != nil { return nil, err }
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
