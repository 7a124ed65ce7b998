package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"kursnet-xml-tool/internal/session"
)

// Column order of the warning report. Keep EXACT.
var warningsHeader = []string{
	"FILE",
	"PRODUCT_ID",
	"TITLE",
	"CHILDREN",
	"RULE",
	"MESSAGE",
}

// WarningRow is one triggered rule of one course group.
type WarningRow struct {
	File      string
	ProductID string
	Title     string
	Children  int
	Rule      string
	Message   string
}

// WarningRows flattens the group reports of one catalog file.
// Groups without findings produce no rows.
func WarningRows(file string, reports []session.GroupReport) []WarningRow {
	var rows []WarningRow
	for _, rep := range reports {
		p := rep.Group.Parent
		for _, w := range rep.Warnings {
			rows = append(rows, WarningRow{
				File:      file,
				ProductID: p.ProductID(),
				Title:     p.Title(),
				Children:  len(rep.Group.Children),
				Rule:      w.Rule,
				Message:   w.Message,
			})
		}
	}
	return rows
}

// WriteWarningsCSV writes the warning report with CRLF line endings.
func WriteWarningsCSV(w io.Writer, rows []WarningRow) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(warningsHeader); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			r.File,
			r.ProductID,
			oneLine(r.Title),
			strconv.Itoa(r.Children),
			r.Rule,
			oneLine(r.Message),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func oneLine(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}
