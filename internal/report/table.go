package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// tableEmitter buffers rows and renders an aligned table on Close.
type tableEmitter struct {
	w      io.Writer
	rows   [][]string
	counts bool
}

func newTableEmitter(w io.Writer) *tableEmitter {
	return &tableEmitter{w: w}
}

func (t *tableEmitter) Match(e Entry) error {
	t.rows = append(t.rows, []string{
		e.File,
		e.Pattern,
		fmt.Sprintf("[%d,%d)", e.Start, e.End),
		e.Text,
	})
	return nil
}

func (t *tableEmitter) Count(file string, n int) error {
	t.counts = true
	t.rows = append(t.rows, []string{file, strconv.Itoa(n)})
	return nil
}

func (t *tableEmitter) Close(s Summary) error {
	table := tablewriter.NewWriter(t.w)
	if t.counts {
		table.SetHeader([]string{"FILE", "MATCHES"})
		table.SetFooter([]string{"TOTAL", strconv.Itoa(s.Matches)})
	} else {
		table.SetHeader([]string{"FILE", "PATTERN", "CLUSTERS", "TEXT"})
		table.SetFooter([]string{"FILES", strconv.Itoa(s.Files), "MATCHES", strconv.Itoa(s.Matches)})
	}
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(t.rows)
	table.Render()
	return nil
}
