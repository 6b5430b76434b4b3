package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// Cluster is one grapheme cluster row for the inspection table
// (gview -dump).
type Cluster struct {
	Index      int
	ByteOff    int
	ByteLen    int
	Text       string
	CodePoints string
	Width      int
}

// WriteClusterTable renders the per-cluster table.
func WriteClusterTable(w io.Writer, rows []Cluster) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"INDEX", "BYTES", "TEXT", "CODE POINTS", "WIDTH"})
	table.SetFooter([]string{"CLUSTERS", strconv.Itoa(len(rows)), "", "", ""})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")

	for _, r := range rows {
		table.Append([]string{
			strconv.Itoa(r.Index),
			fmt.Sprintf("[%d,%d)", r.ByteOff, r.ByteOff+r.ByteLen),
			r.Text,
			r.CodePoints,
			strconv.Itoa(r.Width),
		})
	}
	table.Render()
}
