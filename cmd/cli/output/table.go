package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// RenderTable prints rows under headers to w. Price and Guests columns are right aligned.
func RenderTable(w io.Writer, headers []string, rows [][]interface{}) {
	t := newTable(w, headers)
	for _, row := range rows {
		t.AppendRow(table.Row(row))
	}
	t.Render()
}

// RenderList is RenderTable for collections: it prints "No <noun>." instead of an
// empty table and otherwise adds a footer with the row count.
func RenderList(w io.Writer, noun string, headers []string, rows [][]interface{}) {
	if len(rows) == 0 {
		fmt.Fprintf(w, "No %s.\n", noun)
		return
	}
	t := newTable(w, headers)
	for _, row := range rows {
		t.AppendRow(table.Row(row))
	}
	t.AppendFooter(table.Row{fmt.Sprintf("%d %s", len(rows), noun)})
	t.Render()
}

func newTable(w io.Writer, headers []string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	header := make(table.Row, 0, len(headers))
	var configs []table.ColumnConfig
	for _, h := range headers {
		header = append(header, h)
		if h == "Price" || h == "Guests" {
			configs = append(configs, table.ColumnConfig{Name: h, Align: text.AlignRight})
		}
	}
	t.AppendHeader(header)
	t.SetColumnConfigs(configs)
	return t
}

// PrintJSON pretty-prints a raw JSON body, falling back to the bytes as-is.
func PrintJSON(w io.Writer, raw []byte) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		fmt.Fprintln(w, string(raw))
		return
	}
	fmt.Fprintln(w, buf.String())
}
