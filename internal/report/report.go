// Package report renders label conversion results for the CLI: a text table
// with per-definition status, or machine-readable JSON/YAML.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dustin/go-humanize/english"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/terramap/labelconv/internal/config"
	"github.com/terramap/labelconv/pkg/label"
)

// statusOK and statusError are the table status cell values.
const (
	statusOK    = "ok"
	statusError = "error"
)

// Entry is the machine-readable form of one conversion result.
type Entry struct {
	Name         string `json:"name"          yaml:"name"`
	Expression   string `json:"expression"    yaml:"expression"`
	IsExpression bool   `json:"is_expression" yaml:"is_expression"`
	Error        string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Write renders results to w in the requested format.
func Write(w io.Writer, results []label.Result, format string, noColor bool) error {
	switch format {
	case config.FormatJSON:
		return writeJSON(w, results)

	case config.FormatYAML:
		return writeYAML(w, results)

	default:
		writeTable(w, results, noColor)

		return nil
	}
}

// WriteSummary prints the one-line batch outcome after the result listing.
func WriteSummary(w io.Writer, results []label.Result, noColor bool) {
	failed := label.Failed(results)
	total := english.Plural(len(results), "definition", "")

	if failed == 0 {
		statusColor(color.FgGreen, noColor).Fprintf(w, "converted %s\n", total)

		return
	}

	statusColor(color.FgRed, noColor).Fprintf(w, "converted %s, %d failed\n", total, failed)
}

func writeTable(w io.Writer, results []label.Result, noColor bool) {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.AppendHeader(table.Row{"Name", "Status", "Expression"})

	for _, res := range results {
		tbl.AppendRow(table.Row{res.Definition.Name, statusCell(res, noColor), resultCell(res)})
	}

	tbl.Render()
}

func statusCell(res label.Result, noColor bool) string {
	if res.Err != nil {
		return statusColor(color.FgRed, noColor).Sprint(statusError)
	}

	return statusColor(color.FgGreen, noColor).Sprint(statusOK)
}

func resultCell(res label.Result) string {
	if res.Err != nil {
		return res.Err.Error()
	}

	return res.Expression
}

func statusColor(attr color.Attribute, noColor bool) *color.Color {
	c := color.New(attr)
	if noColor {
		c.DisableColor()
	}

	return c
}

func writeJSON(w io.Writer, results []label.Result) error {
	data, err := json.MarshalIndent(toEntries(results), "", "  ")
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}

	_, err = fmt.Fprintln(w, string(data))
	if err != nil {
		return fmt.Errorf("write results: %w", err)
	}

	return nil
}

func writeYAML(w io.Writer, results []label.Result) error {
	err := yaml.NewEncoder(w).Encode(toEntries(results))
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}

	return nil
}

func toEntries(results []label.Result) []Entry {
	entries := make([]Entry, len(results))

	for i, res := range results {
		entries[i] = Entry{
			Name:         res.Definition.Name,
			Expression:   res.Expression,
			IsExpression: res.IsExpression,
		}

		if res.Err != nil {
			entries[i].Error = res.Err.Error()
		}
	}

	return entries
}
