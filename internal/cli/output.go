package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"gopkg.in/yaml.v3"

	"github.com/five82/checkoff/internal/api"
)

const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

func validateOutput(format string) error {
	switch format {
	case outputTable, outputJSON, outputYAML:
		return nil
	}
	return &UsageError{Err: fmt.Errorf("unknown output format %q: use table, json or yaml", format)}
}

func printTodos(w io.Writer, format string, items []api.Todo) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(items); err != nil {
			return err
		}
		return enc.Close()
	}
	return printTable(w, items)
}

func printTable(w io.Writer, items []api.Todo) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, "No todos yet.")
		return err
	}

	bold := color.New(color.Bold)
	done := color.New(color.FgGreen)
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.AddRow(bold.Sprint("ID"), bold.Sprint("DONE"), bold.Sprint("TITLE"))
	for _, item := range items {
		if item.Completed {
			tbl.AddRow(item.ID, done.Sprint("[x]"), faint.Sprint(item.Title))
			continue
		}
		tbl.AddRow(item.ID, "[ ]", item.Title)
	}
	_, err := fmt.Fprintln(w, tbl)
	return err
}

func errorLabel() string {
	return color.New(color.FgRed, color.Bold).Sprint("checkoff:")
}
