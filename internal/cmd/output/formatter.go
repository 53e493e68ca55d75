// Package output provides formatters for command output: tables for
// terminals, JSON or YAML for pipes and scripts.
package output

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/caretide/ordersync/internal/cmd/table"
)

// Format types for output.
type Format string

const (
	// FormatTable represents table output format.
	FormatTable Format = "table"
	// FormatJSON represents JSON output format.
	FormatJSON Format = "json"
	// FormatYAML represents YAML output format.
	FormatYAML Format = "yaml"
	// FormatWide represents table output with the full message column.
	FormatWide Format = "wide"
)

// Formatter interface for all output types.
type Formatter interface {
	Format(w io.Writer, data any) error
}

// NewFormatter creates the appropriate formatter for the format.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: "  "}
	case FormatYAML:
		return &YAMLFormatter{}
	case FormatTable, FormatWide:
		return &TableFormatter{Wide: format == FormatWide}
	default:
		return &TableFormatter{}
	}
}

// JSONFormatter outputs JSON format.
type JSONFormatter struct {
	Indent string
}

// Format implements the Formatter interface for JSON output.
func (f *JSONFormatter) Format(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	if f.Indent != "" {
		encoder.SetIndent("", f.Indent)
	}
	return encoder.Encode(data)
}

// YAMLFormatter outputs YAML format.
type YAMLFormatter struct{}

// Format outputs data in YAML format.
func (f *YAMLFormatter) Format(w io.Writer, data any) error {
	yamlData, err := yaml.MarshalWithOptions(data,
		yaml.Indent(2),
		yaml.IndentSequence(false),
	)
	if err != nil {
		return err
	}
	_, err = w.Write(yamlData)
	return err
}

// TableFormatter outputs table format.
type TableFormatter struct {
	Wide bool
}

// Format outputs data in table format. table.Data renders directly; structs
// and struct slices are converted via reflection; everything else falls back
// to JSON.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	switch v := data.(type) {
	case table.Data:
		return f.render(w, v)
	default:
		if tableData := f.convertToTableData(data); tableData != nil {
			return f.render(w, *tableData)
		}
		jsonFormatter := &JSONFormatter{Indent: "  "}
		return jsonFormatter.Format(w, data)
	}
}

func (f *TableFormatter) render(w io.Writer, data table.Data) error {
	config := tablewriter.Config{}

	if len(data.ColumnAlignment) > 0 {
		twAlign := make([]tw.Align, len(data.ColumnAlignment))
		for i, align := range data.ColumnAlignment {
			switch align {
			case table.AlignLeft:
				twAlign[i] = tw.AlignLeft
			case table.AlignCenter:
				twAlign[i] = tw.AlignCenter
			case table.AlignRight:
				twAlign[i] = tw.AlignRight
			default:
				twAlign[i] = tw.Skip
			}
		}
		config.Header.Alignment = tw.CellAlignment{PerColumn: twAlign}
		config.Row.Alignment = tw.CellAlignment{PerColumn: twAlign}
	}

	t := tablewriter.NewTable(w, tablewriter.WithConfig(config))

	if len(data.Headers) > 0 {
		headers := make([]any, len(data.Headers))
		for i, h := range data.Headers {
			headers[i] = h
		}
		t.Header(headers...)
	}

	for _, row := range data.Rows {
		rowData := make([]any, len(row))
		for i, cell := range row {
			rowData[i] = cell
		}
		if err := t.Append(rowData...); err != nil {
			return err
		}
	}

	return t.Render()
}

// DetectFormat auto-detects format based on terminal and environment.
func DetectFormat(explicitFormat string) Format {
	if explicitFormat != "" {
		return Format(strings.ToLower(explicitFormat))
	}

	// Terminals get tables; pipes and redirects get JSON.
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return FormatTable
	}
	return FormatJSON
}

// ParseFormat converts string to Format with validation.
func ParseFormat(s string) (Format, error) {
	format := Format(strings.ToLower(s))
	switch format {
	case FormatTable, FormatJSON, FormatYAML, FormatWide, "":
		return format, nil
	default:
		return "", fmt.Errorf("invalid format %q: must be one of: table, json, yaml, wide", s)
	}
}

// convertToTableData attempts to convert struct slices to table.Data using
// reflection.
func (f *TableFormatter) convertToTableData(data any) *table.Data {
	v := reflect.ValueOf(data)

	if v.Kind() == reflect.Slice && v.Len() > 0 {
		if v.Index(0).Kind() == reflect.Struct {
			return f.structSliceToTableData(v)
		}
	}

	if v.Kind() == reflect.Struct {
		return f.singleStructToTableData(v)
	}

	return nil
}

// structSliceToTableData converts a slice of structs to table.Data, using
// json tags for the header names.
func (f *TableFormatter) structSliceToTableData(v reflect.Value) *table.Data {
	if v.Len() == 0 {
		return nil
	}

	elemType := v.Index(0).Type()

	var headers []string
	for i := 0; i < elemType.NumField(); i++ {
		headers = append(headers, fieldHeader(elemType.Field(i)))
	}

	var rows [][]string
	for i := 0; i < v.Len(); i++ {
		elem := v.Index(i)
		var row []string
		for j := 0; j < elem.NumField(); j++ {
			row = append(row, fmt.Sprintf("%v", elem.Field(j).Interface()))
		}
		rows = append(rows, row)
	}

	return &table.Data{
		Headers: headers,
		Rows:    rows,
	}
}

// singleStructToTableData converts a single struct to a key-value table.
func (f *TableFormatter) singleStructToTableData(v reflect.Value) *table.Data {
	elemType := v.Type()

	var rows [][]string
	for i := 0; i < elemType.NumField(); i++ {
		rows = append(rows, []string{
			fieldHeader(elemType.Field(i)),
			fmt.Sprintf("%v", v.Field(i).Interface()),
		})
	}

	return &table.Data{
		Headers: []string{"Property", "Value"},
		Rows:    rows,
	}
}

// fieldHeader derives a display header from a struct field, preferring its
// json tag.
func fieldHeader(field reflect.StructField) string {
	jsonTag := field.Tag.Get("json")
	if jsonTag == "" || jsonTag == "-" {
		return field.Name
	}
	if idx := strings.Index(jsonTag, ","); idx > 0 {
		jsonTag = jsonTag[:idx]
	}
	caser := cases.Title(language.English)
	return caser.String(strings.ReplaceAll(jsonTag, "_", " "))
}
