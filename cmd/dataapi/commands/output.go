package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/dataapi/internal/constants"
	"github.com/fivetwenty-io/dataapi/pkg/dataapi"
)

// idField is listed first in document tables.
const idField = "_id"

// Property is a single row of a property/value table.
type Property struct {
	Name  string
	Value string
}

// renderValue writes value as JSON or YAML when those formats are selected.
// It reports false for table output so the caller can draw its own table.
func renderValue(w io.Writer, value interface{}) (bool, error) {
	switch outputFormat() {
	case constants.FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", strings.Repeat(" ", constants.JSONIndentSize))

		err := encoder.Encode(value)
		if err != nil {
			return true, fmt.Errorf("failed to encode JSON: %w", err)
		}

		return true, nil
	case constants.FormatYAML:
		plain, err := toPlain(value)
		if err != nil {
			return true, err
		}

		encoder := yaml.NewEncoder(w)

		err = encoder.Encode(plain)
		if err != nil {
			return true, fmt.Errorf("failed to encode YAML: %w", err)
		}

		return true, encoder.Close()
	case constants.FormatTable, "":
		return false, nil
	default:
		return true, fmt.Errorf("%w: %s", constants.ErrUnsupportedFormat, outputFormat())
	}
}

// renderProperties prints value in the selected format, as a property table
// for table output.
func renderProperties(w io.Writer, value interface{}, properties []Property) error {
	done, err := renderValue(w, value)
	if done || err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header("Property", "Value")

	for _, property := range properties {
		_ = table.Append([]string{property.Name, property.Value})
	}

	err = table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// renderDocuments prints documents in the selected format, one row per
// document for table output.
func renderDocuments(w io.Writer, value interface{}, documents []dataapi.Document) error {
	done, err := renderValue(w, value)
	if done || err != nil {
		return err
	}

	if len(documents) == 0 {
		_, _ = fmt.Fprintln(w, "No documents found")

		return nil
	}

	rows := make([]map[string]interface{}, 0, len(documents))
	for _, doc := range documents {
		plain, err := toPlainMap(doc)
		if err != nil {
			return err
		}

		rows = append(rows, plain)
	}

	columns := documentColumns(rows)

	headers := make([]any, len(columns))
	for i, column := range columns {
		headers[i] = column
	}

	table := tablewriter.NewWriter(w)
	table.Header(headers...)

	for _, row := range rows {
		cells := make([]string, len(columns))
		for i, column := range columns {
			cells[i] = formatCell(row[column])
		}

		_ = table.Append(cells)
	}

	err = table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// documentColumns returns the union of top-level keys, _id first and the rest
// sorted.
func documentColumns(rows []map[string]interface{}) []string {
	seen := map[string]bool{}

	var columns []string

	for _, row := range rows {
		for key := range row {
			if !seen[key] && key != idField {
				seen[key] = true

				columns = append(columns, key)
			}
		}
	}

	sort.Strings(columns)

	for _, row := range rows {
		if _, ok := row[idField]; ok {
			return append([]string{idField}, columns...)
		}
	}

	return columns
}

func formatCell(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case map[string]interface{}:
		if oid, ok := v["$oid"].(string); ok && len(v) == 1 {
			return oid
		}
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprint(value)
	}

	return string(data)
}

// toPlain converts value to the generic form of its JSON encoding, so YAML
// and tables see Extended JSON wrappers such as {"$oid": ...} instead of raw
// driver types.
func toPlain(value interface{}) (interface{}, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to encode output: %w", err)
	}

	var plain interface{}

	err = json.Unmarshal(data, &plain)
	if err != nil {
		return nil, fmt.Errorf("failed to decode output: %w", err)
	}

	return plain, nil
}

func toPlainMap(doc dataapi.Document) (map[string]interface{}, error) {
	plain, err := toPlain(doc)
	if err != nil {
		return nil, err
	}

	m, _ := plain.(map[string]interface{})

	return m, nil
}
