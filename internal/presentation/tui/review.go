package tui

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/AI-call-center/modern-dashboard/pkg/domain"
	"github.com/AI-call-center/modern-dashboard/pkg/flow"
)

// ReviewMarkdown summarizes a draft as markdown, one section per step.
// Field labels and order come from the flow's field descriptors; slices
// without descriptors list their keys alphabetically.
func ReviewMarkdown(def *flow.Definition, d domain.Draft) string {
	var sb strings.Builder
	title := def.Title
	if title == "" {
		title = def.ID
	}
	fmt.Fprintf(&sb, "# %s\n", title)

	for i, step := range def.Steps {
		slice := d[step.SliceKey]
		fmt.Fprintf(&sb, "\n## %d. %s\n\n", i+1, step.Title)

		fields := def.FieldsFor(step.SliceKey)
		if len(fields) == 0 {
			for _, key := range sortedFields(slice) {
				fields = append(fields, flow.Field{Name: key})
			}
		}
		if len(fields) == 0 {
			sb.WriteString("_Nothing to configure._\n")
			continue
		}

		var tables []flow.Field
		sb.WriteString("| Field | Value |\n|---|---|\n")
		for _, f := range fields {
			value := slice[f.Name]
			if f.Kind == flow.FieldRows {
				tables = append(tables, f)
				fmt.Fprintf(&sb, "| %s | %d rows |\n", f.LabelOrName(), len(asRows(value)))
				continue
			}
			fmt.Fprintf(&sb, "| %s | %s |\n", f.LabelOrName(), escapeCell(FormatValue(value)))
		}

		for _, f := range tables {
			writeRows(&sb, f, asRows(slice[f.Name]))
		}
	}
	return sb.String()
}

func writeRows(sb *strings.Builder, f flow.Field, rows []map[string]any) {
	if len(rows) == 0 || len(f.Columns) == 0 {
		return
	}
	fmt.Fprintf(sb, "\n**%s**\n\n", f.LabelOrName())
	sb.WriteString("| " + strings.Join(f.Columns, " | ") + " |\n")
	sb.WriteString("|" + strings.Repeat("---|", len(f.Columns)) + "\n")
	for _, row := range rows {
		cells := make([]string, len(f.Columns))
		for i, col := range f.Columns {
			cells[i] = escapeCell(FormatValue(row[col]))
		}
		sb.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
}

// FormatValue renders a draft value for display. Lists are joined with
// commas, empty values become "—".
func FormatValue(v any) string {
	if v == nil {
		return "—"
	}
	if s, ok := v.(string); ok {
		if strings.TrimSpace(s) == "" {
			return "—"
		}
		return s
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Len() == 0 {
			return "—"
		}
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = FormatValue(rv.Index(i).Interface())
		}
		return strings.Join(parts, ", ")
	case reflect.Map:
		if rv.Len() == 0 {
			return "—"
		}
		values := make(map[string]string, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			values[fmt.Sprint(iter.Key().Interface())] = FormatValue(iter.Value().Interface())
		}
		keys := sortedFields(values)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + ": " + values[k]
		}
		return strings.Join(parts, "; ")
	}
	return fmt.Sprint(v)
}

func asRows(v any) []map[string]any {
	var rows []map[string]any
	switch list := v.(type) {
	case []map[string]any:
		return list
	case []any:
		for _, item := range list {
			switch row := item.(type) {
			case map[string]any:
				rows = append(rows, row)
			case domain.Slice:
				rows = append(rows, row)
			}
		}
	}
	return rows
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}

func sortedFields[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
