package notion

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/jomei/notionapi"

	"habitchart/internal/engine"
)

// Value converts a page property to an engine value. Only the shapes the
// scoring pipeline reads are kept; everything else is absent.
func Value(p notionapi.Property) engine.Value {
	switch p := p.(type) {
	case *notionapi.TitleProperty:
		return engine.Text(joinPlain(p.Title))
	case *notionapi.RichTextProperty:
		return engine.Text(joinPlain(p.RichText))
	case *notionapi.NumberProperty:
		return engine.Number(p.Number)
	case *notionapi.SelectProperty:
		if p.Select.Name != "" {
			return engine.Text(p.Select.Name)
		}
	case *notionapi.StatusProperty:
		if p.Status.Name != "" {
			return engine.Text(p.Status.Name)
		}
	case *notionapi.CheckboxProperty:
		return engine.Bool(p.Checkbox)
	case *notionapi.FormulaProperty:
		return formulaValue(p.Formula)
	}
	return engine.Value{}
}

func formulaValue(f notionapi.Formula) engine.Value {
	switch string(f.Type) {
	case "string":
		return engine.Text(f.String)
	case "number":
		return engine.Number(f.Number)
	case "boolean":
		return engine.Bool(f.Boolean)
	}
	return engine.Value{}
}

func joinPlain(parts []notionapi.RichText) string {
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(p.PlainText)
	}
	return b.String()
}

// DecodeProperties converts a page's properties into an engine row.
func DecodeProperties(props notionapi.Properties) engine.Row {
	row := make(engine.Row, len(props))
	for name, p := range props {
		row[name] = Value(p)
	}
	return row
}

// DecodePages converts query results into engine rows, one per page.
func DecodePages(pages []notionapi.Page) []engine.Row {
	rows := make([]engine.Row, 0, len(pages))
	for _, p := range pages {
		rows = append(rows, DecodeProperties(p.Properties))
	}
	return rows
}

// ParsePages decodes saved query results: either a bare array of pages or a
// full query response object with a "results" field.
func ParsePages(data []byte) ([]notionapi.Page, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var pages []notionapi.Page
		if err := json.Unmarshal(trimmed, &pages); err != nil {
			return nil, err
		}
		return pages, nil
	}
	var resp notionapi.DatabaseQueryResponse
	if err := json.Unmarshal(trimmed, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}
