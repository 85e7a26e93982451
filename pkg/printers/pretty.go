// Package printers renders engine state for the command line.
package printers

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/calpage/pkg/events"
)

// PrettyPrint writes colored, human oriented output.
type PrettyPrint struct {
	// Out defaults to color.Output.
	Out io.Writer
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

// NewLine writes an empty line.
func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

// Title writes a bold, underlined title.
func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

// Fields writes label/value pairs as an aligned table.
func (pp *PrettyPrint) Fields(rows ...[2]string) {
	tbl := uitable.New()
	tbl.Separator = "  "
	b := color.New(color.Bold)
	for _, r := range rows {
		tbl.AddRow(b.Sprint(r[0]), r[1])
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Events writes one row per event with its component, kind and detail.
func (pp *PrettyPrint) Events(msgs ...events.Msg) {
	if len(msgs) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprintln(pp.out(), " no events")
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	b := color.New(color.Bold)
	tbl.AddRow(b.Sprint("Component"), b.Sprint("Event"), b.Sprint("Detail"))
	for _, m := range msgs {
		tbl.AddRow(componentOf(m), kindOf(m), m.Describe())
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

func componentOf(m events.Msg) events.ComponentID {
	switch m := m.(type) {
	case events.MonthChangedMsg:
		return m.Component
	case events.YearChangedMsg:
		return m.Component
	case events.SelectionChangedMsg:
		return m.Component
	case events.ScrollCommandMsg:
		return m.Component
	case events.RangeChangedMsg:
		return m.Component
	case events.StateChangedMsg:
		return m.Component
	}
	return ""
}

// kindOf turns MonthChangedMsg into "month-changed".
func kindOf(m events.Msg) string {
	name := fmt.Sprintf("%T", m)
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSuffix(name, "Msg")
	var sb strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				sb.WriteByte('-')
			}
			r += 'a' - 'A'
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// EventRecord is the JSON form of an event.
type EventRecord struct {
	Component string `json:"component"`
	Event     string `json:"event"`
	Detail    string `json:"detail"`
}

// Records converts events for JSON output.
func Records(msgs ...events.Msg) []EventRecord {
	out := make([]EventRecord, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, EventRecord{
			Component: string(componentOf(m)),
			Event:     kindOf(m),
			Detail:    m.Describe(),
		})
	}
	return out
}

// JSON writes v as indented JSON.
func (pp *PrettyPrint) JSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(pp.out(), string(b))
	return err
}
