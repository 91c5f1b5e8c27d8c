package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/leapstack-labs/csvprobe/pkg/core"
)

// emit renders a result as indented JSON or hands off to the command's
// table renderer, depending on the configured output format.
func emit(w io.Writer, format string, v any, renderTable func(w io.Writer)) error {
	if format == "json" {
		return renderJSON(w, v)
	}
	renderTable(w)
	return nil
}

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

func formatValue(v any) string {
	if v == nil {
		return "NULL"
	}
	return fmt.Sprintf("%v", v)
}

// formatFloat renders a statistic, keeping NaN visible in table output
// where JSON would show null.
func formatFloat(f core.Float) string {
	v := float64(f)
	if math.IsNaN(v) {
		return "NaN"
	}
	return fmt.Sprintf("%.6g", v)
}

func formatPct(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}
