package analyze

import (
	"fmt"
	"math"

	"github.com/leapstack-labs/csvprobe/internal/table"
	"github.com/leapstack-labs/csvprobe/pkg/core"
	"github.com/leapstack-labs/csvprobe/pkg/stats"
)

// ImputeStrategies are the supported missing-value handling strategies.
var ImputeStrategies = []string{"mean", "median", "mode", "drop", "fill_zero"}

const imputePreviewRows = 5

// ImputePreview applies a missing-value handling strategy to an in-memory
// copy of the table and reports what changed, with a short preview of the
// processed data. The source file is never touched. The mean and median
// strategies apply only to numeric columns; non-numeric targets are left
// unchanged, mirroring how columns without missing values are skipped.
func (a *Analyzer) ImputePreview(path, strategy string, columns []string) (*ImputeResult, error) {
	if !validStrategy(strategy) {
		return nil, core.ValueErrorf("unknown strategy %q (supported: mean, median, mode, drop, fill_zero)", strategy)
	}

	ds, tbl, err := a.load(path)
	if err != nil {
		return nil, err
	}
	originalShape := Shape{Rows: tbl.Rows(), Columns: len(tbl.Columns)}

	work := copyColumns(tbl)
	targets := columns
	if len(targets) == 0 {
		targets = tbl.ColumnNames()
	}

	var changes, affected []string
	for _, name := range targets {
		col := findColumn(work, name)
		if col == nil {
			continue
		}
		missing := col.MissingCount()
		if missing == 0 {
			continue
		}
		affected = append(affected, name)

		switch strategy {
		case "drop":
			work = dropMissingRows(work, col)
			changes = append(changes, fmt.Sprintf("%s: dropped %d rows", name, missing))

		case "mean":
			if col.Type.Numeric() {
				mean := stats.Mean(col.Floats())
				fillNumeric(col, mean)
				changes = append(changes, fmt.Sprintf("%s: filled %d missing with mean %.2f", name, missing, mean))
			}

		case "median":
			if col.Type.Numeric() {
				median := stats.Median(col.Floats())
				fillNumeric(col, median)
				changes = append(changes, fmt.Sprintf("%s: filled %d missing with median %.2f", name, missing, median))
			}

		case "mode":
			if mode, _, ok := mostFrequent(col); ok {
				fill(col, mode)
				changes = append(changes, fmt.Sprintf("%s: filled %d missing with mode %q", name, missing, mode))
			}

		case "fill_zero":
			fillNumeric(col, 0)
			changes = append(changes, fmt.Sprintf("%s: filled %d missing with zero", name, missing))
		}
	}

	rows := 0
	if len(work) > 0 {
		rows = work[0].Len()
	}
	previewRows := imputePreviewRows
	if previewRows > rows {
		previewRows = rows
	}
	preview := make([]map[string]any, previewRows)
	for i := 0; i < previewRows; i++ {
		row := make(map[string]any, len(work))
		for _, c := range work {
			row[c.Name] = c.Value(i)
		}
		preview[i] = row
	}

	if changes == nil {
		changes = []string{}
	}
	if affected == nil {
		affected = []string{}
	}

	return &ImputeResult{
		Path:            ds.Rel,
		Strategy:        strategy,
		OriginalShape:   originalShape,
		ProcessedShape:  Shape{Rows: rows, Columns: len(work)},
		Changes:         changes,
		AffectedColumns: affected,
		Preview:         preview,
	}, nil
}

func validStrategy(strategy string) bool {
	for _, s := range ImputeStrategies {
		if s == strategy {
			return true
		}
	}
	return false
}

// copyColumns deep-copies the table's columns so imputation never aliases
// the loaded table.
func copyColumns(tbl *table.Table) []*table.Column {
	out := make([]*table.Column, len(tbl.Columns))
	for i, c := range tbl.Columns {
		cells := make([]string, len(c.Cells))
		copy(cells, c.Cells)
		missing := make([]bool, len(c.Missing))
		copy(missing, c.Missing)
		out[i] = &table.Column{Name: c.Name, Type: c.Type, Cells: cells, Missing: missing}
	}
	return out
}

func findColumn(cols []*table.Column, name string) *table.Column {
	for _, c := range cols {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// fillNumeric replaces missing cells with a numeric value. Filling a
// fractional value into an integer column widens the column to float.
func fillNumeric(c *table.Column, v float64) {
	if c.Type == table.TypeInt && v != math.Trunc(v) {
		c.Type = table.TypeFloat
	}
	fill(c, formatFill(v))
}

func fill(c *table.Column, raw string) {
	for i := range c.Cells {
		if c.Missing[i] {
			c.Cells[i] = raw
			c.Missing[i] = false
		}
	}
}

// dropMissingRows removes every row where col is missing, from all columns.
func dropMissingRows(cols []*table.Column, col *table.Column) []*table.Column {
	keep := make([]int, 0, col.Len())
	for i, m := range col.Missing {
		if !m {
			keep = append(keep, i)
		}
	}
	out := make([]*table.Column, len(cols))
	for i, c := range cols {
		cells := make([]string, 0, len(keep))
		missing := make([]bool, 0, len(keep))
		for _, r := range keep {
			cells = append(cells, c.Cells[r])
			missing = append(missing, c.Missing[r])
		}
		out[i] = &table.Column{Name: c.Name, Type: c.Type, Cells: cells, Missing: missing}
	}
	return out
}
