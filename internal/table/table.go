// Package table holds the in-memory tabular representation of a loaded CSV
// file. A Table is created fresh on every load, owned exclusively by the call
// that created it, and discarded when the call completes; nothing in this
// package retains state between loads.
package table

import (
	"strconv"
	"strings"
)

// Type is the inferred semantic type of a column.
type Type string

const (
	// TypeInt means every non-missing value parses as an integer literal.
	TypeInt Type = "int64"
	// TypeFloat means every non-missing value parses as a number, at least
	// one of which is not an integer literal.
	TypeFloat Type = "float64"
	// TypeBool means values are drawn only from the true/false vocabulary.
	TypeBool Type = "bool"
	// TypeTime means every non-missing value parses under one of the
	// supported timestamp layouts.
	TypeTime Type = "datetime"
	// TypeString is the fallback for everything else.
	TypeString Type = "string"
)

// Numeric reports whether the type participates in numeric statistics.
func (t Type) Numeric() bool {
	return t == TypeInt || t == TypeFloat
}

// Column is a single named column: the inferred type plus the raw cell
// values. Cells[i] is the raw text of row i; Missing[i] marks absent cells.
type Column struct {
	Name    string
	Type    Type
	Cells   []string
	Missing []bool
}

// Len returns the number of rows in the column.
func (c *Column) Len() int {
	return len(c.Cells)
}

// MissingCount returns the number of missing cells.
func (c *Column) MissingCount() int {
	n := 0
	for _, m := range c.Missing {
		if m {
			n++
		}
	}
	return n
}

// DistinctCount returns the number of distinct non-missing values. Typed
// columns compare trimmed cells so padding does not split a value in two.
func (c *Column) DistinctCount() int {
	seen := make(map[string]struct{})
	for i, v := range c.Cells {
		if c.Missing[i] {
			continue
		}
		if c.Type != TypeString {
			v = strings.TrimSpace(v)
		}
		seen[v] = struct{}{}
	}
	return len(seen)
}

// Float returns the numeric value of row i. The second return is false when
// the cell is missing or the column is not numeric. Parsing uses the trimmed
// cell, the same normalization that type inference applies.
func (c *Column) Float(i int) (float64, bool) {
	if c.Missing[i] || !c.Type.Numeric() {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(c.Cells[i]), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Floats returns all non-missing numeric values of the column in row order.
func (c *Column) Floats() []float64 {
	out := make([]float64, 0, c.Len())
	for i := range c.Cells {
		if v, ok := c.Float(i); ok {
			out = append(out, v)
		}
	}
	return out
}

// Value returns the typed value of row i for serialization: nil for missing
// cells, int64/float64/bool for typed columns, the raw string otherwise.
func (c *Column) Value(i int) any {
	if c.Missing[i] {
		return nil
	}
	raw := c.Cells[i]
	// Typed parsing uses the trimmed cell, matching inference; the raw
	// string (whitespace included) is only returned for string columns.
	trimmed := strings.TrimSpace(raw)
	switch c.Type {
	case TypeInt:
		if v, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
			return v
		}
	case TypeFloat:
		if v, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return v
		}
	case TypeBool:
		if v, err := strconv.ParseBool(trimmed); err == nil {
			return v
		}
	}
	return raw
}

// Table is an ordered sequence of named columns with a uniform row count.
type Table struct {
	Columns []*Column

	byName map[string]*Column
	rows   int
}

// Rows returns the number of data rows.
func (t *Table) Rows() int {
	return t.rows
}

// Column returns the named column, or nil if absent.
func (t *Table) Column(name string) *Column {
	return t.byName[name]
}

// ColumnNames returns the column names in table order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// NumericColumns returns the numeric-typed columns in table order.
func (t *Table) NumericColumns() []*Column {
	var out []*Column
	for _, c := range t.Columns {
		if c.Type.Numeric() {
			out = append(out, c)
		}
	}
	return out
}
