package table

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/leapstack-labs/csvprobe/pkg/core"
)

// missingTokens are the cell values treated as missing in addition to the
// empty cell, matching how the source data was produced (pandas NA markers).
var missingTokens = map[string]bool{
	"na":   true,
	"n/a":  true,
	"nan":  true,
	"null": true,
}

// timeLayouts are the timestamp formats recognized during type inference,
// tried in order.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01/02/2006",
}

// Load reads the CSV file at path into a Table. The first row is the header;
// column names must be non-empty and unique. Types are inferred per column
// from all non-missing values. Every call re-reads the file from disk.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, core.NotFoundf("file not found: %s", path)
	}
	defer f.Close()

	// FieldsPerRecord is left at its default so the reader enforces a
	// uniform field count against the header row.
	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, core.ParseErrorf("malformed CSV %s: %v", path, err)
	}
	if len(records) == 0 {
		return nil, core.ParseErrorf("empty CSV (no header row): %s", path)
	}

	header := records[0]
	seen := make(map[string]bool, len(header))
	for _, name := range header {
		if strings.TrimSpace(name) == "" {
			return nil, core.ParseErrorf("empty column name in header of %s", path)
		}
		if seen[name] {
			return nil, core.ParseErrorf("duplicate column name %q in %s", name, path)
		}
		seen[name] = true
	}

	rows := records[1:]
	columns := make([]*Column, len(header))
	byName := make(map[string]*Column, len(header))
	for i, name := range header {
		col := &Column{
			Name:    name,
			Cells:   make([]string, len(rows)),
			Missing: make([]bool, len(rows)),
		}
		for r, record := range rows {
			cell := record[i]
			col.Cells[r] = cell
			col.Missing[r] = isMissing(cell)
		}
		col.Type = inferType(col)
		columns[i] = col
		byName[name] = col
	}

	return &Table{Columns: columns, byName: byName, rows: len(rows)}, nil
}

func isMissing(cell string) bool {
	trimmed := strings.TrimSpace(cell)
	return trimmed == "" || missingTokens[strings.ToLower(trimmed)]
}

// inferType scans every non-missing cell once, collecting the most specific
// type consistent with all of them. Integer narrows to float narrows to
// string; boolean and temporal are separate tracks that only win when the
// numeric track is already ruled out.
func inferType(c *Column) Type {
	canInt, canFloat, canBool, canTime := true, true, true, true
	sawValue := false

	for i, cell := range c.Cells {
		if c.Missing[i] {
			continue
		}
		sawValue = true
		v := strings.TrimSpace(cell)

		if canInt {
			if _, err := strconv.ParseInt(v, 10, 64); err != nil {
				canInt = false
			}
		}
		if canFloat {
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				canFloat = false
			}
		}
		if canBool {
			if _, err := strconv.ParseBool(v); err != nil {
				canBool = false
			}
		}
		if canTime {
			if !parsesAsTime(v) {
				canTime = false
			}
		}
		if !canInt && !canFloat && !canBool && !canTime {
			break
		}
	}

	if !sawValue {
		// A fully missing column carries no type evidence.
		return TypeString
	}
	switch {
	case canInt:
		return TypeInt
	case canFloat:
		return TypeFloat
	case canBool:
		return TypeBool
	case canTime:
		return TypeTime
	default:
		return TypeString
	}
}

func parsesAsTime(v string) bool {
	for _, layout := range timeLayouts {
		if _, err := time.Parse(layout, v); err == nil {
			return true
		}
	}
	return false
}
