// Package analyze implements the analysis operations exposed as tools:
// dataset listing, preview, column profiling, missing-value summaries,
// descriptive statistics, correlation matrices, and the data quality
// operations. Every operation resolves its path through the sandbox, loads
// the table fresh from disk, and computes its result without retaining any
// state between calls.
package analyze

import (
	"log/slog"
	"math"

	"github.com/leapstack-labs/csvprobe/internal/sandbox"
	"github.com/leapstack-labs/csvprobe/internal/table"
	"github.com/leapstack-labs/csvprobe/pkg/core"
	"github.com/leapstack-labs/csvprobe/pkg/stats"
)

// Analyzer binds the sandboxed data root to the analysis operations. Safe
// for concurrent use: the root is immutable and each call owns its own
// freshly loaded table.
type Analyzer struct {
	root   *sandbox.Root
	logger *slog.Logger
}

// New creates an Analyzer over the given data root. A nil logger discards.
func New(root *sandbox.Root, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Analyzer{root: root, logger: logger}
}

// DataRoot returns the canonical data root path.
func (a *Analyzer) DataRoot() string {
	return a.root.Path()
}

// load resolves a caller path and reads the table behind it.
func (a *Analyzer) load(path string) (sandbox.Dataset, *table.Table, error) {
	ds, err := a.root.Resolve(path)
	if err != nil {
		return sandbox.Dataset{}, nil, err
	}
	tbl, err := table.Load(ds.Path)
	if err != nil {
		return sandbox.Dataset{}, nil, err
	}
	return ds, tbl, nil
}

// ListDatasets enumerates the CSV files under the data root without loading
// any of them.
func (a *Analyzer) ListDatasets() (*ListDatasetsResult, error) {
	datasets, err := a.root.List()
	if err != nil {
		return nil, err
	}
	a.logger.Debug("listed datasets", "count", len(datasets))
	return &ListDatasetsResult{DataRoot: a.root.Path(), Datasets: datasets}, nil
}

// Preview returns the first nRows rows of the dataset. nRows must not be
// negative; a value past the end of the table returns all rows.
func (a *Analyzer) Preview(path string, nRows int) (*PreviewResult, error) {
	if nRows < 0 {
		return nil, core.ValueErrorf("n_rows must not be negative, got %d", nRows)
	}
	ds, tbl, err := a.load(path)
	if err != nil {
		return nil, err
	}

	if nRows > tbl.Rows() {
		nRows = tbl.Rows()
	}
	rows := make([]map[string]any, nRows)
	for i := 0; i < nRows; i++ {
		row := make(map[string]any, len(tbl.Columns))
		for _, c := range tbl.Columns {
			row[c.Name] = c.Value(i)
		}
		rows[i] = row
	}

	return &PreviewResult{
		Path:    ds.Rel,
		NRows:   nRows,
		Columns: tbl.ColumnNames(),
		Rows:    rows,
	}, nil
}

// ColumnInfo profiles every column of the dataset in column order.
func (a *Analyzer) ColumnInfo(path string) (*ColumnInfoResult, error) {
	ds, tbl, err := a.load(path)
	if err != nil {
		return nil, err
	}

	profiles := make([]ColumnProfile, len(tbl.Columns))
	for i, c := range tbl.Columns {
		missing := c.MissingCount()
		profiles[i] = ColumnProfile{
			Name:         c.Name,
			Dtype:        c.Type,
			NonNullCount: tbl.Rows() - missing,
			NullCount:    missing,
			UniqueCount:  c.DistinctCount(),
		}
	}
	return &ColumnInfoResult{Path: ds.Rel, Columns: profiles}, nil
}

// MissingValues summarizes missing counts and rates per column. An empty
// table reports rate 0 for every column.
func (a *Analyzer) MissingValues(path string) (*MissingValuesResult, error) {
	ds, tbl, err := a.load(path)
	if err != nil {
		return nil, err
	}

	total := tbl.Rows()
	columns := make([]MissingColumn, len(tbl.Columns))
	for i, c := range tbl.Columns {
		missing := c.MissingCount()
		rate := 0.0
		if total > 0 {
			rate = float64(missing) / float64(total)
		}
		columns[i] = MissingColumn{Name: c.Name, MissingCount: missing, MissingRate: rate}
	}
	return &MissingValuesResult{Path: ds.Rel, TotalRows: total, Columns: columns}, nil
}

// Describe computes descriptive statistics for every numeric column. A table
// without numeric columns yields an empty column list, not an error.
func (a *Analyzer) Describe(path string) (*DescribeResult, error) {
	ds, tbl, err := a.load(path)
	if err != nil {
		return nil, err
	}

	numeric := tbl.NumericColumns()
	summaries := make([]NumericSummary, 0, len(numeric))
	for _, c := range numeric {
		values := c.Floats()
		summaries = append(summaries, NumericSummary{
			Name:   c.Name,
			Count:  len(values),
			Mean:   core.Float(stats.Mean(values)),
			Std:    core.Float(stats.SampleStd(values)),
			Min:    core.Float(stats.Min(values)),
			P25:    core.Float(stats.Quantile(values, 0.25)),
			Median: core.Float(stats.Median(values)),
			P75:    core.Float(stats.Quantile(values, 0.75)),
			Max:    core.Float(stats.Max(values)),
		})
	}

	return &DescribeResult{
		Path:    ds.Rel,
		Shape:   Shape{Rows: tbl.Rows(), Columns: len(tbl.Columns)},
		Columns: summaries,
	}, nil
}

// CorrelationMethods are the supported correlation methods.
var CorrelationMethods = []string{"pearson", "spearman", "kendall"}

// Correlation computes the pairwise correlation matrix over the selected
// numeric columns. With no explicit columns it uses all numeric columns of
// the table; an explicit list is intersected with the numeric columns,
// preserving the caller's order. An empty selection after filtering is a
// value error: a zero-column matrix is meaningless to the caller. Rows
// missing a value in either column of a pair are excluded pairwise, not from
// the whole table.
func (a *Analyzer) Correlation(path string, columns []string, method string) (*CorrelationResult, error) {
	coef, err := coefficientFunc(method)
	if err != nil {
		return nil, err
	}

	ds, tbl, err := a.load(path)
	if err != nil {
		return nil, err
	}

	selected := selectNumeric(tbl, columns)
	if len(selected) == 0 {
		if len(columns) > 0 {
			return nil, core.ValueErrorf("none of the requested columns are numeric columns of %s", ds.Rel)
		}
		return nil, core.ValueErrorf("no numeric columns available for correlation in %s", ds.Rel)
	}

	names := make([]string, len(selected))
	for i, c := range selected {
		names[i] = c.Name
	}

	matrix := make([][]core.Float, len(selected))
	for i := range matrix {
		matrix[i] = make([]core.Float, len(selected))
		matrix[i][i] = 1.0
	}
	for i := 0; i < len(selected); i++ {
		for j := i + 1; j < len(selected); j++ {
			x, y := pairwiseComplete(selected[i], selected[j])
			r := core.Float(coef(x, y))
			matrix[i][j] = r
			matrix[j][i] = r
		}
	}

	a.logger.Debug("computed correlation", "path", ds.Rel, "method", method, "columns", len(selected))
	return &CorrelationResult{Path: ds.Rel, Method: method, Columns: names, Matrix: matrix}, nil
}

func coefficientFunc(method string) (func(x, y []float64) float64, error) {
	switch method {
	case "pearson":
		return stats.Pearson, nil
	case "spearman":
		return stats.Spearman, nil
	case "kendall":
		return stats.KendallTau, nil
	default:
		return nil, core.ValueErrorf("unknown correlation method %q (supported: pearson, spearman, kendall)", method)
	}
}

// selectNumeric returns the numeric columns to correlate. requested order
// wins when given; non-numeric or absent names are dropped.
func selectNumeric(tbl *table.Table, requested []string) []*table.Column {
	if len(requested) == 0 {
		return tbl.NumericColumns()
	}
	var out []*table.Column
	for _, name := range requested {
		if c := tbl.Column(name); c != nil && c.Type.Numeric() {
			out = append(out, c)
		}
	}
	return out
}

// pairwiseComplete returns the value pairs from rows where both columns are
// non-missing.
func pairwiseComplete(a, b *table.Column) ([]float64, []float64) {
	n := a.Len()
	x := make([]float64, 0, n)
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		va, oka := a.Float(i)
		vb, okb := b.Float(i)
		if oka && okb {
			x = append(x, va)
			y = append(y, vb)
		}
	}
	return x, y
}

// entropyBits returns the Shannon entropy of a discrete distribution given
// as counts, in bits.
func entropyBits(counts []int, total int) float64 {
	if total == 0 {
		return 0
	}
	h := 0.0
	for _, c := range counts {
		if c == 0 {
			continue
		}
		p := float64(c) / float64(total)
		h -= p * math.Log2(p)
	}
	return h
}
