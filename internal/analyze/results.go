package analyze

import (
	"github.com/leapstack-labs/csvprobe/internal/table"
	"github.com/leapstack-labs/csvprobe/pkg/core"
)

// Each operation returns its own tagged result struct so serialization is
// exhaustive and type-checked rather than an untyped map.

// ListDatasetsResult lists the CSV files available under the data root.
type ListDatasetsResult struct {
	DataRoot string   `json:"data_root"`
	Datasets []string `json:"datasets"`
}

// PreviewResult holds the first rows of a dataset.
type PreviewResult struct {
	Path    string           `json:"path"`
	NRows   int              `json:"n_rows"`
	Columns []string         `json:"columns"`
	Rows    []map[string]any `json:"rows"`
}

// ColumnProfile summarizes a single column: inferred type and basic counts.
// NonNullCount + NullCount always equals the table's row count.
type ColumnProfile struct {
	Name         string     `json:"name"`
	Dtype        table.Type `json:"dtype"`
	NonNullCount int        `json:"non_null_count"`
	NullCount    int        `json:"null_count"`
	UniqueCount  int        `json:"unique_count"`
}

// ColumnInfoResult profiles every column of a dataset in column order.
type ColumnInfoResult struct {
	Path    string          `json:"path"`
	Columns []ColumnProfile `json:"columns"`
}

// MissingColumn is the missing-value summary of one column. MissingRate is
// always in [0, 1]; it is 0 for every column of an empty table.
type MissingColumn struct {
	Name         string  `json:"name"`
	MissingCount int     `json:"missing_count"`
	MissingRate  float64 `json:"missing_rate"`
}

// MissingValuesResult summarizes missing values per column.
type MissingValuesResult struct {
	Path      string          `json:"path"`
	TotalRows int             `json:"total_rows"`
	Columns   []MissingColumn `json:"columns"`
}

// Shape is the row/column count of a table.
type Shape struct {
	Rows    int `json:"rows"`
	Columns int `json:"columns"`
}

// NumericSummary holds the descriptive statistics of one numeric column.
// Std is the sample standard deviation and is null (NaN) with fewer than two
// non-missing values.
type NumericSummary struct {
	Name   string     `json:"name"`
	Count  int        `json:"count"`
	Mean   core.Float `json:"mean"`
	Std    core.Float `json:"std"`
	Min    core.Float `json:"min"`
	P25    core.Float `json:"25%"`
	Median core.Float `json:"50%"`
	P75    core.Float `json:"75%"`
	Max    core.Float `json:"max"`
}

// DescribeResult holds descriptive statistics for the numeric columns of a
// dataset. Columns is empty (not an error) when the table has no numeric
// columns.
type DescribeResult struct {
	Path    string           `json:"path"`
	Shape   Shape            `json:"shape"`
	Columns []NumericSummary `json:"describe"`
}

// CorrelationResult is a square, symmetric correlation matrix with diagonal
// exactly 1.0. Matrix[i][j] is the coefficient between Columns[i] and
// Columns[j].
type CorrelationResult struct {
	Path    string         `json:"path"`
	Method  string         `json:"method"`
	Columns []string       `json:"columns"`
	Matrix  [][]core.Float `json:"matrix"`
}

// Outlier is a single detected outlier, identified by its row index in the
// column's non-missing sequence.
type Outlier struct {
	Index int     `json:"index"`
	Value float64 `json:"value"`
	Score float64 `json:"score"`
}

// OutliersResult holds the outliers detected in one numeric column, sorted
// by score descending and capped at the top twenty.
type OutliersResult struct {
	Path              string             `json:"path"`
	Column            string             `json:"column"`
	Method            string             `json:"method"`
	TotalOutliers     int                `json:"total_outliers"`
	OutlierPercentage float64            `json:"outlier_percentage"`
	Outliers          []Outlier          `json:"outliers"`
	Thresholds        map[string]float64 `json:"threshold_info"`
}

// ValueCount is one categorical value with its frequency.
type ValueCount struct {
	Value      string  `json:"value"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// CategoricalResult is the detailed analysis of a categorical column.
type CategoricalResult struct {
	Path            string       `json:"path"`
	Column          string       `json:"column"`
	UniqueCount     int          `json:"unique_count"`
	ValueCounts     []ValueCount `json:"value_counts"`
	Mode            string       `json:"mode"`
	ModeFrequency   int          `json:"mode_frequency"`
	Entropy         float64      `json:"entropy"`
	Recommendations []string     `json:"recommendations"`
}

// NumericQuality holds the numeric portion of a column quality entry.
type NumericQuality struct {
	Mean          core.Float `json:"mean"`
	Std           core.Float `json:"std"`
	Min           core.Float `json:"min"`
	Max           core.Float `json:"max"`
	ZeroCount     int        `json:"zero_count"`
	NegativeCount int        `json:"negative_count"`
}

// TextQuality holds the categorical portion of a column quality entry.
type TextQuality struct {
	MostFrequent      string  `json:"most_frequent"`
	MostFrequentCount int     `json:"most_frequent_count"`
	CardinalityRatio  float64 `json:"cardinality_ratio"`
}

// ColumnQuality is the per-column section of a quality report. Exactly one
// of Numeric or Text is set, depending on the column type.
type ColumnQuality struct {
	Name         string          `json:"name"`
	Dtype        table.Type      `json:"dtype"`
	NonNullCount int             `json:"non_null_count"`
	NullCount    int             `json:"null_count"`
	UniqueCount  int             `json:"unique_count"`
	Numeric      *NumericQuality `json:"numeric,omitempty"`
	Text         *TextQuality    `json:"text,omitempty"`
}

// QualityMetrics are the dataset-level quality numbers.
type QualityMetrics struct {
	TotalRows           int     `json:"total_rows"`
	TotalColumns        int     `json:"total_columns"`
	DuplicateRows       int     `json:"duplicate_rows"`
	DuplicatePercentage float64 `json:"duplicate_percentage"`
}

// QualityReportResult is the comprehensive data quality report. Severity is
// 0-100, higher is worse.
type QualityReportResult struct {
	Path            string          `json:"path"`
	Metrics         QualityMetrics  `json:"metrics"`
	Columns         []ColumnQuality `json:"column_quality"`
	Recommendations []string        `json:"recommendations"`
	SeverityScore   float64         `json:"severity_score"`
}

// ImputeResult describes a missing-value handling pass over an in-memory
// copy of the table. The source file is never modified.
type ImputeResult struct {
	Path            string           `json:"path"`
	Strategy        string           `json:"strategy"`
	OriginalShape   Shape            `json:"original_shape"`
	ProcessedShape  Shape            `json:"processed_shape"`
	Changes         []string         `json:"changes_made"`
	AffectedColumns []string         `json:"affected_columns"`
	Preview         []map[string]any `json:"preview"`
}
