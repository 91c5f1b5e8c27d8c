package analyze

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/leapstack-labs/csvprobe/internal/table"
	"github.com/leapstack-labs/csvprobe/pkg/core"
	"github.com/leapstack-labs/csvprobe/pkg/stats"
)

// OutlierMethods are the supported outlier detection methods.
var OutlierMethods = []string{"iqr", "zscore"}

const (
	iqrFenceFactor  = 1.5
	zscoreThreshold = 3.0
	maxOutliers     = 20
)

// DetectOutliers finds outliers in a numeric column. Method "iqr" flags
// values outside the 1.5x interquartile fences, scoring by the distance to
// the nearer fence; "zscore" flags values with |z| above 3. Results are
// sorted by score descending and capped at the top twenty.
func (a *Analyzer) DetectOutliers(path, column, method string) (*OutliersResult, error) {
	ds, tbl, err := a.load(path)
	if err != nil {
		return nil, err
	}

	c := tbl.Column(column)
	if c == nil {
		return nil, core.ValueErrorf("column %q not found in %s", column, ds.Rel)
	}
	if !c.Type.Numeric() {
		return nil, core.ValueErrorf("column %q is not numeric (type %s)", column, c.Type)
	}

	// Row indices refer to the original table rows.
	var indices []int
	var values []float64
	for i := 0; i < c.Len(); i++ {
		if v, ok := c.Float(i); ok {
			indices = append(indices, i)
			values = append(values, v)
		}
	}

	var outliers []Outlier
	thresholds := map[string]float64{}

	switch method {
	case "iqr":
		q1 := stats.Quantile(values, 0.25)
		q3 := stats.Quantile(values, 0.75)
		iqr := q3 - q1
		lower := q1 - iqrFenceFactor*iqr
		upper := q3 + iqrFenceFactor*iqr
		thresholds = map[string]float64{
			"q1": q1, "q3": q3, "iqr": iqr,
			"lower_bound": lower, "upper_bound": upper,
		}
		for k, v := range values {
			if v < lower || v > upper {
				score := math.Min(math.Abs(v-lower), math.Abs(v-upper))
				outliers = append(outliers, Outlier{Index: indices[k], Value: v, Score: score})
			}
		}

	case "zscore":
		thresholds = map[string]float64{"threshold": zscoreThreshold}
		mean := stats.Mean(values)
		std := populationStd(values)
		if std > 0 {
			for k, v := range values {
				z := math.Abs(v-mean) / std
				if z > zscoreThreshold {
					outliers = append(outliers, Outlier{Index: indices[k], Value: v, Score: z})
				}
			}
		}

	default:
		return nil, core.ValueErrorf("unknown outlier method %q (supported: iqr, zscore)", method)
	}

	sort.Slice(outliers, func(i, j int) bool { return outliers[i].Score > outliers[j].Score })
	total := len(outliers)
	if len(outliers) > maxOutliers {
		outliers = outliers[:maxOutliers]
	}
	if outliers == nil {
		outliers = []Outlier{}
	}

	pct := 0.0
	if len(values) > 0 {
		pct = float64(total) / float64(len(values)) * 100
	}

	return &OutliersResult{
		Path:              ds.Rel,
		Column:            column,
		Method:            method,
		TotalOutliers:     total,
		OutlierPercentage: pct,
		Outliers:          outliers,
		Thresholds:        thresholds,
	}, nil
}

// populationStd is the standard deviation with denominator n, the convention
// z-scores are computed under.
func populationStd(x []float64) float64 {
	n := len(x)
	if n == 0 {
		return 0
	}
	mean := stats.Mean(x)
	ss := 0.0
	for _, v := range x {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(n))
}

// AnalyzeCategorical analyzes the value distribution of a column: frequency
// table, mode, Shannon entropy in bits, and heuristic recommendations.
func (a *Analyzer) AnalyzeCategorical(path, column string) (*CategoricalResult, error) {
	ds, tbl, err := a.load(path)
	if err != nil {
		return nil, err
	}

	c := tbl.Column(column)
	if c == nil {
		return nil, core.ValueErrorf("column %q not found in %s", column, ds.Rel)
	}

	counts := make(map[string]int)
	total := 0
	for i, v := range c.Cells {
		if c.Missing[i] {
			continue
		}
		counts[v]++
		total++
	}
	if total == 0 {
		return nil, core.ValueErrorf("column %q has no non-missing values", column)
	}

	valueCounts := make([]ValueCount, 0, len(counts))
	countsOnly := make([]int, 0, len(counts))
	for v, n := range counts {
		valueCounts = append(valueCounts, ValueCount{
			Value:      v,
			Count:      n,
			Percentage: float64(n) / float64(total) * 100,
		})
		countsOnly = append(countsOnly, n)
	}
	// Highest count first; ties break on value for determinism.
	sort.Slice(valueCounts, func(i, j int) bool {
		if valueCounts[i].Count != valueCounts[j].Count {
			return valueCounts[i].Count > valueCounts[j].Count
		}
		return valueCounts[i].Value < valueCounts[j].Value
	})

	mode := valueCounts[0]
	unique := len(valueCounts)

	var recommendations []string
	if unique > 50 {
		recommendations = append(recommendations,
			fmt.Sprintf("high cardinality (%d unique values): consider consolidating categories", unique))
	}
	if float64(mode.Count)/float64(total) > 0.9 {
		recommendations = append(recommendations,
			"a single dominant category: watch for class imbalance")
	}
	if unique == total {
		recommendations = append(recommendations,
			"all values are distinct: this may be an identifier column")
	}

	return &CategoricalResult{
		Path:            ds.Rel,
		Column:          column,
		UniqueCount:     unique,
		ValueCounts:     valueCounts,
		Mode:            mode.Value,
		ModeFrequency:   mode.Count,
		Entropy:         entropyBits(countsOnly, total),
		Recommendations: recommendations,
	}, nil
}

// Severity weights for the quality report.
const (
	highMissingRate      = 0.20
	highMissingWeight    = 10
	highDuplicatePct     = 5.0
	highCardinalityRatio = 0.9
	highCardinalityWt    = 5
)

// QualityReport generates the dataset-wide quality report: duplicates,
// per-column quality, recommendations, and an aggregate severity score.
func (a *Analyzer) QualityReport(path string) (*QualityReportResult, error) {
	ds, tbl, err := a.load(path)
	if err != nil {
		return nil, err
	}

	total := tbl.Rows()
	duplicates := countDuplicateRows(tbl)
	dupPct := 0.0
	if total > 0 {
		dupPct = float64(duplicates) / float64(total) * 100
	}

	var highMissing, highCardinality []string
	columns := make([]ColumnQuality, len(tbl.Columns))
	for i, c := range tbl.Columns {
		missing := c.MissingCount()
		cq := ColumnQuality{
			Name:         c.Name,
			Dtype:        c.Type,
			NonNullCount: total - missing,
			NullCount:    missing,
			UniqueCount:  c.DistinctCount(),
		}

		switch {
		case c.Type.Numeric():
			values := c.Floats()
			var zeros, negatives int
			for _, v := range values {
				if v == 0 {
					zeros++
				}
				if v < 0 {
					negatives++
				}
			}
			cq.Numeric = &NumericQuality{
				Mean:          core.Float(stats.Mean(values)),
				Std:           core.Float(stats.SampleStd(values)),
				Min:           core.Float(stats.Min(values)),
				Max:           core.Float(stats.Max(values)),
				ZeroCount:     zeros,
				NegativeCount: negatives,
			}
		case c.Type == table.TypeString:
			tq := &TextQuality{}
			if mode, count, ok := mostFrequent(c); ok {
				tq.MostFrequent = mode
				tq.MostFrequentCount = count
			}
			if total > 0 {
				tq.CardinalityRatio = float64(c.DistinctCount()) / float64(total)
			}
			cq.Text = tq
			if tq.CardinalityRatio > highCardinalityRatio {
				highCardinality = append(highCardinality, c.Name)
			}
		}

		if total > 0 && float64(missing)/float64(total) > highMissingRate {
			highMissing = append(highMissing, c.Name)
		}
		columns[i] = cq
	}

	var recommendations []string
	severity := 0.0
	if len(highMissing) > 0 {
		recommendations = append(recommendations, fmt.Sprintf(
			"columns with high missing rates (%d): %s", len(highMissing), strings.Join(firstN(highMissing, 3), ", ")))
		severity += float64(len(highMissing) * highMissingWeight)
	}
	if dupPct > highDuplicatePct {
		recommendations = append(recommendations, fmt.Sprintf(
			"many duplicate rows (%.1f%%): consider deduplication", dupPct))
		severity += dupPct
	}
	if len(highCardinality) > 0 {
		recommendations = append(recommendations, fmt.Sprintf(
			"high-cardinality text columns: %s", strings.Join(firstN(highCardinality, 3), ", ")))
		severity += float64(len(highCardinality) * highCardinalityWt)
	}

	return &QualityReportResult{
		Path: ds.Rel,
		Metrics: QualityMetrics{
			TotalRows:           total,
			TotalColumns:        len(tbl.Columns),
			DuplicateRows:       duplicates,
			DuplicatePercentage: dupPct,
		},
		Columns:         columns,
		Recommendations: recommendations,
		SeverityScore:   math.Min(severity, 100),
	}, nil
}

// countDuplicateRows counts rows that are exact repeats of an earlier row.
func countDuplicateRows(tbl *table.Table) int {
	seen := make(map[string]bool, tbl.Rows())
	duplicates := 0
	var sb strings.Builder
	for r := 0; r < tbl.Rows(); r++ {
		sb.Reset()
		for _, c := range tbl.Columns {
			if c.Missing[r] {
				sb.WriteString("\x00\x01")
			} else {
				sb.WriteString(c.Cells[r])
			}
			sb.WriteByte('\x00')
		}
		key := sb.String()
		if seen[key] {
			duplicates++
		} else {
			seen[key] = true
		}
	}
	return duplicates
}

// mostFrequent returns the most common non-missing value of a column, ties
// broken by value for determinism.
func mostFrequent(c *table.Column) (string, int, bool) {
	counts := make(map[string]int)
	for i, v := range c.Cells {
		if !c.Missing[i] {
			counts[v]++
		}
	}
	best, bestCount := "", 0
	for v, n := range counts {
		if n > bestCount || (n == bestCount && v < best) {
			best, bestCount = v, n
		}
	}
	return best, bestCount, bestCount > 0
}

func firstN(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// formatFill renders a numeric fill value the way it will appear in cells.
func formatFill(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
