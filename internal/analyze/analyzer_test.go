package analyze

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/csvprobe/internal/sandbox"
	"github.com/leapstack-labs/csvprobe/pkg/core"
)

// sampleCSV is the reference fixture: five rows, an integer column with one
// missing value, a float column, and a text column.
const sampleCSV = `age,income,city
22,35000.5,Tokyo
35,52000.0,Osaka
,61000.25,Tokyo
41,45500.75,Nagoya
29,39000.0,Osaka
`

// newTestAnalyzer creates an analyzer over a temp data root seeded with the
// given files.
func newTestAnalyzer(t *testing.T, files map[string]string) *Analyzer {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	root, err := sandbox.New(dir)
	require.NoError(t, err)
	return New(root, nil)
}

func sampleAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	return newTestAnalyzer(t, map[string]string{"sample.csv": sampleCSV})
}

func TestListDatasets(t *testing.T) {
	a := newTestAnalyzer(t, map[string]string{
		"sample.csv":     sampleCSV,
		"sub/nested.csv": "x\n1\n",
		"readme.txt":     "not a dataset",
	})

	res, err := a.ListDatasets()
	require.NoError(t, err)
	assert.Equal(t, a.DataRoot(), res.DataRoot)
	assert.Equal(t, []string{"sample.csv", "sub/nested.csv"}, res.Datasets)
}

func TestPreview(t *testing.T) {
	rows := "v\n"
	for i := 0; i < 10; i++ {
		rows += "1\n"
	}
	a := newTestAnalyzer(t, map[string]string{"ten.csv": rows})

	t.Run("fewer than table", func(t *testing.T) {
		res, err := a.Preview("ten.csv", 3)
		require.NoError(t, err)
		assert.Equal(t, 3, res.NRows)
		assert.Len(t, res.Rows, 3)
	})

	t.Run("past the end returns all", func(t *testing.T) {
		res, err := a.Preview("ten.csv", 100)
		require.NoError(t, err)
		assert.Equal(t, 10, res.NRows)
		assert.Len(t, res.Rows, 10)
	})

	t.Run("zero rows keeps column names", func(t *testing.T) {
		res, err := a.Preview("ten.csv", 0)
		require.NoError(t, err)
		assert.Empty(t, res.Rows)
		assert.Equal(t, []string{"v"}, res.Columns)
	})

	t.Run("negative is a value error", func(t *testing.T) {
		_, err := a.Preview("ten.csv", -1)
		assert.True(t, core.IsKind(err, core.KindValueError))
	})
}

func TestPreview_TypedValues(t *testing.T) {
	a := sampleAnalyzer(t)

	res, err := a.Preview("sample.csv", 5)
	require.NoError(t, err)
	assert.Equal(t, int64(22), res.Rows[0]["age"])
	assert.Equal(t, 35000.5, res.Rows[0]["income"])
	assert.Equal(t, "Tokyo", res.Rows[0]["city"])
	assert.Nil(t, res.Rows[2]["age"], "missing cell previews as null")
}

func TestColumnInfo(t *testing.T) {
	a := sampleAnalyzer(t)

	res, err := a.ColumnInfo("sample.csv")
	require.NoError(t, err)
	require.Len(t, res.Columns, 3)

	age := res.Columns[0]
	assert.Equal(t, "age", age.Name)
	assert.Equal(t, "int64", string(age.Dtype))
	assert.Equal(t, 4, age.NonNullCount)
	assert.Equal(t, 1, age.NullCount)
	assert.Equal(t, 4, age.UniqueCount)

	city := res.Columns[2]
	assert.Equal(t, "string", string(city.Dtype))
	assert.Equal(t, 3, city.UniqueCount)

	// Non-null plus null always covers every row.
	for _, c := range res.Columns {
		assert.Equal(t, 5, c.NonNullCount+c.NullCount, "column %s", c.Name)
	}
}

func TestMissingValues(t *testing.T) {
	a := sampleAnalyzer(t)

	res, err := a.MissingValues("sample.csv")
	require.NoError(t, err)
	assert.Equal(t, 5, res.TotalRows)

	byName := map[string]MissingColumn{}
	for _, c := range res.Columns {
		byName[c.Name] = c
		assert.GreaterOrEqual(t, c.MissingRate, 0.0)
		assert.LessOrEqual(t, c.MissingRate, 1.0)
	}
	assert.Equal(t, MissingColumn{Name: "age", MissingCount: 1, MissingRate: 0.2}, byName["age"])
	assert.Equal(t, MissingColumn{Name: "income", MissingCount: 0, MissingRate: 0.0}, byName["income"])
	assert.Equal(t, MissingColumn{Name: "city", MissingCount: 0, MissingRate: 0.0}, byName["city"])
}

func TestMissingValues_EmptyTable(t *testing.T) {
	a := newTestAnalyzer(t, map[string]string{"empty.csv": "a,b\n"})

	res, err := a.MissingValues("empty.csv")
	require.NoError(t, err)
	assert.Equal(t, 0, res.TotalRows)
	for _, c := range res.Columns {
		assert.Equal(t, 0.0, c.MissingRate)
	}
}

func TestDescribe(t *testing.T) {
	a := sampleAnalyzer(t)

	res, err := a.Describe("sample.csv")
	require.NoError(t, err)
	assert.Equal(t, Shape{Rows: 5, Columns: 3}, res.Shape)

	// Only the two numeric columns are described.
	require.Len(t, res.Columns, 2)
	age := res.Columns[0]
	assert.Equal(t, "age", age.Name)
	assert.Equal(t, 4, age.Count)
	assert.InDelta(t, 31.75, float64(age.Mean), 1e-9)
	assert.InDelta(t, 8.139410092, float64(age.Std), 1e-6)
	assert.InDelta(t, 22, float64(age.Min), 1e-9)
	assert.InDelta(t, 41, float64(age.Max), 1e-9)
}

func TestDescribe_StdUndefinedForSingleValue(t *testing.T) {
	a := newTestAnalyzer(t, map[string]string{"one.csv": "v\n7\n"})

	res, err := a.Describe("one.csv")
	require.NoError(t, err)
	require.Len(t, res.Columns, 1)
	assert.True(t, isNaN(res.Columns[0].Std))
	assert.InDelta(t, 7, float64(res.Columns[0].Mean), 1e-9)
}

func TestDescribe_NoNumericColumns(t *testing.T) {
	a := newTestAnalyzer(t, map[string]string{"text.csv": "name,city\nalice,Tokyo\nbob,Osaka\n"})

	// Describe is lenient: empty statistics, no error.
	res, err := a.Describe("text.csv")
	require.NoError(t, err)
	assert.Empty(t, res.Columns)

	// Correlation is strict on the same table.
	_, err = a.Correlation("text.csv", nil, "pearson")
	assert.True(t, core.IsKind(err, core.KindValueError))
}

func TestDescribe_WhitespacePaddedCells(t *testing.T) {
	a := newTestAnalyzer(t, map[string]string{
		"padded.csv": "a,b\n1, 2\n3, 4\n",
	})

	res, err := a.Describe("padded.csv")
	require.NoError(t, err)
	require.Len(t, res.Columns, 2)

	b := res.Columns[1]
	assert.Equal(t, "b", b.Name)
	assert.Equal(t, 2, b.Count)
	assert.InDelta(t, 3.0, float64(b.Mean), 1e-9)

	preview, err := a.Preview("padded.csv", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), preview.Rows[0]["b"])
}

func TestCorrelation_DefaultSelection(t *testing.T) {
	a := sampleAnalyzer(t)

	res, err := a.Correlation("sample.csv", nil, "pearson")
	require.NoError(t, err)
	assert.Equal(t, "pearson", res.Method)
	assert.Equal(t, []string{"age", "income"}, res.Columns)

	require.Len(t, res.Matrix, 2)
	assert.Equal(t, core.Float(1.0), res.Matrix[0][0])
	assert.Equal(t, core.Float(1.0), res.Matrix[1][1])
	assert.Equal(t, res.Matrix[0][1], res.Matrix[1][0])
}

func TestCorrelation_AllMethodsSymmetric(t *testing.T) {
	a := sampleAnalyzer(t)

	for _, method := range CorrelationMethods {
		t.Run(method, func(t *testing.T) {
			res, err := a.Correlation("sample.csv", nil, method)
			require.NoError(t, err)
			for i := range res.Matrix {
				assert.Equal(t, core.Float(1.0), res.Matrix[i][i])
				for j := range res.Matrix {
					assert.Equal(t, res.Matrix[i][j], res.Matrix[j][i])
				}
			}
		})
	}
}

func TestCorrelation_RequestedOrderPreserved(t *testing.T) {
	a := sampleAnalyzer(t)

	res, err := a.Correlation("sample.csv", []string{"income", "age"}, "pearson")
	require.NoError(t, err)
	assert.Equal(t, []string{"income", "age"}, res.Columns)
}

func TestCorrelation_NonNumericRequestsFiltered(t *testing.T) {
	a := sampleAnalyzer(t)

	res, err := a.Correlation("sample.csv", []string{"city", "age", "nope"}, "pearson")
	require.NoError(t, err)
	assert.Equal(t, []string{"age"}, res.Columns)
	assert.Equal(t, core.Float(1.0), res.Matrix[0][0])
}

func TestCorrelation_AllRequestsFilteredOut(t *testing.T) {
	a := sampleAnalyzer(t)

	_, err := a.Correlation("sample.csv", []string{"city", "nope"}, "pearson")
	assert.True(t, core.IsKind(err, core.KindValueError))
}

func TestCorrelation_UnknownMethod(t *testing.T) {
	a := sampleAnalyzer(t)

	_, err := a.Correlation("sample.csv", nil, "cosine")
	assert.True(t, core.IsKind(err, core.KindValueError))
}

func TestCorrelation_PairwiseDeletion(t *testing.T) {
	// Row 3 is missing y, row 4 is missing x: both excluded pairwise; the
	// remaining pairs are perfectly linear.
	a := newTestAnalyzer(t, map[string]string{"pairs.csv": "x,y\n1,2\n2,4\n3,6\n4,\n,10\n"})

	res, err := a.Correlation("pairs.csv", nil, "pearson")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, float64(res.Matrix[0][1]), 1e-12)
}

func TestOperations_PropagateSandboxErrors(t *testing.T) {
	a := sampleAnalyzer(t)

	_, err := a.Describe("../outside.csv")
	assert.True(t, core.IsKind(err, core.KindSecurityViolation))

	_, err = a.ColumnInfo("absent.csv")
	assert.True(t, core.IsKind(err, core.KindNotFound))
}

func isNaN(f core.Float) bool {
	return f != f
}
