package table

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/csvprobe/pkg/core"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_TypeInference(t *testing.T) {
	tests := []struct {
		name string
		csv  string
		want Type
	}{
		{"integers", "v\n1\n2\n-3\n", TypeInt},
		{"floats", "v\n1.5\n2\n-0.25\n", TypeFloat},
		{"integer with missing stays int", "v\n1\n\n3\n", TypeInt},
		{"booleans", "v\ntrue\nFalse\nTRUE\n", TypeBool},
		{"dates", "v\n2024-01-01\n2024-06-30\n", TypeTime},
		{"rfc3339 timestamps", "v\n2024-01-01T10:00:00Z\n2024-01-02T11:30:00Z\n", TypeTime},
		{"mixed falls back to string", "v\n1\nhello\n", TypeString},
		{"all missing", "v\n\n\n", TypeString},
		{"na tokens are missing", "v\nNA\n7\nnull\n", TypeInt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := Load(writeCSV(t, tt.csv))
			require.NoError(t, err)
			require.Len(t, tbl.Columns, 1)
			assert.Equal(t, tt.want, tbl.Columns[0].Type)
		})
	}
}

func TestLoad_MissingCells(t *testing.T) {
	tbl, err := Load(writeCSV(t, "a,b\n1,x\n,y\n3,\n"))
	require.NoError(t, err)

	require.Equal(t, 3, tbl.Rows())
	a := tbl.Column("a")
	b := tbl.Column("b")
	require.NotNil(t, a)
	require.NotNil(t, b)

	assert.Equal(t, 1, a.MissingCount())
	assert.Equal(t, 1, b.MissingCount())
	assert.Equal(t, []bool{false, true, false}, a.Missing)

	// Missing plus non-missing always covers every row.
	assert.Equal(t, tbl.Rows(), a.MissingCount()+len(a.Floats()))
}

func TestLoad_ColumnOrderPreserved(t *testing.T) {
	tbl, err := Load(writeCSV(t, "z,a,m\n1,2,3\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"z", "a", "m"}, tbl.ColumnNames())
}

func TestLoad_DistinctCount(t *testing.T) {
	tbl, err := Load(writeCSV(t, "c\nx\ny\nx\n\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.Column("c").DistinctCount())
}

func TestLoad_Values(t *testing.T) {
	tbl, err := Load(writeCSV(t, "i,f,b,s\n1,2.5,true,hi\n,,,\n"))
	require.NoError(t, err)

	assert.Equal(t, int64(1), tbl.Column("i").Value(0))
	assert.Equal(t, 2.5, tbl.Column("f").Value(0))
	assert.Equal(t, true, tbl.Column("b").Value(0))
	assert.Equal(t, "hi", tbl.Column("s").Value(0))

	for _, name := range []string{"i", "f", "b", "s"} {
		assert.Nil(t, tbl.Column(name).Value(1), "column %s row 1", name)
	}
}

func TestLoad_WhitespacePaddedCells(t *testing.T) {
	// encoding/csv preserves the space after the comma; typed extraction
	// must still agree with inference, which trims.
	tbl, err := Load(writeCSV(t, "a,b\n1, 2\n3, 4\n"))
	require.NoError(t, err)

	b := tbl.Column("b")
	require.NotNil(t, b)
	assert.Equal(t, TypeInt, b.Type)
	assert.Equal(t, 0, b.MissingCount())

	v, ok := b.Float(0)
	require.True(t, ok)
	assert.Equal(t, 2.0, v)
	assert.Equal(t, []float64{2, 4}, b.Floats())

	assert.Equal(t, int64(2), b.Value(0))
	assert.Equal(t, int64(4), b.Value(1))
}

func TestLoad_DistinctCountIgnoresPaddingOnTypedColumns(t *testing.T) {
	tbl, err := Load(writeCSV(t, "n,s\n7, x\n 7,x\n"))
	require.NoError(t, err)

	// "7" and " 7" are the same integer; " x" and "x" are distinct strings.
	assert.Equal(t, 1, tbl.Column("n").DistinctCount())
	assert.Equal(t, 2, tbl.Column("s").DistinctCount())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{"empty file", ""},
		{"duplicate header", "a,a\n1,2\n"},
		{"empty header name", "a,\n1,2\n"},
		{"inconsistent field count", "a,b\n1,2\n3\n"},
		{"unterminated quote", "a,b\n\"1,2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeCSV(t, tt.csv))
			assert.True(t, core.IsKind(err, core.KindParseError), "got %v", err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.csv"))
	assert.True(t, core.IsKind(err, core.KindNotFound))
}

func TestLoad_HeaderOnly(t *testing.T) {
	tbl, err := Load(writeCSV(t, "a,b\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.Rows())
	assert.Equal(t, []string{"a", "b"}, tbl.ColumnNames())
}
