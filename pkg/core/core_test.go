package core

import (
	"encoding/json"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	err := NotFoundf("no such file: %s", "a.csv")

	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindNotFound, kind)
	assert.Equal(t, "not_found: no such file: a.csv", err.Error())
}

func TestKindOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("loading table: %w", ParseErrorf("duplicate header %q", "age"))

	assert.True(t, IsKind(err, KindParseError))
	assert.False(t, IsKind(err, KindValueError))
}

func TestKindOf_Unclassified(t *testing.T) {
	_, ok := KindOf(fmt.Errorf("plain error"))
	assert.False(t, ok)
}

func TestFloat_MarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   Float
		want string
	}{
		{"finite", Float(2.5), "2.5"},
		{"integer valued", Float(3), "3"},
		{"nan is null", Float(math.NaN()), "null"},
		{"positive inf is null", Float(math.Inf(1)), "null"},
		{"negative inf is null", Float(math.Inf(-1)), "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))
		})
	}
}

func TestFloat_UnmarshalJSON(t *testing.T) {
	var f Float
	require.NoError(t, json.Unmarshal([]byte("1.25"), &f))
	assert.Equal(t, Float(1.25), f)

	require.NoError(t, json.Unmarshal([]byte("null"), &f))
	assert.True(t, math.IsNaN(float64(f)))
}
