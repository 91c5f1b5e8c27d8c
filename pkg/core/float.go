package core

import (
	"math"
	"strconv"
)

// Float is a float64 that marshals NaN and infinities as JSON null.
// Statistics over too-few observations (sample std of a single value, the
// correlation of a constant column) are NaN by definition, and encoding/json
// refuses to emit NaN; callers see null instead, matching how the results
// were always serialized.
type Float float64

// MarshalJSON emits the numeric value, or null when it is not finite.
func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, v, 'g', -1, 64), nil
}

// UnmarshalJSON accepts a number or null (null decodes to NaN).
func (f *Float) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = Float(math.NaN())
		return nil
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*f = Float(v)
	return nil
}
