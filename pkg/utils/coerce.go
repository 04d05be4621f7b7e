package utils

import (
	"encoding/json"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// int64 bounds as float64; maxInt64Float itself is out of range.
const (
	minInt64Float = -9223372036854775808.0
	maxInt64Float = 9223372036854775808.0
)

// ToString accepts only JSON strings. Numbers and booleans are not converted.
func ToString(v interface{}) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// ToFloat converts a JSON-decoded value to a finite float64.
// Accepts json.Number, Go numeric types and strings holding a decimal number.
func ToFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		return parseFloat(string(n))
	case float64:
		return finite(n)
	case float32:
		return finite(float64(n))
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		return parseFloat(strings.TrimSpace(n))
	}
	return 0, false
}

// ToInt converts a JSON-decoded value to int64.
// Floats are accepted only when they have no fractional part; strings must be base-10 integers.
func ToInt(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		if i, err := strconv.ParseInt(string(n), 10, 64); err == nil {
			return i, true
		}
		f, ok := parseFloat(string(n))
		if !ok {
			return 0, false
		}
		return integral(f)
	case float64:
		return integral(n)
	case float32:
		return integral(float64(n))
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0, false
		}
		return i, true
	}
	return 0, false
}

// IntegerSign reports the sign of a whole-number value of any magnitude,
// accepting the same inputs as ToInt. It lets callers tell a well-typed
// integer that overflows int64 apart from a value of the wrong type.
func IntegerSign(v interface{}) (int, bool) {
	switch n := v.(type) {
	case json.Number:
		if b, ok := new(big.Int).SetString(string(n), 10); ok {
			return b.Sign(), true
		}
		f, ok := parseFloat(string(n))
		if !ok || f != math.Trunc(f) {
			return 0, false
		}
		return floatSign(f), true
	case float64, float32:
		f, ok := ToFloat(n)
		if !ok || f != math.Trunc(f) {
			return 0, false
		}
		return floatSign(f), true
	case int, int32, int64:
		i, _ := ToInt(n)
		return floatSign(float64(i)), true
	case string:
		b, ok := new(big.Int).SetString(strings.TrimSpace(n), 10)
		if !ok {
			return 0, false
		}
		return b.Sign(), true
	}
	return 0, false
}

func floatSign(f float64) int {
	switch {
	case f > 0:
		return 1
	case f < 0:
		return -1
	}
	return 0
}

func parseFloat(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return finite(f)
}

func finite(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func integral(f float64) (int64, bool) {
	if _, ok := finite(f); !ok {
		return 0, false
	}
	if f != math.Trunc(f) || f < minInt64Float || f >= maxInt64Float {
		return 0, false
	}
	return int64(f), true
}
