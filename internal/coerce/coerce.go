// Package coerce centralizes the numeric parsing and formatting rules shared
// by every command: exact bounded integers, finite floats with the inf
// tokens, and canonical decimal rendering.
package coerce

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
	"strconv"
	"strings"
)

// MaxInteger is the largest magnitude an integer may carry and still be
// exactly representable under a float64-based numeric model: 2^53 - 1.
const MaxInteger int64 = 1<<53 - 1

var (
	// ErrNotInteger marks input that is not an exact in-range integer.
	ErrNotInteger = errors.New("value is not an integer or out of range")
	// ErrNotFloat marks input that cannot be read as a float.
	ErrNotFloat = errors.New("value is not a valid float")
)

// ToInt converts a numeric or numeric-string value to its exact integer form.
// Fractional values and magnitudes above MaxInteger fail with ErrNotInteger;
// nothing is ever truncated or wrapped.
func ToInt(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return boundedInt(int64(n))
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return boundedInt(n)
	case uint:
		return boundedUint(uint64(n))
	case uint8:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint64:
		return boundedUint(n)
	case float32:
		return intFromFloat(float64(n))
	case float64:
		return intFromFloat(n)
	case string:
		if i, err := strconv.ParseInt(n, 10, 64); err == nil {
			return boundedInt(i)
		}
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, ErrNotInteger
		}
		return intFromFloat(f)
	default:
		return 0, ErrNotInteger
	}
}

// ToFloat converts a numeric or numeric-string value to a float64. The
// literal tokens "inf", "+inf" and "-inf" (any case) map to the infinities;
// NaN and non-numeric strings fail with ErrNotFloat.
func ToFloat(v any) (float64, error) {
	switch f := v.(type) {
	case float32:
		return float64(f), nil
	case float64:
		if math.IsNaN(f) {
			return 0, ErrNotFloat
		}
		return f, nil
	case int:
		return float64(f), nil
	case int8:
		return float64(f), nil
	case int16:
		return float64(f), nil
	case int32:
		return float64(f), nil
	case int64:
		return float64(f), nil
	case uint:
		return float64(f), nil
	case uint8:
		return float64(f), nil
	case uint16:
		return float64(f), nil
	case uint32:
		return float64(f), nil
	case uint64:
		return float64(f), nil
	case string:
		switch strings.ToLower(f) {
		case "inf", "+inf":
			return math.Inf(1), nil
		case "-inf":
			return math.Inf(-1), nil
		}
		parsed, err := strconv.ParseFloat(f, 64)
		if err != nil || math.IsNaN(parsed) {
			return 0, ErrNotFloat
		}
		return parsed, nil
	default:
		return 0, ErrNotFloat
	}
}

// DisplayString renders a value in its canonical string form: bounded
// integers (including integral floats) in exact decimal notation, everything
// else in its natural form.
func DisplayString(v any) string {
	switch n := v.(type) {
	case string:
		return n
	case float32:
		return DisplayString(float64(n))
	case float64:
		if i, err := intFromFloat(n); err == nil {
			return strconv.FormatInt(i, 10)
		}
		return strconv.FormatFloat(n, 'g', -1, 64)
	default:
		if i, err := ToInt(v); err == nil {
			return strconv.FormatInt(i, 10)
		}
		return fmt.Sprint(v)
	}
}

// CountSetBits returns the number of 1-bits in a single byte value. The
// input must coerce to an integer in [0, 255].
func CountSetBits(v any) (int, error) {
	b, err := ToInt(v)
	if err != nil {
		return 0, err
	}
	if b < 0 || b > 255 {
		return 0, fmt.Errorf("bit count wants a byte value in [0,255], got %d", b)
	}
	return bits.OnesCount8(uint8(b)), nil
}

func boundedInt(n int64) (int64, error) {
	if n > MaxInteger || n < -MaxInteger {
		return 0, ErrNotInteger
	}
	return n, nil
}

func boundedUint(n uint64) (int64, error) {
	if n > uint64(MaxInteger) {
		return 0, ErrNotInteger
	}
	return int64(n), nil
}

func intFromFloat(f float64) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Trunc(f) != f {
		return 0, ErrNotInteger
	}
	if f > float64(MaxInteger) || f < -float64(MaxInteger) {
		return 0, ErrNotInteger
	}
	return int64(f), nil
}
