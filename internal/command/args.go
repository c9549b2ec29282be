package command

import (
	"errors"
	"fmt"

	"github.com/eternalApril/moonkv/internal/coerce"
)

// errWrongArity is the shape error for a bad argument count. Callers passing
// the wrong number of arguments are misusing the API, so nothing is ever
// partially processed.
var errWrongArity = errors.New("ERR wrong number of arguments")

// normalizeArg renders one command argument in canonical string form.
// Numerics go through coerce.DisplayString; anything that is neither a
// string nor a number is a bug in the caller, not user input.
func normalizeArg(v any) (string, error) {
	switch v.(type) {
	case string:
		return v.(string), nil
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return coerce.DisplayString(v), nil
	default:
		return "", fmt.Errorf("ERR unsupported argument type %T", v)
	}
}

// normalizeArgs validates and flattens a non-empty argument list into
// canonical strings. It never touches the keyspace, so a failure here
// guarantees no mutation happened.
func normalizeArgs(args ...any) ([]string, error) {
	if len(args) == 0 {
		return nil, errWrongArity
	}
	out := make([]string, len(args))
	for i, a := range args {
		s, err := normalizeArg(a)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

// normalizeArgsExact is normalizeArgs for fixed-arity commands.
func normalizeArgsExact(n int, args ...any) ([]string, error) {
	out, err := normalizeArgs(args...)
	if err != nil {
		return nil, err
	}
	if len(out) != n {
		return nil, errWrongArity
	}
	return out, nil
}

// normalizeArgsMap pairs an even-length argument list into a field-to-value
// map. Later duplicates overwrite earlier ones.
func normalizeArgsMap(args ...any) (map[string]string, error) {
	out, err := normalizeArgs(args...)
	if err != nil {
		return nil, err
	}
	if len(out)%2 != 0 {
		return nil, errWrongArity
	}
	m := make(map[string]string, len(out)/2)
	for i := 0; i < len(out); i += 2 {
		m[out[i]] = out[i+1]
	}
	return m, nil
}
