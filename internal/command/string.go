package command

import (
	"fmt"
	"math"

	"github.com/eternalApril/moonkv/internal/coerce"
	"github.com/eternalApril/moonkv/internal/keyspace"
)

func (e *Engine) registerStringCommands() {
	e.register("GET", commandFunc(get))
	e.register("SET", commandFunc(set))
	e.register("STRLEN", commandFunc(strLen))
	e.register("INCR", incrByDelta(+1))
	e.register("DECR", incrByDelta(-1))
	e.register("INCRBY", incrBy(+1))
	e.register("DECRBY", incrBy(-1))
	e.register("INCRBYFLOAT", commandFunc(incrByFloat))
	e.register("SETBIT", commandFunc(setBit))
	e.register("GETBIT", commandFunc(getBit))
	e.register("BITCOUNT", commandFunc(bitCount))
}

func get(ctx *context) (any, error) {
	args, err := normalizeArgsExact(1, ctx.args...)
	if err != nil {
		return nil, err
	}
	v, err := ctx.ks.ReadTyped(args[0], keyspace.KindString)
	if err != nil {
		return nil, err
	}
	data, ok := v.(*keyspace.StringValue).Get()
	if !ok {
		return nil, nil
	}
	return data, nil
}

// set replaces whatever the key held before: rebinding a key to another kind
// goes through whole-entry replacement, never in-place coercion.
func set(ctx *context) (any, error) {
	args, err := normalizeArgsExact(2, ctx.args...)
	if err != nil {
		return nil, err
	}
	ctx.ks.Delete(args[0])
	v, err := ctx.ks.WriteTyped(args[0], keyspace.KindString)
	if err != nil {
		return nil, err
	}
	v.(*keyspace.StringValue).Set(args[1])
	return "OK", nil
}

func strLen(ctx *context) (any, error) {
	args, err := normalizeArgsExact(1, ctx.args...)
	if err != nil {
		return nil, err
	}
	v, err := ctx.ks.ReadTyped(args[0], keyspace.KindString)
	if err != nil {
		return nil, err
	}
	return int64(len(v.(*keyspace.StringValue).Data)), nil
}

func incrByDelta(sign int64) commandFunc {
	return func(ctx *context) (any, error) {
		args, err := normalizeArgsExact(1, ctx.args...)
		if err != nil {
			return nil, err
		}
		return applyIntDelta(ctx, args[0], sign)
	}
}

func incrBy(sign int64) commandFunc {
	return func(ctx *context) (any, error) {
		args, err := normalizeArgsExact(2, ctx.args...)
		if err != nil {
			return nil, err
		}
		delta, err := coerce.ToInt(args[1])
		if err != nil {
			return nil, err
		}
		return applyIntDelta(ctx, args[0], sign*delta)
	}
}

// applyIntDelta adds delta to the integer value of key, treating an absent
// cell as zero. Both the current value and the result must be exact bounded
// integers; on failure the keyspace keeps its previous observable state.
func applyIntDelta(ctx *context, key string, delta int64) (any, error) {
	v, err := ctx.ks.WriteTyped(key, keyspace.KindString)
	if err != nil {
		return nil, err
	}
	cell := v.(*keyspace.StringValue)

	var cur int64
	if data, ok := cell.Get(); ok {
		cur, err = coerce.ToInt(data)
		if err != nil {
			return nil, err
		}
	}

	next := cur + delta
	if next > coerce.MaxInteger || next < -coerce.MaxInteger {
		return nil, coerce.ErrNotInteger
	}
	cell.Set(coerce.DisplayString(next))
	return next, nil
}

// incrByFloat validates the result before writing; a rejected increment on an
// absent key must not vivify it.
func incrByFloat(ctx *context) (any, error) {
	args, err := normalizeArgsExact(2, ctx.args...)
	if err != nil {
		return nil, err
	}
	delta, err := coerce.ToFloat(args[1])
	if err != nil {
		return nil, err
	}
	rv, err := ctx.ks.ReadTyped(args[0], keyspace.KindString)
	if err != nil {
		return nil, err
	}

	var cur float64
	if data, ok := rv.(*keyspace.StringValue).Get(); ok {
		cur, err = coerce.ToFloat(data)
		if err != nil {
			return nil, err
		}
	}

	next := cur + delta
	if math.IsNaN(next) || math.IsInf(next, 0) {
		return nil, fmt.Errorf("ERR increment would produce NaN or Infinity")
	}
	v, err := ctx.ks.WriteTyped(args[0], keyspace.KindString)
	if err != nil {
		return nil, err
	}
	v.(*keyspace.StringValue).Set(coerce.DisplayString(next))
	return coerce.DisplayString(next), nil
}

// maxBitOffset bounds bitmaps at 512 MB, so a huge offset cannot force a
// matching allocation.
const maxBitOffset = 1<<32 - 1

func setBit(ctx *context) (any, error) {
	args, err := normalizeArgsExact(3, ctx.args...)
	if err != nil {
		return nil, err
	}
	offset, err := coerce.ToInt(args[1])
	if err != nil || offset < 0 || offset > maxBitOffset {
		return nil, fmt.Errorf("ERR bit offset is not an integer or out of range")
	}
	bit, err := coerce.ToInt(args[2])
	if err != nil || (bit != 0 && bit != 1) {
		return nil, fmt.Errorf("ERR bit is not an integer or out of range")
	}

	v, err := ctx.ks.WriteTyped(args[0], keyspace.KindString)
	if err != nil {
		return nil, err
	}
	cell := v.(*keyspace.StringValue)

	data := []byte(cell.Data)
	byteIdx := int(offset / 8)
	mask := byte(1 << (7 - offset%8))
	if byteIdx >= len(data) {
		grown := make([]byte, byteIdx+1)
		copy(grown, data)
		data = grown
	}

	old := int64(0)
	if data[byteIdx]&mask != 0 {
		old = 1
	}
	if bit == 1 {
		data[byteIdx] |= mask
	} else {
		data[byteIdx] &^= mask
	}
	cell.Set(string(data))
	return old, nil
}

func getBit(ctx *context) (any, error) {
	args, err := normalizeArgsExact(2, ctx.args...)
	if err != nil {
		return nil, err
	}
	offset, err := coerce.ToInt(args[1])
	if err != nil || offset < 0 || offset > maxBitOffset {
		return nil, fmt.Errorf("ERR bit offset is not an integer or out of range")
	}
	v, err := ctx.ks.ReadTyped(args[0], keyspace.KindString)
	if err != nil {
		return nil, err
	}
	data := v.(*keyspace.StringValue).Data

	byteIdx := int(offset / 8)
	if byteIdx >= len(data) {
		return int64(0), nil
	}
	if data[byteIdx]&(1<<(7-offset%8)) != 0 {
		return int64(1), nil
	}
	return int64(0), nil
}

// bitCount sums the popcount of every byte of the value through the
// single-byte coercion primitive.
func bitCount(ctx *context) (any, error) {
	args, err := normalizeArgsExact(1, ctx.args...)
	if err != nil {
		return nil, err
	}
	v, err := ctx.ks.ReadTyped(args[0], keyspace.KindString)
	if err != nil {
		return nil, err
	}
	var total int64
	for _, b := range []byte(v.(*keyspace.StringValue).Data) {
		n, err := coerce.CountSetBits(int64(b))
		if err != nil {
			return nil, err
		}
		total += int64(n)
	}
	return total, nil
}
