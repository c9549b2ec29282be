package command

import (
	"fmt"
	"math"
	"strings"

	"github.com/eternalApril/moonkv/internal/coerce"
	"github.com/eternalApril/moonkv/internal/keyspace"
)

func (e *Engine) registerZSetCommands() {
	e.register("ZADD", commandFunc(zAdd))
	e.register("ZREM", commandFunc(zRem))
	e.register("ZSCORE", commandFunc(zScore))
	e.register("ZINCRBY", commandFunc(zIncrBy))
	e.register("ZCARD", commandFunc(zCard))
	e.register("ZRANGE", commandFunc(zRange))
	e.register("ZCOUNT", commandFunc(zCount))
}

// zAdd takes alternating score/member arguments. Every score is parsed
// before the keyspace is touched, so one bad score aborts the whole call.
func zAdd(ctx *context) (any, error) {
	args, err := normalizeArgs(ctx.args...)
	if err != nil {
		return nil, err
	}
	if len(args) < 3 || len(args)%2 == 0 {
		return nil, errWrongArity
	}

	pairs := args[1:]
	scores := make([]float64, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		score, err := coerce.ToFloat(pairs[i])
		if err != nil {
			return nil, err
		}
		scores = append(scores, score)
	}

	v, err := ctx.ks.WriteTyped(args[0], keyspace.KindZSet)
	if err != nil {
		return nil, err
	}
	zset := v.(*keyspace.ZSetValue)

	var added int64
	for i, score := range scores {
		if zset.Add(pairs[i*2+1], score) {
			added++
		}
	}
	return added, nil
}

func zRem(ctx *context) (any, error) {
	args, err := normalizeArgs(ctx.args...)
	if err != nil {
		return nil, err
	}
	if len(args) < 2 {
		return nil, errWrongArity
	}
	v, err := ctx.ks.WriteTyped(args[0], keyspace.KindZSet)
	if err != nil {
		return nil, err
	}
	zset := v.(*keyspace.ZSetValue)

	var removed int64
	for _, member := range args[1:] {
		if zset.Remove(member) {
			removed++
		}
	}
	ctx.ks.Cleanup(args[0])
	return removed, nil
}

func zScore(ctx *context) (any, error) {
	args, err := normalizeArgsExact(2, ctx.args...)
	if err != nil {
		return nil, err
	}
	v, err := ctx.ks.ReadTyped(args[0], keyspace.KindZSet)
	if err != nil {
		return nil, err
	}
	score, ok := v.(*keyspace.ZSetValue).Score(args[1])
	if !ok {
		return nil, nil
	}
	return score, nil
}

// zIncrBy rejects a NaN result before mutating. NaN never has a rank, so it
// can never enter the ordered half.
func zIncrBy(ctx *context) (any, error) {
	args, err := normalizeArgsExact(3, ctx.args...)
	if err != nil {
		return nil, err
	}
	delta, err := coerce.ToFloat(args[1])
	if err != nil {
		return nil, err
	}
	rv, err := ctx.ks.ReadTyped(args[0], keyspace.KindZSet)
	if err != nil {
		return nil, err
	}
	cur, _ := rv.(*keyspace.ZSetValue).Score(args[2])
	if math.IsNaN(cur + delta) {
		return nil, fmt.Errorf("ERR resulting score is not a number (NaN)")
	}
	v, err := ctx.ks.WriteTyped(args[0], keyspace.KindZSet)
	if err != nil {
		return nil, err
	}
	return v.(*keyspace.ZSetValue).IncrBy(args[2], delta), nil
}

func zCard(ctx *context) (any, error) {
	args, err := normalizeArgsExact(1, ctx.args...)
	if err != nil {
		return nil, err
	}
	v, err := ctx.ks.ReadTyped(args[0], keyspace.KindZSet)
	if err != nil {
		return nil, err
	}
	return int64(v.(*keyspace.ZSetValue).Len()), nil
}

// zRange returns members by ascending (score, member) rank. A trailing
// WITHSCORES flag interleaves each member with its score.
func zRange(ctx *context) (any, error) {
	args, err := normalizeArgs(ctx.args...)
	if err != nil {
		return nil, err
	}
	withScores := false
	if len(args) == 4 && strings.EqualFold(args[3], "WITHSCORES") {
		withScores = true
		args = args[:3]
	}
	if len(args) != 3 {
		return nil, errWrongArity
	}
	start, err := coerce.ToInt(args[1])
	if err != nil {
		return nil, err
	}
	stop, err := coerce.ToInt(args[2])
	if err != nil {
		return nil, err
	}

	v, err := ctx.ks.ReadTyped(args[0], keyspace.KindZSet)
	if err != nil {
		return nil, err
	}
	ranked := v.(*keyspace.ZSetValue).Range(int(start), int(stop))

	if !withScores {
		out := make([]string, 0, len(ranked))
		for _, sm := range ranked {
			out = append(out, sm.Member)
		}
		return out, nil
	}
	out := make([]string, 0, len(ranked)*2)
	for _, sm := range ranked {
		out = append(out, sm.Member, coerce.DisplayString(sm.Score))
	}
	return out, nil
}

func zCount(ctx *context) (any, error) {
	args, err := normalizeArgsExact(3, ctx.args...)
	if err != nil {
		return nil, err
	}
	min, err := coerce.ToFloat(args[1])
	if err != nil {
		return nil, err
	}
	max, err := coerce.ToFloat(args[2])
	if err != nil {
		return nil, err
	}
	v, err := ctx.ks.ReadTyped(args[0], keyspace.KindZSet)
	if err != nil {
		return nil, err
	}
	return int64(v.(*keyspace.ZSetValue).CountByScore(min, max)), nil
}
