package command

import (
	"sort"

	"github.com/eternalApril/moonkv/internal/keyspace"
)

func (e *Engine) registerSetCommands() {
	e.register("SADD", commandFunc(sAdd))
	e.register("SREM", commandFunc(sRem))
	e.register("SISMEMBER", commandFunc(sIsMember))
	e.register("SMEMBERS", commandFunc(sMembers))
	e.register("SCARD", commandFunc(sCard))
	e.register("SPOP", commandFunc(sPop))
}

func sAdd(ctx *context) (any, error) {
	args, err := normalizeArgs(ctx.args...)
	if err != nil {
		return nil, err
	}
	if len(args) < 2 {
		return nil, errWrongArity
	}
	v, err := ctx.ks.WriteTyped(args[0], keyspace.KindSet)
	if err != nil {
		return nil, err
	}
	set := v.(keyspace.SetValue)

	var added int64
	for _, member := range args[1:] {
		if set.Add(member) {
			added++
		}
	}
	return added, nil
}

func sRem(ctx *context) (any, error) {
	args, err := normalizeArgs(ctx.args...)
	if err != nil {
		return nil, err
	}
	if len(args) < 2 {
		return nil, errWrongArity
	}
	v, err := ctx.ks.WriteTyped(args[0], keyspace.KindSet)
	if err != nil {
		return nil, err
	}
	set := v.(keyspace.SetValue)

	var removed int64
	for _, member := range args[1:] {
		if set.Remove(member) {
			removed++
		}
	}
	ctx.ks.Cleanup(args[0])
	return removed, nil
}

func sIsMember(ctx *context) (any, error) {
	args, err := normalizeArgsExact(2, ctx.args...)
	if err != nil {
		return nil, err
	}
	v, err := ctx.ks.ReadTyped(args[0], keyspace.KindSet)
	if err != nil {
		return nil, err
	}
	return v.(keyspace.SetValue).Has(args[1]), nil
}

func sMembers(ctx *context) (any, error) {
	args, err := normalizeArgsExact(1, ctx.args...)
	if err != nil {
		return nil, err
	}
	v, err := ctx.ks.ReadTyped(args[0], keyspace.KindSet)
	if err != nil {
		return nil, err
	}
	members := v.(keyspace.SetValue).Members()
	sort.Strings(members)
	return members, nil
}

func sCard(ctx *context) (any, error) {
	args, err := normalizeArgsExact(1, ctx.args...)
	if err != nil {
		return nil, err
	}
	v, err := ctx.ks.ReadTyped(args[0], keyspace.KindSet)
	if err != nil {
		return nil, err
	}
	return int64(len(v.(keyspace.SetValue))), nil
}

// sPop removes and returns one arbitrary member, relying on Go's randomized
// map iteration for the pick.
func sPop(ctx *context) (any, error) {
	args, err := normalizeArgsExact(1, ctx.args...)
	if err != nil {
		return nil, err
	}
	v, err := ctx.ks.WriteTyped(args[0], keyspace.KindSet)
	if err != nil {
		return nil, err
	}
	set := v.(keyspace.SetValue)

	for member := range set {
		set.Remove(member)
		ctx.ks.Cleanup(args[0])
		return member, nil
	}
	ctx.ks.Cleanup(args[0])
	return nil, nil
}
