package command

import (
	"sort"

	"github.com/eternalApril/moonkv/internal/keyspace"
)

func (e *Engine) registerHashCommands() {
	e.register("HSET", commandFunc(hSet))
	e.register("HGET", commandFunc(hGet))
	e.register("HDEL", commandFunc(hDel))
	e.register("HEXISTS", commandFunc(hExists))
	e.register("HLEN", commandFunc(hLen))
	e.register("HGETALL", commandFunc(hGetAll))
	e.register("HKEYS", commandFunc(hKeys))
	e.register("HVALS", commandFunc(hVals))
}

// hSet pairs the trailing arguments into fields and values before touching
// the keyspace, so an odd-shaped call can never half-write a hash.
func hSet(ctx *context) (any, error) {
	if len(ctx.args) < 3 {
		return nil, errWrongArity
	}
	key, err := normalizeArg(ctx.args[0])
	if err != nil {
		return nil, err
	}
	pairs, err := normalizeArgsMap(ctx.args[1:]...)
	if err != nil {
		return nil, err
	}

	v, err := ctx.ks.WriteTyped(key, keyspace.KindHash)
	if err != nil {
		return nil, err
	}
	hash := v.(keyspace.HashValue)

	var created int64
	for field, value := range pairs {
		if _, ok := hash[field]; !ok {
			created++
		}
		hash[field] = value
	}
	return created, nil
}

func hGet(ctx *context) (any, error) {
	args, err := normalizeArgsExact(2, ctx.args...)
	if err != nil {
		return nil, err
	}
	v, err := ctx.ks.ReadTyped(args[0], keyspace.KindHash)
	if err != nil {
		return nil, err
	}
	value, ok := v.(keyspace.HashValue)[args[1]]
	if !ok {
		return nil, nil
	}
	return value, nil
}

func hDel(ctx *context) (any, error) {
	args, err := normalizeArgs(ctx.args...)
	if err != nil {
		return nil, err
	}
	if len(args) < 2 {
		return nil, errWrongArity
	}
	v, err := ctx.ks.WriteTyped(args[0], keyspace.KindHash)
	if err != nil {
		return nil, err
	}
	hash := v.(keyspace.HashValue)

	var removed int64
	for _, field := range args[1:] {
		if _, ok := hash[field]; ok {
			delete(hash, field)
			removed++
		}
	}
	ctx.ks.Cleanup(args[0])
	return removed, nil
}

func hExists(ctx *context) (any, error) {
	args, err := normalizeArgsExact(2, ctx.args...)
	if err != nil {
		return nil, err
	}
	v, err := ctx.ks.ReadTyped(args[0], keyspace.KindHash)
	if err != nil {
		return nil, err
	}
	_, ok := v.(keyspace.HashValue)[args[1]]
	return ok, nil
}

func hLen(ctx *context) (any, error) {
	args, err := normalizeArgsExact(1, ctx.args...)
	if err != nil {
		return nil, err
	}
	v, err := ctx.ks.ReadTyped(args[0], keyspace.KindHash)
	if err != nil {
		return nil, err
	}
	return int64(len(v.(keyspace.HashValue))), nil
}

// hGetAll returns alternating field/value pairs, sorted by field so replies
// are reproducible.
func hGetAll(ctx *context) (any, error) {
	args, err := normalizeArgsExact(1, ctx.args...)
	if err != nil {
		return nil, err
	}
	v, err := ctx.ks.ReadTyped(args[0], keyspace.KindHash)
	if err != nil {
		return nil, err
	}
	hash := v.(keyspace.HashValue)

	fields := sortedFields(hash)
	out := make([]string, 0, len(fields)*2)
	for _, field := range fields {
		out = append(out, field, hash[field])
	}
	return out, nil
}

func hKeys(ctx *context) (any, error) {
	args, err := normalizeArgsExact(1, ctx.args...)
	if err != nil {
		return nil, err
	}
	v, err := ctx.ks.ReadTyped(args[0], keyspace.KindHash)
	if err != nil {
		return nil, err
	}
	return sortedFields(v.(keyspace.HashValue)), nil
}

func hVals(ctx *context) (any, error) {
	args, err := normalizeArgsExact(1, ctx.args...)
	if err != nil {
		return nil, err
	}
	v, err := ctx.ks.ReadTyped(args[0], keyspace.KindHash)
	if err != nil {
		return nil, err
	}
	hash := v.(keyspace.HashValue)

	fields := sortedFields(hash)
	out := make([]string, 0, len(fields))
	for _, field := range fields {
		out = append(out, hash[field])
	}
	return out, nil
}

func sortedFields(hash keyspace.HashValue) []string {
	fields := make([]string, 0, len(hash))
	for field := range hash {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}
