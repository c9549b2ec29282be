package command

// Generic key commands. These only go through the keyspace's typed-accessor
// contract and the pattern compiler, never at a specific kind.

func (e *Engine) registerKeyCommands() {
	e.register("EXISTS", commandFunc(exists))
	e.register("DEL", commandFunc(del))
	e.register("KEYS", commandFunc(keys))
	e.register("TYPE", commandFunc(typeOf))
}

// exists counts how many of the given keys currently hold an entry. A key
// is only ever present with a non-empty value, so no emptiness probing is
// needed here.
func exists(ctx *context) (any, error) {
	names, err := normalizeArgs(ctx.args...)
	if err != nil {
		return nil, err
	}
	var count int64
	for _, key := range names {
		if ctx.ks.Exists(key) {
			count++
		}
	}
	return count, nil
}

// del removes the given keys and returns how many of them existed.
func del(ctx *context) (any, error) {
	names, err := normalizeArgs(ctx.args...)
	if err != nil {
		return nil, err
	}
	return ctx.ks.Delete(names...), nil
}

// keys lists the key names matching a glob pattern, sorted.
func keys(ctx *context) (any, error) {
	args, err := normalizeArgsExact(1, ctx.args...)
	if err != nil {
		return nil, err
	}
	return ctx.ks.Keys(args[0]), nil
}

// typeOf reports the kind name of a key's value, or "none" when absent.
func typeOf(ctx *context) (any, error) {
	args, err := normalizeArgsExact(1, ctx.args...)
	if err != nil {
		return nil, err
	}
	kind, ok := ctx.ks.KindOf(args[0])
	if !ok {
		return "none", nil
	}
	return kind.String(), nil
}
