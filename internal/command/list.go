package command

import (
	"github.com/eternalApril/moonkv/internal/coerce"
	"github.com/eternalApril/moonkv/internal/keyspace"
)

func (e *Engine) registerListCommands() {
	e.register("LPUSH", push(true))
	e.register("RPUSH", push(false))
	e.register("LPOP", pop(true))
	e.register("RPOP", pop(false))
	e.register("LLEN", commandFunc(lLen))
	e.register("LINDEX", commandFunc(lIndex))
	e.register("LRANGE", commandFunc(lRange))
}

func push(front bool) commandFunc {
	return func(ctx *context) (any, error) {
		args, err := normalizeArgs(ctx.args...)
		if err != nil {
			return nil, err
		}
		if len(args) < 2 {
			return nil, errWrongArity
		}
		v, err := ctx.ks.WriteTyped(args[0], keyspace.KindList)
		if err != nil {
			return nil, err
		}
		list := v.(*keyspace.ListValue)
		var n int64
		for _, item := range args[1:] {
			if front {
				n = list.PushFront(item)
			} else {
				n = list.PushBack(item)
			}
		}
		return n, nil
	}
}

func pop(front bool) commandFunc {
	return func(ctx *context) (any, error) {
		args, err := normalizeArgsExact(1, ctx.args...)
		if err != nil {
			return nil, err
		}
		v, err := ctx.ks.WriteTyped(args[0], keyspace.KindList)
		if err != nil {
			return nil, err
		}
		list := v.(*keyspace.ListValue)

		var item string
		var ok bool
		if front {
			item, ok = list.PopFront()
		} else {
			item, ok = list.PopBack()
		}
		// the pop may have emptied the list, and a miss on an absent key may
		// have vivified an empty one; either way the key must not linger
		ctx.ks.Cleanup(args[0])
		if !ok {
			return nil, nil
		}
		return item, nil
	}
}

func lLen(ctx *context) (any, error) {
	args, err := normalizeArgsExact(1, ctx.args...)
	if err != nil {
		return nil, err
	}
	v, err := ctx.ks.ReadTyped(args[0], keyspace.KindList)
	if err != nil {
		return nil, err
	}
	return v.(*keyspace.ListValue).Len(), nil
}

func lIndex(ctx *context) (any, error) {
	args, err := normalizeArgsExact(2, ctx.args...)
	if err != nil {
		return nil, err
	}
	idx, err := coerce.ToInt(args[1])
	if err != nil {
		return nil, err
	}
	v, err := ctx.ks.ReadTyped(args[0], keyspace.KindList)
	if err != nil {
		return nil, err
	}
	item, ok := v.(*keyspace.ListValue).Index(idx)
	if !ok {
		return nil, nil
	}
	return item, nil
}

func lRange(ctx *context) (any, error) {
	args, err := normalizeArgsExact(3, ctx.args...)
	if err != nil {
		return nil, err
	}
	start, err := coerce.ToInt(args[1])
	if err != nil {
		return nil, err
	}
	stop, err := coerce.ToInt(args[2])
	if err != nil {
		return nil, err
	}
	v, err := ctx.ks.ReadTyped(args[0], keyspace.KindList)
	if err != nil {
		return nil, err
	}
	return v.(*keyspace.ListValue).Range(start, stop), nil
}
