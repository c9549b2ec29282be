package command

import (
	"github.com/eternalApril/moonkv/internal/keyspace"
)

// context carries one command invocation: the raw arguments and the
// keyspace they operate on.
type context struct {
	args []any
	ks   *keyspace.Keyspace
}

type command interface {
	execute(ctx *context) (any, error)
}

type commandFunc func(ctx *context) (any, error)

func (f commandFunc) execute(ctx *context) (any, error) {
	return f(ctx)
}
