// Package command implements the command surface over the keyspace: the
// argument normalizer every entry point runs first, the per-kind command
// bodies, and the engine that dispatches them under one lock.
package command

import (
	"fmt"
	"strings"
	"sync"

	"github.com/eternalApril/moonkv/internal/keyspace"
	"go.uber.org/zap"
)

// Engine owns the keyspace and dispatches commands against it. A single
// mutex serializes whole commands: typed access, mutation, emptiness check
// and cleanup form one critical section that must not interleave.
type Engine struct {
	commands map[string]command // Registry of available commands (the key is the command name in uppercase)
	ks       *keyspace.Keyspace
	mu       sync.Mutex
	logger   *zap.Logger
}

// NewEngine initializes the engine and registers the command set.
func NewEngine(logger *zap.Logger) *Engine {
	engine := Engine{
		commands: make(map[string]command),
		ks:       keyspace.New(),
		logger:   logger,
	}
	engine.registerKeyCommands()
	engine.registerStringCommands()
	engine.registerListCommands()
	engine.registerHashCommands()
	engine.registerSetCommands()
	engine.registerZSetCommands()
	engine.register("PING", commandFunc(ping))
	engine.register("COMMAND", commandFunc(commandInfo))
	return &engine
}

// register adds a new command to the engine. The command name is uppercase
func (e *Engine) register(name string, cmd command) {
	e.commands[strings.ToUpper(name)] = cmd
}

// Execute finds the command by name, validates its arity against the
// registry and runs it. All failures come back as plain errors; the
// keyspace is untouched whenever an error is returned.
func (e *Engine) Execute(name string, args ...any) (any, error) {
	upper := strings.ToUpper(name)

	cmd, ok := e.commands[upper]
	if !ok {
		return nil, fmt.Errorf("ERR unknown command '%s'", name)
	}

	if err := checkArity(upper, len(args)); err != nil {
		return nil, err
	}

	if e.logger.Core().Enabled(zap.DebugLevel) {
		e.logger.Debug("executing command",
			zap.String("cmd", upper),
			zap.Int("args_count", len(args)),
		)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	return cmd.execute(&context{args: args, ks: e.ks})
}

// Len returns the number of live keys.
func (e *Engine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ks.Len()
}

func ping(ctx *context) (any, error) {
	switch len(ctx.args) {
	case 0:
		return "PONG", nil
	case 1:
		return normalizeArg(ctx.args[0])
	default:
		return nil, errWrongArity
	}
}
