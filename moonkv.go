// Package moonkv is an embedded, in-process key-value engine speaking the
// data model of a remote data-structure server: five value kinds, strict
// type errors, exact bounded integers and glob key lookup, with no network
// layer in between.
package moonkv

import (
	"go.uber.org/zap"

	"github.com/eternalApril/moonkv/internal/coerce"
	"github.com/eternalApril/moonkv/internal/command"
	"github.com/eternalApril/moonkv/internal/keyspace"
	"github.com/eternalApril/moonkv/internal/logger"
)

// Sentinel errors commands can fail with, re-exported for errors.Is checks.
var (
	// ErrWrongType means a key already holds a value of another kind.
	ErrWrongType = keyspace.ErrWrongType
	// ErrNotInteger means an argument was not an exact bounded integer.
	ErrNotInteger = coerce.ErrNotInteger
	// ErrNotFloat means an argument could not be read as a float.
	ErrNotFloat = coerce.ErrNotFloat
)

// DB is a handle to one engine instance. All commands on a DB are
// serialized; a DB is safe for concurrent use.
type DB struct {
	engine *command.Engine
}

// Option tunes a DB at construction time.
type Option func(*options)

type options struct {
	logger *zap.Logger
}

// WithLogger routes engine logging to the given zap logger.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) { o.logger = log }
}

// New creates an empty DB. Without options, logging is discarded.
func New(opts ...Option) *DB {
	o := options{logger: logger.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return &DB{engine: command.NewEngine(o.logger)}
}

// Do executes a named command with the given arguments. Arguments may be
// strings or numbers; numbers are canonicalized to their exact decimal
// form. The reply is a plain Go value: string, int64, bool, float64,
// []string, or nil for a miss.
func (db *DB) Do(name string, args ...any) (any, error) {
	return db.engine.Execute(name, args...)
}

// Len returns the number of live keys.
func (db *DB) Len() int {
	return db.engine.Len()
}
