// Package keyspace implements the keyed container every command works
// against: five value kinds behind typed accessors, lazy defaults on read,
// auto-vivification on write, and the rule that a semantically empty value
// never stays in the map.
package keyspace

import (
	"errors"
	"fmt"
	"sort"

	"github.com/eternalApril/moonkv/internal/glob"
)

// ErrWrongType is returned when a key already holds a value of another kind.
var ErrWrongType = errors.New("WRONGTYPE Operation against a key holding the wrong kind of value")

// Keyspace maps key names to entries. It is not safe for concurrent use on
// its own; the engine serializes whole commands around it, because typed
// access, mutation and cleanup together form one logical transaction.
type Keyspace struct {
	entries map[string]*Entry
}

// New returns an empty keyspace.
func New() *Keyspace {
	return &Keyspace{entries: make(map[string]*Entry)}
}

// DefaultValue returns the canonical empty representation for a kind.
func DefaultValue(kind Kind) Value {
	switch kind {
	case KindString:
		return &StringValue{}
	case KindList:
		return NewList()
	case KindHash:
		return HashValue{}
	case KindSet:
		return SetValue{}
	case KindZSet:
		return NewZSet()
	}
	panic(fmt.Sprintf("unknown kind %d", kind))
}

// ReadTyped returns the value stored at key when its kind matches, or the
// kind's default when the key is absent. It never creates an entry, so
// read-only commands cannot grow the keyspace.
func (ks *Keyspace) ReadTyped(key string, kind Kind) (Value, error) {
	entry, ok := ks.entries[key]
	if !ok {
		return DefaultValue(kind), nil
	}
	if entry.Kind != kind {
		return nil, ErrWrongType
	}
	return entry.Value, nil
}

// WriteTyped returns a mutable value for key, creating a default-valued
// entry when the key is absent or holds only an empty placeholder. An
// existing non-empty entry of another kind is a type error. The returned
// value is owned by the keyspace and must not be retained across commands.
func (ks *Keyspace) WriteTyped(key string, kind Kind) (Value, error) {
	entry, ok := ks.entries[key]
	if ok && !entry.Value.Empty() {
		if entry.Kind != kind {
			return nil, ErrWrongType
		}
		return entry.Value, nil
	}
	entry = &Entry{Kind: kind, Value: DefaultValue(kind)}
	ks.entries[key] = entry
	return entry.Value, nil
}

// IsEmpty reports whether the value at key is semantically empty. Absent
// keys are empty by definition.
func (ks *Keyspace) IsEmpty(key string) bool {
	entry, ok := ks.entries[key]
	if !ok {
		return true
	}
	return entry.Value.Empty()
}

// Cleanup removes key if its value has become empty. Every command that can
// shrink a value must call it after mutating; checking on every read would
// be wasted work.
func (ks *Keyspace) Cleanup(key string) {
	if entry, ok := ks.entries[key]; ok && entry.Value.Empty() {
		delete(ks.entries, key)
	}
}

// Exists reports whether key currently holds an entry.
func (ks *Keyspace) Exists(key string) bool {
	_, ok := ks.entries[key]
	return ok
}

// KindOf returns the kind stored at key.
func (ks *Keyspace) KindOf(key string) (Kind, bool) {
	entry, ok := ks.entries[key]
	if !ok {
		return 0, false
	}
	return entry.Kind, true
}

// Delete removes the given keys and returns how many were present.
func (ks *Keyspace) Delete(keys ...string) int64 {
	var deleted int64
	for _, key := range keys {
		if _, ok := ks.entries[key]; ok {
			deleted++
		}
		delete(ks.entries, key)
	}
	return deleted
}

// Keys returns the key names matching pattern, sorted so results are
// reproducible. The pattern is compiled once for the whole scan.
func (ks *Keyspace) Keys(pattern string) []string {
	p := glob.Compile(pattern)
	matched := make([]string, 0, len(ks.entries))
	for key := range ks.entries {
		if p.Match(key) {
			matched = append(matched, key)
		}
	}
	sort.Strings(matched)
	return matched
}

// Len returns the number of live keys.
func (ks *Keyspace) Len() int {
	return len(ks.entries)
}
