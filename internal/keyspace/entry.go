package keyspace

// Kind discriminates the five value representations a key may hold.
type Kind byte

const (
	KindString Kind = iota + 1
	KindList
	KindHash
	KindSet
	KindZSet
)

// String returns the kind name as reported by the TYPE command.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindHash:
		return "hash"
	case KindSet:
		return "set"
	case KindZSet:
		return "zset"
	}
	return "none"
}

// Entry is the unit stored per key: a kind tag plus its kind-specific value.
// The kind never changes in place; replacing the whole entry is the only way
// to rebind a key to another kind.
type Entry struct {
	Kind  Kind
	Value Value
}

// Value is the kind-specific representation held by an Entry.
type Value interface {
	// Empty reports whether the value is semantically empty. An empty value
	// must not remain in the keyspace; see Keyspace.Cleanup.
	Empty() bool
}
