package command

import (
	"fmt"
	"sort"
	"strings"
)

// commandMetadata describes a registered command. Arity includes the command
// name itself: non-negative means exact, negative means at least the
// absolute value.
type commandMetadata struct {
	arity   int
	group   string // generic, string, list, hash, set, zset, connection
	summary string
}

var commandRegistry = map[string]commandMetadata{
	"PING":    {-1, "connection", "Ping the engine."},
	"COMMAND": {-1, "connection", "List registered commands."},

	"EXISTS": {-2, "generic", "Count how many of the given keys exist."},
	"DEL":    {-2, "generic", "Delete one or more keys."},
	"KEYS":   {2, "generic", "List key names matching a glob pattern."},
	"TYPE":   {2, "generic", "Report the kind of value a key holds."},

	"GET":         {2, "string", "Get the value of a key."},
	"SET":         {3, "string", "Set the string value of a key."},
	"STRLEN":      {2, "string", "Get the length of the value of a key."},
	"INCR":        {2, "string", "Increment the integer value of a key by one."},
	"DECR":        {2, "string", "Decrement the integer value of a key by one."},
	"INCRBY":      {3, "string", "Increment the integer value of a key."},
	"DECRBY":      {3, "string", "Decrement the integer value of a key."},
	"INCRBYFLOAT": {3, "string", "Increment the float value of a key."},
	"SETBIT":      {4, "string", "Set a single bit of the value of a key."},
	"GETBIT":      {3, "string", "Get a single bit of the value of a key."},
	"BITCOUNT":    {2, "string", "Count the set bits in the value of a key."},

	"LPUSH":  {-3, "list", "Prepend values to a list."},
	"RPUSH":  {-3, "list", "Append values to a list."},
	"LPOP":   {2, "list", "Remove and return the first element of a list."},
	"RPOP":   {2, "list", "Remove and return the last element of a list."},
	"LLEN":   {2, "list", "Get the length of a list."},
	"LINDEX": {3, "list", "Get an element of a list by index."},
	"LRANGE": {4, "list", "Get a range of elements of a list."},

	"HSET":    {-4, "hash", "Set hash fields to values."},
	"HGET":    {3, "hash", "Get the value of a hash field."},
	"HDEL":    {-3, "hash", "Delete hash fields."},
	"HEXISTS": {3, "hash", "Check whether a hash field exists."},
	"HLEN":    {2, "hash", "Count the fields of a hash."},
	"HGETALL": {2, "hash", "Get all fields and values of a hash."},
	"HKEYS":   {2, "hash", "Get all field names of a hash."},
	"HVALS":   {2, "hash", "Get all values of a hash."},

	"SADD":      {-3, "set", "Add members to a set."},
	"SREM":      {-3, "set", "Remove members from a set."},
	"SISMEMBER": {3, "set", "Check set membership."},
	"SMEMBERS":  {2, "set", "Get all members of a set."},
	"SCARD":     {2, "set", "Get the cardinality of a set."},
	"SPOP":      {2, "set", "Remove and return an arbitrary set member."},

	"ZADD":    {-4, "zset", "Add scored members to a sorted set."},
	"ZREM":    {-3, "zset", "Remove members from a sorted set."},
	"ZSCORE":  {3, "zset", "Get the score of a sorted set member."},
	"ZINCRBY": {4, "zset", "Increment the score of a sorted set member."},
	"ZCARD":   {2, "zset", "Get the cardinality of a sorted set."},
	"ZRANGE":  {-4, "zset", "Get a rank range of a sorted set."},
	"ZCOUNT":  {4, "zset", "Count sorted set members in a score range."},
}

// checkArity validates an argument count against the registry before the
// handler runs, so a misshapen call never reaches the keyspace.
func checkArity(name string, argc int) error {
	meta, ok := commandRegistry[name]
	if !ok {
		return nil
	}
	total := argc + 1 // arity counts the command name too
	if meta.arity >= 0 && total != meta.arity {
		return fmt.Errorf("ERR wrong number of arguments for '%s' command", strings.ToLower(name))
	}
	if meta.arity < 0 && total < -meta.arity {
		return fmt.Errorf("ERR wrong number of arguments for '%s' command", strings.ToLower(name))
	}
	return nil
}

// commandInfo implements COMMAND: with no arguments it lists the registered
// command names, COMMAND COUNT returns how many there are, and COMMAND DOCS
// adds the one-line summaries.
func commandInfo(ctx *context) (any, error) {
	if len(ctx.args) == 0 {
		names := make([]string, 0, len(commandRegistry))
		for name := range commandRegistry {
			names = append(names, name)
		}
		sort.Strings(names)
		return names, nil
	}

	sub, err := normalizeArg(ctx.args[0])
	if err != nil {
		return nil, err
	}
	switch strings.ToUpper(sub) {
	case "COUNT":
		return int64(len(commandRegistry)), nil
	case "DOCS":
		docs := make(map[string]string, len(commandRegistry))
		for name, meta := range commandRegistry {
			docs[name] = meta.summary
		}
		return docs, nil
	default:
		return nil, fmt.Errorf("ERR unknown COMMAND subcommand '%s'", sub)
	}
}
