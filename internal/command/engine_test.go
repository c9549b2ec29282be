package command

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/eternalApril/moonkv/internal/keyspace"
	"go.uber.org/zap"
)

// setupEngine creates a fresh engine with a clean keyspace for each test
func setupEngine() *Engine {
	return NewEngine(zap.NewNop())
}

func mustDo(t *testing.T, e *Engine, name string, args ...any) any {
	t.Helper()
	res, err := e.Execute(name, args...)
	if err != nil {
		t.Fatalf("%s %v failed: %v", name, args, err)
	}
	return res
}

func TestBasicSetGetDel(t *testing.T) {
	e := setupEngine()

	// GET missing key
	res := mustDo(t, e, "GET", "mykey")
	if res != nil {
		t.Errorf("expected nil for missing key, got %v", res)
	}

	if res = mustDo(t, e, "SET", "mykey", "myvalue"); res != "OK" {
		t.Errorf("expected OK, got %v", res)
	}

	if res = mustDo(t, e, "GET", "mykey"); res != "myvalue" {
		t.Errorf("expected myvalue, got %v", res)
	}

	if res = mustDo(t, e, "DEL", "mykey"); res != int64(1) {
		t.Errorf("expected 1 deleted, got %v", res)
	}

	if res = mustDo(t, e, "GET", "mykey"); res != nil {
		t.Errorf("expected nil after delete, got %v", res)
	}
}

func TestDeletionAccounting(t *testing.T) {
	e := setupEngine()
	mustDo(t, e, "SET", "a", "1")

	if res := mustDo(t, e, "DEL", "a", "b"); res != int64(1) {
		t.Errorf("DEL a b = %v, want 1", res)
	}
	if res := mustDo(t, e, "EXISTS", "a"); res != int64(0) {
		t.Errorf("EXISTS a after DEL = %v, want 0", res)
	}
}

func TestExistsCountsPerKey(t *testing.T) {
	e := setupEngine()
	mustDo(t, e, "SET", "a", "1")
	mustDo(t, e, "SET", "b", "2")

	if res := mustDo(t, e, "EXISTS", "a", "b", "c", "a"); res != int64(3) {
		t.Errorf("EXISTS = %v, want 3", res)
	}
}

func TestNumericArgumentsAreCanonicalized(t *testing.T) {
	e := setupEngine()

	mustDo(t, e, "SET", "n", 42)
	if res := mustDo(t, e, "GET", "n"); res != "42" {
		t.Errorf("GET n = %v, want \"42\"", res)
	}

	mustDo(t, e, "SET", "f", 3.0)
	if res := mustDo(t, e, "GET", "f"); res != "3" {
		t.Errorf("GET f = %v, want \"3\"", res)
	}

	if _, err := e.Execute("SET", "bad", true); err == nil {
		t.Error("expected error for non-string non-numeric argument")
	}
}

func TestWrongTypeErrors(t *testing.T) {
	e := setupEngine()
	mustDo(t, e, "LPUSH", "queue", "a")

	wrongKind := []struct {
		name string
		args []any
	}{
		{"GET", []any{"queue"}},
		{"INCR", []any{"queue"}},
		{"HGET", []any{"queue", "f"}},
		{"HSET", []any{"queue", "f", "v"}},
		{"SADD", []any{"queue", "m"}},
		{"SMEMBERS", []any{"queue"}},
		{"ZADD", []any{"queue", "1", "m"}},
		{"ZCARD", []any{"queue"}},
	}

	for _, tt := range wrongKind {
		_, err := e.Execute(tt.name, tt.args...)
		if !errors.Is(err, keyspace.ErrWrongType) {
			t.Errorf("%s on a list key: err = %v, want ErrWrongType", tt.name, err)
		}
	}

	// failed accesses must not have disturbed the value
	if res := mustDo(t, e, "LLEN", "queue"); res != int64(1) {
		t.Errorf("LLEN after type errors = %v, want 1", res)
	}
}

func TestSetReplacesOtherKind(t *testing.T) {
	e := setupEngine()
	mustDo(t, e, "SADD", "k", "m")

	// SET rebinds the key by replacing the whole entry
	mustDo(t, e, "SET", "k", "v")
	if res := mustDo(t, e, "TYPE", "k"); res != "string" {
		t.Errorf("TYPE after SET = %v, want string", res)
	}
}

func TestTypeCommand(t *testing.T) {
	e := setupEngine()
	mustDo(t, e, "SET", "s", "v")
	mustDo(t, e, "RPUSH", "l", "v")
	mustDo(t, e, "HSET", "h", "f", "v")
	mustDo(t, e, "SADD", "st", "v")
	mustDo(t, e, "ZADD", "z", "1", "v")

	for key, want := range map[string]string{
		"s": "string", "l": "list", "h": "hash", "st": "set", "z": "zset", "nope": "none",
	} {
		if res := mustDo(t, e, "TYPE", key); res != want {
			t.Errorf("TYPE %s = %v, want %s", key, res, want)
		}
	}
}

func TestKeysPattern(t *testing.T) {
	e := setupEngine()
	mustDo(t, e, "SET", "user:42", "a")
	mustDo(t, e, "SET", "user:7", "b")
	mustDo(t, e, "SET", "account:42", "c")

	res := mustDo(t, e, "KEYS", "user:*")
	if !reflect.DeepEqual(res, []string{"user:42", "user:7"}) {
		t.Errorf("KEYS user:* = %v", res)
	}

	res = mustDo(t, e, "KEYS", "a?c")
	if len(res.([]string)) != 0 {
		t.Errorf("KEYS a?c = %v, want empty", res)
	}
}

func TestEmptinessInvariant(t *testing.T) {
	e := setupEngine()

	steps := []struct {
		name  string
		fill  [][]any
		drain [][]any
	}{
		{
			"list drained by pops",
			[][]any{{"RPUSH", "k", "a", "b"}},
			[][]any{{"LPOP", "k"}, {"RPOP", "k"}},
		},
		{
			"hash drained by hdel",
			[][]any{{"HSET", "k", "f1", "v1", "f2", "v2"}},
			[][]any{{"HDEL", "k", "f1", "f2"}},
		},
		{
			"set drained by srem",
			[][]any{{"SADD", "k", "m1", "m2"}},
			[][]any{{"SREM", "k", "m1", "m2"}},
		},
		{
			"set drained by spop",
			[][]any{{"SADD", "k", "m1"}},
			[][]any{{"SPOP", "k"}},
		},
		{
			"zset drained by zrem",
			[][]any{{"ZADD", "k", "1", "m1", "2", "m2"}},
			[][]any{{"ZREM", "k", "m1", "m2"}},
		},
	}

	for _, tt := range steps {
		t.Run(tt.name, func(t *testing.T) {
			for _, call := range tt.fill {
				mustDo(t, e, call[0].(string), call[1:]...)
			}
			if res := mustDo(t, e, "EXISTS", "k"); res != int64(1) {
				t.Fatalf("key missing after fill")
			}
			for _, call := range tt.drain {
				mustDo(t, e, call[0].(string), call[1:]...)
			}
			if res := mustDo(t, e, "EXISTS", "k"); res != int64(0) {
				t.Errorf("empty key still exists after drain")
			}
		})
	}
}

func TestPopOnMissingKeyLeavesNothingBehind(t *testing.T) {
	e := setupEngine()

	for _, name := range []string{"LPOP", "RPOP", "SPOP"} {
		if res := mustDo(t, e, name, "ghost"); res != nil {
			t.Errorf("%s ghost = %v, want nil", name, res)
		}
		if res := mustDo(t, e, "EXISTS", "ghost"); res != int64(0) {
			t.Errorf("%s vivified the missing key", name)
		}
	}
}

func TestFailedWritesLeaveAbsentKeysAbsent(t *testing.T) {
	e := setupEngine()

	calls := []struct {
		name string
		args []any
	}{
		{"INCRBY", []any{"k", "nope"}},
		{"INCRBYFLOAT", []any{"k", "inf"}},
		{"INCRBYFLOAT", []any{"k", "nope"}},
		{"ZADD", []any{"k", "bad", "m"}},
		{"ZINCRBY", []any{"k", "bad", "m"}},
		{"SETBIT", []any{"k", "-1", "1"}},
	}

	for _, tt := range calls {
		if _, err := e.Execute(tt.name, tt.args...); err == nil {
			t.Fatalf("%s %v: expected error", tt.name, tt.args)
		}
		if res := mustDo(t, e, "EXISTS", "k"); res != int64(0) {
			t.Errorf("%s %v left a key behind", tt.name, tt.args)
		}
	}
}

func TestUnknownCommand(t *testing.T) {
	e := setupEngine()
	if _, err := e.Execute("NOSUCH", "a"); err == nil {
		t.Error("expected error for unknown command")
	}
}

func TestArityEnforcement(t *testing.T) {
	e := setupEngine()

	bad := []struct {
		name string
		args []any
	}{
		{"GET", []any{}},
		{"GET", []any{"a", "b"}},
		{"SET", []any{"a"}},
		{"DEL", []any{}},
		{"LPUSH", []any{"k"}},
		{"HSET", []any{"k", "f"}},
		{"ZADD", []any{"k", "1"}},
	}

	for _, tt := range bad {
		_, err := e.Execute(tt.name, tt.args...)
		if err == nil || !strings.Contains(err.Error(), "wrong number of arguments") {
			t.Errorf("%s %v: err = %v, want arity error", tt.name, tt.args, err)
		}
	}
}

func TestPing(t *testing.T) {
	e := setupEngine()

	if res := mustDo(t, e, "PING"); res != "PONG" {
		t.Errorf("PING = %v", res)
	}
	if res := mustDo(t, e, "PING", "hello"); res != "hello" {
		t.Errorf("PING hello = %v", res)
	}
}

func TestCommandIntrospection(t *testing.T) {
	e := setupEngine()

	names := mustDo(t, e, "COMMAND").([]string)
	if len(names) != len(commandRegistry) {
		t.Fatalf("COMMAND listed %d names, registry has %d", len(names), len(commandRegistry))
	}
	if !sortedContains(names, "ZADD") || !sortedContains(names, "GET") {
		t.Errorf("COMMAND output missing expected names: %v", names)
	}

	count := mustDo(t, e, "COMMAND", "COUNT")
	if count != int64(len(commandRegistry)) {
		t.Errorf("COMMAND COUNT = %v", count)
	}

	docs := mustDo(t, e, "COMMAND", "DOCS").(map[string]string)
	if docs["GET"] == "" {
		t.Error("COMMAND DOCS has no summary for GET")
	}
}

func sortedContains(names []string, want string) bool {
	for _, n := range names {
		if n == want {
			return true
		}
	}
	return false
}
