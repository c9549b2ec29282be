package keyspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTypedNeverMaterializes(t *testing.T) {
	ks := New()

	v, err := ks.ReadTyped("missing", KindHash)
	require.NoError(t, err)
	assert.True(t, v.Empty())
	assert.False(t, ks.Exists("missing"), "read must not create an entry")
	assert.Equal(t, 0, ks.Len())
}

func TestWriteTypedAutoVivifies(t *testing.T) {
	ks := New()

	v, err := ks.WriteTyped("inbox", KindList)
	require.NoError(t, err)
	require.True(t, ks.Exists("inbox"))

	list := v.(*ListValue)
	list.PushBack("a")

	// the handle aliases the stored entry
	got, err := ks.ReadTyped("inbox", KindList)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.(*ListValue).Len())
}

func TestTypeStability(t *testing.T) {
	ks := New()

	v, err := ks.WriteTyped("k", KindString)
	require.NoError(t, err)
	v.(*StringValue).Set("hello")

	for _, kind := range []Kind{KindList, KindHash, KindSet, KindZSet} {
		_, err = ks.ReadTyped("k", kind)
		assert.ErrorIs(t, err, ErrWrongType, "read as %s", kind)

		_, err = ks.WriteTyped("k", kind)
		assert.ErrorIs(t, err, ErrWrongType, "write as %s", kind)
	}

	// once the key is gone the kind is free again
	ks.Delete("k")
	_, err = ks.WriteTyped("k", KindSet)
	assert.NoError(t, err)
}

func TestWriteTypedReplacesEmptyPlaceholder(t *testing.T) {
	ks := New()

	_, err := ks.WriteTyped("k", KindSet)
	require.NoError(t, err)
	require.True(t, ks.IsEmpty("k"))

	// the placeholder never received members, so another kind may claim it
	v, err := ks.WriteTyped("k", KindHash)
	require.NoError(t, err)
	v.(HashValue)["f"] = "1"

	kind, ok := ks.KindOf("k")
	require.True(t, ok)
	assert.Equal(t, KindHash, kind)
}

func TestCleanupPerKind(t *testing.T) {
	tests := []struct {
		name   string
		kind   Kind
		fill   func(v Value)
		drain  func(v Value)
	}{
		{
			"string", KindString,
			func(v Value) { v.(*StringValue).Set("x") },
			func(v Value) { *v.(*StringValue) = StringValue{} },
		},
		{
			"list", KindList,
			func(v Value) { v.(*ListValue).PushBack("x") },
			func(v Value) { v.(*ListValue).PopFront() },
		},
		{
			"hash", KindHash,
			func(v Value) { v.(HashValue)["f"] = "x" },
			func(v Value) { delete(v.(HashValue), "f") },
		},
		{
			"set", KindSet,
			func(v Value) { v.(SetValue).Add("m") },
			func(v Value) { v.(SetValue).Remove("m") },
		},
		{
			"zset", KindZSet,
			func(v Value) { v.(*ZSetValue).Add("m", 1) },
			func(v Value) { v.(*ZSetValue).Remove("m") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ks := New()
			v, err := ks.WriteTyped("k", tt.kind)
			require.NoError(t, err)

			tt.fill(v)
			ks.Cleanup("k")
			assert.True(t, ks.Exists("k"), "non-empty value must survive cleanup")

			tt.drain(v)
			require.True(t, ks.IsEmpty("k"))
			ks.Cleanup("k")
			assert.False(t, ks.Exists("k"), "empty value must be collected")
		})
	}
}

func TestDeleteCountsOnlyPresentKeys(t *testing.T) {
	ks := New()

	v, err := ks.WriteTyped("a", KindString)
	require.NoError(t, err)
	v.(*StringValue).Set("1")

	assert.Equal(t, int64(1), ks.Delete("a", "b"))
	assert.False(t, ks.Exists("a"))
	assert.Equal(t, int64(0), ks.Delete("a", "b"))
}

func TestKeysPatternAndOrder(t *testing.T) {
	ks := New()
	for _, key := range []string{"user:2", "user:1", "account:1"} {
		v, err := ks.WriteTyped(key, KindString)
		require.NoError(t, err)
		v.(*StringValue).Set("x")
	}

	assert.Equal(t, []string{"user:1", "user:2"}, ks.Keys("user:*"))
	assert.Equal(t, []string{"account:1", "user:1", "user:2"}, ks.Keys("*"))
	assert.Empty(t, ks.Keys("session:*"))
}

func TestZSetCoherencePanics(t *testing.T) {
	ks := New()

	v, err := ks.WriteTyped("board", KindZSet)
	require.NoError(t, err)

	// corrupt one half of the zset; the emptiness probe must refuse to
	// answer rather than guess
	v.(*ZSetValue).scores["ghost"] = 1

	assert.Panics(t, func() { ks.IsEmpty("board") })
}
