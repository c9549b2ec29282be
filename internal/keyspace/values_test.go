package keyspace

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCursors(t *testing.T) {
	l := NewList()
	assert.True(t, l.Empty())

	l.PushBack("b")
	l.PushBack("c")
	l.PushFront("a")
	assert.Equal(t, int64(3), l.Len())
	assert.False(t, l.Empty())

	v, ok := l.Index(0)
	require.True(t, ok)
	assert.Equal(t, "a", v)

	v, ok = l.Index(-1)
	require.True(t, ok)
	assert.Equal(t, "c", v)

	_, ok = l.Index(3)
	assert.False(t, ok)

	assert.Equal(t, []string{"a", "b", "c"}, l.Range(0, -1))
	assert.Equal(t, []string{"b", "c"}, l.Range(1, 100))
	assert.Nil(t, l.Range(2, 1))

	front, ok := l.PopFront()
	require.True(t, ok)
	assert.Equal(t, "a", front)

	back, ok := l.PopBack()
	require.True(t, ok)
	assert.Equal(t, "c", back)

	back, ok = l.PopBack()
	require.True(t, ok)
	assert.Equal(t, "b", back)

	assert.True(t, l.Empty())
	_, ok = l.PopFront()
	assert.False(t, ok)
}

func TestListPopPushInterleaved(t *testing.T) {
	l := NewList()
	// drive the cursors away from zero and back
	for i := 0; i < 10; i++ {
		l.PushFront("x")
	}
	for i := 0; i < 10; i++ {
		_, ok := l.PopBack()
		require.True(t, ok)
	}
	assert.True(t, l.Empty())

	l.PushBack("fresh")
	v, ok := l.Index(0)
	require.True(t, ok)
	assert.Equal(t, "fresh", v)
}

func TestZSetOrdering(t *testing.T) {
	z := NewZSet()

	assert.True(t, z.Add("b", 2))
	assert.True(t, z.Add("a", 2))
	assert.True(t, z.Add("c", 1))
	assert.False(t, z.Add("c", 1), "same member, same score")
	assert.False(t, z.Add("c", 3), "same member, new score")
	assert.Equal(t, 3, z.Len())

	// ties break lexicographically, score moves reorder
	got := z.Range(0, -1)
	require.Len(t, got, 3)
	assert.Equal(t, "a", got[0].Member)
	assert.Equal(t, "b", got[1].Member)
	assert.Equal(t, "c", got[2].Member)
	assert.Equal(t, 3.0, got[2].Score)

	score, ok := z.Score("c")
	require.True(t, ok)
	assert.Equal(t, 3.0, score)

	assert.True(t, z.Remove("b"))
	assert.False(t, z.Remove("b"))
	assert.Equal(t, 2, z.Len())
	assert.False(t, z.Empty())
}

func TestZSetIncrBy(t *testing.T) {
	z := NewZSet()

	assert.Equal(t, 2.5, z.IncrBy("m", 2.5))
	assert.Equal(t, 4.0, z.IncrBy("m", 1.5))

	got := z.Range(0, -1)
	require.Len(t, got, 1)
	assert.Equal(t, 4.0, got[0].Score)
}

func TestZSetCountByScore(t *testing.T) {
	z := NewZSet()
	z.Add("a", 1)
	z.Add("b", 2)
	z.Add("c", 3)

	assert.Equal(t, 3, z.CountByScore(math.Inf(-1), math.Inf(1)))
	assert.Equal(t, 2, z.CountByScore(2, 3))
	assert.Equal(t, 1, z.CountByScore(1.5, 2.5))
	assert.Equal(t, 0, z.CountByScore(4, 5))
}

func TestZSetRangeNegativeIndices(t *testing.T) {
	z := NewZSet()
	z.Add("a", 1)
	z.Add("b", 2)
	z.Add("c", 3)

	got := z.Range(-2, -1)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].Member)
	assert.Equal(t, "c", got[1].Member)

	assert.Nil(t, z.Range(5, 9))
}

func TestZSetRejectsNaNScore(t *testing.T) {
	z := NewZSet()
	z.Add("a", math.Inf(1))

	assert.Panics(t, func() { z.Add("b", math.NaN()) })
	assert.Panics(t, func() { z.IncrBy("a", math.Inf(-1)) })

	// the guarded calls must not have touched either half
	assert.Equal(t, 1, z.Len())
	require.Len(t, z.Range(0, -1), 1)
}

func TestStringCellPresence(t *testing.T) {
	s := &StringValue{}
	assert.True(t, s.Empty())

	_, ok := s.Get()
	assert.False(t, ok)

	s.Set("")
	assert.False(t, s.Empty(), "a stored empty string is still a value")

	data, ok := s.Get()
	require.True(t, ok)
	assert.Equal(t, "", data)
}
