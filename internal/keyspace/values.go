package keyspace

import (
	"fmt"
	"math"

	"github.com/tidwall/btree"
)

// StringValue is the scalar cell of a string key. Present distinguishes a
// stored empty string from an absent one.
type StringValue struct {
	Present bool
	Data    string
}

func (s *StringValue) Empty() bool { return !s.Present }

// Set stores data in the cell.
func (s *StringValue) Set(data string) {
	s.Present = true
	s.Data = data
}

// Get returns the cell contents and whether anything was ever stored.
func (s *StringValue) Get() (string, bool) {
	return s.Data, s.Present
}

// ListValue is a deque addressed by logical head/tail cursors. Pushing or
// popping at either end moves a cursor instead of reindexing the body, so
// both ends are O(1). The list is empty exactly when head == tail.
type ListValue struct {
	head  int64
	tail  int64
	items map[int64]string
}

// NewList returns an empty list with both cursors at zero.
func NewList() *ListValue {
	return &ListValue{items: make(map[int64]string)}
}

func (l *ListValue) Empty() bool { return l.head == l.tail }

// Len returns the number of elements.
func (l *ListValue) Len() int64 { return l.tail - l.head }

// PushFront prepends a value, returning the new length.
func (l *ListValue) PushFront(v string) int64 {
	l.head--
	l.items[l.head] = v
	return l.Len()
}

// PushBack appends a value, returning the new length.
func (l *ListValue) PushBack(v string) int64 {
	l.items[l.tail] = v
	l.tail++
	return l.Len()
}

// PopFront removes and returns the first element.
func (l *ListValue) PopFront() (string, bool) {
	if l.head == l.tail {
		return "", false
	}
	v := l.items[l.head]
	delete(l.items, l.head)
	l.head++
	return v, true
}

// PopBack removes and returns the last element.
func (l *ListValue) PopBack() (string, bool) {
	if l.head == l.tail {
		return "", false
	}
	l.tail--
	v := l.items[l.tail]
	delete(l.items, l.tail)
	return v, true
}

// Index returns the element at i. Negative indices count from the tail,
// -1 being the last element.
func (l *ListValue) Index(i int64) (string, bool) {
	pos := l.resolve(i)
	if pos < l.head || pos >= l.tail {
		return "", false
	}
	return l.items[pos], true
}

// Range returns the elements from start to stop inclusive, with negative
// indices counting from the tail and out-of-bounds indices clamped.
func (l *ListValue) Range(start, stop int64) []string {
	s := l.resolve(start)
	e := l.resolve(stop)
	if s < l.head {
		s = l.head
	}
	if e >= l.tail {
		e = l.tail - 1
	}
	if s > e {
		return nil
	}
	out := make([]string, 0, e-s+1)
	for pos := s; pos <= e; pos++ {
		out = append(out, l.items[pos])
	}
	return out
}

func (l *ListValue) resolve(i int64) int64 {
	if i < 0 {
		return l.tail + i
	}
	return l.head + i
}

// HashValue maps string fields to string values.
type HashValue map[string]string

func (h HashValue) Empty() bool { return len(h) == 0 }

// SetValue holds unique string members.
type SetValue map[string]struct{}

func (s SetValue) Empty() bool { return len(s) == 0 }

// Add inserts a member, reporting whether it was new.
func (s SetValue) Add(member string) bool {
	if _, ok := s[member]; ok {
		return false
	}
	s[member] = struct{}{}
	return true
}

// Remove deletes a member, reporting whether it was present.
func (s SetValue) Remove(member string) bool {
	if _, ok := s[member]; !ok {
		return false
	}
	delete(s, member)
	return true
}

// Has reports membership.
func (s SetValue) Has(member string) bool {
	_, ok := s[member]
	return ok
}

// Members returns all members in unspecified order.
func (s SetValue) Members() []string {
	out := make([]string, 0, len(s))
	for m := range s {
		out = append(out, m)
	}
	return out
}

// ScoredMember pairs a zset member with its score.
type ScoredMember struct {
	Member string
	Score  float64
}

func byScoreThenMember(a, b ScoredMember) bool {
	if a.Score != b.Score {
		return a.Score < b.Score
	}
	return a.Member < b.Member
}

// ZSetValue keeps a member-to-score map next to a btree ordered by
// (score, member). Both parts must describe the same membership at all
// times; a divergence is a bug in this package, not bad input.
type ZSetValue struct {
	scores  map[string]float64
	ordered *btree.BTreeG[ScoredMember]
}

// NewZSet returns an empty sorted set.
func NewZSet() *ZSetValue {
	return &ZSetValue{
		scores:  make(map[string]float64),
		ordered: btree.NewBTreeG(byScoreThenMember),
	}
}

func (z *ZSetValue) Empty() bool {
	if (len(z.scores) == 0) != (z.ordered.Len() == 0) {
		panic(fmt.Sprintf("zset parts disagree: %d scored members vs %d ordered",
			len(z.scores), z.ordered.Len()))
	}
	return len(z.scores) == 0
}

// Len returns the cardinality.
func (z *ZSetValue) Len() int {
	return len(z.scores)
}

// Add sets member's score, reporting whether the member was new. A NaN
// score has no rank under (score, member) ordering and would let the two
// parts diverge, so it panics; callers reject NaN before reaching here.
func (z *ZSetValue) Add(member string, score float64) bool {
	if math.IsNaN(score) {
		panic("zset score is NaN")
	}
	old, ok := z.scores[member]
	if ok {
		if old == score {
			return false
		}
		z.ordered.Delete(ScoredMember{Member: member, Score: old})
	}
	z.scores[member] = score
	z.ordered.Set(ScoredMember{Member: member, Score: score})
	return !ok
}

// Remove deletes a member, reporting whether it was present.
func (z *ZSetValue) Remove(member string) bool {
	score, ok := z.scores[member]
	if !ok {
		return false
	}
	delete(z.scores, member)
	z.ordered.Delete(ScoredMember{Member: member, Score: score})
	return true
}

// Score returns member's score.
func (z *ZSetValue) Score(member string) (float64, bool) {
	score, ok := z.scores[member]
	return score, ok
}

// IncrBy adds delta to member's score, creating the member at delta when
// absent, and returns the new score.
func (z *ZSetValue) IncrBy(member string, delta float64) float64 {
	score, ok := z.scores[member]
	if math.IsNaN(score + delta) {
		panic("zset score is NaN")
	}
	if ok {
		z.ordered.Delete(ScoredMember{Member: member, Score: score})
	}
	score += delta
	z.scores[member] = score
	z.ordered.Set(ScoredMember{Member: member, Score: score})
	return score
}

// Range returns members by ascending (score, member) rank from start to stop
// inclusive, with negative indices counting from the highest rank.
func (z *ZSetValue) Range(start, stop int) []ScoredMember {
	n := z.ordered.Len()
	if start < 0 {
		start += n
	}
	if stop < 0 {
		stop += n
	}
	if start < 0 {
		start = 0
	}
	if stop >= n {
		stop = n - 1
	}
	if start > stop {
		return nil
	}
	out := make([]ScoredMember, 0, stop-start+1)
	rank := 0
	z.ordered.Scan(func(item ScoredMember) bool {
		if rank > stop {
			return false
		}
		if rank >= start {
			out = append(out, item)
		}
		rank++
		return true
	})
	return out
}

// CountByScore returns how many members fall in [min, max].
func (z *ZSetValue) CountByScore(min, max float64) int {
	count := 0
	z.ordered.Ascend(ScoredMember{Score: min}, func(item ScoredMember) bool {
		if item.Score > max {
			return false
		}
		count++
		return true
	})
	return count
}
