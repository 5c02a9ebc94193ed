package condrange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewRangeSet(t *testing.T) {

	t.Run("sorts and merges overlapping ranges", func(t *testing.T) {
		rs := NewRangeSet([]DateRange{
			NewDateRange(day(2024, 1, 10), day(2024, 1, 20)),
			NewDateRange(day(2024, 1, 1), day(2024, 1, 12)),
		})
		require.Equal(t, 1, rs.Len(), "overlapping ranges should merge into one")
		r, _ := rs.FirstRange()
		assert.Equal(t, day(2024, 1, 1), r.Start)
		assert.Equal(t, day(2024, 1, 20), *r.End)
	})

	t.Run("merges touching ranges", func(t *testing.T) {
		rs := NewRangeSet([]DateRange{
			NewDateRange(day(2024, 1, 1), day(2024, 1, 10)),
			NewDateRange(day(2024, 1, 10), day(2024, 1, 20)),
		})
		assert.Equal(t, 1, rs.Len(), "touching ranges (a.end == b.start) must merge")
	})

	t.Run("keeps disjoint ranges separate and sorted", func(t *testing.T) {
		rs := NewRangeSet([]DateRange{
			NewDateRange(day(2024, 3, 1), day(2024, 3, 5)),
			NewDateRange(day(2024, 1, 1), day(2024, 1, 5)),
		})
		require.Equal(t, 2, rs.Len())
		r0, _ := rs.FirstRange()
		assert.Equal(t, day(2024, 1, 1), r0.Start)
	})

	t.Run("an open-ended range absorbs everything after it", func(t *testing.T) {
		rs := NewRangeSet([]DateRange{
			NewOpenDateRange(day(2024, 1, 1)),
			NewDateRange(day(2024, 6, 1), day(2024, 6, 5)),
		})
		require.Equal(t, 1, rs.Len())
		r, _ := rs.LastRange()
		assert.True(t, r.Open())
	})

	t.Run("empty input is the empty set", func(t *testing.T) {
		rs := NewRangeSet(nil)
		assert.True(t, rs.IsEmpty())
	})
}

func TestRangeSetContains(t *testing.T) {
	rs := NewRangeSet([]DateRange{
		NewDateRange(day(2024, 1, 1), day(2024, 1, 5)),
		NewDateRange(day(2024, 2, 1), day(2024, 2, 5)),
	})

	_, ok := rs.Contains(day(2024, 1, 3))
	assert.True(t, ok, "instant inside the first range should be found")

	_, ok = rs.Contains(day(2024, 1, 10))
	assert.False(t, ok, "instant between ranges should not be found")

	_, ok = rs.Contains(day(2024, 2, 5))
	assert.False(t, ok, "end is exclusive, so the instant at end should not be found")
}

func TestRangeSetUnion(t *testing.T) {
	a := NewRangeSet([]DateRange{NewDateRange(day(2024, 1, 1), day(2024, 1, 5))})
	b := NewRangeSet([]DateRange{NewDateRange(day(2024, 1, 10), day(2024, 1, 15))})
	u := a.Union(b)
	assert.Equal(t, 2, u.Len())

	t.Run("idempotence", func(t *testing.T) {
		same := a.Union(a)
		assert.Equal(t, a.Len(), same.Len())
		r1, _ := a.FirstRange()
		r2, _ := same.FirstRange()
		assert.Equal(t, r1, r2)
	})
}

func TestRangeSetIntersection(t *testing.T) {

	t.Run("overlapping finite ranges", func(t *testing.T) {
		a := NewRangeSet([]DateRange{NewDateRange(day(2024, 1, 1), day(2024, 1, 10))})
		b := NewRangeSet([]DateRange{NewDateRange(day(2024, 1, 5), day(2024, 1, 20))})
		i := a.Intersection(b)
		require.Equal(t, 1, i.Len())
		r, _ := i.FirstRange()
		assert.Equal(t, day(2024, 1, 5), r.Start)
		assert.Equal(t, day(2024, 1, 10), *r.End)
	})

	t.Run("disjoint ranges intersect to empty", func(t *testing.T) {
		a := NewRangeSet([]DateRange{NewDateRange(day(2024, 1, 1), day(2024, 1, 5))})
		b := NewRangeSet([]DateRange{NewDateRange(day(2024, 2, 1), day(2024, 2, 5))})
		assert.True(t, a.Intersection(b).IsEmpty())
	})

	t.Run("open-ended operand uses +inf for the absent end", func(t *testing.T) {
		a := NewRangeSet([]DateRange{NewOpenDateRange(day(2024, 1, 1))})
		b := NewRangeSet([]DateRange{NewDateRange(day(2024, 6, 1), day(2024, 6, 5))})
		i := a.Intersection(b)
		require.Equal(t, 1, i.Len())
		r, _ := i.FirstRange()
		assert.Equal(t, day(2024, 6, 1), r.Start)
		assert.Equal(t, day(2024, 6, 5), *r.End)
	})

	t.Run("full set is identity", func(t *testing.T) {
		a := NewRangeSet([]DateRange{NewDateRange(day(2024, 1, 1), day(2024, 1, 5))})
		full := NewRangeSet([]DateRange{NewOpenDateRange(day(1900, 1, 1))})
		i := a.Intersection(full)
		require.Equal(t, 1, i.Len())
		r, _ := i.FirstRange()
		assert.Equal(t, day(2024, 1, 1), r.Start)
		assert.Equal(t, day(2024, 1, 5), *r.End)
	})
}

func TestDateRangeContains(t *testing.T) {
	r := NewDateRange(day(2024, 1, 1), day(2024, 1, 10))
	assert.True(t, r.Contains(day(2024, 1, 1)))
	assert.False(t, r.Contains(day(2024, 1, 10)), "end is exclusive")
	assert.False(t, r.Contains(day(2023, 12, 31)))

	open := NewOpenDateRange(day(2024, 1, 1))
	assert.True(t, open.Contains(day(2030, 1, 1)), "open-ended range has no upper bound")
}
