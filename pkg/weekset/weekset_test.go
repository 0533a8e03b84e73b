package weekset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromListRoundTrip(t *testing.T) {
	ws, err := FromList(16, []int{1, 3, 5, 7})
	assert.NoError(t, err)
	assert.Equal(t, []int{1, 3, 5, 7}, ws.ToSortedList())
}

func TestFromListOutOfRange(t *testing.T) {
	_, err := FromList(16, []int{0})
	assert.Error(t, err)

	_, err = FromList(16, []int{17})
	assert.Error(t, err)
}

func TestFromRanges(t *testing.T) {
	ws, err := FromRanges(16, []string{"1-3", "10-12", "16"})
	assert.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 10, 11, 12, 16}, ws.ToSortedList())
}

func TestFromRangesOutOfBounds(t *testing.T) {
	_, err := FromRanges(16, []string{"15-20"})
	assert.Error(t, err)
}

func TestFromAll(t *testing.T) {
	ws := FromAll(5)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, ws.ToSortedList())
}

func TestIntersectsAndDisjoint(t *testing.T) {
	a, _ := FromRanges(16, []string{"1-8"})
	b, _ := FromRanges(16, []string{"9-16"})
	assert.False(t, a.Intersects(b))

	c, _ := FromRanges(16, []string{"8-16"})
	assert.True(t, a.Intersects(c))
}

func TestUnion(t *testing.T) {
	a, _ := FromList(16, []int{1, 2})
	b, _ := FromList(16, []int{2, 3})
	union := a.Union(b)
	assert.Equal(t, []int{1, 2, 3}, union.ToSortedList())
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, New(16).IsEmpty())
	ws, _ := FromList(16, []int{4})
	assert.False(t, ws.IsEmpty())
}

func TestRangeString(t *testing.T) {
	ws, _ := FromList(16, []int{1, 2, 3, 5, 7, 8})
	assert.Equal(t, "1-3,5,7-8", ws.RangeString())

	assert.Equal(t, "", New(16).RangeString())
}

func TestWeekSetWideBoundary(t *testing.T) {
	// Exercise the multi-word bitmask path (total > 64).
	ws, err := FromRanges(100, []string{"1-64", "65-100"})
	assert.NoError(t, err)
	assert.True(t, ws.Contains(1))
	assert.True(t, ws.Contains(64))
	assert.True(t, ws.Contains(65))
	assert.True(t, ws.Contains(100))
	assert.Equal(t, 100, len(ws.ToSortedList()))
}
