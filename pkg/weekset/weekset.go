// Package weekset implements the compact representation of a subset of
// {1..weeksTotal} used throughout the scheduler to describe which weeks of
// the semester an event or module is active on.
package weekset

import (
	"fmt"
	"strconv"
	"strings"
)

const wordBits = 64

// WeekSet is an immutable bitmask over {1..Total}. Bit i-1 is set iff week i
// is a member. The zero value is not useful; construct with New or one of
// the From* functions.
type WeekSet struct {
	total int
	bits  []uint64
}

// New returns the empty week-set over {1..total}.
func New(total int) WeekSet {
	if total < 1 {
		panic("weekset: total must be >= 1")
	}
	return WeekSet{total: total, bits: make([]uint64, (total+wordBits-1)/wordBits)}
}

// FromAll returns the week-set containing every week in {1..total}.
func FromAll(total int) WeekSet {
	ws := New(total)
	for week := 1; week <= total; week++ {
		ws.set(week)
	}
	return ws
}

// FromList returns the week-set containing exactly the given weeks.
func FromList(total int, weeks []int) (WeekSet, error) {
	ws := New(total)
	for _, week := range weeks {
		if week < 1 || week > total {
			return WeekSet{}, fmt.Errorf("weekset: week %d out of range 1..%d", week, total)
		}
		ws.set(week)
	}
	return ws, nil
}

// FromRanges returns the week-set formed by the union of inclusive integer
// ranges written as "a-b" (or "a" for a single week).
func FromRanges(total int, ranges []string) (WeekSet, error) {
	ws := New(total)
	for _, r := range ranges {
		lo, hi, err := parseRange(r)
		if err != nil {
			return WeekSet{}, err
		}
		if lo < 1 || hi > total || lo > hi {
			return WeekSet{}, fmt.Errorf("weekset: range %q out of bounds for total %d", r, total)
		}
		for week := lo; week <= hi; week++ {
			ws.set(week)
		}
	}
	return ws, nil
}

func parseRange(r string) (lo, hi int, err error) {
	parts := strings.SplitN(r, "-", 2)
	if len(parts) == 1 {
		v, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return 0, 0, fmt.Errorf("weekset: invalid range %q: %w", r, err)
		}
		return v, v, nil
	}
	lo, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("weekset: invalid range %q: %w", r, err)
	}
	hi, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("weekset: invalid range %q: %w", r, err)
	}
	return lo, hi, nil
}

func (ws WeekSet) set(week int) {
	idx, bit := (week-1)/wordBits, uint((week-1)%wordBits)
	ws.bits[idx] |= 1 << bit
}

// Total returns the size of the semester this week-set was built against.
func (ws WeekSet) Total() int {
	return ws.total
}

// Contains reports whether week is a member of the set.
func (ws WeekSet) Contains(week int) bool {
	if week < 1 || week > ws.total {
		return false
	}
	idx, bit := (week-1)/wordBits, uint((week-1)%wordBits)
	return ws.bits[idx]&(1<<bit) != 0
}

// Intersects reports whether ws and other share at least one week. Both
// must share the same Total.
func (ws WeekSet) Intersects(other WeekSet) bool {
	n := min(len(ws.bits), len(other.bits))
	for i := 0; i < n; i++ {
		if ws.bits[i]&other.bits[i] != 0 {
			return true
		}
	}
	return false
}

// Union returns a new week-set containing every week present in ws or
// other.
func (ws WeekSet) Union(other WeekSet) WeekSet {
	total := ws.total
	if other.total > total {
		total = other.total
	}
	result := New(total)
	for i, word := range ws.bits {
		result.bits[i] |= word
	}
	for i, word := range other.bits {
		result.bits[i] |= word
	}
	return result
}

// ToSortedList returns the members of the set in ascending order.
func (ws WeekSet) ToSortedList() []int {
	weeks := make([]int, 0, ws.total)
	for week := 1; week <= ws.total; week++ {
		if ws.Contains(week) {
			weeks = append(weeks, week)
		}
	}
	return weeks
}

// IsEmpty reports whether no week is a member of the set.
func (ws WeekSet) IsEmpty() bool {
	for _, word := range ws.bits {
		if word != 0 {
			return false
		}
	}
	return true
}

// RangeString renders the set compactly, collapsing consecutive runs into
// "a-b" intervals (e.g. {1,2,3,5,7,8} -> "1-3,5,7-8").
func (ws WeekSet) RangeString() string {
	weeks := ws.ToSortedList()
	if len(weeks) == 0 {
		return ""
	}

	var ranges []string
	start, prev := weeks[0], weeks[0]
	flush := func() {
		if start == prev {
			ranges = append(ranges, strconv.Itoa(start))
		} else {
			ranges = append(ranges, fmt.Sprintf("%d-%d", start, prev))
		}
	}
	for _, week := range weeks[1:] {
		if week == prev+1 {
			prev = week
			continue
		}
		flush()
		start, prev = week, week
	}
	flush()

	return strings.Join(ranges, ",")
}
