package wordgen

import (
	"strconv"
	"strings"
)

// MaxYearSpan is the largest number of years a range may expand to.
const MaxYearSpan = 10000

// ExpandYears turns raw year tokens into integers. Two tokens more than one
// year apart describe an inclusive range, in either order. Any token that is
// not an integer, or a range wider than MaxYearSpan, makes the whole
// expansion empty.
func ExpandYears(raw []string) []int {
	if len(raw) == 0 {
		return []int{}
	}

	years := make([]int, 0, len(raw))
	for _, tok := range raw {
		y, err := strconv.Atoi(strings.TrimSpace(tok))
		if err != nil {
			return []int{}
		}
		years = append(years, y)
	}

	if len(years) == 2 {
		start, end := min(years[0], years[1]), max(years[0], years[1])
		span := yearSpan(start, end)
		if span > 1 {
			if span >= MaxYearSpan {
				return []int{}
			}
			out := make([]int, 0, span+1)
			for i := range span + 1 {
				out = append(out, start+int(i))
			}
			return out
		}
	}
	return years
}

// SplitYears splits free-form input such as "1990 2025" or "2018,2019" into
// raw year tokens for ExpandYears.
func SplitYears(s string) []string {
	return strings.Fields(strings.ReplaceAll(s, ",", " "))
}

// yearSpan returns end-start for start <= end without overflowing.
func yearSpan(start, end int) uint64 {
	return uint64(end) - uint64(start)
}
