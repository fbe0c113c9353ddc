// Package interval provides set operations over half-open time intervals.
package interval

import (
	"sort"

	"github.com/gridwatt/stationuptime/core/model"
)

// Merge returns the minimal sorted, pairwise disjoint set of intervals
// covering the same union of time as the input. Intervals that overlap or
// touch exactly at a boundary are folded into one. The input order is
// irrelevant and the input slice is left unmodified. Callers guarantee
// Start <= End for every interval.
func Merge(in []model.Interval) []model.Interval {
	if len(in) == 0 {
		return nil
	}

	ivs := make([]model.Interval, len(in))
	copy(ivs, in)
	sort.Slice(ivs, func(i, j int) bool {
		if ivs[i].Start != ivs[j].Start {
			return ivs[i].Start < ivs[j].Start
		}
		return ivs[i].End < ivs[j].End
	})

	merged := make([]model.Interval, 0, len(ivs))
	merged = append(merged, ivs[0])
	for _, iv := range ivs[1:] {
		last := &merged[len(merged)-1]
		if iv.Start > last.End {
			// Strictly past the current interval: a touching start
			// (iv.Start == last.End) extends instead of splitting.
			merged = append(merged, iv)
		} else if iv.End > last.End {
			last.End = iv.End
		}
	}
	return merged
}

// TotalLength sums End - Start over the given intervals. For merged output
// this equals the length of the set union of the inputs.
func TotalLength(ivs []model.Interval) uint64 {
	var total uint64
	for _, iv := range ivs {
		total += iv.Length()
	}
	return total
}
