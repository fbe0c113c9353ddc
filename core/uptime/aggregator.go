// Package uptime computes per-station availability percentages from charger
// availability reports.
package uptime

import (
	"math/bits"
	"sort"

	"github.com/gridwatt/stationuptime/core/interval"
	"github.com/gridwatt/stationuptime/core/model"
)

// ComputeUptimes returns the floored uptime percentage for every station in
// stationIDs. The returned map contains one entry per declared station:
// stations with no reports, or whose observation window has zero length,
// get 0. Inputs are assumed valid (Start <= End on every report); the
// function is pure and deterministic.
func ComputeUptimes(stationIDs []model.StationID, reports map[model.StationID][]model.AvailabilityReport) map[model.StationID]int {
	out := make(map[model.StationID]int, len(stationIDs))
	for _, id := range stationIDs {
		out[id] = stationUptime(reports[id])
	}
	return out
}

// SortedStationIDs returns a copy of ids in ascending order. The input is
// left unmodified.
func SortedStationIDs(ids []model.StationID) []model.StationID {
	sorted := make([]model.StationID, len(ids))
	copy(sorted, ids)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return sorted
}

// Results converts a fleet into sorted per-station results, ascending by
// station ID.
func Results(fleet *model.Fleet) []model.StationUptime {
	pcts := ComputeUptimes(fleet.StationIDs, fleet.ReportsByStation)
	ids := SortedStationIDs(fleet.StationIDs)
	results := make([]model.StationUptime, 0, len(ids))
	for _, id := range ids {
		results = append(results, model.StationUptime{Station: id, Percent: pcts[id]})
	}
	return results
}

func stationUptime(reports []model.AvailabilityReport) int {
	if len(reports) == 0 {
		return 0
	}

	// The observation window spans all reports, up and down alike: a
	// station whose chargers only ever reported down still has a real
	// window.
	minTime := reports[0].Interval.Start
	maxTime := reports[0].Interval.End
	ups := make([]model.Interval, 0, len(reports))
	for _, r := range reports {
		if r.Interval.Start < minTime {
			minTime = r.Interval.Start
		}
		if r.Interval.End > maxTime {
			maxTime = r.Interval.End
		}
		if r.Up {
			ups = append(ups, r.Interval)
		}
	}

	if maxTime <= minTime {
		return 0
	}
	span := uint64(maxTime - minTime)
	up := interval.TotalLength(interval.Merge(ups))

	return percent(up, span)
}

// percent computes floor(100*up/span) without precision loss for any uint64
// inputs, clamped to [0, 100].
func percent(up, span uint64) int {
	if up >= span {
		return 100
	}
	hi, lo := bits.Mul64(up, 100)
	// up < span, so up*100 < span*2^64 and the 128-bit division cannot
	// overflow its 64-bit quotient.
	q, _ := bits.Div64(hi, lo, span)
	if q > 100 {
		return 100
	}
	return int(q)
}
