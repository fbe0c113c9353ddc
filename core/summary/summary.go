// Package summary computes fleet-level statistics over per-station uptime
// results.
package summary

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/gridwatt/stationuptime/core/model"
)

// Summary aggregates uptime percentages across a fleet.
type Summary struct {
	Stations      int     `json:"stations"`
	MinPercent    int     `json:"min_percent"`
	MaxPercent    int     `json:"max_percent"`
	MeanPercent   float64 `json:"mean_percent"`
	MedianPercent float64 `json:"median_percent"`
	StdDevPercent float64 `json:"stddev_percent"`
	FullyUp       int     `json:"fully_up"`
	FullyDown     int     `json:"fully_down"`
}

// Compute returns the fleet summary for the given results. An empty input
// yields the zero Summary.
func Compute(results []model.StationUptime) Summary {
	if len(results) == 0 {
		return Summary{}
	}

	xs := make([]float64, len(results))
	s := Summary{
		Stations:   len(results),
		MinPercent: results[0].Percent,
		MaxPercent: results[0].Percent,
	}
	for i, r := range results {
		xs[i] = float64(r.Percent)
		if r.Percent < s.MinPercent {
			s.MinPercent = r.Percent
		}
		if r.Percent > s.MaxPercent {
			s.MaxPercent = r.Percent
		}
		switch r.Percent {
		case 100:
			s.FullyUp++
		case 0:
			s.FullyDown++
		}
	}

	sort.Float64s(xs)
	s.MeanPercent = stat.Mean(xs, nil)
	s.MedianPercent = stat.Quantile(0.5, stat.Empirical, xs, nil)
	if len(xs) > 1 {
		s.StdDevPercent = stat.StdDev(xs, nil)
	}
	return s
}
