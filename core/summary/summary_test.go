package summary

import (
	"math"
	"testing"

	"github.com/gridwatt/stationuptime/core/model"
)

func results(pcts ...int) []model.StationUptime {
	out := make([]model.StationUptime, len(pcts))
	for i, p := range pcts {
		out[i] = model.StationUptime{Station: model.StationID(i), Percent: p}
	}
	return out
}

func TestComputeEmpty(t *testing.T) {
	if got := Compute(nil); got != (Summary{}) {
		t.Fatalf("expected zero summary, got %+v", got)
	}
}

func TestComputeSingle(t *testing.T) {
	s := Compute(results(60))
	if s.Stations != 1 || s.MinPercent != 60 || s.MaxPercent != 60 {
		t.Fatalf("bounds: %+v", s)
	}
	if s.MeanPercent != 60 || s.MedianPercent != 60 {
		t.Fatalf("center: %+v", s)
	}
	if s.StdDevPercent != 0 {
		t.Fatalf("single sample must have zero stddev, got %v", s.StdDevPercent)
	}
}

func TestComputeFleet(t *testing.T) {
	s := Compute(results(100, 0, 50, 50))
	if s.Stations != 4 || s.MinPercent != 0 || s.MaxPercent != 100 {
		t.Fatalf("bounds: %+v", s)
	}
	if s.MeanPercent != 50 {
		t.Fatalf("mean: %v", s.MeanPercent)
	}
	if s.MedianPercent != 50 {
		t.Fatalf("median: %v", s.MedianPercent)
	}
	if s.FullyUp != 1 || s.FullyDown != 1 {
		t.Fatalf("full counts: %+v", s)
	}
	// Sample stddev of {0,50,50,100} is sqrt(5000/3).
	want := math.Sqrt(5000.0 / 3.0)
	if math.Abs(s.StdDevPercent-want) > 1e-9 {
		t.Fatalf("stddev: got %v want %v", s.StdDevPercent, want)
	}
}
