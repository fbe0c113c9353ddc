package generator

import (
	"bytes"
	"math"
	"testing"

	"github.com/gridwatt/stationuptime/core/reportfile"
)

func TestGenerateDeterministic(t *testing.T) {
	cfg := Config{Seed: 1}
	cfg.SetDefaults()

	var a, b bytes.Buffer
	if err := New(cfg).Generate(&a); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if err := New(cfg).Generate(&b); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Fatalf("same seed produced different output")
	}
}

func TestGenerateParsesCleanly(t *testing.T) {
	cfg := Config{Stations: 5, ChargersPerStation: 2, ReportsPerCharger: 10, UpProbability: 0.8, GapProbability: 0.2, MaxSegment: 500, Seed: 7}

	var buf bytes.Buffer
	if err := New(cfg).Generate(&buf); err != nil {
		t.Fatalf("generate: %v", err)
	}

	fleet, stats, err := reportfile.Parser{}.Parse(&buf)
	if err != nil {
		t.Fatalf("generated file failed to parse: %v", err)
	}
	if stats.Stations != 5 {
		t.Fatalf("expected 5 stations, got %d", stats.Stations)
	}
	if stats.Chargers != 10 {
		t.Fatalf("expected 10 chargers, got %d", stats.Chargers)
	}
	if stats.ReportsKept != 100 {
		t.Fatalf("expected 100 reports, got %d", stats.ReportsKept)
	}
	if stats.ReportsDropped != 0 {
		t.Fatalf("generator must not reference undeclared chargers")
	}
	for i := 1; i < len(fleet.StationIDs); i++ {
		if fleet.StationIDs[i] <= fleet.StationIDs[i-1] {
			t.Fatalf("station IDs not strictly ascending: %v", fleet.StationIDs)
		}
	}
}

func TestGenerateValidates(t *testing.T) {
	var buf bytes.Buffer
	if err := New(Config{Stations: -1, ChargersPerStation: 1, ReportsPerCharger: 1, UpProbability: 0.5, GapProbability: 0, MaxSegment: 10}).Generate(&buf); err == nil {
		t.Fatalf("expected validation error")
	}
	if err := New(Config{Stations: 1, ChargersPerStation: 1, ReportsPerCharger: 1, UpProbability: 2, GapProbability: 0, MaxSegment: 10}).Generate(&buf); err == nil {
		t.Fatalf("expected probability validation error")
	}
	if err := New(Config{Stations: 1, ChargersPerStation: 1, ReportsPerCharger: 1, UpProbability: 0.5, GapProbability: 0, MaxSegment: math.MaxUint64}).Generate(&buf); err == nil {
		t.Fatalf("expected max segment validation error")
	}
}
