// Package metrics defines the events emitted by uptime computation runs and
// the sink interface observability adapters implement.
package metrics

import (
	"time"

	"github.com/gridwatt/stationuptime/core/model"
)

// RunEvent summarizes one completed computation run over a fleet.
type RunEvent struct {
	RunID          string
	Time           time.Time
	Stations       int
	Chargers       int
	ReportsKept    int
	ReportsDropped int
	Duration       time.Duration
}

// StationUptimeEvent carries the computed percentage for a single station.
type StationUptimeEvent struct {
	RunID   string
	Station model.StationID
	Percent int
}

// ParseEvent carries the input statistics of one parse of a report file.
type ParseEvent struct {
	RunID          string
	Stations       int
	Chargers       int
	ReportsKept    int
	ReportsDropped int
}

// Sink records computation results for observability purposes.
type Sink interface {
	RecordRun(ev RunEvent) error
	RecordStationUptimes(evs []StationUptimeEvent) error
}

// ParseRecorder is an optional Sink capability for parse-level statistics.
// Callers probe for it with a type assertion; sinks without it simply miss
// parse events.
type ParseRecorder interface {
	RecordParse(ev ParseEvent) error
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) RecordRun(RunEvent) error { return nil }

func (NopSink) RecordStationUptimes([]StationUptimeEvent) error { return nil }
