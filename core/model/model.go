package model

import "time"

// StationID identifies a charging station.
type StationID uint32

// ChargerID identifies an individual charger. A charger belongs to exactly
// one station.
type ChargerID uint32

// Timestamp is an opaque, monotonically ordered instant. No unit is assumed;
// only differences and ordering are meaningful.
type Timestamp uint64

// Interval is a half-open time range [Start, End) with Start <= End.
type Interval struct {
	Start Timestamp
	End   Timestamp
}

// Length returns the covered time, End - Start.
func (iv Interval) Length() uint64 {
	return uint64(iv.End - iv.Start)
}

// AvailabilityReport states that a charger was up or down during [Start, End).
type AvailabilityReport struct {
	Charger  ChargerID
	Interval Interval
	Up       bool
}

// Fleet is the fully validated, resolved input to the uptime computation.
// Reports referencing chargers that are not declared under any station have
// already been discarded.
type Fleet struct {
	// StationIDs lists every declared station in ascending order, with no
	// duplicates. It defines the output domain exhaustively: a station with
	// zero reports still appears here.
	StationIDs []StationID

	// ChargerToStation maps each declared charger to its station.
	ChargerToStation map[ChargerID]StationID

	// ReportsByStation holds each station's reports, resolved transitively
	// via the charger mapping. Stations without reports have no entry.
	ReportsByStation map[StationID][]AvailabilityReport
}

// StationUptime is the computed result for a single station.
type StationUptime struct {
	Station StationID `json:"station_id"`
	Percent int       `json:"uptime_percent"`
}

// UptimeReport is the result of one computation run over a fleet.
type UptimeReport struct {
	RunID       string          `json:"run_id"`
	GeneratedAt time.Time       `json:"generated_at"`
	Stations    []StationUptime `json:"stations"`
}
