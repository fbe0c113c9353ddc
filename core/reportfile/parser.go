// Package reportfile parses and validates charger availability report files.
//
// The format is line oriented, with two sections:
//
//	[Stations]
//	<StationID> <ChargerID> ...
//	[Charger Availability Reports]
//	<ChargerID> <start> <end> <up>
//
// Section headers are case-insensitive and blank lines are skipped. Every
// structural problem is reported as a *ParseError carrying the offending
// line; the computation core never sees malformed data.
package reportfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/gridwatt/stationuptime/core/model"
)

// ConflictPolicy selects how a charger declared under more than one station
// is handled.
type ConflictPolicy string

const (
	// ConflictReject treats a reassigned charger as a hard error.
	ConflictReject ConflictPolicy = "reject"
	// ConflictLastWins lets the most recent declaration overwrite the
	// charger's station mapping.
	ConflictLastWins ConflictPolicy = "last-wins"
)

// Valid reports whether the policy is one of the known values.
func (p ConflictPolicy) Valid() bool {
	return p == ConflictReject || p == ConflictLastWins
}

// ParseError describes a malformed input line.
type ParseError struct {
	Line int    // 1-based line number
	Text string // offending line, trimmed
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Msg, e.Text)
}

// Stats counts what a parse run accepted and discarded.
type Stats struct {
	Stations       int
	Chargers       int
	ReportsKept    int
	ReportsDropped int // reports for chargers not declared under any station
}

// Parser holds parse options. The zero value uses ConflictReject.
type Parser struct {
	Policy ConflictPolicy
}

type section int

const (
	sectionNone section = iota
	sectionStations
	sectionReports
)

const (
	headerStations = "[stations]"
	headerReports  = "[charger availability reports]"
)

// ParseFile opens path and parses it.
func (p Parser) ParseFile(path string) (*model.Fleet, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("open input file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return p.Parse(f)
}

// Parse reads the report file from r and returns the resolved fleet. Reports
// referencing undeclared chargers are counted in Stats.ReportsDropped and
// excluded from the result.
func (p Parser) Parse(r io.Reader) (*model.Fleet, Stats, error) {
	policy := p.Policy
	if policy == "" {
		policy = ConflictReject
	}
	if !policy.Valid() {
		return nil, Stats{}, fmt.Errorf("unknown conflict policy %q", policy)
	}

	fleet := &model.Fleet{
		ChargerToStation: make(map[model.ChargerID]model.StationID),
		ReportsByStation: make(map[model.StationID][]model.AvailabilityReport),
	}
	stationSeen := make(map[model.StationID]bool)
	var stats Stats

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	cur := sectionNone
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			switch strings.ToLower(line) {
			case headerStations:
				cur = sectionStations
			case headerReports:
				cur = sectionReports
			default:
				return nil, stats, &ParseError{Line: lineNo, Text: line, Msg: "unknown section header"}
			}
			continue
		}

		switch cur {
		case sectionStations:
			if err := p.parseStationLine(line, lineNo, policy, fleet, stationSeen); err != nil {
				return nil, stats, err
			}
		case sectionReports:
			if err := parseReportLine(line, lineNo, fleet, &stats); err != nil {
				return nil, stats, err
			}
		default:
			return nil, stats, &ParseError{Line: lineNo, Text: line, Msg: "content outside of a known section"}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, stats, fmt.Errorf("read input: %w", err)
	}

	fleet.StationIDs = make([]model.StationID, 0, len(stationSeen))
	for id := range stationSeen {
		fleet.StationIDs = append(fleet.StationIDs, id)
	}
	sort.Slice(fleet.StationIDs, func(i, j int) bool { return fleet.StationIDs[i] < fleet.StationIDs[j] })

	stats.Stations = len(fleet.StationIDs)
	stats.Chargers = len(fleet.ChargerToStation)
	return fleet, stats, nil
}

func (p Parser) parseStationLine(line string, lineNo int, policy ConflictPolicy, fleet *model.Fleet, seen map[model.StationID]bool) error {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return &ParseError{Line: lineNo, Text: line, Msg: "station line needs a station ID and at least one charger ID"}
	}

	stationID, err := parseStationID(fields[0])
	if err != nil {
		return &ParseError{Line: lineNo, Text: line, Msg: "non-integer station ID"}
	}
	if seen[stationID] {
		return &ParseError{Line: lineNo, Text: line, Msg: fmt.Sprintf("duplicate station ID %d", stationID)}
	}
	seen[stationID] = true

	for _, f := range fields[1:] {
		chargerID, err := parseChargerID(f)
		if err != nil {
			return &ParseError{Line: lineNo, Text: line, Msg: "non-integer charger ID"}
		}
		if _, ok := fleet.ChargerToStation[chargerID]; ok && policy == ConflictReject {
			return &ParseError{Line: lineNo, Text: line, Msg: fmt.Sprintf("charger %d assigned to multiple stations", chargerID)}
		}
		fleet.ChargerToStation[chargerID] = stationID
	}
	return nil
}

func parseReportLine(line string, lineNo int, fleet *model.Fleet, stats *Stats) error {
	fields := strings.Fields(line)
	if len(fields) != 4 {
		return &ParseError{Line: lineNo, Text: line, Msg: "report line needs exactly 4 fields"}
	}

	chargerID, err := parseChargerID(fields[0])
	if err != nil {
		return &ParseError{Line: lineNo, Text: line, Msg: "non-integer charger ID"}
	}
	start, err := parseTimestamp(fields[1])
	if err != nil {
		return &ParseError{Line: lineNo, Text: line, Msg: "non-integer start time"}
	}
	end, err := parseTimestamp(fields[2])
	if err != nil {
		return &ParseError{Line: lineNo, Text: line, Msg: "non-integer end time"}
	}
	if end < start {
		return &ParseError{Line: lineNo, Text: line, Msg: "end time before start time"}
	}

	var up bool
	switch strings.ToLower(fields[3]) {
	case "true":
		up = true
	case "false":
		up = false
	default:
		return &ParseError{Line: lineNo, Text: line, Msg: "up/down value must be true or false"}
	}

	stationID, ok := fleet.ChargerToStation[chargerID]
	if !ok {
		// Not an error: reports for undeclared chargers are discarded.
		stats.ReportsDropped++
		return nil
	}

	fleet.ReportsByStation[stationID] = append(fleet.ReportsByStation[stationID], model.AvailabilityReport{
		Charger:  chargerID,
		Interval: model.Interval{Start: start, End: end},
		Up:       up,
	})
	stats.ReportsKept++
	return nil
}

func parseStationID(s string) (model.StationID, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	return model.StationID(v), err
}

func parseChargerID(s string) (model.ChargerID, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	return model.ChargerID(v), err
}

func parseTimestamp(s string) (model.Timestamp, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	return model.Timestamp(v), err
}
