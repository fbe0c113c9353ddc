package metrics

import coremetrics "github.com/gridwatt/stationuptime/core/metrics"

// MultiSink fans events out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordRun forwards the event to all sinks, returning the first error
// encountered.
func (m *MultiSink) RecordRun(ev coremetrics.RunEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordRun(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordStationUptimes forwards per-station events to all sinks.
func (m *MultiSink) RecordStationUptimes(evs []coremetrics.StationUptimeEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordStationUptimes(evs); err != nil {
			return err
		}
	}
	return nil
}

// RecordParse forwards the event to every sink implementing ParseRecorder.
// Sinks without the capability are skipped.
func (m *MultiSink) RecordParse(ev coremetrics.ParseEvent) error {
	for _, s := range m.Sinks {
		pr, ok := s.(coremetrics.ParseRecorder)
		if !ok {
			continue
		}
		if err := pr.RecordParse(ev); err != nil {
			return err
		}
	}
	return nil
}
