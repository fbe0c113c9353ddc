package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/gridwatt/stationuptime/core/metrics"
)

// PromSink exposes computation results as Prometheus metrics.
type PromSink struct {
	runs    prometheus.Counter
	uptime  *prometheus.GaugeVec
	fleet   prometheus.Gauge
	kept    prometheus.Counter
	dropped prometheus.Counter
	lastRun prometheus.Gauge
	parses  prometheus.Counter
}

// NewPromSink registers uptime metrics on the default Prometheus registerer.
// The metrics server is started separately with StartPromServer.
func NewPromSink() (coremetrics.Sink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (coremetrics.Sink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	runs := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "uptime_runs_total",
		Help: "Total number of uptime computation runs",
	})
	uptime := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "station_uptime_percent",
		Help: "Uptime percentage per station from the latest run",
	}, []string{"station_id"})
	fleet := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "fleet_stations_total",
		Help: "Number of declared stations in the latest run",
	})
	kept := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "availability_reports_kept_total",
		Help: "Availability reports accepted across all runs",
	})
	dropped := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "availability_reports_dropped_total",
		Help: "Availability reports discarded for undeclared chargers",
	})
	lastRun := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "uptime_last_run_timestamp_seconds",
		Help: "Completion time of the latest run",
	})
	parses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "report_file_parses_total",
		Help: "Input files parsed across all runs",
	})

	s := &PromSink{runs: runs, uptime: uptime, fleet: fleet, kept: kept, dropped: dropped, lastRun: lastRun, parses: parses}
	collectors := []prometheus.Collector{runs, uptime, fleet, kept, dropped, lastRun, parses}
	for i, c := range collectors {
		if err := reg.Register(c); err != nil {
			are, ok := err.(prometheus.AlreadyRegisteredError)
			if !ok {
				return nil, err
			}
			switch i {
			case 0:
				s.runs = are.ExistingCollector.(prometheus.Counter)
			case 1:
				s.uptime = are.ExistingCollector.(*prometheus.GaugeVec)
			case 2:
				s.fleet = are.ExistingCollector.(prometheus.Gauge)
			case 3:
				s.kept = are.ExistingCollector.(prometheus.Counter)
			case 4:
				s.dropped = are.ExistingCollector.(prometheus.Counter)
			case 5:
				s.lastRun = are.ExistingCollector.(prometheus.Gauge)
			case 6:
				s.parses = are.ExistingCollector.(prometheus.Counter)
			}
		}
	}
	return s, nil
}

// RecordRun updates the run-level counters and gauges.
func (s *PromSink) RecordRun(ev coremetrics.RunEvent) error {
	s.runs.Inc()
	s.fleet.Set(float64(ev.Stations))
	s.lastRun.Set(float64(ev.Time.Unix()))
	return nil
}

// RecordParse updates the parse-level counters.
func (s *PromSink) RecordParse(ev coremetrics.ParseEvent) error {
	s.parses.Inc()
	s.kept.Add(float64(ev.ReportsKept))
	s.dropped.Add(float64(ev.ReportsDropped))
	return nil
}

// RecordStationUptimes sets the per-station gauge for the latest run.
func (s *PromSink) RecordStationUptimes(evs []coremetrics.StationUptimeEvent) error {
	for _, ev := range evs {
		s.uptime.WithLabelValues(strconv.FormatUint(uint64(ev.Station), 10)).Set(float64(ev.Percent))
	}
	return nil
}
