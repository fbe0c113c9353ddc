// Package app wires configuration, parsing, computation and observability
// into the long-running serve mode.
package app

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gridwatt/stationuptime/api/stations"
	"github.com/gridwatt/stationuptime/config"
	coremetrics "github.com/gridwatt/stationuptime/core/metrics"
	"github.com/gridwatt/stationuptime/core/model"
	"github.com/gridwatt/stationuptime/core/reportfile"
	"github.com/gridwatt/stationuptime/core/summary"
	"github.com/gridwatt/stationuptime/core/uptime"
	"github.com/gridwatt/stationuptime/infra/logger"
	"github.com/gridwatt/stationuptime/infra/metrics"
	"github.com/gridwatt/stationuptime/internal/eventbus"
)

// RunResult pairs a computed report with the parse statistics of its run.
type RunResult struct {
	Report   *model.UptimeReport
	Stats    reportfile.Stats
	Duration time.Duration
}

// ComputeReport aggregates a parsed fleet into a report stamped with a fresh
// run ID.
func ComputeReport(fleet *model.Fleet) *model.UptimeReport {
	return &model.UptimeReport{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Stations:    uptime.Results(fleet),
	}
}

// NewSink assembles the metrics sink selected by the configuration. With
// nothing enabled it returns a NopSink.
func NewSink(cfg *config.Config) (coremetrics.Sink, error) {
	var sinks []coremetrics.Sink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink()
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	switch len(sinks) {
	case 0:
		return coremetrics.NopSink{}, nil
	case 1:
		return sinks[0], nil
	default:
		return metrics.NewMultiSink(sinks...), nil
	}
}

// Service holds the latest computed uptime report for a single input file
// and serves it over HTTP.
type Service struct {
	cfg       *config.Config
	inputPath string
	parser    reportfile.Parser
	log       logger.Logger
	sink      coremetrics.Sink
	bus       *eventbus.Bus[RunResult]

	mu     sync.RWMutex
	report *model.UptimeReport
}

// New creates a Service from the configuration and input path.
func New(cfg *config.Config, inputPath string) (*Service, error) {
	sink, err := NewSink(cfg)
	if err != nil {
		return nil, err
	}
	return &Service{
		cfg:       cfg,
		inputPath: inputPath,
		parser:    reportfile.Parser{Policy: reportfile.ConflictPolicy(cfg.Parser.ConflictPolicy)},
		log:       logger.NewWithLevel("service", cfg.Logging.Level),
		sink:      sink,
		bus:       eventbus.New[RunResult](),
	}, nil
}

// Reload re-parses the input file and recomputes all uptimes. On success the
// new report replaces the served one and the run is published to the bus; on
// failure the previous report stays in place.
func (s *Service) Reload() error {
	started := time.Now()
	fleet, stats, err := s.parser.ParseFile(s.inputPath)
	if err != nil {
		return fmt.Errorf("reload %s: %w", s.inputPath, err)
	}
	report := ComputeReport(fleet)
	duration := time.Since(started)

	s.mu.Lock()
	s.report = report
	s.mu.Unlock()

	s.log.Infow("computed fleet uptime", map[string]any{
		"run_id":          report.RunID,
		"stations":        stats.Stations,
		"chargers":        stats.Chargers,
		"reports_kept":    stats.ReportsKept,
		"reports_dropped": stats.ReportsDropped,
		"duration_ms":     duration.Milliseconds(),
	})
	s.bus.Publish(RunResult{Report: report, Stats: stats, Duration: duration})
	return nil
}

// Report returns the latest computed report, or nil before the first run.
func (s *Service) Report() *model.UptimeReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.report
}

// Summary returns the fleet summary for the latest report.
func (s *Service) Summary() summary.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.report == nil {
		return summary.Summary{}
	}
	return summary.Compute(s.report.Stations)
}

// Run performs the initial computation and serves the API until the context
// is canceled.
func (s *Service) Run(ctx context.Context) error {
	sub := s.bus.Subscribe()
	go s.record(sub)

	if err := s.Reload(); err != nil {
		return err
	}

	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.cfg.Server.Port),
		Handler: stations.NewHandler(s, s.cfg.Server.AuthToken),
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("api shutdown: %v", err)
		}
	}()

	s.log.Infof("serving station uptime API on :%d", s.cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// record forwards published runs to the metrics sink.
func (s *Service) record(sub <-chan RunResult) {
	for res := range sub {
		if err := Record(s.sink, res); err != nil {
			s.log.Errorf("record run: %v", err)
		}
	}
}

// Record translates one run into metrics events and hands them to the sink.
func Record(sink coremetrics.Sink, res RunResult) error {
	ev := coremetrics.RunEvent{
		RunID:          res.Report.RunID,
		Time:           res.Report.GeneratedAt,
		Stations:       res.Stats.Stations,
		Chargers:       res.Stats.Chargers,
		ReportsKept:    res.Stats.ReportsKept,
		ReportsDropped: res.Stats.ReportsDropped,
		Duration:       res.Duration,
	}
	if err := sink.RecordRun(ev); err != nil {
		return err
	}
	if pr, ok := sink.(coremetrics.ParseRecorder); ok {
		pev := coremetrics.ParseEvent{
			RunID:          res.Report.RunID,
			Stations:       res.Stats.Stations,
			Chargers:       res.Stats.Chargers,
			ReportsKept:    res.Stats.ReportsKept,
			ReportsDropped: res.Stats.ReportsDropped,
		}
		if err := pr.RecordParse(pev); err != nil {
			return err
		}
	}
	evs := make([]coremetrics.StationUptimeEvent, len(res.Report.Stations))
	for i, st := range res.Report.Stations {
		evs[i] = coremetrics.StationUptimeEvent{RunID: res.Report.RunID, Station: st.Station, Percent: st.Percent}
	}
	return sink.RecordStationUptimes(evs)
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.bus.Close()
	return nil
}
