package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	coremetrics "github.com/gridwatt/stationuptime/core/metrics"
)

func TestPromSinkRecords(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("new sink: %v", err)
	}

	ev := coremetrics.RunEvent{
		RunID:    "r1",
		Time:     time.Unix(1000, 0),
		Stations: 3,
	}
	if err := sink.RecordRun(ev); err != nil {
		t.Fatalf("record run: %v", err)
	}
	pr, ok := sink.(coremetrics.ParseRecorder)
	if !ok {
		t.Fatalf("PromSink must record parse statistics")
	}
	if err := pr.RecordParse(coremetrics.ParseEvent{RunID: "r1", Stations: 3, Chargers: 4, ReportsKept: 10, ReportsDropped: 2}); err != nil {
		t.Fatalf("record parse: %v", err)
	}
	if err := sink.RecordStationUptimes([]coremetrics.StationUptimeEvent{
		{RunID: "r1", Station: 0, Percent: 100},
		{RunID: "r1", Station: 1, Percent: 0},
	}); err != nil {
		t.Fatalf("record stations: %v", err)
	}

	ps := sink.(*PromSink)
	if got := testutil.ToFloat64(ps.fleet); got != 3 {
		t.Fatalf("fleet gauge: got %v", got)
	}
	if got := testutil.ToFloat64(ps.parses); got != 1 {
		t.Fatalf("parses counter: got %v", got)
	}
	if got := testutil.ToFloat64(ps.kept); got != 10 {
		t.Fatalf("kept counter: got %v", got)
	}
	if got := testutil.ToFloat64(ps.dropped); got != 2 {
		t.Fatalf("dropped counter: got %v", got)
	}
	if got := testutil.ToFloat64(ps.uptime.WithLabelValues("0")); got != 100 {
		t.Fatalf("uptime gauge station 0: got %v", got)
	}
	if got := testutil.ToFloat64(ps.uptime.WithLabelValues("1")); got != 0 {
		t.Fatalf("uptime gauge station 1: got %v", got)
	}
}

func TestPromSinkDoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPromSinkWithRegistry(reg); err != nil {
		t.Fatalf("first: %v", err)
	}
	if _, err := NewPromSinkWithRegistry(reg); err != nil {
		t.Fatalf("second registration should reuse collectors: %v", err)
	}
}
