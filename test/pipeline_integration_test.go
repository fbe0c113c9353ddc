package test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridwatt/stationuptime/core/generator"
	"github.com/gridwatt/stationuptime/core/reportfile"
	"github.com/gridwatt/stationuptime/core/summary"
	"github.com/gridwatt/stationuptime/core/uptime"
	"github.com/gridwatt/stationuptime/pkg/export"
)

const fixture = `[Stations]
0 1001 1002
1 1003
2 1004

[Charger Availability Reports]
1001 0 50000 true
1001 50000 100000 true
1002 50000 100000 true
1003 25000 75000 false
`

// The fixture exercises the three canonical cases: a fully covered window, a
// down-only window and a station with no reports at all.
func TestPipelineFixture(t *testing.T) {
	fleet, stats, err := reportfile.Parser{}.Parse(strings.NewReader(fixture))
	require.NoError(t, err)
	assert.Equal(t, 4, stats.ReportsKept)

	results := uptime.Results(fleet)

	var buf bytes.Buffer
	require.NoError(t, export.WriteText(&buf, results))
	assert.Equal(t, "0 100\n1 0\n2 0\n", buf.String())

	s := summary.Compute(results)
	assert.Equal(t, 3, s.Stations)
	assert.Equal(t, 1, s.FullyUp)
	assert.Equal(t, 2, s.FullyDown)
}

func TestPipelineGeneratedRoundTrip(t *testing.T) {
	cfg := generator.Config{Seed: 99}
	cfg.SetDefaults()

	var file bytes.Buffer
	require.NoError(t, generator.New(cfg).Generate(&file))

	fleet, stats, err := reportfile.Parser{}.Parse(bytes.NewReader(file.Bytes()))
	require.NoError(t, err)
	require.Equal(t, cfg.Stations, stats.Stations)

	results := uptime.Results(fleet)
	require.Len(t, results, cfg.Stations)
	for _, r := range results {
		assert.GreaterOrEqual(t, r.Percent, 0)
		assert.LessOrEqual(t, r.Percent, 100)
	}

	// Same input, same percentages: the run is deterministic even though
	// run IDs differ.
	again := uptime.Results(fleet)
	assert.Equal(t, results, again)
}

func TestPipelineLastWinsPolicy(t *testing.T) {
	input := "[Stations]\n1 10\n2 10\n[Charger Availability Reports]\n10 0 100 true\n"

	_, _, err := reportfile.Parser{Policy: reportfile.ConflictReject}.Parse(strings.NewReader(input))
	require.Error(t, err)

	fleet, _, err := reportfile.Parser{Policy: reportfile.ConflictLastWins}.Parse(strings.NewReader(input))
	require.NoError(t, err)
	results := uptime.Results(fleet)
	require.Len(t, results, 2)
	assert.Equal(t, 0, results[0].Percent)   // station 1 lost its only charger
	assert.Equal(t, 100, results[1].Percent) // station 2 owns charger 10
}
