// Package generator produces synthetic charger availability report files for
// testing and benchmarking.
package generator

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"math/rand"
)

// Config controls the shape of the generated fleet.
type Config struct {
	Stations           int `json:"stations"`
	ChargersPerStation int `json:"chargers_per_station"`
	ReportsPerCharger  int `json:"reports_per_charger"`

	// UpProbability is the chance that any generated report is flagged up.
	UpProbability float64 `json:"up_probability"`
	// GapProbability is the chance that consecutive reports for a charger
	// leave an unreported gap between them.
	GapProbability float64 `json:"gap_probability"`
	// MaxSegment bounds the length of a single report interval.
	MaxSegment uint64 `json:"max_segment"`

	Seed int64 `json:"seed"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Stations == 0 {
		c.Stations = 10
	}
	if c.ChargersPerStation == 0 {
		c.ChargersPerStation = 3
	}
	if c.ReportsPerCharger == 0 {
		c.ReportsPerCharger = 20
	}
	if c.UpProbability == 0 {
		c.UpProbability = 0.9
	}
	if c.GapProbability == 0 {
		c.GapProbability = 0.05
	}
	if c.MaxSegment == 0 {
		c.MaxSegment = 10000
	}
}

// Validate checks the configuration ranges.
func (c Config) Validate() error {
	if c.Stations < 1 || c.ChargersPerStation < 1 || c.ReportsPerCharger < 1 {
		return fmt.Errorf("stations, chargers and reports must be positive")
	}
	if c.UpProbability < 0 || c.UpProbability > 1 {
		return fmt.Errorf("up probability must be in [0,1]")
	}
	if c.GapProbability < 0 || c.GapProbability > 1 {
		return fmt.Errorf("gap probability must be in [0,1]")
	}
	// The upper bound keeps the uint64 value usable with rand.Int63n.
	if c.MaxSegment < 1 || c.MaxSegment > math.MaxInt64 {
		return fmt.Errorf("max segment must be in [1, %d]", uint64(math.MaxInt64))
	}
	return nil
}

// Generator writes synthetic report files. Output is deterministic for a
// fixed seed.
type Generator struct {
	cfg  Config
	rand *rand.Rand
}

// New creates a Generator for the given configuration.
func New(cfg Config) *Generator {
	return &Generator{cfg: cfg, rand: rand.New(rand.NewSource(cfg.Seed))}
}

// Generate writes a complete, valid report file to w.
func (g *Generator) Generate(w io.Writer) error {
	if err := g.cfg.Validate(); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)

	type station struct {
		id       uint32
		chargers []uint32
	}
	stations := make([]station, g.cfg.Stations)
	stationID := uint32(0)
	chargerID := uint32(1000)
	for i := range stations {
		stationID += 1 + uint32(g.rand.Intn(3))
		st := station{id: stationID}
		for j := 0; j < g.cfg.ChargersPerStation; j++ {
			chargerID++
			st.chargers = append(st.chargers, chargerID)
		}
		stations[i] = st
	}

	if _, err := fmt.Fprintln(bw, "[Stations]"); err != nil {
		return err
	}
	for _, st := range stations {
		if _, err := fmt.Fprintf(bw, "%d", st.id); err != nil {
			return err
		}
		for _, c := range st.chargers {
			if _, err := fmt.Fprintf(bw, " %d", c); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(bw); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(bw, "[Charger Availability Reports]"); err != nil {
		return err
	}
	for _, st := range stations {
		for _, c := range st.chargers {
			t := uint64(g.rand.Intn(1000))
			for r := 0; r < g.cfg.ReportsPerCharger; r++ {
				if g.rand.Float64() < g.cfg.GapProbability {
					t += 1 + uint64(g.rand.Int63n(int64(g.cfg.MaxSegment)))
				}
				end := t + 1 + uint64(g.rand.Int63n(int64(g.cfg.MaxSegment)))
				up := g.rand.Float64() < g.cfg.UpProbability
				if _, err := fmt.Fprintf(bw, "%d %d %d %t\n", c, t, end, up); err != nil {
					return err
				}
				t = end
			}
		}
	}
	return bw.Flush()
}
