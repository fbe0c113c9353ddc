// Package export renders computed uptime results in the supported output
// formats.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/gridwatt/stationuptime/core/model"
)

// WriteText writes the canonical output: one "<station_id> <percent>" line
// per station, in the order given (callers pass ascending station ID).
func WriteText(w io.Writer, results []model.StationUptime) error {
	for _, r := range results {
		if _, err := fmt.Fprintf(w, "%d %d\n", r.Station, r.Percent); err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON writes the full report to w in JSON format.
func WriteJSON(w io.Writer, report *model.UptimeReport) error {
	enc := json.NewEncoder(w)
	return enc.Encode(report)
}

// WriteCSV writes the results to w in CSV format with a header row.
func WriteCSV(w io.Writer, results []model.StationUptime) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"station_id", "uptime_percent"}); err != nil {
		return err
	}
	for _, r := range results {
		rec := []string{
			strconv.FormatUint(uint64(r.Station), 10),
			strconv.Itoa(r.Percent),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
