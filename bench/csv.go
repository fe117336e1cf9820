package bench

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

var csvHeader = []string{
	"case", "method", "cities", "ants", "iterations", "runs",
	"computed", "wins",
	"length_best", "length_mean", "length_std",
	"time_best_ms", "time_mean_ms", "time_std_ms",
}

// WriteCSV writes records with a header row.
func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.Case,
			string(r.Method),
			itoa(r.Cities),
			itoa(r.Ants),
			itoa(r.Iterations),
			itoa(r.Runs),

			itoa(r.Computed),
			itoa(r.Wins),

			ftoa(r.LengthBest),
			ftoa(r.LengthMean),
			ftoa(r.LengthStd),

			ftoa(r.TimeBestMs),
			ftoa(r.TimeMeanMs),
			ftoa(r.TimeStdMs),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile creates path, including missing parent directories, and
// writes records to it.
func WriteCSVFile(path string, records []Record) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err = os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("bench: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("bench: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return WriteCSV(f, records)
}

func itoa(v int) string { return strconv.Itoa(v) }

func ftoa(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }
