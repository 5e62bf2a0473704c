package main

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"

	"github.com/viant/sqlite-cone/sky"
)

var csvHeader = []string{"source_id", "ra", "dec", "r", "pmra", "pmdec"}

// writeStars writes stars as CSV with a header row. Missing values are
// written as empty fields.
func writeStars(w io.Writer, stars []sky.Star) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, s := range stars {
		record := []string{
			strconv.FormatInt(s.SourceID, 10),
			formatFloat(s.RA),
			formatFloat(s.Dec),
			formatFloat(s.Distance),
			formatFloat(s.PMRA),
			formatFloat(s.PMDec),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
