package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
)

// CSVFormatter exports the net-worth percentile bands, one row per year
// with nominal and real columns side by side.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	header := []string{"year"}
	for _, b := range report.BandsNominal {
		header = append(header, fmt.Sprintf("nominal_p%g", b.Percentile))
	}
	for _, b := range report.BandsReal {
		header = append(header, fmt.Sprintf("real_p%g", b.Percentile))
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for year := 0; year <= report.Summary.HorizonYears; year++ {
		row := []string{strconv.Itoa(year)}
		for _, b := range report.BandsNominal {
			row = append(row, strconv.FormatFloat(b.Values[year], 'f', 2, 64))
		}
		for _, b := range report.BandsReal {
			row = append(row, strconv.FormatFloat(b.Values[year], 'f', 2, 64))
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
