package simulation

import (
	"fmt"
	"math"
	"sort"

	"github.com/nwgo/networth-simulator/internal/domain"
)

// DefaultPercentiles are the thresholds reports use when none are given.
var DefaultPercentiles = []float64{10, 25, 50, 75, 90}

// ViewKind selects between nominal amounts and amounts deflated into
// constant starting-year money.
type ViewKind string

const (
	ViewNominal ViewKind = "nominal"
	ViewReal    ViewKind = "real"
)

// IsValid reports whether the view kind is one the aggregator knows.
func (v ViewKind) IsValid() bool {
	return v == ViewNominal || v == ViewReal
}

// Band is one percentile's trajectory across the horizon.
type Band struct {
	Percentile float64   `json:"percentile"`
	Values     []float64 `json:"values"`
}

// PercentileRanges is the spread of a series at a single year.
type PercentileRanges struct {
	P10 float64 `json:"p10"`
	P25 float64 `json:"p25"`
	P50 float64 `json:"p50"`
	P75 float64 `json:"p75"`
	P90 float64 `json:"p90"`
}

// Bands computes per-year percentile trajectories for the named series.
// Percentiles default to DefaultPercentiles; each must lie in [0, 100].
// The ResultSet is only read.
func Bands(rs *domain.ResultSet, series string, percentiles []float64) ([]Band, error) {
	return BandsView(rs, series, ViewNominal, percentiles)
}

// BandsView computes percentile trajectories under the requested view.
func BandsView(rs *domain.ResultSet, series string, view ViewKind, percentiles []float64) ([]Band, error) {
	data, err := SeriesView(rs, series, view)
	if err != nil {
		return nil, err
	}
	if len(percentiles) == 0 {
		percentiles = DefaultPercentiles
	}
	for _, p := range percentiles {
		if p < 0 || p > 100 {
			return nil, fmt.Errorf("percentile %g outside [0, 100]", p)
		}
	}

	years := rs.Years()
	bands := make([]Band, len(percentiles))
	for i, p := range percentiles {
		bands[i] = Band{Percentile: p, Values: make([]float64, years)}
	}

	column := make([]float64, rs.NumSimulations)
	for year := 0; year < years; year++ {
		for path := 0; path < rs.NumSimulations; path++ {
			column[path] = data[path][year]
		}
		sort.Float64s(column)
		for i, p := range percentiles {
			bands[i].Values[year] = percentileSorted(column, p)
		}
	}
	return bands, nil
}

// RealSeries deflates a nominal money series by each path's cumulative
// inflation factor, giving values in constant starting-year money. The
// rate series cannot be deflated.
func RealSeries(rs *domain.ResultSet, series string) ([][]float64, error) {
	if series == domain.SeriesInflationRates || series == domain.SeriesCumulativeInflation {
		return nil, fmt.Errorf("series %q is a rate, not a money amount", series)
	}
	data, err := rs.Series(series)
	if err != nil {
		return nil, err
	}
	out := make([][]float64, rs.NumSimulations)
	for path := range data {
		row := make([]float64, rs.Years())
		for year := range row {
			row[year] = data[path][year] / rs.CumulativeInflation[path][year]
		}
		out[path] = row
	}
	return out, nil
}

// SeriesView returns the named series under the requested view.
func SeriesView(rs *domain.ResultSet, series string, view ViewKind) ([][]float64, error) {
	switch view {
	case ViewNominal, "":
		return rs.Series(series)
	case ViewReal:
		return RealSeries(rs, series)
	default:
		return nil, fmt.Errorf("unknown view %q", view)
	}
}

// RangesAt computes the standard percentile spread of a series at one year.
func RangesAt(rs *domain.ResultSet, series string, year int) (PercentileRanges, error) {
	data, err := rs.Series(series)
	if err != nil {
		return PercentileRanges{}, err
	}
	if year < 0 || year >= rs.Years() {
		return PercentileRanges{}, fmt.Errorf("year %d outside [0, %d]", year, rs.HorizonYears)
	}
	column := make([]float64, rs.NumSimulations)
	for path := 0; path < rs.NumSimulations; path++ {
		column[path] = data[path][year]
	}
	return rangesOf(column), nil
}

// RunSummary condenses a completed run for console output and persistence.
type RunSummary struct {
	NumSimulations int   `json:"n_simulations"`
	HorizonYears   int   `json:"horizon_years"`
	Seed           int64 `json:"seed"`

	FinalNetWorth     PercentileRanges `json:"final_net_worth"`
	FinalNetWorthReal PercentileRanges `json:"final_net_worth_real"`

	MedianFinalNetWorth float64 `json:"median_final_net_worth"`

	// InsolvencyRate is the fraction of paths whose liquid wealth went
	// negative in at least one year.
	InsolvencyRate float64 `json:"insolvency_rate"`

	Warnings int `json:"warnings"`
}

// Summarize reduces a ResultSet to its headline numbers.
func Summarize(rs *domain.ResultSet) RunSummary {
	final := rs.HorizonYears
	nominal := make([]float64, rs.NumSimulations)
	deflated := make([]float64, rs.NumSimulations)
	insolvent := 0
	for path := 0; path < rs.NumSimulations; path++ {
		nominal[path] = rs.NetWorth[path][final]
		deflated[path] = rs.NetWorth[path][final] / rs.CumulativeInflation[path][final]
		for _, liquid := range rs.LiquidWealth[path] {
			if liquid < 0 {
				insolvent++
				break
			}
		}
	}

	warnings := 0
	for _, m := range rs.Messages {
		if m.Level == domain.LevelWarning {
			warnings++
		}
	}

	summary := RunSummary{
		NumSimulations:    rs.NumSimulations,
		HorizonYears:      rs.HorizonYears,
		Seed:              rs.Seed,
		FinalNetWorth:     rangesOf(nominal),
		FinalNetWorthReal: rangesOf(deflated),
		InsolvencyRate:    float64(insolvent) / float64(rs.NumSimulations),
		Warnings:          warnings,
	}
	summary.MedianFinalNetWorth = summary.FinalNetWorth.P50
	return summary
}

// rangesOf sorts a copy of the column and reads the standard percentiles.
func rangesOf(column []float64) PercentileRanges {
	sorted := append([]float64(nil), column...)
	sort.Float64s(sorted)
	return PercentileRanges{
		P10: percentileSorted(sorted, 10),
		P25: percentileSorted(sorted, 25),
		P50: percentileSorted(sorted, 50),
		P75: percentileSorted(sorted, 75),
		P90: percentileSorted(sorted, 90),
	}
}

// percentileSorted reads the p-th percentile from an ascending column by
// linear interpolation between order statistics.
func percentileSorted(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if n == 1 {
		return sorted[0]
	}
	rank := p / 100 * float64(n-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if hi >= n {
		hi = n - 1
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}
