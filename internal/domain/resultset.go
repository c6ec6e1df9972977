package domain

import (
	"fmt"

	"github.com/nwgo/networth-simulator/pkg/money"
)

// Named series carried by every ResultSet.
const (
	SeriesLiquidWealth        = "liquid_wealth"
	SeriesPensionWealth       = "pension_wealth"
	SeriesPropertyValue       = "property_value"
	SeriesMortgageBalance     = "mortgage_balance"
	SeriesNetWorth            = "net_worth"
	SeriesInflationRates      = "inflation_rates"
	SeriesCumulativeInflation = "cumulative_inflation"
)

// SeriesNames lists the closed set of series in a stable order.
func SeriesNames() []string {
	return []string{
		SeriesLiquidWealth,
		SeriesPensionWealth,
		SeriesPropertyValue,
		SeriesMortgageBalance,
		SeriesNetWorth,
		SeriesInflationRates,
		SeriesCumulativeInflation,
	}
}

// ResultSet holds the raw per-path, per-year output of a run. Every series
// is shaped [NumSimulations][HorizonYears+1]; column 0 is the starting
// snapshot. Once the run completes the set is immutable.
//
// Invariant: NetWorth[p][y] = LiquidWealth[p][y] + PensionWealth[p][y] +
// PropertyValue[p][y] − MortgageBalance[p][y] for every path p and year y.
type ResultSet struct {
	NumSimulations int   `json:"n_simulations"`
	HorizonYears   int   `json:"horizon_years"`
	Seed           int64 `json:"seed"`

	LiquidWealth    [][]float64 `json:"liquid_wealth"`
	PensionWealth   [][]float64 `json:"pension_wealth"`
	PropertyValue   [][]float64 `json:"property_value"`
	MortgageBalance [][]float64 `json:"mortgage_balance"`
	NetWorth        [][]float64 `json:"net_worth"`
	// InflationRates records each year's inflation draw (0 at year 0).
	InflationRates [][]float64 `json:"inflation_rates"`
	// CumulativeInflation records the running factor ∏(1+draw) (1 at year 0);
	// the real view divides nominal series by it.
	CumulativeInflation [][]float64 `json:"cumulative_inflation"`

	// Events is the scenario's event list, passed through unmodified so
	// consumers can annotate charts and reports.
	Events []Event `json:"events,omitempty"`
	// Currency is display metadata passed through from the scenario.
	Currency money.Currency `json:"currency"`
	// Messages carries non-fatal diagnostics, deduplicated by year and code.
	Messages []Message `json:"messages,omitempty"`
}

// NewResultSet allocates a zeroed result set for the given dimensions.
func NewResultSet(nSimulations, horizonYears int) *ResultSet {
	return &ResultSet{
		NumSimulations:      nSimulations,
		HorizonYears:        horizonYears,
		LiquidWealth:        makeSeries(nSimulations, horizonYears+1),
		PensionWealth:       makeSeries(nSimulations, horizonYears+1),
		PropertyValue:       makeSeries(nSimulations, horizonYears+1),
		MortgageBalance:     makeSeries(nSimulations, horizonYears+1),
		NetWorth:            makeSeries(nSimulations, horizonYears+1),
		InflationRates:      makeSeries(nSimulations, horizonYears+1),
		CumulativeInflation: makeSeries(nSimulations, horizonYears+1),
	}
}

// Years is the number of recorded columns, HorizonYears+1.
func (rs *ResultSet) Years() int {
	return rs.HorizonYears + 1
}

// Series resolves a series by name. The set is closed; unknown names are an
// error, not an empty result.
func (rs *ResultSet) Series(name string) ([][]float64, error) {
	switch name {
	case SeriesLiquidWealth:
		return rs.LiquidWealth, nil
	case SeriesPensionWealth:
		return rs.PensionWealth, nil
	case SeriesPropertyValue:
		return rs.PropertyValue, nil
	case SeriesMortgageBalance:
		return rs.MortgageBalance, nil
	case SeriesNetWorth:
		return rs.NetWorth, nil
	case SeriesInflationRates:
		return rs.InflationRates, nil
	case SeriesCumulativeInflation:
		return rs.CumulativeInflation, nil
	}
	return nil, fmt.Errorf("unknown series %q", name)
}

// makeSeries allocates rows over one contiguous backing slice.
func makeSeries(rows, cols int) [][]float64 {
	backing := make([]float64, rows*cols)
	s := make([][]float64, rows)
	for i := range s {
		s[i] = backing[i*cols : (i+1)*cols : (i+1)*cols]
	}
	return s
}
