package output

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/nwgo/networth-simulator/internal/domain"
	"github.com/nwgo/networth-simulator/internal/simulation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testReport runs a small deterministic scenario and wraps it in a Report.
func testReport(t *testing.T) *Report {
	t.Helper()
	seed := int64(424242)
	sc := &domain.ScenarioConfig{
		StartingAge:          40,
		RetirementAge:        60,
		EndAge:               70,
		StartingLiquidWealth: decimal.NewFromInt(100000),
		Property: &domain.PropertyState{
			Value:           decimal.NewFromInt(250000),
			MortgageBalance: decimal.NewFromInt(100000),
			InterestRate:    0.04,
			TermYears:       15,
		},
		Assumptions: domain.Assumptions{
			ExpectedReturn:      0.05,
			ReturnVolatility:    0.1,
			InflationMean:       0.02,
			InflationVolatility: 0.005,
		},
		Events: []domain.Event{
			{Year: 3, Kind: domain.EventPropertySale, Name: "sell up", SalePrice: decimal.NewFromInt(85000)},
		},
		NumSimulations: 25,
		RandomSeed:     &seed,
		Currency:       "EUR",
	}
	rs, err := simulation.NewEngine().Run(context.Background(), sc)
	require.NoError(t, err)

	report, err := NewReport(rs)
	require.NoError(t, err)
	return report
}

func TestNewReport(t *testing.T) {
	report := testReport(t)

	assert.Equal(t, 25, report.Summary.NumSimulations)
	assert.Equal(t, 30, report.Summary.HorizonYears)
	require.Len(t, report.BandsNominal, len(simulation.DefaultPercentiles))
	require.Len(t, report.BandsReal, len(simulation.DefaultPercentiles))
	require.NotNil(t, report.Results)

	// The forced underwater sale shows up as a warning.
	assert.Positive(t, report.Summary.Warnings)
}

func TestGetFormatterByName(t *testing.T) {
	cases := []struct {
		query string
		want  string
	}{
		{"console", "console"},
		{"Console", "console"},
		{"text", "console"},
		{"terminal", "console"},
		{"json", "json"},
		{" json-full ", "json"},
		{"csv", "csv"},
		{"bands", "csv"},
		{"html", "html"},
		{"web", "html"},
		{"arrow", "arrow"},
		{"feather", "arrow"},
		{"ipc", "arrow"},
	}
	for _, tc := range cases {
		f := GetFormatterByName(tc.query)
		require.NotNil(t, f, "no formatter for %q", tc.query)
		assert.Equal(t, tc.want, f.Name())
	}

	assert.Nil(t, GetFormatterByName("pdf"))
}

func TestAvailableNames(t *testing.T) {
	names := AvailableFormatterNames()
	assert.Equal(t, []string{"arrow", "console", "csv", "html", "json"}, names)
	assert.Contains(t, AvailableFormatAliases(), "feather")
}

func TestFormatterFunc(t *testing.T) {
	ff := FormatterFunc{ID: "probe", F: func(r *Report) ([]byte, error) {
		return []byte("ok"), nil
	}}
	assert.Equal(t, "probe", ff.Name())
	data, err := ff.Format(nil)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(data))
}

func TestGenerateReport(t *testing.T) {
	report := testReport(t)
	dir := t.TempDir()

	path, err := GenerateReport(report, "console", dir)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".txt"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "NET WORTH SIMULATION SUMMARY")

	_, err = GenerateReport(report, "pdf", dir)
	require.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Contains(t, err.Error(), "console")
}
