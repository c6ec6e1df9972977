package simulation

import (
	"math"
	"testing"

	"github.com/nwgo/networth-simulator/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAssumptions() domain.Assumptions {
	return domain.Assumptions{
		ExpectedReturn:      0.05,
		ReturnVolatility:    0.15,
		InflationMean:       0.02,
		InflationVolatility: 0.01,
	}
}

// TestDrawGeneratorDeterminism verifies that the same seed reproduces the
// same draws and that distinct paths get distinct draws.
func TestDrawGeneratorDeterminism(t *testing.T) {
	a := testAssumptions()

	gen1, err := NewDrawGenerator(a, 10, 30, 42)
	require.NoError(t, err)
	gen2, err := NewDrawGenerator(a, 10, 30, 42)
	require.NoError(t, err)

	for path := 0; path < 10; path++ {
		d1 := gen1.PathDraws(path)
		d2 := gen2.PathDraws(path)
		assert.Equal(t, d1.MarketReturns, d2.MarketReturns, "path %d market draws differ between runs", path)
		assert.Equal(t, d1.InflationRates, d2.InflationRates, "path %d inflation draws differ between runs", path)
		assert.Equal(t, d1.PensionReturns, d2.PensionReturns, "path %d pension draws differ between runs", path)
	}

	// Different paths must not share a stream.
	assert.NotEqual(t, gen1.PathDraws(0).MarketReturns, gen1.PathDraws(1).MarketReturns)

	// A different seed changes the draws.
	gen3, err := NewDrawGenerator(a, 10, 30, 43)
	require.NoError(t, err)
	assert.NotEqual(t, gen1.PathDraws(0).MarketReturns, gen3.PathDraws(0).MarketReturns)
}

// TestDrawGeneratorStreamIndependence verifies that each quantity draws
// from its own sub-stream: overriding the pension assumptions must not
// change the market or inflation draws for the same seed.
func TestDrawGeneratorStreamIndependence(t *testing.T) {
	a := testAssumptions()
	base, err := NewDrawGenerator(a, 5, 20, 7)
	require.NoError(t, err)

	pensionVol := 0.30
	a2 := testAssumptions()
	a2.PensionVolatility = &pensionVol
	overridden, err := NewDrawGenerator(a2, 5, 20, 7)
	require.NoError(t, err)

	for path := 0; path < 5; path++ {
		assert.Equal(t, base.PathDraws(path).MarketReturns, overridden.PathDraws(path).MarketReturns,
			"pension override changed market draws on path %d", path)
		assert.Equal(t, base.PathDraws(path).InflationRates, overridden.PathDraws(path).InflationRates,
			"pension override changed inflation draws on path %d", path)
	}

	// The three streams of one path are distinct sequences.
	d := base.PathDraws(0)
	assert.NotEqual(t, d.MarketReturns, d.PensionReturns)
	assert.NotEqual(t, d.MarketReturns, d.InflationRates)
}

// TestDrawGeneratorZeroVolatility verifies the degenerate case: zero
// volatility collapses every draw to the mean exactly.
func TestDrawGeneratorZeroVolatility(t *testing.T) {
	a := domain.Assumptions{ExpectedReturn: 0.05, InflationMean: 0.02}
	gen, err := NewDrawGenerator(a, 3, 10, 1)
	require.NoError(t, err)

	for path := 0; path < 3; path++ {
		d := gen.PathDraws(path)
		for year := 0; year < 10; year++ {
			assert.Equal(t, 0.05, d.MarketReturns[year])
			assert.Equal(t, 0.02, d.InflationRates[year])
			assert.Equal(t, 0.05, d.PensionReturns[year], "pension stream should default to market assumptions")
		}
	}
}

// TestDrawGeneratorPensionDefaults verifies the pension stream inherits the
// market assumptions unless overridden.
func TestDrawGeneratorPensionDefaults(t *testing.T) {
	pensionReturn := 0.03
	a := domain.Assumptions{ExpectedReturn: 0.05, PensionReturn: &pensionReturn}
	gen, err := NewDrawGenerator(a, 1, 5, 1)
	require.NoError(t, err)

	d := gen.PathDraws(0)
	for year := 0; year < 5; year++ {
		assert.Equal(t, 0.05, d.MarketReturns[year])
		assert.Equal(t, 0.03, d.PensionReturns[year])
	}
}

// TestDrawGeneratorFloors verifies the inflation floor at −5% and the
// return floor at −100%.
func TestDrawGeneratorFloors(t *testing.T) {
	a := domain.Assumptions{ExpectedReturn: -2.0, InflationMean: -0.50}
	gen, err := NewDrawGenerator(a, 2, 8, 99)
	require.NoError(t, err)

	for path := 0; path < 2; path++ {
		d := gen.PathDraws(path)
		for year := 0; year < 8; year++ {
			assert.Equal(t, -1.0, d.MarketReturns[year], "market draws must floor at a total loss")
			assert.Equal(t, -0.05, d.InflationRates[year], "inflation draws must floor at -0.05")
		}
	}

	// With volatile draws the floors still hold everywhere.
	a = domain.Assumptions{ExpectedReturn: -0.5, ReturnVolatility: 1.5, InflationMean: -0.04, InflationVolatility: 0.10}
	gen, err = NewDrawGenerator(a, 50, 30, 3)
	require.NoError(t, err)
	for path := 0; path < 50; path++ {
		d := gen.PathDraws(path)
		for year := 0; year < 30; year++ {
			assert.GreaterOrEqual(t, d.MarketReturns[year], -1.0)
			assert.GreaterOrEqual(t, d.InflationRates[year], -0.05)
			assert.GreaterOrEqual(t, d.PensionReturns[year], -1.0)
		}
	}
}

// TestDrawGeneratorLogNormal verifies the lognormal family: draws stay
// above −100% by construction and a zero-volatility draw is exp(mean)−1.
func TestDrawGeneratorLogNormal(t *testing.T) {
	a := domain.Assumptions{
		ExpectedReturn:     0.05,
		ReturnDistribution: domain.DistributionLogNormal,
	}
	gen, err := NewDrawGenerator(a, 1, 5, 11)
	require.NoError(t, err)

	want := math.Exp(0.05) - 1
	for _, r := range gen.PathDraws(0).MarketReturns {
		assert.InDelta(t, want, r, 1e-12)
	}

	a.ReturnVolatility = 0.40
	gen, err = NewDrawGenerator(a, 20, 40, 11)
	require.NoError(t, err)
	for path := 0; path < 20; path++ {
		for _, r := range gen.PathDraws(path).MarketReturns {
			assert.Greater(t, r, -1.0, "lognormal draws can never reach a full loss")
		}
	}
}

// TestNewDrawGeneratorRejectsDegenerate verifies that malformed assumption
// sets fail with a DistributionError before any path runs.
func TestNewDrawGeneratorRejectsDegenerate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*domain.Assumptions)
		quantity string
	}{
		{
			name:     "negative return volatility",
			mutate:   func(a *domain.Assumptions) { a.ReturnVolatility = -0.1 },
			quantity: "market_return",
		},
		{
			name:     "negative inflation volatility",
			mutate:   func(a *domain.Assumptions) { a.InflationVolatility = -1 },
			quantity: "inflation",
		},
		{
			name: "negative pension volatility override",
			mutate: func(a *domain.Assumptions) {
				vol := -0.2
				a.PensionVolatility = &vol
			},
			quantity: "pension_return",
		},
		{
			name:     "NaN mean",
			mutate:   func(a *domain.Assumptions) { a.ExpectedReturn = math.NaN() },
			quantity: "market_return",
		},
		{
			name:     "infinite mean",
			mutate:   func(a *domain.Assumptions) { a.InflationMean = math.Inf(1) },
			quantity: "inflation",
		},
		{
			name:     "unknown distribution family",
			mutate:   func(a *domain.Assumptions) { a.ReturnDistribution = "cauchy" },
			quantity: "market_return",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := testAssumptions()
			tt.mutate(&a)

			_, err := NewDrawGenerator(a, 10, 10, 1)
			var distErr *DistributionError
			require.ErrorAs(t, err, &distErr)
			assert.Equal(t, tt.quantity, distErr.Quantity)
		})
	}
}

// TestDeriveSeedSeparation verifies that every (path, stream) pair gets its
// own source seed.
func TestDeriveSeedSeparation(t *testing.T) {
	seen := make(map[int64]bool)
	for path := 0; path < 100; path++ {
		for stream := streamMarket; stream <= streamPension; stream++ {
			s := deriveSeed(12345, path, stream)
			assert.False(t, seen[s], "seed collision at path %d stream %d", path, stream)
			seen[s] = true
		}
	}
}
