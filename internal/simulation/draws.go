package simulation

import (
	"math"
	"math/rand"

	"github.com/nwgo/networth-simulator/internal/domain"
)

// inflationFloor caps how deflationary a single year's inflation draw can
// be. Carried over from the original assumption set.
const inflationFloor = -0.05

// returnFloor caps a single year's return draw: a balance cannot lose more
// than all of itself.
const returnFloor = -1.0

// Stream identifiers used to derive independent sub-streams per path.
const (
	streamMarket = iota
	streamInflation
	streamPension
)

// drawSpec is one sampled quantity: a distribution family plus its
// (mean, volatility) pair.
type drawSpec struct {
	kind domain.DistributionKind
	mean float64
	vol  float64
}

// PathDraws holds one path's random variates, one entry per simulated year.
type PathDraws struct {
	MarketReturns  []float64
	InflationRates []float64
	PensionReturns []float64
}

// DrawGenerator produces per-path, per-year variates from the configured
// distributions. Every (path, stream) pair owns its own seeded source, so
// draws depend only on the run seed and the path index: parallel execution
// order cannot change them, and enabling the pension stream never perturbs
// the market or inflation streams.
//
// Reproducibility is within-implementation: the same seed and configuration
// produce bit-identical draws on every run (math/rand sources seeded by a
// splitmix-style derivation; see deriveSeed).
type DrawGenerator struct {
	nSimulations int
	horizonYears int
	seed         int64

	market    drawSpec
	inflation drawSpec
	pension   drawSpec
}

// NewDrawGenerator validates the assumption set and returns a generator.
// Degenerate distributions (negative volatility, unknown family) fail here
// with a DistributionError, before any path runs.
func NewDrawGenerator(a domain.Assumptions, nSimulations, horizonYears int, seed int64) (*DrawGenerator, error) {
	market := drawSpec{kind: a.ReturnDistribution, mean: a.ExpectedReturn, vol: a.ReturnVolatility}
	inflation := drawSpec{kind: a.InflationDistribution, mean: a.InflationMean, vol: a.InflationVolatility}

	// The pension stream defaults to the market assumptions; either moment
	// can be overridden independently.
	pension := drawSpec{kind: a.ReturnDistribution, mean: a.ExpectedReturn, vol: a.ReturnVolatility}
	if a.PensionReturn != nil {
		pension.mean = *a.PensionReturn
	}
	if a.PensionVolatility != nil {
		pension.vol = *a.PensionVolatility
	}

	for _, q := range []struct {
		name string
		spec drawSpec
	}{
		{"market_return", market},
		{"inflation", inflation},
		{"pension_return", pension},
	} {
		if math.IsNaN(q.spec.mean) || math.IsInf(q.spec.mean, 0) {
			return nil, &DistributionError{Quantity: q.name, Reason: "mean must be finite"}
		}
		if q.spec.vol < 0 || math.IsNaN(q.spec.vol) || math.IsInf(q.spec.vol, 0) {
			return nil, &DistributionError{Quantity: q.name, Reason: "volatility must be finite and non-negative"}
		}
		if !q.spec.kind.IsValid() {
			return nil, &DistributionError{Quantity: q.name, Reason: "unknown distribution family " + string(q.spec.kind)}
		}
	}

	return &DrawGenerator{
		nSimulations: nSimulations,
		horizonYears: horizonYears,
		seed:         seed,
		market:       market,
		inflation:    inflation,
		pension:      pension,
	}, nil
}

// Seed returns the run seed the generator derives its sub-streams from.
func (g *DrawGenerator) Seed() int64 {
	return g.seed
}

// PathDraws samples all variates for one path. Safe for concurrent use:
// the generator itself is read-only and each call builds its own sources.
func (g *DrawGenerator) PathDraws(path int) PathDraws {
	market := g.sampleStream(path, streamMarket, g.market)
	for i, r := range market {
		if r < returnFloor {
			market[i] = returnFloor
		}
	}

	inflation := g.sampleStream(path, streamInflation, g.inflation)
	for i, r := range inflation {
		if r < inflationFloor {
			inflation[i] = inflationFloor
		}
	}

	pension := g.sampleStream(path, streamPension, g.pension)
	for i, r := range pension {
		if r < returnFloor {
			pension[i] = returnFloor
		}
	}

	return PathDraws{MarketReturns: market, InflationRates: inflation, PensionReturns: pension}
}

// sampleStream draws horizonYears variates from one quantity's sub-stream.
func (g *DrawGenerator) sampleStream(path, stream int, spec drawSpec) []float64 {
	rng := rand.New(rand.NewSource(deriveSeed(g.seed, path, stream)))
	out := make([]float64, g.horizonYears)
	for i := range out {
		z := normalVariate(rng)
		switch spec.kind.OrDefault() {
		case domain.DistributionLogNormal:
			// Mean and volatility are log-space parameters.
			out[i] = math.Exp(spec.mean+spec.vol*z) - 1
		default:
			out[i] = spec.mean + spec.vol*z
		}
	}
	return out
}

// normalVariate samples a standard normal via the Box-Muller transform.
// 1−Float64() keeps the argument of Log in (0, 1].
func normalVariate(rng *rand.Rand) float64 {
	u1 := 1 - rng.Float64()
	u2 := rng.Float64()
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}

// deriveSeed mixes the run seed with a path and stream index using the
// splitmix64 finalizer, giving every (path, stream) pair a well-separated
// source seed.
func deriveSeed(seed int64, path, stream int) int64 {
	x := uint64(seed)
	x ^= uint64(path+1) * 0x9E3779B97F4A7C15
	x ^= uint64(stream+1) * 0xD1B54A32D192ED03
	x ^= x >> 30
	x *= 0xBF58476D1CE4E5B9
	x ^= x >> 27
	x *= 0x94D049BB133111EB
	x ^= x >> 31
	return int64(x)
}
