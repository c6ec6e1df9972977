package simulation

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/nwgo/networth-simulator/internal/domain"
	"github.com/nwgo/networth-simulator/pkg/money"
)

const (
	defaultMaxConcurrent = 10
	defaultBatchSize     = 256
)

// Engine runs Monte Carlo simulations of a household's net worth. Paths
// share no mutable state, so the engine distributes them across workers in
// contiguous batches; results are bit-identical for a given seed regardless
// of worker count or scheduling order.
type Engine struct {
	Logger Logger

	// MaxConcurrent caps the number of batches integrating at once.
	MaxConcurrent int
	// BatchSize is the number of paths handed to a worker as one unit.
	// Cancellation is honored between batches, never inside one.
	BatchSize int
	// StrictInvariants turns an accounting identity violation into a run
	// failure instead of a critical message on the ResultSet.
	StrictInvariants bool
}

// NewEngine creates an engine with default worker settings and no logging.
func NewEngine() *Engine {
	return &Engine{
		Logger:        NopLogger{},
		MaxConcurrent: defaultMaxConcurrent,
		BatchSize:     defaultBatchSize,
	}
}

// Run validates the scenario, simulates every path and returns the
// completed ResultSet. The scenario is never mutated. A seed is taken from
// the scenario, or from the clock when unset, and is recorded on the
// ResultSet so any run can be replayed exactly. When ctx is canceled the
// run stops at the next batch boundary and returns the context's error;
// nothing partial is returned.
func (e *Engine) Run(ctx context.Context, sc *domain.ScenarioConfig) (*domain.ResultSet, error) {
	if err := ValidateScenario(sc); err != nil {
		return nil, err
	}

	seed := time.Now().UnixNano()
	if sc.RandomSeed != nil {
		seed = *sc.RandomSeed
	}

	gen, err := NewDrawGenerator(sc.Assumptions, sc.NumSimulations, sc.HorizonYears(), seed)
	if err != nil {
		return nil, err
	}

	cs := compileScenario(sc)
	rs := domain.NewResultSet(sc.NumSimulations, cs.horizon)
	rs.Seed = seed
	rs.Events = append([]domain.Event(nil), sc.Events...)
	rs.Currency = money.CurrencyFor(sc.Currency)

	logger := e.logger()
	start := time.Now()
	logger.Infof("simulating %d paths over %d years (seed %d)", sc.NumSimulations, cs.horizon, seed)

	var (
		wg             sync.WaitGroup
		mu             sync.Mutex
		msgs           []domain.Message
		firstViolation error
	)
	sem := make(chan struct{}, e.maxConcurrent())

	n := sc.NumSimulations
	size := e.batchSize()
	canceled := false
	for lo := 0; lo < n && !canceled; lo += size {
		hi := lo + size
		if hi > n {
			hi = n
		}

		select {
		case <-ctx.Done():
			canceled = true
			continue
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			defer func() { <-sem }()
			for path := lo; path < hi; path++ {
				pathMsgs, pathErr := cs.runPath(path, gen.PathDraws(path), rs)
				if len(pathMsgs) == 0 && pathErr == nil {
					continue
				}
				mu.Lock()
				msgs = append(msgs, pathMsgs...)
				if pathErr != nil && firstViolation == nil {
					firstViolation = pathErr
				}
				mu.Unlock()
			}
		}(lo, hi)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		logger.Warnf("simulation canceled after %s", time.Since(start))
		return nil, err
	}

	if firstViolation != nil {
		if e.StrictInvariants {
			return nil, firstViolation
		}
		logger.Errorf("accounting identity violated: %v", firstViolation)
	}

	rs.Messages = dedupeMessages(msgs)
	for _, m := range rs.Messages {
		if m.Level == domain.LevelWarning {
			logger.Warnf("%s", m.Text)
		}
	}

	logger.Infof("simulation complete: %d paths in %s", n, time.Since(start))
	return rs, nil
}

func (e *Engine) logger() Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return NopLogger{}
}

func (e *Engine) maxConcurrent() int {
	if e.MaxConcurrent > 0 {
		return e.MaxConcurrent
	}
	return defaultMaxConcurrent
}

func (e *Engine) batchSize() int {
	if e.BatchSize > 0 {
		return e.BatchSize
	}
	return defaultBatchSize
}

// dedupeMessages orders messages by year, code and path, keeping the first
// message for each (year, code) pair so a warning raised on thousands of
// paths reports once. The stable order keeps runs comparable.
func dedupeMessages(msgs []domain.Message) []domain.Message {
	if len(msgs) == 0 {
		return nil
	}
	sort.Slice(msgs, func(i, j int) bool {
		if msgs[i].Year != msgs[j].Year {
			return msgs[i].Year < msgs[j].Year
		}
		if msgs[i].Code != msgs[j].Code {
			return msgs[i].Code < msgs[j].Code
		}
		return msgs[i].Path < msgs[j].Path
	})
	out := make([]domain.Message, 0, len(msgs))
	for _, m := range msgs {
		if n := len(out); n > 0 && out[n-1].Year == m.Year && out[n-1].Code == m.Code {
			continue
		}
		out = append(out, m)
	}
	return out
}
