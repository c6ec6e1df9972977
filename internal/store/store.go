// Package store persists completed simulation runs so they can be listed
// and re-inspected later, from the CLI or the HTTP API.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/nwgo/networth-simulator/internal/domain"
	"github.com/nwgo/networth-simulator/internal/simulation"
)

// ErrRunNotFound is returned when no run matches the requested id.
var ErrRunNotFound = errors.New("run not found")

// RunRecord is one persisted simulation run: the scenario that produced it
// and the headline summary. Raw path matrices are not persisted; a run can
// be reproduced exactly from its scenario and seed.
type RunRecord struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Name      string    `json:"name"`

	Seed           int64 `json:"seed"`
	NumSimulations int   `json:"n_simulations"`
	HorizonYears   int   `json:"horizon_years"`

	Scenario *domain.ScenarioConfig `json:"scenario"`
	Summary  simulation.RunSummary  `json:"summary"`
}

// RunStore is the persistence boundary for completed runs.
type RunStore interface {
	// SaveRun persists a completed run and returns the stored record.
	SaveRun(ctx context.Context, name string, sc *domain.ScenarioConfig, summary simulation.RunSummary) (*RunRecord, error)
	// GetRun fetches one run by id, ErrRunNotFound if absent.
	GetRun(ctx context.Context, id string) (*RunRecord, error)
	// ListRuns returns the most recent runs, newest first.
	ListRuns(ctx context.Context, limit int) ([]RunRecord, error)
	// DeleteRun removes a run, ErrRunNotFound if absent.
	DeleteRun(ctx context.Context, id string) error
	Close() error
}
