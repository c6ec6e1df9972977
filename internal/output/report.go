// Package output renders completed simulation runs. Formatters are
// pluggable and pure: each turns a Report into bytes, and the same Report
// can be rendered as a console summary, JSON, CSV bands, a standalone HTML
// page or an Arrow IPC dump of the raw paths.
package output

import (
	"github.com/nwgo/networth-simulator/internal/domain"
	"github.com/nwgo/networth-simulator/internal/simulation"
)

// Report bundles what formatters consume: the raw result set, its headline
// summary and the net-worth percentile bands in both views.
type Report struct {
	Summary      simulation.RunSummary `json:"summary"`
	BandsNominal []simulation.Band     `json:"bands_nominal"`
	BandsReal    []simulation.Band     `json:"bands_real"`
	Results      *domain.ResultSet     `json:"results,omitempty"`

	// View selects which bands human-readable formatters highlight.
	// Empty means nominal; structured formats always carry both.
	View simulation.ViewKind `json:"-"`
}

// DisplayBands returns the bands matching the report's view.
func (r *Report) DisplayBands() []simulation.Band {
	if r.View == simulation.ViewReal {
		return r.BandsReal
	}
	return r.BandsNominal
}

// NewReport aggregates a completed result set into a Report.
func NewReport(rs *domain.ResultSet) (*Report, error) {
	nominal, err := simulation.BandsView(rs, domain.SeriesNetWorth, simulation.ViewNominal, nil)
	if err != nil {
		return nil, err
	}
	deflated, err := simulation.BandsView(rs, domain.SeriesNetWorth, simulation.ViewReal, nil)
	if err != nil {
		return nil, err
	}
	return &Report{
		Summary:      simulation.Summarize(rs),
		BandsNominal: nominal,
		BandsReal:    deflated,
		Results:      rs,
	}, nil
}

// bandAt finds the trajectory for one percentile, nil if absent.
func bandAt(bands []simulation.Band, percentile float64) *simulation.Band {
	for i := range bands {
		if bands[i].Percentile == percentile {
			return &bands[i]
		}
	}
	return nil
}
