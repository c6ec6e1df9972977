package server

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"github.com/nwgo/networth-simulator/internal/config"
	"github.com/nwgo/networth-simulator/internal/domain"
	"github.com/nwgo/networth-simulator/internal/simulation"
	"github.com/nwgo/networth-simulator/internal/store"
)

// Server wires the engine, the run store and the HTTP routes together.
type Server struct {
	cfg    Config
	engine *simulation.Engine
	loader *config.ScenarioLoader
	runs   store.RunStore
	logger simulation.Logger
}

// New builds a server around the given run store. A nil logger disables
// logging.
func New(cfg Config, runs store.RunStore, logger simulation.Logger) *Server {
	if logger == nil {
		logger = simulation.NopLogger{}
	}
	engine := simulation.NewEngine()
	engine.Logger = logger
	if cfg.MaxConcurrent > 0 {
		engine.MaxConcurrent = cfg.MaxConcurrent
	}
	return &Server{
		cfg:    cfg,
		engine: engine,
		loader: config.NewScenarioLoader(),
		runs:   runs,
		logger: logger,
	}
}

// ListenAndServe blocks serving HTTP on the configured address.
func (s *Server) ListenAndServe() error {
	s.logger.Infof("http server listening on %s", s.cfg.Addr)
	srv := &fasthttp.Server{
		Handler:            s.Handler,
		MaxRequestBodySize: s.cfg.MaxBodySize,
		Name:               "networth-simulator",
	}
	return srv.ListenAndServe(s.cfg.Addr)
}

// Handler routes all API endpoints.
func (s *Server) Handler(ctx *fasthttp.RequestCtx) {
	path := string(ctx.Path())
	method := string(ctx.Method())

	switch {
	case path == "/healthz" && method == fasthttp.MethodGet:
		s.handleHealth(ctx)
	case path == "/api/v1/simulate" && method == fasthttp.MethodPost:
		s.handleSimulate(ctx)
	case path == "/api/v1/runs" && method == fasthttp.MethodGet:
		s.handleListRuns(ctx)
	case strings.HasPrefix(path, "/api/v1/runs/"):
		id := strings.TrimPrefix(path, "/api/v1/runs/")
		switch method {
		case fasthttp.MethodGet:
			s.handleGetRun(ctx, id)
		case fasthttp.MethodDelete:
			s.handleDeleteRun(ctx, id)
		default:
			writeError(ctx, fasthttp.StatusMethodNotAllowed, "method not allowed")
		}
	default:
		writeError(ctx, fasthttp.StatusNotFound, "not found")
	}
}

func (s *Server) handleHealth(ctx *fasthttp.RequestCtx) {
	writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
}

// simulateResponse is the body returned by POST /api/v1/simulate.
type simulateResponse struct {
	RunID        string                `json:"run_id,omitempty"`
	Summary      simulation.RunSummary `json:"summary"`
	BandsNominal []simulation.Band     `json:"bands_nominal"`
	BandsReal    []simulation.Band     `json:"bands_real"`
	Messages     []domain.Message      `json:"messages,omitempty"`
	Results      *domain.ResultSet     `json:"results,omitempty"`
}

func (s *Server) handleSimulate(ctx *fasthttp.RequestCtx) {
	sc, err := s.loader.Parse(ctx.PostBody())
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}
	if s.cfg.MaxSimulations > 0 && sc.NumSimulations > s.cfg.MaxSimulations {
		writeError(ctx, fasthttp.StatusBadRequest,
			fmt.Sprintf("n_simulations %d exceeds the server limit of %d", sc.NumSimulations, s.cfg.MaxSimulations))
		return
	}
	if s.cfg.MaxHorizon > 0 && sc.HorizonYears() > s.cfg.MaxHorizon {
		writeError(ctx, fasthttp.StatusBadRequest,
			fmt.Sprintf("horizon of %d years exceeds the server limit of %d", sc.HorizonYears(), s.cfg.MaxHorizon))
		return
	}

	// The engine only needs the timeout; fasthttp's RequestCtx is not a
	// usable context parent outside a live server.
	runCtx, cancel := context.WithTimeout(context.Background(), s.cfg.RequestTimeout)
	defer cancel()

	rs, err := s.engine.Run(runCtx, sc)
	if err != nil {
		writeRunError(ctx, err)
		return
	}

	nominal, err := simulation.BandsView(rs, domain.SeriesNetWorth, simulation.ViewNominal, nil)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, err.Error())
		return
	}
	deflated, err := simulation.BandsView(rs, domain.SeriesNetWorth, simulation.ViewReal, nil)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, err.Error())
		return
	}

	resp := simulateResponse{
		Summary:      simulation.Summarize(rs),
		BandsNominal: nominal,
		BandsReal:    deflated,
		Messages:     rs.Messages,
	}
	if ctx.QueryArgs().GetBool("include_paths") {
		resp.Results = rs
	}

	if s.runs != nil && ctx.QueryArgs().GetBool("save") {
		name := string(ctx.QueryArgs().Peek("name"))
		rec, err := s.runs.SaveRun(runCtx, name, sc, resp.Summary)
		if err != nil {
			s.logger.Errorf("failed to persist run: %v", err)
		} else {
			resp.RunID = rec.ID
		}
	}

	writeJSON(ctx, fasthttp.StatusOK, resp)
}

func (s *Server) handleListRuns(ctx *fasthttp.RequestCtx) {
	if s.runs == nil {
		writeError(ctx, fasthttp.StatusNotImplemented, "run persistence is disabled")
		return
	}
	limit, _ := strconv.Atoi(string(ctx.QueryArgs().Peek("limit")))
	records, err := s.runs.ListRuns(context.Background(), limit)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, err.Error())
		return
	}
	if records == nil {
		records = []store.RunRecord{}
	}
	writeJSON(ctx, fasthttp.StatusOK, map[string]any{"runs": records})
}

func (s *Server) handleGetRun(ctx *fasthttp.RequestCtx, id string) {
	if s.runs == nil {
		writeError(ctx, fasthttp.StatusNotImplemented, "run persistence is disabled")
		return
	}
	rec, err := s.runs.GetRun(context.Background(), id)
	if errors.Is(err, store.ErrRunNotFound) {
		writeError(ctx, fasthttp.StatusNotFound, fmt.Sprintf("run %s not found", id))
		return
	}
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, rec)
}

func (s *Server) handleDeleteRun(ctx *fasthttp.RequestCtx, id string) {
	if s.runs == nil {
		writeError(ctx, fasthttp.StatusNotImplemented, "run persistence is disabled")
		return
	}
	err := s.runs.DeleteRun(context.Background(), id)
	if errors.Is(err, store.ErrRunNotFound) {
		writeError(ctx, fasthttp.StatusNotFound, fmt.Sprintf("run %s not found", id))
		return
	}
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, err.Error())
		return
	}
	ctx.SetStatusCode(fasthttp.StatusNoContent)
}

// writeRunError maps engine failures onto HTTP statuses: bad input is the
// caller's fault, timeouts and internal failures are not.
func writeRunError(ctx *fasthttp.RequestCtx, err error) {
	var cfgErr *simulation.InvalidConfigurationError
	var distErr *simulation.DistributionError
	switch {
	case errors.As(err, &cfgErr), errors.As(err, &distErr):
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		writeError(ctx, fasthttp.StatusGatewayTimeout, "simulation timed out")
	default:
		writeError(ctx, fasthttp.StatusInternalServerError, err.Error())
	}
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json; charset=utf-8")
	ctx.SetBody(data)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	writeJSON(ctx, status, map[string]string{"error": message})
}
