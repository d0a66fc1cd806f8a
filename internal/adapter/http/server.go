package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/solar-flare-service/internal/domain"
	"github.com/couchcryptid/solar-flare-service/internal/viewer"
)

// FlareService is the viewer surface the HTTP API drives.
type FlareService interface {
	sharedobs.ReadinessChecker
	Current() viewer.State
	Refresh(ctx context.Context, r domain.DateRange) (viewer.State, error)
	DefaultRange() domain.DateRange
	Radius() float64
}

// Server exposes the flare API plus health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	svc        FlareService
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics and the
// /api/v1 flare routes.
func NewServer(addr string, svc FlareService, logger *slog.Logger) *Server {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	s := &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		svc:    svc,
		logger: logger,
	}

	r.Get("/healthz", sharedobs.LivenessHandler())
	r.Get("/readyz", sharedobs.ReadinessHandler(svc))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(requestLogger(logger))
		r.Get("/flare", s.handleCurrent)
		r.Post("/flare/refresh", s.handleRefresh)
		r.Get("/locate", s.handleLocate)
		r.Get("/frame", s.handleFrame)
	})

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// stateView is the JSON shape of viewer.State.
type stateView struct {
	Range          domain.DateRange  `json:"range"`
	Loading        bool              `json:"loading"`
	Error          string            `json:"error,omitempty"`
	UpstreamStatus int               `json:"upstream_status,omitempty"`
	Generation     uint64            `json:"generation"`
	UpdatedAt      *time.Time        `json:"updated_at,omitempty"`
	Selection      *domain.Selection `json:"selection"`
}

func newStateView(st viewer.State) stateView {
	v := stateView{
		Range:      st.Range,
		Loading:    st.Loading,
		Generation: st.Generation,
		Selection:  st.Selection,
	}
	if !st.UpdatedAt.IsZero() {
		updated := st.UpdatedAt
		v.UpdatedAt = &updated
	}
	if st.Err != nil {
		v.Error = st.Err.Error()
		var statusErr *domain.UpstreamStatusError
		if errors.As(st.Err, &statusErr) {
			v.UpstreamStatus = statusErr.StatusCode
		}
	}
	return v
}

func (s *Server) handleCurrent(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, newStateView(s.svc.Current()))
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	start, end := q.Get("start"), q.Get("end")

	dr := s.svc.DefaultRange()
	if start != "" || end != "" {
		parsed, err := domain.ParseDateRange(start, end)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		dr = parsed
	}

	st, err := s.svc.Refresh(r.Context(), dr)
	view := newStateView(st)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, view)
	case errors.Is(err, viewer.ErrSuperseded):
		view.Error = err.Error()
		writeJSON(w, http.StatusConflict, view)
	default:
		view.Error = err.Error()
		var statusErr *domain.UpstreamStatusError
		if errors.As(err, &statusErr) {
			view.UpstreamStatus = statusErr.StatusCode
		}
		writeJSON(w, http.StatusBadGateway, view)
	}
}

type locateView struct {
	Location   string                        `json:"location"`
	Found      bool                          `json:"found"`
	Radius     float64                       `json:"radius"`
	Coordinate domain.HeliographicCoordinate `json:"coordinate"`
	Position   domain.Cartesian3D            `json:"position"`
}

func (s *Server) handleLocate(w http.ResponseWriter, r *http.Request) {
	location := r.URL.Query().Get("location")
	radius, err := parseRadius(r.URL.Query().Get("radius"), s.svc.Radius())
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	coord, found := domain.LookupLocation(location)
	writeJSON(w, http.StatusOK, locateView{
		Location:   location,
		Found:      found,
		Radius:     radius,
		Coordinate: coord,
		Position:   domain.Project(coord, radius),
	})
}

type frameView struct {
	Intensity float64      `json:"intensity"`
	HasMarker bool         `json:"has_marker"`
	Frame     domain.Frame `json:"frame"`
}

// handleFrame returns the cosmetic frame for the current selection. elapsed
// is a Go duration or seconds; it defaults to the time since the last update.
func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	st := s.svc.Current()

	elapsed, err := parseElapsed(r.URL.Query().Get("elapsed"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if elapsed < 0 && !st.UpdatedAt.IsZero() {
		elapsed = domain.Now().Sub(st.UpdatedAt)
	}

	view := frameView{Intensity: 1}
	if st.Selection != nil && st.Selection.Marker != nil {
		view.Intensity = st.Selection.Marker.Intensity
		view.HasMarker = true
	}
	view.Frame = domain.FrameAt(elapsed, view.Intensity)
	writeJSON(w, http.StatusOK, view)
}

// parseElapsed returns -1 when raw is empty.
func parseElapsed(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return -1, nil
	}
	if secs, err := strconv.ParseFloat(raw, 64); err == nil && secs >= 0 {
		return time.Duration(secs * float64(time.Second)), nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		return 0, errors.New("invalid elapsed: want seconds or a duration like 1.5s")
	}
	return d, nil
}

func parseRadius(raw string, def float64) (float64, error) {
	if strings.TrimSpace(raw) == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 {
		return 0, errors.New("invalid radius: must be a positive number")
	}
	return v, nil
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// writeJSON buffers the encoded body before writing headers; an encode
// failure is reported as a 500.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		status = http.StatusInternalServerError
		buf.Reset()
		buf.WriteString(`{"error":"encode response"}` + "\n")
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}
