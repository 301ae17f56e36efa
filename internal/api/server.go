// Package api exposes the chart computation service over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"humandesign/internal/chart"
	"humandesign/internal/domain"
	"humandesign/internal/genekeys"
	"humandesign/internal/observability"
	"humandesign/internal/storage"
	"humandesign/internal/transit"
)

// Options configures a Server.
type Options struct {
	Builder  *chart.Builder
	GeneKeys *genekeys.Loader
	// Audits receives one record per computed chart. May be nil.
	Audits storage.ChartAuditStore
	// Transits serves /ws/transits. May be nil to disable the endpoint.
	Transits  *transit.Broadcaster
	Precision domain.PrecisionMode
	Logger    *log.Logger
}

// Server handles the HTTP API.
type Server struct {
	builder   *chart.Builder
	geneKeys  *genekeys.Loader
	audits    storage.ChartAuditStore
	transits  *transit.Broadcaster
	precision domain.PrecisionMode
	logger    *log.Logger
	started   time.Time

	mu          sync.Mutex
	chartsCount int
	lastChartAt time.Time
}

// NewServer creates a Server.
func NewServer(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(os.Stdout, "[api] ", log.LstdFlags)
	}
	builder := opts.Builder
	if builder == nil {
		builder = chart.NewBuilder(chart.Options{Precision: opts.Precision})
	}
	return &Server{
		builder:   builder,
		geneKeys:  opts.GeneKeys,
		audits:    opts.Audits,
		transits:  opts.Transits,
		precision: opts.Precision,
		logger:    logger,
		started:   time.Now(),
	}
}

// Routes returns the full handler with CORS and metrics middleware applied.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /calculate_hd", s.handleCalculate)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/gene_key/{gate}", s.handleGeneKey)
	mux.HandleFunc("GET /status", s.handleStatus)
	mux.Handle("GET /metrics", observability.Handler())
	if s.transits != nil {
		mux.HandleFunc("GET /ws/transits", s.transits.HandleWS)
	}

	return corsMiddleware(s.metricsMiddleware(mux))
}

// calculateRequest mirrors the /calculate_hd JSON body. Numbers are decoded
// as json.Number so non-numeric values are rejected rather than coerced.
type calculateRequest struct {
	Year      json.Number `json:"year"`
	Month     json.Number `json:"month"`
	Day       json.Number `json:"day"`
	Time      string      `json:"time"`
	Timezone  string      `json:"timezone"`
	Longitude json.Number `json:"longitude"`
	Latitude  json.Number `json:"latitude"`
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Printf("panic in calculate: %v", rec)
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
	}()

	var raw map[string]json.RawMessage
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&raw); err != nil || raw == nil {
		writeError(w, http.StatusBadRequest, "request body must be JSON")
		return
	}

	var missing []string
	for _, field := range []string{"year", "month", "day", "time"} {
		if _, ok := raw[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("missing required fields: %s", strings.Join(missing, ", ")))
		return
	}

	var req calculateRequest
	if err := unmarshalFields(raw, &req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	year, errY := parseInt(req.Year)
	month, errM := parseInt(req.Month)
	day, errD := parseInt(req.Day)
	if errY != nil || errM != nil || errD != nil {
		writeError(w, http.StatusBadRequest, "year, month and day must be numbers")
		return
	}

	hour, minute, err := parseClock(req.Time)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	lon, err := parseFloatDefault(req.Longitude, 0.0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "longitude must be a number")
		return
	}
	lat, err := parseFloatDefault(req.Latitude, 0.0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "latitude must be a number")
		return
	}

	ch, audit, err := s.builder.Build(chart.Request{
		Year: year, Month: month, Day: day, Hour: hour, Minute: minute,
		Timezone: req.Timezone, Longitude: lon, Latitude: lat,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid date or time: %v", err))
		return
	}

	if s.audits != nil {
		if err := s.audits.Insert(r.Context(), audit); err != nil {
			s.logger.Printf("audit insert failed for chart %s: %v", ch.ID, err)
		}
	}

	s.mu.Lock()
	s.chartsCount++
	s.lastChartAt = time.Now()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   ch,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":         "healthy",
		"message":        "Human Design API is running",
		"centers":        domain.Centers,
		"motor_centers":  domain.MotorCenters,
		"planets":        domain.Bodies,
		"precision_mode": s.precision,
	})
}

func (s *Server) handleGeneKey(w http.ResponseWriter, r *http.Request) {
	gate, err := strconv.Atoi(r.PathValue("gate"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "gate must be a number")
		return
	}

	if s.geneKeys == nil {
		writeError(w, http.StatusNotFound, "Data not found")
		return
	}

	gk, err := s.geneKeys.Get(r.Context(), gate)
	switch {
	case err == nil:
		observability.RecordGeneKeyLookup("hit")
		writeJSON(w, http.StatusOK, gk)
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, storage.ErrInvalidInput):
		observability.RecordGeneKeyLookup("miss")
		writeError(w, http.StatusNotFound, "Data not found")
	default:
		s.logger.Printf("gene key lookup failed for gate %d: %v", gate, err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// statusResponse is the JSON response for /status.
type statusResponse struct {
	Status         string               `json:"status"`
	Uptime         string               `json:"uptime"`
	ChartsComputed int                  `json:"charts_computed"`
	LastChartAt    *time.Time           `json:"last_chart_at,omitempty"`
	PrecisionMode  domain.PrecisionMode `json:"precision_mode"`
	TransitClients int                  `json:"transit_clients"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	count := s.chartsCount
	last := s.lastChartAt
	s.mu.Unlock()

	resp := statusResponse{
		Status:         "running",
		Uptime:         time.Since(s.started).String(),
		ChartsComputed: count,
		PrecisionMode:  s.precision,
	}
	if !last.IsZero() {
		resp.LastChartAt = &last
	}
	if s.transits != nil {
		resp.TransitClients = s.transits.ClientCount()
	}

	writeJSON(w, http.StatusOK, resp)
}

// parseClock validates "HH:MM" with hour 0-23 and minute 0-59.
func parseClock(value string) (hour, minute int, err error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return 0, 0, errors.New(`time must be in "HH:MM" format`)
	}
	hour, errH := strconv.Atoi(strings.TrimSpace(parts[0]))
	minute, errM := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errH != nil || errM != nil {
		return 0, 0, errors.New(`time must be in "HH:MM" format`)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, errors.New("time out of range")
	}
	return hour, minute, nil
}

func parseInt(n json.Number) (int, error) {
	if n == "" {
		return 0, errors.New("empty")
	}
	v, err := n.Int64()
	if err != nil {
		// Tolerate "1990.0" style values like the source API did
		f, ferr := n.Float64()
		if ferr != nil {
			return 0, err
		}
		return int(f), nil
	}
	return int(v), nil
}

func parseFloatDefault(n json.Number, def float64) (float64, error) {
	if n == "" {
		return def, nil
	}
	return n.Float64()
}

func unmarshalFields(raw map[string]json.RawMessage, req *calculateRequest) error {
	buf, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal(buf, req)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[api] write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"status": "error",
		"error":  message,
	})
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Printf("listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
