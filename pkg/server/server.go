// Package server exposes the poster tool as a local single-page web app.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/user/posterkit/pkg/orchestrator"
	"github.com/user/posterkit/pkg/overlay"
	"github.com/user/posterkit/pkg/pipeline"
	"github.com/user/posterkit/pkg/ports"
	"github.com/user/posterkit/pkg/session"
)

// DefaultUploadLimit caps the size of an uploaded image.
const DefaultUploadLimit = 32 << 20

// Config contains the server settings.
type Config struct {
	Addr         string
	UploadLimit  int64
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Addr:         "127.0.0.1:8080",
		UploadLimit:  DefaultUploadLimit,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute,
	}
}

// Server serves one editing session.
type Server struct {
	orch    *orchestrator.Orchestrator
	config  Config
	logger  ports.Logger
	handler http.Handler
}

// New creates a Server driving orch.
func New(orch *orchestrator.Orchestrator, config Config, logger ports.Logger) *Server {
	if config.UploadLimit <= 0 {
		config.UploadLimit = DefaultUploadLimit
	}
	s := &Server{
		orch:   orch,
		config: config,
		logger: logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("GET /view", s.handleView)
	mux.HandleFunc("GET /api/state", s.handleState)
	mux.HandleFunc("GET /api/source", s.handleSource)
	mux.HandleFunc("GET /api/cropped", s.handleCropped)
	mux.HandleFunc("POST /api/upload", s.handleUpload)
	mux.HandleFunc("POST /api/ratio", s.handleRatio)
	mux.HandleFunc("POST /api/adjust", s.handleAdjust)
	mux.HandleFunc("POST /api/report", s.handleReport)
	mux.HandleFunc("POST /api/suggest", s.handleSuggest)
	mux.HandleFunc("POST /api/crop", s.handleCrop)
	mux.HandleFunc("POST /api/recrop", s.handleRecrop)
	mux.HandleFunc("POST /api/export", s.handleExport)
	mux.HandleFunc("POST /api/dismiss", s.handleDismiss)
	s.handler = withRequestLog(mux, logger)
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.config.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.handler,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Serving on http://%s", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

// =============================================================================
// Pages
// =============================================================================

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	names := make([]string, 0, len(overlay.Choices()))
	for _, c := range overlay.Choices() {
		names = append(names, c.Name)
	}
	buf, err := renderPage(pageVars{Ratios: names, Current: s.orch.Session().Ratio().Name})
	if err != nil {
		s.logger.Error("Failed to render page: %s", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf)
}

// handleView serves the composition view document the exporter rasterizes.
func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	poster := s.orch.Session().Poster()
	if poster == nil {
		s.writeError(w, &pipeline.RenderTargetMissingError{ElementID: "final-poster"})
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, poster.Target.HTML)
}

func (s *Server) handleSource(w http.ResponseWriter, r *http.Request) {
	src := s.orch.Session().Source()
	if src == nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", src.MIMEType)
	w.Header().Set("Cache-Control", "no-store")
	w.Write(src.Data)
}

func (s *Server) handleCropped(w http.ResponseWriter, r *http.Request) {
	cropped := s.orch.Session().Cropped()
	if cropped == nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(cropped.Data)
}

// =============================================================================
// Actions
// =============================================================================

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.writeState(w, http.StatusOK)
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.UploadLimit)
	file, header, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		// Cancelled picker: nothing changes.
		s.writeState(w, http.StatusOK)
		return
	}
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeJSON(w, http.StatusRequestEntityTooLarge, errorBody{
				Error: &session.ErrorInfo{Action: string(session.KindLoad), Code: "too_large", Message: err.Error()},
				State: s.orch.Session().Snapshot(),
			})
			return
		}
		s.writeJSON(w, http.StatusBadRequest, errorBody{
			Error: &session.ErrorInfo{Action: string(session.KindLoad), Code: "bad_request", Message: err.Error()},
			State: s.orch.Session().Snapshot(),
		})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.writeError(w, fmt.Errorf("read upload: %w", err))
		return
	}
	input := pipeline.LoadInput{Name: filepath.Base(header.Filename), Data: data}
	if err := s.orch.Load(r.Context(), input); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeState(w, http.StatusOK)
}

type ratioRequest struct {
	Ratio string `json:"ratio"`
}

func (s *Server) handleRatio(w http.ResponseWriter, r *http.Request) {
	var req ratioRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.orch.SetRatio(req.Ratio); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeState(w, http.StatusOK)
}

type adjustRequest struct {
	Offset pipeline.CropOffset  `json:"offset"`
	Zoom   float64              `json:"zoom"`
	Region *pipeline.CropRegion `json:"region,omitempty"`
}

func (s *Server) handleAdjust(w http.ResponseWriter, r *http.Request) {
	var req adjustRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.orch.Adjust(r.Context(), req.Offset, req.Zoom); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeState(w, http.StatusOK)
}

// handleReport accepts a rectangle computed by a client-side crop widget.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	var req adjustRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Region == nil {
		s.writeJSON(w, http.StatusBadRequest, errorBody{
			Error: &session.ErrorInfo{Action: string(session.KindCrop), Code: "bad_request", Message: "region is required"},
			State: s.orch.Session().Snapshot(),
		})
		return
	}
	if err := s.orch.Report(req.Offset, req.Zoom, *req.Region); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeState(w, http.StatusOK)
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	if err := s.orch.Suggest(r.Context()); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeState(w, http.StatusOK)
}

func (s *Server) handleCrop(w http.ResponseWriter, r *http.Request) {
	if err := s.orch.Crop(r.Context()); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeState(w, http.StatusOK)
}

func (s *Server) handleRecrop(w http.ResponseWriter, r *http.Request) {
	if err := s.orch.Recrop(); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeState(w, http.StatusOK)
}

// handleExport rasterizes the composed view and sends it as a download.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	result, err := s.orch.Export(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	w.Header().Set("Content-Length", fmt.Sprint(len(result.Data)))
	w.Write(result.Data)
}

func (s *Server) handleDismiss(w http.ResponseWriter, r *http.Request) {
	s.orch.Dismiss()
	s.writeState(w, http.StatusOK)
}

// =============================================================================
// Responses
// =============================================================================

type errorBody struct {
	Error *session.ErrorInfo `json:"error"`
	State session.Snapshot   `json:"state"`
}

// statusFor maps an action error to an HTTP status.
func statusFor(err error) (int, string) {
	if errors.Is(err, orchestrator.ErrSuperseded) {
		return http.StatusConflict, "superseded"
	}
	if errors.Is(err, context.Canceled) {
		// Client went away; the status is never seen.
		return 499, "cancelled"
	}
	code := session.Code(err)
	switch code {
	case "unsupported_ratio":
		return http.StatusBadRequest, code
	case "decode", "invalid_region":
		return http.StatusUnprocessableEntity, code
	case "render_target_missing", "wrong_state":
		return http.StatusConflict, code
	}
	return http.StatusInternalServerError, code
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status, code := statusFor(err)
	snap := s.orch.Session().Snapshot()
	info := snap.Error
	if info == nil || info.Code != code {
		info = &session.ErrorInfo{Code: code, Message: err.Error()}
	}
	s.writeJSON(w, status, errorBody{Error: info, State: snap})
}

func (s *Server) writeState(w http.ResponseWriter, status int) {
	s.writeJSON(w, status, s.orch.Session().Snapshot())
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("Failed to write response: %s", err)
	}
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := dec.Decode(v); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorBody{
			Error: &session.ErrorInfo{Code: "bad_request", Message: err.Error()},
			State: s.orch.Session().Snapshot(),
		})
		return false
	}
	return true
}

// =============================================================================
// Middleware
// =============================================================================

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func withRequestLog(next http.Handler, logger ports.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Debug("HTTP %s %s -> %d (%s)", r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Millisecond))
	})
}
