package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"zyracss/common"
	"zyracss/config"
	"zyracss/parser"
	"zyracss/zyra"
)

// Server exposes the generator over HTTP.
type Server struct {
	cfg       config.Config
	engine    *zyra.Engine
	sanitizer *bluemonday.Policy
}

// New builds a server around an engine instance.
func New(cfg config.Config, engine *zyra.Engine) *Server {
	s := &Server{cfg: cfg, engine: engine}
	if cfg.Server.SanitizeHTML {
		s.sanitizer = bluemonday.UGCPolicy().AllowAttrs("class").Globally()
	}
	return s
}

// Router assembles the middleware stack and API routes.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(time.Duration(s.cfg.Server.TimeoutSeconds) * time.Second))

	if s.cfg.Server.RequestsPerSecond > 0 {
		r.Use(httprate.Limit(
			s.cfg.Server.RequestsPerSecond,
			time.Second,
			httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "Too many requests", http.StatusTooManyRequests)
			}),
		))
	}
	if s.cfg.Server.RequestsPerMinute > 0 {
		r.Use(httprate.Limit(
			s.cfg.Server.RequestsPerMinute,
			time.Minute,
			httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "Too many requests", http.StatusTooManyRequests)
			}),
		))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/generate", s.handleGenerate)
		r.Post("/extract", s.handleExtract)
		r.Delete("/cache", s.handleClearCache)
		r.Get("/stats", s.handleStats)
	})
	r.Get("/healthz", s.handleHealth)
	return r
}

// Start runs the HTTP server until it fails.
func (s *Server) Start() error {
	addr := s.cfg.Server.Host + ":" + strconv.Itoa(s.cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: s.Router()}
	common.Success("ZyraCSS server listening on http://%s", addr)
	return srv.ListenAndServe()
}

type generateRequest struct {
	Classes []string     `json:"classes,omitempty"`
	HTML    []string     `json:"html,omitempty"`
	Options zyra.Options `json:"options"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, zyra.NewResponse(nil,
			common.NewError(common.CodeInvalidInput, "malformed request body: %v", err)))
		return
	}

	blobs := req.HTML
	if s.sanitizer != nil {
		blobs = make([]string, len(req.HTML))
		for i, blob := range req.HTML {
			blobs[i] = s.sanitizer.Sanitize(blob)
		}
	}

	started := time.Now()
	result, genErr := s.engine.Generate(zyra.Input{Classes: req.Classes, HTML: blobs}, req.Options)
	resp := zyra.NewResponse(result, genErr)

	id := uuid.NewString()
	if genErr != nil {
		common.Warning("generation failed", "id", id, "code", genErr.Code, "duration", time.Since(started))
		writeJSON(w, http.StatusUnprocessableEntity, resp)
		return
	}
	common.Debug("generation complete", "id", id,
		"valid", result.Stats.ValidClasses,
		"rules", result.Stats.GeneratedRules,
		"cached", result.Stats.FromCache,
		"duration", time.Since(started))
	writeJSON(w, http.StatusOK, resp)
}

type extractRequest struct {
	HTML           []string `json:"html"`
	IncludeInvalid bool     `json:"includeInvalid"`
	MaxClasses     int      `json:"maxClasses"`
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, zyra.NewResponse(nil,
			common.NewError(common.CodeInvalidInput, "malformed request body: %v", err)))
		return
	}
	result, extractErr := s.engine.Extract(req.HTML, parser.ExtractOptions{
		IncludeInvalid: req.IncludeInvalid,
		MaxClasses:     req.MaxClasses,
	})
	if extractErr != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"success": false,
			"error":   extractErr,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"classes":   result.Classes,
		"invalid":   result.Invalid,
		"truncated": result.Truncated,
	})
}

func (s *Server) handleClearCache(w http.ResponseWriter, r *http.Request) {
	s.engine.ClearCache()
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Stats())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": zyra.Version})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		common.LogError("failed to encode response: %v", err)
	}
}
