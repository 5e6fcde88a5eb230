// Package api provides the HTTP API for playing the game.
// GET endpoints are public (read-only observation of the empire).
// POST endpoints mutate the simulation; reset requires a bearer token.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/talgya/daily-empire/internal/content"
	"github.com/talgya/daily-empire/internal/engine"
	"github.com/talgya/daily-empire/internal/state"
)

// Server serves the empire state over HTTP. All game mutations are
// serialized through mu; the engine itself is single-threaded.
type Server struct {
	Eng         *engine.Engine
	Port        int
	AdminKey    string // Bearer token for the reset endpoint. Empty = reset disabled.
	CORSOrigins string // Comma-separated extra allowed origins.
	TrustProxy  bool   // Honor X-Forwarded-For when rate limiting.

	mu sync.Mutex

	// Last narrative line committed by the engine, shown alongside state.
	msgMu       sync.Mutex
	lastMessage string
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	// The engine commits a message with every state change; cache the
	// latest one for the state endpoint.
	s.Eng.Store().OnCommit(func(_ *state.SimulationState, message string) {
		if message == "" {
			return
		}
		s.msgMu.Lock()
		s.lastMessage = message
		s.msgMu.Unlock()
	})

	actionLimiter := NewRateLimiter(120, time.Minute)

	mux := http.NewServeMux()

	// Public endpoints (GET, read-only).
	mux.HandleFunc("/api/v1/state", s.handleState)
	mux.HandleFunc("/api/v1/scenario", s.handleScenario)

	// Game endpoints (POST, rate limited per IP).
	mux.HandleFunc("/api/v1/action", RateLimitMiddleware(actionLimiter, s.TrustProxy, s.handleAction))
	mux.HandleFunc("/api/v1/minigame", RateLimitMiddleware(actionLimiter, s.TrustProxy, s.handleMinigame))
	mux.HandleFunc("/api/v1/advance", RateLimitMiddleware(actionLimiter, s.TrustProxy, s.handleAdvance))

	// Admin endpoints (POST, require bearer token).
	mux.HandleFunc("/api/v1/reset", s.adminOnly(s.handleReset))

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr, "admin_auth", s.AdminKey != "")

	go func() {
		handler := corsMiddleware(mux, s.CORSOrigins)
		if err := http.ListenAndServe(addr, handler); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// corsMiddleware adds CORS headers for allowed frontend origins.
// extra is a comma-separated list of allowed origins
// (e.g. "https://empire.example.com"). Localhost dev servers are always
// allowed.
func corsMiddleware(next http.Handler, extra string) http.Handler {
	allowedOrigins := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:4173": true,
		"http://localhost:3000": true,
	}
	for _, origin := range strings.Split(extra, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			allowedOrigins[origin] = true
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// checkBearerToken returns true if the request has a valid admin bearer token.
func (s *Server) checkBearerToken(r *http.Request) bool {
	auth := r.Header.Get("Authorization")
	return strings.HasPrefix(auth, "Bearer ") && strings.TrimPrefix(auth, "Bearer ") == s.AdminKey
}

// adminOnly wraps a handler to require bearer token auth.
func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.AdminKey == "" {
			http.Error(w, "admin endpoints disabled (no EMPIRED_ADMIN_KEY set)", http.StatusForbidden)
			return
		}
		if !s.checkBearerToken(r) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

// ensureDay runs a pending daily cycle before serving a request. A server
// left running overnight rolls over to the next day on the first request
// of the morning.
func (s *Server) ensureDay(w http.ResponseWriter) bool {
	if err := s.Eng.EnsureDay(); err != nil {
		slog.Error("daily cycle failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return false
	}
	return true
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ensureDay(w) {
		return
	}

	st := s.Eng.Store().State()
	s.msgMu.Lock()
	message := s.lastMessage
	s.msgMu.Unlock()

	writeJSON(w, map[string]any{
		"state":    st,
		"scenario": content.Resolve(st, engine.BuildCosts()),
		"minigame": engine.MinigameForDay(st.Day),
		"message":  message,
	})
}

func (s *Server) handleScenario(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ensureDay(w) {
		return
	}

	st := s.Eng.Store().State()
	writeJSON(w, content.Resolve(st, engine.BuildCosts()))
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Action string        `json:"action"`
		Params engine.Params `json:"params"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if req.Action == "" {
		http.Error(w, "action is required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ensureDay(w) {
		return
	}

	outcome, err := s.Eng.DoNamed(req.Action, req.Params)
	if err != nil {
		slog.Error("action failed", "action", req.Action, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	st := s.Eng.Store().State()
	writeJSON(w, map[string]any{
		"ok":       outcome.OK,
		"message":  outcome.Message,
		"state":    st,
		"scenario": content.Resolve(st, engine.BuildCosts()),
	})
}

func (s *Server) handleMinigame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Name  string `json:"name"`
		Score int    `json:"score"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ensureDay(w) {
		return
	}

	outcome, err := s.Eng.ApplyMinigameReward(req.Name, req.Score)
	if err != nil {
		slog.Error("minigame reward failed", "minigame", req.Name, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{
		"ok":      outcome.OK,
		"message": outcome.Message,
		"state":   s.Eng.Store().State(),
	})
}

func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ensureDay(w) {
		return
	}

	message, err := s.Eng.AdvanceDay()
	if err != nil {
		slog.Error("day advance failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	st := s.Eng.Store().State()
	writeJSON(w, map[string]any{
		"message":  message,
		"state":    st,
		"scenario": content.Resolve(st, engine.BuildCosts()),
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.Eng.Reset(); err != nil {
		slog.Error("reset failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	slog.Info("game reset by admin")
	st := s.Eng.Store().State()
	writeJSON(w, map[string]any{
		"message":  "The empire has been founded anew.",
		"state":    st,
		"scenario": content.Resolve(st, engine.BuildCosts()),
	})
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
