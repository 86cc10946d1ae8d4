package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/tilebot/tilebot/game/engine"
	"github.com/tilebot/tilebot/game/service"
	"github.com/tilebot/tilebot/transport/websocket"
)

// Server represents the REST API server
type Server struct {
	service service.BotService
	hub     *websocket.Hub
	router  *mux.Router
}

// NewServer creates a new API server
func NewServer(botService service.BotService, hub *websocket.Hub) *Server {
	s := &Server{
		service: botService,
		hub:     hub,
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	// API routes with clean REST patterns
	api := s.router.PathPrefix("/api").Subrouter()

	// Run management
	api.HandleFunc("/runs", s.handleCreateRun).Methods("POST")
	api.HandleFunc("/runs", s.handleListRuns).Methods("GET")
	api.HandleFunc("/runs/{id}", s.handleGetRun).Methods("GET")
	api.HandleFunc("/runs/{id}", s.handleDeleteRun).Methods("DELETE")

	// Cycle operations
	api.HandleFunc("/runs/{id}/state", s.handleGetRunState).Methods("GET")
	api.HandleFunc("/runs/{id}/observe", s.handleObserve).Methods("POST")
	api.HandleFunc("/runs/{id}/solve", s.handleSolve).Methods("POST")
	api.HandleFunc("/runs/{id}/outcome", s.handleOutcome).Methods("POST")
	api.HandleFunc("/runs/{id}/rescanned", s.handleMarkRescanned).Methods("POST")
	api.HandleFunc("/runs/{id}/reset", s.handleReset).Methods("POST")
	api.HandleFunc("/runs/{id}/history", s.handleGetHistory).Methods("GET")

	// Configuration
	api.HandleFunc("/configs", s.handleListConfigs).Methods("GET")
	api.HandleFunc("/configs", s.handleCreateConfig).Methods("POST")
	api.HandleFunc("/configs/{name}", s.handleGetConfig).Methods("GET")

	// Health check
	api.HandleFunc("/health", s.handleHealth).Methods("GET")

	// WebSocket
	s.router.HandleFunc("/ws", s.handleWebSocket)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// broadcastRun pushes the latest snapshot of a run to WebSocket watchers
func (s *Server) broadcastRun(ctx context.Context, runID string) {
	if s.hub == nil {
		return
	}
	if snapshot, err := s.service.GetRunSnapshot(ctx, runID); err == nil {
		s.hub.BroadcastToRun(runID, snapshot)
	}
}

// Run Handlers

func (s *Server) handleCreateRun(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ConfigID   string `json:"config_id,omitempty"`
		ConfigName string `json:"config_name,omitempty"` // Deprecated, use config_id
	}

	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	// Support both new and old parameter names, but prefer config_id
	configID := req.ConfigID
	if configID == "" && req.ConfigName != "" {
		configID = req.ConfigName
	}

	run, err := s.service.CreateRun(r.Context(), configID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, run)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := s.service.ListRuns(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Parse query parameters
	query := r.URL.Query()
	sortBy := query.Get("sort")    // "created", "accessed" (default)
	order := query.Get("order")    // "asc", "desc" (default: "desc")
	limitStr := query.Get("limit") // number of runs to return

	// Set defaults
	if sortBy == "" {
		sortBy = "accessed"
	}
	if order == "" {
		order = "desc"
	}

	// Sort runs
	sort.Slice(runs, func(i, j int) bool {
		var ti, tj time.Time
		if sortBy == "created" {
			ti, tj = runs[i].CreatedAt, runs[j].CreatedAt
		} else { // "accessed"
			ti, tj = runs[i].LastAccessedAt, runs[j].LastAccessedAt
		}

		if order == "asc" {
			return ti.Before(tj)
		}
		return ti.After(tj) // desc
	})

	// Apply limit if specified
	limit := len(runs)
	if limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l < len(runs) {
			limit = l
		}
	}
	runs = runs[:limit]

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(runs),
		"runs":  runs,
		"sort":  sortBy,
		"order": order,
	})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	runID := vars["id"]

	run, err := s.service.GetRun(r.Context(), runID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, run)
}

func (s *Server) handleDeleteRun(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	runID := vars["id"]

	err := s.service.DeleteRun(r.Context(), runID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Run %s deleted", runID),
	})
}

// Cycle Operation Handlers

func (s *Server) handleGetRunState(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	runID := vars["id"]

	snapshot, err := s.service.GetRunSnapshot(r.Context(), runID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, snapshot)
}

func (s *Server) handleObserve(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	runID := vars["id"]

	var req struct {
		Board      engine.Board         `json:"board"`
		Confidence engine.ConfidenceMap `json:"confidence"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := s.service.Observe(r.Context(), runID, req.Board, req.Confidence)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	s.broadcastRun(r.Context(), runID)

	// Compact server log for observability
	if result.Accepted {
		fmt.Printf("[OBSERVE] run=%s accepted rescan=%v reason=%s cleared=%v\n",
			runID, result.Rescan, result.Reason, result.Cleared)
	} else {
		fmt.Printf("[OBSERVE] run=%s REJECTED failures=%d: %s\n",
			runID, result.RunState.ConsecutiveFailures, result.Message)
	}

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	runID := vars["id"]

	result, err := s.service.Solve(r.Context(), runID)
	if err != nil {
		respondError(w, http.StatusConflict, err.Error())
		return
	}

	if result.Pair != nil {
		p := result.Pair
		fmt.Printf("[SOLVE] run=%s pair=(%d,%d)-(%d,%d)\n",
			runID, p.A.Row, p.A.Col, p.B.Row, p.B.Col)
	} else {
		fmt.Printf("[SOLVE] run=%s no pair (cleared=%v)\n", runID, result.Cleared)
	}

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleOutcome(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	runID := vars["id"]

	var req struct {
		Success bool         `json:"success"`
		Pair    *engine.Pair `json:"pair,omitempty"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := s.service.ReportOutcome(r.Context(), runID, req.Success, req.Pair)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.broadcastRun(r.Context(), runID)

	status := "FAIL"
	if req.Success {
		status = "OK"
	}
	fmt.Printf("[OUTCOME] run=%s status=%s moves=%d failures=%d stopped=%v\n",
		runID, status, result.RunState.MoveCount, result.RunState.ConsecutiveFailures, result.Stopped)

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleMarkRescanned(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	runID := vars["id"]

	var req struct {
		Reason string `json:"reason"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	state, err := s.service.MarkRescanned(r.Context(), runID, req.Reason)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.broadcastRun(r.Context(), runID)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":   "Full rescan acknowledged",
		"run_state": state,
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	runID := vars["id"]

	snapshot, err := s.service.Reset(r.Context(), runID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	if s.hub != nil {
		s.hub.BroadcastToRun(runID, snapshot)
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Run reset successfully",
		"snapshot": snapshot,
	})
}

func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	runID := vars["id"]

	// Parse query parameters
	opts := service.HistoryOptions{
		Page:  1,
		Limit: 20,
		Order: "desc",
	}

	query := r.URL.Query()
	if pageStr := query.Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			opts.Page = p
		}
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			opts.Limit = l
		}
	}

	if order := query.Get("order"); order == "asc" || order == "desc" {
		opts.Order = order
	}

	history, err := s.service.GetCycleHistory(r.Context(), runID, opts)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, history)
}

// Configuration Handlers

func (s *Server) handleListConfigs(w http.ResponseWriter, r *http.Request) {
	configs, err := s.service.ListConfigs(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, configs)
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	configName := vars["name"]

	// Remove .json extension if present
	configName = strings.TrimSuffix(configName, ".json")

	config, err := s.service.LoadConfig(r.Context(), configName)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, config)
}

func (s *Server) handleCreateConfig(w http.ResponseWriter, r *http.Request) {
	// Decode directly into engine.BotConfig which has the correct structure
	var botConfig engine.BotConfig

	if err := json.NewDecoder(r.Body).Decode(&botConfig); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Validate required fields
	if botConfig.Name == "" {
		respondError(w, http.StatusBadRequest, "Config name is required")
		return
	}

	// Save configuration
	if err := s.service.SaveConfig(r.Context(), botConfig.Name, &botConfig); err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to save config: %v", err))
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":   "Configuration saved successfully",
		"config_id": botConfig.Name,
	})
}

// WebSocket Handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	runID := r.URL.Query().Get("run")
	if runID == "" {
		http.Error(w, "run parameter required", http.StatusBadRequest)
		return
	}

	// Verify run exists
	_, err := s.service.GetRun(context.Background(), runID)
	if err != nil {
		http.Error(w, "Invalid run", http.StatusNotFound)
		return
	}

	// Upgrade to WebSocket
	s.hub.ServeWS(w, r, runID)
}

// Health check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
