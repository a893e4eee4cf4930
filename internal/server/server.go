// Package server exposes the agent over HTTP: a streaming chat
// endpoint, the approve/reject pair for proposed commands, and the
// access-scope configuration.
package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vocapp/vocapp/internal/audit"
	"github.com/vocapp/vocapp/internal/config"
	"github.com/vocapp/vocapp/internal/executor"
	"github.com/vocapp/vocapp/internal/orchestrator"
	"github.com/vocapp/vocapp/internal/providers"
)

// Server holds the HTTP handlers and their dependencies.
type Server struct {
	Orchestrator *orchestrator.Orchestrator
	Pending      *executor.PendingStore
	Runner       *executor.Runner
	Access       *config.AccessManager
	Audit        *audit.Log // optional
}

// Router builds the chi router with all API routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Post("/api/chat", s.handleChat)
	r.Post("/api/execute", s.handleExecute)
	r.Post("/api/reject", s.handleReject)
	r.Get("/api/access", s.handleGetAccess)
	r.Post("/api/access", s.handleSetAccess)
	r.Get("/api/audit", s.handleAudit)
	r.Get("/api/health", s.handleHealth)

	return r
}

type chatRequest struct {
	SessionID string                  `json:"sessionId"`
	History   []providers.ChatMessage `json:"history"`
}

// handleChat runs one turn and streams its events over SSE.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "JSON inválido.")
		return
	}
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = "default"
	}

	em, err := newSSEEmitter(w, r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	answer, err := s.Orchestrator.Turn(r.Context(), sessionID, req.History, em)
	if err != nil {
		log.Printf("WARNING: chat turn failed: %v", err)
		em.Error("Error inesperado en /api/chat")
		return
	}
	em.Final(answer)
}

type executeRequest struct {
	Token string `json:"token"`
}

// handleExecute consumes a pending token and runs the approved command.
func (s *Server) handleExecute(w http.ResponseWriter, r *http.Request) {
	var req executeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
		writeError(w, http.StatusBadRequest, "Token inválido o expirado.")
		return
	}

	command, ok := s.Pending.Take(req.Token)
	if !ok {
		writeError(w, http.StatusBadRequest, "Token inválido o expirado.")
		return
	}

	result := s.Runner.Execute(r.Context(), command)
	s.record(r.Context(), audit.Event{
		Kind:    audit.KindApproved,
		Command: command,
		Cwd:     result.Cwd,
		OK:      result.OK,
		Error:   result.Error,
	})
	writeJSON(w, http.StatusOK, result)
}

// handleReject discards a pending command. Always replies ok so the
// client cannot probe which tokens exist.
func (s *Server) handleReject(w http.ResponseWriter, r *http.Request) {
	var req executeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err == nil && req.Token != "" {
		if command, ok := s.Pending.Take(req.Token); ok {
			s.record(r.Context(), audit.Event{Kind: audit.KindRejected, Command: command})
		}
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleGetAccess(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.Access.Load())
}

func (s *Server) handleSetAccess(w http.ResponseWriter, r *http.Request) {
	var updates config.AccessConfig
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		writeError(w, http.StatusBadRequest, "JSON inválido.")
		return
	}
	saved, err := s.Access.Save(updates)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (s *Server) handleAudit(w http.ResponseWriter, r *http.Request) {
	if s.Audit == nil {
		writeJSON(w, http.StatusOK, []audit.Event{})
		return
	}
	events, err := s.Audit.Recent(r.Context(), 100)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if events == nil {
		events = []audit.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":       true,
		"provider": s.Orchestrator.Model.Name(),
		"workdir":  s.Orchestrator.Workdir,
	})
}

func (s *Server) record(ctx context.Context, e audit.Event) {
	if s.Audit == nil {
		return
	}
	if err := s.Audit.Record(ctx, e); err != nil {
		log.Printf("WARNING: audit record failed: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("WARNING: write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
