package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/vocapp/vocapp/internal/orchestrator"
)

// sseEmitter streams turn events as server-sent events. Writes after
// the client disconnects are dropped silently.
type sseEmitter struct {
	w       http.ResponseWriter
	flusher http.Flusher
	ctx     context.Context
}

func newSSEEmitter(w http.ResponseWriter, ctx context.Context) (*sseEmitter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, errors.New("streaming not supported")
	}
	w.Header().Set("Content-Type", "text/event-stream; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache, no-transform")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()
	return &sseEmitter{w: w, flusher: flusher, ctx: ctx}, nil
}

func (e *sseEmitter) send(v any) {
	if e.ctx.Err() != nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	fmt.Fprintf(e.w, "data: %s\n\n", data)
	e.flusher.Flush()
}

// Token streams a piece of model output.
func (e *sseEmitter) Token(delta string) {
	e.send(map[string]any{"type": "token", "delta": delta})
}

// Executed reports a command execution before its summary is ready.
func (e *sseEmitter) Executed(a orchestrator.Answer) {
	e.send(map[string]any{"type": "executed", "payload": a})
}

// SummaryComplete closes the deferred summary stream.
func (e *sseEmitter) SummaryComplete() {
	e.send(map[string]any{"type": "summary_complete"})
}

// Final sends the turn's closing payload.
func (e *sseEmitter) Final(a orchestrator.Answer) {
	e.send(map[string]any{"type": "final", "payload": a})
}

// Error reports a mid-stream failure.
func (e *sseEmitter) Error(message string) {
	e.send(map[string]any{"type": "error", "message": message})
}
