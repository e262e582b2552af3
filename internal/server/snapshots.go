package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/artistdb/internal/shared"
	"github.com/desertthunder/artistdb/internal/tasks"
)

const (
	artistRoute = "GET /artists/{key}"
	tracksRoute = "GET /artists/{key}/tracks"
	healthPath  = "/health"
)

// SnapshotSource is a snapshot store opened for the duration of one request.
type SnapshotSource interface {
	tasks.SnapshotReader
	Close() error
}

// Opener opens a [SnapshotSource]; called once per request.
type Opener func(ctx context.Context) (SnapshotSource, error)

// SnapshotHandler serves the most recent artist snapshot and top tracks as JSON.
// Implements the Handler interface for registration with a Router.
type SnapshotHandler struct {
	open   Opener
	logger *log.Logger
}

// NewSnapshotHandler creates a handler that opens storage with open for every request.
func NewSnapshotHandler(open Opener, logger *log.Logger) *SnapshotHandler {
	return &SnapshotHandler{open: open, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *SnapshotHandler) Routes() []string {
	return []string{artistRoute, tracksRoute}
}

// ServeHTTP dispatches on the matched route pattern.
func (h *SnapshotHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	store, err := h.open(ctx)
	if err != nil {
		h.fail(w, err)
		return
	}
	defer store.Close()

	query := tasks.NewQueryService(store)
	key := r.PathValue("key")

	switch r.Pattern {
	case artistRoute:
		rec, err := query.MostRecentSnapshot(ctx, key)
		if err != nil {
			h.fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, rec)
	case tracksRoute:
		tracks, err := query.MostRecentTopTracks(ctx, key)
		if err != nil {
			h.fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, tracks)
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

// Health reports whether the snapshot store can be opened.
func (h *SnapshotHandler) Health(w http.ResponseWriter, r *http.Request) {
	store, err := h.open(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	store.Close()

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *SnapshotHandler) fail(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", "error", err)
		writeError(w, status, "internal server error")
		return
	}
	writeError(w, status, err.Error())
}

// StatusFor maps an error kind to an HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, shared.ErrInvalidArgument), errors.Is(err, shared.ErrMissingArgument):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
