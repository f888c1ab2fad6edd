// Package api exposes the evaluation service over HTTP: hands are posted
// here at the end of play for authoritative payoffs, and the hand history
// is read back from here for display.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/feltpoker/holdem/evaluation"
	"github.com/feltpoker/holdem/payout"
	"github.com/feltpoker/holdem/store"
)

const defaultHistoryLimit = 5

// HandStore is the persistence the API needs. A nil store runs the
// service in degraded mode: evaluation still works, history is empty.
type HandStore interface {
	SaveHand(ctx context.Context, result evaluation.HandResult) error
	RecentHands(ctx context.Context, limit int) ([]evaluation.HandResult, error)
	HandByID(ctx context.Context, handID string) (evaluation.HandResult, error)
}

type handler struct {
	store  HandStore
	logger *log.Logger
}

// NewRouter builds the evaluation service router
func NewRouter(handStore HandStore, logger *log.Logger) chi.Router {
	h := &handler{store: handStore, logger: logger}

	r := chi.NewRouter()
	r.Use(corsMiddleware)

	r.Get("/api/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/hands", h.createHand)
		r.Get("/hands", h.listHands)
		r.Get("/hands/{handID}", h.getHand)
	})

	return r
}

// createHand evaluates a completed hand and records it in the history
func (h *handler) createHand(w http.ResponseWriter, r *http.Request) {
	var rec evaluation.HandRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		writeError(w, http.StatusBadRequest, "invalid hand record: "+err.Error())
		return
	}

	payoffs, err := payout.Payoffs(rec)
	if err != nil {
		h.logger.Warn("hand rejected", "hand_id", rec.HandID, "err", err)
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	result := evaluation.HandResult{
		HandRecord: rec,
		Payoffs:    payoffs,
		Winnings:   evaluation.FormatWinnings(payoffs),
	}

	// Persistence failures after a successful evaluation do not fail the
	// request; the payoffs are still the answer.
	if h.store != nil {
		if err := h.store.SaveHand(r.Context(), result); err != nil {
			h.logger.Warn("failed to save hand", "hand_id", rec.HandID, "err", err)
		}
	}

	h.logger.Info("hand evaluated", "hand_id", rec.HandID, "pot", rec.Pot, "payoffs", payoffs)
	writeJSON(w, http.StatusCreated, result)
}

// listHands returns the most recent completed hands
func (h *handler) listHands(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	hands := []evaluation.HandResult{}
	if h.store != nil {
		var err error
		hands, err = h.store.RecentHands(r.Context(), limit)
		if err != nil {
			h.logger.Error("failed to list hands", "err", err)
			writeError(w, http.StatusInternalServerError, "failed to list hands")
			return
		}
		if hands == nil {
			hands = []evaluation.HandResult{}
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{"hands": hands})
}

// getHand returns one hand from the history
func (h *handler) getHand(w http.ResponseWriter, r *http.Request) {
	handID := chi.URLParam(r, "handID")

	if h.store == nil {
		writeError(w, http.StatusNotFound, "hand history is disabled")
		return
	}

	result, err := h.store.HandByID(r.Context(), handID)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "hand not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to load hand", "hand_id", handID, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to load hand")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// corsMiddleware adds CORS headers so a browser-hosted table UI can call
// the service directly
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
