package evaluation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/feltpoker/holdem/engine"
)

// Client talks to the evaluation service over HTTP. It is the only
// asynchronous boundary of a hand: one request at hand end, one response,
// no retries of its own.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *log.Logger
}

// NewClient creates a client for the evaluation service at baseURL
func NewClient(baseURL string, logger *log.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
	}
}

// Evaluate sends the completed hand for authoritative evaluation and, on
// success, rewrites its stacks and winnings from the returned payoffs.
// On any failure the state is left exactly as it was: the hand keeps its
// locally computed preliminary winnings and the caller may retry.
func (c *Client) Evaluate(ctx context.Context, g *engine.GameState) error {
	if !g.HasEnded() {
		return fmt.Errorf("evaluation: hand %s has not ended", g.HandID)
	}

	result, err := c.EvaluateRecord(ctx, NewHandRecord(g))
	if err != nil {
		return err
	}

	if err := g.ApplyEvaluation(result.Payoffs); err != nil {
		return fmt.Errorf("evaluation: hand %s: %w", g.HandID, err)
	}

	c.logger.Info("hand evaluated", "hand_id", g.HandID, "payoffs", result.Payoffs)
	return nil
}

// EvaluateRecord posts an already-serialized hand record and returns the
// service's result without touching any game state. Callers that hold a
// lock on the live state use this and apply the payoffs themselves.
func (c *Client) EvaluateRecord(ctx context.Context, rec HandRecord) (HandResult, error) {
	body, err := json.Marshal(rec)
	if err != nil {
		return HandResult{}, fmt.Errorf("evaluation: encode hand %s: %w", rec.HandID, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/hands", bytes.NewReader(body))
	if err != nil {
		return HandResult{}, fmt.Errorf("evaluation: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return HandResult{}, fmt.Errorf("evaluation: send hand %s: %w", rec.HandID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return HandResult{}, fmt.Errorf("evaluation: hand %s: unexpected status %s", rec.HandID, resp.Status)
	}

	var result HandResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return HandResult{}, fmt.Errorf("evaluation: decode response for hand %s: %w", rec.HandID, err)
	}
	return result, nil
}

// handListResponse is the wire form of the history feed
type handListResponse struct {
	Hands []HandResult `json:"hands"`
}

// LoadHands fetches the most recent completed hands for display. The
// records are read-only history and are never fed back into the engine.
func (c *Client) LoadHands(ctx context.Context, limit int) ([]HandResult, error) {
	url := fmt.Sprintf("%s/api/v1/hands?limit=%d", c.baseURL, limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("evaluation: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("evaluation: load hands: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("evaluation: load hands: unexpected status %s", resp.Status)
	}

	var list handListResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("evaluation: decode hand list: %w", err)
	}
	return list.Hands, nil
}
