package server

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sanity-io/litter"

	"github.com/feltpoker/holdem/engine"
	"github.com/feltpoker/holdem/evaluation"
	"github.com/feltpoker/holdem/server/connection"
)

const evaluationTimeout = 15 * time.Second

// Table owns the single live hand. Every command goes through its mutex,
// so exactly one action is in flight at a time; the engine itself never
// needs to lock.
type Table struct {
	mu        sync.Mutex
	state     *engine.GameState
	evaluator *evaluation.Client
	connMgr   *connection.Manager
	logger    *log.Logger
	rng       *rand.Rand
	debug     bool
}

// NewTable creates a table host backed by the given evaluation client
func NewTable(evaluator *evaluation.Client, connMgr *connection.Manager, logger *log.Logger, debug bool) *Table {
	return &Table{
		evaluator: evaluator,
		connMgr:   connMgr,
		logger:    logger,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		debug:     debug,
	}
}

// HandleCommand routes one incoming client message. Command failures are
// reported back to the issuing client only; state changes are broadcast
// to everyone.
func (t *Table) HandleCommand(client *connection.Client, message []byte) error {
	var base Envelope
	if err := json.Unmarshal(message, &base); err != nil {
		return t.sendError(client, fmt.Errorf("malformed command: %w", err))
	}

	var err error
	switch base.Name {
	case CmdStartGame:
		var cmd StartGameCommand
		if err := json.Unmarshal(base.Payload, &cmd); err != nil && len(base.Payload) > 0 {
			return t.sendError(client, fmt.Errorf("malformed %s payload: %w", base.Name, err))
		}
		err = t.handleStartGame(cmd)
	case CmdPlayerAction:
		var cmd PlayerActionCommand
		if err := json.Unmarshal(base.Payload, &cmd); err != nil {
			return t.sendError(client, fmt.Errorf("malformed %s payload: %w", base.Name, err))
		}
		err = t.handlePlayerAction(cmd)
	case CmdResetGame:
		err = t.handleResetGame()
	case CmdLoadHands:
		var cmd LoadHandsCommand
		if err := json.Unmarshal(base.Payload, &cmd); err != nil && len(base.Payload) > 0 {
			return t.sendError(client, fmt.Errorf("malformed %s payload: %w", base.Name, err))
		}
		return t.handleLoadHands(client, cmd)
	default:
		err = fmt.Errorf("unknown command %q", base.Name)
	}

	if err != nil {
		return t.sendError(client, err)
	}
	return nil
}

func (t *Table) handleStartGame(cmd StartGameCommand) error {
	if cmd.NumPlayers == 0 {
		cmd.NumPlayers = engine.DefaultNumPlayers
	}
	if cmd.StackSize == 0 {
		cmd.StackSize = engine.DefaultStartingStack
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != nil && !t.state.HasEnded() {
		return fmt.Errorf("a hand is already in progress")
	}

	state, err := engine.NewGame(cmd.NumPlayers, cmd.StackSize, t.rng)
	if err != nil {
		return err
	}
	t.state = state

	t.logger.Info("hand started", "hand_id", state.HandID, "players", cmd.NumPlayers, "stack", cmd.StackSize)
	t.broadcastStateLocked()
	return nil
}

func (t *Table) handlePlayerAction(cmd PlayerActionCommand) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state == nil {
		return fmt.Errorf("no hand in progress")
	}

	seat := t.state.CurrentPosition
	if t.state.Players[seat].HasFolded {
		t.logger.Warn("action for a folded seat ignored", "hand_id", t.state.HandID, "seat", seat)
	}

	if err := t.state.HandleAction(engine.ActionKind(cmd.Action), cmd.Amount); err != nil {
		return err
	}

	if t.debug {
		t.logger.Debug("state after action", "dump", litter.Sdump(t.state))
	}

	t.broadcastStateLocked()

	if t.state.HasEnded() {
		rec := evaluation.NewHandRecord(t.state)
		go t.evaluateHand(rec)
	}
	return nil
}

func (t *Table) handleResetGame() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.state = nil
	t.broadcastStateLocked()
	return nil
}

func (t *Table) handleLoadHands(client *connection.Client, cmd LoadHandsCommand) error {
	limit := cmd.Limit
	if limit <= 0 {
		limit = 5
	}

	ctx, cancel := context.WithTimeout(context.Background(), evaluationTimeout)
	defer cancel()

	hands, err := t.evaluator.LoadHands(ctx, limit)
	if err != nil {
		return t.sendError(client, err)
	}

	msg, err := envelope(MsgHandHistory, map[string]any{"hands": hands})
	if err != nil {
		return err
	}
	t.connMgr.Send(client.ID, msg)
	return nil
}

// evaluateHand asks the evaluation service for authoritative payoffs and,
// if the same hand is still on the table, applies them and re-broadcasts.
// A failure leaves the preliminary winnings in place; the hand can be
// re-evaluated from history later.
func (t *Table) evaluateHand(rec evaluation.HandRecord) {
	ctx, cancel := context.WithTimeout(context.Background(), evaluationTimeout)
	defer cancel()

	result, err := t.evaluator.EvaluateRecord(ctx, rec)
	if err != nil {
		t.logger.Error("hand evaluation failed", "hand_id", rec.HandID, "err", err)
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state == nil || t.state.HandID != rec.HandID {
		return
	}
	if err := t.state.ApplyEvaluation(result.Payoffs); err != nil {
		t.logger.Error("could not apply payoffs", "hand_id", rec.HandID, "err", err)
		return
	}

	t.logger.Info("hand settled", "hand_id", rec.HandID, "payoffs", result.Payoffs)
	t.broadcastStateLocked()
}

// broadcastStateLocked pushes the current state to every client; the
// caller holds the table mutex
func (t *Table) broadcastStateLocked() {
	msg, err := envelope(MsgGameState, t.state)
	if err != nil {
		t.logger.Error("could not encode game state", "err", err)
		return
	}
	t.connMgr.Broadcast(msg)
}

func (t *Table) sendError(client *connection.Client, cmdErr error) error {
	t.logger.Warn("command failed", "client", client.ID, "err", cmdErr)
	msg, err := envelope(MsgError, ErrorPayload{Message: cmdErr.Error()})
	if err != nil {
		return err
	}
	t.connMgr.Send(client.ID, msg)
	return nil
}
