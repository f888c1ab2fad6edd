// Package store persists evaluated hands in Postgres for the hand
// history feed.
package store

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/feltpoker/holdem/evaluation"
)

//go:embed schema.sql
var schema embed.FS

// ErrNotFound is returned when a hand is not in the history
var ErrNotFound = errors.New("store: hand not found")

// DB wraps a pgx connection pool
type DB struct{ *pgxpool.Pool }

// Open connects a pool to the given DSN
func Open(ctx context.Context, dsn string) (*DB, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open: %w", err)
	}
	return &DB{pool}, nil
}

// Migrate applies the embedded schema
func (db *DB) Migrate(ctx context.Context) error {
	sqlBytes, err := schema.ReadFile("schema.sql")
	if err != nil {
		return err
	}
	_, err = db.Exec(ctx, string(sqlBytes))
	return err
}

// SaveHand records an evaluated hand
func (db *DB) SaveHand(ctx context.Context, result evaluation.HandResult) error {
	players, err := json.Marshal(result.Players)
	if err != nil {
		return fmt.Errorf("store: encode players: %w", err)
	}

	payoffs := make([]int64, len(result.Payoffs))
	for i, p := range result.Payoffs {
		payoffs[i] = int64(p)
	}

	_, err = db.Exec(ctx, `
        INSERT INTO hands(hand_id, stack_size, positions, hole_cards, actions,
                          community_cards, pot, players, payoffs, winnings)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        ON CONFLICT (hand_id) DO UPDATE
          SET payoffs  = EXCLUDED.payoffs,
              winnings = EXCLUDED.winnings
    `, result.HandID, result.StackSize, result.Positions, result.HoleCards,
		result.Actions, result.CommunityCards, result.Pot, players, payoffs, result.Winnings)
	if err != nil {
		return fmt.Errorf("store: save hand %s: %w", result.HandID, err)
	}
	return nil
}

// RecentHands returns the most recently completed hands, newest first
func (db *DB) RecentHands(ctx context.Context, limit int) ([]evaluation.HandResult, error) {
	rows, err := db.Query(ctx, `
        SELECT hand_id, stack_size, positions, hole_cards, actions,
               community_cards, pot, players, payoffs, winnings
        FROM hands
        ORDER BY created_at DESC
        LIMIT $1
    `, limit)
	if err != nil {
		return nil, fmt.Errorf("store: recent hands: %w", err)
	}
	defer rows.Close()

	var hands []evaluation.HandResult
	for rows.Next() {
		result, err := scanHand(rows)
		if err != nil {
			return nil, err
		}
		hands = append(hands, result)
	}
	return hands, rows.Err()
}

// HandByID returns one hand from the history, or ErrNotFound
func (db *DB) HandByID(ctx context.Context, handID string) (evaluation.HandResult, error) {
	rows, err := db.Query(ctx, `
        SELECT hand_id, stack_size, positions, hole_cards, actions,
               community_cards, pot, players, payoffs, winnings
        FROM hands
        WHERE hand_id = $1
    `, handID)
	if err != nil {
		return evaluation.HandResult{}, fmt.Errorf("store: hand %s: %w", handID, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return evaluation.HandResult{}, fmt.Errorf("store: hand %s: %w", handID, err)
		}
		return evaluation.HandResult{}, ErrNotFound
	}
	return scanHand(rows)
}

func scanHand(row pgx.Rows) (evaluation.HandResult, error) {
	var result evaluation.HandResult
	var players []byte
	var payoffs []int64

	if err := row.Scan(&result.HandID, &result.StackSize, &result.Positions,
		&result.HoleCards, &result.Actions, &result.CommunityCards,
		&result.Pot, &players, &payoffs, &result.Winnings); err != nil {
		return evaluation.HandResult{}, fmt.Errorf("store: scan hand: %w", err)
	}

	if err := json.Unmarshal(players, &result.Players); err != nil {
		return evaluation.HandResult{}, fmt.Errorf("store: decode players for hand %s: %w", result.HandID, err)
	}

	result.Payoffs = make([]int, len(payoffs))
	for i, p := range payoffs {
		result.Payoffs[i] = int(p)
	}
	result.StackInfo = fmt.Sprintf("Stack %d", result.StackSize)
	return result, nil
}
