package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/glebarez/go-sqlite"
)

// Trade kinds recorded in the journal.
const (
	KindFill   = "fill"   // crafted inventory sold into a buy order
	KindFlip   = "flip"   // underpriced listing bought for resale
	KindResale = "resale" // flipped item listed back on the market
)

// TradeRecord is one journal row.
type TradeRecord struct {
	ID       int64
	Kind     string
	ItemID   uint64
	MarketID uint64
	Quantity int64
	Price    int64 // quanta
	At       time.Time
}

// Journal is an append-only SQLite log of every trade the bot performs.
// It is an audit trail only; no engine state is reconstructed from it.
// A nil *Journal is valid and records nothing.
type Journal struct {
	db *sql.DB
}

// OpenJournal opens (or creates) the journal database with WAL enabled.
func OpenJournal(path string) (*Journal, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return nil, fmt.Errorf("failed to set pragma %s: %w", pragma, err)
		}
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS trades (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			kind       TEXT NOT NULL,
			item_id    INTEGER NOT NULL,
			market_id  INTEGER NOT NULL,
			quantity   INTEGER NOT NULL,
			price      INTEGER NOT NULL,
			created_at INTEGER NOT NULL
		);
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to create trades table: %w", err)
	}

	return &Journal{db: db}, nil
}

// Record appends one trade row.
func (j *Journal) Record(ctx context.Context, kind string, itemID, marketID uint64, quantity, price int64) error {
	if j == nil {
		return nil
	}
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO trades (kind, item_id, market_id, quantity, price, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		kind, itemID, marketID, quantity, price, time.Now().UnixMicro())
	if err != nil {
		return fmt.Errorf("failed to record %s: %w", kind, err)
	}
	return nil
}

// Recent returns the newest trades, most recent first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]TradeRecord, error) {
	if j == nil {
		return nil, nil
	}
	rows, err := j.db.QueryContext(ctx,
		`SELECT id, kind, item_id, market_id, quantity, price, created_at
		 FROM trades ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query trades: %w", err)
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		var r TradeRecord
		var createdAt int64
		if err := rows.Scan(&r.ID, &r.Kind, &r.ItemID, &r.MarketID, &r.Quantity, &r.Price, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan trade: %w", err)
		}
		r.At = time.UnixMicro(createdAt)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Close shuts the database down.
func (j *Journal) Close() error {
	if j == nil {
		return nil
	}
	return j.db.Close()
}
