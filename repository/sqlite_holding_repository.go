package repository

import (
	"context"
	"database/sql"
	"fmt"

	"stockplatform/model"
)

const createHoldingsTable = `CREATE TABLE IF NOT EXISTS holdings (
	ticker    TEXT PRIMARY KEY,
	shares    REAL NOT NULL,
	buy_price REAL NOT NULL,
	buy_date  TEXT NOT NULL DEFAULT '',
	position  INTEGER NOT NULL
)`

type SqliteHoldingRepository struct {
	db *sql.DB
}

func NewSqliteHoldingRepository(ctx context.Context, db *sql.DB) (*SqliteHoldingRepository, error) {
	if _, err := db.ExecContext(ctx, createHoldingsTable); err != nil {
		return nil, fmt.Errorf("failed to create holdings table: %w", err)
	}
	return &SqliteHoldingRepository{db: db}, nil
}

func (r *SqliteHoldingRepository) Load(ctx context.Context) ([]model.Holding, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT ticker, shares, buy_price, buy_date FROM holdings ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query holdings: %w", err)
	}
	defer rows.Close()

	holdings := []model.Holding{}
	for rows.Next() {
		var h model.Holding
		if err := rows.Scan(&h.Ticker, &h.Shares, &h.BuyPrice, &h.BuyDate); err != nil {
			return nil, fmt.Errorf("failed to scan holding: %w", err)
		}
		holdings = append(holdings, h)
	}
	return holdings, rows.Err()
}

func (r *SqliteHoldingRepository) Save(ctx context.Context, holdings []model.Holding) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM holdings`); err != nil {
		return fmt.Errorf("failed to clear holdings: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO holdings (ticker, shares, buy_price, buy_date, position) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, h := range holdings {
		if _, err := stmt.ExecContext(ctx, h.Ticker, h.Shares, h.BuyPrice, h.BuyDate, i); err != nil {
			return fmt.Errorf("failed to insert %s: %w", h.Ticker, err)
		}
	}
	return tx.Commit()
}
