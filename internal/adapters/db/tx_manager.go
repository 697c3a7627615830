// internal/adapters/db/tx_manager.go
package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ammerola/stockledger/internal/core/ports"
)

// txKey is the context key for the active transaction.
type txKey struct{}

// TxManager runs functions inside a pgx transaction carried by the context.
type TxManager struct {
	pool             *pgxpool.Pool
	logger           *slog.Logger
	statementTimeout time.Duration
}

var _ ports.TxManager = (*TxManager)(nil)

// NewTxManager creates a transaction manager over db's pool.
func NewTxManager(db *Database, logger *slog.Logger) *TxManager {
	return &TxManager{
		pool:             db.pool,
		logger:           logger.With(slog.String("component", "tx")),
		statementTimeout: 30 * time.Second,
	}
}

// RunInTransaction executes fn within a read-committed transaction. A
// transaction already present in ctx is joined rather than nested.
func (m *TxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}

	tx, err := m.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(context.Background())
			panic(p)
		}
	}()

	if m.statementTimeout > 0 {
		if _, err := tx.Exec(ctx, fmt.Sprintf("SET LOCAL statement_timeout = '%dms'", m.statementTimeout.Milliseconds())); err != nil {
			_ = tx.Rollback(context.Background())
			return fmt.Errorf("failed to set statement timeout: %w", err)
		}
	}

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		// Rollback must complete even if ctx was cancelled.
		if rbErr := tx.Rollback(context.Background()); rbErr != nil {
			m.logger.ErrorContext(ctx, "rollback failed",
				slog.String("error", rbErr.Error()),
				slog.String("original_error", err.Error()))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func txFromContext(ctx context.Context) pgx.Tx {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return nil
}

// querier returns the transaction in ctx, or the pool outside one.
func querier(ctx context.Context, pool *pgxpool.Pool) Querier {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return pool
}
