package postgres

import (
	"context"
	"errors"
	"fmt"

	"player-wallet-service/internal/core/domain"
	"player-wallet-service/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// WalletLogRepo implements ports.WalletLogRepository over the
// append-only wallet_log table.
type WalletLogRepo struct {
	pool Pool
}

// NewWalletLogRepo creates a new WalletLogRepo.
func NewWalletLogRepo(pool Pool) *WalletLogRepo {
	return &WalletLogRepo{pool: pool}
}

// Create inserts a log entry inside the commit unit. The primary key
// on transaction_id is what serializes racing first attempts: the
// loser surfaces ports.ErrDuplicateTransaction.
func (r *WalletLogRepo) Create(ctx context.Context, tx pgx.Tx, entry *domain.WalletLog) error {
	query := `INSERT INTO wallet_log (transaction_id, wallet_id, outcome_kind, memento, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := tx.Exec(ctx, query,
		entry.TransactionID, entry.WalletID, entry.OutcomeKind, entry.Memento, entry.CreatedAt,
	)
	if err != nil {
		if _, ok := uniqueViolation(err); ok {
			return ports.ErrDuplicateTransaction
		}
		return fmt.Errorf("insert wallet log: %w", err)
	}
	return nil
}

// GetByTransactionID fetches a log entry by its idempotency key.
// Returns nil, nil when the transaction id has never been processed.
func (r *WalletLogRepo) GetByTransactionID(ctx context.Context, transactionID uuid.UUID) (*domain.WalletLog, error) {
	query := `SELECT transaction_id, wallet_id, outcome_kind, memento, created_at
		FROM wallet_log WHERE transaction_id = $1`

	entry := &domain.WalletLog{}
	err := r.pool.QueryRow(ctx, query, transactionID).Scan(
		&entry.TransactionID, &entry.WalletID, &entry.OutcomeKind, &entry.Memento, &entry.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get wallet log: %w", err)
	}
	return entry, nil
}
