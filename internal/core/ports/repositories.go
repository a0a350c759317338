package ports

import (
	"context"
	"errors"

	"player-wallet-service/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// Sentinel errors surfaced by repositories so the service layer can
// distinguish concurrency signals from storage faults.
var (
	// ErrVersionConflict: the wallet's version token changed between
	// read and commit; another writer won.
	ErrVersionConflict = errors.New("wallet version conflict")

	// ErrDuplicateTransaction: unique violation on the transaction log
	// insert; a racing first attempt with the same id already committed.
	ErrDuplicateTransaction = errors.New("duplicate transaction id")

	// ErrDuplicatePlayerID / ErrDuplicatePlayerName: unique violations
	// during player provisioning.
	ErrDuplicatePlayerID   = errors.New("duplicate player id")
	ErrDuplicatePlayerName = errors.New("duplicate player name")
)

// WalletRepository defines persistence operations for wallets.
// Methods accepting pgx.Tx run inside the atomic commit unit.
type WalletRepository interface {
	Create(ctx context.Context, tx pgx.Tx, wallet *domain.Wallet) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error)
	GetByPlayerID(ctx context.Context, playerID uuid.UUID) (*domain.Wallet, error)
	// UpdateBalance performs the version-guarded conditional write:
	// the update only applies while the stored version still matches
	// expectedVersion, and increments it. Returns ErrVersionConflict
	// when zero rows match.
	UpdateBalance(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, balance decimal.Decimal, expectedVersion int64) error
}

// WalletLogRepository defines persistence for the append-only
// transaction log keyed by transaction id.
type WalletLogRepository interface {
	// Create inserts a log entry inside the commit unit. Returns
	// ErrDuplicateTransaction on a uniqueness race loss.
	Create(ctx context.Context, tx pgx.Tx, entry *domain.WalletLog) error
	GetByTransactionID(ctx context.Context, transactionID uuid.UUID) (*domain.WalletLog, error)
}

// PlayerRepository defines persistence operations for players.
type PlayerRepository interface {
	// Create inserts a player. Returns ErrDuplicatePlayerID or
	// ErrDuplicatePlayerName on the respective unique violations.
	Create(ctx context.Context, tx pgx.Tx, player *domain.Player) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Player, error)
	GetByName(ctx context.Context, name string) (*domain.Player, error)
	List(ctx context.Context) ([]domain.Player, error)
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
