package ports

import (
	"context"
	"time"

	"player-wallet-service/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReplayCache is the Redis-layer replay fast path in front of the
// authoritative wallet_log table. Best-effort: a miss or error falls
// through to the database lookup.
type ReplayCache interface {
	Get(ctx context.Context, transactionID uuid.UUID) ([]byte, error) // serialized log entry or nil
	Set(ctx context.Context, transactionID uuid.UUID, entry []byte, ttl time.Duration) error
}

// --- Service Ports (Business Logic) ---

// WalletService is the idempotent transaction-application engine.
type WalletService interface {
	// ApplyTransaction admits a transaction through the idempotency
	// guard and, on a first attempt, applies it atomically. Duplicate
	// ids replay the stored outcome with Repeated set.
	ApplyTransaction(ctx context.Context, req ApplyTransactionRequest) (*domain.TransactionOutcome, error)
	// GetBalance is a pure read, outside the idempotency concern.
	GetBalance(ctx context.Context, walletID uuid.UUID) (decimal.Decimal, error)
}

// ApplyTransactionRequest holds bound input for transaction processing.
// Amount bounds are validated by the engine before the wallet is touched.
type ApplyTransactionRequest struct {
	WalletID      uuid.UUID
	TransactionID uuid.UUID
	Type          domain.TransactionType
	Amount        decimal.Decimal
}

// PlayerService handles idempotent player registration: the caller's
// transaction id becomes the player id.
type PlayerService interface {
	Register(ctx context.Context, req RegisterPlayerRequest) (*RegisterPlayerResult, error)
	List(ctx context.Context) ([]domain.Player, error)
}

// RegisterPlayerRequest holds validated input for registration.
type RegisterPlayerRequest struct {
	TransactionID uuid.UUID
	Name          string
	BirthDate     time.Time
}

// RegisterPlayerResult is the registration outcome. Repeated marks a
// replay of an earlier successful registration.
type RegisterPlayerResult struct {
	Player   domain.Player
	WalletID uuid.UUID
	Repeated bool
}

// AuthService authenticates upstream service clients.
type AuthService interface {
	IssueToken(ctx context.Context, clientID, clientSecret string) (string, time.Time, error)
}

// TokenService handles JWT token operations.
type TokenService interface {
	Generate(clientID string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	ClientID string
}

// HashService verifies client secrets against stored Argon2id hashes.
type HashService interface {
	Hash(secret string) (string, error)
	Verify(secret string, hash string) (bool, error)
}
