package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Wallet holds a player's current balance. One wallet per player,
// created at registration, mutated only by the transaction engine.
type Wallet struct {
	ID        uuid.UUID       `json:"id"`
	PlayerID  uuid.UUID       `json:"player_id"`
	Balance   decimal.Decimal `json:"balance"`
	Version   int64           `json:"-"` // optimistic concurrency token, never business state
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CanApply reports whether applying the signed delta keeps the balance
// non-negative. Credits always pass.
func (w *Wallet) CanApply(delta decimal.Decimal) bool {
	return w.Balance.Add(delta).GreaterThanOrEqual(decimal.Zero)
}
