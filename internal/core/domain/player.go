package domain

import (
	"time"

	"github.com/google/uuid"
)

// MinPlayerAge is the minimum age required to register.
const MinPlayerAge = 18

// Player is a registered account holder. The id is supplied by the
// caller at registration and doubles as the registration idempotency key.
type Player struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	BirthDate time.Time `json:"birth_date"`
	CreatedAt time.Time `json:"created_at"`
}

// IsAdult reports whether the player is of legal age at the given time.
func (p *Player) IsAdult(now time.Time) bool {
	return !p.BirthDate.AddDate(MinPlayerAge, 0, 0).After(now)
}
