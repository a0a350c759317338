package dto

import (
	"time"

	"player-wallet-service/internal/core/domain"
)

// TokenRequest is the request body for client token issuance.
type TokenRequest struct {
	ClientID     string `json:"client_id" binding:"required,max=100"`
	ClientSecret string `json:"client_secret" binding:"required,max=256"`
}

// TokenResponse is the response body for successful token issuance.
type TokenResponse struct {
	Token  string `json:"token"`
	Expiry int64  `json:"expiry"` // Unix timestamp
}

// ApplyTransactionRequest is the request body for transaction
// application. The wallet id comes from the URL path; the amount is a
// decimal string so no precision is lost in transit. Bounds checks
// (granularity, ceiling) are the engine's job and produce logged,
// replayable rejections; binding only enforces shape.
type ApplyTransactionRequest struct {
	TransactionID string `json:"transaction_id" binding:"required,uuid"`
	Type          string `json:"type" binding:"required,max=20"`
	Amount        string `json:"amount" binding:"required,decimal_amount"`
}

// TransactionOutcomeResponse is the response body for all terminal
// transaction outcomes. Exactly the fields meaningful for the outcome
// are set; the same body is replayed for a duplicate transaction id
// with repeated=true.
type TransactionOutcomeResponse struct {
	TransactionID string              `json:"transaction_id"`
	Outcome       string              `json:"outcome"`
	Repeated      bool                `json:"repeated"`
	Balance       *string             `json:"balance,omitempty"`
	Code          *int                `json:"code,omitempty"`
	Message       *string             `json:"message,omitempty"`
	Errors        []domain.FieldError `json:"errors,omitempty"`
}

// NewTransactionOutcomeResponse maps a domain outcome to its wire shape.
func NewTransactionOutcomeResponse(o *domain.TransactionOutcome) TransactionOutcomeResponse {
	resp := TransactionOutcomeResponse{
		TransactionID: o.TransactionID.String(),
		Outcome:       string(o.Kind),
		Repeated:      o.Repeated,
	}
	switch o.Kind {
	case domain.OutcomeCommitted:
		balance := o.Balance.String()
		resp.Balance = &balance
	case domain.OutcomeRejectedNegativeBalance:
		code := domain.NegativeBalanceCode
		message := domain.NegativeBalanceMessage
		resp.Code = &code
		resp.Message = &message
	case domain.OutcomeRejectedValidation:
		resp.Errors = o.FieldErrors
	}
	return resp
}

// BalanceResponse is the response for a wallet balance query.
type BalanceResponse struct {
	WalletID string `json:"wallet_id"`
	Balance  string `json:"balance"`
}

// RegisterPlayerRequest is the request body for player registration.
// The caller-supplied id doubles as the idempotency key.
type RegisterPlayerRequest struct {
	ID        string `json:"id" binding:"required,uuid"`
	Name      string `json:"name" binding:"required,min=1,max=100"`
	BirthDate string `json:"birth_date" binding:"required,datetime=2006-01-02"`
}

// ParseBirthDate parses the bound birth_date field.
func (r *RegisterPlayerRequest) ParseBirthDate() (time.Time, error) {
	return time.Parse("2006-01-02", r.BirthDate)
}

// PlayerResponse is the response body for registration and listing.
type PlayerResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Active    bool   `json:"active"`
	BirthDate string `json:"birth_date"`
	CreatedAt string `json:"created_at"`
	WalletID  string `json:"wallet_id,omitempty"`
	Repeated  bool   `json:"repeated,omitempty"`
}

// NewPlayerResponse maps a domain player to its wire shape.
func NewPlayerResponse(p *domain.Player) PlayerResponse {
	return PlayerResponse{
		ID:        p.ID.String(),
		Name:      p.Name,
		Active:    p.Active,
		BirthDate: p.BirthDate.Format("2006-01-02"),
		CreatedAt: p.CreatedAt.UTC().Format(time.RFC3339),
	}
}
