package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OutcomeKind tags the terminal result recorded for a transaction id.
type OutcomeKind string

const (
	OutcomeCommitted               OutcomeKind = "COMMITTED"
	OutcomeRejectedNegativeBalance OutcomeKind = "REJECTED_NEGATIVE_BALANCE"
	OutcomeRejectedValidation      OutcomeKind = "REJECTED_VALIDATION"
)

// Rejection payload replayed for every negative-balance rejection.
const (
	NegativeBalanceCode    = 4
	NegativeBalanceMessage = "Transaction would result in negative wallet balance"
)

// WalletLog is one immutable row of the transaction log. It doubles as
// the idempotency key store and the audit trail: the memento holds the
// serialized payload of the outcome exactly as it was first answered.
type WalletLog struct {
	TransactionID uuid.UUID   `json:"transaction_id"`
	WalletID      uuid.UUID   `json:"wallet_id"`
	OutcomeKind   OutcomeKind `json:"outcome_kind"`
	Memento       []byte      `json:"memento"`
	CreatedAt     time.Time   `json:"created_at"`
}

// FieldError describes a single request-field validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// TransactionOutcome is the sum-type result of applying a transaction:
// exactly one variant payload is meaningful per Kind. Repeated marks a
// replayed answer as opposed to a fresh computation.
type TransactionOutcome struct {
	Kind          OutcomeKind
	TransactionID uuid.UUID
	Repeated      bool

	// Valid when Kind == OutcomeCommitted.
	Balance decimal.Decimal

	// Valid when Kind == OutcomeRejectedValidation.
	FieldErrors []FieldError
}

// committedMemento is the stored payload for a committed transaction.
type committedMemento struct {
	TransactionID uuid.UUID       `json:"transaction_id"`
	Balance       decimal.Decimal `json:"balance"`
}

// negativeBalanceMemento is the stored payload for a business rejection.
type negativeBalanceMemento struct {
	TransactionID uuid.UUID `json:"transaction_id"`
	Code          int       `json:"code"`
	Message       string    `json:"message"`
}

// validationMemento is the stored payload for a validation rejection.
type validationMemento struct {
	TransactionID uuid.UUID    `json:"transaction_id"`
	FieldErrors   []FieldError `json:"field_errors"`
}

// NewWalletLog serializes an outcome into its log entry. The entry is
// written in the same storage transaction as any wallet mutation the
// outcome caused.
func NewWalletLog(walletID uuid.UUID, outcome *TransactionOutcome, at time.Time) (*WalletLog, error) {
	var (
		memento []byte
		err     error
	)

	switch outcome.Kind {
	case OutcomeCommitted:
		memento, err = json.Marshal(committedMemento{
			TransactionID: outcome.TransactionID,
			Balance:       outcome.Balance,
		})
	case OutcomeRejectedNegativeBalance:
		memento, err = json.Marshal(negativeBalanceMemento{
			TransactionID: outcome.TransactionID,
			Code:          NegativeBalanceCode,
			Message:       NegativeBalanceMessage,
		})
	case OutcomeRejectedValidation:
		memento, err = json.Marshal(validationMemento{
			TransactionID: outcome.TransactionID,
			FieldErrors:   outcome.FieldErrors,
		})
	default:
		return nil, fmt.Errorf("unknown outcome kind %q", outcome.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("marshal memento: %w", err)
	}

	return &WalletLog{
		TransactionID: outcome.TransactionID,
		WalletID:      walletID,
		OutcomeKind:   outcome.Kind,
		Memento:       memento,
		CreatedAt:     at,
	}, nil
}

// ReplayOutcome reconstructs the original outcome from a log entry and
// marks it repeated. Rejections replay their stored payload verbatim,
// never re-validating against current wallet state.
func ReplayOutcome(entry *WalletLog) (*TransactionOutcome, error) {
	switch entry.OutcomeKind {
	case OutcomeCommitted:
		var m committedMemento
		if err := json.Unmarshal(entry.Memento, &m); err != nil {
			return nil, fmt.Errorf("unmarshal committed memento: %w", err)
		}
		return &TransactionOutcome{
			Kind:          OutcomeCommitted,
			TransactionID: m.TransactionID,
			Repeated:      true,
			Balance:       m.Balance,
		}, nil
	case OutcomeRejectedNegativeBalance:
		var m negativeBalanceMemento
		if err := json.Unmarshal(entry.Memento, &m); err != nil {
			return nil, fmt.Errorf("unmarshal rejection memento: %w", err)
		}
		return &TransactionOutcome{
			Kind:          OutcomeRejectedNegativeBalance,
			TransactionID: m.TransactionID,
			Repeated:      true,
		}, nil
	case OutcomeRejectedValidation:
		var m validationMemento
		if err := json.Unmarshal(entry.Memento, &m); err != nil {
			return nil, fmt.Errorf("unmarshal validation memento: %w", err)
		}
		return &TransactionOutcome{
			Kind:          OutcomeRejectedValidation,
			TransactionID: m.TransactionID,
			Repeated:      true,
			FieldErrors:   m.FieldErrors,
		}, nil
	default:
		return nil, fmt.Errorf("unknown outcome kind %q in log entry %s", entry.OutcomeKind, entry.TransactionID)
	}
}
