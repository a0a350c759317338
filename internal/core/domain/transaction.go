package domain

import (
	"github.com/shopspring/decimal"
)

// TransactionType is the kind of money movement against a wallet.
type TransactionType string

const (
	TransactionTypeDeposit      TransactionType = "DEPOSIT"
	TransactionTypeWithdrawal   TransactionType = "WITHDRAWAL"
	TransactionTypeWin          TransactionType = "WIN"
	TransactionTypeLoss         TransactionType = "LOSS"
	TransactionTypePenalty      TransactionType = "PENALTY"
	TransactionTypeConfiscation TransactionType = "CONFISCATION"
)

// Direction is the balance-effect class of a transaction type.
type Direction int

const (
	DirectionCredit Direction = iota // adds to balance
	DirectionDebit                   // subtracts from balance
)

// Classify maps a transaction type to its balance-effect class.
// Returns false for unknown types.
func (t TransactionType) Classify() (Direction, bool) {
	switch t {
	case TransactionTypeDeposit, TransactionTypeWin:
		return DirectionCredit, true
	case TransactionTypeWithdrawal, TransactionTypeLoss,
		TransactionTypePenalty, TransactionTypeConfiscation:
		return DirectionDebit, true
	default:
		return 0, false
	}
}

// SignedDelta converts a positive magnitude into the signed balance
// delta for this transaction type.
func (t TransactionType) SignedDelta(amount decimal.Decimal) (decimal.Decimal, bool) {
	dir, ok := t.Classify()
	if !ok {
		return decimal.Zero, false
	}
	if dir == DirectionDebit {
		return amount.Neg(), true
	}
	return amount, true
}

// ParseTransactionType validates a wire value against the known types.
func ParseTransactionType(s string) (TransactionType, bool) {
	t := TransactionType(s)
	_, ok := t.Classify()
	return t, ok
}
