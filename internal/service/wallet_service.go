package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"player-wallet-service/internal/core/domain"
	"player-wallet-service/internal/core/ports"
	"player-wallet-service/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const replayTTL = 24 * time.Hour

// centGranularity is the smallest accepted currency step.
var centGranularity = decimal.NewFromFloat(0.01)

// WalletServiceImpl implements ports.WalletService: the idempotent
// transaction-application engine.
type WalletServiceImpl struct {
	walletRepo ports.WalletRepository
	logRepo    ports.WalletLogRepository
	cache      ports.ReplayCache
	transactor ports.DBTransactor
	maxAmount  decimal.Decimal
	log        zerolog.Logger
}

// NewWalletService creates a new WalletServiceImpl. maxAmount is the
// configured per-transaction ceiling.
func NewWalletService(
	walletRepo ports.WalletRepository,
	logRepo ports.WalletLogRepository,
	cache ports.ReplayCache,
	transactor ports.DBTransactor,
	maxAmount decimal.Decimal,
	log zerolog.Logger,
) *WalletServiceImpl {
	return &WalletServiceImpl{
		walletRepo: walletRepo,
		logRepo:    logRepo,
		cache:      cache,
		transactor: transactor,
		maxAmount:  maxAmount,
		log:        log,
	}
}

// ApplyTransaction admits req through the idempotency guard and, on a
// first attempt, runs the state transition. Every terminal outcome
// (commit, negative-balance rejection, validation rejection) leaves a
// log entry in the same atomic unit as any wallet mutation, so retries
// replay the original answer byte for byte. Conflicts and storage
// faults leave nothing behind and are surfaced for the caller to retry.
func (s *WalletServiceImpl) ApplyTransaction(ctx context.Context, req ports.ApplyTransactionRequest) (*domain.TransactionOutcome, error) {
	// Layer 1: Redis replay check.
	cached, err := s.cache.Get(ctx, req.TransactionID)
	if err != nil {
		s.log.Warn().Err(err).Str("tx_id", req.TransactionID.String()).Msg("redis replay check failed, falling through to DB")
	}
	if cached != nil {
		var entry domain.WalletLog
		if err := json.Unmarshal(cached, &entry); err == nil {
			return domain.ReplayOutcome(&entry)
		}
		s.log.Warn().Str("tx_id", req.TransactionID.String()).Msg("corrupt cached log entry, falling through to DB")
	}

	// Layer 2: authoritative transaction-log check.
	entry, err := s.logRepo.GetByTransactionID(ctx, req.TransactionID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("log lookup: %w", err))
	}
	if entry != nil {
		s.cacheEntry(ctx, entry)
		return domain.ReplayOutcome(entry)
	}

	// First attempt: amount bounds are checked before the wallet is
	// touched, and an out-of-bounds amount is itself a terminal,
	// logged outcome so its retry replays the same rejection.
	if fieldErrors := s.validateAmount(req.Amount); len(fieldErrors) > 0 {
		outcome := &domain.TransactionOutcome{
			Kind:          domain.OutcomeRejectedValidation,
			TransactionID: req.TransactionID,
			FieldErrors:   fieldErrors,
		}
		return s.commitOutcome(ctx, req.WalletID, outcome, nil, 0)
	}

	delta, ok := req.Type.SignedDelta(req.Amount)
	if !ok {
		return nil, apperror.ErrUnknownTransactionType(string(req.Type))
	}

	wallet, err := s.walletRepo.GetByID(ctx, req.WalletID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("load wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrWalletNotFound()
	}

	if !wallet.CanApply(delta) {
		outcome := &domain.TransactionOutcome{
			Kind:          domain.OutcomeRejectedNegativeBalance,
			TransactionID: req.TransactionID,
		}
		// The rejection is logged without mutating the wallet, so a
		// later retry replays it even if the balance has since grown.
		return s.commitOutcome(ctx, req.WalletID, outcome, nil, 0)
	}

	newBalance := wallet.Balance.Add(delta)
	outcome := &domain.TransactionOutcome{
		Kind:          domain.OutcomeCommitted,
		TransactionID: req.TransactionID,
		Balance:       newBalance,
	}
	result, err := s.commitOutcome(ctx, req.WalletID, outcome, &newBalance, wallet.Version)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("tx_id", req.TransactionID.String()).
		Str("wallet_id", req.WalletID.String()).
		Str("type", string(req.Type)).
		Str("amount", req.Amount.String()).
		Str("balance", newBalance.String()).
		Msg("transaction committed")

	return result, nil
}

// commitOutcome persists the log entry — and the wallet mutation when
// newBalance is non-nil — as one atomic unit. The balance write is
// conditioned on expectedVersion still matching; a version conflict or
// a lost uniqueness race on the log insert aborts without recording
// anything and maps to the retry-required conflict error.
func (s *WalletServiceImpl) commitOutcome(ctx context.Context, walletID uuid.UUID, outcome *domain.TransactionOutcome, newBalance *decimal.Decimal, expectedVersion int64) (*domain.TransactionOutcome, error) {
	entry, err := domain.NewWalletLog(walletID, outcome, time.Now().UTC())
	if err != nil {
		return nil, apperror.InternalError(err)
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if newBalance != nil {
		if err := s.walletRepo.UpdateBalance(ctx, dbTx, walletID, *newBalance, expectedVersion); err != nil {
			if errors.Is(err, ports.ErrVersionConflict) {
				s.log.Info().Str("tx_id", outcome.TransactionID.String()).Msg("version conflict, retry required")
				return nil, apperror.ErrTransactionConflict()
			}
			return nil, apperror.InternalError(fmt.Errorf("update balance: %w", err))
		}
	}

	if err := s.logRepo.Create(ctx, dbTx, entry); err != nil {
		if errors.Is(err, ports.ErrDuplicateTransaction) {
			s.log.Info().Str("tx_id", outcome.TransactionID.String()).Msg("lost uniqueness race on log insert, retry required")
			return nil, apperror.ErrTransactionConflict()
		}
		return nil, apperror.InternalError(fmt.Errorf("create log entry: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.cacheEntry(ctx, entry)
	return outcome, nil
}

// cacheEntry writes the serialized log entry to Redis, best-effort.
func (s *WalletServiceImpl) cacheEntry(ctx context.Context, entry *domain.WalletLog) {
	raw, err := json.Marshal(entry)
	if err != nil {
		s.log.Warn().Err(err).Str("tx_id", entry.TransactionID.String()).Msg("failed to marshal log entry for cache")
		return
	}
	if err := s.cache.Set(ctx, entry.TransactionID, raw, replayTTL); err != nil {
		s.log.Warn().Err(err).Str("tx_id", entry.TransactionID.String()).Msg("failed to cache log entry in redis")
	}
}

// validateAmount checks the positive-magnitude, cent-granularity and
// configured-ceiling bounds.
func (s *WalletServiceImpl) validateAmount(amount decimal.Decimal) []domain.FieldError {
	var fieldErrors []domain.FieldError

	if !amount.IsPositive() {
		fieldErrors = append(fieldErrors, domain.FieldError{
			Field:   "amount",
			Message: "must be greater than zero",
		})
	}
	if !amount.Mod(centGranularity).IsZero() {
		fieldErrors = append(fieldErrors, domain.FieldError{
			Field:   "amount",
			Message: "must be a multiple of 0.01",
		})
	}
	if amount.GreaterThan(s.maxAmount) {
		fieldErrors = append(fieldErrors, domain.FieldError{
			Field:   "amount",
			Message: fmt.Sprintf("must not exceed %s", s.maxAmount.String()),
		})
	}
	return fieldErrors
}

// GetBalance returns the current wallet balance. Pure read, outside
// the idempotency concern.
func (s *WalletServiceImpl) GetBalance(ctx context.Context, walletID uuid.UUID) (decimal.Decimal, error) {
	wallet, err := s.walletRepo.GetByID(ctx, walletID)
	if err != nil {
		return decimal.Zero, apperror.InternalError(fmt.Errorf("load wallet: %w", err))
	}
	if wallet == nil {
		return decimal.Zero, apperror.ErrWalletNotFound()
	}
	return wallet.Balance, nil
}
