package service

import (
	"context"
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

// PlayerServiceImpl implements ports.PlayerService. Registration is the
// simpler instance of the idempotency pattern: the caller-supplied
// transaction id becomes the player id, so a retried registration finds
// the existing player and replays the original result.
type PlayerServiceImpl struct {
	playerRepo ports.PlayerRepository
	walletRepo ports.WalletRepository
	transactor ports.DBTransactor
	log        zerolog.Logger
}

// NewPlayerService creates a new PlayerServiceImpl.
func NewPlayerService(
	playerRepo ports.PlayerRepository,
	walletRepo ports.WalletRepository,
	transactor ports.DBTransactor,
	log zerolog.Logger,
) *PlayerServiceImpl {
	return &PlayerServiceImpl{
		playerRepo: playerRepo,
		walletRepo: walletRepo,
		transactor: transactor,
		log:        log,
	}
}

// Register creates a player and their wallet atomically. A duplicate
// transaction id replays the earlier registration; a duplicate name
// under a different id is a hard conflict.
func (s *PlayerServiceImpl) Register(ctx context.Context, req ports.RegisterPlayerRequest) (*ports.RegisterPlayerResult, error) {
	existing, err := s.playerRepo.GetByID(ctx, req.TransactionID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("player lookup: %w", err))
	}
	if existing != nil {
		return s.replay(ctx, existing)
	}

	now := time.Now().UTC()
	player := &domain.Player{
		ID:        req.TransactionID,
		Name:      req.Name,
		Active:    true,
		BirthDate: req.BirthDate,
		CreatedAt: now,
	}
	if !player.IsAdult(now) {
		return nil, apperror.ErrPlayerUnderage()
	}

	wallet := &domain.Wallet{
		ID:        uuid.New(),
		PlayerID:  player.ID,
		Balance:   decimal.Zero,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := s.playerRepo.Create(ctx, dbTx, player); err != nil {
		switch {
		case errors.Is(err, ports.ErrDuplicatePlayerID):
			// A racing retry won the insert; the retry that lost must
			// resubmit and be answered by the replay path.
			return nil, apperror.ErrTransactionConflict()
		case errors.Is(err, ports.ErrDuplicatePlayerName):
			return nil, apperror.ErrPlayerNameConflict(req.Name)
		default:
			return nil, apperror.InternalError(fmt.Errorf("create player: %w", err))
		}
	}

	if err := s.walletRepo.Create(ctx, dbTx, wallet); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create wallet: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("player_id", player.ID.String()).
		Str("wallet_id", wallet.ID.String()).
		Msg("player registered")

	return &ports.RegisterPlayerResult{
		Player:   *player,
		WalletID: wallet.ID,
		Repeated: false,
	}, nil
}

// replay answers a duplicate registration from stored state.
func (s *PlayerServiceImpl) replay(ctx context.Context, player *domain.Player) (*ports.RegisterPlayerResult, error) {
	wallet, err := s.walletRepo.GetByPlayerID(ctx, player.ID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("wallet lookup: %w", err))
	}
	if wallet == nil {
		return nil, apperror.InternalError(fmt.Errorf("player %s has no wallet", player.ID))
	}
	return &ports.RegisterPlayerResult{
		Player:   *player,
		WalletID: wallet.ID,
		Repeated: true,
	}, nil
}

// List returns all registered players.
func (s *PlayerServiceImpl) List(ctx context.Context) ([]domain.Player, error) {
	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list players: %w", err))
	}
	return players, nil
}
