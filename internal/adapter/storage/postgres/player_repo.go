package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"player-wallet-service/internal/core/domain"
	"player-wallet-service/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PlayerRepo implements ports.PlayerRepository.
type PlayerRepo struct {
	pool Pool
}

// NewPlayerRepo creates a new PlayerRepo.
func NewPlayerRepo(pool Pool) *PlayerRepo {
	return &PlayerRepo{pool: pool}
}

// Create inserts a player inside the provisioning transaction. Unique
// violations are mapped by constraint: the name index signals a
// business conflict, the primary key a registration race.
func (r *PlayerRepo) Create(ctx context.Context, tx pgx.Tx, p *domain.Player) error {
	query := `INSERT INTO players (id, name, active, birth_date, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := tx.Exec(ctx, query, p.ID, p.Name, p.Active, p.BirthDate, p.CreatedAt)
	if err != nil {
		if constraint, ok := uniqueViolation(err); ok {
			if strings.Contains(constraint, "name") {
				return ports.ErrDuplicatePlayerName
			}
			return ports.ErrDuplicatePlayerID
		}
		return fmt.Errorf("insert player: %w", err)
	}
	return nil
}

// GetByID fetches a player by id. Returns nil, nil when absent.
func (r *PlayerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Player, error) {
	query := `SELECT id, name, active, birth_date, created_at FROM players WHERE id = $1`
	return r.scanPlayer(r.pool.QueryRow(ctx, query, id))
}

// GetByName fetches a player by name. Returns nil, nil when absent.
func (r *PlayerRepo) GetByName(ctx context.Context, name string) (*domain.Player, error) {
	query := `SELECT id, name, active, birth_date, created_at FROM players WHERE name = $1`
	return r.scanPlayer(r.pool.QueryRow(ctx, query, name))
}

// List returns all players, oldest first.
func (r *PlayerRepo) List(ctx context.Context) ([]domain.Player, error) {
	query := `SELECT id, name, active, birth_date, created_at FROM players ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	defer rows.Close()

	var players []domain.Player
	for rows.Next() {
		var p domain.Player
		if err := rows.Scan(&p.ID, &p.Name, &p.Active, &p.BirthDate, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate players: %w", err)
	}
	return players, nil
}

func (r *PlayerRepo) scanPlayer(row pgx.Row) (*domain.Player, error) {
	p := &domain.Player{}
	err := row.Scan(&p.ID, &p.Name, &p.Active, &p.BirthDate, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get player: %w", err)
	}
	return p, nil
}
