package integration

import (
	"context"
	"sort"
	"sync"

	"player-wallet-service/internal/core/domain"
	"player-wallet-service/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// --- In-Memory Wallet Repo ---

// inMemoryWalletRepo mimics the postgres adapter including the
// version-guarded conditional update, so concurrency tests exercise
// the same conflict signals the real store produces.
type inMemoryWalletRepo struct {
	mu      sync.RWMutex
	wallets map[uuid.UUID]*domain.Wallet
}

func newInMemoryWalletRepo() *inMemoryWalletRepo {
	return &inMemoryWalletRepo{wallets: make(map[uuid.UUID]*domain.Wallet)}
}

func (r *inMemoryWalletRepo) Create(ctx context.Context, tx pgx.Tx, w *domain.Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *w
	r.wallets[w.ID] = &cp
	registerUndo(tx, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.wallets, cp.ID)
	})
	return nil
}

func (r *inMemoryWalletRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.wallets[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r *inMemoryWalletRepo) GetByPlayerID(ctx context.Context, playerID uuid.UUID) (*domain.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, w := range r.wallets {
		if w.PlayerID == playerID {
			cp := *w
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryWalletRepo) UpdateBalance(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, balance decimal.Decimal, expectedVersion int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wallets[walletID]
	if !ok || w.Version != expectedVersion {
		return ports.ErrVersionConflict
	}
	prevBalance, prevVersion := w.Balance, w.Version
	w.Balance = balance
	w.Version++
	registerUndo(tx, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		w.Balance = prevBalance
		w.Version = prevVersion
	})
	return nil
}

// --- In-Memory Wallet Log Repo ---

type inMemoryWalletLogRepo struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]*domain.WalletLog
}

func newInMemoryWalletLogRepo() *inMemoryWalletLogRepo {
	return &inMemoryWalletLogRepo{entries: make(map[uuid.UUID]*domain.WalletLog)}
}

func (r *inMemoryWalletLogRepo) Create(ctx context.Context, tx pgx.Tx, entry *domain.WalletLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[entry.TransactionID]; exists {
		return ports.ErrDuplicateTransaction
	}
	cp := *entry
	r.entries[entry.TransactionID] = &cp
	registerUndo(tx, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.entries, entry.TransactionID)
	})
	return nil
}

func (r *inMemoryWalletLogRepo) GetByTransactionID(ctx context.Context, transactionID uuid.UUID) (*domain.WalletLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[transactionID]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

// --- In-Memory Player Repo ---

type inMemoryPlayerRepo struct {
	mu      sync.RWMutex
	players map[uuid.UUID]*domain.Player
}

func newInMemoryPlayerRepo() *inMemoryPlayerRepo {
	return &inMemoryPlayerRepo{players: make(map[uuid.UUID]*domain.Player)}
}

func (r *inMemoryPlayerRepo) Create(ctx context.Context, tx pgx.Tx, p *domain.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.players[p.ID]; exists {
		return ports.ErrDuplicatePlayerID
	}
	for _, existing := range r.players {
		if existing.Name == p.Name {
			return ports.ErrDuplicatePlayerName
		}
	}
	cp := *p
	r.players[p.ID] = &cp
	registerUndo(tx, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.players, cp.ID)
	})
	return nil
}

func (r *inMemoryPlayerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.players[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *inMemoryPlayerRepo) GetByName(ctx context.Context, name string) (*domain.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.players {
		if p.Name == name {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryPlayerRepo) List(ctx context.Context) ([]domain.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]domain.Player, 0, len(r.players))
	for _, p := range r.players {
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// --- In-Memory Transactor ---

// inMemoryTransactor serializes commit units under one lock and gives
// repositories rollback via registered undo closures, approximating
// the atomicity the real store provides.
type inMemoryTransactor struct {
	mu sync.Mutex
}

func newInMemoryTransactor() *inMemoryTransactor {
	return &inMemoryTransactor{}
}

func (t *inMemoryTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	t.mu.Lock()
	return &memTx{release: t.mu.Unlock}, nil
}

// memTx implements pgx.Tx over the in-memory stores. Rollback undoes
// every staged write in reverse order; after Commit it is a no-op.
type memTx struct {
	release func()
	undos   []func()
	done    bool
}

// registerUndo attaches an undo closure when tx is a memTx. Repo
// methods call it after each applied write.
func registerUndo(tx pgx.Tx, undo func()) {
	if m, ok := tx.(*memTx); ok {
		m.undos = append(m.undos, undo)
	}
}

func (t *memTx) Commit(ctx context.Context) error {
	if t.done {
		return pgx.ErrTxClosed
	}
	t.done = true
	t.undos = nil
	t.release()
	return nil
}

func (t *memTx) Rollback(ctx context.Context) error {
	if t.done {
		return pgx.ErrTxClosed
	}
	t.done = true
	for i := len(t.undos) - 1; i >= 0; i-- {
		t.undos[i]()
	}
	t.undos = nil
	t.release()
	return nil
}

func (t *memTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *memTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *memTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *memTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *memTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *memTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), nil
}
func (t *memTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *memTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}
func (t *memTx) Conn() *pgx.Conn { return nil }
