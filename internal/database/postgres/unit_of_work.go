package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/Masterminds/squirrel"
	"github.com/piensaperu/api/internal/database"
)

// Op is a staged write. It runs inside the transaction opened by Commit.
type Op func(ctx context.Context, runner squirrel.BaseRunner) error

// UnitOfWork collects the writes of one request and applies them in a single transaction
type UnitOfWork struct {
	mu  sync.Mutex
	db  *sql.DB
	ops []Op
}

// NewUnitOfWork creates a new instance of UnitOfWork.
func NewUnitOfWork(db *sql.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

// Stage queues op for the next Commit
func (u *UnitOfWork) Stage(op Op) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.ops = append(u.ops, op)
}

// Pending returns the number of staged writes
func (u *UnitOfWork) Pending() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.ops)
}

// Commit runs every staged write within one database transaction.
// Staged writes are consumed whether or not the commit succeeds.
func (u *UnitOfWork) Commit(ctx context.Context) error {
	u.mu.Lock()
	ops := u.ops
	u.ops = nil
	u.mu.Unlock()

	if len(ops) == 0 {
		return nil
	}

	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	for _, op := range ops {
		if err := op(ctx, tx); err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				return fmt.Errorf("transaction rollback error: %v, original error: %w", rbErr, err)
			}
			return err
		}
	}

	return tx.Commit()
}

type unitOfWorkKey struct{}

// ContextWithUnitOfWork returns a copy of ctx carrying uow
func ContextWithUnitOfWork(ctx context.Context, uow *UnitOfWork) context.Context {
	return context.WithValue(ctx, unitOfWorkKey{}, uow)
}

// UnitOfWorkFromContext returns the unit of work carried by ctx, if any
func UnitOfWorkFromContext(ctx context.Context) (*UnitOfWork, bool) {
	uow, ok := ctx.Value(unitOfWorkKey{}).(*UnitOfWork)
	return uow, ok
}

// Scope begins and completes context-scoped units of work
type Scope struct {
	db *sql.DB
}

// NewScope creates a scope over db
func NewScope(db *sql.DB) *Scope {
	return &Scope{db: db}
}

// Begin attaches a fresh unit of work to ctx
func (s *Scope) Begin(ctx context.Context) context.Context {
	return ContextWithUnitOfWork(ctx, NewUnitOfWork(s.db))
}

// Complete commits the unit of work carried by ctx
func (s *Scope) Complete(ctx context.Context) error {
	uow, ok := UnitOfWorkFromContext(ctx)
	if !ok {
		return database.ErrNoUnitOfWork
	}
	return uow.Commit(ctx)
}
