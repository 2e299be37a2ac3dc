package database

// Transaction utilities
//
// # TxBuilder
//
// Combines statements whose variables would otherwise collide.
// Variables are namespaced per statement ($id -> $v1_id):
//
//	tb := NewTxBuilder()
//	tb.Add("UPDATE type::record('militant', $id) SET ...", vars1)  // $id -> $v1_id
//	tb.Add("DELETE type::record('militant', $id)", vars2)          // $id -> $v2_id
//	ExecuteTransaction(ctx, db, tb)
//
// # UnitOfWork
//
// Collects the writes of one request. Statements accumulate until Commit,
// then run in a single BEGIN/COMMIT block. Rollback handlers registered with
// AddWithRollback run in reverse order when the commit fails:
//
//	uow := NewUnitOfWork(db, logger)
//	uow.AddWithRollback(query, vars, cleanupFunc)
//	uow.Commit(ctx)
//
// # Scope
//
// Attaches a UnitOfWork to a context and completes it later. This is what the
// service layer sees as its unit of work:
//
//	ctx = scope.Begin(ctx)
//	repo.Add(ctx, militant)   // staged
//	scope.Complete(ctx)       // committed

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
)

// TxBuilder builds atomic transaction queries with automatic variable namespacing.
type TxBuilder struct {
	statements []string
	vars       map[string]interface{}
	stmtCount  int
}

// NewTxBuilder creates a new transaction builder
func NewTxBuilder() *TxBuilder {
	return &TxBuilder{
		statements: make([]string, 0),
		vars:       make(map[string]interface{}),
	}
}

// Add adds a statement to the transaction, namespacing its variables.
// Returns the mapping from original to namespaced variable names.
func (tb *TxBuilder) Add(query string, vars map[string]interface{}) map[string]string {
	tb.stmtCount++

	// Longest names first so $id never rewrites part of $id_user
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})

	varMapping := make(map[string]string, len(names))
	placeholders := make([]string, 0, len(names)*2)
	for i, name := range names {
		newName := fmt.Sprintf("v%d_%s", tb.stmtCount, name)
		// Two passes through a unique token keep a renamed variable from being rewritten again
		token := fmt.Sprintf("\x00%d\x00", i)
		query = strings.ReplaceAll(query, "$"+name, token)
		placeholders = append(placeholders, token, "$"+newName)
		tb.vars[newName] = vars[name]
		varMapping[name] = newName
	}
	query = strings.NewReplacer(placeholders...).Replace(query)

	tb.statements = append(tb.statements, query)
	return varMapping
}

// AddRaw adds a raw statement without variable substitution
func (tb *TxBuilder) AddRaw(query string) {
	tb.statements = append(tb.statements, query)
}

// Len returns the number of statements added so far
func (tb *TxBuilder) Len() int {
	return len(tb.statements)
}

// Build returns the complete transaction query and merged variables
func (tb *TxBuilder) Build() (string, map[string]interface{}) {
	if len(tb.statements) == 0 {
		return "", nil
	}

	var sb strings.Builder
	sb.WriteString("BEGIN TRANSACTION;\n")
	for _, stmt := range tb.statements {
		stmt = strings.TrimSpace(stmt)
		sb.WriteString(stmt)
		if !strings.HasSuffix(stmt, ";") {
			sb.WriteString(";")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("COMMIT TRANSACTION;")

	return sb.String(), tb.vars
}

// ExecuteTransaction executes a transaction built with TxBuilder
func ExecuteTransaction(ctx context.Context, db Database, tb *TxBuilder) ([]interface{}, error) {
	query, vars := tb.Build()
	if query == "" {
		return nil, nil
	}

	return db.Query(ctx, query, vars)
}

// UnitOfWork is the set of writes staged during one request
type UnitOfWork struct {
	mu        sync.Mutex
	db        Database
	logger    *slog.Logger
	builder   *TxBuilder
	rollbacks []func(ctx context.Context) error
}

// NewUnitOfWork creates a new unit of work
func NewUnitOfWork(db Database, logger *slog.Logger) *UnitOfWork {
	if logger == nil {
		logger = slog.Default()
	}
	return &UnitOfWork{
		db:      db,
		logger:  logger,
		builder: NewTxBuilder(),
	}
}

// Add stages a statement
func (uow *UnitOfWork) Add(query string, vars map[string]interface{}) {
	uow.AddWithRollback(query, vars, nil)
}

// AddWithRollback stages a statement with a handler that runs if Commit fails
func (uow *UnitOfWork) AddWithRollback(query string, vars map[string]interface{}, rollback func(ctx context.Context) error) {
	uow.mu.Lock()
	defer uow.mu.Unlock()

	uow.builder.Add(query, vars)
	if rollback != nil {
		uow.rollbacks = append(uow.rollbacks, rollback)
	}
}

// Pending returns the number of staged statements
func (uow *UnitOfWork) Pending() int {
	uow.mu.Lock()
	defer uow.mu.Unlock()
	return uow.builder.Len()
}

// Commit executes every staged statement atomically and resets the unit of
// work. Committing with nothing staged is a no-op.
func (uow *UnitOfWork) Commit(ctx context.Context) error {
	uow.mu.Lock()
	builder, rollbacks := uow.builder, uow.rollbacks
	uow.builder, uow.rollbacks = NewTxBuilder(), nil
	uow.mu.Unlock()

	if builder.Len() == 0 {
		return nil
	}

	if _, err := ExecuteTransaction(ctx, uow.db, builder); err != nil {
		for i := len(rollbacks) - 1; i >= 0; i-- {
			if rbErr := rollbacks[i](ctx); rbErr != nil {
				uow.logger.Error("rollback handler failed", "error", rbErr)
			}
		}
		return fmt.Errorf("commit failed: %w", err)
	}

	uow.logger.Debug("unit of work committed", "statements", builder.Len())
	return nil
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
	db     Database
	logger *slog.Logger
}

// NewScope creates a scope over db
func NewScope(db Database, logger *slog.Logger) *Scope {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scope{db: db, logger: logger}
}

// Begin attaches a fresh unit of work to ctx
func (s *Scope) Begin(ctx context.Context) context.Context {
	return ContextWithUnitOfWork(ctx, NewUnitOfWork(s.db, s.logger))
}

// Complete commits the unit of work carried by ctx
func (s *Scope) Complete(ctx context.Context) error {
	uow, ok := UnitOfWorkFromContext(ctx)
	if !ok {
		return ErrNoUnitOfWork
	}
	return uow.Commit(ctx)
}
