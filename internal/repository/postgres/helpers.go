// Package postgres implements the repositories on PostgreSQL with squirrel.
//
// Reads run directly on the *sql.DB. Writes are staged on the unit of work
// carried by the context and run inside its transaction on Complete.
package postgres

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/piensaperu/api/internal/database"
	pgdb "github.com/piensaperu/api/internal/database/postgres"
)

// builder returns a statement builder using $n placeholders bound to runner
func builder(runner squirrel.BaseRunner) squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).RunWith(runner)
}

// stage queues op on the unit of work carried by ctx
func stage(ctx context.Context, op pgdb.Op) error {
	uow, ok := pgdb.UnitOfWorkFromContext(ctx)
	if !ok {
		return database.ErrNoUnitOfWork
	}
	uow.Stage(op)
	return nil
}
