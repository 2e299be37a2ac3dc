package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/piensaperu/api/internal/model"
)

var calificationFields = []string{
	"id",
	"score",
	"ship_date",
	"user_id",
}

// CalificationRepository implements calification storage on PostgreSQL.
type CalificationRepository struct {
	sb squirrel.StatementBuilderType
}

// NewCalificationRepository creates a new instance of CalificationRepository.
func NewCalificationRepository(db squirrel.BaseRunner) *CalificationRepository {
	return &CalificationRepository{sb: builder(db)}
}

// List returns all califications ordered by ID.
func (r *CalificationRepository) List(ctx context.Context) ([]*model.Calification, error) {
	return r.list(ctx, r.sb.Select(calificationFields...).From("califications").OrderBy("id"))
}

// ListByUserID returns the califications given by a user.
func (r *CalificationRepository) ListByUserID(ctx context.Context, userID int64) ([]*model.Calification, error) {
	return r.list(ctx, r.sb.Select(calificationFields...).
		From("califications").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("id"))
}

func (r *CalificationRepository) list(ctx context.Context, qry squirrel.SelectBuilder) ([]*model.Calification, error) {
	rows, err := qry.QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	califications := []*model.Calification{}
	for rows.Next() {
		var c model.Calification
		if err := rows.Scan(&c.ID, &c.Score, &c.ShipDate, &c.UserID); err != nil {
			return nil, err
		}
		califications = append(califications, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return califications, nil
}

// FindByID retrieves a calification by ID, or nil when it does not exist.
func (r *CalificationRepository) FindByID(ctx context.Context, id int64) (*model.Calification, error) {
	var c model.Calification
	err := r.sb.Select(calificationFields...).
		From("califications").
		Where(squirrel.Eq{"id": id}).
		QueryRowContext(ctx).
		Scan(&c.ID, &c.Score, &c.ShipDate, &c.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Add stages an insert. c.ID is set when the unit of work completes.
func (r *CalificationRepository) Add(ctx context.Context, c *model.Calification) error {
	return stage(ctx, func(ctx context.Context, runner squirrel.BaseRunner) error {
		return builder(runner).
			Insert("califications").
			Columns("score", "ship_date", "user_id").
			Values(c.Score, c.ShipDate, c.UserID).
			Suffix("RETURNING id").
			QueryRowContext(ctx).
			Scan(&c.ID)
	})
}

// Update stages the new field values of c.
func (r *CalificationRepository) Update(ctx context.Context, c *model.Calification) error {
	return stage(ctx, func(ctx context.Context, runner squirrel.BaseRunner) error {
		_, err := builder(runner).
			Update("califications").
			Set("score", c.Score).
			Set("ship_date", c.ShipDate).
			Set("user_id", c.UserID).
			Where(squirrel.Eq{"id": c.ID}).
			ExecContext(ctx)
		return err
	})
}

// Remove stages the deletion of c.
func (r *CalificationRepository) Remove(ctx context.Context, c *model.Calification) error {
	return stage(ctx, func(ctx context.Context, runner squirrel.BaseRunner) error {
		_, err := builder(runner).
			Delete("califications").
			Where(squirrel.Eq{"id": c.ID}).
			ExecContext(ctx)
		return err
	})
}
