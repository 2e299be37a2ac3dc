package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/piensaperu/api/internal/model"
)

var militantFields = []string{
	"id",
	"first_name",
	"last_name",
	"birth_date",
	"profession",
	"picture_link",
}

// MilitantRepository implements militant storage on PostgreSQL.
type MilitantRepository struct {
	sb squirrel.StatementBuilderType
}

// NewMilitantRepository creates a new instance of MilitantRepository.
func NewMilitantRepository(db squirrel.BaseRunner) *MilitantRepository {
	return &MilitantRepository{sb: builder(db)}
}

// List returns all militants ordered by ID.
func (r *MilitantRepository) List(ctx context.Context) ([]*model.Militant, error) {
	rows, err := r.sb.Select(militantFields...).From("militants").OrderBy("id").QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	militants := []*model.Militant{}
	for rows.Next() {
		var m model.Militant
		if err := rows.Scan(&m.ID, &m.FirstName, &m.LastName, &m.BirthDate, &m.Profession, &m.PictureLink); err != nil {
			return nil, err
		}
		militants = append(militants, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return militants, nil
}

// FindByID retrieves a militant by ID, or nil when it does not exist.
func (r *MilitantRepository) FindByID(ctx context.Context, id int64) (*model.Militant, error) {
	var m model.Militant
	err := r.sb.Select(militantFields...).
		From("militants").
		Where(squirrel.Eq{"id": id}).
		QueryRowContext(ctx).
		Scan(&m.ID, &m.FirstName, &m.LastName, &m.BirthDate, &m.Profession, &m.PictureLink)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Add stages an insert. m.ID is set when the unit of work completes.
func (r *MilitantRepository) Add(ctx context.Context, m *model.Militant) error {
	return stage(ctx, func(ctx context.Context, runner squirrel.BaseRunner) error {
		return builder(runner).
			Insert("militants").
			Columns("first_name", "last_name", "birth_date", "profession", "picture_link").
			Values(m.FirstName, m.LastName, m.BirthDate, m.Profession, m.PictureLink).
			Suffix("RETURNING id").
			QueryRowContext(ctx).
			Scan(&m.ID)
	})
}

// Update stages the new field values of m.
func (r *MilitantRepository) Update(ctx context.Context, m *model.Militant) error {
	return stage(ctx, func(ctx context.Context, runner squirrel.BaseRunner) error {
		_, err := builder(runner).
			Update("militants").
			Set("first_name", m.FirstName).
			Set("last_name", m.LastName).
			Set("birth_date", m.BirthDate).
			Set("profession", m.Profession).
			Set("picture_link", m.PictureLink).
			Where(squirrel.Eq{"id": m.ID}).
			ExecContext(ctx)
		return err
	})
}

// Remove stages the deletion of m.
func (r *MilitantRepository) Remove(ctx context.Context, m *model.Militant) error {
	return stage(ctx, func(ctx context.Context, runner squirrel.BaseRunner) error {
		_, err := builder(runner).
			Delete("militants").
			Where(squirrel.Eq{"id": m.ID}).
			ExecContext(ctx)
		return err
	})
}
