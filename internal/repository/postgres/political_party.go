package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/piensaperu/api/internal/model"
)

var politicalPartyFields = []string{
	"id",
	"name",
	"president_name",
	"foundation_date",
	"ideology",
	"position",
	"picture_link",
}

// PoliticalPartyRepository implements political party storage on PostgreSQL.
type PoliticalPartyRepository struct {
	sb squirrel.StatementBuilderType
}

// NewPoliticalPartyRepository creates a new instance of PoliticalPartyRepository.
func NewPoliticalPartyRepository(db squirrel.BaseRunner) *PoliticalPartyRepository {
	return &PoliticalPartyRepository{sb: builder(db)}
}

func scanPoliticalParty(row squirrel.RowScanner, p *model.PoliticalParty) error {
	return row.Scan(&p.ID, &p.Name, &p.PresidentName, &p.FoundationDate, &p.Ideology, &p.Position, &p.PictureLink)
}

// List returns all political parties ordered by ID.
func (r *PoliticalPartyRepository) List(ctx context.Context) ([]*model.PoliticalParty, error) {
	rows, err := r.sb.Select(politicalPartyFields...).From("political_parties").OrderBy("id").QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	parties := []*model.PoliticalParty{}
	for rows.Next() {
		var p model.PoliticalParty
		if err := scanPoliticalParty(rows, &p); err != nil {
			return nil, err
		}
		parties = append(parties, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return parties, nil
}

// FindByID retrieves a political party by ID, or nil when it does not exist.
func (r *PoliticalPartyRepository) FindByID(ctx context.Context, id int64) (*model.PoliticalParty, error) {
	var p model.PoliticalParty
	row := r.sb.Select(politicalPartyFields...).
		From("political_parties").
		Where(squirrel.Eq{"id": id}).
		QueryRowContext(ctx)
	err := scanPoliticalParty(row, &p)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Add stages an insert. p.ID is set when the unit of work completes.
func (r *PoliticalPartyRepository) Add(ctx context.Context, p *model.PoliticalParty) error {
	return stage(ctx, func(ctx context.Context, runner squirrel.BaseRunner) error {
		return builder(runner).
			Insert("political_parties").
			Columns("name", "president_name", "foundation_date", "ideology", "position", "picture_link").
			Values(p.Name, p.PresidentName, p.FoundationDate, p.Ideology, p.Position, p.PictureLink).
			Suffix("RETURNING id").
			QueryRowContext(ctx).
			Scan(&p.ID)
	})
}

// Update stages the new field values of p.
func (r *PoliticalPartyRepository) Update(ctx context.Context, p *model.PoliticalParty) error {
	return stage(ctx, func(ctx context.Context, runner squirrel.BaseRunner) error {
		_, err := builder(runner).
			Update("political_parties").
			Set("name", p.Name).
			Set("president_name", p.PresidentName).
			Set("foundation_date", p.FoundationDate).
			Set("ideology", p.Ideology).
			Set("position", p.Position).
			Set("picture_link", p.PictureLink).
			Where(squirrel.Eq{"id": p.ID}).
			ExecContext(ctx)
		return err
	})
}

// Remove stages the deletion of p.
func (r *PoliticalPartyRepository) Remove(ctx context.Context, p *model.PoliticalParty) error {
	return stage(ctx, func(ctx context.Context, runner squirrel.BaseRunner) error {
		_, err := builder(runner).
			Delete("political_parties").
			Where(squirrel.Eq{"id": p.ID}).
			ExecContext(ctx)
		return err
	})
}
