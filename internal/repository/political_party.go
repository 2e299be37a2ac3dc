package repository

import (
	"context"

	"github.com/piensaperu/api/internal/database"
	"github.com/piensaperu/api/internal/model"
)

const politicalPartyFields = `record::id(id) AS id, name, president_name, foundation_date, ideology, position, picture_link`

// PoliticalPartyRepository handles political party data access
type PoliticalPartyRepository struct {
	db database.Database
}

// NewPoliticalPartyRepository creates a new political party repository
func NewPoliticalPartyRepository(db database.Database) *PoliticalPartyRepository {
	return &PoliticalPartyRepository{db: db}
}

// List returns all political parties ordered by ID
func (r *PoliticalPartyRepository) List(ctx context.Context) ([]*model.PoliticalParty, error) {
	query := `SELECT ` + politicalPartyFields + ` FROM political_party ORDER BY id`

	records, err := queryRecords(ctx, r.db, query, nil)
	if err != nil {
		return nil, err
	}

	parties := make([]*model.PoliticalParty, 0, len(records))
	for _, record := range records {
		parties = append(parties, r.parsePoliticalParty(record))
	}
	return parties, nil
}

// FindByID retrieves a political party by ID, or nil when it does not exist
func (r *PoliticalPartyRepository) FindByID(ctx context.Context, id int64) (*model.PoliticalParty, error) {
	query := `SELECT ` + politicalPartyFields + ` FROM type::record('political_party', $id)`
	vars := map[string]interface{}{"id": id}

	record, err := queryOneRecord(ctx, r.db, query, vars)
	if err != nil || record == nil {
		return nil, err
	}
	return r.parsePoliticalParty(record), nil
}

// Add reserves an ID for p and stages its creation
func (r *PoliticalPartyRepository) Add(ctx context.Context, p *model.PoliticalParty) error {
	if _, ok := database.UnitOfWorkFromContext(ctx); !ok {
		return database.ErrNoUnitOfWork
	}

	id, err := database.NextID(ctx, r.db, "political_party")
	if err != nil {
		return err
	}
	p.ID = id

	query := `
		CREATE type::record('political_party', $id) CONTENT {
			name: $name,
			president_name: $president_name,
			foundation_date: <datetime>$foundation_date,
			ideology: $ideology,
			position: $position,
			picture_link: $picture_link
		}
	`
	return stage(ctx, query, r.vars(p), func(context.Context) error {
		p.ID = 0
		return nil
	})
}

// Update stages the new field values of p
func (r *PoliticalPartyRepository) Update(ctx context.Context, p *model.PoliticalParty) error {
	query := `
		UPDATE type::record('political_party', $id) SET
			name = $name,
			president_name = $president_name,
			foundation_date = <datetime>$foundation_date,
			ideology = $ideology,
			position = $position,
			picture_link = $picture_link
	`
	return stage(ctx, query, r.vars(p), nil)
}

// Remove stages the deletion of p
func (r *PoliticalPartyRepository) Remove(ctx context.Context, p *model.PoliticalParty) error {
	query := `DELETE type::record('political_party', $id)`
	return stage(ctx, query, map[string]interface{}{"id": p.ID}, nil)
}

func (r *PoliticalPartyRepository) vars(p *model.PoliticalParty) map[string]interface{} {
	return map[string]interface{}{
		"id":              p.ID,
		"name":            p.Name,
		"president_name":  p.PresidentName,
		"foundation_date": formatTime(p.FoundationDate),
		"ideology":        p.Ideology,
		"position":        p.Position,
		"picture_link":    p.PictureLink,
	}
}

func (r *PoliticalPartyRepository) parsePoliticalParty(data map[string]interface{}) *model.PoliticalParty {
	return &model.PoliticalParty{
		ID:             getInt64(data, "id"),
		Name:           getString(data, "name"),
		PresidentName:  getString(data, "president_name"),
		FoundationDate: getTime(data, "foundation_date"),
		Ideology:       getString(data, "ideology"),
		Position:       getString(data, "position"),
		PictureLink:    getString(data, "picture_link"),
	}
}
