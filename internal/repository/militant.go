package repository

import (
	"context"

	"github.com/piensaperu/api/internal/database"
	"github.com/piensaperu/api/internal/model"
)

const militantFields = `record::id(id) AS id, first_name, last_name, birth_date, profession, picture_link`

// MilitantRepository handles militant data access
type MilitantRepository struct {
	db database.Database
}

// NewMilitantRepository creates a new militant repository
func NewMilitantRepository(db database.Database) *MilitantRepository {
	return &MilitantRepository{db: db}
}

// List returns all militants ordered by ID
func (r *MilitantRepository) List(ctx context.Context) ([]*model.Militant, error) {
	query := `SELECT ` + militantFields + ` FROM militant ORDER BY id`

	records, err := queryRecords(ctx, r.db, query, nil)
	if err != nil {
		return nil, err
	}

	militants := make([]*model.Militant, 0, len(records))
	for _, record := range records {
		militants = append(militants, r.parseMilitant(record))
	}
	return militants, nil
}

// FindByID retrieves a militant by ID, or nil when it does not exist
func (r *MilitantRepository) FindByID(ctx context.Context, id int64) (*model.Militant, error) {
	query := `SELECT ` + militantFields + ` FROM type::record('militant', $id)`
	vars := map[string]interface{}{"id": id}

	record, err := queryOneRecord(ctx, r.db, query, vars)
	if err != nil || record == nil {
		return nil, err
	}
	return r.parseMilitant(record), nil
}

// Add reserves an ID for m and stages its creation
func (r *MilitantRepository) Add(ctx context.Context, m *model.Militant) error {
	if _, ok := database.UnitOfWorkFromContext(ctx); !ok {
		return database.ErrNoUnitOfWork
	}

	id, err := database.NextID(ctx, r.db, "militant")
	if err != nil {
		return err
	}
	m.ID = id

	query := `
		CREATE type::record('militant', $id) CONTENT {
			first_name: $first_name,
			last_name: $last_name,
			birth_date: <datetime>$birth_date,
			profession: $profession,
			picture_link: $picture_link
		}
	`
	return stage(ctx, query, r.vars(m), func(context.Context) error {
		m.ID = 0
		return nil
	})
}

// Update stages the new field values of m
func (r *MilitantRepository) Update(ctx context.Context, m *model.Militant) error {
	query := `
		UPDATE type::record('militant', $id) SET
			first_name = $first_name,
			last_name = $last_name,
			birth_date = <datetime>$birth_date,
			profession = $profession,
			picture_link = $picture_link
	`
	return stage(ctx, query, r.vars(m), nil)
}

// Remove stages the deletion of m
func (r *MilitantRepository) Remove(ctx context.Context, m *model.Militant) error {
	query := `DELETE type::record('militant', $id)`
	return stage(ctx, query, map[string]interface{}{"id": m.ID}, nil)
}

func (r *MilitantRepository) vars(m *model.Militant) map[string]interface{} {
	return map[string]interface{}{
		"id":           m.ID,
		"first_name":   m.FirstName,
		"last_name":    m.LastName,
		"birth_date":   formatTime(m.BirthDate),
		"profession":   m.Profession,
		"picture_link": m.PictureLink,
	}
}

func (r *MilitantRepository) parseMilitant(data map[string]interface{}) *model.Militant {
	return &model.Militant{
		ID:          getInt64(data, "id"),
		FirstName:   getString(data, "first_name"),
		LastName:    getString(data, "last_name"),
		BirthDate:   getTime(data, "birth_date"),
		Profession:  getString(data, "profession"),
		PictureLink: getString(data, "picture_link"),
	}
}
