package repository

import (
	"context"

	"github.com/piensaperu/api/internal/database"
	"github.com/piensaperu/api/internal/model"
)

const calificationFields = `record::id(id) AS id, score, ship_date, user_id`

// CalificationRepository handles calification data access
type CalificationRepository struct {
	db database.Database
}

// NewCalificationRepository creates a new calification repository
func NewCalificationRepository(db database.Database) *CalificationRepository {
	return &CalificationRepository{db: db}
}

// List returns all califications ordered by ID
func (r *CalificationRepository) List(ctx context.Context) ([]*model.Calification, error) {
	query := `SELECT ` + calificationFields + ` FROM calification ORDER BY id`

	records, err := queryRecords(ctx, r.db, query, nil)
	if err != nil {
		return nil, err
	}
	return r.parseCalifications(records), nil
}

// ListByUserID returns the califications given by a user
func (r *CalificationRepository) ListByUserID(ctx context.Context, userID int64) ([]*model.Calification, error) {
	query := `SELECT ` + calificationFields + ` FROM calification WHERE user_id = $user_id ORDER BY id`
	vars := map[string]interface{}{"user_id": userID}

	records, err := queryRecords(ctx, r.db, query, vars)
	if err != nil {
		return nil, err
	}
	return r.parseCalifications(records), nil
}

// FindByID retrieves a calification by ID, or nil when it does not exist
func (r *CalificationRepository) FindByID(ctx context.Context, id int64) (*model.Calification, error) {
	query := `SELECT ` + calificationFields + ` FROM type::record('calification', $id)`
	vars := map[string]interface{}{"id": id}

	record, err := queryOneRecord(ctx, r.db, query, vars)
	if err != nil || record == nil {
		return nil, err
	}
	return r.parseCalification(record), nil
}

// Add reserves an ID for c and stages its creation
func (r *CalificationRepository) Add(ctx context.Context, c *model.Calification) error {
	if _, ok := database.UnitOfWorkFromContext(ctx); !ok {
		return database.ErrNoUnitOfWork
	}

	id, err := database.NextID(ctx, r.db, "calification")
	if err != nil {
		return err
	}
	c.ID = id

	query := `
		CREATE type::record('calification', $id) CONTENT {
			score: $score,
			ship_date: <datetime>$ship_date,
			user_id: $user_id
		}
	`
	return stage(ctx, query, r.vars(c), func(context.Context) error {
		c.ID = 0
		return nil
	})
}

// Update stages the new field values of c
func (r *CalificationRepository) Update(ctx context.Context, c *model.Calification) error {
	query := `
		UPDATE type::record('calification', $id) SET
			score = $score,
			ship_date = <datetime>$ship_date,
			user_id = $user_id
	`
	return stage(ctx, query, r.vars(c), nil)
}

// Remove stages the deletion of c
func (r *CalificationRepository) Remove(ctx context.Context, c *model.Calification) error {
	query := `DELETE type::record('calification', $id)`
	return stage(ctx, query, map[string]interface{}{"id": c.ID}, nil)
}

func (r *CalificationRepository) vars(c *model.Calification) map[string]interface{} {
	return map[string]interface{}{
		"id":        c.ID,
		"score":     c.Score,
		"ship_date": formatTime(c.ShipDate),
		"user_id":   c.UserID,
	}
}

func (r *CalificationRepository) parseCalification(data map[string]interface{}) *model.Calification {
	return &model.Calification{
		ID:       getInt64(data, "id"),
		Score:    int(getInt64(data, "score")),
		ShipDate: getTime(data, "ship_date"),
		UserID:   getInt64(data, "user_id"),
	}
}

func (r *CalificationRepository) parseCalifications(records []map[string]interface{}) []*model.Calification {
	califications := make([]*model.Calification, 0, len(records))
	for _, record := range records {
		califications = append(califications, r.parseCalification(record))
	}
	return califications
}
