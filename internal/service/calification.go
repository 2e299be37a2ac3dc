package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/piensaperu/api/internal/model"
)

// CalificationRepository defines the interface for calification storage
type CalificationRepository interface {
	Repository[model.Calification]
	ListByUserID(ctx context.Context, userID int64) ([]*model.Calification, error)
}

// CalificationService handles calification business logic
type CalificationService struct {
	crud *entityService[model.Calification]
	repo CalificationRepository
	now  func() time.Time
}

// CalificationServiceConfig holds configuration for the calification service
type CalificationServiceConfig struct {
	Repo       CalificationRepository
	UnitOfWork UnitOfWork
	Logger     *slog.Logger
	Metrics    OperationRecorder
	Now        func() time.Time
}

// NewCalificationService creates a new calification service
func NewCalificationService(cfg CalificationServiceConfig) *CalificationService {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &CalificationService{
		crud: newEntityService(entityService[model.Calification]{
			name:        "Calification",
			label:       "calification",
			notFoundErr: ErrCalificationNotFound,
			repo:        cfg.Repo,
			uow:         cfg.UnitOfWork,
			logger:      cfg.Logger,
			metrics:     cfg.Metrics,
			apply:       (*model.Calification).Apply,
		}),
		repo: cfg.Repo,
		now:  now,
	}
}

// List returns every calification
func (s *CalificationService) List(ctx context.Context) ([]*model.Calification, error) {
	return s.crud.list(ctx)
}

// ListByUserID returns the califications given by a user
func (s *CalificationService) ListByUserID(ctx context.Context, userID int64) ([]*model.Calification, error) {
	if userID <= 0 {
		s.crud.metrics.RecordOperation(s.crud.label, "list_by_user", OutcomeInvalid)
		return nil, ErrInvalidUserID
	}
	items, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		s.crud.metrics.RecordOperation(s.crud.label, "list_by_user", OutcomeError)
		s.crud.logger.ErrorContext(ctx, "list by user failed", "user_id", userID, "error", err)
		return nil, err
	}
	s.crud.metrics.RecordOperation(s.crud.label, "list_by_user", OutcomeSuccess)
	return items, nil
}

// GetByID retrieves a calification
func (s *CalificationService) GetByID(ctx context.Context, id int64) *model.CalificationResponse {
	return s.crud.getByID(ctx, id)
}

// Save stores c on behalf of userID. A zero ShipDate is stamped with the
// current time.
func (s *CalificationService) Save(ctx context.Context, userID int64, c *model.Calification) *model.CalificationResponse {
	if c != nil {
		c.UserID = userID
		if c.ShipDate.IsZero() {
			c.ShipDate = s.now().UTC()
		}
	}
	return s.crud.save(ctx, c)
}

// Update overwrites the score and ship date of calification id
func (s *CalificationService) Update(ctx context.Context, id int64, changed *model.Calification) *model.CalificationResponse {
	if changed != nil && changed.ShipDate.IsZero() {
		changed.ShipDate = s.now().UTC()
	}
	return s.crud.update(ctx, id, changed)
}

// Delete removes calification id
func (s *CalificationService) Delete(ctx context.Context, id int64) *model.CalificationResponse {
	return s.crud.delete(ctx, id)
}
