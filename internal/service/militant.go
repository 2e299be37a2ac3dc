package service

import (
	"context"
	"log/slog"

	"github.com/piensaperu/api/internal/model"
)

// MilitantService handles militant business logic
type MilitantService struct {
	crud *entityService[model.Militant]
}

// MilitantServiceConfig holds configuration for the militant service
type MilitantServiceConfig struct {
	Repo       Repository[model.Militant]
	UnitOfWork UnitOfWork
	Logger     *slog.Logger
	Metrics    OperationRecorder
}

// NewMilitantService creates a new militant service
func NewMilitantService(cfg MilitantServiceConfig) *MilitantService {
	return &MilitantService{
		crud: newEntityService(entityService[model.Militant]{
			name:        "Militant",
			label:       "militant",
			notFoundErr: ErrMilitantNotFound,
			repo:        cfg.Repo,
			uow:         cfg.UnitOfWork,
			logger:      cfg.Logger,
			metrics:     cfg.Metrics,
			apply:       (*model.Militant).Apply,
		}),
	}
}

// List returns every militant
func (s *MilitantService) List(ctx context.Context) ([]*model.Militant, error) {
	return s.crud.list(ctx)
}

// GetByID retrieves a militant
func (s *MilitantService) GetByID(ctx context.Context, id int64) *model.MilitantResponse {
	return s.crud.getByID(ctx, id)
}

// Save stores a new militant
func (s *MilitantService) Save(ctx context.Context, m *model.Militant) *model.MilitantResponse {
	return s.crud.save(ctx, m)
}

// Update overwrites every field of militant id except its ID
func (s *MilitantService) Update(ctx context.Context, id int64, changed *model.Militant) *model.MilitantResponse {
	return s.crud.update(ctx, id, changed)
}

// Delete removes militant id
func (s *MilitantService) Delete(ctx context.Context, id int64) *model.MilitantResponse {
	return s.crud.delete(ctx, id)
}
