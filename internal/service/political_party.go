package service

import (
	"context"
	"log/slog"

	"github.com/piensaperu/api/internal/model"
)

// PoliticalPartyService handles political party business logic
type PoliticalPartyService struct {
	crud *entityService[model.PoliticalParty]
}

// PoliticalPartyServiceConfig holds configuration for the political party service
type PoliticalPartyServiceConfig struct {
	Repo       Repository[model.PoliticalParty]
	UnitOfWork UnitOfWork
	Logger     *slog.Logger
	Metrics    OperationRecorder
}

// NewPoliticalPartyService creates a new political party service
func NewPoliticalPartyService(cfg PoliticalPartyServiceConfig) *PoliticalPartyService {
	return &PoliticalPartyService{
		crud: newEntityService(entityService[model.PoliticalParty]{
			name:        "PoliticalParty",
			label:       "political_party",
			notFoundErr: ErrPoliticalPartyNotFound,
			repo:        cfg.Repo,
			uow:         cfg.UnitOfWork,
			logger:      cfg.Logger,
			metrics:     cfg.Metrics,
			apply:       (*model.PoliticalParty).Apply,
		}),
	}
}

// List returns every political party
func (s *PoliticalPartyService) List(ctx context.Context) ([]*model.PoliticalParty, error) {
	return s.crud.list(ctx)
}

// GetByID retrieves a political party
func (s *PoliticalPartyService) GetByID(ctx context.Context, id int64) *model.PoliticalPartyResponse {
	return s.crud.getByID(ctx, id)
}

// Save stores a new political party
func (s *PoliticalPartyService) Save(ctx context.Context, p *model.PoliticalParty) *model.PoliticalPartyResponse {
	return s.crud.save(ctx, p)
}

// Update overwrites every field of political party id except its ID
func (s *PoliticalPartyService) Update(ctx context.Context, id int64, changed *model.PoliticalParty) *model.PoliticalPartyResponse {
	return s.crud.update(ctx, id, changed)
}

// Delete removes political party id
func (s *PoliticalPartyService) Delete(ctx context.Context, id int64) *model.PoliticalPartyResponse {
	return s.crud.delete(ctx, id)
}
