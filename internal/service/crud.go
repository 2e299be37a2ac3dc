package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/piensaperu/api/internal/model"
)

// Repository is the storage contract shared by every entity.
// FindByID returns (nil, nil) when the entity does not exist. Add, Update
// and Remove are staged on the unit of work carried by ctx.
type Repository[T any] interface {
	List(ctx context.Context) ([]*T, error)
	FindByID(ctx context.Context, id int64) (*T, error)
	Add(ctx context.Context, entity *T) error
	Update(ctx context.Context, entity *T) error
	Remove(ctx context.Context, entity *T) error
}

// UnitOfWork commits the writes staged during a request
type UnitOfWork interface {
	Complete(ctx context.Context) error
}

// OperationRecorder counts service outcomes
type OperationRecorder interface {
	RecordOperation(entity, operation, outcome string)
}

// Operation outcomes reported to the OperationRecorder
const (
	OutcomeSuccess  = "success"
	OutcomeNotFound = "not_found"
	OutcomeInvalid  = "invalid"
	OutcomeError    = "error"
)

var verbs = map[string]string{
	"get":    "finding",
	"save":   "saving",
	"update": "updating",
	"delete": "deleting",
}

type nopRecorder struct{}

func (nopRecorder) RecordOperation(string, string, string) {}

// entityService is the CRUD template the typed services delegate to
type entityService[T any] struct {
	name        string
	label       string
	notFoundErr error
	repo        Repository[T]
	uow         UnitOfWork
	logger      *slog.Logger
	metrics     OperationRecorder
	apply       func(dst, src *T)
}

// newEntityService fills in the logger and recorder defaults of s
func newEntityService[T any](s entityService[T]) *entityService[T] {
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.logger = s.logger.With("entity", s.label)
	if s.metrics == nil {
		s.metrics = nopRecorder{}
	}
	return &s
}

func (s *entityService[T]) list(ctx context.Context) ([]*T, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		s.metrics.RecordOperation(s.label, "list", OutcomeError)
		s.logger.ErrorContext(ctx, "list failed", "error", err)
		return nil, err
	}
	s.metrics.RecordOperation(s.label, "list", OutcomeSuccess)
	return items, nil
}

func (s *entityService[T]) getByID(ctx context.Context, id int64) *model.Response[*T] {
	entity, resp := s.find(ctx, "get", id)
	if resp != nil {
		return resp
	}
	s.metrics.RecordOperation(s.label, "get", OutcomeSuccess)
	return model.NewSuccessResponse(entity)
}

func (s *entityService[T]) save(ctx context.Context, entity *T) *model.Response[*T] {
	if entity == nil {
		return s.fail(ctx, "save", ErrNilEntity)
	}
	if err := model.Validate(entity); err != nil {
		return s.fail(ctx, "save", err)
	}
	if err := s.repo.Add(ctx, entity); err != nil {
		return s.fail(ctx, "save", err)
	}
	if err := s.uow.Complete(ctx); err != nil {
		return s.fail(ctx, "save", err)
	}

	s.metrics.RecordOperation(s.label, "save", OutcomeSuccess)
	return model.NewSuccessResponse(entity)
}

func (s *entityService[T]) update(ctx context.Context, id int64, changed *T) *model.Response[*T] {
	if changed == nil {
		return s.fail(ctx, "update", ErrNilEntity)
	}

	existing, resp := s.find(ctx, "update", id)
	if resp != nil {
		return resp
	}

	s.apply(existing, changed)
	if err := model.Validate(existing); err != nil {
		return s.fail(ctx, "update", err)
	}
	if err := s.repo.Update(ctx, existing); err != nil {
		return s.fail(ctx, "update", err)
	}
	if err := s.uow.Complete(ctx); err != nil {
		return s.fail(ctx, "update", err)
	}

	s.metrics.RecordOperation(s.label, "update", OutcomeSuccess)
	return model.NewSuccessResponse(existing)
}

func (s *entityService[T]) delete(ctx context.Context, id int64) *model.Response[*T] {
	existing, resp := s.find(ctx, "delete", id)
	if resp != nil {
		return resp
	}

	if err := s.repo.Remove(ctx, existing); err != nil {
		return s.fail(ctx, "delete", err)
	}
	if err := s.uow.Complete(ctx); err != nil {
		return s.fail(ctx, "delete", err)
	}

	s.metrics.RecordOperation(s.label, "delete", OutcomeSuccess)
	return model.NewSuccessResponse(existing)
}

// find loads id, answering with a failed response when it cannot
func (s *entityService[T]) find(ctx context.Context, operation string, id int64) (*T, *model.Response[*T]) {
	entity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, operation, err)
	}
	if entity == nil {
		s.metrics.RecordOperation(s.label, operation, OutcomeNotFound)
		return nil, model.NewFailureResponse[*T](s.name+" not found", s.notFoundErr)
	}
	return entity, nil
}

func (s *entityService[T]) fail(ctx context.Context, operation string, err error) *model.Response[*T] {
	outcome := OutcomeError
	if isInvalid(err) {
		outcome = OutcomeInvalid
		s.logger.WarnContext(ctx, "rejected invalid entity", "operation", operation, "error", err)
	} else {
		s.logger.ErrorContext(ctx, "operation failed", "operation", operation, "error", err)
	}
	s.metrics.RecordOperation(s.label, operation, outcome)
	return model.NewFailureResponse[*T](fmt.Sprintf("An error occurred while %s the %s: %v", verbs[operation], s.name, err), err)
}
