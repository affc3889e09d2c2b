package services

import (
	"context"

	"github.com/yigit/campusdesk/internal/app/models"
	"github.com/yigit/campusdesk/internal/pkg/logger"
	"github.com/yigit/campusdesk/internal/pkg/validation"
)

// Store is the persistence surface a CRUDService needs.
type Store[T any] interface {
	List(ctx context.Context, page, size int) ([]*T, int64, error)
	GetByID(ctx context.Context, id int64) (*T, error)
	ListBy(ctx context.Context, column string, value int64, page, size int) ([]*T, int64, error)
	Create(ctx context.Context, item *T) error
	Update(ctx context.Context, item *T) error
	Delete(ctx context.Context, id int64) error
}

// Hooks customise a CRUDService for one entity.
type Hooks[T any] struct {
	// BeforeSave runs after validation and before persistence. existing is
	// nil on create.
	BeforeSave func(ctx context.Context, item, existing *T) error
	// Insert replaces Store.Create.
	Insert func(ctx context.Context, item *T) error
	// Update replaces Store.Update. It runs after BeforeSave.
	Update func(ctx context.Context, item, existing *T) error
}

// CRUDService validates and persists one entity type.
type CRUDService[T any, P models.Pointer[T]] struct {
	name      string
	store     Store[T]
	validator *validation.Validator
	hooks     Hooks[T]
	onWrite   []func(context.Context)
}

// NewCRUDService creates a CRUDService for the entity called name.
func NewCRUDService[T any, P models.Pointer[T]](name string, store Store[T], v *validation.Validator, hooks Hooks[T]) *CRUDService[T, P] {
	return &CRUDService[T, P]{
		name:      name,
		store:     store,
		validator: v,
		hooks:     hooks,
	}
}

// OnWrite registers fn to run after every successful create, update or delete.
func (s *CRUDService[T, P]) OnWrite(fn func(context.Context)) {
	s.onWrite = append(s.onWrite, fn)
}

func (s *CRUDService[T, P]) written(ctx context.Context) {
	for _, fn := range s.onWrite {
		fn(ctx)
	}
}

// Name returns the entity name.
func (s *CRUDService[T, P]) Name() string { return s.name }

func (s *CRUDService[T, P]) List(ctx context.Context, page, size int) ([]*T, int64, error) {
	return s.store.List(ctx, page, size)
}

func (s *CRUDService[T, P]) GetByID(ctx context.Context, id int64) (*T, error) {
	return s.store.GetByID(ctx, id)
}

func (s *CRUDService[T, P]) ListBy(ctx context.Context, column string, value int64, page, size int) ([]*T, int64, error) {
	return s.store.ListBy(ctx, column, value, page, size)
}

// Create validates draft and inserts it. Invalid drafts never reach the store.
func (s *CRUDService[T, P]) Create(ctx context.Context, draft *T) (*T, error) {
	insert := s.store.Create
	if s.hooks.Insert != nil {
		insert = s.hooks.Insert
	}

	err := validation.Submit(ctx, s.validator, draft, func(ctx context.Context, item *T) error {
		if s.hooks.BeforeSave != nil {
			if err := s.hooks.BeforeSave(ctx, item, nil); err != nil {
				return err
			}
		}
		return insert(ctx, item)
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info().Str("entity", s.name).Int64("id", P(draft).Meta().ID).Msg("Record created")
	s.written(ctx)
	return draft, nil
}

// Update validates draft and overwrites the record with the given id.
func (s *CRUDService[T, P]) Update(ctx context.Context, id int64, draft *T) (*T, error) {
	if draft != nil {
		P(draft).Meta().ID = id
	}

	err := validation.Submit(ctx, s.validator, draft, func(ctx context.Context, item *T) error {
		existing, err := s.store.GetByID(ctx, id)
		if err != nil {
			return err
		}
		P(item).Meta().CreatedAt = P(existing).Meta().CreatedAt
		if s.hooks.BeforeSave != nil {
			if err := s.hooks.BeforeSave(ctx, item, existing); err != nil {
				return err
			}
		}
		if s.hooks.Update != nil {
			return s.hooks.Update(ctx, item, existing)
		}
		return s.store.Update(ctx, item)
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info().Str("entity", s.name).Int64("id", id).Msg("Record updated")
	s.written(ctx)
	return draft, nil
}

func (s *CRUDService[T, P]) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	logger.FromContext(ctx).Info().Str("entity", s.name).Int64("id", id).Msg("Record deleted")
	s.written(ctx)
	return nil
}
