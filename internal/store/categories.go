package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/huecal/huecal-engine/internal/domain"
)

// Sentinels for the preset record types.
var (
	ErrCategoryNotFound = ErrNotFound.WithMessage("category not found")
	ErrTemplateNotFound = ErrNotFound.WithMessage("template not found")
)

// GetCategory retrieves a category by id.
func (s *Store) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var category domain.Category
	err := s.get(categoryPrefix, id, &category)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, ErrStorage.WithCause(err)
	}
	return &category, nil
}

// PutCategory creates or replaces a category.
func (s *Store) PutCategory(ctx context.Context, category *domain.Category) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.set(categoryPrefix, category.ID, category); err != nil {
		return ErrStorage.WithCause(err)
	}
	s.emit(EventCategoryUpdated, category.ID)
	return nil
}

// DeleteCategory removes a category. Templates assigned to it keep their
// CategoryID; the resolver treats a dangling assignment as unassigned.
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.backend.Delete(s.key(categoryPrefix, id)); err != nil {
		return ErrStorage.WithCause(err)
	}
	s.emit(EventCategoryUpdated, id)
	return nil
}

// ListCategories returns every stored category keyed by id.
func (s *Store) ListCategories(ctx context.Context) (map[string]*domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make(map[string]*domain.Category)
	err := s.list(categoryPrefix, func(id string, value []byte) error {
		var category domain.Category
		if err := json.Unmarshal(value, &category); err != nil {
			if s.logger != nil {
				s.logger.Warn("skipping unreadable category record", "id", id, "error", err)
			}
			return nil
		}
		out[id] = &category
		return nil
	})
	if err != nil {
		return nil, ErrStorage.WithCause(err)
	}
	return out, nil
}

// GetTemplate retrieves a template by id.
func (s *Store) GetTemplate(ctx context.Context, id string) (*domain.Template, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var template domain.Template
	err := s.get(templatePrefix, id, &template)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrTemplateNotFound
	}
	if err != nil {
		return nil, ErrStorage.WithCause(err)
	}
	return &template, nil
}

// PutTemplate creates or replaces a template.
func (s *Store) PutTemplate(ctx context.Context, template *domain.Template) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.set(templatePrefix, template.ID, template); err != nil {
		return ErrStorage.WithCause(err)
	}
	s.emit(EventCategoryUpdated, template.ID)
	return nil
}

// DeleteTemplate removes a template.
func (s *Store) DeleteTemplate(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.backend.Delete(s.key(templatePrefix, id)); err != nil {
		return ErrStorage.WithCause(err)
	}
	s.emit(EventCategoryUpdated, id)
	return nil
}

// ListTemplates returns every stored template keyed by id.
func (s *Store) ListTemplates(ctx context.Context) (map[string]*domain.Template, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make(map[string]*domain.Template)
	err := s.list(templatePrefix, func(id string, value []byte) error {
		var template domain.Template
		if err := json.Unmarshal(value, &template); err != nil {
			if s.logger != nil {
				s.logger.Warn("skipping unreadable template record", "id", id, "error", err)
			}
			return nil
		}
		out[id] = &template
		return nil
	})
	if err != nil {
		return nil, ErrStorage.WithCause(err)
	}
	return out, nil
}
