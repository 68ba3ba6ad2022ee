package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/huecal/huecal-engine/internal/domain"
	"github.com/huecal/huecal-engine/internal/id"
	"github.com/huecal/huecal-engine/internal/store"
	"github.com/huecal/huecal-engine/internal/validation"
)

// Categories manages the user's color categories and full-color templates.
type Categories struct {
	store     *store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewCategories creates a categories service.
func NewCategories(st *store.Store, v *validation.Validator, logger *slog.Logger) *Categories {
	return &Categories{store: st, validator: v, logger: logger}
}

// CreateCategory creates a named category with the given swatch colors.
func (c *Categories) CreateCategory(ctx context.Context, name string, colors []string) (*domain.Category, error) {
	categoryID, err := id.New("cat")
	if err != nil {
		return nil, fmt.Errorf("generate category id: %w", err)
	}

	category := domain.NewCategory(categoryID, name)
	if len(colors) > 0 {
		category.Colors = append(category.Colors, colors...)
	}
	if err := c.validator.Validate(category); err != nil {
		return nil, err
	}
	if err := c.store.PutCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("put category: %w", err)
	}

	c.logger.Debug("category created", "id", category.ID, "name", category.Name)
	return category, nil
}

// UpdateCategory replaces the name and colors of an existing category.
func (c *Categories) UpdateCategory(ctx context.Context, categoryID, name string, colors []string) (*domain.Category, error) {
	category, err := c.store.GetCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	category.Name = name
	category.Colors = append([]string{}, colors...)
	category.Touch()
	if err := c.validator.Validate(category); err != nil {
		return nil, err
	}
	if err := c.store.PutCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("put category: %w", err)
	}
	return category, nil
}

// DeleteCategory removes a category. Templates assigned to it become
// unassigned rather than being deleted with it.
func (c *Categories) DeleteCategory(ctx context.Context, categoryID string) error {
	if err := c.store.DeleteCategory(ctx, categoryID); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// ListCategories returns every category keyed by id.
func (c *Categories) ListCategories(ctx context.Context) (map[string]*domain.Category, error) {
	return c.store.ListCategories(ctx)
}

// CreateTemplate saves a full color preset, optionally assigned to a
// category.
func (c *Categories) CreateTemplate(ctx context.Context, name, categoryID string, colors *domain.ColorOverride) (*domain.Template, error) {
	if categoryID != "" {
		if _, err := c.store.GetCategory(ctx, categoryID); err != nil {
			return nil, err
		}
	}

	templateID, err := id.New("tpl")
	if err != nil {
		return nil, fmt.Errorf("generate template id: %w", err)
	}

	template := domain.NewTemplate(templateID, name)
	template.CategoryID = categoryID
	template.Background = colors.Background
	template.Text = colors.Text
	template.Border = colors.Border
	template.BorderWidth = colors.BorderWidth
	if err := c.validator.Validate(template); err != nil {
		return nil, err
	}
	if err := c.store.PutTemplate(ctx, template); err != nil {
		return nil, fmt.Errorf("put template: %w", err)
	}

	c.logger.Debug("template created", "id", template.ID, "name", template.Name)
	return template, nil
}

// DeleteTemplate removes a saved preset.
func (c *Categories) DeleteTemplate(ctx context.Context, templateID string) error {
	if err := c.store.DeleteTemplate(ctx, templateID); err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	return nil
}

// ListTemplates returns every template keyed by id. Templates whose
// category no longer exists are reported as unassigned.
func (c *Categories) ListTemplates(ctx context.Context) (map[string]*domain.Template, error) {
	templates, err := c.store.ListTemplates(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := c.store.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	for _, template := range templates {
		if template.CategoryID == "" {
			continue
		}
		if _, ok := categories[template.CategoryID]; !ok {
			template.CategoryID = ""
		}
	}
	return templates, nil
}
