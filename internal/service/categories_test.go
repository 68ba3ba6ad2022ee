package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huecal/huecal-engine/internal/domain"
	"github.com/huecal/huecal-engine/internal/service"
	"github.com/huecal/huecal-engine/internal/store"
	"github.com/huecal/huecal-engine/internal/validation"
)

func setupCategories(t *testing.T) *service.Categories {
	t.Helper()
	return service.NewCategories(setupTestStore(t), validation.New(), discardLogger())
}

func TestCreateCategory(t *testing.T) {
	categories := setupCategories(t)
	ctx := context.Background()

	category, err := categories.CreateCategory(ctx, "Work", []string{"#112233", "#445566"})
	require.NoError(t, err)
	assert.NotEmpty(t, category.ID)
	assert.Equal(t, "Work", category.Name)
	assert.Equal(t, []string{"#112233", "#445566"}, category.Colors)

	listed, err := categories.ListCategories(ctx)
	require.NoError(t, err)
	require.Contains(t, listed, category.ID)
}

func TestCreateCategoryRejectsBadColor(t *testing.T) {
	categories := setupCategories(t)

	_, err := categories.CreateCategory(context.Background(), "Work", []string{"blue"})
	assert.ErrorIs(t, err, store.ErrInvalidInput)
}

func TestUpdateCategory(t *testing.T) {
	categories := setupCategories(t)
	ctx := context.Background()

	category, err := categories.CreateCategory(ctx, "Work", []string{"#112233"})
	require.NoError(t, err)

	updated, err := categories.UpdateCategory(ctx, category.ID, "Projects", []string{"#445566"})
	require.NoError(t, err)
	assert.Equal(t, "Projects", updated.Name)
	assert.Equal(t, []string{"#445566"}, updated.Colors)

	_, err = categories.UpdateCategory(ctx, "cat-missing", "Nope", nil)
	assert.ErrorIs(t, err, store.ErrCategoryNotFound)
}

func TestDeleteCategoryLeavesTemplatesUnassigned(t *testing.T) {
	categories := setupCategories(t)
	ctx := context.Background()

	category, err := categories.CreateCategory(ctx, "Work", nil)
	require.NoError(t, err)

	colors := domain.NewColorOverride()
	colors.Background = domain.Str("#d50000")
	template, err := categories.CreateTemplate(ctx, "Urgent", category.ID, colors)
	require.NoError(t, err)

	require.NoError(t, categories.DeleteCategory(ctx, category.ID))

	templates, err := categories.ListTemplates(ctx)
	require.NoError(t, err)
	require.Contains(t, templates, template.ID)
	assert.Empty(t, templates[template.ID].CategoryID)
}

func TestCreateTemplate(t *testing.T) {
	categories := setupCategories(t)
	ctx := context.Background()

	colors := domain.NewColorOverride()
	colors.Background = domain.Str("#d50000")
	colors.Text = domain.Str("#ffffff")
	colors.BorderWidth = domain.Int(3)

	template, err := categories.CreateTemplate(ctx, "Urgent", "", colors)
	require.NoError(t, err)
	assert.NotEmpty(t, template.ID)
	assert.Equal(t, "#d50000", *template.Background)
	assert.Equal(t, 3, *template.BorderWidth)

	_, err = categories.CreateTemplate(ctx, "Orphan", "cat-missing", colors)
	assert.ErrorIs(t, err, store.ErrCategoryNotFound)
}

func TestDeleteTemplate(t *testing.T) {
	categories := setupCategories(t)
	ctx := context.Background()

	colors := domain.NewColorOverride()
	colors.Background = domain.Str("#d50000")
	template, err := categories.CreateTemplate(ctx, "Urgent", "", colors)
	require.NoError(t, err)

	require.NoError(t, categories.DeleteTemplate(ctx, template.ID))

	templates, err := categories.ListTemplates(ctx)
	require.NoError(t, err)
	assert.NotContains(t, templates, template.ID)
}
