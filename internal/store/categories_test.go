package store_test

import (
	"context"
	"testing"

	"github.com/huecal/huecal-engine/internal/domain"
	"github.com/huecal/huecal-engine/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryCRUD(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	category := domain.NewCategory("cat-1", "Pastels")
	category.Colors = []string{"#ffd1dc", "#c1e1c1", "#aec6cf"}
	require.NoError(t, s.PutCategory(ctx, category))

	got, err := s.GetCategory(ctx, "cat-1")
	require.NoError(t, err)
	assert.Equal(t, "Pastels", got.Name)
	assert.Equal(t, []string{"#ffd1dc", "#c1e1c1", "#aec6cf"}, got.Colors)

	require.NoError(t, s.DeleteCategory(ctx, "cat-1"))
	_, err = s.GetCategory(ctx, "cat-1")
	assert.ErrorIs(t, err, store.ErrCategoryNotFound)
}

func TestTemplateCRUD(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	template := domain.NewTemplate("tpl-1", "Focus block")
	template.Background = domain.Str("#0b8043")
	template.Text = domain.Str("#ffffff")
	template.BorderWidth = domain.Int(0)
	template.CategoryID = "cat-1"
	require.NoError(t, s.PutTemplate(ctx, template))

	got, err := s.GetTemplate(ctx, "tpl-1")
	require.NoError(t, err)
	assert.Equal(t, "Focus block", got.Name)
	assert.Equal(t, "cat-1", got.CategoryID)
	require.NotNil(t, got.BorderWidth)
	assert.Equal(t, 0, *got.BorderWidth)

	require.NoError(t, s.DeleteTemplate(ctx, "tpl-1"))
	_, err = s.GetTemplate(ctx, "tpl-1")
	assert.ErrorIs(t, err, store.ErrTemplateNotFound)
}

func TestListCategoriesAndTemplates(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.PutCategory(ctx, domain.NewCategory("cat-1", "A")))
	require.NoError(t, s.PutCategory(ctx, domain.NewCategory("cat-2", "B")))
	require.NoError(t, s.PutTemplate(ctx, domain.NewTemplate("tpl-1", "T")))

	categories, err := s.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 2)

	templates, err := s.ListTemplates(ctx)
	require.NoError(t, err)
	assert.Len(t, templates, 1)
}
