package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huecal/huecal-engine/internal/service"
	"github.com/huecal/huecal-engine/internal/validation"
)

func setupLabels(t *testing.T) *service.Labels {
	t.Helper()
	return service.NewLabels(setupTestStore(t), validation.New(), discardLogger())
}

func TestLabelRoundTrip(t *testing.T) {
	labels := setupLabels(t)
	ctx := context.Background()

	require.NoError(t, labels.SetLabel(ctx, "#ff8800", "Deadlines"))

	text, ok := labels.LabelFor("#ff8800")
	require.True(t, ok)
	assert.Equal(t, "Deadlines", text)

	_, ok = labels.LabelFor("#00ff00")
	assert.False(t, ok)
}

func TestLabelCaseInsensitive(t *testing.T) {
	labels := setupLabels(t)

	require.NoError(t, labels.SetLabel(context.Background(), "#FF8800", "Deadlines"))

	text, ok := labels.LabelFor("#ff8800")
	require.True(t, ok)
	assert.Equal(t, "Deadlines", text)
}

func TestLabelSchemeFallback(t *testing.T) {
	labels := setupLabels(t)
	ctx := context.Background()

	// Label stored against the modern hex resolves for the classic one.
	require.NoError(t, labels.SetLabel(ctx, "#7986cb", "Planning"))
	text, ok := labels.LabelFor("#a4bdfc")
	require.True(t, ok)
	assert.Equal(t, "Planning", text)

	// And the other way around.
	require.NoError(t, labels.SetLabel(ctx, "#dc2127", "Urgent"))
	text, ok = labels.LabelFor("#d50000")
	require.True(t, ok)
	assert.Equal(t, "Urgent", text)
}

func TestLabelDirectHitBeatsSchemeFallback(t *testing.T) {
	labels := setupLabels(t)
	ctx := context.Background()

	require.NoError(t, labels.SetLabel(ctx, "#7986cb", "Modern"))
	require.NoError(t, labels.SetLabel(ctx, "#a4bdfc", "Classic"))

	text, ok := labels.LabelFor("#a4bdfc")
	require.True(t, ok)
	assert.Equal(t, "Classic", text)
}

func TestLabelDelete(t *testing.T) {
	labels := setupLabels(t)
	ctx := context.Background()

	require.NoError(t, labels.SetLabel(ctx, "#ff8800", "Deadlines"))
	require.NoError(t, labels.DeleteLabel(ctx, "#FF8800"))

	_, ok := labels.LabelFor("#ff8800")
	assert.False(t, ok)
}

func TestLabelLoad(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	seeder := service.NewLabels(s, validation.New(), discardLogger())
	require.NoError(t, seeder.SetLabel(ctx, "#ff8800", "Deadlines"))

	labels := service.NewLabels(s, validation.New(), discardLogger())
	_, ok := labels.LabelFor("#ff8800")
	require.False(t, ok, "fresh service starts empty")

	require.NoError(t, labels.Load(ctx))
	text, ok := labels.LabelFor("#ff8800")
	require.True(t, ok)
	assert.Equal(t, "Deadlines", text)
}
