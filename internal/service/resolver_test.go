package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huecal/huecal-engine/internal/domain"
	"github.com/huecal/huecal-engine/internal/eventid"
	"github.com/huecal/huecal-engine/internal/service"
)

func TestResolveEmptySources(t *testing.T) {
	assert.Nil(t, service.Resolve(service.Sources{}))
}

func TestResolveOverrideOnly(t *testing.T) {
	ov := domain.NewColorOverride()
	ov.Background = domain.Str("#ff8800")

	resolved := service.Resolve(service.Sources{Override: ov})
	require.NotNil(t, resolved)
	assert.Equal(t, "#ff8800", *resolved.Background)
	assert.Nil(t, resolved.Text)
	assert.Nil(t, resolved.Border)
	assert.Equal(t, domain.DefaultBorderWidth, resolved.BorderWidth)
}

func TestResolveUseHostColorsBeatsEverything(t *testing.T) {
	ov := domain.NewColorOverride()
	ov.UseHostColors = true
	ov.Background = domain.Str("#ff8800")

	def := domain.NewCalendarDefault("team@example.com")
	def.Background = domain.Str("#112233")

	assert.Nil(t, service.Resolve(service.Sources{Override: ov, CalendarDefault: def}))
}

func TestResolveFieldWiseDefaultMerge(t *testing.T) {
	ov := domain.NewColorOverride()
	ov.Background = domain.Str("#ff8800")

	def := domain.NewCalendarDefault("team@example.com")
	def.Background = domain.Str("#112233")
	def.Text = domain.Str("#ffffff")
	def.Border = domain.Str("#000000")

	resolved := service.Resolve(service.Sources{Override: ov, CalendarDefault: def})
	require.NotNil(t, resolved)
	assert.Equal(t, "#ff8800", *resolved.Background, "override wins its own field")
	assert.Equal(t, "#ffffff", *resolved.Text, "default fills unset fields")
	assert.Equal(t, "#000000", *resolved.Border)
}

func TestResolveOverrideDefaultsSkipsDefaultTier(t *testing.T) {
	ov := domain.NewColorOverride()
	ov.Background = domain.Str("#ff8800")
	ov.OverrideDefaults = true

	def := domain.NewCalendarDefault("team@example.com")
	def.Text = domain.Str("#ffffff")
	def.BorderWidth = domain.Int(6)

	resolved := service.Resolve(service.Sources{Override: ov, CalendarDefault: def})
	require.NotNil(t, resolved)
	assert.Equal(t, "#ff8800", *resolved.Background)
	assert.Nil(t, resolved.Text)
	assert.Equal(t, domain.DefaultBorderWidth, resolved.BorderWidth)
}

func TestResolveBorderWidth(t *testing.T) {
	def := domain.NewCalendarDefault("team@example.com")
	def.Border = domain.Str("#000000")
	def.BorderWidth = domain.Int(6)

	t.Run("explicit zero is preserved", func(t *testing.T) {
		ov := domain.NewColorOverride()
		ov.Background = domain.Str("#ff8800")
		ov.BorderWidth = domain.Int(0)

		resolved := service.Resolve(service.Sources{Override: ov, CalendarDefault: def})
		require.NotNil(t, resolved)
		assert.Equal(t, 0, resolved.BorderWidth)
	})

	t.Run("unset falls through to the default tier", func(t *testing.T) {
		ov := domain.NewColorOverride()
		ov.Background = domain.Str("#ff8800")

		resolved := service.Resolve(service.Sources{Override: ov, CalendarDefault: def})
		require.NotNil(t, resolved)
		assert.Equal(t, 6, resolved.BorderWidth)
	})

	t.Run("nothing set means two", func(t *testing.T) {
		ov := domain.NewColorOverride()
		ov.Background = domain.Str("#ff8800")

		resolved := service.Resolve(service.Sources{Override: ov})
		require.NotNil(t, resolved)
		assert.Equal(t, domain.DefaultBorderWidth, resolved.BorderWidth)
	})
}

func TestResolveInstanceRecordSuppressesSeriesRecord(t *testing.T) {
	instance := domain.NewColorOverride()
	instance.Background = domain.Str("#ff8800")

	series := domain.NewColorOverride()
	series.Background = domain.Str("#0000ff")
	series.Text = domain.Str("#ffffff")

	resolved := service.Resolve(service.Sources{Override: instance, SeriesOverride: series})
	require.NotNil(t, resolved)
	assert.Equal(t, "#ff8800", *resolved.Background)
	assert.Nil(t, resolved.Text, "series record must not fill fields the instance record leaves unset")
}

func TestResolveSeriesRecordWhenNoInstanceRecord(t *testing.T) {
	series := domain.NewColorOverride()
	series.Background = domain.Str("#0000ff")

	resolved := service.Resolve(service.Sources{SeriesOverride: series})
	require.NotNil(t, resolved)
	assert.Equal(t, "#0000ff", *resolved.Background)
}

func TestResolveAllTiersEmpty(t *testing.T) {
	ov := domain.NewColorOverride()
	def := domain.NewCalendarDefault("team@example.com")

	assert.Nil(t, service.Resolve(service.Sources{Override: ov, CalendarDefault: def}))
}

func TestResolveEventFromCache(t *testing.T) {
	resolver, _, settings := setupResolver(t)

	rawID := encodeEvent("evt123", "", "user@example.com")
	ov := domain.NewColorOverride()
	ov.Background = domain.Str("#ff8800")
	settings.PutOverride(rawID, ov)

	resolved := resolver.ResolveEvent(rawID)
	require.NotNil(t, resolved)
	assert.Equal(t, "#ff8800", *resolved.Background)
}

func TestResolveEventSeriesFallback(t *testing.T) {
	resolver, _, settings := setupResolver(t)

	instanceID := encodeEvent("evt123", "20240115T100000Z", "user@example.com")
	seriesKey := eventid.Decode(instanceID).CanonicalKey()

	series := domain.NewColorOverride()
	series.Background = domain.Str("#0000ff")
	settings.PutOverride(seriesKey, series)

	resolved := resolver.ResolveEvent(instanceID)
	require.NotNil(t, resolved)
	assert.Equal(t, "#0000ff", *resolved.Background)
}

func TestResolveEventCalendarDefault(t *testing.T) {
	resolver, _, settings := setupResolver(t)

	def := domain.NewCalendarDefault("user@example.com")
	def.Background = domain.Str("#112233")
	settings.PutCalendarDefault(def)

	resolved := resolver.ResolveEvent(encodeEvent("evt123", "", "user@example.com"))
	require.NotNil(t, resolved)
	assert.Equal(t, "#112233", *resolved.Background)
}

func TestResolveEventInvalidID(t *testing.T) {
	resolver, _, _ := setupResolver(t)

	assert.Nil(t, resolver.ResolveEvent("not base64!!"))
	assert.Nil(t, resolver.ResolveEvent(""))
}
