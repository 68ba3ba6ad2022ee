package validation_test

import (
	"testing"

	"github.com/huecal/huecal-engine/internal/domain"
	"github.com/huecal/huecal-engine/internal/store"
	"github.com/huecal/huecal-engine/internal/validation"
	"github.com/stretchr/testify/assert"
)

func TestValidate_Override(t *testing.T) {
	v := validation.New()

	ov := domain.NewColorOverride()
	ov.Background = domain.Str("#aabbcc")
	ov.BorderWidth = domain.Int(0)
	assert.NoError(t, v.Validate(ov))

	ov.Background = domain.Str("not-a-color")
	err := v.Validate(ov)
	assert.ErrorIs(t, err, store.ErrInvalidInput)
	assert.Contains(t, err.Error(), "background")
}

func TestValidate_BorderWidthRange(t *testing.T) {
	v := validation.New()

	ov := domain.NewColorOverride()
	ov.BorderWidth = domain.Int(64)
	assert.ErrorIs(t, v.Validate(ov), store.ErrInvalidInput)
}

func TestHex(t *testing.T) {
	v := validation.New()

	assert.NoError(t, v.Hex("#abc123"))
	assert.NoError(t, v.Hex("#ABC"))
	assert.ErrorIs(t, v.Hex("abc123"), store.ErrInvalidInput)
	assert.ErrorIs(t, v.Hex(""), store.ErrInvalidInput)
}
