package domain

import "time"

// Category is a user-defined named group of colors, shown as a palette row
// in the picker. Order is significant.
type Category struct {
	ID     string   `json:"id" validate:"required"`
	Name   string   `json:"name" validate:"required,max=64"`
	Colors []string `json:"colors" validate:"dive,hexcolor"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCategory creates a category with the given id and name.
func NewCategory(id, name string) *Category {
	now := time.Now()
	return &Category{
		ID:        id,
		Name:      name,
		Colors:    []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch bumps the modification timestamp.
func (c *Category) Touch() {
	c.UpdatedAt = time.Now()
}

// Template is a named full color preset. Applying one feeds every field
// into a full override write.
type Template struct {
	ID         string `json:"id" validate:"required"`
	Name       string `json:"name" validate:"required,max=64"`
	CategoryID string `json:"category_id,omitempty"`

	Background  *string `json:"background,omitempty" validate:"omitempty,hexcolor"`
	Text        *string `json:"text,omitempty" validate:"omitempty,hexcolor"`
	Border      *string `json:"border,omitempty" validate:"omitempty,hexcolor"`
	BorderWidth *int    `json:"border_width,omitempty" validate:"omitempty,min=0,max=32"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewTemplate creates an empty template with the given id and name.
func NewTemplate(id, name string) *Template {
	now := time.Now()
	return &Template{
		ID:        id,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Override converts the template into an override record ready for a full
// apply.
func (t *Template) Override() *ColorOverride {
	ov := NewColorOverride()
	ov.Background = cloneString(t.Background)
	ov.Text = cloneString(t.Text)
	ov.Border = cloneString(t.Border)
	ov.BorderWidth = cloneInt(t.BorderWidth)
	return ov
}
