// Package id generates identifiers for user-created records.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Record ids are short NanoIDs with a type prefix, e.g. "cat-Uakgb_J5m9g".
// Twelve characters is plenty for records that only ever live in one
// person's settings.
const length = 12

// New creates a prefixed unique id.
// Returns an error if the system has insufficient entropy.
func New(prefix string) (string, error) {
	id, err := gonanoid.New(length)
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}

// MustNew is like New but panics if id generation fails. Use only where
// failure should crash the program, e.g. during initialization.
func MustNew(prefix string) string {
	id, err := New(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate id: %v", err))
	}
	return id
}
