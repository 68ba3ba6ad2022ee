// Package store persists the engine's records — color overrides, calendar
// defaults, palette labels, categories and templates — on a flat key-value
// backend, and broadcasts every mutation through an Emitter.
package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
)

// Record key prefixes. Everything lives under one configurable namespace so
// the engine's records cannot collide with other settings the embedding
// extension keeps in the same storage area.
const (
	overridePrefix        = "override:"
	calendarDefaultPrefix = "caldefault:"
	labelPrefix           = "label:"
	categoryPrefix        = "category:"
	templatePrefix        = "template:"
)

// Store wraps a Backend with typed record operations.
type Store struct {
	backend   Backend
	logger    *slog.Logger
	emitter   Emitter
	namespace string
}

// Options configures optional store behavior.
type Options struct {
	// Namespace is prepended to every key. Defaults to "huecal:".
	Namespace string
}

// New creates a Store on the given backend. The emitter receives a change
// event after every successful mutation and must not be nil in production;
// pass NewNoopEmitter in tests.
func New(backend Backend, logger *slog.Logger, emitter Emitter, opts Options) *Store {
	if opts.Namespace == "" {
		opts.Namespace = "huecal:"
	}
	return &Store{
		backend:   backend,
		logger:    logger,
		emitter:   emitter,
		namespace: opts.Namespace,
	}
}

// Close closes the underlying backend.
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("closing store")
	}
	return s.backend.Close()
}

func (s *Store) key(prefix, id string) string {
	return s.namespace + prefix + id
}

// get reads and unmarshals the record at prefix+id.
func (s *Store) get(prefix, id string, dest any) error {
	data, err := s.backend.Get(s.key(prefix, id))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to unmarshal record: %w", err)
	}
	return nil
}

// set marshals and writes the record at prefix+id.
func (s *Store) set(prefix, id string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	return s.backend.Set(s.key(prefix, id), data)
}

// list iterates all records under prefix, handing fn the id (key with
// namespace and prefix stripped) and raw value.
func (s *Store) list(prefix string, fn func(id string, value []byte) error) error {
	full := s.namespace + prefix
	return s.backend.List(full, func(key string, value []byte) error {
		return fn(key[len(full):], value)
	})
}
