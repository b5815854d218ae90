package internal

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionNotFound is returned by lookups addressed to an unknown session
	ErrSessionNotFound = errors.New("session not found")

	// ErrNothingToRegenerate is returned when a session has no user message to answer
	ErrNothingToRegenerate = errors.New("no user message to regenerate")

	// ErrEmptyMessage is returned when a blank message is submitted
	ErrEmptyMessage = errors.New("message is empty")
)

// StorageError represents errors accessing the durable store
type StorageError struct {
	Path string
	Op   string // "open", "migrate", "load", "save", "erase"
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ParseError represents errors decoding persisted or configured data
type ParseError struct {
	Source string // "sessions", "config"
	Key    string // record key, field path or file path
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error [%s] %s: %v", e.Source, e.Key, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ExportError represents errors during export
type ExportError struct {
	Format string
	Path   string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [%s] %s: %v", e.Format, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
