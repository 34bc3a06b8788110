// Package apperror defines the error taxonomy shared by services,
// repositories and the HTTP boundary. Handlers match these with errors.As
// and map them to response statuses; detached background tasks only log them.
package apperror

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError reports bad input, enumerated field by field. Nothing is
// persisted when one is returned.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	sort.Strings(parts)
	return "validation failed: " + strings.Join(parts, "; ")
}

// NotFoundError reports an absent Post, Comment or Image.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %s doesn't exist", e.Entity, e.ID)
}

// ConflictError reports an operation the current state forbids, such as
// deleting another creator's comment.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// StorageError wraps a document-store failure.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("storage error during %s: %v", e.Op, e.Err) }
func (e *StorageError) Unwrap() error { return e.Err }

// ObjectStoreError wraps a blob upload/download failure, including a failed
// multipart finalization.
type ObjectStoreError struct {
	Op  string
	Key string
	Err error
}

func (e *ObjectStoreError) Error() string {
	return fmt.Sprintf("object store error during %s of %s: %v", e.Op, e.Key, e.Err)
}
func (e *ObjectStoreError) Unwrap() error { return e.Err }

// ProcessingError wraps an image transform failure.
type ProcessingError struct {
	Message string
	Err     error
}

func (e *ProcessingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}
func (e *ProcessingError) Unwrap() error { return e.Err }

// OverloadedError is returned by the guarded-call wrapper when an operation
// is rejected before its body executes.
type OverloadedError struct {
	Op string
}

func (e *OverloadedError) Error() string {
	return fmt.Sprintf("operation %s rejected: service overloaded", e.Op)
}
