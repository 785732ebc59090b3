package usecase

import "errors"

// Sentinel errors for the use case layer
var (
	// ErrScopeMismatch means the entity exists but belongs to another
	// unit or period. Mutating operations fail with it; reads treat the
	// entity as invisible instead.
	ErrScopeMismatch = errors.New("entity does not belong to the requested scope")

	// ErrParentNotFound means the named parent entity does not exist in
	// the caller's scope
	ErrParentNotFound = errors.New("parent not found or invalid")

	// ErrSuggestionUnavailable means no LLM client is configured
	ErrSuggestionUnavailable = errors.New("AI suggestions are not configured")
)
