package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
// Repositories also return it when a referenced foreign id does not exist.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
// Nothing is persisted when a validation error is returned.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the requested mutation would leave the store inconsistent
// and has been rolled back in full.
var ErrConflict = errors.New("conflicting state")

// ErrInternal indicates an unexpected failure; handlers map it to a generic message.
var ErrInternal = errors.New("internal error")
