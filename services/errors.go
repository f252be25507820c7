package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("record not found")
	ErrConflict           = errors.New("conflict")
	ErrNoHotel            = errors.New("hotel setup required")
	ErrHotelExists        = fmt.Errorf("%w: hotel already set up for this account", ErrConflict)
	ErrDuplicateRoom      = fmt.Errorf("%w: room number already exists", ErrConflict)
	ErrDuplicateLock      = fmt.Errorf("%w: lock id already registered", ErrConflict)
	ErrEmailTaken         = fmt.Errorf("%w: email already registered", ErrConflict)
	ErrLockOffline        = fmt.Errorf("%w: lock is offline", ErrConflict)
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("session expired or revoked")
)

// ValidationError carries per-field messages keyed by JSON field name.
type ValidationError struct {
	Fields map[string]string
	Err    error
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	msg := "validation failed"
	if e.Err != nil {
		msg = e.Err.Error()
	}
	if len(parts) == 0 {
		return msg
	}
	return msg + " (" + strings.Join(parts, "; ") + ")"
}

func (e *ValidationError) Unwrap() error { return e.Err }

func fieldError(field, message string, cause error) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}, Err: cause}
}

// dbError maps gorm errors onto the service sentinels.
func dbError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", ErrConflict, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return &ValidationError{Err: fmt.Errorf("referenced record does not exist: %w", err)}
	}
	return err
}
