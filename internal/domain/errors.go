package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by a use case wraps exactly one of them.
var (
	ErrValidation = errors.New("validation error")
	ErrAuth       = errors.New("auth error")
	ErrNotFound   = errors.New("not found")
	ErrStorage    = errors.New("storage error")
)

var (
	ErrEmailTaken         = fmt.Errorf("%w: email taken", ErrValidation)
	ErrInvalidInput       = fmt.Errorf("%w: invalid input", ErrValidation)
	ErrNotParticipant     = fmt.Errorf("%w: sender is not a participant of the match", ErrValidation)
	ErrUnknownMatch       = fmt.Errorf("%w: match does not exist", ErrValidation)
	ErrInvalidStatus      = fmt.Errorf("%w: invalid match status", ErrValidation)
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrAuth)
	ErrInvalidToken       = fmt.Errorf("%w: invalid or expired token", ErrAuth)
	ErrProfileNotFound    = fmt.Errorf("profile %w", ErrNotFound)
	ErrMatchNotFound      = fmt.Errorf("match %w", ErrNotFound)
	ErrSessionNotFound    = fmt.Errorf("session %w", ErrNotFound)
	ErrTokenCollision     = fmt.Errorf("%w: session token collision", ErrStorage)
	ErrStoreClosed        = fmt.Errorf("%w: store closed", ErrStorage)
)
