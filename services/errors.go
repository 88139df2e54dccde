package services

import "errors"

var (
	ErrDeckNotFound       = errors.New("deck not found")
	ErrLastDeck           = errors.New("cannot delete the last remaining deck")
	ErrInvalidSchool      = errors.New("invalid school")
	ErrInvalidLevel       = errors.New("invalid level")
	ErrInvalidDeckName    = errors.New("deck name must be between 1 and 100 characters")
	ErrSpellNotFound      = errors.New("spell not found")
	ErrCommentsDisabled   = errors.New("comments are disabled on this deck")
	ErrInvalidComment     = errors.New("comment must be between 1 and 1000 characters")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailInUse         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountBlocked     = errors.New("account blocked")
	ErrTooManyAttempts    = errors.New("too many failed login attempts")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
)
