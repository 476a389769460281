package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	ErrMsgUserNotFound      = "user not found"
	ErrMsgCharacterNotFound = "character not found"
	ErrMsgNotOwned          = "character not in collection"
	ErrMsgInvalidRarity     = "invalid rarity"
	ErrMsgInvalidInput      = "invalid input"
	ErrMsgNoPendingSession  = "no pending session"
	ErrMsgNotYourSession    = "session belongs to someone else"
	ErrMsgSelfTarget        = "cannot target yourself"
	ErrMsgAlreadyLocked     = "character already locked"
	ErrMsgNotLocked         = "character is not locked"
)

// Common domain errors.
// Wrap these with fmt.Errorf("%w: %s", domain.ErrXxx, details) for context.
var (
	ErrUserNotFound      = errors.New(ErrMsgUserNotFound)
	ErrCharacterNotFound = errors.New(ErrMsgCharacterNotFound)
	ErrNotOwned          = errors.New(ErrMsgNotOwned)
	ErrInvalidRarity     = errors.New(ErrMsgInvalidRarity)
	ErrInvalidInput      = errors.New(ErrMsgInvalidInput)
	ErrNoPendingSession  = errors.New(ErrMsgNoPendingSession)
	ErrNotYourSession    = errors.New(ErrMsgNotYourSession)
	ErrSelfTarget        = errors.New(ErrMsgSelfTarget)
	ErrAlreadyLocked     = errors.New(ErrMsgAlreadyLocked)
	ErrNotLocked         = errors.New(ErrMsgNotLocked)
)
