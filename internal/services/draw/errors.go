package draw

import "errors"

// Define errors
var (
	// ErrSystemNotReady is returned while the credential allow-list has not
	// yet been loaded
	ErrSystemNotReady = errors.New("credential allow-list not loaded yet")

	// ErrSessionNotFound is returned when no session exists for the given ID
	ErrSessionNotFound = errors.New("session not found")

	// ErrInvalidCredential is returned when the credential is not in the
	// allow-list
	ErrInvalidCredential = errors.New("credential is not valid")

	// ErrAlreadyRedeemed is returned when the credential has already been
	// consumed by a completed draw
	ErrAlreadyRedeemed = errors.New("credential has already been redeemed")

	// ErrInvalidState is returned when an operation is called out of
	// sequence for the session's current phase
	ErrInvalidState = errors.New("operation not allowed in current session phase")

	// ErrAlreadySpun is returned on a second spin attempt without a reset
	ErrAlreadySpun = errors.New("session has already spun")
)
