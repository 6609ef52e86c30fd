package usecase

import "errors"

// Error kinds raised by the services. Handlers map these to HTTP status
// codes with errors.Is; the services themselves never care about transport.
var (
	// ErrNotFound - referenced movie/hall/showtime/purchase does not exist
	ErrNotFound = errors.New("not found")

	// ErrSchedulingConflict - candidate showtime window (including the
	// turnover buffer) overlaps an existing showtime in the same hall
	ErrSchedulingConflict = errors.New("scheduling conflict")

	// ErrSeatsUnavailable - requested ticket count exceeds the remaining
	// free seats of the showtime
	ErrSeatsUnavailable = errors.New("seats unavailable")

	// ErrInvalidState - purchase lifecycle method invoked against the
	// wrong precursor state, or an expired seat hold
	ErrInvalidState = errors.New("invalid purchase state")

	// ErrValidation - request failed input validation
	ErrValidation = errors.New("validation failed")

	// ErrAlreadyExists - unique field (email, username, setting key) is
	// already taken
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidCredentials - login failed; never distinguishes unknown
	// user from wrong password
	ErrInvalidCredentials = errors.New("invalid credentials")
)
