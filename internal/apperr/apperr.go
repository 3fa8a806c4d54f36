package apperr

import "errors"

// Error kinds shared across the order lifecycle, vouch guard and admin
// surfaces. Handlers match them with errors.Is and map them to HTTP codes.
var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrNotFound           = errors.New("not found")
	ErrFailedPrecondition = errors.New("failed precondition")
	ErrInvalidArgument    = errors.New("invalid argument")
)
