package autodiff

import "errors"

// Common errors.
var (
	ErrInvalidPayload  = errors.New("invalid payload type")
	ErrNotImplemented  = errors.New("operation method not implemented")
	ErrAbsentPayload   = errors.New("variable has no payload")
	ErrOperationReused = errors.New("operation already applied")
	ErrNilVariable     = errors.New("nil variable")
	ErrDuplicateLabel  = errors.New("duplicate variable label")
)
