package errors

import "errors"

var (
	ErrInvalidPosition    = errors.New("invalid position")
	ErrCounterNotFound    = errors.New("turn counter was not found")
	ErrGameNotFound       = errors.New("game not found")
	ErrTableEntryNotFound = errors.New("action table has no entry for board")
	ErrInternal           = errors.New("internal error")
)

// InvalidPositionError reports a malformed board, player or point supplied by a caller.
type InvalidPositionError struct {
	Reason string
}

func (e *InvalidPositionError) Error() string {
	return ErrInvalidPosition.Error() + ": " + e.Reason
}

func (e *InvalidPositionError) Is(target error) bool {
	return target == ErrInvalidPosition
}
