package remote

import (
	"errors"
	"fmt"
)

// Domain errors the sampling service can report. Callers classify with
// errors.Is; anything else is a transport or internal failure.
var (
	// ErrBinaryFile means the file cannot be displayed as text.
	ErrBinaryFile = errors.New("binary file")

	// ErrOutOfBounds means the requested lines lie past either end of
	// the file. Expected at file edges, not a hard failure.
	ErrOutOfBounds = errors.New("line out of bounds")
)

// Error kinds used on the wire.
const (
	KindBinary   = "binary"
	KindEOF      = "eof"
	KindInternal = "internal"
)

type apiError struct {
	Message string `json:"error"`
	Kind    string `json:"kind"`
}

func (e *apiError) toDomain() error {
	switch e.Kind {
	case KindBinary:
		return fmt.Errorf("%w: %s", ErrBinaryFile, e.Message)
	case KindEOF:
		return fmt.Errorf("%w: %s", ErrOutOfBounds, e.Message)
	default:
		return errors.New(e.Message)
	}
}
