package datafile

import (
	"errors"
	"fmt"
)

// ErrNoFileFoundCreatedDefault is returned by Load in strict mode when the file
// did not exist. The default record has been written by the time it is returned.
var ErrNoFileFoundCreatedDefault = errors.New("datafile: no file existed yet, created new default file")

// DecodeError reports file contents that do not decode into the record type.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("datafile: decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError reports a record that could not be encoded for writing.
type EncodeError struct {
	Path string
	Err  error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("datafile: encode %s: %v", e.Path, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// IsDecodeError reports whether err is or wraps a *DecodeError.
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}
