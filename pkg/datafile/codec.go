package datafile

import "encoding/json"

// Codec describes a record type: its canonical default and its text form.
type Codec[T any] interface {
	// Default returns a fresh default record.
	Default() T

	// Marshal encodes v in its pretty, human-editable form.
	Marshal(v T) ([]byte, error)

	// Unmarshal decodes data, which has already had comment lines removed.
	Unmarshal(data []byte) (T, error)
}

// Defaulter is implemented by record types whose zero value can produce the default.
type Defaulter[T any] interface {
	Default() T
}

// JSONCodec encodes records as indented JSON.
type JSONCodec[T any] struct {
	newDefault func() T
	indent     string
}

// JSON returns a JSON codec using newDefault for the default record.
// A nil newDefault uses the zero value of T.
func JSON[T any](newDefault func() T) *JSONCodec[T] {
	if newDefault == nil {
		newDefault = func() T {
			var zero T
			return zero
		}
	}
	return &JSONCodec[T]{newDefault: newDefault, indent: "  "}
}

// JSONFor returns a JSON codec for a record type that provides its own default.
func JSONFor[T Defaulter[T]]() *JSONCodec[T] {
	return JSON(func() T {
		var zero T
		return zero.Default()
	})
}

// WithIndent returns a copy of the codec using indent for nested values.
func (c *JSONCodec[T]) WithIndent(indent string) *JSONCodec[T] {
	cp := *c
	cp.indent = indent
	return &cp
}

func (c *JSONCodec[T]) Default() T {
	return c.newDefault()
}

func (c *JSONCodec[T]) Marshal(v T) ([]byte, error) {
	return json.MarshalIndent(v, "", c.indent)
}

func (c *JSONCodec[T]) Unmarshal(data []byte) (T, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}
