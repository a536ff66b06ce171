package datafile

import "context"

// Load reads the record of type T stored at path.
//
// If path does not exist, the default record from codec is written to it.
// With failOnMissing the call then fails with ErrNoFileFoundCreatedDefault;
// without it the default record is returned.
//
// Lines starting with '#' are ignored. Contents that do not decode produce a
// *DecodeError; filesystem failures are returned unchanged.
func Load[T any](ctx context.Context, codec Codec[T], path string, failOnMissing bool) (T, error) {
	return New(path, codec).Load(ctx, failOnMissing)
}

// Read decodes the record at path like Load, but never creates the file.
func Read[T any](ctx context.Context, codec Codec[T], path string) (T, error) {
	return New(path, codec).Read(ctx)
}

// WriteDefault writes the default record of codec to path, replacing any content.
func WriteDefault[T any](ctx context.Context, codec Codec[T], path string) error {
	return New(path, codec).WriteDefault(ctx)
}

// Save writes v to path, creating the file or replacing its content.
func Save[T any](ctx context.Context, codec Codec[T], v T, path string) error {
	return New(path, codec).Save(ctx, v)
}
