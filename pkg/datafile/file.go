package datafile

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/bft-labs/datafile/pkg/log"
)

const (
	// DefaultFileMode is used when creating a file that does not exist yet.
	DefaultFileMode fs.FileMode = 0o644

	// DefaultDebounce is the quiet period Watch waits for after a change.
	DefaultDebounce = 100 * time.Millisecond
)

// Option configures a File.
type Option func(*options)

type options struct {
	logger     log.Logger
	fileMode   fs.FileMode
	createDirs bool
	dirMode    fs.FileMode
	debounce   time.Duration
}

func defaultOptions() options {
	return options{
		logger:   log.NewNoopLogger(),
		fileMode: DefaultFileMode,
		debounce: DefaultDebounce,
	}
}

// WithLogger sets the logger. Only debug entries are emitted; errors are
// always returned, never just logged.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithFileMode sets the permission bits for newly created files.
// Existing files keep their mode.
func WithFileMode(mode fs.FileMode) Option {
	return func(o *options) {
		o.fileMode = mode.Perm()
	}
}

// WithCreateDirs makes writes create missing parent directories with mode.
func WithCreateDirs(mode fs.FileMode) Option {
	return func(o *options) {
		o.createDirs = true
		o.dirMode = mode.Perm()
	}
}

// WithDebounce sets how long Watch waits for changes to settle before reloading.
func WithDebounce(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.debounce = d
		}
	}
}

// File is a record of type T persisted at a fixed path.
// A File holds no state besides its configuration and is safe for concurrent
// use, with the caveat that the file on disk is not coordinated between writers.
type File[T any] struct {
	path  string
	codec Codec[T]
	opts  options
}

// New creates a File for path using codec.
func New[T any](path string, codec Codec[T], opts ...Option) *File[T] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &File[T]{path: path, codec: codec, opts: o}
}

// Path returns the location of the file.
func (f *File[T]) Path() string {
	return f.path
}

// Exists reports whether the file is present. Errors other than
// non-existence are returned.
func (f *File[T]) Exists() (bool, error) {
	_, err := os.Stat(f.path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Load reads the record. If the file does not exist the default record is
// written first; then, with failOnMissing, ErrNoFileFoundCreatedDefault is
// returned, otherwise the default record itself.
func (f *File[T]) Load(ctx context.Context, failOnMissing bool) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	exists, err := f.Exists()
	if err != nil {
		return zero, err
	}

	if !exists {
		def := f.codec.Default()
		if err := f.write(def); err != nil {
			return zero, err
		}
		f.opts.logger.Debug("created default file",
			log.Path(f.path), log.Bool("fail_on_missing", failOnMissing))

		if failOnMissing {
			return zero, ErrNoFileFoundCreatedDefault
		}
		return def, nil
	}

	return f.read()
}

// WriteDefault overwrites the file with the default record.
func (f *File[T]) WriteDefault(ctx context.Context) error {
	return f.Save(ctx, f.codec.Default())
}

// Save encodes v and replaces the file contents with it.
func (f *File[T]) Save(ctx context.Context, v T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return f.write(v)
}

// Read decodes the existing file without ever creating it. A missing file is
// an I/O error satisfying errors.Is(err, fs.ErrNotExist).
func (f *File[T]) Read(ctx context.Context) (T, error) {
	if err := ctx.Err(); err != nil {
		var zero T
		return zero, err
	}
	return f.read()
}

func (f *File[T]) read() (T, error) {
	var zero T

	data, err := os.ReadFile(f.path)
	if err != nil {
		return zero, err
	}

	// Remove comments, e.g. "# Ansible managed"
	stripped := StripComments(string(data))

	v, err := f.codec.Unmarshal([]byte(stripped))
	if err != nil {
		return zero, &DecodeError{Path: f.path, Err: err}
	}

	f.opts.logger.Debug("loaded file", log.Path(f.path), log.Int("bytes", len(data)))
	return v, nil
}

func (f *File[T]) write(v T) error {
	data, err := f.codec.Marshal(v)
	if err != nil {
		return &EncodeError{Path: f.path, Err: err}
	}

	if f.opts.createDirs {
		if err := os.MkdirAll(filepath.Dir(f.path), f.opts.dirMode); err != nil {
			return err
		}
	}

	// Truncate and rewrite in place.
	if err := os.WriteFile(f.path, data, f.opts.fileMode); err != nil {
		return err
	}

	f.opts.logger.Debug("saved file",
		log.Path(f.path), log.Int("bytes", len(data)), log.Mode("mode", f.opts.fileMode))
	return nil
}
