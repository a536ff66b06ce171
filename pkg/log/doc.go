// Package log is the logging abstraction used by datafile.
//
// The datafile package never logs on its own behalf unless a Logger is
// supplied; the default is NoopLogger. Commands wire the zerolog adapter:
//
//	logger := log.NewZerologAdapterWithLogger(zerolog.New(os.Stderr))
//	f := datafile.New(path, codec, datafile.WithLogger(logger))
//
// Any other logging library can be plugged in by implementing Logger.
package log
