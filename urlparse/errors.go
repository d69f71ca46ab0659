package urlparse

import "errors"

var (
	// ErrInvalidArgument indicates a nil or closed Parser or a nil output record.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNoMatch indicates the input is not an acceptable URL.
	ErrNoMatch = errors.New("input is not a valid URL")
	// ErrOutOfMemory is reserved for allocation failures while matching.
	// The Go runtime aborts on allocation failure, so Parse never returns it.
	ErrOutOfMemory = errors.New("out of memory")
	// ErrInvalidGrammar indicates the URL grammar failed to compile.
	ErrInvalidGrammar = errors.New("invalid URL grammar")
)
