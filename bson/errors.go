package bson

import "errors"

// Error kinds. Callers branch on kind with errors.Is, not on message
// text, matching the driver's error-handling convention of typed
// sentinels wrapped with call-site context (see internal/idgen and
// cmd/bsoncli, which wrap these with github.com/pkg/errors).
var (
	// ErrInvalidName: a key began with '$' or contained '.' under check_keys.
	ErrInvalidName = errors.New("bson: invalid key name")

	// ErrInvalidStringEncoding: a byte sequence was not valid UTF-8 where
	// UTF-8 was required.
	ErrInvalidStringEncoding = errors.New("bson: invalid utf-8 string")

	// ErrInvalidDocument: NUL in a key or regex pattern, an unsupported
	// value type, a document exceeding the 4 MiB ceiling, or any other
	// structural violation.
	ErrInvalidDocument = errors.New("bson: invalid document")

	// ErrRangeError: an integer value fell outside [-2^63, 2^63-1].
	ErrRangeError = errors.New("bson: integer out of range")

	// ErrTypeError: a document key was neither a string nor a Symbol.
	ErrTypeError = errors.New("bson: invalid key type")

	// ErrDecodeError: malformed wire bytes (unknown tag, length overrun,
	// missing NUL terminator, inner/outer length mismatch).
	ErrDecodeError = errors.New("bson: malformed bson")

	// ErrOutOfMemory: the byte buffer could not grow. Fatal to the call;
	// any partial buffer is released before this is returned.
	ErrOutOfMemory = errors.New("bson: out of memory")
)

// docTooLarge wraps ErrInvalidDocument with the offending size, the one
// InvalidDocument case callers most want call-site detail on.
func docTooLarge(size int) error {
	return &sizeError{size: size}
}

type sizeError struct {
	size int
}

func (e *sizeError) Error() string {
	return "bson: document too large"
}

func (e *sizeError) Unwrap() error {
	return ErrInvalidDocument
}

func (e *sizeError) Size() int {
	return e.size
}
