package libcrypt

import (
	"errors"
	"syscall"
)

var (
	// ErrUnavailable is returned by [Crypt] when the binary was built without
	// access to the system libcrypt.
	ErrUnavailable = errors.New("libcrypt: crypt(3) is not available in this build")

	// ErrInvalidKey is returned when the key or setting contains a NUL byte,
	// which cannot be passed through a C string.
	ErrInvalidKey = errors.New("libcrypt: key and setting must not contain NUL bytes")

	// ErrFailed matches every [*Error] via [errors.Is].
	ErrFailed = errors.New("libcrypt: crypt failed")
)

// Error reports a crypt(3) failure together with the errno it left behind.
// EINVAL usually means the setting was malformed or names a method the
// system library does not support.
type Error struct {
	Errno syscall.Errno
}

func (e *Error) Error() string {
	return "libcrypt: crypt: " + e.Errno.Error()
}

// Is reports whether target is [ErrFailed].
func (e *Error) Is(target error) bool { return target == ErrFailed }

// Unwrap returns the underlying errno.
func (e *Error) Unwrap() error { return e.Errno }
