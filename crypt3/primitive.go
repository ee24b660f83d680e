package crypt3

import "github.com/hasbyte1/go-crypt3/libcrypt"

// Primitive is the one-way crypt transform. Given a setting (or a full hash
// produced earlier) it must return a hash string carrying the same scheme tag
// and salt, deterministically for fixed inputs.
//
// Implementations must be safe for concurrent use; the non-blocking
// operations call them from worker goroutines.
type Primitive interface {
	Crypt(key []byte, setting string) (string, error)
}

// PrimitiveFunc adapts an ordinary function to [Primitive].
type PrimitiveFunc func(key []byte, setting string) (string, error)

// Crypt calls f(key, setting).
func (f PrimitiveFunc) Crypt(key []byte, setting string) (string, error) {
	return f(key, setting)
}

// LibcryptPrimitive returns the system crypt(3) as a [Primitive].
// See package libcrypt for platform availability.
func LibcryptPrimitive() Primitive {
	return PrimitiveFunc(func(key []byte, setting string) (string, error) {
		return libcrypt.Crypt(string(key), setting)
	})
}
