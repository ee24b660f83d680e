//go:build !cgo || !linux

package libcrypt

// Available reports whether [Crypt] is backed by the system library.
const Available = false

// Crypt always fails with [ErrUnavailable] in builds without cgo.
func Crypt(key, setting string) (string, error) {
	return "", ErrUnavailable
}
