package crypt3

import (
	"bytes"
	"crypto/subtle"
)

// Verify reports whether data hashes to storedHash. storedHash doubles as
// the salt, since it carries its own scheme tag, rounds and salt.
//
// A mismatch is (false, nil). A hash the primitive cannot process is an
// error wrapping [ErrCryptPrimitive], never false.
func (h *Hasher) Verify(data []byte, storedHash string) (bool, error) {
	got, err := h.crypt(data, storedHash)
	if err != nil {
		return false, err
	}
	return equal(got, storedHash), nil
}

// VerifyAsync is the non-blocking form of [Hasher.Verify].
func (h *Hasher) VerifyAsync(data []byte, storedHash string) *Future[bool] {
	key := bytes.Clone(data)
	return submit(h, "verify", func() (bool, error) {
		return h.Verify(key, storedHash)
	})
}

// VerifyFunc is [Hasher.VerifyAsync] with the outcome delivered to fn,
// exactly once, under the same rules as [Hasher.HashFunc].
func (h *Hasher) VerifyFunc(data []byte, storedHash string, fn func(ok bool, err error)) {
	h.VerifyAsync(data, storedHash).then(fn)
}

func equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
