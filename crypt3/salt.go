package crypt3

import (
	"fmt"
	"io"
)

// GenerateSalt returns a new salt string for id. The empty id selects the
// default scheme; rounds == 0 omits the rounds clause (bcrypt falls back to
// the registry's default cost instead).
//
// Rounds are checked before any entropy is read: a negative value, or a
// bcrypt cost outside [bcrypt.MinCost, bcrypt.MaxCost] (4 to 31), fails with
// [ErrInvalidRounds] instead of producing a salt crypt(3) would reject.
// SHA rounds are passed through as given.
//
//	h.GenerateSalt(crypt3.SchemeSHA512, 0)     // $6$<16 chars>
//	h.GenerateSalt(crypt3.SchemeSHA512, 5000)  // $6$rounds=5000$<16 chars>
//	h.GenerateSalt(crypt3.SchemeBcrypt, 0)     // $2b$10$<22 chars>
func (h *Hasher) GenerateSalt(id Scheme, rounds int) (string, error) {
	s, err := h.resolve(id, rounds)
	if err != nil {
		return "", err
	}
	return h.generateSalt(s, rounds)
}

// GenerateSaltAsync is the non-blocking form of [Hasher.GenerateSalt].
func (h *Hasher) GenerateSaltAsync(id Scheme, rounds int) *Future[string] {
	s, err := h.resolve(id, rounds)
	if err != nil {
		return failedFuture[string](err)
	}
	return submit(h, "generate_salt", func() (string, error) {
		return h.generateSalt(s, rounds)
	})
}

// GenerateSaltFunc is [Hasher.GenerateSaltAsync] with the outcome delivered
// to fn, exactly once, under the same rules as [Hasher.HashFunc].
func (h *Hasher) GenerateSaltFunc(id Scheme, rounds int, fn func(salt string, err error)) {
	h.GenerateSaltAsync(id, rounds).then(fn)
}

func (h *Hasher) generateSalt(s SaltScheme, rounds int) (string, error) {
	raw := make([]byte, s.SaltBytes)
	if _, err := io.ReadFull(h.rand, raw); err != nil {
		return "", fmt.Errorf("%w: %w", ErrRandomSource, err)
	}
	return s.Setting(rounds, s.Encode(raw)), nil
}
