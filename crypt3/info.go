package crypt3

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// HashInfo carries the parameters embedded in a salt or hash string.
type HashInfo struct {
	// Scheme is the family that produced the string.
	Scheme Scheme

	// Rounds is the embedded rounds value, or 0 when the string has none.
	// bcrypt strings always carry their cost.
	Rounds int

	// Salt is the encoded salt segment.
	Salt string
}

// DetectScheme inspects the prefix of a salt or hash string. The second
// return value is false when the prefix is not recognised.
func DetectScheme(hash string) (Scheme, bool) {
	switch {
	case strings.HasPrefix(hash, "$1$"):
		return SchemeMD5, true
	// bcrypt hashes start with $2a$, $2b$, or $2y$
	case strings.HasPrefix(hash, "$2a$"),
		strings.HasPrefix(hash, "$2b$"),
		strings.HasPrefix(hash, "$2y$"):
		return SchemeBcrypt, true
	case strings.HasPrefix(hash, "$5$"):
		return SchemeSHA256, true
	case strings.HasPrefix(hash, "$6$"):
		return SchemeSHA512, true
	default:
		return "", false
	}
}

// Info parses a salt or hash string without verifying it. Both a bare
// setting ("$6$rounds=5000$abc") and a full hash are accepted.
func Info(hash string) (HashInfo, error) {
	id, ok := DetectScheme(hash)
	if !ok {
		return HashInfo{}, fmt.Errorf("%w: unrecognised prefix", ErrInvalidHash)
	}
	switch id {
	case SchemeBcrypt:
		return bcryptInfo(hash)
	case SchemeMD5:
		return HashInfo{Scheme: id, Salt: segment(hash[len("$1$"):])}, nil
	default:
		return shaInfo(id, hash[len("$5$"):])
	}
}

// bcryptInfo parses "$2b$NN$<22-char salt>[<31-char digest>]".
func bcryptInfo(hash string) (HashInfo, error) {
	rest := hash[len("$2b$"):]
	if len(rest) < 3 || rest[2] != '$' {
		return HashInfo{}, fmt.Errorf("%w: bcrypt cost must be two digits", ErrInvalidHash)
	}
	cost, err := strconv.Atoi(rest[:2])
	if err != nil {
		return HashInfo{}, fmt.Errorf("%w: bcrypt cost: %v", ErrInvalidHash, err)
	}
	salt := rest[3:]
	if len(salt) < 22 {
		return HashInfo{}, fmt.Errorf("%w: bcrypt salt is %d characters, want 22", ErrInvalidHash, len(salt))
	}
	if len(salt) > 22 {
		// A full hash: let bcrypt validate the layout and cost.
		if cost, err = bcrypt.Cost([]byte(hash)); err != nil {
			return HashInfo{}, fmt.Errorf("%w: %v", ErrInvalidHash, err)
		}
	}
	return HashInfo{Scheme: SchemeBcrypt, Rounds: cost, Salt: salt[:22]}, nil
}

// shaInfo parses "[rounds=N$]<salt>[$<digest>]".
func shaInfo(id Scheme, rest string) (HashInfo, error) {
	info := HashInfo{Scheme: id}
	if r, ok := strings.CutPrefix(rest, "rounds="); ok {
		n, tail, found := strings.Cut(r, "$")
		if !found {
			return HashInfo{}, fmt.Errorf("%w: unterminated rounds clause", ErrInvalidHash)
		}
		rounds, err := strconv.Atoi(n)
		if err != nil || rounds <= 0 {
			return HashInfo{}, fmt.Errorf("%w: rounds %q", ErrInvalidHash, n)
		}
		info.Rounds = rounds
		rest = tail
	}
	info.Salt = segment(rest)
	return info, nil
}

// segment returns s up to the first '$'.
func segment(s string) string {
	salt, _, _ := strings.Cut(s, "$")
	return salt
}

// NeedsRehash reports whether storedHash was produced with a different
// scheme or rounds than id and rounds would produce today. For bcrypt,
// rounds == 0 compares against the registry's default cost.
//
// Call it after a successful [Hasher.Verify] and persist a fresh
// [Hasher.Hash] when it returns true.
func (h *Hasher) NeedsRehash(storedHash string, id Scheme, rounds int) (bool, error) {
	info, err := Info(storedHash)
	if err != nil {
		return false, err
	}
	s, err := h.resolve(id, rounds)
	if err != nil {
		return false, err
	}
	if info.Scheme != s.ID {
		return true, nil
	}
	want := rounds
	if s.ID == SchemeBcrypt && want == 0 {
		want = h.registry.DefaultBcryptRounds()
	}
	return info.Rounds != want, nil
}
