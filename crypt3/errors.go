package crypt3

import "errors"

// Sentinel errors returned by crypt3 operations.
//
// Errors from collaborators are wrapped, never replaced, so the original
// cause stays reachable:
//
//	ok, err := h.Verify(password, stored)
//	switch {
//	case errors.Is(err, crypt3.ErrCryptPrimitive):
//	    // could not verify: malformed hash or primitive failure
//	case err != nil:
//	    // other failure (hasher closed, random source, ...)
//	case !ok:
//	    // wrong password
//	}
var (
	// ErrUnknownScheme is returned when a scheme identifier is not one of
	// md5, bcrypt, sha256 or sha512. It is never replaced by a default.
	ErrUnknownScheme = errors.New("crypt3: unknown salt scheme")

	// ErrInvalidRounds is returned when a rounds value is negative, or when
	// a bcrypt cost lies outside [bcrypt.MinCost, bcrypt.MaxCost].
	ErrInvalidRounds = errors.New("crypt3: invalid rounds")

	// ErrRandomSource is returned when the entropy source fails to deliver
	// the requested number of bytes.
	ErrRandomSource = errors.New("crypt3: random source failure")

	// ErrCryptPrimitive wraps every error returned by the crypt primitive.
	ErrCryptPrimitive = errors.New("crypt3: crypt primitive failed")

	// ErrInvalidHash is returned by [Info] when a hash string cannot be
	// parsed.
	ErrInvalidHash = errors.New("crypt3: invalid or unrecognised hash string")

	// ErrInvalidOption is returned by [New] when an option is out of range.
	ErrInvalidOption = errors.New("crypt3: invalid option value")

	// ErrClosed is returned by the non-blocking operations after
	// [Hasher.Close], and by a second Close.
	ErrClosed = errors.New("crypt3: hasher is closed")
)
