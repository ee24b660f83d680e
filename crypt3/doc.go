// Package crypt3 generates crypt(3) salts and hashes and verifies passwords
// with them.
//
// # Schemes
//
// Four crypt(3) families are supported, selected by [Scheme]:
//
//   - [SchemeMD5]: $1$<8-char salt>
//   - [SchemeBcrypt]: $2b$<cost>$<22-char salt>, cost 10 unless requested
//   - [SchemeSHA256]: $5$[rounds=<N>$]<16-char salt>
//   - [SchemeSHA512]: $6$[rounds=<N>$]<16-char salt> (the default)
//
// The [Registry] owns these layouts and the defaults (scheme when none is
// given, bcrypt cost). It is built once by [New] and never changes.
//
// # Blocking and non-blocking calls
//
// Every operation comes in three shapes:
//
//	hash, err := h.Hash(pw, crypt3.SchemeSHA512, 0)        // blocks the caller
//	fut := h.HashAsync(pw, crypt3.SchemeSHA512, 0)         // returns a Future
//	h.HashFunc(pw, crypt3.SchemeSHA512, 0, func(hash string, err error) { ... })
//
// The non-blocking shapes run on a worker pool owned by the [Hasher]. The
// pool bounds how many jobs run at once, but a submission never fails for
// lack of room: calls are independent of each other whatever the load.
// Scheme and rounds are checked before anything is submitted, so an unknown
// scheme resolves the Future (or calls the callback) immediately.
//
// # Verification
//
// A crypt(3) hash embeds its own scheme tag, rounds and salt, so it can be
// fed back as the salt:
//
//	ok, err := h.Verify(pw, stored)
//
// ok is false for a wrong password. A hash the primitive rejects is reported
// as an error wrapping [ErrCryptPrimitive], never as false.
//
// # Primitive
//
// The transform itself is a [Primitive]. [LibcryptPrimitive], the default,
// calls the system crypt_r(3) through package libcrypt.
package crypt3
