// Package libcrypt exposes the system crypt(3) implementation.
//
// On Linux with cgo enabled, [Crypt] calls crypt_r(3) from libcrypt
// (libxcrypt on current distributions, glibc's libcrypt on older ones). The
// method used is selected by the setting string, exactly as crypt(3) does:
//
//	$1$<salt>                 MD5-crypt
//	$2b$<cost>$<salt>         bcrypt
//	$5$[rounds=<N>$]<salt>    SHA-256-crypt
//	$6$[rounds=<N>$]<salt>    SHA-512-crypt
//
// A previously produced hash is itself a valid setting, which is how
// verification works: hashing the candidate with the stored hash as setting
// must reproduce the stored hash.
//
// Builds without cgo, or for other operating systems, compile against a stub
// whose [Crypt] always fails with [ErrUnavailable].
package libcrypt
