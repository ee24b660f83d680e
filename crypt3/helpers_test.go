package crypt3_test

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/hasbyte1/go-crypt3/crypt3"
)

// fakeCrypt is a deterministic stand-in for crypt(3). Its output is the
// setting, a '#', and a digest of setting and key; fed its own output it
// recovers the setting from the part before '#', the way crypt(3) reads the
// salt out of a full hash.
func fakeCrypt(key []byte, setting string) (string, error) {
	setting, _, _ = strings.Cut(setting, "#")
	if _, ok := crypt3.DetectScheme(setting); !ok {
		return "", errFakeMalformed
	}
	sum := sha256.Sum256(append([]byte(setting+"\x00"), key...))
	return setting + "#" + hex.EncodeToString(sum[:]), nil
}

var errFakeMalformed = errors.New("fake: malformed setting")

// countingPrimitive records how often the primitive ran.
type countingPrimitive struct {
	calls atomic.Int64
}

func (p *countingPrimitive) Crypt(key []byte, setting string) (string, error) {
	p.calls.Add(1)
	return fakeCrypt(key, setting)
}

// newTestHasher returns a Hasher over the fake primitive. It accepts
// testing.TB so benchmarks can share it.
func newTestHasher(tb testing.TB, mutate ...func(*crypt3.Options)) *crypt3.Hasher {
	tb.Helper()
	opts := crypt3.Options{Primitive: crypt3.PrimitiveFunc(fakeCrypt)}
	for _, m := range mutate {
		m(&opts)
	}
	h, err := crypt3.New(opts)
	if err != nil {
		tb.Fatalf("New: %v", err)
	}
	tb.Cleanup(func() { _ = h.Close() })
	return h
}

// allSchemes lists every supported scheme.
var allSchemes = []crypt3.Scheme{
	crypt3.SchemeMD5,
	crypt3.SchemeBcrypt,
	crypt3.SchemeSHA256,
	crypt3.SchemeSHA512,
}
