package crypt3_test

import (
	"bytes"
	"errors"
	"regexp"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/hasbyte1/go-crypt3/crypt3"
)

var saltPatterns = map[crypt3.Scheme]*regexp.Regexp{
	crypt3.SchemeMD5:    regexp.MustCompile(`^\$1\$[./0-9A-Za-z]{8}$`),
	crypt3.SchemeBcrypt: regexp.MustCompile(`^\$2b\$10\$[./A-Za-z0-9]{22}$`),
	crypt3.SchemeSHA256: regexp.MustCompile(`^\$5\$[./0-9A-Za-z]{16}$`),
	crypt3.SchemeSHA512: regexp.MustCompile(`^\$6\$[./0-9A-Za-z]{16}$`),
}

// ──────────────────────────────────────────────────────────────────────────────
// GenerateSalt
// ──────────────────────────────────────────────────────────────────────────────

func TestGenerateSalt_Format(t *testing.T) {
	h := newTestHasher(t)
	for _, id := range allSchemes {
		salt, err := h.GenerateSalt(id, 0)
		if err != nil {
			t.Fatalf("%s: GenerateSalt: %v", id, err)
		}
		if !saltPatterns[id].MatchString(salt) {
			t.Errorf("%s: %q does not match %s", id, salt, saltPatterns[id])
		}
		if id != crypt3.SchemeBcrypt && strings.Contains(salt, "rounds=") {
			t.Errorf("%s: unexpected rounds clause in %q", id, salt)
		}
	}
}

func TestGenerateSalt_DefaultScheme(t *testing.T) {
	h := newTestHasher(t)
	salt, err := h.GenerateSalt("", 0)
	if err != nil {
		t.Fatalf("GenerateSalt: %v", err)
	}
	if !saltPatterns[crypt3.SchemeSHA512].MatchString(salt) {
		t.Errorf("default salt %q is not sha512", salt)
	}
}

func TestGenerateSalt_Rounds(t *testing.T) {
	h := newTestHasher(t)
	cases := []struct {
		id     crypt3.Scheme
		rounds int
		prefix string
	}{
		{crypt3.SchemeBcrypt, 4, "$2b$04$"},
		{crypt3.SchemeBcrypt, 12, "$2b$12$"},
		{crypt3.SchemeSHA256, 1000, "$5$rounds=1000$"},
		{crypt3.SchemeSHA512, 656000, "$6$rounds=656000$"},
	}
	for _, c := range cases {
		salt, err := h.GenerateSalt(c.id, c.rounds)
		if err != nil {
			t.Fatalf("%s/%d: GenerateSalt: %v", c.id, c.rounds, err)
		}
		if !strings.HasPrefix(salt, c.prefix) {
			t.Errorf("%s/%d: %q lacks prefix %q", c.id, c.rounds, salt, c.prefix)
		}
	}
}

func TestGenerateSalt_MD5IgnoresRounds(t *testing.T) {
	h := newTestHasher(t)
	salt, _ := h.GenerateSalt(crypt3.SchemeMD5, 5000)
	if !saltPatterns[crypt3.SchemeMD5].MatchString(salt) {
		t.Errorf("md5 salt with rounds = %q", salt)
	}
}

func TestGenerateSalt_BcryptAlways22Chars(t *testing.T) {
	h := newTestHasher(t)
	for _, rounds := range []int{0, 4, 10, 31} {
		salt, err := h.GenerateSalt(crypt3.SchemeBcrypt, rounds)
		if err != nil {
			t.Fatalf("rounds %d: %v", rounds, err)
		}
		if got := len(salt) - len("$2b$NN$"); got != 22 {
			t.Errorf("rounds %d: %d salt characters in %q, want 22", rounds, got, salt)
		}
	}
}

func TestGenerateSalt_Unique(t *testing.T) {
	h := newTestHasher(t)
	s1, _ := h.GenerateSalt(crypt3.SchemeSHA512, 0)
	s2, _ := h.GenerateSalt(crypt3.SchemeSHA512, 0)
	if s1 == s2 {
		t.Error("two salts must differ")
	}
}

func TestGenerateSalt_UnknownScheme(t *testing.T) {
	h := newTestHasher(t)
	salt, err := h.GenerateSalt("unknown-scheme", 0)
	if !errors.Is(err, crypt3.ErrUnknownScheme) {
		t.Fatalf("expected ErrUnknownScheme, got %v", err)
	}
	if salt != "" {
		t.Errorf("expected empty salt, got %q", salt)
	}
}

func TestGenerateSalt_InvalidRounds(t *testing.T) {
	h := newTestHasher(t)
	for _, c := range []struct {
		id     crypt3.Scheme
		rounds int
	}{
		{crypt3.SchemeSHA512, -1},
		{crypt3.SchemeBcrypt, 3},
		{crypt3.SchemeBcrypt, 32},
	} {
		if _, err := h.GenerateSalt(c.id, c.rounds); !errors.Is(err, crypt3.ErrInvalidRounds) {
			t.Errorf("%s/%d: expected ErrInvalidRounds, got %v", c.id, c.rounds, err)
		}
	}
}

func TestGenerateSalt_LookupPrecedesEntropy(t *testing.T) {
	var calls int
	h := newTestHasher(t, func(o *crypt3.Options) {
		o.Rand = readerFunc(func(p []byte) (int, error) {
			calls++
			return len(p), nil
		})
	})
	_, _ = h.GenerateSalt("unknown-scheme", 0)
	_, _ = h.GenerateSalt(crypt3.SchemeBcrypt, 99)
	if calls != 0 {
		t.Errorf("entropy source read %d times before validation", calls)
	}
}

func TestGenerateSalt_RandomSourceError(t *testing.T) {
	cause := errors.New("entropy exhausted")
	h := newTestHasher(t, func(o *crypt3.Options) { o.Rand = iotest.ErrReader(cause) })
	_, err := h.GenerateSalt(crypt3.SchemeMD5, 0)
	if !errors.Is(err, crypt3.ErrRandomSource) {
		t.Fatalf("expected ErrRandomSource, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("cause must stay reachable, got %v", err)
	}
}

func TestGenerateSalt_ShortRandomSource(t *testing.T) {
	h := newTestHasher(t, func(o *crypt3.Options) { o.Rand = bytes.NewReader([]byte{1, 2, 3}) })
	if _, err := h.GenerateSalt(crypt3.SchemeMD5, 0); !errors.Is(err, crypt3.ErrRandomSource) {
		t.Fatalf("expected ErrRandomSource, got %v", err)
	}
}

func TestGenerateSalt_FixedEntropy(t *testing.T) {
	h := newTestHasher(t, func(o *crypt3.Options) { o.Rand = bytes.NewReader(make([]byte, 64)) })
	salt, err := h.GenerateSalt(crypt3.SchemeSHA512, 0)
	if err != nil {
		t.Fatalf("GenerateSalt: %v", err)
	}
	if salt != "$6$................" {
		t.Errorf("zero entropy salt = %q", salt)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// GenerateSaltAsync / GenerateSaltFunc
// ──────────────────────────────────────────────────────────────────────────────

func TestGenerateSaltAsync_Format(t *testing.T) {
	h := newTestHasher(t)
	for _, id := range allSchemes {
		salt, err := h.GenerateSaltAsync(id, 0).Result()
		if err != nil {
			t.Fatalf("%s: %v", id, err)
		}
		if !saltPatterns[id].MatchString(salt) {
			t.Errorf("%s: %q does not match %s", id, salt, saltPatterns[id])
		}
	}
}

func TestGenerateSaltAsync_UnknownScheme(t *testing.T) {
	h := newTestHasher(t)
	f := h.GenerateSaltAsync("unknown-scheme", 0)
	select {
	case <-f.Done():
	default:
		t.Fatal("future must already be resolved for an unknown scheme")
	}
	if _, err := f.Result(); !errors.Is(err, crypt3.ErrUnknownScheme) {
		t.Errorf("expected ErrUnknownScheme, got %v", err)
	}
}

func TestGenerateSaltFunc_UnknownSchemeCallsBackSynchronously(t *testing.T) {
	h := newTestHasher(t)
	var got error
	called := 0
	h.GenerateSaltFunc("unknown-scheme", 0, func(_ string, err error) {
		called++
		got = err
	})
	if called != 1 {
		t.Fatalf("callback ran %d times before return, want 1", called)
	}
	if !errors.Is(got, crypt3.ErrUnknownScheme) {
		t.Errorf("expected ErrUnknownScheme, got %v", got)
	}
}

func TestGenerateSaltFunc_Success(t *testing.T) {
	h := newTestHasher(t)
	done := make(chan string, 1)
	h.GenerateSaltFunc(crypt3.SchemeBcrypt, 0, func(salt string, err error) {
		if err != nil {
			t.Errorf("callback error: %v", err)
		}
		done <- salt
	})
	if salt := <-done; !saltPatterns[crypt3.SchemeBcrypt].MatchString(salt) {
		t.Errorf("bcrypt salt %q", salt)
	}
}

func TestGenerateSaltAsync_RandomSourceError(t *testing.T) {
	h := newTestHasher(t, func(o *crypt3.Options) { o.Rand = iotest.ErrReader(errors.New("boom")) })
	if _, err := h.GenerateSaltAsync(crypt3.SchemeMD5, 0).Result(); !errors.Is(err, crypt3.ErrRandomSource) {
		t.Errorf("expected ErrRandomSource, got %v", err)
	}
}

type readerFunc func(p []byte) (int, error)

func (f readerFunc) Read(p []byte) (int, error) { return f(p) }
