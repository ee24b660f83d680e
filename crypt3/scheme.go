package crypt3

import (
	"encoding/base64"
	"fmt"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

// Scheme identifies a crypt(3) hash family.
// The zero value selects the registry's default scheme.
type Scheme string

const (
	// SchemeMD5 selects MD5-crypt ($1$).
	SchemeMD5 Scheme = "md5"
	// SchemeBcrypt selects bcrypt ($2b$).
	SchemeBcrypt Scheme = "bcrypt"
	// SchemeSHA256 selects SHA-256-crypt ($5$).
	SchemeSHA256 Scheme = "sha256"
	// SchemeSHA512 selects SHA-512-crypt ($6$).
	SchemeSHA512 Scheme = "sha512"
)

// DefaultBcryptRounds is the bcrypt cost used when no rounds are requested.
const DefaultBcryptRounds = 10

// schemes lists the supported identifiers in the order [Registry.Schemes]
// reports them.
var schemes = []Scheme{SchemeMD5, SchemeBcrypt, SchemeSHA256, SchemeSHA512}

// Salt alphabets. Both are base64-style, six bits per character, and contain
// only characters crypt(3) accepts in a salt.
const (
	cryptAlphabet  = "./0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	bcryptAlphabet = "./ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

var (
	cryptEncoding  = base64.NewEncoding(cryptAlphabet).WithPadding(base64.NoPadding)
	bcryptEncoding = base64.NewEncoding(bcryptAlphabet).WithPadding(base64.NoPadding)
)

// ParseScheme converts s to a [Scheme]. The empty string is accepted and
// means "registry default".
func ParseScheme(s string) (Scheme, error) {
	switch id := Scheme(s); id {
	case "", SchemeMD5, SchemeBcrypt, SchemeSHA256, SchemeSHA512:
		return id, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownScheme, s)
	}
}

// SaltScheme holds the encoding rules of one scheme.
// Values are only produced by a [Registry]; the zero value is not usable.
type SaltScheme struct {
	// ID is the scheme identifier.
	ID Scheme

	// SaltBytes is the number of random bytes drawn per salt.
	SaltBytes int

	// MaxSaltLen caps the encoded salt length. Zero means no cap.
	MaxSaltLen int

	encoding *base64.Encoding
	setting  func(rounds int, salt string) string
}

// Encode encodes raw salt bytes in the scheme's alphabet and truncates the
// result to MaxSaltLen characters when a cap is defined.
func (s SaltScheme) Encode(raw []byte) string {
	enc := s.encoding.EncodeToString(raw)
	if s.MaxSaltLen > 0 && len(enc) > s.MaxSaltLen {
		enc = enc[:s.MaxSaltLen]
	}
	return enc
}

// Setting builds the full salt string handed to the crypt primitive.
// rounds == 0 means absent.
func (s SaltScheme) Setting(rounds int, salt string) string {
	return s.setting(rounds, salt)
}

// ValidateRounds reports whether rounds is acceptable for the scheme.
func (s SaltScheme) ValidateRounds(rounds int) error {
	if rounds < 0 {
		return fmt.Errorf("%w: %d must not be negative", ErrInvalidRounds, rounds)
	}
	if s.ID == SchemeBcrypt && rounds != 0 && (rounds < bcrypt.MinCost || rounds > bcrypt.MaxCost) {
		return fmt.Errorf("%w: bcrypt cost %d must be in [%d, %d]",
			ErrInvalidRounds, rounds, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return nil
}

// RegistryOptions carries the defaults applied when a caller omits the
// scheme or the bcrypt rounds.
type RegistryOptions struct {
	// DefaultScheme is used when a call passes the empty Scheme.
	// Default: [SchemeSHA512].
	DefaultScheme Scheme

	// DefaultBcryptRounds is the cost emitted for bcrypt when no rounds are
	// requested. Valid range: [bcrypt.MinCost, bcrypt.MaxCost].
	// Default: [DefaultBcryptRounds] (10).
	DefaultBcryptRounds int
}

// DefaultRegistryOptions returns sha512 as default scheme and a bcrypt cost
// of 10.
func DefaultRegistryOptions() RegistryOptions {
	return RegistryOptions{
		DefaultScheme:       SchemeSHA512,
		DefaultBcryptRounds: DefaultBcryptRounds,
	}
}

// Registry maps scheme identifiers to their [SaltScheme].
//
// A Registry is immutable after construction and safe for concurrent use.
type Registry struct {
	def     Scheme
	bcrypt  int
	schemes map[Scheme]SaltScheme
}

// NewRegistry builds a Registry. Zero-valued fields of opts take their
// defaults from [DefaultRegistryOptions].
func NewRegistry(opts RegistryOptions) (*Registry, error) {
	if opts.DefaultScheme == "" {
		opts.DefaultScheme = SchemeSHA512
	}
	if opts.DefaultBcryptRounds == 0 {
		opts.DefaultBcryptRounds = DefaultBcryptRounds
	}
	if opts.DefaultBcryptRounds < bcrypt.MinCost || opts.DefaultBcryptRounds > bcrypt.MaxCost {
		return nil, fmt.Errorf("%w: default bcrypt rounds %d must be in [%d, %d]",
			ErrInvalidOption, opts.DefaultBcryptRounds, bcrypt.MinCost, bcrypt.MaxCost)
	}

	r := &Registry{
		bcrypt:  opts.DefaultBcryptRounds,
		schemes: make(map[Scheme]SaltScheme, len(schemes)),
	}
	for _, id := range schemes {
		s, err := newSaltScheme(id, opts.DefaultBcryptRounds)
		if err != nil {
			return nil, err
		}
		r.schemes[id] = s
	}
	if _, ok := r.schemes[opts.DefaultScheme]; !ok {
		return nil, fmt.Errorf("%w: default scheme: %w", ErrInvalidOption,
			fmt.Errorf("%w: %q", ErrUnknownScheme, opts.DefaultScheme))
	}
	r.def = opts.DefaultScheme
	return r, nil
}

// newSaltScheme is the single place that knows every scheme's layout.
func newSaltScheme(id Scheme, bcryptRounds int) (SaltScheme, error) {
	switch id {
	case SchemeMD5:
		return SaltScheme{
			ID:        id,
			SaltBytes: 6,
			encoding:  cryptEncoding,
			setting:   func(_ int, salt string) string { return "$1$" + salt },
		}, nil
	case SchemeBcrypt:
		return SaltScheme{
			ID:         id,
			SaltBytes:  16,
			MaxSaltLen: 22,
			encoding:   bcryptEncoding,
			setting: func(rounds int, salt string) string {
				if rounds == 0 {
					rounds = bcryptRounds
				}
				// crypt(3) only accepts a two-digit cost.
				return fmt.Sprintf("$2b$%02d$%s", rounds, salt)
			},
		}, nil
	case SchemeSHA256:
		return SaltScheme{
			ID:        id,
			SaltBytes: 12,
			encoding:  cryptEncoding,
			setting:   func(rounds int, salt string) string { return "$5$" + shaRounds(rounds) + salt },
		}, nil
	case SchemeSHA512:
		return SaltScheme{
			ID:        id,
			SaltBytes: 12,
			encoding:  cryptEncoding,
			setting:   func(rounds int, salt string) string { return "$6$" + shaRounds(rounds) + salt },
		}, nil
	default:
		return SaltScheme{}, fmt.Errorf("%w: %q", ErrUnknownScheme, id)
	}
}

func shaRounds(rounds int) string {
	if rounds <= 0 {
		return ""
	}
	return "rounds=" + strconv.Itoa(rounds) + "$"
}

// Lookup returns the SaltScheme for id. The empty id resolves to the default
// scheme; any identifier outside the supported set fails with
// [ErrUnknownScheme].
func (r *Registry) Lookup(id Scheme) (SaltScheme, error) {
	if id == "" {
		id = r.def
	}
	s, ok := r.schemes[id]
	if !ok {
		return SaltScheme{}, fmt.Errorf("%w: %q", ErrUnknownScheme, id)
	}
	return s, nil
}

// DefaultScheme returns the scheme used for the empty identifier.
func (r *Registry) DefaultScheme() Scheme { return r.def }

// DefaultBcryptRounds returns the cost emitted for bcrypt without rounds.
func (r *Registry) DefaultBcryptRounds() int { return r.bcrypt }

// Schemes returns the supported scheme identifiers.
func (r *Registry) Schemes() []Scheme {
	out := make([]Scheme, len(schemes))
	copy(out, schemes)
	return out
}
