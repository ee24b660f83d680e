package crypt3

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"io"
	"log/slog"
)

// Options configures a [Hasher].
type Options struct {
	// Registry holds the scheme and bcrypt-rounds defaults.
	Registry RegistryOptions

	// Pool sizes the workers behind the non-blocking operations.
	Pool PoolOptions

	// Rand is the entropy source for salts. It must be cryptographically
	// secure and safe for concurrent use. Default: crypto/rand.Reader.
	Rand io.Reader

	// Primitive performs the crypt transform. Default: [LibcryptPrimitive].
	Primitive Primitive

	// Logger receives pool lifecycle and failure records. Passwords and
	// hashes are never logged. Default: discard.
	Logger *slog.Logger
}

// DefaultOptions returns the options used by [NewDefault].
func DefaultOptions() Options {
	return Options{
		Registry:  DefaultRegistryOptions(),
		Pool:      DefaultPoolOptions(),
		Rand:      rand.Reader,
		Primitive: LibcryptPrimitive(),
		Logger:    slog.New(slog.DiscardHandler),
	}
}

// Hasher generates salts, hashes and verifies passwords.
//
// Every operation has a blocking form and a non-blocking form. The blocking
// form runs on the caller's goroutine. The non-blocking form returns a
// [Future] (…Async) or delivers the outcome to a callback (…Func); the work
// runs on the Hasher's worker pool.
//
// # Thread safety
//
// A Hasher is safe for concurrent use. Its only shared state is the
// read-only [Registry] and the pool.
type Hasher struct {
	registry  *Registry
	rand      io.Reader
	primitive Primitive
	pool      *pool
	logger    *slog.Logger
}

// New constructs a Hasher and starts its worker pool. Zero-valued fields of
// opts take their defaults from [DefaultOptions]. Call [Hasher.Close] to stop
// the pool.
func New(opts Options) (*Hasher, error) {
	registry, err := NewRegistry(opts.Registry)
	if err != nil {
		return nil, err
	}
	poolOpts, err := opts.Pool.withDefaults()
	if err != nil {
		return nil, err
	}
	if opts.Rand == nil {
		opts.Rand = rand.Reader
	}
	if opts.Primitive == nil {
		opts.Primitive = LibcryptPrimitive()
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	return &Hasher{
		registry:  registry,
		rand:      opts.Rand,
		primitive: opts.Primitive,
		pool:      newPool(poolOpts, opts.Logger),
		logger:    opts.Logger,
	}, nil
}

// NewDefault constructs a Hasher with [DefaultOptions]: sha512 by default,
// bcrypt cost 10, system crypt(3).
//
//	h, err := crypt3.NewDefault()
//	if err != nil { log.Fatal(err) }
//	defer h.Close()
//
//	hash, _ := h.Hash([]byte("secret"), "", 0)
//	ok, _ := h.Verify([]byte("secret"), hash)
func NewDefault() (*Hasher, error) {
	h, err := New(DefaultOptions())
	if err != nil {
		return nil, fmt.Errorf("crypt3: failed to create default hasher: %w", err)
	}
	return h, nil
}

// Close stops accepting non-blocking work and waits for submitted jobs, and
// the callbacks they deliver to, to finish. Blocking operations keep working
// after Close. A second Close returns [ErrClosed].
//
// Close must not be called from a …Func callback: the callback is itself a
// job Close would wait for.
func (h *Hasher) Close() error {
	if !h.pool.stop() {
		return ErrClosed
	}
	return nil
}

// Registry returns the Hasher's scheme registry.
func (h *Hasher) Registry() *Registry { return h.registry }

// Hash generates a fresh salt for id and rounds, then hashes data with it.
// The empty id selects the default scheme; rounds == 0 means absent.
func (h *Hasher) Hash(data []byte, id Scheme, rounds int) (string, error) {
	s, err := h.resolve(id, rounds)
	if err != nil {
		return "", err
	}
	return h.hash(data, s, rounds)
}

// HashWithSalt hashes data with a caller-supplied salt string or a complete
// hash produced earlier.
func (h *Hasher) HashWithSalt(data []byte, saltOrHash string) (string, error) {
	return h.crypt(data, saltOrHash)
}

// HashAsync is the non-blocking form of [Hasher.Hash]. Salt generation
// precedes the crypt call within the same job. An unknown scheme or invalid
// rounds resolve the Future before any work is submitted.
func (h *Hasher) HashAsync(data []byte, id Scheme, rounds int) *Future[string] {
	s, err := h.resolve(id, rounds)
	if err != nil {
		return failedFuture[string](err)
	}
	key := bytes.Clone(data)
	return submit(h, "hash", func() (string, error) {
		return h.hash(key, s, rounds)
	})
}

// HashWithSaltAsync is the non-blocking form of [Hasher.HashWithSalt].
func (h *Hasher) HashWithSaltAsync(data []byte, saltOrHash string) *Future[string] {
	key := bytes.Clone(data)
	return submit(h, "hash_with_salt", func() (string, error) {
		return h.crypt(key, saltOrHash)
	})
}

// HashFunc is [Hasher.HashAsync] with the outcome delivered to fn, exactly
// once. fn runs on a worker goroutine, or on the caller's goroutine when the
// call fails before any work is submitted. A panic in fn is not recovered.
// fn must not call [Hasher.Close].
func (h *Hasher) HashFunc(data []byte, id Scheme, rounds int, fn func(hash string, err error)) {
	h.HashAsync(data, id, rounds).then(fn)
}

// HashWithSaltFunc is [Hasher.HashWithSaltAsync] with the outcome delivered
// to fn, exactly once, under the same rules as [Hasher.HashFunc].
func (h *Hasher) HashWithSaltFunc(data []byte, saltOrHash string, fn func(hash string, err error)) {
	h.HashWithSaltAsync(data, saltOrHash).then(fn)
}

// resolve looks up id and checks rounds against it. It never touches the
// entropy source or the primitive.
func (h *Hasher) resolve(id Scheme, rounds int) (SaltScheme, error) {
	s, err := h.registry.Lookup(id)
	if err != nil {
		return SaltScheme{}, err
	}
	if err := s.ValidateRounds(rounds); err != nil {
		return SaltScheme{}, err
	}
	return s, nil
}

func (h *Hasher) hash(data []byte, s SaltScheme, rounds int) (string, error) {
	salt, err := h.generateSalt(s, rounds)
	if err != nil {
		return "", err
	}
	return h.crypt(data, salt)
}

func (h *Hasher) crypt(data []byte, setting string) (string, error) {
	out, err := h.primitive.Crypt(data, setting)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrCryptPrimitive, err)
	}
	return out, nil
}

// submit runs fn on the pool and returns a Future for its outcome.
func submit[T any](h *Hasher, op string, fn func() (T, error)) *Future[T] {
	f := newFuture[T]()
	err := h.pool.submit(func() {
		// Resolve outside runJob so callbacks registered on f are not
		// covered by its recover.
		f.resolve(runJob(h, op, fn))
	})
	if err != nil {
		h.logger.Warn("crypt3: job rejected", slog.String("op", op), slog.Any("error", err))
		var zero T
		f.resolve(zero, err)
	}
	return f
}

// runJob calls fn, turning a panic in the primitive or entropy source into
// an error wrapping [ErrCryptPrimitive].
func runJob[T any](h *Hasher, op string, fn func() (T, error)) (val T, err error) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("crypt3: recovered panic in worker",
				slog.String("op", op), slog.Any("panic", r))
			var zero T
			val, err = zero, fmt.Errorf("%w: panic: %v", ErrCryptPrimitive, r)
		}
	}()
	return fn()
}
