package auth

import (
	"context"
	"errors"
	"runtime"

	"github.com/samber/oops"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

// DefaultBcryptCost is the work factor used when none is configured.
const DefaultBcryptCost = 10

// BcryptHasher hashes and verifies passwords with bcrypt. At most
// `concurrency` operations run at once; callers wait for a slot or for ctx.
type BcryptHasher struct {
	cost  int
	sem   *semaphore.Weighted
	dummy []byte
}

func NewBcryptHasher(cost, concurrency int) (*BcryptHasher, error) {
	if cost == 0 {
		cost = DefaultBcryptCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, oops.Code("CONFIG_INVALID").With("cost", cost).Errorf("bcrypt cost out of range")
	}
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}

	dummy, err := bcrypt.GenerateFromPassword([]byte("quizauth-dummy-password"), cost)
	if err != nil {
		return nil, oops.Code("AUTH_HASH_FAILED").Wrapf(err, "generate dummy hash")
	}

	return &BcryptHasher{
		cost:  cost,
		sem:   semaphore.NewWeighted(int64(concurrency)),
		dummy: dummy,
	}, nil
}

func (h *BcryptHasher) Hash(ctx context.Context, plaintext string) (string, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return "", oops.Code("AUTH_HASH_FAILED").Wrapf(err, "wait for hashing slot")
	}
	defer h.sem.Release(1)

	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", oops.Code("AUTH_HASH_FAILED").Wrapf(err, "hash password")
	}
	return string(b), nil
}

// Verify reports whether plaintext matches hash. A mismatch is (false, nil);
// an unreadable hash is an error.
func (h *BcryptHasher) Verify(ctx context.Context, plaintext, hash string) (bool, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return false, oops.Code("AUTH_HASH_FAILED").Wrapf(err, "wait for hashing slot")
	}
	defer h.sem.Release(1)

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, oops.Code("AUTH_HASH_FAILED").Wrapf(err, "compare password")
	}
}

// VerifyDummy spends the same work as Verify against a fixed hash. Login
// calls it for unknown usernames.
func (h *BcryptHasher) VerifyDummy(ctx context.Context, plaintext string) {
	_, _ = h.Verify(ctx, plaintext, string(h.dummy))
}
