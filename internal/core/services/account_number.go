package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/bank_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/bank_ledger/internal/platform/resilience"
	"github.com/SscSPs/bank_ledger/internal/utils"
)

// RandomSource draws uniform integers in [0, n).
type RandomSource interface {
	Intn(n int) (int, error)
}

type secureRandom struct{}

func (secureRandom) Intn(n int) (int, error) { return utils.SecureIntn(n) }

const (
	defaultAccountNumberAttempts = 10
	defaultAccountNumberBackoff  = 5 * time.Millisecond
)

// accountNumberGenerator draws NNNNN-D numbers: a five digit base in
// [10000, 99999] and a trailing digit, both random.
type accountNumberGenerator struct {
	rand        RandomSource
	maxAttempts int
	backoff     time.Duration
}

func newAccountNumberGenerator() *accountNumberGenerator {
	return &accountNumberGenerator{
		rand:        secureRandom{},
		maxAttempts: defaultAccountNumberAttempts,
		backoff:     defaultAccountNumberBackoff,
	}
}

func (g *accountNumberGenerator) draw() (string, error) {
	base, err := g.rand.Intn(90000)
	if err != nil {
		return "", err
	}
	digit, err := g.rand.Intn(10)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%05d-%d", 10000+base, digit), nil
}

// allocate calls attempt with fresh candidates until one is accepted. An
// attempt rejects a candidate by returning portsrepo.ErrAccountNumberTaken;
// any other error stops immediately. It returns the accepted number and the
// number of draws used.
func (g *accountNumberGenerator) allocate(ctx context.Context, attempt func(number string) error) (string, int, error) {
	var accepted string
	draws := 0
	err := resilience.Retry(ctx, resilience.RetryConfig{
		MaxAttempts:    g.maxAttempts,
		InitialBackoff: g.backoff,
		RetryIf: func(err error) bool {
			return errors.Is(err, portsrepo.ErrAccountNumberTaken)
		},
	}, func(int) error {
		draws++
		number, err := g.draw()
		if err != nil {
			return fmt.Errorf("failed to draw account number: %w", err)
		}
		if err := attempt(number); err != nil {
			return err
		}
		accepted = number
		return nil
	})
	if errors.Is(err, resilience.ErrAttemptsExhausted) {
		return "", draws, fmt.Errorf("%w after %d attempts", domain.ErrAccountNumberExhausted, draws)
	}
	return accepted, draws, err
}
