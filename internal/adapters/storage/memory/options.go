package memory

import (
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

type options struct {
	now   func() time.Time
	newID func() string
	rng   *rand.Rand
}

// Option configures the in-memory stores.
type Option func(*options)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithIDGenerator replaces the random UUID used as the opaque part of ids.
func WithIDGenerator(newID func() string) Option {
	return func(o *options) { o.newID = newID }
}

// WithRand sets the random source used when seeding sample entries, so that
// seeded timestamps are reproducible.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) { o.rng = rng }
}

func buildOptions(opts []Option) options {
	o := options{
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return o
}
