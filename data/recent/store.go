// Package recent keeps a short, most-recent-first list of IBANs a user has
// looked up. Only valid IBANs are kept, in normalized form, and looking an
// IBAN up again moves it to the front instead of duplicating it.
package recent

import (
	"context"
	"time"

	"github.com/vortex-fintech/go-iban/foundation/iban"
)

const (
	DefaultLimit = 10
	DefaultKey   = "iban:recent"
)

// Entry is one remembered IBAN.
type Entry struct {
	IBAN    string    `json:"iban"`
	Country string    `json:"country"`
	SavedAt time.Time `json:"saved_at"`
}

// Store is implemented by MemoryStore and RedisStore.
type Store interface {
	// Add validates raw and puts it at the front of the list. Invalid input
	// returns an iban.ValidationError and leaves the list unchanged.
	Add(ctx context.Context, raw string) error
	// List returns the entries, most recent first.
	List(ctx context.Context) ([]Entry, error)
	Clear(ctx context.Context) error
}

type options struct {
	limit int
	key   string
	now   func() time.Time
}

type Option func(*options)

// WithLimit caps the list length. Values below 1 keep DefaultLimit.
func WithLimit(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.limit = n
		}
	}
}

// WithKey sets the Redis list key. Ignored by MemoryStore.
func WithKey(key string) Option {
	return func(o *options) {
		if key != "" {
			o.key = key
		}
	}
}

// WithClock replaces time.Now for SavedAt.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{limit: DefaultLimit, key: DefaultKey, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func newEntry(raw string, now time.Time) (Entry, error) {
	res := iban.Validate(raw)
	if err := res.Err(); err != nil {
		return Entry{}, err
	}
	return Entry{
		IBAN:    res.IBAN,
		Country: res.IBAN[:2],
		SavedAt: now.UTC(),
	}, nil
}
