package recent

import (
	"context"
	"sync"
)

// MemoryStore keeps the list in process memory.
type MemoryStore struct {
	mu      sync.Mutex
	entries []Entry
	opts    options
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore(opts ...Option) *MemoryStore {
	o := buildOptions(opts)
	return &MemoryStore{opts: o, entries: make([]Entry, 0, o.limit)}
}

func (m *MemoryStore) Add(ctx context.Context, raw string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e, err := newEntry(raw, m.opts.now())
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Entry, 0, m.opts.limit)
	out = append(out, e)
	for _, old := range m.entries {
		if len(out) == m.opts.limit {
			break
		}
		if old.IBAN != e.IBAN {
			out = append(out, old)
		}
	}
	m.entries = out
	return nil
}

func (m *MemoryStore) List(ctx context.Context) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out, nil
}

func (m *MemoryStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	m.entries = m.entries[:0]
	m.mu.Unlock()
	return nil
}
