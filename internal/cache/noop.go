package cache

import (
	"context"

	"github.com/pkordes/habit-trail/internal/domain"
)

// Noop is a StatsCache that never stores anything. It is used when
// REDIS_ADDR is empty.
type Noop struct{}

func (Noop) Get(context.Context, string) (domain.Stats, int64, bool, error) {
	return domain.Stats{}, 0, false, nil
}

func (Noop) Set(context.Context, int64, string, domain.Stats) error { return nil }

func (Noop) Invalidate(context.Context) error { return nil }
