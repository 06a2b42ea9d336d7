// Package service contains the business logic for the Habit Trail API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces.
package service

import (
	"context"
	"html"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	"github.com/pkordes/habit-trail/internal/domain"
)

// StatsCache stores computed history stats. Implementations live in
// internal/cache; a cache error never fails a request.
type StatsCache interface {
	// Get returns the cached stats for key along with the cache generation
	// it looked in. ok is false on a miss.
	Get(ctx context.Context, key string) (stats domain.Stats, gen int64, ok bool, err error)
	// Set stores stats under key in generation gen, the value a preceding
	// Get returned. Stats computed before an Invalidate therefore land in a
	// generation no later Get reads.
	Set(ctx context.Context, gen int64, key string, stats domain.Stats) error
	// Invalidate starts a new generation, dropping every cached entry.
	Invalidate(ctx context.Context) error
}

// Clock supplies the current instant and the zone that defines "today".
type Clock struct {
	Now      func() time.Time
	Location *time.Location
}

// SystemClock returns a Clock reading time.Now in loc.
func SystemClock(loc *time.Location) Clock {
	return Clock{Now: time.Now, Location: loc}
}

// today returns the current instant in the configured zone.
func (c Clock) today() time.Time {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	loc := c.Location
	if loc == nil {
		loc = time.Local
	}
	return now().In(loc)
}

var textPolicy = bluemonday.StrictPolicy()

// maxSanitizePasses bounds cleanText on pathological multi-encoded input.
const maxSanitizePasses = 8

// cleanText strips all markup from user-supplied text and trims it.
// Entities are decoded before each pass, so markup sent entity-encoded is
// stripped too. Once a pass changes nothing the decoded text holds no tags
// and is returned unescaped; input that never settles stays escaped.
func cleanText(s string) string {
	clean := textPolicy.Sanitize(s)
	for range maxSanitizePasses {
		next := textPolicy.Sanitize(html.UnescapeString(clean))
		if next == clean {
			return strings.TrimSpace(html.UnescapeString(clean))
		}
		clean = next
	}
	return strings.TrimSpace(clean)
}

func tooLong(s string, limit int) bool {
	return utf8.RuneCountInString(s) > limit
}

// invalidate drops cached stats, logging instead of failing on error.
func invalidate(ctx context.Context, cache StatsCache) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx); err != nil {
		slog.WarnContext(ctx, "stats cache invalidate failed", "error", err)
	}
}
