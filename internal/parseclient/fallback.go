package parseclient

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"probimport/internal/domain"
	"probimport/internal/logger"
	"probimport/internal/port"
)

const defaultCooldown = 30 * time.Second

// circuit tracks the backoff of one parse source.
type circuit struct {
	mu      sync.RWMutex
	resetAt time.Time // zero value = closed (healthy)
}

func (c *circuit) openUntil(now time.Time) (time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resetAt, !c.resetAt.IsZero() && now.Before(c.resetAt)
}

func (c *circuit) open(resetAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetAt = resetAt
}

// Source is one named parse client tried by Fallback.
type Source struct {
	Name   string
	Client port.ParseClient
}

// Fallback tries parse sources in order. A source that is unavailable
// (transport failure, 429 or 5xx) is skipped until its cooldown ends and the
// next source is tried; any other failure is returned as is, since the next
// source would reject the same text. It implements port.ParseClient.
type Fallback struct {
	sources  []Source
	circuits []*circuit
	cooldown time.Duration
	now      func() time.Time
	log      *zap.Logger
}

// NewFallback creates a Fallback over sources. A zero cooldown defaults to 30s.
func NewFallback(sources []Source, cooldown time.Duration, log *zap.Logger) *Fallback {
	if cooldown <= 0 {
		cooldown = defaultCooldown
	}
	circuits := make([]*circuit, len(sources))
	for i := range circuits {
		circuits[i] = &circuit{}
	}
	return &Fallback{
		sources:  sources,
		circuits: circuits,
		cooldown: cooldown,
		now:      time.Now,
		log:      logger.OrNop(log),
	}
}

func (f *Fallback) Parse(ctx context.Context, text string) (*domain.StructuredDocument, error) {
	now := f.now()
	var lastErr error

	for i, src := range f.sources {
		if resetAt, open := f.circuits[i].openUntil(now); open {
			f.log.Debug("parseclient: skipping source", zap.String("source", src.Name), zap.Time("until", resetAt))
			continue
		}

		doc, err := src.Client.Parse(ctx, text)
		if err == nil {
			return doc, nil
		}

		var rerr *domain.RemoteError
		if !errors.As(err, &rerr) || !rerr.Unavailable() || ctx.Err() != nil {
			return nil, err
		}

		wait := rerr.RetryAfter
		if wait <= 0 {
			wait = f.cooldown
		}
		f.circuits[i].open(now.Add(wait))
		f.log.Warn("parseclient: source unavailable",
			zap.String("source", src.Name), zap.Duration("cooldown", wait), zap.Error(err))
		lastErr = err
	}

	if lastErr == nil {
		return nil, domain.NewRemoteError("parse service unavailable, try again later", 0,
			fmt.Errorf("all %d parse sources cooling down", len(f.sources)))
	}
	return nil, lastErr
}

// Local adapts an in-process markdown parser to port.ParseClient.
type Local struct {
	parser port.MarkdownParser
}

// NewLocal creates a Local client over parser.
func NewLocal(parser port.MarkdownParser) *Local {
	return &Local{parser: parser}
}

func (l *Local) Parse(_ context.Context, text string) (*domain.StructuredDocument, error) {
	payload, err := l.parser.Parse(text)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyInput) {
			return nil, err
		}
		return nil, domain.NewRemoteError(err.Error(), 400, fmt.Errorf("local parse: %w", err))
	}
	return payload.Document(), nil
}
