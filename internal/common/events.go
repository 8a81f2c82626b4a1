package common

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/exp/rand"
)

const (
	publishMaxRetries = 5
	publishBaseDelay  = 200 * time.Millisecond
	publishTimeout    = 5 * time.Second
)

// EventPublisher sends domain events in the background. A failed publish is
// retried with jittered exponential backoff and then logged, it never fails
// the caller.
type EventPublisher struct {
	mb     MessageProducer
	logger *slog.Logger
	wg     sync.WaitGroup
}

func NewEventPublisher(mb MessageProducer, logger *slog.Logger) *EventPublisher {
	return &EventPublisher{mb: mb, logger: logger}
}

func (p *EventPublisher) Publish(ctx context.Context, key BindingKey, exchange Exchange, payload any) {
	if p == nil || p.mb == nil {
		return
	}

	msg, err := json.Marshal(payload)
	if err != nil {
		p.logger.Error("could not marshal event", slog.String("key", string(key)), slog.String("error", err.Error()))
		return
	}

	// the request context is cancelled once the response is written
	ctx = context.WithoutCancel(ctx)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		var attempt int
		for attempt = 0; attempt < publishMaxRetries; attempt++ {
			pctx, cancel := context.WithTimeout(ctx, publishTimeout)
			err = p.mb.Publish(pctx, msg, key, exchange)
			cancel()
			if err == nil {
				return
			}

			delay := time.Duration(rand.Int63n(int64(publishBaseDelay) << uint(attempt)))
			p.logger.Warn("delaying event publish", slog.String("key", string(key)), slog.Int("attempt", attempt), slog.Duration("delay", delay), slog.String("error", err.Error()))
			time.Sleep(delay)
		}

		p.logger.Error("could not publish event", slog.String("key", string(key)), slog.Int("attempts", attempt))
	}()
}

// Wait blocks until every in-flight publish has finished.
func (p *EventPublisher) Wait() {
	if p == nil {
		return
	}
	p.wg.Wait()
}
