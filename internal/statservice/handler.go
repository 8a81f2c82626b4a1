package statservice

import (
	"context"
	"log/slog"
	"time"

	"github.com/blogist/blogapi/internal/common"
)

func NewStatService(blogs BlogLister, mb common.MessageConsumer, cache *common.Cache, ttl time.Duration, logger StatLogger) *StatService {
	ctx, cancel := context.WithCancel(context.Background())
	return &StatService{
		blogs:  blogs,
		mb:     mb,
		c:      cache,
		ttl:    ttl,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Summary returns the aggregate statistics over all blogs, from the cache
// when a fresh copy exists. A summary computed while an invalidation happened
// is returned to its caller but not cached.
func (s *StatService) Summary(ctx context.Context) (*Summary, error) {
	if cached, ok := common.Lookup[Summary](s.c, common.CacheKeyBlogStats); ok {
		return &cached, nil
	}

	version := s.c.Version(common.CacheKeyBlogStats)

	blogs, err := s.blogs.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	summary := Summarize(blogs)
	s.c.SetIfCurrent(common.CacheKeyBlogStats, summary, s.ttl, version)

	return &summary, nil
}

// Invalidate drops the cached summary.
func (s *StatService) Invalidate() {
	s.c.Invalidate(common.CacheKeyBlogStats)
}

// WatchBlogEvents evicts the cached summary whenever any instance publishes a
// blog event. It returns once the subscription is set up.
func (s *StatService) WatchBlogEvents() error {
	msgs, err := s.mb.Subscribe(common.BlogAnyKey, common.BlogExchange)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					s.logger.Info("blog event subscription closed")
					return
				}

				s.Invalidate()
				s.logger.Info("blog stats invalidated", slog.String("event", msg.RoutingKey))

			case <-s.ctx.Done():
				s.logger.Info("stopping WatchBlogEvents due to context cancellation")
				return
			}
		}
	}()

	return nil
}

func (s *StatService) Close() {
	s.cancel()
}
