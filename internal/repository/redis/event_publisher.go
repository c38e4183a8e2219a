package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"young-ats/internal/domain"
)

type eventPublisher struct {
	rdb *redis.Client
}

// NewEventPublisher publishes each event on the channel named by its type.
// With a nil client every publish is a no-op.
func NewEventPublisher(rdb *redis.Client) domain.EventPublisher {
	if rdb == nil {
		return nopPublisher{}
	}
	return &eventPublisher{rdb: rdb}
}

func (p *eventPublisher) Publish(ctx context.Context, event domain.CandidateEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	if err := p.rdb.Publish(ctx, event.Type, payload).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}
	return nil
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, domain.CandidateEvent) error { return nil }
