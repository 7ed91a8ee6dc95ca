package authevents

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"
)

const DefaultRedisChannel = "quoteadmin:auth-events"

// RedisBus fans events out to other instances over redis pub/sub. Local
// listeners are notified on Publish directly; messages echoed back from redis
// with this instance's origin are dropped.
type RedisBus struct {
	local   *MemoryBus
	client  *redis.Client
	channel string
	origin  string
}

func NewRedisBus(client *redis.Client, channel string) (*RedisBus, error) {
	if client == nil {
		return nil, errors.New("redis client required")
	}
	if channel == "" {
		channel = DefaultRedisChannel
	}
	return &RedisBus{
		local:   NewMemoryBus(),
		client:  client,
		channel: channel,
		origin:  uuid.NewString(),
	}, nil
}

func (bus *RedisBus) Subscribe(listener Listener) func() {
	return bus.local.Subscribe(listener)
}

func (bus *RedisBus) Publish(ctx context.Context, event Event) error {
	event.Origin = bus.origin
	bus.local.dispatch(event)

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return bus.client.Publish(ctx, bus.channel, payload).Err()
}

// Run relays remote events to local listeners until ctx is done.
func (bus *RedisBus) Run(ctx context.Context) error {
	pubsub := bus.client.Subscribe(ctx, bus.channel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return err
	}

	messages := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case message, ok := <-messages:
			if !ok {
				return nil
			}
			bus.handlePayload(message.Payload)
		}
	}
}

func (bus *RedisBus) handlePayload(payload string) {
	var event Event
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		log.Printf("auth event decode failed: %v", err)
		return
	}
	if event.Origin == bus.origin {
		return
	}
	bus.local.dispatch(event)
}
