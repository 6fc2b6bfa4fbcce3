package realtime

import (
	"context"
	"encoding/json"
	"github.com/Ahmedouyahya/Podium-de-concours/logging"
	"github.com/redis/go-redis/v9"
)

const DefaultChannel = "podium:events"

// RedisBridge publishes hints through a Redis channel so every instance
// relays them to its own hub, including the one that published.
type RedisBridge struct {
	client  *redis.Client
	channel string
	hub     *Hub
}

func NewRedisBridge(client *redis.Client, channel string, hub *Hub) *RedisBridge {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisBridge{client: client, channel: channel, hub: hub}
}

// Notify falls back to the local hub when Redis is unreachable.
func (b *RedisBridge) Notify(event string) {
	payload, err := json.Marshal(Frame{Event: event, Topic: Topic})
	if err != nil {
		logging.Log.Errorf("HUB: failed to encode %s for redis: %v", event, err)
		return
	}
	if err := b.client.Publish(context.Background(), b.channel, payload).Err(); err != nil {
		logging.Log.Warnf("HUB: redis publish failed, notifying locally: %v", err)
		b.hub.Notify(event)
	}
}

// Run relays channel messages to the local hub until ctx is cancelled.
func (b *RedisBridge) Run(ctx context.Context) {
	sub := b.client.Subscribe(ctx, b.channel)
	defer sub.Close()
	logging.Log.Infof("HUB: relaying redis channel %s", b.channel)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var f Frame
			if err := json.Unmarshal([]byte(msg.Payload), &f); err != nil || f.Event == "" {
				logging.Log.Warnf("HUB: ignoring malformed redis message on %s", msg.Channel)
				continue
			}
			b.hub.Notify(f.Event)
		}
	}
}
