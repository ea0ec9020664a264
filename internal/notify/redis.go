package notify

import (
	"context"
	"encoding/json"
	"fmt"

	redis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisNotifier fans hire events out across instances. NotifyHired publishes
// to a Redis channel; Run relays every published event into the local
// registry, so each instance reaches the connections it holds.
type RedisNotifier struct {
	client   *redis.Client
	channel  string
	registry *Registry
	logger   *zap.Logger
}

// NewRedisNotifier creates a notifier publishing on channel.
func NewRedisNotifier(client *redis.Client, channel string, registry *Registry, logger *zap.Logger) *RedisNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisNotifier{
		client:   client,
		channel:  channel,
		registry: registry,
		logger:   logger,
	}
}

// NotifyHired publishes the event for every instance to deliver.
func (n *RedisNotifier) NotifyHired(ctx context.Context, event HireEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode hire event: %w", err)
	}

	if err := n.client.Publish(ctx, n.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish hire event: %w", err)
	}

	return nil
}

// Run subscribes to the channel and delivers events until ctx is cancelled.
func (n *RedisNotifier) Run(ctx context.Context) error {
	pubsub := n.client.Subscribe(ctx, n.channel)
	defer pubsub.Close()

	// Wait for the subscription to be confirmed before reporting ready.
	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", n.channel, err)
	}
	n.logger.Info("notification relay subscribed", zap.String("channel", n.channel))

	messages := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			n.handleMessage(msg.Payload)
		}
	}
}

func (n *RedisNotifier) handleMessage(payload string) int {
	var event HireEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		n.logger.Warn("dropping malformed hire event", zap.Error(err))
		return 0
	}
	if event.FreelancerID == 0 {
		n.logger.Warn("dropping hire event without freelancer")
		return 0
	}

	return n.registry.DeliverToUser(event.FreelancerID, event.Event())
}
