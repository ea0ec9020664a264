package notify

import (
	"context"
	"testing"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHireEvent(t *testing.T) {
	event := NewHireEvent(5, 9, "Logo design")

	assert.Equal(t, uint64(5), event.FreelancerID)
	assert.Equal(t, `You have been hired for "Logo design"!`, event.Message)

	converted := event.Event()
	assert.Equal(t, EventHired, converted.Name)
	assert.Equal(t, HiredPayload{
		Message:  event.Message,
		GigID:    9,
		GigTitle: "Logo design",
	}, converted.Data)
}

func TestLocalNotifier_NotifyHired(t *testing.T) {
	registry := NewRegistry(4)
	sub := registry.Join(5)
	defer sub.Close()

	notifier := NewLocalNotifier(registry, nil)
	require.NoError(t, notifier.NotifyHired(context.Background(), NewHireEvent(5, 9, "Logo design")))

	select {
	case event := <-sub.Events():
		assert.Equal(t, EventHired, event.Name)
	case <-time.After(time.Second):
		t.Fatal("expected hired event")
	}
}

func TestRedisNotifier_HandleMessageRelaysToRegistry(t *testing.T) {
	registry := NewRegistry(4)
	sub := registry.Join(5)
	defer sub.Close()

	notifier := NewRedisNotifier(nil, "gigs:notifications", registry, nil)

	delivered := notifier.handleMessage(`{"freelancer_id":5,"gig_id":9,"gig_title":"Logo design","message":"hi"}`)
	assert.Equal(t, 1, delivered)

	event := <-sub.Events()
	assert.Equal(t, HiredPayload{Message: "hi", GigID: 9, GigTitle: "Logo design"}, event.Data)
}

func TestRedisNotifier_HandleMessageDropsMalformed(t *testing.T) {
	registry := NewRegistry(4)
	sub := registry.Join(5)
	defer sub.Close()

	notifier := NewRedisNotifier(nil, "gigs:notifications", registry, nil)

	assert.Equal(t, 0, notifier.handleMessage("not-json"))
	assert.Equal(t, 0, notifier.handleMessage(`{"gig_id":9}`))
	assert.Len(t, sub.Events(), 0)
}

func TestRedisNotifier_PublishFailureIsReported(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	notifier := NewRedisNotifier(client, "gigs:notifications", NewRegistry(1), nil)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := notifier.NotifyHired(ctx, NewHireEvent(5, 9, "Logo design"))
	assert.Error(t, err)
}
