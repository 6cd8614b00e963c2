package notifications

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestNotifier_NilRedisIsNoop(t *testing.T) {
	n := NewNotifier(nil)
	assert.False(t, n.Enabled())
	assert.NoError(t, n.PublishUser(context.Background(), 1, "test payload"))
	assert.NoError(t, n.PublishEvent(context.Background(), NewEvent(1, EventFavoritePlanetAdded, nil)))
	assert.NoError(t, n.StartUserSubscriber(context.Background(), func(string, string) {}))
}

func TestUserChannel(t *testing.T) {
	t.Parallel()
	tests := []struct {
		userID   uint
		expected string
	}{
		{1, "notifications:user:1"},
		{100, "notifications:user:100"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, UserChannel(tt.userID))
	}
}

func TestNewEvent(t *testing.T) {
	ev := NewEvent(7, EventFavoriteCharacterAdded, map[string]interface{}{"character_id": 3})
	assert.NotEmpty(t, ev.ID)
	assert.Equal(t, uint(7), ev.UserID)
	assert.Equal(t, EventFavoriteCharacterAdded, ev.Type)
	assert.WithinDuration(t, time.Now(), ev.OccurredAt, time.Minute)

	other := NewEvent(7, EventFavoriteCharacterAdded, nil)
	assert.NotEqual(t, ev.ID, other.ID)
}

func TestNotifier_PublishEventReachesSubscriber(t *testing.T) {
	rdb := newTestRedis(t)
	n := NewNotifier(rdb)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	type received struct {
		channel string
		payload string
	}
	got := make(chan received, 1)
	require.NoError(t, n.StartUserSubscriber(ctx, func(channel, payload string) {
		got <- received{channel, payload}
	}))

	ev := NewEvent(4, EventFavoritePlanetRemoved, map[string]interface{}{"planet_id": 2})
	require.NoError(t, n.PublishEvent(context.Background(), ev))

	select {
	case msg := <-got:
		assert.Equal(t, "notifications:user:4", msg.channel)
		var decoded Event
		require.NoError(t, json.Unmarshal([]byte(msg.payload), &decoded))
		assert.Equal(t, ev.ID, decoded.ID)
		assert.Equal(t, EventFavoritePlanetRemoved, decoded.Type)
		assert.EqualValues(t, 2, decoded.Payload["planet_id"])
	case <-time.After(2 * time.Second):
		t.Fatal("event was not delivered")
	}
}

func TestNotifier_SubscriberStopsOnCancel(t *testing.T) {
	rdb := newTestRedis(t)
	n := NewNotifier(rdb)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var received int32
	payloads := make(chan string, 2)
	require.NoError(t, n.StartUserSubscriber(ctx, func(_ string, payload string) {
		atomic.AddInt32(&received, 1)
		payloads <- payload
	}))

	require.NoError(t, n.PublishUser(context.Background(), 1, "before-cancel"))
	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&received) >= 1
	}, time.Second, 10*time.Millisecond)

	cancel()
	time.Sleep(20 * time.Millisecond)

	select {
	case <-payloads:
	default:
	}

	require.NoError(t, n.PublishUser(context.Background(), 1, "after-cancel"))
	assert.Never(t, func() bool {
		select {
		case payload := <-payloads:
			return payload == "after-cancel"
		default:
			return false
		}
	}, 200*time.Millisecond, 10*time.Millisecond)
}

func TestNotifier_PanickingHandlerKeepsSubscriberAlive(t *testing.T) {
	rdb := newTestRedis(t)
	n := NewNotifier(rdb)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls int32
	require.NoError(t, n.StartUserSubscriber(ctx, func(_ string, payload string) {
		atomic.AddInt32(&calls, 1)
		if payload == "boom" {
			panic("handler failure")
		}
	}))

	require.NoError(t, n.PublishUser(context.Background(), 2, "boom"))
	require.NoError(t, n.PublishUser(context.Background(), 2, "ok"))
	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&calls) == 2
	}, time.Second, 10*time.Millisecond)
}

func TestNewRedisClient(t *testing.T) {
	client, err := NewRedisClient("")
	assert.NoError(t, err)
	assert.Nil(t, client)

	_, err = NewRedisClient("redis://:bad url")
	assert.Error(t, err)

	client, err = NewRedisClient("localhost:6379")
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", client.Options().Addr)
	_ = client.Close()
}

func TestConnectRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := ConnectRedis(context.Background(), "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)
	require.NotNil(t, client)
	_ = client.Close()

	addr := mr.Addr()
	mr.Close()
	_, err = ConnectRedis(context.Background(), addr)
	assert.Error(t, err)
}
