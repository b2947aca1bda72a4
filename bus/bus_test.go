package bus_test

import (
	"context"
	"testing"
	"time"

	"github.com/phungle2508/antoree-backend/bus"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, messages <-chan *bus.Message) *bus.Message {
	t.Helper()
	select {
	case msg := <-messages:
		require.NotNil(t, msg)
		msg.Ack()
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a bus message")
		return nil
	}
}

func TestPublishReachesSubscriber(t *testing.T) {
	b := bus.New()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	messages, err := b.Subscribe(ctx)
	require.NoError(t, err)

	require.NoError(t, b.Publish("cart", "sess-1"))

	msg := receive(t, messages)
	assert.Equal(t, "cart", msg.Metadata.Get(bus.MetaKey))
	assert.Equal(t, "sess-1", msg.Metadata.Get(bus.MetaSession))
}

func TestEverySubscriberGetsEachMessage(t *testing.T) {
	b := bus.New()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first, err := b.Subscribe(ctx)
	require.NoError(t, err)
	second, err := b.Subscribe(ctx)
	require.NoError(t, err)

	require.NoError(t, b.Publish("wishlist", "sess-2"))

	assert.Equal(t, "wishlist", receive(t, first).Metadata.Get(bus.MetaKey))
	assert.Equal(t, "wishlist", receive(t, second).Metadata.Get(bus.MetaKey))
}

func TestCancellingContextClosesSubscription(t *testing.T) {
	b := bus.New()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	messages, err := b.Subscribe(ctx)
	require.NoError(t, err)

	cancel()

	select {
	case _, ok := <-messages:
		assert.False(t, ok, "channel must close after the context is cancelled")
	case <-time.After(2 * time.Second):
		t.Fatal("subscription channel did not close after cancel")
	}
}
