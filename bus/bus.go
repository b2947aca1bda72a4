package bus

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// TopicStoreUpdated is the single broadcast topic fired after every
// successful store write.
const TopicStoreUpdated = "store.updated"

// Message aliases the watermill message so subscribers don't import
// watermill directly
type Message = message.Message

// Metadata keys carried on every store update message
const (
	MetaKey     = "key"     // mutated collection key (cart, wishlist, userData)
	MetaSession = "session" // owning session, empty for cookie-only requests
)

// Bus is the process-wide change notification bus. It is a best-effort,
// same-process mechanism: delivery order across subscribers is unspecified
// and listeners must pair every Subscribe with cancelling its context.
type Bus struct {
	pubSub *gochannel.GoChannel
}

// Broker is the global bus instance
var Broker *Bus

// InitBus creates the global bus
func InitBus() {
	Broker = New()
}

// New creates an in-process bus
func New() *Bus {
	return &Bus{
		pubSub: gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false)),
	}
}

// Publish broadcasts that the named collection was mutated. Errors are
// returned so the caller can log them; a failed publish never fails the
// store write itself.
func (b *Bus) Publish(key, sessionID string) error {
	msg := message.NewMessage(watermill.NewUUID(), nil)
	msg.Metadata.Set(MetaKey, key)
	msg.Metadata.Set(MetaSession, sessionID)
	return b.pubSub.Publish(TopicStoreUpdated, msg)
}

// Subscribe returns the stream of store update messages. Cancelling ctx is
// the unsubscribe contract; it must always be paired with the subscription.
func (b *Bus) Subscribe(ctx context.Context) (<-chan *message.Message, error) {
	return b.pubSub.Subscribe(ctx, TopicStoreUpdated)
}

// Close shuts the bus down and closes all subscriber channels
func (b *Bus) Close() error {
	return b.pubSub.Close()
}
