package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribeAndPublish(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("user-1")
	defer cleanup()

	hub.Publish("user-1", Event{Event: EventTaskMoved, Data: "t-1"})

	select {
	case ev := <-ch:
		assert.Equal(t, EventTaskMoved, ev.Event)
		assert.Equal(t, "t-1", ev.Data)
	default:
		t.Fatal("expected an event on the channel")
	}
}

func TestPublishToOtherUserNotDelivered(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("user-1")
	defer cleanup()

	hub.Publish("user-2", Event{Event: EventTrackingStarted})

	select {
	case <-ch:
		t.Fatal("event for another user must not be delivered")
	default:
	}
}

func TestBroadcast(t *testing.T) {
	hub := NewHub()

	ch1, cleanup1 := hub.Subscribe("user-1")
	defer cleanup1()
	ch2, cleanup2 := hub.Subscribe("user-2")
	defer cleanup2()

	hub.Broadcast(Event{Event: EventTaskMoveReverted})

	require.Len(t, ch1, 1)
	require.Len(t, ch2, 1)

	ev := <-ch1
	assert.Equal(t, "user-1", ev.UserID)
	ev = <-ch2
	assert.Equal(t, "user-2", ev.UserID)
}

func TestCleanupRemovesSubscriber(t *testing.T) {
	hub := NewHub()

	_, cleanup := hub.Subscribe("user-1")
	assert.Equal(t, 1, hub.SubscriberCount("user-1"))

	cleanup()
	assert.Equal(t, 0, hub.SubscriberCount("user-1"))
}

func TestPublishDropsWhenChannelFull(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("user-1")
	defer cleanup()

	// Channel buffer is 10; publishing more must not block.
	for i := 0; i < 25; i++ {
		hub.Publish("user-1", Event{Event: EventTrackingStopped, Data: i})
	}

	assert.Len(t, ch, 10)
}
