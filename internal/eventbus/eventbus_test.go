package eventbus

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPublishReachesSubscribers(t *testing.T) {
	b := New()
	defer b.Close()

	got := make(chan DomainEvent, 1)
	b.Subscribe(EventTabSwitched, func(e DomainEvent) { got <- e })

	b.Publish(TabSwitchedEvent{FromID: "a", ToID: "b"})

	select {
	case e := <-got:
		ev, ok := e.(TabSwitchedEvent)
		require.True(t, ok)
		require.Equal(t, "b", ev.ToID)
	case <-time.After(time.Second):
		t.Fatal("event was not delivered")
	}
}

func TestSubscribersOnlySeeTheirType(t *testing.T) {
	b := New()
	defer b.Close()

	var saved, closed atomic.Int32
	b.Subscribe(EventDocumentSaved, func(DomainEvent) { saved.Add(1) })
	b.Subscribe(EventDocumentClosed, func(DomainEvent) { closed.Add(1) })

	b.Publish(DocumentSavedEvent{ID: "x"})
	b.Publish(DocumentSavedEvent{ID: "y"})

	require.Eventually(t, func() bool { return saved.Load() == 2 }, time.Second, 5*time.Millisecond)
	require.Equal(t, int32(0), closed.Load())
}

func TestUnsubscribe(t *testing.T) {
	b := New()
	defer b.Close()

	var first, second atomic.Int32
	unsub := b.Subscribe(EventReplaced, func(DomainEvent) { first.Add(1) })
	b.Subscribe(EventReplaced, func(DomainEvent) { second.Add(1) })
	unsub()

	b.Publish(ReplacedEvent{Count: 1})

	require.Eventually(t, func() bool { return second.Load() == 1 }, time.Second, 5*time.Millisecond)
	require.Equal(t, int32(0), first.Load())
}

func TestHandlerPanicDoesNotStopBus(t *testing.T) {
	b := New()
	defer b.Close()

	var calls atomic.Int32
	b.Subscribe(EventError, func(DomainEvent) { panic("boom") })
	b.Subscribe(EventError, func(DomainEvent) { calls.Add(1) })

	b.Publish(ErrorEvent{Message: "first"})
	b.Publish(ErrorEvent{Message: "second"})

	require.Eventually(t, func() bool { return calls.Load() == 2 }, time.Second, 5*time.Millisecond)
}

func TestPublishAfterCloseIsIgnored(t *testing.T) {
	b := New()
	b.Close()
	b.Close()

	require.NotPanics(t, func() { b.Publish(ErrorEvent{Message: "late"}) })
}
