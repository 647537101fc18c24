package watch

import (
	"testing"
	"time"

	events "github.com/docker/go-events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEvent struct {
	tags []string
	str  string
}

func tagFilter(t string) events.Matcher {
	return events.MatcherFunc(func(event events.Event) bool {
		testEvent := event.(testEvent)
		for _, itemTag := range testEvent.tags {
			if t == itemTag {
				return true
			}
		}
		return false
	})
}

func receive(t *testing.T, c chan events.Event) string {
	select {
	case ev := <-c:
		return ev.(testEvent).str
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
	return ""
}

func TestWatch(t *testing.T) {
	q := NewQueue()
	defer q.Close()

	// Create filtered watchers
	c1, cancel1 := q.CallbackWatch(tagFilter("t1"))
	c2, cancel2 := q.CallbackWatch(tagFilter("t2"))
	defer cancel2()

	// Publish items on the queue
	q.Publish(testEvent{tags: []string{"t1"}, str: "foo"})
	q.Publish(testEvent{tags: []string{"t2"}, str: "bar"})
	q.Publish(testEvent{tags: []string{"t1", "t2"}, str: "foobar"})
	q.Publish(testEvent{tags: []string{"t3"}, str: "baz"})

	assert.Equal(t, "foo", receive(t, c1))
	assert.Equal(t, "foobar", receive(t, c1))
	assert.Equal(t, "bar", receive(t, c2))
	assert.Equal(t, "foobar", receive(t, c2))

	cancel1()

	q.Publish(testEvent{tags: []string{"t1", "t2"}, str: "foobar"})
	assert.Equal(t, "foobar", receive(t, c2))

	select {
	case ev := <-c1:
		t.Fatalf("unexpected value on c1 after cancel: %v", ev)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestWatchOrdering(t *testing.T) {
	q := NewQueue()
	defer q.Close()

	c, cancel := q.Watch()
	defer cancel()

	// Nothing reads c yet; Publish must not block.
	for i := 0; i < 1000; i++ {
		q.Publish(testEvent{str: string(rune('a' + i%26))})
	}
	for i := 0; i < 1000; i++ {
		require.Equal(t, string(rune('a'+i%26)), receive(t, c))
	}
}

func TestPublishAfterClose(t *testing.T) {
	q := NewQueue()
	require.NoError(t, q.Close())

	// Make sure that a send at this point doesn't blow up.
	q.Publish(testEvent{str: "late"})
}
