// Package watch provides a queue that broadcasts events to watchers.
package watch

import (
	events "github.com/docker/go-events"
)

// Queue is the structure used to publish events and watch for them.
type Queue struct {
	broadcast *events.Broadcaster
}

// NewQueue creates a new publish/subscribe queue which supports watchers.
// Every watcher gets its own unbounded queue, so a slow watcher never blocks
// Publish.
func NewQueue() *Queue {
	return &Queue{
		broadcast: events.NewBroadcaster(),
	}
}

// Watch returns a channel which will receive all items published to the
// queue from this point, until cancel is called.
func (q *Queue) Watch() (eventq chan events.Event, cancel func()) {
	return q.CallbackWatch(nil)
}

// CallbackWatch returns a channel which will receive all events published to
// the queue from this point that pass the check in the provided callback
// function. The returned cancel function will stop the flow of events.
func (q *Queue) CallbackWatch(matcher events.Matcher) (eventq chan events.Event, cancel func()) {
	ch := events.NewChannel(0)
	sink := events.Sink(events.NewQueue(ch))

	if matcher != nil {
		sink = events.NewFilter(sink, matcher)
	}

	q.broadcast.Add(sink)
	return ch.C, func() {
		q.broadcast.Remove(sink)
		ch.Close()
		sink.Close()
	}
}

// Publish adds an item to the queue. Items published after Close are
// dropped.
func (q *Queue) Publish(item events.Event) {
	q.broadcast.Write(item)
}

// Close closes the queue and frees the associated resources.
func (q *Queue) Close() error {
	return q.broadcast.Close()
}
