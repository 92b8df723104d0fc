// Package store holds the client-side state containers: auth, cart and
// favorites. Each is an explicit observable built per application root
// (there are no package-level singletons) exposing a subscribe/snapshot
// contract: reads are cheap snapshot copies, mutators call the backing
// service and swap the snapshot with the server's response, and every swap
// notifies the registered subscribers.
package store

import "sync"

// notifier is the subscriber registry shared by the stores. Callbacks run
// synchronously on the mutating goroutine; subscribers that need to do
// real work should hand off.
type notifier struct {
	mu   sync.Mutex
	next int
	subs map[int]func()
}

// Subscribe registers fn and returns its unsubscribe function.
func (n *notifier) Subscribe(fn func()) (unsubscribe func()) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.subs == nil {
		n.subs = make(map[int]func())
	}
	id := n.next
	n.next++
	n.subs[id] = fn
	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}
}

// notify invokes every registered subscriber.
func (n *notifier) notify() {
	n.mu.Lock()
	fns := make([]func(), 0, len(n.subs))
	for _, fn := range n.subs {
		fns = append(fns, fn)
	}
	n.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}
