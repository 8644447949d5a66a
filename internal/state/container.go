// Package state provides a small observable state container: a current
// value plus change subscriptions. The session and localization contexts
// are built on it so UI consumers stay decoupled from any rendering
// framework and only need to read from a channel.
package state

import "sync"

// Container holds a value of type T, a monotonically increasing sequence
// number, and a set of subscribers notified on every publish.
//
// The sequence number doubles as the tag for optimistic mutations and
// stale-response guards: capture it when a request is dispatched and
// compare it when the response arrives.
type Container[T any] struct {
	mu     sync.Mutex
	value  T
	seq    uint64
	subs   map[int]chan T
	nextID int
}

// New creates a container with the given initial value at sequence 0.
func New[T any](initial T) *Container[T] {
	return &Container[T]{
		value: initial,
		subs:  make(map[int]chan T),
	}
}

// Get returns the current value.
func (c *Container[T]) Get() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Seq returns the current sequence number.
func (c *Container[T]) Seq() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq
}

// Set publishes a new value and returns the new sequence number.
func (c *Container[T]) Set(v T) uint64 {
	c.mu.Lock()
	c.value = v
	c.seq++
	seq := c.seq
	c.notifyLocked(v)
	c.mu.Unlock()
	return seq
}

// Update atomically derives a new value from the current one and publishes
// it. It returns the published value and sequence number.
func (c *Container[T]) Update(fn func(T) T) (T, uint64) {
	c.mu.Lock()
	c.value = fn(c.value)
	c.seq++
	v, seq := c.value, c.seq
	c.notifyLocked(v)
	c.mu.Unlock()
	return v, seq
}

// SetIfSeq publishes v only when the container's sequence still equals seq,
// and returns the new sequence number when it does. A false return means a
// newer mutation superseded the caller, whose result must be discarded.
func (c *Container[T]) SetIfSeq(seq uint64, v T) (uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.seq != seq {
		return c.seq, false
	}
	c.value = v
	c.seq++
	c.notifyLocked(v)
	return c.seq, true
}

// GetSeq returns the current value together with its sequence number, so a
// caller can capture a consistent (value, tag) pair before dispatching a
// request.
func (c *Container[T]) GetSeq() (T, uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value, c.seq
}

// Subscribe registers a change listener. The returned channel has a buffer
// of one and coalesces: a slow consumer observes the latest value, not
// every intermediate one. The cancel function removes the subscription and
// closes the channel.
func (c *Container[T]) Subscribe() (<-chan T, func()) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	ch := make(chan T, 1)
	c.subs[id] = ch
	c.mu.Unlock()

	cancel := func() {
		c.mu.Lock()
		if sub, ok := c.subs[id]; ok {
			delete(c.subs, id)
			close(sub)
		}
		c.mu.Unlock()
	}
	return ch, cancel
}

// notifyLocked pushes v to every subscriber, replacing an undelivered
// previous value. Callers must hold c.mu.
func (c *Container[T]) notifyLocked(v T) {
	for _, ch := range c.subs {
		select {
		case ch <- v:
		default:
			// Drop the stale pending value, then try once more.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- v:
			default:
			}
		}
	}
}
