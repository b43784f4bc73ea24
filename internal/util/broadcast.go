/*
 * Icarus - UCI chess engine in GO
 *
 * MIT License
 *
 * Copyright (c) 2025 Sp00ph
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package util

import "sync"

// Broadcast is a one-capacity spmc rendezvous channel allowing the UCI
// thread to send a message to all search threads at once. The sending
// thread blocks until every receiver has handled the message, so a
// receiver that stops calling Recv deadlocks the sender.
//
// The state is a generation flag plus an outstanding receiver count
// guarded by a mutex/condvar pair. Receivers wait for the generation to
// flip, handle the message, and decrement the outstanding count; the
// last receiver to do so wakes the sender.
type Broadcast[M any] struct {
	mu   sync.Mutex
	cond *sync.Cond

	msg          M
	generation   bool
	outstanding  int
	numReceivers int
}

// NewBroadcast creates a broadcast channel for exactly numReceivers
// receiving threads.
func NewBroadcast[M any](numReceivers int) *Broadcast[M] {
	b := &Broadcast[M]{numReceivers: numReceivers}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// Receiver is one receiving endpoint of a Broadcast. Each receiving
// thread must own exactly one Receiver.
type Receiver[M any] struct {
	b          *Broadcast[M]
	generation bool
}

// NewReceiver returns a receiving endpoint. Must be called exactly
// numReceivers times, before any message is sent.
func (b *Broadcast[M]) NewReceiver() *Receiver[M] {
	return &Receiver[M]{b: b, generation: true}
}

// Send publishes a message to all receivers and blocks until every
// receiver has handled it.
func (b *Broadcast[M]) Send(m M) {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Any previous Send waited for all receivers, so there are no
	// outstanding handlers here.
	b.msg = m
	b.generation = !b.generation
	b.outstanding = b.numReceivers
	b.cond.Broadcast()

	for b.outstanding != 0 {
		b.cond.Wait()
	}
}

// Recv waits for a message from the sending thread and calls handler on
// it. It returns once the handler has returned.
func (r *Receiver[M]) Recv(handler func(M)) {
	b := r.b
	b.mu.Lock()

	for b.generation != r.generation {
		b.cond.Wait()
	}
	msg := b.msg
	r.generation = !r.generation
	b.mu.Unlock()

	// The handler runs outside the lock so long running commands do
	// not serialize the other receivers.
	handler(msg)

	b.mu.Lock()
	b.outstanding--
	if b.outstanding == 0 {
		b.cond.Broadcast()
	}
	b.mu.Unlock()
}
