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

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAbsMinMaxClamp(t *testing.T) {
	assert.Equal(t, 5, Abs(-5))
	assert.Equal(t, 5, Abs(5))
	assert.Equal(t, int16(7), Abs16(-7))
	assert.Equal(t, 3, Min(3, 9))
	assert.Equal(t, 9, Max(3, 9))
	assert.Equal(t, uint64(3), Min64(3, 9))
	assert.Equal(t, 5, Clamp(7, 0, 5))
	assert.Equal(t, 0, Clamp(-2, 0, 5))
	assert.Equal(t, 3, Clamp(3, 0, 5))
}

func TestBufferedCounter(t *testing.T) {
	var global atomic.Uint64
	c := NewBufferedCounter(&global)

	for i := 0; i < 100; i++ {
		c.Inc()
	}
	assert.Equal(t, uint64(100), c.Local())
	assert.Equal(t, uint64(100), c.Global())
	// nothing flushed yet below the threshold
	assert.Equal(t, uint64(0), global.Load())

	for i := 0; i < FlushThreshold; i++ {
		c.Inc()
	}
	assert.NotEqual(t, uint64(0), global.Load())

	c.Flush()
	assert.Equal(t, uint64(100+FlushThreshold), global.Load())

	c.ResetLocal()
	assert.Equal(t, uint64(0), c.Local())
}

func TestBroadcastReachesAllReceivers(t *testing.T) {
	const receivers = 4
	b := NewBroadcast[int](receivers)

	var got atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < receivers; i++ {
		rx := b.NewReceiver()
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				var msg int
				// the handler runs before the sender is released, so
				// the sums below are deterministic
				rx.Recv(func(m int) {
					msg = m
					if m >= 0 {
						got.Add(int64(m))
					}
				})
				if msg < 0 {
					return
				}
			}
		}()
	}

	// Send blocks until every receiver handled the message, so the
	// sum is deterministic after each send.
	b.Send(10)
	assert.Equal(t, int64(40), got.Load())

	b.Send(1)
	assert.Equal(t, int64(44), got.Load())

	b.Send(-1)
	wg.Wait()
}

func TestBroadcastSequentialMessages(t *testing.T) {
	b := NewBroadcast[string](1)
	rx := b.NewReceiver()

	var mu sync.Mutex
	var log []string
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			var msg string
			rx.Recv(func(m string) {
				msg = m
				mu.Lock()
				log = append(log, m)
				mu.Unlock()
			})
			if msg == "quit" {
				return
			}
		}
	}()

	b.Send("a")
	b.Send("b")
	b.Send("quit")
	<-done

	assert.Equal(t, []string{"a", "b", "quit"}, log)
}
