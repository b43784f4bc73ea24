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

import "sync/atomic"

// FlushThreshold is the number of local increments after which a
// BufferedCounter writes through to its backing atomic counter.
const FlushThreshold = 1024

// BufferedCounter is a thread local counter doing buffered writes to a
// backing atomic counter shared between threads. To prevent excessive
// atomic writes we only write through every FlushThreshold increments
// or when Flush() is called.
type BufferedCounter struct {
	global *atomic.Uint64
	local  uint64
	buffer uint64
}

// NewBufferedCounter creates a new BufferedCounter backed by the given
// shared atomic counter.
func NewBufferedCounter(global *atomic.Uint64) *BufferedCounter {
	return &BufferedCounter{global: global}
}

// Inc increments the counter by one.
func (c *BufferedCounter) Inc() {
	c.local++
	c.buffer++
	if c.buffer >= FlushThreshold {
		c.Flush()
	}
}

// Flush writes any buffered increments through to the backing counter.
func (c *BufferedCounter) Flush() {
	c.global.Add(c.buffer)
	c.buffer = 0
}

// Local returns the exact number of times Inc() has been called on this
// BufferedCounter since the last ResetLocal.
func (c *BufferedCounter) Local() uint64 {
	return c.local
}

// Global returns an estimate for the number of increments across all
// BufferedCounters with the same backing counter. The estimate is a
// lower bound.
func (c *BufferedCounter) Global() uint64 {
	return c.global.Load() + c.buffer
}

// ResetLocal resets the local count and discards buffered increments.
func (c *BufferedCounter) ResetLocal() {
	c.local = 0
	c.buffer = 0
}
