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

// Package transpositiontable implements the lock free shared hash
// table of the search. Entries are 16 bytes stored as two relaxed
// 64-bit words (key ^ data, data); readers reconstitute the key by
// XOR, so a torn read shows up as a key mismatch and is treated as a
// miss. This is correct but not serializable.
package transpositiontable

import (
	"math/bits"
	"sync/atomic"

	"github.com/op/go-logging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	myLogging "github.com/Sp00ph/icarus/internal/logging"
	. "github.com/Sp00ph/icarus/internal/types"
)

var out = message.NewPrinter(language.German)

const (
	// DefaultSizeInMB default size of the table
	DefaultSizeInMB = 16
	// MaxSizeInMB maximal memory usage of the table
	MaxSizeInMB = 1_048_576

	entrySize = 16 // bytes
)

type entry struct {
	key  atomic.Uint64 // hash ^ data
	data atomic.Uint64
}

func (e *entry) store(hash Key, data Data) {
	packed := data.pack()
	e.key.Store(uint64(hash) ^ packed)
	e.data.Store(packed)
}

func (e *entry) keyAndData() (Key, Data) {
	key := e.key.Load()
	data := e.data.Load()
	return Key(key ^ data), unpack(data)
}

func (e *entry) reset() {
	e.key.Store(0)
	e.data.Store(0)
}

// TtTable is the shared transposition table. Many readers and writers
// access it concurrently without locks; Resize and Clear must not run
// while a search does.
type TtTable struct {
	log     *logging.Logger
	entries []entry
	age     atomic.Uint32
}

// NewTtTable creates a table with the given size in MB. Allocation
// failure is fatal (the runtime panics), per the error model.
func NewTtTable(sizeInMB int) *TtTable {
	tt := &TtTable{log: myLogging.GetLog()}
	tt.Resize(sizeInMB)
	return tt
}

// Resize reallocates the table for the given size in MB. All entries
// are lost.
func (tt *TtTable) Resize(sizeInMB int) {
	if sizeInMB > MaxSizeInMB {
		tt.log.Warning(out.Sprintf("Requested TT size of %d MB reduced to max of %d MB", sizeInMB, MaxSizeInMB))
		sizeInMB = MaxSizeInMB
	}
	size := uint64(sizeInMB) * MB / entrySize
	tt.entries = make([]entry, size)
	tt.age.Store(0)
	tt.log.Debug(out.Sprintf("TT size %d MB, capacity %d entries", sizeInMB, size))
}

// index maps a hash onto a slot with the multiply and shift trick,
// avoiding a division.
func (tt *TtTable) index(hash Key) uint64 {
	return mulHi(uint64(hash), uint64(len(tt.entries)))
}

// scoreToTt converts a mate score at the given ply to
// distance-from-root before storing.
func scoreToTt(s Value, ply int) Value {
	if !s.IsCheckMateValue() {
		return s
	}
	if s < 0 {
		return s - Value(ply)
	}
	return s + Value(ply)
}

// ttToScore converts a stored mate score back to distance-from-node.
func ttToScore(s Value, ply int) Value {
	if !s.IsCheckMateValue() {
		return s
	}
	if s < 0 {
		return s + Value(ply)
	}
	return s - Value(ply)
}

// Fetch probes the table. ok is false on a miss (or torn read).
// Mate scores are adjusted to the probing ply.
func (tt *TtTable) Fetch(hash Key, ply int) (Data, bool) {
	key, data := tt.entries[tt.index(hash)].keyAndData()
	if key != hash || data.Flags.Bound() == BoundNone {
		return Data{}, false
	}
	data.Score = ttToScore(data.Score, ply)
	return data, true
}

// Store writes an entry, always replacing. The move of the previous
// entry for the same position is retained when the new one has none.
// Mate scores are stored relative to the root.
func (tt *TtTable) Store(hash Key, depth int, ply int, eval, score Value, mv Move, bound Bound, pv bool) {
	old, hasOld := tt.Fetch(hash, ply)
	if mv == MoveNone && hasOld {
		mv = old.Move
	}

	data := Data{
		Eval:  eval,
		Score: scoreToTt(score, ply),
		Move:  mv,
		Depth: uint8(depth),
		Flags: NewFlags(uint8(tt.age.Load()), pv, bound),
	}

	tt.entries[tt.index(hash)].store(hash, data)
}

// Clear wipes all entries and resets the age. Called on ucinewgame.
func (tt *TtTable) Clear() {
	for i := range tt.entries {
		tt.entries[i].reset()
	}
	tt.age.Store(0)
}

// BumpAge advances the 5-bit generation counter. Called per go.
func (tt *TtTable) BumpAge() {
	tt.age.Store((tt.age.Load() + 1) % 32)
}

// Hashfull returns an approximation of the table usage in permill,
// sampled over the first 1000 entries.
func (tt *TtTable) Hashfull() int {
	n := 1000
	if len(tt.entries) < n {
		n = len(tt.entries)
	}
	used := 0
	for i := 0; i < n; i++ {
		if _, data := tt.entries[i].keyAndData(); data.Flags.Bound() != BoundNone {
			used++
		}
	}
	return used
}

// mulHi returns the high 64 bits of the 128-bit product a*b
func mulHi(a, b uint64) uint64 {
	hi, _ := bits.Mul64(a, b)
	return hi
}
