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

package transpositiontable

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/Sp00ph/icarus/internal/types"
)

func TestFlagsPacking(t *testing.T) {
	f := NewFlags(21, true, BoundLower)
	assert.Equal(t, uint8(21), f.Age())
	assert.True(t, f.Pv())
	assert.Equal(t, BoundLower, f.Bound())

	f = NewFlags(0, false, BoundUpper)
	assert.Equal(t, uint8(0), f.Age())
	assert.False(t, f.Pv())
	assert.Equal(t, BoundUpper, f.Bound())
}

func TestDataPackRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(61))
	for i := 0; i < 1000; i++ {
		d := Data{
			Eval:  Value(int16(rng.Int())),
			Score: Value(int16(rng.Int())),
			Move:  Move(uint16(rng.Int())),
			Depth: uint8(rng.Int()),
			Flags: Flags(uint8(rng.Int())),
		}
		assert.Equal(t, d, unpack(d.pack()))
	}
}

func TestStoreFetch(t *testing.T) {
	tt := NewTtTable(1)
	hash := Key(0x1234_5678_9abc_def0)
	mv := NewMove(SqE2, SqE4, Normal)

	tt.Store(hash, 7, 0, 13, 42, mv, BoundExact, true)

	data, ok := tt.Fetch(hash, 0)
	assert.True(t, ok)
	assert.Equal(t, Value(42), data.Score)
	assert.Equal(t, Value(13), data.Eval)
	assert.Equal(t, mv, data.Move)
	assert.Equal(t, uint8(7), data.Depth)
	assert.Equal(t, BoundExact, data.Flags.Bound())
	assert.True(t, data.Flags.Pv())

	// a different hash misses (the key xor validation rejects it)
	_, ok = tt.Fetch(hash^1, 0)
	assert.False(t, ok)

	tt.Clear()
	_, ok = tt.Fetch(hash, 0)
	assert.False(t, ok)
}

func TestMoveRetention(t *testing.T) {
	tt := NewTtTable(1)
	hash := Key(0xdead_beef_cafe_f00d)
	mv := NewMove(SqG1, SqF3, Normal)

	tt.Store(hash, 5, 0, 0, 10, mv, BoundExact, false)
	// storing without a move keeps the old one
	tt.Store(hash, 6, 0, 0, 20, MoveNone, BoundUpper, false)

	data, ok := tt.Fetch(hash, 0)
	assert.True(t, ok)
	assert.Equal(t, mv, data.Move)
	assert.Equal(t, Value(20), data.Score)
}

// TestMateScoreAdjustment: mate scores are stored relative to the
// root and re-adjusted to the probing ply.
func TestMateScoreAdjustment(t *testing.T) {
	tt := NewTtTable(1)
	hash := Key(0x0bad_c0de_0000_0001)

	// a node at ply 10 sees mate 5 plies below itself, i.e. the
	// root-relative score is mate at ply 15. Stored entries are
	// node-relative (distance 5), so a later read converts back.
	tt.Store(hash, 3, 10, ValueNA, ValueMateIn(15), MoveNone, BoundExact, false)

	// reading at the same ply gives the same root-relative score
	data, ok := tt.Fetch(hash, 10)
	assert.True(t, ok)
	assert.Equal(t, ValueMateIn(15), data.Score)

	// reaching the same position at ply 2 means the mate is now at
	// ply 2+5 from the root
	data, ok = tt.Fetch(hash, 2)
	assert.True(t, ok)
	assert.Equal(t, ValueMateIn(7), data.Score)

	// the same works for being mated
	tt.Store(hash, 3, 6, ValueNA, ValueMatedIn(10), MoveNone, BoundExact, false)
	data, ok = tt.Fetch(hash, 6)
	assert.True(t, ok)
	assert.Equal(t, ValueMatedIn(10), data.Score)
	data, ok = tt.Fetch(hash, 1)
	assert.True(t, ok)
	assert.Equal(t, ValueMatedIn(5), data.Score)
}

func TestAgeWraps(t *testing.T) {
	tt := NewTtTable(1)
	for i := 0; i < 40; i++ {
		tt.BumpAge()
	}
	hash := Key(0x42)
	tt.Store(hash, 1, 0, 0, 0, MoveNone, BoundExact, false)
	data, ok := tt.Fetch(hash, 0)
	assert.True(t, ok)
	assert.Equal(t, uint8(40%32), data.Flags.Age())
}
