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

package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sp00ph/icarus/internal/board"
	. "github.com/Sp00ph/icarus/internal/types"
)

func TestQuietHistoryUpdate(t *testing.T) {
	h := NewHistory()
	b := board.StartPos()
	mv := NewMove(SqG1, SqF3, Normal)

	assert.Equal(t, int16(0), h.ScoreQuiet(&b, mv))

	h.Update(&b, mv, nil, nil, 5)
	bonus := h.ScoreQuiet(&b, mv)
	assert.Greater(t, bonus, int16(0))

	// tried-but-failed quiets receive a malus
	other := NewMove(SqB1, SqC3, Normal)
	h.Update(&b, mv, []Move{other}, nil, 5)
	assert.Less(t, h.ScoreQuiet(&b, other), int16(0))
}

func TestHistoryGravityBounds(t *testing.T) {
	h := NewHistory()
	b := board.StartPos()
	mv := NewMove(SqG1, SqF3, Normal)

	// repeated updates converge instead of overflowing
	for i := 0; i < 1000; i++ {
		h.Update(&b, mv, nil, nil, 20)
	}
	v := h.ScoreQuiet(&b, mv)
	assert.Greater(t, v, int16(0))
	assert.LessOrEqual(t, v, int16(maxHistValue))

	for i := 0; i < 2000; i++ {
		h.Update(&b, NewMove(SqB1, SqC3, Normal), []Move{mv}, nil, 20)
	}
	v = h.ScoreQuiet(&b, mv)
	assert.GreaterOrEqual(t, v, int16(-maxHistValue))
	assert.Less(t, v, int16(0))
}

func TestTacticHistory(t *testing.T) {
	h := NewHistory()
	b, err := board.ReadFen("4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	capture := NewMove(SqE4, SqD5, Normal)
	require.True(t, b.IsTactic(capture))

	h.Update(&b, capture, nil, nil, 6)
	assert.Greater(t, h.ScoreTactic(&b, capture), int16(0))
	// the quiet table is untouched by a tactic cutoff
	assert.Equal(t, int16(0), h.ScoreQuiet(&b, capture))
}

func TestCorrectionHistory(t *testing.T) {
	h := NewHistory()
	b := board.StartPos()

	assert.Equal(t, Value(0), h.Corr(&b))

	// the search keeps returning more than the static eval, so the
	// correction drifts upward
	for i := 0; i < 50; i++ {
		h.UpdateCorr(&b, 10, 80, 0)
	}
	corr := h.Corr(&b)
	assert.Greater(t, corr, Value(0))

	// and it is bounded
	for i := 0; i < 5000; i++ {
		h.UpdateCorr(&b, 20, 2000, 0)
	}
	// five tables, each bounded by maxCorrValue and weighted 64/1024
	assert.LessOrEqual(t, h.Corr(&b), Value(5*64))

	h.Clear()
	assert.Equal(t, Value(0), h.Corr(&b))
}
