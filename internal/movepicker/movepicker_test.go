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

package movepicker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sp00ph/icarus/internal/board"
	"github.com/Sp00ph/icarus/internal/history"
	"github.com/Sp00ph/icarus/internal/position"
	. "github.com/Sp00ph/icarus/internal/types"
)

const kiwipeteFen = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

func pickAll(mp *MovePicker, pos *position.Position, hist *history.History) []Move {
	var moves []Move
	for {
		mv := mp.Next(pos, hist)
		if mv == MoveNone {
			break
		}
		moves = append(moves, mv)
	}
	return moves
}

// TestPickerYieldsAllLegalMoves: the picker yields every legal move
// exactly once.
func TestPickerYieldsAllLegalMoves(t *testing.T) {
	b, err := board.ReadFen(kiwipeteFen)
	require.NoError(t, err)
	pos := position.NewPosition(b)
	hist := history.NewHistory()

	mp := New(MoveNone, MoveNone, false, 0, false)
	picked := pickAll(&mp, pos, hist)

	legal := pos.Board().GenAllMoves()
	assert.Equal(t, len(legal), len(picked))

	seen := make(map[Move]bool)
	for _, mv := range picked {
		assert.False(t, seen[mv], "move %s yielded twice", mv.String())
		seen[mv] = true
	}
	for _, mv := range legal {
		assert.True(t, seen[mv], "legal move %s never yielded", mv.String())
	}
}

// TestPickerTTMoveFirst: a legal TT move comes first and is not
// repeated later.
func TestPickerTTMoveFirst(t *testing.T) {
	b := board.StartPos()
	pos := position.NewPosition(b)
	hist := history.NewHistory()

	ttMove := NewMove(SqG1, SqF3, Normal)
	mp := New(ttMove, MoveNone, false, 0, false)
	picked := pickAll(&mp, pos, hist)

	require.NotEmpty(t, picked)
	assert.Equal(t, ttMove, picked[0])
	for _, mv := range picked[1:] {
		assert.NotEqual(t, ttMove, mv)
	}
}

// TestPickerIllegalTTMoveSkipped: an illegal TT move is silently
// dropped.
func TestPickerIllegalTTMoveSkipped(t *testing.T) {
	b := board.StartPos()
	pos := position.NewPosition(b)
	hist := history.NewHistory()

	mp := New(NewMove(SqA1, SqA5, Normal), MoveNone, false, 0, false)
	picked := pickAll(&mp, pos, hist)
	assert.Equal(t, len(pos.Board().GenAllMoves()), len(picked))
}

// TestPickerNoisyBeforeQuiet: winning captures come before all quiet
// moves, losing captures after them.
func TestPickerNoisyBeforeQuiet(t *testing.T) {
	b, err := board.ReadFen(kiwipeteFen)
	require.NoError(t, err)
	pos := position.NewPosition(b)
	hist := history.NewHistory()

	mp := New(MoveNone, MoveNone, false, 0, false)

	stageOf := make(map[Move]Stage)
	for {
		mv := mp.Next(pos, hist)
		if mv == MoveNone {
			break
		}
		stageOf[mv] = mp.Stage()
	}

	// every good noisy must be SEE-positive against threshold 0
	for mv, stage := range stageOf {
		if stage <= StageYieldGoodNoisy {
			assert.True(t, pos.CmpSee(mv, 0), "good noisy %s fails SEE", mv.String())
		}
	}
}

// TestPickerKillerOrder: the killer is yielded after the noisies and
// before the remaining quiets.
func TestPickerKillerOrder(t *testing.T) {
	b := board.StartPos()
	pos := position.NewPosition(b)
	hist := history.NewHistory()

	killer := NewMove(SqB1, SqC3, Normal)
	mp := New(MoveNone, killer, false, 0, false)
	picked := pickAll(&mp, pos, hist)

	// startpos has no captures, so the killer comes first
	require.NotEmpty(t, picked)
	assert.Equal(t, killer, picked[0])
}

// TestSkipQuiets: after SkipQuiets only bad noisies may follow.
func TestSkipQuiets(t *testing.T) {
	b := board.StartPos()
	pos := position.NewPosition(b)
	hist := history.NewHistory()

	mp := New(MoveNone, MoveNone, false, 0, false)
	mv := mp.Next(pos, hist)
	require.NotEqual(t, MoveNone, mv)

	mp.SkipQuiets()
	assert.True(t, mp.NoMoreQuiets())
	// startpos has no captures at all, so the picker is exhausted
	assert.Equal(t, MoveNone, mp.Next(pos, hist))
}

// TestPickerQuiescenceMode: with quiets skipped from the start only
// noisy moves are yielded.
func TestPickerQuiescenceMode(t *testing.T) {
	b, err := board.ReadFen(kiwipeteFen)
	require.NoError(t, err)
	pos := position.NewPosition(b)
	hist := history.NewHistory()

	mp := New(MoveNone, MoveNone, true, 0, true)
	for _, mv := range pickAll(&mp, pos, hist) {
		assert.True(t, pos.Board().IsTactic(mv), "%s is not noisy", mv.String())
	}
}
