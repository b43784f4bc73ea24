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

package position

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sp00ph/icarus/internal/board"
	. "github.com/Sp00ph/icarus/internal/types"
)

// TestMakeUnmakeRoundTrip: for every (position, legal move) pair of a
// random walk, unmake restores the exact previous board including all
// hashes, en passant, castling and clocks.
func TestMakeUnmakeRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(31))

	for game := 0; game < 30; game++ {
		p := NewPosition(board.StartPos())
		for ply := 0; ply < 150; ply++ {
			moves := p.Board().GenAllMoves()
			if len(moves) == 0 {
				break
			}
			before := *p.Board()

			for _, mv := range moves {
				p.MakeMove(mv)
				p.UnmakeMove()
				assert.Equal(t, before, *p.Board(),
					"unmake after %s did not restore %s", mv.String(), before.Fen(true))
			}

			p.MakeMove(moves[rng.Intn(len(moves))])
		}
	}
}

func TestNullMoveRoundTrip(t *testing.T) {
	p := NewPosition(board.StartPos())
	p.MakeMove(p.Board().ParseMove("e2e4", false))
	before := *p.Board()

	p.MakeNullMove()
	assert.NotEqual(t, before.Stm(), p.Board().Stm())
	assert.False(t, p.Board().EnPassant().IsSet())
	assert.Equal(t, MoveNone, p.PrevMove(1))

	p.UnmakeMove()
	assert.Equal(t, before, *p.Board())
}

func TestRepetition(t *testing.T) {
	p := NewPosition(board.StartPos())
	assert.False(t, p.Repetition())

	// shuffle the knights back and forth
	for _, lan := range []string{"g1f3", "g8f6", "f3g1", "f6g8"} {
		mv := p.Board().ParseMove(lan, false)
		require.True(t, p.Board().IsLegal(mv))
		p.MakeMove(mv)
	}
	// the start position has occurred again
	assert.True(t, p.Repetition())
	assert.True(t, p.IsDraw())

	// an irreversible move ends the detection reach
	p = NewPosition(board.StartPos())
	for _, lan := range []string{"g1f3", "g8f6", "f3g1", "f6g8", "e2e4"} {
		p.MakeMove(p.Board().ParseMove(lan, false))
	}
	assert.False(t, p.Repetition())
}

func TestPrevMove(t *testing.T) {
	p := NewPosition(board.StartPos())
	e4 := p.Board().ParseMove("e2e4", false)
	p.MakeMove(e4)
	e5 := p.Board().ParseMove("e7e5", false)
	p.MakeMove(e5)

	assert.Equal(t, e5, p.PrevMove(1))
	assert.Equal(t, e4, p.PrevMove(2))
	assert.Equal(t, MoveNone, p.PrevMove(3))
}

func TestClone(t *testing.T) {
	p := NewPosition(board.StartPos())
	p.MakeMove(p.Board().ParseMove("e2e4", false))

	c := p.Clone()
	c.MakeMove(c.Board().ParseMove("e7e5", false))

	assert.NotEqual(t, p.Board().Hash(), c.Board().Hash())
	assert.Equal(t, 1, p.Ply())
	assert.Equal(t, 2, c.Ply())
}
