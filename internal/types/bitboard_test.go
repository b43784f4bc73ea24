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

package types

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSquares(t *testing.T) {
	assert.Equal(t, SqA1, SquareOf(FileA, Rank1))
	assert.Equal(t, SqH8, SquareOf(FileH, Rank8))
	assert.Equal(t, SqE4, MakeSquare("e4"))
	assert.Equal(t, SqNone, MakeSquare("i9"))
	assert.Equal(t, "e4", SqE4.String())
	assert.Equal(t, FileE, SqE4.FileOf())
	assert.Equal(t, Rank4, SqE4.RankOf())
	assert.Equal(t, SqA8, SqA1.FlipRank())
}

func TestShifts(t *testing.T) {
	assert.Equal(t, SqE5.Bb(), SqE4.Bb().ShiftNorth())
	assert.Equal(t, SqE3.Bb(), SqE4.Bb().ShiftSouth())
	assert.Equal(t, SqF4.Bb(), SqE4.Bb().ShiftEast())
	assert.Equal(t, SqD4.Bb(), SqE4.Bb().ShiftWest())
	assert.Equal(t, SqF5.Bb(), SqE4.Bb().ShiftNorthEast())
	assert.Equal(t, SqD5.Bb(), SqE4.Bb().ShiftNorthWest())

	// no wrap around the edges
	assert.Equal(t, BbZero, SqH4.Bb().ShiftEast())
	assert.Equal(t, BbZero, SqA4.Bb().ShiftWest())
	assert.Equal(t, BbZero, SqH8.Bb().ShiftNorthEast())
}

func TestPopCountAndLsb(t *testing.T) {
	b := SqA1.Bb() | SqE4.Bb() | SqH8.Bb()
	assert.Equal(t, 3, b.PopCount())
	assert.Equal(t, SqA1, b.Lsb())
	assert.Equal(t, SqA1, b.PopLsb())
	assert.Equal(t, SqE4, b.PopLsb())
	assert.Equal(t, SqH8, b.PopLsb())
	assert.True(t, b.IsEmpty())
}

func TestGeometryTables(t *testing.T) {
	assert.Equal(t, SqB2.Bb()|SqC3.Bb(), Between(SqA1, SqD4))
	assert.Equal(t, SqA1.Bb()|SqB2.Bb()|SqC3.Bb()|SqD4.Bb(), BetweenInclusive(SqA1, SqD4))
	assert.Equal(t, BbZero, Between(SqA1, SqB3))
	assert.Equal(t, SqA1.Bb()|SqB3.Bb(), BetweenInclusive(SqA1, SqB3))
	// a line through collinear squares spans the whole diagonal
	assert.True(t, Line(SqA1, SqD4).Has(SqH8))
	assert.Equal(t, BbZero, Line(SqA1, SqB3))
	// full rank
	assert.Equal(t, Rank4.Bb(), Line(SqA4, SqD4))
}

func TestNonSliderTables(t *testing.T) {
	assert.Equal(t, 8, KnightMoves(SqE4).PopCount())
	assert.Equal(t, 2, KnightMoves(SqA1).PopCount())
	assert.Equal(t, 8, KingMoves(SqE4).PopCount())
	assert.Equal(t, 3, KingMoves(SqA1).PopCount())

	assert.Equal(t, SqD5.Bb()|SqF5.Bb(), PawnAttacks(SqE4, White))
	assert.Equal(t, SqD3.Bb()|SqF3.Bb(), PawnAttacks(SqE4, Black))
	assert.Equal(t, SqB3.Bb(), PawnAttacks(SqA2, White))

	// single and double pushes
	assert.Equal(t, SqE3.Bb()|SqE4.Bb(), PawnPushes(SqE2, White, BbZero))
	assert.Equal(t, SqE3.Bb(), PawnPushes(SqE2, White, SqE4.Bb()))
	assert.Equal(t, BbZero, PawnPushes(SqE2, White, SqE3.Bb()))
	assert.Equal(t, SqE6.Bb()|SqE5.Bb(), PawnPushes(SqE7, Black, BbZero))
}

// TestMagicAttacks verifies the magic lookups against the slow ray
// walker for random blocker sets on every square.
func TestMagicAttacks(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for sq := SqA1; sq <= SqH8; sq++ {
		for i := 0; i < 200; i++ {
			blockers := Bitboard(rng.Uint64() & rng.Uint64())
			assert.Equal(t, rookMovesSlow(sq, blockers), RookMoves(sq, blockers),
				"rook attacks differ on %s", sq)
			assert.Equal(t, bishopMovesSlow(sq, blockers), BishopMoves(sq, blockers),
				"bishop attacks differ on %s", sq)
			assert.Equal(t, RookMoves(sq, blockers)|BishopMoves(sq, blockers),
				QueenMoves(sq, blockers))
		}
	}
}

func TestMagicEmptyBoard(t *testing.T) {
	// on the empty board the rook sees its full file and rank
	assert.Equal(t, RookRays(SqE4), RookMoves(SqE4, BbZero))
	assert.Equal(t, BishopRays(SqE4), BishopMoves(SqE4, BbZero))
}
