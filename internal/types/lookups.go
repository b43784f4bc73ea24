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

// Geometry and non slider attack tables. All are computed once at
// package init and read only afterwards.

var (
	knightMovesBb [SqLength]Bitboard
	kingMovesBb   [SqLength]Bitboard
	pawnAttacksBb [ColorLength][SqLength]Bitboard

	rookRaysBb   [SqLength]Bitboard
	bishopRaysBb [SqLength]Bitboard

	betweenBb    [SqLength][SqLength]Bitboard
	betweenInclBb [SqLength][SqLength]Bitboard
	lineBb       [SqLength][SqLength]Bitboard
)

// KnightMoves returns the attack bitboard of a knight on the square
func KnightMoves(sq Square) Bitboard {
	return knightMovesBb[sq]
}

// KingMoves returns the attack bitboard of a king on the square
func KingMoves(sq Square) Bitboard {
	return kingMovesBb[sq]
}

// PawnAttacks returns the two capture squares of a pawn of the given
// color on the square
func PawnAttacks(sq Square, c Color) Bitboard {
	return pawnAttacksBb[c][sq]
}

// PawnPushes returns the single and double push destinations of a pawn
// of the given color on the square with the given blockers
func PawnPushes(sq Square, c Color, blockers Bitboard) Bitboard {
	single := pawnUp(sq.Bb(), c) &^ blockers
	to := single
	if sq.RankOf() == Rank2.RelativeTo(c) {
		to |= pawnUp(single, c) &^ blockers
	}
	return to
}

// pawnUp shifts the bitboard one rank toward the opponent of c
func pawnUp(b Bitboard, c Color) Bitboard {
	if c == White {
		return b.ShiftNorth()
	}
	return b.ShiftSouth()
}

// RookRays returns file and rank through the square (without the
// square itself)
func RookRays(sq Square) Bitboard {
	return rookRaysBb[sq]
}

// BishopRays returns both diagonals through the square (without the
// square itself)
func BishopRays(sq Square) Bitboard {
	return bishopRaysBb[sq]
}

// Between returns the squares strictly between a and b when they share
// a rank, file or diagonal; the empty bitboard otherwise.
func Between(a, b Square) Bitboard {
	return betweenBb[a][b]
}

// BetweenInclusive returns the squares between a and b including both
// endpoints. When a and b are not collinear only the endpoints are set.
func BetweenInclusive(a, b Square) Bitboard {
	return betweenInclBb[a][b]
}

// Line returns the full rank, file or diagonal through the collinear
// squares a and b, the empty bitboard when they are not collinear.
func Line(a, b Square) Bitboard {
	return lineBb[a][b]
}

func initLookups() {
	knightOffsets := [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingOffsets := [8][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}

	for sq := SqA1; sq <= SqH8; sq++ {
		for _, o := range knightOffsets {
			if to := sq.tryOffset(o[0], o[1]); to != SqNone {
				knightMovesBb[sq] |= to.Bb()
			}
		}
		for _, o := range kingOffsets {
			if to := sq.tryOffset(o[0], o[1]); to != SqNone {
				kingMovesBb[sq] |= to.Bb()
			}
		}

		bb := sq.Bb()
		pawnAttacksBb[White][sq] = bb.ShiftNorthWest() | bb.ShiftNorthEast()
		pawnAttacksBb[Black][sq] = bb.ShiftSouthWest() | bb.ShiftSouthEast()

		rookRaysBb[sq] = (sq.RankOf().Bb() ^ sq.FileOf().Bb())
		bishopRaysBb[sq] = (MainDiagFor(sq) ^ AntiDiagFor(sq))
	}

	for a := SqA1; a <= SqH8; a++ {
		for b := a; b <= SqH8; b++ {
			incl := betweenInclusive(a, b)
			betweenInclBb[a][b] = incl
			betweenInclBb[b][a] = incl

			excl := incl &^ (a.Bb() | b.Bb())
			betweenBb[a][b] = excl
			betweenBb[b][a] = excl

			l := lineThrough(a, b)
			lineBb[a][b] = l
			lineBb[b][a] = l
		}
	}
}

// betweenInclusive walks from a to b when the squares are collinear.
// Non collinear squares yield just the two endpoints.
func betweenInclusive(a, b Square) Bitboard {
	df := int(b.FileOf()) - int(a.FileOf())
	dr := int(b.RankOf()) - int(a.RankOf())

	bb := a.Bb() | b.Bb()
	orth := df == 0 || dr == 0
	diag := abs(df) == abs(dr)
	if !orth && !diag {
		return bb
	}

	df, dr = sign(df), sign(dr)
	for sq := a; sq != b; {
		sq = sq.tryOffset(df, dr)
		bb |= sq.Bb()
	}
	return bb
}

func lineThrough(a, b Square) Bitboard {
	df := int(b.FileOf()) - int(a.FileOf())
	dr := int(b.RankOf()) - int(a.RankOf())

	var bb Bitboard
	if df == 0 {
		bb |= a.FileOf().Bb()
	}
	if dr == 0 {
		bb |= a.RankOf().Bb()
	}
	if df == dr && df != 0 {
		bb |= MainDiagFor(a)
	}
	if df == -dr && df != 0 {
		bb |= AntiDiagFor(a)
	}
	return bb
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}
