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

package board

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/Sp00ph/icarus/internal/types"
)

// seed positions covering checks, pins, en passant, castling and
// promotions
var isLegalSeedFens = []string{
	StartFen,
	kiwipeteFen,
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R4RK1 w kq - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	"r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w KQkq - 0 1",
	"4k3/8/8/8/8/8/8/4KR1r w F - 0 1",
	"8/8/8/8/k2Pp2Q/8/8/3K4 b - d3 0 1",
	"2kr3r/p1ppqpb1/bn2Qnp1/3PN3/1p2P3/2N5/PPPBBPPP/R3K2R b KQ - 3 2",
}

// plausibleMoves builds the universe of syntactically well formed
// moves to check against the generator: every piece-shaped move from
// every occupied square, all pawn moves including promotions and en
// passant shapes, and the castles.
func plausibleMoves(b *Board) []Move {
	var moves []Move
	stm := b.Stm()
	occupied := b.Occupied()

	for from := SqA1; from <= SqH8; from++ {
		if !occupied.Has(from) {
			continue
		}

		// piece shaped destinations, generously over-approximated
		dests := KnightMoves(from) | QueenMoves(from, BbZero) | KingMoves(from)
		for to := SqA1; to <= SqH8; to++ {
			if to == from || !dests.Has(to) {
				continue
			}
			promoRank := to.RankOf() == Rank8 || to.RankOf() == Rank1
			if promoRank && b.PieceOn(from) == Pawn {
				for pt := Knight; pt <= Queen; pt++ {
					moves = append(moves, NewPromotion(from, to, pt))
				}
				continue
			}
			if !promoRank {
				moves = append(moves, NewMove(from, to, EnPassant))
			}
			moves = append(moves, NewMove(from, to, Normal))
		}
	}

	// the four castles, king takes rook
	king := b.King(stm)
	for _, dir := range [2]CastlingDirection{CastlingLong, CastlingShort} {
		if f := b.CastlingRights(stm).Get(dir); f != FileNone {
			moves = append(moves, NewMove(king, SquareOf(f, king.RankOf()), Castle))
		}
	}

	return moves
}

// TestIsLegalAgreesWithMovegen: for every plausible move, IsLegal
// returns exactly whether the move is in the generated legal set.
func TestIsLegalAgreesWithMovegen(t *testing.T) {
	rng := rand.New(rand.NewSource(21))

	for _, fen := range isLegalSeedFens {
		b, err := ReadFen(fen)
		require.NoError(t, err, fen)

		var walk func(b Board, depth int)
		walk = func(b Board, depth int) {
			legal := make(map[Move]bool)
			for _, mv := range b.GenAllMoves() {
				legal[mv] = true
			}

			for _, mv := range plausibleMoves(&b) {
				assert.Equal(t, legal[mv], b.IsLegal(mv),
					"IsLegal(%s) disagrees with movegen on %s", mv.String(), b.Fen(true))
			}

			if depth == 0 || len(legal) == 0 {
				return
			}
			// follow a few random branches
			all := b.GenAllMoves()
			for i := 0; i < 2 && len(all) > 0; i++ {
				child := b
				child.MakeMove(all[rng.Intn(len(all))])
				walk(child, depth-1)
			}
		}
		walk(b, 3)
	}
}
