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
	. "github.com/Sp00ph/icarus/internal/types"
)

// CmpSee simulates the capture sequence on the destination square of
// the move with alternating least valuable attackers, reconstituting
// x-ray attackers as pieces leave the occupancy. It returns true iff
// the side to move cannot be forced to lose more than -threshold
// material on the exchange.
func (p *Position) CmpSee(mv Move, threshold Value) bool {
	b := &p.board

	// Castling can never win or lose material.
	if mv.Flag() == Castle {
		return 0 >= threshold
	}

	from, to := mv.From(), mv.To()

	swap := -threshold
	if victim := b.Captures(mv); victim != PtNone {
		swap = SeeValue(victim) - threshold
	}

	mover := b.MovedPiece(mv)
	if promo := mv.PromotesTo(); promo != PtNone {
		swap += SeeValue(promo) - SeeValue(Pawn)
		mover = promo
	}
	if swap < 0 {
		return false
	}

	swap = SeeValue(mover) - swap
	if swap <= 0 {
		return true
	}

	occ := (b.Occupied() ^ from.Bb()) | to.Bb()
	if mv.Flag() == EnPassant {
		occ ^= SquareOf(to.FileOf(), from.RankOf()).Bb()
	}

	stm := b.Stm()
	attackers := p.attackersTo(to, occ)

	res := true
	for {
		stm = stm.Flip()
		attackers &= occ

		stmAttackers := attackers & b.OccupiedBy(stm)
		if stmAttackers.IsEmpty() {
			break
		}

		res = !res

		// Pick the least valuable attacker, remove it from the
		// occupancy and reveal x-rays behind it.
		var pt PieceType
		for pt = Pawn; pt < King; pt++ {
			if !(stmAttackers & b.Pieces(pt)).IsEmpty() {
				break
			}
		}

		if pt == King {
			// The king may only recapture when the square is no
			// longer defended; otherwise the previous result stands
			// (the capture with the king would be illegal, so the
			// exchange ends one step earlier with the sides swapped
			// back).
			if !(attackers &^ b.OccupiedBy(stm)).IsEmpty() {
				res = !res
			}
			break
		}

		swap = SeeValue(pt) - swap
		if swap < boolToValue(res) {
			break
		}

		occ ^= (stmAttackers & b.Pieces(pt)).Lsb().Bb()

		switch pt {
		case Pawn, Bishop:
			attackers |= BishopMoves(to, occ) & (b.Pieces(Bishop) | b.Pieces(Queen))
		case Rook:
			attackers |= RookMoves(to, occ) & (b.Pieces(Rook) | b.Pieces(Queen))
		case Queen:
			attackers |= BishopMoves(to, occ)&(b.Pieces(Bishop)|b.Pieces(Queen)) |
				RookMoves(to, occ)&(b.Pieces(Rook)|b.Pieces(Queen))
		}
	}

	return res
}

// attackersTo returns all pieces of both colors attacking the square
// with the given occupancy.
func (p *Position) attackersTo(sq Square, occ Bitboard) Bitboard {
	b := &p.board
	return PawnAttacks(sq, White)&b.ColoredPieces(Pawn, Black) |
		PawnAttacks(sq, Black)&b.ColoredPieces(Pawn, White) |
		KnightMoves(sq)&b.Pieces(Knight) |
		KingMoves(sq)&b.Pieces(King) |
		BishopMoves(sq, occ)&(b.Pieces(Bishop)|b.Pieces(Queen)) |
		RookMoves(sq, occ)&(b.Pieces(Rook)|b.Pieces(Queen))
}

func boolToValue(b bool) Value {
	if b {
		return 1
	}
	return 0
}
