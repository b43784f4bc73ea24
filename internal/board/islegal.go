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
	. "github.com/Sp00ph/icarus/internal/types"
)

// IsLegal returns whether the move is legal in the current position
// without generating any move lists. It is assumed that the move is
// syntactically well formed, i.e. there is at least one position in
// which it would be legal (e.g. a promotion flag only appears on moves
// to rank 1 or 8). Used to validate TT and killer moves before play.
func (b *Board) IsLegal(mv Move) bool {
	switch b.checkers.PopCount() {
	case 0:
		return b.isLegalNoCheck(mv)
	case 1:
		return b.isLegalCheck(mv)
	default:
		return b.isLegalEvasion(mv)
	}
}

func (b *Board) isLegalNoCheck(mv Move) bool {
	from, to, flag := mv.From(), mv.To(), mv.Flag()

	piece := b.ColoredPieceOn(from, b.stm)
	if piece == PtNone {
		return false
	}

	ourKing := b.King(b.stm)
	blockers := b.Occupied()
	targets := ^b.colors[b.stm]

	switch flag {
	case Castle:
		return b.isLegalCastle(mv)
	case EnPassant:
		return b.isLegalEnPassant(mv)
	case Promotion:
		if piece != Pawn {
			return false
		}
	}

	// The only move that could "capture" a friendly piece is castling,
	// which is handled above.
	if !targets.Has(to) {
		return false
	}

	// Leaving the pin line is always a discovered check.
	if b.pinned.Has(from) && !Line(ourKing, from).Has(to) {
		return false
	}

	switch piece {
	case Pawn:
		return (to.RankOf() != Rank8.RelativeTo(b.stm) || flag == Promotion) &&
			((PawnAttacks(from, b.stm) & b.colors[b.stm.Flip()]).Has(to) ||
				PawnPushes(from, b.stm, blockers).Has(to))
	case Knight:
		return KnightMoves(from).Has(to)
	case Bishop:
		return BishopMoves(from, blockers).Has(to)
	case Rook:
		return RookMoves(from, blockers).Has(to)
	case Queen:
		return (BishopMoves(from, blockers) | RookMoves(from, blockers)).Has(to)
	default: // King
		return (KingMoves(from) &^ b.attacked).Has(to)
	}
}

func (b *Board) isLegalCheck(mv Move) bool {
	from, to, flag := mv.From(), mv.To(), mv.Flag()

	piece := b.ColoredPieceOn(from, b.stm)
	switch piece {
	case PtNone:
		return false
	case King:
		return b.isLegalEvasion(mv)
	}

	switch flag {
	case Promotion:
		if piece != Pawn || to.RankOf() != Rank8.RelativeTo(b.stm) {
			return false
		}
	case Castle:
		return false
	}

	checker := b.checkers.Lsb()
	ourKing := b.King(b.stm)
	targets := Between(ourKing, checker) | checker.Bb()
	blockers := b.Occupied()

	if !targets.Has(to) {
		// The only legal move when in check that doesn't land on the
		// checker or between it and our king is en passant. A double
		// pawn push can never give double check, so en passant is
		// legal iff the checker is the just pushed pawn.
		return b.enPassant.IsSet() &&
			checker == SquareOf(b.enPassant.FileOf(), Rank5.RelativeTo(b.stm)) &&
			b.isLegalEnPassant(mv)
	}

	// The case above handled all en passant possibilities.
	if flag == EnPassant {
		return false
	}

	if b.pinned.Has(from) && !Line(ourKing, from).Has(to) {
		return false
	}

	switch piece {
	case Pawn:
		return (to.RankOf() != Rank8.RelativeTo(b.stm) || flag == Promotion) &&
			((PawnAttacks(from, b.stm) & checker.Bb()).Has(to) ||
				PawnPushes(from, b.stm, blockers).Has(to))
	case Knight:
		return KnightMoves(from).Has(to)
	case Bishop:
		return BishopMoves(from, blockers).Has(to)
	case Rook:
		return RookMoves(from, blockers).Has(to)
	default: // Queen
		return (BishopMoves(from, blockers) | RookMoves(from, blockers)).Has(to)
	}
}

func (b *Board) isLegalEvasion(mv Move) bool {
	from, to, flag := mv.From(), mv.To(), mv.Flag()

	if b.ColoredPieceOn(from, b.stm) != King {
		return false
	}

	return flag == Normal &&
		(KingMoves(from) &^ (b.colors[b.stm] | b.attacked)).Has(to)
}

func (b *Board) isLegalEnPassant(mv Move) bool {
	if !b.enPassant.IsSet() || mv.Flag() != EnPassant {
		return false
	}
	return b.enPassant.AttackerBb(b.stm).Has(mv.From()) &&
		mv.To() == SquareOf(b.enPassant.FileOf(), Rank6.RelativeTo(b.stm))
}

func (b *Board) isLegalCastle(mv Move) bool {
	from, to := mv.From(), mv.To()
	if b.ColoredPieceOn(from, b.stm) != King {
		return false
	}

	var dir CastlingDirection
	switch to.FileOf() {
	case b.castlingRights[b.stm].Get(CastlingLong):
		dir = CastlingLong
	case b.castlingRights[b.stm].Get(CastlingShort):
		dir = CastlingShort
	default:
		return false
	}

	// From here we know that from holds our king and that we have a
	// castling right to to's file, so the king is on its starting
	// square and to holds one of our rooks.

	// Only possible in Chess960
	if b.pinned.Has(to) {
		return false
	}

	kingDst := SquareOf(dir.KingDst(), from.RankOf())
	rookDst := SquareOf(dir.RookDst(), from.RankOf())

	mustBeSafe := BetweenInclusive(from, kingDst)
	mustBeEmpty := mustBeSafe | BetweenInclusive(from, to) | rookDst.Bb()

	blockers := b.Occupied() ^ from.Bb() ^ to.Bb()

	return (mustBeEmpty&blockers).IsEmpty() && (mustBeSafe&b.attacked).IsEmpty()
}
