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
	"github.com/Sp00ph/icarus/internal/assert"
	. "github.com/Sp00ph/icarus/internal/types"
)

// MakeMove makes the given move on the board. Does *not* check whether
// the move is legal - an illegal move may break the board, silently or
// loudly. Legality is established by the generator or IsLegal before.
func (b *Board) MakeMove(mv Move) {
	from, to, flag := mv.From(), mv.To(), mv.Flag()
	if assert.DEBUG {
		assert.Assert(from != to, "MakeMove: from == to in %s", mv.String())
	}

	b.halfmoveClock++
	if b.stm == Black {
		b.fullmoveCount++
	}

	b.setEnPassant(EpNone)

	piece := b.mailbox[from]
	victim := b.mailbox[to]

	if piece == Pawn || (victim != PtNone && flag != Castle) {
		b.halfmoveClock = 0
	}

	if victim != PtNone && flag != Castle {
		// Toggle the victim bitboard. The mailbox is fixed once our
		// piece moves onto the square.
		b.toggleSquare(to, b.stm.Flip(), victim)

		// If we take an opponent's rook we must update their
		// castling rights.
		if to.RankOf() == Rank8.RelativeTo(b.stm) {
			for _, dir := range [2]CastlingDirection{CastlingLong, CastlingShort} {
				if to.FileOf() == b.castlingRights[b.stm.Flip()].Get(dir) {
					b.setCastles(b.stm.Flip(), dir, FileNone)
				}
			}
		}
	}

	doublePushFile := FileNone

	switch flag {
	case Normal:
		b.toggleSquare(from, b.stm, piece)
		b.toggleSquare(to, b.stm, piece)

		b.mailbox[from] = PtNone
		b.mailbox[to] = piece

		switch piece {
		case King:
			b.setCastles(b.stm, CastlingLong, FileNone)
			b.setCastles(b.stm, CastlingShort, FileNone)
		case Rook:
			if from.RankOf() == Rank1.RelativeTo(b.stm) {
				for _, dir := range [2]CastlingDirection{CastlingLong, CastlingShort} {
					if from.FileOf() == b.castlingRights[b.stm].Get(dir) {
						b.setCastles(b.stm, dir, FileNone)
					}
				}
			}
		case Pawn:
			// Stage the en passant recompute if we double pushed.
			if uint8(from.RankOf())^uint8(to.RankOf()) == 2 {
				doublePushFile = from.FileOf()
			}
		}

	case Castle:
		dir := CastlingShort
		if to.FileOf() < from.FileOf() {
			dir = CastlingLong
		}

		rookFrom := to
		kingTo := SquareOf(dir.KingDst(), from.RankOf())
		rookTo := SquareOf(dir.RookDst(), from.RankOf())

		b.toggleSquare(rookFrom, b.stm, Rook)
		b.toggleSquare(rookTo, b.stm, Rook)
		b.toggleSquare(from, b.stm, King)
		b.toggleSquare(kingTo, b.stm, King)

		// The order of mailbox updates matters: in Chess960 the king
		// sometimes lands on the square the rook started on, so both
		// origin squares must be cleared before both destinations are
		// written.
		b.mailbox[rookFrom] = PtNone
		b.mailbox[from] = PtNone
		b.mailbox[rookTo] = Rook
		b.mailbox[kingTo] = King

		b.setCastles(b.stm, CastlingLong, FileNone)
		b.setCastles(b.stm, CastlingShort, FileNone)

	case EnPassant:
		victimSq := SquareOf(to.FileOf(), from.RankOf())
		b.toggleSquare(from, b.stm, Pawn)
		b.toggleSquare(to, b.stm, Pawn)
		b.toggleSquare(victimSq, b.stm.Flip(), Pawn)

		b.mailbox[from] = PtNone
		b.mailbox[to] = Pawn
		b.mailbox[victimSq] = PtNone

	case Promotion:
		promo := mv.PromotesTo()
		b.toggleSquare(from, b.stm, Pawn)
		b.toggleSquare(to, b.stm, promo)
		b.mailbox[from] = PtNone
		b.mailbox[to] = promo
	}

	b.stm = b.stm.Flip()
	b.hash ^= zobrist.blackToMove

	if doublePushFile != FileNone {
		b.calcEpFile(doublePushFile)
	}
	b.calcThreats()
}

// MakeNullMove passes the turn to the opponent. Only the side to move,
// the en passant state and the threat state change.
func (b *Board) MakeNullMove() {
	b.setEnPassant(EpNone)
	b.stm = b.stm.Flip()
	b.hash ^= zobrist.blackToMove
	b.calcThreats()
}

// calcThreats recalculates the checkers, pinned and attacked
// bitboards. Must be called after making a move, after toggling stm.
// The stm king is removed from the blockers so squares behind it along
// a checking ray count as attacked.
func (b *Board) calcThreats() {
	ourKing := b.King(b.stm)
	blockers := b.Occupied()
	them := b.stm.Flip()
	theirPawns := b.ColoredPieces(Pawn, them)
	theirOrth := b.OrthSliders(them)
	theirDiag := b.DiagSliders(them)

	b.checkers = BbZero
	b.pinned = BbZero
	b.attacked = pawnUpLeftBb(theirPawns, them) | pawnUpRightBb(theirPawns, them)
	b.attacked |= KingMoves(b.King(them))

	for bb := b.ColoredPieces(Knight, them); !bb.IsEmpty(); {
		knight := bb.PopLsb()
		moves := KnightMoves(knight)
		if moves.Has(ourKing) {
			b.checkers |= knight.Bb()
		}
		b.attacked |= moves
	}

	for bb := theirOrth; !bb.IsEmpty(); {
		orth := bb.PopLsb()
		moves := RookMoves(orth, blockers^ourKing.Bb())
		if moves.Has(ourKing) {
			b.checkers |= orth.Bb()
		}
		b.attacked |= moves
	}

	for bb := theirDiag; !bb.IsEmpty(); {
		diag := bb.PopLsb()
		moves := BishopMoves(diag, blockers^ourKing.Bb())
		if moves.Has(ourKing) {
			b.checkers |= diag.Bb()
		}
		b.attacked |= moves
	}

	b.checkers |= PawnAttacks(ourKing, b.stm) & theirPawns

	// attacked and checkers are done, now pinned.
	for bb := RookRays(ourKing) & theirOrth; !bb.IsEmpty(); {
		orth := bb.PopLsb()
		between := Between(orth, ourKing) & blockers
		if between.PopCount() == 1 {
			b.pinned |= between
		}
	}

	for bb := BishopRays(ourKing) & theirDiag; !bb.IsEmpty(); {
		diag := bb.PopLsb()
		between := Between(diag, ourKing) & blockers
		if between.PopCount() == 1 {
			b.pinned |= between
		}
	}

	// pinned only tracks our own pieces
	b.pinned &= b.colors[b.stm]
}

// calcEpFile calculates en passant threats onto a nstm pawn that just
// double pushed on the given file. Must be called after making the
// move and toggling stm. The descriptor is only set when at least one
// en passant capture is actually legal, which makes en passant
// generation free of legality rechecks.
func (b *Board) calcEpFile(file File) {
	victim := SquareOf(file, Rank5.RelativeTo(b.stm))
	attackerDst := SquareOf(file, Rank6.RelativeTo(b.stm))
	ourPawns := b.ColoredPieces(Pawn, b.stm)
	ourKing := b.King(b.stm)

	attackers := ourPawns & PawnAttacks(attackerDst, b.stm.Flip())
	if attackers.IsEmpty() {
		return
	}

	left, right := false, false

	for bb := attackers; !bb.IsEmpty(); {
		attacker := bb.PopLsb()

		// For each potential attacker we simulate the occupancy after
		// the capture and only allow it if no opposing slider then
		// sees our king. Because the last move was a double push and
		// our king wasn't in check before, those discovered slider
		// attacks are the only way the capture could be illegal.
		blockers := b.Occupied() ^ attacker.Bb() ^ attackerDst.Bb() ^ victim.Bb()

		legal := true
		for sl := RookRays(ourKing) & b.OrthSliders(b.stm.Flip()); !sl.IsEmpty(); {
			orth := sl.PopLsb()
			if (blockers & Between(ourKing, orth)).IsEmpty() {
				legal = false
				break
			}
		}
		if legal {
			for sl := BishopRays(ourKing) & b.DiagSliders(b.stm.Flip()); !sl.IsEmpty(); {
				diag := sl.PopLsb()
				if (blockers & Between(ourKing, diag)).IsEmpty() {
					legal = false
					break
				}
			}
		}
		if !legal {
			continue
		}

		if attacker.FileOf() < victim.FileOf() {
			left = true
		} else {
			right = true
		}
	}

	if left || right {
		b.setEnPassant(NewEnPassantFile(file, left, right))
	}
}
