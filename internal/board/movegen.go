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

// The move generator is staged and fully legal: pins, checks and en
// passant legality are resolved during generation, so no post filter
// is needed. Callers pass a visitor that receives batches of moves of
// one piece from one square (a PieceMoves value); the visitor may
// request early abort by returning true. This lets callers answer
// "does any legal move exist" without materializing a move list.

// PieceMoves is a batch of moves of a single piece from a single
// square, with the destinations as a bitboard. A Promotion batch
// expands to four moves per destination.
type PieceMoves struct {
	flag  MoveFlag
	piece PieceType
	from  Square
	to    Bitboard
}

// NewPieceMoves creates a move batch
func NewPieceMoves(flag MoveFlag, piece PieceType, from Square, to Bitboard) PieceMoves {
	return PieceMoves{flag: flag, piece: piece, from: from, to: to}
}

// PieceType returns the moving piece type
func (pm *PieceMoves) PieceType() PieceType {
	return pm.piece
}

// From returns the from square of the batch
func (pm *PieceMoves) From() Square {
	return pm.from
}

// To returns the destination bitboard
func (pm *PieceMoves) To() Bitboard {
	return pm.to
}

// Len returns the number of moves in the batch
func (pm *PieceMoves) Len() int {
	n := pm.to.PopCount()
	if pm.flag == Promotion {
		n *= 4
	}
	return n
}

// IsEmpty returns true when the batch contains no move
func (pm *PieceMoves) IsEmpty() bool {
	return pm.to.IsEmpty()
}

// PieceMovesIter iterates the individual moves of a batch. Promotions
// yield the queen promotion first.
type PieceMovesIter struct {
	moves      PieceMoves
	promoteIdx uint8
}

// Iter returns an iterator over the batch
func (pm PieceMoves) Iter() PieceMovesIter {
	return PieceMovesIter{moves: pm}
}

// Next returns the next move of the batch, false when exhausted.
func (it *PieceMovesIter) Next() (Move, bool) {
	if it.moves.to.IsEmpty() {
		return MoveNone, false
	}
	from := it.moves.from
	to := it.moves.to.Lsb()

	if it.moves.flag == Promotion {
		mv := NewPromotion(from, to, Queen-PieceType(it.promoteIdx))
		it.promoteIdx++
		if it.promoteIdx >= 4 {
			it.promoteIdx = 0
			it.moves.to ^= to.Bb()
		}
		return mv, true
	}
	it.moves.to ^= to.Bb()
	return NewMove(from, to, it.moves.flag), true
}

// Visitor receives batches of legal moves. Returning true aborts the
// generation.
type Visitor func(PieceMoves) bool

// pawn shifts relative to the side to move. "Up" is toward the
// opponent's back rank; for Black the left/right sense follows the
// shifted direction, which is all the generator needs.

func pawnUpBb(b Bitboard, c Color) Bitboard {
	if c == White {
		return b.ShiftNorth()
	}
	return b.ShiftSouth()
}

func pawnDownBb(b Bitboard, c Color) Bitboard {
	if c == White {
		return b.ShiftSouth()
	}
	return b.ShiftNorth()
}

func pawnUpLeftBb(b Bitboard, c Color) Bitboard {
	if c == White {
		return b.ShiftNorthWest()
	}
	return b.ShiftSouthEast()
}

func pawnUpRightBb(b Bitboard, c Color) Bitboard {
	if c == White {
		return b.ShiftNorthEast()
	}
	return b.ShiftSouthWest()
}

func pawnDownLeftBb(b Bitboard, c Color) Bitboard {
	if c == White {
		return b.ShiftSouthWest()
	}
	return b.ShiftNorthEast()
}

func pawnDownRightBb(b Bitboard, c Color) Bitboard {
	if c == White {
		return b.ShiftSouthEast()
	}
	return b.ShiftNorthWest()
}

// targets computes the destinations available to non king pieces: in
// single check only blocking or capturing the checker helps, otherwise
// everything except own pieces.
func (b *Board) targets() Bitboard {
	t := BbAll
	if !b.checkers.IsEmpty() {
		t = BetweenInclusive(b.checkers.Lsb(), b.King(b.stm))
	}
	return t &^ b.colors[b.stm]
}

// pawnNoisies emits pawn captures, promoting pushes and en passant
// captures.
func (b *Board) pawnNoisies(visitor Visitor, targets Bitboard) bool {
	stm := b.stm
	ourPawns := b.ColoredPieces(Pawn, stm)
	ourKing := b.King(stm)
	promoRank := Rank7.RelativeTo(stm)

	captureTargets := targets & b.colors[stm.Flip()]

	{
		// Up-left captures move along the anti diagonal for both
		// colors. Any pinned pawns that are not on the same anti
		// diagonal as the king may not make such captures.
		pinnedPawns := b.pinned &^ AntiDiagFor(ourKing)

		for bb := pawnDownRightBb(captureTargets, stm) & ourPawns &^ pinnedPawns; !bb.IsEmpty(); {
			from := bb.PopLsb()
			flag := Normal
			if from.RankOf() == promoRank {
				flag = Promotion
			}
			if visitor(NewPieceMoves(flag, Pawn, from, pawnUpLeftBb(from.Bb(), stm))) {
				return true
			}
		}
	}

	{
		// Up-right captures move along the main diagonal.
		pinnedPawns := b.pinned &^ MainDiagFor(ourKing)

		for bb := pawnDownLeftBb(captureTargets, stm) & ourPawns &^ pinnedPawns; !bb.IsEmpty(); {
			from := bb.PopLsb()
			flag := Normal
			if from.RankOf() == promoRank {
				flag = Promotion
			}
			if visitor(NewPieceMoves(flag, Pawn, from, pawnUpRightBb(from.Bb(), stm))) {
				return true
			}
		}
	}

	{
		// Promoting pawn pushes. Any pinned pawns that are not on the
		// same file as the king may not push.
		pinnedPawns := b.pinned &^ ourKing.FileOf().Bb()

		promoPushTargets := Rank8.RelativeTo(stm).Bb() &^ b.colors[stm.Flip()] & targets

		for bb := pawnDownBb(promoPushTargets, stm) & ourPawns &^ pinnedPawns; !bb.IsEmpty(); {
			from := bb.PopLsb()
			if visitor(NewPieceMoves(Promotion, Pawn, from, pawnUpBb(from.Bb(), stm))) {
				return true
			}
		}
	}

	if b.enPassant.IsSet() {
		// Legality was precomputed into the descriptor, no further
		// checks needed here.
		to := SquareOf(b.enPassant.FileOf(), Rank6.RelativeTo(stm))

		for bb := b.enPassant.AttackerBb(stm); !bb.IsEmpty(); {
			from := bb.PopLsb()
			if visitor(NewPieceMoves(EnPassant, Pawn, from, to.Bb())) {
				return true
			}
		}
	}

	return false
}

// pawnQuiets emits single and double pushes below the promotion rank.
func (b *Board) pawnQuiets(visitor Visitor, targets Bitboard) bool {
	stm := b.stm
	ourPawns := b.ColoredPieces(Pawn, stm)
	ourKing := b.King(stm)

	// Pushes to the 8th rank promote and are not quiet; pushes can
	// never capture.
	pushTargets := ^Rank8.RelativeTo(stm).Bb() &^ b.Occupied()

	// Any pinned pawns that are not on the same file as our king may
	// not push.
	pinnedPawns := b.pinned &^ ourKing.FileOf().Bb()

	// Pawns that can be pushed one square. There are false positives
	// in here (e.g. pushes that don't break a check) that are
	// filtered by the targets intersection below.
	singlePushFrom := pawnDownBb(pushTargets, stm) & ourPawns &^ pinnedPawns

	// Pawns on the starting rank that can be pushed one square and
	// have a free square two above can be double pushed.
	doublePushFrom := Rank2.RelativeTo(stm).Bb() & singlePushFrom &
		pawnDownBb(pawnDownBb(pushTargets, stm), stm)

	for bb := singlePushFrom & pawnDownBb(targets, stm); !bb.IsEmpty(); {
		from := bb.PopLsb()
		if visitor(NewPieceMoves(Normal, Pawn, from, pawnUpBb(from.Bb(), stm))) {
			return true
		}
	}

	for bb := doublePushFrom & pawnDownBb(pawnDownBb(targets, stm), stm); !bb.IsEmpty(); {
		from := bb.PopLsb()
		to := SquareOf(from.FileOf(), Rank4.RelativeTo(stm))
		if visitor(NewPieceMoves(Normal, Pawn, from, to.Bb())) {
			return true
		}
	}

	return false
}

// knightMoves emits knight moves. Pinned knights can never move.
func (b *Board) knightMoves(visitor Visitor, targets Bitboard) bool {
	for bb := b.ColoredPieces(Knight, b.stm) &^ b.pinned; !bb.IsEmpty(); {
		from := bb.PopLsb()
		to := KnightMoves(from) & targets
		if !to.IsEmpty() {
			if visitor(NewPieceMoves(Normal, Knight, from, to)) {
				return true
			}
		}
	}
	return false
}

// sliders emits the moves of one slider family. Unpinned sliders shoot
// freely, pinned ones must stay on the line through the king.
func (b *Board) sliders(visitor Visitor, targets, sliders Bitboard, moves func(Square, Bitboard) Bitboard) bool {
	from := b.colors[b.stm] & sliders
	blockers := b.Occupied()
	ourKing := b.King(b.stm)

	for bb := from &^ b.pinned; !bb.IsEmpty(); {
		sq := bb.PopLsb()
		to := moves(sq, blockers) & targets
		if !to.IsEmpty() {
			if visitor(NewPieceMoves(Normal, b.mailbox[sq], sq, to)) {
				return true
			}
		}
	}

	for bb := from & b.pinned; !bb.IsEmpty(); {
		sq := bb.PopLsb()
		to := moves(sq, blockers) & targets & Line(ourKing, sq)
		if !to.IsEmpty() {
			if visitor(NewPieceMoves(Normal, b.mailbox[sq], sq, to)) {
				return true
			}
		}
	}

	return false
}

func (b *Board) diagSliderMoves(visitor Visitor, targets Bitboard) bool {
	return b.sliders(visitor, targets, b.pieces[Queen]|b.pieces[Bishop], BishopMoves)
}

func (b *Board) orthSliderMoves(visitor Visitor, targets Bitboard) bool {
	return b.sliders(visitor, targets, b.pieces[Queen]|b.pieces[Rook], RookMoves)
}

// kingMoves emits regular king moves and, when not in check, castling.
func (b *Board) kingMoves(visitor Visitor, inCheck bool) bool {
	ourKing := b.King(b.stm)

	{
		to := KingMoves(ourKing) &^ b.attacked &^ b.colors[b.stm]
		if !to.IsEmpty() {
			if visitor(NewPieceMoves(Normal, King, ourKing, to)) {
				return true
			}
		}
	}

	if !inCheck {
		rank := Rank1.RelativeTo(b.stm)

		for _, dir := range [2]CastlingDirection{CastlingLong, CastlingShort} {
			rookFile := b.castlingRights[b.stm].Get(dir)
			if rookFile == FileNone {
				continue
			}

			kingDst := SquareOf(dir.KingDst(), rank)
			rookDst := SquareOf(dir.RookDst(), rank)
			rookSq := SquareOf(rookFile, rank)

			// Only possible in Chess960
			if b.pinned.Has(rookSq) {
				continue
			}

			mustBeSafe := BetweenInclusive(ourKing, kingDst)
			mustBeEmpty := mustBeSafe | BetweenInclusive(ourKing, rookSq) | rookDst.Bb()

			blockers := b.Occupied() ^ ourKing.Bb() ^ rookSq.Bb()

			if (mustBeEmpty&blockers).IsEmpty() && (mustBeSafe&b.attacked).IsEmpty() {
				if visitor(NewPieceMoves(Castle, King, ourKing, rookSq.Bb())) {
					return true
				}
			}
		}
	}

	return false
}

// GenMoves generates all legal moves. In double check only king moves
// are generated. Returns true when the visitor aborted.
func (b *Board) GenMoves(visitor Visitor) bool {
	inCheck := !b.checkers.IsEmpty()
	if b.checkers.PopCount() > 1 {
		return b.kingMoves(visitor, true)
	}

	targets := b.targets()

	return b.pawnNoisies(visitor, targets) ||
		b.pawnQuiets(visitor, targets) ||
		b.knightMoves(visitor, targets) ||
		b.orthSliderMoves(visitor, targets) ||
		b.diagSliderMoves(visitor, targets) ||
		b.kingMoves(visitor, inCheck)
}

// GenNoisyMoves generates captures, promotions and en passant
// captures. In double check only king captures are generated. Quiet
// evasions out of check come from GenQuietMoves so the two stages
// never emit a move twice.
func (b *Board) GenNoisyMoves(visitor Visitor) bool {
	them := b.colors[b.stm.Flip()]

	if b.checkers.PopCount() > 1 {
		return b.kingMovesFiltered(visitor, them)
	}

	targets := b.targets()

	// pawnNoisies also emits quiet promoting pushes, which count as
	// noisy for the search.
	if b.pawnNoisies(visitor, targets) {
		return true
	}
	noisyTargets := targets & them
	if b.knightMoves(visitor, noisyTargets) ||
		b.orthSliderMoves(visitor, noisyTargets) ||
		b.diagSliderMoves(visitor, noisyTargets) {
		return true
	}
	return b.kingMovesFiltered(visitor, them)
}

// GenQuietMoves generates all legal non captures and non promotions.
func (b *Board) GenQuietMoves(visitor Visitor) bool {
	inCheck := !b.checkers.IsEmpty()
	them := b.colors[b.stm.Flip()]

	if b.checkers.PopCount() > 1 {
		return b.kingMovesFiltered(visitor, ^them)
	}

	targets := b.targets()

	if b.pawnQuiets(visitor, targets) {
		return true
	}
	quietTargets := targets &^ them
	if b.knightMoves(visitor, quietTargets) ||
		b.orthSliderMoves(visitor, quietTargets) ||
		b.diagSliderMoves(visitor, quietTargets) {
		return true
	}
	return b.kingMovesQuiet(visitor, inCheck)
}

// kingMovesFiltered emits regular king moves restricted to the given
// destination filter (no castling).
func (b *Board) kingMovesFiltered(visitor Visitor, filter Bitboard) bool {
	ourKing := b.King(b.stm)
	to := KingMoves(ourKing) &^ b.attacked &^ b.colors[b.stm] & filter
	if !to.IsEmpty() {
		return visitor(NewPieceMoves(Normal, King, ourKing, to))
	}
	return false
}

// kingMovesQuiet emits non capturing king moves including castling.
func (b *Board) kingMovesQuiet(visitor Visitor, inCheck bool) bool {
	them := b.colors[b.stm.Flip()]
	if b.kingMovesFiltered(visitor, ^them) {
		return true
	}
	if inCheck {
		return false
	}
	// castling is quiet; castleMoves emits only the castling moves
	return b.castleMoves(visitor)
}

// castleMoves emits only the castling moves.
func (b *Board) castleMoves(visitor Visitor) bool {
	ourKing := b.King(b.stm)
	rank := Rank1.RelativeTo(b.stm)

	for _, dir := range [2]CastlingDirection{CastlingLong, CastlingShort} {
		rookFile := b.castlingRights[b.stm].Get(dir)
		if rookFile == FileNone {
			continue
		}

		kingDst := SquareOf(dir.KingDst(), rank)
		rookDst := SquareOf(dir.RookDst(), rank)
		rookSq := SquareOf(rookFile, rank)

		if b.pinned.Has(rookSq) {
			continue
		}

		mustBeSafe := BetweenInclusive(ourKing, kingDst)
		mustBeEmpty := mustBeSafe | BetweenInclusive(ourKing, rookSq) | rookDst.Bb()

		blockers := b.Occupied() ^ ourKing.Bb() ^ rookSq.Bb()

		if (mustBeEmpty&blockers).IsEmpty() && (mustBeSafe&b.attacked).IsEmpty() {
			if visitor(NewPieceMoves(Castle, King, ourKing, rookSq.Bb())) {
				return true
			}
		}
	}
	return false
}

// GenAllMoves collects all legal moves into a slice. Mostly used by
// tests, perft and root move setup; the search uses the visitor based
// generators.
func (b *Board) GenAllMoves() []Move {
	moves := make([]Move, 0, 64)
	b.GenMoves(func(pm PieceMoves) bool {
		for it := pm.Iter(); ; {
			m, ok := it.Next()
			if !ok {
				break
			}
			moves = append(moves, m)
		}
		return false
	})
	return moves
}
