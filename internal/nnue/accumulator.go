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

package nnue

import (
	"github.com/Sp00ph/icarus/internal/board"
	. "github.com/Sp00ph/icarus/internal/types"
)

// Feature is one active input feature: a piece of a color on a square.
type Feature struct {
	Piece  PieceType
	Color  Color
	Square Square
}

// Idx returns the input index of the feature from the given
// perspective. Black's view mirrors ranks and colors; when the
// perspective's king stands on the e-h half the files are mirrored
// too (the horizontal king bucket).
func (f Feature) Idx(perspective Color, king Square) int {
	sq, col := f.Square, f.Color
	if perspective == Black {
		sq = sq.FlipRank()
		col = col.Flip()
		king = king.FlipRank()
	}
	if king.FileOf() > FileD {
		sq = sq ^ 7
	}
	return int(sq) + SqLength*(int(f.Piece)+int(PtLength)*int(col))
}

// Updates describes the feature changes of one move: up to two adds
// and two subs. Promotion is (1 add, 1 sub) plus the capture sub, en
// passant (1 add, 2 subs), castling (2 adds, 2 subs).
type Updates struct {
	Adds    [2]Feature
	Subs    [2]Feature
	NumAdds uint8
	NumSubs uint8
}

// AddPiece records a feature activation
func (u *Updates) AddPiece(sq Square, pt PieceType, c Color) {
	u.Adds[u.NumAdds] = Feature{Piece: pt, Color: c, Square: sq}
	u.NumAdds++
}

// RemovePiece records a feature deactivation
func (u *Updates) RemovePiece(sq Square, pt PieceType, c Color) {
	u.Subs[u.NumSubs] = Feature{Piece: pt, Color: c, Square: sq}
	u.NumSubs++
}

// MovePiece records a piece relocation
func (u *Updates) MovePiece(from, to Square, pt PieceType, c Color) {
	u.RemovePiece(from, pt, c)
	u.AddPiece(to, pt, c)
}

// Accumulator is one stack frame: the per perspective hidden layer
// values, per perspective dirty flags and the updates that transform
// this frame into its successor.
type Accumulator struct {
	Values  [ColorLength][HL]int16
	Dirty   [ColorLength]bool
	Updates Updates
}

// Nnue owns the accumulator stack of one search thread. The stack
// moves in lockstep with the search: MakeMove pushes a dirty frame
// with its update list, UnmakeMove pops, and Eval lazily replays the
// updates from the nearest clean ancestor.
type Nnue struct {
	stack   [MaxPly + 1]Accumulator
	idx     int
	network *Network
}

// NewNnue creates an accumulator stack for the given board
func NewNnue(b *board.Board, network *Network) *Nnue {
	n := &Nnue{network: network}
	n.FullReset(b)
	return n
}

// FullReset rewinds the stack and refreshes both perspectives from
// the mailbox.
func (n *Nnue) FullReset(b *board.Board) {
	n.idx = 0
	n.reset(b, White)
	n.reset(b, Black)
}

// reset recomputes the current frame for one perspective from scratch
func (n *Nnue) reset(b *board.Board, perspective Color) {
	acc := &n.stack[n.idx]
	acc.Values[perspective] = n.network.FtBias
	king := b.King(perspective)

	for bb := b.Occupied(); !bb.IsEmpty(); {
		sq := bb.PopLsb()
		pt := b.PieceOn(sq)
		color := White
		if b.OccupiedBy(Black).Has(sq) {
			color = Black
		}
		f := Feature{Piece: pt, Color: color, Square: sq}
		accAdd(&acc.Values[perspective], n.network, f.Idx(perspective, king))
	}
	acc.Dirty[perspective] = false
}

// MakeMove pushes a new dirty frame recording the feature changes of
// the move. Must be called with the boards before and after the move.
// When a king crosses the d/e border its perspective is fully
// refreshed instead.
func (n *Nnue) MakeMove(oldBoard, newBoard *board.Board, mv Move) {
	var updates Updates
	from, to := mv.From(), mv.To()
	piece := oldBoard.MovedPiece(mv)
	stm := oldBoard.Stm()

	// kingTo is the square our king ends up on; for castling that is
	// the canonical destination file, not the encoded rook square.
	kingTo := to

	switch {
	case mv.Flag() == Castle:
		dir := CastlingShort
		if to.FileOf() < from.FileOf() {
			dir = CastlingLong
		}
		rank := from.RankOf()
		kingTo = SquareOf(dir.KingDst(), rank)
		updates.MovePiece(from, kingTo, King, stm)
		updates.MovePiece(to, SquareOf(dir.RookDst(), rank), Rook, stm)
	case mv.Flag() == Promotion:
		updates.RemovePiece(from, Pawn, stm)
		updates.AddPiece(to, mv.PromotesTo(), stm)
	default:
		updates.MovePiece(from, to, piece, stm)
	}

	if mv.Flag() == EnPassant {
		victimSq := SquareOf(to.FileOf(), from.RankOf())
		updates.RemovePiece(victimSq, Pawn, stm.Flip())
	} else if victim := oldBoard.Captures(mv); victim != PtNone {
		updates.RemovePiece(to, victim, stm.Flip())
	}

	n.stack[n.idx].Updates = updates
	n.stack[n.idx+1].Dirty[White] = true
	n.stack[n.idx+1].Dirty[Black] = true
	n.idx++

	if piece == King && (from.FileOf() > FileD) != (kingTo.FileOf() > FileD) {
		n.reset(newBoard, stm)
	}
}

// MakeNullMove pushes a frame with no feature changes
func (n *Nnue) MakeNullMove() {
	n.stack[n.idx].Updates = Updates{}
	n.stack[n.idx+1].Dirty[White] = true
	n.stack[n.idx+1].Dirty[Black] = true
	n.idx++
}

// UnmakeMove pops the current frame
func (n *Nnue) UnmakeMove() {
	n.idx--
}

// update makes the current frame clean for both perspectives by
// replaying the recorded updates forward from the nearest clean
// ancestor. Amortized O(1) per ply.
func (n *Nnue) update(b *board.Board) {
	for _, perspective := range [2]Color{White, Black} {
		if n.stack[n.idx].Dirty[perspective] {
			n.updateColor(perspective, b.King(perspective))
		}
	}
}

func (n *Nnue) updateColor(perspective Color, king Square) {
	cleanIdx := n.idx - 1
	for n.stack[cleanIdx].Dirty[perspective] {
		cleanIdx--
	}

	for idx := cleanIdx; idx < n.idx; idx++ {
		clean := &n.stack[idx]
		dirty := &n.stack[idx+1]
		src := &clean.Values[perspective]
		dst := &dirty.Values[perspective]
		u := &clean.Updates

		switch {
		case u.NumAdds == 1 && u.NumSubs == 1:
			accAddSub(src, dst, n.network,
				u.Adds[0].Idx(perspective, king),
				u.Subs[0].Idx(perspective, king))
		case u.NumAdds == 1 && u.NumSubs == 2:
			accAddSub2(src, dst, n.network,
				u.Adds[0].Idx(perspective, king),
				u.Subs[0].Idx(perspective, king),
				u.Subs[1].Idx(perspective, king))
		case u.NumAdds == 2 && u.NumSubs == 2:
			accAdd2Sub2(src, dst, n.network,
				u.Adds[0].Idx(perspective, king),
				u.Adds[1].Idx(perspective, king),
				u.Subs[0].Idx(perspective, king),
				u.Subs[1].Idx(perspective, king))
		default:
			// null move: plain copy
			*dst = *src
		}
		dirty.Dirty[perspective] = false
	}
}

// Eval returns the network evaluation of the board in centipawns from
// the side to move's point of view.
func (n *Nnue) Eval(b *board.Board) Value {
	n.update(b)
	acc := &n.stack[n.idx]
	stm := b.Stm()
	us, them := &acc.Values[stm], &acc.Values[stm.Flip()]
	return Value(forward(us, them, n.network))
}
