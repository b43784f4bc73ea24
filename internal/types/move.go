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

import "strings"

// Move is a 16-bit packed value encoding a chess move.
//
//	Bits 0-5:   from square
//	     6-11:  to square
//	     12-13: move flag
//	     14-15: promotion piece type (N, B, R, Q)
//
// Castling is encoded as king takes own rook, which works identically
// for standard chess and Chess960. Because from and to square are
// always distinct, a valid move is always nonzero and the all-zero
// value is reserved as MoveNone.
type Move uint16

// MoveNone empty non valid move
const MoveNone Move = 0

// MoveFlag is the 2-bit move kind of a Move
type MoveFlag uint8

// MoveFlags
const (
	Normal MoveFlag = iota
	Castle
	EnPassant
	Promotion
)

const (
	toShift    = 6
	flagShift  = 12
	promoShift = 14
)

// NewMove returns an encoded Move instance. Must not be used for
// promotions, they carry the promotion piece type (see NewPromotion).
func NewMove(from, to Square, flag MoveFlag) Move {
	return Move(from) | Move(to)<<toShift | Move(flag)<<flagShift
}

// NewPromotion returns an encoded promotion Move instance.
func NewPromotion(from, to Square, promoteTo PieceType) Move {
	return Move(from) | Move(to)<<toShift | Move(Promotion)<<flagShift |
		Move(promoteTo-Knight)<<promoShift
}

// From returns the from-square of the move
func (m Move) From() Square {
	return Square(m & 0x3f)
}

// To returns the to-square of the move. For castling this is the
// square of the castled-with rook.
func (m Move) To() Square {
	return Square((m >> toShift) & 0x3f)
}

// Flag returns the move kind
func (m Move) Flag() MoveFlag {
	return MoveFlag((m >> flagShift) & 0x3)
}

// PromotesTo returns the promotion piece type or PtNone when the move
// is not a promotion.
func (m Move) PromotesTo() PieceType {
	if m.Flag() != Promotion {
		return PtNone
	}
	return m.promotesToUnchecked()
}

// promotesToUnchecked returns the promotion piece type bits. Arbitrary
// when the move is not a promotion.
func (m Move) promotesToUnchecked() PieceType {
	return PieceType((m>>promoShift)&0x3) + Knight
}

// StringUci returns the long algebraic notation of the move. A castling
// move is rendered king-to-G/C in standard chess and king-takes-rook
// in Chess960 mode.
func (m Move) StringUci(chess960 bool) string {
	if m == MoveNone {
		return "0000"
	}
	from, to := m.From(), m.To()
	if !chess960 && m.Flag() == Castle {
		toFile := FileG
		if to.FileOf() < from.FileOf() {
			toFile = FileC
		}
		to = SquareOf(toFile, from.RankOf())
	}
	var os strings.Builder
	os.WriteString(from.String())
	os.WriteString(to.String())
	if m.Flag() == Promotion {
		os.WriteString(m.promotesToUnchecked().Char())
	}
	return os.String()
}

// String returns the Chess960 flavor of StringUci which is unambiguous
// for debug output.
func (m Move) String() string {
	return m.StringUci(true)
}
