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

// EnPassantFile is a bit packed type containing information about
// which file we can take en passant on, and which pawns can take.
// After making a move we only set the en passant file if it can
// legally be taken. By storing the attacker information alongside it
// we can skip a redundant legality check when generating the next
// moves.
//
//	Bits 0-2: file
//	       3: left may take
//	       4: right may take
//
// At least one of bits 3 and 4 is always set, so a valid value is
// never zero and the zero value means "no en passant".
type EnPassantFile uint8

// EpNone means no en passant capture is available
const EpNone EnPassantFile = 0

// NewEnPassantFile packs file and attacker flags. At least one flag
// must be set.
func NewEnPassantFile(f File, left, right bool) EnPassantFile {
	ep := EnPassantFile(f)
	if left {
		ep |= 1 << 3
	}
	if right {
		ep |= 1 << 4
	}
	return ep
}

// IsSet returns true when an en passant capture is available
func (ep EnPassantFile) IsSet() bool {
	return ep != EpNone
}

// FileOf returns the en passant file
func (ep EnPassantFile) FileOf() File {
	return File(ep & 7)
}

// AttackerBb returns the squares of the stm pawns that may capture
// en passant.
func (ep EnPassantFile) AttackerBb(stm Color) Bitboard {
	rank := Rank5.RelativeTo(stm)
	epSq := SquareOf(ep.FileOf(), rank)

	var bb Bitboard
	if ep&(1<<3) != 0 {
		bb |= (epSq - 1).Bb()
	}
	if ep&(1<<4) != 0 {
		bb |= (epSq + 1).Bb()
	}
	return bb
}
