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

// PieceType is a type for the six chess piece types. The color of a
// piece is tracked separately (the board's color bitboards decide it),
// so a PieceType together with a Color fully describes a piece.
// The ordinals also classify the Zobrist sub hashes: Pawn has its own,
// Knight/Bishop/King count as minor, Rook/Queen as major.
type PieceType uint8

// PieceTypes
const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	PtNone

	// PtLength number of piece types
	PtLength = 6
)

var pieceTypeChars = "pnbrqk"

// IsValid checks if pt is a valid piece type
func (pt PieceType) IsValid() bool {
	return pt < PtNone
}

// Char returns the lower case character for the piece type as used in
// FEN and LAN promotion suffixes
func (pt PieceType) Char() string {
	if !pt.IsValid() {
		return "-"
	}
	return string(pieceTypeChars[pt])
}

// FenChar returns the FEN character for the piece type in the given
// color (upper case white, lower case black)
func (pt PieceType) FenChar(c Color) string {
	if !pt.IsValid() {
		return "-"
	}
	s := string(pieceTypeChars[pt])
	if c == White {
		return strings.ToUpper(s)
	}
	return s
}

// PieceTypeFromChar returns the piece type for a FEN or LAN character
// (either case) or PtNone if the character is not a piece letter.
func PieceTypeFromChar(ch byte) PieceType {
	idx := strings.IndexByte(pieceTypeChars, ch|0x20)
	if idx < 0 {
		return PtNone
	}
	return PieceType(idx)
}
