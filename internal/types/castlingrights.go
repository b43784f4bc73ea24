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

// CastlingDirection selects the short (king side) or long (queen side)
// castle. The numeric values are the nibble shifts into CastlingRights.
type CastlingDirection uint8

// CastlingDirections
const (
	CastlingLong  CastlingDirection = 0
	CastlingShort CastlingDirection = 4
)

// KingDst returns the file the king lands on for this direction
func (d CastlingDirection) KingDst() File {
	if d == CastlingLong {
		return FileC
	}
	return FileG
}

// RookDst returns the file the rook lands on for this direction
func (d CastlingDirection) RookDst() File {
	if d == CastlingLong {
		return FileD
	}
	return FileF
}

// CastlingRights holds the castling rights of one side. To support
// Chess960 we store the original file of each rook rather than plain
// flags. The bits pack as:
//
//	Bits 0-2: long rook file
//	Bit  3:   long unavailable flag
//	Bits 4-6: short rook file
//	Bit  7:   short unavailable flag
//
// A nibble holds a valid castling file iff its value is in 0..8.
type CastlingRights uint8

// NoCastlingRights is the empty rights value (both nibbles invalid)
const NoCastlingRights CastlingRights = 0x88

// Get returns the rook file for the given direction or FileNone when
// the side may not castle in that direction.
func (cr CastlingRights) Get(d CastlingDirection) File {
	f := File((cr >> d) & 0xf)
	if !f.IsValid() {
		return FileNone
	}
	return f
}

// Set updates the rook file for the given direction. FileNone revokes
// the right.
func (cr *CastlingRights) Set(d CastlingDirection, f File) {
	v := CastlingRights(8)
	if f.IsValid() {
		v = CastlingRights(f)
	}
	*cr = (*cr &^ (0xf << d)) | v<<d
}

// Any returns true when the side may still castle in some direction
func (cr CastlingRights) Any() bool {
	return cr.Get(CastlingLong) != FileNone || cr.Get(CastlingShort) != FileNone
}
