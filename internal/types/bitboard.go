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

import (
	"math/bits"
	"strings"
)

// Bitboard is a set of squares as a 64-bit integer. Bit 8*rank+file is
// the presence bit of the corresponding square. All board queries
// reduce to bit tricks on this type.
type Bitboard uint64

// Bitboard constants
const (
	BbZero Bitboard = 0
	BbAll  Bitboard = 0xFFFF_FFFF_FFFF_FFFF

	FileA_Bb Bitboard = 0x0101_0101_0101_0101
	FileH_Bb Bitboard = FileA_Bb << 7
	Rank1_Bb Bitboard = 0xFF
	Rank8_Bb Bitboard = Rank1_Bb << 56

	LightSquares Bitboard = 0x55AA_55AA_55AA_55AA
	DarkSquares  Bitboard = ^LightSquares
)

// Has tests if the given square is part of the bitboard
func (b Bitboard) Has(sq Square) bool {
	return b&sq.Bb() != 0
}

// PopCount returns the number of set squares
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(uint64(b))
}

// Lsb returns the least significant set square or SqNone on the
// empty bitboard.
func (b Bitboard) Lsb() Square {
	return Square(bits.TrailingZeros64(uint64(b)))
}

// PopLsb returns the least significant set square and removes it from
// the bitboard. Returns SqNone on the empty bitboard.
func (b *Bitboard) PopLsb() Square {
	sq := b.Lsb()
	*b &= *b - 1
	return sq
}

// IsEmpty returns true when no square is set
func (b Bitboard) IsEmpty() bool {
	return b == 0
}

// single step shifts. The file masks keep shifted squares from
// wrapping around the board edges.

// ShiftNorth shifts all squares one rank up
func (b Bitboard) ShiftNorth() Bitboard {
	return b << 8
}

// ShiftSouth shifts all squares one rank down
func (b Bitboard) ShiftSouth() Bitboard {
	return b >> 8
}

// ShiftEast shifts all squares one file right
func (b Bitboard) ShiftEast() Bitboard {
	return (b &^ FileH_Bb) << 1
}

// ShiftWest shifts all squares one file left
func (b Bitboard) ShiftWest() Bitboard {
	return (b &^ FileA_Bb) >> 1
}

// ShiftNorthEast shifts all squares one rank up and one file right
func (b Bitboard) ShiftNorthEast() Bitboard {
	return (b &^ FileH_Bb) << 9
}

// ShiftNorthWest shifts all squares one rank up and one file left
func (b Bitboard) ShiftNorthWest() Bitboard {
	return (b &^ FileA_Bb) << 7
}

// ShiftSouthEast shifts all squares one rank down and one file right
func (b Bitboard) ShiftSouthEast() Bitboard {
	return (b &^ FileH_Bb) >> 7
}

// ShiftSouthWest shifts all squares one rank down and one file left
func (b Bitboard) ShiftSouthWest() Bitboard {
	return (b &^ FileA_Bb) >> 9
}

// precomputed diagonals through each square
var (
	mainDiagBb [SqLength]Bitboard // a1-h8 direction
	antiDiagBb [SqLength]Bitboard // h1-a8 direction
)

// MainDiagFor returns the a1-h8 diagonal through the given square
func MainDiagFor(sq Square) Bitboard {
	return mainDiagBb[sq]
}

// AntiDiagFor returns the h1-a8 diagonal through the given square
func AntiDiagFor(sq Square) Bitboard {
	return antiDiagBb[sq]
}

// initBb precomputes the per square diagonal bitboards
func initBb() {
	for sq := SqA1; sq <= SqH8; sq++ {
		var main, anti Bitboard
		f, r := int(sq.FileOf()), int(sq.RankOf())
		for i := -7; i <= 7; i++ {
			if s := Square(0).tryOffsetFrom(f+i, r+i); s != SqNone {
				main |= s.Bb()
			}
			if s := Square(0).tryOffsetFrom(f+i, r-i); s != SqNone {
				anti |= s.Bb()
			}
		}
		mainDiagBb[sq] = main
		antiDiagBb[sq] = anti
	}
}

// tryOffsetFrom builds a square from raw file/rank ints, SqNone when
// off board. Receiver is ignored; keeps the helper close to tryOffset.
func (Square) tryOffsetFrom(f, r int) Square {
	if f < 0 || f > 7 || r < 0 || r > 7 {
		return SqNone
	}
	return SquareOf(File(f), Rank(r))
}

// String returns a string representation of the 64 bits
func (b Bitboard) StringBits() string {
	var os strings.Builder
	for r := Rank8; r.IsValid(); r-- {
		for f := FileA; f.IsValid(); f++ {
			if b.Has(SquareOf(f, r)) {
				os.WriteString("1 ")
			} else {
				os.WriteString(". ")
			}
		}
		os.WriteString("\n")
		if r == Rank1 {
			break
		}
	}
	return os.String()
}
