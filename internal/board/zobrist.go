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
	"math/bits"

	. "github.com/Sp00ph/icarus/internal/types"
)

// zobrist holds the process wide random keys. They are generated
// deterministically from a fixed 256-bit seed so that hashes are
// stable across runs and machines.
type zobristKeys struct {
	pieces      [ColorLength][PtLength][SqLength]Key
	blackToMove Key
	castles     [ColorLength][FileLength]Key
	enPassant   [FileLength]Key
}

var zobrist zobristKeys

// xoshiro256++ with a fixed seed; the classic public domain generator
// by Blackman and Vigna.
type xoshiro256pp [4]uint64

func (s *xoshiro256pp) next() uint64 {
	result := bits.RotateLeft64(s[0]+s[3], 23) + s[0]
	t := s[1] << 17

	s[2] ^= s[0]
	s[3] ^= s[1]
	s[1] ^= s[2]
	s[0] ^= s[3]

	s[2] ^= t
	s[3] = bits.RotateLeft64(s[3], 45)

	return result
}

func init() {
	rng := xoshiro256pp{
		0x9b388c2766f7a6c3,
		0xa7ea07dd648dc636,
		0x8b7eb148fafc6178,
		0xb5099720c02129c1,
	}

	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			for sq := SqA1; sq <= SqH8; sq++ {
				zobrist.pieces[c][pt][sq] = Key(rng.next())
			}
		}
		for f := FileA; f <= FileH; f++ {
			zobrist.castles[c][f] = Key(rng.next())
			zobrist.enPassant[f] = Key(rng.next())
		}
	}
	zobrist.blackToMove = Key(rng.next())
}
