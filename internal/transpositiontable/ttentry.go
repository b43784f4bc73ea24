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

package transpositiontable

import (
	. "github.com/Sp00ph/icarus/internal/types"
)

// Bound classifies a stored score relative to the search window
type Bound uint8

// Bounds
const (
	BoundNone Bound = iota
	BoundExact
	BoundLower
	BoundUpper
)

// Flags packs age (5 bits), a pv bit and the bound (2 bits) into one
// byte of the entry.
type Flags uint8

// NewFlags packs the flag byte
func NewFlags(age uint8, pv bool, bound Bound) Flags {
	f := Flags(age)<<3 | Flags(bound)
	if pv {
		f |= 1 << 2
	}
	return f
}

// Age returns the 5-bit generation counter
func (f Flags) Age() uint8 {
	return uint8(f) >> 3
}

// Pv returns the pv bit
func (f Flags) Pv() bool {
	return f&(1<<2) != 0
}

// Bound returns the bound kind
func (f Flags) Bound() Bound {
	return Bound(f & 3)
}

// Data is the unpacked 8-byte payload of a TT entry:
// eval (i16) | score (i16) | move (u16) | depth (u8) | flags (u8).
type Data struct {
	Eval  Value
	Score Value
	Move  Move
	Depth uint8
	Flags Flags
}

// pack serializes the payload into one little endian word
func (d Data) pack() uint64 {
	return uint64(uint16(d.Eval)) |
		uint64(uint16(d.Score))<<16 |
		uint64(d.Move)<<32 |
		uint64(d.Depth)<<48 |
		uint64(d.Flags)<<56
}

// unpack deserializes a payload word
func unpack(n uint64) Data {
	return Data{
		Eval:  Value(int16(uint16(n))),
		Score: Value(int16(uint16(n >> 16))),
		Move:  Move(uint16(n >> 32)),
		Depth: uint8(n >> 48),
		Flags: Flags(uint8(n >> 56)),
	}
}
