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

import "fmt"

// Value represents the positional value of a chess position or a
// search score in centipawns. Mate scores are encoded close to the
// extremes so that distance to mate can be recovered.
type Value int16

// Value constants. ValueMate corresponds to "mate in 0 plies"; scores
// within MaxPly of it encode forced mates.
const (
	ValueZero Value = 0
	ValueDraw Value = 0

	ValueMate          Value = 16000
	ValueMateThreshold Value = ValueMate - 2*MaxPly

	ValueInfinite Value = ValueMate + 1
	ValueNA       Value = -ValueMate - 2
)

// ValueMateIn returns the value for the side to move giving mate in
// the given number of plies from the root.
func ValueMateIn(ply int) Value {
	return ValueMate - Value(ply)
}

// ValueMatedIn returns the value for the side to move being mated in
// the given number of plies from the root.
func ValueMatedIn(ply int) Value {
	return -ValueMateIn(ply)
}

// IsCheckMateValue returns true if the value encodes a forced mate
// for either side.
func (v Value) IsCheckMateValue() bool {
	a := v
	if a < 0 {
		a = -a
	}
	return a >= ValueMateThreshold && a <= ValueMate
}

// MateIn returns the signed number of plies to the mate this value
// encodes. Positive when the side to move mates, negative when it is
// mated. Only valid for mate values.
func (v Value) MateIn() int {
	if v > 0 {
		return int(ValueMate - v)
	}
	return -int(ValueMate + v)
}

// seeValues is the material scale of the static exchange evaluator.
// The king has no value: it can never be captured.
var seeValues = [PtLength]Value{100, 300, 300, 500, 900, 0}

// SeeValue returns the static exchange material value of a piece type
func SeeValue(pt PieceType) Value {
	return seeValues[pt]
}

// String returns the UCI score string of the value, "cp <n>" or
// "mate <moves>" with moves being the full move count ceiled.
func (v Value) String() string {
	if v.IsCheckMateValue() {
		ply := v.MateIn()
		var moves int
		if ply >= 0 {
			moves = (ply + 1) / 2
		} else {
			moves = (ply - 1) / 2
		}
		return fmt.Sprintf("mate %d", moves)
	}
	return fmt.Sprintf("cp %d", v)
}
