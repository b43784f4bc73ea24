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

package search

import (
	"math"

	. "github.com/Sp00ph/icarus/internal/types"
)

// lmrTable holds the precomputed late move reductions indexed by
// [isTactic][depth][movesSeen], of the usual log(depth)*log(moves)
// shape with separate constants for quiet and tactical moves.
var lmrTable [2][MaxPly + 1][MaxMoves + 1]int8

func init() {
	for depth := 1; depth <= MaxPly; depth++ {
		for moves := 1; moves <= MaxMoves; moves++ {
			ld, lm := math.Log(float64(depth)), math.Log(float64(moves))
			lmrTable[0][depth][moves] = int8(0.8 + ld*lm/2.25)
			lmrTable[1][depth][moves] = int8(0.2 + ld*lm/3.35)
		}
	}
}

// lmr returns the reduction for the n-th move at the given depth
func lmr(isTactic bool, depth, movesSeen int) int {
	t := 0
	if isTactic {
		t = 1
	}
	if depth > MaxPly {
		depth = MaxPly
	}
	if movesSeen > MaxMoves {
		movesSeen = MaxMoves
	}
	return int(lmrTable[t][depth][movesSeen])
}
