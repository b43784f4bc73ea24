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
	. "github.com/Sp00ph/icarus/internal/types"
)

// Limits are the search bounds of one go command. Unset integer
// limits are -1. A search with no limiting token at all is infinite.
type Limits struct {
	WhiteTime int64 // ms
	BlackTime int64 // ms
	WhiteInc  int64 // ms
	BlackInc  int64 // ms
	MoveTime  int64 // ms
	Depth     int
	Nodes     int64
	Infinite  bool

	// SearchMoves restricts the root to this list when non empty
	SearchMoves []Move
}

// NewLimits returns limits with all bounds unset
func NewLimits() Limits {
	return Limits{
		WhiteTime: -1,
		BlackTime: -1,
		WhiteInc:  -1,
		BlackInc:  -1,
		MoveTime:  -1,
		Depth:     -1,
		Nodes:     -1,
	}
}

// isInfinite returns true when no limiting token was given (an
// explicit "infinite" or an empty go command).
func (l *Limits) isInfinite() bool {
	return l.WhiteTime < 0 && l.BlackTime < 0 && l.MoveTime < 0 &&
		l.Depth < 0 && l.Nodes < 0
}

// timeInc returns base time and increment of the given color, with
// unset values mapped to the "no limit" extremes.
func (l *Limits) timeInc(c Color) (time, inc uint64) {
	t, i := l.WhiteTime, l.WhiteInc
	if c == Black {
		t, i = l.BlackTime, l.BlackInc
	}
	time = ^uint64(0)
	if t >= 0 {
		time = uint64(t)
	}
	if i > 0 {
		inc = uint64(i)
	}
	return time, inc
}
