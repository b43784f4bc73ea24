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

// Package history provides the move ordering and evaluation
// correction tables updated during search. Each search thread owns
// its own History; nothing in here is shared.
package history

import (
	"github.com/Sp00ph/icarus/internal/board"
	. "github.com/Sp00ph/icarus/internal/types"
)

const (
	maxHistValue = 16384
	maxCorrValue = 1024

	corrSize = 16384

	bonusBase  = 128
	bonusScale = 128
	bonusMax   = 2048
)

// History holds the butterfly quiet history, the tactic history and
// the correction history tables of one search thread.
type History struct {
	// quiet history indexed [stm][from][from attacked][to][to attacked]
	quiet [ColorLength][SqLength][2][SqLength][2]int16

	// tactic history indexed [stm][piece][to][captured piece type]
	// (PtNone for promotions and quiet-shaped noisies)
	tactic [ColorLength][PtLength][SqLength][PtLength + 1]int16

	// correction histories indexed [stm][sub hash % corrSize]
	pawnCorr         [ColorLength][corrSize]int16
	minorCorr        [ColorLength][corrSize]int16
	majorCorr        [ColorLength][corrSize]int16
	whiteNonPawnCorr [ColorLength][corrSize]int16
	blackNonPawnCorr [ColorLength][corrSize]int16
}

// NewHistory creates zeroed history tables
func NewHistory() *History {
	return &History{}
}

// Clear resets all tables, used on ucinewgame
func (h *History) Clear() {
	*h = History{}
}

func attackedIdx(b *board.Board, sq Square) int {
	if b.Attacked().Has(sq) {
		return 1
	}
	return 0
}

// ScoreQuiet returns the butterfly history score of a quiet move
func (h *History) ScoreQuiet(b *board.Board, mv Move) int16 {
	return h.quiet[b.Stm()][mv.From()][attackedIdx(b, mv.From())][mv.To()][attackedIdx(b, mv.To())]
}

func (h *History) quietPtr(b *board.Board, mv Move) *int16 {
	return &h.quiet[b.Stm()][mv.From()][attackedIdx(b, mv.From())][mv.To()][attackedIdx(b, mv.To())]
}

// ScoreTactic returns the tactic history score of a noisy move
func (h *History) ScoreTactic(b *board.Board, mv Move) int16 {
	return *h.tacticPtr(b, mv)
}

func (h *History) tacticPtr(b *board.Board, mv Move) *int16 {
	victim := b.Captures(mv)
	idx := int(PtLength)
	if victim != PtNone {
		idx = int(victim)
	}
	return &h.tactic[b.Stm()][b.MovedPiece(mv)][mv.To()][idx]
}

// Update awards a gravity bonus to the move that failed high and a
// malus to the quiets and tactics tried before it.
func (h *History) Update(b *board.Board, mv Move, quiets, tactics []Move, depth int) {
	bonus := clampInt(bonusBase+depth*bonusScale, bonusMax)
	malus := clampInt(bonusBase+depth*bonusScale, bonusMax)

	if b.IsTactic(mv) {
		updateValue(h.tacticPtr(b, mv), int32(bonus))
	} else {
		updateValue(h.quietPtr(b, mv), int32(bonus))
		for _, quiet := range quiets {
			updateValue(h.quietPtr(b, quiet), -int32(malus))
		}
	}
	for _, tactic := range tactics {
		updateValue(h.tacticPtr(b, tactic), -int32(malus))
	}
}

// Corr returns the blended correction history adjustment for the
// static eval of the position.
func (h *History) Corr(b *board.Board) Value {
	const factor = 64

	stm := b.Stm()
	var corr int32
	corr += int32(h.pawnCorr[stm][uint64(b.PawnHash())%corrSize]) * factor
	corr += int32(h.minorCorr[stm][uint64(b.MinorHash())%corrSize]) * factor
	corr += int32(h.majorCorr[stm][uint64(b.MajorHash())%corrSize]) * factor
	corr += int32(h.whiteNonPawnCorr[stm][uint64(b.NonPawnHash(White))%corrSize]) * factor
	corr += int32(h.blackNonPawnCorr[stm][uint64(b.NonPawnHash(Black))%corrSize]) * factor

	return Value(corr / maxCorrValue)
}

// UpdateCorr feeds the difference between the search result and the
// static eval back into all correction tables.
func (h *History) UpdateCorr(b *board.Board, depth int, score, staticEval Value) {
	const scale = 128

	stm := b.Stm()
	delta := int32(score) - int32(staticEval)
	amount := delta * int32(depth) * scale / 1024

	updateCorrValue(&h.pawnCorr[stm][uint64(b.PawnHash())%corrSize], amount)
	updateCorrValue(&h.minorCorr[stm][uint64(b.MinorHash())%corrSize], amount)
	updateCorrValue(&h.majorCorr[stm][uint64(b.MajorHash())%corrSize], amount)
	updateCorrValue(&h.whiteNonPawnCorr[stm][uint64(b.NonPawnHash(White))%corrSize], amount)
	updateCorrValue(&h.blackNonPawnCorr[stm][uint64(b.NonPawnHash(Black))%corrSize], amount)
}

// updateValue applies the history gravity formula: new entries decay
// old ones proportionally so values stay within +-maxHistValue.
func updateValue(value *int16, amount int32) {
	if amount > maxHistValue {
		amount = maxHistValue
	} else if amount < -maxHistValue {
		amount = -maxHistValue
	}
	decay := int32(*value) * abs32(amount) / maxHistValue
	*value += int16(amount - decay)
}

func updateCorrValue(value *int16, amount int32) {
	if amount > maxCorrValue/4 {
		amount = maxCorrValue / 4
	} else if amount < -maxCorrValue/4 {
		amount = -maxCorrValue / 4
	}
	decay := int32(*value) * abs32(amount) / maxCorrValue
	*value += int16(amount - decay)
}

func clampInt(v, max int) int {
	if v > max {
		return max
	}
	return v
}

func abs32(n int32) int32 {
	if n < 0 {
		return -n
	}
	return n
}
