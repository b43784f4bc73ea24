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

// Package movepicker yields the moves of a node one at a time in
// descending priority: TT move, good noisies (SEE gated), killer,
// history sorted quiets, then the stashed bad noisies. Moves are
// generated lazily per stage and scored once; nothing allocates per
// call.
package movepicker

import (
	"github.com/Sp00ph/icarus/internal/board"
	"github.com/Sp00ph/icarus/internal/history"
	"github.com/Sp00ph/icarus/internal/position"
	. "github.com/Sp00ph/icarus/internal/types"
)

// Stage of the picker state machine. The order of the constants is
// the yield order.
type Stage uint8

// Stages
const (
	StageTTMove Stage = iota
	StageGenNoisy
	StageYieldGoodNoisy
	StageKillerMove
	StageGenQuiet
	StageYieldQuiet
	StageYieldBadNoisy
)

// ScoredMove pairs a move with its ordering score
type ScoredMove struct {
	Move  Move
	Score int16
}

// MovePicker is the per node move ordering state machine
type MovePicker struct {
	moves [MaxMoves]ScoredMove
	n     int

	badNoisies int
	index      int
	stage      Stage

	skipQuiets     bool
	skipBadNoisies bool

	ttMove     Move
	killerMove Move

	seeThreshold Value
}

// New creates a picker. killerMove, if set, must be quiet; it is
// dropped when it equals the TT move. skipQuiets starts the picker in
// noisy-only mode (quiescence out of check); skipBadNoisies suppresses
// the final stage entirely.
func New(ttMove, killerMove Move, skipQuiets bool, seeThreshold Value, skipBadNoisies bool) MovePicker {
	if killerMove == ttMove {
		killerMove = MoveNone
	}
	return MovePicker{
		stage:          StageTTMove,
		skipQuiets:     skipQuiets,
		skipBadNoisies: skipBadNoisies,
		ttMove:         ttMove,
		killerMove:     killerMove,
		seeThreshold:   seeThreshold,
	}
}

// SkipQuiets tells the picker not to yield (further) quiet moves.
// Set by the late move, futility and history pruning of the caller.
func (mp *MovePicker) SkipQuiets() {
	mp.skipQuiets = true
	if mp.stage == StageGenQuiet || mp.stage == StageYieldQuiet {
		mp.index = 0
		mp.stage = StageYieldBadNoisy
	}
}

// Stage returns the current stage
func (mp *MovePicker) Stage() Stage {
	return mp.stage
}

// NoMoreQuiets returns true when no quiet move can be yielded anymore
func (mp *MovePicker) NoMoreQuiets() bool {
	return mp.skipQuiets || mp.stage > StageYieldQuiet
}

// pickBest finds the highest scored remaining move
func (mp *MovePicker) pickBest() int {
	best := mp.index
	for i := mp.index + 1; i < mp.n; i++ {
		if mp.moves[i].Score > mp.moves[best].Score {
			best = i
		}
	}
	return best
}

// Next yields the next move or MoveNone when the node is exhausted.
func (mp *MovePicker) Next(pos *position.Position, hist *history.History) Move {
	b := pos.Board()

	if mp.stage == StageTTMove {
		mp.stage = StageGenNoisy
		if mp.ttMove != MoveNone && b.IsLegal(mp.ttMove) {
			return mp.ttMove
		}
	}

	if mp.stage == StageGenNoisy {
		b.GenNoisyMoves(func(pm board.PieceMoves) bool {
			for it := pm.Iter(); ; {
				mv, ok := it.Next()
				if !ok {
					break
				}
				// the killer needs no filter here, it is quiet
				if mv != mp.ttMove {
					mp.moves[mp.n] = ScoredMove{Move: mv}
					mp.n++
				}
			}
			return false
		})

		for i := 0; i < mp.n; i++ {
			mv := mp.moves[i].Move
			score := hist.ScoreTactic(b, mv) / 32
			if victim := b.Captures(mv); victim != PtNone {
				score += int16(SeeValue(victim)) * 8
			}
			if promo := mv.PromotesTo(); promo != PtNone {
				score += int16(SeeValue(promo)-SeeValue(Pawn)) * 8
			}
			mp.moves[i].Score = score
		}

		mp.stage = StageYieldGoodNoisy
	}

	for mp.stage == StageYieldGoodNoisy {
		if mp.index == mp.n {
			mp.stage = StageKillerMove
			break
		}

		i := mp.pickBest()
		mv := mp.moves[i].Move
		mp.moves[mp.index], mp.moves[i] = mp.moves[i], mp.moves[mp.index]
		mp.index++

		if pos.CmpSee(mv, mp.seeThreshold) {
			return mv
		}

		// losing capture: stash at the bad noisies head
		mp.moves[mp.badNoisies], mp.moves[mp.index-1] = mp.moves[mp.index-1], mp.moves[mp.badNoisies]
		mp.badNoisies++
	}

	if mp.stage == StageKillerMove {
		mp.stage = StageGenQuiet
		if !mp.skipQuiets && mp.killerMove != MoveNone && b.IsLegal(mp.killerMove) {
			return mp.killerMove
		}
	}

	if mp.stage == StageGenQuiet {
		if !mp.skipQuiets {
			b.GenQuietMoves(func(pm board.PieceMoves) bool {
				for it := pm.Iter(); ; {
					mv, ok := it.Next()
					if !ok {
						break
					}
					if mv != mp.ttMove && mv != mp.killerMove {
						mp.moves[mp.n] = ScoredMove{Move: mv, Score: hist.ScoreQuiet(b, mv)}
						mp.n++
					}
				}
				return false
			})
		}
		mp.stage = StageYieldQuiet
	}

	if mp.stage == StageYieldQuiet {
		if mp.index < mp.n {
			i := mp.pickBest()
			mv := mp.moves[i].Move
			mp.moves[mp.index], mp.moves[i] = mp.moves[i], mp.moves[mp.index]
			mp.index++
			return mv
		}
		mp.index = 0
		mp.stage = StageYieldBadNoisy
	}

	// StageYieldBadNoisy
	if mp.skipBadNoisies || mp.index >= mp.badNoisies {
		return MoveNone
	}
	mv := mp.moves[mp.index].Move
	mp.index++
	return mv
}
