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
	"github.com/Sp00ph/icarus/internal/board"
	. "github.com/Sp00ph/icarus/internal/config"
	"github.com/Sp00ph/icarus/internal/movepicker"
	"github.com/Sp00ph/icarus/internal/position"
	tt "github.com/Sp00ph/icarus/internal/transpositiontable"
	. "github.com/Sp00ph/icarus/internal/types"
	"github.com/Sp00ph/icarus/internal/util"
)

// nodeType discriminates the three search node kinds. The kinds only
// differ in which pruning and cutoff branches are enabled, never in
// visible behavior. Children of Root and PV nodes searched with a
// full window are PV; everything below a null window is NonPV.
type nodeType uint8

const (
	nodeRoot nodeType = iota
	nodePV
	nodeNonPV
)

// search is the recursive principal variation search.
func (t *ThreadCtx) search(pos *position.Position, nt nodeType, depth, ply int, alpha, beta Value) Value {
	// bail out as fast as possible when the search must stop; the
	// unwound scores are never used.
	if nt != nodeRoot && (t.abortNow || t.global.TimeManager.StopSearch(t.nodes)) {
		t.abortNow = true
		return ValueZero
	}

	if ply > t.selDepth {
		t.selDepth = ply
	}
	t.nodes.Inc()

	ss := &t.stack[ply]
	if nt != nodeNonPV {
		ss.pv = ss.pv[:0]
	}

	b := pos.Board()
	inCheck := !b.Checkers().IsEmpty()

	if nt != nodeRoot {
		switch b.TerminalState() {
		case board.TerminalCheckmate:
			return ValueMatedIn(ply)
		case board.TerminalDraw:
			return ValueDraw
		}
		if pos.Repetition() {
			return ValueDraw
		}
	}

	if ply >= MaxPly {
		return clampNoMate(t.nnue.Eval(b))
	}

	if depth <= 0 {
		return t.qsearch(pos, nt, ply, alpha, beta)
	}

	excluded := ss.excluded

	// transposition table probe. A singular re-search runs with the
	// TT move excluded and must not cut on its own entry.
	var ttData tt.Data
	ttHit := false
	if excluded == MoveNone {
		ttData, ttHit = t.tt.Fetch(b.Hash(), ply)
	}

	if nt == nodeNonPV && ttHit && int(ttData.Depth) >= depth {
		switch ttData.Flags.Bound() {
		case tt.BoundExact:
			return ttData.Score
		case tt.BoundLower:
			if ttData.Score >= beta {
				return ttData.Score
			}
		case tt.BoundUpper:
			if ttData.Score <= alpha {
				return ttData.Score
			}
		}
	}

	// static eval with the correction history adjustment. In check
	// there is no meaningful static eval.
	rawEval := ValueNA
	staticEval := ValueNA
	if !inCheck {
		if ttHit && ttData.Eval != ValueNA {
			rawEval = ttData.Eval
		} else {
			rawEval = t.nnue.Eval(b)
		}
		staticEval = clampNoMate(rawEval + t.history.Corr(b))
	}
	ss.staticEval = staticEval

	// improving: is the static eval better than it was two (or four)
	// plies ago?
	improving := false
	if !inCheck {
		switch {
		case ply >= 2 && t.stack[ply-2].staticEval != ValueNA:
			improving = staticEval > t.stack[ply-2].staticEval
		case ply >= 4 && t.stack[ply-4].staticEval != ValueNA:
			improving = staticEval > t.stack[ply-4].staticEval
		}
	}
	improvingInt := 0
	if improving {
		improvingInt = 1
	}

	// reverse futility pruning: a small depth whose eval beats beta
	// by a margin is assumed to hold.
	if nt == nodeNonPV && !inCheck && excluded == MoveNone &&
		depth < Settings.Search.RfpDepth &&
		staticEval-Value(Settings.Search.RfpMargin*util.Max(0, depth-improvingInt)) >= beta {
		return staticEval
	}

	// null move pruning: giving the opponent a free move and still
	// beating beta means this node almost certainly does too.
	if nt == nodeNonPV && !inCheck && excluded == MoveNone &&
		depth >= Settings.Search.NmpDepth && staticEval >= beta &&
		(pos.Ply() == 0 || pos.PrevMove(1) != MoveNone) {
		reduction := 3 + depth/3

		pos.MakeNullMove()
		t.nnue.MakeNullMove()
		score := -t.search(pos, nodeNonPV, depth-reduction, ply+1, -beta, -beta+1)
		t.nnue.UnmakeMove()
		pos.UnmakeMove()

		if t.abortNow {
			return ValueZero
		}
		if score >= beta {
			return beta
		}
	}

	ttMove := MoveNone
	if ttHit {
		ttMove = ttData.Move
	}

	mp := movepicker.New(ttMove, ss.killer, false, 0, false)

	var quiets, tactics []Move
	bestScore := -ValueInfinite
	bestMove := MoveNone
	bound := tt.BoundUpper
	movesSeen := 0

	for {
		mv := mp.Next(pos, t.history)
		if mv == MoveNone {
			break
		}
		if mv == excluded {
			continue
		}
		if nt == nodeRoot && !containsMove(t.rootMoves, mv) {
			continue
		}

		isQuiet := !b.IsTactic(mv)
		lmrDepth := util.Max(0, depth-1-lmr(!isQuiet, depth, movesSeen+1))

		// prunings before the move is made. Never at root, and only
		// once a real score backs the node.
		if nt != nodeRoot && bestScore > -ValueMateThreshold {
			// late move pruning
			if !mp.NoMoreQuiets() {
				lmpLimit := Settings.Search.LmpBase + 1024*lmrDepth*lmrDepth/(2-improvingInt)
				if movesSeen*1024 >= lmpLimit {
					mp.SkipQuiets()
					if isQuiet {
						continue
					}
				}
			}

			// futility pruning
			if nt == nodeNonPV && !inCheck && lmrDepth <= Settings.Search.FpDepth &&
				staticEval+Value(Settings.Search.FpBase+Settings.Search.FpMargin*lmrDepth) <= alpha {
				mp.SkipQuiets()
				if isQuiet {
					continue
				}
			}

			// history pruning
			if isQuiet && depth <= Settings.Search.HistPrunDepth &&
				int(t.history.ScoreQuiet(b, mv)) < Settings.Search.HistPruning*lmrDepth {
				mp.SkipQuiets()
				continue
			}

			// SEE pruning
			if nt == nodeNonPV {
				if !isQuiet && depth <= Settings.Search.SeeNoisyDepth &&
					mp.Stage() > movepicker.StageYieldGoodNoisy &&
					!pos.CmpSee(mv, Value(Settings.Search.SeeNoisyMargin*depth)) {
					continue
				}
				if isQuiet && lmrDepth <= Settings.Search.SeeQuietDepth &&
					!pos.CmpSee(mv, Value(Settings.Search.SeeQuietMargin*lmrDepth)) {
					continue
				}
			}
		}

		// singular extension: when the TT move alone holds well above
		// every alternative, extend it; when the exclusion search
		// still fails high, several moves beat beta and we multi-cut.
		extension := 0
		if nt != nodeRoot && excluded == MoveNone &&
			depth >= Settings.Search.SingularDepth &&
			ttHit && mv == ttMove &&
			int(ttData.Depth) >= depth-3 &&
			ttData.Flags.Bound() != tt.BoundUpper &&
			!ttData.Score.IsCheckMateValue() {

			sBeta := ttData.Score - Value(Settings.Search.SingularMargin*depth)

			ss.excluded = mv
			sScore := t.search(pos, nodeNonPV, (depth-1)/2, ply, sBeta-1, sBeta)
			ss.excluded = MoveNone

			if t.abortNow {
				return ValueZero
			}

			switch {
			case sScore < sBeta:
				extension = 1
				if nt == nodeNonPV && sScore+20 < sBeta {
					extension = 2
				}
			case sScore >= beta:
				return sBeta
			case ttData.Score >= beta:
				extension = -1
			}
		}

		newDepth := depth - 1 + extension

		nodesBefore := t.nodes.Local()
		oldBoard := *b
		pos.MakeMove(mv)
		t.nnue.MakeMove(&oldBoard, pos.Board(), mv)
		movesSeen++

		var score Value
		if movesSeen == 1 {
			// the first move of a PV or root node is the assumed PV
			childNt := nodePV
			if nt == nodeNonPV {
				childNt = nodeNonPV
			}
			score = -t.search(pos, childNt, newDepth, ply+1, -beta, -alpha)
		} else {
			// late moves are searched with a null window at reduced
			// depth first
			reduction := 0
			if depth >= 3 && movesSeen > 1 {
				reduction = util.Clamp(lmr(!isQuiet, depth, movesSeen), 0, newDepth-1)
			}

			score = -t.search(pos, nodeNonPV, newDepth-reduction, ply+1, -alpha-1, -alpha)
			if score > alpha && reduction > 0 {
				score = -t.search(pos, nodeNonPV, newDepth, ply+1, -alpha-1, -alpha)
			}
			if score > alpha && nt != nodeNonPV {
				score = -t.search(pos, nodePV, newDepth, ply+1, -beta, -alpha)
			}
		}

		t.nnue.UnmakeMove()
		pos.UnmakeMove()

		if t.abortNow {
			return ValueZero
		}

		if nt == nodeRoot {
			t.rootMoveNodes[mv] += t.nodes.Local() - nodesBefore
		}

		if score > bestScore {
			bestScore = score
			if score > alpha {
				alpha = score
				bestMove = mv
				bound = tt.BoundExact

				if nt != nodeNonPV {
					child := &t.stack[ply+1]
					ss.pv = append(ss.pv[:0], mv)
					ss.pv = append(ss.pv, child.pv...)
				}
			}
		}

		if score >= beta {
			bound = tt.BoundLower
			t.history.Update(b, mv, quiets, tactics, depth)
			if isQuiet {
				ss.killer = mv
			}
			break
		}

		// remember tried moves for the history malus
		if isQuiet {
			quiets = append(quiets, mv)
		} else {
			tactics = append(tactics, mv)
		}
	}

	if movesSeen == 0 {
		// every move was excluded or pruned away (the no-legal-move
		// cases returned at the terminal check already)
		return alpha
	}

	if excluded == MoveNone {
		t.tt.Store(b.Hash(), depth, ply, rawEval, bestScore, bestMove, bound, nt != nodeNonPV)

		// correction history: only meaningful without check, for
		// quiet-or-none best moves, and when the score direction
		// matches the bound.
		if !inCheck && (bestMove == MoveNone || !b.IsTactic(bestMove)) &&
			!(bound == tt.BoundLower && bestScore <= staticEval) &&
			!(bound == tt.BoundUpper && bestScore >= staticEval) {
			t.history.UpdateCorr(b, depth, bestScore, staticEval)
		}
	}

	return bestScore
}

// qsearch resolves captures until the position is quiet. Depth is not
// tracked; the stand pat score floors the result when not in check,
// and out of check at most a few non losing moves are tried.
func (t *ThreadCtx) qsearch(pos *position.Position, nt nodeType, ply int, alpha, beta Value) Value {
	if t.abortNow || t.global.TimeManager.StopSearch(t.nodes) {
		t.abortNow = true
		return ValueZero
	}

	if ply > t.selDepth {
		t.selDepth = ply
	}
	t.nodes.Inc()

	b := pos.Board()
	inCheck := !b.Checkers().IsEmpty()

	switch b.TerminalState() {
	case board.TerminalCheckmate:
		return ValueMatedIn(ply)
	case board.TerminalDraw:
		return ValueDraw
	}
	if pos.Repetition() {
		return ValueDraw
	}

	if ply >= MaxPly {
		return clampNoMate(t.nnue.Eval(b))
	}

	// TT probe: quiescence accepts cutoffs from any depth
	ttData, ttHit := t.tt.Fetch(b.Hash(), ply)
	if nt == nodeNonPV && ttHit {
		switch ttData.Flags.Bound() {
		case tt.BoundExact:
			return ttData.Score
		case tt.BoundLower:
			if ttData.Score >= beta {
				return ttData.Score
			}
		case tt.BoundUpper:
			if ttData.Score <= alpha {
				return ttData.Score
			}
		}
	}

	rawEval := ValueNA
	bestScore := -ValueInfinite
	if !inCheck {
		// stand pat: the side to move may simply decline the
		// exchange
		if ttHit && ttData.Eval != ValueNA {
			rawEval = ttData.Eval
		} else {
			rawEval = t.nnue.Eval(b)
		}
		bestScore = clampNoMate(rawEval + t.history.Corr(b))
		if bestScore >= beta {
			return bestScore
		}
		if bestScore > alpha {
			alpha = bestScore
		}
	}

	ttMove := MoveNone
	if ttHit && ttData.Move != MoveNone && (inCheck || b.IsTactic(ttData.Move)) {
		ttMove = ttData.Move
	}

	mp := movepicker.New(ttMove, MoveNone, !inCheck, 0, !inCheck)

	bound := tt.BoundUpper
	bestMove := MoveNone
	movesSeen := 0

	for {
		// out of check a few non losing captures are enough
		if !inCheck && movesSeen >= Settings.Search.QsMoveLimit {
			break
		}

		mv := mp.Next(pos, t.history)
		if mv == MoveNone {
			break
		}

		oldBoard := *b
		pos.MakeMove(mv)
		t.nnue.MakeMove(&oldBoard, pos.Board(), mv)
		movesSeen++

		score := -t.qsearch(pos, nt, ply+1, -beta, -alpha)

		t.nnue.UnmakeMove()
		pos.UnmakeMove()

		if t.abortNow {
			return ValueZero
		}

		if score > bestScore {
			bestScore = score
			if score > alpha {
				alpha = score
				bestMove = mv
				bound = tt.BoundExact
			}
		}
		if score >= beta {
			bound = tt.BoundLower
			break
		}
	}

	t.tt.Store(b.Hash(), 0, ply, rawEval, bestScore, bestMove, bound, nt != nodeNonPV)

	return bestScore
}

func clampNoMate(v Value) Value {
	return Value(util.Clamp(int(v), int(-ValueMateThreshold+1), int(ValueMateThreshold-1)))
}

func containsMove(moves []Move, mv Move) bool {
	for _, m := range moves {
		if m == mv {
			return true
		}
	}
	return false
}
