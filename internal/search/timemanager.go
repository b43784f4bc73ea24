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
	"sync/atomic"
	"time"

	"github.com/Sp00ph/icarus/internal/util"
	. "github.com/Sp00ph/icarus/internal/types"
)

// DefaultMoveOverhead is the default communication overhead budget
// subtracted from the remaining time, in milliseconds.
const DefaultMoveOverhead = 20

// TimeManager derives and enforces the time and node budgets of a
// search. All fields are atomics: the UCI thread writes them on go,
// the worker threads poll them during search.
//
// Hard time is polled every 1024 nodes inside the tree; soft time is
// only consulted between iterations at the root.
type TimeManager struct {
	start atomic.Int64 // ns since process epoch

	infinite atomic.Bool
	stop     atomic.Bool

	maxDepth atomic.Int32
	maxNodes atomic.Uint64
	softTime atomic.Uint64 // ms
	hardTime atomic.Uint64 // ms

	moveOverhead atomic.Uint32
}

var processEpoch = time.Now()

// NewTimeManager creates a time manager with default settings
func NewTimeManager() *TimeManager {
	tm := &TimeManager{}
	tm.moveOverhead.Store(DefaultMoveOverhead)
	return tm
}

// Init derives the budgets for one go command:
//
//	hard = min(time/2, time - overhead), also capped by movetime
//	soft = min(hard, time/64 - overhead + inc)
func (tm *TimeManager) Init(stm Color, limits *Limits) {
	tm.SetStopFlag(false)

	tm.infinite.Store(limits.isInfinite())

	maxDepth := int32(MaxPly)
	if limits.Depth >= 0 && limits.Depth < MaxPly {
		maxDepth = int32(limits.Depth)
	}
	tm.maxDepth.Store(maxDepth)

	maxNodes := ^uint64(0)
	if limits.Nodes >= 0 {
		maxNodes = uint64(limits.Nodes)
	}
	tm.maxNodes.Store(maxNodes)

	moveTime := ^uint64(0)
	if limits.MoveTime >= 0 {
		moveTime = uint64(limits.MoveTime)
	}

	tme, inc := limits.timeInc(stm)
	overhead := uint64(tm.moveOverhead.Load())

	hardTime := util.Min64(tme/2, saturatingSub(tme, overhead))
	softTime := util.Min64(saturatingSub(tme/64, overhead)+inc, hardTime)

	tm.softTime.Store(softTime)
	tm.hardTime.Store(util.Min64(hardTime, saturatingSub(moveTime, overhead)))

	tm.start.Store(int64(time.Since(processEpoch)))
}

// SetStopFlag sets or clears the stop flag. Release on set, the
// workers read with Acquire semantics (Go's atomics are sequentially
// consistent, which subsumes both).
func (tm *TimeManager) SetStopFlag(stop bool) {
	tm.stop.Store(stop)
}

// SetMoveOverhead updates the MoveOverhead option
func (tm *TimeManager) SetMoveOverhead(overhead uint16) {
	tm.moveOverhead.Store(uint32(overhead))
}

// StopFlag returns the stop flag
func (tm *TimeManager) StopFlag() bool {
	return tm.stop.Load()
}

// Infinite returns whether the current search has no limits
func (tm *TimeManager) Infinite() bool {
	return tm.infinite.Load()
}

// StopSearch is the in-tree poll: stop flag, hard node budget, and -
// at a 1024 node cadence - hard time.
func (tm *TimeManager) StopSearch(nodes *util.BufferedCounter) bool {
	return tm.StopFlag() ||
		nodes.Global() >= tm.maxNodes.Load() ||
		(nodes.Local()%1024 == 0 && uint64(tm.Elapsed().Milliseconds()) > tm.hardTime.Load())
}

// StopIteration is consulted between root iterations: stop flag,
// depth limit, node budget and soft time. The soft budget is scaled
// by how many nodes went into the current best root move and by how
// stable that move has been: a dominating, stable best move stops
// deepening earlier.
func (tm *TimeManager) StopIteration(depth int, nodes uint64, bestMoveFraction float64, stability int) bool {
	soft := tm.softTime.Load()
	if soft != ^uint64(0) && bestMoveFraction > 0 {
		nodeScale := 1.5 - bestMoveFraction
		stabilityScale := 1.2 - 0.04*float64(util.Min(stability, 8))
		soft = uint64(float64(soft) * nodeScale * stabilityScale)
	}

	return tm.StopFlag() ||
		depth >= int(tm.maxDepth.Load()) ||
		nodes >= tm.maxNodes.Load() ||
		uint64(tm.Elapsed().Milliseconds()) > soft
}

// Elapsed returns the time since the search started
func (tm *TimeManager) Elapsed() time.Duration {
	return time.Since(processEpoch) - time.Duration(tm.start.Load())
}

func saturatingSub(a, b uint64) uint64 {
	if a < b {
		return 0
	}
	return a - b
}
