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

// Package search implements the iterative deepening alpha-beta search
// with its worker thread fleet. The Searcher broadcasts commands to
// long lived workers over a rendezvous channel; workers share the
// transposition table and a global node counter, everything else is
// thread local.
package search

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/op/go-logging"

	"github.com/Sp00ph/icarus/internal/history"
	myLogging "github.com/Sp00ph/icarus/internal/logging"
	"github.com/Sp00ph/icarus/internal/nnue"
	"github.com/Sp00ph/icarus/internal/position"
	"github.com/Sp00ph/icarus/internal/transpositiontable"
	. "github.com/Sp00ph/icarus/internal/types"
	"github.com/Sp00ph/icarus/internal/util"
)

// GlobalCtx is the state shared between all search threads
type GlobalCtx struct {
	TimeManager *TimeManager

	// estimate of nodes searched across all threads
	Nodes atomic.Uint64

	// number of currently searching threads + 1; 0 when idle. The
	// extra one is a pseudo searcher held by the UCI thread so that
	// IsRunning never reports a false idle during startup.
	numSearching atomic.Int32
	waitMu       sync.Mutex
	waitCond     *sync.Cond

	// result of the last completed search, latched by the main worker
	// before it signals completion
	bestMove  atomic.Uint32 // Move bits
	bestScore atomic.Int32  // Value
}

// BestMove returns the best move of the last completed search
func (g *GlobalCtx) BestMove() Move {
	return Move(g.bestMove.Load())
}

// BestScore returns the score of the last completed search
func (g *GlobalCtx) BestScore() Value {
	return Value(g.bestScore.Load())
}

type cmdKind uint8

const (
	cmdSearch cmdKind = iota
	cmdNewGame
	cmdQuit
)

type searchParams struct {
	pos       *position.Position
	rootMoves []Move
	chess960  bool
	printInfo bool
}

type threadCmd struct {
	kind   cmdKind
	params *searchParams
}

// Searcher owns the worker fleet and the shared search state.
type Searcher struct {
	log *logging.Logger

	Global  *GlobalCtx
	tt      *transpositiontable.TtTable
	network *nnue.Network

	broadcast *util.Broadcast[threadCmd]
	wg        sync.WaitGroup
	threads   int
}

// NewSearcher spawns the given number of worker threads. They idle on
// the broadcast channel until the first command arrives.
func NewSearcher(threads, hashMB int) *Searcher {
	if threads < 1 {
		threads = 1
	}

	global := &GlobalCtx{TimeManager: NewTimeManager()}
	global.waitCond = sync.NewCond(&global.waitMu)

	s := &Searcher{
		log:       myLogging.GetLog(),
		Global:    global,
		tt:        transpositiontable.NewTtTable(hashMB),
		network:   nnue.DefaultNetwork(),
		broadcast: util.NewBroadcast[threadCmd](threads),
		threads:   threads,
	}

	for id := 0; id < threads; id++ {
		rx := s.broadcast.NewReceiver()
		s.wg.Add(1)
		go s.workerLoop(rx, id)
	}

	return s
}

// Threads returns the number of worker threads
func (s *Searcher) Threads() int {
	return s.threads
}

// TT returns the shared transposition table
func (s *Searcher) TT() *transpositiontable.TtTable {
	return s.tt
}

// Network returns the shared evaluation network
func (s *Searcher) Network() *nnue.Network {
	return s.network
}

// IsRunning returns true while a search is in progress
func (s *Searcher) IsRunning() bool {
	return s.Global.numSearching.Load() != 0
}

// Search starts a search on a copy of the given position. Must not be
// called while a search runs.
func (s *Searcher) Search(pos *position.Position, limits Limits, chess960, printInfo bool) {
	if s.IsRunning() {
		panic("Search() called while already searching")
	}

	s.Global.Nodes.Store(0)
	// one pseudo searcher so IsRunning holds until the workers are up
	s.Global.numSearching.Store(1)
	s.Global.TimeManager.Init(pos.Board().Stm(), &limits)
	s.tt.BumpAge()

	params := &searchParams{
		pos:       pos.Clone(),
		rootMoves: limits.SearchMoves,
		chess960:  chess960,
		printInfo: printInfo,
	}

	s.broadcast.Send(threadCmd{kind: cmdSearch, params: params})
}

// NewGame clears the transposition table and the worker histories.
// Must not be called while a search runs.
func (s *Searcher) NewGame() {
	if s.IsRunning() {
		panic("NewGame() called while searching")
	}
	s.tt.Clear()
	s.broadcast.Send(threadCmd{kind: cmdNewGame})
}

// Stop requests a running search to stop as soon as possible
func (s *Searcher) Stop() {
	s.Global.TimeManager.SetStopFlag(true)
}

// Quit stops any search and joins all worker threads
func (s *Searcher) Quit() {
	s.Global.TimeManager.SetStopFlag(true)
	s.broadcast.Send(threadCmd{kind: cmdQuit})
	s.wg.Wait()
}

// Wait suspends the calling thread until the current search is over
func (s *Searcher) Wait() {
	g := s.Global
	g.waitMu.Lock()
	for g.numSearching.Load() != 0 {
		g.waitCond.Wait()
	}
	g.waitMu.Unlock()
}

// stackEntry is the per ply search state of one worker
type stackEntry struct {
	pv         []Move
	staticEval Value
	killer     Move
	excluded   Move
}

// ThreadCtx is the per worker search state. Nothing in here is shared
// between threads.
type ThreadCtx struct {
	id       int
	global   *GlobalCtx
	tt       *transpositiontable.TtTable
	chess960 bool
	abortNow bool

	nodes     *util.BufferedCounter
	history   *history.History
	nnue      *nnue.Nnue
	rootMoves []Move
	selDepth  int
	stack     [MaxPly + 2]stackEntry
	rootPv    []Move
	rootScore Value

	// per root move node counts for the node based time scaling
	rootMoveNodes map[Move]uint64
	bestMoveStability int
	lastBestMove      Move
}

// workerLoop is the body of one worker thread. It loops on the
// broadcast channel until it receives a quit command. A panic in a
// worker is terminal for the process: shared state could be
// inconsistent, so we must not search on.
func (s *Searcher) workerLoop(rx *util.Receiver[threadCmd], id int) {
	defer s.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			s.log.Criticalf("worker %d panicked: %v", id, r)
			os.Exit(1)
		}
	}()

	t := &ThreadCtx{
		id:      id,
		global:  s.Global,
		tt:      s.tt,
		nodes:   util.NewBufferedCounter(&s.Global.Nodes),
		history: history.NewHistory(),
	}
	for i := range t.stack {
		t.stack[i].pv = make([]Move, 0, MaxPly)
	}

	for {
		var cmd threadCmd
		rx.Recv(func(m threadCmd) { cmd = m })

		switch cmd.kind {
		case cmdSearch:
			s.Global.numSearching.Add(1)
			t.startSearch(cmd.params, s.network)
		case cmdNewGame:
			t.history.Clear()
		case cmdQuit:
			t.nodes.Flush()
			return
		}
	}
}

// startSearch prepares the thread state and runs iterative deepening
func (t *ThreadCtx) startSearch(params *searchParams, network *nnue.Network) {
	pos := params.pos.Clone()

	t.nodes.ResetLocal()
	t.chess960 = params.chess960
	t.abortNow = false
	t.selDepth = 0
	t.rootPv = t.rootPv[:0]
	t.rootScore = -ValueInfinite
	t.rootMoveNodes = make(map[Move]uint64)
	t.bestMoveStability = 0
	t.lastBestMove = MoveNone
	for i := range t.stack {
		t.stack[i] = stackEntry{pv: t.stack[i].pv[:0]}
	}

	t.rootMoves = params.rootMoves
	if len(t.rootMoves) == 0 {
		t.rootMoves = pos.Board().GenAllMoves()
	}

	if t.nnue == nil {
		t.nnue = nnue.NewNnue(pos.Board(), network)
	} else {
		t.nnue.FullReset(pos.Board())
	}

	t.idLoop(pos, params.printInfo)
}

// idLoop runs the iterative deepening loop: depth 1, 2, ... until a
// budget is exhausted or an abort unwinds the tree. After each
// completed iteration the principal variation is latched; an aborted
// iteration keeps the previous one.
func (t *ThreadCtx) idLoop(pos *position.Position, print bool) {
	depth := 1
	overallBest := -ValueInfinite

	for {
		t.selDepth = 0
		score := t.search(pos, nodeRoot, depth, 0, -ValueInfinite, ValueInfinite)
		t.nodes.Flush()

		if depth > 1 && t.abortNow {
			break
		}

		// latch the completed iteration
		t.rootPv = append(t.rootPv[:0], t.stack[0].pv...)
		t.rootScore = score
		overallBest = score

		if best := t.bestRootMove(); best == t.lastBestMove {
			t.bestMoveStability++
		} else {
			t.bestMoveStability = 0
			t.lastBestMove = best
		}

		if print && t.id == 0 {
			t.printInfo(score, depth)
		}

		if depth >= MaxPly ||
			t.global.TimeManager.StopIteration(depth, t.nodes.Global(), t.bestMoveFraction(), t.bestMoveStability) {
			break
		}

		depth++
	}

	// An exhaustive infinite search must not emit bestmove before a
	// stop arrives.
	if t.global.TimeManager.Infinite() {
		for !t.global.TimeManager.StopFlag() {
			time.Sleep(10 * time.Millisecond)
		}
	}

	bestMove := t.bestRootMove()
	if t.id == 0 {
		t.global.bestMove.Store(uint32(bestMove))
		t.global.bestScore.Store(int32(overallBest))
	}

	// If we are the last thread to decrement, we will drop the
	// pseudo searcher and wake the waiters below.
	last := t.global.numSearching.Add(-1) == 1

	if print && t.id == 0 {
		t.printInfo(overallBest, depth)
		fmt.Printf("bestmove %s\n", bestMove.StringUci(t.chess960))
	}

	// wake the waiters only after the bestmove print
	if last {
		t.global.waitMu.Lock()
		t.global.numSearching.Store(0)
		t.global.waitCond.Broadcast()
		t.global.waitMu.Unlock()
	}
}

// bestRootMove returns the first move of the latched PV, or the first
// legal root move when no iteration completed.
func (t *ThreadCtx) bestRootMove() Move {
	if len(t.rootPv) > 0 {
		return t.rootPv[0]
	}
	if len(t.rootMoves) > 0 {
		return t.rootMoves[0]
	}
	return MoveNone
}

// bestMoveFraction returns the fraction of all nodes spent below the
// current best root move.
func (t *ThreadCtx) bestMoveFraction() float64 {
	total := t.nodes.Local()
	if total == 0 {
		return 0
	}
	return float64(t.rootMoveNodes[t.bestRootMove()]) / float64(total)
}

func (t *ThreadCtx) printInfo(score Value, depth int) {
	nodes := t.nodes.Global()
	elapsed := t.global.TimeManager.Elapsed()
	timeMs := elapsed.Milliseconds()
	nps := uint64(float64(nodes) / maxFloat(elapsed.Seconds(), 1e-3))

	var pv strings.Builder
	for i, mv := range t.rootPv {
		if i > 0 {
			pv.WriteString(" ")
		}
		pv.WriteString(mv.StringUci(t.chess960))
	}

	fmt.Printf("info depth %d seldepth %d score %s time %d nodes %d nps %d pv %s\n",
		depth, t.selDepth, score.String(), timeMs, nodes, nps, pv.String())
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
