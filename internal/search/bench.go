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
	"fmt"
	"time"

	"github.com/Sp00ph/icarus/internal/board"
	"github.com/Sp00ph/icarus/internal/position"
)

// DefaultBenchDepth is the search depth of the bench command
const DefaultBenchDepth = 12

// benchFens is the fixed benchmark position set: a mix of openings,
// middlegames, tactical positions and endgames.
var benchFens = []string{
	"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R4RK1 w kq - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
	"rnbqkb1r/pp1p1ppp/2p5/4P3/2B5/8/PPP1NnPP/RNBQK2R w KQkq - 0 6",
	"2kr3r/p1ppqpb1/bn2Qnp1/3PN3/1p2P3/2N5/PPPBBPPP/R3K2R b KQ - 3 2",
	"6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1",
	"8/8/1p2k1p1/3p3p/1p1P1P1P/1P2PK2/8/8 w - - 0 1",
	"4k3/1P6/8/8/8/8/K7/8 w - - 0 1",
	"8/P1k5/K7/8/8/8/8/8 w - - 0 1",
}

// RunBench searches every benchmark position to the given depth and
// prints total nodes and speed. The final "<nodes> nodes <nps> nps"
// line is the signature used to compare builds.
func RunBench(depth, threads, hashMB int) {
	s := NewSearcher(threads, hashMB)

	var totalNodes uint64
	start := time.Now()

	for _, fen := range benchFens {
		b, err := board.ReadFen(fen)
		if err != nil {
			panic(fmt.Sprintf("bench: bad fen %q: %v", fen, err))
		}

		limits := NewLimits()
		limits.Depth = depth

		s.Search(position.NewPosition(b), limits, false, false)
		s.Wait()
		totalNodes += s.Global.Nodes.Load()
	}

	elapsed := time.Since(start)
	nps := uint64(float64(totalNodes) / maxFloat(elapsed.Seconds(), 1e-3))

	fmt.Printf("Took %v\n", elapsed.Round(time.Millisecond))
	fmt.Printf("%d nodes %d nps\n", totalNodes, nps)

	s.Quit()
}
