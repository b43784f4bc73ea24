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

// Package uci implements the UCI protocol handler: an ASCII line
// protocol of whitespace delimited tokens. Any parse error is
// reported as a single "info string <reason>" line and the loop
// continues with the next command.
package uci

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/op/go-logging"
	"golang.org/x/sync/semaphore"

	"github.com/Sp00ph/icarus/internal/board"
	"github.com/Sp00ph/icarus/internal/config"
	myLogging "github.com/Sp00ph/icarus/internal/logging"
	"github.com/Sp00ph/icarus/internal/nnue"
	"github.com/Sp00ph/icarus/internal/position"
	"github.com/Sp00ph/icarus/internal/search"
	. "github.com/Sp00ph/icarus/internal/types"
)

// KiwipeteFen is the well known movegen torture position. The
// "position kiwipete" shortcut is not part of the UCI spec; it is
// kept as an implementer's convenience for perft work.
const KiwipeteFen = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

// UciHandler is the engine side of the UCI conversation.
type UciHandler struct {
	log *logging.Logger

	InIo  *bufio.Scanner
	OutIo *bufio.Writer

	position *position.Position
	chess960 bool
	searcher *search.Searcher

	// guards against overlapping background perft runs
	perftRunning *semaphore.Weighted
}

// NewUciHandler creates a handler talking on stdin/stdout with a
// freshly spawned searcher.
func NewUciHandler() *UciHandler {
	return &UciHandler{
		log:          myLogging.GetLog(),
		InIo:         bufio.NewScanner(os.Stdin),
		OutIo:        bufio.NewWriter(os.Stdout),
		position:     position.NewPosition(board.StartPos()),
		searcher:     search.NewSearcher(config.Settings.Search.Threads, config.Settings.Search.TTSize),
		perftRunning: semaphore.NewWeighted(1),
	}
}

// Loop processes any commands given on the command line, then reads
// commands line by line until quit or EOF.
func (u *UciHandler) Loop(argv []string) {
	for _, line := range argv {
		if u.handleLine(line) {
			return
		}
	}
	for u.InIo.Scan() {
		if u.handleLine(u.InIo.Text()) {
			return
		}
	}
	// EOF behaves like quit
	u.quit()
}

// handleLine dispatches one command line. Returns true on quit.
func (u *UciHandler) handleLine(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	tokens := strings.Fields(line)
	cmd, args := tokens[0], tokens[1:]

	switch cmd {
	case "uci":
		u.uciCommand()
	case "isready":
		u.send("readyok")
	case "ucinewgame":
		u.newGameCommand()
	case "setoption":
		u.setOptionCommand(args)
	case "so":
		// option shorthand: so <name> <value>
		u.setOptionShorthand(args)
	case "position":
		u.positionCommand(args)
	case "go":
		u.goCommand(args)
	case "stop":
		u.stopCommand()
	case "quit", "q":
		u.quit()
		return true
	case "d":
		u.send(u.position.Board().StringBoard(u.chess960))
	case "eval":
		u.evalCommand()
	case "bench":
		u.benchCommand(args)
	case "perft":
		u.perftCommand(args, false)
	case "splitperft":
		u.perftCommand(args, true)
	default:
		u.sendInfoString(fmt.Sprintf("Unknown command: `%s`", cmd))
	}
	return false
}

func (u *UciHandler) uciCommand() {
	u.send("id name Icarus")
	u.send("id author Sp00ph")
	u.send("option name UCI_Chess960 type check default false")
	u.send(fmt.Sprintf("option name MoveOverhead type spin default %d min 0 max 65535",
		search.DefaultMoveOverhead))
	u.send("uciok")
}

func (u *UciHandler) newGameCommand() {
	if u.searcher.IsRunning() {
		u.sendInfoString("already searching")
		return
	}
	u.position = position.NewPosition(board.StartPos())
	u.searcher.NewGame()
}

func (u *UciHandler) setOptionCommand(args []string) {
	if len(args) == 0 || args[0] != "name" {
		u.sendInfoString("Missing `name` token on `setoption` command")
		return
	}
	if len(args) < 2 {
		u.sendInfoString("Missing option name on `setoption` command")
		return
	}
	name := args[1]
	value := "<empty>"
	if len(args) >= 3 {
		if args[2] != "value" {
			u.sendInfoString("Missing `value` token on `setoption` command")
			return
		}
		if len(args) < 4 {
			u.sendInfoString("Missing option value on `setoption` command")
			return
		}
		value = args[3]
	}
	u.setOption(name, value)
}

func (u *UciHandler) setOptionShorthand(args []string) {
	if len(args) == 0 {
		u.sendInfoString("Missing option name on `setoption` command")
		return
	}
	value := "<empty>"
	if len(args) > 1 {
		value = args[1]
	}
	u.setOption(args[0], value)
}

func (u *UciHandler) setOption(name, value string) {
	switch name {
	case "UCI_Chess960":
		val, err := strconv.ParseBool(value)
		if err != nil {
			u.sendInfoString(fmt.Sprintf("Unknown value %s", value))
			return
		}
		u.chess960 = val
		u.sendInfoString(fmt.Sprintf("Set Chess960 to %v", val))
	case "MoveOverhead":
		val, err := strconv.ParseUint(value, 10, 16)
		if err != nil {
			u.sendInfoString(fmt.Sprintf("Unknown value %s", value))
			return
		}
		u.searcher.Global.TimeManager.SetMoveOverhead(uint16(val))
		u.sendInfoString(fmt.Sprintf("Set move overhead to %d", val))
	default:
		u.sendInfoString(fmt.Sprintf("Unsupported option %s", name))
	}
}

func (u *UciHandler) positionCommand(args []string) {
	if len(args) == 0 {
		u.sendInfoString("Missing `fen` or `startpos` on `position` command")
		return
	}

	var startpos board.Board
	idx := 1
	switch args[0] {
	case "startpos":
		startpos = board.StartPos()
	case "kiwipete":
		b, _ := board.ReadFen(KiwipeteFen)
		startpos = b
	case "fen":
		// FEN consists of 6 parts (board, stm, castling rights, ep
		// square, halfmove clock, fullmove count)
		if len(args) < 7 {
			u.sendInfoString(fmt.Sprintf("Invalid FEN `%s`", strings.Join(args[1:], " ")))
			return
		}
		fen := strings.Join(args[1:7], " ")
		b, err := board.ReadFen(fen)
		if err != nil {
			u.sendInfoString(fmt.Sprintf("Invalid FEN `%s`", fen))
			return
		}
		startpos = b
		idx = 7
	default:
		u.sendInfoString("Missing `fen` or `startpos` on `position` command")
		return
	}

	if idx < len(args) && args[idx] != "moves" {
		u.sendInfoString("Missing `moves` token on `position` command")
		return
	}
	if idx < len(args) {
		idx++
	}

	// validate all moves against a scratch position before any
	// mutation of the real one
	newPos := position.NewPosition(startpos)
	for ; idx < len(args); idx++ {
		lan := args[idx]
		mv := newPos.Board().ParseMove(lan, u.chess960)
		if mv == MoveNone || !newPos.Board().IsLegal(mv) {
			u.sendInfoString(fmt.Sprintf("Invalid or illegal move `%s`", lan))
			return
		}
		newPos.MakeMove(mv)
	}
	u.position = newPos
}

// goKeywords are the tokens that terminate a searchmoves list
var goKeywords = []string{
	"searchmoves", "wtime", "btime", "winc", "binc",
	"depth", "nodes", "movetime", "infinite",
}

func isGoKeyword(tok string) bool {
	for _, k := range goKeywords {
		if tok == k {
			return true
		}
	}
	return false
}

func (u *UciHandler) goCommand(args []string) {
	if u.searcher.IsRunning() {
		u.sendInfoString("already searching")
		return
	}

	limits := search.NewLimits()

	parseInt := func(i int, name string) (int64, bool) {
		if i+1 >= len(args) {
			u.sendInfoString(fmt.Sprintf("Missing value for limit `%s`", name))
			return 0, false
		}
		v, err := strconv.ParseInt(args[i+1], 10, 64)
		if err != nil {
			u.sendInfoString(fmt.Sprintf("Error parsing integer: %v", err))
			return 0, false
		}
		return v, true
	}

	for i := 0; i < len(args); i++ {
		switch tok := args[i]; tok {
		case "infinite":
			// infinite doesn't add any limits
		case "wtime", "btime", "winc", "binc", "movetime":
			v, ok := parseInt(i, tok)
			if !ok {
				return
			}
			i++
			if v < 0 && (tok == "wtime" || tok == "btime") {
				v = 0
			}
			switch tok {
			case "wtime":
				limits.WhiteTime = v
			case "btime":
				limits.BlackTime = v
			case "winc":
				limits.WhiteInc = v
			case "binc":
				limits.BlackInc = v
			case "movetime":
				limits.MoveTime = v
			}
		case "depth":
			v, ok := parseInt(i, tok)
			if !ok {
				return
			}
			i++
			limits.Depth = int(uint16(v))
		case "nodes":
			v, ok := parseInt(i, tok)
			if !ok {
				return
			}
			i++
			limits.Nodes = v
		case "searchmoves":
			for i+1 < len(args) && !isGoKeyword(args[i+1]) {
				lan := args[i+1]
				mv := u.position.Board().ParseMove(lan, u.chess960)
				if mv == MoveNone || !u.position.Board().IsLegal(mv) {
					u.sendInfoString(fmt.Sprintf("Invalid or illegal move `%s`", lan))
					return
				}
				limits.SearchMoves = append(limits.SearchMoves, mv)
				i++
			}
		default:
			u.sendInfoString(fmt.Sprintf("Unknown search limit: %s", tok))
			return
		}
	}

	u.OutIo.Flush()
	u.searcher.Search(u.position, limits, u.chess960, true)
}

func (u *UciHandler) stopCommand() {
	if u.searcher.IsRunning() {
		u.searcher.Stop()
		u.searcher.Wait()
		u.sendInfoString("stopped search")
	} else {
		u.sendInfoString("search isn't running")
	}
}

func (u *UciHandler) quit() {
	if u.searcher.IsRunning() {
		u.searcher.Stop()
		u.searcher.Wait()
	}
	u.searcher.Quit()
	u.OutIo.Flush()
}

func (u *UciHandler) evalCommand() {
	n := nnue.NewNnue(u.position.Board(), u.searcher.Network())
	u.send(fmt.Sprintf("Static eval: %d", n.Eval(u.position.Board())))
}

func (u *UciHandler) benchCommand(args []string) {
	depth := search.DefaultBenchDepth
	threads := 1
	hash := 16
	if len(args) > 0 {
		if v, err := strconv.Atoi(args[0]); err == nil {
			depth = v
		}
	}
	if len(args) > 1 {
		if v, err := strconv.Atoi(args[1]); err == nil {
			threads = v
		}
	}
	if len(args) > 2 {
		if v, err := strconv.Atoi(args[2]); err == nil {
			hash = v
		}
	}
	u.OutIo.Flush()
	search.RunBench(depth, threads, hash)
}

func (u *UciHandler) perftCommand(args []string, split bool) {
	depth := 6
	bulk := false
	for _, arg := range args {
		if arg == "bulk" {
			bulk = true
		} else if v, err := strconv.Atoi(arg); err == nil {
			depth = v
		}
	}
	if depth <= 0 {
		u.sendInfoString("perft depth must be positive")
		return
	}

	if !u.perftRunning.TryAcquire(1) {
		u.sendInfoString("perft already running")
		return
	}

	b := *u.position.Board()
	chess960 := u.chess960
	u.OutIo.Flush()

	go func() {
		defer u.perftRunning.Release(1)
		start := time.Now()
		var total uint64

		if split {
			for _, mv := range b.GenAllMoves() {
				child := b
				child.MakeMove(mv)
				n := board.Perft(&child, depth-1, bulk)
				total += n
				fmt.Printf("%s: %d\n", mv.StringUci(chess960), n)
			}
			fmt.Println()
		} else {
			total = board.Perft(&b, depth, bulk)
		}

		elapsed := time.Since(start)
		mnps := float64(total) / maxFloat(elapsed.Seconds(), 1e-9) / 1e6
		fmt.Printf("Total: %d\n", total)
		fmt.Printf("Took %v (%.2fMnps)\n\n", elapsed.Round(time.Millisecond), mnps)
	}()
}

func (u *UciHandler) send(s string) {
	u.OutIo.WriteString(s)
	if !strings.HasSuffix(s, "\n") {
		u.OutIo.WriteString("\n")
	}
	u.OutIo.Flush()
}

func (u *UciHandler) sendInfoString(s string) {
	u.send("info string " + s)
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
