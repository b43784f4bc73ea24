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

package uci

import (
	"bytes"
	"bufio"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sp00ph/icarus/internal/board"
	. "github.com/Sp00ph/icarus/internal/types"
)

// testHandler returns a handler writing into the returned buffer
func testHandler(t *testing.T) (*UciHandler, *bytes.Buffer) {
	u := NewUciHandler()
	buf := &bytes.Buffer{}
	u.OutIo = bufio.NewWriter(buf)
	t.Cleanup(func() { u.quit() })
	return u, buf
}

func TestUciCommand(t *testing.T) {
	u, buf := testHandler(t)
	u.handleLine("uci")
	out := buf.String()

	assert.Contains(t, out, "id name Icarus")
	assert.Contains(t, out, "id author")
	assert.Contains(t, out, "option name UCI_Chess960 type check default false")
	assert.Contains(t, out, "option name MoveOverhead type spin default 20 min 0 max 65535")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "uciok"))
}

func TestIsReady(t *testing.T) {
	u, buf := testHandler(t)
	u.handleLine("isready")
	assert.Equal(t, "readyok", strings.TrimSpace(buf.String()))
}

func TestUnknownCommand(t *testing.T) {
	u, buf := testHandler(t)
	u.handleLine("gibberish")
	assert.Contains(t, buf.String(), "info string Unknown command: `gibberish`")
}

func TestPositionStartposMoves(t *testing.T) {
	u, _ := testHandler(t)
	u.handleLine("position startpos moves e2e4 e7e5")

	want, err := board.ReadFen("rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2")
	require.NoError(t, err)
	assert.Equal(t, want.Hash(), u.position.Board().Hash())
	assert.Equal(t, want.Fen(false), u.position.Board().Fen(false))
}

func TestPositionKiwipete(t *testing.T) {
	u, _ := testHandler(t)
	u.handleLine("position kiwipete")
	assert.Equal(t, KiwipeteFen, u.position.Board().Fen(false))
}

func TestPositionFen(t *testing.T) {
	u, _ := testHandler(t)
	fen := "8/8/8/3k4/8/8/4K3/8 w - - 0 1"
	u.handleLine("position fen " + fen)
	assert.Equal(t, fen, u.position.Board().Fen(false))
}

func TestPositionInvalid(t *testing.T) {
	u, buf := testHandler(t)
	before := *u.position.Board()

	u.handleLine("position fen not a real fen at all x")
	assert.Contains(t, buf.String(), "info string Invalid FEN")
	assert.Equal(t, before, *u.position.Board(), "position must be untouched after an error")

	buf.Reset()
	u.handleLine("position startpos moves e2e5")
	assert.Contains(t, buf.String(), "Invalid or illegal move `e2e5`")
	assert.Equal(t, before, *u.position.Board())
}

func TestSetOption(t *testing.T) {
	u, buf := testHandler(t)

	u.handleLine("setoption name UCI_Chess960 value true")
	assert.True(t, u.chess960)

	buf.Reset()
	u.handleLine("setoption name MoveOverhead value 50")
	assert.Contains(t, buf.String(), "Set move overhead to 50")

	buf.Reset()
	u.handleLine("setoption name Bogus value 1")
	assert.Contains(t, buf.String(), "Unsupported option Bogus")

	buf.Reset()
	u.handleLine("setoption value 1")
	assert.Contains(t, buf.String(), "Missing `name` token")

	// the shorthand works too
	u.handleLine("so UCI_Chess960 false")
	assert.False(t, u.chess960)
}

func TestGoParseErrors(t *testing.T) {
	u, buf := testHandler(t)

	u.handleLine("go banana")
	assert.Contains(t, buf.String(), "Unknown search limit: banana")

	buf.Reset()
	u.handleLine("go depth")
	assert.Contains(t, buf.String(), "Missing value for limit `depth`")

	buf.Reset()
	u.handleLine("go nodes many")
	assert.Contains(t, buf.String(), "Error parsing integer")
}

func TestGoDepthSearches(t *testing.T) {
	u, _ := testHandler(t)
	u.handleLine("position startpos")
	u.handleLine("go depth 3")
	u.searcher.Wait()

	b := board.StartPos()
	assert.True(t, b.IsLegal(u.searcher.Global.BestMove()))
}

func TestDisplay(t *testing.T) {
	u, buf := testHandler(t)
	u.handleLine("d")
	out := buf.String()
	assert.Contains(t, out, "FEN: "+board.StartFen)
	assert.Contains(t, out, "Zobrist key:")
}

func TestEval(t *testing.T) {
	u, buf := testHandler(t)
	u.handleLine("eval")
	assert.Contains(t, buf.String(), "Static eval:")
}

func TestCastleMoveParsing(t *testing.T) {
	u, _ := testHandler(t)
	u.handleLine("position fen r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w KQkq - 0 1 moves e1g1")
	assert.Equal(t, King, u.position.Board().PieceOn(SqG1))
	assert.Equal(t, Rook, u.position.Board().PieceOn(SqF1))
}
