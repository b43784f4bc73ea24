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

// Package position wraps a board with an undo stack. Because Board is
// a cheap value type, unmake simply restores the previous copy; this
// also gives us repetition detection over the stored history.
package position

import (
	"github.com/Sp00ph/icarus/internal/board"
	. "github.com/Sp00ph/icarus/internal/types"
)

// Position is a board plus the boards and moves that led to it.
// history[0] is the starting position of the game or search.
type Position struct {
	board   board.Board
	history []board.Board
	moves   []Move // MoveNone for null moves
}

// NewPosition creates a position from the given board
func NewPosition(b board.Board) *Position {
	return &Position{
		board:   b,
		history: make([]board.Board, 0, MaxMoves+MaxPly),
		moves:   make([]Move, 0, MaxMoves+MaxPly),
	}
}

// Board returns the current board
func (p *Position) Board() *board.Board {
	return &p.board
}

// Clone returns a deep copy of the position, including the history
// needed for repetition detection. Each worker thread searches on its
// own clone.
func (p *Position) Clone() *Position {
	c := &Position{
		board:   p.board,
		history: make([]board.Board, len(p.history), cap(p.history)),
		moves:   make([]Move, len(p.moves), cap(p.moves)),
	}
	copy(c.history, p.history)
	copy(c.moves, p.moves)
	return c
}

// MakeMove commits a move to the board, remembering the previous state
// for UnmakeMove.
func (p *Position) MakeMove(mv Move) {
	p.history = append(p.history, p.board)
	p.board.MakeMove(mv)
	p.moves = append(p.moves, mv)
}

// MakeNullMove passes the turn, remembering the previous state.
func (p *Position) MakeNullMove() {
	p.history = append(p.history, p.board)
	p.board.MakeNullMove()
	p.moves = append(p.moves, MoveNone)
}

// UnmakeMove restores the position before the last MakeMove or
// MakeNullMove. This restores the complete board state including all
// hashes, castling rights, en passant and clocks.
func (p *Position) UnmakeMove() {
	last := len(p.history) - 1
	p.board = p.history[last]
	p.history = p.history[:last]
	p.moves = p.moves[:last]
}

// PrevMove returns the move made the given number of plies ago, or
// MoveNone when it was a null move or the game is too short.
func (p *Position) PrevMove(plies int) Move {
	if plies <= 0 || plies > len(p.moves) {
		return MoveNone
	}
	return p.moves[len(p.moves)-plies]
}

// Ply returns the number of moves made on this position
func (p *Position) Ply() int {
	return len(p.moves)
}

// Repetition returns true when the current position occurred before
// within the reach of the halfmove clock. A single repetition is
// enough: the search treats any repeated position as a draw.
func (p *Position) Repetition() bool {
	hmc := p.board.HalfmoveClock()
	n := len(p.history)

	// The earliest possible repetition is 4 plies back, and only
	// positions since the last irreversible move can repeat.
	for i, steps := n-4, hmc-3; i >= 0 && steps > 0; i, steps = i-2, steps-2 {
		if p.history[i].Hash() == p.board.Hash() {
			return true
		}
	}
	return false
}

// IsDraw returns true when the position is drawn by the 50 move rule,
// insufficient material or repetition.
func (p *Position) IsDraw() bool {
	return p.board.TerminalState() == board.TerminalDraw || p.Repetition()
}
