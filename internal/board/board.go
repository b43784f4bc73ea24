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

// Package board represents a chess position and its fully legal move
// generation. It uses bitboards per piece type and color plus a
// mailbox, incremental zobrist hashes (a full hash and the pawn,
// minor, major and per color non-pawn sub hashes used by the
// correction history), and precomputed threat state (checkers, pinned
// pieces and attacked squares) that is refreshed after every move.
//
// Board is a plain value type and cheap to copy. The undo stack lives
// in the position package on top of this.
package board

import (
	. "github.com/Sp00ph/icarus/internal/types"
)

// StartFen is a string with the fen position for a standard chess game
const StartFen string = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// TerminalState describes a finished game
type TerminalState uint8

// TerminalStates. TerminalNone means the game goes on.
const (
	TerminalNone TerminalState = iota
	TerminalCheckmate
	TerminalDraw
)

// Board is the complete static position.
type Board struct {
	// bitboards per piece type, containing both white and black pieces
	pieces [PtLength]Bitboard
	// occupancy bitboards per color
	colors [ColorLength]Bitboard
	// piece type per square, PtNone when empty
	mailbox [SqLength]PieceType

	// castling rights for both sides (original rook files)
	castlingRights [ColorLength]CastlingRights
	// if a pawn can legally be taken en passant next move, its file
	// and the capturing pawns are stored in here
	enPassant EnPassantFile

	// all stm pieces pinned to their king
	pinned Bitboard
	// all nstm pieces checking the stm king
	checkers Bitboard
	// all squares attacked by a nstm piece. nstm sliders see through
	// the stm king so evasions along the ray are marked unsafe.
	attacked Bitboard

	// plies since the last capture or pawn move
	halfmoveClock uint8
	// incremented after every black move
	fullmoveCount uint16
	// the side to move next
	stm Color

	// zobrist hashes, updated incrementally
	hash        Key
	pawnHash    Key
	minorHash   Key
	majorHash   Key
	nonPawnHash [ColorLength]Key
}

// Occupied returns all occupied squares
func (b *Board) Occupied() Bitboard {
	return b.colors[White] | b.colors[Black]
}

// OccupiedBy returns the squares occupied by the given color
func (b *Board) OccupiedBy(c Color) Bitboard {
	return b.colors[c]
}

// Pieces returns the squares of all pieces of the given type
// regardless of color
func (b *Board) Pieces(pt PieceType) Bitboard {
	return b.pieces[pt]
}

// ColoredPieces returns the squares of all pieces of the given type
// and color
func (b *Board) ColoredPieces(pt PieceType, c Color) Bitboard {
	return b.pieces[pt] & b.colors[c]
}

// PieceOn returns the piece type on the square or PtNone
func (b *Board) PieceOn(sq Square) PieceType {
	return b.mailbox[sq]
}

// ColoredPieceOn returns the piece type on the square when it belongs
// to the given color, PtNone otherwise.
func (b *Board) ColoredPieceOn(sq Square, c Color) PieceType {
	if !b.colors[c].Has(sq) {
		return PtNone
	}
	return b.mailbox[sq]
}

// King returns the king square of the given color
func (b *Board) King(c Color) Square {
	return b.ColoredPieces(King, c).Lsb()
}

// OrthSliders returns rooks and queens of the given color
func (b *Board) OrthSliders(c Color) Bitboard {
	return b.colors[c] & (b.pieces[Rook] | b.pieces[Queen])
}

// DiagSliders returns bishops and queens of the given color
func (b *Board) DiagSliders(c Color) Bitboard {
	return b.colors[c] & (b.pieces[Bishop] | b.pieces[Queen])
}

// EnPassant returns the en passant descriptor. It is only set when at
// least one legal en passant capture exists for the side to move.
func (b *Board) EnPassant() EnPassantFile {
	return b.enPassant
}

// Pinned returns the stm pieces pinned to their king
func (b *Board) Pinned() Bitboard {
	return b.pinned
}

// Checkers returns the nstm pieces giving check
func (b *Board) Checkers() Bitboard {
	return b.checkers
}

// Attacked returns the squares attacked by nstm pieces (with the stm
// king removed from the blockers)
func (b *Board) Attacked() Bitboard {
	return b.attacked
}

// HalfmoveClock returns plies since the last capture or pawn move
func (b *Board) HalfmoveClock() int {
	return int(b.halfmoveClock)
}

// FullmoveCount returns the full move number
func (b *Board) FullmoveCount() int {
	return int(b.fullmoveCount)
}

// Stm returns the side to move
func (b *Board) Stm() Color {
	return b.stm
}

// Hash returns the zobrist hash of the position
func (b *Board) Hash() Key {
	return b.hash
}

// PawnHash returns the zobrist hash over only the pawns
func (b *Board) PawnHash() Key {
	return b.pawnHash
}

// MinorHash returns the zobrist hash over knights, bishops and kings
func (b *Board) MinorHash() Key {
	return b.minorHash
}

// MajorHash returns the zobrist hash over rooks and queens
func (b *Board) MajorHash() Key {
	return b.majorHash
}

// NonPawnHash returns the zobrist hash over all non pawn pieces of the
// given color
func (b *Board) NonPawnHash(c Color) Key {
	return b.nonPawnHash[c]
}

// CastlingRights returns the castling rights of the given color
func (b *Board) CastlingRights(c Color) CastlingRights {
	return b.castlingRights[c]
}

// IsTactic returns true when the move captures or promotes
func (b *Board) IsTactic(m Move) bool {
	switch m.Flag() {
	case EnPassant, Promotion:
		return true
	case Castle:
		return false
	}
	return b.colors[b.stm.Flip()].Has(m.To())
}

// Captures returns the piece type the move captures or PtNone. En
// passant reports Pawn, castling never captures.
func (b *Board) Captures(m Move) PieceType {
	switch m.Flag() {
	case EnPassant:
		return Pawn
	case Castle:
		return PtNone
	}
	return b.ColoredPieceOn(m.To(), b.stm.Flip())
}

// MovedPiece returns the piece type the move moves
func (b *Board) MovedPiece(m Move) PieceType {
	return b.mailbox[m.From()]
}

// toggleSquare flips the presence of a piece on a square in the
// bitboards and all applicable zobrist hashes. The mailbox is
// maintained separately by the callers.
func (b *Board) toggleSquare(sq Square, c Color, pt PieceType) {
	b.pieces[pt] ^= sq.Bb()
	b.colors[c] ^= sq.Bb()

	key := zobrist.pieces[c][pt][sq]
	b.hash ^= key
	switch pt {
	case Pawn:
		b.pawnHash ^= key
	case Knight, Bishop, King:
		b.minorHash ^= key
	case Rook, Queen:
		b.majorHash ^= key
	}
	if pt != Pawn {
		b.nonPawnHash[c] ^= key
	}
}

// setEnPassant replaces the en passant descriptor and keeps the hash
// in sync.
func (b *Board) setEnPassant(ep EnPassantFile) {
	if b.enPassant.IsSet() {
		b.hash ^= zobrist.enPassant[b.enPassant.FileOf()]
	}
	if ep.IsSet() {
		b.hash ^= zobrist.enPassant[ep.FileOf()]
	}
	b.enPassant = ep
}

// setCastles replaces one castling right and keeps the hash in sync.
func (b *Board) setCastles(c Color, d CastlingDirection, f File) {
	if old := b.castlingRights[c].Get(d); old != FileNone {
		b.hash ^= zobrist.castles[c][old]
	}
	if f != FileNone {
		b.hash ^= zobrist.castles[c][f]
	}
	b.castlingRights[c].Set(d, f)
}

// IsLegalThorough returns whether the given move is legal on the
// current board. It uses move generation internally, so it is rather
// slow; in return it can handle any kind of move without requiring
// any invariants of Move to hold.
func (b *Board) IsLegalThorough(mv Move) bool {
	found := false
	b.GenMoves(func(pm PieceMoves) bool {
		for it := pm.Iter(); ; {
			m, ok := it.Next()
			if !ok {
				break
			}
			if m == mv {
				found = true
				return true
			}
		}
		return false
	})
	return found
}

// TerminalState returns whether the game on the board is finished.
// A position with no legal moves is checkmate or stalemate; the 50
// move rule and insufficient material also end the game.
func (b *Board) TerminalState() TerminalState {
	anyLegal := false
	b.GenMoves(func(pm PieceMoves) bool {
		if !pm.IsEmpty() {
			anyLegal = true
			return true
		}
		return false
	})

	if anyLegal {
		if b.halfmoveClock >= 100 || b.InsufficientMaterial() {
			return TerminalDraw
		}
		return TerminalNone
	}
	if !b.checkers.IsEmpty() {
		return TerminalCheckmate
	}
	return TerminalDraw
}

// InsufficientMaterial returns true when neither side can ever
// checkmate. Conditions checked: any pawn, rook or queen is
// sufficient; different colored bishops are sufficient; a bishop and
// a knight are sufficient; two knights are sufficient.
func (b *Board) InsufficientMaterial() bool {
	if !(b.pieces[Pawn] | b.pieces[Rook] | b.pieces[Queen]).IsEmpty() {
		return false
	}
	bishops := b.pieces[Bishop]
	sameColorBishops := bishops&LightSquares == bishops || bishops&DarkSquares == bishops
	if !sameColorBishops {
		return false
	}
	if !bishops.IsEmpty() && !b.pieces[Knight].IsEmpty() {
		return false
	}
	return b.pieces[Knight].PopCount() < 2
}
