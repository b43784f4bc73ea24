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

package board

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/Sp00ph/icarus/internal/types"
)

func TestStartPos(t *testing.T) {
	b := StartPos()
	assert.Equal(t, White, b.Stm())
	assert.Equal(t, 0, b.HalfmoveClock())
	assert.Equal(t, 1, b.FullmoveCount())
	assert.Equal(t, SqE1, b.King(White))
	assert.Equal(t, SqE8, b.King(Black))
	assert.Equal(t, FileH, b.CastlingRights(White).Get(CastlingShort))
	assert.Equal(t, FileA, b.CastlingRights(Black).Get(CastlingLong))
	assert.Equal(t, StartFen, b.Fen(false))
	assert.Equal(t, 20, len(b.GenAllMoves()))
}

func TestReadFenErrors(t *testing.T) {
	invalid := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR",           // missing fields
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1", // bad stm
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBN1 w KQkq - 0 1", // rook right unbound
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 100 1", // clock too high
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNZ w KQkq - 0 1", // bad piece char
		"8/8/8/8/8/8/8/8 w - - 0 1",                             // no kings
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq e4 0 1", // ep rank not 3/6
	}
	for _, fen := range invalid {
		_, err := ReadFen(fen)
		assert.Error(t, err, "fen should be rejected: %q", fen)
	}
}

// randomWalk plays up to maxPlies random legal moves and calls check
// after every move.
func randomWalk(t *testing.T, rng *rand.Rand, b Board, maxPlies int, check func(*Board)) {
	for ply := 0; ply < maxPlies; ply++ {
		moves := b.GenAllMoves()
		if len(moves) == 0 || b.TerminalState() != TerminalNone {
			return
		}
		b.MakeMove(moves[rng.Intn(len(moves))])
		check(&b)
	}
}

// TestFenRoundTrip: parse(format(p)) == p for positions reached by
// random legal play.
func TestFenRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for game := 0; game < 40; game++ {
		randomWalk(t, rng, StartPos(), 200, func(b *Board) {
			parsed, err := ReadFen(b.Fen(true))
			require.NoError(t, err, "own fen must parse: %s", b.Fen(true))
			assert.Equal(t, *b, parsed, "fen round trip mismatch for %s", b.Fen(true))
		})
	}
}

// TestHashConsistency: the incremental hashes match the from-scratch
// computation (via re-parsing) after every move.
func TestHashConsistency(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	for game := 0; game < 40; game++ {
		randomWalk(t, rng, StartPos(), 120, func(b *Board) {
			fresh, err := ReadFen(b.Fen(true))
			require.NoError(t, err)
			assert.Equal(t, fresh.Hash(), b.Hash())
			assert.Equal(t, fresh.PawnHash(), b.PawnHash())
			assert.Equal(t, fresh.MinorHash(), b.MinorHash())
			assert.Equal(t, fresh.MajorHash(), b.MajorHash())
			assert.Equal(t, fresh.NonPawnHash(White), b.NonPawnHash(White))
			assert.Equal(t, fresh.NonPawnHash(Black), b.NonPawnHash(Black))
		})
	}
}

// TestBoardInvariants: mailbox and bitboards agree, exactly one king
// per side, threat state matches a recomputation.
func TestBoardInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	for game := 0; game < 25; game++ {
		randomWalk(t, rng, StartPos(), 120, func(b *Board) {
			for sq := SqA1; sq <= SqH8; sq++ {
				pt := b.PieceOn(sq)
				if pt == PtNone {
					assert.False(t, b.Occupied().Has(sq))
					continue
				}
				assert.True(t, b.Pieces(pt).Has(sq))
				assert.True(t, b.Occupied().Has(sq))
			}
			assert.Equal(t, 1, b.ColoredPieces(King, White).PopCount())
			assert.Equal(t, 1, b.ColoredPieces(King, Black).PopCount())
			assert.True(t, b.HalfmoveClock() <= 100)

			// en passant descriptor implies a legal capture exists
			if b.EnPassant().IsSet() {
				found := false
				for _, mv := range b.GenAllMoves() {
					if mv.Flag() == EnPassant {
						found = true
						break
					}
				}
				assert.True(t, found, "ep set without legal capture: %s", b.Fen(true))
			}
		})
	}
}

func TestEnPassantOnlyWhenLegal(t *testing.T) {
	// a white double push next to a black pawn on the capture rank
	// sets the descriptor
	b, err := ReadFen("rnbqkbnr/ppp1pppp/8/8/3p4/8/PPPPPPPP/RNBQKBNR w KQkq - 0 3")
	require.NoError(t, err)
	b.MakeMove(NewMove(SqE2, SqE4, Normal))
	assert.True(t, b.EnPassant().IsSet())
	assert.Equal(t, FileE, b.EnPassant().FileOf())
	assert.Equal(t, SqD4.Bb(), b.EnPassant().AttackerBb(Black))

	// a double push nobody can capture leaves the descriptor unset
	s := StartPos()
	s.MakeMove(NewMove(SqE2, SqE4, Normal))
	assert.False(t, s.EnPassant().IsSet())
}

func TestMakeMoveCastling(t *testing.T) {
	b, err := ReadFen("r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	short := NewMove(SqE1, SqH1, Castle)
	require.True(t, b.IsLegal(short))
	b.MakeMove(short)
	assert.Equal(t, King, b.PieceOn(SqG1))
	assert.Equal(t, Rook, b.PieceOn(SqF1))
	assert.Equal(t, PtNone, b.PieceOn(SqE1))
	assert.Equal(t, PtNone, b.PieceOn(SqH1))
	assert.False(t, b.CastlingRights(White).Any())

	long := NewMove(SqE8, SqA8, Castle)
	require.True(t, b.IsLegal(long))
	b.MakeMove(long)
	assert.Equal(t, King, b.PieceOn(SqC8))
	assert.Equal(t, Rook, b.PieceOn(SqD8))
	assert.False(t, b.CastlingRights(Black).Any())
}

// TestFrcCastling exercises the Chess960 edge case where the king
// lands on the rook's origin square.
func TestFrcCastling(t *testing.T) {
	// king f1, rook g1: short castling moves the king to g1 (the
	// rook's square) and the rook to f1 (the king's square)
	b, err := ReadFen("2k5/8/8/8/8/8/8/5KR1 w G - 0 1")
	require.NoError(t, err)
	assert.Equal(t, FileG, b.CastlingRights(White).Get(CastlingShort))

	mv := NewMove(SqF1, SqG1, Castle)
	require.True(t, b.IsLegal(mv), "frc castle must be legal")
	b.MakeMove(mv)
	assert.Equal(t, King, b.PieceOn(SqG1))
	assert.Equal(t, Rook, b.PieceOn(SqF1))
	assert.False(t, b.CastlingRights(White).Any())
}

// TestFrcCastlePinnedRook: a rook pinned to its own king may not be
// castled with (only reachable in Chess960).
func TestFrcCastlePinnedRook(t *testing.T) {
	// white king e1, rook f1 pinned by the rook on h1's file? Use a
	// diagonal pin: black bishop h4 pins the f2... construct with a
	// rook pin along the rank: black rook h1, white king e1, white
	// castling rook f1.
	b, err := ReadFen("4k3/8/8/8/8/8/8/4KR1r w F - 0 1")
	require.NoError(t, err)
	assert.True(t, b.Pinned().Has(SqF1))

	mv := NewMove(SqE1, SqF1, Castle)
	assert.False(t, b.IsLegal(mv), "castling with a pinned rook is illegal")
	for _, legal := range b.GenAllMoves() {
		assert.NotEqual(t, Castle, legal.Flag())
	}
}

func TestTerminalStates(t *testing.T) {
	// fool's mate
	mate, err := ReadFen("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	require.NoError(t, err)
	assert.Equal(t, TerminalCheckmate, mate.TerminalState())

	stalemate, err := ReadFen("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	require.NoError(t, err)
	assert.Equal(t, TerminalDraw, stalemate.TerminalState())

	ongoing := StartPos()
	assert.Equal(t, TerminalNone, ongoing.TerminalState())
}

func TestInsufficientMaterial(t *testing.T) {
	cases := []struct {
		fen  string
		want bool
	}{
		{"8/8/8/3k4/8/8/4K3/8 w - - 0 1", true},            // KK
		{"8/8/8/3k4/8/8/4KB2/8 w - - 0 1", true},           // KBK
		{"8/8/8/3k4/8/8/4KN2/8 w - - 0 1", true},           // KNK
		{"8/8/2b5/3k4/8/8/4KB2/8 w - - 0 1", false},        // opposite bishops
		{"8/8/8/2bk4/8/8/3BK3/8 w - - 0 1", true},          // same colored bishops
		{"8/8/8/3k4/8/8/3NKN2/8 w - - 0 1", false},         // two knights
		{"8/8/8/3k4/8/8/4KP2/8 w - - 0 1", false},          // pawn
		{"8/8/8/3k4/8/8/4KR2/8 w - - 0 1", false},          // rook
	}
	for _, tc := range cases {
		b, err := ReadFen(tc.fen)
		require.NoError(t, err)
		assert.Equal(t, tc.want, b.InsufficientMaterial(), tc.fen)
	}
}

func TestParseMove(t *testing.T) {
	b := StartPos()
	assert.Equal(t, NewMove(SqE2, SqE4, Normal), b.ParseMove("e2e4", false))
	assert.Equal(t, MoveNone, b.ParseMove("e2", false))
	assert.Equal(t, MoveNone, b.ParseMove("z9e4", false))
	assert.Equal(t, NewPromotion(SqE7, SqE8, Queen), b.ParseMove("e7e8q", false))

	castle, err := ReadFen("r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w KQkq - 0 1")
	require.NoError(t, err)
	// standard notation king-to-g1 and FRC king-takes-rook both parse
	assert.Equal(t, NewMove(SqE1, SqH1, Castle), castle.ParseMove("e1g1", false))
	assert.Equal(t, NewMove(SqE1, SqH1, Castle), castle.ParseMove("e1h1", true))
	assert.Equal(t, NewMove(SqE1, SqA1, Castle), castle.ParseMove("e1c1", false))
}
