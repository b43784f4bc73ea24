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

package nnue

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sp00ph/icarus/internal/board"
	. "github.com/Sp00ph/icarus/internal/types"
)

func TestLoadNetwork(t *testing.T) {
	net := DefaultNetwork()
	require.NotNil(t, net)

	_, err := LoadNetwork(make([]byte, 100))
	assert.Error(t, err, "wrong sized blob must be rejected")
}

// TestRefreshEquivalence: after any sequence of incremental updates
// the accumulator values equal a from-scratch refresh, bitwise.
func TestRefreshEquivalence(t *testing.T) {
	net := DefaultNetwork()
	rng := rand.New(rand.NewSource(51))

	for game := 0; game < 15; game++ {
		b := board.StartPos()
		n := NewNnue(&b, net)

		for ply := 0; ply < 100; ply++ {
			moves := b.GenAllMoves()
			if len(moves) == 0 || b.TerminalState() != board.TerminalNone {
				break
			}
			mv := moves[rng.Intn(len(moves))]
			old := b
			b.MakeMove(mv)
			n.MakeMove(&old, &b, mv)

			// force the lazy updates, then compare against a fresh
			// stack
			n.update(&b)
			fresh := NewNnue(&b, net)

			assert.Equal(t, fresh.stack[0].Values[White], n.stack[n.idx].Values[White],
				"white accumulator diverged at %s", b.Fen(true))
			assert.Equal(t, fresh.stack[0].Values[Black], n.stack[n.idx].Values[Black],
				"black accumulator diverged at %s", b.Fen(true))
			assert.Equal(t, fresh.Eval(&b), n.Eval(&b))
		}
	}
}

// TestUnmakeRestores: make followed by unmake evaluates like before.
func TestUnmakeRestores(t *testing.T) {
	net := DefaultNetwork()
	b := board.StartPos()
	n := NewNnue(&b, net)

	before := n.Eval(&b)
	for _, mv := range b.GenAllMoves() {
		old := b
		child := b
		child.MakeMove(mv)
		n.MakeMove(&old, &child, mv)
		_ = n.Eval(&child)
		n.UnmakeMove()
		assert.Equal(t, before, n.Eval(&b))
	}
}

// TestKernelEquivalence: the scalar, 256-bit shaped and 512-bit
// shaped output kernels must produce identical results bitwise.
func TestKernelEquivalence(t *testing.T) {
	net := DefaultNetwork()
	rng := rand.New(rand.NewSource(52))

	var us, them [HL]int16
	for i := 0; i < 500; i++ {
		for j := 0; j < HL; j++ {
			us[j] = int16(rng.Intn(1024) - 256)
			them[j] = int16(rng.Intn(1024) - 256)
		}
		want := forwardScalar(&us, &them, net)
		assert.Equal(t, want, forwardWide256(&us, &them, net))
		assert.Equal(t, want, forwardWide512(&us, &them, net))
	}
}

// TestEvalStartposFinite: the evaluation of the start position is an
// ordinary score, not one in the mate range.
func TestEvalStartposFinite(t *testing.T) {
	net := DefaultNetwork()
	b := board.StartPos()
	n := NewNnue(&b, net)
	v := n.Eval(&b)
	assert.False(t, Value(v).IsCheckMateValue())
}

// TestKingBucketReset: a king move across the d/e border triggers a
// refresh and the values still match a from-scratch computation.
func TestKingBucketReset(t *testing.T) {
	net := DefaultNetwork()
	b, err := board.ReadFen("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	n := NewNnue(&b, net)

	mv := b.ParseMove("e1d1", false)
	old := b
	b.MakeMove(mv)
	n.MakeMove(&old, &b, mv)
	n.update(&b)

	fresh := NewNnue(&b, net)
	assert.Equal(t, fresh.stack[0].Values[White], n.stack[n.idx].Values[White])
	assert.Equal(t, fresh.stack[0].Values[Black], n.stack[n.idx].Values[Black])
}
