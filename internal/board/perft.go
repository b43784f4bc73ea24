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

// Perft returns the number of leaf nodes of the legal move tree of the
// given depth. In bulk mode the last ply is not made on the board;
// instead the sizes of the generated move batches are summed, which is
// considerably faster and exercises the same generator.
func Perft(b *Board, depth int, bulk bool) uint64 {
	if depth == 0 {
		return 1
	}

	if bulk && depth == 1 {
		var count uint64
		b.GenMoves(func(pm PieceMoves) bool {
			count += uint64(pm.Len())
			return false
		})
		return count
	}

	var nodes uint64
	b.GenMoves(func(pm PieceMoves) bool {
		for it := pm.Iter(); ; {
			mv, ok := it.Next()
			if !ok {
				break
			}
			child := *b
			child.MakeMove(mv)
			nodes += Perft(&child, depth-1, bulk)
		}
		return false
	})

	return nodes
}
