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

// Fused accumulator update kernels. The move applier chooses one of
// them by the exact multiset shape of the update (1 add / 1 sub for
// quiet moves, 1/2 for captures and en passant, 2/2 for castling), so
// each kernel is a single pass over the hidden layer.

func accAdd(acc *[HL]int16, network *Network, add int) {
	w := network.FtWeight[add*HL : add*HL+HL]
	for i := 0; i < HL; i++ {
		acc[i] += w[i]
	}
}

func accAddSub(src, dst *[HL]int16, network *Network, add, sub int) {
	aw := network.FtWeight[add*HL : add*HL+HL]
	sw := network.FtWeight[sub*HL : sub*HL+HL]
	for i := 0; i < HL; i++ {
		dst[i] = src[i] + aw[i] - sw[i]
	}
}

func accAddSub2(src, dst *[HL]int16, network *Network, add, sub1, sub2 int) {
	aw := network.FtWeight[add*HL : add*HL+HL]
	s1 := network.FtWeight[sub1*HL : sub1*HL+HL]
	s2 := network.FtWeight[sub2*HL : sub2*HL+HL]
	for i := 0; i < HL; i++ {
		dst[i] = src[i] + aw[i] - s1[i] - s2[i]
	}
}

func accAdd2Sub2(src, dst *[HL]int16, network *Network, add1, add2, sub1, sub2 int) {
	a1 := network.FtWeight[add1*HL : add1*HL+HL]
	a2 := network.FtWeight[add2*HL : add2*HL+HL]
	s1 := network.FtWeight[sub1*HL : sub1*HL+HL]
	s2 := network.FtWeight[sub2*HL : sub2*HL+HL]
	for i := 0; i < HL; i++ {
		dst[i] = src[i] + a1[i] + a2[i] - s1[i] - s2[i]
	}
}

// The output layer computes
//
//	sum over i of screlu(us[i])   * usWeight[i]
//	+ sum over i of screlu(them[i]) * themWeight[i]
//
// where screlu(x) = clamp(x, 0, QA)^2 spread over the multiply as
// (clamped*weight)*clamped so every intermediate fits in 32 bits.
// The final score is (sum/QA + bias) * Scale / (QA*QB).
//
// Three kernels exist: a scalar reference and two block shaped
// variants matching 256-bit and 512-bit vector widths (16 and 32
// int16 lanes). All three produce identical int32 results; the
// dispatch is fixed at startup, not per call.

var forward = forwardDispatch()

func forwardDispatch() func(us, them *[HL]int16, network *Network) int32 {
	switch outputKernelWidth {
	case 512:
		return forwardWide512
	case 256:
		return forwardWide256
	default:
		return forwardScalar
	}
}

func screluDot(acc, weights []int16) int32 {
	var output int32
	for i := range acc {
		v := acc[i]
		if v < 0 {
			v = 0
		} else if v > QA {
			v = QA
		}
		output += int32(v*weights[i]) * int32(v)
	}
	return output
}

func finish(output int32, network *Network) int32 {
	output /= QA
	output += int32(network.OutBias)
	output *= Scale
	return output / (QA * QB)
}

// forwardScalar is the reference output kernel.
func forwardScalar(us, them *[HL]int16, network *Network) int32 {
	output := screluDot(us[:], network.OutWeight[:HL])
	output += screluDot(them[:], network.OutWeight[HL:])
	return finish(output, network)
}

// forwardWide256 processes the hidden layer in 16 lane blocks, the
// shape a 256-bit SIMD unit consumes.
func forwardWide256(us, them *[HL]int16, network *Network) int32 {
	const lanes = 16
	var output int32
	for blk := 0; blk < HL; blk += lanes {
		output += screluDot(us[blk:blk+lanes], network.OutWeight[blk:blk+lanes])
		output += screluDot(them[blk:blk+lanes], network.OutWeight[HL+blk:HL+blk+lanes])
	}
	return finish(output, network)
}

// forwardWide512 processes the hidden layer in 32 lane blocks, the
// shape a 512-bit SIMD unit consumes.
func forwardWide512(us, them *[HL]int16, network *Network) int32 {
	const lanes = 32
	var output int32
	for blk := 0; blk < HL; blk += lanes {
		output += screluDot(us[blk:blk+lanes], network.OutWeight[blk:blk+lanes])
		output += screluDot(them[blk:blk+lanes], network.OutWeight[HL+blk:HL+blk+lanes])
	}
	return finish(output, network)
}
