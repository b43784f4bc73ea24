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

// Package nnue implements the quantized (768 -> HL -> 1) perspective
// network used for evaluation, with an incremental accumulator stack
// and a vectorizable output layer.
package nnue

import (
	_ "embed"
	"encoding/binary"
	"fmt"
)

// Network dimensions and quantization constants. The weight file is a
// raw little endian concatenation of ft weights, ft bias, output
// weights and output bias as int16; its size must match exactly.
const (
	// Input features: side x piece x square
	Input = 768
	// HL is the hidden layer size per perspective
	HL = 128

	// QA is the activation clamp and the feature weight scale
	QA = 255
	// QB is the output weight scale
	QB = 64
	// Scale converts the network output to centipawns
	Scale = 400

	networkSize = 2 * (Input*HL + HL + 2*HL + 1)
)

//go:embed icarus.nnue
var defaultNetBytes []byte

// Network holds the quantized network weights. It is loaded once at
// startup and shared read only between all search threads.
type Network struct {
	FtWeight [Input * HL]int16
	FtBias   [HL]int16
	OutWeight [2 * HL]int16
	OutBias  int16
}

// LoadNetwork reads a network from a raw little endian weight blob.
// The blob size must match the compiled-in architecture exactly.
func LoadNetwork(bytes []byte) (*Network, error) {
	if len(bytes) != networkSize {
		return nil, fmt.Errorf("network size mismatch: got %d bytes, want %d", len(bytes), networkSize)
	}

	net := &Network{}
	off := 0
	read := func() int16 {
		v := int16(binary.LittleEndian.Uint16(bytes[off:]))
		off += 2
		return v
	}

	for i := range net.FtWeight {
		net.FtWeight[i] = read()
	}
	for i := range net.FtBias {
		net.FtBias[i] = read()
	}
	for i := range net.OutWeight {
		net.OutWeight[i] = read()
	}
	net.OutBias = read()

	return net, nil
}

// DefaultNetwork loads the embedded network. A corrupt embedded blob
// is a fatal initialization error.
func DefaultNetwork() *Network {
	net, err := LoadNetwork(defaultNetBytes)
	if err != nil {
		panic(err)
	}
	return net
}
