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

package config

// searchConfiguration is a data structure to hold the tuning values of an
// instance of a search. The defaults below are the tuned values; a config
// file can overwrite any of them for experiments.
type searchConfiguration struct {
	// Transposition table
	TTSize int // in MB

	// Number of search threads
	Threads int

	// Reverse futility pruning
	RfpDepth  int
	RfpMargin int

	// Null move pruning
	NmpDepth int

	// Late move pruning / futility / history pruning
	LmpBase       int
	FpDepth       int
	FpBase        int
	FpMargin      int
	HistPruning   int
	HistPrunDepth int

	// SEE pruning
	SeeNoisyMargin int
	SeeNoisyDepth  int
	SeeQuietMargin int
	SeeQuietDepth  int

	// Singular extensions
	SingularDepth  int
	SingularMargin int

	// Quiescence
	QsMoveLimit int
}

// sets defaults which might be overwritten by config file
func init() {
	Settings.Search.TTSize = 16
	Settings.Search.Threads = 1

	Settings.Search.RfpDepth = 6
	Settings.Search.RfpMargin = 80

	Settings.Search.NmpDepth = 3

	Settings.Search.LmpBase = 4096
	Settings.Search.FpDepth = 8
	Settings.Search.FpBase = 100
	Settings.Search.FpMargin = 80
	Settings.Search.HistPruning = -2000
	Settings.Search.HistPrunDepth = 5

	Settings.Search.SeeNoisyMargin = -60
	Settings.Search.SeeNoisyDepth = 10
	Settings.Search.SeeQuietMargin = -100
	Settings.Search.SeeQuietDepth = 10

	Settings.Search.SingularDepth = 8
	Settings.Search.SingularMargin = 2

	Settings.Search.QsMoveLimit = 3
}

// set defaults for configurations here in case a configuration
// is not available from the config file
func setupSearch() {
	if Settings.Search.TTSize <= 0 {
		Settings.Search.TTSize = 16
	}
	if Settings.Search.Threads <= 0 {
		Settings.Search.Threads = 1
	}
}
