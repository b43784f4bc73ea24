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

// Icarus is a UCI chess engine. Start it without arguments for the
// interactive UCI loop, or pass UCI commands (e.g. "bench") as
// arguments to run them and exit.
package main

import (
	"flag"
	"fmt"
	"runtime"

	"github.com/pkg/profile"

	"github.com/Sp00ph/icarus/internal/config"
	"github.com/Sp00ph/icarus/internal/search"
	"github.com/Sp00ph/icarus/internal/uci"
)

func main() {
	versionInfo := flag.Bool("version", false, "prints version and exits")
	configFile := flag.String("config", "./config.toml", "path to configuration settings file")
	logLvl := flag.String("loglvl", "", "standard log level\n(critical|error|warning|notice|info|debug)")
	profileCpu := flag.Bool("profile", false, "write a cpu profile for this run")
	flag.Parse()

	if *versionInfo {
		fmt.Printf("Icarus %s (%s)\n", version, runtime.Version())
		return
	}

	if *profileCpu {
		defer profile.Start(profile.ProfilePath(".")).Stop()
	}

	// the config file must be set before Setup() reads it
	config.ConfFile = *configFile
	config.Setup()

	// command line log level overrides config file and defaults
	if lvl, found := config.LogLevels[*logLvl]; found {
		config.LogLevel = lvl
	}

	argv := flag.Args()

	// "bench" as the only argument runs the default benchmark and
	// exits; used by OpenBench style workers.
	if len(argv) == 1 && argv[0] == "bench" {
		search.RunBench(search.DefaultBenchDepth, 1, 16)
		return
	}

	uci.NewUciHandler().Loop(argv)
}

const version = "1.0.0"
