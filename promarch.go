// This file is part of Promarch.
//
// Promarch is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Promarch is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Promarch.  If not, see <https://www.gnu.org/licenses/>.

// Promarch is an operational simulator for a promising-style relaxed memory
// model with virtual-memory support. It enumerates the architecturally legal
// final states of small multi-threaded test programs.
//
// The command runs a single litmus file:
//
//	promarch [flags] test.yaml
//
// See the litmus package for the file format.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/promarch/promarch/harness"
	"github.com/promarch/promarch/litmus"
	"github.com/promarch/promarch/logger"
	"github.com/promarch/promarch/statsview"
)

func run() error {
	echo := flag.Bool("log", false, "echo log entries to stderr")
	stats := flag.Bool("stats", false, "launch statsview profiling server")
	maxPaths := flag.Int("paths", 0, "path budget for the exploration (0 for the default)")
	dump := flag.String("dump", "", "write a graphviz dump of the initial machine state to file")
	flag.Parse()

	if flag.NArg() != 1 {
		return fmt.Errorf("usage: %s [flags] <litmus file>", os.Args[0])
	}

	if *echo {
		logger.SetEcho(os.Stderr)
	}

	if *stats {
		if !statsview.Available() {
			logger.Log("statsview", "not compiled in (build with -tags statsview)")
		} else {
			statsview.Launch(os.Stdout)
		}
	}

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		return err
	}
	defer f.Close()

	t, err := litmus.Load(f)
	if err != nil {
		return err
	}

	if *dump != "" {
		d, err := os.Create(*dump)
		if err != nil {
			return err
		}
		harness.DumpState(d, t.Program.Build())
		d.Close()
	}

	ex := harness.NewExplorer()
	if *maxPaths > 0 {
		ex.MaxPaths = *maxPaths
	}

	res, err := ex.Run(t.Program)
	if err != nil {
		return err
	}

	fmt.Println(t.Name)
	for _, o := range res.Strings() {
		fmt.Printf("  %-40s %d\n", o, res.Outcomes[o])
	}
	fmt.Printf("paths: %d  pruned: %d  states: %d\n",
		res.Paths, res.Pruned, len(res.Outcomes))

	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "* %v\n", err)
		os.Exit(10)
	}
}
