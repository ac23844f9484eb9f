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

package harness

import (
	"fmt"
	"strings"

	"github.com/promarch/promarch/curated"
	"github.com/promarch/promarch/logger"
	"github.com/promarch/promarch/machine"
	"github.com/promarch/promarch/machine/isa"
	"github.com/promarch/promarch/machine/memory"
	"github.com/promarch/promarch/machine/thread"
	"github.com/promarch/promarch/machine/view"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// TooManyPaths indicates the exploration tree was larger than the configured
// path budget.
const TooManyPaths = "harness: exploration abandoned after %d paths"

// Observed names a register whose final value is part of a program outcome.
type Observed struct {
	Thread memory.ThreadID
	Reg    thread.Register
}

// Program is a complete multi-threaded test program: straight-line
// instruction sequences per thread, initial memory and register values, and
// the observations that make up an outcome.
type Program struct {
	Threads [][]isa.Instruction

	// initial memory; locations not listed read as zero
	Init map[memory.Location]uint64

	// initial register values per thread; registers an instruction names
	// but the map omits are seeded with zero
	InitRegs []map[thread.Register]uint64

	// the final state observed after each path
	Observe []Observed

	// locations whose final values are part of the outcome
	Locations []memory.Location
}

// Footprint returns the locations the program names: the initial memory and
// the observed locations.
func (p *Program) Footprint() []memory.Location {
	locs := maps.Keys(p.Init)
	locs = append(locs, p.Locations...)
	slices.Sort(locs)
	return slices.Compact(locs)
}

// Build creates the machine in the program's initial state.
func (p *Program) Build() *machine.Machine {
	init := func(loc memory.Location) uint64 {
		return p.Init[loc]
	}

	m := machine.NewMachine(len(p.Threads), init)
	for i, instrs := range p.Threads {
		for _, ins := range instrs {
			for _, r := range ins.Registers() {
				var v uint64
				if i < len(p.InitRegs) {
					v = p.InitRegs[i][r]
				}
				m.Threads[i].SetReg(r, v, view.Zero)
			}
		}
	}
	return m
}

// Result accumulates what an exploration found.
type Result struct {
	// reachable final states and the number of paths that produced each
	Outcomes map[string]int

	// paths abandoned by a discard
	Pruned int

	// total paths walked, pruned included
	Paths int
}

// Strings returns the reachable final states in a stable order.
func (r *Result) Strings() []string {
	s := maps.Keys(r.Outcomes)
	slices.Sort(s)
	return s
}

// Explorer enumerates every path of a program: every thread interleaving at
// instruction granularity and every value selection at every choice point
// the interpreter delegates. State is forked by value from a pristine
// snapshot for every path, nothing is ever undone in place.
type Explorer struct {
	// maximum number of paths before the exploration is abandoned
	MaxPaths int
}

// NewExplorer is the preferred method of initialisation for the Explorer
// type.
func NewExplorer() *Explorer {
	return &Explorer{
		MaxPaths: 1000000,
	}
}

// Run explores the program exhaustively and returns the set of reachable
// final states.
func (ex *Explorer) Run(p *Program) (*Result, error) {
	base := p.Build()
	res := &Result{
		Outcomes: make(map[string]int),
	}

	tr := &trail{}
	for {
		res.Paths++
		if res.Paths > ex.MaxPaths {
			return nil, curated.Errorf(TooManyPaths, ex.MaxPaths)
		}

		pruned, err := ex.walk(p, base.Snapshot(), tr, res)
		if err != nil {
			return nil, err
		}
		if pruned {
			res.Pruned++
		}

		if !tr.advance() {
			break
		}
	}

	logger.Logf("harness", "%d paths, %d pruned, %d outcomes",
		res.Paths, res.Pruned, len(res.Outcomes))

	return res, nil
}

// walk runs one path to completion or to its discard.
func (ex *Explorer) walk(p *Program, m *machine.Machine, tr *trail, res *Result) (bool, error) {
	picker := &pathPicker{tr: tr}

	// program counter per thread
	pcs := make([]int, len(p.Threads))

	for {
		runnable := make([]int, 0, len(p.Threads))
		for i := range p.Threads {
			if pcs[i] < len(p.Threads[i]) {
				runnable = append(runnable, i)
			}
		}
		if len(runnable) == 0 {
			break
		}

		// scheduling is a choice point like any other
		tid := runnable[tr.next(len(runnable))]

		ins := p.Threads[tid][pcs[tid]]
		pcs[tid]++

		discarded, err := m.StepInstruction(memory.ThreadID(tid), ins.NewStream(), picker)
		if err != nil {
			return false, err
		}
		if discarded {
			return true, nil
		}
	}

	// a thread with pending promises has promised a write it never
	// performed; such a path never happens
	for i := range p.Threads {
		if !m.NoPendingPromises(memory.ThreadID(i)) {
			return true, nil
		}
	}

	out, err := ex.observe(p, m)
	if err != nil {
		return false, err
	}
	res.Outcomes[out]++

	return false, nil
}

// observe renders the final state of one completed path.
func (ex *Explorer) observe(p *Program, m *machine.Machine) (string, error) {
	s := strings.Builder{}

	for _, o := range p.Observe {
		v, err := m.RegPlain(o.Thread, o.Reg)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&s, "%d:%s=%d; ", o.Thread, o.Reg, v)
	}

	for _, loc := range p.Locations {
		v, _ := m.Mem.ReadLast(loc)
		fmt.Fprintf(&s, "[%#x]=%d; ", uint64(loc), v)
	}

	return strings.TrimSuffix(s.String(), " "), nil
}
