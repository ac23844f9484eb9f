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

package harness_test

import (
	"bytes"
	"testing"

	"github.com/promarch/promarch/curated"
	"github.com/promarch/promarch/harness"
	"github.com/promarch/promarch/machine/effect"
	"github.com/promarch/promarch/machine/isa"
	"github.com/promarch/promarch/machine/memory"
	"github.com/promarch/promarch/machine/thread"
	"github.com/promarch/promarch/test"
)

const (
	addrX = memory.Location(0x1000)
	addrY = memory.Location(0x1008)
)

// messagePassing is the MP litmus shape: one thread writes data then flag,
// the other reads flag then data. The barrier arguments are inserted between
// the two accesses of each thread.
func messagePassing(writer, reader []isa.Instruction) *harness.Program {
	w := []isa.Instruction{
		isa.Mov{Rd: "x0", Imm: 1},
		isa.Str{Rt: "x0", Rn: "x1"},
	}
	w = append(w, writer...)
	w = append(w, isa.Str{Rt: "x0", Rn: "x3"})

	r := []isa.Instruction{
		isa.Ldr{Rt: "x0", Rn: "x3"},
	}
	r = append(r, reader...)
	r = append(r, isa.Ldr{Rt: "x2", Rn: "x1"})

	regs := map[thread.Register]uint64{"x1": uint64(addrX), "x3": uint64(addrY)}
	return &harness.Program{
		Threads:  [][]isa.Instruction{w, r},
		InitRegs: []map[thread.Register]uint64{regs, regs},
		Observe: []harness.Observed{
			{Thread: 1, Reg: "x0"},
			{Thread: 1, Reg: "x2"},
		},
	}
}

func TestMessagePassingRelaxed(t *testing.T) {
	res, err := harness.NewExplorer().Run(messagePassing(nil, nil))
	test.ExpectedSuccess(t, err)

	// without barriers all four outcomes are reachable, including the one
	// where the flag is seen but the data is not
	test.Equate(t, len(res.Outcomes), 4)
	if res.Outcomes["1:x0=1; 1:x2=0;"] == 0 {
		t.Errorf("relaxed outcome not reachable without barriers: %v", res.Strings())
	}
}

func TestMessagePassingBarriers(t *testing.T) {
	res, err := harness.NewExplorer().Run(messagePassing(
		[]isa.Instruction{isa.Barrier{Kind: effect.DMBFull}},
		[]isa.Instruction{isa.Barrier{Kind: effect.DMBFull}},
	))
	test.ExpectedSuccess(t, err)

	// the barriers forbid seeing the flag without the data
	test.Equate(t, len(res.Outcomes), 3)
	if res.Outcomes["1:x0=1; 1:x2=0;"] != 0 {
		t.Errorf("paired barriers did not forbid the relaxed outcome")
	}
}

func TestMessagePassingAcquireRelease(t *testing.T) {
	prog := messagePassing(nil, nil)

	// stlr for the flag write, ldar for the flag read
	prog.Threads[0][2] = isa.Str{Rt: "x0", Rn: "x3", Kind: effect.Release}
	prog.Threads[1][0] = isa.Ldr{Rt: "x0", Rn: "x3", Kind: effect.Acquire}

	res, err := harness.NewExplorer().Run(prog)
	test.ExpectedSuccess(t, err)

	test.Equate(t, len(res.Outcomes), 3)
	if res.Outcomes["1:x0=1; 1:x2=0;"] != 0 {
		t.Errorf("release/acquire pair did not forbid the relaxed outcome")
	}
}

func TestStoreBuffering(t *testing.T) {
	regs := map[thread.Register]uint64{"x1": uint64(addrX), "x3": uint64(addrY)}
	prog := &harness.Program{
		Threads: [][]isa.Instruction{
			{
				isa.Mov{Rd: "x0", Imm: 1},
				isa.Str{Rt: "x0", Rn: "x1"},
				isa.Ldr{Rt: "x2", Rn: "x3"},
			},
			{
				isa.Mov{Rd: "x0", Imm: 1},
				isa.Str{Rt: "x0", Rn: "x3"},
				isa.Ldr{Rt: "x2", Rn: "x1"},
			},
		},
		InitRegs: []map[thread.Register]uint64{regs, regs},
		Observe: []harness.Observed{
			{Thread: 0, Reg: "x2"},
			{Thread: 1, Reg: "x2"},
		},
	}

	res, err := harness.NewExplorer().Run(prog)
	test.ExpectedSuccess(t, err)

	// both threads may miss each other's store
	test.Equate(t, len(res.Outcomes), 4)
	if res.Outcomes["0:x2=0; 1:x2=0;"] == 0 {
		t.Errorf("store buffering outcome not reachable: %v", res.Strings())
	}
}

func TestExclusiveIncrement(t *testing.T) {
	regs := map[thread.Register]uint64{"x1": uint64(addrX)}
	inc := func() []isa.Instruction {
		return []isa.Instruction{
			isa.Ldr{Rt: "x0", Rn: "x1", Exclusive: true},
			isa.Add{Rd: "x0", Rn: "x0", Imm: 1},
			isa.Str{Rt: "x0", Rn: "x1", Exclusive: true, Rs: "x2"},
		}
	}

	prog := &harness.Program{
		Threads:   [][]isa.Instruction{inc(), inc()},
		InitRegs:  []map[thread.Register]uint64{regs, regs},
		Locations: []memory.Location{addrX},
	}

	res, err := harness.NewExplorer().Run(prog)
	test.ExpectedSuccess(t, err)

	// every completing path increments atomically twice; interleavings
	// that break an exclusive pair are pruned, not lost updates
	test.Equate(t, len(res.Outcomes), 1)
	if res.Outcomes["[0x1000]=2;"] == 0 {
		t.Errorf("exclusive increment outcomes wrong: %v", res.Strings())
	}
	if res.Pruned == 0 {
		t.Errorf("no interleaving was pruned by the exclusivity check")
	}
}

func TestPathBudget(t *testing.T) {
	ex := harness.NewExplorer()
	ex.MaxPaths = 2

	_, err := ex.Run(messagePassing(nil, nil))
	test.ExpectedFailure(t, err)
	test.Equate(t, curated.Is(err, harness.TooManyPaths), true)
}

func TestFootprint(t *testing.T) {
	prog := &harness.Program{
		Init:      map[memory.Location]uint64{addrY: 1, addrX: 2},
		Locations: []memory.Location{addrX},
	}

	fp := prog.Footprint()
	test.Equate(t, len(fp), 2)
	test.Equate(t, uint64(fp[0]), uint64(addrX))
	test.Equate(t, uint64(fp[1]), uint64(addrY))
}

func TestDumpState(t *testing.T) {
	b := &bytes.Buffer{}
	harness.DumpState(b, messagePassing(nil, nil).Build())
	if b.Len() == 0 {
		t.Errorf("empty state dump")
	}
}
