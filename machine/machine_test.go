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

package machine_test

import (
	"testing"

	"github.com/promarch/promarch/machine"
	"github.com/promarch/promarch/machine/isa"
	"github.com/promarch/promarch/machine/memory"
	"github.com/promarch/promarch/machine/thread"
	"github.com/promarch/promarch/test"
)

// freshPicker always selects the newest write among the read candidates, the
// value a sequentially-consistent machine would return. The candidate list is
// newer writes in log order followed by the coherent-before value.
type freshPicker struct{}

func (freshPicker) PickRead(c []memory.Candidate) int {
	if len(c) == 1 {
		return 0
	}
	return len(c) - 2
}

func (freshPicker) PickSysReg(v []thread.RegValue) int {
	return len(v) - 1
}

func (freshPicker) Choose(bits int) uint64 {
	return 0
}

func run(t *testing.T, m *machine.Machine, id memory.ThreadID, prog []isa.Instruction) {
	t.Helper()
	for _, i := range prog {
		disc, err := m.StepInstruction(id, i.NewStream(), freshPicker{})
		test.ExpectedSuccess(t, err)
		test.Equate(t, disc, false)
	}
}

func TestSingleThread(t *testing.T) {
	m := machine.NewMachine(1, nil)
	m.Threads[0].SetReg("x1", 0x1000, 0)

	run(t, m, 0, []isa.Instruction{
		isa.Mov{Rd: "x0", Imm: 5},
		isa.Add{Rd: "x0", Rn: "x0", Imm: 2},
		isa.Str{Rt: "x0", Rn: "x1"},
		isa.Ldr{Rt: "x2", Rn: "x1"},
	})

	val, err := m.RegPlain(0, "x2")
	test.ExpectedSuccess(t, err)
	test.Equate(t, val, 7)
	test.Equate(t, m.NoPendingPromises(0), true)

	img := m.Image(nil, nil)
	test.Equate(t, uint64(img[0x1000]), 7)
	test.Equate(t, uint64(img[0x1001]), 0)
}

func TestMessagePassingCoherent(t *testing.T) {
	m := machine.NewMachine(2, nil)
	m.Threads[0].SetReg("x1", 0x1000, 0)
	m.Threads[0].SetReg("x3", 0x1008, 0)
	m.Threads[1].SetReg("x1", 0x1000, 0)
	m.Threads[1].SetReg("x3", 0x1008, 0)

	run(t, m, 0, []isa.Instruction{
		isa.Mov{Rd: "x0", Imm: 1},
		isa.Str{Rt: "x0", Rn: "x1"},
		isa.Str{Rt: "x0", Rn: "x3"},
	})
	run(t, m, 1, []isa.Instruction{
		isa.Ldr{Rt: "x0", Rn: "x3"},
		isa.Ldr{Rt: "x2", Rn: "x1"},
	})

	// the fresh picker observes both writes
	val, err := m.RegPlain(1, "x0")
	test.ExpectedSuccess(t, err)
	test.Equate(t, val, 1)
	val, err = m.RegPlain(1, "x2")
	test.ExpectedSuccess(t, err)
	test.Equate(t, val, 1)
}

func TestSnapshotIsolation(t *testing.T) {
	m := machine.NewMachine(1, nil)
	m.Threads[0].SetReg("x0", 5, 0)
	m.Threads[0].SetReg("x1", 0x1000, 0)

	cpy := m.Snapshot()
	run(t, m, 0, []isa.Instruction{
		isa.Str{Rt: "x0", Rn: "x1"},
	})

	test.Equate(t, m.Mem.Len(), 1)
	test.Equate(t, cpy.Mem.Len(), 0)

	// the fork can run its own divergent future
	run(t, cpy, 0, []isa.Instruction{
		isa.Mov{Rd: "x0", Imm: 9},
		isa.Str{Rt: "x0", Rn: "x1"},
	})

	val, _ := m.Mem.ReadLast(0x1000)
	test.Equate(t, val, 5)
	val, _ = cpy.Mem.ReadLast(0x1000)
	test.Equate(t, val, 9)
}

func TestExclusiveStatus(t *testing.T) {
	m := machine.NewMachine(1, nil)
	m.Threads[0].SetReg("x1", 0x1000, 0)
	m.Threads[0].SetReg("x2", 1, 0)

	run(t, m, 0, []isa.Instruction{
		isa.Ldr{Rt: "x0", Rn: "x1", Exclusive: true},
		isa.Add{Rd: "x0", Rn: "x0", Imm: 1},
		isa.Str{Rt: "x0", Rn: "x1", Exclusive: true, Rs: "x2"},
	})

	// status register is cleared on success
	val, err := m.RegPlain(0, "x2")
	test.ExpectedSuccess(t, err)
	test.Equate(t, val, 0)

	val, _ = m.Mem.ReadLast(0x1000)
	test.Equate(t, val, 1)
}

func TestSysRegReadDependency(t *testing.T) {
	m := machine.NewMachine(1, nil)
	th := m.Threads[0]

	th.WriteSysReg("ttbr0_el1", 0x2000, 5)
	th.ContextSync()

	run(t, m, 0, []isa.Instruction{
		isa.Mrs{Rt: "x3", Sreg: "ttbr0_el1"},
	})

	// the register carries the view of the system register read, so a
	// later access through it keeps its ordering dependency on the mrs
	rv, err := th.Reg("x3")
	test.ExpectedSuccess(t, err)
	test.Equate(t, rv.Value, 0x2000)
	test.Equate(t, uint64(rv.View), 5)
}
