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

package machine

import (
	"github.com/promarch/promarch/machine/effect"
	"github.com/promarch/promarch/machine/interp"
	"github.com/promarch/promarch/machine/memory"
	"github.com/promarch/promarch/machine/thread"
)

// Machine is the whole promising machine: one shared event log and the state
// of every logical thread. The machine performs no scheduling of its own.
// The exploration harness decides which thread steps next and resolves every
// nondeterministic choice through the Picker it supplies.
type Machine struct {
	Mem     *memory.Memory
	Threads []*thread.Thread
}

// NewMachine is the preferred method of initialisation for the Machine type.
// The initial function gives the architecturally-initial value of every
// memory location; nil means all zeros. Register files start empty, seed
// them with SetReg before running a program.
func NewMachine(numThreads int, initial func(memory.Location) uint64) *Machine {
	m := &Machine{
		Mem:     memory.NewMemory(initial),
		Threads: make([]*thread.Thread, numThreads),
	}
	for i := range m.Threads {
		m.Threads[i] = thread.NewThread(memory.ThreadID(i), nil, nil)
	}
	return m
}

// Snapshot creates a copy of the Machine in its current state. The copy
// shares no mutable state with the original; the exploration harness forks
// the machine with Snapshot before committing to a nondeterministic choice.
func (m *Machine) Snapshot() *Machine {
	n := &Machine{
		Mem:     m.Mem.Snapshot(),
		Threads: make([]*thread.Thread, len(m.Threads)),
	}
	for i := range m.Threads {
		n.Threads[i] = m.Threads[i].Snapshot()
	}
	return n
}

// StepInstruction runs one instruction of one thread to completion: a fresh
// scratch state is created, the instruction's effect stream is pumped through
// the interpreter, and each effect's result is handed back to the stream.
//
// The returned discard flag is true when the path must be abandoned; it is
// not an error. Errors are unsupported operations or structural problems and
// are fatal to the run.
func (m *Machine) StepInstruction(id memory.ThreadID, s effect.Stream, picker interp.Picker) (bool, error) {
	in := interp.NewInterpreter(m.Mem, m.Threads[id], picker)

	result := uint64(0)
	for {
		ef, ok := s.Next(result)
		if !ok {
			return false, nil
		}

		out, err := in.Step(ef)
		if err != nil {
			return false, err
		}
		if out.Discard {
			return true, nil
		}
		result = out.Value
	}
}

// NoPendingPromises reports whether the identified thread has fulfilled every
// promise it has made. A thread may only terminate legally when this is
// true; the harness checks it before accepting a final state.
func (m *Machine) NoPendingPromises(id memory.ThreadID) bool {
	return m.Threads[id].NoPendingPromises()
}

// RegPlain returns the view-stripped value of a register of the identified
// thread. For observing final results.
func (m *Machine) RegPlain(id memory.ThreadID, r thread.Register) (uint64, error) {
	return m.Threads[id].RegPlain(r)
}

// Image converts the event log into a flat address to byte-value mapping.
// See memory.Image.
func (m *Machine) Image(footprint []memory.Location, initial func(memory.Location) uint64) map[uint64]uint8 {
	return m.Mem.Image(footprint, initial)
}
