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

package interp

import (
	"github.com/promarch/promarch/curated"
	"github.com/promarch/promarch/machine/effect"
	"github.com/promarch/promarch/machine/execution"
	"github.com/promarch/promarch/machine/memory"
	"github.com/promarch/promarch/machine/thread"
	"github.com/promarch/promarch/machine/view"
)

// Unsupported-operation errors. These indicate model incompleteness, not an
// illegal execution.
const (
	UnsupportedEffect      = "interpreter: unsupported effect %T"
	UnsupportedAccessSize  = "interpreter: unsupported access size of %d bytes"
	UnsupportedFetchSize   = "interpreter: unsupported fetch size of %d bytes"
	UnsupportedRMW         = "interpreter: atomic read-modify-write unsupported"
	UnsupportedRegIndirect = "interpreter: indirect register access unsupported"
	UnsupportedTLBIDomain  = "interpreter: tlb maintenance outside the inner shareable domain unsupported"
	UnsupportedTLBIRegime  = "interpreter: tlb maintenance outside the EL1 regime unsupported"
)

// Structural errors.
const (
	UnknownSysReg    = "interpreter: no value for system register %s"
	BadReadCandidate = "interpreter: read candidate %d out of range"
)

// Picker resolves the nondeterministic choices of the model. The exploration
// harness supplies a Picker per path; enumerating the alternatives across
// paths is the harness's business, the interpreter only ever follows one.
type Picker interface {
	// PickRead selects among the candidate values of a memory read
	PickRead(c []memory.Candidate) int

	// PickSysReg selects among the possibly-visible values of a weak
	// system register read
	PickSysReg(v []thread.RegValue) int

	// Choose yields an arbitrary value of the given width in bits
	Choose(bits int) uint64
}

// Outcome is the result of interpreting one effect. Value is handed back to
// the effect stream. Discard means the tried combination of nondeterministic
// choices is inconsistent with the model's rules and the path must be
// abandoned; it is an expected pruning outcome, not an error.
type Outcome struct {
	Value   uint64
	Discard bool
}

var discard = Outcome{Discard: true}

// Interpreter drives one thread of the machine, one abstract effect at a
// time, against the shared event log.
type Interpreter struct {
	Mem    *memory.Memory
	Thread *thread.Thread
	Picker Picker

	// scratch state of the instruction in progress
	Scratch *execution.Scratch
}

// NewInterpreter is the preferred method of initialisation for the
// Interpreter type.
func NewInterpreter(mem *memory.Memory, th *thread.Thread, picker Picker) *Interpreter {
	return &Interpreter{
		Mem:     mem,
		Thread:  th,
		Picker:  picker,
		Scratch: execution.NewScratch(),
	}
}

// BeginInstruction resets the per-instruction scratch state. Must be called
// at every instruction boundary.
func (in *Interpreter) BeginInstruction() {
	in.Scratch = execution.NewScratch()
}

// depView resolves a dependency specification to a view: the join of the
// current views of the named registers and the post-views of the named
// earlier memory reads. The implicit variant depends on every register read
// and every memory read of the instruction so far.
func (in *Interpreter) depView(d effect.Deps) (view.View, error) {
	if d.All {
		return in.Scratch.RegReads.Join(in.Scratch.AllReads()), nil
	}

	v := view.Zero
	for _, r := range d.Regs {
		rv, err := in.Thread.Reg(r)
		if err != nil {
			return view.Zero, err
		}
		v = v.Join(rv.View)
	}
	for _, i := range d.Reads {
		rv, err := in.Scratch.ReadView(i)
		if err != nil {
			return view.Zero, err
		}
		v = v.Join(rv)
	}

	return v, nil
}

// Step interprets one effect. It either returns an updated machine state (by
// mutating the interpreter's memory, thread and scratch state in place - the
// harness forks values before branching), or an Outcome with Discard set, or
// an error. The three are never conflated: errors are reserved for
// unsupported operations and structural problems.
func (in *Interpreter) Step(ef effect.Effect) (Outcome, error) {
	switch ef := ef.(type) {
	case effect.RegRead:
		rv, err := in.Thread.Reg(ef.Reg)
		if err != nil {
			return Outcome{}, err
		}
		in.Scratch.RegReads = in.Scratch.RegReads.Join(rv.View)
		return Outcome{Value: rv.Value}, nil

	case effect.RegWrite:
		v, err := in.depView(ef.Deps)
		if err != nil {
			return Outcome{}, err
		}
		in.Thread.SetReg(ef.Reg, ef.Value, v)
		return Outcome{}, nil

	case effect.SysRegRead:
		return in.sysRegRead(ef)

	case effect.SysRegWrite:
		v, err := in.depView(ef.Deps)
		if err != nil {
			return Outcome{}, err
		}
		in.Thread.WriteSysReg(ef.Reg, ef.Value, v)
		in.Scratch.Other = in.Scratch.Other.Join(v)
		return Outcome{}, nil

	case effect.MemRead:
		return in.readMem(ef)

	case effect.MemWrite:
		return in.writeMem(ef)

	case effect.IFetch:
		return in.fetch(ef)

	case effect.Branch:
		v, err := in.depView(ef.Deps)
		if err != nil {
			return Outcome{}, err
		}
		in.Thread.Views.Spec = in.Thread.Views.Spec.Join(v)
		in.Scratch.Other = in.Scratch.Other.Join(v)
		return Outcome{}, nil

	case effect.Barrier:
		in.barrier(ef.Kind)
		return Outcome{}, nil

	case effect.TLBI:
		return in.tlbi(ef)

	case effect.ContextSync:
		in.Thread.ContextSync()
		return Outcome{}, nil

	case effect.Choose:
		return Outcome{Value: in.Picker.Choose(ef.Bits) & chooseMask(ef.Bits)}, nil

	case effect.Discard:
		return discard, nil

	case effect.RMW:
		return Outcome{}, curated.Errorf(UnsupportedRMW)

	case effect.RegIndirect:
		return Outcome{}, curated.Errorf(UnsupportedRegIndirect)
	}

	return Outcome{}, curated.Errorf(UnsupportedEffect, ef)
}

func (in *Interpreter) sysRegRead(ef effect.SysRegRead) (Outcome, error) {
	if !ef.Weak {
		rv, ok := in.Thread.SysRegLast(ef.Reg, in.Thread.SyncCursor)
		if !ok {
			return Outcome{}, curated.Errorf(UnknownSysReg, string(ef.Reg))
		}
		in.Scratch.RegReads = in.Scratch.RegReads.Join(rv.View)
		return Outcome{Value: rv.Value}, nil
	}

	vals := in.Thread.SysRegAll(ef.Reg, in.Thread.SyncCursor)
	if len(vals) == 0 {
		return Outcome{}, curated.Errorf(UnknownSysReg, string(ef.Reg))
	}
	rv := vals[in.Picker.PickSysReg(vals)%len(vals)]
	in.Scratch.RegReads = in.Scratch.RegReads.Join(rv.View)
	return Outcome{Value: rv.Value}, nil
}

func chooseMask(bits int) uint64 {
	if bits <= 0 {
		return 0
	}
	if bits >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << bits) - 1
}
