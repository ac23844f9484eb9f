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

package effect

import (
	"github.com/promarch/promarch/machine/memory"
	"github.com/promarch/promarch/machine/thread"
	"github.com/promarch/promarch/machine/view"
)

// Effect is one abstract effect of an instruction. The instruction-semantics
// component produces a stream of effects and the interpreter consumes them
// one at a time, handing each effect's result back to the stream.
type Effect interface {
	effect()
}

// AccessKind classifies a memory access.
type AccessKind int

// The supported access kinds. Acquire applies to reads, Release to writes.
const (
	Plain AccessKind = iota
	Acquire
	Release
)

func (k AccessKind) String() string {
	switch k {
	case Plain:
		return "plain"
	case Acquire:
		return "acquire"
	case Release:
		return "release"
	}
	return "???"
}

// RegRead reads the current value of an application register. The result of
// the effect is the register's value.
type RegRead struct {
	Reg thread.Register
}

// RegWrite sets an application register. The register's new view is the
// resolved dependency view.
type RegWrite struct {
	Reg   thread.Register
	Value uint64
	Deps  Deps
}

// SysRegRead reads a system register. A non-weak read returns the last value
// definitely visible at the thread's synchronization cursor. A weak read may
// return any value possibly visible, chosen nondeterministically.
type SysRegRead struct {
	Reg  thread.SysRegister
	Weak bool
}

// SysRegWrite appends to the system register write history. The write only
// settles at the next context synchronization event.
type SysRegWrite struct {
	Reg   thread.SysRegister
	Value uint64
	Deps  Deps
}

// MemRead is an explicit memory read. Size must be 8. The result of the
// effect is the value read.
//
// A non-zero Deadline is an invalidation deadline: the read's post-view must
// not exceed it or the path is discarded. Deadlines are used by page-table
// walk reads to enforce translation staleness bounds.
type MemRead struct {
	Kind      AccessKind
	Addr      uint64
	Size      int
	Exclusive bool
	Deps      Deps
	Deadline  view.View
}

// MemWrite is a memory write. Size must be 8. Address and data dependencies
// are resolved separately.
type MemWrite struct {
	Kind      AccessKind
	Addr      uint64
	Size      int
	Value     uint64
	Exclusive bool
	AddrDeps  Deps
	DataDeps  Deps
}

// IFetch is the sequential point-in-time read used for instruction fetch.
// Size may be 4 or 8. The result of the effect is the value fetched.
type IFetch struct {
	Addr uint64
	Size int
}

// Branch resolves a branch on the values named by Deps.
type Branch struct {
	Deps Deps
}

// BarrierKind enumerates the barrier effects.
type BarrierKind int

// The supported barriers. The load/store/full split selects which access
// classes the barrier orders.
const (
	DMBLoad BarrierKind = iota
	DMBStore
	DMBFull
	DSBLoad
	DSBStore
	DSBFull
	ISB
)

func (k BarrierKind) String() string {
	switch k {
	case DMBLoad:
		return "dmb ld"
	case DMBStore:
		return "dmb st"
	case DMBFull:
		return "dmb sy"
	case DSBLoad:
		return "dsb ld"
	case DSBStore:
		return "dsb st"
	case DSBFull:
		return "dsb sy"
	case ISB:
		return "isb"
	}
	return "???"
}

// Barrier is a barrier effect.
type Barrier struct {
	Kind BarrierKind
}

// Shareability is the shareability domain of a TLBI operation.
type Shareability int

// Shareability domains. Only InnerShareable operations are modelled.
const (
	NonShareable Shareability = iota
	InnerShareable
	OuterShareable
)

// Regime is the translation regime a TLBI operation applies to.
type Regime int

// Translation regimes. Only RegimeEL1 operations are modelled.
const (
	RegimeEL1 Regime = iota
	RegimeEL2
	RegimeEL3
)

// TLBI is a TLB maintenance effect.
type TLBI struct {
	Kind      memory.InvalidateKind
	ASID      uint16
	VA        uint64
	LastLevel bool
	Share     Shareability
	Regime    Regime
	Deps      Deps
}

// ContextSync performs a full context synchronization. Produced for
// return-from-exception and at thread termination.
type ContextSync struct{}

// Choose yields an arbitrary value of the given width in bits, chosen
// nondeterministically. The result of the effect is the chosen value.
type Choose struct {
	Bits int
}

// Discard abandons the current execution path. Not an error: the exploration
// harness simply stops exploring the branch.
type Discard struct{}

// RMW is an atomic read-modify-write. The model does not support it; the
// interpreter reports a named unsupported-operation error.
type RMW struct {
	Addr uint64
}

// RegIndirect is an indirect register access. The model does not support it;
// the interpreter reports a named unsupported-operation error.
type RegIndirect struct {
	Reg thread.Register
}

func (RegRead) effect()     {}
func (RegWrite) effect()    {}
func (SysRegRead) effect()  {}
func (SysRegWrite) effect() {}
func (MemRead) effect()     {}
func (MemWrite) effect()    {}
func (IFetch) effect()      {}
func (Branch) effect()      {}
func (Barrier) effect()     {}
func (TLBI) effect()        {}
func (ContextSync) effect() {}
func (Choose) effect()      {}
func (Discard) effect()     {}
func (RMW) effect()         {}
func (RegIndirect) effect() {}

// Stream is the per-instruction effect stream produced by the
// instruction-semantics component. Next is called with the result of the
// previous effect (zero for the first call) and returns the next effect, or
// false when the instruction's effects are exhausted.
type Stream interface {
	Next(result uint64) (Effect, bool)
}
