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

package isa

import (
	"fmt"

	"github.com/promarch/promarch/machine/effect"
	"github.com/promarch/promarch/machine/thread"
)

// Instruction is one instruction of a test program. NewStream returns a
// fresh effect stream for one execution of the instruction; streams are
// stateful and must not be shared between executions. Registers lists every
// register the instruction names, so that a runner can seed the register
// file before starting.
type Instruction interface {
	NewStream() effect.Stream
	Registers() []thread.Register
	String() string
}

// Mov loads an immediate into a register.
type Mov struct {
	Rd  thread.Register
	Imm uint64
}

func (i Mov) String() string {
	return fmt.Sprintf("mov %s, #%d", i.Rd, i.Imm)
}

func (i Mov) Registers() []thread.Register {
	return []thread.Register{i.Rd}
}

func (i Mov) NewStream() effect.Stream {
	return &movStream{i: i}
}

type movStream struct {
	i    Mov
	step int
}

func (s *movStream) Next(result uint64) (effect.Effect, bool) {
	if s.step > 0 {
		return nil, false
	}
	s.step++
	return effect.RegWrite{Reg: s.i.Rd, Value: s.i.Imm, Deps: effect.NoDeps}, true
}

// Add computes Rd = Rn + Imm. Rd carries a data dependency on Rn.
type Add struct {
	Rd  thread.Register
	Rn  thread.Register
	Imm uint64
}

func (i Add) String() string {
	return fmt.Sprintf("add %s, %s, #%d", i.Rd, i.Rn, i.Imm)
}

func (i Add) Registers() []thread.Register {
	return []thread.Register{i.Rd, i.Rn}
}

func (i Add) NewStream() effect.Stream {
	return &addStream{i: i}
}

type addStream struct {
	i    Add
	step int
}

func (s *addStream) Next(result uint64) (effect.Effect, bool) {
	defer func() { s.step++ }()
	switch s.step {
	case 0:
		return effect.RegRead{Reg: s.i.Rn}, true
	case 1:
		return effect.RegWrite{
			Reg:   s.i.Rd,
			Value: result + s.i.Imm,
			Deps:  effect.DepsOn(s.i.Rn),
		}, true
	}
	return nil, false
}

// Eor computes Rd = Rn ^ Rm. The classic way of constructing an artificial
// address or data dependency in a litmus test.
type Eor struct {
	Rd thread.Register
	Rn thread.Register
	Rm thread.Register
}

func (i Eor) String() string {
	return fmt.Sprintf("eor %s, %s, %s", i.Rd, i.Rn, i.Rm)
}

func (i Eor) Registers() []thread.Register {
	return []thread.Register{i.Rd, i.Rn, i.Rm}
}

func (i Eor) NewStream() effect.Stream {
	return &eorStream{i: i}
}

type eorStream struct {
	i    Eor
	step int
	n    uint64
}

func (s *eorStream) Next(result uint64) (effect.Effect, bool) {
	defer func() { s.step++ }()
	switch s.step {
	case 0:
		return effect.RegRead{Reg: s.i.Rn}, true
	case 1:
		s.n = result
		return effect.RegRead{Reg: s.i.Rm}, true
	case 2:
		return effect.RegWrite{
			Reg:   s.i.Rd,
			Value: s.n ^ result,
			Deps:  effect.DepsOn(s.i.Rn, s.i.Rm),
		}, true
	}
	return nil, false
}

// Cbnz resolves a control dependency on Rn. Test programs are straight-line,
// so the instruction only contributes the branch-resolution effect; it never
// redirects execution.
type Cbnz struct {
	Rn thread.Register
}

func (i Cbnz) String() string {
	return fmt.Sprintf("cbnz %s, .", i.Rn)
}

func (i Cbnz) Registers() []thread.Register {
	return []thread.Register{i.Rn}
}

func (i Cbnz) NewStream() effect.Stream {
	return &cbnzStream{i: i}
}

type cbnzStream struct {
	i    Cbnz
	step int
}

func (s *cbnzStream) Next(result uint64) (effect.Effect, bool) {
	defer func() { s.step++ }()
	switch s.step {
	case 0:
		return effect.RegRead{Reg: s.i.Rn}, true
	case 1:
		return effect.Branch{Deps: effect.DepsOn(s.i.Rn)}, true
	}
	return nil, false
}
