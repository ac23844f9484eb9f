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
	"github.com/promarch/promarch/machine/memory"
	"github.com/promarch/promarch/machine/thread"
)

// Barrier is a dmb, dsb or isb instruction.
type Barrier struct {
	Kind effect.BarrierKind
}

func (i Barrier) String() string {
	return i.Kind.String()
}

func (i Barrier) Registers() []thread.Register {
	return nil
}

func (i Barrier) NewStream() effect.Stream {
	return &barrierStream{i: i}
}

type barrierStream struct {
	i    Barrier
	step int
}

func (s *barrierStream) Next(result uint64) (effect.Effect, bool) {
	if s.step > 0 {
		return nil, false
	}
	s.step++
	return effect.Barrier{Kind: s.i.Kind}, true
}

// Tlbi is an inner-shareable EL1 TLB maintenance instruction.
type Tlbi struct {
	Kind      memory.InvalidateKind
	ASID      uint16
	VA        uint64
	LastLevel bool
}

func (i Tlbi) String() string {
	return memory.TLBInvalidate{Desc: memory.Descriptor{
		Kind: i.Kind, ASID: i.ASID, VA: i.VA, LastLevel: i.LastLevel,
	}}.String()
}

func (i Tlbi) Registers() []thread.Register {
	return nil
}

func (i Tlbi) NewStream() effect.Stream {
	return &tlbiStream{i: i}
}

type tlbiStream struct {
	i    Tlbi
	step int
}

func (s *tlbiStream) Next(result uint64) (effect.Effect, bool) {
	if s.step > 0 {
		return nil, false
	}
	s.step++
	return effect.TLBI{
		Kind:      s.i.Kind,
		ASID:      s.i.ASID,
		VA:        s.i.VA,
		LastLevel: s.i.LastLevel,
		Share:     effect.InnerShareable,
		Regime:    effect.RegimeEL1,
		Deps:      effect.NoDeps,
	}, true
}

// Mrs reads a system register into Rt.
type Mrs struct {
	Rt   thread.Register
	Sreg thread.SysRegister

	// a weak read may observe any unsettled write to the register
	Weak bool
}

func (i Mrs) String() string {
	return fmt.Sprintf("mrs %s, %s", i.Rt, i.Sreg)
}

func (i Mrs) Registers() []thread.Register {
	return []thread.Register{i.Rt}
}

func (i Mrs) NewStream() effect.Stream {
	return &mrsStream{i: i}
}

type mrsStream struct {
	i    Mrs
	step int
}

func (s *mrsStream) Next(result uint64) (effect.Effect, bool) {
	defer func() { s.step++ }()
	switch s.step {
	case 0:
		return effect.SysRegRead{Reg: s.i.Sreg, Weak: s.i.Weak}, true
	case 1:
		// the register inherits the view of the system register read
		return effect.RegWrite{Reg: s.i.Rt, Value: result, Deps: effect.DepsAll}, true
	}
	return nil, false
}

// Msr writes Rt to a system register. The write settles at the next context
// synchronization event.
type Msr struct {
	Sreg thread.SysRegister
	Rt   thread.Register
}

func (i Msr) String() string {
	return fmt.Sprintf("msr %s, %s", i.Sreg, i.Rt)
}

func (i Msr) Registers() []thread.Register {
	return []thread.Register{i.Rt}
}

func (i Msr) NewStream() effect.Stream {
	return &msrStream{i: i}
}

type msrStream struct {
	i    Msr
	step int
}

func (s *msrStream) Next(result uint64) (effect.Effect, bool) {
	defer func() { s.step++ }()
	switch s.step {
	case 0:
		return effect.RegRead{Reg: s.i.Rt}, true
	case 1:
		return effect.SysRegWrite{
			Reg:   s.i.Sreg,
			Value: result,
			Deps:  effect.DepsOn(s.i.Rt),
		}, true
	}
	return nil, false
}

// Eret returns from an exception: a full context synchronization.
type Eret struct{}

func (i Eret) String() string {
	return "eret"
}

func (i Eret) Registers() []thread.Register {
	return nil
}

func (i Eret) NewStream() effect.Stream {
	return &eretStream{}
}

type eretStream struct {
	step int
}

func (s *eretStream) Next(result uint64) (effect.Effect, bool) {
	if s.step > 0 {
		return nil, false
	}
	s.step++
	return effect.ContextSync{}, true
}
