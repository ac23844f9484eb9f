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

// Ldr loads Rt from the address in Rn. Kind selects plain or acquire
// semantics; Exclusive marks a load exclusive.
type Ldr struct {
	Rt        thread.Register
	Rn        thread.Register
	Kind      effect.AccessKind
	Exclusive bool
}

func (i Ldr) String() string {
	m := "ldr"
	switch {
	case i.Exclusive && i.Kind == effect.Acquire:
		m = "ldaxr"
	case i.Exclusive:
		m = "ldxr"
	case i.Kind == effect.Acquire:
		m = "ldar"
	}
	return fmt.Sprintf("%s %s, [%s]", m, i.Rt, i.Rn)
}

func (i Ldr) Registers() []thread.Register {
	return []thread.Register{i.Rt, i.Rn}
}

func (i Ldr) NewStream() effect.Stream {
	return &ldrStream{i: i}
}

type ldrStream struct {
	i    Ldr
	step int
}

func (s *ldrStream) Next(result uint64) (effect.Effect, bool) {
	defer func() { s.step++ }()
	switch s.step {
	case 0:
		return effect.RegRead{Reg: s.i.Rn}, true
	case 1:
		return effect.MemRead{
			Kind:      s.i.Kind,
			Addr:      result,
			Size:      8,
			Exclusive: s.i.Exclusive,
			Deps:      effect.DepsOn(s.i.Rn),
		}, true
	case 2:
		// the loaded register depends on the read, not on the address
		return effect.RegWrite{
			Reg:   s.i.Rt,
			Value: result,
			Deps:  effect.Deps{}.WithReads(0),
		}, true
	}
	return nil, false
}

// Str stores Rt to the address in Rn. Kind selects plain or release
// semantics. An exclusive store also names a status register Rs, set to zero
// when the store succeeds.
type Str struct {
	Rt        thread.Register
	Rn        thread.Register
	Kind      effect.AccessKind
	Exclusive bool
	Rs        thread.Register
}

func (i Str) String() string {
	switch {
	case i.Exclusive && i.Kind == effect.Release:
		return fmt.Sprintf("stlxr %s, %s, [%s]", i.Rs, i.Rt, i.Rn)
	case i.Exclusive:
		return fmt.Sprintf("stxr %s, %s, [%s]", i.Rs, i.Rt, i.Rn)
	case i.Kind == effect.Release:
		return fmt.Sprintf("stlr %s, [%s]", i.Rt, i.Rn)
	}
	return fmt.Sprintf("str %s, [%s]", i.Rt, i.Rn)
}

func (i Str) Registers() []thread.Register {
	r := []thread.Register{i.Rt, i.Rn}
	if i.Exclusive {
		r = append(r, i.Rs)
	}
	return r
}

func (i Str) NewStream() effect.Stream {
	return &strStream{i: i}
}

type strStream struct {
	i    Str
	step int
	addr uint64
}

func (s *strStream) Next(result uint64) (effect.Effect, bool) {
	defer func() { s.step++ }()
	switch s.step {
	case 0:
		return effect.RegRead{Reg: s.i.Rn}, true
	case 1:
		s.addr = result
		return effect.RegRead{Reg: s.i.Rt}, true
	case 2:
		return effect.MemWrite{
			Kind:      s.i.Kind,
			Addr:      s.addr,
			Size:      8,
			Value:     result,
			Exclusive: s.i.Exclusive,
			AddrDeps:  effect.DepsOn(s.i.Rn),
			DataDeps:  effect.DepsOn(s.i.Rt),
		}, true
	case 3:
		if !s.i.Exclusive {
			return nil, false
		}
		// reaching here means the exclusive store succeeded; a failed
		// exclusivity check discards the whole path
		return effect.RegWrite{Reg: s.i.Rs, Value: 0, Deps: effect.NoDeps}, true
	}
	return nil, false
}
