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

package litmus

import (
	"strings"

	"github.com/promarch/promarch/curated"
	"github.com/promarch/promarch/machine/effect"
	"github.com/promarch/promarch/machine/isa"
	"github.com/promarch/promarch/machine/memory"
	"github.com/promarch/promarch/machine/thread"
)

// Structural errors raised while parsing thread assembly.
const (
	UnknownInstruction = "litmus: unknown instruction %s"
	BadOperands        = "litmus: bad operands for %s"
)

// parseThread parses the assembly text of one thread, one instruction per
// line. Empty lines and lines starting with "//" are skipped.
func parseThread(src string) ([]isa.Instruction, error) {
	instrs := make([]isa.Instruction, 0)

	for _, line := range strings.Split(src, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		ins, err := parseLine(line)
		if err != nil {
			return nil, err
		}
		instrs = append(instrs, ins)
	}

	return instrs, nil
}

// operands are separated by commas; brackets around an address operand are
// decorative
func operands(s string) []string {
	ops := strings.Split(s, ",")
	for i := range ops {
		ops[i] = strings.Trim(strings.TrimSpace(ops[i]), "[]")
	}
	return ops
}

func reg(s string) thread.Register {
	return thread.Register(strings.ToLower(s))
}

func imm(s string) (uint64, error) {
	return parseNumber(strings.TrimPrefix(s, "#"))
}

func parseLine(line string) (isa.Instruction, error) {
	mnem, rest, _ := strings.Cut(strings.ToLower(line), " ")
	ops := operands(rest)

	switch mnem {
	case "mov":
		if len(ops) != 2 {
			return nil, curated.Errorf(BadOperands, mnem)
		}
		v, err := imm(ops[1])
		if err != nil {
			return nil, err
		}
		return isa.Mov{Rd: reg(ops[0]), Imm: v}, nil

	case "add":
		if len(ops) != 3 {
			return nil, curated.Errorf(BadOperands, mnem)
		}
		v, err := imm(ops[2])
		if err != nil {
			return nil, err
		}
		return isa.Add{Rd: reg(ops[0]), Rn: reg(ops[1]), Imm: v}, nil

	case "eor":
		if len(ops) != 3 {
			return nil, curated.Errorf(BadOperands, mnem)
		}
		return isa.Eor{Rd: reg(ops[0]), Rn: reg(ops[1]), Rm: reg(ops[2])}, nil

	case "cbnz":
		if len(ops) < 1 {
			return nil, curated.Errorf(BadOperands, mnem)
		}
		return isa.Cbnz{Rn: reg(ops[0])}, nil

	case "ldr", "ldar", "ldxr", "ldaxr":
		if len(ops) != 2 {
			return nil, curated.Errorf(BadOperands, mnem)
		}
		k := effect.Plain
		if mnem == "ldar" || mnem == "ldaxr" {
			k = effect.Acquire
		}
		x := mnem == "ldxr" || mnem == "ldaxr"
		return isa.Ldr{Rt: reg(ops[0]), Rn: reg(ops[1]), Kind: k, Exclusive: x}, nil

	case "str", "stlr":
		if len(ops) != 2 {
			return nil, curated.Errorf(BadOperands, mnem)
		}
		k := effect.Plain
		if mnem == "stlr" {
			k = effect.Release
		}
		return isa.Str{Rt: reg(ops[0]), Rn: reg(ops[1]), Kind: k}, nil

	case "stxr", "stlxr":
		if len(ops) != 3 {
			return nil, curated.Errorf(BadOperands, mnem)
		}
		k := effect.Plain
		if mnem == "stlxr" {
			k = effect.Release
		}
		return isa.Str{
			Rs: reg(ops[0]), Rt: reg(ops[1]), Rn: reg(ops[2]),
			Kind: k, Exclusive: true,
		}, nil

	case "dmb", "dsb":
		if len(ops) != 1 {
			return nil, curated.Errorf(BadOperands, mnem)
		}
		var k effect.BarrierKind
		switch mnem + " " + ops[0] {
		case "dmb ld":
			k = effect.DMBLoad
		case "dmb st":
			k = effect.DMBStore
		case "dmb sy":
			k = effect.DMBFull
		case "dsb ld":
			k = effect.DSBLoad
		case "dsb st":
			k = effect.DSBStore
		case "dsb sy":
			k = effect.DSBFull
		default:
			return nil, curated.Errorf(BadOperands, mnem)
		}
		return isa.Barrier{Kind: k}, nil

	case "isb":
		return isa.Barrier{Kind: effect.ISB}, nil

	case "eret":
		return isa.Eret{}, nil

	case "mrs":
		if len(ops) != 2 {
			return nil, curated.Errorf(BadOperands, mnem)
		}
		return isa.Mrs{Rt: reg(ops[0]), Sreg: thread.SysRegister(ops[1])}, nil

	case "msr":
		if len(ops) != 2 {
			return nil, curated.Errorf(BadOperands, mnem)
		}
		return isa.Msr{Sreg: thread.SysRegister(ops[0]), Rt: reg(ops[1])}, nil

	case "tlbi":
		return parseTLBI(ops)
	}

	return nil, curated.Errorf(UnknownInstruction, mnem)
}

// parseTLBI understands the inner-shareable EL1 maintenance operations:
//
//	tlbi vmalle1is
//	tlbi aside1is, #asid
//	tlbi vaae1is, #va          (vaale1is for last-level only)
//	tlbi vae1is, #va, #asid    (vale1is for last-level only)
func parseTLBI(ops []string) (isa.Instruction, error) {
	if len(ops) < 1 {
		return nil, curated.Errorf(BadOperands, "tlbi")
	}

	t := isa.Tlbi{}

	switch ops[0] {
	case "vmalle1is":
		t.Kind = memory.InvalidateAll
		return t, nil

	case "aside1is":
		if len(ops) != 2 {
			return nil, curated.Errorf(BadOperands, "tlbi")
		}
		asid, err := imm(ops[1])
		if err != nil {
			return nil, err
		}
		t.Kind = memory.InvalidateASID
		t.ASID = uint16(asid)
		return t, nil

	case "vaae1is", "vaale1is":
		if len(ops) != 2 {
			return nil, curated.Errorf(BadOperands, "tlbi")
		}
		va, err := imm(ops[1])
		if err != nil {
			return nil, err
		}
		t.Kind = memory.InvalidateVA
		t.VA = va
		t.LastLevel = ops[0] == "vaale1is"
		return t, nil

	case "vae1is", "vale1is":
		if len(ops) != 3 {
			return nil, curated.Errorf(BadOperands, "tlbi")
		}
		va, err := imm(ops[1])
		if err != nil {
			return nil, err
		}
		asid, err := imm(ops[2])
		if err != nil {
			return nil, err
		}
		t.Kind = memory.InvalidateVAASID
		t.VA = va
		t.ASID = uint16(asid)
		t.LastLevel = ops[0] == "vale1is"
		return t, nil
	}

	return nil, curated.Errorf(UnknownInstruction, "tlbi "+ops[0])
}
