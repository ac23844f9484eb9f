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
	"github.com/promarch/promarch/machine/thread"
)

// Deps names what an effect depends on. An effect either depends on an
// explicit set of registers and earlier memory-read occurrences, or it
// conservatively depends on everything the instruction has read so far. The
// implicit case is a deliberate tag rather than an absent value, so that a
// call site cannot under-specify dependencies by accident.
type Deps struct {
	// depend on every prior register read and memory read of the
	// instruction. Regs and Reads must be empty when set
	All bool

	// registers whose current views the effect depends on
	Regs []thread.Register

	// memory-read occurrence numbers (within the instruction) whose
	// post-views the effect depends on
	Reads []int
}

// DepsAll is the conservative dependency on everything the instruction has
// read so far.
var DepsAll = Deps{All: true}

// NoDeps is the explicitly empty dependency set.
var NoDeps = Deps{}

// DepsOn builds an explicit dependency on the named registers.
func DepsOn(regs ...thread.Register) Deps {
	return Deps{Regs: regs}
}

// WithReads adds explicit dependencies on memory-read occurrence numbers.
func (d Deps) WithReads(reads ...int) Deps {
	d.Reads = append(d.Reads, reads...)
	return d
}
