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

package harness

import (
	"github.com/promarch/promarch/machine/memory"
	"github.com/promarch/promarch/machine/thread"
)

// choice is one resolved nondeterministic choice: which option was taken and
// how many options there were.
type choice struct {
	taken   int
	options int
}

// trail records the choices of one path through the exploration tree. A path
// replays the recorded prefix and takes the first option at every choice
// point beyond it; advance() then rewrites the trail into the next path in
// depth-first order.
type trail struct {
	choices []choice
	pos     int
}

// next resolves a choice point: replay the prefix if still inside it,
// otherwise record a first-option choice.
func (tr *trail) next(options int) int {
	if tr.pos < len(tr.choices) {
		c := tr.choices[tr.pos]
		tr.pos++
		return c.taken
	}

	tr.choices = append(tr.choices, choice{taken: 0, options: options})
	tr.pos++
	return 0
}

// advance rewrites the trail into the next unexplored path. Returns false
// when the whole tree has been explored.
func (tr *trail) advance() bool {
	for i := len(tr.choices) - 1; i >= 0; i-- {
		if tr.choices[i].taken+1 < tr.choices[i].options {
			tr.choices[i].taken++
			tr.choices = tr.choices[:i+1]
			tr.pos = 0
			return true
		}
	}
	return false
}

// pathPicker resolves the interpreter's nondeterministic choices through the
// trail. It implements interp.Picker.
type pathPicker struct {
	tr *trail
}

func (p *pathPicker) PickRead(c []memory.Candidate) int {
	return p.tr.next(len(c))
}

func (p *pathPicker) PickSysReg(v []thread.RegValue) int {
	return p.tr.next(len(v))
}

// chooseBits caps the width of a Choose effect the harness is prepared to
// enumerate exhaustively.
const chooseBits = 8

func (p *pathPicker) Choose(bits int) uint64 {
	if bits > chooseBits {
		bits = chooseBits
	}
	return uint64(p.tr.next(1 << bits))
}
