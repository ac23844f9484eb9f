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

package thread

import (
	"fmt"

	"github.com/promarch/promarch/machine/view"
)

// Views is the battery of monotone view counters carried by every thread.
// Each counter is the join of the views of every event of its class the
// thread has performed. Counters never decrease; the ordering checks in the
// interpreter rely on that.
type Views struct {
	// any memory read
	Read view.View

	// any memory write
	Write view.View

	// store-class barriers (dmb st and stronger)
	StoreBarrier view.View

	// load-class and full barriers (dmb ld and stronger)
	LoadBarrier view.View

	// instruction synchronization barriers
	ISB view.View

	// speculative operands: resolved branches and address dependencies
	Spec view.View

	// context synchronization events
	CSE view.View

	// TLB maintenance
	TLBI view.View

	// system register writes
	SysReg view.View

	// acquire-class accesses
	Acquire view.View

	// release-class accesses
	Release view.View
}

func (vs Views) String() string {
	return fmt.Sprintf("rd=%d wr=%d bst=%d bld=%d isb=%d spec=%d cse=%d tlbi=%d msr=%d acq=%d rel=%d",
		vs.Read, vs.Write, vs.StoreBarrier, vs.LoadBarrier, vs.ISB,
		vs.Spec, vs.CSE, vs.TLBI, vs.SysReg, vs.Acquire, vs.Release)
}
