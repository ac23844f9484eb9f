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
	"github.com/promarch/promarch/machine/effect"
	"github.com/promarch/promarch/machine/view"
)

// barrier interprets a barrier effect. Every barrier kind is a fixed max
// combination of existing counters written back into the barrier counters:
//
//	dmb ld   LoadBarrier  <- Read
//	dmb st   StoreBarrier <- Write
//	dmb sy   both         <- Read |_| Write
//	dsb *    as the dmb of the same class, folding in CSE, ISB and TLBI
//	         (a dsb completes outstanding tlb maintenance)
//	isb      ISB <- Spec |_| CSE |_| SysReg, then a full context
//	         synchronization
func (in *Interpreter) barrier(kind effect.BarrierKind) {
	vs := &in.Thread.Views

	switch kind {
	case effect.DMBLoad:
		vs.LoadBarrier = vs.LoadBarrier.Join(vs.Read)

	case effect.DMBStore:
		vs.StoreBarrier = vs.StoreBarrier.Join(vs.Write)

	case effect.DMBFull:
		v := vs.Read.Join(vs.Write)
		vs.LoadBarrier = vs.LoadBarrier.Join(v)
		vs.StoreBarrier = vs.StoreBarrier.Join(v)

	case effect.DSBLoad:
		v := view.Max(vs.Read, vs.CSE, vs.ISB, vs.TLBI)
		vs.LoadBarrier = vs.LoadBarrier.Join(v)

	case effect.DSBStore:
		v := view.Max(vs.Write, vs.CSE, vs.ISB, vs.TLBI)
		vs.StoreBarrier = vs.StoreBarrier.Join(v)

	case effect.DSBFull:
		v := view.Max(vs.Read, vs.Write, vs.CSE, vs.ISB, vs.TLBI)
		vs.LoadBarrier = vs.LoadBarrier.Join(v)
		vs.StoreBarrier = vs.StoreBarrier.Join(v)

	case effect.ISB:
		vs.ISB = view.Max(vs.ISB, vs.Spec, vs.CSE, vs.SysReg)
		in.Thread.ContextSync()
	}
}
