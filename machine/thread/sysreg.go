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
	"github.com/promarch/promarch/machine/view"
)

// SysRegister names a system register.
type SysRegister string

// SysRegWrite is one entry in a thread's system register write history.
type SysRegWrite struct {
	Reg   SysRegister
	Value uint64
	View  view.View
}

// WriteSysReg appends an entry to the system register write history. The
// write does not become architecturally settled until the next context
// synchronization event.
func (th *Thread) WriteSysReg(r SysRegister, val uint64, v view.View) {
	th.sysregs = append(th.sysregs, SysRegWrite{Reg: r, Value: val, View: v})
	th.Views.SysReg = th.Views.SysReg.Join(v)
}

// ContextSync performs a context synchronization event: the current length of
// the system register history becomes the new synchronization cursor and the
// CSE counter is raised over everything the synchronization waits for.
func (th *Thread) ContextSync() {
	th.SyncCursor = len(th.sysregs)
	th.Views.CSE = view.Max(th.Views.CSE, th.Views.Spec, th.Views.ISB, th.Views.SysReg)
}

// RecordTLBVisibility records that TLB maintenance at timestamp t becomes
// visible with the system register state frozen at the current
// synchronization cursor.
func (th *Thread) RecordTLBVisibility(t view.View) {
	th.mmu[t] = th.SyncCursor
}

// TLBVisibleCursor returns the synchronization cursor frozen for the TLB
// maintenance at timestamp t, if one was recorded.
func (th *Thread) TLBVisibleCursor(t view.View) (int, bool) {
	c, ok := th.mmu[t]
	return c, ok
}

// SysRegLast returns the last value of a system register definitely visible
// at synchronization point s, where s is a cursor into the write history.
// Entries up to s are settled, the last of them wins. With no settled write
// the initial snapshot applies.
func (th *Thread) SysRegLast(r SysRegister, s int) (RegValue, bool) {
	if s > len(th.sysregs) {
		s = len(th.sysregs)
	}
	for i := s - 1; i >= 0; i-- {
		if th.sysregs[i].Reg == r {
			return RegValue{Value: th.sysregs[i].Value, View: th.sysregs[i].View}, true
		}
	}
	if v, ok := th.initSysregs[r]; ok {
		return v, true
	}
	return RegValue{}, false
}

// SysRegAll returns every value of a system register possibly visible given
// synchronization point s: the definitely-visible value from SysRegLast plus
// every write after s, which may or may not have propagated. This is the
// weak/relaxed system register read.
func (th *Thread) SysRegAll(r SysRegister, s int) []RegValue {
	if s > len(th.sysregs) {
		s = len(th.sysregs)
	}

	all := make([]RegValue, 0, 1)
	if v, ok := th.SysRegLast(r, s); ok {
		all = append(all, v)
	}
	for i := s; i < len(th.sysregs); i++ {
		if th.sysregs[i].Reg == r {
			all = append(all, RegValue{Value: th.sysregs[i].Value, View: th.sysregs[i].View})
		}
	}

	return all
}
