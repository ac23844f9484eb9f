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
	"github.com/promarch/promarch/curated"
	"github.com/promarch/promarch/machine/memory"
	"github.com/promarch/promarch/machine/tlb"
	"github.com/promarch/promarch/machine/view"
)

// Register names an application register. Register names are supplied by the
// instruction-semantics component, the thread state does not interpret them.
type Register string

// UnknownRegister is a structural error. It indicates a register name with no
// mapping in either the live register file or the initial snapshot.
const UnknownRegister = "thread: no mapping for register %s"

// RegValue is the value of a register together with the view the value was
// derived from.
type RegValue struct {
	Value uint64
	View  view.View
}

// FwdItem records the most recent write a thread made to a location. A read
// that selects that write from Memory may use the recorded view rather than
// the write's timestamp, modelling store forwarding.
type FwdItem struct {
	// timestamp of the forwarded write
	Time view.View

	// post-view of the forwarded write (join of its address and data views)
	View view.View

	// the forwarded write was a store exclusive
	Exclusive bool
}

// XMark marks an outstanding exclusive load not yet matched by its store.
type XMark struct {
	// timestamp of the event the exclusive load read from
	Time view.View

	// post-view of the exclusive load
	View view.View
}

// Thread is the per-thread state of the promising machine. All operations on
// a Thread are deterministic field updates, nondeterminism lives entirely in
// the interpreter's interaction with Memory.
type Thread struct {
	ID memory.ThreadID

	// timestamps of events promised to Memory but not yet justified by
	// program order. oldest first
	Promises []view.View

	// live register file. registers never written fall back to the initial
	// snapshot
	regs     map[Register]RegValue
	initRegs map[Register]RegValue

	// per-location floor below which this thread may no longer read
	coh map[memory.Location]view.View

	// monotone view counters
	Views Views

	// per-location forwarding database
	fwd map[memory.Location]FwdItem

	// outstanding exclusive load, nil when no exclusive access is in flight
	XLoad *XMark

	// system register write history and the synchronization cursor. see
	// sysreg.go
	sysregs     []SysRegWrite
	initSysregs map[SysRegister]RegValue
	SyncCursor  int

	// for each TLB maintenance timestamp, the synchronization cursor frozen
	// at the time the maintenance became visible to the MMU
	mmu map[view.View]int

	// cached translations. attached here because translation visibility is
	// per-thread
	TLB *tlb.Cache
}

// NewThread is the preferred method of initialisation for the Thread type.
// The initial register snapshots may be nil.
func NewThread(id memory.ThreadID, initRegs map[Register]RegValue, initSysregs map[SysRegister]RegValue) *Thread {
	return &Thread{
		ID:          id,
		Promises:    make([]view.View, 0),
		regs:        make(map[Register]RegValue),
		initRegs:    initRegs,
		coh:         make(map[memory.Location]view.View),
		fwd:         make(map[memory.Location]FwdItem),
		sysregs:     make([]SysRegWrite, 0),
		initSysregs: initSysregs,
		mmu:         make(map[view.View]int),
		TLB:         tlb.NewCache(),
	}
}

// Snapshot creates a copy of the Thread in its current state. The copy shares
// nothing with the original except the immutable initial snapshots.
func (th *Thread) Snapshot() *Thread {
	n := *th

	n.Promises = make([]view.View, len(th.Promises))
	copy(n.Promises, th.Promises)

	n.regs = make(map[Register]RegValue, len(th.regs))
	for k, v := range th.regs {
		n.regs[k] = v
	}

	n.coh = make(map[memory.Location]view.View, len(th.coh))
	for k, v := range th.coh {
		n.coh[k] = v
	}

	n.fwd = make(map[memory.Location]FwdItem, len(th.fwd))
	for k, v := range th.fwd {
		n.fwd[k] = v
	}

	if th.XLoad != nil {
		x := *th.XLoad
		n.XLoad = &x
	}

	n.sysregs = make([]SysRegWrite, len(th.sysregs))
	copy(n.sysregs, th.sysregs)

	n.mmu = make(map[view.View]int, len(th.mmu))
	for k, v := range th.mmu {
		n.mmu[k] = v
	}

	n.TLB = th.TLB.Snapshot()

	return &n
}

// Reg returns the current value and view of a register, falling back to the
// initial snapshot for registers never written. Returns the UnknownRegister
// error for a register absent from both.
func (th *Thread) Reg(r Register) (RegValue, error) {
	if v, ok := th.regs[r]; ok {
		return v, nil
	}
	if v, ok := th.initRegs[r]; ok {
		return v, nil
	}
	return RegValue{}, curated.Errorf(UnknownRegister, string(r))
}

// SetReg sets the value and view of a register.
func (th *Thread) SetReg(r Register, val uint64, v view.View) {
	th.regs[r] = RegValue{Value: val, View: v}
}

// RegPlain returns the view-stripped value of a register. Used for observing
// final results once an exploration path has run to completion.
func (th *Thread) RegPlain(r Register) (uint64, error) {
	rv, err := th.Reg(r)
	return rv.Value, err
}

// Coherence returns the per-location coherence view. Locations never accessed
// by this thread report the zero view.
func (th *Thread) Coherence(loc memory.Location) view.View {
	return th.coh[loc]
}

// BumpCoherence raises the per-location coherence view. Coherence views never
// go backwards.
func (th *Thread) BumpCoherence(loc memory.Location, v view.View) {
	th.coh[loc] = th.coh[loc].Join(v)
}

// Forward returns the forwarding record for a location, if there is one.
func (th *Thread) Forward(loc memory.Location) (FwdItem, bool) {
	f, ok := th.fwd[loc]
	return f, ok
}

// SetForward replaces the forwarding record for a location.
func (th *Thread) SetForward(loc memory.Location, f FwdItem) {
	th.fwd[loc] = f
}

// AddPromise appends a timestamp to the pending promise list.
func (th *Thread) AddPromise(t view.View) {
	th.Promises = append(th.Promises, t)
}

// RemovePromise removes a fulfilled timestamp from the pending promise list.
// Removing a timestamp that is not pending is a no-op.
func (th *Thread) RemovePromise(t view.View) {
	for i, p := range th.Promises {
		if p == t {
			th.Promises = append(th.Promises[:i], th.Promises[i+1:]...)
			return
		}
	}
}

// NoPendingPromises reports whether every promise this thread has made has
// been fulfilled. A thread may only terminate legally when this is true.
func (th *Thread) NoPendingPromises() bool {
	return len(th.Promises) == 0
}
