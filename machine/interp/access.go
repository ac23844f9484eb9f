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
	"github.com/promarch/promarch/curated"
	"github.com/promarch/promarch/machine/effect"
	"github.com/promarch/promarch/machine/memory"
	"github.com/promarch/promarch/machine/thread"
	"github.com/promarch/promarch/machine/view"
)

// barrierFloor is the view every access must order after regardless of its
// dependencies: barriers, context synchronization and earlier acquire-class
// accesses.
func (in *Interpreter) barrierFloor() view.View {
	vs := &in.Thread.Views
	return view.Max(vs.StoreBarrier, vs.LoadBarrier, vs.CSE, vs.Acquire)
}

// readMem interprets an explicit memory read.
//
// The pre-read view is the join of the address-dependency view, the barrier
// floor and the intra-instruction anchor. The coherence view for the location
// is added before consulting Memory, a thread never reads backwards relative
// to its own prior observations. The candidate the Picker selects contributes
// its timestamp as a view unless it hits the thread's forwarding record for
// the location, in which case the cheaper forwarding view applies.
func (in *Interpreter) readMem(ef effect.MemRead) (Outcome, error) {
	if ef.Size != 8 {
		return Outcome{}, curated.Errorf(UnsupportedAccessSize, ef.Size)
	}

	loc, err := memory.NewLocation(ef.Addr)
	if err != nil {
		return Outcome{}, err
	}

	vaddr, err := in.depView(ef.Deps)
	if err != nil {
		return Outcome{}, err
	}

	vbob := in.barrierFloor()
	if ef.Kind != effect.Plain {
		// acquire-class loads also order after prior release stores
		vbob = vbob.Join(in.Thread.Views.Release)
	}

	vpre := view.Max(vaddr, vbob, in.Scratch.Other)
	vread := vpre.Join(in.Thread.Coherence(loc))

	cands := in.Mem.Read(loc, vread)
	i := in.Picker.PickRead(cands)
	if i < 0 || i >= len(cands) {
		return Outcome{}, curated.Errorf(BadReadCandidate, i)
	}
	c := cands[i]

	// the read's view contribution is the selected timestamp, unless the
	// timestamp matches our own forwarding record for the location
	vr := c.Time
	if f, ok := in.Thread.Forward(loc); ok && f.Time == c.Time {
		if f.Exclusive && ef.Kind != effect.Plain {
			vr = f.Time
		} else {
			vr = f.View
		}
	}

	vpost := vpre.Join(vr)

	// a page-table walk read must complete before the invalidation deadline
	// of the walk it belongs to
	if ef.Deadline != view.Zero && vpost > ef.Deadline {
		return discard, nil
	}

	in.Thread.BumpCoherence(loc, c.Time)
	in.Thread.Views.Read = in.Thread.Views.Read.Join(vpost)
	if ef.Kind != effect.Plain {
		in.Thread.Views.Acquire = in.Thread.Views.Acquire.Join(vpost)
	}
	in.Thread.Views.Spec = in.Thread.Views.Spec.Join(vaddr)

	if ef.Exclusive {
		in.Thread.XLoad = &thread.XMark{Time: c.Time, View: vpost}
	}

	in.Scratch.RecordRead(vpost)
	in.Scratch.Other = in.Scratch.Other.Join(vpost)

	return Outcome{Value: c.Value}, nil
}

// writeMem interprets a memory write, exclusive or plain.
//
// The write first tries to fulfill one of the thread's own pending promises;
// failing that it promises a fresh event. Either way the assigned timestamp
// must be strictly later than everything the write depends on and everything
// the thread has already observed of the location, a thread cannot write
// into its own past.
func (in *Interpreter) writeMem(ef effect.MemWrite) (Outcome, error) {
	if ef.Size != 8 {
		return Outcome{}, curated.Errorf(UnsupportedAccessSize, ef.Size)
	}

	loc, err := memory.NewLocation(ef.Addr)
	if err != nil {
		return Outcome{}, err
	}

	// an exclusive store with no outstanding exclusive load is a pruned
	// path, not an error
	if ef.Exclusive && in.Thread.XLoad == nil {
		return discard, nil
	}

	vaddr, err := in.depView(ef.AddrDeps)
	if err != nil {
		return Outcome{}, err
	}
	vdata, err := in.depView(ef.DataDeps)
	if err != nil {
		return Outcome{}, err
	}

	vbob := in.barrierFloor()
	if ef.Kind == effect.Release {
		// release stores order after every prior access
		vbob = vbob.Join(in.Thread.Views.Read).Join(in.Thread.Views.Write)
	}

	vpre := view.Max(vaddr, vdata, in.Thread.Views.Spec, vbob, in.Scratch.Other)

	ev := memory.Write{Thread: in.Thread.ID, Loc: loc, Value: ef.Value}
	t, ok := in.Mem.Fulfill(ev, in.Thread.Promises)
	if !ok {
		t = in.Mem.Promise(ev)
	}

	if vpre.Join(in.Thread.Coherence(loc)) >= t {
		return discard, nil
	}

	if ef.Exclusive {
		if !in.Mem.Exclusive(in.Thread.ID, loc, in.Thread.XLoad.Time, t) {
			return discard, nil
		}
		in.Thread.XLoad = nil
	}

	in.Thread.RemovePromise(t)
	in.Thread.BumpCoherence(loc, t)
	in.Thread.Views.Write = in.Thread.Views.Write.Join(t)
	if ef.Kind == effect.Release {
		in.Thread.Views.Release = in.Thread.Views.Release.Join(t)
	}
	in.Thread.SetForward(loc, thread.FwdItem{
		Time:      t,
		View:      vaddr.Join(vdata),
		Exclusive: ef.Exclusive,
	})
	in.Scratch.Other = in.Scratch.Other.Join(t)

	return Outcome{}, nil
}

// fetch interprets the sequential point-in-time read used for instruction
// fetch. Fetch is the one access allowed to be narrower than 8 bytes. It
// reads at the join of the thread's coherence and context synchronization
// views and does not advance the data-access counters.
func (in *Interpreter) fetch(ef effect.IFetch) (Outcome, error) {
	if ef.Size != 4 && ef.Size != 8 {
		return Outcome{}, curated.Errorf(UnsupportedFetchSize, ef.Size)
	}
	if ef.Addr%uint64(ef.Size) != 0 {
		return Outcome{}, curated.Errorf(memory.MisalignedLocation, ef.Addr)
	}

	loc, err := memory.NewLocation(ef.Addr &^ 0b111)
	if err != nil {
		return Outcome{}, err
	}

	v := in.Thread.Coherence(loc).Join(in.Thread.Views.CSE)
	val, _ := in.Mem.ReadAt(loc, v)

	if ef.Size == 4 {
		// halves of the 8-byte cell are selected little-endian
		if ef.Addr&0b100 != 0 {
			val >>= 32
		}
		val &= 0xffffffff
	}

	return Outcome{Value: val}, nil
}
