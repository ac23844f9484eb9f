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

package memory

import (
	"github.com/promarch/promarch/machine/view"
)

// Memory is the global append-only event log shared by every thread of the
// machine. The event appended n-th is assigned timestamp n; timestamp 0
// denotes "before any event". Events are never removed, truncation produces a
// non-destructive prefix over the same backing sequence.
type Memory struct {
	events []Event

	// value returned for locations never written to. may be nil in which
	// case initial memory reads as zero
	initial func(Location) uint64
}

// NewMemory is the preferred method of initialisation for the Memory type.
// The initial function gives the architecturally-initial value of every
// location. A nil initial function means initial memory is all zeros.
func NewMemory(initial func(Location) uint64) *Memory {
	return &Memory{
		events:  make([]Event, 0),
		initial: initial,
	}
}

// Snapshot creates a copy of Memory in its current state. The copy does not
// share backing storage with the original, later promises to one are
// invisible to the other.
func (mem *Memory) Snapshot() *Memory {
	n := *mem
	n.events = make([]Event, len(mem.events))
	copy(n.events, mem.events)
	return &n
}

// Len returns the number of events in the log, which is also the timestamp of
// the most recent event.
func (mem *Memory) Len() int {
	return len(mem.events)
}

// At returns the event at timestamp v. There is no event at timestamp 0.
func (mem *Memory) At(v view.View) (Event, bool) {
	if v == view.Zero || v > view.View(len(mem.events)) {
		return nil, false
	}
	return mem.events[v-1], true
}

// Truncate returns the prefix of Memory containing only events with
// timestamps no later than v. Timestamps are preserved. The returned value
// shares backing storage with the original and must not be promised to.
func (mem *Memory) Truncate(v view.View) *Memory {
	if v > view.View(len(mem.events)) {
		v = view.View(len(mem.events))
	}
	return &Memory{
		events:  mem.events[:v],
		initial: mem.initial,
	}
}

// TimedEvent is an event paired with its timestamp. Returned by Since, where
// the position of an event in the returned slice no longer encodes its
// timestamp.
type TimedEvent struct {
	Event Event
	Time  view.View
}

// Since is the complement of Truncate: the events with timestamps strictly
// later than v. Pure, the log is unaffected.
func (mem *Memory) Since(v view.View) []TimedEvent {
	tev := make([]TimedEvent, 0, len(mem.events)-int(v.Meet(view.View(len(mem.events)))))
	for i := int(v); i < len(mem.events); i++ {
		tev = append(tev, TimedEvent{Event: mem.events[i], Time: view.View(i + 1)})
	}
	return tev
}

func (mem *Memory) initialValue(loc Location) uint64 {
	if mem.initial == nil {
		return 0
	}
	return mem.initial(loc)
}

// ReadLast returns the value of the most recent write to loc, along with its
// timestamp. If loc has never been written to, the architecturally-initial
// value is returned with timestamp 0.
func (mem *Memory) ReadLast(loc Location) (uint64, view.View) {
	for i := len(mem.events) - 1; i >= 0; i-- {
		if w, ok := mem.events[i].(Write); ok && w.Loc == loc {
			return w.Value, view.View(i + 1)
		}
	}
	return mem.initialValue(loc), view.Zero
}

// ReadAt is ReadLast restricted to events with timestamps no later than v.
// Used for sequential point-in-time reads such as instruction fetch.
func (mem *Memory) ReadAt(loc Location, v view.View) (uint64, view.View) {
	return mem.Truncate(v).ReadLast(loc)
}

// Candidate is one value a weak-memory read is permitted to return.
type Candidate struct {
	Value uint64
	Time  view.View
}

// Read returns every value a read of loc with pre-view v is permitted to
// return: every write to loc strictly after v, plus the single
// coherent-before-v value. The list is never empty; its last element is
// always the coherent-before-v value. Callers choose among the candidates
// nondeterministically.
func (mem *Memory) Read(loc Location, v view.View) []Candidate {
	c := make([]Candidate, 0, 1)
	for _, tev := range mem.Since(v) {
		if w, ok := tev.Event.(Write); ok && w.Loc == loc {
			c = append(c, Candidate{Value: w.Value, Time: tev.Time})
		}
	}

	val, t := mem.ReadAt(loc, v)
	return append(c, Candidate{Value: val, Time: t})
}

// Promise appends an event to the log and returns its assigned timestamp.
// The event need not be justified by program order yet. The caller records
// the timestamp in its pending promise list until a program-order write
// catches up with it (see Fulfill).
func (mem *Memory) Promise(ev Event) view.View {
	mem.events = append(mem.events, ev)
	return view.View(len(mem.events))
}

// Fulfill returns the oldest timestamp among the caller's pending promises
// whose stored event equals ev exactly. Always preferring the oldest matching
// promise keeps the speculative path sound: fulfilling a newer one would
// leave an older promise of the same event permanently unfulfillable.
//
// Returns false if no pending promise matches, in which case the caller must
// create a fresh promise instead.
func (mem *Memory) Fulfill(ev Event, promises []view.View) (view.View, bool) {
	best := view.Infinity
	for _, p := range promises {
		if e, ok := mem.At(p); ok && e == ev {
			best = best.Meet(p)
		}
	}
	if best == view.Infinity {
		return view.Zero, false
	}
	return best, true
}

// Exclusive is the atomicity check for an exclusive load/store pair by thread
// tid. It holds when no thread other than tid writes to loc strictly between
// timestamps from and to, and the event at from (the one the exclusive load
// read) is itself a write to loc. Timestamp 0 counts as the initial write to
// every location, owned by no thread.
func (mem *Memory) Exclusive(tid ThreadID, loc Location, from, to view.View) bool {
	if from != view.Zero {
		w, ok := mem.At(from)
		if !ok {
			return false
		}
		if ww, ok := w.(Write); !ok || ww.Loc != loc {
			return false
		}
	}

	for t := from + 1; t < to; t++ {
		ev, ok := mem.At(t)
		if !ok {
			break
		}
		if w, ok := ev.(Write); ok && w.Loc == loc && w.Thread != tid {
			return false
		}
	}

	return true
}
