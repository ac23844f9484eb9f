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

package execution

import (
	"github.com/promarch/promarch/curated"
	"github.com/promarch/promarch/machine/view"
)

// NoSuchRead is a structural error. A dependency referenced a memory read
// occurrence that has not happened in this instruction.
const NoSuchRead = "execution: no memory read with occurrence %d"

// Walk is the continuation of an in-progress page-table walk: the view the
// walk has accumulated so far, the translation-table-entry values still to be
// consumed, and the invalidation deadline the walk's reads must stay below.
type Walk struct {
	Time      view.View
	Remaining []uint64
	Deadline  view.View
}

// Scratch is the transient state of a single instruction. It is created
// fresh when an instruction starts and discarded when the instruction ends;
// everything with a longer lifetime lives in the thread or memory packages.
type Scratch struct {
	// join of the views of every register read so far this instruction
	RegReads view.View

	// join of the views of every non-register effect so far this
	// instruction. this is the intra-instruction ordering anchor
	Other view.View

	// post-views of the memory reads performed so far, indexed by
	// read-occurrence number. explicit dependencies refer to these indices
	readViews []view.View

	// in-progress page-table walks keyed by virtual-page prefix
	walks map[uint64]Walk
}

// NewScratch is the preferred method of initialisation for the Scratch type.
func NewScratch() *Scratch {
	return &Scratch{
		readViews: make([]view.View, 0),
		walks:     make(map[uint64]Walk),
	}
}

// RecordRead appends the post-view of a memory read and returns its
// occurrence number.
func (sc *Scratch) RecordRead(v view.View) int {
	sc.readViews = append(sc.readViews, v)
	return len(sc.readViews) - 1
}

// ReadView returns the post-view of the memory read with the given occurrence
// number.
func (sc *Scratch) ReadView(i int) (view.View, error) {
	if i < 0 || i >= len(sc.readViews) {
		return view.Zero, curated.Errorf(NoSuchRead, i)
	}
	return sc.readViews[i], nil
}

// AllReads returns the join of the post-views of every memory read performed
// so far this instruction.
func (sc *Scratch) AllReads() view.View {
	return view.Max(sc.readViews...)
}

// StartWalk records the continuation of a page-table walk for a virtual-page
// prefix.
func (sc *Scratch) StartWalk(prefix uint64, w Walk) {
	sc.walks[prefix] = w
}

// Walk returns the continuation of the in-progress walk for a virtual-page
// prefix, if there is one.
func (sc *Scratch) Walk(prefix uint64) (Walk, bool) {
	w, ok := sc.walks[prefix]
	return w, ok
}

// EndWalk discards the continuation for a virtual-page prefix.
func (sc *Scratch) EndWalk(prefix uint64) {
	delete(sc.walks, prefix)
}
