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

package execution_test

import (
	"testing"

	"github.com/promarch/promarch/curated"
	"github.com/promarch/promarch/machine/execution"
	"github.com/promarch/promarch/test"
)

func TestReadOccurrences(t *testing.T) {
	sc := execution.NewScratch()
	test.Equate(t, uint64(sc.AllReads()), 0)

	test.Equate(t, sc.RecordRead(4), 0)
	test.Equate(t, sc.RecordRead(2), 1)

	v, err := sc.ReadView(0)
	test.ExpectedSuccess(t, err)
	test.Equate(t, uint64(v), 4)

	v, err = sc.ReadView(1)
	test.ExpectedSuccess(t, err)
	test.Equate(t, uint64(v), 2)

	test.Equate(t, uint64(sc.AllReads()), 4)

	_, err = sc.ReadView(2)
	test.ExpectedFailure(t, err)
	test.Equate(t, curated.Is(err, execution.NoSuchRead), true)

	_, err = sc.ReadView(-1)
	test.ExpectedFailure(t, err)
}

func TestWalks(t *testing.T) {
	sc := execution.NewScratch()

	_, ok := sc.Walk(0x4000)
	test.Equate(t, ok, false)

	sc.StartWalk(0x4000, execution.Walk{Time: 3, Remaining: []uint64{1, 2}, Deadline: 9})
	w, ok := sc.Walk(0x4000)
	test.Equate(t, ok, true)
	test.Equate(t, uint64(w.Time), 3)
	test.Equate(t, len(w.Remaining), 2)
	test.Equate(t, uint64(w.Deadline), 9)

	sc.EndWalk(0x4000)
	_, ok = sc.Walk(0x4000)
	test.Equate(t, ok, false)
}
