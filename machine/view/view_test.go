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

package view_test

import (
	"testing"

	"github.com/promarch/promarch/machine/view"
	"github.com/promarch/promarch/test"
)

func TestJoinMeet(t *testing.T) {
	a := view.View(3)
	b := view.View(7)

	test.Equate(t, uint64(a.Join(b)), 7)
	test.Equate(t, uint64(b.Join(a)), 7)
	test.Equate(t, uint64(a.Meet(b)), 3)
	test.Equate(t, uint64(b.Meet(a)), 3)

	// join and meet with self
	test.Equate(t, uint64(a.Join(a)), 3)
	test.Equate(t, uint64(a.Meet(a)), 3)

	// zero is the bottom element
	test.Equate(t, uint64(view.Zero.Join(a)), 3)
	test.Equate(t, uint64(view.Zero.Meet(a)), 0)
}

func TestMax(t *testing.T) {
	test.Equate(t, uint64(view.Max()), 0)
	test.Equate(t, uint64(view.Max(1, 9, 4)), 9)
	test.Equate(t, uint64(view.Max(view.Zero, view.Infinity)), uint64(view.Infinity))
}
