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
	"testing"

	"github.com/promarch/promarch/test"
)

func TestTrailEnumeration(t *testing.T) {
	// two choice points of two options each enumerate four paths in
	// depth-first order
	tr := &trail{}

	paths := make([][2]int, 0, 4)
	for {
		a := tr.next(2)
		b := tr.next(2)
		paths = append(paths, [2]int{a, b})
		if !tr.advance() {
			break
		}
	}

	test.Equate(t, len(paths), 4)
	test.Equate(t, paths[0] == [2]int{0, 0}, true)
	test.Equate(t, paths[1] == [2]int{0, 1}, true)
	test.Equate(t, paths[2] == [2]int{1, 0}, true)
	test.Equate(t, paths[3] == [2]int{1, 1}, true)
}

func TestTrailUnevenTree(t *testing.T) {
	// the second choice point only exists on one side of the first
	tr := &trail{}

	paths := 0
	for {
		if tr.next(2) == 0 {
			tr.next(3)
		}
		paths++
		if !tr.advance() {
			break
		}
	}

	// three paths under the first option, one under the second
	test.Equate(t, paths, 4)
}

func TestTrailSingleOption(t *testing.T) {
	// a single-option choice point contributes no branching
	tr := &trail{}

	paths := 0
	for {
		tr.next(1)
		tr.next(1)
		paths++
		if !tr.advance() {
			break
		}
	}

	test.Equate(t, paths, 1)
}
