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

package view

// View is a logical timestamp. A view attached to a value or to a thread
// counter means "derived from nothing later than this point of the global
// event log". Views form a join-semilattice under Join with Zero as the
// bottom element.
type View uint64

// Zero is the view before any event. The first event in the event log is
// assigned view 1.
const Zero = View(0)

// Infinity is later than any view that can be assigned to an event.
const Infinity = ^View(0)

// Join returns the least view no earlier than either argument.
func (v View) Join(w View) View {
	if w > v {
		return w
	}
	return v
}

// Meet returns the greatest view no later than either argument.
func (v View) Meet(w View) View {
	if w < v {
		return w
	}
	return v
}

// Max returns the join of any number of views.
func Max(vs ...View) View {
	m := Zero
	for _, v := range vs {
		m = m.Join(v)
	}
	return m
}
