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
	"golang.org/x/exp/slices"
)

// Image converts the event log into a flat address to byte-value mapping, as
// seen at "infinite" time. Every written location contributes the value of
// its latest write; locations in the footprint that were never written
// contribute the value given by the initial function. A nil initial function
// means initial memory is all zeros.
//
// Image is pure. Calling it twice on the same Memory value yields identical
// mappings.
func (mem *Memory) Image(footprint []Location, initial func(Location) uint64) map[uint64]uint8 {
	locs := make([]Location, 0, len(footprint))
	locs = append(locs, footprint...)
	for _, ev := range mem.events {
		if w, ok := ev.(Write); ok {
			locs = append(locs, w.Loc)
		}
	}
	slices.Sort(locs)
	locs = slices.Compact(locs)

	img := make(map[uint64]uint8, len(locs)*8)
	for _, loc := range locs {
		val, t := mem.ReadLast(loc)
		if t == 0 && initial != nil {
			val = initial(loc)
		}

		// cells are flattened little-endian
		for i := 0; i < 8; i++ {
			img[uint64(loc)+uint64(i)] = uint8(val >> (8 * i))
		}
	}

	return img
}
