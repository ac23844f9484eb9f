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

package tlb

import (
	"github.com/promarch/promarch/curated"

	"golang.org/x/exp/slices"
)

// NumLevels is the number of page-table walk levels the cache distinguishes.
const NumLevels = 4

// NoSuchLevel is a structural error. Walk levels are indexed 0 to
// NumLevels-1.
const NoSuchLevel = "tlb: no such walk level %d"

// Context keys a cached walk result: the virtual address prefix the walk
// resolved and, unless the translation is global, the address space it was
// resolved in.
type Context struct {
	Prefix uint64
	ASID   uint16

	// a global translation matches every address space
	Global bool
}

// Entry is one cached translation-table-entry vector: the entry values read
// at each step of the walk that produced it.
type Entry []uint64

// Cache is the per-thread translation cache. For every walk level it maps a
// context to the set of entry vectors the thread may still observe. The set
// has more than one element when a stale translation has not yet been
// invalidated from the thread's point of view.
//
// Population of the cache from page-table walks against Memory is an
// extension point; the machine core only requires Get, Add and Union. An
// entry set only ever grows through invalidation-respecting union.
type Cache struct {
	levels [NumLevels]map[Context][]Entry
}

// NewCache is the preferred method of initialisation for the Cache type.
func NewCache() *Cache {
	c := &Cache{}
	for i := range c.levels {
		c.levels[i] = make(map[Context][]Entry)
	}
	return c
}

// Snapshot creates a copy of the Cache in its current state.
func (c *Cache) Snapshot() *Cache {
	n := NewCache()
	n.Union(c)
	return n
}

// Get returns the set of entry vectors cached for a context at a walk level.
// The set may be empty. The returned slice must not be mutated.
func (c *Cache) Get(level int, ctx Context) ([]Entry, error) {
	if level < 0 || level >= NumLevels {
		return nil, curated.Errorf(NoSuchLevel, level)
	}
	return c.levels[level][ctx], nil
}

// Add records an entry vector for a context at a walk level. Adding a vector
// already in the set is a no-op; entry sets only ever grow.
func (c *Cache) Add(level int, ctx Context, e Entry) error {
	if level < 0 || level >= NumLevels {
		return curated.Errorf(NoSuchLevel, level)
	}

	for _, o := range c.levels[level][ctx] {
		if slices.Equal(o, e) {
			return nil
		}
	}

	c.levels[level][ctx] = append(c.levels[level][ctx], slices.Clone(e))
	return nil
}

// Union merges another cache into this one, level-wise and context-wise by
// set union. Used when merging speculative translation knowledge gained from
// different sources.
func (c *Cache) Union(other *Cache) {
	for level := range other.levels {
		for ctx, entries := range other.levels[level] {
			for _, e := range entries {
				// level index is in range by construction
				_ = c.Add(level, ctx, e)
			}
		}
	}
}
