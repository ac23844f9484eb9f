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
	"fmt"

	"github.com/promarch/promarch/curated"
)

// ThreadID identifies one of the logical threads sharing a Memory.
type ThreadID int

// Location identifies an 8-byte memory cell. The low 3 bits of a location are
// always zero.
type Location uint64

// MisalignedLocation is a structural error. The model only supports accesses
// to 8-byte aligned locations.
const MisalignedLocation = "memory: misaligned location %#08x"

// NewLocation creates a Location from a physical address.
func NewLocation(addr uint64) (Location, error) {
	if addr&0b111 != 0 {
		return 0, curated.Errorf(MisalignedLocation, addr)
	}
	return Location(addr), nil
}

// Event is an entry in the global event log. Events are immutable once
// created. The two implementations are Write and TLBInvalidate.
//
// Event implementations are small comparable values. Fulfill() relies on
// events comparing equal with the == operator.
type Event interface {
	String() string

	// distinguishes Event implementations from other comparable types
	event()
}

// Write is a write of an 8-byte value to a location by a thread.
type Write struct {
	Thread ThreadID
	Loc    Location
	Value  uint64
}

func (ev Write) event() {}

func (ev Write) String() string {
	return fmt.Sprintf("w[%d] %#08x = %d", ev.Thread, uint64(ev.Loc), ev.Value)
}

// InvalidateKind is the scope of a TLBInvalidate event.
type InvalidateKind int

// The four supported invalidation scopes.
const (
	// all translations, every address space
	InvalidateAll InvalidateKind = iota

	// all translations for one address space
	InvalidateASID

	// one virtual address, every address space
	InvalidateVA

	// one virtual address in one address space
	InvalidateVAASID
)

// Descriptor identifies the scope of a TLBInvalidate event.
type Descriptor struct {
	Kind InvalidateKind

	// valid for InvalidateASID and InvalidateVAASID
	ASID uint16

	// valid for InvalidateVA and InvalidateVAASID
	VA uint64

	// only invalidate cached last-level walk results
	LastLevel bool
}

// TLBInvalidate is a broadcast TLB maintenance event.
type TLBInvalidate struct {
	Desc Descriptor
}

func (ev TLBInvalidate) event() {}

func (ev TLBInvalidate) String() string {
	switch ev.Desc.Kind {
	case InvalidateAll:
		return "tlbi all"
	case InvalidateASID:
		return fmt.Sprintf("tlbi asid=%d", ev.Desc.ASID)
	case InvalidateVA:
		return fmt.Sprintf("tlbi va=%#08x", ev.Desc.VA)
	case InvalidateVAASID:
		return fmt.Sprintf("tlbi va=%#08x asid=%d", ev.Desc.VA, ev.Desc.ASID)
	}
	return "tlbi ???"
}
