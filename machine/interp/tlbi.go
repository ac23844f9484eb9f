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
	"github.com/promarch/promarch/machine/view"
)

// tlbi interprets a TLB maintenance effect. Maintenance runs the same
// promise-or-fulfill protocol as a data write, against TLBInvalidate events
// in the same log. The ordering floor is the context synchronization and
// instruction barrier counters plus the intra-instruction anchor and the
// resolved dependency view; the assigned timestamp must be strictly later.
func (in *Interpreter) tlbi(ef effect.TLBI) (Outcome, error) {
	if ef.Share != effect.InnerShareable {
		return Outcome{}, curated.Errorf(UnsupportedTLBIDomain)
	}
	if ef.Regime != effect.RegimeEL1 {
		return Outcome{}, curated.Errorf(UnsupportedTLBIRegime)
	}

	vdep, err := in.depView(ef.Deps)
	if err != nil {
		return Outcome{}, err
	}

	vs := &in.Thread.Views
	vpre := view.Max(vs.CSE, vs.ISB, in.Scratch.Other, vdep)

	ev := memory.TLBInvalidate{Desc: memory.Descriptor{
		Kind:      ef.Kind,
		ASID:      ef.ASID,
		VA:        ef.VA,
		LastLevel: ef.LastLevel,
	}}

	t, ok := in.Mem.Fulfill(ev, in.Thread.Promises)
	if !ok {
		t = in.Mem.Promise(ev)
	}

	if vpre >= t {
		return discard, nil
	}

	in.Thread.RemovePromise(t)
	vs.TLBI = vs.TLBI.Join(t)
	in.Thread.RecordTLBVisibility(t)
	in.Scratch.Other = in.Scratch.Other.Join(t)

	return Outcome{}, nil
}
