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

// Package interp is the effect interpreter of the promising machine. It
// consumes one abstract effect at a time against the thread state, the
// shared event log and the per-instruction scratch state, producing an
// updated tuple, a discard signal, or an error.
//
// Every rule of the memory model is enforced here as view arithmetic: reads
// respect barriers, coherence and forwarding; writes must land strictly
// after everything they depend on; exclusive pairs must span no foreign
// write; TLB maintenance follows the same promise protocol as writes.
//
// The interpreter is a deterministic step function. Where the model is
// nondeterministic (which value a read observes, what a Choose effect
// yields) the decision is delegated to the Picker, and enumerating the
// alternatives is the exploration harness's business.
package interp
