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

// Package machine assembles the components of the promising machine: the
// shared event log (memory package), per-thread state (thread package,
// carrying the tlb package's translation cache), the per-instruction scratch
// state (execution package) and the effect interpreter (interp package).
//
// There is no concurrency inside the machine. Stepping is a pure function of
// the machine state, the effect and the Picker's choices; apparent
// concurrency between threads is modelled entirely in the view and timestamp
// arithmetic of the interp package. The harness package explores the tree of
// machine states reachable under different choices.
package machine
