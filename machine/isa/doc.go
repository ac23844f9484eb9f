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

// Package isa translates a small set of ARM-flavoured instructions into
// effect streams. It plays the role of the instruction-semantics component
// for the harness and litmus packages; the machine core itself consumes only
// the effect protocol and is indifferent to where streams come from.
//
// The set is what litmus-style test programs need: moves, a couple of
// dependency-forming arithmetic instructions, loads and stores in their
// plain/acquire/release/exclusive variants, barriers, TLB maintenance and
// system register access. There is no decoder and no encoding; instructions
// are constructed as Go values.
package isa
