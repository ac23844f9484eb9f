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

// Package thread implements the per-thread state of the promising machine:
// the register file, the pending promise list, the per-location coherence and
// forwarding maps, the system register write history and the battery of
// monotone view counters the interpreter's ordering arithmetic is built on.
//
// Operations in this package are deterministic field updates. The only
// sources of nondeterminism in the model are in the interpreter's interaction
// with the memory package.
package thread
