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

// Package harness explores the tree of states a test program can reach
// under the promising machine. The machine core resolves nothing by itself:
// which value a read observes, which thread steps next and what a Choose
// effect yields are all choice points, and the harness enumerates them
// depth-first by replaying a recorded choice trail against a fresh fork of
// the machine for every path.
//
// A discarded path is normal pruning. A thread finishing with pending
// promises prunes the path too, since the promised write was never
// justified. Only fully completed paths contribute an outcome.
//
// The harness never issues spontaneous promises: every write is promised at
// its own program point. The weak behaviours explored come from read-value
// choice and instruction interleaving.
package harness
