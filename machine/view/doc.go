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

// Package view defines the logical timestamp type used throughout the
// machine packages. Every event in the global event log is assigned a view
// equal to its position in the log, and every value a thread computes carries
// the join of the views it was derived from. The per-thread counters in the
// thread package only ever increase, which is what makes the ordering checks
// in the interp package sound.
package view
