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

// Package tlb implements the per-thread cache of page-table walk results.
//
// Unlike a hardware TLB the cache does not model capacity or replacement;
// what it models is weak visibility of translations. A context can map to
// several entry vectors at once because a thread may continue to observe a
// stale translation until an appropriate invalidation and synchronization
// sequence has propagated to it.
package tlb
