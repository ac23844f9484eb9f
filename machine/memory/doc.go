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

// Package memory implements the global event log of the promising machine.
//
// The log is append-only and shared by every thread. An event is either a
// data write or a TLB invalidation, and the timestamp of an event is its
// one-based position in the log. A thread may append an event before program
// order has justified it - a promise - and must later match a program-order
// effect against it - a fulfillment. The Read operation returns the full set
// of values a weak-memory read is permitted to observe given the reading
// thread's pre-view; choosing among them is the caller's business.
//
// The Exclusive operation is the atomicity check used by exclusive
// (load-linked/store-conditional style) access pairs.
//
// Memory values are forked with Snapshot() when an exploration branches. The
// Truncate and Since operations are non-destructive windows over the same
// backing sequence and must not be promised to.
package memory
