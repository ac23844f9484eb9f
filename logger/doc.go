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

// Package logger is the central logging facility for Promarch. Log entries
// are tagged with the sub-system they originate from and identical
// consecutive entries are collapsed into one entry with a repeat count.
//
// The core model packages do not log. Logging is for the exploration harness
// and the command front-end, where it records things like pruned path counts
// and malformed litmus input.
package logger
