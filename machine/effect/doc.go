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

// Package effect defines the protocol between the instruction-semantics
// component and the interpreter. An instruction is a stream of effects;
// executing an effect produces a result that is handed back to the stream to
// obtain the next effect.
//
// Dependencies between the effects of one instruction are expressed with the
// Deps type, either as an explicit set of registers and earlier memory-read
// occurrences or as the conservative "everything read so far".
//
// The isa package provides a small set of stream builders. Any component
// able to express instructions as effect streams can drive the interpreter.
package effect
