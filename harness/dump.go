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

package harness

import (
	"io"

	"github.com/promarch/promarch/machine"

	"github.com/bradleyjkemp/memviz"
)

// DumpState writes a graphviz rendering of a machine state to the writer.
// Useful when working out why an exploration reaches, or fails to reach, an
// outcome: the event log, every thread's counters, coherence and forwarding
// maps all end up in one graph.
//
//	dot -Tsvg state.dot -o state.svg
func DumpState(output io.Writer, m *machine.Machine) {
	memviz.Map(output, m)
}
