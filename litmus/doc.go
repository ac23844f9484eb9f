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

// Package litmus loads litmus-style test programs from YAML files. A file
// names its threads as assembly text in the mnemonics the isa package
// builds, the initial memory and register state, and the registers and
// locations whose final values make up an outcome:
//
//	name: MP+dmb+dmb
//	init:
//	  "0x1000": "0"
//	  "0x1008": "0"
//	registers:
//	  - { x1: "0x1000", x3: "0x1008" }
//	  - { x1: "0x1000", x3: "0x1008" }
//	threads:
//	  - |
//	    mov x0, #1
//	    str x0, [x1]
//	    dmb sy
//	    mov x2, #1
//	    str x2, [x3]
//	  - |
//	    ldr x0, [x3]
//	    dmb sy
//	    ldr x2, [x1]
//	observe: ["1:x0", "1:x2"]
package litmus
