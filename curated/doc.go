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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. Like the Errorf()
// function in the fmt package it takes a formatting pattern and placeholder
// values, but the pattern is kept verbatim inside the returned error. The
// pattern is what identifies the error.
//
// The Is() function checks whether an error is a curated error with a
// specific pattern:
//
//	e := curated.Errorf("memory: unmapped location %#08x", addr)
//
//	if curated.Is(e, "memory: unmapped location %#08x") {
//		fmt.Println("true")
//	}
//
// The Has() function is similar but checks for the pattern anywhere in the
// error chain, which is useful when a curated error has been wrapped by
// another curated error.
//
// The IsAny() function answers whether the error was created by Errorf() at
// all. We can think of the difference between curated and uncurated errors as
// the difference between 'expected' and 'unexpected' errors, depending on how
// the result of a function call is being handled.
//
// Note that a "discarded execution path" is never represented as an error,
// curated or otherwise. Discards are an in-band result of the interpreter.
// The error patterns used in this project divide into unsupported-operation
// errors and structural errors; the patterns are defined alongside the code
// that returns them.
package curated
