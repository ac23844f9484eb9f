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

package curated_test

import (
	"errors"
	"testing"

	"github.com/promarch/promarch/curated"
	"github.com/promarch/promarch/test"
)

const (
	testError  = "test error: %s"
	wrapError  = "wrap error: %v"
	otherError = "other error: %s"
)

func TestIs(t *testing.T) {
	err := curated.Errorf(testError, "detail")
	test.Equate(t, curated.IsAny(err), true)
	test.Equate(t, curated.Is(err, testError), true)
	test.Equate(t, curated.Is(err, otherError), false)

	plain := errors.New("plain")
	test.Equate(t, curated.IsAny(plain), false)
	test.Equate(t, curated.Is(plain, testError), false)

	test.Equate(t, curated.IsAny(nil), false)
	test.Equate(t, curated.Is(nil, testError), false)
}

func TestHas(t *testing.T) {
	inner := curated.Errorf(testError, "detail")
	outer := curated.Errorf(wrapError, inner)

	// Is only matches the head of the chain, Has searches all of it
	test.Equate(t, curated.Is(outer, testError), false)
	test.Equate(t, curated.Has(outer, testError), true)
	test.Equate(t, curated.Has(outer, wrapError), true)
	test.Equate(t, curated.Has(outer, otherError), false)
	test.Equate(t, curated.Has(nil, testError), false)
}

func TestMessageNormalisation(t *testing.T) {
	err := curated.Errorf(testError, "detail")
	test.Equate(t, err.Error(), "test error: detail")

	// wrapping repeats the wrapped message; the duplicate part is removed
	outer := curated.Errorf("test error: %v", err)
	test.Equate(t, outer.Error(), "test error: detail")

	// non-adjacent duplicates are left alone
	outer = curated.Errorf(wrapError, err)
	test.Equate(t, outer.Error(), "wrap error: test error: detail")
}
