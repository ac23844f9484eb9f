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

package litmus

import (
	"io"
	"strconv"
	"strings"

	"github.com/promarch/promarch/curated"
	"github.com/promarch/promarch/harness"
	"github.com/promarch/promarch/machine/memory"
	"github.com/promarch/promarch/machine/thread"

	"gopkg.in/yaml.v3"
)

// Structural errors raised while loading a litmus file.
const (
	BadFile        = "litmus: %v"
	BadNumber      = "litmus: bad number %s"
	BadLocation    = "litmus: bad location %s"
	BadObservation = "litmus: bad observation %s"
)

// file is the YAML shape of a litmus test.
type file struct {
	Name      string              `yaml:"name"`
	Init      map[string]string   `yaml:"init"`
	Registers []map[string]string `yaml:"registers"`
	Threads   []string            `yaml:"threads"`
	Observe   []string            `yaml:"observe"`
	Locations []string            `yaml:"locations"`
}

// Test is a loaded litmus test.
type Test struct {
	Name    string
	Program *harness.Program
}

// Load reads a YAML litmus test. The threads section is assembly text, one
// instruction per line, in the mnemonics the parse function in this package
// understands.
func Load(r io.Reader) (*Test, error) {
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, curated.Errorf(BadFile, err)
	}

	var f file
	if err := yaml.Unmarshal(d, &f); err != nil {
		return nil, curated.Errorf(BadFile, err)
	}

	p := &harness.Program{
		Init:     make(map[memory.Location]uint64),
		InitRegs: make([]map[thread.Register]uint64, len(f.Threads)),
	}

	for k, v := range f.Init {
		loc, err := parseLocation(k)
		if err != nil {
			return nil, err
		}
		val, err := parseNumber(v)
		if err != nil {
			return nil, err
		}
		p.Init[loc] = val
	}

	for i, regs := range f.Registers {
		if i >= len(f.Threads) {
			break
		}
		p.InitRegs[i] = make(map[thread.Register]uint64, len(regs))
		for r, v := range regs {
			val, err := parseNumber(v)
			if err != nil {
				return nil, err
			}
			p.InitRegs[i][thread.Register(strings.ToLower(r))] = val
		}
	}

	for _, src := range f.Threads {
		instrs, err := parseThread(src)
		if err != nil {
			return nil, err
		}
		p.Threads = append(p.Threads, instrs)
	}

	for _, o := range f.Observe {
		obs, err := parseObservation(o, len(p.Threads))
		if err != nil {
			return nil, err
		}
		p.Observe = append(p.Observe, obs)
	}

	for _, l := range f.Locations {
		loc, err := parseLocation(l)
		if err != nil {
			return nil, err
		}
		p.Locations = append(p.Locations, loc)
	}

	return &Test{Name: f.Name, Program: p}, nil
}

func parseNumber(s string) (uint64, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 0, 64)
	if err != nil {
		return 0, curated.Errorf(BadNumber, s)
	}
	return v, nil
}

func parseLocation(s string) (memory.Location, error) {
	v, err := parseNumber(s)
	if err != nil {
		return 0, curated.Errorf(BadLocation, s)
	}
	loc, err := memory.NewLocation(v)
	if err != nil {
		return 0, curated.Errorf(BadLocation, s)
	}
	return loc, nil
}

// parseObservation understands "0:x2", thread number and register separated
// by a colon.
func parseObservation(s string, numThreads int) (harness.Observed, error) {
	p := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(p) != 2 {
		return harness.Observed{}, curated.Errorf(BadObservation, s)
	}

	tid, err := strconv.Atoi(p[0])
	if err != nil || tid < 0 || tid >= numThreads {
		return harness.Observed{}, curated.Errorf(BadObservation, s)
	}

	return harness.Observed{
		Thread: memory.ThreadID(tid),
		Reg:    thread.Register(strings.ToLower(p[1])),
	}, nil
}
