/*
 * settings.go, part of goXtal.
 *
 *
 * Copyright 2024 The goXtal developers
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package spg

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/rmera/goxtal/lattice"
	"github.com/rmera/goxtal/symop"
)

// Setting is an alternative description of a space group: x_std =
// Basis·x + Origin gives the standard coordinates of a point with
// coordinates x in the setting.
type Setting struct {
	Index  int
	Name   string
	Basis  symop.Mat //columns are the setting axes in the standard ones
	Origin symop.Vec
}

type namedBasis struct {
	name string
	m    symop.Mat
}

func cols(a, b, c symop.Vec) symop.Mat { return symop.FromCols(a, b, c) }

var (
	ea, eb, ec = symop.Vec{1, 0, 0}, symop.Vec{0, 1, 0}, symop.Vec{0, 0, 1}

	//unique axis b, c and a for each cell choice
	monoBases = []namedBasis{
		{"b1", cols(ea, eb, ec)},
		{"b2", cols(symop.Vec{-1, 0, -1}, eb, ea)},
		{"b3", cols(ec, eb, symop.Vec{-1, 0, -1})},
		{"c1", cols(ec, ea, eb)},
		{"c2", cols(ea, symop.Vec{-1, 0, -1}, eb)},
		{"c3", cols(symop.Vec{-1, 0, -1}, ec, eb)},
		{"a1", cols(eb, ec, ea)},
		{"a2", cols(eb, ea, symop.Vec{-1, 0, -1})},
		{"a3", cols(eb, symop.Vec{-1, 0, -1}, ec)},
	}
	orthoBases = []namedBasis{
		{"abc", cols(ea, eb, ec)},
		{"ba-c", cols(eb, ea, ec.Scale(-1))},
		{"cab", cols(ec, ea, eb)},
		{"-cba", cols(ec.Scale(-1), eb, ea)},
		{"bca", cols(eb, ec, ea)},
		{"a-cb", cols(ea, ec.Scale(-1), eb)},
	}
	rhomboBasis = cols(
		symop.Vec{2.0 / 3, 1.0 / 3, 1.0 / 3},
		symop.Vec{-1.0 / 3, 1.0 / 3, 1.0 / 3},
		symop.Vec{-1.0 / 3, -2.0 / 3, 1.0 / 3})
)

//groups with two origin choices; the standard one has the inversion
//centre at the origin.
var twoOrigins = map[int]bool{
	48: true, 50: true, 59: true, 68: true, 70: true, 85: true, 86: true, 88: true,
	125: true, 126: true, 129: true, 130: true, 133: true, 134: true, 137: true,
	138: true, 141: true, 142: true, 201: true, 203: true, 222: true, 224: true,
	227: true, 228: true,
}

var settingCache sync.Map // int -> *settingEntry

type settingEntry struct {
	once sync.Once
	s    []Setting
}

// Settings returns the settings of the group with the given number. The
// standard setting comes first. Settings that give the same operations
// as an earlier one are left out. It returns nil for numbers out of range.
func Settings(number int) []Setting {
	if number < 1 || number > 230 {
		return nil
	}
	e, _ := settingCache.LoadOrStore(number, &settingEntry{})
	en := e.(*settingEntry)
	en.once.Do(func() { en.s = makeSettings(number) })
	return en.s
}

func makeSettings(number int) []Setting {
	std := MustNew(number)
	bases := []namedBasis{{"", symop.Eye()}}
	switch std.LatticeType {
	case lattice.Monoclinic:
		bases = monoBases
	case lattice.Orthorhombic:
		bases = orthoBases
	}
	origins := []symop.Vec{{}}
	if twoOrigins[number] {
		origins = append(origins, originChoice1(std))
	}
	var cands []Setting
	for _, o := range origins {
		for _, b := range bases {
			name := b.name
			if o != (symop.Vec{}) {
				name = strings.TrimSpace(name + " origin 1")
			}
			cands = append(cands, Setting{Name: name, Basis: b.m, Origin: o})
		}
	}
	if rhomboNumbers[number] {
		cands = append(cands, Setting{Name: "R", Basis: rhomboBasis})
	}
	var ret []Setting
	seen := map[string]bool{}
	for _, c := range cands {
		k := opSetKey(transformOps(std.ops, symop.New(c.Basis, c.Origin)))
		if seen[k] {
			continue
		}
		seen[k] = true
		c.Index = len(ret)
		if c.Index == 0 {
			c.Name = ""
		}
		ret = append(ret, c)
	}
	return ret
}

//originChoice1 returns the representative of the most special
//position whose site has no inversion centre.
func originChoice1(G *Group) symop.Vec {
	ws := G.Wyckoffs()
	for i := len(ws) - 1; i >= 0; i-- {
		w := ws[i]
		if w.Dof() != 0 {
			continue
		}
		centro := false
		for _, o := range w.stab {
			centro = centro || o.R.Equal(symop.Eye().Scale(-1), 1e-9)
		}
		if !centro {
			return w.ops[0].T
		}
	}
	return symop.Vec{}
}

//transformOps expresses ops in the basis t (x_old = t.R·x + t.T) and closes
//them modulo the new lattice. The old lattice vectors become centering
//translations when the new cell is larger.
func transformOps(ops []symop.Op, t symop.Op) []symop.Op {
	inv := symop.MustInverse(t)
	gens := make([]symop.Op, 0, len(ops)+3)
	for _, o := range ops {
		gens = append(gens, inv.Mul(o).Mul(t))
	}
	binv, _ := t.R.Inverse()
	for j := 0; j < 3; j++ {
		gens = append(gens, symop.Translation(binv.Col(j)))
	}
	return closure(gens)
}

//opSetKey returns a key identifying a set of operations modulo lattice
//translations.
func opSetKey(ops []symop.Op) string {
	keys := make([]symop.Key, len(ops))
	for i, o := range ops {
		keys[i] = o.Key()
	}
	sort.Slice(keys, func(i, j int) bool {
		for k := range keys[i] {
			if keys[i][k] != keys[j][k] {
				return keys[i][k] < keys[j][k]
			}
		}
		return false
	})
	var b strings.Builder
	for _, k := range keys {
		for _, v := range k {
			b.WriteString(strconv.FormatInt(v, 10))
			b.WriteByte(',')
		}
		b.WriteByte(';')
	}
	return b.String()
}

func buildSetting(number, setting int) (*Group, error) {
	ss := Settings(number)
	if setting < 0 || setting >= len(ss) {
		return nil, lookupErrorf("New", "group %d has no setting %d", number, setting)
	}
	std := MustNew(number)
	s := ss[setting]
	g := &Group{
		Number:      number,
		Setting:     setting,
		SettingName: s.Name,
		Symbol:      std.Symbol,
		PointGroup:  std.PointGroup,
		LatticeType: std.LatticeType,
		basis:       s.Basis,
	}
	g.setOps(transformOps(std.ops, symop.New(s.Basis, s.Origin)))
	return g, nil
}
