/*
 * group.go, part of goXtal.
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


//Package spg implements the space group catalog: the 230 groups and their
//alternative settings, built from Hall symbols at first use, their Wyckoff
//positions and site symmetries, the identification of a group from its
//operations, and the maximal subgroups and group-subgroup paths.
//
//Nothing in the catalog is tabulated beyond the Hall and Hermann-Mauguin
//symbols: operations, Wyckoff positions and subgroups are all computed.
package spg

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rmera/goxtal/lattice"
	"github.com/rmera/goxtal/symop"
)

// Group is a space group in a given setting. A Group is read-only once
// built, and safe for concurrent use.
type Group struct {
	Number          int
	Setting         int    //0 is the standard setting
	SettingName     string //empty for the standard setting
	Symbol          string //short Hermann-Mauguin symbol
	Hall            string
	PointGroup      string
	LatticeType     lattice.Type
	Polar           bool
	Centrosymmetric bool
	Chiral          bool

	ops       []symop.Op
	centering []symop.Vec
	basis     symop.Mat //columns are the setting basis vectors in the standard one

	wOnce    sync.Once
	wyckoffs []*Wyckoff

	subOnce sync.Once
	subs    []*Relation
}

type entry struct {
	once sync.Once
	g    *Group
	err  error
}

var cache sync.Map // [2]int{number, setting} -> *entry

// Option modifies the group requested from New.
type Option func(*options)

type options struct {
	setting int
}

// WithSetting requests the alternative setting with index i, as listed by
// Settings. 0 is the standard setting.
func WithSetting(i int) Option {
	return func(o *options) { o.setting = i }
}

// New returns the space group with the given number. The result is built
// once and shared by all callers.
func New(number int, opts ...Option) (*Group, error) {
	o := &options{}
	for _, f := range opts {
		f(o)
	}
	if number < 1 || number > 230 {
		return nil, lookupErrorf("New", "space group number %d out of range 1-230", number)
	}
	e, _ := cache.LoadOrStore([2]int{number, o.setting}, &entry{})
	en := e.(*entry)
	en.once.Do(func() {
		if o.setting == 0 {
			en.g, en.err = build(number)
			return
		}
		en.g, en.err = buildSetting(number, o.setting)
	})
	return en.g, en.err
}

// MustNew is like New but panics on error. It is meant for numbers known
// to be valid.
func MustNew(number int, opts ...Option) *Group {
	g, err := New(number, opts...)
	if err != nil {
		panic(err)
	}
	return g
}

func build(number int) (*Group, error) {
	gens, err := ParseHall(hallSymbols[number])
	if err != nil {
		return nil, err
	}
	g := &Group{
		Number:      number,
		Symbol:      hmSymbols[number],
		Hall:        hallSymbols[number],
		PointGroup:  pointGroupOf(number),
		LatticeType: latticeTypeOf(number),
		basis:       symop.Eye(),
	}
	g.setOps(closure(gens))
	return g, nil
}

//setOps stores the operations sorted with the pure translations as the
//outer loop, as the tables do, and derives the flags.
func (G *Group) setOps(all []symop.Op) {
	var cen []symop.Vec
	for _, o := range all {
		if o.R.Equal(symop.Eye(), 1e-9) {
			cen = append(cen, o.T)
		}
	}
	sort.SliceStable(cen, func(i, j int) bool { return cen[i].Less(cen[j]) })
	//one representative for each rotation, in generation order
	var reps []symop.Op
	seen := map[[9]int64]bool{}
	for _, o := range all {
		k := o.R.RotKey()
		if seen[k] {
			continue
		}
		seen[k] = true
		//the smallest translation among the coset
		best := o
		for _, c := range cen {
			t := o.T.Add(c).Wrap()
			if t.Less(best.T) {
				best = symop.New(o.R, t)
			}
		}
		reps = append(reps, best)
	}
	G.ops = make([]symop.Op, 0, len(all))
	for _, c := range cen {
		for _, r := range reps {
			G.ops = append(G.ops, symop.New(r.R, snap(r.T.Add(c)).Wrap()))
		}
	}
	G.centering = cen
	G.Centrosymmetric, G.Chiral = false, true
	var fix symop.Mat
	for _, r := range reps {
		if r.R.Equal(symop.Eye().Scale(-1), 1e-9) {
			G.Centrosymmetric = true
		}
		if r.R.Det() < 0 {
			G.Chiral = false
		}
		d := r.R.Sub(symop.Eye())
		fix = fix.Add(d.T().Mul(d))
	}
	G.Polar = !G.Centrosymmetric && fix.Rank() < 3
}

// Ops returns all the operations of G modulo integer translations, the
// centering translations included. The identity is the first one. The
// slice must not be modified.
func (G *Group) Ops() []symop.Op { return G.ops }

// Order returns the number of operations in Ops.
func (G *Group) Order() int { return len(G.ops) }

// Centering returns the pure translations of G, the zero vector first.
func (G *Group) Centering() []symop.Vec { return G.centering }

// Rotations returns the distinct rotation parts of the operations of G.
func (G *Group) Rotations() []symop.Mat {
	n := len(G.ops) / len(G.centering)
	r := make([]symop.Mat, n)
	for i := 0; i < n; i++ {
		r[i] = G.ops[i].R
	}
	return r
}

// CosetReps returns one operation per rotation, the first Order/len(Centering)
// elements of Ops.
func (G *Group) CosetReps() []symop.Op {
	return G.ops[:len(G.ops)/len(G.centering)]
}

// PointGroupOrder returns the number of distinct rotations in G.
func (G *Group) PointGroupOrder() int { return len(G.ops) / len(G.centering) }

// LatticeDof returns the number of free lattice parameters of G.
func (G *Group) LatticeDof() int { return G.LatticeType.Dof() }

// Basis returns the basis of the setting of G, as columns expressed in the
// standard setting. It is the identity for standard settings.
func (G *Group) Basis() symop.Mat { return G.basis }

// Contains returns true if op is an operation of G, modulo integer
// translations.
func (G *Group) Contains(op symop.Op) bool {
	for _, o := range G.ops {
		if o.Equal(op) {
			return true
		}
	}
	return false
}

// IsRhombohedral returns true for the R-centred groups in hexagonal axes.
func (G *Group) IsRhombohedral() bool {
	return len(G.centering) == 3 && G.LatticeType == lattice.Trigonal
}

func (G *Group) String() string {
	if G.Setting != 0 {
		return fmt.Sprintf("%d %s (%s)", G.Number, G.Symbol, G.SettingName)
	}
	return fmt.Sprintf("%d %s", G.Number, G.Symbol)
}

func latticeTypeOf(n int) lattice.Type {
	switch {
	case n <= 2:
		return lattice.Triclinic
	case n <= 15:
		return lattice.Monoclinic
	case n <= 74:
		return lattice.Orthorhombic
	case n <= 142:
		return lattice.Tetragonal
	case n <= 167:
		return lattice.Trigonal
	case n <= 194:
		return lattice.Hexagonal
	}
	return lattice.Cubic
}

//the last group number of each crystal class, and its symbol.
var classes = []struct {
	last   int
	symbol string
}{
	{1, "1"}, {2, "-1"}, {5, "2"}, {9, "m"}, {15, "2/m"}, {24, "222"}, {46, "mm2"},
	{74, "mmm"}, {80, "4"}, {82, "-4"}, {88, "4/m"}, {98, "422"}, {110, "4mm"},
	{122, "-42m"}, {142, "4/mmm"}, {146, "3"}, {148, "-3"}, {155, "32"}, {161, "3m"},
	{167, "-3m"}, {173, "6"}, {174, "-6"}, {176, "6/m"}, {182, "622"}, {186, "6mm"},
	{190, "-6m2"}, {194, "6/mmm"}, {199, "23"}, {206, "m-3"}, {214, "432"},
	{220, "-43m"}, {230, "m-3m"},
}

func pointGroupOf(n int) string {
	for _, c := range classes {
		if n <= c.last {
			return c.symbol
		}
	}
	return ""
}

// NumbersWithPointGroup returns the space group numbers of the crystal
// class with the given point group symbol.
func NumbersWithPointGroup(pg string) []int {
	first := 1
	for _, c := range classes {
		if c.symbol == pg {
			r := make([]int, 0, c.last-first+1)
			for i := first; i <= c.last; i++ {
				r = append(r, i)
			}
			return r
		}
		first = c.last + 1
	}
	return nil
}
