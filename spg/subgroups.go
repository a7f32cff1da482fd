/*
 * subgroups.go, part of goXtal.
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

	"github.com/rmera/goxtal/symop"
)

// Relation is a maximal subgroup H of a group G.
type Relation struct {
	Kind      string //"t" (same lattice) or "k" (same point group)
	Index     int
	Number    int      //standard number of H
	Transform symop.Op //x_G = Transform.R·x_H + Transform.T, x_H standard

	parent *Group
	ops    []symop.Op
}

// Parent returns G.
func (R *Relation) Parent() *Group { return R.parent }

// Subgroup returns H in its standard setting.
func (R *Relation) Subgroup() *Group { return MustNew(R.Number) }

// Ops returns the operations of H in the coordinates of G, modulo the
// lattice of G.
func (R *Relation) Ops() []symop.Op { return R.ops }

// Isomorphic returns true if H is of the same type as G.
func (R *Relation) Isomorphic() bool { return R.Number == R.parent.Number }

// ToSubgroup maps a point of G into the standard coordinates of H.
func (R *Relation) ToSubgroup(x symop.Vec) symop.Vec {
	return symop.MustInverse(R.Transform).Operate(x)
}

// ToParent maps a point in the standard coordinates of H to those of G.
func (R *Relation) ToParent(x symop.Vec) symop.Vec {
	return R.Transform.Operate(x)
}

func (R *Relation) String() string {
	return R.Kind + strconv.Itoa(R.Index) + " " + strconv.Itoa(R.parent.Number) + "->" + strconv.Itoa(R.Number)
}

// MaxSubgroups returns the maximal subgroups of G, one per conjugacy
// class: the t-subgroups first, then the k-subgroups of index 2, 3 and 4.
// G must be in its standard setting.
func (G *Group) MaxSubgroups() []*Relation {
	G.subOnce.Do(func() {
		G.subs = append(G.tSubgroups(), G.kSubgroups()...)
	})
	return G.subs
}

// MaxSubgroupsOfKind returns the relations of MaxSubgroups with the given
// kind, "t" or "k".
func (G *Group) MaxSubgroupsOfKind(kind string) []*Relation {
	var ret []*Relation
	for _, r := range G.MaxSubgroups() {
		if r.Kind == kind {
			ret = append(ret, r)
		}
	}
	return ret
}

// MaxSubgroupNumbers returns the distinct numbers of the non-isomorphic
// maximal subgroups of the given kind, or of both if kind is empty.
func (G *Group) MaxSubgroupNumbers(kind string) []int {
	seen := map[int]bool{}
	var ret []int
	for _, r := range G.MaxSubgroups() {
		if (kind != "" && r.Kind != kind) || r.Isomorphic() || seen[r.Number] {
			continue
		}
		seen[r.Number] = true
		ret = append(ret, r.Number)
	}
	sort.Ints(ret)
	return ret
}

func sortRelations(rs []*Relation) {
	sort.SliceStable(rs, func(i, j int) bool {
		if rs[i].Index != rs[j].Index {
			return rs[i].Index < rs[j].Index
		}
		return rs[i].Number > rs[j].Number
	})
}

//rotation sets

func rotSetKey(rots []symop.Mat) string {
	keys := make([]string, len(rots))
	for i, r := range rots {
		k := r.RotKey()
		var b strings.Builder
		for _, v := range k {
			b.WriteString(strconv.FormatInt(v, 10))
			b.WriteByte(',')
		}
		keys[i] = b.String()
	}
	sort.Strings(keys)
	return strings.Join(keys, ";")
}

func rotClosure(gens []symop.Mat) []symop.Mat {
	ret := []symop.Mat{symop.Eye()}
	seen := map[[9]int64]bool{ret[0].RotKey(): true}
	add := func(r symop.Mat) {
		r = r.Rounded()
		if k := r.RotKey(); !seen[k] {
			seen[k] = true
			ret = append(ret, r)
		}
	}
	for _, g := range gens {
		add(g)
	}
	for i := 0; i < len(ret); i++ {
		for j := 0; j <= i; j++ {
			add(ret[i].Mul(ret[j]))
			add(ret[j].Mul(ret[i]))
		}
	}
	return ret
}

func hasRot(set []symop.Mat, r symop.Mat) bool {
	k := r.RotKey()
	for _, s := range set {
		if s.RotKey() == k {
			return true
		}
	}
	return false
}

//maximalPointSubgroups returns the maximal subgroups of the point group
//rots, one per conjugacy class under rots.
func maximalPointSubgroups(rots []symop.Mat) [][]symop.Mat {
	n := len(rots)
	all := map[string][]symop.Mat{}
	var order []string
	add := func(s []symop.Mat) {
		if len(s) == n {
			return
		}
		k := rotSetKey(s)
		if _, ok := all[k]; !ok {
			all[k] = s
			order = append(order, k)
		}
	}
	add([]symop.Mat{symop.Eye()})
	for i := range rots {
		for j := i; j < n; j++ {
			add(rotClosure([]symop.Mat{rots[i], rots[j]}))
		}
	}
	pairs := len(order)
	for i := 0; i < pairs; i++ {
		s := all[order[i]]
		for _, r := range rots {
			if !hasRot(s, r) {
				add(rotClosure(append(append([]symop.Mat{}, s...), r)))
			}
		}
	}
	members := map[string]map[[9]int64]bool{}
	for _, k := range order {
		m := map[[9]int64]bool{}
		for _, r := range all[k] {
			m[r.RotKey()] = true
		}
		members[k] = m
	}
	contained := func(a []symop.Mat, b map[[9]int64]bool) bool {
		for _, r := range a {
			if !b[r.RotKey()] {
				return false
			}
		}
		return true
	}
	var max [][]symop.Mat
	for _, k := range order {
		s := all[k]
		ok := true
		for _, k2 := range order {
			if len(all[k2]) > len(s) && contained(s, members[k2]) {
				ok = false
				break
			}
		}
		if ok {
			max = append(max, s)
		}
	}
	//one per conjugacy class
	seen := map[string]bool{}
	var ret [][]symop.Mat
	for _, s := range max {
		if seen[rotSetKey(s)] {
			continue
		}
		ret = append(ret, s)
		for _, g := range rots {
			ginv, _ := g.Inverse()
			c := make([]symop.Mat, len(s))
			for i, r := range s {
				c[i] = g.Mul(r).Mul(ginv).Rounded()
			}
			seen[rotSetKey(c)] = true
		}
	}
	return ret
}

func (G *Group) tSubgroups() []*Relation {
	var ret []*Relation
	for _, s := range maximalPointSubgroups(G.Rotations()) {
		var ops []symop.Op
		for _, o := range G.ops {
			if hasRot(s, o.R) {
				ops = append(ops, o)
			}
		}
		N, t, err := Identify(ops)
		if err != nil {
			logger.Printf("t-subgroup of %d with point group %s not identified: %s", G.Number, pgSymbol(s), err.Error())
			continue
		}
		ret = append(ret, &Relation{
			Kind:      "t",
			Index:     G.PointGroupOrder() / len(s),
			Number:    N.Number,
			Transform: t,
			parent:    G,
			ops:       ops,
		})
	}
	sortRelations(ret)
	return ret
}
