/*
 * split.go, part of goXtal.
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
	"github.com/rmera/goxtal/symop"
)

// Orbit is one of the orbits of a subgroup H into which an orbit of G
// splits.
type Orbit struct {
	Wyckoff *Wyckoff    //position of H, standard setting
	Points  []symop.Vec //in the standard coordinates of H, wrapped
}

//latticeShifts returns the translations of the lattice of G modulo that
//of H, in the coordinates of H. binv is the inverse of the basis of H.
func latticeShifts(binv symop.Mat) []symop.Vec {
	ret := []symop.Vec{{}}
	add := func(v symop.Vec) {
		v = snap(v).Wrap()
		for _, r := range ret {
			if symop.AreEquivalent(r, v, 1e-6) {
				return
			}
		}
		ret = append(ret, v)
	}
	for i := 0; i < len(ret); i++ {
		for j := 0; j < 3; j++ {
			add(ret[i].Add(binv.Col(j)))
		}
		if len(ret) > den {
			panic(ErrBadRelation)
		}
	}
	return ret
}

//images returns the points of the orbit of pt under G inside the cell of
//H, in the coordinates of H.
func (R *Relation) images(pt symop.Vec) []symop.Vec {
	inv := symop.MustInverse(R.Transform)
	var ret []symop.Vec
	for _, s := range latticeShifts(inv.R) {
		for _, o := range R.parent.ops {
			p := inv.Operate(o.Operate(pt)).Add(s).Wrap()
			dup := false
			for _, q := range ret {
				if symop.AreEquivalent(p, q, 1e-5) {
					dup = true
					break
				}
			}
			if !dup {
				ret = append(ret, p)
			}
		}
	}
	return ret
}

// SplitPoint returns the orbits of H that make up the orbit of pt, a
// point in the coordinates of G.
func (R *Relation) SplitPoint(pt symop.Vec) []Orbit {
	H := R.Subgroup()
	pts := R.images(pt)
	used := make([]bool, len(pts))
	var ret []Orbit
	for i, p := range pts {
		if used[i] {
			continue
		}
		var orb []symop.Vec
		for _, o := range H.ops {
			q := o.Operate(p).Wrap()
			for j, r := range pts {
				if !used[j] && symop.AreEquivalent(q, r, 1e-5) {
					used[j] = true
					orb = append(orb, r)
				}
			}
		}
		w := H.WyckoffFromXYZ(p, 1e-4)
		if w == nil {
			w = H.Wyckoffs()[0]
		}
		ret = append(ret, Orbit{Wyckoff: w, Points: orb})
	}
	return ret
}

// Split returns the positions of H into which the position w of G splits,
// for a generic point of w. The sum of their multiplicities is that of w
// times the ratio of the cell volumes.
func (R *Relation) Split(w *Wyckoff) []*Wyckoff {
	if w.group != R.parent {
		panic(ErrWrongGroup)
	}
	orbs := R.SplitPoint(w.ops[0].Operate(genericParams))
	ret := make([]*Wyckoff, len(orbs))
	for i, o := range orbs {
		ret[i] = o.Wyckoff
	}
	return ret
}

// Splitters returns the maximal subgroups of G of the given kind ("t",
// "k", or empty for both) in which at least one of the occupied
// positions splits, or gains degrees of freedom.
func (G *Group) Splitters(occupied []*Wyckoff, kind string) []*Relation {
	var ret []*Relation
	for _, r := range G.MaxSubgroups() {
		if kind != "" && r.Kind != kind {
			continue
		}
		for _, w := range occupied {
			s := r.Split(w)
			if len(s) > 1 || s[0].Dof() > w.Dof() {
				ret = append(ret, r)
				break
			}
		}
	}
	return ret
}
