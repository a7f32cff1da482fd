/*
 * subgroup.go, part of goXtal.
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

package xtal

import (
	"math"
	"math/rand"
	"strings"

	"github.com/rmera/goxtal/lattice"
	"github.com/rmera/goxtal/spg"
	"github.com/rmera/goxtal/symop"
)

// Subgroup returns S described in the maximal subgroup number H of its
// group, once for each relation of the given kind ("t", "k", or empty for
// both) that leads to H. The result is empty if H is not a maximal
// subgroup.
func (S *Structure) Subgroup(H int, kind string) []*Structure {
	var ret []*Structure
	for _, r := range S.Group.MaxSubgroups() {
		if r.Number != H || (kind != "" && r.Kind != kind) {
			continue
		}
		ret = append(ret, S.ToSubgroup(r))
	}
	return ret
}

// ToSubgroup returns S described in the subgroup of r, whose parent must
// be the group of S. Each site gives one site per orbit of the subgroup
// into which its orbit splits.
func (S *Structure) ToSubgroup(r *spg.Relation) *Structure {
	if r.Parent() != S.Group {
		panic(spg.ErrWrongGroup)
	}
	h := r.Subgroup()
	b := r.Transform.R
	p := S.Lattice.Transform(b.T()).ParaDeg()
	nl := lattice.FromPara(p[0], p[1], p[2], p[3], p[4], p[5], h.LatticeType)
	q := frameRotation(S.Lattice.Matrix(), nl.Matrix(), b)
	R := &Structure{Group: h, Lattice: nl}
	for _, s := range S.Sites {
		for _, o := range r.SplitPoint(s.Position()) {
			pt := o.Points[0]
			if c, ok := o.Wyckoff.Search(pt); ok {
				pt = c
			}
			R.Sites = append(R.Sites, reoriented(s, S.Group, S.Lattice.Matrix(), r.ToParent(pt), q).moved(pt, o.Wyckoff))
		}
	}
	return R
}

//frameRotation returns the Cartesian rotation from the frame of the cell
//old to that of the cell nw, whose basis is b in the basis of old.
func frameRotation(old, nw, b symop.Mat) symop.Mat {
	ob := old.T().Mul(b)
	inv, err := ob.Inverse()
	if err != nil {
		panic(lattice.ErrSingularCell)
	}
	return nw.T().Mul(inv)
}

//groupOp returns an operation of g that takes from to to.
func groupOp(g *spg.Group, from, to symop.Vec) (symop.Op, bool) {
	for _, o := range g.Ops() {
		if symop.AreEquivalent(o.Operate(from), to, 1e-4) {
			return o, true
		}
	}
	return symop.Op{}, false
}

//reoriented returns s with its molecule, if any, turned as the copy that
//sits at x, and then by the frame rotation q. Atoms are returned as they are.
func reoriented(s Site, g *spg.Group, cell symop.Mat, x symop.Vec, q symop.Mat) Site {
	m, ok := s.(*MolSite)
	if !ok {
		return s
	}
	rot := symop.Eye()
	if o, ok := groupOp(g, m.Pos, x); ok {
		if c, err := o.Cartesian(cell); err == nil {
			rot = c.R
		}
	}
	n := *m
	n.Orientation = q.Mul(rot).Mul(m.Orientation)
	return &n
}

// Transformed returns S with every point x replaced by n·x. n must map
// the group of S onto itself and keep the metric of the lattice, as the
// elements of Group.Normalizer do. The sites are reassigned to the
// positions their new points fall on.
func (S *Structure) Transformed(n symop.Op) *Structure {
	cell := S.Lattice.Matrix()
	c, err := n.Cartesian(cell)
	if err != nil {
		panic(lattice.ErrSingularCell)
	}
	R := &Structure{Group: S.Group, Lattice: S.Lattice.Copy()}
	for _, s := range S.Sites {
		p := n.Operate(s.Position()).Wrap()
		w := S.Group.WyckoffFromXYZ(p, 1e-3)
		if w == nil {
			w = S.Group.Wyckoffs()[0]
		} else {
			p = w.Project(p, cell)
		}
		if m, ok := s.(*MolSite); ok {
			t := *m
			rot := c.R
			//back to the canonical representative, turning the molecule with it
			if q, ok := w.Search(p); ok {
				if o, ok := groupOp(S.Group, q, p); ok {
					if oc, err := symop.MustInverse(o).Cartesian(cell); err == nil {
						rot = oc.R.Mul(rot)
					}
				}
				p = q
			}
			t.Orientation = rot.Mul(m.Orientation)
			s = &t
		}
		R.Sites = append(R.Sites, s.moved(p, w))
	}
	return R
}

// Alternatives returns the descriptions of S that use different Wyckoff
// positions, S itself first. They come from the transformations that map
// the group onto itself and keep the lattice.
func (S *Structure) Alternatives() []*Structure {
	ret := []*Structure{S.Copy()}
	seen := map[string]bool{strings.Join(S.Labels(), " "): true}
	for _, n := range S.Group.Normalizer(S.Lattice.Matrix(), 1e-3)[1:] {
		A := S.Transformed(n)
		k := strings.Join(A.Labels(), " ")
		if seen[k] {
			continue
		}
		seen[k] = true
		ret = append(ret, A)
	}
	return ret
}

// Perturb returns a copy of S with every free site moved at random by up
// to eps Å, within its Wyckoff position.
func (S *Structure) Perturb(eps float64, rng *rand.Rand) *Structure {
	cell := S.Lattice.Matrix()
	R := S.Copy()
	for i, s := range R.Sites {
		w := s.Wyckoff()
		if w.Dof() == 0 {
			continue
		}
		d := symop.Vec{rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64()}
		d = d.Scale(eps * rng.Float64() / math.Max(d.Norm(), 1e-12))
		df, err := symop.ToFractional(d, cell)
		if err != nil {
			panic(lattice.ErrSingularCell)
		}
		p := w.Project(s.Position().Add(df), cell)
		R.Sites[i] = s.moved(p, w)
	}
	return R
}
