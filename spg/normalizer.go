/*
 * normalizer.go, part of goXtal.
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
	"math"

	"github.com/rmera/goxtal/symop"
)

//candidate origin shifts, per axis
var shiftGrid = []float64{0, 0.25, 1.0 / 3, 0.5, 2.0 / 3, 0.75}

//polarAxes returns, for each axis, whether all the rotations of G leave
//it fixed. Shifts along those axes form a continuum and are not listed.
func (G *Group) polarAxes() [3]bool {
	var ret [3]bool
	for j := 0; j < 3; j++ {
		ret[j] = true
		e := symop.Vec{}
		e[j] = 1
		for _, r := range G.Rotations() {
			if r.MulVec(e).Sub(e).Norm() > 1e-8 {
				ret[j] = false
				break
			}
		}
	}
	return ret
}

//isometries returns the unimodular integer matrices with entries in
//{-1,0,1} that preserve the metric of cell within the relative tolerance tol.
func isometries(cell symop.Mat, tol float64) []symop.Mat {
	g := cell.Mul(cell.T())
	scale := g.Trace() / 3
	var ret []symop.Mat
	var p symop.Mat
	var rec func(k int)
	rec = func(k int) {
		if k == 9 {
			d := p.Det()
			if math.Abs(math.Abs(d)-1) > 1e-8 {
				return
			}
			if p.T().Mul(g).Mul(p).Sub(g).Scale(1/scale).Equal(symop.Mat{}, tol) {
				ret = append(ret, p)
			}
			return
		}
		for v := -1.0; v <= 1; v++ {
			p[k/3][k%3] = v
			rec(k + 1)
		}
	}
	rec(0)
	return ret
}

// Normalizer returns the affine transformations N, x' = N·x, that map G
// onto itself and keep the metric of cell within the relative tolerance
// tol. One transformation is given per coset of G, the identity first.
// Origin shifts along polar axes make a continuum and are left out.
// Applied to a structure, they give the same structure with another,
// equally valid, choice of Wyckoff positions. G must be in its standard
// setting.
func (G *Group) Normalizer(cell symop.Mat, tol float64) []symop.Op {
	rots := G.Rotations()
	reps := G.CosetReps()
	var checks []symop.Op
	for _, i := range pointGenerators(reps) {
		checks = append(checks, reps[i])
	}
	for _, c := range G.centering[1:] {
		checks = append(checks, symop.Translation(c))
	}
	polar := G.polarAxes()
	var shifts []symop.Vec
	for _, x := range shiftGrid {
		for _, y := range shiftGrid {
			for _, z := range shiftGrid {
				s := symop.Vec{x, y, z}
				ok := true
				for j := range s {
					if polar[j] && s[j] != 0 {
						ok = false
					}
				}
				if ok {
					shifts = append(shifts, s)
				}
			}
		}
	}
	ret := []symop.Op{symop.Identity()}
	for _, p := range isometries(cell, tol) {
		pinv, err := p.Inverse()
		if err != nil {
			continue
		}
		ok := true
		for _, r := range rots {
			if !hasRot(rots, pinv.Mul(r).Mul(p)) {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		for _, s := range shifts {
			n := symop.New(p, s)
			if !G.normalizes(n, checks) {
				continue
			}
			dup := false
			for _, m := range ret {
				if G.Contains(symop.MustInverse(m).Mul(n)) {
					dup = true
					break
				}
			}
			if !dup {
				ret = append(ret, n)
			}
		}
	}
	return ret
}

//normalizes returns true if the conjugates of all the operations in
//checks by n are in G.
func (G *Group) normalizes(n symop.Op, checks []symop.Op) bool {
	inv := symop.MustInverse(n)
	for _, c := range checks {
		if !G.Contains(inv.Mul(c).Mul(n)) {
			return false
		}
	}
	return true
}
