/*
 * wyckoff_transform.go, part of goXtal.
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

// TransformFromMatrix returns a copy of W with its generators expressed in
// the basis t, which gives the old coordinates from the new ones:
// x_old = t.R·x_new + t.T. The generators are conjugated but not
// brought back to canonical form; see Update.
func (W *Wyckoff) TransformFromMatrix(t symop.Op) *Wyckoff {
	inv, err := symop.Inverse(t)
	if err != nil {
		panic(ErrBadRelation)
	}
	if W.trans != nil {
		t = W.trans.Mul(t)
	}
	n := &Wyckoff{
		Multiplicity: W.Multiplicity,
		Letter:       W.Letter,
		Index:        W.Index,
		group:        W.group,
		free:         W.free,
		stab:         W.stab,
		trans:        &t,
		std:          W.std,
	}
	if n.std == nil {
		n.std = W.ops
	}
	n.ops = make([]symop.Op, len(W.ops))
	for i, o := range W.ops {
		n.ops[i] = inv.Mul(o).Mul(t)
	}
	return n
}

// Update brings the generators of a transformed position back to canonical
// form: the rotation part of the singular generators is re-parametrized so
// that the free coordinates map onto themselves, and translations are
// reduced into the cell. It reports whether the translations and the
// rotations end up different from those of the standard setting.
func (W *Wyckoff) Update() (translationFixed, rotationFixed bool) {
	if W.trans == nil {
		return false, false
	}
	for i, o := range W.ops {
		c := o
		if o.R.Rank() < 3 {
			var dirs []symop.Vec
			for j := 0; j < 3; j++ {
				if col := o.R.Col(j); col.Norm() > 1e-9 {
					dirs = append(dirs, col)
				}
			}
			s := fromPoint(o.T, dirs)
			c = s.wrapped().op
			if i == 0 {
				W.free = s.free
			}
		} else {
			c.T = snap(c.T).Wrap()
		}
		W.ops[i] = c
	}
	for i, o := range W.ops {
		if !o.R.Equal(W.std[i].R, 1e-6) {
			rotationFixed = true
		}
		if o.T.Sub(W.std[i].T).Norm() > 1e-6 {
			translationFixed = true
		}
	}
	return translationFixed, rotationFixed
}

// SwapAxis returns the position W after the permutation of axes perm, where
// the new axis i is the old axis perm[i], together with the permutation
// matrix. If the permutation maps the group onto itself, the standard
// position with the same orbit is returned.
func (W *Wyckoff) SwapAxis(perm [3]int) (*Wyckoff, symop.Mat) {
	var p symop.Mat
	for i, j := range perm {
		p[j][i] = 1
	}
	n := W.TransformFromMatrix(symop.New(p, symop.Vec{}))
	n.Update()
	G := W.group
	pinv, err := p.Inverse()
	if err != nil {
		panic(ErrBadRelation)
	}
	for _, o := range G.ops {
		if !G.Contains(symop.New(pinv.Mul(o.R).Mul(p), pinv.MulVec(o.T))) {
			return n, p
		}
	}
	//the generic point of the new orbit
	pt := n.ops[0].Operate(genericParams)
	for _, c := range G.Wyckoffs() {
		if c.Multiplicity == n.Multiplicity && c.Dof() == n.Dof() && c.Contains(pt, 1e-6) {
			return c, p
		}
	}
	return n, p
}
