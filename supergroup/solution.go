/*
 * solution.go, part of goXtal.
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

package supergroup

import (
	xtal "github.com/rmera/goxtal"
	"github.com/rmera/goxtal/lattice"
	"github.com/rmera/goxtal/symop"
)

// Group returns the supergroup of the solution, G.
func (s *Solution) Group() int { return s.group.Number }

// Low returns the low-symmetry structure the solution was found for.
func (s *Solution) Low() *xtal.Structure { return s.low }

// MakeInSupergroup returns the high-symmetry structure, in G.
func (s *Solution) MakeInSupergroup() *xtal.Structure {
	R := &xtal.Structure{Group: s.group, Lattice: s.cell.Copy()}
	for _, a := range s.Assignments {
		R.Sites = append(R.Sites, xtal.Relocate(s.low.Sites[a.Sites[0]], a.Wyckoff, a.Position))
	}
	return R
}

// MakeInSubgroup returns n structures in the group of the low-symmetry
// structure that go from it to the high-symmetry one. Structure i has
// moved a fraction (i+1)/n of the way, so the last one is the
// high-symmetry structure described in the subgroup. The lattice
// parameters are interpolated the same way. Every structure keeps the
// sites of the low-symmetry one, so they can be written as frames of a
// trajectory.
func (s *Solution) MakeInSubgroup(n int) []*xtal.Structure {
	if n < 1 {
		return nil
	}
	lp := s.low.Lattice.ParaDeg()
	hp := s.cell.Transform(s.Transform.R.T()).ParaDeg()
	ret := make([]*xtal.Structure, n)
	for i := range ret {
		f := float64(i+1) / float64(n)
		var p [6]float64
		for k := range p {
			p[k] = lp[k] + f*(hp[k]-lp[k])
		}
		R := &xtal.Structure{Group: s.low.Group, Lattice: lattice.FromPara(p[0], p[1], p[2], p[3], p[4], p[5], s.low.Lattice.Type())}
		for j, site := range s.low.Sites {
			pos := site.Position()
			pos = pos.Add(s.targets[j].Sub(pos).Scale(f))
			R.Sites = append(R.Sites, xtal.Relocate(site, site.Wyckoff(), pos))
		}
		ret[i] = R
	}
	return ret
}

// Displacements returns, for each site of the low-symmetry structure,
// the displacement in Å that takes it to the high-symmetry structure.
func (s *Solution) Displacements() []float64 {
	ret := make([]float64, len(s.low.Sites))
	cell := s.low.Lattice.Matrix()
	for j, site := range s.low.Sites {
		ret[j] = symop.CartesianNorm(s.targets[j].Sub(site.Position()), cell)
	}
	return ret
}
