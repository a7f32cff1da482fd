/*
 * ferroelectric.go, part of goXtal.
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

	"github.com/rmera/goxtal/symop"
)

// FerroelectricGroups returns the crystal classes that G can reach by
// developing a spontaneous polarization: the classes of the stabilizers
// in G of every direction, G's own class excluded. They are sorted by
// decreasing order.
func (G *Group) FerroelectricGroups() []string {
	rots := G.Rotations()
	dirs := []symop.Vec{{0.1234, 0.5678, 0.9012}}
	for _, r := range rots {
		if ax, ok := axisOf(r); ok {
			dirs = append(dirs, ax)
		}
		if r.Det() > 0 {
			continue
		}
		//a generic direction within the mirror plane
		if pl := nullSpace(r.Sub(symop.Eye()), 3); len(pl) == 2 {
			dirs = append(dirs, pl[0].Add(pl[1].Scale(0.3183)))
		}
	}
	seen := map[string]bool{G.PointGroup: true}
	order := map[string]int{}
	var ret []string
	for _, d := range dirs {
		var stab []symop.Mat
		for _, r := range rots {
			if r.MulVec(d).Sub(d).Norm() < 1e-6 {
				stab = append(stab, r)
			}
		}
		s := pgSymbol(stab)
		if seen[s] {
			continue
		}
		seen[s] = true
		order[s] = len(stab)
		ret = append(ret, s)
	}
	sort.SliceStable(ret, func(i, j int) bool { return order[ret[i]] > order[ret[j]] })
	return ret
}
