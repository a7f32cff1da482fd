/*
 * wyckoff_table.go, part of goXtal.
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
	"strings"

	"github.com/rmera/goxtal/symop"
)

//itaPositions holds, for some groups in their standard setting, the
//representative of each Wyckoff position as the International Tables list
//it, letter a first and the general position last. The derived positions
//of these groups take the letters and representatives from here. Groups
//with origin choices are left out.
var itaPositions = map[int]string{
	2:   "0,0,0 0,0,1/2 0,1/2,0 1/2,0,0 1/2,1/2,0 1/2,0,1/2 0,1/2,1/2 1/2,1/2,1/2 x,y,z",
	3:   "0,y,0 0,y,1/2 1/2,y,0 1/2,y,1/2 x,y,z",
	5:   "0,y,0 0,y,1/2 x,y,z",
	6:   "x,0,z x,1/2,z x,y,z",
	8:   "x,0,z x,y,z",
	10:  "0,0,0 0,1/2,0 0,0,1/2 1/2,0,0 1/2,1/2,0 0,1/2,1/2 1/2,0,1/2 1/2,1/2,1/2 0,y,0 1/2,y,0 0,y,1/2 1/2,y,1/2 x,0,z x,1/2,z x,y,z",
	11:  "0,0,0 1/2,0,0 0,0,1/2 1/2,0,1/2 x,1/4,z x,y,z",
	12:  "0,0,0 0,1/2,0 0,0,1/2 0,1/2,1/2 1/4,1/4,0 1/4,1/4,1/2 0,y,0 0,y,1/2 x,0,z x,y,z",
	14:  "0,0,0 1/2,0,0 0,0,1/2 1/2,0,1/2 x,y,z",
	15:  "0,0,0 0,1/2,0 1/4,1/4,0 1/4,1/4,1/2 0,y,1/4 x,y,z",
	25:  "0,0,z 0,1/2,z 1/2,0,z 1/2,1/2,z x,0,z x,1/2,z 0,y,z 1/2,y,z x,y,z",
	36:  "0,y,z x,y,z",
	47:  "0,0,0 1/2,0,0 0,0,1/2 1/2,0,1/2 0,1/2,0 1/2,1/2,0 0,1/2,1/2 1/2,1/2,1/2 x,0,0 x,0,1/2 x,1/2,0 x,1/2,1/2 0,y,0 0,y,1/2 1/2,y,0 1/2,y,1/2 0,0,z 0,1/2,z 1/2,0,z 1/2,1/2,z 0,y,z 1/2,y,z x,0,z x,1/2,z x,y,0 x,y,1/2 x,y,z",
	62:  "0,0,0 0,0,1/2 x,1/4,z x,y,z",
	63:  "0,0,0 0,1/2,0 0,y,1/4 1/4,1/4,0 x,0,0 0,y,z x,y,1/4 x,y,z",
	64:  "0,0,0 1/2,0,0 1/4,1/4,0 x,0,0 1/4,y,1/4 0,y,z x,y,z",
	99:  "0,0,z 1/2,1/2,z 1/2,0,z x,x,z x,0,z x,1/2,z x,y,z",
	123: "0,0,0 0,0,1/2 1/2,1/2,0 1/2,1/2,1/2 0,1/2,1/2 0,1/2,0 0,0,z 1/2,1/2,z 0,1/2,z x,x,0 x,x,1/2 x,0,0 x,0,1/2 x,1/2,0 x,1/2,1/2 x,y,0 x,y,1/2 x,x,z x,0,z x,1/2,z x,y,z",
	139: "0,0,0 0,0,1/2 0,1/2,0 0,1/2,1/4 0,0,z 1/4,1/4,1/4 0,1/2,z x,x,0 x,0,0 x,1/2,0 x,x+1/2,1/4 x,y,0 x,x,z 0,y,z x,y,z",
	146: "0,0,z x,y,z",
	148: "0,0,0 0,0,1/2 0,0,z 1/2,0,1/2 1/2,0,0 x,y,z",
	160: "0,0,z x,-x,z x,y,z",
	164: "0,0,0 0,0,1/2 0,0,z 1/3,2/3,z 1/2,0,0 1/2,0,1/2 x,0,0 x,0,1/2 x,-x,z x,y,z",
	166: "0,0,0 0,0,1/2 0,0,z 1/2,0,1/2 1/2,0,0 x,0,0 x,0,1/2 x,-x,z x,y,z",
	167: "0,0,1/4 0,0,0 0,0,z 1/2,0,0 x,0,1/4 x,y,z",
	176: "0,0,1/4 0,0,0 1/3,2/3,1/4 2/3,1/3,1/4 0,0,z 1/3,2/3,z 1/2,0,0 x,y,1/4 x,y,z",
	191: "0,0,0 0,0,1/2 1/3,2/3,0 1/3,2/3,1/2 0,0,z 1/2,0,0 1/2,0,1/2 1/3,2/3,z 1/2,0,z x,0,0 x,0,1/2 x,2x,0 x,2x,1/2 x,0,z x,2x,z x,y,0 x,y,1/2 x,y,z",
	194: "0,0,0 0,0,1/4 1/3,2/3,1/4 1/3,2/3,3/4 0,0,z 1/3,2/3,z 1/2,0,0 x,2x,1/4 x,0,0 x,y,1/4 x,2x,z x,y,z",
	205: "0,0,0 1/2,1/2,1/2 x,x,x x,y,z",
	221: "0,0,0 1/2,1/2,1/2 0,1/2,1/2 1/2,0,0 x,0,0 x,1/2,1/2 x,x,x x,1/2,0 0,y,y 1/2,y,y 0,y,z 1/2,y,z x,x,z x,y,z",
	225: "0,0,0 1/2,1/2,1/2 1/4,1/4,1/4 0,1/4,1/4 x,0,0 x,x,x x,1/4,1/4 0,y,y 1/2,y,y 0,y,z x,x,z x,y,z",
	229: "0,0,0 0,1/2,1/2 1/4,1/4,1/4 1/4,0,1/2 x,0,0 x,x,x x,0,1/2 0,y,y 1/4,y,-y+1/2 0,y,z x,x,z x,y,z",
	230: "0,0,0 1/8,1/8,1/8 1/8,0,1/4 3/8,0,1/4 x,x,x x,0,1/4 1/8,y,-y+1/4 x,y,z",
}

//freeColumns returns the parameters that op depends on.
func freeColumns(op symop.Op) []int {
	var free []int
	for j := 0; j < 3; j++ {
		if op.R.Col(j).Norm() > 1e-9 {
			free = append(free, j)
		}
	}
	return free
}

//onOrbit returns true if some image of p under ops lies on s.
func onOrbit(ops []symop.Op, s subspace, p symop.Vec) bool {
	eye := symop.Eye()
	for _, g := range ops {
		if _, d := nearestOn(s.op, s.free, g.Operate(p), eye); d < 1e-6 {
			return true
		}
	}
	return false
}

//tabulated returns the special classes of G, as derived, in the order of
//itaPositions and with its representatives. It returns false if G has no
//entry, or if the entry does not match the derived classes.
func (G *Group) tabulated(classes []wpClass) ([]wpClass, bool) {
	entry, ok := itaPositions[G.Number]
	if !ok || G.Setting != 0 {
		return nil, false
	}
	reps := strings.Fields(entry)
	if len(reps) != len(classes)+1 {
		logger.Printf("group %d: %d tabulated positions, %d derived", G.Number, len(reps), len(classes)+1)
		return nil, false
	}
	ret := make([]wpClass, len(classes))
	taken := make([]bool, len(classes))
	for i, xyz := range reps[:len(classes)] {
		op, err := symop.ParseXYZ(xyz)
		if err != nil {
			logger.Printf("group %d: tabulated position %s: %s", G.Number, xyz, err.Error())
			return nil, false
		}
		rep := subspace{op: op, free: freeColumns(op)}
		p := rep.generic()
		k := -1
		for j, c := range classes {
			if !taken[j] && c.rep.dim() == rep.dim() && onOrbit(G.ops, c.rep, p) {
				k = j
				break
			}
		}
		st := stabilizer(G.ops, p)
		if k < 0 || len(G.ops)/len(st) != classes[k].mult {
			logger.Printf("group %d: tabulated position %s%s matches no derived one", G.Number, letter(i), xyz)
			return nil, false
		}
		taken[k] = true
		ret[i] = wpClass{rep: rep, mult: classes[k].mult, stab: st}
	}
	return ret, true
}
