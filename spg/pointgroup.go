/*
 * pointgroup.go, part of goXtal.
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
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/rmera/goxtal/symop"
)

//Point groups are told apart by how many elements of each kind they
//have, the kind being the determinant and trace of the rotation.

func rotationKind(r symop.Mat) [2]int {
	return [2]int{int(math.Round(r.Det())), int(math.Round(r.Trace()))}
}

//pgKey returns the signature of the point group with the given rotations.
func pgKey(rots []symop.Mat) string {
	count := map[[2]int]int{}
	for _, r := range rots {
		count[rotationKind(r)]++
	}
	keys := make([][2]int, 0, len(count))
	for k := range count {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i][0] != keys[j][0] {
			return keys[i][0] < keys[j][0]
		}
		return keys[i][1] < keys[j][1]
	})
	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%d:%d:%d;", k[0], k[1], count[k])
	}
	return b.String()
}

var (
	pgOnce  sync.Once
	pgTable map[string]string
)

//pgSymbol returns the symbol of the crystal class of the rotations, or ""
//if they are not a crystallographic point group.
func pgSymbol(rots []symop.Mat) string {
	pgOnce.Do(func() {
		pgTable = map[string]string{}
		first := 1
		for _, c := range classes {
			g := MustNew(first)
			pgTable[pgKey(g.Rotations())] = c.symbol
			first = c.last + 1
		}
	})
	return pgTable[pgKey(unique(rots))]
}

func unique(rots []symop.Mat) []symop.Mat {
	seen := map[[9]int64]bool{}
	var r []symop.Mat
	for _, m := range rots {
		if k := m.RotKey(); !seen[k] {
			seen[k] = true
			r = append(r, m)
		}
	}
	return r
}

// PointGroupOf returns the crystal class symbol of a set of operations,
// such as "mmm", ignoring translations. It returns "" if the rotations
// don't form a crystallographic point group.
func PointGroupOf(ops []symop.Op) string {
	rots := make([]symop.Mat, len(ops))
	for i, o := range ops {
		rots[i] = o.R
	}
	return pgSymbol(rots)
}

//rotationOrder returns the order of the proper part ±r, which is the n
//of an n-fold axis or rotoinversion.
func rotationOrder(r symop.Mat) int {
	if r.Det() < 0 {
		r = r.Scale(-1)
	}
	switch int(math.Round(r.Trace())) {
	case 3:
		return 1
	case -1:
		return 2
	case 0:
		return 3
	case 1:
		return 4
	case 2:
		return 6
	}
	return 0
}

//axisOf returns the axis of the proper part of r, as a direction in the
//lattice basis, and false for ±1.
func axisOf(r symop.Mat) (symop.Vec, bool) {
	if r.Det() < 0 {
		r = r.Scale(-1)
	}
	if r.Equal(symop.Eye(), 1e-9) {
		return symop.Vec{}, false
	}
	ns := nullSpace(r.Sub(symop.Eye()), 3)
	if len(ns) != 1 {
		return symop.Vec{}, false
	}
	return ns[0], true
}

func parallel(u, v symop.Vec) bool {
	return u.Cross(v).Norm() < 1e-6*(1+u.Norm()*v.Norm())
}

//the polar classes: those that leave some direction invariant.
var polarClasses = map[string]bool{
	"1": true, "2": true, "m": true, "mm2": true, "4": true, "4mm": true,
	"3": true, "3m": true, "6": true, "6mm": true,
}
