/*
 * sitesym.go, part of goXtal.
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
	"strings"

	"github.com/rmera/goxtal/lattice"
	"github.com/rmera/goxtal/symop"
)

//Symmetry directions of each lattice system, by position in the oriented
//symbols, in the standard setting.
var (
	dirMonoclinic = [][]symop.Vec{{{0, 1, 0}}}
	dirOrtho      = [][]symop.Vec{{{1, 0, 0}}, {{0, 1, 0}}, {{0, 0, 1}}}
	dirTetra      = [][]symop.Vec{
		{{0, 0, 1}},
		{{1, 0, 0}, {0, 1, 0}},
		{{1, 1, 0}, {1, -1, 0}},
	}
	dirHexa = [][]symop.Vec{
		{{0, 0, 1}},
		{{1, 0, 0}, {0, 1, 0}, {1, 1, 0}},
		{{1, -1, 0}, {1, 2, 0}, {2, 1, 0}},
	}
	dirRhombo = dirHexa[:2]
	dirCubic  = [][]symop.Vec{
		{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
		{{1, 1, 1}, {1, -1, -1}, {-1, 1, -1}, {-1, -1, 1}},
		{{1, -1, 0}, {1, 1, 0}, {0, 1, -1}, {0, 1, 1}, {-1, 0, 1}, {1, 0, 1}},
	}
)

var rhomboNumbers = map[int]bool{146: true, 148: true, 155: true, 160: true, 161: true, 166: true, 167: true}

//directions returns the symmetry directions of G in its own basis.
func (G *Group) directions() [][]symop.Vec {
	var std [][]symop.Vec
	switch G.LatticeType {
	case lattice.Triclinic:
		return nil
	case lattice.Monoclinic:
		std = dirMonoclinic
	case lattice.Orthorhombic:
		std = dirOrtho
	case lattice.Tetragonal:
		std = dirTetra
	case lattice.Cubic:
		std = dirCubic
	default:
		std = dirHexa
		if rhomboNumbers[G.Number] {
			std = dirRhombo
		}
	}
	if G.basis.Equal(symop.Eye(), 1e-9) {
		return std
	}
	inv, err := G.basis.Inverse()
	if err != nil {
		panic(ErrBadRelation)
	}
	ret := make([][]symop.Vec, len(std))
	for i, c := range std {
		for _, d := range c {
			ret[i] = append(ret[i], inv.MulVec(d))
		}
	}
	return ret
}

//symmetryAlong returns the symbol of the elements of rots along d.
func symmetryAlong(d symop.Vec, rots []symop.Mat) string {
	var rot, roto int
	mirror := false
	for _, r := range rots {
		ax, ok := axisOf(r)
		if !ok || !parallel(ax, d) {
			continue
		}
		o := rotationOrder(r)
		switch {
		case r.Det() > 0 && o > rot:
			rot = o
		case r.Det() < 0 && o == 2:
			mirror = true
		case r.Det() < 0 && o > roto:
			roto = o
		}
	}
	var s string
	switch {
	case mirror && rot == 3:
		s = "-6"
	case mirror && rot > 1:
		s = string(rune('0'+rot)) + "/m"
	case roto > 2:
		s = "-" + string(rune('0'+roto))
	case rot > 1:
		s = string(rune('0' + rot))
	case mirror:
		s = "m"
	}
	return s
}

//elementRank orders the symbols of one cubic direction class the way
//the point group symbols do: axes of order 3 or more, then mirrors, then
//twofold axes.
func elementRank(s string) int {
	switch s {
	case "m", "2/m":
		return 1
	case "2":
		return 2
	}
	return 0
}

// SiteSymmetry returns the oriented site symmetry symbol of W, such as
// ".32" or "4/mm.m".
func (W *Wyckoff) SiteSymmetry() string {
	W.symOnce.Do(func() {
		rots := make([]symop.Mat, len(W.stab))
		for i, o := range W.stab {
			rots[i] = o.R
		}
		rots = unique(rots)
		W.site = siteSymbol(W.group.directions(), rots, W.group.LatticeType == lattice.Cubic)
	})
	return W.site
}

//siteSymbol builds the oriented symbol from the directions of each class,
//taken in order. With byRank, the symbols within a class are sorted by
//elementRank instead.
func siteSymbol(dirs [][]symop.Vec, rots []symop.Mat, byRank bool) string {
	centro := false
	for _, r := range rots {
		centro = centro || r.Equal(symop.Eye().Scale(-1), 1e-9)
	}
	pg := pgSymbol(rots)
	var parts []string
	trivial := true
	for _, class := range dirs {
		type carried struct {
			d symop.Vec
			a string
		}
		var cs []carried
		for _, d := range class {
			a := symmetryAlong(d, rots)
			if a == "" {
				continue
			}
			dup := false
			for _, c := range cs {
				dup = dup || equivalentDirs(c.d, d, rots)
			}
			if !dup {
				cs = append(cs, carried{d, a})
			}
		}
		if byRank {
			sort.SliceStable(cs, func(i, j int) bool { return elementRank(cs[i].a) < elementRank(cs[j].a) })
		}
		if len(cs) == 0 {
			parts = append(parts, ".")
			continue
		}
		trivial = false
		var b strings.Builder
		for _, c := range cs {
			b.WriteString(abbreviate(c.a, pg))
		}
		parts = append(parts, b.String())
	}
	if trivial {
		if centro {
			return "-1"
		}
		return "1"
	}
	return strings.Join(parts, "")
}

//equivalentDirs returns true if some rotation maps u onto ±v.
func equivalentDirs(u, v symop.Vec, rots []symop.Mat) bool {
	for _, r := range rots {
		if parallel(r.MulVec(u), v) {
			return true
		}
	}
	return false
}

//abbreviate shortens the symbol of one direction the way the short
//Hermann-Mauguin symbols of the holohedries do.
func abbreviate(s, pg string) string {
	switch pg {
	case "mmm", "4/mmm", "6/mmm", "-3m", "m-3":
		if s == "2/m" {
			return "m"
		}
	case "m-3m":
		if s == "2/m" || s == "4/m" {
			return "m"
		}
	}
	return s
}
