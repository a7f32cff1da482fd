/*
 * wyckoff_gen.go, part of goXtal.
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
	"sort"

	"github.com/rmera/goxtal/symop"
)

//Wyckoff positions are derived from the fixed-point subspaces of all the
//operations: their intersections give every special subspace, and the
//orbits of those under the group are the Wyckoff positions.

type subspaceSet struct {
	items []subspace
	byKey map[[9]int64][]int
}

func newSubspaceSet() *subspaceSet {
	return &subspaceSet{byKey: map[[9]int64][]int{}}
}

func (S *subspaceSet) find(s subspace, eq func(a, b subspace) bool) int {
	for _, i := range S.byKey[s.key()] {
		if eq(S.items[i], s) {
			return i
		}
	}
	return -1
}

func (S *subspaceSet) add(s subspace, eq func(a, b subspace) bool) (int, bool) {
	if i := S.find(s, eq); i >= 0 {
		return i, false
	}
	S.items = append(S.items, s)
	i := len(S.items) - 1
	S.byKey[s.key()] = append(S.byKey[s.key()], i)
	return i, true
}

//specialSubspaces returns every special subspace of the group that meets
//the closed unit cell.
func specialSubspaces(ops []symop.Op) *subspaceSet {
	set := newSubspaceSet()
	eye := symop.Eye()
	for _, g := range ops {
		if g.R.Equal(eye, 1e-9) {
			continue
		}
		m := eye.Sub(g.R)
		var lo, hi [3]int
		for k := 0; k < 3; k++ {
			l, h := 0.0, 0.0
			for j := 0; j < 3; j++ {
				l += math.Min(0, m[k][j])
				h += math.Max(0, m[k][j])
			}
			lo[k] = int(math.Ceil(l - g.T[k] - 1e-6))
			hi[k] = int(math.Floor(h - g.T[k] + 1e-6))
		}
		for n0 := lo[0]; n0 <= hi[0]; n0++ {
			for n1 := lo[1]; n1 <= hi[1]; n1++ {
				for n2 := lo[2]; n2 <= hi[2]; n2++ {
					n := symop.Vec{float64(n0), float64(n1), float64(n2)}
					eqs := make([][4]float64, 3)
					for k := 0; k < 3; k++ {
						eqs[k] = [4]float64{m[k][0], m[k][1], m[k][2], g.T[k] + n[k]}
					}
					s, ok := solve(eqs)
					if ok && s.dim() < 3 && s.intersectsCell() {
						set.add(s, equalExact)
					}
				}
			}
		}
	}
	var frontier []int
	for i, s := range set.items {
		if s.dim() > 0 {
			frontier = append(frontier, i)
		}
	}
	for len(frontier) > 0 {
		var next []int
		for _, i := range frontier {
			for j := 0; j < len(set.items); j++ {
				a, b := set.items[i], set.items[j]
				if j == i || b.dim() == 0 {
					continue
				}
				x, ok := intersect(a, b)
				if !ok || x.dim() == a.dim() || x.dim() == b.dim() || !x.intersectsCell() {
					continue
				}
				if k, isNew := set.add(x, equalExact); isNew && x.dim() > 0 {
					next = append(next, k)
				}
			}
		}
		frontier = next
	}
	return set
}

//stabilizer returns the operations of ops that fix p, with the lattice
//translation that makes them fix it exactly.
func stabilizer(ops []symop.Op, p symop.Vec) []symop.Op {
	var st []symop.Op
	for _, g := range ops {
		d := p.Sub(g.Operate(p))
		if d.PBC().Norm() < 1e-6 {
			st = append(st, symop.New(g.R, g.T.Add(d.Round())))
		}
	}
	return st
}

//repLess orders the candidate representatives of a position: few non-zero
//translations first, then few negative coefficients, then few coefficients,
//then lexicographically.
func repLess(a, b subspace) bool {
	ka, kb := repScore(a), repScore(b)
	for i := range ka {
		if ka[i] != kb[i] {
			return ka[i] < kb[i]
		}
	}
	return false
}

func repScore(s subspace) []float64 {
	var nnzT, neg, nnzR float64
	for k := 0; k < 3; k++ {
		if math.Abs(s.op.T[k]) > 1e-9 {
			nnzT++
		}
		for j := 0; j < 3; j++ {
			if math.Abs(s.op.R[k][j]) > 1e-9 {
				nnzR++
			}
			if s.op.R[k][j] < -1e-9 {
				neg++
			}
		}
	}
	sc := []float64{nnzT, neg, nnzR, s.op.T[0], s.op.T[1], s.op.T[2]}
	for k := 0; k < 3; k++ {
		for j := 0; j < 3; j++ {
			sc = append(sc, -s.op.R[k][j])
		}
	}
	return sc
}

type wpClass struct {
	rep  subspace
	mult int
	stab []symop.Op
}

//buildWyckoffs derives the Wyckoff positions of G, general position first.
//Letters follow itaPositions where G has an entry, and the derived order
//otherwise.
func (G *Group) buildWyckoffs() []*Wyckoff {
	set := specialSubspaces(G.ops)
	mod := newSubspaceSet()
	for _, s := range set.items {
		mod.add(s.wrapped(), equalMod)
	}
	classOf := make([]int, len(mod.items))
	for i := range classOf {
		classOf[i] = -1
	}
	var classes []wpClass
	for i, s := range mod.items {
		if classOf[i] >= 0 {
			continue
		}
		c := len(classes)
		classOf[i] = c
		best := s
		for _, g := range G.ops {
			img := s.image(g).wrapped()
			if k := mod.find(img, equalMod); k >= 0 {
				classOf[k] = c
			}
			if repLess(img, best) {
				best = img
			}
		}
		st := stabilizer(G.ops, best.generic())
		classes = append(classes, wpClass{rep: best, mult: len(G.ops) / len(st), stab: st})
	}
	sort.SliceStable(classes, func(i, j int) bool {
		a, b := classes[i], classes[j]
		if a.mult != b.mult {
			return a.mult < b.mult
		}
		if a.rep.dim() != b.rep.dim() {
			return a.rep.dim() < b.rep.dim()
		}
		return repLess(a.rep, b.rep)
	})
	if t, ok := G.tabulated(classes); ok {
		classes = t
	}
	gen := whole()
	classes = append(classes, wpClass{rep: gen, mult: len(G.ops), stab: []symop.Op{symop.Identity()}})
	n := len(classes)
	ws := make([]*Wyckoff, n)
	for i, c := range classes {
		w := &Wyckoff{
			group:        G,
			Multiplicity: c.mult,
			Letter:       letter(i),
			Index:        n - 1 - i,
			free:         c.rep.free,
			stab:         c.stab,
		}
		w.ops = orbitOps(G.ops, c.rep.op)
		ws[n-1-i] = w
	}
	return ws
}

//orbitOps returns g∘rep for one g per distinct image of a generic point.
func orbitOps(ops []symop.Op, rep symop.Op) []symop.Op {
	p := rep.Operate(genericParams)
	var imgs []symop.Vec
	var ret []symop.Op
outer:
	for _, g := range ops {
		q := g.Operate(p)
		for _, o := range imgs {
			if symop.AreEquivalent(o, q, 1e-6) {
				continue outer
			}
		}
		imgs = append(imgs, q)
		o := g.Mul(rep)
		o.T = snap(o.T).Wrap()
		ret = append(ret, o)
	}
	return ret
}

func letter(i int) string {
	if i < 26 {
		return string(rune('a' + i))
	}
	return string(rune('A' + i - 26))
}
