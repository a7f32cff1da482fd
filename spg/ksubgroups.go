/*
 * ksubgroups.go, part of goXtal.
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

//hnfs returns the lower triangular Hermite normal forms with determinant
//n. The columns of each matrix are a basis of a sublattice of index n.
func hnfs(n int) []symop.Mat {
	var ret []symop.Mat
	for a := 1; a <= n; a++ {
		if n%a != 0 {
			continue
		}
		for c := 1; c <= n/a; c++ {
			if (n/a)%c != 0 {
				continue
			}
			f := n / a / c
			for b := 0; b < c; b++ {
				for d := 0; d < f; d++ {
					for e := 0; e < f; e++ {
						ret = append(ret, symop.Mat{
							{float64(a), 0, 0},
							{float64(b), float64(c), 0},
							{float64(d), float64(e), float64(f)},
						})
					}
				}
			}
		}
	}
	return ret
}

//cosets returns representatives of Z³ modulo the lattice spanned by the
//columns of the triangular m.
func cosets(m symop.Mat) []symop.Vec {
	var ret []symop.Vec
	for i := 0; i < int(m[0][0]); i++ {
		for j := 0; j < int(m[1][1]); j++ {
			for k := 0; k < int(m[2][2]); k++ {
				ret = append(ret, symop.Vec{float64(i), float64(j), float64(k)})
			}
		}
	}
	return ret
}

//sublatticeOf returns true if the lattice of a is contained in that of b.
func sublatticeOf(a, b symop.Mat) bool {
	binv, err := b.Inverse()
	if err != nil {
		return false
	}
	return binv.Mul(a).IsInteger(1e-6)
}

func invariantLattice(m symop.Mat, rots []symop.Mat) bool {
	for _, r := range rots {
		if !sublatticeOf(r.Mul(m), m) {
			return false
		}
	}
	return true
}

//pointGenerators returns the indexes of a small set of coset
//representatives whose rotations generate the point group.
func pointGenerators(reps []symop.Op) []int {
	idx := make([]int, len(reps))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return rotationOrder(reps[idx[i]].R) > rotationOrder(reps[idx[j]].R)
	})
	cur := []symop.Mat{symop.Eye()}
	var gens []int
	var rots []symop.Mat
	for _, i := range idx {
		if hasRot(cur, reps[i].R) {
			continue
		}
		gens = append(gens, i)
		rots = append(rots, reps[i].R)
		cur = rotClosure(rots)
		if len(cur) == len(reps) {
			break
		}
	}
	return gens
}

//kSubgroups returns the maximal k-subgroups of G whose lattices have
//index 2, 3 or 4 in that of G.
func (G *Group) kSubgroups() []*Relation {
	t := latticeBasis(G.centering)
	tinv, err := t.Inverse()
	if err != nil {
		panic(ErrBadRelation)
	}
	reps := G.CosetReps()
	rots := make([]symop.Mat, len(reps))
	for i, o := range reps {
		rots[i] = tinv.Mul(o.R).Mul(t).Rounded()
	}
	gens := pointGenerators(reps)
	var half []symop.Mat
	var ret []*Relation
	for _, n := range []int{2, 3, 4} {
		for _, m := range hnfs(n) {
			if !invariantLattice(m, rots) {
				continue
			}
			if n == 2 {
				half = append(half, m)
			}
			if n == 4 {
				inter := false
				for _, h := range half {
					if sublatticeOf(m, h) {
						inter = true
						break
					}
				}
				if inter {
					continue
				}
			}
			ret = append(ret, G.kSubgroupsOn(t, m, n, reps, gens)...)
		}
	}
	sortRelations(ret)
	return ret
}

//kSubgroupsOn returns one subgroup per conjugacy class among those with
//the full point group of G and the lattice t·m, where t is the primitive
//basis of G.
func (G *Group) kSubgroupsOn(t, m symop.Mat, index int, reps []symop.Op, gens []int) []*Relation {
	q := t.Mul(m)
	qinv, err := q.Inverse()
	if err != nil {
		panic(ErrBadRelation)
	}
	toQ := func(o symop.Op) symop.Op {
		return symop.New(qinv.Mul(o.R).Mul(q).Rounded(), qinv.MulVec(o.T))
	}
	var taus []symop.Vec
	for _, v := range cosets(m) {
		taus = append(taus, t.MulVec(v))
	}
	combos := 1
	for range gens {
		combos *= len(taus)
	}
	seen := map[string]bool{}
	var ret []*Relation
	for c := 0; c < combos; c++ {
		g := make([]symop.Op, len(gens))
		x := c
		for i, gi := range gens {
			o := reps[gi]
			o.T = o.T.Add(taus[x%len(taus)])
			x /= len(taus)
			g[i] = toQ(o)
		}
		ops := closure(g)
		if len(ops) != len(reps) {
			continue //a translation of G outside of the sublattice
		}
		key := opSetKey(ops)
		if seen[key] {
			continue
		}
		for _, h := range reps {
			for _, tau := range taus {
				cj := h
				cj.T = cj.T.Add(tau)
				cq := toQ(cj)
				cqinv := symop.MustInverse(cq)
				conj := make([]symop.Op, len(ops))
				for i, o := range ops {
					conj[i] = cq.Mul(o).Mul(cqinv)
				}
				seen[opSetKey(conj)] = true
			}
		}
		N, tr, err := Identify(ops)
		if err != nil {
			logger.Printf("k-subgroup of %d with index %d not identified: %s", G.Number, index, err.Error())
			continue
		}
		inG := make([]symop.Op, len(ops))
		for i, o := range ops {
			inG[i] = symop.New(q.Mul(o.R).Mul(qinv).Rounded(), q.MulVec(o.T))
		}
		ret = append(ret, &Relation{
			Kind:      "k",
			Index:     index,
			Number:    N.Number,
			Transform: symop.New(q.Mul(tr.R), q.MulVec(tr.T)),
			parent:    G,
			ops:       inG,
		})
	}
	return ret
}
