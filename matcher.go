/*
 * matcher.go, part of goXtal.
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

	"gonum.org/v1/gonum/stat"

	"github.com/rmera/goxtal/config"
	"github.com/rmera/goxtal/lattice"
	"github.com/rmera/goxtal/symop"
)

// Matcher compares structures atom by atom, up to the choice of the
// cell vectors and of the origin. Structures whose cells differ by an
// integer volume factor are compared in the larger cell.
type Matcher struct {
	LengthTol float64 //Å, for the cells
	AngleTol  float64 //degrees, for the cells
	MaxDist   float64 //Å, largest displacement of a single atom
}

// NewMatcher returns a matcher with the lattice tolerances of t, and d_tol
// as the largest displacement.
func NewMatcher(t *config.Tolerances) *Matcher {
	t = t.Copy().Fill()
	return &Matcher{LengthTol: t.LengthTol, AngleTol: t.AngleTol, MaxDist: t.DTol}
}

type cellAtoms struct {
	el   []string
	pts  []symop.Vec
	cell symop.Mat
}

func atomsOf(S *Structure) (*cellAtoms, error) {
	el, f, err := S.Expand()
	if err != nil {
		return nil, errDecorate(err, "atomsOf")
	}
	return &cellAtoms{el: el, pts: f.Vecs(), cell: S.Lattice.Matrix()}, nil
}

//supercell returns the atoms of c in the cell whose rows are t·cell,
//t being an integer matrix with determinant n.
func (c *cellAtoms) supercell(t symop.Mat, n int) *cellAtoms {
	tit, err := t.T().Inverse()
	if err != nil {
		panic(lattice.ErrSingularCell)
	}
	shifts := []symop.Vec{{}}
	for i := 0; i < n && len(shifts) < n; i++ {
		for j := 0; j < n && len(shifts) < n; j++ {
			for k := 0; k < n && len(shifts) < n; k++ {
				s := tit.MulVec(symop.Vec{float64(i), float64(j), float64(k)}).Wrap()
				dup := false
				for _, o := range shifts {
					if symop.AreEquivalent(o, s, 1e-6) {
						dup = true
						break
					}
				}
				if !dup {
					shifts = append(shifts, s)
				}
			}
		}
	}
	ret := &cellAtoms{cell: t.Mul(c.cell)}
	for i, p := range c.pts {
		q := tit.MulVec(p)
		for _, s := range shifts {
			ret.el = append(ret.el, c.el[i])
			ret.pts = append(ret.pts, q.Add(s).Wrap())
		}
	}
	return ret
}

func counts(el []string) map[string]int {
	ret := make(map[string]int)
	for _, e := range el {
		ret[e]++
	}
	return ret
}

// RMS returns the root mean square displacement, in Å, between the atoms
// of a and b, for the best correspondence of cells and origins. It
// returns false if the structures don't match: different compositions,
// cells that can't be made to agree, or some atom farther than MaxDist
// from its partner.
func (M *Matcher) RMS(a, b *Structure) (float64, bool) {
	A, err := atomsOf(a)
	if err != nil {
		logger.Print(err)
		return 0, false
	}
	B, err := atomsOf(b)
	if err != nil {
		logger.Print(err)
		return 0, false
	}
	la, lb := a.Lattice, b.Lattice
	if la.Volume() > lb.Volume() {
		A, B = B, A
		la, lb = lb, la
	}
	n := int(math.Round(lb.Volume() / la.Volume()))
	if n < 1 || len(A.el)*n != len(B.el) {
		return 0, false
	}
	ca, cb := counts(A.el), counts(B.el)
	for e, k := range ca {
		if k*n != cb[e] {
			return 0, false
		}
	}
	anchor := ""
	for e, k := range cb {
		if anchor == "" || k < cb[anchor] || (k == cb[anchor] && e < anchor) {
			anchor = e
		}
	}
	maxEntry := 1
	if n > 1 {
		maxEntry = 2
	}
	best, found := math.Inf(1), false
	matches := la.SearchTransformation(lb, &lattice.SearchOptions{LengthTol: M.LengthTol, AngleTol: M.AngleTol, MaxEntry: maxEntry})
	for _, m := range matches {
		S := A.supercell(m.T, n)
		a0 := -1
		for i, e := range S.el {
			if e == anchor {
				a0 = i
				break
			}
		}
		for j, e := range B.el {
			if e != anchor {
				continue
			}
			shift := B.pts[j].Sub(S.pts[a0])
			if r, ok := M.pairRMS(S, B, shift, best); ok && r < best {
				best, found = r, true
			}
		}
	}
	return best, found
}

//pairRMS pairs each atom of A, shifted, with the closest free atom of the
//same element in B, and returns the RMS displacement. It gives up once
//some displacement is above MaxDist, or the partial sum goes above the
//best RMS so far.
func (M *Matcher) pairRMS(A, B *cellAtoms, shift symop.Vec, best float64) (float64, bool) {
	used := make([]bool, len(B.pts))
	d2 := make([]float64, len(A.pts))
	limit := best * best * float64(len(A.pts))
	sum := 0.0
	for i, p := range A.pts {
		q := p.Add(shift)
		k, kd := -1, math.Inf(1)
		for j, r := range B.pts {
			if used[j] || B.el[j] != A.el[i] {
				continue
			}
			if d := symop.Distance(q, r, B.cell); d < kd {
				k, kd = j, d
			}
		}
		if k < 0 || kd > M.MaxDist {
			return 0, false
		}
		used[k] = true
		d2[i] = kd * kd
		if sum += d2[i]; sum > limit {
			return 0, false
		}
	}
	return math.Sqrt(stat.Mean(d2, nil)), true
}

// Fit returns true if a and b match with an RMS displacement below tol.
func (M *Matcher) Fit(a, b *Structure, tol float64) bool {
	r, ok := M.RMS(a, b)
	return ok && r < tol
}

// Similarity makes Matcher a Similarity: the score falls linearly from 1
// for identical structures to 0 for an RMS displacement of MaxDist.
func (M *Matcher) Similarity(a, b *Structure) (float64, error) {
	r, ok := M.RMS(a, b)
	if !ok {
		return 0, nil
	}
	return math.Max(0, 1-r/M.MaxDist), nil
}
