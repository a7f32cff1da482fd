/*
 * optimize.go, part of goXtal.
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

package lattice

import (
	"io"
	"log"
	"os"
	"sort"

	"github.com/rmera/goxtal/symop"
)

var logger = log.New(os.Stderr, "goXtal/lattice: ", 0)

// SetLogger replaces the logger used for non-fatal notices. A nil logger
// silences the package.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard, "", 0)
	}
	logger = l
}

// DefaultIterations is the cap used by OptimizeMulti when none is given.
const DefaultIterations = 5

//reduction is one candidate step: vector i is replaced by v_i + s·v_j.
type reduction struct {
	i, j int
	s    float64
	norm float64
}

//pairs returns the pairs of cell vectors that can be combined without
//breaking the crystal system of L.
func (L *Lattice) pairs() [][2]int {
	switch L.ltype {
	case Monoclinic:
		return [][2]int{{0, 2}}
	case Triclinic:
		return [][2]int{{0, 1}, {0, 2}, {1, 2}}
	}
	return nil
}

// OptimizeOnce performs one angle reduction step on a monoclinic or
// triclinic lattice: the longer vector of a pair is replaced by its sum or
// difference with the shorter one, when that makes it shorter. It returns
// the new lattice, the transformation applied, and whether anything
// changed. L is not modified.
func (L *Lattice) OptimizeOnce() (*Lattice, symop.Mat, bool) {
	m := L.matrix
	var best *reduction
	for _, p := range L.pairs() {
		u, v := symop.Vec(m[p[0]]), symop.Vec(m[p[1]])
		i, j := p[0], p[1]
		if v.Norm() >= u.Norm() {
			i, j = p[1], p[0]
			u, v = v, u
		}
		//u is the longer one
		s := -1.0
		if u.Dot(v) < 0 {
			s = 1
		}
		n := u.Add(v.Scale(s)).Norm()
		if n < u.Norm()-1e-8 && (best == nil || u.Norm()-n > symop.Vec(m[best.i]).Norm()-best.norm) {
			best = &reduction{i: i, j: j, s: s, norm: n}
		}
	}
	t := symop.Eye()
	if best == nil {
		return L.Copy(), t, false
	}
	t[best.i][best.j] = best.s
	return &Lattice{matrix: t.Mul(m), ltype: L.ltype}, t, true
}

// OptimizeMulti repeats OptimizeOnce until nothing changes or iterations
// steps were taken (DefaultIterations if iterations <= 0). It returns the
// reduced lattice and the transformations applied, in order. Reaching the
// cap is not an error: the best lattice found is returned.
func (L *Lattice) OptimizeMulti(iterations int) (*Lattice, []symop.Mat) {
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	R := L.Copy()
	var trans []symop.Mat
	for i := 0; i < iterations; i++ {
		N, t, ok := R.OptimizeOnce()
		if !ok {
			return R, trans
		}
		R = N
		trans = append(trans, t)
	}
	if _, _, ok := R.OptimizeOnce(); ok {
		logger.Printf("lattice reduction did not converge in %d steps", iterations)
	}
	return R, trans
}

// Optimize replaces the cell of L with its reduced one, and returns the
// combined transformation.
func (L *Lattice) Optimize(iterations int) symop.Mat {
	R, trans := L.OptimizeMulti(iterations)
	L.matrix = R.matrix
	return Combine(trans)
}

// Combine returns the single matrix equivalent to applying trans in order.
func Combine(trans []symop.Mat) symop.Mat {
	t := symop.Eye()
	for _, m := range trans {
		t = m.Mul(t)
	}
	return t
}

// SearchOptions bounds a transformation search.
type SearchOptions struct {
	LengthTol float64 //Å
	AngleTol  float64 //degrees
	MaxEntry  int     //largest absolute value of a matrix element
}

// DefaultSearchOptions returns the options used when none are given.
func DefaultSearchOptions() *SearchOptions {
	return &SearchOptions{LengthTol: 0.3, AngleTol: 10, MaxEntry: 1}
}

// Match is a transformation found by SearchTransformation. DLength and
// DAngle are the largest length (Å) and angle (degrees) mismatches.
type Match struct {
	T       symop.Mat
	DLength float64
	DAngle  float64
	score   float64
}

// SearchTransformation enumerates the integer matrices T, with elements
// bounded by opts.MaxEntry and determinant equal to the volume ratio of
// target to L, such that the rows of T·M match the parameters of target
// within the tolerances. The matches are sorted from best to worst. An
// empty result is not an error.
func (L *Lattice) SearchTransformation(target *Lattice, opts *SearchOptions) []Match {
	if opts == nil {
		opts = DefaultSearchOptions()
	}
	ratio := target.Volume() / L.Volume()
	det := float64(int(ratio + 0.5))
	if det < 1 || ratio-det > 0.25*det || det-ratio > 0.25*det {
		return nil
	}
	tp := target.Para()
	var ret []Match
	n := opts.MaxEntry
	vals := make([]float64, 0, 2*n+1)
	for v := -n; v <= n; v++ {
		vals = append(vals, float64(v))
	}
	rows := candidateRows(vals)
	m := L.matrix
	for _, r0 := range rows {
		for _, r1 := range rows {
			for _, r2 := range rows {
				t := symop.Mat{r0, r1, r2}
				if d := t.Det(); d < det-0.5 || d > det+0.5 {
					continue
				}
				tm := t.Mul(m)
				dl, da := paraDiff((&Lattice{matrix: tm}).Para(), tp)
				if dl < opts.LengthTol && da < opts.AngleTol {
					ret = append(ret, Match{T: t, DLength: dl, DAngle: da, score: dl/opts.LengthTol + da/opts.AngleTol})
				}
			}
		}
	}
	sort.SliceStable(ret, func(i, j int) bool { return ret[i].score < ret[j].score })
	return ret
}

//candidateRows returns all the non-zero rows with elements in vals.
func candidateRows(vals []float64) [][3]float64 {
	var rows [][3]float64
	for _, x := range vals {
		for _, y := range vals {
			for _, z := range vals {
				if x == 0 && y == 0 && z == 0 {
					continue
				}
				rows = append(rows, [3]float64{x, y, z})
			}
		}
	}
	return rows
}
