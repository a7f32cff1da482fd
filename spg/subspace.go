/*
 * subspace.go, part of goXtal.
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

	"github.com/rmera/goxtal/symop"
)

//An affine subspace of fractional space in canonical form. It is stored as
//the operation that maps (x,y,z) onto it, such as x,2x,1/4: the free
//coordinates are the lexicographically first set that parametrizes the
//subspace, and their rows are the identity.
type subspace struct {
	op   symop.Op
	free []int
}

const subEps = 1e-7

// generic parameters used to pick a point with no extra symmetry.
var genericParams = symop.Vec{0.1234567, 0.2718281, 0.3141592}

func (s subspace) dim() int { return len(s.free) }

func (s subspace) generic() symop.Vec { return s.op.Operate(genericParams) }

func (s subspace) isFree(j int) bool {
	for _, f := range s.free {
		if f == j {
			return true
		}
	}
	return false
}

//whole returns the subspace x,y,z.
func whole() subspace {
	return subspace{op: symop.Identity(), free: []int{0, 1, 2}}
}

//constraints returns the equations x_k - Σ R_kj x_j = T_k for the
//non-free coordinates k.
func (s subspace) constraints() [][4]float64 {
	var c [][4]float64
	for k := 0; k < 3; k++ {
		if s.isFree(k) {
			continue
		}
		var row [4]float64
		row[k] = 1
		for _, j := range s.free {
			row[j] -= s.op.R[k][j]
		}
		row[3] = s.op.T[k]
		c = append(c, row)
	}
	return c
}

//solve returns the canonical form of the solutions of the equations, or
//false if there are none.
func solve(eqs [][4]float64) (subspace, bool) {
	a := make([][4]float64, len(eqs))
	copy(a, eqs)
	order := [3]int{2, 1, 0}
	pivotRow := map[int]int{}
	r := 0
	for _, c := range order {
		if r >= len(a) {
			break
		}
		piv := -1
		for i := r; i < len(a); i++ {
			if math.Abs(a[i][c]) > subEps && (piv < 0 || math.Abs(a[i][c]) > math.Abs(a[piv][c])) {
				piv = i
			}
		}
		if piv < 0 {
			continue
		}
		a[r], a[piv] = a[piv], a[r]
		p := a[r][c]
		for k := range a[r] {
			a[r][k] /= p
		}
		for i := range a {
			if i == r || math.Abs(a[i][c]) < subEps {
				continue
			}
			f := a[i][c]
			for k := range a[i] {
				a[i][k] -= f * a[r][k]
			}
		}
		pivotRow[c] = r
		r++
	}
	for i := r; i < len(a); i++ {
		if math.Abs(a[i][3]) > 1e-6 {
			return subspace{}, false
		}
	}
	var s subspace
	for j := 0; j < 3; j++ {
		if _, ok := pivotRow[j]; !ok {
			s.free = append(s.free, j)
			s.op.R[j][j] = 1
		}
	}
	for k, row := range pivotRow {
		for _, j := range s.free {
			s.op.R[k][j] = -a[row][j]
		}
		s.op.T[k] = a[row][3]
	}
	s.clean()
	return s, true
}

//clean snaps the elements to the rational grid and wraps nothing.
func (s *subspace) clean() {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			s.op.R[i][j] = math.Round(s.op.R[i][j]*den) / den
		}
	}
	s.op.T = snap(s.op.T)
}

//fromPoint returns the canonical subspace through p spanned by dirs.
func fromPoint(p symop.Vec, dirs []symop.Vec) subspace {
	//the orthogonal complement of dirs gives the constraints
	var eqs [][4]float64
	n := symop.Mat{}
	for i, d := range dirs {
		n[i] = d
	}
	ker := nullSpace(n, len(dirs))
	for _, c := range ker {
		eqs = append(eqs, [4]float64{c[0], c[1], c[2], c.Dot(p)})
	}
	if len(eqs) == 0 {
		return whole()
	}
	s, _ := solve(eqs)
	return s
}

//nullSpace returns a basis of the vectors orthogonal to the first n rows
//of m.
func nullSpace(m symop.Mat, n int) []symop.Vec {
	var eqs [][4]float64
	for i := 0; i < n; i++ {
		eqs = append(eqs, [4]float64{m[i][0], m[i][1], m[i][2], 0})
	}
	if n == 0 {
		return []symop.Vec{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	}
	s, _ := solve(eqs)
	var ret []symop.Vec
	for _, j := range s.free {
		ret = append(ret, s.op.R.Col(j))
	}
	return ret
}

//directions returns the spanning vectors of s.
func (s subspace) directions() []symop.Vec {
	d := make([]symop.Vec, 0, len(s.free))
	for _, j := range s.free {
		d = append(d, s.op.R.Col(j))
	}
	return d
}

//image returns g applied to s.
func (s subspace) image(g symop.Op) subspace {
	if s.dim() == 3 {
		return s
	}
	dirs := s.directions()
	for i := range dirs {
		dirs[i] = g.R.MulVec(dirs[i])
	}
	return fromPoint(g.Operate(s.op.T), dirs)
}

//intersect returns the intersection of a and b, or false if it is empty.
func intersect(a, b subspace) (subspace, bool) {
	return solve(append(a.constraints(), b.constraints()...))
}

//wrapped returns s with the translation of the non-free rows in [0,1).
func (s subspace) wrapped() subspace {
	r := s
	for k := 0; k < 3; k++ {
		if !s.isFree(k) {
			r.op.T[k] -= math.Floor(r.op.T[k] + 1e-9)
		}
	}
	r.op.T = snap(r.op.T)
	return r
}

//sameLinear returns true if a and b are parallel subspaces of the same
//dimension.
func sameLinear(a, b subspace) bool {
	if len(a.free) != len(b.free) {
		return false
	}
	for i := range a.free {
		if a.free[i] != b.free[i] {
			return false
		}
	}
	return a.op.R.Equal(b.op.R, 1e-6)
}

//equalExact returns true if a and b are the same subspace.
func equalExact(a, b subspace) bool {
	return sameLinear(a, b) && a.op.T.Sub(b.op.T).Norm() < 1e-6
}

//equalMod returns true if a and b differ by a lattice translation.
func equalMod(a, b subspace) bool {
	if !sameLinear(a, b) {
		return false
	}
	d := a.op.T.Sub(b.op.T)
	free := a.free
	var try func(i int, v symop.Vec) bool
	//v accumulates Σ R_kj n_j over the free coordinates
	try = func(i int, v symop.Vec) bool {
		if i == len(free) {
			for k := 0; k < 3; k++ {
				if a.isFree(k) {
					continue
				}
				x := d[k] + v[k]
				if math.Abs(x-math.Round(x)) > 1e-6 {
					return false
				}
			}
			return true
		}
		for n := -2.0; n <= 2; n++ {
			if try(i+1, v.Add(a.op.R.Col(free[i]).Scale(n))) {
				return true
			}
		}
		return false
	}
	return try(0, symop.Vec{})
}

//intersectsCell returns true if s has a point in the closed unit cell.
func (s subspace) intersectsCell() bool {
	const e = 1e-6
	switch s.dim() {
	case 3:
		return true
	case 0:
		for _, x := range s.op.T {
			if x < -e || x > 1+e {
				return false
			}
		}
		return true
	case 2:
		k := 0
		for s.isFree(k) {
			k++
		}
		lo, hi := s.op.T[k], s.op.T[k]
		for _, j := range s.free {
			c := s.op.R[k][j]
			lo += math.Min(0, c)
			hi += math.Max(0, c)
		}
		return hi >= -e && lo <= 1+e
	}
	//a line x_j = u, u in [0,1]
	j := s.free[0]
	lo, hi := 0.0, 1.0
	for k := 0; k < 3; k++ {
		if k == j {
			continue
		}
		c, t := s.op.R[k][j], s.op.T[k]
		if math.Abs(c) < 1e-9 {
			if t < -e || t > 1+e {
				return false
			}
			continue
		}
		u0, u1 := (-e-t)/c, (1+e-t)/c
		if u0 > u1 {
			u0, u1 = u1, u0
		}
		lo, hi = math.Max(lo, u0), math.Min(hi, u1)
	}
	return lo <= hi+e
}

//key returns a hashing key for the linear part of s.
func (s subspace) key() [9]int64 {
	return s.op.R.RotKey()
}
