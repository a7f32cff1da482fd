/*
 * intmat.go, part of goXtal.
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

//Exact integer tools for lattices. Rational vectors are scaled by den and
//rounded, every translation in the catalog is a multiple of 1/den.

const den = 288

func toInt(v symop.Vec) [3]int64 {
	return [3]int64{
		int64(math.Round(v[0] * den)),
		int64(math.Round(v[1] * den)),
		int64(math.Round(v[2] * den))}
}

func fromInt(v [3]int64) symop.Vec {
	return symop.Vec{float64(v[0]) / den, float64(v[1]) / den, float64(v[2]) / den}
}

func abs64(a int64) int64 {
	if a < 0 {
		return -a
	}
	return a
}

func gcd(a, b int64) int64 {
	a, b = abs64(a), abs64(b)
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// snap rounds each element of v to the nearest multiple of 1/den.
func snap(v symop.Vec) symop.Vec {
	return fromInt(toInt(v))
}

// latticeBasis returns a basis (as matrix columns) for the lattice spanned
// by gens plus Z³. The basis is triangular.
func latticeBasis(gens []symop.Vec) symop.Mat {
	rows := make([][3]int64, 0, len(gens)+3)
	for i := 0; i < 3; i++ {
		var e [3]int64
		e[i] = den
		rows = append(rows, e)
	}
	for _, g := range gens {
		rows = append(rows, toInt(g))
	}
	b := echelon(rows)
	var m symop.Mat
	for j := 0; j < 3; j++ {
		m.SetCol(j, fromInt(b[j]))
	}
	return m
}

// spanBasis returns a basis for the lattice spanned by vecs, which must
// have rank 3. No Z³ is added.
func spanBasis(vecs []symop.Vec) symop.Mat {
	rows := make([][3]int64, 0, len(vecs))
	for _, v := range vecs {
		rows = append(rows, toInt(v))
	}
	b := echelon(rows)
	var m symop.Mat
	for j := 0; j < 3; j++ {
		m.SetCol(j, fromInt(b[j]))
	}
	return m
}

//echelon reduces the rows with integer row operations and returns the
//first three rows of the resulting upper triangular form, which form a
//basis of the row lattice (assumed of rank 3). Diagonal elements are made
//positive and off-diagonal ones reduced.
func echelon(rows [][3]int64) [][3]int64 {
	v := make([][3]int64, len(rows))
	copy(v, rows)
	n := len(v)
	for c := 0; c < 3 && c < n; c++ {
		for {
			piv := -1
			for r := c; r < n; r++ {
				if v[r][c] != 0 && (piv < 0 || abs64(v[r][c]) < abs64(v[piv][c])) {
					piv = r
				}
			}
			if piv < 0 {
				break
			}
			v[c], v[piv] = v[piv], v[c]
			done := true
			for r := c + 1; r < n; r++ {
				q := v[r][c] / v[c][c]
				for k := 0; k < 3; k++ {
					v[r][k] -= q * v[c][k]
				}
				if v[r][c] != 0 {
					done = false
				}
			}
			if done {
				break
			}
		}
		if v[c][c] < 0 {
			for k := 0; k < 3; k++ {
				v[c][k] = -v[c][k]
			}
		}
	}
	//reduce the elements above the diagonal
	for c := 1; c < 3; c++ {
		if v[c][c] == 0 {
			continue
		}
		for r := 0; r < c; r++ {
			q := floorDiv(v[r][c], v[c][c])
			for k := 0; k < 3; k++ {
				v[r][k] -= q * v[c][k]
			}
		}
	}
	return v[:3]
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// intKernel returns a basis of the integer vectors w with M·w = 0.
func intKernel(m symop.Mat) [][3]int64 {
	var a [3][3]int64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			a[i][j] = int64(math.Round(m[i][j] * den))
		}
	}
	//column operations on a, tracked in v
	v := [3][3]int64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	colOp := func(dst, src int, q int64) { //col dst -= q col src
		for i := 0; i < 3; i++ {
			a[i][dst] -= q * a[i][src]
			v[i][dst] -= q * v[i][src]
		}
	}
	swap := func(x, y int) {
		for i := 0; i < 3; i++ {
			a[i][x], a[i][y] = a[i][y], a[i][x]
			v[i][x], v[i][y] = v[i][y], v[i][x]
		}
	}
	c := 0
	for r := 0; r < 3 && c < 3; r++ {
		for {
			piv := -1
			for j := c; j < 3; j++ {
				if a[r][j] != 0 && (piv < 0 || abs64(a[r][j]) < abs64(a[r][piv])) {
					piv = j
				}
			}
			if piv < 0 {
				break
			}
			swap(c, piv)
			done := true
			for j := c + 1; j < 3; j++ {
				colOp(j, c, a[r][j]/a[r][c])
				if a[r][j] != 0 {
					done = false
				}
			}
			if done {
				c++
				break
			}
		}
	}
	var ker [][3]int64
	for j := c; j < 3; j++ {
		ker = append(ker, [3]int64{v[0][j], v[1][j], v[2][j]})
	}
	return ker
}

// congruence solves A·s ≡ d (mod 1) for s, where A is an integer matrix
// with 3 columns. It returns false if there is no solution.
func congruence(A [][3]int64, d []float64) (symop.Vec, bool) {
	n := len(A)
	a := make([][3]int64, n)
	copy(a, A)
	rhs := make([]float64, n)
	copy(rhs, d)
	v := [3][3]int64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	rowOp := func(dst, src int, q int64) {
		for k := 0; k < 3; k++ {
			a[dst][k] -= q * a[src][k]
		}
		rhs[dst] -= float64(q) * rhs[src]
	}
	colOp := func(dst, src int, q int64) {
		for i := 0; i < n; i++ {
			a[i][dst] -= q * a[i][src]
		}
		for i := 0; i < 3; i++ {
			v[i][dst] -= q * v[i][src]
		}
	}
	for c := 0; c < 3 && c < n; c++ {
		for {
			//smallest nonzero element of the remaining block
			pr, pc := -1, -1
			for i := c; i < n; i++ {
				for j := c; j < 3; j++ {
					if a[i][j] != 0 && (pr < 0 || abs64(a[i][j]) < abs64(a[pr][pc])) {
						pr, pc = i, j
					}
				}
			}
			if pr < 0 {
				break
			}
			a[c], a[pr] = a[pr], a[c]
			rhs[c], rhs[pr] = rhs[pr], rhs[c]
			for i := 0; i < n; i++ {
				a[i][c], a[i][pc] = a[i][pc], a[i][c]
			}
			for i := 0; i < 3; i++ {
				v[i][c], v[i][pc] = v[i][pc], v[i][c]
			}
			done := true
			for i := c + 1; i < n; i++ {
				rowOp(i, c, a[i][c]/a[c][c])
				if a[i][c] != 0 {
					done = false
				}
			}
			for j := c + 1; j < 3; j++ {
				colOp(j, c, a[c][j]/a[c][c])
				if a[c][j] != 0 {
					done = false
				}
			}
			if done {
				break
			}
		}
	}
	var y symop.Vec
	for i := 0; i < n; i++ {
		if i < 3 && a[i][i] != 0 {
			y[i] = rhs[i] / float64(a[i][i])
			continue
		}
		if f := rhs[i] - math.Round(rhs[i]); math.Abs(f) > 1e-6 {
			return symop.Vec{}, false
		}
	}
	var s symop.Vec
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			s[i] += float64(v[i][j]) * y[j]
		}
	}
	return s, true
}

// isIntMat returns true if every element of m is an integer.
func isIntMat(m symop.Mat) bool {
	return m.IsInteger(1e-6)
}
