/*
 * mat.go, part of goXtal.
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

package symop

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

//Small fixed-size helpers. Symmetry operations are applied millions of times
//during a Wyckoff or supergroup search, so products don't go through gonum.
//Determinants, inverses and ranks do.

// Add returns v+w.
func (v Vec) Add(w Vec) Vec { return Vec{v[0] + w[0], v[1] + w[1], v[2] + w[2]} }

// Sub returns v-w.
func (v Vec) Sub(w Vec) Vec { return Vec{v[0] - w[0], v[1] - w[1], v[2] - w[2]} }

// Scale returns f·v.
func (v Vec) Scale(f float64) Vec { return Vec{f * v[0], f * v[1], f * v[2]} }

// Dot returns the dot product of v and w.
func (v Vec) Dot(w Vec) float64 { return v[0]*w[0] + v[1]*w[1] + v[2]*w[2] }

// Norm returns the Euclidean norm of v.
func (v Vec) Norm() float64 { return math.Sqrt(v.Dot(v)) }

// Cross returns v×w.
func (v Vec) Cross(w Vec) Vec {
	return Vec{v[1]*w[2] - v[2]*w[1], v[2]*w[0] - v[0]*w[2], v[0]*w[1] - v[1]*w[0]}
}

// Wrap reduces every component of v into [0,1).
func (v Vec) Wrap() Vec {
	for i := range v {
		v[i] -= math.Floor(v[i])
		if v[i] > 1-Eps {
			v[i] = 0
		}
		if v[i] < Eps {
			v[i] = 0
		}
	}
	return v
}

// PBC returns the periodic image of v closest to zero, component-wise.
func (v Vec) PBC() Vec {
	for i := range v {
		v[i] -= math.Round(v[i])
	}
	return v
}

// Round returns v with every component rounded to the nearest integer.
func (v Vec) Round() Vec {
	for i := range v {
		v[i] = math.Round(v[i])
	}
	return v
}

// IsInteger returns true if every component of v is integral within tol.
func (v Vec) IsInteger(tol float64) bool {
	for _, c := range v {
		if math.Abs(c-math.Round(c)) > tol {
			return false
		}
	}
	return true
}

// Less is a lexicographic comparison with tolerance Eps.
func (v Vec) Less(w Vec) bool {
	for i := range v {
		if math.Abs(v[i]-w[i]) < Eps {
			continue
		}
		return v[i] < w[i]
	}
	return false
}

// Mul returns the matrix product m·n.
func (m Mat) Mul(n Mat) Mat {
	var r Mat
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[i][0]*n[0][j] + m[i][1]*n[1][j] + m[i][2]*n[2][j]
		}
	}
	return r
}

// MulVec returns m·v.
func (m Mat) MulVec(v Vec) Vec {
	return Vec{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2],
	}
}

// T returns the transpose of m.
func (m Mat) T() Mat {
	var r Mat
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[j][i]
		}
	}
	return r
}

// Add returns m+n.
func (m Mat) Add(n Mat) Mat {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m[i][j] += n[i][j]
		}
	}
	return m
}

// Sub returns m-n.
func (m Mat) Sub(n Mat) Mat {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m[i][j] -= n[i][j]
		}
	}
	return m
}

// Scale returns f·m.
func (m Mat) Scale(f float64) Mat {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m[i][j] *= f
		}
	}
	return m
}

// Det returns the determinant of m.
func (m Mat) Det() float64 {
	return mat.Det(m.Dense())
}

// Trace returns the trace of m.
func (m Mat) Trace() float64 { return m[0][0] + m[1][1] + m[2][2] }

// Inverse returns the inverse of m, or ErrSingular.
func (m Mat) Inverse() (Mat, error) {
	d := m.Dense()
	if math.Abs(mat.Det(d)) < 1e-9 {
		return Mat{}, ErrSingular
	}
	var r mat.Dense
	if err := r.Inverse(d); err != nil {
		return Mat{}, ErrSingular
	}
	return MatFromDense(&r), nil
}

// Equal returns true if m and n agree element-wise within tol.
func (m Mat) Equal(n Mat, tol float64) bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(m[i][j]-n[i][j]) > tol {
				return false
			}
		}
	}
	return true
}

// IsInteger returns true if every element of m is integral within tol.
func (m Mat) IsInteger(tol float64) bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(m[i][j]-math.Round(m[i][j])) > tol {
				return false
			}
		}
	}
	return true
}

// Rounded returns m with every element rounded to the nearest integer.
func (m Mat) Rounded() Mat {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m[i][j] = math.Round(m[i][j])
		}
	}
	return m
}

// Col returns the j-th column of m.
func (m Mat) Col(j int) Vec { return Vec{m[0][j], m[1][j], m[2][j]} }

// SetCol sets the j-th column of m to v.
func (m *Mat) SetCol(j int, v Vec) {
	m[0][j], m[1][j], m[2][j] = v[0], v[1], v[2]
}

// FromCols builds a matrix from its three columns.
func FromCols(a, b, c Vec) Mat {
	var m Mat
	m.SetCol(0, a)
	m.SetCol(1, b)
	m.SetCol(2, c)
	return m
}

func (m Mat) colZero(j int) bool {
	return math.Abs(m[0][j]) < Eps && math.Abs(m[1][j]) < Eps && math.Abs(m[2][j]) < Eps
}

func (m Mat) rowZero(i int) bool {
	return math.Abs(m[i][0]) < Eps && math.Abs(m[i][1]) < Eps && math.Abs(m[i][2]) < Eps
}

// singleVar returns the only non-zero column of row i, if there is just one.
func (m Mat) singleVar(i int) (int, bool) {
	col, n := -1, 0
	for j := 0; j < 3; j++ {
		if math.Abs(m[i][j]) > Eps {
			col = j
			n++
		}
	}
	return col, n == 1
}

// Rank returns the rank of m, computed through gonum's SVD.
func (m Mat) Rank() int {
	var svd mat.SVD
	if !svd.Factorize(m.Dense(), mat.SVDNone) {
		return 0
	}
	n := 0
	for _, s := range svd.Values(nil) {
		if s > 1e-8 {
			n++
		}
	}
	return n
}

// Dense returns m as a gonum dense matrix.
func (m Mat) Dense() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		m[0][0], m[0][1], m[0][2],
		m[1][0], m[1][1], m[1][2],
		m[2][0], m[2][1], m[2][2]})
}

// MatFromDense copies the 3x3 gonum matrix d into a Mat. It panics if d is
// not 3x3.
func MatFromDense(d mat.Matrix) Mat {
	r, c := d.Dims()
	if r != 3 || c != 3 {
		panic("goXtal/symop: MatFromDense needs a 3x3 matrix")
	}
	var m Mat
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m[i][j] = d.At(i, j)
		}
	}
	return m
}
