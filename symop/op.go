/*
 * op.go, part of goXtal.
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

// Package symop implements affine symmetry operations acting on fractional
// coordinates, x' = R·x + t, with translations taken modulo the lattice.
package symop

import (
	"errors"
	"math"
)

// Eps is the tolerance used to decide that two operation elements are equal.
const Eps = 1e-6

// ErrSingular is returned when an operation with a singular rotation part
// is asked for a true inverse.
var ErrSingular = errors.New("goXtal/symop: singular rotation matrix")

// Vec is a point or a vector in fractional (or, for Cartesian variants,
// Cartesian) coordinates.
type Vec [3]float64

// Mat is a 3x3 matrix stored by rows.
type Mat [3][3]float64

// Op is an affine operation x' = R·x + T. Group operations have integral R;
// the generators of special Wyckoff positions have singular R, such as
// the map (x,y,z) -> (x,x,1/4).
type Op struct {
	R Mat
	T Vec
}

// Identity returns the identity operation.
func Identity() Op {
	return Op{R: Eye()}
}

// Eye returns the 3x3 identity matrix.
func Eye() Mat {
	return Mat{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// New returns the operation with rotation r and translation t.
func New(r Mat, t Vec) Op {
	return Op{R: r, T: t}
}

// Translation returns the pure translation by t.
func Translation(t Vec) Op {
	return Op{R: Eye(), T: t}
}

// Operate applies O to the point x. The result is not wrapped into the cell.
func (O Op) Operate(x Vec) Vec {
	return O.R.MulVec(x).Add(O.T)
}

// Rotate applies only the rotation part of O to x.
func (O Op) Rotate(x Vec) Vec {
	return O.R.MulVec(x)
}

// Mul returns O∘P, the operation that applies P first and then O. The
// translation is not reduced.
func (O Op) Mul(P Op) Op {
	return Op{R: O.R.Mul(P.R), T: O.R.MulVec(P.T).Add(O.T)}
}

// Compose returns the operation equivalent to applying op1 and then op2,
// with its translation reduced into [0,1).
func Compose(op1, op2 Op) Op {
	r := op2.Mul(op1)
	r.T = r.T.Wrap()
	return r
}

// Reduced returns a copy of O with the translation reduced into [0,1).
func (O Op) Reduced() Op {
	O.T = O.T.Wrap()
	return O
}

// Inverse returns the inverse of op, with the translation reduced into
// [0,1), so that Compose(op, inv) is the identity modulo the lattice.
// It returns ErrSingular if the rotation part can't be inverted; use
// PseudoInverse for Wyckoff generators.
func Inverse(op Op) (Op, error) {
	ri, err := op.R.Inverse()
	if err != nil {
		return Op{}, err
	}
	t := ri.MulVec(op.T).Scale(-1)
	return Op{R: ri, T: t.Wrap()}, nil
}

// MustInverse is like Inverse but panics on singular operations. It is
// meant for group operations, which are never singular.
func MustInverse(op Op) Op {
	r, err := Inverse(op)
	if err != nil {
		panic(err.Error())
	}
	return r
}

// PseudoInverse returns an operation that maps the image of op back onto
// the free parameters of op. For invertible operations it is the true
// inverse, translation not reduced.
// The free parameters (the non-zero columns of R) are solved from the first
// rows where they appear. A row that depends on a single parameter maps its
// component back through that parameter, unless it is the only such row
// and was used to solve for it. A constant row copies its component. In
// both cases solved parameters take precedence, and everything else is
// set to zero.
func PseudoInverse(op Op) Op {
	if ri, err := op.R.Inverse(); err == nil {
		return Op{R: ri, T: ri.MulVec(op.T).Scale(-1)}
	}
	var ret Op
	assigned := [3]bool{}
	used := [3]bool{}
	var rows, cols []int
	for j := 0; j < 3; j++ {
		if op.R.colZero(j) {
			continue
		}
		// first unused row where parameter j appears and that keeps the
		// selected block invertible.
		for i := 0; i < 3; i++ {
			if used[i] || math.Abs(op.R[i][j]) < Eps {
				continue
			}
			trows := append(append([]int{}, rows...), i)
			tcols := append(append([]int{}, cols...), j)
			if _, ok := subInverse(op.R, trows, tcols); ok {
				rows, cols = trows, tcols
				used[i] = true
				break
			}
		}
	}
	if len(rows) > 0 {
		inv, _ := subInverse(op.R, rows, cols)
		//u_cols = inv·(p_rows - t_rows)
		for a, c := range cols {
			for b, r := range rows {
				ret.R[c][r] = inv[a][b]
				ret.T[c] -= inv[a][b] * op.T[r]
			}
			assigned[c] = true
		}
	}
	var rowsOf [3]int
	for k := 0; k < 3; k++ {
		if j, single := op.R.singleVar(k); single {
			rowsOf[j]++
		}
	}
	for k := 0; k < 3; k++ {
		if op.R.rowZero(k) {
			if !assigned[k] {
				ret.R[k][k] = 1
				assigned[k] = true
			}
			continue
		}
		j, single := op.R.singleVar(k)
		if !single || (used[k] && rowsOf[j] < 2) {
			continue
		}
		if !assigned[k] {
			ret.R[k][k] = 1 / op.R[k][j]
			ret.T[k] = -op.T[k] / op.R[k][j]
			assigned[k] = true
		}
	}
	return ret
}

// subInverse inverts the square block of m given by rows and cols.
func subInverse(m Mat, rows, cols []int) ([][]float64, bool) {
	n := len(rows)
	switch n {
	case 1:
		v := m[rows[0]][cols[0]]
		if math.Abs(v) < Eps {
			return nil, false
		}
		return [][]float64{{1 / v}}, true
	case 2:
		a, b := m[rows[0]][cols[0]], m[rows[0]][cols[1]]
		c, d := m[rows[1]][cols[0]], m[rows[1]][cols[1]]
		det := a*d - b*c
		if math.Abs(det) < Eps {
			return nil, false
		}
		return [][]float64{{d / det, -b / det}, {-c / det, a / det}}, true
	case 3:
		var s Mat
		for i := range rows {
			for j := range cols {
				s[i][j] = m[rows[i]][cols[j]]
			}
		}
		inv, err := s.Inverse()
		if err != nil {
			return nil, false
		}
		return [][]float64{inv[0][:], inv[1][:], inv[2][:]}, true
	}
	return nil, false
}

// IsIdentity returns true if O is the identity modulo lattice translations.
func (O Op) IsIdentity() bool {
	return O.Equal(Identity())
}

// Equal returns true if O and P are the same operation modulo lattice
// translations, within Eps.
func (O Op) Equal(P Op) bool {
	if !O.R.Equal(P.R, Eps) {
		return false
	}
	return O.T.Sub(P.T).PBC().Norm() < Eps
}

// EqualExact returns true if O and P are the same with no lattice reduction.
func (O Op) EqualExact(P Op) bool {
	return O.R.Equal(P.R, Eps) && O.T.Sub(P.T).Norm() < Eps
}

// Key identifies an operation modulo lattice translations. It can be used
// as a map key.
type Key [12]int64

// Key returns the hashing key of O.
func (O Op) Key() Key {
	var k Key
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			k[3*i+j] = int64(math.Round(O.R[i][j] * 1e5))
		}
	}
	t := O.T.Wrap()
	for i := 0; i < 3; i++ {
		v := int64(math.Round(t[i] * 1e5))
		if v == 100000 {
			v = 0
		}
		k[9+i] = v
	}
	return k
}

// RotKey returns a key for a rotation matrix.
func (m Mat) RotKey() [9]int64 {
	var k [9]int64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			k[3*i+j] = int64(math.Round(m[i][j] * 1e5))
		}
	}
	return k
}

// Cartesian returns O expressed in Cartesian coordinates for the lattice
// whose row vectors are the rows of cell. Fractional coordinates f map to
// Cartesian ones as c = cellᵀ·f, so the Cartesian operation is
// (cellᵀ·R·cell⁻ᵀ, cellᵀ·t).
func (O Op) Cartesian(cell Mat) (Op, error) {
	ct := cell.T()
	cti, err := ct.Inverse()
	if err != nil {
		return Op{}, err
	}
	return Op{R: ct.Mul(O.R).Mul(cti), T: ct.MulVec(O.T)}, nil
}

// OperateCartesian applies O, given in fractional coordinates, to the
// Cartesian point c in the lattice cell.
func (O Op) OperateCartesian(c Vec, cell Mat) (Vec, error) {
	co, err := O.Cartesian(cell)
	if err != nil {
		return Vec{}, err
	}
	return co.Operate(c), nil
}
