/*
 * v3.go, part of goXtal.
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

//Package v3 implements a Matrix type for sets of points in 3D, such as the
//fractional coordinates of all the atoms of an expanded crystal structure.
//Each point is a row (a "vector") of the matrix. The type wraps a gonum
//Dense matrix, so all the gonum machinery is available.
package v3

import (
	"fmt"
	"math"
	"strings"

	"github.com/rmera/goxtal/symop"
	"gonum.org/v1/gonum/mat"
)

// Matrix is a set of vectors in 3D space, one per row.
type Matrix struct {
	*mat.Dense
}

// Zeros returns a zero-filled Matrix with vecs vectors.
func Zeros(vecs int) *Matrix {
	if vecs <= 0 {
		panic(ErrNoVecs)
	}
	return &Matrix{mat.NewDense(vecs, 3, nil)}
}

// NewMatrix returns a Matrix with the data given, which must have a
// length divisible by 3.
func NewMatrix(data []float64) (*Matrix, error) {
	l := len(data)
	if l == 0 || l%3 != 0 {
		return nil, &Error{fmt.Sprintf("Input slice length %d not divisible by 3", l), []string{"NewMatrix"}, true}
	}
	return &Matrix{mat.NewDense(l/3, 3, data)}, nil
}

// FromVecs builds a Matrix from a slice of points.
func FromVecs(vecs []symop.Vec) *Matrix {
	M := Zeros(len(vecs))
	for i, v := range vecs {
		M.SetVec(i, v)
	}
	return M
}

// Len returns the number of vectors in F.
func (F *Matrix) Len() int {
	r, _ := F.Dims()
	return r
}

// Vec returns a copy of the i-th vector of F.
func (F *Matrix) Vec(i int) symop.Vec {
	return symop.Vec{F.At(i, 0), F.At(i, 1), F.At(i, 2)}
}

// SetVec sets the i-th vector of F to v.
func (F *Matrix) SetVec(i int, v symop.Vec) {
	F.Set(i, 0, v[0])
	F.Set(i, 1, v[1])
	F.Set(i, 2, v[2])
}

// Vecs returns copies of all the vectors of F.
func (F *Matrix) Vecs() []symop.Vec {
	ret := make([]symop.Vec, F.Len())
	for i := range ret {
		ret[i] = F.Vec(i)
	}
	return ret
}

// VecView returns a view of the i-th vector of F. Changes in the view
// are reflected in F.
func (F *Matrix) VecView(i int) *Matrix {
	return &Matrix{F.Slice(i, i+1, 0, 3).(*mat.Dense)}
}

// Copy returns a deep copy of F.
func (F *Matrix) Copy() *Matrix {
	return &Matrix{mat.DenseCopyOf(F.Dense)}
}

// Wrap reduces every coordinate of F into [0,1). It only makes sense for
// fractional coordinates.
func (F *Matrix) Wrap() {
	for i := 0; i < F.Len(); i++ {
		F.SetVec(i, F.Vec(i).Wrap())
	}
}

// FracToCart returns the Cartesian coordinates for the fractional
// coordinates in F, in the cell given (rows are the cell vectors).
func (F *Matrix) FracToCart(cell symop.Mat) *Matrix {
	R := Zeros(F.Len())
	R.Mul(F.Dense, cell.Dense())
	return R
}

// CartToFrac returns the fractional coordinates of the Cartesian points in F.
func (F *Matrix) CartToFrac(cell symop.Mat) (*Matrix, error) {
	var inv mat.Dense
	if err := inv.Inverse(cell.Dense()); err != nil {
		return nil, &Error{"Singular cell: " + err.Error(), []string{"CartToFrac"}, true}
	}
	R := Zeros(F.Len())
	R.Mul(F.Dense, &inv)
	return R, nil
}

// Apply returns a new Matrix with op applied to each vector of F.
func (F *Matrix) Apply(op symop.Op) *Matrix {
	R := Zeros(F.Len())
	for i := 0; i < F.Len(); i++ {
		R.SetVec(i, op.Operate(F.Vec(i)))
	}
	return R
}

// Stack returns a new Matrix with the vectors of A followed by those of B.
func Stack(A, B *Matrix) *Matrix {
	R := Zeros(A.Len() + B.Len())
	R.Stack(A.Dense, B.Dense)
	return R
}

// Centroid returns the mean of the vectors of F.
func (F *Matrix) Centroid() symop.Vec {
	var c symop.Vec
	for i := 0; i < F.Len(); i++ {
		c = c.Add(F.Vec(i))
	}
	return c.Scale(1 / float64(F.Len()))
}

// MaxPBCDistance returns the largest Cartesian distance between the
// corresponding fractional points of F and G, taking the closest
// periodic image. It panics if the matrices have different lengths.
func (F *Matrix) MaxPBCDistance(G *Matrix, cell symop.Mat) float64 {
	if F.Len() != G.Len() {
		panic(ErrShape)
	}
	max := 0.0
	for i := 0; i < F.Len(); i++ {
		max = math.Max(max, symop.Distance(F.Vec(i), G.Vec(i), cell))
	}
	return max
}

// String returns a printable representation of F.
func (F *Matrix) String() string {
	var b strings.Builder
	for i := 0; i < F.Len(); i++ {
		v := F.Vec(i)
		fmt.Fprintf(&b, "%8.5f %8.5f %8.5f\n", v[0], v[1], v[2])
	}
	return b.String()
}

//Errors

// Error is the error type of the v3 package.
type Error struct {
	message  string
	deco     []string
	critical bool
}

func (err *Error) Error() string { return err.message }

// Decorate adds the name of a caller to the error trail and returns it.
func (err *Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// Critical returns true if the error is critical.
func (err *Error) Critical() bool { return err.critical }

// PanicMsg is the type of the messages used in v3 panics.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNoVecs = PanicMsg("goXtal/v3: Matrix with zero vectors")
	ErrShape  = PanicMsg("goXtal/v3: Dimension mismatch")
)
