/*
 * lattice.go, part of goXtal.
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


//Package lattice implements crystal lattices: the 3x3 cell matrix (rows are
//the a, b and c vectors in Cartesian space), its parameters, the crystal
//system constraints, and the integer basis transformations relating two
//lattices.
package lattice

import (
	"fmt"
	"math"

	"github.com/rmera/goxtal/symop"
	"github.com/rmera/goxtal/v3"
	"gonum.org/v1/gonum/floats"
)

// Type is a crystal system. Trigonal groups in hexagonal axes use Hexagonal
// or Trigonal interchangeably.
type Type string

const (
	Triclinic    Type = "triclinic"
	Monoclinic   Type = "monoclinic"
	Orthorhombic Type = "orthorhombic"
	Tetragonal   Type = "tetragonal"
	Trigonal     Type = "trigonal"
	Hexagonal    Type = "hexagonal"
	Cubic        Type = "cubic"
)

// Dof returns the number of free lattice parameters for the system.
func (t Type) Dof() int {
	switch t {
	case Triclinic:
		return 6
	case Monoclinic:
		return 4
	case Orthorhombic:
		return 3
	case Tetragonal, Trigonal, Hexagonal:
		return 2
	case Cubic:
		return 1
	}
	return 6
}

// ParseType returns the Type named by s, or an error.
func ParseType(s string) (Type, error) {
	switch t := Type(s); t {
	case Triclinic, Monoclinic, Orthorhombic, Tetragonal, Trigonal, Hexagonal, Cubic:
		return t, nil
	}
	return "", fmt.Errorf("goXtal/lattice: unknown lattice type %q", s)
}

// Tolerances used by IsValid to check the crystal system constraints.
const (
	lengthEps = 1e-3 //relative
	angleEps  = 1e-2 //radians
)

// Lattice is a crystal cell plus its crystal system.
type Lattice struct {
	matrix symop.Mat
	ltype  Type
}

// FromPara returns a lattice with the given lengths (Å) and angles
// (degrees), in the standard orientation: a along x, b in the xy plane.
func FromPara(a, b, c, alpha, beta, gamma float64, ltype Type) *Lattice {
	L := &Lattice{ltype: ltype}
	L.matrix = paraToMatrix(a, b, c, deg2rad(alpha), deg2rad(beta), deg2rad(gamma))
	return L
}

// FromMatrix returns a lattice with the cell m, whose rows are the cell
// vectors. It returns an error if m has zero volume.
func FromMatrix(m symop.Mat, ltype Type) (*Lattice, error) {
	if math.Abs(m.Det()) < 1e-8 {
		return nil, fmt.Errorf("goXtal/lattice: cell matrix with zero volume")
	}
	return &Lattice{matrix: m, ltype: ltype}, nil
}

// FromVector1D builds a lattice from its 1-D representation: only the free
// parameters of the crystal system, lengths in Å and angles in degrees.
//
//	triclinic:    a b c alpha beta gamma
//	monoclinic:   a b c beta
//	orthorhombic: a b c
//	tetragonal, hexagonal, trigonal: a c
//	cubic:        a
func FromVector1D(v []float64, ltype Type) (*Lattice, error) {
	if len(v) != ltype.Dof() {
		return nil, fmt.Errorf("goXtal/lattice: %s needs %d parameters, got %d", ltype, ltype.Dof(), len(v))
	}
	switch ltype {
	case Triclinic:
		return FromPara(v[0], v[1], v[2], v[3], v[4], v[5], ltype), nil
	case Monoclinic:
		return FromPara(v[0], v[1], v[2], 90, v[3], 90, ltype), nil
	case Orthorhombic:
		return FromPara(v[0], v[1], v[2], 90, 90, 90, ltype), nil
	case Tetragonal:
		return FromPara(v[0], v[0], v[1], 90, 90, 90, ltype), nil
	case Trigonal, Hexagonal:
		return FromPara(v[0], v[0], v[1], 90, 90, 120, ltype), nil
	}
	return FromPara(v[0], v[0], v[0], 90, 90, 90, ltype), nil
}

// Encode returns the 1-D representation of L (see FromVector1D).
func (L *Lattice) Encode() []float64 {
	p := L.Para()
	a, b, c := p[0], p[1], p[2]
	al, be, ga := rad2deg(p[3]), rad2deg(p[4]), rad2deg(p[5])
	switch L.ltype {
	case Triclinic:
		return []float64{a, b, c, al, be, ga}
	case Monoclinic:
		return []float64{a, b, c, be}
	case Orthorhombic:
		return []float64{a, b, c}
	case Tetragonal, Trigonal, Hexagonal:
		return []float64{a, c}
	}
	return []float64{a}
}

// Copy returns a deep copy of L.
func (L *Lattice) Copy() *Lattice {
	return &Lattice{matrix: L.matrix, ltype: L.ltype}
}

// Type returns the crystal system of L.
func (L *Lattice) Type() Type { return L.ltype }

// SetType changes the crystal system tag of L. The matrix is not touched.
func (L *Lattice) SetType(t Type) { L.ltype = t }

// Matrix returns the cell matrix, rows are the cell vectors.
func (L *Lattice) Matrix() symop.Mat { return L.matrix }

// Inverse returns the inverse of the cell matrix.
func (L *Lattice) Inverse() symop.Mat {
	inv, err := L.matrix.Inverse()
	if err != nil {
		panic(ErrSingularCell)
	}
	return inv
}

// Metric returns the metric tensor G = M·Mᵀ.
func (L *Lattice) Metric() symop.Mat {
	return L.matrix.Mul(L.matrix.T())
}

// Volume returns the cell volume in Å³.
func (L *Lattice) Volume() float64 {
	return math.Abs(L.matrix.Det())
}

// Para returns a, b, c (Å) and alpha, beta, gamma (radians).
func (L *Lattice) Para() [6]float64 {
	m := L.matrix
	a, b, c := symop.Vec(m[0]), symop.Vec(m[1]), symop.Vec(m[2])
	return [6]float64{a.Norm(), b.Norm(), c.Norm(), angle(b, c), angle(a, c), angle(a, b)}
}

// ParaDeg is like Para, but the angles are in degrees.
func (L *Lattice) ParaDeg() [6]float64 {
	p := L.Para()
	for i := 3; i < 6; i++ {
		p[i] = rad2deg(p[i])
	}
	return p
}

// A returns the length of the a vector. B, C, Alpha, Beta and Gamma work
// the same way (angles in radians).
func (L *Lattice) A() float64     { return L.Para()[0] }
func (L *Lattice) B() float64     { return L.Para()[1] }
func (L *Lattice) C() float64     { return L.Para()[2] }
func (L *Lattice) Alpha() float64 { return L.Para()[3] }
func (L *Lattice) Beta() float64  { return L.Para()[4] }
func (L *Lattice) Gamma() float64 { return L.Para()[5] }

// SetPara replaces the cell of L with the standard one for the given
// lengths (Å) and angles (degrees).
func (L *Lattice) SetPara(a, b, c, alpha, beta, gamma float64) {
	L.matrix = paraToMatrix(a, b, c, deg2rad(alpha), deg2rad(beta), deg2rad(gamma))
}

// SwapAxis permutes the cell vectors of L in place: the new i-th vector is
// the old ids[i]-th. It returns the transformation matrix applied.
func (L *Lattice) SwapAxis(ids [3]int) symop.Mat {
	var t symop.Mat
	for i, id := range ids {
		t[i][id] = 1
	}
	L.matrix = t.Mul(L.matrix)
	return t
}

// IsValid returns true if the parameters of L describe a real cell
// (positive lengths and volume, the cosine inequality) that also obeys the
// constraints of its crystal system.
func (L *Lattice) IsValid() bool {
	p := L.Para()
	for _, v := range p[:3] {
		if v <= 0 || math.IsNaN(v) {
			return false
		}
	}
	for _, v := range p[3:] {
		if v <= 0 || v >= math.Pi || math.IsNaN(v) {
			return false
		}
	}
	ca, cb, cg := math.Cos(p[3]), math.Cos(p[4]), math.Cos(p[5])
	if 1-ca*ca-cb*cb-cg*cg+2*ca*cb*cg <= 0 {
		return false
	}
	eqLen := func(x, y float64) bool { return math.Abs(x-y) <= lengthEps*math.Max(x, y) }
	eqAng := func(x, y float64) bool { return math.Abs(x-y) <= angleEps }
	right := math.Pi / 2
	switch L.ltype {
	case Monoclinic:
		return eqAng(p[3], right) && eqAng(p[5], right)
	case Orthorhombic:
		return eqAng(p[3], right) && eqAng(p[4], right) && eqAng(p[5], right)
	case Tetragonal:
		return eqLen(p[0], p[1]) && eqAng(p[3], right) && eqAng(p[4], right) && eqAng(p[5], right)
	case Trigonal, Hexagonal:
		return eqLen(p[0], p[1]) && eqAng(p[3], right) && eqAng(p[4], right) && eqAng(p[5], 2*math.Pi/3)
	case Cubic:
		return eqLen(p[0], p[1]) && eqLen(p[0], p[2]) && eqAng(p[3], right) && eqAng(p[4], right) && eqAng(p[5], right)
	}
	return true
}

// Symmetrize returns a copy of L with the parameters averaged so they obey
// the constraints of the crystal system t, in the standard orientation.
func (L *Lattice) Symmetrize(t Type) *Lattice {
	p := L.ParaDeg()
	a, b, c, al, be, ga := p[0], p[1], p[2], p[3], p[4], p[5]
	switch t {
	case Monoclinic:
		al, ga = 90, 90
	case Orthorhombic:
		al, be, ga = 90, 90, 90
	case Tetragonal:
		a = (a + b) / 2
		b = a
		al, be, ga = 90, 90, 90
	case Trigonal, Hexagonal:
		a = (a + b) / 2
		b = a
		al, be, ga = 90, 90, 120
	case Cubic:
		a = (a + b + c) / 3
		b, c = a, a
		al, be, ga = 90, 90, 90
	}
	return FromPara(a, b, c, al, be, ga, t)
}

// Transform returns a new lattice whose cell vectors are the rows of t·M,
// where M is the cell of L. The result is put back in the standard
// orientation; fractional coordinates are not affected by that.
func (L *Lattice) Transform(t symop.Mat) *Lattice {
	m := t.Mul(L.matrix)
	R := &Lattice{matrix: m, ltype: L.ltype}
	p := R.Para()
	R.matrix = paraToMatrix(p[0], p[1], p[2], p[3], p[4], p[5])
	return R
}

// TransformMulti applies the transformations in trans to L, in order.
func (L *Lattice) TransformMulti(trans []symop.Mat) *Lattice {
	R := L.Copy()
	for _, t := range trans {
		R = R.Transform(t)
	}
	return R
}

// CheckMismatch returns true if the cell lengths of L and ref differ by
// less than lengthTol (Å) and the angles by less than angleTol (degrees).
func (L *Lattice) CheckMismatch(ref *Lattice, lengthTol, angleTol float64) bool {
	dl, da := paraDiff(L.Para(), ref.Para())
	return dl < lengthTol && da < angleTol
}

// Cartesian returns the Cartesian coordinates of the fractional points in F.
func (L *Lattice) Cartesian(F *v3.Matrix) *v3.Matrix {
	return F.FracToCart(L.matrix)
}

// Fractional returns the fractional coordinates of the Cartesian points in C.
func (L *Lattice) Fractional(C *v3.Matrix) (*v3.Matrix, error) {
	return C.CartToFrac(L.matrix)
}

func (L *Lattice) String() string {
	p := L.ParaDeg()
	return fmt.Sprintf("%8.4f %8.4f %8.4f %8.4f %8.4f %8.4f %s", p[0], p[1], p[2], p[3], p[4], p[5], L.ltype)
}

//paraDiff returns the largest length difference and angle difference
//(degrees) between two parameter sets.
func paraDiff(p, q [6]float64) (float64, float64) {
	dl := make([]float64, 3)
	da := make([]float64, 3)
	for i := 0; i < 3; i++ {
		dl[i] = math.Abs(p[i] - q[i])
		da[i] = rad2deg(math.Abs(p[i+3] - q[i+3]))
	}
	return floats.Max(dl), floats.Max(da)
}

func paraToMatrix(a, b, c, alpha, beta, gamma float64) symop.Mat {
	ca, cb, cg := math.Cos(alpha), math.Cos(beta), math.Cos(gamma)
	sg := math.Sin(gamma)
	cy := (ca - cb*cg) / sg
	cz2 := 1 - cb*cb - cy*cy
	if cz2 < 0 {
		cz2 = 0 //invalid parameters, IsValid will tell.
	}
	return symop.Mat{
		{a, 0, 0},
		{b * cg, b * sg, 0},
		{c * cb, c * cy, c * math.Sqrt(cz2)},
	}
}

func angle(u, v symop.Vec) float64 {
	c := u.Dot(v) / (u.Norm() * v.Norm())
	return math.Acos(math.Max(-1, math.Min(1, c)))
}

func deg2rad(d float64) float64 { return d * math.Pi / 180 }
func rad2deg(r float64) float64 { return r * 180 / math.Pi }

// PanicMsg is the type of the messages used in lattice panics.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const ErrSingularCell = PanicMsg("goXtal/lattice: singular cell matrix")
