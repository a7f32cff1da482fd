/*
 * v3_test.go, part of goXtal.
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

package v3

import (
	"math"
	"testing"

	"github.com/rmera/goxtal/symop"
)

func TestFracCartRoundTrip(Te *testing.T) {
	F, err := NewMatrix([]float64{0.1, 0.2, 0.3, 0.5, 0.5, 0.5, 0.9, 0.01, 0.77})
	if err != nil {
		Te.Fatal(err)
	}
	cell := symop.Mat{{5, 0, 0}, {-2.5, 4.33, 0}, {0.2, 0.3, 7}}
	C := F.FracToCart(cell)
	//the second point is half of the cell diagonal
	want := symop.Vec{(5 - 2.5 + 0.2) / 2, (4.33 + 0.3) / 2, 3.5}
	if C.Vec(1).Sub(want).Norm() > 1e-9 {
		Te.Errorf("FracToCart gave %v, want %v", C.Vec(1), want)
	}
	B, err := C.CartToFrac(cell)
	if err != nil {
		Te.Fatal(err)
	}
	if !mat3Equal(B, F) {
		Te.Errorf("round trip failed:\n%s\n%s", B, F)
	}
	if _, err := NewMatrix([]float64{1, 2}); err == nil {
		Te.Error("expected error for a slice not divisible by 3")
	}
}

func mat3Equal(A, B *Matrix) bool {
	for i := 0; i < A.Len(); i++ {
		if A.Vec(i).Sub(B.Vec(i)).Norm() > 1e-9 {
			return false
		}
	}
	return true
}

func TestWrapApply(Te *testing.T) {
	F := FromVecs([]symop.Vec{{1.25, -0.25, 0.5}, {0.1, 0.2, 0.3}})
	F.Wrap()
	if F.Vec(0).Sub(symop.Vec{0.25, 0.75, 0.5}).Norm() > 1e-12 {
		Te.Errorf("wrong wrap %v", F.Vec(0))
	}
	G := F.Apply(symop.MustParseXYZ("-x,-y,-z"))
	G.Wrap()
	if G.Vec(1).Sub(symop.Vec{0.9, 0.8, 0.7}).Norm() > 1e-12 {
		Te.Errorf("wrong inversion %v", G.Vec(1))
	}
	cell := symop.Mat{{10, 0, 0}, {0, 10, 0}, {0, 0, 10}}
	if d := F.MaxPBCDistance(G.Apply(symop.MustParseXYZ("-x,-y,-z")), cell); math.Abs(d) > 1e-9 {
		Te.Errorf("double inversion should be the identity, max distance %f", d)
	}
	V := F.VecView(0)
	V.Set(0, 0, 0.5)
	if F.At(0, 0) != 0.5 {
		Te.Error("VecView is not a view")
	}
	if S := Stack(F, G); S.Len() != 4 {
		Te.Errorf("stack length %d", S.Len())
	}
}
