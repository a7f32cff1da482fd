/*
 * lattice_test.go, part of goXtal.
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
	"math"
	"testing"

	"github.com/rmera/goxtal/symop"
	"github.com/rmera/goxtal/v3"
)

func TestParaMatrix(Te *testing.T) {
	l01, err := FromMatrix(symop.Mat{{4.08, 0, 0}, {0, 9.13, 0}, {0, 0, 5.50}}, Orthorhombic)
	if err != nil {
		Te.Fatal(err)
	}
	l02 := FromPara(4.08, 9.13, 5.50, 90, 90, 90, Orthorhombic)
	if !l01.Matrix().Equal(l02.Matrix(), 1e-9) {
		Te.Errorf("different matrices %v %v", l01.Matrix(), l02.Matrix())
	}
	l01.SwapAxis([3]int{1, 0, 2})
	p := l01.Para()
	if math.Abs(p[0]-9.13) > 1e-9 || math.Abs(p[1]-4.08) > 1e-9 {
		Te.Errorf("wrong swap %v", p)
	}
	l01.SetPara(5, 5, 5, 90, 90, 90)
	if math.Abs(l01.A()-5) > 1e-9 {
		Te.Errorf("SetPara failed: %v", l01)
	}
	if _, err := FromMatrix(symop.Mat{{1, 0, 0}, {2, 0, 0}, {0, 0, 1}}, Triclinic); err == nil {
		Te.Error("expected error for a flat cell")
	}
}

func TestOptimizeOnce(Te *testing.T) {
	l3 := FromPara(4.08, 7.13, 5.50, 90, 38, 90, Monoclinic)
	lat, tran, ok := l3.OptimizeOnce()
	if !ok {
		Te.Fatal("no reduction")
	}
	if math.Abs(lat.Beta()-1.495907) > 1e-4 {
		Te.Errorf("beta %f, want 1.495907 (transform %v)", lat.Beta(), tran)
	}
	if math.Abs(l3.Beta()-38*math.Pi/180) > 1e-9 {
		Te.Error("OptimizeOnce modified its receiver")
	}
	o := FromPara(4, 5, 6, 90, 90, 90, Orthorhombic)
	if _, _, ok := o.OptimizeOnce(); ok {
		Te.Error("orthorhombic lattices are not reduced")
	}
}

func TestOptimizeMulti(Te *testing.T) {
	l4 := FromPara(71.364, 9.127, 10.075, 90, 20.80, 90, Monoclinic)
	lat, trans := l4.OptimizeMulti(7)
	if math.Abs(lat.Beta()-1.7201) > 0.01 {
		Te.Errorf("beta %f, want 1.7201", lat.Beta())
	}
	if math.Abs(lat.Volume()-l4.Volume()) > 1e-6 {
		Te.Errorf("reduction changed the volume %f %f", lat.Volume(), l4.Volume())
	}
	//the combined transformation gives the same lattice in one go
	direct := l4.Transform(Combine(trans))
	if !direct.CheckMismatch(lat, 1e-6, 1e-6) {
		Te.Errorf("combined transform %v differs from %v", direct, lat)
	}
}

func TestSearchTransformation(Te *testing.T) {
	l6 := FromPara(3.454, 3.401, 5.908, 90, 105.80, 90, Monoclinic)
	l7 := FromPara(6.028, 3.419, 6.028, 90, 146.92, 90, Monoclinic)
	l7, _ = l7.OptimizeMulti(0)
	matches := l7.SearchTransformation(l6, nil)
	if len(matches) == 0 {
		Te.Fatal("no transformation found")
	}
	l8 := l7.TransformMulti([]symop.Mat{matches[0].T})
	sum := 0.0
	m8, m6 := l8.Matrix(), l6.Matrix()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			sum += math.Abs(m8[i][j] - m6[i][j])
		}
	}
	if sum > 0.25 {
		Te.Errorf("matrix mismatch %f\n%v\n%v", sum, l8, l6)
	}
	for i := 1; i < len(matches); i++ {
		if matches[i].score < matches[i-1].score {
			Te.Error("matches not sorted")
		}
	}
	far := FromPara(10, 20, 30, 90, 90, 90, Orthorhombic)
	if m := l7.SearchTransformation(far, nil); len(m) != 0 {
		Te.Errorf("expected no matches, got %d", len(m))
	}
}

func TestTransformRoundTrip(Te *testing.T) {
	l := FromPara(5.1, 6.2, 7.3, 80, 95, 100, Triclinic)
	t := symop.Mat{{1, 1, 0}, {0, 1, 0}, {-1, 0, 1}}
	ti, err := t.Inverse()
	if err != nil {
		Te.Fatal(err)
	}
	back := l.Transform(t).Transform(ti)
	if !back.Matrix().Equal(l.Matrix(), 1e-8) {
		Te.Errorf("round trip failed:\n%v\n%v", back.Matrix(), l.Matrix())
	}
}

func TestIsValid(Te *testing.T) {
	cases := []struct {
		l    *Lattice
		want bool
	}{
		{FromPara(3.454, 3.401, 5.908, 90, 105.80, 91, Monoclinic), false},
		{FromPara(3.454, 3.401, 5.908, 90, 105.80, 90, Monoclinic), true},
		{FromPara(3.454, 3.401, 5.908, 90, 90, 90, Cubic), false},
		{FromPara(4, 4, 4, 90, 90, 90, Cubic), true},
		{FromPara(4, 4, 4, 100, 100, 170, Triclinic), false},
		{FromPara(9.395, 9.395, 8.350, 90, 90, 120, Hexagonal), true},
	}
	for i, c := range cases {
		if got := c.l.IsValid(); got != c.want {
			Te.Errorf("case %d (%v): IsValid %t, want %t", i, c.l, got, c.want)
		}
	}
}

func TestVector1D(Te *testing.T) {
	lat, err := FromVector1D([]float64{5.09, 6.11}, Trigonal)
	if err != nil {
		Te.Fatal(err)
	}
	if math.Abs(lat.A()-5.09) > 1e-3 || math.Abs(lat.C()-6.11) > 1e-3 || math.Abs(lat.Gamma()-2*math.Pi/3) > 1e-3 {
		Te.Errorf("wrong lattice %v", lat)
	}
	m := FromPara(5, 6, 7, 90, 100, 90, Monoclinic)
	enc := m.Encode()
	if len(enc) != 4 || math.Abs(enc[3]-100) > 1e-9 {
		Te.Errorf("wrong encoding %v", enc)
	}
	if _, err := FromVector1D([]float64{1, 2}, Cubic); err == nil {
		Te.Error("expected error for a wrong vector length")
	}
	dofs := map[Type]int{Triclinic: 6, Monoclinic: 4, Orthorhombic: 3, Tetragonal: 2, Hexagonal: 2, Cubic: 1}
	for t, d := range dofs {
		if t.Dof() != d {
			Te.Errorf("%s dof %d, want %d", t, t.Dof(), d)
		}
	}
}

func TestCartesian(Te *testing.T) {
	l := FromPara(5, 5, 7, 90, 90, 120, Hexagonal)
	F := v3.FromVecs([]symop.Vec{{1.0 / 3, 2.0 / 3, 0.25}})
	C := l.Cartesian(F)
	B, err := l.Fractional(C)
	if err != nil {
		Te.Fatal(err)
	}
	if B.Vec(0).Sub(F.Vec(0)).Norm() > 1e-9 {
		Te.Errorf("round trip failed %v %v", B.Vec(0), F.Vec(0))
	}
	S := FromPara(5.02, 4.98, 7, 90.5, 89.5, 119, Triclinic).Symmetrize(Hexagonal)
	if !S.IsValid() {
		Te.Errorf("symmetrized lattice not valid %v", S)
	}
}
