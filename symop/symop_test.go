/*
 * symop_test.go, part of goXtal.
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
	"testing"
)

func near(a, b Vec, tol float64) bool {
	return a.Sub(b).Norm() < tol
}

func TestPseudoInverse(Te *testing.T) {
	coord0 := Vec{0.35, 0.1, 0.4}
	data := []struct {
		xyz  string
		want Vec
	}{
		{"x,y,z", Vec{0.35, 0.1, 0.4}},
		{"x,y,0", Vec{0.35, 0.1, 0}},
		{"y,x,0", Vec{0.35, 0.1, 0}},
		{"x,0,2/3", Vec{0.35, 0, 2.0 / 3}},
		{"0,x,1/4", Vec{0.35, 0, 0.25}},
		{"x,x,z", Vec{0.35, 0.35, 0.4}},
		{"x,-x,1/2", Vec{0.35, 0.35, 0.5}},
		{"2x,x,0", Vec{0.35, 0.35, 0}},
		{"-2x,-0.5x,-x+1/4", Vec{0.35, 0.35, 0.35}},
		{"-2y,-0.5y,-y+1/4", Vec{0.1, 0.1, 0.1}},
		{"-2z,-0.5z,-z+1/4", Vec{0.4, 0.4, 0.4}},
		{"0,0,x", Vec{0.35, 0, 0}},
		{"-y/2+1/2,-z,0", Vec{0, 0.1, 0.4}},
		{"-z,-x/2+1/2,0", Vec{0.35, 0, 0.4}},
	}
	for _, d := range data {
		op, err := ParseXYZ(d.xyz)
		if err != nil {
			Te.Fatal(err)
		}
		inv := PseudoInverse(op)
		got := inv.Operate(op.Operate(coord0))
		if !near(got, d.want, 1e-6) {
			Te.Errorf("%s: inverse gave %v, want %v", d.xyz, got, d.want)
		}
		//the parameters found give back the same point
		if p := op.Operate(coord0); !near(op.Operate(got), p, 1e-6) {
			Te.Errorf("%s: %v is mapped to %v, not %v", d.xyz, got, op.Operate(got), p)
		}
	}
}

func TestComposeInverse(Te *testing.T) {
	ops := []string{"x,y,z", "-y,x-y,z+1/3", "-x+1/2,y+1/2,-z", "y+1/4,x+3/4,-z+1/4",
		"z,x,y", "-x+y,y,-z+1/2", "-x,-y,-z", "x-y,x,z+1/6"}
	pts := []Vec{{0.1, 0.2, 0.3}, {0.77, 0.01, 0.5}, {0.33, 0.66, 0.9}}
	for _, s := range ops {
		op := MustParseXYZ(s)
		inv, err := Inverse(op)
		if err != nil {
			Te.Fatal(err)
		}
		id := Compose(op, inv)
		if !id.IsIdentity() {
			Te.Errorf("%s composed with its inverse gives %s", s, id.XYZ())
		}
		for _, p := range pts {
			if !AreEquivalent(inv.Operate(op.Operate(p)), p, 1e-6) {
				Te.Errorf("%s: round trip of %v failed", s, p)
			}
		}
	}
	if _, err := Inverse(MustParseXYZ("x,x,0")); err != ErrSingular {
		Te.Errorf("expected ErrSingular, got %v", err)
	}
}

func TestComposeOrder(Te *testing.T) {
	a := MustParseXYZ("-y,x,z")
	b := MustParseXYZ("x+1/2,y,z")
	p := Vec{0.1, 0.2, 0.3}
	c := Compose(a, b)
	want := b.Operate(a.Operate(p)).Wrap()
	if !near(c.Operate(p).Wrap(), want, 1e-9) {
		Te.Errorf("Compose(a,b) does not apply a first: %v vs %v", c.Operate(p), want)
	}
	if c.XYZ() != "-y+1/2,x,z" {
		Te.Errorf("unexpected composition %s", c.XYZ())
	}
}

func TestXYZRoundTrip(Te *testing.T) {
	for _, s := range []string{"x,y,z", "-y+1/2,x-y,z+1/3", "2x,x,0", "x,-x,1/2", "-x+y,-x,-z+3/4", "1/2x,0,z"} {
		op := MustParseXYZ(s)
		back := MustParseXYZ(op.XYZ())
		if !back.EqualExact(op) {
			Te.Errorf("%s -> %s does not round-trip", s, op.XYZ())
		}
	}
	if _, err := ParseXYZ("x,y"); err == nil {
		Te.Error("expected an error for a two-component string")
	}
	if _, err := ParseXYZ("x,y,w"); err == nil {
		Te.Error("expected an error for an unknown variable")
	}
}

func TestAreEquivalent(Te *testing.T) {
	if !AreEquivalent(Vec{0.999999, 0, 0.5}, Vec{0, 1, -0.5}, 1e-5) {
		Te.Error("periodic images should be equivalent")
	}
	if AreEquivalent(Vec{0.1, 0, 0}, Vec{0.2, 0, 0}, 0.05) {
		Te.Error("distinct points reported equivalent")
	}
	//hexagonal cell: (0.9,0.9,0) and (0,0,0) are at |a+b|/10 from each other
	cell := Mat{{4, 0, 0}, {-2, 2 * math.Sqrt(3), 0}, {0, 0, 5}}
	d := Distance(Vec{0.9, 0.9, 0}, Vec{0, 0, 0}, cell)
	if math.Abs(d-0.4) > 1e-9 {
		Te.Errorf("hexagonal distance %f, want 0.4", d)
	}
}

func TestCartesian(Te *testing.T) {
	cell := Mat{{9.395, 0, 0}, {-2.1, 7.1, 0}, {0.4, -1.2, 8.3}}
	pt := Vec{0.1333, 0.1496, 0.969}
	for _, s := range []string{"-x,-y,-z", "-y,x-y,z+1/3", "x+1/2,-y,z"} {
		op := MustParseXYZ(s)
		c, err := op.OperateCartesian(ToCartesian(pt, cell), cell)
		if err != nil {
			Te.Fatal(err)
		}
		f, err := ToFractional(c, cell)
		if err != nil {
			Te.Fatal(err)
		}
		if !near(f, op.Operate(pt), 1e-9) {
			Te.Errorf("%s: Cartesian variant disagrees: %v vs %v", s, f, op.Operate(pt))
		}
	}
}

func TestMatInverse(Te *testing.T) {
	data := []struct {
		m   Mat
		det float64
	}{
		{Eye(), 1},
		{Mat{{0, -1, 0}, {1, -1, 0}, {0, 0, 1}}, 1},
		{Mat{{1, 0, 1}, {0, 1, 0}, {0, 0, 1}}, 1},
		{Mat{{2, 0, 0}, {0, 2, 0}, {0, 0, 2}}, 8},
		{Mat{{0, 1, 1}, {1, 0, 1}, {1, 1, 0}}, 2},
		{Mat{{1, -1, 0}, {1, 1, 0}, {0, 0, -1}}, -2},
	}
	for _, d := range data {
		if det := d.m.Det(); math.Abs(det-d.det) > 1e-9 {
			Te.Errorf("%v: determinant %v, want %v", d.m, det, d.det)
		}
		inv, err := d.m.Inverse()
		if err != nil {
			Te.Fatal(err)
		}
		if !d.m.Mul(inv).Equal(Eye(), 1e-9) || !inv.Mul(d.m).Equal(Eye(), 1e-9) {
			Te.Errorf("%v: %v is not its inverse", d.m, inv)
		}
	}
	if _, err := (Mat{{1, 1, 0}, {2, 2, 0}, {0, 0, 1}}).Inverse(); err != ErrSingular {
		Te.Errorf("singular matrix inverted, err %v", err)
	}
}
