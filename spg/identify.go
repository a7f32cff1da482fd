/*
 * identify.go, part of goXtal.
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

	"github.com/rmera/goxtal/lattice"
	"github.com/rmera/goxtal/symop"
)

//splitOps returns one operation per rotation and the pure translations of
//a closed set of operations.
func splitOps(ops []symop.Op) (reps []symop.Op, cen []symop.Vec) {
	seen := map[[9]int64]bool{}
	for _, o := range ops {
		if o.R.Equal(symop.Eye(), 1e-9) {
			cen = append(cen, o.T)
		}
		if k := o.R.RotKey(); !seen[k] {
			seen[k] = true
			reps = append(reps, o)
		}
	}
	return reps, cen
}

func properPart(r symop.Mat) symop.Mat {
	if r.Det() < 0 {
		return r.Scale(-1)
	}
	return r
}

//primitiveAlong returns the shortest vector of the lattice with basis t
//(columns) along the direction u.
func primitiveAlong(u symop.Vec, t, tinv symop.Mat) symop.Vec {
	if v, ok := integerize(tinv.MulVec(u)); ok {
		return t.MulVec(v)
	}
	return u
}

//integerize returns the shortest integer vector parallel to w, for w with
//rational ratios of small denominators.
func integerize(w symop.Vec) (symop.Vec, bool) {
	small := math.Inf(1)
	for _, x := range w {
		if a := math.Abs(x); a > 1e-6 && a < small {
			small = a
		}
	}
	if math.IsInf(small, 1) {
		return w, false
	}
	w = w.Scale(1 / small)
	for k := 1.0; k <= 24; k++ {
		v := w.Scale(k)
		if v.IsInteger(1e-5) {
			v = v.Round()
			g := gcd(gcd(int64(v[0]), int64(v[1])), int64(v[2]))
			return v.Scale(1 / float64(g)), true
		}
	}
	return w, false
}

//planeBasis returns a reduced basis of the lattice vectors v with
//u·G·v = 0, for the lattice with basis t.
func planeBasis(u symop.Vec, g, t symop.Mat) (symop.Vec, symop.Vec) {
	row := t.T().MulVec(g.MulVec(u))
	var m symop.Mat
	m[0], _ = integerize(row)
	ker := intKernel(m)
	a := t.MulVec(fromInts(ker[0]))
	b := t.MulVec(fromInts(ker[1]))
	return reduce2(a, b, g)
}

func fromInts(v [3]int64) symop.Vec {
	return symop.Vec{float64(v[0]), float64(v[1]), float64(v[2])}
}

//reduce2 is the Lagrange reduction of a plane basis in the metric g.
func reduce2(a, b symop.Vec, g symop.Mat) (symop.Vec, symop.Vec) {
	n := func(v symop.Vec) float64 { return v.Dot(g.MulVec(v)) }
	if n(a) > n(b) {
		a, b = b, a
	}
	for i := 0; i < 100; i++ {
		mu := math.Round(a.Dot(g.MulVec(b)) / n(a))
		b = b.Sub(a.Scale(mu))
		if n(b) >= n(a)-1e-9 {
			break
		}
		a, b = b, a
	}
	return a, b
}

//axes returns the distinct axes of the rotations whose proper part has
//order n.
func axes(rots []symop.Mat, n int) []symop.Vec {
	var ret []symop.Vec
	for _, r := range rots {
		if rotationOrder(r) != n {
			continue
		}
		ax, ok := axisOf(r)
		if !ok {
			continue
		}
		dup := false
		for _, a := range ret {
			dup = dup || parallel(a, ax)
		}
		if !dup {
			ret = append(ret, ax)
		}
	}
	return ret
}

//shortest returns the shortest vectors among small combinations of a
//reduced plane basis.
func shortest(p1, p2 symop.Vec, g symop.Mat) []symop.Vec {
	n := func(v symop.Vec) float64 { return v.Dot(g.MulVec(v)) }
	var cands []symop.Vec
	for i := -1.0; i <= 1; i++ {
		for j := -1.0; j <= 1; j++ {
			if i != 0 || j != 0 {
				cands = append(cands, p1.Scale(i).Add(p2.Scale(j)))
			}
		}
	}
	min := math.Inf(1)
	for _, c := range cands {
		min = math.Min(min, n(c))
	}
	var ret []symop.Vec
	for _, c := range cands {
		if n(c) < min*(1+1e-6) {
			ret = append(ret, c)
		}
	}
	return ret
}

//permBases returns the bases made of the vectors v in every order and
//with every sign, with positive determinant.
func permBases(v []symop.Vec) []symop.Mat {
	perms := [][3]int{{0, 1, 2}, {1, 0, 2}, {2, 0, 1}, {0, 2, 1}, {1, 2, 0}, {2, 1, 0}}
	var ret []symop.Mat
	for _, p := range perms {
		for s := 0; s < 8; s++ {
			var c [3]symop.Vec
			for i := 0; i < 3; i++ {
				c[i] = v[p[i]]
				if s&(1<<i) != 0 {
					c[i] = c[i].Scale(-1)
				}
			}
			m := symop.FromCols(c[0], c[1], c[2])
			if m.Det() > 1e-9 {
				ret = append(ret, m)
			}
		}
	}
	return ret
}

//candidateBases returns the possible conventional bases, as columns in
//the input coordinates, of a group with rotations rots, lattice basis t
//and invariant metric g.
func candidateBases(rots []symop.Mat, lt lattice.Type, t, g symop.Mat) []symop.Mat {
	tinv, err := t.Inverse()
	if err != nil {
		return nil
	}
	var ret []symop.Mat
	addIf := func(a, b, c symop.Vec) {
		m := symop.FromCols(a, b, c)
		if m.Det() > 1e-9 {
			ret = append(ret, m)
		}
	}
	switch lt {
	case lattice.Triclinic:
		if t.Det() < 0 {
			t = t.Scale(-1)
		}
		return []symop.Mat{t}
	case lattice.Monoclinic:
		ax := axes(rots, 2)
		if len(ax) == 0 {
			return nil
		}
		b := primitiveAlong(ax[0], t, tinv)
		p1, p2 := planeBasis(ax[0], g, t)
		for i := -2.0; i <= 2; i++ {
			for j := -2.0; j <= 2; j++ {
				for k := -2.0; k <= 2; k++ {
					for l := -2.0; l <= 2; l++ {
						if math.Abs(i*l-j*k) != 1 {
							continue
						}
						addIf(p1.Scale(i).Add(p2.Scale(j)), b, p1.Scale(k).Add(p2.Scale(l)))
					}
				}
			}
		}
	case lattice.Orthorhombic:
		ax := axes(rots, 2)
		if len(ax) != 3 {
			return nil
		}
		v := make([]symop.Vec, 3)
		for i, a := range ax {
			v[i] = primitiveAlong(a, t, tinv)
		}
		return permBases(v)
	case lattice.Tetragonal, lattice.Trigonal, lattice.Hexagonal:
		n := 4
		if lt != lattice.Tetragonal {
			n = 3
		}
		var r symop.Mat
		found := false
		for _, m := range rots {
			if rotationOrder(m) != n || (n == 3 && m.Det() < 0) {
				continue
			}
			r, found = properPart(m), true
			break
		}
		if !found {
			return nil
		}
		ax, _ := axisOf(r)
		c := primitiveAlong(ax, t, tinv)
		p1, p2 := planeBasis(ax, g, t)
		rinv := symop.MustInverse(symop.New(r, symop.Vec{})).R
		for _, a := range shortest(p1, p2, g) {
			for _, bb := range []symop.Vec{r.MulVec(a), rinv.MulVec(a)} {
				addIf(a, bb, c)
				addIf(a, bb, c.Scale(-1))
			}
		}
	case lattice.Cubic:
		ax := axes(rots, 4)
		if len(ax) != 3 {
			ax = axes(rots, 2)
		}
		if len(ax) != 3 {
			return nil
		}
		v := make([]symop.Vec, 3)
		for i, a := range ax {
			v[i] = primitiveAlong(a, t, tinv)
		}
		return permBases(v)
	}
	return ret
}

//matchStandard tries to bring the operations (reps, with the lattice of
//basis t) onto the standard group N through the basis b. It returns the
//origin of the standard setting in the coordinates of b.
func matchStandard(N *Group, reps []symop.Op, t, b symop.Mat) (symop.Vec, bool) {
	binv, err := b.Inverse()
	if err != nil || len(reps) != N.PointGroupOrder() {
		return symop.Vec{}, false
	}
	stdT := map[[9]int64]symop.Vec{}
	for _, o := range N.CosetReps() {
		stdT[o.R.RotKey()] = o.T
	}
	rs := make([]symop.Mat, len(reps))
	for i, o := range reps {
		r := binv.Mul(o.R).Mul(b)
		if !r.IsInteger(1e-6) {
			return symop.Vec{}, false
		}
		r = r.Rounded()
		if _, ok := stdT[r.RotKey()]; !ok {
			return symop.Vec{}, false
		}
		rs[i] = r
	}
	p := latticeBasis(N.centering)
	bt := binv.Mul(t)
	if !spanBasis([]symop.Vec{bt.Col(0), bt.Col(1), bt.Col(2)}).Equal(p, 1e-6) {
		return symop.Vec{}, false
	}
	pinv, _ := p.Inverse()
	var A [][3]int64
	var d []float64
	for i, o := range reps {
		a := pinv.Mul(symop.Eye().Sub(rs[i])).Mul(p)
		rhs := pinv.MulVec(binv.MulVec(o.T).Sub(stdT[rs[i].RotKey()]))
		for k := 0; k < 3; k++ {
			A = append(A, [3]int64{int64(math.Round(a[k][0])), int64(math.Round(a[k][1])), int64(math.Round(a[k][2]))})
			d = append(d, rhs[k])
		}
	}
	sigma, ok := congruence(A, d)
	if !ok {
		return symop.Vec{}, false
	}
	s := p.MulVec(sigma)
	for i, o := range reps {
		tt := binv.MulVec(o.T).Add(rs[i].MulVec(s)).Sub(s)
		if !N.Contains(symop.New(rs[i], tt)) {
			return symop.Vec{}, false
		}
	}
	return s, true
}

// Identify returns the standard group of a set of operations closed modulo
// the lattice (centering translations included), and the transformation t
// from the standard coordinates to those of the operations: x = t.R·x_std +
// t.T. It returns a LookupError if the operations are not a space group.
func Identify(ops []symop.Op) (*Group, symop.Op, error) {
	reps, cen := splitOps(ops)
	rots := make([]symop.Mat, len(reps))
	var g symop.Mat
	for i, o := range reps {
		if !o.R.IsInteger(1e-6) {
			return nil, symop.Op{}, lookupErrorf("Identify", "non-integral rotation %s", o.XYZ())
		}
		rots[i] = o.R.Rounded()
		g = g.Add(rots[i].T().Mul(rots[i]))
	}
	pg := pgSymbol(rots)
	nums := NumbersWithPointGroup(pg)
	if len(nums) == 0 {
		return nil, symop.Op{}, lookupErrorf("Identify", "the operations don't form a crystallographic point group")
	}
	t := latticeBasis(cen)
	lt := latticeTypeOf(nums[0])
	bases := candidateBases(rots, lt, t, g)
	for _, n := range nums {
		N := MustNew(n)
		for _, b := range bases {
			if s, ok := matchStandard(N, reps, t, b); ok {
				return N, symop.New(b, b.MulVec(s)), nil
			}
		}
	}
	return nil, symop.Op{}, lookupErrorf("Identify", "no space group of class %s matches the operations", pg)
}

// FromSymops returns the group, in one of the settings listed by Settings,
// whose operations are those given as xyz strings, or the group they
// generate. It returns a LookupError if they don't generate a space
// group, or if they do in a setting that is not catalogued (Identify
// handles those).
func FromSymops(xyz []string) (g *Group, err error) {
	gens := make([]symop.Op, 0, len(xyz))
	for _, s := range xyz {
		o, err := symop.ParseXYZ(s)
		if err != nil {
			return nil, lookupErrorf("FromSymops", "%s", err.Error())
		}
		gens = append(gens, o)
	}
	defer func() {
		if r := recover(); r != nil {
			if r != ErrNotFinite {
				panic(r)
			}
			g, err = nil, lookupErrorf("FromSymops", "the operations don't generate a finite group")
		}
	}()
	ops := closure(gens)
	std, _, err := Identify(ops)
	if err != nil {
		return nil, err
	}
	key := opSetKey(ops)
	for i := range Settings(std.Number) {
		s := MustNew(std.Number, WithSetting(i))
		if opSetKey(s.ops) == key {
			return s, nil
		}
	}
	return nil, lookupErrorf("FromSymops", "group %d in a setting that is not catalogued", std.Number)
}
