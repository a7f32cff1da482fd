/*
 * wyckoff.go, part of goXtal.
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
	"fmt"
	"math"
	"strings"
	"sync"

	"gonum.org/v1/gonum/mat"

	"github.com/rmera/goxtal/symop"
)

// Wyckoff is a Wyckoff position: an orbit of points under the operations
// of a group. Ops()[0] maps any point onto the representative of the
// position, such as x,x,1/4, and the rest generate the orbit from it.
type Wyckoff struct {
	Multiplicity int
	Letter       string
	Index        int //0 is the general position

	group *Group
	free  []int
	stab  []symop.Op
	ops   []symop.Op

	trans *symop.Op //non-nil for positions expressed in another basis
	std   []symop.Op

	symOnce sync.Once
	site    string
}

// Wyckoffs returns the Wyckoff positions of G: the general position
// first, then by decreasing multiplicity, letter a last.
func (G *Group) Wyckoffs() []*Wyckoff {
	G.wOnce.Do(func() { G.wyckoffs = G.buildWyckoffs() })
	return G.wyckoffs
}

// Wyckoff returns the position with index i. Negative indexes count from
// the end, so -1 is the position with letter a.
func (G *Group) Wyckoff(i int) (*Wyckoff, error) {
	ws := G.Wyckoffs()
	if i < 0 {
		i += len(ws)
	}
	if i < 0 || i >= len(ws) {
		return nil, lookupErrorf("Wyckoff", "group %d has no Wyckoff position with index %d", G.Number, i)
	}
	return ws[i], nil
}

// WyckoffByLetter returns the position with the given letter.
func (G *Group) WyckoffByLetter(l string) (*Wyckoff, error) {
	for _, w := range G.Wyckoffs() {
		if w.Letter == l {
			return w, nil
		}
	}
	return nil, lookupErrorf("WyckoffByLetter", "group %d has no Wyckoff position %q", G.Number, l)
}

// WyckoffByLabel returns the position with a label such as "4a". The
// multiplicity must match the letter.
func (G *Group) WyckoffByLabel(label string) (*Wyckoff, error) {
	i := strings.IndexFunc(label, func(r rune) bool { return r < '0' || r > '9' })
	if i <= 0 {
		return nil, lookupErrorf("WyckoffByLabel", "malformed Wyckoff label %q", label)
	}
	w, err := G.WyckoffByLetter(label[i:])
	if err != nil {
		return nil, lookupErrorf("WyckoffByLabel", "group %d has no Wyckoff position %q", G.Number, label)
	}
	if w.Label() != label {
		return nil, lookupErrorf("WyckoffByLabel", "group %d: position %s has multiplicity %d", G.Number, w.Letter, w.Multiplicity)
	}
	return w, nil
}

// WyckoffFromXYZ returns the most special position that contains the
// point pt, within the fractional tolerance tol. It returns nil if only
// the general position contains it.
func (G *Group) WyckoffFromXYZ(pt symop.Vec, tol float64) *Wyckoff {
	ws := G.Wyckoffs()
	for i := len(ws) - 1; i > 0; i-- {
		if _, d := ws[i].nearest(pt, symop.Eye()); d < tol {
			return ws[i]
		}
	}
	return nil
}

// Organized returns the positions of G grouped by multiplicity, from the
// general position to the most special ones.
func (G *Group) Organized() [][]*Wyckoff {
	var ret [][]*Wyckoff
	for _, w := range G.Wyckoffs() {
		n := len(ret)
		if n == 0 || ret[n-1][0].Multiplicity != w.Multiplicity {
			ret = append(ret, []*Wyckoff{w})
			continue
		}
		ret[n-1] = append(ret[n-1], w)
	}
	return ret
}

// Label returns the multiplicity and letter of W, such as "8b".
func (W *Wyckoff) Label() string {
	return fmt.Sprintf("%d%s", W.Multiplicity, W.Letter)
}

// Group returns the group W belongs to.
func (W *Wyckoff) Group() *Group { return W.group }

// Dof returns the number of free coordinates of W.
func (W *Wyckoff) Dof() int { return len(W.free) }

// FrozenAxes returns the coordinates that are fixed by the representative
// of W.
func (W *Wyckoff) FrozenAxes() []int {
	var ax []int
	for k := 0; k < 3; k++ {
		isFree := false
		for _, j := range W.free {
			isFree = isFree || j == k
		}
		if !isFree {
			ax = append(ax, k)
		}
	}
	return ax
}

// Ops returns the generators of W. The slice must not be modified.
func (W *Wyckoff) Ops() []symop.Op { return W.ops }

// Len returns the number of generators, which is the multiplicity.
func (W *Wyckoff) Len() int { return len(W.ops) }

// SiteOps returns the stabilizer of the representative point of W, with
// the translations that fix it exactly.
func (W *Wyckoff) SiteOps() []symop.Op { return W.stab }

// IsStandardSetting returns false for positions moved to another basis
// with TransformFromMatrix.
func (W *Wyckoff) IsStandardSetting() bool { return W.trans == nil }

// Euclidean returns true if the generators are applied in Cartesian
// space, including translations, by EuclideanGenerator. That is the case
// for hexagonal axes.
func (W *Wyckoff) Euclidean() bool {
	n := W.group.Number
	return n >= 143 && n <= 194 && W.group.Setting == 0
}

// Orbit returns the images of pt under the generators, wrapped into the
// unit cell. pt is first placed on the representative of W.
func (W *Wyckoff) Orbit(pt symop.Vec) []symop.Vec {
	ret := make([]symop.Vec, len(W.ops))
	for i, o := range W.ops {
		ret[i] = o.Operate(pt).Wrap()
	}
	return ret
}

func (W *Wyckoff) String() string {
	return fmt.Sprintf("%s %s %s", W.Label(), W.ops[0].XYZ(), W.SiteSymmetry())
}

//nearest returns the point of W closest to pt in the metric of the cell,
//together with the distance. The point returned is the one closest to pt
//itself, not the image in the unit cell.
func (W *Wyckoff) nearest(pt symop.Vec, cell symop.Mat) (symop.Vec, float64) {
	g := cell.Mul(cell.T())
	best, bd := pt, math.Inf(1)
	for _, o := range W.ops {
		q, d := nearestOn(o, W.free, pt, g)
		if d < bd {
			best, bd = q, d
		}
	}
	return best, bd
}

//nearestOn projects pt onto the affine subspace o, parametrized by the
//coordinates in free, in the metric g. All the lattice images of pt within
//one cell are tried.
func nearestOn(o symop.Op, free []int, pt symop.Vec, g symop.Mat) (symop.Vec, float64) {
	k := len(free)
	var dg, a mat.Dense
	gm := g.Dense()
	if k > 0 {
		d := mat.NewDense(3, k, nil)
		for j, f := range free {
			for i := 0; i < 3; i++ {
				d.Set(i, j, o.R[i][f])
			}
		}
		dg.Mul(d.T(), gm)
		a.Mul(&dg, d)
	}
	base := pt.Sub(o.T).PBC().Add(o.T)
	best, bd := pt, math.Inf(1)
	for n0 := -1.0; n0 <= 1; n0++ {
		for n1 := -1.0; n1 <= 1; n1++ {
			for n2 := -1.0; n2 <= 1; n2++ {
				shift := symop.Vec{n0, n1, n2}
				q := base.Add(shift)
				p := o.T
				if k > 0 {
					diff := q.Sub(o.T)
					var rhs, u mat.VecDense
					rhs.MulVec(&dg, mat.NewVecDense(3, diff[:]))
					if err := u.SolveVec(&a, &rhs); err != nil {
						continue
					}
					for j, f := range free {
						p = p.Add(o.R.Col(f).Scale(u.AtVec(j)))
					}
				}
				r := q.Sub(p)
				dist := math.Sqrt(math.Max(0, r.Dot(g.MulVec(r))))
				if dist < bd {
					//back next to the original point
					bd, best = dist, p.Sub(q.Sub(pt))
				}
			}
		}
	}
	return best, bd
}

// Project returns the point of W closest to pt in the Cartesian metric of
// cell, choosing the image of W next to pt.
func (W *Wyckoff) Project(pt symop.Vec, cell symop.Mat) symop.Vec {
	p, _ := W.nearest(pt, cell)
	return p
}

// Contains returns true if pt lies on W within the fractional tolerance tol.
func (W *Wyckoff) Contains(pt symop.Vec, tol float64) bool {
	_, d := W.nearest(pt, symop.Eye())
	return d < tol
}

// Merge moves pt, a point of W, onto the most special position of the
// group that lies within tol (a Cartesian distance in cell) of it. The
// process is repeated from the merged point until no lower multiplicity
// is in reach. It returns the merged point, its position, and false if
// pt is not within tol of W in the first place.
func (W *Wyckoff) Merge(pt symop.Vec, cell symop.Mat, tol float64) (symop.Vec, *Wyckoff, bool) {
	p, d := W.nearest(pt, cell)
	if d > tol {
		return pt, W, false
	}
	cur := W
	for {
		var next *Wyckoff
		var np symop.Vec
		nd := math.Inf(1)
		for _, c := range W.group.Wyckoffs() {
			if c.Multiplicity >= cur.Multiplicity {
				continue
			}
			if next != nil && c.Multiplicity > next.Multiplicity {
				continue
			}
			q, dq := c.nearest(p, cell)
			if dq > tol || !cur.Contains(q, 1e-4) {
				continue
			}
			if next == nil || c.Multiplicity < next.Multiplicity || dq < nd {
				next, np, nd = c, q, dq
			}
		}
		if next == nil {
			break
		}
		cur, p = next, np
	}
	return p.Wrap(), cur, true
}

// AreEquivalentPts returns true if some generator of W maps a onto b
// modulo the lattice. The default fractional tolerance is 0.05.
func (W *Wyckoff) AreEquivalentPts(a, b symop.Vec, tol ...float64) bool {
	t := 0.05
	if len(tol) > 0 {
		t = tol[0]
	}
	for _, o := range W.ops {
		if symop.AreEquivalent(o.Operate(a), b, t) {
			return true
		}
	}
	return false
}

// Search returns the canonical representative of the orbit of pt: the
// image of pt that lies on the representative of W, placed on it
// exactly, with the lexicographically smallest wrapped coordinates. It
// returns false if no image of pt is on W within 0.01.
func (W *Wyckoff) Search(pt symop.Vec) (symop.Vec, bool) {
	const tol = 1e-2
	rep := W.ops[0]
	inv := symop.PseudoInverse(rep)
	eye := symop.Eye()
	var best symop.Vec
	found := false
	for _, g := range W.group.ops {
		q, d := nearestOn(rep, W.free, g.Operate(pt), eye)
		if d > tol {
			continue
		}
		q = rep.Operate(inv.Operate(q)).Wrap()
		if !found || q.Less(best) {
			best, found = q, true
		}
	}
	return best, found
}

// SearchGenerator returns the generator of W that maps the canonical
// representative of the orbit of pt (see Search) onto pt, or nil if pt
// is not on W.
func (W *Wyckoff) SearchGenerator(pt symop.Vec) *symop.Op {
	u, ok := W.Search(pt)
	if !ok {
		return nil
	}
	for _, o := range W.ops {
		if symop.AreEquivalent(o.Operate(u), pt, 1e-2) {
			r := o
			return &r
		}
	}
	return nil
}

// EuclideanGenerator returns generator i in the Cartesian space of cell.
// For positions that are not Euclidean (see Euclidean) only the rotation
// is converted, and the translation stays fractional.
func (W *Wyckoff) EuclideanGenerator(cell symop.Mat, i int) (symop.Op, error) {
	o := W.ops[i]
	c, err := o.Cartesian(cell)
	if err != nil {
		return symop.Op{}, err
	}
	if !W.Euclidean() {
		c.T = o.T
	}
	return c, nil
}
