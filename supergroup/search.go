/*
 * search.go, part of goXtal.
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

package supergroup

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	xtal "github.com/rmera/goxtal"
	"github.com/rmera/goxtal/lattice"
	"github.com/rmera/goxtal/spg"
	"github.com/rmera/goxtal/symop"
)

//limit to the nodes visited while assigning the sites of one trial
const maxNodes = 20000

// Assignment is an orbit of the supergroup G made of sites of the
// low-symmetry structure.
type Assignment struct {
	Wyckoff  *spg.Wyckoff //position of G
	Position symop.Vec    //in the coordinates of G
	Species  string
	Sites    []int   //the sites of the low-symmetry structure
	Disp     float64 //Å, largest displacement of the atoms of the sites
}

// Solution is a high-symmetry structure in G that the low-symmetry
// structure distorts.
type Solution struct {
	Path        []int           //group numbers from G down to H
	Relations   []*spg.Relation //one per step of Path
	Origin      symop.Op        //applied to the low-symmetry structure before Relations
	Transform   symop.Op        //x_G = Transform·x_H, Origin included
	Assignments []Assignment
	MaxDisp     float64 //Å
	MeanDisp    float64 //Å, weighted by the number of atoms

	group   *spg.Group
	low     *xtal.Structure
	cell    *lattice.Lattice //of G
	targets []symop.Vec      //high-symmetry point of each low site, in the coordinates of H
}

// Result is the outcome of a search. Truncated is true if a bound in the
// options stopped the search before every relation was tried.
type Result struct {
	Solutions []*Solution
	Truncated bool
}

// Search looks for structures in the group with number G of which S is a
// distortion: every atom of S must be within opts.DTol of its position in
// the high-symmetry structure. The relations between G and the group of S
// are taken along the chains of maximal subgroups of up to opts.MaxLayer
// steps, with every choice of origin and axes that keeps S unchanged. The
// solutions are sorted by increasing MaxDisp. An empty result means no
// relation was found. A nil opts uses the defaults.
func Search(S *xtal.Structure, G int, opts *Options) (*Result, error) {
	opts = opts.filled()
	g, err := spg.New(G)
	if err != nil {
		return nil, errDecorate(err, "supergroup.Search")
	}
	res := &Result{}
	if g.Number == S.Group.Number {
		return res, nil
	}
	origins := S.Group.Normalizer(S.Lattice.Matrix(), 1e-3)
	seen := map[string]bool{}
	trials := 0
	for _, path := range g.SearchSubgroupPaths(S.Group.Number, opts.MaxLayer) {
		for _, chain := range g.AddKTransitions(path) {
			for _, o := range origins {
				if trials >= opts.MaxPerG || len(res.Solutions) >= opts.MaxSolutions {
					res.Truncated = true
					logger.Printf("search %d -> %d stopped after %d trials and %d solutions", G, S.Group.Number, trials, len(res.Solutions))
					sortSolutions(res.Solutions)
					return res, nil
				}
				trials++
				sol := try(S, g, path, chain, o, opts.DTol)
				if sol == nil {
					continue
				}
				if k := sol.key(); !seen[k] {
					seen[k] = true
					res.Solutions = append(res.Solutions, sol)
				}
			}
		}
	}
	sortSolutions(res.Solutions)
	return res, nil
}

func sortSolutions(s []*Solution) {
	sort.SliceStable(s, func(i, j int) bool { return s[i].MaxDisp < s[j].MaxDisp })
}

func (s *Solution) key() string {
	l := make([]string, len(s.Assignments))
	for i, a := range s.Assignments {
		l[i] = a.Species + ":" + a.Wyckoff.Label()
	}
	sort.Strings(l)
	return fmt.Sprint(s.Path, l, math.Round(s.MaxDisp*1e5))
}

//nearest returns the image of y under the operations of g that is closest
//to p, as a point next to p, and its distance.
func nearest(g *spg.Group, y, p symop.Vec, cell symop.Mat) (symop.Vec, float64) {
	best, bd := y, math.Inf(1)
	for _, o := range g.Ops() {
		q := p.Add(o.Operate(y).Sub(p).PBC())
		if d := symop.Distance(q, p, cell); d < bd {
			best, bd = q, d
		}
	}
	return best, bd
}

//trial holds what is needed to assign the sites of S to orbits of G
//under one transformation.
type trial struct {
	g       *spg.Group
	S       *xtal.Structure
	cell    symop.Mat
	x       []symop.Vec //sites of S in the coordinates of G
	weight  []float64   //atoms per cell of G
	dtol    float64
	used    []bool
	current []Assignment
	nodes   int
}

func try(S *xtal.Structure, g *spg.Group, path []int, chain []*spg.Relation, origin symop.Op, dtol float64) *Solution {
	t := symop.Identity()
	for _, r := range chain {
		t = t.Mul(r.Transform)
	}
	t = t.Mul(origin)
	det := math.Abs(t.R.Det())
	inv, err := t.R.Inverse()
	if err != nil || det < 0.5 {
		return nil
	}
	lg, err := lattice.FromMatrix(inv.T().Mul(S.Lattice.Matrix()), g.LatticeType)
	if err != nil {
		return nil
	}
	lg = lg.Symmetrize(g.LatticeType)
	T := &trial{g: g, S: S, cell: lg.Matrix(), dtol: dtol, used: make([]bool, len(S.Sites))}
	for _, s := range S.Sites {
		T.x = append(T.x, t.Operate(s.Position()).Wrap())
		T.weight = append(T.weight, float64(s.Wyckoff().Multiplicity)/det)
	}
	if !T.assign() {
		return nil
	}
	sol := &Solution{Path: path, Relations: chain, Origin: origin, Transform: t, group: g, low: S, cell: lg}
	sol.Assignments = append(sol.Assignments, T.current...)
	sol.targets = make([]symop.Vec, len(S.Sites))
	disp := make([]float64, len(S.Sites))
	for _, a := range sol.Assignments {
		for _, j := range a.Sites {
			q, d := nearest(g, a.Position, T.x[j], T.cell)
			disp[j] = d
			//the high-symmetry point, next to the site, back in H
			sol.targets[j] = S.Sites[j].Position().Add(inv.MulVec(q.Sub(T.x[j])))
		}
		sol.MaxDisp = math.Max(sol.MaxDisp, a.Disp)
	}
	sol.MeanDisp = stat.Mean(disp, T.weight)
	return sol
}

//assign covers the sites with orbits of G, depth first, trying the
//orbits with the smallest displacements first.
func (T *trial) assign() bool {
	i := -1
	for j, u := range T.used {
		if !u {
			i = j
			break
		}
	}
	if i < 0 {
		return true
	}
	T.nodes++
	if T.nodes > maxNodes {
		return false
	}
	for _, c := range T.candidates(i) {
		for _, j := range c.Sites {
			T.used[j] = true
		}
		T.current = append(T.current, c)
		if T.assign() {
			return true
		}
		T.current = T.current[:len(T.current)-1]
		for _, j := range c.Sites {
			T.used[j] = false
		}
	}
	return false
}

//candidates returns the orbits of G that can hold site i, together with
//the other free sites of the same species that fall on them.
func (T *trial) candidates(i int) []Assignment {
	sp := T.S.Sites[i].Species()
	var ret []Assignment
	for _, w := range T.g.Wyckoffs() {
		p0 := w.Project(T.x[i], T.cell)
		if symop.Distance(p0, T.x[i], T.cell) > T.dtol {
			continue
		}
		var members []int
		sum := 0.0
		for j, s := range T.S.Sites {
			if T.used[j] || s.Species() != sp {
				continue
			}
			if _, d := nearest(T.g, T.x[j], p0, T.cell); d < T.dtol {
				members = append(members, j)
				sum += T.weight[j]
			}
		}
		if math.Abs(sum-float64(w.Multiplicity)) > 1e-6 {
			continue
		}
		//average the images of the members around p0
		var acc symop.Vec
		for _, j := range members {
			q, _ := nearest(T.g, T.x[j], p0, T.cell)
			acc = acc.Add(q.Sub(p0).Scale(T.weight[j]))
		}
		p := w.Project(p0.Add(acc.Scale(1/sum)), T.cell)
		a := Assignment{Wyckoff: w, Position: p.Wrap(), Species: sp, Sites: members}
		ok := true
		for _, j := range members {
			_, d := nearest(T.g, T.x[j], p, T.cell)
			if d > T.dtol {
				ok = false
				break
			}
			a.Disp = math.Max(a.Disp, d)
		}
		if ok {
			ret = append(ret, a)
		}
	}
	sort.SliceStable(ret, func(a, b int) bool { return ret[a].Disp < ret[b].Disp })
	return ret
}

func (s *Solution) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v max %.4f mean %.4f", s.Path, s.MaxDisp, s.MeanDisp)
	for _, a := range s.Assignments {
		fmt.Fprintf(&b, "\n  %s %s %v", a.Species, a.Wyckoff.Label(), a.Sites)
	}
	return b.String()
}
