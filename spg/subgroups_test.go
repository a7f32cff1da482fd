/*
 * subgroups_test.go, part of goXtal.
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
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/graph"

	"github.com/rmera/goxtal/symop"
)

func TestMaxTSubgroups(Te *testing.T) {
	g := MustNew(225)
	assert.Equal(Te, []int{139, 166, 202, 209, 216}, g.MaxSubgroupNumbers("t"))
	index := map[int]int{139: 3, 166: 4, 202: 2, 209: 2, 216: 2}
	for _, r := range g.MaxSubgroupsOfKind("t") {
		assert.Equal(Te, index[r.Number], r.Index, "%s", r)
		assert.Len(Te, r.Ops(), g.Order()/r.Index, "%s", r)
	}
	assert.Equal(Te, []int{1}, MustNew(2).MaxSubgroupNumbers("t"))
	assert.Empty(Te, MustNew(1).MaxSubgroupNumbers("t"))
}

//The operations of H, brought to the coordinates of G, are operations of G.
func TestRelationTransforms(Te *testing.T) {
	for _, n := range []int{4, 14, 36, 62, 139, 148, 166, 194, 221, 225} {
		g := MustNew(n)
		rs := g.MaxSubgroups()
		require.NotEmpty(Te, rs, "group %d", n)
		for _, r := range rs {
			inv := symop.MustInverse(r.Transform)
			for _, h := range r.Subgroup().Ops() {
				o := r.Transform.Mul(h).Mul(inv)
				assert.True(Te, g.Contains(o), "%s: %s", r, h.XYZ())
			}
			for _, o := range r.Ops() {
				assert.True(Te, g.Contains(o), "%s: %s", r, o.XYZ())
			}
		}
	}
}

func TestSplitMultiplicities(Te *testing.T) {
	for _, n := range []int{36, 139, 166, 225} {
		g := MustNew(n)
		for _, r := range g.MaxSubgroups() {
			vol := math.Abs(r.Transform.R.Det())
			for _, w := range g.Wyckoffs() {
				sum := 0
				for _, s := range r.Split(w) {
					sum += s.Multiplicity
				}
				assert.InDelta(Te, float64(w.Multiplicity)*vol, float64(sum), 1e-6, "%s %s", r, w.Label())
			}
		}
	}
}

func TestSplitPoint(Te *testing.T) {
	g := MustNew(225)
	var rel *Relation
	for _, r := range g.MaxSubgroups() {
		if r.Number == 139 {
			rel = r
		}
	}
	require.NotNil(Te, rel)
	w, err := g.WyckoffByLetter("a")
	require.NoError(Te, err)
	orbs := rel.SplitPoint(symop.Vec{0, 0, 0})
	require.Len(Te, orbs, 1)
	assert.Equal(Te, 2, orbs[0].Wyckoff.Multiplicity)
	assert.Len(Te, orbs[0].Points, 2)
	assert.Equal(Te, []*Wyckoff{orbs[0].Wyckoff}, rel.Split(w))
	assert.Panics(Te, func() { rel.Split(MustNew(221).Wyckoffs()[0]) })
}

func TestSupergroupPaths(Te *testing.T) {
	paths := MustNew(59).SearchSupergroupPaths(139, 2)
	assert.Equal(Te, [][]int{{71, 139}, {129, 139}, {137, 139}}, paths)
	assert.Equal(Te, [][]int{{225, 139}}, MustNew(225).SearchSubgroupPaths(139, 1))
	assert.Empty(Te, MustNew(139).SearchSubgroupPaths(225, 2))
}

//2a of I-43m keeps some symmetry down to R3, and a k step frees it.
func TestShortPathToGeneral(Te *testing.T) {
	path, err := MustNew(217).ShortPathToGeneralWP(7)
	require.NoError(Te, err)
	require.Len(Te, path, 3)
	assert.Equal(Te, 145, path[len(path)-1].Number)
	var nums, kinds []string
	for _, s := range path {
		nums = append(nums, strconv.Itoa(s.Number))
		kinds = append(kinds, s.Kind)
	}
	assert.Equal(Te, []string{"160", "146", "145"}, nums)
	assert.Equal(Te, []string{"t", "t", "k"}, kinds)
	path, err = MustNew(217).ShortPathToGeneralWP(0)
	assert.NoError(Te, err)
	assert.Empty(Te, path)
	_, err = MustNew(217).ShortPathToGeneralWP(40)
	assert.Error(Te, err)
}

func TestGeneralLess(Te *testing.T) {
	tk := []Step{{"t", 0, 160}, {"t", 0, 146}, {"k", 4, 145}}
	kt := []Step{{"k", 3, 218}, {"k", 3, 220}, {"t", 2, 161}}
	p1 := []Step{{"t", 0, 160}, {"t", 0, 146}, {"t", 0, 1}}
	low := []Step{{"t", 0, 160}, {"t", 0, 146}, {"k", 3, 144}}
	assert.True(Te, generalLess(tk, kt))
	assert.True(Te, generalLess(tk, p1))
	assert.True(Te, generalLess(kt, p1))
	assert.True(Te, generalLess(tk, low))
	assert.False(Te, generalLess(tk, tk))
}

//The refined chains of Pm-3m -> P4/mmm -> Pmmm put one k step ahead of
//a t step, and reach the same groups.
func TestAddKTransitions(Te *testing.T) {
	path := []int{221, 123, 47}
	chains := MustNew(221).AddKTransitions(path)
	require.NotEmpty(Te, chains)
	for _, c := range chains {
		require.Len(Te, c, len(path))
		var ts []int
		nk := 0
		for i, r := range c {
			if r.Kind == "k" {
				nk++
				require.Less(Te, i+1, len(c))
				assert.Equal(Te, "t", c[i+1].Kind)
				assert.Equal(Te, r.Number, c[i+1].Parent().Number)
				continue
			}
			ts = append(ts, r.Number)
		}
		assert.Equal(Te, 1, nk)
		assert.Equal(Te, path[1:], ts)
		assert.Equal(Te, 221, c[0].Parent().Number)
	}
	iso := false
	for _, c := range chains {
		if c[1].Kind == "k" && c[1].Isomorphic() {
			iso = true
		}
	}
	assert.True(Te, iso, "P4/mmm with a doubled c is missing")
	assert.Empty(Te, MustNew(225).AddKTransitions([]int{225, 2}))
	assert.Empty(Te, MustNew(225).AddKTransitions([]int{225, 221}))
	assert.Empty(Te, MustNew(225).AddKTransitions([]int{221, 123}))
}

//Pruning with the distances to H leaves the chains unchanged.
func TestSubgroupPathsPruned(Te *testing.T) {
	g := MustNew(225)
	paths := g.SearchSubgroupPaths(47, 3)
	require.NotEmpty(Te, paths)
	down, _ := subgroupGraph(225, 3)
	all := map[int64]int{}
	for _, n := range graph.NodesOf(down.Nodes()) {
		all[n.ID()] = 0
	}
	full := chains(down, 225, 47, 3, all)
	sortPaths(full)
	assert.Equal(Te, full, paths)
	for _, p := range paths {
		assert.LessOrEqual(Te, len(p), 4)
		assert.Equal(Te, 225, p[0])
		assert.Equal(Te, 47, p[len(p)-1])
	}
}

func TestSplitters(Te *testing.T) {
	g := MustNew(225)
	a, err := g.WyckoffByLetter("a")
	require.NoError(Te, err)
	for _, r := range g.Splitters([]*Wyckoff{a}, "t") {
		assert.Equal(Te, "t", r.Kind)
		s := r.Split(a)
		assert.True(Te, len(s) > 1 || s[0].Dof() > 0, "%s", r)
	}
	//4a is 2a of I4/mmm, with no freedom: 139 is not a splitter
	for _, r := range g.Splitters([]*Wyckoff{a}, "t") {
		assert.NotEqual(Te, 139, r.Number)
	}
}
