/*
 * group_test.go, part of goXtal.
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
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmera/goxtal/lattice"
	"github.com/rmera/goxtal/symop"
)

func TestOrders(Te *testing.T) {
	cases := []struct {
		number, order, centering int
		pg                       string
	}{
		{1, 1, 1, "1"},
		{2, 2, 1, "-1"},
		{14, 4, 1, "2/m"},
		{36, 8, 2, "mm2"},
		{62, 8, 1, "mmm"},
		{139, 32, 2, "4/mmm"},
		{167, 36, 3, "-3m"},
		{187, 12, 1, "-6m2"},
		{194, 24, 1, "6/mmm"},
		{225, 192, 4, "m-3m"},
		{227, 192, 4, "m-3m"},
		{230, 96, 2, "m-3m"},
	}
	for _, c := range cases {
		g, err := New(c.number)
		require.NoError(Te, err)
		assert.Equal(Te, c.order, g.Order(), "group %d", c.number)
		assert.Len(Te, g.Centering(), c.centering, "group %d", c.number)
		assert.Equal(Te, c.pg, g.PointGroup, "group %d", c.number)
		assert.Equal(Te, c.pg, PointGroupOf(g.Ops()), "group %d", c.number)
		assert.True(Te, g.Ops()[0].IsIdentity())
	}
}

func TestFlagCounts(Te *testing.T) {
	var polar, centro, chiral int
	for n := 1; n <= 230; n++ {
		g := MustNew(n)
		if g.Polar {
			polar++
		}
		if g.Centrosymmetric {
			centro++
		}
		if g.Chiral {
			chiral++
		}
	}
	assert.Equal(Te, 68, polar)
	assert.Equal(Te, 92, centro)
	assert.Equal(Te, 65, chiral)
}

func TestLatticeDof(Te *testing.T) {
	cases := [][2]int{{1, 6}, {15, 4}, {60, 3}, {143, 2}, {208, 1}}
	for _, c := range cases {
		assert.Equal(Te, c[1], MustNew(c[0]).LatticeDof(), "group %d", c[0])
	}
	assert.Equal(Te, lattice.Hexagonal, MustNew(191).LatticeType)
	assert.True(Te, MustNew(166).IsRhombohedral())
	assert.False(Te, MustNew(164).IsRhombohedral())
}

func TestInverseIdentity(Te *testing.T) {
	pt := symop.Vec{0.35, 0.1, 0.4}
	for n := 1; n <= 230; n++ {
		g := MustNew(n)
		for _, o := range g.Ops() {
			q := symop.Compose(o, symop.MustInverse(o)).Operate(pt)
			assert.True(Te, symop.AreEquivalent(pt, q, 1e-6), "group %d op %s", n, o.XYZ())
		}
		//the singular generators of the positions are undone on their image
		for _, w := range g.Wyckoffs()[1:] {
			o := w.Ops()[0]
			p := o.Operate(pt)
			q := o.Operate(symop.PseudoInverse(o).Operate(p))
			assert.True(Te, symop.AreEquivalent(p, q, 1e-6), "group %d %s %s", n, w.Label(), o.XYZ())
		}
	}
}

func TestLookupErrors(Te *testing.T) {
	for _, n := range []int{0, -3, 231} {
		_, err := New(n)
		require.Error(Te, err)
		var le LookupError
		assert.True(Te, errors.As(err, &le), "number %d", n)
		assert.True(Te, le.Critical())
	}
	_, err := New(14, WithSetting(999))
	assert.Error(Te, err)
	g := MustNew(36)
	_, err = g.WyckoffByLetter("z")
	assert.Error(Te, err)
	_, err = g.WyckoffByLabel("8a")
	assert.Error(Te, err)
	_, err = g.Wyckoff(12)
	assert.Error(Te, err)
	//the trail is kept across calls
	var le LookupError
	_, err = New(300)
	require.True(Te, errors.As(err, &le))
	le.Decorate("caller")
	assert.Contains(Te, le.Decorate(""), "caller")
	assert.Contains(Te, le.Decorate(""), "New")
}

func TestSharedCatalog(Te *testing.T) {
	var wg sync.WaitGroup
	got := make([]*Group, 8)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = MustNew(221)
			got[i].Wyckoffs()
		}(i)
	}
	wg.Wait()
	for _, g := range got[1:] {
		assert.Same(Te, got[0], g)
	}
}

func TestFerroelectric(Te *testing.T) {
	cases := [][2]int{{4, 1}, {187, 4}, {222, 5}}
	for _, c := range cases {
		assert.Len(Te, MustNew(c[0]).FerroelectricGroups(), c[1], "group %d", c[0])
	}
	assert.Equal(Te, []string{"4mm", "3m", "mm2", "m", "1"}, MustNew(221).FerroelectricGroups())
}

func TestCheckCompatible(Te *testing.T) {
	cases := []struct {
		number     int
		ions       []int
		comp, uniq bool
	}{
		{225, []int{64, 28, 24}, true, true},
		{227, []int{8}, true, false},
		{227, []int{4}, false, false},
		{19, []int{6}, false, false},
		{19, []int{8, 4}, true, true},
	}
	for _, c := range cases {
		comp, uniq := MustNew(c.number).CheckCompatible(c.ions)
		assert.Equal(Te, c.comp, comp, "group %d %v", c.number, c.ions)
		assert.Equal(Te, c.uniq, uniq, "group %d %v", c.number, c.ions)
	}
}

func TestCombinations(Te *testing.T) {
	g := MustNew(64)
	assert.Empty(Te, g.ListWyckoffCombinations([]int{4, 2}, false))
	combs := g.ListWyckoffCombinations([]int{4, 8}, false)
	assert.Len(Te, combs, 8)
	for _, c := range combs {
		require.Len(Te, c, 2)
		assert.Equal(Te, 0, c[0][0].Dof())
		n := 0
		for _, w := range c[1] {
			n += w.Multiplicity
		}
		assert.Equal(Te, 8, n)
	}
	quick := g.ListWyckoffCombinations([]int{16}, true)
	for _, c := range quick {
		assert.Len(Te, c[0], 1)
	}
	assert.NotEmpty(Te, quick)
}

func combinationKey(c Combination) string {
	var b strings.Builder
	for _, s := range c {
		for _, w := range s {
			b.WriteString(w.Label())
			b.WriteByte(' ')
		}
		b.WriteByte('|')
	}
	return b.String()
}

//The quick combinations are some of the full ones.
func TestQuickCombinationsSubset(Te *testing.T) {
	cases := []struct {
		number int
		ions   []int
	}{
		{64, []int{16}},
		{64, []int{4, 8}},
		{225, []int{4, 8}},
		{221, []int{1, 3}},
		{62, []int{4, 4, 8}},
		{194, []int{2, 6}},
	}
	for _, c := range cases {
		g := MustNew(c.number)
		full := g.ListWyckoffCombinations(c.ions, false)
		quick := g.ListWyckoffCombinations(c.ions, true)
		require.NotEmpty(Te, full, "group %d %v", c.number, c.ions)
		assert.NotEmpty(Te, quick, "group %d %v", c.number, c.ions)
		assert.LessOrEqual(Te, len(quick), len(full), "group %d %v", c.number, c.ions)
		keys := map[string]bool{}
		for _, f := range full {
			keys[combinationKey(f)] = true
		}
		for _, q := range quick {
			assert.True(Te, keys[combinationKey(q)], "group %d %v: %s", c.number, c.ions, combinationKey(q))
		}
	}
}

func TestNormalizer(Te *testing.T) {
	cubic := lattice.FromPara(4, 4, 4, 90, 90, 90, lattice.Cubic).Matrix()
	tri := lattice.FromPara(4, 5, 6, 80, 85, 95, lattice.Triclinic).Matrix()
	tests := []struct {
		number int
		cell   symop.Mat
		want   int
	}{
		{225, cubic, 2},
		{221, cubic, 2},
		{2, tri, 8},
		{1, tri, 2},
	}
	for _, t := range tests {
		n := MustNew(t.number).Normalizer(t.cell, 1e-3)
		assert.Len(Te, n, t.want, "group %d", t.number)
		assert.True(Te, n[0].IsIdentity())
	}
}
