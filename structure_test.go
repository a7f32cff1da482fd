/*
 * structure_test.go, part of goXtal.
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

package xtal

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmera/goxtal/config"
	"github.com/rmera/goxtal/lattice"
	"github.com/rmera/goxtal/spg"
	"github.com/rmera/goxtal/symop"
	v3 "github.com/rmera/goxtal/v3"
)

func rocksalt(Te *testing.T) *Structure {
	g := spg.MustNew(225)
	l := lattice.FromPara(5.64, 5.64, 5.64, 90, 90, 90, lattice.Cubic)
	return FromPoints(g, l, []string{"Na", "Cl"}, []symop.Vec{{0, 0, 0}, {0.5, 0.5, 0.5}}, 1e-3)
}

type cell struct {
	l   *lattice.Lattice
	el  []string
	pts []symop.Vec
}

func (c *cell) Lattice() (*lattice.Lattice, error) { return c.l, nil }
func (c *cell) Species() []string                  { return c.el }
func (c *cell) Frac() []symop.Vec                  { return c.pts }

func TestExport(Te *testing.T) {
	s := rocksalt(Te)
	e := s.Export()
	assert.Equal(Te, 225, e.Number)
	assert.InDelta(Te, 5.64, e.Para[0], 1e-9)
	assert.InDelta(Te, 90, e.Para[5], 1e-9)
	require.Len(Te, e.Sites, 2)
	assert.Equal(Te, "4a", e.Sites[0].Label)
	assert.Equal(Te, "Cl", e.Sites[1].Species)
	assert.Equal(Te, "4b", e.Sites[1].Label)
	assert.Equal(Te, map[string]int{"Na": 4, "Cl": 4}, s.Composition())
	el, f, err := s.Expand()
	require.NoError(Te, err)
	assert.Len(Te, el, 8)
	assert.Equal(Te, 8, f.Len())
	assert.True(Te, s.Valid(1e-3))
	assert.Equal(Te, []string{"Cl:4b", "Na:4a"}, s.Labels())
}

func TestNew(Te *testing.T) {
	g := spg.MustNew(225)
	w := spg.MustNew(221).Wyckoffs()[0]
	l := lattice.FromPara(4, 4, 4, 90, 90, 90, lattice.Cubic)
	_, err := New(g, l, NewAtomSite("Fe", w, symop.Vec{0.1, 0.2, 0.3}))
	var le LookupError
	assert.True(Te, errors.As(err, &le))
	assert.Panics(Te, func() { New(g, nil) })
	assert.Panics(Te, func() { FromPoints(g, l, []string{"Fe"}, nil, 1e-3) })
}

func TestFromGeometry(Te *testing.T) {
	s := rocksalt(Te)
	el, f, err := s.Expand()
	require.NoError(Te, err)
	r := &cell{l: s.Lattice, el: el, pts: f.Vecs()}
	t, err := FromGeometry(r, s.Group, 1e-3)
	require.NoError(Te, err)
	assert.Equal(Te, s.Labels(), t.Labels())

	r.el, r.pts = r.el[:7], r.pts[:7]
	_, err = FromGeometry(r, s.Group, 1e-3)
	var ie InfeasibleError
	assert.True(Te, errors.As(err, &ie))
}

func TestSubgroup(Te *testing.T) {
	s := rocksalt(Te)
	for _, h := range []int{139, 166, 216} {
		subs := s.Subgroup(h, "")
		require.NotEmpty(Te, subs, "group %d", h)
		for _, sub := range subs {
			assert.Equal(Te, h, sub.Group.Number)
			assert.True(Te, sub.Valid(1e-3), "group %d", h)
			ratio := sub.Lattice.Volume() / s.Lattice.Volume()
			for e, n := range s.Composition() {
				assert.InDelta(Te, float64(n)*ratio, float64(sub.Composition()[e]), 1e-6, "group %d %s", h, e)
			}
		}
	}
	assert.Empty(Te, s.Subgroup(2, ""))
	assert.Panics(Te, func() { s.ToSubgroup(spg.MustNew(221).MaxSubgroups()[0]) })
}

func TestMatcher(Te *testing.T) {
	m := NewMatcher(config.Default())
	s := rocksalt(Te)
	rms, ok := m.RMS(s, s.Copy())
	require.True(Te, ok)
	assert.InDelta(Te, 0, rms, 1e-9)

	//the same crystal, with the origin on a Cl atom
	g := s.Group
	swapped := FromPoints(g, s.Lattice.Copy(), []string{"Na", "Cl"}, []symop.Vec{{0.5, 0.5, 0.5}, {0, 0, 0}}, 1e-3)
	assert.True(Te, m.Fit(s, swapped, 1e-3))

	//a cubic cell against the smaller tetragonal one of a subgroup
	sub := s.Subgroup(139, "")[0]
	assert.True(Te, m.Fit(s, sub, 1e-3))

	other := FromPoints(g, s.Lattice.Copy(), []string{"Na", "Na"}, []symop.Vec{{0.5, 0.5, 0.5}, {0, 0, 0}}, 1e-3)
	_, ok = m.RMS(s, other)
	assert.False(Te, ok)
	sc, err := m.Similarity(s, swapped)
	require.NoError(Te, err)
	assert.InDelta(Te, 1, sc, 1e-6)
}

func TestAlternatives(Te *testing.T) {
	s := rocksalt(Te)
	alt := s.Alternatives()
	require.Len(Te, alt, 2)
	assert.Equal(Te, []string{"Cl:4a", "Na:4b"}, alt[1].Labels())
	assert.True(Te, NewMatcher(config.Default()).Fit(s, alt[1], 1e-3))
}

func TestPerturb(Te *testing.T) {
	g := spg.MustNew(221)
	var w *spg.Wyckoff
	for _, c := range g.Wyckoffs() {
		if c.Dof() == 1 {
			w = c
			break
		}
	}
	require.NotNil(Te, w)
	l := lattice.FromPara(4, 4, 4, 90, 90, 90, lattice.Cubic)
	s, err := New(g, l, NewAtomSite("O", w, w.Ops()[0].Operate(symop.Vec{0.23, 0.31, 0.37})))
	require.NoError(Te, err)
	p := s.Perturb(0.05, rand.New(rand.NewSource(7)))
	assert.True(Te, p.Valid(1e-6))
	assert.Equal(Te, s.Labels(), p.Labels())
	rms, ok := NewMatcher(config.Default()).RMS(s, p)
	require.True(Te, ok)
	assert.LessOrEqual(Te, rms, 0.05+1e-9)
}

type dimer struct{}

func (dimer) Elements() []string { return []string{"H", "H"} }
func (dimer) Coords() *v3.Matrix {
	return v3.FromVecs([]symop.Vec{{0.37, 0, 0}, {-0.37, 0, 0}})
}
func (dimer) Volume() float64 { return 10 }

type library map[string]Molecule

func (L library) Molecule(name string) (Molecule, error) {
	if m, ok := L[name]; ok {
		return m, nil
	}
	return nil, lookupErrorf("Molecule", "no molecule %q", name)
}

func TestMolSite(Te *testing.T) {
	g := spg.MustNew(225)
	w, err := g.WyckoffByLabel("4a")
	require.NoError(Te, err)
	lib := library{"H2": dimer{}}
	m, err := NewMolSite(lib, "H2", w, symop.Vec{}, symop.Eye())
	require.NoError(Te, err)
	_, err = NewMolSite(lib, "N2", w, symop.Vec{}, symop.Eye())
	assert.Error(Te, err)
	s, err := New(g, lattice.FromPara(5, 5, 5, 90, 90, 90, lattice.Cubic), m)
	require.NoError(Te, err)
	el, f, err := s.Expand()
	require.NoError(Te, err)
	assert.Len(Te, el, 8)
	cell := s.Lattice.Matrix()
	//both atoms of the first molecule are 0.37 Å away from its centre
	for i := 0; i < 2; i++ {
		assert.InDelta(Te, 0.37, symop.Distance(f.Vec(i), m.Orbit()[0], cell), 1e-9)
	}
	assert.Equal(Te, map[string]int{"H2": 4}, s.Composition())
}
