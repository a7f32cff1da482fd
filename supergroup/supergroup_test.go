/*
 * supergroup_test.go, part of goXtal.
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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	xtal "github.com/rmera/goxtal"
	"github.com/rmera/goxtal/config"
	"github.com/rmera/goxtal/lattice"
	"github.com/rmera/goxtal/spg"
	"github.com/rmera/goxtal/symop"
)

//firstWith returns the first position of g with multiplicity m and d
//degrees of freedom.
func firstWith(Te *testing.T, g *spg.Group, m, d int) *spg.Wyckoff {
	for _, w := range g.Wyckoffs() {
		if w.Multiplicity == m && w.Dof() == d {
			return w
		}
	}
	Te.Fatalf("group %d has no %d-fold position with %d parameters", g.Number, m, d)
	return nil
}

func cubic214(Te *testing.T) *xtal.Structure {
	g := spg.MustNew(214)
	w16 := firstWith(Te, g, 16, 1)
	w24 := firstWith(Te, g, 24, 1)
	l := lattice.FromPara(8, 8, 8, 90, 90, 90, lattice.Cubic)
	s, err := xtal.New(g, l,
		xtal.NewAtomSite("C", w16, w16.Ops()[0].Operate(symop.Vec{0.21, 0.33, 0.47})),
		xtal.NewAtomSite("O", w24, w24.Ops()[0].Operate(symop.Vec{0.31, 0.17, 0.29})))
	require.NoError(Te, err)
	return s
}

func reduced(Te *testing.T, s *xtal.Structure, h int) *xtal.Structure {
	subs := s.Subgroup(h, "")
	require.NotEmpty(Te, subs)
	return subs[0]
}

func TestRoundTrip(Te *testing.T) {
	s := cubic214(Te)
	sub := reduced(Te, s, 98)
	assert.Equal(Te, 98, sub.Group.Number)
	res, err := Search(sub, 214, &Options{DTol: 0.3})
	require.NoError(Te, err)
	require.NotEmpty(Te, res.Solutions)
	sol := res.Solutions[0]
	assert.Equal(Te, []int{214, 98}, sol.Path)
	assert.InDelta(Te, 0, sol.MaxDisp, 1e-6)
	assert.Equal(Te, 214, sol.Group())

	m := xtal.NewMatcher(config.Default())
	high := sol.MakeInSupergroup()
	assert.True(Te, high.Valid(1e-3))
	rms, ok := m.RMS(high, s)
	require.True(Te, ok)
	assert.Less(Te, rms, 1e-3)

	path := sol.MakeInSubgroup(3)
	require.Len(Te, path, 3)
	rms, ok = m.RMS(high, path[2])
	require.True(Te, ok)
	assert.Less(Te, rms, 1e-3)
	for _, d := range sol.Displacements() {
		assert.InDelta(Te, 0, d, 1e-6)
	}
}

func TestNoSolution(Te *testing.T) {
	g := spg.MustNew(1)
	l := lattice.FromPara(5, 6, 7, 80, 85, 95, lattice.Triclinic)
	s, err := xtal.New(g, l, xtal.NewAtomSite("Na", g.Wyckoffs()[0], symop.Vec{0.3, 0.3, 0.3}))
	require.NoError(Te, err)
	res, err := Search(s, 2, &Options{DTol: 0.3})
	require.NoError(Te, err)
	assert.Empty(Te, res.Solutions)
	assert.False(Te, res.Truncated)

	_, err = Search(s, 231, nil)
	require.Error(Te, err)
	var le spg.LookupError
	require.True(Te, errors.As(err, &le))
	assert.Contains(Te, le.Decorate(""), "supergroup.Search")
}

func TestTruncated(Te *testing.T) {
	g := spg.MustNew(1)
	l := lattice.FromPara(5, 6, 7, 80, 85, 95, lattice.Triclinic)
	s, err := xtal.New(g, l, xtal.NewAtomSite("Na", g.Wyckoffs()[0], symop.Vec{}))
	require.NoError(Te, err)
	res, err := Search(s, 2, &Options{DTol: 0.3, MaxSolutions: 1})
	require.NoError(Te, err)
	require.Len(Te, res.Solutions, 1)
	assert.True(Te, res.Truncated)
	a := res.Solutions[0].Assignments
	require.Len(Te, a, 1)
	assert.Equal(Te, 1, a[0].Wyckoff.Multiplicity)
}

func TestByGroup(Te *testing.T) {
	s := cubic214(Te)
	sub := reduced(Te, s, 98)
	opts := &Options{DTol: 0.3}
	C, ok, err := ByGroup(sub, 214, opts)
	require.NoError(Te, err)
	require.True(Te, ok)
	require.Len(Te, C.Structures, 2)
	rms, ok := xtal.NewMatcher(config.Default()).RMS(C.Last(), s)
	require.True(Te, ok)
	assert.Less(Te, rms, 1e-3)

	C, ok, err = ByPath(sub, []int{230}, opts)
	require.NoError(Te, err)
	assert.False(Te, ok)
	assert.Len(Te, C.Structures, 1)
}

func TestOptions(Te *testing.T) {
	d := DefaultOptions()
	c := config.Default()
	assert.Equal(Te, c.DTol, d.DTol)
	assert.Equal(Te, c.Bounds.MaxLayer, d.MaxLayer)
	o := (&Options{DTol: 0.5}).filled()
	assert.Equal(Te, 0.5, o.DTol)
	assert.Equal(Te, d.MaxSolutions, o.MaxSolutions)
	assert.Equal(Te, d.MaxPerG, (*Options)(nil).filled().MaxPerG)
}
