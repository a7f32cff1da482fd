/*
 * identify_test.go, part of goXtal.
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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmera/goxtal/symop"
)

func TestFromSymops(Te *testing.T) {
	cases := []struct {
		xyz      []string
		number   int
		standard bool
	}{
		{[]string{"x, y, z", "-x, y+1/2, -z"}, 4, true},
		{[]string{"x, y, z", "-x+1/2, -y, z+1/2", "-x, y, z", "x+1/2, -y, z+1/2"}, 31, true},
		{[]string{"x, y, z", "-x, -y, -z", "-x+1/2, y+1/2, -z", "x+1/2, -y+1/2, z"}, 14, false},
		{[]string{"x, y, z", "-x, -y, -z", "-x+1/2, y+1/2, -z+1/2", "x+1/2, -y+1/2, z+1/2"}, 14, false},
	}
	for _, c := range cases {
		g, err := FromSymops(c.xyz)
		require.NoError(Te, err, "%v", c.xyz)
		assert.Equal(Te, c.number, g.Number, "%v", c.xyz)
		assert.Equal(Te, c.standard, g.Setting == 0, "%v", c.xyz)
		for _, s := range c.xyz {
			assert.True(Te, g.Contains(symop.MustParseXYZ(s)), "%s", s)
		}
	}
	_, err := FromSymops([]string{"x,y,z", "2x,y,z"})
	require.Error(Te, err)
	var le LookupError
	assert.True(Te, errors.As(err, &le))
	_, err = FromSymops([]string{"x,y,q"})
	assert.Error(Te, err)
}

//Groups moved to another basis and origin are recognized, and the
//transformation returned maps the standard operations onto the given ones.
func TestIdentify(Te *testing.T) {
	perm := symop.Mat{{0, 1, 0}, {0, 0, 1}, {1, 0, 0}}
	cases := []struct {
		number int
		t      symop.Op
	}{
		{62, symop.New(perm, symop.Vec{0.25, 0, 0.5})},
		{19, symop.New(perm, symop.Vec{0, 0.5, 0})},
		{14, symop.New(symop.Mat{{1, 0, 1}, {0, 1, 0}, {0, 0, 1}}, symop.Vec{0.5, 0, 0})},
		{139, symop.New(symop.Mat{{1, 1, 0}, {-1, 1, 0}, {0, 0, 1}}, symop.Vec{})},
		{166, symop.New(symop.Eye(), symop.Vec{0, 0, 0.5})},
		{227, symop.New(symop.Eye(), symop.Vec{0.125, 0.125, 0.125})},
	}
	for _, c := range cases {
		ops := transformOps(MustNew(c.number).Ops(), c.t)
		N, t, err := Identify(ops)
		require.NoError(Te, err, "group %d", c.number)
		assert.Equal(Te, c.number, N.Number)
		inv := symop.MustInverse(t)
		set := map[symop.Key]bool{}
		for _, o := range ops {
			set[o.Key()] = true
		}
		for _, h := range N.Ops() {
			o := t.Mul(h).Mul(inv)
			o.T = snap(o.T)
			assert.True(Te, set[o.Key()], "group %d: %s", c.number, o.XYZ())
		}
	}
}

func TestSettings(Te *testing.T) {
	ss := Settings(14)
	require.Greater(Te, len(ss), 1)
	assert.Equal(Te, "", ss[0].Name)
	for i, s := range ss {
		assert.Equal(Te, i, s.Index)
		g, err := New(14, WithSetting(i))
		require.NoError(Te, err)
		assert.Equal(Te, 4, g.Order())
		assert.Equal(Te, "2/m", PointGroupOf(g.Ops()))
	}
	assert.Len(Te, Settings(1), 1)
	assert.Nil(Te, Settings(300))
	two := Settings(227)
	require.Len(Te, two, 2)
	assert.Contains(Te, two[1].Name, "origin 1")
	r := Settings(166)
	g, err := New(166, WithSetting(len(r)-1))
	require.NoError(Te, err)
	assert.Len(Te, g.Centering(), 1)
}
