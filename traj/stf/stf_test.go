/*
 * stf_test.go, part of goXtal.
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

package stf

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	xtal "github.com/rmera/goxtal"
	"github.com/rmera/goxtal/lattice"
	"github.com/rmera/goxtal/spg"
	"github.com/rmera/goxtal/symop"
	v3 "github.com/rmera/goxtal/v3"
)

func rocksalt(a float64) *xtal.Structure {
	g := spg.MustNew(225)
	l := lattice.FromPara(a, a, a, 90, 90, 90, lattice.Cubic)
	return xtal.FromPoints(g, l, []string{"Na", "Cl"}, []symop.Vec{{0, 0, 0}, {0.5, 0.5, 0.5}}, 1e-3)
}

func TestWriteRead(Te *testing.T) {
	for _, ext := range []string{".stf", ".stz", ".stl", ".str"} {
		name := filepath.Join(Te.TempDir(), "traj"+ext)
		w, err := NewWriter(name, 2, map[string]string{"prec": "4", "title": "test"})
		require.NoError(Te, err)
		c := v3.FromVecs([]symop.Vec{{0.12346, -1.5, 2}, {3.25, 0, -0.00004}})
		require.NoError(Te, w.WNext(c, []float64{1, 0, 0, 0, 2, 0, 0, 0, 3}))
		require.NoError(Te, w.WNext(c))
		assert.Error(Te, w.WNext(v3.Zeros(3)))
		require.NoError(Te, w.Close())
		assert.Error(Te, w.WNext(c))

		r, head, err := New(name)
		require.NoError(Te, err, ext)
		assert.Equal(Te, "test", head["title"])
		assert.Equal(Te, "4", head["prec"])
		assert.Equal(Te, 2, r.Len())
		d := v3.Zeros(2)
		box := make([]float64, 9)
		require.NoError(Te, r.Next(d, box))
		assert.InDelta(Te, 0.1235, d.At(0, 0), 1e-9) //prec 4
		assert.InDelta(Te, 3.25, d.At(1, 0), 1e-9)
		assert.InDelta(Te, 0, d.At(1, 2), 1e-9)
		assert.Equal(Te, []float64{1, 0, 0, 0, 2, 0, 0, 0, 3}, box)
		require.NoError(Te, r.Next(nil))
		err = r.Next(d)
		require.Error(Te, err)
		_, ok := err.(LastFrameError)
		assert.True(Te, ok, ext)
		assert.False(Te, r.Readable())
	}
}

func TestNextConc(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "conc.stf")
	w, err := NewWriter(name, 1, nil)
	require.NoError(Te, err)
	for i := 0; i < 3; i++ {
		require.NoError(Te, w.WNext(v3.FromVecs([]symop.Vec{{float64(i), 0, 0}})))
	}
	require.NoError(Te, w.Close())
	r, _, err := New(name)
	require.NoError(Te, err)
	defer r.Close()
	frames := []*v3.Matrix{v3.Zeros(1), nil, v3.Zeros(1)}
	chans, err := r.NextConc(frames)
	require.NoError(Te, err)
	require.Len(Te, chans, 3)
	assert.InDelta(Te, 0, (<-chans[0]).At(0, 0), 1e-9)
	assert.Nil(Te, <-chans[1])
	assert.InDelta(Te, 2, (<-chans[2]).At(0, 0), 1e-9)
}

func TestPath(Te *testing.T) {
	path := []*xtal.Structure{rocksalt(5.5), rocksalt(5.6), rocksalt(5.7)}
	name := filepath.Join(Te.TempDir(), "path.stf")
	require.NoError(Te, WritePath(name, path, 5))
	P, err := ReadPath(name)
	require.NoError(Te, err)
	assert.Equal(Te, []int{225, 225, 225}, P.Groups)
	require.Len(Te, P.Frames, 3)
	require.Len(Te, P.Species, 8)
	el, f, err := path[2].Expand()
	require.NoError(Te, err)
	assert.Equal(Te, el, P.Species)
	c := path[2].Lattice.Cartesian(f)
	for i := 0; i < c.Len(); i++ {
		for j := 0; j < 3; j++ {
			assert.InDelta(Te, c.At(i, j), P.Frames[2].At(i, j), 1e-4)
		}
	}
	assert.InDelta(Te, 5.7, P.Boxes[2][0], 1e-4)
	assert.InDelta(Te, 0, P.Boxes[2][1], 1e-4)

	assert.Error(Te, WritePath(name, nil, 3))
	mixed := []*xtal.Structure{rocksalt(5.5), xtal.FromPoints(spg.MustNew(221), lattice.FromPara(4, 4, 4, 90, 90, 90, lattice.Cubic), []string{"Cs"}, []symop.Vec{{0, 0, 0}}, 1e-3)}
	assert.Error(Te, WritePath(name, mixed, 3))

	_, err = ReadPath(filepath.Join(Te.TempDir(), "missing.stf"))
	require.Error(Te, err)
	e, ok := err.(*Error)
	require.True(Te, ok)
	assert.Equal(Te, []string{"New", "ReadPath"}, e.Decorate(""))
}
