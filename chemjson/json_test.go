/*
 * json_test.go, part of goXtal.
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

package chemjson

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	xtal "github.com/rmera/goxtal"
	"github.com/rmera/goxtal/lattice"
	"github.com/rmera/goxtal/spg"
	"github.com/rmera/goxtal/symop"
)

func rocksalt() *xtal.Structure {
	g := spg.MustNew(225)
	l := lattice.FromPara(5.64, 5.64, 5.64, 90, 90, 90, lattice.Cubic)
	return xtal.FromPoints(g, l, []string{"Na", "Cl"}, []symop.Vec{{0, 0, 0}, {0.5, 0.5, 0.5}}, 1e-3)
}

func TestStructure(Te *testing.T) {
	S := rocksalt()
	var b bytes.Buffer
	require.Nil(Te, SendStructure(S, &b))
	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	require.Len(Te, lines, 3)
	assert.Contains(Te, lines[2], `"Wyckoff":"4b"`)

	S2, err := DecodeStructure(bufio.NewReader(&b), 1e-3)
	require.Nil(Te, err)
	assert.Equal(Te, S.Labels(), S2.Labels())
	assert.InDelta(Te, 5.64, S2.Lattice.C(), 1e-9)

	bad := []string{
		`{"Number":225,"Para":[1,2],"Sites":0}` + "\n",
		`{"Number":999,"Para":[4,4,4,90,90,90],"Sites":0}` + "\n",
		`{"Number":225,"Para":[4,4,4,90,90,90],"Sites":2}` + "\n" + `{"Species":"Na","Position":[0,0,0]}` + "\n",
		`{"Number":225,"Para":[4,4,4,90,90,90],"Sites":1}` + "\n" + `{"Species":"Na","Position":[0,0]}` + "\n",
	}
	for _, s := range bad {
		_, err := DecodeStructure(bufio.NewReader(strings.NewReader(s)), 1e-3)
		require.NotNil(Te, err, s)
		assert.True(Te, err.InStructure)
		var back Error
		require.NoError(Te, json.Unmarshal(err.Marshal(), &back))
		assert.True(Te, back.IsError)
	}
}

func TestPath(Te *testing.T) {
	S := rocksalt()
	var b bytes.Buffer
	require.Nil(Te, SendPath([]*xtal.Structure{S, S}, &b))
	r := bufio.NewReader(&b)
	line, err := r.ReadBytes('\n')
	require.NoError(Te, err)
	var info Info
	require.NoError(Te, json.Unmarshal(line, &info))
	assert.Equal(Te, 2, info.Structures)
	assert.Equal(Te, []int{225, 225}, info.Groups)
	assert.Equal(Te, []int{8, 8}, info.AtomsPerStructure)
	for i := 0; i < 2; i++ {
		c, jerr := DecodeCoords(r, info.AtomsPerStructure[i])
		require.Nil(Te, jerr)
		assert.Equal(Te, 8, c.Len())
	}
}

func TestOptions(Te *testing.T) {
	o, err := DecodeOptions(bufio.NewReader(strings.NewReader(`{"Groups":[221],"FloatOptions":[[0.5]]}` + "\n")))
	require.Nil(Te, err)
	assert.Equal(Te, []int{221}, o.Groups)
	_, err = DecodeOptions(bufio.NewReader(strings.NewReader("{\n")))
	require.NotNil(Te, err)
	assert.True(Te, err.InOptions)
}
