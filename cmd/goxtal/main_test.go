/*
 * main_test.go, part of goXtal.
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

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rocksaltYAML = `
number: 225
cell: [5.64, 5.64, 5.64, 90, 90, 90]
sites:
  - species: Na
    position: [0, 0, 0]
  - species: Cl
    position: [0.5, 0.5, 0.5]
`

func execute(Te *testing.T, args ...string) (string, error) {
	Te.Helper()
	kind = ""
	jsonOut = false
	var b bytes.Buffer
	rootCmd.SetOut(&b)
	rootCmd.SetErr(&b)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return b.String(), err
}

func TestParseStructure(Te *testing.T) {
	S, err := parseStructure([]byte(rocksaltYAML), 1e-3)
	require.NoError(Te, err)
	assert.Equal(Te, []string{"Cl:4b", "Na:4a"}, S.Labels())
	assert.Equal(Te, map[string]int{"Na": 4, "Cl": 4}, S.Composition())

	var b bytes.Buffer
	require.NoError(Te, writeStructure(&b, S))
	assert.Contains(Te, b.String(), "wyckoff: 4b")
	S2, err := parseStructure(b.Bytes(), 1e-3)
	require.NoError(Te, err)
	assert.Equal(Te, S.Labels(), S2.Labels())
	assert.InDelta(Te, 5.64, S2.Lattice.A(), 1e-9)

	for _, bad := range []string{
		"number: 300\ncell: [1, 1, 1, 90, 90, 90]\nsites:\n  - species: Na\n    position: [0, 0, 0]\n",
		"number: 225\ncell: [5, 5, 5, 90, 90, 90]\n",
		"number: [225\n",
	} {
		_, err := parseStructure([]byte(bad), 1e-3)
		assert.Error(Te, err, bad)
	}
}

func TestCommands(Te *testing.T) {
	out, err := execute(Te, "group", "221")
	require.NoError(Te, err)
	assert.Contains(Te, out, "Pm-3m")
	assert.Contains(Te, out, "48 operations")

	out, err = execute(Te, "subgroups", "221", "--kind", "t")
	require.NoError(Te, err)
	assert.Contains(Te, out, "221->123")
	assert.NotContains(Te, out, "k2")

	out, err = execute(Te, "paths", "221", "123", "--layers", "1")
	require.NoError(Te, err)
	assert.Contains(Te, out, "123]")

	_, err = execute(Te, "group", "abc")
	assert.Error(Te, err)

	dir := Te.TempDir()
	name := filepath.Join(dir, "rocksalt.yaml")
	require.NoError(Te, os.WriteFile(name, []byte(rocksaltYAML), 0o644))
	out, err = execute(Te, "subgroup", name, "139")
	require.NoError(Te, err)
	assert.Contains(Te, out, "number: 139")
	out, err = execute(Te, "subgroup", name, "139", "--json")
	require.NoError(Te, err)
	assert.Contains(Te, out, `"Number":139`)

	conf := filepath.Join(dir, "tol.yaml")
	require.NoError(Te, os.WriteFile(conf, []byte("d_tol: 0.5\n"), 0o644))
	_, err = execute(Te, "--config", conf, "group", "1")
	require.NoError(Te, err)
	assert.InDelta(Te, 0.5, tols.DTol, 1e-12)
	_, err = execute(Te, "--config", filepath.Join(dir, "missing.yaml"), "group", "1")
	assert.Error(Te, err)
}
