/*
 * input.go, part of goXtal.
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
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	xtal "github.com/rmera/goxtal"
	"github.com/rmera/goxtal/lattice"
	"github.com/rmera/goxtal/spg"
	"github.com/rmera/goxtal/symop"
)

// structureFile is the YAML description of a structure: the space group
// number, the lattice parameters (A and degrees) and one representative
// point per site. The Wyckoff position of each point is found by the
// program, so Wyckoff is only informative on input.
type structureFile struct {
	Number int         `yaml:"number"`
	Cell   [6]float64  `yaml:"cell"`
	Sites  []siteEntry `yaml:"sites"`
}

type siteEntry struct {
	Species  string     `yaml:"species"`
	Wyckoff  string     `yaml:"wyckoff,omitempty"`
	Position [3]float64 `yaml:"position,flow"`
}

func parseStructure(data []byte, tol float64) (*xtal.Structure, error) {
	var f structureFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("can't parse structure: %w", err)
	}
	if len(f.Sites) == 0 {
		return nil, fmt.Errorf("structure without sites")
	}
	g, err := spg.New(f.Number)
	if err != nil {
		return nil, err
	}
	c := f.Cell
	l := lattice.FromPara(c[0], c[1], c[2], c[3], c[4], c[5], g.LatticeType)
	if !l.IsValid() {
		return nil, fmt.Errorf("invalid cell %v", c)
	}
	els := make([]string, len(f.Sites))
	pts := make([]symop.Vec, len(f.Sites))
	for i, s := range f.Sites {
		els[i] = s.Species
		pts[i] = s.Position
	}
	return xtal.FromPoints(g, l, els, pts, tol), nil
}

func loadStructure(path string, tol float64) (*xtal.Structure, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseStructure(data, tol)
}

func writeStructure(w io.Writer, S *xtal.Structure) error {
	e := S.Export()
	f := structureFile{Number: e.Number, Cell: e.Para}
	for _, s := range e.Sites {
		f.Sites = append(f.Sites, siteEntry{Species: s.Species, Wyckoff: s.Label, Position: s.Position})
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return err
	}
	return enc.Close()
}
