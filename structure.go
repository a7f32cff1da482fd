/*
 * structure.go, part of goXtal.
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
	"fmt"
	"sort"
	"strings"

	"github.com/rmera/goxtal/lattice"
	"github.com/rmera/goxtal/spg"
	"github.com/rmera/goxtal/symop"
	v3 "github.com/rmera/goxtal/v3"
)

// Structure is a crystal structure: a group, in its standard setting, a
// lattice, and one site per occupied orbit. The methods that transform a
// structure return new values and leave the receiver alone.
type Structure struct {
	Group   *spg.Group
	Lattice *lattice.Lattice
	Sites   []Site
}

// New returns a structure with the given sites. All of them must be on
// positions of g.
func New(g *spg.Group, l *lattice.Lattice, sites ...Site) (*Structure, error) {
	if l == nil {
		panic(ErrNilLattice)
	}
	for i, s := range sites {
		if s.Wyckoff().Group() != g {
			return nil, lookupErrorf("New", "site %d is on %s of group %d, not of group %d", i, s.Wyckoff().Label(), s.Wyckoff().Group().Number, g.Number)
		}
	}
	return &Structure{Group: g, Lattice: l, Sites: sites}, nil
}

// FromPoints puts one atom of each element on the corresponding point of
// pts. Each point is assigned the most special position of g within the
// fractional tolerance tol, and moved onto it.
func FromPoints(g *spg.Group, l *lattice.Lattice, elements []string, pts []symop.Vec, tol float64) *Structure {
	if len(elements) != len(pts) {
		panic(ErrShape)
	}
	S := &Structure{Group: g, Lattice: l}
	for i, p := range pts {
		w := g.WyckoffFromXYZ(p, tol)
		if w == nil {
			w = g.Wyckoffs()[0]
		} else {
			p = w.Project(p, l.Matrix())
		}
		S.Sites = append(S.Sites, NewAtomSite(elements[i], w, p))
	}
	return S
}

// FromGeometry builds a structure in g from the full content of a unit
// cell. The atoms of each species must make complete orbits of g, within
// the fractional tolerance tol.
func FromGeometry(r GeometryReader, g *spg.Group, tol float64) (*Structure, error) {
	l, err := r.Lattice()
	if err != nil {
		return nil, errDecorate(err, "FromGeometry")
	}
	species, frac := r.Species(), r.Frac()
	if len(species) != len(frac) {
		panic(ErrShape)
	}
	S := &Structure{Group: g, Lattice: l}
	used := make([]bool, len(frac))
	for i, p := range frac {
		if used[i] {
			continue
		}
		w := g.WyckoffFromXYZ(p, tol)
		if w == nil {
			w = g.Wyckoffs()[0]
		}
		p = w.Project(p, l.Matrix())
		n := 0
		for j, q := range frac {
			if used[j] || species[j] != species[i] {
				continue
			}
			for _, o := range g.Ops() {
				if symop.AreEquivalent(o.Operate(p), q, tol) {
					used[j] = true
					n++
					break
				}
			}
		}
		if n != w.Multiplicity {
			return nil, infeasibleErrorf("FromGeometry", "%d %s atoms around atom %d, but position %s of group %d holds %d", n, species[i], i, w.Label(), g.Number, w.Multiplicity)
		}
		S.Sites = append(S.Sites, NewAtomSite(species[i], w, p))
	}
	return S, nil
}

// Copy returns a copy of S. The group and the molecules are shared.
func (S *Structure) Copy() *Structure {
	R := &Structure{Group: S.Group, Lattice: S.Lattice.Copy(), Sites: make([]Site, len(S.Sites))}
	for i, s := range S.Sites {
		R.Sites[i] = s.moved(s.Position(), s.Wyckoff())
	}
	return R
}

// Expand returns the element and the fractional coordinates of every atom
// in the unit cell.
func (S *Structure) Expand() ([]string, *v3.Matrix, error) {
	var els []string
	var pts []symop.Vec
	for _, s := range S.Sites {
		e, p, err := s.Atoms(S.Lattice.Matrix())
		if err != nil {
			return nil, nil, errDecorate(err, "Expand")
		}
		els = append(els, e...)
		pts = append(pts, p...)
	}
	return els, v3.FromVecs(pts), nil
}

// Composition returns the number of atoms, or molecules, of each species
// in the unit cell.
func (S *Structure) Composition() map[string]int {
	ret := make(map[string]int)
	for _, s := range S.Sites {
		ret[s.Species()] += s.Wyckoff().Multiplicity
	}
	return ret
}

// Occupied returns the positions occupied in S, in the order of the sites.
func (S *Structure) Occupied() []*spg.Wyckoff {
	ret := make([]*spg.Wyckoff, len(S.Sites))
	for i, s := range S.Sites {
		ret[i] = s.Wyckoff()
	}
	return ret
}

// Valid returns true if the lattice is valid, and every site belongs to
// the group of S and lies on its position within the fractional
// tolerance tol.
func (S *Structure) Valid(tol float64) bool {
	if S.Lattice == nil || !S.Lattice.IsValid() {
		return false
	}
	for _, s := range S.Sites {
		w := s.Wyckoff()
		if w.Group() != S.Group || !w.Contains(s.Position(), tol) {
			return false
		}
	}
	return true
}

// ExportSite is a site as exported: the letter of its position, its
// species and its representative point.
type ExportSite struct {
	Letter   string
	Label    string
	Species  string
	Position symop.Vec
}

// Export is a structure reduced to plain values, ready to be written in
// a file format by other programs.
type Export struct {
	Number int
	Para   [6]float64 //Å and degrees
	Sites  []ExportSite
}

// Export returns the plain description of S.
func (S *Structure) Export() Export {
	ret := Export{Number: S.Group.Number, Para: S.Lattice.ParaDeg()}
	for _, s := range S.Sites {
		w := s.Wyckoff()
		ret.Sites = append(ret.Sites, ExportSite{Letter: w.Letter, Label: w.Label(), Species: s.Species(), Position: s.Position()})
	}
	return ret
}

func (E Export) String() string {
	var b strings.Builder
	p := E.Para
	fmt.Fprintf(&b, "%d %.4f %.4f %.4f %.2f %.2f %.2f\n", E.Number, p[0], p[1], p[2], p[3], p[4], p[5])
	for _, s := range E.Sites {
		fmt.Fprintf(&b, "%-4s %-4s %s\n", s.Label, s.Species, vecString(s.Position))
	}
	return b.String()
}

// Labels returns the sorted species:label pairs of the sites of S, such
// as "O:4e". Two descriptions of a structure with the same labels use the
// same Wyckoff positions.
func (S *Structure) Labels() []string {
	ret := make([]string, len(S.Sites))
	for i, s := range S.Sites {
		ret[i] = s.Species() + ":" + s.Wyckoff().Label()
	}
	sort.Strings(ret)
	return ret
}

func (S *Structure) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%d)\n%s\n", S.Group.Symbol, S.Group.Number, S.Lattice)
	for _, s := range S.Sites {
		fmt.Fprintf(&b, "%-4s %-4s %s\n", s.Species(), s.Wyckoff().Label(), vecString(s.Position()))
	}
	return b.String()
}

func vecString(v symop.Vec) string {
	return fmt.Sprintf("%8.5f %8.5f %8.5f", v[0], v[1], v[2])
}
