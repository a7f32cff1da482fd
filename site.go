/*
 * site.go, part of goXtal.
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
	"github.com/rmera/goxtal/spg"
	"github.com/rmera/goxtal/symop"
)

// Site is an occupied orbit: a Wyckoff position, a representative point
// and what sits on it. The implementations are AtomSite and MolSite.
type Site interface {
	//Position returns the representative point, in fractional coordinates.
	Position() symop.Vec

	Wyckoff() *spg.Wyckoff

	//Species returns the element of an atom, or the name of a molecule.
	Species() string

	//Orbit returns the images of the representative in the unit cell.
	Orbit() []symop.Vec

	//Atoms returns the element and fractional coordinates of every atom
	//that the site puts in the unit cell of the Cartesian matrix cell.
	Atoms(cell symop.Mat) ([]string, []symop.Vec, error)

	//moved returns a copy of the site at pos, on the position w.
	moved(pos symop.Vec, w *spg.Wyckoff) Site
}

// AtomSite is an atom on a Wyckoff position.
type AtomSite struct {
	Element string
	W       *spg.Wyckoff
	Pos     symop.Vec
}

// NewAtomSite returns the site of element on w. pos is replaced by the
// canonical representative of its orbit when it lies on w.
func NewAtomSite(element string, w *spg.Wyckoff, pos symop.Vec) *AtomSite {
	if c, ok := w.Search(pos); ok {
		pos = c
	}
	return &AtomSite{Element: element, W: w, Pos: pos.Wrap()}
}

func (A *AtomSite) Position() symop.Vec   { return A.Pos }
func (A *AtomSite) Wyckoff() *spg.Wyckoff { return A.W }
func (A *AtomSite) Species() string       { return A.Element }
func (A *AtomSite) Orbit() []symop.Vec    { return A.W.Orbit(A.Pos) }
func (A *AtomSite) String() string        { return A.Element + " " + A.W.Label() + " " + vecString(A.Pos) }

func (A *AtomSite) Atoms(cell symop.Mat) ([]string, []symop.Vec, error) {
	pts := A.Orbit()
	el := make([]string, len(pts))
	for i := range el {
		el[i] = A.Element
	}
	return el, pts, nil
}

func (A *AtomSite) moved(pos symop.Vec, w *spg.Wyckoff) Site {
	return NewAtomSite(A.Element, w, pos)
}

// Relocate returns a copy of s on the position w, at pos.
func Relocate(s Site, w *spg.Wyckoff, pos symop.Vec) Site {
	return s.moved(pos, w)
}

// MolSite is a rigid molecule centred on a Wyckoff position. Pos must lie
// on the representative of W, the subspace that W.Ops()[0] projects onto.
type MolSite struct {
	Name        string
	Mol         Molecule
	W           *spg.Wyckoff
	Pos         symop.Vec
	Orientation symop.Mat //Cartesian rotation applied to Mol.Coords()
}

// NewMolSite looks name up in p and returns the site of that molecule at
// pos, on w, with the given orientation.
func NewMolSite(p MoleculeProvider, name string, w *spg.Wyckoff, pos symop.Vec, orientation symop.Mat) (*MolSite, error) {
	m, err := p.Molecule(name)
	if err != nil {
		return nil, errDecorate(err, "NewMolSite")
	}
	return &MolSite{Name: name, Mol: m, W: w, Pos: pos.Wrap(), Orientation: orientation}, nil
}

func (M *MolSite) Position() symop.Vec   { return M.Pos }
func (M *MolSite) Wyckoff() *spg.Wyckoff { return M.W }
func (M *MolSite) Species() string       { return M.Name }
func (M *MolSite) Orbit() []symop.Vec    { return M.W.Orbit(M.Pos) }
func (M *MolSite) String() string        { return M.Name + " " + M.W.Label() + " " + vecString(M.Pos) }

// Atoms places a copy of the molecule on each point of the orbit. Each
// copy is rotated by the Cartesian form of an operation of the group that
// takes the representative to its centre.
func (M *MolSite) Atoms(cell symop.Mat) ([]string, []symop.Vec, error) {
	el := M.Mol.Elements()
	xyz := M.Mol.Coords()
	var els []string
	var pts []symop.Vec
	for _, p := range M.Orbit() {
		var c symop.Op
		found := false
		for _, o := range M.W.Group().Ops() {
			if symop.AreEquivalent(o.Operate(M.Pos), p, 1e-6) {
				var err error
				if c, err = o.Cartesian(cell); err != nil {
					return nil, nil, errDecorate(err, "MolSite.Atoms")
				}
				found = true
				break
			}
		}
		if !found {
			return nil, nil, lookupErrorf("MolSite.Atoms", "%s is not on the representative of %s", vecString(M.Pos), M.W.Label())
		}
		centre := symop.ToCartesian(p, cell)
		for i := 0; i < xyz.Len(); i++ {
			r := c.R.MulVec(M.Orientation.MulVec(xyz.Vec(i)))
			f, err := symop.ToFractional(centre.Add(r), cell)
			if err != nil {
				return nil, nil, errDecorate(err, "MolSite.Atoms")
			}
			els = append(els, el[i])
			pts = append(pts, f)
		}
	}
	return els, pts, nil
}

func (M *MolSite) moved(pos symop.Vec, w *spg.Wyckoff) Site {
	return &MolSite{Name: M.Name, Mol: M.Mol, W: w, Pos: pos.Wrap(), Orientation: M.Orientation}
}
