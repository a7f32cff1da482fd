/*
 * interfaces.go, part of goXtal.
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
	"github.com/rmera/goxtal/lattice"
	"github.com/rmera/goxtal/symop"
	v3 "github.com/rmera/goxtal/v3"
)

//The structures are built and compared here, but molecules, geometry
//files and diffraction patterns come from elsewhere. These interfaces
//are what goXtal needs from them.

// Molecule is a rigid molecule that can occupy a site.
type Molecule interface {
	//Elements returns the element symbol of each atom.
	Elements() []string

	//Coords returns the Cartesian coordinates of the atoms, in Å, with
	//the centre of the molecule at the origin.
	Coords() *v3.Matrix

	//Volume returns the volume of the molecule, in Å³.
	Volume() float64
}

// MoleculeProvider looks up molecules by name.
type MoleculeProvider interface {
	Molecule(name string) (Molecule, error)
}

// Similarity compares two structures, for instance through their powder
// diffraction patterns. The score is in [0,1], and 1 means identical.
type Similarity interface {
	Similarity(a, b *Structure) (float64, error)
}

// GeometryReader gives the content of a unit cell, as read from a file.
type GeometryReader interface {
	Lattice() (*lattice.Lattice, error)

	//Species returns the species of each atom.
	Species() []string

	//Frac returns the fractional coordinates of each atom.
	Frac() []symop.Vec
}
