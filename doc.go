/*
 * doc.go, part of goXtal.
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


/*Package xtal is the main package of the goXtal library. It provides crystal
structures made of atomic and molecular sites on the Wyckoff positions of a
space group, and the functions to move them between a group and its
subgroups or supergroups, and to compare them.


	**goXtal Capabilities**


    Symmetry operations on fractional coordinates, parsed from and written
	as xyz strings (package symop).

    The 230 space groups, built from their Hall symbols, with alternative
	settings, Wyckoff positions and site symmetries (package spg).

    Lattices: parameters, validity under the constraints of each crystal
	system, reduction and transformation search (package lattice).

    Maximal t- and k-subgroups, group-subgroup paths, orbit splitting.

    Supergroup search: given a structure in H and a group G, finds the
	structures in G of which it is a small distortion (package supergroup).

    Transition paths between the low and high symmetry structures, stored in
	compressed trajectory files (package traj/stf).

    Structure comparison by RMS displacement, up to the choice of cell and
	origin.

Molecules, geometry files and diffraction patterns are not handled here.
The interfaces Molecule, MoleculeProvider, GeometryReader and Similarity
connect goXtal to programs that provide them.*/
package xtal
