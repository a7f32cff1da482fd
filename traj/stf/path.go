/*
 * path.go, part of goXtal.
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
	"strconv"
	"strings"

	xtal "github.com/rmera/goxtal"
	v3 "github.com/rmera/goxtal/v3"
)

// Path is a transition path read from an stf file.
type Path struct {
	Species []string
	Frames  []*v3.Matrix //Cartesian coordinates
	Boxes   [][]float64  //The a, b and c vectors of each frame, concatenated.
	Groups  []int        //Space group of each frame, if recorded.
}

// WritePath writes each structure of path as one frame of the trajectory
// name, keeping prec decimals. The expanded structures must have the
// same species in the same order.
func WritePath(name string, path []*xtal.Structure, prec int) error {
	if len(path) == 0 {
		return &Error{"Empty path", name, []string{"WritePath"}, true}
	}
	var species []string
	frames := make([]*v3.Matrix, 0, len(path))
	groups := make([]string, 0, len(path))
	for i, s := range path {
		el, f, err := s.Expand()
		if err != nil {
			return errDecorate(err, "WritePath")
		}
		if i == 0 {
			species = el
		} else if !sameSpecies(species, el) {
			return &Error{PathMismatch + ": frame " + strconv.Itoa(i), name, []string{"WritePath"}, true}
		}
		frames = append(frames, s.Lattice.Cartesian(f))
		groups = append(groups, strconv.Itoa(s.Group.Number))
	}
	header := map[string]string{
		"prec":    strconv.Itoa(prec),
		"species": strings.Join(species, ","),
		"groups":  strings.Join(groups, ","),
	}
	w, err := NewWriter(name, len(species), header)
	if err != nil {
		return errDecorate(err, "WritePath")
	}
	for i, f := range frames {
		m := path[i].Lattice.Matrix()
		box := make([]float64, 0, 9)
		for _, r := range m {
			box = append(box, r[:]...)
		}
		if err := w.WNext(f, box); err != nil {
			w.Close()
			return errDecorate(err, "WritePath")
		}
	}
	return errDecorate(w.Close(), "WritePath")
}

// ReadPath reads a transition path written by WritePath.
func ReadPath(name string) (*Path, error) {
	r, head, err := New(name)
	if err != nil {
		return nil, errDecorate(err, "ReadPath")
	}
	defer r.Close()
	P := &Path{}
	if s := head["species"]; s != "" {
		P.Species = strings.Split(s, ",")
	}
	if len(P.Species) != r.Len() {
		return nil, &Error{WrongFormat + ": species don't match the number of atoms", name, []string{"ReadPath"}, true}
	}
	if g := head["groups"]; g != "" {
		for _, v := range strings.Split(g, ",") {
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, &Error{WrongFormat + ": bad group number " + v, name, []string{"ReadPath"}, true}
			}
			P.Groups = append(P.Groups, n)
		}
	}
	for {
		c := v3.Zeros(r.Len())
		box := make([]float64, 9)
		err := r.Next(c, box)
		if err != nil {
			if _, ok := err.(LastFrameError); ok {
				break
			}
			return nil, errDecorate(err, "ReadPath")
		}
		P.Frames = append(P.Frames, c)
		P.Boxes = append(P.Boxes, box)
	}
	return P, nil
}

func sameSpecies(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
