/*
 * chain.go, part of goXtal.
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

package supergroup

import (
	xtal "github.com/rmera/goxtal"
	"github.com/rmera/goxtal/spg"
)

// Chain is a sequence of structures of increasing symmetry, each one a
// supergroup structure of the one before.
type Chain struct {
	Structures []*xtal.Structure //the starting structure first
	Solutions  []*Solution       //Solutions[i] takes Structures[i] to Structures[i+1]
}

// Last returns the structure of highest symmetry reached.
func (C *Chain) Last() *xtal.Structure { return C.Structures[len(C.Structures)-1] }

// ByPath raises S through the supergroups in path, one maximal step at a
// time, keeping the solution with the smallest displacement at each step.
// path does not include the group of S. It returns the chain built so far
// and false if some step has no solution, or if the total displacement
// along the chain goes above opts.DTol.
func ByPath(S *xtal.Structure, path []int, opts *Options) (*Chain, bool, error) {
	opts = opts.filled()
	step := *opts
	step.MaxLayer = 1
	C := &Chain{Structures: []*xtal.Structure{S}}
	total := 0.0
	for _, n := range path {
		res, err := Search(C.Last(), n, &step)
		if err != nil {
			return C, false, errDecorate(err, "supergroup.ByPath")
		}
		if len(res.Solutions) == 0 {
			return C, false, nil
		}
		sol := res.Solutions[0]
		if total += sol.MaxDisp; total > opts.DTol {
			return C, false, nil
		}
		C.Solutions = append(C.Solutions, sol)
		C.Structures = append(C.Structures, sol.MakeInSupergroup())
	}
	return C, true, nil
}

// ByGroup tries the paths of maximal supergroups from the group of S up
// to G, in the order of Group.SearchSupergroupPaths, and returns the first
// chain that reaches G. It returns false if none does.
func ByGroup(S *xtal.Structure, G int, opts *Options) (*Chain, bool, error) {
	opts = opts.filled()
	if _, err := spg.New(G); err != nil {
		return nil, false, errDecorate(err, "supergroup.ByGroup")
	}
	for _, path := range S.Group.SearchSupergroupPaths(G, opts.MaxLayer) {
		C, ok, err := ByPath(S, path, opts)
		if err != nil {
			return nil, false, errDecorate(err, "supergroup.ByGroup")
		}
		if ok {
			return C, true, nil
		}
	}
	return nil, false, nil
}
