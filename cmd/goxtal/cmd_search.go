/*
 * cmd_search.go, part of goXtal.
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
	"strconv"

	"github.com/spf13/cobra"

	xtal "github.com/rmera/goxtal"
	"github.com/rmera/goxtal/chemjson"
	"github.com/rmera/goxtal/supergroup"
	"github.com/rmera/goxtal/traj/stf"
)

func runSupergroup(cmd *cobra.Command, args []string) error {
	S, err := loadStructure(args[0], tols.EquivTol)
	if err != nil {
		return err
	}
	G, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid space group number %q", args[1])
	}
	res, err := supergroup.Search(S, G, supergroup.FromConfig(tols))
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(res.Solutions) == 0 {
		fmt.Fprintf(out, "no description of the structure in %d within %.3f A\n", G, tols.DTol)
		return nil
	}
	for i, s := range res.Solutions {
		fmt.Fprintf(out, "%d: %s\n", i, s)
	}
	if res.Truncated {
		fmt.Fprintln(out, "the search was truncated, raise the bounds to see every solution")
	}
	best := res.Solutions[0]
	fmt.Fprintln(out, "\nbest solution in the supergroup:")
	if err := emit(out, best.MakeInSupergroup()); err != nil {
		return err
	}
	if outPath == "" {
		return nil
	}
	if err := stf.WritePath(outPath, best.MakeInSubgroup(nFrames), precision); err != nil {
		return err
	}
	fmt.Fprintf(out, "transition path written to %s\n", outPath)
	return nil
}

func runSubgroup(cmd *cobra.Command, args []string) error {
	S, err := loadStructure(args[0], tols.EquivTol)
	if err != nil {
		return err
	}
	H, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid space group number %q", args[1])
	}
	subs := S.Subgroup(H, kind)
	if len(subs) == 0 {
		return fmt.Errorf("%d is not a maximal subgroup of %d", H, S.Group.Number)
	}
	out := cmd.OutOrStdout()
	for i, s := range subs {
		if i > 0 && !jsonOut {
			fmt.Fprintln(out, "---")
		}
		if err := emit(out, s); err != nil {
			return err
		}
	}
	return nil
}

//emit writes S as YAML, or as chemjson lines with --json.
func emit(out io.Writer, S *xtal.Structure) error {
	if !jsonOut {
		return writeStructure(out, S)
	}
	if err := chemjson.SendStructure(S, out); err != nil {
		return err
	}
	return nil
}
