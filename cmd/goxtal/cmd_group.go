/*
 * cmd_group.go, part of goXtal.
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
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rmera/goxtal/spg"
)

func groupArg(s string) (*spg.Group, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("invalid space group number %q", s)
	}
	return spg.New(n)
}

func runGroup(cmd *cobra.Command, args []string) error {
	g, err := groupArg(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d %s (%s) point group %s, %s\n", g.Number, g.Symbol, g.Hall, g.PointGroup, g.LatticeType)
	fmt.Fprintf(out, "polar %t centrosymmetric %t chiral %t\n", g.Polar, g.Centrosymmetric, g.Chiral)
	fmt.Fprintf(out, "\n%d operations\n", len(g.Ops()))
	for _, o := range g.Ops() {
		fmt.Fprintln(out, o.XYZ())
	}
	fmt.Fprintln(out, "\nWyckoff positions")
	for _, w := range g.Wyckoffs() {
		fmt.Fprintln(out, w)
	}
	return nil
}

func runSubgroups(cmd *cobra.Command, args []string) error {
	g, err := groupArg(args[0])
	if err != nil {
		return err
	}
	rels := g.MaxSubgroups()
	if kind != "" {
		rels = g.MaxSubgroupsOfKind(kind)
	}
	out := cmd.OutOrStdout()
	for _, r := range rels {
		fmt.Fprintf(out, "%-14s %-10s %s\n", r, r.Subgroup().Symbol, r.Transform.XYZ())
	}
	return nil
}

func runPaths(cmd *cobra.Command, args []string) error {
	g, err := groupArg(args[0])
	if err != nil {
		return err
	}
	h, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid space group number %q", args[1])
	}
	layers := maxLayer
	if layers <= 0 {
		layers = tols.Bounds.MaxLayer
	}
	paths := g.SearchSubgroupPaths(h, layers)
	if len(paths) == 0 {
		return fmt.Errorf("%d is not reached from %d in %d steps or less", h, g.Number, layers)
	}
	for _, p := range paths {
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}
	return nil
}
