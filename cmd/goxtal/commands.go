/*
 * commands.go, part of goXtal.
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
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	xtal "github.com/rmera/goxtal"
	"github.com/rmera/goxtal/config"
	"github.com/rmera/goxtal/supergroup"
	"github.com/rmera/goxtal/traj/stf"
)

var (
	configPath string
	verbose    bool
	tols       = config.Default()

	kind      string
	maxLayer  int
	outPath   string
	nFrames   int
	precision int
	jsonOut   bool

	rootCmd = &cobra.Command{
		Use:           "goxtal",
		Short:         "Space group, Wyckoff position and group-subgroup tools for crystal structures",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setLoggers(verbose)
			if configPath == "" {
				return nil
			}
			t, err := config.Load(configPath)
			if err != nil {
				return err
			}
			tols = t
			return nil
		},
	}
	groupCmd = &cobra.Command{
		Use:   "group [number]",
		Short: "Print the symmetry operations and Wyckoff positions of a space group",
		Args:  cobra.ExactArgs(1),
		RunE:  runGroup, // Defined in cmd_group.go
	}
	subgroupsCmd = &cobra.Command{
		Use:   "subgroups [number]",
		Short: "List the maximal subgroups of a space group",
		Args:  cobra.ExactArgs(1),
		RunE:  runSubgroups, // Defined in cmd_group.go
	}
	pathsCmd = &cobra.Command{
		Use:   "paths [G] [H]",
		Short: "List the chains of maximal subgroups from G down to H",
		Args:  cobra.ExactArgs(2),
		RunE:  runPaths, // Defined in cmd_group.go
	}
	supergroupCmd = &cobra.Command{
		Use:   "supergroup [structure.yaml] [G]",
		Short: "Search the description of a structure in the supergroup G",
		Args:  cobra.ExactArgs(2),
		RunE:  runSupergroup, // Defined in cmd_search.go
	}
	subgroupCmd = &cobra.Command{
		Use:   "subgroup [structure.yaml] [H]",
		Short: "Write the structure in the maximal subgroup H",
		Args:  cobra.ExactArgs(2),
		RunE:  runSubgroup, // Defined in cmd_search.go
	}
)

//setLoggers sends the library warnings to stderr when v is true, and
//silences them otherwise.
func setLoggers(v bool) {
	var l *log.Logger
	if v {
		l = log.New(os.Stderr, "goXtal: ", log.Ltime)
	} else {
		l = log.New(io.Discard, "", 0)
	}
	xtal.SetLogger(l)
	supergroup.SetLogger(l)
	stf.SetLogger(l)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML file with the tolerances and search bounds")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print warnings and search progress")

	subgroupsCmd.Flags().StringVar(&kind, "kind", "", "only subgroups of this kind (t or k)")
	subgroupCmd.Flags().StringVar(&kind, "kind", "", "only subgroups of this kind (t or k)")
	pathsCmd.Flags().IntVar(&maxLayer, "layers", 0, "maximum number of steps (0 uses the configured bound)")

	supergroupCmd.Flags().StringVarP(&outPath, "out", "o", "", "write the transition path of the best solution to this stf file")
	supergroupCmd.Flags().IntVar(&nFrames, "frames", 5, "number of frames in the transition path")
	supergroupCmd.Flags().IntVar(&precision, "prec", 4, "decimals kept in the stf file")

	supergroupCmd.Flags().BoolVar(&jsonOut, "json", false, "write the structures as chemjson lines instead of YAML")
	subgroupCmd.Flags().BoolVar(&jsonOut, "json", false, "write the structures as chemjson lines instead of YAML")

	rootCmd.AddCommand(groupCmd, subgroupsCmd, pathsCmd, supergroupCmd, subgroupCmd)
}
