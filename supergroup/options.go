/*
 * options.go, part of goXtal.
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
	"io"
	"log"
	"os"

	"github.com/rmera/goxtal/config"
)

// Options bounds a supergroup search.
type Options struct {
	DTol         float64 //Å, largest displacement of an atom
	MaxSolutions int     //the search stops after this many solutions
	MaxPerG      int     //largest number of relations (with origin choices) tried
	MaxLayer     int     //longest chain of maximal subgroups
}

// FromConfig returns the options set in t. Fields not set in t take the
// default values.
func FromConfig(t *config.Tolerances) *Options {
	t = t.Copy().Fill()
	return &Options{DTol: t.DTol, MaxSolutions: t.Bounds.MaxSolutions, MaxPerG: t.Bounds.MaxPerG, MaxLayer: t.Bounds.MaxLayer}
}

// DefaultOptions returns the options of config.Default.
func DefaultOptions() *Options {
	return FromConfig(config.Default())
}

//filled returns a copy of O with the zero fields set to their defaults.
//A nil O gives the defaults.
func (O *Options) filled() *Options {
	d := DefaultOptions()
	if O == nil {
		return d
	}
	r := *O
	if r.DTol <= 0 {
		r.DTol = d.DTol
	}
	if r.MaxSolutions <= 0 {
		r.MaxSolutions = d.MaxSolutions
	}
	if r.MaxPerG <= 0 {
		r.MaxPerG = d.MaxPerG
	}
	if r.MaxLayer <= 0 {
		r.MaxLayer = d.MaxLayer
	}
	return &r
}

var logger = log.New(os.Stderr, "goXtal/supergroup: ", 0)

// SetLogger sets the logger for the package's warnings. A nil logger
// silences them.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard, "", 0)
	}
	logger = l
}

type decorator interface {
	Decorate(string) []string
}

func errDecorate(err error, caller string) error {
	if e, ok := err.(decorator); ok {
		e.Decorate(caller)
	}
	return err
}
