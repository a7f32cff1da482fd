/*
 * errors.go, part of goXtal.
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
	"io"
	"log"
	"os"

	"github.com/rmera/goxtal/lattice"
	"github.com/rmera/goxtal/spg"
)

//Errors

// Decorator is implemented by the errors of all goXtal packages. Decorate
// adds the name of a caller, plus any extra information, to the trail of
// the error and returns the trail. An empty string just returns it.
type Decorator interface {
	Error() string
	Decorate(string) []string
}

// errorBase holds the message, the trail of callers and the criticality
// shared by the error kinds of the package.
type errorBase struct {
	message  string
	deco     []string
	critical bool
}

func (err *errorBase) Error() string { return err.message }

// Decorate adds dec to the trail of the error, if not empty, and returns
// the trail.
func (err *errorBase) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// Critical returns true if the error is critical.
func (err *errorBase) Critical() bool { return err.critical }

// LookupError is returned for a site or a group that does not belong to
// the structure it is used with.
type LookupError struct {
	*errorBase
}

// InfeasibleError is returned when a set of atoms can't be arranged as
// the orbits of a group.
type InfeasibleError struct {
	*errorBase
}

func lookupErrorf(caller, format string, a ...interface{}) error {
	return LookupError{&errorBase{fmt.Sprintf("goXtal: "+format, a...), []string{caller}, true}}
}

func infeasibleErrorf(caller, format string, a ...interface{}) error {
	return InfeasibleError{&errorBase{fmt.Sprintf("goXtal: "+format, a...), []string{caller}, false}}
}

//errDecorate adds caller to the trail of err, if err is a goXtal error.
//Other errors are returned unchanged.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(Decorator); ok {
		e.Decorate(caller)
	}
	return err
}

// PanicMsg is the type of the messages used in panics, which signal
// programming errors.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNilLattice = PanicMsg("goXtal: structure without a lattice")
	ErrShape      = PanicMsg("goXtal: species and coordinates of different lengths")
)

//Logging

var logger = log.New(os.Stderr, "goXtal: ", 0)

// SetLogger sets the logger for the warnings of goXtal and of its spg and
// lattice packages. A nil logger silences them.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard, "", 0)
	}
	logger = l
	spg.SetLogger(l)
	lattice.SetLogger(l)
}
