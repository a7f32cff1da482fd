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

package spg

import (
	"fmt"
	"io"
	"log"
	"os"
)

//Errors

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

// LookupError is returned when a group number, setting, Wyckoff letter or
// index does not exist.
type LookupError struct {
	*errorBase
}

// InfeasibleError is returned by the few functions that can't express an
// impossible request as an empty result.
type InfeasibleError struct {
	*errorBase
}

func lookupErrorf(caller, format string, a ...interface{}) error {
	return LookupError{&errorBase{fmt.Sprintf("goXtal/spg: "+format, a...), []string{caller}, true}}
}

func infeasibleErrorf(caller, format string, a ...interface{}) error {
	return InfeasibleError{&errorBase{fmt.Sprintf("goXtal/spg: "+format, a...), []string{caller}, false}}
}

// PanicMsg is the type of the messages used in spg panics, which signal
// programming errors.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNotFinite   = PanicMsg("goXtal/spg: generators don't close into a finite group")
	ErrWrongGroup  = PanicMsg("goXtal/spg: Wyckoff position used with a foreign group")
	ErrBadRelation = PanicMsg("goXtal/spg: relation with a non-integral transformation")
)

//Logging

var logger = log.New(os.Stderr, "goXtal/spg: ", 0)

// SetLogger sets the logger used for the package's warnings. A nil
// logger silences them.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard, "", 0)
	}
	logger = l
}
