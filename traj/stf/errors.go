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

package stf

import "strings"

//Errors

type decorator interface {
	Decorate(string) []string
}

//errDecorate decorates the error with the caller's name, if it
//can be decorated. Otherwise it returns it unchanged.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(decorator); ok {
		e.Decorate(caller)
	}
	return err
}

// Error is the general structure for stf trajectory errors.
type Error struct {
	message  string
	filename string
	deco     []string
	critical bool
}

func (err *Error) Error() string {
	if len(err.deco) == 0 {
		return err.message + " (" + err.filename + ")"
	}
	return err.message + " (" + err.filename + ") in " + strings.Join(err.deco, " ")
}

// Decorate adds deco to the call chain of the error and returns the chain.
// An empty deco just returns it.
func (E *Error) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

// FileName returns the name of the trajectory that caused the error.
func (err *Error) FileName() string { return err.filename }

// Format returns the trajectory format.
func (err *Error) Format() string { return "stf" }

// Critical returns true if the trajectory can't be read/written at all after the error.
func (err *Error) Critical() bool { return err.critical }

const (
	TrajUnIniRead  = "Traj object uninitialized to read"
	TrajUnIniWrite = "Traj object uninitialized to write"
	ReadError      = "Error reading frame"
	UnableToOpen   = "Unable to open file"
	NilCoordinates = "Given nil coordinates"
	WrongFormat    = "Wrong format in the STF file or frame"
	PathMismatch   = "Structures in the path don't have the same atoms"
)

// LastFrameError is returned by Next at the normal end of a trajectory.
type LastFrameError interface {
	error
	NormalLastFrameTermination() //does nothing, just to separate this interface from other errors
}

//lastFrameError implements LastFrameError
type lastFrameError struct {
	fileName string
	deco     []string
}

//NormalLastFrameTermination does nothing
func (E *lastFrameError) NormalLastFrameTermination() {}

func (E *lastFrameError) FileName() string { return E.fileName }

func (E *lastFrameError) Error() string { return "EOF" }

func (E *lastFrameError) Critical() bool { return false }

func (E *lastFrameError) Format() string { return "stf" }

func (E *lastFrameError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func newlastFrameError(filename string, caller string) *lastFrameError {
	return &lastFrameError{fileName: filename, deco: []string{caller}}
}
