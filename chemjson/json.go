/*
 * json.go, part of goXtal.
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

package chemjson

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	xtal "github.com/rmera/goxtal"
	"github.com/rmera/goxtal/lattice"
	"github.com/rmera/goxtal/spg"
	"github.com/rmera/goxtal/symop"
	v3 "github.com/rmera/goxtal/v3"
)

//A ready-to-serialize container for the group and cell of a structure.
type Cell struct {
	Number int
	Para   []float64 //A and degrees
	Sites  int       //how many Site lines follow
}

//A ready-to-serialize container for a site.
type Site struct {
	Species  string
	Wyckoff  string `json:",omitempty"` //ignored when decoding
	Position []float64
}

//A ready-to-serialize container for coordinates
type Coords struct {
	Coords []float64
}

//An easily JSON-serializable error type,
type Error struct {
	deco          []string
	IsError       bool //If this is false (no error) all the other fields will be at their zero-values.
	InOptions     bool //If error, was it in parsing the options?
	InStructure   bool //Was it in decoding a structure?
	InProcess     bool
	InPostProcess bool   //was it in preparing the output?
	Function      string //which go function gave the error
	Message       string //the error itself
}

//Error implements the error interface
func (J *Error) Error() string {
	return J.Message
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (J *Error) Decorate(dec string) []string {
	if dec == "" {
		return J.deco
	}
	J.deco = append(J.deco, dec)
	return J.deco
}

//Serializes the error. Panics on failure.
func (J *Error) Marshal() []byte {
	ret, err2 := json.Marshal(J)
	if err2 != nil {
		panic(strings.Join([]string{J.Error(), err2.Error()}, " - "))
	}
	return ret
}

//Information to be passed back to the calling program.
type Info struct {
	Structures        int
	Groups            []int
	AtomsPerStructure []int
	FloatInfo         [][]float64
	StringInfo        [][]string
	IntInfo           [][]int
}

//Send Marshals the info and writes to out, returns an error or nil
func (J *Info) Send(out io.Writer) *Error {
	enc := json.NewEncoder(out)
	if err := enc.Encode(J); err != nil {
		return NewError("postprocess", "Info.Send", err)
	}
	return nil
}

//Options passed from the calling external program
type Options struct {
	Groups        []int //target groups, if any
	StringOptions [][]string
	IntOptions    [][]int
	BoolOptions   [][]bool
	FloatOptions  [][]float64
}

//Takes an error and some additional info to create a json-marshal-ble error
func NewError(where, function string, err error) *Error {
	jerr := new(Error)
	jerr.IsError = true
	switch where {
	case "options":
		jerr.InOptions = true
	case "structure":
		jerr.InStructure = true
	case "postprocess":
		jerr.InPostProcess = true
	default:
		jerr.InProcess = true
	}
	jerr.Function = function
	jerr.Message = err.Error()
	return jerr
}

//DecodeOptions Decodes or unmarshals json options into an Options structure
func DecodeOptions(stdin *bufio.Reader) (*Options, *Error) {
	line, err := stdin.ReadBytes('\n')
	if err != nil {
		return nil, NewError("options", "DecodeOptions", err)
	}
	ret := new(Options)
	err = json.Unmarshal(line, ret)
	if err != nil {
		return nil, NewError("options", "DecodeOptions", err)
	}
	return ret, nil
}

//SendStructure writes S as a Cell line followed by one Site line per site.
func SendStructure(S *xtal.Structure, out io.Writer) *Error {
	const funcname = "SendStructure"
	enc := json.NewEncoder(out)
	e := S.Export()
	if err := enc.Encode(&Cell{Number: e.Number, Para: e.Para[:], Sites: len(e.Sites)}); err != nil {
		return NewError("postprocess", funcname, err)
	}
	for _, s := range e.Sites {
		p := s.Position
		if err := enc.Encode(&Site{Species: s.Species, Wyckoff: s.Label, Position: p[:]}); err != nil {
			return NewError("postprocess", funcname, err)
		}
	}
	return nil
}

//DecodeStructure reads a structure written by SendStructure. The Wyckoff
//position of each site is found again, within the fractional tolerance tol.
func DecodeStructure(stream *bufio.Reader, tol float64) (*xtal.Structure, *Error) {
	const funcname = "DecodeStructure"
	line, err := stream.ReadBytes('\n')
	if err != nil {
		return nil, NewError("structure", funcname, err)
	}
	c := new(Cell)
	if err = json.Unmarshal(line, c); err != nil {
		return nil, NewError("structure", funcname, err)
	}
	if len(c.Para) != 6 {
		return nil, NewError("structure", funcname, fmt.Errorf("%d lattice parameters given, 6 expected", len(c.Para)))
	}
	g, err := spg.New(c.Number)
	if err != nil {
		return nil, NewError("structure", funcname, err)
	}
	els := make([]string, 0, c.Sites)
	pts := make([]symop.Vec, 0, c.Sites)
	for i := 0; i < c.Sites; i++ {
		line, err := stream.ReadBytes('\n')
		if err != nil {
			return nil, NewError("structure", funcname, fmt.Errorf("Error reading site %d: %s", i, err.Error()))
		}
		s := new(Site)
		if err = json.Unmarshal(line, s); err != nil {
			return nil, NewError("structure", funcname, err)
		}
		if len(s.Position) != 3 {
			return nil, NewError("structure", funcname, fmt.Errorf("site %d has %d coordinates", i, len(s.Position)))
		}
		els = append(els, s.Species)
		pts = append(pts, symop.Vec{s.Position[0], s.Position[1], s.Position[2]})
	}
	p := c.Para
	l := lattice.FromPara(p[0], p[1], p[2], p[3], p[4], p[5], g.LatticeType)
	return xtal.FromPoints(g, l, els, pts, tol), nil
}

//SendPath writes an Info line with the groups and sizes of the structures
//in path, and then the Cartesian coordinates of each one of them.
func SendPath(path []*xtal.Structure, out io.Writer) *Error {
	const funcname = "SendPath"
	info := &Info{Structures: len(path)}
	frames := make([]*v3.Matrix, 0, len(path))
	for _, s := range path {
		el, f, err := s.Expand()
		if err != nil {
			return NewError("process", funcname, err)
		}
		info.Groups = append(info.Groups, s.Group.Number)
		info.AtomsPerStructure = append(info.AtomsPerStructure, len(el))
		info.StringInfo = append(info.StringInfo, el)
		frames = append(frames, s.Lattice.Cartesian(f))
	}
	if err := info.Send(out); err != nil {
		return err
	}
	enc := json.NewEncoder(out)
	for _, c := range frames {
		if err := EncodeCoords(c, enc); err != nil {
			return err
		}
	}
	return nil
}

//Decodecoords decodes streams from a bufio.Reader containing atomnumber JSON Coords lines into a v3.Matrix with atomnumber rows.
func DecodeCoords(stream *bufio.Reader, atomnumber int) (*v3.Matrix, *Error) {
	const funcname = "DecodeCoords"
	rawcoords := make([]float64, 0, 3*atomnumber)
	for i := 0; i < atomnumber; i++ {
		line, err := stream.ReadBytes('\n')
		if err != nil {
			break
		}
		ctemp := new(Coords)
		if err = json.Unmarshal(line, ctemp); err != nil {
			return nil, NewError("structure", funcname, err)
		}
		rawcoords = append(rawcoords, ctemp.Coords...)
	}
	coords, err := v3.NewMatrix(rawcoords)
	if err != nil {
		return nil, NewError("structure", funcname, err)
	}
	return coords, nil
}

//Encodes a set of coordinates into JSON, one line per point.
func EncodeCoords(coords *v3.Matrix, enc *json.Encoder) *Error {
	c := new(Coords)
	for i := 0; i < coords.Len(); i++ {
		v := coords.Vec(i)
		c.Coords = v[:]
		if err := enc.Encode(c); err != nil {
			return NewError("postprocess", "chemjson.EncodeCoords", err)
		}
	}
	return nil
}
