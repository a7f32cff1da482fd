/*
 * stf.go, part of goXtal.
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
	"bufio"
	"compress/flate"
	"compress/gzip"
	"compress/lzw"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"

	v3 "github.com/rmera/goxtal/v3"
)

const (
	lzwLitwidth int = 8
	defaultPrec     = 3
)

var logger = log.New(os.Stderr, "goXtal/stf: ", 0)

// SetLogger sets the logger for the package's warnings. A nil logger
// silences them.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard, "", 0)
	}
	logger = l
}

//Write!

// StfW writes an stf trajectory.
type StfW struct {
	f         *os.File
	h         io.WriteCloser
	natoms    int
	filename  string
	writeable bool
	prec      int
}

// Close flushes and closes the trajectory. It can't be used after that.
func (S *StfW) Close() error {
	if S == nil || !S.writeable {
		return nil
	}
	S.writeable = false
	err := S.h.Close()
	if err2 := S.f.Close(); err == nil {
		err = err2
	}
	if err != nil {
		return &Error{err.Error(), S.filename, []string{"Close"}, true}
	}
	return nil
}

// Len returns the number of atoms per frame.
func (S *StfW) Len() int {
	return S.natoms
}

// WNext writes a frame. If box is given and has at least 9 elements, they
// are written as the cell vectors of the frame.
func (S *StfW) WNext(coord *v3.Matrix, box ...[]float64) error {
	if !S.writeable {
		return &Error{TrajUnIniWrite, S.filename, []string{"WNext"}, true}
	}
	if coord == nil {
		return &Error{NilCoordinates, S.filename, []string{"WNext"}, true}
	}
	v := coord.Len()
	if v != S.natoms {
		return &Error{fmt.Sprintf("%d coordinates given, but %d expected", v, S.natoms), S.filename, []string{"WNext"}, true}
	}
	w := bufio.NewWriter(S.h)
	for i := 0; i < v; i++ {
		w.WriteString(coordsEncode(coord.Vec(i), S.prec))
	}
	if len(box) > 0 && len(box[0]) >= 9 {
		b := box[0]
		w.WriteString("*")
		for _, x := range b[:9] {
			w.WriteString(" " + strconv.FormatFloat(x, 'f', S.prec+2, 64))
		}
		w.WriteString("\n")
	} else {
		w.WriteString("*\n")
	}
	if err := w.Flush(); err != nil {
		return &Error{err.Error(), S.filename, []string{"WNext"}, true}
	}
	return nil
}

//compressor returns the compressed writer for the file name: lzw for
//names ending in 'l', gzip for 'z', flate for 'r' and zstd otherwise.
func compressor(name string, level int) func(io.Writer) (io.WriteCloser, error) {
	switch strings.ToLower(name)[len(name)-1] {
	case 'l':
		return func(a io.Writer) (io.WriteCloser, error) { return lzw.NewWriter(a, lzw.MSB, lzwLitwidth), nil }
	case 'z':
		return func(a io.Writer) (io.WriteCloser, error) { return gzip.NewWriterLevel(a, level) }
	case 'r':
		return func(a io.Writer) (io.WriteCloser, error) { return flate.NewWriter(a, level) }
	default:
		return func(a io.Writer) (io.WriteCloser, error) {
			return zstd.NewWriter(a, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)))
		}
	}
}

// NewWriter creates the trajectory name, for natoms atoms per frame, and
// writes the header. The "prec" key of the header sets the number of
// decimals kept for the coordinates. The compression level defaults to 9.
func NewWriter(name string, natoms int, header map[string]string, compressionLevel ...int) (*StfW, error) {
	level := 9
	if len(compressionLevel) > 0 {
		level = compressionLevel[0]
	}
	S := &StfW{natoms: natoms, filename: name, prec: defaultPrec}
	var err error
	S.f, err = os.Create(name)
	if err != nil {
		return nil, &Error{UnableToOpen + ": " + err.Error(), name, []string{"NewWriter"}, true}
	}
	S.h, err = compressor(name, level)(S.f)
	if err != nil {
		S.f.Close()
		return nil, &Error{"Can't start the compressor: " + err.Error(), name, []string{"NewWriter"}, true}
	}
	S.writeable = true
	if p, ok := header["prec"]; ok {
		if prec, err := strconv.Atoi(p); err == nil && prec >= 0 {
			S.prec = prec
		} else {
			logger.Printf("Invalid precision %q for trajectory %s. Will use the default", p, name)
		}
	}
	keys := make([]string, 0, len(header))
	for k := range header {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var hs strings.Builder
	for _, k := range keys {
		if k == "prec" {
			continue
		}
		fmt.Fprintf(&hs, "%s=%s\n", k, header[k])
	}
	fmt.Fprintf(&hs, "prec=%d\n** %d\n", S.prec, S.natoms)
	if _, err := S.h.Write([]byte(hs.String())); err != nil {
		S.Close()
		return nil, &Error{"Can't write the header: " + err.Error(), name, []string{"NewWriter"}, true}
	}
	return S, nil
}

func coordsEncode(f [3]float64, prec int) string {
	p := math.Pow(10.0, float64(prec))
	return fmt.Sprintf("%d %d %d\n", int64(math.RoundToEven(f[0]*p)), int64(math.RoundToEven(f[1]*p)), int64(math.RoundToEven(f[2]*p)))
}

//Read!

// StfR reads an stf trajectory.
type StfR struct {
	f        *os.File
	dec      io.ReadCloser
	h        *bufio.Reader
	natoms   int
	filename string
	prec     int
	readable bool
}

//*zstd.Decoder has a Close method without a return value.
type stdql struct {
	*zstd.Decoder
}

func (s stdql) Close() error {
	s.Decoder.Close()
	return nil
}

func decompressor(name string) func(io.Reader) (io.ReadCloser, error) {
	switch strings.ToLower(name)[len(name)-1] {
	case 'l':
		return func(a io.Reader) (io.ReadCloser, error) { return lzw.NewReader(a, lzw.MSB, lzwLitwidth), nil }
	case 'z':
		return func(a io.Reader) (io.ReadCloser, error) { return gzip.NewReader(a) }
	case 'r':
		return func(a io.Reader) (io.ReadCloser, error) { return flate.NewReader(a), nil }
	default:
		return func(a io.Reader) (io.ReadCloser, error) {
			r, err := zstd.NewReader(a)
			if err != nil {
				return nil, err
			}
			return stdql{r}, nil
		}
	}
}

// New opens an stf trajectory for reading, and returns the handle and the
// metadata in the header.
func New(name string) (*StfR, map[string]string, error) {
	S := &StfR{natoms: -1, filename: name, prec: defaultPrec}
	var err error
	S.f, err = os.Open(name)
	if err != nil {
		return nil, nil, &Error{UnableToOpen + ": " + err.Error(), name, []string{"New"}, true}
	}
	S.dec, err = decompressor(name)(bufio.NewReader(S.f))
	if err != nil {
		S.f.Close()
		return nil, nil, &Error{"Can't read header " + err.Error(), name, []string{"New"}, true}
	}
	S.h = bufio.NewReader(S.dec)
	m := make(map[string]string)
	for {
		str, err := S.h.ReadString('\n')
		if err != nil {
			S.close()
			return nil, nil, &Error{"Can't read header " + err.Error(), name, []string{"New"}, true}
		}
		str = strings.TrimSuffix(str, "\n")
		if strings.HasPrefix(str, "**") {
			nat := strings.Fields(str)
			if len(nat) < 2 {
				S.close()
				return nil, nil, &Error{fmt.Sprintf("Can't read atom number from '%s'", str), name, []string{"New"}, true}
			}
			if S.natoms, err = strconv.Atoi(nat[1]); err != nil {
				S.close()
				return nil, nil, &Error{fmt.Sprintf("Can't read atom number from '%s': %s", nat[1], err.Error()), name, []string{"New"}, true}
			}
			break
		}
		kv := strings.SplitN(str, "=", 2)
		if len(kv) != 2 {
			S.close()
			return nil, nil, &Error{"Malformed header line " + str, name, []string{"New"}, true}
		}
		m[kv[0]] = kv[1]
	}
	if p, ok := m["prec"]; ok {
		if prec, err := strconv.Atoi(p); err == nil && prec >= 0 {
			S.prec = prec
		} else {
			logger.Printf("Invalid precision %q for trajectory %s. Will assume the default", p, name)
		}
	}
	S.readable = true
	return S, m, nil
}

// Readable returns true if Next can be called on S.
func (S *StfR) Readable() bool {
	return S.readable
}

func coordsDecode(str string, temp *[3]float64, prec int) error {
	p := math.Pow(10.0, float64(prec))
	s := strings.Fields(str)
	if len(s) != 3 {
		return fmt.Errorf("Ill formated coordinates line in stf: %d fields: %s", len(s), str)
	}
	for i, v := range s {
		f, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("Can't parse coordinate %d (%s). Error: %s", i, v, err.Error())
		}
		temp[i] = float64(f) / p
	}
	return nil
}

// Next puts the coordinates of the next frame in c and, if given and
// present in the file, the cell vectors in box. A nil c skips the frame.
// At the end of the trajectory it returns an error that implements
// LastFrameError.
func (S *StfR) Next(c *v3.Matrix, box ...[]float64) error {
	if !S.readable {
		return &Error{TrajUnIniRead, S.filename, []string{"Next"}, true}
	}
	var temp [3]float64
	for i := 0; i < S.natoms; i++ {
		b, err := S.h.ReadString('\n')
		if err != nil {
			if err == io.EOF && i == 0 {
				S.Close()
				return newlastFrameError(S.filename, "Next")
			}
			return &Error{ReadError + ": " + err.Error(), S.filename, []string{"Next"}, true}
		}
		if err = coordsDecode(strings.TrimSuffix(b, "\n"), &temp, S.prec); err != nil {
			return &Error{err.Error(), S.filename, []string{"Next"}, true}
		}
		if c != nil {
			c.SetVec(i, temp)
		}
	}
	s, err := S.h.ReadString('\n')
	if err != nil {
		return &Error{"Can't read the frame termination mark: " + err.Error(), S.filename, []string{"Next"}, true}
	}
	if s == "" || s[0] != '*' {
		return &Error{WrongFormat + ": wrong number of atoms in frame", S.filename, []string{"Next"}, true}
	}
	if len(box) == 0 || len(box[0]) < 9 {
		return nil
	}
	fields := strings.Fields(s)
	if len(fields) < 10 {
		logger.Printf("Trajectory file %s does not contain (correct) box information: %s", S.filename, fields) //just a head-up
		return nil
	}
	for j, v := range fields[1:10] {
		if box[0][j], err = strconv.ParseFloat(v, 64); err != nil {
			logger.Printf("Failed to read box in a frame from %s", S.filename)
			for i := range box[0] {
				box[0][i] = 0
			}
			break
		}
	}
	return nil
}

func (S *StfR) close() {
	S.dec.Close()
	S.f.Close()
}

// Close closes the trajectory and marks it as unreadable.
func (S *StfR) Close() {
	if !S.readable {
		return
	}
	S.close()
	S.readable = false
}

// Len returns the number of atoms in each frame of the trajectory.
func (S *StfR) Len() int {
	return S.natoms
}

// NextConc reads as many frames as elements in frames, and returns one
// channel per frame through which it is sent. A nil element skips
// the frame.
func (S *StfR) NextConc(frames []*v3.Matrix) ([]chan *v3.Matrix, error) {
	if !S.Readable() {
		return nil, &Error{TrajUnIniRead, S.filename, []string{"NextConc"}, true}
	}
	framechans := make([]chan *v3.Matrix, len(frames))
	for key, v := range frames {
		if err := S.Next(v); err != nil {
			return nil, errDecorate(err, "NextConc")
		}
		framechans[key] = make(chan *v3.Matrix, 1)
		framechans[key] <- v
	}
	return framechans, nil
}
