/*
 * xyz.go, part of goXtal.
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

package symop

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseXYZ reads an operation in the crystallographic triplet notation,
// such as "-y+1/2, x-y, z+1/4", "2x,x,0" or "-y/2+1/2,-z,0".
func ParseXYZ(s string) (Op, error) {
	var op Op
	s = strings.ToLower(strings.ReplaceAll(s, " ", ""))
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return op, fmt.Errorf("goXtal/symop: '%s' does not have 3 components", s)
	}
	for i, p := range parts {
		row, t, err := parseComponent(p)
		if err != nil {
			return op, fmt.Errorf("goXtal/symop: can't parse '%s': %w", s, err)
		}
		op.R[i] = row
		op.T[i] = t
	}
	return op, nil
}

// MustParseXYZ is like ParseXYZ but panics on error. For literals.
func MustParseXYZ(s string) Op {
	op, err := ParseXYZ(s)
	if err != nil {
		panic(err.Error())
	}
	return op
}

func parseComponent(p string) ([3]float64, float64, error) {
	var row [3]float64
	var t float64
	if p == "" {
		return row, t, fmt.Errorf("empty component")
	}
	//split in signed terms
	var terms []string
	start := 0
	for i := 1; i < len(p); i++ {
		if (p[i] == '+' || p[i] == '-') && p[i-1] != '*' && p[i-1] != '/' {
			terms = append(terms, p[start:i])
			start = i
		}
	}
	terms = append(terms, p[start:])
	for _, term := range terms {
		sign := 1.0
		if term[0] == '+' || term[0] == '-' {
			if term[0] == '-' {
				sign = -1
			}
			term = term[1:]
		}
		if term == "" {
			return row, t, fmt.Errorf("dangling sign")
		}
		vi := strings.IndexAny(term, "xyz")
		if vi < 0 {
			v, err := parseNumber(term)
			if err != nil {
				return row, t, err
			}
			t += sign * v
			continue
		}
		coef := 1.0
		before := strings.TrimSuffix(term[:vi], "*")
		if before != "" {
			v, err := parseNumber(before)
			if err != nil {
				return row, t, err
			}
			coef = v
		}
		after := term[vi+1:]
		if after != "" {
			if after[0] != '/' {
				return row, t, fmt.Errorf("unexpected '%s' after variable", after)
			}
			d, err := parseNumber(after[1:])
			if err != nil {
				return row, t, err
			}
			if d == 0 {
				return row, t, fmt.Errorf("division by zero")
			}
			coef /= d
		}
		row[term[vi]-'x'] += sign * coef
	}
	return row, t, nil
}

func parseNumber(s string) (float64, error) {
	if i := strings.Index(s, "/"); i >= 0 {
		n, err := strconv.ParseFloat(s[:i], 64)
		if err != nil {
			return 0, err
		}
		d, err := strconv.ParseFloat(s[i+1:], 64)
		if err != nil {
			return 0, err
		}
		if d == 0 {
			return 0, fmt.Errorf("division by zero")
		}
		return n / d, nil
	}
	return strconv.ParseFloat(s, 64)
}

// XYZ returns O in the triplet notation. Translations that are multiples of
// 1/24 are written as fractions.
func (O Op) XYZ() string {
	comps := make([]string, 3)
	for i := 0; i < 3; i++ {
		var b strings.Builder
		for j, v := range "xyz" {
			c := O.R[i][j]
			if math.Abs(c) < Eps {
				continue
			}
			switch {
			case math.Abs(c-1) < Eps:
				if b.Len() > 0 {
					b.WriteString("+")
				}
			case math.Abs(c+1) < Eps:
				b.WriteString("-")
			default:
				if c > 0 && b.Len() > 0 {
					b.WriteString("+")
				}
				b.WriteString(Fraction(c))
			}
			b.WriteRune(v)
		}
		if t := O.T[i]; math.Abs(t) > Eps {
			if t > 0 && b.Len() > 0 {
				b.WriteString("+")
			}
			b.WriteString(Fraction(t))
		}
		if b.Len() == 0 {
			b.WriteString("0")
		}
		comps[i] = b.String()
	}
	return strings.Join(comps, ",")
}

// String implements fmt.Stringer.
func (O Op) String() string { return O.XYZ() }

// Fraction writes f as a fraction n/d with d dividing 24 when possible, and
// as a decimal number otherwise.
func Fraction(f float64) string {
	if math.Abs(f-math.Round(f)) < Eps {
		return strconv.Itoa(int(math.Round(f)))
	}
	for _, d := range []int{2, 3, 4, 6, 8, 12, 24} {
		n := f * float64(d)
		if math.Abs(n-math.Round(n)) < 1e-5 {
			return fmt.Sprintf("%d/%d", int(math.Round(n)), d)
		}
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
