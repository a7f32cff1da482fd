/*
 * hall.go, part of goXtal.
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
	"strconv"
	"strings"

	"github.com/rmera/goxtal/symop"
)

//Hall symbols for the standard setting of each space group: unique axis
//b, cell choice 1, origin choice 2, hexagonal axes for the rhombohedral
//groups.
var hallSymbols = [231]string{"",
	"P 1", "-P 1", "P 2y", "P 2yb", "C 2y", "P -2y", "P -2yc", "C -2y", "C -2yc", "-P 2y",
	"-P 2yb", "-C 2y", "-P 2yc", "-P 2ybc", "-C 2yc", "P 2 2", "P 2c 2", "P 2 2ab", "P 2ac 2ab", "C 2c 2",
	"C 2 2", "F 2 2", "I 2 2", "I 2b 2c", "P 2 -2", "P 2c -2", "P 2 -2c", "P 2 -2a", "P 2c -2ac", "P 2 -2bc",
	"P 2ac -2", "P 2 -2ab", "P 2c -2n", "P 2 -2n", "C 2 -2", "C 2c -2", "C 2 -2c", "A 2 -2", "A 2 -2c", "A 2 -2a",
	"A 2 -2ac", "F 2 -2", "F 2 -2d", "I 2 -2", "I 2 -2c", "I 2 -2a", "-P 2 2", "-P 2ab 2bc", "-P 2 2c", "-P 2ab 2b",
	"-P 2a 2a", "-P 2a 2bc", "-P 2ac 2", "-P 2a 2ac", "-P 2 2ab", "-P 2ab 2ac", "-P 2c 2b", "-P 2 2n", "-P 2ab 2a", "-P 2n 2ab",
	"-P 2ac 2ab", "-P 2ac 2n", "-C 2c 2", "-C 2bc 2", "-C 2 2", "-C 2 2c", "-C 2b 2", "-C 2b 2bc", "-F 2 2", "-F 2uv 2vw",
	"-I 2 2", "-I 2 2c", "-I 2b 2c", "-I 2b 2", "P 4", "P 4w", "P 4c", "P 4cw", "I 4", "I 4bw",
	"P -4", "I -4", "-P 4", "-P 4c", "-P 4a", "-P 4bc", "-I 4", "-I 4ad", "P 4 2", "P 4ab 2ab",
	"P 4w 2c", "P 4abw 2nw", "P 4c 2", "P 4n 2n", "P 4cw 2c", "P 4nw 2abw", "I 4 2", "I 4bw 2bw", "P 4 -2", "P 4 -2ab",
	"P 4c -2c", "P 4n -2n", "P 4 -2c", "P 4 -2n", "P 4c -2", "P 4c -2ab", "I 4 -2", "I 4 -2c", "I 4bw -2", "I 4bw -2c",
	"P -4 2", "P -4 2c", "P -4 2ab", "P -4 2n", "P -4 -2", "P -4 -2c", "P -4 -2ab", "P -4 -2n", "I -4 -2", "I -4 -2c",
	"I -4 2", "I -4 2bw", "-P 4 2", "-P 4 2c", "-P 4a 2b", "-P 4a 2bc", "-P 4 2ab", "-P 4 2n", "-P 4a 2a", "-P 4a 2ac",
	"-P 4c 2", "-P 4c 2c", "-P 4ac 2b", "-P 4ac 2bc", "-P 4c 2ab", "-P 4n 2n", "-P 4ac 2a", "-P 4ac 2ac", "-I 4 2", "-I 4 2c",
	"-I 4bd 2", "-I 4bd 2c", "P 3", "P 31", "P 32", "R 3", "-P 3", "-R 3", "P 3 2", "P 3 2\"",
	"P 31 2c (0 0 1)", "P 31 2\"", "P 32 2c (0 0 -1)", "P 32 2\"", "R 3 2\"", "P 3 -2\"", "P 3 -2", "P 3 -2\"c", "P 3 -2c", "R 3 -2\"",
	"R 3 -2\"c", "-P 3 2", "-P 3 2c", "-P 3 2\"", "-P 3 2\"c", "-R 3 2\"", "-R 3 2\"c", "P 6", "P 61", "P 65",
	"P 62", "P 64", "P 6c", "P -6", "-P 6", "-P 6c", "P 6 2", "P 61 2 (0 0 -1)", "P 65 2 (0 0 1)", "P 62 2c (0 0 1)",
	"P 64 2c (0 0 -1)", "P 6c 2c", "P 6 -2", "P 6 -2c", "P 6c -2", "P 6c -2c", "P -6 2", "P -6c 2", "P -6 -2", "P -6c -2c",
	"-P 6 2", "-P 6 2c", "-P 6c 2", "-P 6c 2c", "P 2 2 3", "F 2 2 3", "I 2 2 3", "P 2ac 2ab 3", "I 2b 2c 3", "-P 2 2 3",
	"-P 2ab 2bc 3", "-F 2 2 3", "-F 2uv 2vw 3", "-I 2 2 3", "-P 2ac 2ab 3", "-I 2b 2c 3", "P 4 2 3", "P 4n 2 3", "F 4 2 3", "F 4d 2 3",
	"I 4 2 3", "P 4acd 2ab 3", "P 4bd 2ab 3", "I 4bd 2c 3", "P -4 2 3", "F -4 2 3", "I -4 2 3", "P -4n 2 3", "F -4c 2 3", "I -4bd 2c 3",
	"-P 4 2 3", "-P 4a 2bc 3", "-P 4n 2 3", "-P 4bc 2bc 3", "-F 4 2 3", "-F 4c 2 3", "-F 4vw 2vw 3", "-F 4cvw 2vw 3", "-I 4 2 3", "-I 4bd 2c 3",
}

//short Hermann-Mauguin symbols, screw axes written as 4_1.
var hmSymbols = [231]string{"",
	"P1", "P-1", "P2", "P2_1", "C2", "Pm", "Pc", "Cm", "Cc", "P2/m",
	"P2_1/m", "C2/m", "P2/c", "P2_1/c", "C2/c", "P222", "P222_1", "P2_12_12", "P2_12_12_1", "C222_1",
	"C222", "F222", "I222", "I2_12_12_1", "Pmm2", "Pmc2_1", "Pcc2", "Pma2", "Pca2_1", "Pnc2",
	"Pmn2_1", "Pba2", "Pna2_1", "Pnn2", "Cmm2", "Cmc2_1", "Ccc2", "Amm2", "Aem2", "Ama2",
	"Aea2", "Fmm2", "Fdd2", "Imm2", "Iba2", "Ima2", "Pmmm", "Pnnn", "Pccm", "Pban",
	"Pmma", "Pnna", "Pmna", "Pcca", "Pbam", "Pccn", "Pbcm", "Pnnm", "Pmmn", "Pbcn",
	"Pbca", "Pnma", "Cmcm", "Cmce", "Cmmm", "Cccm", "Cmme", "Ccce", "Fmmm", "Fddd",
	"Immm", "Ibam", "Ibca", "Imma", "P4", "P4_1", "P4_2", "P4_3", "I4", "I4_1",
	"P-4", "I-4", "P4/m", "P4_2/m", "P4/n", "P4_2/n", "I4/m", "I4_1/a", "P422", "P42_12",
	"P4_122", "P4_12_12", "P4_222", "P4_22_12", "P4_322", "P4_32_12", "I422", "I4_122", "P4mm", "P4bm",
	"P4_2cm", "P4_2nm", "P4cc", "P4nc", "P4_2mc", "P4_2bc", "I4mm", "I4cm", "I4_1md", "I4_1cd",
	"P-42m", "P-42c", "P-42_1m", "P-42_1c", "P-4m2", "P-4c2", "P-4b2", "P-4n2", "I-4m2", "I-4c2",
	"I-42m", "I-42d", "P4/mmm", "P4/mcc", "P4/nbm", "P4/nnc", "P4/mbm", "P4/mnc", "P4/nmm", "P4/ncc",
	"P4_2/mmc", "P4_2/mcm", "P4_2/nbc", "P4_2/nnm", "P4_2/mbc", "P4_2/mnm", "P4_2/nmc", "P4_2/ncm", "I4/mmm", "I4/mcm",
	"I4_1/amd", "I4_1/acd", "P3", "P3_1", "P3_2", "R3", "P-3", "R-3", "P312", "P321",
	"P3_112", "P3_121", "P3_212", "P3_221", "R32", "P3m1", "P31m", "P3c1", "P31c", "R3m",
	"R3c", "P-31m", "P-31c", "P-3m1", "P-3c1", "R-3m", "R-3c", "P6", "P6_1", "P6_5",
	"P6_2", "P6_4", "P6_3", "P-6", "P6/m", "P6_3/m", "P622", "P6_122", "P6_522", "P6_222",
	"P6_422", "P6_322", "P6mm", "P6cc", "P6_3cm", "P6_3mc", "P-6m2", "P-6c2", "P-62m", "P-62c",
	"P6/mmm", "P6/mcc", "P6_3/mcm", "P6_3/mmc", "P23", "F23", "I23", "P2_13", "I2_13", "Pm-3",
	"Pn-3", "Fm-3", "Fd-3", "Im-3", "Pa-3", "Ia-3", "P432", "P4_232", "F432", "F4_132",
	"I432", "P4_332", "P4_132", "I4_132", "P-43m", "F-43m", "I-43m", "P-43n", "F-43c", "I-43d",
	"Pm-3m", "Pn-3n", "Pm-3n", "Pn-3m", "Fm-3m", "Fm-3c", "Fd-3m", "Fd-3c", "Im-3m", "Ia-3d",
}

var (
	hallRot = map[byte]map[int]symop.Mat{
		'x': {
			1: symop.Eye(),
			2: {{1, 0, 0}, {0, -1, 0}, {0, 0, -1}},
			3: {{1, 0, 0}, {0, 0, -1}, {0, 1, -1}},
			4: {{1, 0, 0}, {0, 0, -1}, {0, 1, 0}},
			6: {{1, 0, 0}, {0, 1, -1}, {0, 1, 0}},
		},
		'y': {
			1: symop.Eye(),
			2: {{-1, 0, 0}, {0, 1, 0}, {0, 0, -1}},
			3: {{-1, 0, 1}, {0, 1, 0}, {-1, 0, 0}},
			4: {{0, 0, 1}, {0, 1, 0}, {-1, 0, 0}},
			6: {{0, 0, 1}, {0, 1, 0}, {-1, 0, 1}},
		},
		'z': {
			1: symop.Eye(),
			2: {{-1, 0, 0}, {0, -1, 0}, {0, 0, 1}},
			3: {{0, -1, 0}, {1, -1, 0}, {0, 0, 1}},
			4: {{0, -1, 0}, {1, 0, 0}, {0, 0, 1}},
			6: {{1, -1, 0}, {1, 0, 0}, {0, 0, 1}},
		},
		'\'': {2: {{0, -1, 0}, {-1, 0, 0}, {0, 0, -1}}},
		'"':  {2: {{0, 1, 0}, {1, 0, 0}, {0, 0, -1}}},
		'*':  {3: {{0, 0, 1}, {1, 0, 0}, {0, 1, 0}}},
	}
	axisVec = map[byte]symop.Vec{'x': {1, 0, 0}, 'y': {0, 1, 0}, 'z': {0, 0, 1}}
	hallTrans = map[byte]symop.Vec{
		'a': {0.5, 0, 0}, 'b': {0, 0.5, 0}, 'c': {0, 0, 0.5}, 'n': {0.5, 0.5, 0.5},
		'u': {0.25, 0, 0}, 'v': {0, 0.25, 0}, 'w': {0, 0, 0.25}, 'd': {0.25, 0.25, 0.25},
	}
	centerings = map[byte][]symop.Vec{
		'P': nil,
		'A': {{0, 0.5, 0.5}},
		'B': {{0.5, 0, 0.5}},
		'C': {{0.5, 0.5, 0}},
		'I': {{0.5, 0.5, 0.5}},
		'R': {{2.0 / 3, 1.0 / 3, 1.0 / 3}, {1.0 / 3, 2.0 / 3, 2.0 / 3}},
		'F': {{0, 0.5, 0.5}, {0.5, 0, 0.5}, {0.5, 0.5, 0}},
	}
)

// ParseHall returns the generators of the group with the Hall symbol h,
// lattice translations included.
func ParseHall(h string) ([]symop.Op, error) {
	var shift symop.Vec
	if i := strings.Index(h, "("); i >= 0 {
		f := strings.Fields(strings.Trim(h[i:], "() "))
		if len(f) != 3 {
			return nil, fmt.Errorf("goXtal/spg: bad origin shift in Hall symbol %q", h)
		}
		for k, s := range f {
			v, err := strconv.Atoi(s)
			if err != nil {
				return nil, fmt.Errorf("goXtal/spg: bad origin shift in Hall symbol %q: %w", h, err)
			}
			shift[k] = float64(v) / 12
		}
		h = h[:i]
	}
	tokens := strings.Fields(h)
	if len(tokens) < 2 {
		return nil, fmt.Errorf("goXtal/spg: Hall symbol %q too short", h)
	}
	lat := tokens[0]
	var gens []symop.Op
	if strings.HasPrefix(lat, "-") {
		gens = append(gens, symop.New(symop.Eye().Scale(-1), symop.Vec{}))
		lat = lat[1:]
	}
	cen, ok := centerings[lat[0]]
	if len(lat) != 1 || !ok {
		return nil, fmt.Errorf("goXtal/spg: unknown lattice symbol in Hall symbol %q", h)
	}
	for _, c := range cen {
		gens = append(gens, symop.Translation(c))
	}
	prevN := 0
	for pos, tok := range tokens[1:] {
		op, n, err := parseHallRotation(tok, pos, prevN)
		if err != nil {
			return nil, fmt.Errorf("goXtal/spg: Hall symbol %q: %w", h, err)
		}
		prevN = n
		gens = append(gens, op)
	}
	//t' = t + (I-R)V for an origin shift V
	for i, g := range gens {
		gens[i].T = g.T.Add(shift).Sub(g.R.MulVec(shift))
	}
	return gens, nil
}

func parseHallRotation(tok string, pos, prevN int) (symop.Op, int, error) {
	improper := false
	if tok[0] == '-' {
		improper = true
		tok = tok[1:]
	}
	if tok == "" || tok[0] < '1' || tok[0] > '6' {
		return symop.Op{}, 0, fmt.Errorf("bad rotation %q", tok)
	}
	n := int(tok[0] - '0')
	tok = tok[1:]
	screw := 0
	if tok != "" && tok[0] >= '1' && tok[0] <= '5' {
		screw = int(tok[0] - '0')
		tok = tok[1:]
	}
	var axis byte
	if tok != "" && strings.IndexByte("xyz'\"*", tok[0]) >= 0 {
		axis = tok[0]
		tok = tok[1:]
	}
	if axis == 0 {
		switch {
		case pos == 0:
			axis = 'z'
		case pos == 1 && n == 2 && (prevN == 2 || prevN == 4):
			axis = 'x'
		case pos == 1 && n == 2:
			axis = '\''
		case n == 3:
			axis = '*'
		default:
			axis = 'z'
		}
	}
	r, ok := hallRot[axis][n]
	if !ok {
		return symop.Op{}, 0, fmt.Errorf("no %d-fold rotation about %c", n, axis)
	}
	var t symop.Vec
	if screw > 0 {
		t = axisVec[axis].Scale(float64(screw) / float64(n))
	}
	for i := 0; i < len(tok); i++ {
		v, ok := hallTrans[tok[i]]
		if !ok {
			return symop.Op{}, 0, fmt.Errorf("bad translation symbol %q", tok[i])
		}
		t = t.Add(v)
	}
	if improper {
		r = r.Scale(-1)
	}
	return symop.New(r, t), n, nil
}

// closure returns the group generated by gens modulo integer
// translations, with translations on the 1/den grid. The identity comes
// first; the rest stays in generation order.
func closure(gens []symop.Op) []symop.Op {
	ops := []symop.Op{symop.Identity()}
	seen := map[symop.Key]bool{ops[0].Key(): true}
	add := func(o symop.Op) bool {
		o.T = snap(o.T).Wrap()
		o.R = o.R.Rounded()
		k := o.Key()
		if seen[k] {
			return false
		}
		seen[k] = true
		ops = append(ops, o)
		return true
	}
	for _, g := range gens {
		add(g)
	}
	for i := 0; i < len(ops); i++ {
		for j := 0; j <= i; j++ {
			add(ops[i].Mul(ops[j]))
			add(ops[j].Mul(ops[i]))
		}
		if len(ops) > 4096 {
			panic(ErrNotFinite)
		}
	}
	return ops
}
