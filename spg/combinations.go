/*
 * combinations.go, part of goXtal.
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

// Combination assigns Wyckoff positions to each species of a
// composition. Positions without degrees of freedom appear at most once
// in a Combination.
type Combination [][]*Wyckoff

// Freedom returns true if some position of C has degrees of freedom.
func (C Combination) Freedom() bool {
	for _, sp := range C {
		for _, w := range sp {
			if w.Dof() > 0 {
				return true
			}
		}
	}
	return false
}

//combinationCap bounds the number of combinations listed.
const combinationCap = 100000

// CheckCompatible tells whether numIons atoms of each species can be
// placed on the positions of G, each position without degrees of freedom
// being used at most once. unique is true if some placement uses a
// position with degrees of freedom, so that the atoms are not all fixed.
func (G *Group) CheckCompatible(numIons []int) (compatible, unique bool) {
	ws := G.Wyckoffs()
	var free []int
	fixed := map[int]int{} //unused fixed positions by multiplicity
	var mults []int
	for _, w := range ws {
		if w.Dof() > 0 {
			free = append(free, w.Multiplicity)
			continue
		}
		if fixed[w.Multiplicity] == 0 {
			mults = append(mults, w.Multiplicity)
		}
		fixed[w.Multiplicity]++
	}
	rep := coinTable(free, numIons)
	var rec func(sp int, fr bool)
	rec = func(sp int, fr bool) {
		if compatible && unique {
			return
		}
		if sp == len(numIons) {
			compatible = true
			unique = unique || fr
			return
		}
		//how many fixed positions of each multiplicity this species takes
		var pick func(i, left int)
		pick = func(i, left int) {
			if i == len(mults) {
				if rep[left] {
					rec(sp+1, fr || left > 0)
				}
				return
			}
			m := mults[i]
			avail := fixed[m]
			for k := 0; k <= avail && k*m <= left; k++ {
				fixed[m] -= k
				pick(i+1, left-k*m)
				fixed[m] += k
			}
		}
		pick(0, numIons[sp])
	}
	rec(0, false)
	return compatible, unique
}

//coinTable returns, up to the largest of totals, which numbers are sums of
//the values in coins, each usable any number of times.
func coinTable(coins, totals []int) []bool {
	max := 0
	for _, t := range totals {
		if t > max {
			max = t
		}
	}
	ok := make([]bool, max+1)
	ok[0] = true
	for n := 1; n <= max; n++ {
		for _, c := range coins {
			if c <= n && ok[n-c] {
				ok[n] = true
				break
			}
		}
	}
	return ok
}

// ListWyckoffCombinations lists the ways of placing numIons atoms of each
// species on the positions of G. With quick, only the placements with the
// fewest orbits for each species are kept. The list is capped, with a
// note in the log, for very large compositions.
func (G *Group) ListWyckoffCombinations(numIons []int, quick bool) []Combination {
	ws := G.Wyckoffs()
	used := make([]bool, len(ws))
	var ret []Combination
	cur := make(Combination, len(numIons))
	truncated := false
	//decompositions of n on positions from index i on
	var species func(sp int)
	var fill func(sp, i, left int, acc []*Wyckoff, best int)
	species = func(sp int) {
		if len(ret) >= combinationCap {
			truncated = true
			return
		}
		if sp == len(numIons) {
			c := make(Combination, len(cur))
			for i, s := range cur {
				c[i] = append([]*Wyckoff(nil), s...)
			}
			ret = append(ret, c)
			return
		}
		best := -1
		if quick {
			best = G.fewestOrbits(numIons[sp], used)
			if best < 0 {
				return
			}
		}
		fill(sp, 0, numIons[sp], nil, best)
	}
	fill = func(sp, i, left int, acc []*Wyckoff, best int) {
		if best >= 0 && len(acc) > best {
			return
		}
		if left == 0 {
			if best >= 0 && len(acc) != best {
				return
			}
			cur[sp] = acc
			species(sp + 1)
			return
		}
		if i == len(ws) || truncated {
			return
		}
		w := ws[i]
		if w.Multiplicity <= left && !used[i] {
			if w.Dof() == 0 {
				used[i] = true
			}
			fill(sp, i+w.dofStep(), left-w.Multiplicity, append(acc, w), best)
			used[i] = false
		}
		fill(sp, i+1, left, acc, best)
	}
	species(0)
	if truncated {
		logger.Printf("group %d: more than %d combinations for %v, list truncated", G.Number, combinationCap, numIons)
	}
	return ret
}

//dofStep is 0 for positions that can be used again by the same species.
func (W *Wyckoff) dofStep() int {
	if W.Dof() > 0 {
		return 0
	}
	return 1
}

//fewestOrbits returns the smallest number of orbits that hold n atoms,
//given the fixed positions already used, or -1.
func (G *Group) fewestOrbits(n int, used []bool) int {
	ws := G.Wyckoffs()
	inf := n + 1
	//dp over positions: a fixed position can be taken once
	dp := make([]int, n+1)
	for i := range dp {
		dp[i] = inf
	}
	dp[0] = 0
	for i, w := range ws {
		m := w.Multiplicity
		if w.Dof() > 0 {
			for s := m; s <= n; s++ {
				if dp[s-m]+1 < dp[s] {
					dp[s] = dp[s-m] + 1
				}
			}
			continue
		}
		if used[i] {
			continue
		}
		for s := n; s >= m; s-- {
			if dp[s-m]+1 < dp[s] {
				dp[s] = dp[s-m] + 1
			}
		}
	}
	if dp[n] >= inf {
		return -1
	}
	return dp[n]
}
