/*
 * paths.go, part of goXtal.
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
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/traverse"

	"github.com/rmera/goxtal/symop"
)

//maxGeneralDepth is the deepest a search for a general position goes.
const maxGeneralDepth = 6

// Step is a step of a subgroup path.
type Step struct {
	Kind   string //"t" or "k"
	ID     int    //index of the relation in MaxSubgroups of the previous group
	Number int
}

//subgroupGraph returns the graph of non-isomorphic maximal subgroup
//relations between group numbers that can be reached from number in at
//most depth steps, with edges from a group to its subgroups, and the same
//graph with the edges reversed.
func subgroupGraph(number, depth int) (down, up *simple.DirectedGraph) {
	down, up = simple.NewDirectedGraph(), simple.NewDirectedGraph()
	down.AddNode(simple.Node(number))
	up.AddNode(simple.Node(number))
	seen := map[int]bool{number: true}
	layer := []int{number}
	for d := 0; d < depth && len(layer) > 0; d++ {
		var next []int
		for _, n := range layer {
			for _, h := range MustNew(n).MaxSubgroupNumbers("") {
				down.SetEdge(down.NewEdge(simple.Node(n), simple.Node(h)))
				up.SetEdge(up.NewEdge(simple.Node(h), simple.Node(n)))
				if !seen[h] {
					seen[h] = true
					next = append(next, h)
				}
			}
		}
		sort.Ints(next)
		layer = next
	}
	return down, up
}

//distancesTo returns the number of steps from each node of g to the
//node to, walking g.
func distancesTo(g graph.Directed, to int64) map[int64]int {
	dist := map[int64]int{}
	var bf traverse.BreadthFirst
	bf.Walk(g, g.Node(to), func(n graph.Node, d int) bool {
		dist[n.ID()] = d
		return false
	})
	return dist
}

//chains returns the paths with no repeated groups, from and to included,
//of at most depth steps. left holds the shortest number of steps from a
//node to to. Nodes missing from it are not visited.
func chains(g graph.Directed, from, to int64, depth int, left map[int64]int) [][]int {
	var ret [][]int
	path := []int{int(from)}
	on := map[int64]bool{from: true}
	var dfs func(n int64)
	dfs = func(n int64) {
		if n == to && len(path) > 1 {
			ret = append(ret, append([]int(nil), path...))
			return
		}
		if len(path)-1 == depth {
			return
		}
		nodes := graph.NodesOf(g.From(n))
		sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID() < nodes[j].ID() })
		for _, m := range nodes {
			id := m.ID()
			l, ok := left[id]
			if on[id] || !ok || len(path)+l > depth {
				continue
			}
			on[id] = true
			path = append(path, int(id))
			dfs(id)
			path = path[:len(path)-1]
			on[id] = false
		}
	}
	dfs(from)
	return ret
}

func sortPaths(ps [][]int) {
	sort.SliceStable(ps, func(i, j int) bool {
		a, b := ps[i], ps[j]
		if len(a) != len(b) {
			return len(a) < len(b)
		}
		for k := range a {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return false
	})
}

// SearchSubgroupPaths returns the chains of maximal subgroups, as group
// numbers from G.Number to H, with at most maxLayer steps. Isomorphic
// steps are not taken. Shorter chains come first, then by ascending
// intermediate numbers. An empty result means that H is not reached.
func (G *Group) SearchSubgroupPaths(H, maxLayer int) [][]int {
	down, up := subgroupGraph(G.Number, maxLayer)
	if down.Node(int64(H)) == nil || H == G.Number {
		return nil
	}
	left := distancesTo(up, int64(H))
	if _, ok := left[int64(G.Number)]; !ok {
		return nil
	}
	ps := chains(down, int64(G.Number), int64(H), maxLayer, left)
	sortPaths(ps)
	return ps
}

// SearchSupergroupPaths returns the chains that lead from G up to the
// supergroup with number S in at most maxLayer steps. Each chain lists
// the groups above G, ending in S. Shorter chains come first, then by
// ascending intermediate numbers.
func (G *Group) SearchSupergroupPaths(S, maxLayer int) [][]int {
	sup, err := New(S)
	if err != nil {
		return nil
	}
	down := sup.SearchSubgroupPaths(G.Number, maxLayer)
	ret := make([][]int, 0, len(down))
	for _, p := range down {
		r := make([]int, 0, len(p)-1)
		for i := len(p) - 2; i >= 0; i-- {
			r = append(r, p[i])
		}
		ret = append(ret, r)
	}
	sortPaths(ret)
	return ret
}

// AddKTransitions takes path, a chain of t-subgroup numbers starting with
// G.Number, and returns the chains of concrete relations obtained by
// refining one of its steps G_i -> G_i+1 into a k-subgroup K of G_i
// followed by a t-subgroup of K with the number and index of G_i+1. Each
// t step may be realized by any of its relations. The result is empty if
// path is not made of t steps or if no step can be refined.
func (G *Group) AddKTransitions(path []int) [][]*Relation {
	if len(path) < 2 || path[0] != G.Number {
		return nil
	}
	steps := make([][]*Relation, len(path)-1)
	for i := 1; i < len(path); i++ {
		from, err := New(path[i-1])
		if err != nil {
			return nil
		}
		for _, r := range from.MaxSubgroupsOfKind("t") {
			if r.Number == path[i] {
				steps[i-1] = append(steps[i-1], r)
			}
		}
		if len(steps[i-1]) == 0 {
			return nil
		}
	}
	var ret [][]*Relation
	for i := range steps {
		var refined [][]*Relation
		for _, k := range MustNew(path[i]).MaxSubgroupsOfKind("k") {
			for _, t := range k.Subgroup().MaxSubgroupsOfKind("t") {
				if t.Number == path[i+1] && t.Index == steps[i][0].Index {
					refined = append(refined, []*Relation{k, t})
				}
			}
		}
		if len(refined) == 0 {
			continue
		}
		chains := [][]*Relation{nil}
		for j := range steps {
			opts := refined
			if j != i {
				opts = make([][]*Relation, len(steps[j]))
				for l, r := range steps[j] {
					opts[l] = []*Relation{r}
				}
			}
			var next [][]*Relation
			for _, c := range chains {
				for _, o := range opts {
					next = append(next, append(append([]*Relation(nil), c...), o...))
				}
			}
			chains = next
		}
		ret = append(ret, chains...)
		if len(ret) > combinationCap {
			logger.Printf("path %v: more than %d refined chains, list truncated", path, combinationCap)
			return ret[:combinationCap]
		}
	}
	return ret
}

type generalState struct {
	number int
	pt     symop.Vec
	steps  []Step
}

func kindRank(k string) int {
	if k == "t" {
		return 0
	}
	return 1
}

//prefixLess orders chains of the same length: t steps before k steps,
//then lower group numbers, then lower relation ids, step by step.
func prefixLess(a, b []Step) bool {
	for i := range a {
		if a[i].Kind != b[i].Kind {
			return kindRank(a[i].Kind) < kindRank(b[i].Kind)
		}
	}
	for i := range a {
		if a[i].Number != b[i].Number {
			return a[i].Number < b[i].Number
		}
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			return a[i].ID < b[i].ID
		}
	}
	return false
}

//generalLess orders chains of the same length that end on a general
//position. Chains that reach P1 come last, then prefixLess decides on
//the kinds, then the higher final group wins.
func generalLess(a, b []Step) bool {
	la, lb := a[len(a)-1].Number, b[len(b)-1].Number
	if (la == 1) != (lb == 1) {
		return lb == 1
	}
	for i := range a {
		if a[i].Kind != b[i].Kind {
			return kindRank(a[i].Kind) < kindRank(b[i].Kind)
		}
	}
	if la != lb {
		return la > lb
	}
	return prefixLess(a, b)
}

// ShortPathToGeneralWP returns a shortest chain of maximal subgroups
// (isomorphic ones excluded) along which a point of the position with
// the given index ends up on a general position. Among chains of the same
// length, those that end in P1 are taken only if nothing else works.
// Then t steps are preferred over k steps, earliest first, and then the
// highest final group number. The result is empty if the position is
// already general. An InfeasibleError is returned if no chain is found
// within a few steps.
func (G *Group) ShortPathToGeneralWP(index int) ([]Step, error) {
	w, err := G.Wyckoff(index)
	if err != nil {
		return nil, err
	}
	if w.Index == 0 {
		return nil, nil
	}
	seen := map[[2]int]bool{{G.Number, w.Index}: true}
	layer := []generalState{{number: G.Number, pt: w.ops[0].Operate(genericParams)}}
	for d := 0; d < maxGeneralDepth && len(layer) > 0; d++ {
		next := map[[2]int]generalState{}
		var best []Step
		for _, st := range layer {
			for id, r := range MustNew(st.number).MaxSubgroups() {
				if r.Isomorphic() {
					continue
				}
				y := r.ToSubgroup(st.pt).Wrap()
				steps := append(append([]Step(nil), st.steps...), Step{Kind: r.Kind, ID: id, Number: r.Number})
				hw := r.Subgroup().WyckoffFromXYZ(y, 1e-4)
				if hw == nil {
					if best == nil || generalLess(steps, best) {
						best = steps
					}
					continue
				}
				k := [2]int{r.Number, hw.Index}
				if seen[k] {
					continue
				}
				//equal suffixes follow from the same state, so
				//only the best prefix is kept.
				if old, ok := next[k]; !ok || prefixLess(steps, old.steps) {
					next[k] = generalState{number: r.Number, pt: y, steps: steps}
				}
			}
		}
		if best != nil {
			return best, nil
		}
		layer = layer[:0]
		for k, st := range next {
			seen[k] = true
			layer = append(layer, st)
		}
		sort.Slice(layer, func(i, j int) bool { return prefixLess(layer[i].steps, layer[j].steps) })
	}
	return nil, infeasibleErrorf("ShortPathToGeneralWP", "no chain of %d steps or less frees position %s of group %d", maxGeneralDepth, w.Label(), G.Number)
}
