package listview

import (
	"sort"

	"github.com/google/uuid"
)

// Diff computes the patches turning old into next. Ids present in both that
// keep their relative order (the longest increasing run) stay put; every other
// common id moves. Ids in updated that stay put get an update patch.
func Diff(old, next []uuid.UUID, updated map[uuid.UUID]struct{}) []Patch {
	oldIndex := make(map[uuid.UUID]int, len(old))
	for i, id := range old {
		oldIndex[id] = i
	}
	nextIndex := make(map[uuid.UUID]int, len(next))
	for j, id := range next {
		nextIndex[id] = j
	}

	var deletes, inserts, moves, updates []Patch

	for i := len(old) - 1; i >= 0; i-- {
		if _, ok := nextIndex[old[i]]; !ok {
			deletes = append(deletes, Patch{Op: OpDelete, Id: old[i], From: i, To: -1})
		}
	}

	// Old positions of common ids, in new order.
	var common []int
	var commonTo []int
	for j, id := range next {
		i, ok := oldIndex[id]
		if !ok {
			inserts = append(inserts, Patch{Op: OpInsert, Id: id, From: -1, To: j})
			continue
		}
		common = append(common, i)
		commonTo = append(commonTo, j)
	}

	stay := longestIncreasing(common)
	for k, i := range common {
		j := commonTo[k]
		id := next[j]
		if !stay[k] {
			moves = append(moves, Patch{Op: OpMove, Id: id, From: i, To: j})
			continue
		}
		if _, ok := updated[id]; ok {
			updates = append(updates, Patch{Op: OpUpdate, Id: id, From: i, To: j})
		}
	}

	patches := make([]Patch, 0, len(deletes)+len(inserts)+len(moves)+len(updates))
	patches = append(patches, deletes...)
	patches = append(patches, inserts...)
	patches = append(patches, moves...)
	return append(patches, updates...)
}

// longestIncreasing marks the members of one longest strictly increasing
// subsequence of seq.
func longestIncreasing(seq []int) []bool {
	keep := make([]bool, len(seq))
	if len(seq) == 0 {
		return keep
	}

	// tails[l] is the index in seq of the smallest tail of a run of length l+1.
	tails := make([]int, 0, len(seq))
	prev := make([]int, len(seq))
	for k, v := range seq {
		l := sort.Search(len(tails), func(n int) bool { return seq[tails[n]] >= v })
		if l > 0 {
			prev[k] = tails[l-1]
		} else {
			prev[k] = -1
		}
		if l == len(tails) {
			tails = append(tails, k)
		} else {
			tails[l] = k
		}
	}

	for k := tails[len(tails)-1]; k >= 0; k = prev[k] {
		keep[k] = true
	}
	return keep
}
