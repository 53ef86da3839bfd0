package utils

import (
	"fmt"
)

type Index []int

func NewIndex(N int) (I Index) {
	return make(Index, N)
}

func NewRange(rmin, rmax int) (r Index) {
	var (
		size = rmax - rmin + 1 // INCLUSIVE RANGE
	)
	if size < 0 {
		size = 0
	}
	r = make(Index, size)
	for i := range r {
		r[i] = i + rmin
	}
	return
}

func (I Index) Copy() (r Index) {
	r = make(Index, len(I))
	copy(r, I)
	return
}

// IndexMap renumbers a dense index space after entries are dropped or merged.
// Old index i maps to Map[i]; entries with Keep[i] == false are removed from
// per-entry tables while references to them follow Map[i] to the survivor.
type IndexMap struct {
	Map  Index
	Keep []bool
	Len  int // size of the renumbered space
}

func NewIdentityMap(N int) (im *IndexMap) {
	im = &IndexMap{
		Map:  NewRange(0, N-1),
		Keep: make([]bool, N),
		Len:  N,
	}
	for i := range im.Keep {
		im.Keep[i] = true
	}
	return
}

// NewMergeMap builds the renumbering for merging every old index i with
// canonical[i] != i into canonical[i]. Canonical targets must be kept,
// lower-indexed entries.
func NewMergeMap(canonical Index) (im *IndexMap, err error) {
	var N = len(canonical)
	im = &IndexMap{
		Map:  NewIndex(N),
		Keep: make([]bool, N),
	}
	for i, c := range canonical {
		if c == i {
			im.Keep[i] = true
			im.Map[i] = im.Len
			im.Len++
			continue
		}
		if c < 0 || c > i || canonical[c] != c {
			err = fmt.Errorf("index %d merges into %d, which is not an earlier retained index", i, c)
			return
		}
		im.Map[i] = im.Map[c]
	}
	return
}

func (im *IndexMap) Dropped() (n int) {
	return len(im.Map) - im.Len
}

func (im *IndexMap) Apply(I []int) (r []int) {
	r = make([]int, len(I))
	for i, v := range I {
		r[i] = im.Map[v]
	}
	return
}
