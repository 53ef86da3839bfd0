package types

// Row helpers for the parallel per-node and per-element tables of a case.
// All of them return fresh backing storage so that callers can commit a
// rebuilt table only after every table has been rebuilt successfully.

func CloneRows[T any](rows [][]T) (c [][]T) {
	if rows == nil {
		return nil
	}
	c = make([][]T, len(rows))
	for i, row := range rows {
		c[i] = append([]T(nil), row...)
	}
	return
}

func CloneSlabs[T any](slabs [][][]T) (c [][][]T) {
	if slabs == nil {
		return nil
	}
	c = make([][][]T, len(slabs))
	for i, slab := range slabs {
		c[i] = CloneRows(slab)
	}
	return
}

func ConcatSlices[T any](parts ...[]T) (out []T) {
	var n int
	for _, p := range parts {
		n += len(p)
	}
	out = make([]T, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return
}

// OffsetIndex returns a copy of idx with offset added to every entry that is
// not below floor. A floor of 0 leaves sentinel entries like -1 untouched.
func OffsetIndex(idx []int, offset, floor int) (out []int) {
	out = make([]int, len(idx))
	for i, v := range idx {
		if v >= floor {
			v += offset
		}
		out[i] = v
	}
	return
}

func OffsetRows(rows [][]int, offset, floor int) (out [][]int) {
	out = make([][]int, len(rows))
	for i, row := range rows {
		out[i] = OffsetIndex(row, offset, floor)
	}
	return
}

// KeepRows compacts s to the entries whose keep flag is set. keep must be as
// long as s.
func KeepRows[T any](s []T, keep []bool) (out []T) {
	if len(keep) != len(s) {
		panic("keep mask length does not match slice length")
	}
	out = make([]T, 0, len(s))
	for i, v := range s {
		if keep[i] {
			out = append(out, v)
		}
	}
	return
}

func MaxInt(s []int, empty int) (m int) {
	if len(s) == 0 {
		return empty
	}
	m = s[0]
	for _, v := range s[1:] {
		if v > m {
			m = v
		}
	}
	return
}
