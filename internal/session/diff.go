package session

import "bytes"

// maxDiffOffsets caps the offsets carried per file; the rest are only
// counted.
const maxDiffOffsets = 8

// FileDiff describes how one output file differs from its input.
type FileDiff struct {
	Rel       string
	LeftSize  int
	RightSize int

	// Offsets holds the first differing byte offsets over the
	// overlapping region, at most maxDiffOffsets of them.
	Offsets []int

	// TotalDiffs counts every differing byte in the overlapping region.
	TotalDiffs int
}

// Identical reports whether the two files matched byte for byte.
func (d FileDiff) Identical() bool {
	return d.LeftSize == d.RightSize && d.TotalDiffs == 0
}

func diffBuffers(rel string, left, right []byte) FileDiff {
	d := FileDiff{Rel: rel, LeftSize: len(left), RightSize: len(right)}
	if bytes.Equal(left, right) {
		return d
	}
	n := len(left)
	if len(right) < n {
		n = len(right)
	}
	for i := 0; i < n; i++ {
		if left[i] == right[i] {
			continue
		}
		if len(d.Offsets) < maxDiffOffsets {
			d.Offsets = append(d.Offsets, i)
		}
		d.TotalDiffs++
	}
	return d
}
