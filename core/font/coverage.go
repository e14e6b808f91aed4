package font

import (
	"sort"
)

// CodeRange is an inclusive range of Unicode code points.
type CodeRange struct {
	Low  rune
	High rune
}

// Contains checks r against the range bounds.
func (cr CodeRange) Contains(r rune) bool {
	return cr.Low <= r && r <= cr.High
}

// Coverage is the set of code points for which a font provides a glyph,
// stored as a sorted sequence of inclusive ranges. A well-formed Coverage
// is sorted by Low, with no two ranges overlapping or touching; touching
// ranges are merged on normalization. Membership tests are binary searches
// on the range starts.
//
// Coverage values attached to index entries are immutable after insert.
type Coverage []CodeRange

// NewCoverage builds a normalized Coverage from arbitrary ranges.
func NewCoverage(ranges ...CodeRange) Coverage {
	return Coverage(ranges).Normalize()
}

// Normalize sorts the ranges, drops empty ones and merges overlapping or
// touching neighbours. The receiver is not modified.
func (cov Coverage) Normalize() Coverage {
	if len(cov) == 0 {
		return nil
	}
	sorted := make(Coverage, 0, len(cov))
	for _, cr := range cov {
		if cr.High < cr.Low {
			continue
		}
		sorted = append(sorted, cr)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Low != sorted[j].Low {
			return sorted[i].Low < sorted[j].Low
		}
		return sorted[i].High < sorted[j].High
	})
	out := sorted[:0]
	for _, cr := range sorted {
		if n := len(out); n > 0 && cr.Low <= out[n-1].High+1 {
			if cr.High > out[n-1].High {
				out[n-1].High = cr.High
			}
			continue
		}
		out = append(out, cr)
	}
	return out
}

// IsWellFormed reports whether cov is sorted with no overlapping or
// touching ranges.
func (cov Coverage) IsWellFormed() bool {
	for i, cr := range cov {
		if cr.High < cr.Low {
			return false
		}
		if i > 0 && cr.Low <= cov[i-1].High+1 {
			return false
		}
	}
	return true
}

// Contains checks if code point r is covered.
func (cov Coverage) Contains(r rune) bool {
	i := sort.Search(len(cov), func(i int) bool {
		return cov[i].High >= r
	})
	return i < len(cov) && cov[i].Low <= r
}

// CoversRange checks if the inclusive range cr is entirely covered.
func (cov Coverage) CoversRange(cr CodeRange) bool {
	i := sort.Search(len(cov), func(i int) bool {
		return cov[i].High >= cr.Low
	})
	return i < len(cov) && cov[i].Low <= cr.Low && cr.High <= cov[i].High
}

// Union merges cov and other into a fresh normalized Coverage.
func (cov Coverage) Union(other Coverage) Coverage {
	merged := make(Coverage, 0, len(cov)+len(other))
	merged = append(merged, cov...)
	merged = append(merged, other...)
	return merged.Normalize()
}

// AddsTo reports whether cov contains at least one code point outside of
// base. Both arguments must be well-formed.
func (cov Coverage) AddsTo(base Coverage) bool {
	for _, cr := range cov {
		if !base.CoversRange(cr) {
			return true
		}
		// CoversRange is per single base range, so a fully covered cr
		// cannot straddle a hole; no further check needed.
	}
	return false
}

// Count returns the number of code points covered.
func (cov Coverage) Count() int {
	n := 0
	for _, cr := range cov {
		n += int(cr.High-cr.Low) + 1
	}
	return n
}
