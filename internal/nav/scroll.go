package nav

// DefaultHeaderOffset is the height of the fixed page header in pixels.
const DefaultHeaderOffset = 50

// ScrollTarget is the scroll position that brings an element at top just
// below the fixed header.
func ScrollTarget(top, headerOffset float64) float64 {
	if y := top - headerOffset; y > 0 {
		return y
	}
	return 0
}

// ActiveIndex returns the index of the last heading at or above the
// viewport line (scrollY + headerOffset), or -1 when the reader is above
// the first heading. tops must be in document order.
func ActiveIndex(tops []float64, scrollY, headerOffset float64) int {
	line := scrollY + headerOffset
	lo, hi := 0, len(tops)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if tops[mid] <= line {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo - 1
}
