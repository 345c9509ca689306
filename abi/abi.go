package abi

// AlignTo rounds ptr up to the next multiple of align. align must be a
// power of two.
func AlignTo(ptr, align uint32) uint32 {
	return (ptr + align - 1) &^ (align - 1)
}

// DiscriminantSize returns the byte width of a variant discriminant for the
// given case count: the smallest of 1, 2 or 4 whose unsigned range covers
// every case index.
func DiscriminantSize(numCases int) uint32 {
	switch {
	case numCases <= 1<<8:
		return 1
	case numCases <= 1<<16:
		return 2
	default:
		return 4
	}
}
