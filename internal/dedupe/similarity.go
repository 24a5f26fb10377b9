package dedupe

// sequenceRatio measures how similar two strings are in [0,1] using the
// Ratcliff/Obershelp method: twice the total length of matching blocks
// divided by the combined length. Matching blocks are found by locating the
// longest common substring and recursing on the unmatched left and right
// remainders.
func sequenceRatio(a, b string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	matched := matchingLength(a, b)
	return 2 * float64(matched) / float64(len(a)+len(b))
}

func matchingLength(a, b string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	aStart, bStart, size := longestCommonSubstring(a, b)
	if size == 0 {
		return 0
	}
	total := size
	total += matchingLength(a[:aStart], b[:bStart])
	total += matchingLength(a[aStart+size:], b[bStart+size:])
	return total
}

func longestCommonSubstring(a, b string) (aStart, bStart, size int) {
	// Single-row dynamic program over byte positions.
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
				if curr[j] > size {
					size = curr[j]
					aStart = i - size
					bStart = j - size
				}
			} else {
				curr[j] = 0
			}
		}
		prev, curr = curr, prev
	}
	return aStart, bStart, size
}
