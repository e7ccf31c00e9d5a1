package game

// Pattern scores guess against answer like Score but returns the result as
// a base-3 code (absent=0, present=1, correct=2, first tile most significant)
// without allocating. Both words must be uppercase A–Z of length 5.
func Pattern(answer, guess string) uint8 {
	var marks [defaultCols]uint8
	var counts [26]uint8

	for i := 0; i < defaultCols; i++ {
		if guess[i] == answer[i] {
			marks[i] = 2
		} else {
			counts[idx(answer[i])]++
		}
	}
	for i := 0; i < defaultCols; i++ {
		if marks[i] == 2 {
			continue
		}
		if j := idx(guess[i]); counts[j] > 0 {
			marks[i] = 1
			counts[j]--
		}
	}

	var code uint8
	for _, m := range marks {
		code = code*3 + m
	}
	return code
}

// PatternCount is the number of distinct Pattern codes (3^5).
const PatternCount = 243
