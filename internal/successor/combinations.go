package successor

import (
	"gonum.org/v1/gonum/stat/combin"
)

// Combinations calls fn with every k-element combination of items, in
// lexicographic order of indices. The slice passed to fn is reused
// between calls.
func Combinations(items []string, k int, fn func([]string)) {
	n := len(items)
	if k < 0 || k > n {
		return
	}
	gen := combin.NewCombinationGenerator(n, k)
	idx := make([]int, k)
	buf := make([]string, k)
	for gen.Next() {
		for i, j := range gen.Combination(idx) {
			buf[i] = items[j]
		}
		fn(buf)
	}
}
