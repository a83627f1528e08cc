package buffer

import "github.com/rivo/uniseg"

func graphemeCount(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// byteIndex returns the byte index where the grapheme at offset starts, or
// len(s) if offset is at or past the end.
func byteIndex(s string, offset int) int {
	idx := 0
	state := -1
	rest := s
	for i := 0; i < offset && len(rest) > 0; i++ {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		idx += len(cluster)
	}
	return idx
}

// Graphemes splits s into grapheme clusters.
func Graphemes(s string) []string {
	var out []string
	state := -1
	rest := s
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		out = append(out, cluster)
	}
	return out
}
