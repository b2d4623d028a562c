package slice

// ReverseInPlace reverses the order of the elements of s
func ReverseInPlace[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// Compare returns the number of positions at which both slices differ, -1 if their lengths differ
func Compare[T comparable](s1 []T, s2 []T) int {
	if len(s1) != len(s2) {
		return -1
	}
	differences := 0
	for i := range s1 {
		if s1[i] != s2[i] {
			differences++
		}
	}
	return differences
}
