package laborcrawl

// TruncateRunes returns s truncated to at most n runes. Judgment text is
// CJK, so byte-based slicing could split a character mid-sequence.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
