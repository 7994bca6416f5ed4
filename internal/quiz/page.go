// Package quiz holds the trivia rules that are more than a query: slicing
// the question listing into pages and picking the next quiz question.
package quiz

import "strconv"

// PageSize is the number of questions per listing page.
const PageSize = 10

// ParsePage reads the 1-based page query parameter.  A missing or
// non-integer value yields 1.  Zero and negative values are returned as is
// and produce an empty page.
func ParsePage(raw string) int {
	if raw == "" {
		return 1
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	return n
}

