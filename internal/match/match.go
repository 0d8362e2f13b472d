// Package match implements free-text criteria matching for the search APIs.
//
// A criteria string is tokenized on whitespace. A candidate matches when
// every token is contained, as a case-sensitive substring, in at least one
// of the candidate's searchable field values. There is no stemming,
// normalization, or wildcard syntax.
package match

import "strings"

// Tokenize splits a criteria string into search tokens.
// An empty or all-whitespace criteria yields zero tokens.
func Tokenize(criteria string) []string {
	return strings.Fields(criteria)
}

// Match reports whether a candidate with the given field values satisfies
// all tokens. Every token must appear in at least one value (AND across
// tokens, OR across values). Zero tokens match any candidate.
//
// Multi-valued fields (e.g. a tag set) are passed by flattening their
// elements into values; containment in any element satisfies the token.
func Match(tokens []string, values ...string) bool {
	for _, token := range tokens {
		if !anyContains(values, token) {
			return false
		}
	}
	return true
}

func anyContains(values []string, token string) bool {
	for _, v := range values {
		if strings.Contains(v, token) {
			return true
		}
	}
	return false
}
