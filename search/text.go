package search

import "strings"

const minTokenLength = 3

var tokenSeparators = strings.NewReplacer(",", " ", ".", " ")

// Tokenize flattens a record value into lowercase word tokens.
// Commas and periods act as separators, words shorter than three characters
// are dropped. Lists are tokenized recursively; any other value type yields
// no tokens.
func Tokenize(val any) []string {
	var out []string
	switch v := val.(type) {
	case string:
		for _, w := range strings.Fields(tokenSeparators.Replace(strings.ToLower(v))) {
			if len(w) >= minTokenLength {
				out = append(out, w)
			}
		}
	case []string:
		for _, item := range v {
			out = append(out, Tokenize(item)...)
		}
	case []any:
		for _, item := range v {
			out = append(out, Tokenize(item)...)
		}
	}
	return out
}

// TokenSet builds a set from the tokens of the given values.
func TokenSet(vals ...any) map[string]struct{} {
	set := make(map[string]struct{})
	for _, val := range vals {
		for _, token := range Tokenize(val) {
			set[token] = struct{}{}
		}
	}
	return set
}
