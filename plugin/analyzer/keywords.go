package analyzer

import (
	"strings"

	"golang.org/x/exp/slices"
)

// KeywordPosList holds the noun-like tags kept as keywords.
var KeywordPosList = []string{"NNG", "NNP", "NA"}

// Keywords returns the distinct surfaces of noun-like morphemes in order of appearance.
func Keywords(morphemes []Morpheme) []string {
	keywords := []string{}
	for _, morpheme := range morphemes {
		surface := strings.TrimSpace(morpheme.Surface)
		if surface == "" || !slices.Contains(KeywordPosList, morpheme.Pos) {
			continue
		}
		if slices.Contains(keywords, surface) {
			continue
		}
		keywords = append(keywords, surface)
	}
	return keywords
}
