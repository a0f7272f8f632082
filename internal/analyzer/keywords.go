// internal/analyzer/keywords.go
package analyzer

import (
	"regexp"
	"sort"

	"github.com/kljensen/snowball/english"
)

var (
	wordTokenPattern = regexp.MustCompile(`[a-zA-Z0-9+#]+`)
	numericToken     = regexp.MustCompile(`^\d+$`)
)

// extractKeywords tokenizes the lowercased text, drops short tokens,
// stop words, and pure numbers, stems the remainder, and returns the
// most frequent stems ranked by count. Ties keep first-encounter order.
func (a *Analyzer) extractKeywords(lower string) []string {
	counts := make(map[string]int)
	var order []string

	for _, token := range wordTokenPattern.FindAllString(lower, -1) {
		if len(token) <= 3 {
			continue
		}
		if _, stop := a.vocab.StopWords[token]; stop {
			continue
		}
		if numericToken.MatchString(token) {
			continue
		}
		stem := english.Stem(token, false)
		if _, seen := counts[stem]; !seen {
			order = append(order, stem)
		}
		counts[stem]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > a.maxKeywords {
		order = order[:a.maxKeywords]
	}
	return order
}
