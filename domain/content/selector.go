package content

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

var (
	bulletLinePattern = regexp.MustCompile(`\* ([^\n]+)`)
	wordPattern       = regexp.MustCompile(`[\p{L}\p{N}_]+`)
)

var (
	selectorFillers = []string{"Here", "The best", "#"}
	genericOpenings = []string{"welcome to", "the", "a "}
)

// SelectBestTitle picks the strongest rewrite from a list of suggestions.
//
// Candidates are bullet lines and double-asterisk spans, or else plain lines
// that are not filler. Each is scored on length and on word overlap with
// original, and penalized for generic openings. The highest score wins; ties
// go to the shorter candidate. With no candidates, original is kept. The result
// is cut to the title bound.
func (p Parser) SelectBestTitle(response, original string) string {
	candidates := titleCandidates(response)
	if len(candidates) == 0 {
		return Cut(original, p.limits.title)
	}

	originalWords := wordSet(original)
	scores := make(map[string]int, len(candidates))
	for _, c := range candidates {
		scores[c] = scoreTitle(c, originalWords)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if scores[a] != scores[b] {
			return scores[a] > scores[b]
		}
		return utf8.RuneCountInString(a) < utf8.RuneCountInString(b)
	})

	return Cut(candidates[0], p.limits.title)
}

func titleCandidates(response string) []string {
	var raw []string
	for _, m := range bulletLinePattern.FindAllStringSubmatch(response, -1) {
		raw = append(raw, m[1])
	}
	for _, m := range emphasisPattern.FindAllStringSubmatch(response, -1) {
		raw = append(raw, m[1])
	}

	if len(raw) == 0 {
		for _, line := range strings.Split(response, "\n") {
			if strings.TrimSpace(line) == "" || hasAnyPrefix(line, selectorFillers) {
				continue
			}
			raw = append(raw, line)
		}
	}

	seen := make(map[string]struct{}, len(raw))
	candidates := make([]string, 0, len(raw))
	for _, r := range raw {
		c := strings.TrimSpace(r)
		if c == "" {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		candidates = append(candidates, c)
	}
	return candidates
}

func scoreTitle(title string, originalWords map[string]struct{}) int {
	score := 0

	switch n := utf8.RuneCountInString(title); {
	case n >= 20 && n <= 50:
		score += 2
	case n < 70:
		score++
	}

	for w := range wordSet(title) {
		if _, ok := originalWords[w]; ok {
			score++
		}
	}

	if hasAnyPrefix(strings.ToLower(title), genericOpenings) {
		score--
	}
	return score
}

func wordSet(s string) map[string]struct{} {
	words := wordPattern.FindAllString(strings.ToLower(s), -1)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
