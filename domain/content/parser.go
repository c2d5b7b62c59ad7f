package content

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	emphasisPattern = regexp.MustCompile(`\*\*(.*?)\*\*`)
	bulletPattern   = regexp.MustCompile(`\* ([^(\n]*)`)
	ratingPattern   = regexp.MustCompile(`Rating:\s*(\d+\.?\d*)`)
	reviewPattern   = regexp.MustCompile(`(?s)Review:(.*?)(?:Rating:|\z)`)
)

// titleFillers mark explanatory lines rather than titles.
var titleFillers = []string{"Here", "More", "The best"}

// Parser extracts listing fields from model responses.
type Parser struct {
	limits Limits
}

// NewParser creates a Parser bounded by limits.
func NewParser(limits Limits) Parser {
	return Parser{limits: limits}
}

// Limits returns the field bounds the parser applies.
func (p Parser) Limits() Limits { return p.limits }

// Normalize applies the truncation bound for category c, with ellipsis.
// Titles and uncategorized text are returned unchanged.
func (p Parser) Normalize(text string, c Category) string {
	if bound, ok := p.limits.Truncating(c); ok {
		return Truncate(text, bound, true)
	}
	return text
}

// titleMatcher yields candidate titles from a response, in preference order.
type titleMatcher func(text string) []string

// titleMatchers are tried in order. Emphasis and bullet matchers offer only
// their first match; the line matcher offers every line after the first.
var titleMatchers = []titleMatcher{
	firstSubmatch(emphasisPattern),
	firstSubmatch(bulletPattern),
	followingLines,
}

// ExtractTitle returns the first concrete title in text, skipping explanatory filler.
// The result is cut to the title bound without an ellipsis.
func (p Parser) ExtractTitle(text string) (string, error) {
	for _, match := range titleMatchers {
		for _, candidate := range match(text) {
			if title, ok := usableTitle(candidate); ok {
				return Truncate(title, p.limits.title, false), nil
			}
		}
	}

	for _, line := range strings.Split(text, "\n") {
		if title, ok := usableTitle(line); ok {
			return Truncate(title, p.limits.title, false), nil
		}
	}

	return "", ErrNoTitleFound
}

func firstSubmatch(re *regexp.Regexp) titleMatcher {
	return func(text string) []string {
		m := re.FindStringSubmatch(text)
		if m == nil {
			return nil
		}
		return []string{m[1]}
	}
}

func followingLines(text string) []string {
	lines := strings.Split(text, "\n")
	if len(lines) < 2 {
		return nil
	}
	return lines[1:]
}

func usableTitle(candidate string) (string, bool) {
	title := strings.TrimSpace(candidate)
	if title == "" || hasAnyPrefix(title, titleFillers) {
		return "", false
	}
	return title, true
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

// ExtractRatingReview parses a "Rating: X / Review: text" response.
//
// The rating may appear anywhere in the text. The review runs from its label
// to the next "Rating:" label or the end of the text, and is truncated to the
// review bound with an ellipsis. Failures are *ParseError values.
func (p Parser) ExtractRatingReview(text string) (float64, string, error) {
	rm := ratingPattern.FindStringSubmatch(text)
	if rm == nil {
		return 0, "", &ParseError{Reason: ReasonNoRating}
	}
	rating, err := strconv.ParseFloat(rm[1], 64)
	if err != nil {
		return 0, "", &ParseError{Reason: ReasonNoRating, Detail: err.Error()}
	}

	vm := reviewPattern.FindStringSubmatch(text)
	if vm == nil {
		return 0, "", &ParseError{Reason: ReasonNoReview}
	}
	review := strings.TrimSpace(vm[1])

	if rating < 0 || rating > 5 {
		return 0, "", &ParseError{Reason: ReasonOutOfRange, Detail: "rating " + rm[1] + " not in [0, 5]"}
	}

	return rating, Truncate(review, p.limits.review, true), nil
}
