package content

import "strings"

// Ellipsis is appended to text shortened by Truncate.
const Ellipsis = "..."

// Truncate shortens text to at most maxLength characters.
//
// Text that already fits is returned unchanged. Otherwise the prefix that fits
// (less room for the ellipsis when addEllipsis is set) is cut back to its last
// full stop, or failing that to its last whole word. A prefix holding a single
// unbroken token yields an empty body.
func Truncate(text string, maxLength int, addEllipsis bool) string {
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}

	budget := maxLength
	if addEllipsis {
		budget -= len(Ellipsis)
	}
	if budget < 0 {
		budget = 0
	}
	prefix := string(runes[:budget])

	var truncated string
	if sentences := strings.Split(prefix, "."); len(sentences) > 1 {
		truncated = strings.Join(sentences[:len(sentences)-1], ".") + "."
	} else {
		words := strings.Fields(prefix)
		if len(words) > 0 {
			words = words[:len(words)-1]
		}
		truncated = strings.Join(words, " ")
	}

	if addEllipsis {
		truncated += Ellipsis
	}
	return truncated
}

// Cut returns at most the first maxLength characters of text.
func Cut(text string, maxLength int) string {
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}
	if maxLength < 0 {
		maxLength = 0
	}
	return string(runes[:maxLength])
}
