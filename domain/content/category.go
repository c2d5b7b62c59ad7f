// Package content normalizes and parses generative model output for listing fields.
package content

// Category identifies which listing field a model response is for.
// It selects the length bound and extraction rule applied to the response.
type Category string

// Category values. CategoryNone leaves the response untouched.
const (
	CategoryNone        Category = ""
	CategoryTitle       Category = "title"
	CategoryDescription Category = "description"
	CategorySummary     Category = "summary"
	CategoryReview      Category = "review"
)

// String returns the category name.
func (c Category) String() string {
	if c == CategoryNone {
		return "none"
	}
	return string(c)
}

// Default field bounds, in characters.
const (
	DefaultTitleLength       = 100
	DefaultDescriptionLength = 200
	DefaultSummaryLength     = 100
	DefaultReviewLength      = 100
)

// Limits holds the maximum length of each generated field.
type Limits struct {
	title       int
	description int
	summary     int
	review      int
}

// DefaultLimits returns the bounds of the listing schema.
func DefaultLimits() Limits {
	return NewLimits(DefaultTitleLength, DefaultDescriptionLength, DefaultSummaryLength, DefaultReviewLength)
}

// NewLimits creates Limits. Non-positive values fall back to the defaults.
func NewLimits(title, description, summary, review int) Limits {
	return Limits{
		title:       positiveOr(title, DefaultTitleLength),
		description: positiveOr(description, DefaultDescriptionLength),
		summary:     positiveOr(summary, DefaultSummaryLength),
		review:      positiveOr(review, DefaultReviewLength),
	}
}

// Title returns the title bound.
func (l Limits) Title() int { return l.title }

// Description returns the description bound.
func (l Limits) Description() int { return l.description }

// Summary returns the summary bound.
func (l Limits) Summary() int { return l.summary }

// Review returns the review bound.
func (l Limits) Review() int { return l.review }

// Truncating reports the bound applied to plain responses of category c.
// Titles are not truncated here; they go through title extraction or selection.
func (l Limits) Truncating(c Category) (int, bool) {
	switch c {
	case CategoryDescription:
		return l.description, true
	case CategorySummary:
		return l.summary, true
	case CategoryReview:
		return l.review, true
	default:
		return 0, false
	}
}

func positiveOr(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}
