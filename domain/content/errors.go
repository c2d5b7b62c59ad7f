package content

import (
	"errors"
	"fmt"
)

// ErrNoTitleFound indicates that no usable title could be extracted from a response.
var ErrNoTitleFound = errors.New("could not extract a valid title from the response")

// ErrParse matches every ParseError.
var ErrParse = errors.New("parse rating/review")

// Reasons carried by ParseError.
const (
	ReasonNoRating   = "no rating"
	ReasonNoReview   = "no review"
	ReasonOutOfRange = "out of range"
)

// ParseError reports why a rating/review response was rejected.
type ParseError struct {
	Reason string
	Detail string
}

func (e *ParseError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %s", ErrParse, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", ErrParse, e.Reason, e.Detail)
}

// Is reports whether target is ErrParse.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}
