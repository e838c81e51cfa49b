package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Review is the customer feedback form posted to the API. It is never read back.
type Review struct {
	Name               string `json:"name"`
	FirstVisit         bool   `json:"firstVisit"`
	TasteRating        int    `json:"tasteRating"`
	HygieneRating      int    `json:"hygieneRating"`
	OverallRating      int    `json:"overallRating"`
	WouldComeBack      bool   `json:"wouldComeBack"`
	MobileNumber       string `json:"mobileNumber"`
	Email              string `json:"email"`
	AdditionalComments string `json:"additionalComments"`
	HowDidYouHear      string `json:"howDidYouHear"`
}

const MaxRating = 5

// Sources accepted for Review.HowDidYouHear. Empty means not answered.
var HeardFromOptions = []string{
	"social_media",
	"friend_family",
	"google_search",
	"passing_by",
	"advertisement",
	"other",
}

var ErrReviewNameRequired = errors.New("please enter your name")

// Validate applies the form rules checked before a review is sent.
// The server may still reject the review with its own message.
func (r Review) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrReviewNameRequired
	}

	ratings := []struct {
		field string
		value int
	}{
		{"tasteRating", r.TasteRating},
		{"hygieneRating", r.HygieneRating},
		{"overallRating", r.OverallRating},
	}
	for _, rt := range ratings {
		if rt.value < 0 || rt.value > MaxRating {
			return fmt.Errorf("%s must be between 0 and %d, got %d", rt.field, MaxRating, rt.value)
		}
	}

	if r.HowDidYouHear != "" && !validHeardFrom(r.HowDidYouHear) {
		return fmt.Errorf("howDidYouHear %q is not one of %s", r.HowDidYouHear, strings.Join(HeardFromOptions, ", "))
	}
	return nil
}

func validHeardFrom(v string) bool {
	for _, opt := range HeardFromOptions {
		if v == opt {
			return true
		}
	}
	return false
}
