// Package classify implements deterministic keyword classification of HR
// requests. Classification is pure string matching with no I/O, so it is safe
// to call concurrently.
package classify

import (
	"fmt"
	"strings"
)

// Category is a classification outcome for an HR request.
type Category string

const (
	CategoryLeave      Category = "leave"
	CategoryExpense    Category = "expense"
	CategoryOnboarding Category = "onboarding"
	CategoryPulse      Category = "pulse"
	CategoryUnclear    Category = "unclear"
)

// categories lists the scorable categories in declaration order. The order is
// a contract: when two categories score equally, the earliest one wins.
var categories = []Category{
	CategoryLeave,
	CategoryExpense,
	CategoryOnboarding,
	CategoryPulse,
}

// keywords maps each category to its fixed keyword list. A keyword scores one
// point when it appears as a case-insensitive substring of the message,
// regardless of how many times it occurs.
var keywords = map[Category][]string{
	CategoryLeave: {
		"leave", "vacation", "time off", "sick", "pto", "holiday",
		"absent", "days off",
	},
	CategoryExpense: {
		"expense", "spent", "cost", "receipt", "claim", "reimburse",
		"lunch", "dinner", "travel", "hotel", "flight", "$", "dollars",
	},
	CategoryOnboarding: {
		"onboarding", "new employee", "new hire", "start date", "welcome",
		"first day", "joining", "orientation",
	},
	CategoryPulse: {
		"pulse", "feedback", "survey", "how are you", "satisfaction",
		"mood", "feeling", "team morale", "check-in",
	},
}

// Result is the outcome of classifying a single message.
type Result struct {
	RequestType Category         `json:"request_type"`
	Confidence  float64          `json:"confidence"`
	Suggestion  string           `json:"suggestion"`
	Scores      map[Category]int `json:"scores"`
}

// Classify scores a message against the fixed keyword lists and returns the
// best-matching category. When no keyword matches at all, the category is
// "unclear" with confidence 0.3. Otherwise confidence is
// min(0.95, 0.6 + 0.1*maxScore).
func Classify(message string) Result {
	lower := strings.ToLower(message)

	scores := make(map[Category]int, len(categories))
	best := CategoryUnclear
	maxScore := 0
	for _, cat := range categories {
		score := 0
		for _, kw := range keywords[cat] {
			if strings.Contains(lower, kw) {
				score++
			}
		}
		scores[cat] = score
		// Strictly greater keeps the first-declared category on ties.
		if score > maxScore {
			maxScore = score
			best = cat
		}
	}

	confidence := 0.3
	if maxScore > 0 {
		confidence = 0.6 + 0.1*float64(maxScore)
		if confidence > 0.95 {
			confidence = 0.95
		}
	}

	return Result{
		RequestType: best,
		Confidence:  confidence,
		Suggestion:  fmt.Sprintf("This appears to be a %s request", best),
		Scores:      scores,
	}
}
