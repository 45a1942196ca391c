package extract

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// PulseRecord is the structured form of a pulse-check response.
type PulseRecord struct {
	EmployeeName string `json:"employee_name"`
	Email        string `json:"email"`
	Feedback     string `json:"feedback"`
	Rating       int    `json:"rating"`
}

// defaultFeedback is used when stripping rating phrases and boilerplate
// leaves nothing of the message.
const defaultFeedback = "Pulse check response submitted"

// ratingPatterns are tried in order; the first match supplies the rating.
// All of them are also subtracted from the message when building feedback,
// whether or not they supplied the rating.
var ratingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:rate|rating|score).*?(\d+)(?:/10|out of 10)?`),
	regexp.MustCompile(`(?i)(\d+)(?:/10|out of 10)`),
	regexp.MustCompile(`(?i)(\d+)\s*(?:stars?|points?)`),
	regexp.MustCompile(`(?i)feeling\s+(\d+)`),
}

// cleanupPatterns strip submission boilerplate from feedback text.
var cleanupPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:submit|give|provide)\s+(?:a\s+)?(?:pulse\s+)?(?:check\s+)?(?:response|feedback|survey)`),
	regexp.MustCompile(`(?i)(?:pulse\s+check|survey|feedback)\s*:?`),
	regexp.MustCompile(`(?i)my\s+(?:rating|score|feedback)\s+is`),
	regexp.MustCompile(`(?i)I\s+(?:want\s+to\s+)?(?:submit|give|provide)`),
}

// pulseNamePattern captures "I'm Firstname [Lastname]" with capitalized words.
// Deliberately case-sensitive: lowercase "i'm bob" does not name anyone.
var pulseNamePattern = regexp.MustCompile(`I'?m\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)`)

// Pulse extracts a pulse-check record from a free-text message. employeeID is
// used verbatim in the defaulted name and email; it is not synthesized here.
func Pulse(message, employeeID string) PulseRecord {
	rating := 5
	for _, p := range ratingPatterns {
		m := p.FindStringSubmatch(message)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			// The capture is \d+, so a range failure is a huge positive
			// number. Clamp it like any other big rating.
			if errors.Is(err, strconv.ErrRange) {
				rating = 10
				break
			}
			continue
		}
		rating = clampRating(n)
		break
	}

	name := "Employee " + employeeID
	if m := pulseNamePattern.FindStringSubmatch(message); m != nil {
		name = m[1]
	}

	email := findEmail(message)
	if email == "" {
		email = "employee" + employeeID + "@company.com"
	}

	feedback := message
	for _, p := range ratingPatterns {
		feedback = p.ReplaceAllString(feedback, "")
	}
	for _, p := range cleanupPatterns {
		feedback = p.ReplaceAllString(feedback, "")
	}
	feedback = strings.Trim(strings.TrimSpace(feedback), ",.:!")
	if feedback == "" {
		feedback = defaultFeedback
	}

	return PulseRecord{
		EmployeeName: name,
		Email:        email,
		Feedback:     feedback,
		Rating:       rating,
	}
}

func clampRating(n int) int {
	if n < 1 {
		return 1
	}
	if n > 10 {
		return 10
	}
	return n
}
