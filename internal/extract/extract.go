// Package extract derives structured HR records from free-text messages.
//
// Each extractor is an ordered list of (pattern, apply) rules evaluated
// first-match-wins with a fixed default when no rule matches. Absence of a
// pattern is never an error: every input produces a well-formed record.
// Extractors perform no I/O and are safe for concurrent use.
package extract

import "regexp"

// UnknownEmployeeID is the sentinel the caller passes when no employee
// identifier is available. The onboarding extractor replaces it with a
// timestamp-derived identifier.
const UnknownEmployeeID = "UNKNOWN"

// emailPattern matches a standard email-shaped token anywhere in a message.
var emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

// findEmail returns the first email-shaped token in message, or "".
func findEmail(message string) string {
	return emailPattern.FindString(message)
}
