package extract

import "regexp"

// amountPattern matches the first numeric token, optionally preceded by a
// dollar sign and optionally carrying two-decimal cents.
var amountPattern = regexp.MustCompile(`\$?(\d+(?:\.\d{2})?)`)

// Amount extracts the first monetary amount from a message as a decimal
// string without the currency symbol. Returns "0" when the message contains
// no numeric token.
func Amount(message string) string {
	if m := amountPattern.FindStringSubmatch(message); m != nil {
		return m[1]
	}
	return "0"
}
