package extract

import (
	"regexp"
	"strings"
	"time"
)

// now is the clock used for synthesized IDs and default start dates.
// Overridable in tests.
var now = time.Now

// OnboardingRecord is the structured form of an onboarding request. Every
// field carries a default, so a record is always complete even when the
// message contains none of the expected patterns.
type OnboardingRecord struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	Department   string `json:"department"`
	StartDate    string `json:"start_date"`
	ManagerEmail string `json:"manager_email"`
	EmployeeID   string `json:"employee_id"`
}

var (
	namePattern    = regexp.MustCompile(`(?i)(?:hire|employee|person|candidate)\s+(?:named\s+)?([A-Z][a-z]+\s+[A-Z][a-z]+)`)
	managerPattern = regexp.MustCompile(`(?i)manager:?\s+([a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,})`)
	isoDatePrefix  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
)

// keywordRule is a capture regex gated on a literal keyword being present in
// the lowercased message. Rules are evaluated in order, first match wins.
type keywordRule struct {
	keyword string
	capture *regexp.Regexp
}

var roleRules = buildRoleRules()

func buildRoleRules() []keywordRule {
	keywords := []string{"as", "for the position of", "as a", "as an", "role:", "position:"}
	rules := make([]keywordRule, 0, len(keywords))
	for _, kw := range keywords {
		rules = append(rules, keywordRule{
			keyword: kw,
			capture: regexp.MustCompile(`(?i)` + kw + `\s+([^,.\n]+)`),
		})
	}
	return rules
}

var departmentRules = buildDepartmentRules()

func buildDepartmentRules() []keywordRule {
	keywords := []string{"department", "team", "division", "in"}
	rules := make([]keywordRule, 0, len(keywords))
	for _, kw := range keywords {
		rules = append(rules, keywordRule{
			keyword: kw,
			capture: regexp.MustCompile(`(?i)` + kw + `:?\s+([^,.\n]+)`),
		})
	}
	return rules
}

// datePatterns are tried in order; the first one that matches at all ends the
// scan. Only a captured value with an ISO YYYY-MM-DD prefix actually replaces
// the default start date; matches from the phrase patterns are otherwise
// discovered and discarded. This mirrors the behavior the receiving workflow
// was built against, so keep it even though it looks like an oversight.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)start(?:ing)?\s+on\s+([^,.\n]+)`),
	regexp.MustCompile(`(?i)begins?\s+([^,.\n]+)`),
	regexp.MustCompile(`(?i)starting\s+([^,.\n]+)`),
	regexp.MustCompile(`(\d{4}-\d{2}-\d{2})`),
	regexp.MustCompile(`(\d{2}[/-]\d{2}[/-]\d{4})`),
}

// Onboarding extracts an onboarding record from a free-text message.
// employeeID is the caller-supplied identifier; pass UnknownEmployeeID to
// synthesize one from the current UTC time at minute precision.
func Onboarding(message, employeeID string) OnboardingRecord {
	lower := strings.ToLower(message)

	fullName := "New Employee"
	if m := namePattern.FindStringSubmatch(message); m != nil {
		fullName = m[1]
	}
	parts := strings.Fields(fullName)
	firstName := "New"
	lastName := "Employee"
	if len(parts) > 0 {
		firstName = parts[0]
	}
	if len(parts) > 1 {
		lastName = parts[len(parts)-1]
	}

	email := findEmail(message)
	if email == "" {
		email = strings.ToLower(firstName) + "." + strings.ToLower(lastName) + "@company.com"
	}

	role := "New Employee"
	for _, rule := range roleRules {
		if !strings.Contains(lower, rule.keyword) {
			continue
		}
		if m := rule.capture.FindStringSubmatch(message); m != nil {
			role = strings.TrimSpace(m[1])
			break
		}
	}

	department := "General"
	for _, rule := range departmentRules {
		if !strings.Contains(lower, rule.keyword+":") && !strings.Contains(lower, "in "+rule.keyword) {
			continue
		}
		if m := rule.capture.FindStringSubmatch(message); m != nil {
			department = strings.TrimSpace(m[1])
			break
		}
	}

	startDate := now().AddDate(0, 0, 7).Format("2006-01-02")
	for _, p := range datePatterns {
		m := p.FindStringSubmatch(message)
		if m == nil {
			continue
		}
		if captured := strings.TrimSpace(m[1]); isoDatePrefix.MatchString(captured) {
			startDate = captured
		}
		break
	}

	managerEmail := "manager@company.com"
	if m := managerPattern.FindStringSubmatch(message); m != nil {
		managerEmail = m[1]
	}

	if employeeID == UnknownEmployeeID {
		employeeID = "EMP" + now().UTC().Format("200601021504")
	}

	return OnboardingRecord{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		Role:         role,
		Department:   department,
		StartDate:    startDate,
		ManagerEmail: managerEmail,
		EmployeeID:   employeeID,
	}
}
