package router

import "github.com/fyrsmithlabs/hrflowd/internal/classify"

// Request type labels used in result envelopes. These are an external
// contract with the receiving workflows.
const (
	TypeLeave      = "leave_request"
	TypeExpense    = "expense_request"
	TypeOnboarding = "onboarding_request"
	TypePulse      = "pulse_response"
)

// Envelope is the uniform result of a submission attempt.
//
//   - 200 from the webhook: status "success" with details and next steps
//   - any other status:     status "error" with the code in the message
//   - transport failure:    status "error" with the error text
type Envelope struct {
	Status    string `json:"status"`
	Type      string `json:"type"`
	Message   string `json:"message"`
	Details   string `json:"details,omitempty"`
	NextSteps string `json:"next_steps,omitempty"`
	Note      string `json:"note,omitempty"`
}

// ExpenseStatusInfo is the placeholder response of the expense status lookup.
// There is no expense store yet; the response says so.
type ExpenseStatusInfo struct {
	Status     string `json:"status"`
	Message    string `json:"message"`
	Details    string `json:"details"`
	EmployeeID string `json:"employee_id"`
}

// Outcome is the terminal result of routing one request: either a submission
// envelope, or the raw classification when the request was unclear and no
// webhook call was made.
type Outcome struct {
	Envelope       *Envelope
	Classification *classify.Result
}

// Payload returns whichever result the outcome carries, ready for JSON
// serialization.
func (o *Outcome) Payload() any {
	if o.Envelope != nil {
		return o.Envelope
	}
	return o.Classification
}
