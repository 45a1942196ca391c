// Package router dispatches classified HR requests to their workflow
// webhooks and wraps the results in uniform envelopes.
//
// Routing is a flat five-way dispatch with no retries and no intermediate
// state: a request either classifies, extracts, and forwards, or terminates
// early as unclear.
package router

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/hrflowd/internal/classify"
	"github.com/fyrsmithlabs/hrflowd/internal/extract"
	"github.com/fyrsmithlabs/hrflowd/internal/logging"
	"github.com/fyrsmithlabs/hrflowd/internal/webhook"
)

// Endpoints holds the category-specific webhook URLs.
type Endpoints struct {
	Leave      string
	Expense    string
	Onboarding string
	Pulse      string
}

// Router forwards structured HR requests to workflow webhooks.
type Router struct {
	webhooks  *webhook.Client
	endpoints Endpoints
	logger    *logging.Logger
}

// New creates a router delivering through client to the given endpoints.
func New(client *webhook.Client, endpoints Endpoints, logger *logging.Logger) *Router {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Router{
		webhooks:  client,
		endpoints: endpoints,
		logger:    logger,
	}
}

// ConfiguredEndpoints returns the webhook URLs the router delivers to.
func (r *Router) ConfiguredEndpoints() Endpoints {
	return r.endpoints
}

// Classify scores message without dispatching it anywhere.
func (r *Router) Classify(message string) classify.Result {
	return classify.Classify(message)
}

// Route classifies message and forwards it down the matching submission path.
// An empty employeeID is treated as the UNKNOWN sentinel. Webhook failures
// are folded into error envelopes, never returned as errors.
func (r *Router) Route(ctx context.Context, message, employeeID string) *Outcome {
	if employeeID == "" {
		employeeID = extract.UnknownEmployeeID
	}

	// Correlate everything downstream, webhook delivery included, with
	// this request.
	ctx = logging.WithRequestID(ctx, uuid.NewString())
	if logging.ValidID(employeeID) {
		ctx = logging.WithEmployeeID(ctx, employeeID)
	}

	result := classify.Classify(message)
	r.logger.Info(ctx, "request classified",
		zap.String("request_type", string(result.RequestType)),
		zap.Float64("confidence", result.Confidence))

	switch result.RequestType {
	case classify.CategoryLeave:
		return &Outcome{Envelope: r.SubmitLeave(ctx, message, employeeID)}
	case classify.CategoryExpense:
		return &Outcome{Envelope: r.SubmitExpense(ctx, message, employeeID, "")}
	case classify.CategoryOnboarding:
		return &Outcome{Envelope: r.SubmitOnboarding(ctx, extract.Onboarding(message, employeeID))}
	case classify.CategoryPulse:
		return &Outcome{Envelope: r.SubmitPulse(ctx, extract.Pulse(message, employeeID))}
	default:
		// Unclear requests terminate with the classification itself.
		return &Outcome{Classification: &result}
	}
}

// SubmitLeave forwards a leave request.
func (r *Router) SubmitLeave(ctx context.Context, message, employeeID string) *Envelope {
	payload := map[string]any{
		"query":        message,
		"employee_id":  employeeID,
		"request_type": "leave",
	}

	status, err := r.webhooks.Deliver(ctx, r.endpoints.Leave, payload)
	if err != nil {
		return transportError(TypeLeave, err)
	}
	if status != http.StatusOK {
		return &Envelope{
			Status:  "error",
			Type:    TypeLeave,
			Message: fmt.Sprintf("Failed to submit leave request. Status: %d", status),
		}
	}
	return &Envelope{
		Status:    "success",
		Type:      TypeLeave,
		Message:   "Leave request submitted successfully",
		Details:   fmt.Sprintf("Your request: %q has been sent for manager approval.", message),
		NextSteps: "You'll receive an email once your manager reviews the request.",
	}
}

// SubmitExpense extracts the amount from message and forwards an expense
// request. receiptURL may be empty.
func (r *Router) SubmitExpense(ctx context.Context, message, employeeID, receiptURL string) *Envelope {
	amount := extract.Amount(message)
	payload := map[string]any{
		"query":        message,
		"employee_id":  employeeID,
		"amount":       amount,
		"receipt_url":  receiptURL,
		"request_type": "expense",
	}

	status, err := r.webhooks.Deliver(ctx, r.endpoints.Expense, payload)
	if err != nil {
		return transportError(TypeExpense, err)
	}
	if status != http.StatusOK {
		return &Envelope{
			Status:  "error",
			Type:    TypeExpense,
			Message: fmt.Sprintf("Failed to submit expense request. Status: %d", status),
			Note:    "Make sure your expense workflow is active",
		}
	}
	return &Envelope{
		Status:    "success",
		Type:      TypeExpense,
		Message:   "Expense request submitted successfully",
		Details:   fmt.Sprintf("Expense: $%s - %q submitted for approval.", amount, message),
		NextSteps: "You'll receive an email once your manager reviews the expense.",
	}
}

// SubmitOnboarding forwards an onboarding record. The payload keys are the
// human-readable names the receiving workflow expects; keep them verbatim.
func (r *Router) SubmitOnboarding(ctx context.Context, rec extract.OnboardingRecord) *Envelope {
	payload := map[string]any{
		"First Name":              rec.FirstName,
		"Last Name":               rec.LastName,
		"Email Address":           rec.Email,
		"Role":                    rec.Role,
		"Department":              rec.Department,
		"Start Date":              rec.StartDate,
		"Manager's Email Address": rec.ManagerEmail,
		"EmployeeID":              rec.EmployeeID,
	}

	status, err := r.webhooks.Deliver(ctx, r.endpoints.Onboarding, payload)
	if err != nil {
		return transportError(TypeOnboarding, err)
	}
	if status != http.StatusOK {
		return &Envelope{
			Status:  "error",
			Type:    TypeOnboarding,
			Message: fmt.Sprintf("Failed to start onboarding. Status: %d", status),
		}
	}
	return &Envelope{
		Status:  "success",
		Type:    TypeOnboarding,
		Message: "Onboarding process started successfully",
		Details: fmt.Sprintf("Welcome email sent to %s %s at %s", rec.FirstName, rec.LastName, rec.Email),
		NextSteps: fmt.Sprintf("Employee will receive onboarding instructions and document upload link. Manager %s has been notified.",
			rec.ManagerEmail),
	}
}

// SubmitPulse forwards a pulse-check record. The payload wraps the record in
// a single-element "body" list; the receiving workflow expects an array.
func (r *Router) SubmitPulse(ctx context.Context, rec extract.PulseRecord) *Envelope {
	payload := map[string]any{
		"body": []map[string]any{
			{
				"name":   rec.EmployeeName,
				"email":  rec.Email,
				"answer": rec.Feedback,
				"rating": rec.Rating,
			},
		},
	}

	status, err := r.webhooks.Deliver(ctx, r.endpoints.Pulse, payload)
	if err != nil {
		return transportError(TypePulse, err)
	}
	if status != http.StatusOK {
		return &Envelope{
			Status:  "error",
			Type:    TypePulse,
			Message: fmt.Sprintf("Failed to submit pulse response. Status: %d", status),
		}
	}
	return &Envelope{
		Status:    "success",
		Type:      TypePulse,
		Message:   "Pulse check response submitted successfully",
		Details:   fmt.Sprintf("Thank you %s! Your feedback (rating: %d/10) has been recorded.", rec.EmployeeName, rec.Rating),
		NextSteps: "Your response will be analyzed for sentiment and included in team insights.",
	}
}

// ExpenseStatus reports the status of expense requests for an employee.
// There is no expense store wired yet (persistence is out of scope), so this
// returns an informational placeholder.
func (r *Router) ExpenseStatus(employeeID string) *ExpenseStatusInfo {
	return &ExpenseStatusInfo{
		Status:     "info",
		Message:    "Expense status checking not yet implemented",
		Details:    "This would query the expense database for pending and approved expenses",
		EmployeeID: employeeID,
	}
}

// transportErrorPrefix carries the per-type error lead-ins the receiving
// side displays; they are part of the envelope contract.
var transportErrorPrefix = map[string]string{
	TypeLeave:      "Error: ",
	TypeExpense:    "Error submitting expense: ",
	TypeOnboarding: "Error starting onboarding: ",
	TypePulse:      "Error submitting pulse response: ",
}

func transportError(envType string, err error) *Envelope {
	return &Envelope{
		Status:  "error",
		Type:    envType,
		Message: transportErrorPrefix[envType] + err.Error(),
	}
}
