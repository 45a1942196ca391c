package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/hrflowd/internal/classify"
	"github.com/fyrsmithlabs/hrflowd/internal/extract"
	"github.com/fyrsmithlabs/hrflowd/internal/router"
)

// processInput is the input for process_natural_language_request,
// submit_leave_request, and classify_hr_request.
type processInput struct {
	Message    string `json:"message" jsonschema:"Natural language HR request"`
	EmployeeID string `json:"employee_id,omitempty" jsonschema:"Employee ID (optional)"`
}

type expenseInput struct {
	Message    string `json:"message" jsonschema:"Natural language expense request (e.g., 'I spent $50 on lunch yesterday')"`
	EmployeeID string `json:"employee_id,omitempty" jsonschema:"Employee ID (optional)"`
	ReceiptURL string `json:"receipt_url,omitempty" jsonschema:"URL to receipt image (optional)"`
}

type onboardingInput struct {
	FirstName    string `json:"first_name,omitempty" jsonschema:"New employee's first name"`
	LastName     string `json:"last_name,omitempty" jsonschema:"New employee's last name"`
	Email        string `json:"email,omitempty" jsonschema:"New employee's email address"`
	Role         string `json:"role,omitempty" jsonschema:"Role or job title"`
	Department   string `json:"department,omitempty" jsonschema:"Department or team"`
	StartDate    string `json:"start_date,omitempty" jsonschema:"Start date in YYYY-MM-DD format"`
	ManagerEmail string `json:"manager_email,omitempty" jsonschema:"Manager's email address"`
	EmployeeID   string `json:"employee_id,omitempty" jsonschema:"Employee ID (optional)"`
}

type pulseInput struct {
	EmployeeName string `json:"employee_name,omitempty" jsonschema:"Employee's name"`
	Email        string `json:"email,omitempty" jsonschema:"Employee's email address"`
	Feedback     string `json:"feedback,omitempty" jsonschema:"Free-text survey feedback"`
	Rating       int    `json:"rating,omitempty" jsonschema:"Rating from 1 to 10"`
}

type expenseStatusInput struct {
	EmployeeID string `json:"employee_id" jsonschema:"Employee ID to check expenses for"`
}

// instrument runs the shared per-tool bookkeeping. The returned func must be
// deferred with the tool error.
func (s *Server) instrument(ctx context.Context, tool string) func(err error) {
	start := time.Now()
	s.metrics.IncrementActive(ctx, tool)
	return func(err error) {
		s.metrics.DecrementActive(ctx, tool)
		s.metrics.RecordInvocation(ctx, tool, time.Since(start), err)
	}
}

// textResult wraps v as an indented JSON text block.
func textResult(v any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		data = []byte(fmt.Sprintf("%v", v))
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(data)},
		},
	}
}

func orUnknown(employeeID string) string {
	if employeeID == "" {
		return extract.UnknownEmployeeID
	}
	return employeeID
}

// registerTools registers all MCP tools with the server.
func (s *Server) registerTools() {
	// process_natural_language_request
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "process_natural_language_request",
		Description: "Process any HR request in natural language - handles onboarding, pulse check, leave, expenses automatically",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args processInput) (*mcp.CallToolResult, any, error) {
		done := s.instrument(ctx, "process_natural_language_request")
		var toolErr error
		defer func() { done(toolErr) }()

		if args.Message == "" {
			toolErr = fmt.Errorf("message is required")
			return nil, nil, toolErr
		}

		s.logger.Info("processing natural language request",
			zap.String("employee_id", orUnknown(args.EmployeeID)))

		outcome := s.router.Route(ctx, args.Message, args.EmployeeID)
		payload := outcome.Payload()
		return textResult(payload), payload, nil
	})

	// classify_hr_request
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "classify_hr_request",
		Description: "Automatically classify if a request is for leave, expenses, onboarding, pulse check, or other HR matters",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args processInput) (*mcp.CallToolResult, classify.Result, error) {
		done := s.instrument(ctx, "classify_hr_request")
		var toolErr error
		defer func() { done(toolErr) }()

		if args.Message == "" {
			toolErr = fmt.Errorf("message is required")
			return nil, classify.Result{}, toolErr
		}

		result := s.router.Classify(args.Message)
		return textResult(result), result, nil
	})

	// submit_leave_request
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "submit_leave_request",
		Description: "Submit a leave request to the HR system",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args processInput) (*mcp.CallToolResult, router.Envelope, error) {
		done := s.instrument(ctx, "submit_leave_request")
		var toolErr error
		defer func() { done(toolErr) }()

		if args.Message == "" {
			toolErr = fmt.Errorf("message is required")
			return nil, router.Envelope{}, toolErr
		}

		env := s.router.SubmitLeave(ctx, args.Message, orUnknown(args.EmployeeID))
		return textResult(env), *env, nil
	})

	// submit_expense_request
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "submit_expense_request",
		Description: "Submit an expense request to the HR system",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args expenseInput) (*mcp.CallToolResult, router.Envelope, error) {
		done := s.instrument(ctx, "submit_expense_request")
		var toolErr error
		defer func() { done(toolErr) }()

		if args.Message == "" {
			toolErr = fmt.Errorf("message is required")
			return nil, router.Envelope{}, toolErr
		}

		env := s.router.SubmitExpense(ctx, args.Message, orUnknown(args.EmployeeID), args.ReceiptURL)
		return textResult(env), *env, nil
	})

	// submit_onboarding_request
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "submit_onboarding_request",
		Description: "Start the onboarding workflow for a new employee",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args onboardingInput) (*mcp.CallToolResult, router.Envelope, error) {
		done := s.instrument(ctx, "submit_onboarding_request")
		var toolErr error
		defer func() { done(toolErr) }()

		rec := extract.OnboardingRecord{
			FirstName:    args.FirstName,
			LastName:     args.LastName,
			Email:        args.Email,
			Role:         args.Role,
			Department:   args.Department,
			StartDate:    args.StartDate,
			ManagerEmail: args.ManagerEmail,
			EmployeeID:   args.EmployeeID,
		}

		env := s.router.SubmitOnboarding(ctx, rec)
		return textResult(env), *env, nil
	})

	// submit_pulse_response
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "submit_pulse_response",
		Description: "Submit a pulse check survey response",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args pulseInput) (*mcp.CallToolResult, router.Envelope, error) {
		done := s.instrument(ctx, "submit_pulse_response")
		var toolErr error
		defer func() { done(toolErr) }()

		rating := args.Rating
		if rating == 0 {
			rating = 5
		}

		rec := extract.PulseRecord{
			EmployeeName: args.EmployeeName,
			Email:        args.Email,
			Feedback:     args.Feedback,
			Rating:       rating,
		}

		env := s.router.SubmitPulse(ctx, rec)
		return textResult(env), *env, nil
	})

	// get_expense_status
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_expense_status",
		Description: "Check the status of expense requests",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args expenseStatusInput) (*mcp.CallToolResult, router.ExpenseStatusInfo, error) {
		done := s.instrument(ctx, "get_expense_status")
		var toolErr error
		defer func() { done(toolErr) }()

		if args.EmployeeID == "" {
			toolErr = fmt.Errorf("employee_id is required")
			return nil, router.ExpenseStatusInfo{}, toolErr
		}

		info := s.router.ExpenseStatus(args.EmployeeID)
		return textResult(info), *info, nil
	})
}
