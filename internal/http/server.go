// Package http provides the HTTP API for hrflowd.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/hrflowd/internal/bridge"
	"github.com/fyrsmithlabs/hrflowd/internal/extract"
	"github.com/fyrsmithlabs/hrflowd/internal/logging"
	"github.com/fyrsmithlabs/hrflowd/internal/router"
)

// ServiceName and ServiceVersion identify the daemon in health and status
// responses.
const (
	ServiceName    = "HR System Workflow"
	ServiceVersion = "1.0.0"
)

// ToolRelay forwards one tool call to a stdio subprocess.
type ToolRelay interface {
	Call(ctx context.Context, id, tool string, args map[string]any) (*bridge.Result, error)
}

// Server provides HTTP endpoints for hrflowd.
type Server struct {
	echo    *echo.Echo
	router  *router.Router
	relay   ToolRelay
	logger  *logging.Logger
	config  *Config
	metrics *HTTPMetrics
}

// Config holds HTTP server configuration.
type Config struct {
	Host string
	Port int
}

// NewServer creates a new HTTP server. The relay may be nil, in which case
// POST /bridge/call returns 503.
func NewServer(rtr *router.Router, relay ToolRelay, logger *logging.Logger, cfg *Config) (*Server, error) {
	if rtr == nil {
		return nil, fmt.Errorf("router cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required for request tracking and debugging")
	}
	if cfg == nil {
		cfg = &Config{
			Host: "0.0.0.0",
			Port: 8000,
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	metrics := NewHTTPMetrics(logger.Underlying())

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(requestContext())
	e.Use(metrics.MetricsMiddleware())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			duration := time.Since(start)

			logger.Info(c.Request().Context(), "http request",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", duration),
			)

			return err
		}
	})

	s := &Server{
		echo:    e,
		router:  rtr,
		relay:   relay,
		logger:  logger,
		config:  cfg,
		metrics: metrics,
	}

	s.registerRoutes()

	return s, nil
}

// requestContext copies the request ID minted by the RequestID middleware
// into the request context, so every log line downstream carries it.
func requestContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			if logging.ValidID(rid) {
				req := c.Request()
				c.SetRequest(req.WithContext(logging.WithRequestID(req.Context(), rid)))
			}
			return next(c)
		}
	}
}

// registerRoutes sets up the HTTP endpoints.
func (s *Server) registerRoutes() {
	s.echo.GET("/", s.handleRoot)
	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/status", s.handleStatus)

	s.echo.POST("/process-request", s.handleProcessRequest)
	s.echo.POST("/leave-request", s.handleLeaveRequest)
	s.echo.POST("/expense-request", s.handleExpenseRequest)
	s.echo.POST("/classify-request", s.handleClassifyRequest)

	s.echo.POST("/bridge/call", s.handleBridgeCall)

	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// MessageRequest is the common request body for the submission endpoints.
type MessageRequest struct {
	Message    string `json:"message"`
	EmployeeID string `json:"employee_id"`
	ReceiptURL string `json:"receipt_url"`
}

// BridgeRequest is the request body for POST /bridge/call.
type BridgeRequest struct {
	ID        string         `json:"id"`
	Tool      string         `json:"tool"`
	Arguments map[string]any `json:"arguments"`
}

// handleRoot returns a minimal liveness response.
func (s *Server) handleRoot(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": ServiceName,
		"version": ServiceVersion,
		"message": "HR system is running and ready to process requests",
	})
}

// handleHealth returns a detailed health check response.
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":    "healthy",
		"service":   ServiceName + " API",
		"version":   ServiceVersion,
		"timestamp": time.Now().Format(time.RFC3339),
		"endpoints": []string{
			"POST /process-request - Process natural language HR requests",
			"POST /leave-request - Submit leave requests",
			"POST /expense-request - Submit expense requests",
			"POST /classify-request - Classify request types",
			"GET /health - Detailed health information",
		},
		"capabilities": []string{
			"Leave request processing",
			"Expense claim processing",
			"Employee onboarding",
			"Pulse check surveys",
			"Natural language request classification",
		},
	})
}

// handleStatus reports the configured workflow endpoints and feature set.
func (s *Server) handleStatus(c echo.Context) error {
	endpoints := s.router.ConfiguredEndpoints()
	return c.JSON(http.StatusOK, map[string]any{
		"status":    "operational",
		"service":   ServiceName,
		"timestamp": time.Now().Format(time.RFC3339),
		"webhook_endpoints": map[string]string{
			"leave":       endpoints.Leave,
			"expense":     endpoints.Expense,
			"onboarding":  endpoints.Onboarding,
			"pulse_check": endpoints.Pulse,
		},
		"features": map[string]bool{
			"natural_language_processing": true,
			"leave_requests":              true,
			"expense_claims":              true,
			"employee_onboarding":         true,
			"pulse_surveys":               true,
			"request_classification":      true,
		},
	})
}

// bindMessage decodes the request body and enforces the message requirement.
func (s *Server) bindMessage(c echo.Context) (*MessageRequest, error) {
	var req MessageRequest
	if err := c.Bind(&req); err != nil {
		s.logger.Warn(c.Request().Context(), "invalid request body", zap.Error(err))
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Message == "" {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Message is required")
	}
	if req.EmployeeID == "" {
		req.EmployeeID = extract.UnknownEmployeeID
	}
	return &req, nil
}

// handleProcessRequest classifies the message and dispatches it to the
// matching workflow.
func (s *Server) handleProcessRequest(c echo.Context) error {
	req, err := s.bindMessage(c)
	if err != nil {
		return err
	}

	outcome := s.router.Route(c.Request().Context(), req.Message, req.EmployeeID)
	return c.JSON(http.StatusOK, outcome.Payload())
}

// handleLeaveRequest submits the message straight to the leave workflow.
func (s *Server) handleLeaveRequest(c echo.Context) error {
	req, err := s.bindMessage(c)
	if err != nil {
		return err
	}

	env := s.router.SubmitLeave(c.Request().Context(), req.Message, req.EmployeeID)
	return c.JSON(http.StatusOK, env)
}

// handleExpenseRequest submits the message straight to the expense workflow.
func (s *Server) handleExpenseRequest(c echo.Context) error {
	req, err := s.bindMessage(c)
	if err != nil {
		return err
	}

	env := s.router.SubmitExpense(c.Request().Context(), req.Message, req.EmployeeID, req.ReceiptURL)
	return c.JSON(http.StatusOK, env)
}

// handleClassifyRequest classifies without dispatching.
func (s *Server) handleClassifyRequest(c echo.Context) error {
	req, err := s.bindMessage(c)
	if err != nil {
		return err
	}

	result := s.router.Classify(req.Message)
	return c.JSON(http.StatusOK, result)
}

// handleBridgeCall relays a tool call to a stdio subprocess.
func (s *Server) handleBridgeCall(c echo.Context) error {
	if s.relay == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "bridge is not configured")
	}

	var req BridgeRequest
	if err := c.Bind(&req); err != nil {
		s.logger.Warn(c.Request().Context(), "invalid bridge request", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Tool == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Tool is required")
	}

	result, err := s.relay.Call(c.Request().Context(), req.ID, req.Tool, req.Arguments)
	if err != nil {
		s.logger.Error(c.Request().Context(), "bridge call failed",
			zap.String("tool", req.Tool),
			zap.Error(err),
		)
		return echo.NewHTTPError(http.StatusBadGateway, fmt.Sprintf("bridge call failed: %v", err))
	}

	return c.JSON(http.StatusOK, result)
}

// Echo exposes the underlying echo instance for tests.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.logger.Info(context.Background(), "starting http server", zap.String("addr", addr))
	return s.echo.Start(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info(ctx, "shutting down http server")
	return s.echo.Shutdown(ctx)
}
