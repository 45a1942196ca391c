// Package main implements the hrctl CLI for manual operations against the
// hrflowd HTTP server.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	// serverURL is the base URL for the hrflowd HTTP server
	serverURL string
	// employeeID is passed along with submissions
	employeeID string
	// receiptURL is attached to expense submissions
	receiptURL string
	// version information
	version = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hrctl",
	Short: "CLI for hrflowd HTTP server operations",
	Long: `hrctl is a command-line interface for interacting with the hrflowd HTTP server.
It provides commands for classifying and submitting HR requests and for
checking server health.`,
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8000", "hrflowd server URL")
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(leaveCmd)
	rootCmd.AddCommand(expenseCmd)

	processCmd.Flags().StringVar(&employeeID, "employee", "", "employee ID to attach to the request")
	leaveCmd.Flags().StringVar(&employeeID, "employee", "", "employee ID to attach to the request")
	expenseCmd.Flags().StringVar(&employeeID, "employee", "", "employee ID to attach to the request")
	expenseCmd.Flags().StringVar(&receiptURL, "receipt", "", "URL of the receipt image")
}

// healthCmd checks server health
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check hrflowd server health",
	Long: `Check the health status of the hrflowd HTTP server.

Examples:
  # Check health
  hrctl health

  # Check health on a different server
  hrctl health --server http://localhost:9000`,
	RunE: runHealth,
}

// statusCmd reports the configured webhook endpoints
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show hrflowd service status and webhook endpoints",
	RunE:  runStatus,
}

// classifyCmd classifies a message without submitting it
var classifyCmd = &cobra.Command{
	Use:   "classify <message>",
	Short: "Classify an HR request without submitting it",
	Long: `Classify a natural language HR request into leave, expense, onboarding,
pulse, or unclear.

Examples:
  hrctl classify "I need vacation next week"
  hrctl classify "reimburse my $45.50 lunch"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runClassify,
}

// processCmd classifies and dispatches a message
var processCmd = &cobra.Command{
	Use:   "process <message>",
	Short: "Process a natural language HR request end to end",
	Long: `Classify a natural language HR request and forward it to the matching
workflow webhook.

Examples:
  hrctl process "I need Friday off" --employee EMP001
  hrctl process "submit my $30 taxi receipt"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runProcess,
}

// leaveCmd submits straight to the leave workflow
var leaveCmd = &cobra.Command{
	Use:   "leave <message>",
	Short: "Submit a leave request",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLeave,
}

// expenseCmd submits straight to the expense workflow
var expenseCmd = &cobra.Command{
	Use:   "expense <message>",
	Short: "Submit an expense request",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runExpense,
}

// messageRequest matches internal/http/server.go MessageRequest
type messageRequest struct {
	Message    string `json:"message"`
	EmployeeID string `json:"employee_id,omitempty"`
	ReceiptURL string `json:"receipt_url,omitempty"`
}

func runHealth(cmd *cobra.Command, args []string) error {
	url := fmt.Sprintf("%s/health", serverURL)

	client := &http.Client{
		Timeout: 5 * time.Second,
	}

	resp, err := client.Get(url)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to connect to %s: %v\n", url, err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return fmt.Errorf("server returned status %d (failed to read response body: %w)", resp.StatusCode, readErr)
		}
		return fmt.Errorf("server returned status %d: %s", resp.StatusCode, string(body))
	}

	var health struct {
		Status  string `json:"status"`
		Service string `json:"service"`
		Version string `json:"version"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	fmt.Printf("Server Status: %s\n", health.Status)
	fmt.Printf("Service:       %s\n", health.Service)
	fmt.Printf("Version:       %s\n", health.Version)
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	return getJSON(fmt.Sprintf("%s/status", serverURL))
}

func runClassify(cmd *cobra.Command, args []string) error {
	return postJSON(fmt.Sprintf("%s/classify-request", serverURL), messageRequest{
		Message: strings.Join(args, " "),
	})
}

func runProcess(cmd *cobra.Command, args []string) error {
	return postJSON(fmt.Sprintf("%s/process-request", serverURL), messageRequest{
		Message:    strings.Join(args, " "),
		EmployeeID: employeeID,
	})
}

func runLeave(cmd *cobra.Command, args []string) error {
	return postJSON(fmt.Sprintf("%s/leave-request", serverURL), messageRequest{
		Message:    strings.Join(args, " "),
		EmployeeID: employeeID,
	})
}

func runExpense(cmd *cobra.Command, args []string) error {
	return postJSON(fmt.Sprintf("%s/expense-request", serverURL), messageRequest{
		Message:    strings.Join(args, " "),
		EmployeeID: employeeID,
		ReceiptURL: receiptURL,
	})
}

// getJSON fetches url and pretty-prints the JSON response to stdout.
func getJSON(url string) error {
	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("failed to send request to %s: %w", url, err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

// postJSON posts body to url and pretty-prints the JSON response to stdout.
func postJSON(url string, body any) error {
	reqJSON, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequest("POST", url, bytes.NewReader(reqJSON))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	client := &http.Client{
		Timeout: 60 * time.Second,
	}

	resp, err := client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to send request to %s: %w", url, err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned status %d: %s", resp.StatusCode, string(body))
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		fmt.Println(string(body))
		return nil
	}
	fmt.Println(pretty.String())
	return nil
}
