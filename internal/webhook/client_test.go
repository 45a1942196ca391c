package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fyrsmithlabs/hrflowd/internal/logging"
)

func TestClient_Deliver(t *testing.T) {
	var gotBody map[string]any
	var gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(0, logging.NewNop())
	status, err := c.Deliver(context.Background(), srv.URL, map[string]string{"query": "two days off"})
	if err != nil {
		t.Fatalf("Deliver() error = %v", err)
	}
	if status != http.StatusOK {
		t.Errorf("status = %d, want 200", status)
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", gotContentType)
	}
	if gotBody["query"] != "two days off" {
		t.Errorf("body = %v, want query field delivered", gotBody)
	}
}

func TestClient_DeliverNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(time.Second, logging.NewNop())
	status, err := c.Deliver(context.Background(), srv.URL, map[string]string{})
	if err != nil {
		t.Fatalf("Deliver() error = %v, non-2xx is not a transport error", err)
	}
	if status != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", status)
	}
}

func TestClient_DeliverTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := NewClient(time.Second, logging.NewNop())
	_, err := c.Deliver(context.Background(), srv.URL, map[string]string{})
	if err == nil {
		t.Fatal("Deliver() to closed server expected error")
	}
}
