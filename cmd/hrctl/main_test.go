package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostJSON(t *testing.T) {
	t.Run("posts body and accepts 200", func(t *testing.T) {
		var got messageRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"status":"success"}`))
		}))
		defer server.Close()

		err := postJSON(server.URL+"/leave-request", messageRequest{
			Message:    "vacation",
			EmployeeID: "EMP001",
		})
		require.NoError(t, err)
		assert.Equal(t, "vacation", got.Message)
		assert.Equal(t, "EMP001", got.EmployeeID)
	})

	t.Run("non-200 becomes error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "Message is required", http.StatusBadRequest)
		}))
		defer server.Close()

		err := postJSON(server.URL+"/leave-request", messageRequest{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "400")
	})
}

func TestGetJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"operational"}`))
	}))
	defer server.Close()

	assert.NoError(t, getJSON(server.URL+"/status"))
}
