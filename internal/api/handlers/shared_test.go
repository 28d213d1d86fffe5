package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ndewijer/Investment-Simulator-Backend/internal/validation"
)

// TestParseJSON tests the parseJSON helper function.
// This is an internal test (package handlers, not handlers_test) because
// parseJSON is unexported.
func TestParseJSON(t *testing.T) {
	type body struct {
		Name  string `json:"name"`
		Years int    `json:"years"`
	}

	t.Run("decodes a valid body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"cdi","years":10}`))

		got, err := parseJSON[body](req)

		if err != nil {
			t.Fatalf("parseJSON() returned unexpected error: %v", err)
		}
		if got.Name != "cdi" || got.Years != 10 {
			t.Errorf("Unexpected result: %+v", got)
		}
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"cdi","yeras":10}`))

		if _, err := parseJSON[body](req); err == nil {
			t.Error("Expected error for unknown field, got nil")
		}
	})

	t.Run("rejects trailing data", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"cdi"} {"name":"ipca"}`))

		if _, err := parseJSON[body](req); err == nil {
			t.Error("Expected error for trailing data, got nil")
		}
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))

		if _, err := parseJSON[body](req); err == nil {
			t.Error("Expected error for malformed JSON, got nil")
		}
	})
}

func TestRespondValidation(t *testing.T) {
	t.Run("field errors become details", func(t *testing.T) {
		w := httptest.NewRecorder()

		respondValidation(w, &validation.Error{Fields: map[string]string{"years": "years must be greater than zero"}})

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}

		var response struct {
			Error   string            `json:"error"`
			Details map[string]string `json:"details"`
		}
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.Details["years"] != "years must be greater than zero" {
			t.Errorf("Unexpected details: %v", response.Details)
		}
	})

	t.Run("plain errors become a message", func(t *testing.T) {
		w := httptest.NewRecorder()

		respondValidation(w, validation.ErrInvalidUUID)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), validation.ErrInvalidUUID.Error()) {
			t.Errorf("Expected message in body, got %s", w.Body.String())
		}
	})
}
