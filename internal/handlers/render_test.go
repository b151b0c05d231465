package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const referenceBody = `{
  "identity": {"title": "Test", "extent": "1 box"},
  "contact": {"street": "1 Acacia Av."},
  "description": {"scope": "Test", "langs": ["eng"]},
  "items": [
    {"identifier": "prefix/Dir1/Dir1-1/item1", "title": "Item1", "url": "https://example.org/1.jpg"},
    {"identifier": "prefix/Dir1/item2", "title": "Item2"},
    {"identifier": "prefix/Dir2/Dir2-1/item3", "title": "Item3"},
    {"identifier": "prefix/Dir2/item4", "title": "Item4"}
  ]
}`

func TestHandleRender(t *testing.T) {
	tests := []struct {
		name        string
		method      string
		target      string
		body        string
		status      int
		contentType string
		contains    string
	}{
		{
			name:        "xml",
			method:      http.MethodPost,
			target:      "/api/render",
			body:        referenceBody,
			status:      http.StatusOK,
			contentType: "text/xml",
			contains:    `<ead xmlns="urn:isbn:1-931666-22-9">`,
		},
		{
			name:        "json projection",
			method:      http.MethodPost,
			target:      "/api/render?format=json",
			body:        referenceBody,
			status:      http.StatusOK,
			contentType: "application/json",
			contains:    `"unitid":"prefix"`,
		},
		{
			name:        "markdown report",
			method:      http.MethodPost,
			target:      "/api/render?format=markdown",
			body:        referenceBody,
			status:      http.StatusOK,
			contentType: "text/markdown",
			contains:    "# Test",
		},
		{
			name:   "unknown format",
			method: http.MethodPost,
			target: "/api/render?format=pdf",
			body:   referenceBody,
			status: http.StatusBadRequest,
		},
		{
			name:   "wrong method",
			method: http.MethodGet,
			target: "/api/render",
			status: http.StatusMethodNotAllowed,
		},
		{
			name:   "invalid json",
			method: http.MethodPost,
			target: "/api/render",
			body:   `{"identity":`,
			status: http.StatusBadRequest,
		},
	}

	h := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			h.HandleRender(rec, req)

			if rec.Code != tt.status {
				t.Fatalf("Expected status %d, got %d: %s", tt.status, rec.Code, rec.Body.String())
			}
			if tt.contentType != "" && !strings.HasPrefix(rec.Header().Get("Content-Type"), tt.contentType) {
				t.Errorf("Expected content type %s, got %s", tt.contentType, rec.Header().Get("Content-Type"))
			}
			if tt.contains != "" && !strings.Contains(rec.Body.String(), tt.contains) {
				t.Errorf("Expected body to contain %q, got %s", tt.contains, rec.Body.String())
			}
		})
	}
}

func TestHandleRenderValidationFailure(t *testing.T) {
	body := `{"identity":{"title":""},"description":{"scope":""},"items":[{"identifier":"a//b"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/render", strings.NewReader(body))
	rec := httptest.NewRecorder()

	New().HandleRender(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("Expected status 422, got %d", rec.Code)
	}

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(resp.Errors) != 3 {
		t.Fatalf("Expected 3 errors, got %d: %+v", len(resp.Errors), resp.Errors)
	}
	if resp.Errors[2].Field != "identifier" || resp.Errors[2].Item != 1 || resp.Errors[2].Identifier != "a//b" {
		t.Errorf("Unexpected item error: %+v", resp.Errors[2])
	}
}

func TestHandleRenderWarningsHeader(t *testing.T) {
	body := `{"identity":{"title":"T"},"description":{"scope":"S"},"items":[{"identifier":"d/a"},{"identifier":"d/a"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/render", strings.NewReader(body))
	rec := httptest.NewRecorder()

	New().HandleRender(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get(WarningsHeader); !strings.Contains(got, `duplicate identifier "d/a"`) {
		t.Errorf("Expected duplicate warning header, got %q", got)
	}
}

func TestHandleRenderBodyLimit(t *testing.T) {
	h := New()
	h.maxRequestBytes = 16

	req := httptest.NewRequest(http.MethodPost, "/api/render", strings.NewReader(referenceBody))
	rec := httptest.NewRecorder()

	h.HandleRender(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("Expected status 413 for oversized body, got %d", rec.Code)
	}
}

func TestHandleValidate(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		valid    bool
		errors   int
		warnings int
	}{
		{name: "valid", body: referenceBody, valid: true},
		{name: "missing title", body: `{"description":{"scope":"S"},"items":[]}`, errors: 1},
		{name: "duplicates", body: `{"identity":{"title":"T"},"description":{"scope":"S"},"items":[{"identifier":"x"},{"identifier":"x"}]}`, valid: true, warnings: 1},
	}

	h := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/validate", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			h.HandleValidate(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("Expected status 200, got %d", rec.Code)
			}
			var resp validateResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if resp.Valid != tt.valid {
				t.Errorf("Expected valid=%v, got %v", tt.valid, resp.Valid)
			}
			if len(resp.Errors) != tt.errors {
				t.Errorf("Expected %d errors, got %+v", tt.errors, resp.Errors)
			}
			if len(resp.Warnings) != tt.warnings {
				t.Errorf("Expected %d warnings, got %v", tt.warnings, resp.Warnings)
			}
		})
	}
}
