package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/lehigh-university-libraries/microarchive/internal/ead"
	"github.com/lehigh-university-libraries/microarchive/internal/report"
)

// WarningsHeader carries build warnings on successful render responses.
const WarningsHeader = "X-Microarchive-Warnings"

type fieldError struct {
	Field      string `json:"field"`
	Item       int    `json:"item,omitempty"`
	Identifier string `json:"identifier,omitempty"`
	Message    string `json:"message"`
}

type errorResponse struct {
	Errors []fieldError `json:"errors"`
}

type validateResponse struct {
	Valid    bool         `json:"valid"`
	Errors   []fieldError `json:"errors"`
	Warnings []string     `json:"warnings"`
}

// HandleRender builds a finding aid from a JSON ead.Request. The format
// query parameter selects xml (default), json or markdown output.
func (h *Handler) HandleRender(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "xml"
	}
	if format != "xml" && format != "json" && format != "markdown" {
		h.writeError(w, "Invalid format. Must be 'xml', 'json', or 'markdown'", http.StatusBadRequest)
		return
	}

	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	result, err := ead.Render(req)
	if err != nil {
		h.writeRenderError(w, err)
		return
	}

	warnings := warningTexts(result.Warnings)
	for _, warn := range warnings {
		slog.Warn("Render warning", "archive", result.Archive.ID(), "warning", warn)
	}
	if len(warnings) > 0 {
		w.Header().Set(WarningsHeader, strings.Join(warnings, "; "))
	}

	slog.Info("Rendered finding aid", "archive", result.Archive.ID(), "items", len(req.Items), "format", format)

	switch format {
	case "json":
		h.writeJSON(w, result.Archive)
	case "markdown":
		var buf bytes.Buffer
		if err := report.WriteMarkdown(&buf, result.Archive); err != nil {
			h.writeError(w, "Failed to render report: "+err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		if _, err := w.Write(buf.Bytes()); err != nil {
			slog.Error("Unable to write report response", "err", err)
		}
	default:
		w.Header().Set("Content-Type", "text/xml; charset=utf-8")
		if _, err := w.Write(result.XML); err != nil {
			slog.Error("Unable to write XML response", "err", err)
		}
	}
}

// HandleValidate reports every validation error and warning for a request
// without producing a document.
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	resp := validateResponse{Errors: []fieldError{}, Warnings: []string{}}
	archive, err := ead.New(req)
	if err != nil {
		if !errors.Is(err, ead.ErrValidation) {
			h.writeError(w, "Failed to validate request: "+err.Error(), http.StatusInternalServerError)
			return
		}
		resp.Errors = fieldErrors(err)
	} else {
		resp.Valid = true
		resp.Warnings = warningTexts(archive.Warnings())
	}

	h.writeJSON(w, resp)
}

func (h *Handler) decodeRequest(w http.ResponseWriter, r *http.Request) (ead.Request, bool) {
	var req ead.Request
	r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeError(w, "Request body too large", http.StatusRequestEntityTooLarge)
			return ead.Request{}, false
		}
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return ead.Request{}, false
	}
	return req, true
}

func (h *Handler) writeRenderError(w http.ResponseWriter, err error) {
	if !errors.Is(err, ead.ErrValidation) {
		h.writeError(w, "Failed to render finding aid: "+err.Error(), http.StatusInternalServerError)
		return
	}
	errs := fieldErrors(err)
	slog.Info("Rejected render request", "errors", len(errs))
	h.writeJSONStatus(w, errorResponse{Errors: errs}, http.StatusUnprocessableEntity)
}

func fieldErrors(err error) []fieldError {
	verrs := ead.ValidationErrors(err)
	out := make([]fieldError, 0, len(verrs))
	for _, v := range verrs {
		out = append(out, fieldError{
			Field:      v.Field,
			Item:       v.Item,
			Identifier: v.Identifier,
			Message:    v.Message,
		})
	}
	return out
}

func warningTexts(warnings []ead.Warning) []string {
	out := make([]string, 0, len(warnings))
	for _, warn := range warnings {
		out = append(out, warn.Warning())
	}
	return out
}
