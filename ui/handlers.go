package ui

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"github.com/EducAI25/intellidash-insights-ai/domain/core"
	"github.com/EducAI25/intellidash-insights-ai/domain/dataset"
	apperrors "github.com/EducAI25/intellidash-insights-ai/internal/errors"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleUpload accepts a multipart spreadsheet and creates a dashboard
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)
	if err := r.ParseMultipartForm(s.maxBody); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid multipart form: %w", err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("missing file field: %w", err))
		return
	}
	defer file.Close()

	title := r.FormValue("title")
	dashboard, err := s.service.CreateFromUpload(r.Context(), core.DefaultUserID, title, file, header.Filename)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, dashboard)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	dashboards, err := s.service.ListDashboards(r.Context(), core.DefaultUserID, 50, 0)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if dashboards == nil {
		dashboards = []*dataset.Dashboard{}
	}
	writeJSON(w, http.StatusOK, dashboards)
}

type dashboardResponse struct {
	Dashboard *dataset.Dashboard     `json:"dashboard"`
	Mapping   *dataset.ColumnMapping `json:"mapping"`
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := dashboardID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	dashboard, err := s.service.GetDashboard(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	mapping, err := s.service.GetColumnMapping(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboardResponse{Dashboard: dashboard, Mapping: mapping})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := dashboardID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.service.DeleteDashboard(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type viewRequest struct {
	Filters dataset.FilterState `json:"filters"`
}

// handleView returns the derived dashboard panels for the given filters
func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	id, err := dashboardID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var req viewRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
			return
		}
	}

	view, err := s.service.View(r.Context(), id, req.Filters)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleSaveMappings(w http.ResponseWriter, r *http.Request) {
	id, err := dashboardID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var mapping dataset.ColumnMapping
	if err := json.NewDecoder(r.Body).Decode(&mapping); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	if err := s.service.SaveColumnMapping(r.Context(), id, &mapping); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapping)
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Answer     string `json:"answer"`
	AnswerHTML string `json:"answer_html"`
}

// handleChat answers a question about the dashboard's data. The answer
// is returned both raw and rendered from Markdown to HTML.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	id, err := dashboardID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("message is required"))
		return
	}

	answer, err := s.service.Ask(r.Context(), id, req.Message)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, chatResponse{
		Answer:     answer,
		AnswerHTML: renderMarkdown(answer),
	})
}

// handleExport streams the filtered rows as a CSV download. Filters
// come from query parameters.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	id, err := dashboardID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	filters := dataset.FilterState{}
	for key, values := range r.URL.Query() {
		if len(values) > 0 && values[0] != "" {
			filters[key] = values[0]
		}
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", string(id)+".csv"))
	if err := s.service.ExportCSV(r.Context(), id, filters, w); err != nil {
		log.Printf("[Server] CSV export failed for dashboard %s: %v", id, err)
	}
}

func dashboardID(r *http.Request) (core.DashboardID, error) {
	return core.ParseDashboardID(chi.URLParam(r, "dashboardID"))
}

func renderMarkdown(text string) string {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	return string(markdown.ToHTML([]byte(text), p, renderer))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[Server] Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	code := apperrors.GetCode(err)
	if code == "UNKNOWN" {
		switch status {
		case http.StatusNotFound:
			code = apperrors.CodeNotFound
		case http.StatusBadRequest:
			code = apperrors.CodeInvalidInput
		default:
			code = apperrors.CodeInternalError
		}
	}
	writeJSON(w, status, map[string]string{"error": err.Error(), "code": code})
}

// writeServiceError maps domain errors onto HTTP status codes
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case core.IsNotFoundError(err):
		writeError(w, http.StatusNotFound, err)
	case core.IsUploadError(err),
		errors.Is(err, core.ErrUnknownFilter),
		errors.Is(err, core.ErrColumnMismatch):
		writeError(w, http.StatusBadRequest, err)
	default:
		log.Printf("[Server] Internal error: %v", err)
		writeError(w, http.StatusInternalServerError, err)
	}
}
