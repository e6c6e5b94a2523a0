package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/terra-clan/interview-assistant/internal/dashboard"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"
)

func (s *Server) handleListCandidates(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r, 50)
	rows := dashboard.Rank(s.roster.Candidates())

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"candidates": dashboard.Page(rows, limit, offset),
		"total":      len(rows),
		"limit":      limit,
		"offset":     offset,
	})
}

func (s *Server) handleExportCandidates(w http.ResponseWriter, r *http.Request) {
	buf, err := dashboard.ExportXLSX(dashboard.Rank(s.roster.Candidates()))
	if err != nil {
		s.logger.Error("failed to export roster", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to export roster")
		return
	}

	respondAttachment(w, contentTypeXLSX, "candidates.xlsx", buf.Bytes())
}

func (s *Server) handleGetCandidate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	c, ok := s.roster.Get(id)
	if !ok {
		respondError(w, http.StatusNotFound, "not_found", "candidate not found")
		return
	}

	respondJSON(w, http.StatusOK, dashboard.BuildDetail(c))
}

func (s *Server) handleCandidateReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	c, ok := s.roster.Get(id)
	if !ok {
		respondError(w, http.StatusNotFound, "not_found", "candidate not found")
		return
	}

	data, err := dashboard.RenderPDF(dashboard.BuildDetail(c))
	if err != nil {
		s.logger.Error("failed to render report", "candidate_id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to render report")
		return
	}

	respondAttachment(w, contentTypePDF, "candidate-"+id+".pdf", data)
}
