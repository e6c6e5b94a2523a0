package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/terra-clan/interview-assistant/internal/extractor"
	"github.com/terra-clan/interview-assistant/internal/models"
	"github.com/terra-clan/interview-assistant/internal/session"
)

const (
	maxResumeSize = 10 << 20
	maxJSONBody   = 1 << 20
)

func (s *Server) handleGetInterview(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.interview.State())
}

func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxResumeSize+1<<20)
	if err := r.ParseMultipartForm(maxResumeSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, http.StatusBadRequest, "validation_error", "resume must be at most 10 MiB")
			return
		}
		respondError(w, http.StatusBadRequest, "validation_error", "multipart form with a file field is required")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "file is required")
		return
	}
	defer file.Close()

	if header.Size > maxResumeSize {
		respondError(w, http.StatusBadRequest, "validation_error", "resume must be at most 10 MiB")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "failed to read file")
		return
	}

	state, err := s.interview.Upload(r.Context(), extractor.Document{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		s.respondSessionError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, state)
}

func (s *Server) handleFillProfile(w http.ResponseWriter, r *http.Request) {
	var req models.ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid JSON body")
		return
	}

	state, err := s.interview.FillMissing(models.Profile{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		s.respondSessionError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, state)
}

func (s *Server) handleSetDraft(w http.ResponseWriter, r *http.Request) {
	var req models.DraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid JSON body")
		return
	}

	state, err := s.interview.SetDraft(req.Answer)
	if err != nil {
		s.respondSessionError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, state)
}

func (s *Server) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	// An optional body carries the final draft so clients need not PUT it first
	var req models.DraftRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			respondError(w, http.StatusBadRequest, "validation_error", "invalid JSON body")
			return
		}
		if req.Answer != "" {
			if _, err := s.interview.SetDraft(req.Answer); err != nil {
				s.respondSessionError(w, err)
				return
			}
		}
	}

	state, err := s.interview.Submit(r.Context())
	if err != nil {
		s.respondSessionError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, state)
}

func (s *Server) handleFinish(w http.ResponseWriter, r *http.Request) {
	state, err := s.interview.Finish(r.Context())
	if err != nil {
		s.respondSessionError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, state)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.interview.Reset())
}

// respondSessionError maps controller errors to HTTP status codes
func (s *Server) respondSessionError(w http.ResponseWriter, err error) {
	var missing *session.MissingFieldsError

	switch {
	case errors.Is(err, extractor.ErrUnsupportedType):
		respondError(w, http.StatusUnsupportedMediaType, "unsupported_type", "only PDF and DOCX resumes are supported")
	case errors.Is(err, session.ErrEmptyFile):
		respondError(w, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, session.ErrExtractionFailed):
		respondError(w, http.StatusUnprocessableEntity, "extraction_failed", "could not read the resume")
	case errors.As(err, &missing):
		respondError(w, http.StatusBadRequest, "missing_fields", missing.Error())
	case errors.Is(err, session.ErrInvalidProfile):
		respondError(w, http.StatusBadRequest, "invalid_profile", err.Error())
	case errors.Is(err, session.ErrInvalidStep):
		respondError(w, http.StatusConflict, "invalid_step", err.Error())
	case errors.Is(err, session.ErrBusy):
		respondError(w, http.StatusConflict, "busy", err.Error())
	case errors.Is(err, session.ErrQuestionsUnavailable):
		respondError(w, http.StatusBadGateway, "questions_unavailable", "questions could not be fetched, try again")
	case errors.Is(err, session.ErrFinalizeFailed):
		respondError(w, http.StatusBadGateway, "finalize_failed", "interview could not be finalized, try finishing again")
	default:
		s.logger.Error("interview operation failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}
