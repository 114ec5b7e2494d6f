package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/nao1215/wordscope/internal/model"
)

// handleAnalyze serves POST /api/analyze.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := decodeBody(http.MaxBytesReader(w, r.Body, s.maxBodyBytes), &req); err != nil {
		writeError(w, http.StatusBadRequest, ErrMalformedBody)
		return
	}
	url, err := parseURL(req.URL)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := s.analyzer.AnalyzePage(r.Context(), url)
	if err != nil {
		s.metrics.observePages(0, 1)
		s.logger.Warn("analysis failed",
			"request_id", RequestID(r.Context()),
			"url", url,
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.metrics.observePages(1, 0)
	writeJSON(w, http.StatusOK, result)
}

// handleAnalyzeMultiple serves POST /api/analyze-multiple.
func (s *Server) handleAnalyzeMultiple(w http.ResponseWriter, r *http.Request) {
	var req analyzeMultipleRequest
	if err := decodeBody(http.MaxBytesReader(w, r.Body, s.maxBodyBytes), &req); err != nil {
		writeError(w, http.StatusBadRequest, ErrMalformedBody)
		return
	}
	urls, err := parseURLs(req.URLs, s.maxBatchSize)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	result := s.batch.Run(r.Context(), urls)
	s.metrics.observePages(result.SuccessCount, result.ErrorCount)
	writeJSON(w, http.StatusOK, result)
}

// handleHealth serves GET /healthz.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON writes v as a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Debug("failed to write response", "error", err)
	}
}

// writeError writes err's message as an ErrorResponse.
func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, model.ErrorResponse{Error: err.Error()})
}
