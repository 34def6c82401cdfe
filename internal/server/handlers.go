package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"pdfquiz/internal/models"
)

// testSummary is the listing view of a test: everything but the
// questions themselves.
type testSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Total       int    `json:"total"`
}

// clientQuestion is a question with the answer fields stripped.
type clientQuestion struct {
	ID      string   `json:"id"`
	Number  int      `json:"number"`
	Prompt  string   `json:"question"`
	Options []string `json:"options"`
}

type checkRequest struct {
	AnswerIndex int `json:"answer_index"`
}

type checkResult struct {
	Correct       bool   `json:"correct"`
	CorrectIndex  int    `json:"correct_index"`
	CorrectLetter string `json:"correct_letter"`
	Explanation   string `json:"explanation,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, apiResponse{OK: true, Data: map[string]int{"tests": s.cache.Len()}})
}

// handleListTests returns the test catalog. reload=1 forces a directory
// sweep before answering.
func (s *Server) handleListTests(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("reload") == "1" {
		if _, err := s.cache.Reload(); err != nil {
			s.logger.Error("reload failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, apiResponse{OK: false, Error: "reload failed"})
			return
		}
	}

	tests := s.cache.Tests()
	summaries := make([]testSummary, 0, len(tests))
	for _, t := range tests {
		summaries = append(summaries, testSummary{
			ID:          t.ID,
			Name:        t.Name,
			Description: t.Description,
			Total:       t.Total,
		})
	}
	writeJSON(w, http.StatusOK, apiResponse{OK: true, Data: summaries})
}

// handleQuestions returns a test's questions with answers stripped.
// count=N truncates the response to the first N questions in number
// order; omitted or larger than the test means all.
func (s *Server) handleQuestions(w http.ResponseWriter, r *http.Request) {
	test, ok := s.cache.Get(chi.URLParam(r, "testID"))
	if !ok {
		writeJSON(w, http.StatusNotFound, apiResponse{OK: false, Error: "test not found"})
		return
	}

	questions := test.Questions
	if raw := strings.TrimSpace(r.URL.Query().Get("count")); raw != "" {
		count, err := strconv.Atoi(raw)
		if err != nil || count <= 0 {
			writeJSON(w, http.StatusBadRequest, apiResponse{OK: false, Error: "count must be a positive integer"})
			return
		}
		if count < len(questions) {
			questions = questions[:count]
		}
	}

	out := make([]clientQuestion, 0, len(questions))
	for _, q := range questions {
		out = append(out, clientQuestion{
			ID:      q.ID,
			Number:  q.Number,
			Prompt:  q.Prompt,
			Options: q.Options,
		})
	}
	writeJSON(w, http.StatusOK, apiResponse{OK: true, Data: out})
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	test, ok := s.cache.Get(chi.URLParam(r, "testID"))
	if !ok {
		writeJSON(w, http.StatusNotFound, apiResponse{OK: false, Error: "test not found"})
		return
	}

	questionID := chi.URLParam(r, "questionID")
	var question *models.Question
	for i := range test.Questions {
		if test.Questions[i].ID == questionID {
			question = &test.Questions[i]
			break
		}
	}
	if question == nil {
		writeJSON(w, http.StatusNotFound, apiResponse{OK: false, Error: "question not found"})
		return
	}

	var req checkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, apiResponse{OK: false, Error: "invalid request body"})
		return
	}
	if req.AnswerIndex < 0 || req.AnswerIndex >= len(question.Options) {
		writeJSON(w, http.StatusBadRequest, apiResponse{OK: false, Error: "answer_index out of range"})
		return
	}

	writeJSON(w, http.StatusOK, apiResponse{OK: true, Data: checkResult{
		Correct:       req.AnswerIndex == question.CorrectIndex,
		CorrectIndex:  question.CorrectIndex,
		CorrectLetter: question.CorrectLetter,
		Explanation:   question.Explanation,
	}})
}

// handleUpload accepts a multipart PDF in the "file" field, parses it and
// registers the result. Uploaded tests live in memory only.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeJSON(w, http.StatusRequestEntityTooLarge, apiResponse{OK: false, Error: "upload too large"})
			return
		}
		writeJSON(w, http.StatusBadRequest, apiResponse{OK: false, Error: "missing file field"})
		return
	}
	defer file.Close()

	if ext := strings.ToLower(filepath.Ext(header.Filename)); ext != ".pdf" {
		writeJSON(w, http.StatusBadRequest, apiResponse{OK: false, Error: "only .pdf uploads are accepted"})
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeJSON(w, http.StatusRequestEntityTooLarge, apiResponse{OK: false, Error: "upload too large"})
			return
		}
		writeJSON(w, http.StatusBadRequest, apiResponse{OK: false, Error: "reading upload failed"})
		return
	}

	test, err := s.upload(data, header.Filename)
	if err != nil {
		s.logger.Warn("upload rejected",
			zap.String("filename", header.Filename), zap.Error(err))
		writeJSON(w, http.StatusUnprocessableEntity, apiResponse{OK: false, Error: err.Error()})
		return
	}

	s.cache.Register(test)
	s.logger.Info("registered uploaded test",
		zap.String("id", test.ID), zap.Int("questions", test.Total))

	writeJSON(w, http.StatusCreated, apiResponse{OK: true, Data: testSummary{
		ID:          test.ID,
		Name:        test.Name,
		Description: test.Description,
		Total:       test.Total,
	}})
}
