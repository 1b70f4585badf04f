package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/empowr-credit/internal/metrics"
	"github.com/jonathan/empowr-credit/internal/mock"
	"github.com/jonathan/empowr-credit/internal/scoring"
	"github.com/jonathan/empowr-credit/internal/types"
	"go.uber.org/zap"
)

// PreviewRequest is the body of POST /api/v1/scores/preview.
type PreviewRequest struct {
	AnnualIncome float64 `json:"annualIncome" validate:"gte=0"`
	MonthlyDebt  float64 `json:"monthlyDebt" validate:"gte=0"`
}

// PreviewResponse is a derived score with its dashboard color.
type PreviewResponse struct {
	types.CreditScore
	Band scoring.Band `json:"band"`
}

// DashboardResponse is the data behind the dashboard page.
type DashboardResponse struct {
	// CreditScore is the session's own score, or the sample score when
	// Assessed is false.
	CreditScore types.CreditScore  `json:"creditScore"`
	Assessed    bool               `json:"assessed"`
	Band        scoring.Band       `json:"band"`
	Sample      mock.DashboardData `json:"sample"`
	Benchmarks  mock.Benchmarks    `json:"benchmarks"`
}

// handleGetSession reports whether the caller is signed in.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	st, err := s.appState(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	session, err := st.Session(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, session)
}

// handleGetCreditScore returns the canned score after the fetch latency.
func (s *Server) handleGetCreditScore(w http.ResponseWriter, r *http.Request) {
	score, err := s.service.FetchCreditScore(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, score)
}

// decodeAssessment reads and validates an assessment body. An absent
// annualIncome counts as zero.
func (s *Server) decodeAssessment(w http.ResponseWriter, r *http.Request) (types.AssessmentInput, bool) {
	var in types.AssessmentInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return in, false
	}
	if err := s.validator.Struct(in); err != nil {
		s.writeError(w, r, validationError(err))
		return in, false
	}
	return in, true
}

// handleCreateAssessment scores an assessment and stores the result.
func (s *Server) handleCreateAssessment(w http.ResponseWriter, r *http.Request) {
	in, ok := s.decodeAssessment(w, r)
	if !ok {
		return
	}
	st, err := s.appState(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	score, err := s.service.SubmitAssessment(r.Context(), st, in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	metrics.ObserveAssessment(string(score.RiskLevel), score.BlendedScore)
	s.jsonResponse(w, http.StatusCreated, score)
}

// handleStreamAssessment is handleCreateAssessment reporting progress as
// server-sent events: "progress" per stage, then "complete" with the score
// or "error".
func (s *Server) handleStreamAssessment(w http.ResponseWriter, r *http.Request) {
	in, ok := s.decodeAssessment(w, r)
	if !ok {
		return
	}
	st, err := s.appState(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	score, err := s.service.SubmitAssessmentWithProgress(r.Context(), st, in, sse.WriteProgress)
	if err != nil {
		s.logger.Warn("streamed assessment failed", zap.Error(err))
		sse.WriteError(flashAssessFailed.Title, nil)
		return
	}
	metrics.ObserveAssessment(string(score.RiskLevel), score.BlendedScore)
	sse.WriteComplete(score)
}

// handleGetDashboard returns the dashboard data set.
func (s *Server) handleGetDashboard(w http.ResponseWriter, r *http.Request) {
	st, err := s.appState(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	stored, err := st.CreditScore(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	sample := mock.SampleDashboard()
	resp := DashboardResponse{
		CreditScore: sample.CreditScore.CreditScore,
		Sample:      sample,
		Benchmarks:  mock.IndustryBenchmarks(),
	}
	if stored != nil {
		resp.CreditScore = *stored
		resp.Assessed = true
	}
	resp.Band = scoring.BandFor(resp.CreditScore.BlendedScore)
	s.jsonResponse(w, http.StatusOK, resp)
}

// handlePreviewScore derives a score without waiting or storing it.
func (s *Server) handlePreviewScore(w http.ResponseWriter, r *http.Request) {
	var req PreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.writeError(w, r, validationError(err))
		return
	}

	score := s.service.Preview(req.AnnualIncome, req.MonthlyDebt)
	s.jsonResponse(w, http.StatusOK, PreviewResponse{
		CreditScore: score,
		Band:        scoring.BandFor(score.BlendedScore),
	})
}
