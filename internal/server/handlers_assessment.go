package server

import (
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/jonathan/empowr-credit/internal/metrics"
	"github.com/jonathan/empowr-credit/internal/state"
	"github.com/jonathan/empowr-credit/internal/types"
	"github.com/jonathan/empowr-credit/internal/views"
	"go.uber.org/zap"
)

// textFields maps each text input of the wizard to its place in the draft.
var textFields = map[string]func(*types.AssessmentInput) *string{
	"firstName":            func(in *types.AssessmentInput) *string { return &in.PersonalInfo.FirstName },
	"lastName":             func(in *types.AssessmentInput) *string { return &in.PersonalInfo.LastName },
	"dateOfBirth":          func(in *types.AssessmentInput) *string { return &in.PersonalInfo.DateOfBirth },
	"socialSecurityNumber": func(in *types.AssessmentInput) *string { return &in.PersonalInfo.SocialSecurityNumber },
	"phone":                func(in *types.AssessmentInput) *string { return &in.PersonalInfo.Phone },
	"email":                func(in *types.AssessmentInput) *string { return &in.PersonalInfo.Email },
	"street":               func(in *types.AssessmentInput) *string { return &in.Address.Street },
	"city":                 func(in *types.AssessmentInput) *string { return &in.Address.City },
	"state":                func(in *types.AssessmentInput) *string { return &in.Address.State },
	"zipCode":              func(in *types.AssessmentInput) *string { return &in.Address.ZipCode },
	"status":               func(in *types.AssessmentInput) *string { return &in.Employment.Status },
	"employer":             func(in *types.AssessmentInput) *string { return &in.Employment.Employer },
	"jobTitle":             func(in *types.AssessmentInput) *string { return &in.Employment.JobTitle },
	"employmentLength":     func(in *types.AssessmentInput) *string { return &in.Employment.EmploymentLength },
	"bankingRelationship":  func(in *types.AssessmentInput) *string { return &in.Financial.BankingRelationship },
	"existingCredit":       func(in *types.AssessmentInput) *string { return &in.Financial.ExistingCredit },
}

// amountFields maps each number input of the wizard to its place in the draft.
var amountFields = map[string]func(*types.AssessmentInput) *float64{
	"annualIncome": func(in *types.AssessmentInput) *float64 { return &in.Employment.AnnualIncome },
	"monthlyRent":  func(in *types.AssessmentInput) *float64 { return &in.Financial.MonthlyRent },
	"monthlyDebt":  func(in *types.AssessmentInput) *float64 { return &in.Financial.MonthlyDebt },
}

// mergeForm copies every wizard field present in form into d. A field that
// is posted again drops its stale inline error. Blank amounts are zero; an
// amount that does not parse is kept as zero with an inline error, and a
// blank or unparseable income leaves IncomeEntered unset.
func mergeForm(d *state.Draft, form url.Values) {
	for name, field := range textFields {
		if form.Has(name) {
			*field(&d.Input) = strings.TrimSpace(form.Get(name))
			delete(d.Errors, name)
		}
	}

	for name, field := range amountFields {
		if !form.Has(name) {
			continue
		}
		delete(d.Errors, name)
		raw := strings.ReplaceAll(strings.TrimSpace(form.Get(name)), ",", "")
		v, err := strconv.ParseFloat(raw, 64)
		if err == nil && (math.IsNaN(v) || math.IsInf(v, 0)) {
			err = strconv.ErrSyntax
		}
		switch {
		case raw == "":
			v = 0
		case err != nil:
			v = 0
			if d.Errors == nil {
				d.Errors = make(map[string]string)
			}
			d.Errors[name] = "Please enter a number"
		}
		*field(&d.Input) = v
		if name == "annualIncome" {
			d.IncomeEntered = raw != "" && err == nil
		}
	}

	if len(d.Errors) == 0 {
		d.Errors = nil
	}
}

// draftErrors validates a complete draft and returns its inline errors, or
// nil when it can be submitted. An amount that did not parse keeps its error
// even though its stored value of zero passes validation.
func (s *Server) draftErrors(d state.Draft) map[string]string {
	errs := types.FieldErrors(s.validator.Struct(d.Input))
	add := func(name, msg string) {
		if errs == nil {
			errs = make(map[string]string)
		}
		if _, ok := errs[name]; !ok {
			errs[name] = msg
		}
	}
	for name := range amountFields {
		if msg, ok := d.Errors[name]; ok {
			add(name, msg)
		}
	}
	if !d.IncomeEntered {
		add("annualIncome", "Annual income is required")
	}
	return errs
}

func assessmentPage(c views.Chrome, d state.Draft) views.AssessmentPage {
	return views.AssessmentPage{
		Chrome:        c,
		Wizard:        d.Wizard,
		Input:         d.Input,
		IncomeEntered: d.IncomeEntered,
		Errors:        d.Errors,
	}
}

func (s *Server) handleAssessment(w http.ResponseWriter, r *http.Request) {
	st, c, ok := s.pageState(w, r)
	if !ok {
		return
	}
	d, err := st.Draft(r.Context())
	if err != nil {
		s.pageError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, views.Assessment(assessmentPage(c, d)))
}

// moveDraft merges the posted fields, moves the wizard with move and
// redirects back to the wizard. Advancing never validates.
func (s *Server) moveDraft(w http.ResponseWriter, r *http.Request, move func(d *state.Draft)) {
	st, err := s.appState(r)
	if err != nil {
		s.pageError(w, r, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	d, err := st.Draft(r.Context())
	if err != nil {
		s.pageError(w, r, err)
		return
	}

	mergeForm(&d, r.PostForm)
	move(&d)
	if err := st.SaveDraft(r.Context(), d); err != nil {
		s.pageError(w, r, err)
		return
	}
	redirect(w, r, views.RouteAssessment)
}

func (s *Server) handleAssessmentNext(w http.ResponseWriter, r *http.Request) {
	s.moveDraft(w, r, func(d *state.Draft) { d.Wizard.Advance() })
}

func (s *Server) handleAssessmentBack(w http.ResponseWriter, r *http.Request) {
	s.moveDraft(w, r, func(d *state.Draft) { d.Wizard.Retreat() })
}

// handleAssessmentSubmit scores the draft and sends the session to the
// dashboard. Any failure keeps the applicant on the current step with the
// failure notice, and with inline errors when fields are invalid.
func (s *Server) handleAssessmentSubmit(w http.ResponseWriter, r *http.Request) {
	st, c, ok := s.pageState(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	ctx := r.Context()
	d, err := st.Draft(ctx)
	if err != nil {
		s.pageError(w, r, err)
		return
	}
	mergeForm(&d, r.PostForm)

	fail := func(status int) {
		if err := st.SaveDraft(ctx, d); err != nil {
			s.logger.Warn("failed to save assessment draft", zap.Error(err))
		}
		page := assessmentPage(withFlash(c, flashAssessFailed), d)
		s.render(w, r, status, views.Assessment(page))
	}

	if err := d.Wizard.Submit(); err != nil {
		fail(HTTPStatus(err))
		return
	}
	if errs := s.draftErrors(d); errs != nil {
		d.Errors = errs
		fail(http.StatusBadRequest)
		return
	}

	score, err := s.service.SubmitAssessment(ctx, st, d.Input)
	if err != nil {
		status := HTTPStatus(err)
		if status >= http.StatusInternalServerError {
			s.logger.Error("assessment failed", zap.Error(err))
		}
		fail(status)
		return
	}
	metrics.ObserveAssessment(string(score.RiskLevel), score.BlendedScore)

	if err := st.ClearDraft(ctx); err != nil {
		s.logger.Warn("failed to clear assessment draft", zap.Error(err))
	}
	setFlash(w, flashAssessed)
	redirect(w, r, views.RouteDashboard)
}
