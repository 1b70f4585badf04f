package server

import (
	"net/http"
	"strings"

	"github.com/jonathan/empowr-credit/internal/metrics"
	"github.com/jonathan/empowr-credit/internal/mock"
	"github.com/jonathan/empowr-credit/internal/state"
	"github.com/jonathan/empowr-credit/internal/types"
	"github.com/jonathan/empowr-credit/internal/views"
	"go.uber.org/zap"
)

// pageState loads the session state and the layout chrome for r. On error it
// has already written a 500 response.
func (s *Server) pageState(w http.ResponseWriter, r *http.Request) (*state.AppState, views.Chrome, bool) {
	st, err := s.appState(r)
	if err != nil {
		s.pageError(w, r, err)
		return nil, views.Chrome{}, false
	}
	session, err := st.Session(r.Context())
	if err != nil {
		s.pageError(w, r, err)
		return nil, views.Chrome{}, false
	}
	return st, views.Chrome{Nav: views.Nav{Session: session}, Flash: popFlash(w, r)}, true
}

func (s *Server) pageError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("page failed", zap.String("path", r.URL.Path), zap.Error(err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// redirect answers a form post with 303 See Other.
func redirect(w http.ResponseWriter, r *http.Request, to string) {
	http.Redirect(w, r, to, http.StatusSeeOther)
}

func withFlash(c views.Chrome, f views.Flash) views.Chrome {
	c.Flash = &f
	return c
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	_, c, ok := s.pageState(w, r)
	if !ok {
		return
	}
	s.render(w, r, http.StatusOK, views.Home(c))
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	_, c, ok := s.pageState(w, r)
	if !ok {
		return
	}
	s.render(w, r, http.StatusNotFound, views.NotFound(c, r.URL.Path))
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	_, c, ok := s.pageState(w, r)
	if !ok {
		return
	}
	s.render(w, r, http.StatusOK, views.Login(views.LoginPage{Chrome: c, Strict: s.strict}))
}

// handleLogin signs the session in and sends it to the dashboard. Field
// errors and failed logins re-render the form.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	st, c, ok := s.pageState(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	req := types.LoginRequest{
		Email:    strings.TrimSpace(r.PostForm.Get("email")),
		Password: r.PostForm.Get("password"),
	}
	page := views.LoginPage{Chrome: c, Form: types.LoginRequest{Email: req.Email}, Strict: s.strict}

	if err := s.validator.Struct(req); err != nil {
		metrics.AuthAttempts.WithLabelValues("login", "invalid").Inc()
		page.Errors = types.FieldErrors(err)
		s.render(w, r, http.StatusBadRequest, views.Login(page))
		return
	}

	if _, err := s.service.Login(r.Context(), st, req); err != nil {
		metrics.AuthAttempts.WithLabelValues("login", "failure").Inc()
		status := HTTPStatus(err)
		if status >= http.StatusInternalServerError {
			s.logger.Error("login failed", zap.Error(err))
		}
		page.Chrome = withFlash(page.Chrome, flashLoginFailed)
		s.render(w, r, status, views.Login(page))
		return
	}

	metrics.AuthAttempts.WithLabelValues("login", "success").Inc()
	if _, err := rotateSession(w, r, st, s.tokens, s.cookie); err != nil {
		s.pageError(w, r, err)
		return
	}
	setFlash(w, flashLoggedIn)
	redirect(w, r, views.RouteDashboard)
}

func (s *Server) handleRegisterPage(w http.ResponseWriter, r *http.Request) {
	_, c, ok := s.pageState(w, r)
	if !ok {
		return
	}
	s.render(w, r, http.StatusOK, views.Register(views.RegisterPage{Chrome: c}))
}

// handleRegister creates the account and sends the session to the dashboard.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	st, c, ok := s.pageState(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	req := types.RegisterRequest{
		FirstName:       strings.TrimSpace(r.PostForm.Get("firstName")),
		LastName:        strings.TrimSpace(r.PostForm.Get("lastName")),
		Email:           strings.TrimSpace(r.PostForm.Get("email")),
		Company:         strings.TrimSpace(r.PostForm.Get("company")),
		Password:        r.PostForm.Get("password"),
		ConfirmPassword: r.PostForm.Get("confirmPassword"),
		AgreeToTerms:    r.PostForm.Get("agreeToTerms") == "true",
	}
	// Passwords are never echoed back into the form
	form := req
	form.Password, form.ConfirmPassword = "", ""
	page := views.RegisterPage{Chrome: c, Form: form}

	if err := s.validator.Struct(req); err != nil {
		metrics.AuthAttempts.WithLabelValues("register", "invalid").Inc()
		page.Errors = types.FieldErrors(err)
		s.render(w, r, http.StatusBadRequest, views.Register(page))
		return
	}

	if _, err := s.service.Register(r.Context(), st, req); err != nil {
		metrics.AuthAttempts.WithLabelValues("register", "failure").Inc()
		status := HTTPStatus(err)
		if status >= http.StatusInternalServerError {
			s.logger.Error("registration failed", zap.Error(err))
		}
		page.Chrome = withFlash(page.Chrome, flashRegisterFailed)
		s.render(w, r, status, views.Register(page))
		return
	}

	metrics.AuthAttempts.WithLabelValues("register", "success").Inc()
	if _, err := rotateSession(w, r, st, s.tokens, s.cookie); err != nil {
		s.pageError(w, r, err)
		return
	}
	setFlash(w, flashRegistered)
	redirect(w, r, views.RouteDashboard)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	st, err := s.appState(r)
	if err != nil {
		s.pageError(w, r, err)
		return
	}
	if err := s.service.Logout(r.Context(), st); err != nil {
		s.pageError(w, r, err)
		return
	}
	setFlash(w, flashLoggedOut)
	redirect(w, r, views.RouteHome)
}

// handleDashboard shows the session's own score when it has one, otherwise
// the sample score.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	st, c, ok := s.pageState(w, r)
	if !ok {
		return
	}
	stored, err := st.CreditScore(r.Context())
	if err != nil {
		s.pageError(w, r, err)
		return
	}

	sample := mock.SampleDashboard()
	page := views.DashboardPage{
		Chrome:     c,
		Score:      sample.CreditScore.CreditScore,
		Sample:     sample,
		Benchmarks: mock.IndustryBenchmarks(),
	}
	if stored != nil {
		page.Score = *stored
		page.Assessed = true
	}
	s.render(w, r, http.StatusOK, views.Dashboard(page))
}
