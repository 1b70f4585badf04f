package views

import (
	"github.com/a-h/templ"
	"github.com/jonathan/empowr-credit/internal/mock"
	"github.com/jonathan/empowr-credit/internal/scoring"
	"github.com/jonathan/empowr-credit/internal/types"
	"github.com/jonathan/empowr-credit/internal/wizard"
)

// Feature is one card of the home page feature grid.
type Feature struct {
	Icon        string
	Title       string
	Description string
}

// Stat is one figure under the hero.
type Stat struct {
	Value string
	Label string
}

// Features lists the home page feature cards.
var Features = []Feature{
	{Icon: "chart", Title: "Blended Credit Score", Description: "Combines traditional FICO scores with our proprietary Empowr algorithm for comprehensive assessment."},
	{Icon: "shield", Title: "Bank-Grade Security", Description: "Enterprise-level encryption and security protocols protect sensitive financial data."},
	{Icon: "clock", Title: "Real-Time Analysis", Description: "Instant credit assessment with live data processing and immediate results."},
	{Icon: "target", Title: "Precision Scoring", Description: "99.9% accuracy with advanced machine learning algorithms for reliable predictions."},
	{Icon: "database", Title: "Comprehensive Data", Description: "Access to multiple credit bureaus and alternative data sources for complete insights."},
	{Icon: "zap", Title: "Lightning Fast", Description: "Complete assessment in under 60 seconds with optimized processing pipelines."},
}

// HeroStats lists the figures shown under the hero.
var HeroStats = []Stat{
	{Value: "99.9%", Label: "Accuracy Rate"},
	{Value: "10K+", Label: "Active Lenders"},
	{Value: "$2.5B", Label: "Loans Processed"},
}

type HomePage struct {
	Chrome
	Features []Feature
	Stats    []Stat
}

// Home renders the landing page.
func Home(c Chrome) templ.Component {
	c.Title = "Empowr Credit"
	c.Nav.Active = RouteHome
	return render("home", HomePage{Chrome: c, Features: Features, Stats: HeroStats})
}

type LoginPage struct {
	Chrome
	Form   types.LoginRequest
	Errors map[string]string
	// Strict hides the "any credentials" demo hint.
	Strict bool
}

// Login renders the sign-in form.
func Login(p LoginPage) templ.Component {
	p.Title = "Sign In | Empowr Credit"
	p.Nav.Active = RouteLogin
	return render("login", p)
}

type RegisterPage struct {
	Chrome
	Form   types.RegisterRequest
	Errors map[string]string
}

// Register renders the sign-up form.
func Register(p RegisterPage) templ.Component {
	p.Title = "Create Account | Empowr Credit"
	p.Nav.Active = RouteRegister
	return render("register", p)
}

// StepMarker is one dot of the wizard's step indicator.
type StepMarker struct {
	wizard.Step
	Reached bool
	Passed  bool
}

type AssessmentPage struct {
	Chrome
	Wizard wizard.State
	Input  types.AssessmentInput
	// IncomeEntered distinguishes an entered zero income from a blank field.
	IncomeEntered bool
	Errors        map[string]string
}

// Step is the current wizard page.
func (p AssessmentPage) Step() wizard.Step { return p.Wizard.Current() }

// Markers returns the step indicator for the current position.
func (p AssessmentPage) Markers() []StepMarker {
	cur := p.Wizard.Step()
	out := make([]StepMarker, len(wizard.Steps))
	for i, s := range wizard.Steps {
		out[i] = StepMarker{Step: s, Reached: cur >= s.ID, Passed: cur > s.ID}
	}
	return out
}

// Progress is the progress bar width in percent.
func (p AssessmentPage) Progress() float64 { return p.Wizard.Progress() }

// IsFirst reports whether Previous is disabled.
func (p AssessmentPage) IsFirst() bool { return p.Wizard.IsFirst() }

// IsLast reports whether the submit button replaces Next.
func (p AssessmentPage) IsLast() bool { return p.Wizard.CanSubmit() }

// StepCount is the number of wizard pages.
func (p AssessmentPage) StepCount() int { return len(wizard.Steps) }

// Income is the annual income as typed, blank until entered.
func (p AssessmentPage) Income() string {
	if !p.IncomeEntered {
		return ""
	}
	return formatFloat(p.Input.Employment.AnnualIncome)
}

// Assessment renders the current wizard step.
func Assessment(p AssessmentPage) templ.Component {
	p.Title = "Credit Assessment | Empowr Credit"
	p.Nav.Active = RouteAssessment
	return render("assessment", p)
}

type DashboardPage struct {
	Chrome
	Score types.CreditScore
	// Assessed is set when Score came from the session's own assessment
	// rather than the sample data.
	Assessed   bool
	Sample     mock.DashboardData
	Benchmarks mock.Benchmarks
}

// Band is the display color of the blended score.
func (p DashboardPage) Band() scoring.Band { return scoring.BandFor(p.Score.BlendedScore) }

// Dashboard renders the score overview.
func Dashboard(p DashboardPage) templ.Component {
	p.Title = "Credit Dashboard | Empowr Credit"
	p.Nav.Active = RouteDashboard
	return render("dashboard", p)
}

type NotFoundPage struct {
	Chrome
	Path string
}

// NotFound renders the 404 page.
func NotFound(c Chrome, path string) templ.Component {
	c.Title = "Page Not Found | Empowr Credit"
	return render("notfound", NotFoundPage{Chrome: c, Path: path})
}
