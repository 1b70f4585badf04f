// Package mock is the demo's stand-in for a backend: every call waits for a
// simulated network delay and then succeeds with a canned or locally derived
// result.
package mock

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/empowr-credit/internal/scoring"
	"github.com/jonathan/empowr-credit/internal/state"
	"github.com/jonathan/empowr-credit/internal/types"
	"go.uber.org/zap"
)

// PasswordHasher hashes and verifies demo account passwords.
type PasswordHasher interface {
	HashPassword(pw string) (string, error)
	VerifyPassword(pw, storedHash string) bool
}

// Options configures a Service.
type Options struct {
	Latencies Latencies
	Deriver   *scoring.Deriver
	// Accounts and Passwords are only used when Strict is set.
	Accounts  *state.Accounts
	Passwords PasswordHasher
	// Strict makes register store an account and login verify against it.
	// Otherwise any credentials are accepted.
	Strict bool
	Logger *zap.Logger
}

// Service implements the mock auth and scoring calls.
type Service struct {
	latency   Latencies
	deriver   *scoring.Deriver
	accounts  *state.Accounts
	passwords PasswordHasher
	strict    bool
	logger    *zap.Logger
	now       func() time.Time
}

// NewService creates a Service. A nil Deriver gets an unseeded one.
func NewService(opts Options) (*Service, error) {
	if opts.Strict && (opts.Accounts == nil || opts.Passwords == nil) {
		return nil, fmt.Errorf("strict auth requires an account store and a password hasher")
	}
	if opts.Deriver == nil {
		opts.Deriver = scoring.NewDeriver(nil)
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Service{
		latency:   opts.Latencies,
		deriver:   opts.Deriver,
		accounts:  opts.Accounts,
		passwords: opts.Passwords,
		strict:    opts.Strict,
		logger:    opts.Logger,
		now:       time.Now,
	}, nil
}

// Login signs the session in as req.Email.
func (s *Service) Login(ctx context.Context, st *state.AppState, req types.LoginRequest) (types.Session, error) {
	if err := Sleep(ctx, s.latency.Login); err != nil {
		return types.Session{}, err
	}

	if s.strict {
		acct, err := s.accounts.Get(ctx, req.Email)
		if err != nil {
			return types.Session{}, fmt.Errorf("failed to look up account: %w", err)
		}
		if acct == nil || !s.passwords.VerifyPassword(req.Password, acct.PasswordHash) {
			return types.Session{}, &ErrInvalidCredentials{}
		}
	}

	if err := st.SignIn(ctx, req.Email); err != nil {
		return types.Session{}, fmt.Errorf("failed to sign in: %w", err)
	}
	s.logger.Info("user logged in", zap.String("email", req.Email), zap.Bool("strict", s.strict))
	return types.Session{Authenticated: true, Email: req.Email}, nil
}

// Register creates the demo account (strict mode only) and signs the session in.
func (s *Service) Register(ctx context.Context, st *state.AppState, req types.RegisterRequest) (types.Session, error) {
	if err := Sleep(ctx, s.latency.Register); err != nil {
		return types.Session{}, err
	}

	if s.strict {
		existing, err := s.accounts.Get(ctx, req.Email)
		if err != nil {
			return types.Session{}, fmt.Errorf("failed to check email existence: %w", err)
		}
		if existing != nil {
			return types.Session{}, &ErrEmailAlreadyExists{Email: req.Email}
		}

		hash, err := s.passwords.HashPassword(req.Password)
		if err != nil {
			return types.Session{}, fmt.Errorf("failed to hash password: %w", err)
		}
		err = s.accounts.Put(ctx, state.Account{
			Email:        req.Email,
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			Company:      req.Company,
			PasswordHash: hash,
		})
		if err != nil {
			return types.Session{}, fmt.Errorf("failed to create account: %w", err)
		}
	}

	if err := st.SignIn(ctx, req.Email); err != nil {
		return types.Session{}, fmt.Errorf("failed to sign in: %w", err)
	}
	s.logger.Info("user registered", zap.String("email", req.Email), zap.String("company", req.Company))
	return types.Session{Authenticated: true, Email: req.Email}, nil
}

// Logout clears the session's auth flag, email and stored score together.
func (s *Service) Logout(ctx context.Context, st *state.AppState) error {
	return st.Logout(ctx)
}

// FetchCreditScore returns the canned score, stamped with the current time.
func (s *Service) FetchCreditScore(ctx context.Context) (types.CreditScore, error) {
	if err := Sleep(ctx, s.latency.FetchScore); err != nil {
		return types.CreditScore{}, err
	}
	return types.CreditScore{
		BlendedScore: 742,
		FicoScore:    720,
		EmpowrScore:  765,
		RiskLevel:    types.RiskLow,
		LastUpdated:  s.now().UTC(),
	}, nil
}

// Progress is one step of a running assessment.
type Progress struct {
	Stage   string `json:"stage"`
	Percent int    `json:"percent"`
}

// ProgressFunc receives progress while an assessment runs.
type ProgressFunc func(Progress)

// submitStages split the submit latency into evenly sized pieces.
var submitStages = []string{
	"Verifying identity",
	"Analyzing income",
	"Evaluating obligations",
	"Blending scores",
}

// SubmitAssessment derives a score from in and stores it for the session.
func (s *Service) SubmitAssessment(ctx context.Context, st *state.AppState, in types.AssessmentInput) (types.CreditScore, error) {
	return s.SubmitAssessmentWithProgress(ctx, st, in, nil)
}

// SubmitAssessmentWithProgress is SubmitAssessment reporting each stage to
// progress before it waits. progress may be nil.
func (s *Service) SubmitAssessmentWithProgress(ctx context.Context, st *state.AppState, in types.AssessmentInput, progress ProgressFunc) (types.CreditScore, error) {
	step := s.latency.Submit / time.Duration(len(submitStages))
	for i, stage := range submitStages {
		if progress != nil {
			progress(Progress{Stage: stage, Percent: i * 100 / len(submitStages)})
		}
		if err := Sleep(ctx, step); err != nil {
			return types.CreditScore{}, err
		}
	}

	score := s.deriver.DeriveAssessment(in)
	if err := st.SetCreditScore(ctx, score); err != nil {
		return types.CreditScore{}, fmt.Errorf("failed to store credit score: %w", err)
	}
	if progress != nil {
		progress(Progress{Stage: "Complete", Percent: 100})
	}

	s.logger.Info("assessment scored",
		zap.Int("blended_score", score.BlendedScore),
		zap.String("risk_level", string(score.RiskLevel)),
	)
	return score, nil
}

// Preview derives a score without waiting or storing anything.
func (s *Service) Preview(annualIncome, monthlyDebt float64) types.CreditScore {
	return s.deriver.Derive(annualIncome, monthlyDebt)
}
