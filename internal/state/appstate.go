package state

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonathan/empowr-credit/internal/schemas"
	"github.com/jonathan/empowr-credit/internal/types"
	"go.uber.org/zap"
)

const authenticatedValue = "true"

// AppState is the application state of one session, read and written
// through the injected Store.
type AppState struct {
	store     Store
	namespace string
	logger    *zap.Logger
}

// New returns the AppState for sessionID.
func New(store Store, sessionID string, logger *zap.Logger) *AppState {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AppState{
		store:     store,
		namespace: "session:" + sessionID,
		logger:    logger.With(zap.String("session_id", sessionID)),
	}
}

// IsAuthenticated reports whether isAuthenticated is exactly "true".
func (s *AppState) IsAuthenticated(ctx context.Context) (bool, error) {
	v, ok, err := s.store.Get(ctx, s.namespace, KeyIsAuthenticated)
	if err != nil {
		return false, err
	}
	return ok && v == authenticatedValue, nil
}

// UserEmail returns the signed-in email, or "" when absent.
func (s *AppState) UserEmail(ctx context.Context) (string, error) {
	v, _, err := s.store.Get(ctx, s.namespace, KeyUserEmail)
	return v, err
}

// SignIn records the session as authenticated for email.
func (s *AppState) SignIn(ctx context.Context, email string) error {
	if err := s.store.Set(ctx, s.namespace, KeyIsAuthenticated, authenticatedValue); err != nil {
		return err
	}
	return s.store.Set(ctx, s.namespace, KeyUserEmail, email)
}

// Logout clears the authentication flag, email and stored score together.
func (s *AppState) Logout(ctx context.Context) error {
	if err := s.store.Delete(ctx, s.namespace, KeyIsAuthenticated, KeyUserEmail, KeyCreditScore); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// CreditScore returns the stored score, or nil when none is stored. A record
// that fails schema validation is logged and treated as absent.
func (s *AppState) CreditScore(ctx context.Context) (*types.CreditScore, error) {
	raw, ok, err := s.store.Get(ctx, s.namespace, KeyCreditScore)
	if err != nil || !ok {
		return nil, err
	}
	if err := schemas.ValidateCreditScore([]byte(raw)); err != nil {
		s.logger.Warn("discarding stored credit score", zap.Error(err))
		return nil, nil
	}
	var score types.CreditScore
	if err := json.Unmarshal([]byte(raw), &score); err != nil {
		s.logger.Warn("discarding stored credit score", zap.Error(err))
		return nil, nil
	}
	return &score, nil
}

// SetCreditScore stores score under creditScore. A score with an unknown
// risk level is refused, since it would be discarded on the next read.
func (s *AppState) SetCreditScore(ctx context.Context, score types.CreditScore) error {
	if !score.RiskLevel.Valid() {
		return fmt.Errorf("invalid risk level %q", score.RiskLevel)
	}
	raw, err := json.Marshal(score)
	if err != nil {
		return fmt.Errorf("failed to marshal credit score: %w", err)
	}
	return s.store.Set(ctx, s.namespace, KeyCreditScore, string(raw))
}

// Draft returns the in-progress assessment, or a fresh one.
func (s *AppState) Draft(ctx context.Context) (Draft, error) {
	raw, ok, err := s.store.Get(ctx, s.namespace, KeyAssessmentDraft)
	if err != nil {
		return Draft{}, err
	}
	if !ok {
		return NewDraft(), nil
	}
	if err := schemas.ValidateAssessmentDraft([]byte(raw)); err != nil {
		s.logger.Warn("discarding stored assessment draft", zap.Error(err))
		return NewDraft(), nil
	}
	var d Draft
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		s.logger.Warn("discarding stored assessment draft", zap.Error(err))
		return NewDraft(), nil
	}
	return d, nil
}

// SaveDraft stores d under assessmentDraft.
func (s *AppState) SaveDraft(ctx context.Context, d Draft) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal assessment draft: %w", err)
	}
	return s.store.Set(ctx, s.namespace, KeyAssessmentDraft, string(raw))
}

// ClearDraft drops the in-progress assessment.
func (s *AppState) ClearDraft(ctx context.Context) error {
	return s.store.Delete(ctx, s.namespace, KeyAssessmentDraft)
}

// Session returns the flags the navigation bar needs.
func (s *AppState) Session(ctx context.Context) (types.Session, error) {
	authed, err := s.IsAuthenticated(ctx)
	if err != nil {
		return types.Session{}, err
	}
	if !authed {
		return types.Session{}, nil
	}
	email, err := s.UserEmail(ctx)
	if err != nil {
		return types.Session{}, err
	}
	return types.Session{Authenticated: true, Email: email}, nil
}

// sessionKeys are every key an AppState writes.
var sessionKeys = []string{KeyIsAuthenticated, KeyUserEmail, KeyCreditScore, KeyAssessmentDraft}

// MoveTo copies this session's keys to sessionID, removes them here and
// returns the AppState of sessionID.
func (s *AppState) MoveTo(ctx context.Context, sessionID string) (*AppState, error) {
	next := &AppState{
		store:     s.store,
		namespace: "session:" + sessionID,
		logger:    s.logger.With(zap.String("moved_to", sessionID)),
	}
	for _, key := range sessionKeys {
		v, ok, err := s.store.Get(ctx, s.namespace, key)
		if err != nil {
			return nil, fmt.Errorf("move session: %w", err)
		}
		if !ok {
			continue
		}
		if err := s.store.Set(ctx, next.namespace, key, v); err != nil {
			return nil, fmt.Errorf("move session: %w", err)
		}
	}
	if err := s.store.Delete(ctx, s.namespace, sessionKeys...); err != nil {
		return nil, fmt.Errorf("move session: %w", err)
	}
	return next, nil
}
