package state

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

const accountsNamespace = "accounts"

// Account is a demo account created by registration. Only strict auth mode
// reads these back.
type Account struct {
	Email        string `json:"email"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Company      string `json:"company"`
	PasswordHash string `json:"passwordHash"`
}

// Accounts stores demo accounts keyed by lower-cased email.
type Accounts struct {
	store Store
}

// NewAccounts returns an Accounts view over store.
func NewAccounts(store Store) *Accounts {
	return &Accounts{store: store}
}

func accountKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Get returns the account for email, or nil.
func (a *Accounts) Get(ctx context.Context, email string) (*Account, error) {
	raw, ok, err := a.store.Get(ctx, accountsNamespace, accountKey(email))
	if err != nil || !ok {
		return nil, err
	}
	var acct Account
	if err := json.Unmarshal([]byte(raw), &acct); err != nil {
		return nil, fmt.Errorf("failed to decode account: %w", err)
	}
	return &acct, nil
}

// Put stores acct, replacing any account with the same email.
func (a *Accounts) Put(ctx context.Context, acct Account) error {
	raw, err := json.Marshal(acct)
	if err != nil {
		return fmt.Errorf("failed to encode account: %w", err)
	}
	return a.store.Set(ctx, accountsNamespace, accountKey(acct.Email), string(raw))
}
