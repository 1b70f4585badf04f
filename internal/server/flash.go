package server

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/jonathan/empowr-credit/internal/views"
)

const flashCookie = "empowr_flash"

// setFlash queues f to be shown on the next rendered page.
func setFlash(w http.ResponseWriter, f views.Flash) {
	raw, err := json.Marshal(f)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash returns the queued flash, if any, and clears it.
func popFlash(w http.ResponseWriter, r *http.Request) *views.Flash {
	c, err := r.Cookie(flashCookie)
	if err != nil {
		return nil
	}
	http.SetCookie(w, &http.Cookie{Name: flashCookie, Value: "", Path: "/", MaxAge: -1})

	raw, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return nil
	}
	var f views.Flash
	if err := json.Unmarshal(raw, &f); err != nil || f.Title == "" {
		return nil
	}
	return &f
}

var (
	flashLoggedIn = views.Flash{
		Variant:     views.FlashSuccess,
		Title:       "Login successful!",
		Description: "Welcome back to Empowr Credit.",
	}
	flashLoginFailed = views.Flash{
		Variant:     views.FlashDestructive,
		Title:       "Login failed",
		Description: "Please check your credentials and try again.",
	}
	flashRegistered = views.Flash{
		Variant:     views.FlashSuccess,
		Title:       "Account created successfully!",
		Description: "Welcome to Empowr Credit. You can now start your credit assessment.",
	}
	flashRegisterFailed = views.Flash{
		Variant:     views.FlashDestructive,
		Title:       "Registration failed",
		Description: "Please try again or contact support.",
	}
	flashAssessed = views.Flash{
		Variant:     views.FlashSuccess,
		Title:       "Assessment Complete!",
		Description: "Your credit assessment has been processed successfully.",
	}
	flashAssessFailed = views.Flash{
		Variant:     views.FlashDestructive,
		Title:       "Assessment Failed",
		Description: "Please try again or contact support.",
	}
	flashLoggedOut = views.Flash{
		Variant:     views.FlashSuccess,
		Title:       "Signed out",
		Description: "You have been logged out.",
	}
)
