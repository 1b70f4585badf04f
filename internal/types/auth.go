package types

// LoginRequest is the login form.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,looseemail"`
	Password string `json:"password" validate:"required,min=6"`
}

// RegisterRequest is the registration form.
type RegisterRequest struct {
	FirstName       string `json:"firstName" validate:"required"`
	LastName        string `json:"lastName" validate:"required"`
	Email           string `json:"email" validate:"required,looseemail"`
	Company         string `json:"company" validate:"required"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	AgreeToTerms    bool   `json:"agreeToTerms" validate:"required"`
}

// Session describes the caller's persisted session flags.
type Session struct {
	Authenticated bool   `json:"isAuthenticated"`
	Email         string `json:"userEmail,omitempty"`
}

// AuthResponse is returned by the login and register endpoints.
type AuthResponse struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	Session Session `json:"session"`
	Token   string  `json:"token"`
}
