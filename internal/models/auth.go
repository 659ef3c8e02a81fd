package models

// Session is the authenticated session returned by the gateway on sign-in.
type Session struct {
	AccessToken  string  `json:"access_token"`
	RefreshToken string  `json:"refresh_token,omitempty"`
	TokenType    string  `json:"token_type,omitempty"`
	ExpiresIn    int64   `json:"expires_in,omitempty"`
	Account      Account `json:"account"`
}

// LoginRequest carries sign-in credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse wraps the session plus the role-derived redirect target.
type LoginResponse struct {
	Session     Session `json:"session"`
	Role        string  `json:"role,omitempty"`
	RedirectURL string  `json:"redirect_url,omitempty"`
}
