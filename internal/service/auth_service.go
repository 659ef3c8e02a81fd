package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/travelintrips/registration-api/internal/models"
	appErrors "github.com/travelintrips/registration-api/pkg/errors"
)

type authGateway interface {
	SignIn(ctx context.Context, email, password string) (*models.Session, error)
	SignOut(ctx context.Context, accessToken string) error
	ResetPassword(ctx context.Context, email string) error
}

// AuthConfig tunes post-login redirect targets.
type AuthConfig struct {
	DriverSignInURL string
	StaffSignInURL  string
}

// AuthService wraps the gateway auth endpoints and derives the role-based
// redirect target from the session.
type AuthService struct {
	gateway   authGateway
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(gw authGateway, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AuthService{gateway: gw, validator: validate, logger: logger, config: config}
}

// Login signs the user in and resolves their role from session metadata or,
// failing that, the access token claims.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "email and password are required")
	}

	session, err := s.gateway.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		s.logger.Warn("sign-in failed", zap.String("email", req.Email), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidCredentials.Code, appErrors.ErrInvalidCredentials.Status, appErrors.ErrInvalidCredentials.Message)
	}

	roleName := sessionRole(session)

	resp := &models.LoginResponse{Session: *session, Role: roleName}
	if role, ok := models.LookupRole(roleName); ok && role.Family == models.FamilyDriver {
		resp.RedirectURL = s.config.DriverSignInURL
	} else {
		resp.RedirectURL = s.config.StaffSignInURL
	}
	return resp, nil
}

// Logout revokes the session behind the bearer token.
func (s *AuthService) Logout(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return appErrors.ErrUnauthorized
	}
	if err := s.gateway.SignOut(ctx, accessToken); err != nil {
		s.logger.Warn("sign-out failed", zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrUnknownAuth.Code, appErrors.ErrUnknownAuth.Status, "failed to sign out")
	}
	return nil
}

// ForgotPassword triggers the gateway's recovery email. The response is the
// same whether or not the address exists, so it never leaks registrations.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	if err := s.validator.Var(email, "required,email"); err != nil {
		return appErrors.Clone(appErrors.ErrValidation, "a valid email address is required")
	}
	if err := s.gateway.ResetPassword(ctx, email); err != nil {
		s.logger.Warn("password recovery request failed", zap.String("email", email), zap.Error(err))
	}
	return nil
}

// sessionRole prefers the metadata bag, then falls back to the JWT claims.
// The token is not verified here; the gateway already vouched for it.
func sessionRole(session *models.Session) string {
	if session.Account.Metadata != nil {
		if role, ok := session.Account.Metadata["role"].(string); ok && role != "" {
			return role
		}
	}
	return roleFromToken(session.AccessToken)
}

func roleFromToken(accessToken string) string {
	if accessToken == "" {
		return ""
	}
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(accessToken, claims); err != nil {
		return ""
	}
	if meta, ok := claims["user_metadata"].(map[string]interface{}); ok {
		if role, ok := meta["role"].(string); ok {
			return role
		}
	}
	if role, ok := claims["role"].(string); ok {
		return role
	}
	return ""
}
