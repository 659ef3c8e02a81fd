package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelintrips/registration-api/internal/models"
	"github.com/travelintrips/registration-api/internal/service"
	appErrors "github.com/travelintrips/registration-api/pkg/errors"
)

type authGatewayMock struct {
	session   *models.Session
	signInErr error
}

func (g *authGatewayMock) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	if g.signInErr != nil {
		return nil, g.signInErr
	}
	return g.session, nil
}

func (g *authGatewayMock) SignOut(ctx context.Context, accessToken string) error { return nil }

func (g *authGatewayMock) ResetPassword(ctx context.Context, email string) error { return nil }

func newAuthTestHandler(gw *authGatewayMock) *AuthHandler {
	svc := service.NewAuthService(gw, nil, nil, service.AuthConfig{
		DriverSignInURL: "https://driver.example.com/login",
		StaffSignInURL:  "https://admin.example.com/login",
	})
	return NewAuthHandler(svc)
}

func TestAuthHandlerLoginSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newAuthTestHandler(&authGatewayMock{session: &models.Session{
		AccessToken: "token",
		Account: models.Account{
			ID:       "acc-1",
			Email:    "staff@example.com",
			Metadata: map[string]interface{}{"role": models.RoleStaffTrips},
		},
	}})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, _ := json.Marshal(models.LoginRequest{Email: "staff@example.com", Password: "secret123"})
	c.Request, _ = http.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Login(c)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestAuthHandlerLoginInvalidCredentials(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newAuthTestHandler(&authGatewayMock{signInErr: errors.New("Invalid login credentials")})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, _ := json.Marshal(models.LoginRequest{Email: "staff@example.com", Password: "wrong"})
	c.Request, _ = http.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Login(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	envelope := decodeEnvelope(t, w)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, envelope.Error.Code)
}

func TestAuthHandlerLogoutWithoutToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newAuthTestHandler(&authGatewayMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/auth/logout", nil)

	handler.Logout(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandlerLogoutWithBearer(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newAuthTestHandler(&authGatewayMock{})

	// routed through an engine so the status-only response is flushed
	r := gin.New()
	r.POST("/auth/logout", handler.Logout)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestAuthHandlerForgotPasswordAccepted(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newAuthTestHandler(&authGatewayMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body := []byte(`{"email":"user@example.com"}`)
	c.Request, _ = http.NewRequest(http.MethodPost, "/auth/forgot-password", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.ForgotPassword(c)
	assert.Equal(t, http.StatusAccepted, w.Code)
}
