package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"concursos/internal/domain"
	"concursos/internal/handler"
	"concursos/internal/service"
	"concursos/mocks/servicemocks"
)

func newAuthRouter() (*gin.Engine, *servicemocks.MockAuthService) {
	authSvc := new(servicemocks.MockAuthService)
	h := handler.NewAuthHandler(authSvc)

	r := gin.New()
	r.POST("/auth/login", h.Login)
	return r, authSvc
}

func TestLogin_Success(t *testing.T) {
	r, authSvc := newAuthRouter()

	authSvc.On("Login", mock.Anything, service.LoginInput{
		Email:    "admin@example.com",
		Password: "s3cret-pass",
	}).Return(&service.Token{AccessToken: "tok"}, nil)

	body := `{"email":"admin@example.com","password":"s3cret-pass"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "tok")
}

func TestLogin_InvalidCredentials(t *testing.T) {
	r, authSvc := newAuthRouter()

	authSvc.On("Login", mock.Anything, mock.Anything).Return(nil, domain.ErrInvalidCredentials)

	body := `{"email":"admin@example.com","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_MissingFields(t *testing.T) {
	r, _ := newAuthRouter()

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}
