package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// mockAuthUsecase is a mock implementation of the AuthUsecase interface.
type mockAuthUsecase struct {
	SignupFunc func(ctx context.Context, email, password string) error
	LoginFunc  func(ctx context.Context, email, password string) (string, error)
}

func (m *mockAuthUsecase) Signup(ctx context.Context, email, password string) error {
	if m.SignupFunc != nil {
		return m.SignupFunc(ctx, email, password)
	}
	return nil
}

func (m *mockAuthUsecase) Login(ctx context.Context, email, password string) (string, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return "", nil
}

func performRequest(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Signup(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		body           string
		signupFunc     func(ctx context.Context, email, password string) error
		expectedStatus int
	}{
		{
			name:           "success: valid signup returns 201",
			body:           `{"email":"user@example.com","password":"strongpassword"}`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "error: malformed JSON returns 400",
			body:           `{"email":`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "error: invalid email returns 400",
			body:           `{"email":"not-an-email","password":"strongpassword"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "error: short password returns 400",
			body:           `{"email":"user@example.com","password":"short"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "error: usecase failure returns 409",
			body: `{"email":"dup@example.com","password":"strongpassword"}`,
			signupFunc: func(ctx context.Context, email, password string) error {
				return errors.New("email already exists")
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAuthHandler(&mockAuthUsecase{SignupFunc: tt.signupFunc})
			r := gin.New()
			r.POST("/signup", h.Signup)

			w := performRequest(r, http.MethodPost, "/signup", tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		body           string
		loginFunc      func(ctx context.Context, email, password string) (string, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success: valid login returns token",
			body: `{"email":"user@example.com","password":"strongpassword"}`,
			loginFunc: func(ctx context.Context, email, password string) (string, error) {
				return "signed-token", nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"token":"signed-token"}`,
		},
		{
			name:           "error: malformed JSON returns 400",
			body:           `not json`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "error: bad credentials return 401",
			body: `{"email":"user@example.com","password":"wrongpassword"}`,
			loginFunc: func(ctx context.Context, email, password string) (string, error) {
				return "", errors.New("invalid email or password")
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAuthHandler(&mockAuthUsecase{LoginFunc: tt.loginFunc})
			r := gin.New()
			r.POST("/login", h.Login)

			w := performRequest(r, http.MethodPost, "/login", tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, w.Body.String())
			}
		})
	}
}
