package router

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	deliverycontext "gisty/internal/delivery/context"
	"gisty/internal/delivery/http/middleware"
	"gisty/internal/delivery/http/router/handler"
	"gisty/internal/delivery/http/validator"
	domainerrors "gisty/internal/domain/errors"
	"gisty/internal/domain/service"
	mockSvc "gisty/internal/mocks/service"
	mockUsecase "gisty/internal/mocks/usecase"
	"gisty/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// routerFixtures wires the full request pipeline so responses go
// through the validator, the auth middleware and the error handler,
// exactly as they do in the running server.
type routerFixtures struct {
	echo         *echo.Echo
	uc           *mockUsecase.MockAccountUsecase
	tokenService *mockSvc.MockTokenService
}

func createTestRouter(t *testing.T) routerFixtures {
	uc := mockUsecase.NewMockAccountUsecase(t)
	tokenService := mockSvc.NewMockTokenService(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	e := echo.New()
	e.Validator = validator.New()
	e.HTTPErrorHandler = middleware.NewErrorMiddleware(logger).HandleHTTPError

	r := NewRouter(RouterParams{
		AccountHandler:      handler.NewAccountHandler(uc, logger),
		AuthMiddleware:      middleware.NewAuthMiddleware(tokenService),
		RequestIDMiddleware: middleware.NewRequestIDMiddleware(logger),
	})
	r.RegisterRoutes(e)

	return routerFixtures{
		echo:         e,
		uc:           uc,
		tokenService: tokenService,
	}
}

func (fx routerFixtures) do(method, target, body string, header map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	fx.echo.ServeHTTP(rec, req)

	return rec
}

func TestRouter_Banner(t *testing.T) {
	fx := createTestRouter(t)

	rec := fx.do(http.MethodGet, "/", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Gisty Chat Backend is running!", rec.Body.String())
}

func TestRouter_HealthCheck(t *testing.T) {
	fx := createTestRouter(t)

	rec := fx.do(http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_Register_DuplicateEmail(t *testing.T) {
	fx := createTestRouter(t)

	fx.uc.EXPECT().
		Register(mock.Anything, mock.AnythingOfType("*usecase.RegisterInput")).
		Return(nil, domainerrors.ErrDuplicateAccount.WrapMessage("duplicate email"))

	rec := fx.do(http.MethodPost, "/api/users/register",
		`{"name":"Test User","email":"test@example.com","password":"Password123!"}`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "User already exists", body["message"])

	errInfo, ok := body["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "USER_ALREADY_EXISTS", errInfo["code"])
}

func TestRouter_Register_ValidationFailure(t *testing.T) {
	fx := createTestRouter(t)

	rec := fx.do(http.MethodPost, "/api/users/register", `{"name":"No Email"}`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_FAILED")
}

func TestRouter_Login_InvalidCredentials(t *testing.T) {
	fx := createTestRouter(t)

	fx.uc.EXPECT().
		Login(mock.Anything, mock.AnythingOfType("*usecase.LoginInput")).
		Return(nil, domainerrors.ErrInvalidCredentials.WrapMessage("password mismatch"))

	rec := fx.do(http.MethodPost, "/api/users/login",
		`{"email":"test@example.com","password":"wrong"}`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid email or password")
}

func TestRouter_GetAccount_NotFound(t *testing.T) {
	fx := createTestRouter(t)

	accountID := uuid.New()
	fx.uc.EXPECT().
		GetAccount(mock.Anything, accountID).
		Return(nil, domainerrors.ErrAccountNotFound.WrapMessage("no account with this id"))

	rec := fx.do(http.MethodGet, "/api/users/"+accountID.String(), "", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "User not found")
}

func TestRouter_GetAccount_InvalidID(t *testing.T) {
	fx := createTestRouter(t)

	rec := fx.do(http.MethodGet, "/api/users/not-a-uuid", "", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid account id")
}

func TestRouter_Me_MissingToken(t *testing.T) {
	fx := createTestRouter(t)

	rec := fx.do(http.MethodGet, "/api/users/me", "", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "MISSING_TOKEN")
}

func TestRouter_Me_BadToken(t *testing.T) {
	fx := createTestRouter(t)

	fx.tokenService.EXPECT().
		Verify("garbage").
		Return(nil, domainerrors.ErrInvalidToken.WrapMessage("parse failed"))

	rec := fx.do(http.MethodGet, "/api/users/me", "", map[string]string{
		"Authorization": "Bearer garbage",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_TOKEN")
}

func TestRouter_Me_ValidToken(t *testing.T) {
	fx := createTestRouter(t)

	accountID := uuid.New()
	fx.tokenService.EXPECT().
		Verify("good_token").
		Return(&service.Claims{AccountID: accountID}, nil)
	fx.uc.EXPECT().
		GetAccount(mock.Anything, accountID).
		Return(&usecase.AccountView{ID: accountID, Email: "me@example.com"}, nil)

	rec := fx.do(http.MethodGet, "/api/users/me", "", map[string]string{
		"Authorization": "Bearer good_token",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "me@example.com")
}

func TestRouter_RequestIDHeader(t *testing.T) {
	fx := createTestRouter(t)

	// A generated id is echoed back when the client sends none.
	rec := fx.do(http.MethodGet, "/health", "", nil)
	assert.NotEmpty(t, rec.Header().Get(deliverycontext.HeaderXRequestID))

	// A client-provided id is preserved.
	rec = fx.do(http.MethodGet, "/health", "", map[string]string{
		deliverycontext.HeaderXRequestID: "req-123",
	})
	assert.Equal(t, "req-123", rec.Header().Get(deliverycontext.HeaderXRequestID))
}
