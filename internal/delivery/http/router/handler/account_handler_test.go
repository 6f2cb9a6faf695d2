package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gisty/internal/delivery/http/middleware"
	"gisty/internal/delivery/http/validator"
	domainerrors "gisty/internal/domain/errors"
	mockUsecase "gisty/internal/mocks/usecase"
	"gisty/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) (*AccountHandler, *mockUsecase.MockAccountUsecase) {
	uc := mockUsecase.NewMockAccountUsecase(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewAccountHandler(uc, logger), uc
}

func newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = validator.New()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestAccountHandler_Register_Success(t *testing.T) {
	h, uc := newTestHandler(t)

	accountID := uuid.New()
	uc.EXPECT().
		Register(mock.Anything, mock.AnythingOfType("*usecase.RegisterInput")).
		Return(&usecase.AuthOutput{
			Token: "signed_token",
			Account: &usecase.AccountView{
				ID:        accountID,
				Name:      "Test User",
				Email:     "test@example.com",
				CreatedAt: time.Now(),
				UpdatedAt: time.Now(),
			},
		}, nil)

	c, rec := newJSONContext(http.MethodPost, "/api/users/register",
		`{"name":"Test User","email":"test@example.com","password":"Password123!"}`)

	require.NoError(t, h.Register(c))

	assert.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "User registered successfully", body["message"])
	assert.Equal(t, "signed_token", body["token"])

	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "test@example.com", user["email"])
	// The view must never leak the stored hash.
	assert.NotContains(t, user, "password")
	assert.NotContains(t, user, "passwordHash")
}

func TestAccountHandler_Register_MalformedBody(t *testing.T) {
	h, _ := newTestHandler(t)

	c, rec := newJSONContext(http.MethodPost, "/api/users/register", `{"name": `)

	require.NoError(t, h.Register(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_INPUT")
}

func TestAccountHandler_Register_MissingFields(t *testing.T) {
	h, _ := newTestHandler(t)

	c, _ := newJSONContext(http.MethodPost, "/api/users/register", `{"name":"No Email"}`)

	err := h.Register(c)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestAccountHandler_Register_UsecaseError(t *testing.T) {
	h, uc := newTestHandler(t)

	uc.EXPECT().
		Register(mock.Anything, mock.AnythingOfType("*usecase.RegisterInput")).
		Return(nil, domainerrors.ErrDuplicateAccount.WrapMessage("duplicate email"))

	c, _ := newJSONContext(http.MethodPost, "/api/users/register",
		`{"name":"Test User","email":"test@example.com","password":"Password123!"}`)

	err := h.Register(c)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrDuplicateAccount))
}

func TestAccountHandler_Login_Success(t *testing.T) {
	h, uc := newTestHandler(t)

	accountID := uuid.New()
	uc.EXPECT().
		Login(mock.Anything, mock.AnythingOfType("*usecase.LoginInput")).
		Return(&usecase.AuthOutput{
			Token:   "signed_token",
			Account: &usecase.AccountView{ID: accountID, Email: "test@example.com"},
		}, nil)

	c, rec := newJSONContext(http.MethodPost, "/api/users/login",
		`{"email":"test@example.com","password":"Password123!"}`)

	require.NoError(t, h.Login(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Login successful")
	assert.Contains(t, rec.Body.String(), "signed_token")
}

func TestAccountHandler_Login_InvalidCredentials(t *testing.T) {
	h, uc := newTestHandler(t)

	uc.EXPECT().
		Login(mock.Anything, mock.AnythingOfType("*usecase.LoginInput")).
		Return(nil, domainerrors.ErrInvalidCredentials.WrapMessage("password mismatch"))

	c, _ := newJSONContext(http.MethodPost, "/api/users/login",
		`{"email":"test@example.com","password":"wrong"}`)

	err := h.Login(c)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestAccountHandler_GetAccount_Success(t *testing.T) {
	h, uc := newTestHandler(t)

	accountID := uuid.New()
	uc.EXPECT().
		GetAccount(mock.Anything, accountID).
		Return(&usecase.AccountView{ID: accountID, Name: "Test User", Email: "test@example.com"}, nil)

	c, rec := newJSONContext(http.MethodGet, "/api/users/"+accountID.String(), "")
	c.SetParamNames("id")
	c.SetParamValues(accountID.String())

	require.NoError(t, h.GetAccount(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	var view usecase.AccountView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, accountID, view.ID)
	assert.Equal(t, "test@example.com", view.Email)
}

func TestAccountHandler_GetAccount_InvalidID(t *testing.T) {
	h, _ := newTestHandler(t)

	c, rec := newJSONContext(http.MethodGet, "/api/users/not-a-uuid", "")
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	require.NoError(t, h.GetAccount(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid account id")
}

func TestAccountHandler_UpdateAccount_Success(t *testing.T) {
	h, uc := newTestHandler(t)

	accountID := uuid.New()
	uc.EXPECT().
		UpdateAccount(mock.Anything, accountID, mock.AnythingOfType("*usecase.UpdateAccountInput")).
		Return(&usecase.AccountView{ID: accountID, Name: "New Name", Email: "test@example.com"}, nil)

	c, rec := newJSONContext(http.MethodPut, "/api/users/"+accountID.String(), `{"name":"New Name"}`)
	c.SetParamNames("id")
	c.SetParamValues(accountID.String())

	require.NoError(t, h.UpdateAccount(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "New Name")
}

func TestAccountHandler_DeleteAccount_Success(t *testing.T) {
	h, uc := newTestHandler(t)

	accountID := uuid.New()
	uc.EXPECT().DeleteAccount(mock.Anything, accountID).Return(nil)

	c, rec := newJSONContext(http.MethodDelete, "/api/users/"+accountID.String(), "")
	c.SetParamNames("id")
	c.SetParamValues(accountID.String())

	require.NoError(t, h.DeleteAccount(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "User deleted successfully")
}

func TestAccountHandler_DeleteAccount_NotFound(t *testing.T) {
	h, uc := newTestHandler(t)

	accountID := uuid.New()
	uc.EXPECT().
		DeleteAccount(mock.Anything, accountID).
		Return(domainerrors.ErrAccountNotFound.WrapMessage("already deleted"))

	c, _ := newJSONContext(http.MethodDelete, "/api/users/"+accountID.String(), "")
	c.SetParamNames("id")
	c.SetParamValues(accountID.String())

	err := h.DeleteAccount(c)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrAccountNotFound))
}

func TestAccountHandler_Me_Success(t *testing.T) {
	h, uc := newTestHandler(t)

	accountID := uuid.New()
	uc.EXPECT().
		GetAccount(mock.Anything, accountID).
		Return(&usecase.AccountView{ID: accountID, Email: "me@example.com"}, nil)

	c, rec := newJSONContext(http.MethodGet, "/api/users/me", "")
	c.Set(middleware.ContextKeyAccountID, accountID)

	require.NoError(t, h.Me(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "me@example.com")
}

func TestAccountHandler_Me_MissingIdentity(t *testing.T) {
	h, _ := newTestHandler(t)

	c, rec := newJSONContext(http.MethodGet, "/api/users/me", "")

	require.NoError(t, h.Me(c))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHealthCheck(t *testing.T) {
	c, rec := newJSONContext(http.MethodGet, "/health", "")

	require.NoError(t, HealthCheck(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}
