package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"gisty/config"
	domainerrors "gisty/internal/domain/errors"
	"gisty/internal/infra/auth"
	"gisty/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// createRoundTripService wires the account service with the real bcrypt
// hasher and the real token service over an in-memory repository.
func createRoundTripService(t *testing.T) (usecase.AccountUsecase, *memoryAccountRepository) {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Token = "round_trip_test_secret_key"

	tokenService, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	repo := newMemoryAccountRepository()
	service := NewAccountService(AccountServiceParams{
		AccountRepo:  repo,
		Hasher:       auth.NewBcryptHasherWithCost(bcrypt.MinCost),
		TokenService: tokenService,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return service, repo
}

func TestAccountService_RegisterThenLogin_RoundTrip(t *testing.T) {
	service, _ := createRoundTripService(t)
	ctx := context.Background()

	registered, err := service.Register(ctx, &usecase.RegisterInput{
		Name:     "Round Trip",
		Email:    "Round@Trip.com",
		Password: "Password123!",
	})
	require.NoError(t, err)
	require.NotNil(t, registered)
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, "round@trip.com", registered.Account.Email)

	loggedIn, err := service.Login(ctx, &usecase.LoginInput{
		Email:    "round@trip.com",
		Password: "Password123!",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.Account.ID, loggedIn.Account.ID)
	assert.NotEmpty(t, loggedIn.Token)
}

func TestAccountService_RegisterThenLogin_WrongPassword(t *testing.T) {
	service, _ := createRoundTripService(t)
	ctx := context.Background()

	_, err := service.Register(ctx, &usecase.RegisterInput{
		Name:     "Round Trip",
		Email:    "round@trip.com",
		Password: "Password123!",
	})
	require.NoError(t, err)

	_, err = service.Login(ctx, &usecase.LoginInput{
		Email:    "round@trip.com",
		Password: "NotThePassword",
	})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestAccountService_Register_SecondRegistrationRejected(t *testing.T) {
	service, _ := createRoundTripService(t)
	ctx := context.Background()

	_, err := service.Register(ctx, &usecase.RegisterInput{
		Name:     "First",
		Email:    "dupe@example.com",
		Password: "Password123!",
	})
	require.NoError(t, err)

	// Same email with different casing still collides.
	_, err = service.Register(ctx, &usecase.RegisterInput{
		Name:     "Second",
		Email:    "DUPE@example.com",
		Password: "Other456!",
	})
	assert.True(t, errors.Is(err, domainerrors.ErrDuplicateAccount))
}

func TestAccountService_RoundTrip_StoredPasswordIsHashed(t *testing.T) {
	service, repo := createRoundTripService(t)
	ctx := context.Background()

	registered, err := service.Register(ctx, &usecase.RegisterInput{
		Name:     "Hash Check",
		Email:    "hash@example.com",
		Password: "Password123!",
	})
	require.NoError(t, err)

	stored, err := repo.FindByID(ctx, registered.Account.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "Password123!", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("Password123!")))
}

func TestAccountService_RoundTrip_UpdatePasswordChangesLogin(t *testing.T) {
	service, _ := createRoundTripService(t)
	ctx := context.Background()

	registered, err := service.Register(ctx, &usecase.RegisterInput{
		Name:     "Rotate",
		Email:    "rotate@example.com",
		Password: "OldPassword1!",
	})
	require.NoError(t, err)

	newPassword := "NewPassword2!"
	_, err = service.UpdateAccount(ctx, registered.Account.ID, &usecase.UpdateAccountInput{
		Password: &newPassword,
	})
	require.NoError(t, err)

	_, err = service.Login(ctx, &usecase.LoginInput{Email: "rotate@example.com", Password: "OldPassword1!"})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))

	loggedIn, err := service.Login(ctx, &usecase.LoginInput{Email: "rotate@example.com", Password: newPassword})
	require.NoError(t, err)
	assert.Equal(t, registered.Account.ID, loggedIn.Account.ID)
}

func TestAccountService_RoundTrip_DeleteThenGet(t *testing.T) {
	service, _ := createRoundTripService(t)
	ctx := context.Background()

	registered, err := service.Register(ctx, &usecase.RegisterInput{
		Name:     "Short Lived",
		Email:    "gone@example.com",
		Password: "Password123!",
	})
	require.NoError(t, err)

	require.NoError(t, service.DeleteAccount(ctx, registered.Account.ID))

	_, err = service.GetAccount(ctx, registered.Account.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrAccountNotFound))

	err = service.DeleteAccount(ctx, registered.Account.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrAccountNotFound))
}
