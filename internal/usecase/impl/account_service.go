// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "gisty/internal/delivery/context"
	"gisty/internal/domain/entity"
	domainerrors "gisty/internal/domain/errors"
	"gisty/internal/domain/repository"
	"gisty/internal/domain/service"
	"gisty/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	accountRepo  repository.AccountRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// AccountServiceParams holds dependencies for accountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	AccountRepo  repository.AccountRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		accountRepo:  params.AccountRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a new account and issues its first credential.
// There is no pre-insert existence check: the store's unique email
// constraint decides duplicates, so two concurrent registrations for
// the same email race on the constraint and the loser gets the
// duplicate-account error.
func (srv *accountService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	email := entity.NormalizeEmail(input.Email)
	srv.log(ctx).Info("Starting registration", slog.String("email", email))

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password during registration")
	}

	newAccount := &entity.Account{
		Name:         input.Name,
		Email:        email,
		PasswordHash: hashedPassword,
		ProfilePic:   input.ProfilePic,
	}

	if err := srv.accountRepo.Create(ctx, newAccount); err != nil {
		srv.log(ctx).Warn("Failed to create account", slog.String("email", email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create account during registration")
	}

	token, err := srv.tokenService.Issue(newAccount.ID)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token after registration", slog.Any("accountID", newAccount.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue token during registration")
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("accountID", newAccount.ID))

	return &usecase.AuthOutput{
		Token:   token,
		Account: usecase.NewAccountView(newAccount),
	}, nil
}

// Login verifies credentials and issues a fresh credential. The
// unknown-email and wrong-password paths return the identical
// invalid-credentials error so a caller cannot tell which was wrong.
func (srv *accountService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	email := entity.NormalizeEmail(input.Email)
	srv.log(ctx).Debug("Starting login", slog.String("email", email))

	account, err := srv.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		srv.log(ctx).Warn("Login failed", slog.String("email", email), slog.Any("error", err))

		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("unknown email")
		}

		return nil, errors.Wrap(err, "failed to load account for login")
	}

	// bcrypt comparison is CPU-bound and constant-time relative to the stored hash.
	if !srv.hasher.Check(input.Password, account.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", email), slog.Any("error", domainerrors.ErrInvalidCredentials))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("password mismatch")
	}

	token, err := srv.tokenService.Issue(account.ID)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token during login", slog.Any("accountID", account.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue token during login")
	}

	srv.log(ctx).Debug("Login completed", slog.Any("accountID", account.ID))

	return &usecase.AuthOutput{
		Token:   token,
		Account: usecase.NewAccountView(account),
	}, nil
}

// GetAccount returns the scrubbed view of a single account.
func (srv *accountService) GetAccount(ctx context.Context, id uuid.UUID) (*usecase.AccountView, error) {
	account, err := srv.findAccount(ctx, id)
	if err != nil {
		return nil, err
	}

	return usecase.NewAccountView(account), nil
}

// UpdateAccount merges the provided fields into the stored account.
// A password in the update body is re-hashed before persisting.
func (srv *accountService) UpdateAccount(ctx context.Context, id uuid.UUID, input *usecase.UpdateAccountInput) (*usecase.AccountView, error) {
	account, err := srv.findAccount(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		account.Name = *input.Name
	}
	if input.Email != nil {
		account.Email = entity.NormalizeEmail(*input.Email)
	}
	if input.ProfilePic != nil {
		account.ProfilePic = *input.ProfilePic
	}
	if input.Password != nil {
		hashedPassword, err := srv.hasher.Hash(*input.Password)
		if err != nil {
			srv.log(ctx).Error("Failed to hash password during update", slog.Any("accountID", id), slog.Any("error", err))

			return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password during update")
		}
		account.PasswordHash = hashedPassword
	}

	if err := srv.accountRepo.Update(ctx, account); err != nil {
		srv.log(ctx).Warn("Failed to update account", slog.Any("accountID", id), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to update account")
	}

	srv.log(ctx).Debug("Account updated", slog.Any("accountID", id))

	return usecase.NewAccountView(account), nil
}

// DeleteAccount removes an account. Hard delete; a repeated call for
// the same id reports not-found.
func (srv *accountService) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	if err := srv.accountRepo.Delete(ctx, id); err != nil {
		srv.log(ctx).Warn("Failed to delete account", slog.Any("accountID", id), slog.Any("error", err))

		if errors.Is(err, repository.ErrAccountNotFound) {
			return domainerrors.ErrAccountNotFound.WrapMessage("account already deleted or never existed")
		}

		return errors.Wrap(err, "failed to delete account")
	}

	srv.log(ctx).Debug("Account deleted", slog.Any("accountID", id))

	return nil
}

// findAccount loads an account by id, translating the repository
// sentinel into the not-found domain error.
func (srv *accountService) findAccount(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	account, err := srv.accountRepo.FindByID(ctx, id)
	if err != nil {
		srv.log(ctx).Warn("Failed to load account", slog.Any("accountID", id), slog.Any("error", err))

		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, domainerrors.ErrAccountNotFound.WrapMessage("no account with this id")
		}

		return nil, errors.Wrap(err, "failed to load account")
	}

	return account, nil
}
