// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"gisty/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	ProfilePic string `json:"profilePic" validate:"omitempty"`
}

// LoginInput defines the data required for an account to log in.
type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateAccountInput defines a replace-or-merge update. Nil fields are
// left untouched. A present password is re-hashed before persisting;
// the raw value never reaches the store.
type UpdateAccountInput struct {
	Name       *string `json:"name" validate:"omitempty"`
	Email      *string `json:"email" validate:"omitempty,email"`
	Password   *string `json:"password" validate:"omitempty"`
	ProfilePic *string `json:"profilePic" validate:"omitempty"`
}

// --- Output DTOs ---

// AccountView is the client-facing projection of an account. It never
// carries the password hash.
type AccountView struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	ProfilePic string    `json:"profilePic,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// NewAccountView maps an account entity to its scrubbed view.
func NewAccountView(account *entity.Account) *AccountView {
	if account == nil {
		return nil
	}

	return &AccountView{
		ID:         account.ID,
		Name:       account.Name,
		Email:      account.Email,
		ProfilePic: account.ProfilePic,
		CreatedAt:  account.CreatedAt,
		UpdatedAt:  account.UpdatedAt,
	}
}

// AuthOutput returns the issued credential together with the account view.
type AuthOutput struct {
	Token   string
	Account *AccountView
}

// AccountUsecase defines the interface for account-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AccountUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)
	GetAccount(ctx context.Context, id uuid.UUID) (*AccountView, error)
	UpdateAccount(ctx context.Context, id uuid.UUID, input *UpdateAccountInput) (*AccountView, error)
	DeleteAccount(ctx context.Context, id uuid.UUID) error
}
