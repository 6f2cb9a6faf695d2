package impl

import (
	"context"
	"sync"
	"time"

	"gisty/internal/domain/entity"
	domainerrors "gisty/internal/domain/errors"
	"gisty/internal/domain/repository"

	"github.com/google/uuid"
)

// memoryAccountRepository is an in-memory AccountRepository used by the
// round-trip tests so registration and login run against the same state
// with real hashing and signing.
type memoryAccountRepository struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]*entity.Account
}

func newMemoryAccountRepository() *memoryAccountRepository {
	return &memoryAccountRepository{
		accounts: make(map[uuid.UUID]*entity.Account),
	}
}

func (r *memoryAccountRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}

	copied := *account

	return &copied, nil
}

func (r *memoryAccountRepository) FindByEmail(_ context.Context, email string) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, account := range r.accounts {
		if account.Email == email {
			copied := *account

			return &copied, nil
		}
	}

	return nil, repository.ErrAccountNotFound
}

func (r *memoryAccountRepository) Create(_ context.Context, account *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Mirrors the unique email constraint of the real store.
	for _, existing := range r.accounts {
		if existing.Email == account.Email {
			return domainerrors.ErrDuplicateAccount.WrapMessage("duplicate email")
		}
	}

	account.ID = uuid.New()
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt

	copied := *account
	r.accounts[account.ID] = &copied

	return nil
}

func (r *memoryAccountRepository) Update(_ context.Context, account *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[account.ID]; !ok {
		return repository.ErrAccountNotFound
	}

	account.UpdatedAt = time.Now()

	copied := *account
	r.accounts[account.ID] = &copied

	return nil
}

func (r *memoryAccountRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[id]; !ok {
		return repository.ErrAccountNotFound
	}

	delete(r.accounts, id)

	return nil
}
