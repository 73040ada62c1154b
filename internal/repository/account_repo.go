package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/LarozaLighting/laroza_api/internal/models"
	"github.com/LarozaLighting/laroza_api/internal/store"
)

// AccountRepository handles data access for self-registered customer
// accounts. Accounts live next to the synced collections in the same store
// but are not broadcast: a login on one context has no bearing on another.
type AccountRepository struct {
	store store.Store
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(st store.Store) *AccountRepository {
	return &AccountRepository{store: st}
}

// GetAll returns every registered customer account.
func (r *AccountRepository) GetAll(ctx context.Context) ([]models.Account, error) {
	raw, ok, err := r.store.Get(ctx, store.KeyAccounts)
	if err != nil {
		return nil, fmt.Errorf("read accounts: %w", err)
	}
	if !ok {
		return []models.Account{}, nil
	}
	var accounts []models.Account
	if err := json.Unmarshal([]byte(raw), &accounts); err != nil {
		return nil, fmt.Errorf("decode accounts: %w", err)
	}
	return accounts, nil
}

// SaveAll replaces the whole accounts list. Last writer wins.
func (r *AccountRepository) SaveAll(ctx context.Context, accounts []models.Account) error {
	data, err := json.Marshal(accounts)
	if err != nil {
		return fmt.Errorf("encode accounts: %w", err)
	}
	return r.store.Set(ctx, store.KeyAccounts, string(data))
}
