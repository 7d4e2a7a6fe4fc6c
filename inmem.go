package accounts

import (
	"context"
	"sync"
)

type accountRepository struct {
	mu       sync.RWMutex
	lastID   ID
	accounts map[ID]*Account
	byName   map[string]ID
}

func NewAccountRepository() Repository {
	return &accountRepository{accounts: map[ID]*Account{}, byName: map[string]ID{}}
}

func (repo *accountRepository) Store(_ context.Context, acc *Account) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.byName[acc.Credentials.Username]; ok {
		return ErrExistingUsername
	}

	repo.lastID++
	acc.ID = repo.lastID

	a := *acc
	repo.accounts[a.ID] = &a
	repo.byName[a.Credentials.Username] = a.ID
	return nil
}

func (repo *accountRepository) FindByCredentials(ctx context.Context, username, password string) (*Account, error) {
	acc, err := repo.FindByName(ctx, username)
	if err != nil {
		return nil, err
	}
	if acc.Credentials.Password != password {
		return nil, ErrNotFound
	}
	return acc, nil
}

func (repo *accountRepository) FindByName(_ context.Context, username string) (*Account, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	if id, ok := repo.byName[username]; ok {
		a := *repo.accounts[id]
		return &a, nil
	}
	return nil, ErrNotFound
}

func (repo *accountRepository) UpdateStatus(_ context.Context, id ID, s Status) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	acc, ok := repo.accounts[id]
	if !ok {
		return ErrNotFound
	}
	acc.Status = s
	return nil
}
