package accounts

import (
	"context"
	"errors"
	"fmt"
)

const registeredMessage = "Thank you for registering!"

type service struct {
	accounts Repository
}

func NewService(accounts Repository) Service {
	return &service{accounts: accounts}
}

func (svc *service) RegisterAccount(ctx context.Context, r registerAccountRequest) (ID, error) {
	acc, err := NewAccount(r)
	if err != nil {
		return 0, err
	}

	if err := svc.accounts.Store(ctx, acc); err != nil {
		if errors.Is(err, ErrExistingUsername) {
			return 0, ErrExistingUsername
		}
		return 0, fmt.Errorf("error saving account: %w", err)
	}

	return acc.ID, nil
}

func (svc *service) Login(ctx context.Context, r loginRequest) (*Account, error) {
	if err := validateStruct(r); err != nil {
		return nil, err
	}

	acc, err := svc.accounts.FindByCredentials(ctx, r.Username, r.Password)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, &NotFoundError{Username: r.Username}
		}
		return nil, fmt.Errorf("error finding account: %w", err)
	}

	if acc.Activate() {
		if err := svc.accounts.UpdateStatus(ctx, acc.ID, acc.Status); err != nil {
			return nil, fmt.Errorf("error activating account: %w", err)
		}
	}

	return acc, nil
}

func greeting(acc *Account) string {
	return fmt.Sprintf("Hello, %s!", acc.Name)
}
