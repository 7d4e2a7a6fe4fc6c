package accounts

import "context"

type Service interface {
	RegisterAccount(ctx context.Context, r registerAccountRequest) (ID, error)
	Login(ctx context.Context, r loginRequest) (*Account, error)
}

type Repository interface {
	// Store inserts acc and sets its ID. A taken username yields
	// ErrExistingUsername.
	Store(ctx context.Context, acc *Account) error
	FindByCredentials(ctx context.Context, username, password string) (*Account, error)
	FindByName(ctx context.Context, username string) (*Account, error)
	UpdateStatus(ctx context.Context, id ID, s Status) error
}

type userRequest struct {
	Name    string `json:"name" validate:"required,alpha"`
	Surname string `json:"surname" validate:"required,alpha"`
	Age     int    `json:"age" validate:"gte=18,lte=120"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required,alphanum"`
	Password string `json:"password" validate:"required,password"`
}

type registerAccountRequest struct {
	User  userRequest  `json:"user"`
	Login loginRequest `json:"login"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Detail interface{} `json:"detail"`
}
