package accounts

const validPassword = "BlaBla1234"

func newRegisterRequest(username string) registerAccountRequest {
	return registerAccountRequest{
		User:  userRequest{Name: "Alice", Surname: "Smith", Age: 25},
		Login: loginRequest{Username: username, Password: validPassword},
	}
}

func newPendingAccount(username string) *Account {
	return &Account{
		Name:        "Alice",
		Surname:     "Smith",
		Age:         25,
		Credentials: Credentials{Username: username, Password: validPassword},
		Status:      StatusInProgress,
	}
}
