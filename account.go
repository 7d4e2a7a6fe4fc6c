package accounts

type ID int64

type Account struct {
	ID          ID
	Name        string
	Surname     string
	Age         int
	Credentials Credentials
	Status      Status
}

//Credentials holds the account's sensitive information
type Credentials struct {
	Username,
	Password string
}

//NewAccount validates every field of r and returns a new pending Account if
// all of them are valid
func NewAccount(r registerAccountRequest) (*Account, error) {
	if err := validateStruct(r); err != nil {
		return nil, err
	}

	return &Account{
		Name:        r.User.Name,
		Surname:     r.User.Surname,
		Age:         r.User.Age,
		Credentials: Credentials{Username: r.Login.Username, Password: r.Login.Password},
		Status:      StatusInProgress,
	}, nil
}

// Activate moves the account to ACTIVE from any other state and reports
// whether the status changed.
func (a *Account) Activate() bool {
	if a.Status == StatusActive {
		return false
	}
	a.Status = StatusActive
	return true
}
