package contract

import "simplebanking/internal/model"

type AccountResponse struct {
	ID       int64          `json:"id"`
	Amount   int64          `json:"amount"`
	Currency model.Currency `json:"currency"`
}

func AccountFrom(acc model.Account) AccountResponse {
	return AccountResponse{
		ID:       acc.ID,
		Amount:   acc.Amount,
		Currency: acc.Currency,
	}
}

// UserResponse is the full profile; the password hash never leaves the model
// layer.
type UserResponse struct {
	ID       int64             `json:"id"`
	Username string            `json:"username"`
	Accounts []AccountResponse `json:"accounts"`
}

func UserFrom(u model.User) UserResponse {
	accounts := make([]AccountResponse, 0, len(u.Accounts))
	for _, acc := range u.Accounts {
		accounts = append(accounts, AccountFrom(acc))
	}
	return UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Accounts: accounts,
	}
}

// ListUserResponse is the summary row returned by the user listing.
type ListUserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

func ListUsersFrom(users []model.User) []ListUserResponse {
	list := make([]ListUserResponse, 0, len(users))
	for _, u := range users {
		list = append(list, ListUserResponse{ID: u.ID, Username: u.Username})
	}
	return list
}
