package v1

// BalanceChangeRequest carries the unsigned amount for deposit and withdraw.
// Positivity is enforced by the service so the error body matches the
// contract, not by a validation tag.
type BalanceChangeRequest struct {
	Amount int64 `json:"amount"`
}

type TransferRequest struct {
	FromAccountID int64 `json:"fromAccountId"`
	ToUserID      int64 `json:"toUserId"`
	ToAccountID   int64 `json:"toAccountId"`
	Amount        int64 `json:"amount"`
}

type CreateUserRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required"`
}
