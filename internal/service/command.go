package service

// BalanceChangeCommand adjusts a single account. Amount is always positive;
// the operation (deposit or withdraw) decides the sign.
type BalanceChangeCommand struct {
	AccountID int64
	Amount    int64
}

type TransferCommand struct {
	FromAccountID int64
	ToUserID      int64
	ToAccountID   int64
	Amount        int64
}

type CreateUserCommand struct {
	Username string
	Password string
}
