package constants

const MessageErrorFormat = "The '%s' format is invalid"

const (
	ErrCodeAmountNotPositive = "AMOUNT_NOT_POSITIVE"
	ErrCodeInsufficientFunds = "INSUFFICIENT_FUNDS"
	ErrCodeCurrencyMismatch  = "CURRENCY_MISMATCH"
	ErrCodeUserExisted       = "USER_ALREADY_EXISTS"
	ErrCodeUserNotFound      = "USER_NOT_FOUND"
	ErrCodeAccountNotFound   = "ACCOUNT_NOT_FOUND"
	ErrCodeForbidden         = "FORBIDDEN"
	ErrCodeValidationFailed  = "VALIDATION_FAILED"
	ErrCodeOperationFailed   = "OPERATION_FAILED"
)

const (
	ErrMsgAmountNotPositive = "Amount should be more than 0"
	ErrMsgCurrencyMismatch  = "Account currencies should be same"
	ErrMsgUserExisted       = "User already exists"
	ErrMsgCannotWithdraw    = "Cannot withdraw %d %s"
)

var errorMessages = map[string]string{
	ErrCodeAmountNotPositive: ErrMsgAmountNotPositive,
	ErrCodeCurrencyMismatch:  ErrMsgCurrencyMismatch,
	ErrCodeUserExisted:       ErrMsgUserExisted,
}

func GetErrorMessage(code string) string {
	msg, exists := errorMessages[code]
	if !exists {
		return ""
	}
	return msg
}
