package v1_test

import (
	"bytes"
	"io"
	"net/http/httptest"
	"testing"

	v1 "simplebanking/internal/api/v1"
	apivalidator "simplebanking/internal/api/validator"
	"simplebanking/internal/auth"
	"simplebanking/internal/constants"
	appErrors "simplebanking/internal/errors"
	"simplebanking/internal/mocks"
	"simplebanking/internal/model"
	"simplebanking/internal/service"

	playground "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type handlerFixture struct {
	accountService  *mocks.AccountService
	transferService *mocks.TransferService
	userService     *mocks.UserService
	app             *fiber.App
}

func newHandlerFixture(principal *auth.Principal) *handlerFixture {
	f := &handlerFixture{
		accountService:  &mocks.AccountService{},
		transferService: &mocks.TransferService{},
		userService:     &mocks.UserService{},
	}

	handler := v1.NewHandler(
		zap.NewNop(),
		f.accountService,
		f.transferService,
		f.userService,
		apivalidator.NewXValidator(playground.New(), nil),
		nil,
	)

	app := fiber.New(fiber.Config{ErrorHandler: appErrors.ErrorHandler()})
	if principal != nil {
		app.Use(func(c *fiber.Ctx) error {
			auth.SetPrincipal(c, *principal)
			return c.Next()
		})
	}

	app.Get("/account/:id", handler.GetAccount)
	app.Post("/account/deposit/:id", handler.Deposit)
	app.Post("/account/withdraw/:id", handler.Withdraw)
	app.Post("/transfer", handler.Transfer)
	app.Post("/user", handler.CreateUser)
	app.Get("/user/list", handler.ListUsers)
	app.Get("/user/me", handler.Me)

	f.app = app
	return f
}

func doJSON(t *testing.T, app *fiber.App, method, target, body string) (int, string) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, string(raw)
}

func TestHandler_GetAccount(t *testing.T) {
	owner := auth.Principal{UserID: 7, Username: "ivan", Role: auth.RoleUser}

	t.Run("returns the account payload", func(t *testing.T) {
		f := newHandlerFixture(&owner)
		f.accountService.On("GetAccount", owner, int64(1)).
			Return(model.Account{ID: 1, UserID: 7, Currency: model.RUB, Amount: 500}, nil)

		status, body := doJSON(t, f.app, fiber.MethodGet, "/account/1", "")

		assert.Equal(t, fiber.StatusOK, status)
		assert.JSONEq(t, `{"id":1,"amount":500,"currency":"RUB"}`, body)
	})

	t.Run("missing account answers 404 with no body", func(t *testing.T) {
		f := newHandlerFixture(&owner)
		f.accountService.On("GetAccount", owner, int64(99)).
			Return(model.Account{}, service.Error{Code: constants.ErrCodeAccountNotFound})

		status, body := doJSON(t, f.app, fiber.MethodGet, "/account/99", "")

		assert.Equal(t, fiber.StatusNotFound, status)
		assert.Empty(t, body)
	})

	t.Run("someone else's account answers 403 with no body", func(t *testing.T) {
		f := newHandlerFixture(&owner)
		f.accountService.On("GetAccount", owner, int64(2)).
			Return(model.Account{}, service.Error{Code: constants.ErrCodeForbidden})

		status, body := doJSON(t, f.app, fiber.MethodGet, "/account/2", "")

		assert.Equal(t, fiber.StatusForbidden, status)
		assert.Empty(t, body)
	})

	t.Run("non-numeric id is a bad request", func(t *testing.T) {
		f := newHandlerFixture(&owner)

		status, _ := doJSON(t, f.app, fiber.MethodGet, "/account/abc", "")

		assert.Equal(t, fiber.StatusBadRequest, status)
		f.accountService.AssertNotCalled(t, "GetAccount", mock.Anything, mock.Anything)
	})

	t.Run("no principal is unauthorized", func(t *testing.T) {
		f := newHandlerFixture(nil)

		status, _ := doJSON(t, f.app, fiber.MethodGet, "/account/1", "")

		assert.Equal(t, fiber.StatusUnauthorized, status)
	})
}

func TestHandler_Deposit(t *testing.T) {
	owner := auth.Principal{UserID: 7, Username: "ivan", Role: auth.RoleUser}

	t.Run("returns the updated account", func(t *testing.T) {
		f := newHandlerFixture(&owner)
		cmd := service.BalanceChangeCommand{AccountID: 1, Amount: 500}
		f.accountService.On("Deposit", mock.Anything, owner, cmd).
			Return(model.Account{ID: 1, UserID: 7, Currency: model.RUB, Amount: 1_000_500}, nil)

		status, body := doJSON(t, f.app, fiber.MethodPost, "/account/deposit/1", `{"amount":500}`)

		assert.Equal(t, fiber.StatusOK, status)
		assert.JSONEq(t, `{"id":1,"amount":1000500,"currency":"RUB"}`, body)
	})

	t.Run("non-positive amount answers 400 with the bare message", func(t *testing.T) {
		f := newHandlerFixture(&owner)
		cmd := service.BalanceChangeCommand{AccountID: 1, Amount: -500}
		f.accountService.On("Deposit", mock.Anything, owner, cmd).
			Return(model.Account{}, service.Error{
				Code:    constants.ErrCodeAmountNotPositive,
				Message: constants.ErrMsgAmountNotPositive,
			})

		status, body := doJSON(t, f.app, fiber.MethodPost, "/account/deposit/1", `{"amount":-500}`)

		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Equal(t, `"Amount should be more than 0"`, body)
	})

	t.Run("malformed body is a bad request", func(t *testing.T) {
		f := newHandlerFixture(&owner)

		status, _ := doJSON(t, f.app, fiber.MethodPost, "/account/deposit/1", `{"amount":`)

		assert.Equal(t, fiber.StatusBadRequest, status)
		f.accountService.AssertNotCalled(t, "Deposit", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestHandler_Withdraw(t *testing.T) {
	owner := auth.Principal{UserID: 7, Username: "ivan", Role: auth.RoleUser}

	t.Run("returns the updated account", func(t *testing.T) {
		f := newHandlerFixture(&owner)
		cmd := service.BalanceChangeCommand{AccountID: 1, Amount: 10_005}
		f.accountService.On("Withdraw", mock.Anything, owner, cmd).
			Return(model.Account{ID: 1, UserID: 7, Currency: model.RUB, Amount: 990_495}, nil)

		status, body := doJSON(t, f.app, fiber.MethodPost, "/account/withdraw/1", `{"amount":10005}`)

		assert.Equal(t, fiber.StatusOK, status)
		assert.JSONEq(t, `{"id":1,"amount":990495,"currency":"RUB"}`, body)
	})

	t.Run("insufficient funds answers 400 naming amount and currency", func(t *testing.T) {
		f := newHandlerFixture(&owner)
		cmd := service.BalanceChangeCommand{AccountID: 1, Amount: 2_000_000}
		f.accountService.On("Withdraw", mock.Anything, owner, cmd).
			Return(model.Account{}, service.Error{
				Code:    constants.ErrCodeInsufficientFunds,
				Message: "Cannot withdraw 2000000 RUB",
			})

		status, body := doJSON(t, f.app, fiber.MethodPost, "/account/withdraw/1", `{"amount":2000000}`)

		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Equal(t, `"Cannot withdraw 2000000 RUB"`, body)
	})
}

func TestHandler_Transfer(t *testing.T) {
	sender := auth.Principal{UserID: 7, Username: "ivan", Role: auth.RoleUser}

	t.Run("answers 200 with no payload", func(t *testing.T) {
		f := newHandlerFixture(&sender)
		cmd := service.TransferCommand{FromAccountID: 10, ToUserID: 8, ToAccountID: 3, Amount: 1_000}
		f.transferService.On("Transfer", mock.Anything, sender, cmd).Return(nil)

		status, _ := doJSON(t, f.app, fiber.MethodPost, "/transfer",
			`{"fromAccountId":10,"toUserId":8,"toAccountId":3,"amount":1000}`)

		assert.Equal(t, fiber.StatusOK, status)
		f.transferService.AssertExpectations(t)
	})

	t.Run("currency mismatch answers 400 with the bare message", func(t *testing.T) {
		f := newHandlerFixture(&sender)
		f.transferService.On("Transfer", mock.Anything, sender, mock.Anything).
			Return(service.Error{
				Code:    constants.ErrCodeCurrencyMismatch,
				Message: constants.ErrMsgCurrencyMismatch,
			})

		status, body := doJSON(t, f.app, fiber.MethodPost, "/transfer",
			`{"fromAccountId":10,"toUserId":8,"toAccountId":3,"amount":1000}`)

		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Equal(t, `"Account currencies should be same"`, body)
	})

	t.Run("unknown destination answers 404 with no body", func(t *testing.T) {
		f := newHandlerFixture(&sender)
		f.transferService.On("Transfer", mock.Anything, sender, mock.Anything).
			Return(service.Error{Code: constants.ErrCodeUserNotFound})

		status, body := doJSON(t, f.app, fiber.MethodPost, "/transfer",
			`{"fromAccountId":10,"toUserId":99,"toAccountId":3,"amount":1000}`)

		assert.Equal(t, fiber.StatusNotFound, status)
		assert.Empty(t, body)
	})
}

func TestHandler_CreateUser(t *testing.T) {
	admin := auth.Principal{Username: "admin", Role: auth.RoleAdmin}

	t.Run("returns the created user with its accounts", func(t *testing.T) {
		f := newHandlerFixture(&admin)
		cmd := service.CreateUserCommand{Username: "ivan", Password: "secret"}
		f.userService.On("CreateUser", mock.Anything, cmd).
			Return(model.User{
				ID:       5,
				Username: "ivan",
				Accounts: []model.Account{{ID: 11, UserID: 5, Currency: model.RUB, Amount: 0}},
			}, nil)

		status, body := doJSON(t, f.app, fiber.MethodPost, "/user",
			`{"username":"ivan","password":"secret"}`)

		assert.Equal(t, fiber.StatusOK, status)
		assert.JSONEq(t, `{"id":5,"username":"ivan","accounts":[{"id":11,"amount":0,"currency":"RUB"}]}`, body)
	})

	t.Run("duplicate username answers 400 with the bare message", func(t *testing.T) {
		f := newHandlerFixture(&admin)
		f.userService.On("CreateUser", mock.Anything, mock.Anything).
			Return(model.User{}, service.Error{
				Code:    constants.ErrCodeUserExisted,
				Message: constants.ErrMsgUserExisted,
			})

		status, body := doJSON(t, f.app, fiber.MethodPost, "/user",
			`{"username":"ivan","password":"secret"}`)

		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Equal(t, `"User already exists"`, body)
	})

	t.Run("missing fields fail validation before the service runs", func(t *testing.T) {
		f := newHandlerFixture(&admin)

		status, body := doJSON(t, f.app, fiber.MethodPost, "/user", `{"username":""}`)

		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Contains(t, body, "Username")
		assert.Contains(t, body, "Password")
		f.userService.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})
}

func TestHandler_ListUsers(t *testing.T) {
	viewer := auth.Principal{UserID: 7, Username: "ivan", Role: auth.RoleUser}

	f := newHandlerFixture(&viewer)
	f.userService.On("ListUsers").Return([]model.User{
		{ID: 1, Username: "ivan"},
		{ID: 2, Username: "oleg"},
	}, nil)

	status, body := doJSON(t, f.app, fiber.MethodGet, "/user/list", "")

	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `[{"id":1,"username":"ivan"},{"id":2,"username":"oleg"}]`, body)
}

func TestHandler_Me(t *testing.T) {
	viewer := auth.Principal{UserID: 7, Username: "ivan", Role: auth.RoleUser}

	f := newHandlerFixture(&viewer)
	f.userService.On("GetProfile", viewer).
		Return(model.User{
			ID:       7,
			Username: "ivan",
			Accounts: []model.Account{{ID: 1, UserID: 7, Currency: model.RUB, Amount: 500}},
		}, nil)

	status, body := doJSON(t, f.app, fiber.MethodGet, "/user/me", "")

	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"id":7,"username":"ivan","accounts":[{"id":1,"amount":500,"currency":"RUB"}]}`, body)
}
