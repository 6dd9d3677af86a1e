package api

import (
	v1 "simplebanking/internal/api/v1"
	"simplebanking/internal/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupRoutes(app *fiber.App, handler *v1.Handler, authMW *auth.Middleware) {
	app.Get("/ping", handler.Pong)

	authenticated := app.Use(authMW.Authenticate())

	authenticated.Get("/account/:id", authMW.RequireOperation(auth.OpReadAccount), handler.GetAccount)
	authenticated.Post("/account/deposit/:id", authMW.RequireOperation(auth.OpDeposit), handler.Deposit)
	authenticated.Post("/account/withdraw/:id", authMW.RequireOperation(auth.OpWithdraw), handler.Withdraw)
	authenticated.Post("/transfer", authMW.RequireOperation(auth.OpTransfer), handler.Transfer)
	authenticated.Post("/user", authMW.RequireOperation(auth.OpCreateUser), handler.CreateUser)
	authenticated.Get("/user/list", authMW.RequireOperation(auth.OpListUsers), handler.ListUsers)
	authenticated.Get("/user/me", authMW.RequireOperation(auth.OpReadProfile), handler.Me)
}
