package v1

import (
	"errors"
	"strconv"

	"simplebanking/internal/api/contract"
	"simplebanking/internal/api/validator"
	"simplebanking/internal/auth"
	"simplebanking/internal/constants"
	"simplebanking/internal/metrics"
	"simplebanking/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Handler struct {
	logger          *zap.Logger
	accountService  service.AccountService
	transferService service.TransferService
	userService     service.UserService
	XValidator      validator.IXValidator
	metrics         *metrics.Metrics
}

func NewHandler(logger *zap.Logger, accountService service.AccountService, transferService service.TransferService, userService service.UserService, XValidator validator.IXValidator, metrics *metrics.Metrics) *Handler {
	return &Handler{
		logger:          logger,
		accountService:  accountService,
		transferService: transferService,
		userService:     userService,
		XValidator:      XValidator,
		metrics:         metrics,
	}
}

func (h *Handler) Pong(c *fiber.Ctx) error {
	return c.SendString("pong")
}

func (h *Handler) GetAccount(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromCtx(c)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	accountID, err := accountIDParam(c)
	if err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	acc, err := h.accountService.GetAccount(principal, accountID)
	if err != nil {
		return err
	}

	return c.JSON(contract.AccountFrom(acc))
}

func (h *Handler) Deposit(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromCtx(c)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	accountID, err := accountIDParam(c)
	if err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	var request BalanceChangeRequest
	if err := c.BodyParser(&request); err != nil {
		h.logger.Warn("Failed to parse deposit body", zap.Error(err))
		return c.SendStatus(fiber.StatusBadRequest)
	}

	cmd := service.BalanceChangeCommand{AccountID: accountID, Amount: request.Amount}

	acc, err := h.accountService.Deposit(c.UserContext(), principal, cmd)
	if err != nil {
		h.metrics.RecordDeposit("error")
		return err
	}

	h.metrics.RecordDeposit("success")
	return c.JSON(contract.AccountFrom(acc))
}

func (h *Handler) Withdraw(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromCtx(c)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	accountID, err := accountIDParam(c)
	if err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	var request BalanceChangeRequest
	if err := c.BodyParser(&request); err != nil {
		h.logger.Warn("Failed to parse withdraw body", zap.Error(err))
		return c.SendStatus(fiber.StatusBadRequest)
	}

	cmd := service.BalanceChangeCommand{AccountID: accountID, Amount: request.Amount}

	acc, err := h.accountService.Withdraw(c.UserContext(), principal, cmd)
	if err != nil {
		h.metrics.RecordWithdrawal("error")
		return err
	}

	h.metrics.RecordWithdrawal("success")
	return c.JSON(contract.AccountFrom(acc))
}

func (h *Handler) Transfer(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromCtx(c)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	var request TransferRequest
	if err := c.BodyParser(&request); err != nil {
		h.logger.Warn("Failed to parse transfer body", zap.Error(err))
		return c.SendStatus(fiber.StatusBadRequest)
	}

	cmd := service.TransferCommand{
		FromAccountID: request.FromAccountID,
		ToUserID:      request.ToUserID,
		ToAccountID:   request.ToAccountID,
		Amount:        request.Amount,
	}

	if err := h.transferService.Transfer(c.UserContext(), principal, cmd); err != nil {
		h.metrics.RecordTransfer("error")
		return err
	}

	h.metrics.RecordTransfer("success")
	return c.SendStatus(fiber.StatusOK)
}

func (h *Handler) CreateUser(c *fiber.Ctx) error {
	var request CreateUserRequest
	if err := c.BodyParser(&request); err != nil {
		h.logger.Warn("Failed to parse create user body", zap.Error(err))
		return c.SendStatus(fiber.StatusBadRequest)
	}

	if errs := h.XValidator.Validate(&request); len(errs) > 0 {
		message := h.XValidator.Message(errs, constants.MessageErrorFormat)
		return service.NewServiceErrorWithMessage(constants.ErrCodeValidationFailed, message, errors.New(message))
	}

	cmd := service.CreateUserCommand{Username: request.Username, Password: request.Password}

	user, err := h.userService.CreateUser(c.UserContext(), cmd)
	if err != nil {
		return err
	}

	h.metrics.RecordUserCreated()
	return c.JSON(contract.UserFrom(user))
}

func (h *Handler) ListUsers(c *fiber.Ctx) error {
	users, err := h.userService.ListUsers()
	if err != nil {
		return err
	}

	return c.JSON(contract.ListUsersFrom(users))
}

func (h *Handler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromCtx(c)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	user, err := h.userService.GetProfile(principal)
	if err != nil {
		return err
	}

	return c.JSON(contract.UserFrom(user))
}

func accountIDParam(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}
