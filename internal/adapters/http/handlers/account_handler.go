package handlers

import (
	"context"

	"sacco-admin/internal/adapters/persistence/models"
	"sacco-admin/internal/adapters/persistence/repositories"
	"sacco-admin/internal/core/services"
	"sacco-admin/internal/pkg/pagination"
	"sacco-admin/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// AccountHandler handles savings account endpoints
type AccountHandler struct {
	accountService *services.AccountService
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accountService *services.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// AmountRequest is the body of every ledger posting
type AmountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func accountResponses(accounts []*models.SavingsAccount) []*models.SavingsAccountResponse {
	out := make([]*models.SavingsAccountResponse, len(accounts))
	for i, a := range accounts {
		out[i] = a.ToResponse()
	}
	return out
}

// List handles listing savings accounts
// @Summary List savings accounts
// @Tags Savings Accounts
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param member query int false "Member ID"
// @Param account_type query string false "regular, fixed or emergency"
// @Param is_active query bool false "Active filter"
// @Success 200 {object} response.Response
// @Router /savings-accounts [get]
func (h *AccountHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	filter := repositories.AccountFilter{
		MemberID:    queryUint(c, "member"),
		AccountType: c.Query("account_type"),
		IsActive:    queryBool(c, "is_active"),
	}

	accounts, total, err := h.accountService.List(c.Context(), filter, params.Offset, params.Limit)
	if err != nil {
		return fail(c, err, "Failed to list savings accounts")
	}

	return response.Success(c, "Savings accounts retrieved successfully",
		pagination.NewResponse(accountResponses(accounts), params, total))
}

// Create handles opening a savings account
// @Summary Open savings account
// @Description Balance starts at zero and only moves through deposit and withdraw
// @Tags Savings Accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateAccountInput true "Account data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /savings-accounts [post]
func (h *AccountHandler) Create(c *fiber.Ctx) error {
	var req services.CreateAccountInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	account, err := h.accountService.Create(c.Context(), &req)
	if err != nil {
		return fail(c, err, "Failed to create savings account")
	}

	return response.Created(c, "Savings account created successfully", fiber.Map{
		"account": account.ToResponse(),
	})
}

// Get handles getting a savings account
// @Summary Get savings account
// @Tags Savings Accounts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Account ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /savings-accounts/{id} [get]
func (h *AccountHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid account ID")
	}

	account, err := h.accountService.Get(c.Context(), id)
	if err != nil {
		return fail(c, err, "Failed to get savings account")
	}

	return response.Success(c, "Savings account retrieved successfully", fiber.Map{
		"account": account.ToResponse(),
	})
}

// Update handles editing a savings account
// @Summary Update savings account
// @Tags Savings Accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Account ID"
// @Param body body services.UpdateAccountInput true "Account data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /savings-accounts/{id} [put]
func (h *AccountHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid account ID")
	}

	var req services.UpdateAccountInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	account, err := h.accountService.Update(c.Context(), id, &req)
	if err != nil {
		return fail(c, err, "Failed to update savings account")
	}

	return response.Success(c, "Savings account updated successfully", fiber.Map{
		"account": account.ToResponse(),
	})
}

// Delete handles deleting a savings account
// @Summary Delete savings account
// @Tags Savings Accounts
// @Security BearerAuth
// @Param id path int true "Account ID"
// @Success 204
// @Failure 404 {object} response.Response
// @Router /savings-accounts/{id} [delete]
func (h *AccountHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid account ID")
	}

	if err := h.accountService.Delete(c.Context(), id); err != nil {
		return fail(c, err, "Failed to delete savings account")
	}

	return response.NoContent(c)
}

// Deposit credits a savings account
// @Summary Deposit
// @Tags Savings Accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Account ID"
// @Param body body AmountRequest true "Amount"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /savings-accounts/{id}/deposit [post]
func (h *AccountHandler) Deposit(c *fiber.Ctx) error {
	return h.post(c, h.accountService.Deposit, "Deposit successful")
}

// Withdraw debits a savings account
// @Summary Withdraw
// @Tags Savings Accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Account ID"
// @Param body body AmountRequest true "Amount"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /savings-accounts/{id}/withdraw [post]
func (h *AccountHandler) Withdraw(c *fiber.Ctx) error {
	return h.post(c, h.accountService.Withdraw, "Withdrawal successful")
}

type postingFunc func(ctx context.Context, accountID uint, amount decimal.Decimal, actor services.Actor) (*services.BalanceChange, error)

func (h *AccountHandler) post(c *fiber.Ctx, op postingFunc, message string) error {
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid account ID")
	}

	var req AmountRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid amount")
	}

	change, err := op(c.Context(), id, req.Amount, actor(c))
	if err != nil {
		return fail(c, err, "Failed to post transaction")
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"message":     message,
		"new_balance": change.Account.Balance.StringFixed(2),
		"transaction": change.Transaction.ToResponse(),
	})
}
