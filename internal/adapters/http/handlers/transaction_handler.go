package handlers

import (
	"sacco-admin/internal/adapters/persistence/repositories"
	"sacco-admin/internal/core/services"
	"sacco-admin/internal/pkg/pagination"
	"sacco-admin/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// TransactionHandler exposes the ledger read-only
type TransactionHandler struct {
	transactionService *services.TransactionService
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionService *services.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// List handles listing ledger entries
// @Summary List transactions
// @Tags Transactions
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param member query int false "Member ID"
// @Param transaction_type query string false "deposit, withdrawal, loan_disbursement, loan_payment, interest, fee or transfer"
// @Success 200 {object} response.Response
// @Router /transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	filter := repositories.TransactionFilter{
		MemberID:        queryUint(c, "member"),
		TransactionType: c.Query("transaction_type"),
	}

	txs, total, err := h.transactionService.List(c.Context(), filter, params.Offset, params.Limit)
	if err != nil {
		return fail(c, err, "Failed to list transactions")
	}

	return response.Success(c, "Transactions retrieved successfully",
		pagination.NewResponse(transactionResponses(txs), params, total))
}

// Get handles getting a ledger entry
// @Summary Get transaction
// @Tags Transactions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Transaction ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /transactions/{id} [get]
func (h *TransactionHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid transaction ID")
	}

	tx, err := h.transactionService.Get(c.Context(), id)
	if err != nil {
		return fail(c, err, "Failed to get transaction")
	}

	return response.Success(c, "Transaction retrieved successfully", fiber.Map{
		"transaction": tx.ToResponse(),
	})
}
