package handlers

import (
	"sacco-admin/internal/adapters/persistence/models"
	"sacco-admin/internal/adapters/persistence/repositories"
	"sacco-admin/internal/core/services"
	"sacco-admin/internal/pkg/pagination"
	"sacco-admin/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// LoanHandler handles loan application and lifecycle endpoints
type LoanHandler struct {
	loanService *services.LoanService
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(loanService *services.LoanService) *LoanHandler {
	return &LoanHandler{loanService: loanService}
}

func loanResponses(loans []*models.Loan) []*models.LoanResponse {
	out := make([]*models.LoanResponse, len(loans))
	for i, l := range loans {
		out[i] = l.ToResponse()
	}
	return out
}

// List handles listing loans
// @Summary List loans
// @Tags Loans
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param member query int false "Member ID"
// @Param loan_type query string false "Loan type"
// @Param status query string false "pending, approved, active, completed, defaulted or rejected"
// @Success 200 {object} response.Response
// @Router /loans [get]
func (h *LoanHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	filter := repositories.LoanFilter{
		MemberID: queryUint(c, "member"),
		LoanType: c.Query("loan_type"),
		Status:   c.Query("status"),
	}

	loans, total, err := h.loanService.List(c.Context(), filter, params.Offset, params.Limit)
	if err != nil {
		return fail(c, err, "Failed to list loans")
	}

	return response.Success(c, "Loans retrieved successfully",
		pagination.NewResponse(loanResponses(loans), params, total))
}

// Create handles a loan application
// @Summary Apply for a loan
// @Description total_amount and monthly_payment default to a flat-interest schedule
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateLoanInput true "Application"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loans [post]
func (h *LoanHandler) Create(c *fiber.Ctx) error {
	var req services.CreateLoanInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	loan, err := h.loanService.Create(c.Context(), &req)
	if err != nil {
		return fail(c, err, "Failed to create loan")
	}

	return response.Created(c, "Loan application created successfully", fiber.Map{
		"loan": loan.ToResponse(),
	})
}

// Get handles getting a loan
// @Summary Get loan
// @Tags Loans
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loans/{id} [get]
func (h *LoanHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid loan ID")
	}

	loan, err := h.loanService.Get(c.Context(), id)
	if err != nil {
		return fail(c, err, "Failed to get loan")
	}

	return response.Success(c, "Loan retrieved successfully", fiber.Map{
		"loan": loan.ToResponse(),
	})
}

// Update handles editing a pending application
// @Summary Update loan application
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Param body body services.UpdateLoanInput true "Changes"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /loans/{id} [put]
func (h *LoanHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid loan ID")
	}

	var req services.UpdateLoanInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	loan, err := h.loanService.Update(c.Context(), id, &req)
	if err != nil {
		return fail(c, err, "Failed to update loan")
	}

	return response.Success(c, "Loan updated successfully", fiber.Map{
		"loan": loan.ToResponse(),
	})
}

// Delete handles deleting a loan
// @Summary Delete loan
// @Tags Loans
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Success 204
// @Failure 404 {object} response.Response
// @Router /loans/{id} [delete]
func (h *LoanHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid loan ID")
	}

	if err := h.loanService.Delete(c.Context(), id); err != nil {
		return fail(c, err, "Failed to delete loan")
	}

	return response.NoContent(c)
}

// Approve moves a pending loan to approved
// @Summary Approve loan
// @Tags Loans
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response "Loan is not pending"
// @Router /loans/{id}/approve [post]
func (h *LoanHandler) Approve(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid loan ID")
	}

	loan, err := h.loanService.Approve(c.Context(), id)
	if err != nil {
		return fail(c, err, "Failed to approve loan")
	}

	return response.Success(c, "Loan approved successfully", fiber.Map{
		"loan": loan.ToResponse(),
	})
}

// Reject moves a pending loan to rejected
// @Summary Reject loan
// @Tags Loans
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response "Loan is not pending"
// @Router /loans/{id}/reject [post]
func (h *LoanHandler) Reject(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid loan ID")
	}

	loan, err := h.loanService.Reject(c.Context(), id)
	if err != nil {
		return fail(c, err, "Failed to reject loan")
	}

	return response.Success(c, "Loan rejected", fiber.Map{
		"loan": loan.ToResponse(),
	})
}

// Disburse activates an approved loan
// @Summary Disburse loan
// @Tags Loans
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.Response "Loan is not approved"
// @Router /loans/{id}/disburse [post]
func (h *LoanHandler) Disburse(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid loan ID")
	}

	result, err := h.loanService.Disburse(c.Context(), id, actor(c))
	if err != nil {
		return fail(c, err, "Failed to disburse loan")
	}

	return c.JSON(fiber.Map{
		"success":           true,
		"message":           "Loan disbursed successfully",
		"remaining_balance": result.Loan.RemainingBalance.StringFixed(2),
		"transaction":       result.Transaction.ToResponse(),
	})
}

// MakePayment applies a repayment
// @Summary Repay loan
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Param body body AmountRequest true "Amount"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /loans/{id}/make_payment [post]
func (h *LoanHandler) MakePayment(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid loan ID")
	}

	var req AmountRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid amount")
	}

	result, err := h.loanService.MakePayment(c.Context(), id, req.Amount, actor(c))
	if err != nil {
		return fail(c, err, "Failed to record payment")
	}

	return c.JSON(fiber.Map{
		"success":           true,
		"message":           "Payment successful",
		"remaining_balance": result.Loan.RemainingBalance.StringFixed(2),
		"loan_status":       result.Loan.Status,
		"transaction":       result.Transaction.ToResponse(),
	})
}
