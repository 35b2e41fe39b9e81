package handlers

import (
	"strconv"
	"time"

	"sacco-admin/internal/adapters/persistence/models"
	"sacco-admin/internal/adapters/persistence/repositories"
	"sacco-admin/internal/core/services"
	"sacco-admin/internal/pkg/civil"
	"sacco-admin/internal/pkg/pagination"
	"sacco-admin/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DividendHandler handles dividend declarations and their payments
type DividendHandler struct {
	dividendService *services.DividendService
}

// NewDividendHandler creates a new dividend handler
func NewDividendHandler(dividendService *services.DividendService) *DividendHandler {
	return &DividendHandler{dividendService: dividendService}
}

// MarkPaidRequest optionally backdates a dividend payout
type MarkPaidRequest struct {
	PaymentDate *civil.Date `json:"payment_date"`
}

// List handles listing dividends
// @Summary List dividends
// @Tags Dividends
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param year query int false "Financial year"
// @Param is_paid query bool false "Paid filter"
// @Success 200 {object} response.Response
// @Router /dividends [get]
func (h *DividendHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	year, _ := strconv.Atoi(c.Query("year"))
	filter := repositories.DividendFilter{
		Year:   year,
		IsPaid: queryBool(c, "is_paid"),
	}

	dividends, total, err := h.dividendService.List(c.Context(), filter, params.Offset, params.Limit)
	if err != nil {
		return fail(c, err, "Failed to list dividends")
	}

	return response.Success(c, "Dividends retrieved successfully", pagination.NewResponse(dividends, params, total))
}

// Create handles declaring a dividend
// @Summary Declare dividend
// @Tags Dividends
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.DividendInput true "Declaration"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /dividends [post]
func (h *DividendHandler) Create(c *fiber.Ctx) error {
	var req services.DividendInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	dividend, err := h.dividendService.Create(c.Context(), &req)
	if err != nil {
		return fail(c, err, "Failed to create dividend")
	}

	return response.Created(c, "Dividend created successfully", fiber.Map{
		"dividend": dividend,
	})
}

// Get handles getting a dividend
// @Summary Get dividend
// @Tags Dividends
// @Produce json
// @Security BearerAuth
// @Param id path int true "Dividend ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /dividends/{id} [get]
func (h *DividendHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid dividend ID")
	}

	dividend, err := h.dividendService.Get(c.Context(), id)
	if err != nil {
		return fail(c, err, "Failed to get dividend")
	}

	return response.Success(c, "Dividend retrieved successfully", fiber.Map{
		"dividend": dividend,
	})
}

// Update handles editing a dividend
// @Summary Update dividend
// @Tags Dividends
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Dividend ID"
// @Param body body services.DividendInput true "Declaration"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /dividends/{id} [put]
func (h *DividendHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid dividend ID")
	}

	var req services.DividendInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	dividend, err := h.dividendService.Update(c.Context(), id, &req)
	if err != nil {
		return fail(c, err, "Failed to update dividend")
	}

	return response.Success(c, "Dividend updated successfully", fiber.Map{
		"dividend": dividend,
	})
}

// Delete handles deleting a dividend and its payments
// @Summary Delete dividend
// @Tags Dividends
// @Security BearerAuth
// @Param id path int true "Dividend ID"
// @Success 204
// @Failure 404 {object} response.Response
// @Router /dividends/{id} [delete]
func (h *DividendHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid dividend ID")
	}

	if err := h.dividendService.Delete(c.Context(), id); err != nil {
		return fail(c, err, "Failed to delete dividend")
	}

	return response.NoContent(c)
}

// CalculatePayments fans a dividend out to every active shareholder
// @Summary Calculate dividend payments
// @Description Idempotent: one payment per member per dividend
// @Tags Dividends
// @Produce json
// @Security BearerAuth
// @Param id path int true "Dividend ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} response.Response
// @Router /dividends/{id}/calculate_payments [post]
func (h *DividendHandler) CalculatePayments(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid dividend ID")
	}

	result, err := h.dividendService.CalculatePayments(c.Context(), id)
	if err != nil {
		return fail(c, err, "Failed to calculate dividend payments")
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"message":  "Dividend payments calculated successfully",
		"created":  result.Created,
		"existing": result.Existing,
		"total":    result.Total.StringFixed(2),
	})
}

// MarkPaid flags a dividend and its payments as paid
// @Summary Mark dividend paid
// @Tags Dividends
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Dividend ID"
// @Param body body MarkPaidRequest false "Payment date, today when omitted"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /dividends/{id}/mark_paid [post]
func (h *DividendHandler) MarkPaid(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid dividend ID")
	}

	var req MarkPaidRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return response.BadRequest(c, "Invalid request body")
		}
	}

	var paidOn *time.Time
	if req.PaymentDate != nil {
		paidOn = &req.PaymentDate.Time
	}

	dividend, err := h.dividendService.MarkPaid(c.Context(), id, paidOn)
	if err != nil {
		return fail(c, err, "Failed to mark dividend as paid")
	}

	return response.Success(c, "Dividend marked as paid", fiber.Map{
		"dividend": dividend,
	})
}

// ListPayments handles listing dividend payments
// @Summary List dividend payments
// @Tags Dividends
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param dividend query int false "Dividend ID"
// @Param member query int false "Member ID"
// @Param is_paid query bool false "Paid filter"
// @Success 200 {object} response.Response
// @Router /dividend-payments [get]
func (h *DividendHandler) ListPayments(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	filter := repositories.DividendPaymentFilter{
		DividendID: queryUint(c, "dividend"),
		MemberID:   queryUint(c, "member"),
		IsPaid:     queryBool(c, "is_paid"),
	}

	payments, total, err := h.dividendService.ListPayments(c.Context(), filter, params.Offset, params.Limit)
	if err != nil {
		return fail(c, err, "Failed to list dividend payments")
	}

	out := make([]*models.DividendPaymentResponse, len(payments))
	for i, p := range payments {
		out[i] = p.ToResponse()
	}
	return response.Success(c, "Dividend payments retrieved successfully", pagination.NewResponse(out, params, total))
}

// GetPayment handles getting a dividend payment
// @Summary Get dividend payment
// @Tags Dividends
// @Produce json
// @Security BearerAuth
// @Param id path int true "Payment ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /dividend-payments/{id} [get]
func (h *DividendHandler) GetPayment(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid payment ID")
	}

	payment, err := h.dividendService.GetPayment(c.Context(), id)
	if err != nil {
		return fail(c, err, "Failed to get dividend payment")
	}

	return response.Success(c, "Dividend payment retrieved successfully", fiber.Map{
		"payment": payment.ToResponse(),
	})
}
