package handlers

import (
	"sacco-admin/internal/adapters/persistence/models"
	"sacco-admin/internal/adapters/persistence/repositories"
	"sacco-admin/internal/core/services"
	"sacco-admin/internal/pkg/pagination"
	"sacco-admin/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// MemberHandler handles the member registry
type MemberHandler struct {
	memberService *services.MemberService
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(memberService *services.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

// List handles listing members
// @Summary List members
// @Tags Members
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param status query string false "active, inactive or suspended"
// @Param search query string false "Membership number or name"
// @Success 200 {object} response.Response
// @Router /members [get]
func (h *MemberHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	filter := repositories.MemberFilter{
		Status: c.Query("status"),
		Search: c.Query("search"),
	}

	members, total, err := h.memberService.List(c.Context(), filter, params.Offset, params.Limit)
	if err != nil {
		return fail(c, err, "Failed to list members")
	}

	return response.Success(c, "Members retrieved successfully", pagination.NewResponse(members, params, total))
}

// Create handles registering a member profile for a user
// @Summary Create member
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateMemberInput true "Member data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /members [post]
func (h *MemberHandler) Create(c *fiber.Ctx) error {
	var req services.CreateMemberInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	member, err := h.memberService.Create(c.Context(), &req)
	if err != nil {
		return fail(c, err, "Failed to create member")
	}

	return response.Created(c, "Member created successfully", fiber.Map{
		"member": member,
	})
}

// Get handles getting a member
// @Summary Get member
// @Tags Members
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /members/{id} [get]
func (h *MemberHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	member, err := h.memberService.Get(c.Context(), id)
	if err != nil {
		return fail(c, err, "Failed to get member")
	}

	return response.Success(c, "Member retrieved successfully", fiber.Map{
		"member": member,
	})
}

// Update handles editing a member
// @Summary Update member
// @Description The membership number cannot be changed
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Param body body services.UpdateMemberInput true "Member data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /members/{id} [put]
func (h *MemberHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	var req services.UpdateMemberInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	member, err := h.memberService.Update(c.Context(), id, &req)
	if err != nil {
		return fail(c, err, "Failed to update member")
	}

	return response.Success(c, "Member updated successfully", fiber.Map{
		"member": member,
	})
}

// Delete handles deleting a member and everything it owns
// @Summary Delete member
// @Tags Members
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Success 204
// @Failure 404 {object} response.Response
// @Router /members/{id} [delete]
func (h *MemberHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	if err := h.memberService.Delete(c.Context(), id); err != nil {
		return fail(c, err, "Failed to delete member")
	}

	return response.NoContent(c)
}

// Accounts lists a member's savings accounts
// @Summary Member savings accounts
// @Tags Members
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Success 200 {object} response.Response
// @Router /members/{id}/accounts [get]
func (h *MemberHandler) Accounts(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	accounts, err := h.memberService.Accounts(c.Context(), id)
	if err != nil {
		return fail(c, err, "Failed to get member accounts")
	}

	return response.Success(c, "Accounts retrieved successfully", accountResponses(accounts))
}

// Loans lists a member's loans
// @Summary Member loans
// @Tags Members
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Success 200 {object} response.Response
// @Router /members/{id}/loans [get]
func (h *MemberHandler) Loans(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	loans, err := h.memberService.Loans(c.Context(), id)
	if err != nil {
		return fail(c, err, "Failed to get member loans")
	}

	return response.Success(c, "Loans retrieved successfully", loanResponses(loans))
}

// Transactions lists a member's latest ledger entries
// @Summary Member transactions
// @Description Latest 50 entries, newest first
// @Tags Members
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Success 200 {object} response.Response
// @Router /members/{id}/transactions [get]
func (h *MemberHandler) Transactions(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	txs, err := h.memberService.Transactions(c.Context(), id)
	if err != nil {
		return fail(c, err, "Failed to get member transactions")
	}

	return response.Success(c, "Transactions retrieved successfully", transactionResponses(txs))
}

func transactionResponses(txs []*models.Transaction) []*models.TransactionResponse {
	out := make([]*models.TransactionResponse, len(txs))
	for i, t := range txs {
		out[i] = t.ToResponse()
	}
	return out
}
