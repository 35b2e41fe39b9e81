package handlers

import (
	"sacco-admin/internal/adapters/persistence/models"
	"sacco-admin/internal/adapters/persistence/repositories"
	"sacco-admin/internal/core/services"
	"sacco-admin/internal/pkg/pagination"
	"sacco-admin/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ShareHandler handles share ownership endpoints
type ShareHandler struct {
	shareService *services.ShareService
}

// NewShareHandler creates a new share handler
func NewShareHandler(shareService *services.ShareService) *ShareHandler {
	return &ShareHandler{shareService: shareService}
}

// List handles listing shares
// @Summary List shares
// @Tags Shares
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param member query int false "Member ID"
// @Param is_active query bool false "Active filter"
// @Success 200 {object} response.Response
// @Router /shares [get]
func (h *ShareHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	filter := repositories.ShareFilter{
		MemberID: queryUint(c, "member"),
		IsActive: queryBool(c, "is_active"),
	}

	shares, total, err := h.shareService.List(c.Context(), filter, params.Offset, params.Limit)
	if err != nil {
		return fail(c, err, "Failed to list shares")
	}

	out := make([]*models.ShareResponse, len(shares))
	for i, s := range shares {
		out[i] = s.ToResponse()
	}
	return response.Success(c, "Shares retrieved successfully", pagination.NewResponse(out, params, total))
}

// Create handles a share purchase
// @Summary Create share
// @Description total_value is quantity times value_per_share
// @Tags Shares
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateShareInput true "Share data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /shares [post]
func (h *ShareHandler) Create(c *fiber.Ctx) error {
	var req services.CreateShareInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	share, err := h.shareService.Create(c.Context(), &req)
	if err != nil {
		return fail(c, err, "Failed to create share")
	}

	return response.Created(c, "Share created successfully", fiber.Map{
		"share": share.ToResponse(),
	})
}

// Get handles getting a share
// @Summary Get share
// @Tags Shares
// @Produce json
// @Security BearerAuth
// @Param id path int true "Share ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /shares/{id} [get]
func (h *ShareHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid share ID")
	}

	share, err := h.shareService.Get(c.Context(), id)
	if err != nil {
		return fail(c, err, "Failed to get share")
	}

	return response.Success(c, "Share retrieved successfully", fiber.Map{
		"share": share.ToResponse(),
	})
}

// Update handles editing a share
// @Summary Update share
// @Tags Shares
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Share ID"
// @Param body body services.UpdateShareInput true "Share data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /shares/{id} [put]
func (h *ShareHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid share ID")
	}

	var req services.UpdateShareInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	share, err := h.shareService.Update(c.Context(), id, &req)
	if err != nil {
		return fail(c, err, "Failed to update share")
	}

	return response.Success(c, "Share updated successfully", fiber.Map{
		"share": share.ToResponse(),
	})
}

// Delete handles deleting a share
// @Summary Delete share
// @Tags Shares
// @Security BearerAuth
// @Param id path int true "Share ID"
// @Success 204
// @Failure 404 {object} response.Response
// @Router /shares/{id} [delete]
func (h *ShareHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid share ID")
	}

	if err := h.shareService.Delete(c.Context(), id); err != nil {
		return fail(c, err, "Failed to delete share")
	}

	return response.NoContent(c)
}
