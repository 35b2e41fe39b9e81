package handlers

import (
	"sacco-admin/internal/adapters/persistence/models"
	"sacco-admin/internal/core/services"
	"sacco-admin/internal/pkg/pagination"
	"sacco-admin/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// FeedbackHandler handles customer feedback
type FeedbackHandler struct {
	feedbackService *services.FeedbackService
}

// NewFeedbackHandler creates a new feedback handler
func NewFeedbackHandler(feedbackService *services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

// RespondRequest carries a staff reply
type RespondRequest struct {
	Response string `json:"response"`
}

// Submit handles a public feedback submission
// @Summary Submit feedback
// @Description Public; the sender receives a confirmation email when mail is configured
// @Tags Feedback
// @Accept json
// @Produce json
// @Param body body services.SubmitFeedbackInput true "Feedback"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 429 {object} response.Response
// @Router /public/feedback [post]
func (h *FeedbackHandler) Submit(c *fiber.Ctx) error {
	var req services.SubmitFeedbackInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	fb, err := h.feedbackService.Submit(c.Context(), &req)
	if err != nil {
		return fail(c, err, "Failed to submit feedback")
	}

	return response.Created(c, "Thank you for your feedback", fiber.Map{
		"feedback": fb.ToResponse(),
	})
}

// List handles listing feedback
// @Summary List feedback
// @Tags Feedback
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param status query string false "new, in_progress, resolved or closed"
// @Success 200 {object} response.Response
// @Router /feedback [get]
func (h *FeedbackHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	items, total, err := h.feedbackService.List(c.Context(), c.Query("status"), params.Offset, params.Limit)
	if err != nil {
		return fail(c, err, "Failed to list feedback")
	}

	out := make([]*models.CustomerFeedbackResponse, len(items))
	for i, fb := range items {
		out[i] = fb.ToResponse()
	}
	return response.Success(c, "Feedback retrieved successfully", pagination.NewResponse(out, params, total))
}

// Get handles getting one feedback entry
// @Summary Get feedback
// @Tags Feedback
// @Produce json
// @Security BearerAuth
// @Param id path int true "Feedback ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /feedback/{id} [get]
func (h *FeedbackHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid feedback ID")
	}
	fb, err := h.feedbackService.Get(c.Context(), id)
	if err != nil {
		return fail(c, err, "Failed to get feedback")
	}
	return response.Success(c, "Feedback retrieved successfully", fiber.Map{"feedback": fb.ToResponse()})
}

// Update handles changing feedback status
// @Summary Update feedback
// @Tags Feedback
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Feedback ID"
// @Param body body services.UpdateFeedbackInput true "Status"
// @Success 200 {object} response.Response
// @Router /feedback/{id} [put]
func (h *FeedbackHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid feedback ID")
	}
	var req services.UpdateFeedbackInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	fb, err := h.feedbackService.Update(c.Context(), id, &req)
	if err != nil {
		return fail(c, err, "Failed to update feedback")
	}
	return response.Success(c, "Feedback updated successfully", fiber.Map{"feedback": fb.ToResponse()})
}

// Delete handles deleting feedback
// @Summary Delete feedback
// @Tags Feedback
// @Security BearerAuth
// @Param id path int true "Feedback ID"
// @Success 204
// @Router /feedback/{id} [delete]
func (h *FeedbackHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid feedback ID")
	}
	if err := h.feedbackService.Delete(c.Context(), id); err != nil {
		return fail(c, err, "Failed to delete feedback")
	}
	return response.NoContent(c)
}

// Respond handles a staff reply
// @Summary Respond to feedback
// @Description Stores the reply, resolves the feedback and emails the customer
// @Tags Feedback
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Feedback ID"
// @Param body body RespondRequest true "Reply"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response "Response text is required"
// @Router /feedback/{id}/respond [post]
func (h *FeedbackHandler) Respond(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid feedback ID")
	}
	var req RespondRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	responderID, _ := currentUserID(c)
	fb, err := h.feedbackService.Respond(c.Context(), id, responderID, req.Response)
	if err != nil {
		return fail(c, err, "Failed to respond to feedback")
	}

	return response.Success(c, "Response sent successfully", fiber.Map{"feedback": fb.ToResponse()})
}
