package handlers

import (
	"sacco-admin/internal/core/services"
	"sacco-admin/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SettingHandler handles system settings
type SettingHandler struct {
	settingService *services.SettingService
}

// NewSettingHandler creates a new setting handler
func NewSettingHandler(settingService *services.SettingService) *SettingHandler {
	return &SettingHandler{settingService: settingService}
}

// List handles listing settings
// @Summary List settings
// @Tags Settings
// @Produce json
// @Security BearerAuth
// @Param setting_type query string false "general, financial, email or security"
// @Success 200 {object} response.Response
// @Router /settings [get]
func (h *SettingHandler) List(c *fiber.Ctx) error {
	settings, err := h.settingService.List(c.Context(), c.Query("setting_type"))
	if err != nil {
		return fail(c, err, "Failed to list settings")
	}
	return response.Success(c, "Settings retrieved successfully", settings)
}

// Create handles adding a setting
// @Summary Create setting
// @Tags Settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.SettingInput true "Setting"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /settings [post]
func (h *SettingHandler) Create(c *fiber.Ctx) error {
	var req services.SettingInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	setting, err := h.settingService.Create(c.Context(), &req)
	if err != nil {
		return fail(c, err, "Failed to create setting")
	}
	return response.Created(c, "Setting created successfully", fiber.Map{"setting": setting})
}

// Get handles getting a setting by ID
// @Summary Get setting
// @Tags Settings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Setting ID"
// @Success 200 {object} response.Response
// @Router /settings/{id} [get]
func (h *SettingHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid setting ID")
	}
	setting, err := h.settingService.Get(c.Context(), id)
	if err != nil {
		return fail(c, err, "Failed to get setting")
	}
	return response.Success(c, "Setting retrieved successfully", fiber.Map{"setting": setting})
}

// GetByKey handles getting a setting by its key
// @Summary Get setting by key
// @Tags Settings
// @Produce json
// @Security BearerAuth
// @Param key path string true "Setting key"
// @Success 200 {object} response.Response
// @Router /settings/key/{key} [get]
func (h *SettingHandler) GetByKey(c *fiber.Ctx) error {
	setting, err := h.settingService.GetByKey(c.Context(), c.Params("key"))
	if err != nil {
		return fail(c, err, "Failed to get setting")
	}
	return response.Success(c, "Setting retrieved successfully", fiber.Map{"setting": setting})
}

// Update handles editing a setting
// @Summary Update setting
// @Tags Settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Setting ID"
// @Param body body services.SettingInput true "Setting"
// @Success 200 {object} response.Response
// @Router /settings/{id} [put]
func (h *SettingHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid setting ID")
	}
	var req services.SettingInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	setting, err := h.settingService.Update(c.Context(), id, &req)
	if err != nil {
		return fail(c, err, "Failed to update setting")
	}
	return response.Success(c, "Setting updated successfully", fiber.Map{"setting": setting})
}

// Delete handles deleting a setting
// @Summary Delete setting
// @Tags Settings
// @Security BearerAuth
// @Param id path int true "Setting ID"
// @Success 204
// @Router /settings/{id} [delete]
func (h *SettingHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid setting ID")
	}
	if err := h.settingService.Delete(c.Context(), id); err != nil {
		return fail(c, err, "Failed to delete setting")
	}
	return response.NoContent(c)
}
