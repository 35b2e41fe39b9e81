package handlers

import (
	"log/slog"

	"sacco-admin/internal/adapters/persistence/models"
	"sacco-admin/internal/core/services"
	"sacco-admin/internal/pkg/pagination"
	"sacco-admin/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ContentHandler handles news, FAQs, downloads, gallery and contact info.
// List and get handlers are built for either the staff or the public surface.
type ContentHandler struct {
	contentService *services.ContentService
	mediaRoot      string
}

// NewContentHandler creates a new content handler storing uploads under mediaRoot
func NewContentHandler(contentService *services.ContentService, mediaRoot string) *ContentHandler {
	return &ContentHandler{contentService: contentService, mediaRoot: mediaRoot}
}

// ============================================================
// News
// ============================================================

func newsResponses(items []*models.News) []*models.NewsResponse {
	out := make([]*models.NewsResponse, len(items))
	for i, n := range items {
		out[i] = n.ToResponse()
	}
	return out
}

// newsInput reads a JSON body or a multipart form with an optional image file
func (h *ContentHandler) newsInput(c *fiber.Ctx) (*services.NewsInput, error) {
	var in services.NewsInput
	if !isMultipart(c) {
		return &in, c.BodyParser(&in)
	}
	in.Title = formString(c, "title")
	in.Content = formString(c, "content")
	in.IsPublished = formBool(c, "is_published")
	up, err := saveUpload(c, h.mediaRoot, "image", "news", imageExts)
	if err != nil {
		return nil, err
	}
	if up != nil {
		in.Image = &up.Path
	}
	return &in, nil
}

// ListNews lists news; the public surface sees published articles only
// @Summary List news
// @Tags Content
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /news [get]
// @Router /public/news [get]
func (h *ContentHandler) ListNews(publicOnly bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := pagination.GetParams(c)
		items, total, err := h.contentService.ListNews(c.Context(), publicOnly, params.Offset, params.Limit)
		if err != nil {
			return fail(c, err, "Failed to list news")
		}
		return response.Success(c, "News retrieved successfully",
			pagination.NewResponse(newsResponses(items), params, total))
	}
}

// GetNews returns one article
// @Summary Get news
// @Tags Content
// @Produce json
// @Param id path int true "News ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /news/{id} [get]
// @Router /public/news/{id} [get]
func (h *ContentHandler) GetNews(publicOnly bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return response.BadRequest(c, "Invalid news ID")
		}
		news, err := h.contentService.GetNews(c.Context(), id, publicOnly)
		if err != nil {
			return fail(c, err, "Failed to get news")
		}
		return response.Success(c, "News retrieved successfully", fiber.Map{"news": news.ToResponse()})
	}
}

// CreateNews handles publishing an article
// @Summary Create news
// @Description JSON body or multipart form with an image file
// @Tags Content
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param body body services.NewsInput true "Article"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /news [post]
func (h *ContentHandler) CreateNews(c *fiber.Ctx) error {
	in, err := h.newsInput(c)
	if err != nil {
		return badInput(c, err, "Invalid request body")
	}
	authorID, _ := currentUserID(c)
	news, err := h.contentService.CreateNews(c.Context(), authorID, in)
	if err != nil {
		return fail(c, err, "Failed to create news")
	}
	return response.Created(c, "News created successfully", fiber.Map{"news": news.ToResponse()})
}

// UpdateNews handles editing an article
// @Summary Update news
// @Tags Content
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "News ID"
// @Param body body services.NewsInput true "Article"
// @Success 200 {object} response.Response
// @Router /news/{id} [put]
func (h *ContentHandler) UpdateNews(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid news ID")
	}
	in, err := h.newsInput(c)
	if err != nil {
		return badInput(c, err, "Invalid request body")
	}
	news, err := h.contentService.UpdateNews(c.Context(), id, in)
	if err != nil {
		return fail(c, err, "Failed to update news")
	}
	return response.Success(c, "News updated successfully", fiber.Map{"news": news.ToResponse()})
}

// DeleteNews handles deleting an article
// @Summary Delete news
// @Tags Content
// @Security BearerAuth
// @Param id path int true "News ID"
// @Success 204
// @Router /news/{id} [delete]
func (h *ContentHandler) DeleteNews(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid news ID")
	}
	if err := h.contentService.DeleteNews(c.Context(), id); err != nil {
		return fail(c, err, "Failed to delete news")
	}
	return response.NoContent(c)
}

// ============================================================
// FAQs
// ============================================================

// ListFAQs lists FAQs ordered by order then creation time
// @Summary List FAQs
// @Tags Content
// @Produce json
// @Param category query string false "Category"
// @Success 200 {object} response.Response
// @Router /faqs [get]
// @Router /public/faqs [get]
func (h *ContentHandler) ListFAQs(publicOnly bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		faqs, err := h.contentService.ListFAQs(c.Context(), publicOnly, c.Query("category"))
		if err != nil {
			return fail(c, err, "Failed to list FAQs")
		}
		return response.Success(c, "FAQs retrieved successfully", faqs)
	}
}

// GetFAQ returns one FAQ
// @Summary Get FAQ
// @Tags Content
// @Produce json
// @Param id path int true "FAQ ID"
// @Success 200 {object} response.Response
// @Router /faqs/{id} [get]
func (h *ContentHandler) GetFAQ(publicOnly bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return response.BadRequest(c, "Invalid FAQ ID")
		}
		faq, err := h.contentService.GetFAQ(c.Context(), id, publicOnly)
		if err != nil {
			return fail(c, err, "Failed to get FAQ")
		}
		return response.Success(c, "FAQ retrieved successfully", fiber.Map{"faq": faq})
	}
}

// CreateFAQ handles adding an FAQ
// @Summary Create FAQ
// @Tags Content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.FAQInput true "FAQ"
// @Success 201 {object} response.Response
// @Router /faqs [post]
func (h *ContentHandler) CreateFAQ(c *fiber.Ctx) error {
	var in services.FAQInput
	if err := c.BodyParser(&in); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	faq, err := h.contentService.CreateFAQ(c.Context(), &in)
	if err != nil {
		return fail(c, err, "Failed to create FAQ")
	}
	return response.Created(c, "FAQ created successfully", fiber.Map{"faq": faq})
}

// UpdateFAQ handles editing an FAQ
// @Summary Update FAQ
// @Tags Content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "FAQ ID"
// @Param body body services.FAQInput true "FAQ"
// @Success 200 {object} response.Response
// @Router /faqs/{id} [put]
func (h *ContentHandler) UpdateFAQ(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid FAQ ID")
	}
	var in services.FAQInput
	if err := c.BodyParser(&in); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	faq, err := h.contentService.UpdateFAQ(c.Context(), id, &in)
	if err != nil {
		return fail(c, err, "Failed to update FAQ")
	}
	return response.Success(c, "FAQ updated successfully", fiber.Map{"faq": faq})
}

// DeleteFAQ handles deleting an FAQ
// @Summary Delete FAQ
// @Tags Content
// @Security BearerAuth
// @Param id path int true "FAQ ID"
// @Success 204
// @Router /faqs/{id} [delete]
func (h *ContentHandler) DeleteFAQ(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid FAQ ID")
	}
	if err := h.contentService.DeleteFAQ(c.Context(), id); err != nil {
		return fail(c, err, "Failed to delete FAQ")
	}
	return response.NoContent(c)
}

// ============================================================
// Downloads
// ============================================================

func downloadResponses(items []*models.Download) []*models.DownloadResponse {
	out := make([]*models.DownloadResponse, len(items))
	for i, d := range items {
		out[i] = d.ToResponse()
	}
	return out
}

// downloadInput reads a JSON body or a multipart form carrying the document in "file"
func (h *ContentHandler) downloadInput(c *fiber.Ctx) (*services.DownloadInput, error) {
	var in services.DownloadInput
	if !isMultipart(c) {
		return &in, c.BodyParser(&in)
	}
	in.Title = formString(c, "title")
	in.Description = formString(c, "description")
	in.FileType = formString(c, "file_type")
	in.IsActive = formBool(c, "is_active")
	up, err := saveUpload(c, h.mediaRoot, "file", "downloads", documentExts)
	if err != nil {
		return nil, err
	}
	if up != nil {
		in.File = &up.Path
		in.FileSize = &up.Size
	}
	return &in, nil
}

// ListDownloads lists documents
// @Summary List downloads
// @Tags Content
// @Produce json
// @Param file_type query string false "financial_report, policy, form, guide or other"
// @Success 200 {object} response.Response
// @Router /downloads [get]
// @Router /public/downloads [get]
func (h *ContentHandler) ListDownloads(publicOnly bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := h.contentService.ListDownloads(c.Context(), publicOnly, c.Query("file_type"))
		if err != nil {
			return fail(c, err, "Failed to list downloads")
		}
		return response.Success(c, "Downloads retrieved successfully", downloadResponses(items))
	}
}

// GetDownload returns one document
// @Summary Get download
// @Tags Content
// @Produce json
// @Param id path int true "Download ID"
// @Success 200 {object} response.Response
// @Router /downloads/{id} [get]
func (h *ContentHandler) GetDownload(publicOnly bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return response.BadRequest(c, "Invalid download ID")
		}
		download, err := h.contentService.GetDownload(c.Context(), id, publicOnly)
		if err != nil {
			return fail(c, err, "Failed to get download")
		}
		return response.Success(c, "Download retrieved successfully", fiber.Map{"download": download.ToResponse()})
	}
}

// CreateDownload handles uploading a document
// @Summary Create download
// @Tags Content
// @Accept mpfd,json
// @Produce json
// @Security BearerAuth
// @Param body body services.DownloadInput true "Document"
// @Success 201 {object} response.Response
// @Router /downloads [post]
func (h *ContentHandler) CreateDownload(c *fiber.Ctx) error {
	in, err := h.downloadInput(c)
	if err != nil {
		slog.Warn("Upload failed", "error", err)
		return badInput(c, err, "Invalid upload")
	}
	uploaderID, _ := currentUserID(c)
	download, err := h.contentService.CreateDownload(c.Context(), uploaderID, in)
	if err != nil {
		return fail(c, err, "Failed to create download")
	}
	return response.Created(c, "Download created successfully", fiber.Map{"download": download.ToResponse()})
}

// UpdateDownload handles editing a document
// @Summary Update download
// @Tags Content
// @Accept mpfd,json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Download ID"
// @Param body body services.DownloadInput true "Document"
// @Success 200 {object} response.Response
// @Router /downloads/{id} [put]
func (h *ContentHandler) UpdateDownload(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid download ID")
	}
	in, err := h.downloadInput(c)
	if err != nil {
		slog.Warn("Upload failed", "error", err)
		return badInput(c, err, "Invalid upload")
	}
	download, err := h.contentService.UpdateDownload(c.Context(), id, in)
	if err != nil {
		return fail(c, err, "Failed to update download")
	}
	return response.Success(c, "Download updated successfully", fiber.Map{"download": download.ToResponse()})
}

// DeleteDownload handles deleting a document
// @Summary Delete download
// @Tags Content
// @Security BearerAuth
// @Param id path int true "Download ID"
// @Success 204
// @Router /downloads/{id} [delete]
func (h *ContentHandler) DeleteDownload(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid download ID")
	}
	if err := h.contentService.DeleteDownload(c.Context(), id); err != nil {
		return fail(c, err, "Failed to delete download")
	}
	return response.NoContent(c)
}

// IncrementDownload counts a download of an active file; inactive ones are reported as missing
// @Summary Count a download
// @Tags Content
// @Produce json
// @Param id path int true "Download ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /public/downloads/{id}/increment_download [post]
func (h *ContentHandler) IncrementDownload(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid download ID")
	}
	count, err := h.contentService.IncrementDownload(c.Context(), id, true)
	if err != nil {
		return fail(c, err, "Failed to count download")
	}
	return response.Success(c, "Download count updated", fiber.Map{"download_count": count})
}

// ============================================================
// Gallery
// ============================================================

func galleryResponses(items []*models.Gallery) []*models.GalleryResponse {
	out := make([]*models.GalleryResponse, len(items))
	for i, g := range items {
		out[i] = g.ToResponse()
	}
	return out
}

func (h *ContentHandler) galleryInput(c *fiber.Ctx) (*services.GalleryInput, error) {
	var in services.GalleryInput
	if !isMultipart(c) {
		return &in, c.BodyParser(&in)
	}
	in.Title = formString(c, "title")
	in.Description = formString(c, "description")
	in.IsActive = formBool(c, "is_active")
	up, err := saveUpload(c, h.mediaRoot, "image", "gallery", imageExts)
	if err != nil {
		return nil, err
	}
	if up != nil {
		in.Image = &up.Path
	}
	return &in, nil
}

// ListGallery lists gallery items
// @Summary List gallery
// @Tags Content
// @Produce json
// @Success 200 {object} response.Response
// @Router /gallery [get]
// @Router /public/gallery [get]
func (h *ContentHandler) ListGallery(publicOnly bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := h.contentService.ListGallery(c.Context(), publicOnly)
		if err != nil {
			return fail(c, err, "Failed to list gallery")
		}
		return response.Success(c, "Gallery retrieved successfully", galleryResponses(items))
	}
}

// GetGallery returns one gallery item
// @Summary Get gallery item
// @Tags Content
// @Produce json
// @Param id path int true "Gallery ID"
// @Success 200 {object} response.Response
// @Router /gallery/{id} [get]
func (h *ContentHandler) GetGallery(publicOnly bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return response.BadRequest(c, "Invalid gallery ID")
		}
		item, err := h.contentService.GetGallery(c.Context(), id, publicOnly)
		if err != nil {
			return fail(c, err, "Failed to get gallery item")
		}
		return response.Success(c, "Gallery item retrieved successfully", fiber.Map{"gallery": item.ToResponse()})
	}
}

// CreateGallery handles uploading a gallery image
// @Summary Create gallery item
// @Tags Content
// @Accept mpfd,json
// @Produce json
// @Security BearerAuth
// @Param body body services.GalleryInput true "Gallery item"
// @Success 201 {object} response.Response
// @Router /gallery [post]
func (h *ContentHandler) CreateGallery(c *fiber.Ctx) error {
	in, err := h.galleryInput(c)
	if err != nil {
		slog.Warn("Upload failed", "error", err)
		return badInput(c, err, "Invalid upload")
	}
	uploaderID, _ := currentUserID(c)
	item, err := h.contentService.CreateGallery(c.Context(), uploaderID, in)
	if err != nil {
		return fail(c, err, "Failed to create gallery item")
	}
	return response.Created(c, "Gallery item created successfully", fiber.Map{"gallery": item.ToResponse()})
}

// UpdateGallery handles editing a gallery item
// @Summary Update gallery item
// @Tags Content
// @Accept mpfd,json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Gallery ID"
// @Param body body services.GalleryInput true "Gallery item"
// @Success 200 {object} response.Response
// @Router /gallery/{id} [put]
func (h *ContentHandler) UpdateGallery(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid gallery ID")
	}
	in, err := h.galleryInput(c)
	if err != nil {
		slog.Warn("Upload failed", "error", err)
		return badInput(c, err, "Invalid upload")
	}
	item, err := h.contentService.UpdateGallery(c.Context(), id, in)
	if err != nil {
		return fail(c, err, "Failed to update gallery item")
	}
	return response.Success(c, "Gallery item updated successfully", fiber.Map{"gallery": item.ToResponse()})
}

// DeleteGallery handles deleting a gallery item
// @Summary Delete gallery item
// @Tags Content
// @Security BearerAuth
// @Param id path int true "Gallery ID"
// @Success 204
// @Router /gallery/{id} [delete]
func (h *ContentHandler) DeleteGallery(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid gallery ID")
	}
	if err := h.contentService.DeleteGallery(c.Context(), id); err != nil {
		return fail(c, err, "Failed to delete gallery item")
	}
	return response.NoContent(c)
}

// ============================================================
// Contact info
// ============================================================

// ListContacts lists branch contact details
// @Summary List contact info
// @Tags Content
// @Produce json
// @Success 200 {object} response.Response
// @Router /contact-info [get]
// @Router /public/contact-info [get]
func (h *ContentHandler) ListContacts(publicOnly bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := h.contentService.ListContacts(c.Context(), publicOnly)
		if err != nil {
			return fail(c, err, "Failed to list contact info")
		}
		return response.Success(c, "Contact info retrieved successfully", items)
	}
}

// GetContact returns one branch's contact details
// @Summary Get contact info
// @Tags Content
// @Produce json
// @Param id path int true "Contact ID"
// @Success 200 {object} response.Response
// @Router /contact-info/{id} [get]
func (h *ContentHandler) GetContact(publicOnly bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return response.BadRequest(c, "Invalid contact ID")
		}
		info, err := h.contentService.GetContact(c.Context(), id, publicOnly)
		if err != nil {
			return fail(c, err, "Failed to get contact info")
		}
		return response.Success(c, "Contact info retrieved successfully", fiber.Map{"contact": info})
	}
}

// CreateContact handles adding branch contact details
// @Summary Create contact info
// @Tags Content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.ContactInput true "Contact"
// @Success 201 {object} response.Response
// @Router /contact-info [post]
func (h *ContentHandler) CreateContact(c *fiber.Ctx) error {
	var in services.ContactInput
	if err := c.BodyParser(&in); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	info, err := h.contentService.CreateContact(c.Context(), &in)
	if err != nil {
		return fail(c, err, "Failed to create contact info")
	}
	return response.Created(c, "Contact info created successfully", fiber.Map{"contact": info})
}

// UpdateContact handles editing branch contact details
// @Summary Update contact info
// @Tags Content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Contact ID"
// @Param body body services.ContactInput true "Contact"
// @Success 200 {object} response.Response
// @Router /contact-info/{id} [put]
func (h *ContentHandler) UpdateContact(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid contact ID")
	}
	var in services.ContactInput
	if err := c.BodyParser(&in); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	info, err := h.contentService.UpdateContact(c.Context(), id, &in)
	if err != nil {
		return fail(c, err, "Failed to update contact info")
	}
	return response.Success(c, "Contact info updated successfully", fiber.Map{"contact": info})
}

// DeleteContact handles deleting branch contact details
// @Summary Delete contact info
// @Tags Content
// @Security BearerAuth
// @Param id path int true "Contact ID"
// @Success 204
// @Router /contact-info/{id} [delete]
func (h *ContentHandler) DeleteContact(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid contact ID")
	}
	if err := h.contentService.DeleteContact(c.Context(), id); err != nil {
		return fail(c, err, "Failed to delete contact info")
	}
	return response.NoContent(c)
}
