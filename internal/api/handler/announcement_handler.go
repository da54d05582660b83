package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/contentkosh/institute-api/internal/api/response"
	"github.com/contentkosh/institute-api/internal/core/domain"
	"github.com/contentkosh/institute-api/internal/core/ports"
)

// AnnouncementHandler serves role-targeted announcements.
type AnnouncementHandler struct {
	announcements ports.AnnouncementService
}

func NewAnnouncementHandler(announcements ports.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{announcements: announcements}
}

type createAnnouncementRequest struct {
	Heading           string    `json:"heading" validate:"required"`
	Content           string    `json:"content" validate:"required"`
	StartDate         time.Time `json:"startDate" validate:"required"`
	EndDate           time.Time `json:"endDate" validate:"required"`
	BusinessID        int64     `json:"businessId" validate:"required"`
	VisibleToAdmins   bool      `json:"visibleToAdmins"`
	VisibleToTeachers bool      `json:"visibleToTeachers"`
	VisibleToStudents bool      `json:"visibleToStudents"`
}

type updateAnnouncementRequest struct {
	Heading           *string    `json:"heading"`
	Content           *string    `json:"content"`
	StartDate         *time.Time `json:"startDate"`
	EndDate           *time.Time `json:"endDate"`
	IsActive          *bool      `json:"isActive"`
	VisibleToAdmins   *bool      `json:"visibleToAdmins"`
	VisibleToTeachers *bool      `json:"visibleToTeachers"`
	VisibleToStudents *bool      `json:"visibleToStudents"`
}

// Create publishes an announcement.
//
// @Summary      Create an announcement
// @Tags         announcements
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createAnnouncementRequest  true  "Announcement details"
// @Success      201   {object}  response.Envelope
// @Failure      400   {object}  response.Envelope
// @Failure      404   {object}  response.Envelope
// @Router       /api/announcements [post]
func (h *AnnouncementHandler) Create(c echo.Context) error {
	var req createAnnouncementRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	announcement, err := h.announcements.Create(c.Request().Context(), &domain.Announcement{
		Heading:           req.Heading,
		Content:           req.Content,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		IsActive:          true,
		VisibleToAdmins:   req.VisibleToAdmins,
		VisibleToTeachers: req.VisibleToTeachers,
		VisibleToStudents: req.VisibleToStudents,
		BusinessID:        req.BusinessID,
	})
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusCreated, announcement, "Announcement created successfully")
}

// Get fetches one announcement.
//
// @Summary      Get an announcement
// @Tags         announcements
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Announcement ID"
// @Success      200  {object}  response.Envelope
// @Failure      404  {object}  response.Envelope
// @Router       /api/announcements/{id} [get]
func (h *AnnouncementHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id", "Announcement ID")
	if err != nil {
		return err
	}

	announcement, err := h.announcements.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, announcement, "Announcement fetched successfully")
}

// ByBusiness lists a business's announcements; ?active=true restricts to
// currently running ones.
//
// @Summary      List announcements of a business
// @Tags         announcements
// @Produce      json
// @Security     BearerAuth
// @Param        businessId  path      int   true   "Business ID"
// @Param        active      query     bool  false  "Only active announcements"
// @Success      200         {object}  response.Envelope
// @Failure      400         {object}  response.Envelope
// @Router       /api/announcements/business/{businessId} [get]
func (h *AnnouncementHandler) ByBusiness(c echo.Context) error {
	businessID, err := pathID(c, "businessId", "Business ID")
	if err != nil {
		return err
	}
	activeOnly := c.QueryParam("active") == "true"

	announcements, err := h.announcements.ByBusiness(c.Request().Context(), businessID, activeOnly)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, announcements, "Announcements fetched successfully")
}

// ByRole lists the announcements visible to one role.
//
// @Summary      List announcements visible to a role
// @Tags         announcements
// @Produce      json
// @Security     BearerAuth
// @Param        businessId  path      int     true  "Business ID"
// @Param        role        query     string  true  "Role (ADMIN, SUPERADMIN, TEACHER or STUDENT)"
// @Success      200         {object}  response.Envelope
// @Failure      400         {object}  response.Envelope
// @Router       /api/announcements/business/{businessId}/role [get]
func (h *AnnouncementHandler) ByRole(c echo.Context) error {
	businessID, err := pathID(c, "businessId", "Business ID")
	if err != nil {
		return err
	}

	raw := c.QueryParam("role")
	if raw == "" {
		return domain.Invalid("Role parameter is required")
	}
	role := domain.Role(raw)
	switch role {
	case domain.RoleAdmin, domain.RoleSuperAdmin, domain.RoleTeacher, domain.RoleStudent:
	default:
		return domain.Invalid("Invalid role. Must be ADMIN, SUPERADMIN, TEACHER, or STUDENT")
	}

	announcements, err := h.announcements.ByRole(c.Request().Context(), businessID, role)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, announcements, "Announcements fetched successfully")
}

// ByDateRange lists the announcements overlapping a date window.
//
// @Summary      List announcements in a date range
// @Tags         announcements
// @Produce      json
// @Security     BearerAuth
// @Param        businessId  path      int     true  "Business ID"
// @Param        startDate   query     string  true  "Window start (RFC 3339)"
// @Param        endDate     query     string  true  "Window end (RFC 3339)"
// @Success      200         {object}  response.Envelope
// @Failure      400         {object}  response.Envelope
// @Router       /api/announcements/business/{businessId}/range [get]
func (h *AnnouncementHandler) ByDateRange(c echo.Context) error {
	businessID, err := pathID(c, "businessId", "Business ID")
	if err != nil {
		return err
	}

	startStr, endStr := c.QueryParam("startDate"), c.QueryParam("endDate")
	if startStr == "" || endStr == "" {
		return domain.Invalid("Start date and end date are required")
	}
	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		return domain.Invalid("Invalid date format")
	}
	end, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		return domain.Invalid("Invalid date format")
	}

	announcements, err := h.announcements.ByDateRange(c.Request().Context(), businessID, start, end)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, announcements, "Announcements fetched successfully")
}

// Update applies a partial update to an announcement.
//
// @Summary      Update an announcement
// @Tags         announcements
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                        true  "Announcement ID"
// @Param        body  body      updateAnnouncementRequest  true  "Fields to change"
// @Success      200   {object}  response.Envelope
// @Failure      404   {object}  response.Envelope
// @Router       /api/announcements/{id} [put]
func (h *AnnouncementHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id", "Announcement ID")
	if err != nil {
		return err
	}

	var req updateAnnouncementRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("Invalid request payload")
	}

	announcement, err := h.announcements.Update(c.Request().Context(), id, ports.UpdateAnnouncementInput{
		Heading:           req.Heading,
		Content:           req.Content,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		IsActive:          req.IsActive,
		VisibleToAdmins:   req.VisibleToAdmins,
		VisibleToTeachers: req.VisibleToTeachers,
		VisibleToStudents: req.VisibleToStudents,
	})
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, announcement, "Announcement updated successfully")
}

// Delete removes an announcement.
//
// @Summary      Delete an announcement
// @Tags         announcements
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Announcement ID"
// @Success      200  {object}  response.Envelope
// @Failure      404  {object}  response.Envelope
// @Router       /api/announcements/{id} [delete]
func (h *AnnouncementHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id", "Announcement ID")
	if err != nil {
		return err
	}

	if err := h.announcements.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, nil, "Announcement deleted successfully")
}
