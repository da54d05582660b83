package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/contentkosh/institute-api/internal/api/response"
	"github.com/contentkosh/institute-api/internal/core/domain"
	"github.com/contentkosh/institute-api/internal/core/ports"
)

// BusinessHandler serves the institute's tenant record. The installation
// holds a single business record; creation fails once one exists.
type BusinessHandler struct {
	businesses ports.BusinessService
}

func NewBusinessHandler(businesses ports.BusinessService) *BusinessHandler {
	return &BusinessHandler{businesses: businesses}
}

type createBusinessRequest struct {
	InstituteName string `json:"instituteName" validate:"required"`
	Tagline       string `json:"tagline"`
	ContactNumber string `json:"contactNumber"`
	Email         string `json:"email" validate:"omitempty,email"`
	Address       string `json:"address"`
	YoutubeURL    string `json:"youtubeUrl"`
	InstagramURL  string `json:"instagramUrl"`
	LinkedinURL   string `json:"linkedinUrl"`
	FacebookURL   string `json:"facebookUrl"`
}

type updateBusinessRequest struct {
	InstituteName *string `json:"instituteName"`
	Tagline       *string `json:"tagline"`
	ContactNumber *string `json:"contactNumber"`
	Email         *string `json:"email" validate:"omitempty,email"`
	Address       *string `json:"address"`
	YoutubeURL    *string `json:"youtubeUrl"`
	InstagramURL  *string `json:"instagramUrl"`
	LinkedinURL   *string `json:"linkedinUrl"`
	FacebookURL   *string `json:"facebookUrl"`
}

// Create registers the institute record.
//
// @Summary      Create the business record
// @Tags         business
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createBusinessRequest  true  "Business details"
// @Success      201   {object}  response.Envelope
// @Failure      409   {object}  response.Envelope
// @Router       /api/business [post]
func (h *BusinessHandler) Create(c echo.Context) error {
	var req createBusinessRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	business, err := h.businesses.Create(c.Request().Context(), &domain.Business{
		InstituteName: req.InstituteName,
		Tagline:       req.Tagline,
		ContactNumber: req.ContactNumber,
		Email:         req.Email,
		Address:       req.Address,
		YoutubeURL:    req.YoutubeURL,
		InstagramURL:  req.InstagramURL,
		LinkedinURL:   req.LinkedinURL,
		FacebookURL:   req.FacebookURL,
	})
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusCreated, business, "Business created successfully")
}

// Get fetches one business record by ID.
//
// @Summary      Get the business record
// @Tags         business
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Business ID"
// @Success      200  {object}  response.Envelope
// @Failure      404  {object}  response.Envelope
// @Router       /api/business/{id} [get]
func (h *BusinessHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id", "Business ID")
	if err != nil {
		return err
	}

	business, err := h.businesses.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, business, "Business fetched successfully")
}

// Update applies a partial update to the business record.
//
// @Summary      Update the business record
// @Tags         business
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                    true  "Business ID"
// @Param        body  body      updateBusinessRequest  true  "Fields to change"
// @Success      200   {object}  response.Envelope
// @Failure      404   {object}  response.Envelope
// @Router       /api/business/{id} [put]
func (h *BusinessHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id", "Business ID")
	if err != nil {
		return err
	}

	var req updateBusinessRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	business, err := h.businesses.Update(c.Request().Context(), id, ports.UpdateBusinessInput{
		InstituteName: req.InstituteName,
		Tagline:       req.Tagline,
		ContactNumber: req.ContactNumber,
		Email:         req.Email,
		Address:       req.Address,
		YoutubeURL:    req.YoutubeURL,
		InstagramURL:  req.InstagramURL,
		LinkedinURL:   req.LinkedinURL,
		FacebookURL:   req.FacebookURL,
	})
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, business, "Business updated successfully")
}

// Delete removes the business record.
//
// @Summary      Delete the business record
// @Tags         business
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Business ID"
// @Success      200  {object}  response.Envelope
// @Failure      404  {object}  response.Envelope
// @Router       /api/business/{id} [delete]
func (h *BusinessHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id", "Business ID")
	if err != nil {
		return err
	}

	if err := h.businesses.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, nil, "Business deleted successfully")
}
