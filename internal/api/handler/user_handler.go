package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/contentkosh/institute-api/internal/api/response"
	"github.com/contentkosh/institute-api/internal/core/domain"
	"github.com/contentkosh/institute-api/internal/core/ports"
	"github.com/contentkosh/institute-api/internal/core/session"
)

// UserHandler serves profile lookup and business-role assignments.
type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type assignUserRequest struct {
	UserID     int64       `json:"userId" validate:"required"`
	BusinessID int64       `json:"businessId" validate:"required"`
	Role       domain.Role `json:"role" validate:"required,oneof=GUEST STUDENT TEACHER ADMIN SUPERADMIN"`
}

type updateAssignmentRequest struct {
	Role     *domain.Role `json:"role" validate:"omitempty,oneof=GUEST STUDENT TEACHER ADMIN SUPERADMIN"`
	IsActive *bool        `json:"isActive"`
}

// Profile returns the authenticated user's record with their business
// assignments.
//
// @Summary      Get own profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Envelope
// @Failure      401  {object}  response.Envelope
// @Router       /api/users/profile [get]
func (h *UserHandler) Profile(c echo.Context) error {
	identity, err := session.Identity(c.Request().Context())
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	profile, err := h.users.Profile(c.Request().Context(), identity.UserID)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, profile, "Profile fetched successfully")
}

// AssignToBusiness grants a user a role within a business.
//
// @Summary      Assign a user to a business
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      assignUserRequest  true  "Assignment details"
// @Success      201   {object}  response.Envelope
// @Failure      404   {object}  response.Envelope
// @Failure      409   {object}  response.Envelope
// @Router       /api/users/business [post]
func (h *UserHandler) AssignToBusiness(c echo.Context) error {
	var req assignUserRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	assignment, err := h.users.AssignToBusiness(c.Request().Context(), req.UserID, req.BusinessID, req.Role)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusCreated, assignment, "User assigned to business successfully")
}

// UserBusinesses lists the authenticated user's business associations.
//
// @Summary      List own business associations
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Envelope
// @Router       /api/users/businesses [get]
func (h *UserHandler) UserBusinesses(c echo.Context) error {
	identity, err := session.Identity(c.Request().Context())
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	assignments, err := h.users.UserBusinesses(c.Request().Context(), identity.UserID)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, assignments, "User business associations fetched successfully")
}

// Assignment fetches a single user-business assignment.
//
// @Summary      Get one business assignment
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        userId      path      int  true  "User ID"
// @Param        businessId  path      int  true  "Business ID"
// @Success      200         {object}  response.Envelope
// @Failure      404         {object}  response.Envelope
// @Router       /api/users/{userId}/business/{businessId} [get]
func (h *UserHandler) Assignment(c echo.Context) error {
	userID, err := pathID(c, "userId", "User ID")
	if err != nil {
		return err
	}
	businessID, err := pathID(c, "businessId", "Business ID")
	if err != nil {
		return err
	}

	assignment, err := h.users.Assignment(c.Request().Context(), userID, businessID)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, assignment, "Business user fetched successfully")
}

// BusinessUsers lists the users assigned to a business, optionally
// filtered by role via the ?role query parameter. The role-filtered
// listing only returns active assignments; the unfiltered one returns
// all of them.
//
// @Summary      List users of a business
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        businessId  path      int     true   "Business ID"
// @Param        role        query     string  false  "Filter by role"
// @Success      200         {object}  response.Envelope
// @Failure      400         {object}  response.Envelope
// @Router       /api/users/business/{businessId}/users [get]
func (h *UserHandler) BusinessUsers(c echo.Context) error {
	businessID, err := pathID(c, "businessId", "Business ID")
	if err != nil {
		return err
	}

	var role domain.Role
	if raw := c.QueryParam("role"); raw != "" {
		role = domain.Role(raw)
		if !role.Valid() {
			return domain.Invalid("Invalid role filter")
		}
	}

	assignments, err := h.users.BusinessUsers(c.Request().Context(), businessID, role, role != "")
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, assignments, "Business users fetched successfully")
}

// UpdateAssignment changes the role or active flag of one assignment.
//
// @Summary      Update a business assignment
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        userId      path      int                      true  "User ID"
// @Param        businessId  path      int                      true  "Business ID"
// @Param        body        body      updateAssignmentRequest  true  "Fields to change"
// @Success      200         {object}  response.Envelope
// @Failure      404         {object}  response.Envelope
// @Router       /api/users/{userId}/business/{businessId} [put]
func (h *UserHandler) UpdateAssignment(c echo.Context) error {
	userID, err := pathID(c, "userId", "User ID")
	if err != nil {
		return err
	}
	businessID, err := pathID(c, "businessId", "Business ID")
	if err != nil {
		return err
	}

	var req updateAssignmentRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	assignment, err := h.users.UpdateAssignment(c.Request().Context(), userID, businessID, ports.UpdateAssignmentInput{
		Role:     req.Role,
		IsActive: req.IsActive,
	})
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, assignment, "Business user updated successfully")
}

// RemoveAssignment detaches a user from a business.
//
// @Summary      Remove a user from a business
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        userId      path      int  true  "User ID"
// @Param        businessId  path      int  true  "Business ID"
// @Success      200         {object}  response.Envelope
// @Failure      404         {object}  response.Envelope
// @Router       /api/users/{userId}/business/{businessId} [delete]
func (h *UserHandler) RemoveAssignment(c echo.Context) error {
	userID, err := pathID(c, "userId", "User ID")
	if err != nil {
		return err
	}
	businessID, err := pathID(c, "businessId", "Business ID")
	if err != nil {
		return err
	}

	if err := h.users.RemoveAssignment(c.Request().Context(), userID, businessID); err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, nil, "User removed from business successfully")
}
