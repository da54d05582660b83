package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/contentkosh/institute-api/internal/api/response"
	"github.com/contentkosh/institute-api/internal/core/domain"
	"github.com/contentkosh/institute-api/internal/core/ports"
)

// BatchHandler serves batch CRUD and enrollment.
type BatchHandler struct {
	batches ports.BatchService
}

func NewBatchHandler(batches ports.BatchService) *BatchHandler {
	return &BatchHandler{batches: batches}
}

type createBatchRequest struct {
	CodeName    string    `json:"codeName" validate:"required"`
	DisplayName string    `json:"displayName" validate:"required"`
	StartDate   time.Time `json:"startDate" validate:"required"`
	EndDate     time.Time `json:"endDate" validate:"required"`
	BusinessID  int64     `json:"businessId" validate:"required"`
}

type updateBatchRequest struct {
	CodeName    *string    `json:"codeName"`
	DisplayName *string    `json:"displayName"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	IsActive    *bool      `json:"isActive"`
}

type batchMemberRequest struct {
	UserID  int64 `json:"userId" validate:"required"`
	BatchID int64 `json:"batchId" validate:"required"`
}

type updateBatchMemberRequest struct {
	IsActive bool `json:"isActive"`
}

// Create registers a batch.
//
// @Summary      Create a batch
// @Tags         batches
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createBatchRequest  true  "Batch details"
// @Success      201   {object}  response.Envelope
// @Failure      400   {object}  response.Envelope
// @Failure      409   {object}  response.Envelope
// @Router       /api/batches [post]
func (h *BatchHandler) Create(c echo.Context) error {
	var req createBatchRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	batch, err := h.batches.Create(c.Request().Context(), &domain.Batch{
		CodeName:    req.CodeName,
		DisplayName: req.DisplayName,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		IsActive:    true,
		BusinessID:  req.BusinessID,
	})
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusCreated, batch, "Batch created successfully")
}

// Get fetches one batch.
//
// @Summary      Get a batch
// @Tags         batches
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Batch ID"
// @Success      200  {object}  response.Envelope
// @Failure      404  {object}  response.Envelope
// @Router       /api/batches/{id} [get]
func (h *BatchHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id", "Batch ID")
	if err != nil {
		return err
	}

	batch, err := h.batches.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, batch, "Batch fetched successfully")
}

// GetWithMembers fetches a batch joined with its memberships.
//
// @Summary      Get a batch with its members
// @Tags         batches
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Batch ID"
// @Success      200  {object}  response.Envelope
// @Failure      404  {object}  response.Envelope
// @Router       /api/batches/{id}/full [get]
func (h *BatchHandler) GetWithMembers(c echo.Context) error {
	id, err := pathID(c, "id", "Batch ID")
	if err != nil {
		return err
	}

	batch, err := h.batches.GetWithMembers(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, batch, "Batch fetched successfully")
}

// ByBusiness lists a business's batches; ?active=true restricts to
// active ones.
//
// @Summary      List batches of a business
// @Tags         batches
// @Produce      json
// @Security     BearerAuth
// @Param        businessId  path      int     true   "Business ID"
// @Param        active      query     bool    false  "Only active batches"
// @Success      200         {object}  response.Envelope
// @Failure      400         {object}  response.Envelope
// @Router       /api/batches/business/{businessId} [get]
func (h *BatchHandler) ByBusiness(c echo.Context) error {
	businessID, err := pathID(c, "businessId", "Business ID")
	if err != nil {
		return err
	}
	activeOnly := c.QueryParam("active") == "true"

	batches, err := h.batches.ByBusiness(c.Request().Context(), businessID, activeOnly)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, batches, "Batches fetched successfully")
}

// Update applies a partial update to a batch.
//
// @Summary      Update a batch
// @Tags         batches
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                 true  "Batch ID"
// @Param        body  body      updateBatchRequest  true  "Fields to change"
// @Success      200   {object}  response.Envelope
// @Failure      404   {object}  response.Envelope
// @Failure      409   {object}  response.Envelope
// @Router       /api/batches/{id} [put]
func (h *BatchHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id", "Batch ID")
	if err != nil {
		return err
	}

	var req updateBatchRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("Invalid request payload")
	}

	batch, err := h.batches.Update(c.Request().Context(), id, ports.UpdateBatchInput{
		CodeName:    req.CodeName,
		DisplayName: req.DisplayName,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, batch, "Batch updated successfully")
}

// Delete removes a batch.
//
// @Summary      Delete a batch
// @Tags         batches
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Batch ID"
// @Success      200  {object}  response.Envelope
// @Failure      404  {object}  response.Envelope
// @Router       /api/batches/{id} [delete]
func (h *BatchHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id", "Batch ID")
	if err != nil {
		return err
	}

	if err := h.batches.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, nil, "Batch deleted successfully")
}

// AddMember enrolls a user into a batch.
//
// @Summary      Add a user to a batch
// @Tags         batches
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      batchMemberRequest  true  "Enrollment details"
// @Success      201   {object}  response.Envelope
// @Failure      404   {object}  response.Envelope
// @Failure      409   {object}  response.Envelope
// @Router       /api/batches/users [post]
func (h *BatchHandler) AddMember(c echo.Context) error {
	var req batchMemberRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	member, err := h.batches.AddMember(c.Request().Context(), req.UserID, req.BatchID)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusCreated, member, "User added to batch successfully")
}

// RemoveMember withdraws a user from a batch.
//
// @Summary      Remove a user from a batch
// @Tags         batches
// @Produce      json
// @Security     BearerAuth
// @Param        userId   path      int  true  "User ID"
// @Param        id       path      int  true  "Batch ID"
// @Success      200      {object}  response.Envelope
// @Failure      404      {object}  response.Envelope
// @Router       /api/batches/{id}/users/{userId} [delete]
func (h *BatchHandler) RemoveMember(c echo.Context) error {
	userID, err := pathID(c, "userId", "User ID")
	if err != nil {
		return err
	}
	batchID, err := pathID(c, "id", "Batch ID")
	if err != nil {
		return err
	}

	if err := h.batches.RemoveMember(c.Request().Context(), userID, batchID); err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, nil, "User removed from batch successfully")
}

// MembersByBatch lists a batch's memberships.
//
// @Summary      List members of a batch
// @Tags         batches
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      int  true  "Batch ID"
// @Success      200      {object}  response.Envelope
// @Failure      404      {object}  response.Envelope
// @Router       /api/batches/{id}/users [get]
func (h *BatchHandler) MembersByBatch(c echo.Context) error {
	batchID, err := pathID(c, "id", "Batch ID")
	if err != nil {
		return err
	}

	members, err := h.batches.MembersByBatch(c.Request().Context(), batchID)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, members, "Batch users fetched successfully")
}

// BatchesByUser lists the batches a user is enrolled in.
//
// @Summary      List batches of a user
// @Tags         batches
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      int  true  "User ID"
// @Success      200     {object}  response.Envelope
// @Failure      404     {object}  response.Envelope
// @Router       /api/batches/users/{userId} [get]
func (h *BatchHandler) BatchesByUser(c echo.Context) error {
	userID, err := pathID(c, "userId", "User ID")
	if err != nil {
		return err
	}

	memberships, err := h.batches.BatchesByUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, memberships, "User batches fetched successfully")
}

// UpdateMember toggles a membership's active flag.
//
// @Summary      Update a batch membership
// @Tags         batches
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        userId   path      int                       true  "User ID"
// @Param        id       path      int                       true  "Batch ID"
// @Param        body     body      updateBatchMemberRequest  true  "Fields to change"
// @Success      200      {object}  response.Envelope
// @Failure      404      {object}  response.Envelope
// @Router       /api/batches/{id}/users/{userId} [put]
func (h *BatchHandler) UpdateMember(c echo.Context) error {
	userID, err := pathID(c, "userId", "User ID")
	if err != nil {
		return err
	}
	batchID, err := pathID(c, "id", "Batch ID")
	if err != nil {
		return err
	}

	var req updateBatchMemberRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("Invalid request payload")
	}

	member, err := h.batches.UpdateMember(c.Request().Context(), userID, batchID, req.IsActive)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, member, "Batch user updated successfully")
}
