package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/contentkosh/institute-api/internal/api/response"
	"github.com/contentkosh/institute-api/internal/core/domain"
	"github.com/contentkosh/institute-api/internal/core/ports"
)

// CatalogHandler serves the exam → course → subject tree.
type CatalogHandler struct {
	catalog ports.CatalogService
}

func NewCatalogHandler(catalog ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

type createExamRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	BusinessID  int64  `json:"businessId" validate:"required"`
}

type createCourseRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	ExamID      int64  `json:"examId" validate:"required"`
}

type createSubjectRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	CourseID    int64  `json:"courseId" validate:"required"`
}

type updateCatalogRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

// --- Exams ---

// CreateExam adds an exam to the catalog.
//
// @Summary      Create an exam
// @Tags         exams
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createExamRequest  true  "Exam details"
// @Success      201   {object}  response.Envelope
// @Failure      400   {object}  response.Envelope
// @Router       /api/exams [post]
func (h *CatalogHandler) CreateExam(c echo.Context) error {
	var req createExamRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	exam, err := h.catalog.CreateExam(c.Request().Context(), &domain.Exam{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
		BusinessID:  req.BusinessID,
	})
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusCreated, exam, "Exam created successfully")
}

// GetExam fetches one exam.
//
// @Summary      Get an exam
// @Tags         exams
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Exam ID"
// @Success      200  {object}  response.Envelope
// @Failure      404  {object}  response.Envelope
// @Router       /api/exams/{id} [get]
func (h *CatalogHandler) GetExam(c echo.Context) error {
	id, err := pathID(c, "id", "Exam ID")
	if err != nil {
		return err
	}

	exam, err := h.catalog.GetExam(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, exam, "Exam fetched successfully")
}

// GetExamWithCourses fetches an exam joined with its courses.
//
// @Summary      Get an exam with its courses
// @Tags         exams
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Exam ID"
// @Success      200  {object}  response.Envelope
// @Failure      404  {object}  response.Envelope
// @Router       /api/exams/{id}/full [get]
func (h *CatalogHandler) GetExamWithCourses(c echo.Context) error {
	id, err := pathID(c, "id", "Exam ID")
	if err != nil {
		return err
	}

	exam, err := h.catalog.GetExamWithCourses(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, exam, "Exam fetched successfully")
}

// UpdateExam applies a partial update to an exam.
//
// @Summary      Update an exam
// @Tags         exams
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                   true  "Exam ID"
// @Param        body  body      updateCatalogRequest  true  "Fields to change"
// @Success      200   {object}  response.Envelope
// @Failure      404   {object}  response.Envelope
// @Router       /api/exams/{id} [put]
func (h *CatalogHandler) UpdateExam(c echo.Context) error {
	id, err := pathID(c, "id", "Exam ID")
	if err != nil {
		return err
	}

	var req updateCatalogRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("Invalid request payload")
	}

	exam, err := h.catalog.UpdateExam(c.Request().Context(), id, ports.UpdateExamInput{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, exam, "Exam updated successfully")
}

// DeleteExam removes an exam.
//
// @Summary      Delete an exam
// @Tags         exams
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Exam ID"
// @Success      200  {object}  response.Envelope
// @Failure      404  {object}  response.Envelope
// @Router       /api/exams/{id} [delete]
func (h *CatalogHandler) DeleteExam(c echo.Context) error {
	id, err := pathID(c, "id", "Exam ID")
	if err != nil {
		return err
	}

	if err := h.catalog.DeleteExam(c.Request().Context(), id); err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, nil, "Exam deleted successfully")
}

// --- Courses ---

// CreateCourse adds a course under an exam.
//
// @Summary      Create a course
// @Tags         courses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCourseRequest  true  "Course details"
// @Success      201   {object}  response.Envelope
// @Failure      404   {object}  response.Envelope
// @Router       /api/exams/courses [post]
func (h *CatalogHandler) CreateCourse(c echo.Context) error {
	var req createCourseRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	course, err := h.catalog.CreateCourse(c.Request().Context(), &domain.Course{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
		ExamID:      req.ExamID,
	})
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusCreated, course, "Course created successfully")
}

// GetCourse fetches one course.
//
// @Summary      Get a course
// @Tags         courses
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Course ID"
// @Success      200  {object}  response.Envelope
// @Failure      404  {object}  response.Envelope
// @Router       /api/exams/courses/{id} [get]
func (h *CatalogHandler) GetCourse(c echo.Context) error {
	id, err := pathID(c, "id", "Course ID")
	if err != nil {
		return err
	}

	course, err := h.catalog.GetCourse(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, course, "Course fetched successfully")
}

// GetCourseWithSubjects fetches a course joined with its subjects.
//
// @Summary      Get a course with its subjects
// @Tags         courses
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Course ID"
// @Success      200  {object}  response.Envelope
// @Failure      404  {object}  response.Envelope
// @Router       /api/exams/courses/{id}/full [get]
func (h *CatalogHandler) GetCourseWithSubjects(c echo.Context) error {
	id, err := pathID(c, "id", "Course ID")
	if err != nil {
		return err
	}

	course, err := h.catalog.GetCourseWithSubjects(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, course, "Course fetched successfully")
}

// CoursesByExam lists the courses under an exam.
//
// @Summary      List courses of an exam
// @Tags         courses
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Exam ID"
// @Success      200  {object}  response.Envelope
// @Failure      404  {object}  response.Envelope
// @Router       /api/exams/{id}/courses [get]
func (h *CatalogHandler) CoursesByExam(c echo.Context) error {
	examID, err := pathID(c, "id", "Exam ID")
	if err != nil {
		return err
	}

	courses, err := h.catalog.CoursesByExam(c.Request().Context(), examID)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, courses, "Courses fetched successfully")
}

// UpdateCourse applies a partial update to a course.
//
// @Summary      Update a course
// @Tags         courses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                   true  "Course ID"
// @Param        body  body      updateCatalogRequest  true  "Fields to change"
// @Success      200   {object}  response.Envelope
// @Failure      404   {object}  response.Envelope
// @Router       /api/exams/courses/{id} [put]
func (h *CatalogHandler) UpdateCourse(c echo.Context) error {
	id, err := pathID(c, "id", "Course ID")
	if err != nil {
		return err
	}

	var req updateCatalogRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("Invalid request payload")
	}

	course, err := h.catalog.UpdateCourse(c.Request().Context(), id, ports.UpdateCourseInput{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, course, "Course updated successfully")
}

// DeleteCourse removes a course.
//
// @Summary      Delete a course
// @Tags         courses
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Course ID"
// @Success      200  {object}  response.Envelope
// @Failure      404  {object}  response.Envelope
// @Router       /api/exams/courses/{id} [delete]
func (h *CatalogHandler) DeleteCourse(c echo.Context) error {
	id, err := pathID(c, "id", "Course ID")
	if err != nil {
		return err
	}

	if err := h.catalog.DeleteCourse(c.Request().Context(), id); err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, nil, "Course deleted successfully")
}

// --- Subjects ---

// CreateSubject adds a subject under a course.
//
// @Summary      Create a subject
// @Tags         subjects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createSubjectRequest  true  "Subject details"
// @Success      201   {object}  response.Envelope
// @Failure      404   {object}  response.Envelope
// @Router       /api/exams/subjects [post]
func (h *CatalogHandler) CreateSubject(c echo.Context) error {
	var req createSubjectRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	subject, err := h.catalog.CreateSubject(c.Request().Context(), &domain.Subject{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
		CourseID:    req.CourseID,
	})
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusCreated, subject, "Subject created successfully")
}

// GetSubject fetches one subject.
//
// @Summary      Get a subject
// @Tags         subjects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Subject ID"
// @Success      200  {object}  response.Envelope
// @Failure      404  {object}  response.Envelope
// @Router       /api/exams/subjects/{id} [get]
func (h *CatalogHandler) GetSubject(c echo.Context) error {
	id, err := pathID(c, "id", "Subject ID")
	if err != nil {
		return err
	}

	subject, err := h.catalog.GetSubject(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, subject, "Subject fetched successfully")
}

// SubjectsByCourse lists the subjects under a course.
//
// @Summary      List subjects of a course
// @Tags         subjects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Course ID"
// @Success      200  {object}  response.Envelope
// @Failure      404  {object}  response.Envelope
// @Router       /api/exams/courses/{id}/subjects [get]
func (h *CatalogHandler) SubjectsByCourse(c echo.Context) error {
	courseID, err := pathID(c, "id", "Course ID")
	if err != nil {
		return err
	}

	subjects, err := h.catalog.SubjectsByCourse(c.Request().Context(), courseID)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, subjects, "Subjects fetched successfully")
}

// UpdateSubject applies a partial update to a subject.
//
// @Summary      Update a subject
// @Tags         subjects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                   true  "Subject ID"
// @Param        body  body      updateCatalogRequest  true  "Fields to change"
// @Success      200   {object}  response.Envelope
// @Failure      404   {object}  response.Envelope
// @Router       /api/exams/subjects/{id} [put]
func (h *CatalogHandler) UpdateSubject(c echo.Context) error {
	id, err := pathID(c, "id", "Subject ID")
	if err != nil {
		return err
	}

	var req updateCatalogRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("Invalid request payload")
	}

	subject, err := h.catalog.UpdateSubject(c.Request().Context(), id, ports.UpdateSubjectInput{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, subject, "Subject updated successfully")
}

// DeleteSubject removes a subject.
//
// @Summary      Delete a subject
// @Tags         subjects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Subject ID"
// @Success      200  {object}  response.Envelope
// @Failure      404  {object}  response.Envelope
// @Router       /api/exams/subjects/{id} [delete]
func (h *CatalogHandler) DeleteSubject(c echo.Context) error {
	id, err := pathID(c, "id", "Subject ID")
	if err != nil {
		return err
	}

	if err := h.catalog.DeleteSubject(c.Request().Context(), id); err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, nil, "Subject deleted successfully")
}
