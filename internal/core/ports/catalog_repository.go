package ports

import (
	"context"

	"github.com/contentkosh/institute-api/internal/core/domain"
)

// ExamRepository persists exams.
type ExamRepository interface {
	Create(ctx context.Context, exam *domain.Exam) (*domain.Exam, error)
	FindByID(ctx context.Context, id int64) (*domain.Exam, error)
	FindByBusiness(ctx context.Context, businessID int64) ([]domain.Exam, error)
	Update(ctx context.Context, id int64, update UpdateExamInput) (*domain.Exam, error)
	Delete(ctx context.Context, id int64) error
}

// CourseRepository persists courses under an exam.
type CourseRepository interface {
	Create(ctx context.Context, course *domain.Course) (*domain.Course, error)
	FindByID(ctx context.Context, id int64) (*domain.Course, error)
	FindByExam(ctx context.Context, examID int64) ([]domain.Course, error)
	Update(ctx context.Context, id int64, update UpdateCourseInput) (*domain.Course, error)
	Delete(ctx context.Context, id int64) error
}

// SubjectRepository persists subjects under a course.
type SubjectRepository interface {
	Create(ctx context.Context, subject *domain.Subject) (*domain.Subject, error)
	FindByID(ctx context.Context, id int64) (*domain.Subject, error)
	FindByCourse(ctx context.Context, courseID int64) ([]domain.Subject, error)
	Update(ctx context.Context, id int64, update UpdateSubjectInput) (*domain.Subject, error)
	Delete(ctx context.Context, id int64) error
}

// UpdateExamInput carries partial exam updates; nil means unchanged.
type UpdateExamInput struct {
	Name        *string
	Description *string
	IsActive    *bool
}

// UpdateCourseInput carries partial course updates.
type UpdateCourseInput struct {
	Name        *string
	Description *string
	IsActive    *bool
}

// UpdateSubjectInput carries partial subject updates.
type UpdateSubjectInput struct {
	Name        *string
	Description *string
	IsActive    *bool
}
