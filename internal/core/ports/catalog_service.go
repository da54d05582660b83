package ports

import (
	"context"

	"github.com/contentkosh/institute-api/internal/core/domain"
)

// ExamWithCourses is an exam joined with its courses.
type ExamWithCourses struct {
	domain.Exam
	Courses []domain.Course `json:"courses"`
}

// CourseWithSubjects is a course joined with its subjects.
type CourseWithSubjects struct {
	domain.Course
	Subjects []domain.Subject `json:"subjects"`
}

// CatalogService covers the exam → course → subject tree.
type CatalogService interface {
	CreateExam(ctx context.Context, exam *domain.Exam) (*domain.Exam, error)
	GetExam(ctx context.Context, id int64) (*domain.Exam, error)
	GetExamWithCourses(ctx context.Context, id int64) (*ExamWithCourses, error)
	UpdateExam(ctx context.Context, id int64, update UpdateExamInput) (*domain.Exam, error)
	DeleteExam(ctx context.Context, id int64) error

	CreateCourse(ctx context.Context, course *domain.Course) (*domain.Course, error)
	GetCourse(ctx context.Context, id int64) (*domain.Course, error)
	GetCourseWithSubjects(ctx context.Context, id int64) (*CourseWithSubjects, error)
	CoursesByExam(ctx context.Context, examID int64) ([]domain.Course, error)
	UpdateCourse(ctx context.Context, id int64, update UpdateCourseInput) (*domain.Course, error)
	DeleteCourse(ctx context.Context, id int64) error

	CreateSubject(ctx context.Context, subject *domain.Subject) (*domain.Subject, error)
	GetSubject(ctx context.Context, id int64) (*domain.Subject, error)
	SubjectsByCourse(ctx context.Context, courseID int64) ([]domain.Subject, error)
	UpdateSubject(ctx context.Context, id int64, update UpdateSubjectInput) (*domain.Subject, error)
	DeleteSubject(ctx context.Context, id int64) error
}
