package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/contentkosh/institute-api/internal/core/domain"
	"github.com/contentkosh/institute-api/internal/core/ports"
)

type catalogService struct {
	exams      ports.ExamRepository
	courses    ports.CourseRepository
	subjects   ports.SubjectRepository
	businesses ports.BusinessRepository
	log        zerolog.Logger
}

// NewCatalogService returns a CatalogService covering the
// exam → course → subject tree.
func NewCatalogService(
	exams ports.ExamRepository,
	courses ports.CourseRepository,
	subjects ports.SubjectRepository,
	businesses ports.BusinessRepository,
	log zerolog.Logger,
) ports.CatalogService {
	return &catalogService{exams: exams, courses: courses, subjects: subjects, businesses: businesses, log: log}
}

// --- Exams ---

func (s *catalogService) CreateExam(ctx context.Context, exam *domain.Exam) (*domain.Exam, error) {
	if strings.TrimSpace(exam.Name) == "" {
		return nil, domain.Invalid("Exam name is required")
	}
	if exam.BusinessID <= 0 {
		return nil, domain.Invalid("Business ID is required")
	}
	if _, err := s.businesses.FindByID(ctx, exam.BusinessID); err != nil {
		return nil, err
	}

	created, err := s.exams.Create(ctx, exam)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("name", created.Name).Int64("exam_id", created.ID).Msg("exam created")
	return created, nil
}

func (s *catalogService) GetExam(ctx context.Context, id int64) (*domain.Exam, error) {
	return s.exams.FindByID(ctx, id)
}

func (s *catalogService) GetExamWithCourses(ctx context.Context, id int64) (*ports.ExamWithCourses, error) {
	exam, err := s.exams.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	courses, err := s.courses.FindByExam(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ports.ExamWithCourses{Exam: *exam, Courses: courses}, nil
}

func (s *catalogService) UpdateExam(ctx context.Context, id int64, update ports.UpdateExamInput) (*domain.Exam, error) {
	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		return nil, domain.Invalid("Exam name cannot be empty")
	}
	return s.exams.Update(ctx, id, update)
}

func (s *catalogService) DeleteExam(ctx context.Context, id int64) error {
	return s.exams.Delete(ctx, id)
}

// --- Courses ---

func (s *catalogService) CreateCourse(ctx context.Context, course *domain.Course) (*domain.Course, error) {
	if strings.TrimSpace(course.Name) == "" {
		return nil, domain.Invalid("Course name is required")
	}
	if course.ExamID <= 0 {
		return nil, domain.Invalid("Exam ID is required")
	}
	if _, err := s.exams.FindByID(ctx, course.ExamID); err != nil {
		return nil, err
	}

	created, err := s.courses.Create(ctx, course)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("name", created.Name).Int64("course_id", created.ID).Msg("course created")
	return created, nil
}

func (s *catalogService) GetCourse(ctx context.Context, id int64) (*domain.Course, error) {
	return s.courses.FindByID(ctx, id)
}

func (s *catalogService) GetCourseWithSubjects(ctx context.Context, id int64) (*ports.CourseWithSubjects, error) {
	course, err := s.courses.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	subjects, err := s.subjects.FindByCourse(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ports.CourseWithSubjects{Course: *course, Subjects: subjects}, nil
}

func (s *catalogService) CoursesByExam(ctx context.Context, examID int64) ([]domain.Course, error) {
	if _, err := s.exams.FindByID(ctx, examID); err != nil {
		return nil, err
	}
	return s.courses.FindByExam(ctx, examID)
}

func (s *catalogService) UpdateCourse(ctx context.Context, id int64, update ports.UpdateCourseInput) (*domain.Course, error) {
	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		return nil, domain.Invalid("Course name cannot be empty")
	}
	return s.courses.Update(ctx, id, update)
}

func (s *catalogService) DeleteCourse(ctx context.Context, id int64) error {
	return s.courses.Delete(ctx, id)
}

// --- Subjects ---

func (s *catalogService) CreateSubject(ctx context.Context, subject *domain.Subject) (*domain.Subject, error) {
	if strings.TrimSpace(subject.Name) == "" {
		return nil, domain.Invalid("Subject name is required")
	}
	if subject.CourseID <= 0 {
		return nil, domain.Invalid("Course ID is required")
	}
	if _, err := s.courses.FindByID(ctx, subject.CourseID); err != nil {
		return nil, err
	}

	created, err := s.subjects.Create(ctx, subject)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("name", created.Name).Int64("subject_id", created.ID).Msg("subject created")
	return created, nil
}

func (s *catalogService) GetSubject(ctx context.Context, id int64) (*domain.Subject, error) {
	return s.subjects.FindByID(ctx, id)
}

func (s *catalogService) SubjectsByCourse(ctx context.Context, courseID int64) ([]domain.Subject, error) {
	if _, err := s.courses.FindByID(ctx, courseID); err != nil {
		return nil, err
	}
	return s.subjects.FindByCourse(ctx, courseID)
}

func (s *catalogService) UpdateSubject(ctx context.Context, id int64, update ports.UpdateSubjectInput) (*domain.Subject, error) {
	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		return nil, domain.Invalid("Subject name cannot be empty")
	}
	return s.subjects.Update(ctx, id, update)
}

func (s *catalogService) DeleteSubject(ctx context.Context, id int64) error {
	return s.subjects.Delete(ctx, id)
}
