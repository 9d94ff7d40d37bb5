package service

import (
	"context"
	"errors"
	"mime/multipart"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/course-service/internal/domain"
	"github.com/spec-kit/course-service/internal/repository"
	"github.com/spec-kit/course-service/internal/storage"
	apperrors "github.com/spec-kit/course-service/pkg/util"
)

// CourseService is the catalog gateway: it orchestrates blob ingestion plus
// record building for writes and serves read-only listing and lookup.
type CourseService struct {
	courses repository.CourseRepository
	store   *storage.DiskStore
}

// NewCourseService builds the service.
func NewCourseService(courses repository.CourseRepository, store *storage.DiskStore) *CourseService {
	return &CourseService{courses: courses, store: store}
}

// PublishInput carries the multipart form fields and file parts.
type PublishInput struct {
	Name        string
	Description string
	Price       float64
	Preview     *multipart.FileHeader
	FullVideo   *multipart.FileHeader
}

// Publish validates and stores both media files, then persists the course
// record with media URLs self-referential to the serving origin (baseURL is
// the request's own scheme://host). Either a complete course is returned or
// an error; no partial record is ever persisted.
func (s *CourseService) Publish(ctx context.Context, input PublishInput, baseURL string) (*domain.Course, error) {
	if input.Name == "" || input.Description == "" {
		return nil, apperrors.NewValidationError("courseName and description required", nil)
	}
	if input.Price < 0 {
		return nil, apperrors.NewValidationError("price must be non-negative", nil)
	}
	if input.Preview == nil || input.FullVideo == nil {
		return nil, apperrors.NewValidationError("videoPreview and fullVideo files required", nil)
	}

	preview, err := s.store.Save(input.Preview)
	if err != nil {
		return nil, err
	}
	full, err := s.store.Save(input.FullVideo)
	if err != nil {
		return nil, err
	}

	course := &domain.Course{
		Name:         input.Name,
		Description:  input.Description,
		Price:        input.Price,
		PreviewURL:   baseURL + "/uploads/" + preview.StorageName,
		FullVideoURL: baseURL + "/uploads/" + full.StorageName,
	}
	if err := s.courses.Create(ctx, course); err != nil {
		return nil, apperrors.NewPersistenceError("could not create course", err)
	}
	return course, nil
}

// List returns every stored course in the store's natural order.
func (s *CourseService) List(ctx context.Context) ([]domain.Course, error) {
	courses, err := s.courses.List(ctx)
	if err != nil {
		return nil, apperrors.NewPersistenceError("could not list courses", err)
	}
	return courses, nil
}

// GetByID returns a single course by its store-assigned identifier.
func (s *CourseService) GetByID(ctx context.Context, id string) (*domain.Course, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.NewInvalidIdentifier(id)
	}
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("course", nil)
		}
		return nil, apperrors.NewPersistenceError("could not load course", err)
	}
	return course, nil
}
